package compression

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/dargueta/genopack"
)

// HeaderBits is the width of the length header of [Codec] streams.
const HeaderBits = 32

// maxPreallocatedSymbols caps how much memory a decoder reserves up front based
// on a length header it hasn't verified yet.
const maxPreallocatedSymbols = 1 << 20

// SequenceCodec converts between a symbol sequence and a packed bit stream.
//
// Implementations are stateless; the zero value is ready to use and may be
// shared.
type SequenceCodec interface {
	// Encode writes the packed form of `sequence` to `sink`. It doesn't close
	// the sink. If `sequence` contains a byte outside the alphabet, nothing is
	// written and the error wraps [genopack.ErrInvalidSymbol].
	Encode(sequence []byte, sink genopack.BitWriter) error
	// Decode reads one packed sequence from `source`. On failure no partial
	// sequence is returned.
	Decode(source genopack.BitReader) ([]byte, error)
	// PackedSize gives the size in bytes of the packed form of a sequence of
	// `symbols` symbols, including padding.
	PackedSize(symbols int64) int64
}

// Codec is the [SequenceCodec] for [genopack.FormatLengthHeader] streams:
//
//	[32-bit symbol count][2-bit code] * count [0-7 zero pad bits]
//
// Bits are written most significant first, so the count is big-endian.
type Codec struct{}

// CodecFor returns the [SequenceCodec] that reads and writes `format`.
func CodecFor(format genopack.Format) (SequenceCodec, error) {
	switch format {
	case genopack.FormatLengthHeader:
		return Codec{}, nil
	case genopack.FormatTagged:
		return TaggedCodec{}, nil
	default:
		return nil, genopack.ErrInvalidFormat.WithMessage(format.String())
	}
}

func (Codec) Encode(sequence []byte, sink genopack.BitWriter) error {
	if uint64(len(sequence)) > math.MaxUint32 {
		return genopack.ErrSequenceTooLong.WithMessage(
			fmt.Sprintf("%d symbols", len(sequence)))
	}
	err := Validate(sequence)
	if err != nil {
		return err
	}

	err = sink.WriteBits(uint64(len(sequence)), HeaderBits)
	if err != nil {
		return genopack.ErrIOFailed.Wrap(err)
	}
	return writeCodes(sequence, sink)
}

func (Codec) Decode(source genopack.BitReader) ([]byte, error) {
	header, err := readField(source, HeaderBits)
	if err != nil {
		if errors.Is(err, genopack.ErrStreamTruncated) {
			return nil, genopack.ErrStreamTruncated.WithMessage("missing length header")
		}
		return nil, err
	}

	capacity := header
	if capacity > maxPreallocatedSymbols {
		capacity = maxPreallocatedSymbols
	}

	sequence := make([]byte, 0, int(capacity))
	for uint64(len(sequence)) < header {
		code, err := readField(source, CodeBits)
		if err != nil {
			if errors.Is(err, genopack.ErrStreamTruncated) {
				return nil, genopack.ErrStreamTruncated.WithMessage(
					fmt.Sprintf(
						"header declares %d symbols, found %d",
						header,
						len(sequence),
					),
				)
			}
			return nil, err
		}
		sequence = append(sequence, CodeSymbol(byte(code)))
	}
	return sequence, nil
}

func (Codec) PackedSize(symbols int64) int64 {
	return (HeaderBits + CodeBits*symbols + 7) / 8
}

// writeCodes writes the code of every symbol in `sequence`, in order. The
// sequence must already be validated.
func writeCodes(sequence []byte, sink genopack.BitWriter) error {
	for _, symbol := range sequence {
		err := sink.WriteBits(uint64(symbolCodes[symbol]), CodeBits)
		if err != nil {
			return genopack.ErrIOFailed.Wrap(err)
		}
	}
	return nil
}

// readField reads a `width`-bit unsigned integer from `source`. Running out of
// input is reported as [genopack.ErrStreamTruncated], any other read failure as
// [genopack.ErrIOFailed].
func readField(source genopack.BitReader, width uint8) (uint64, error) {
	value, err := source.ReadBits(width)
	if err == nil {
		return value, nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return 0, genopack.ErrStreamTruncated.Wrap(err)
	}
	return 0, genopack.ErrIOFailed.Wrap(err)
}
