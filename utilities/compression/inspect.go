package compression

import (
	"errors"
	"io"

	"github.com/dargueta/genopack"
	"github.com/icza/bitio"
)

// StreamInfo describes a length-header packed stream without decoding it.
type StreamInfo struct {
	// Path is not filled in by [Inspect]; callers reporting on files set it.
	Path string `csv:"path"`
	// Symbols is the symbol count declared by the length header.
	Symbols uint32 `csv:"symbols"`
	// ExpectedSize is the size in bytes a complete stream with that many
	// symbols has.
	ExpectedSize int64 `csv:"expected_bytes"`
	// ActualSize is the size in bytes of the inspected stream.
	ActualSize int64 `csv:"actual_bytes"`
	// Truncated is true if the stream is too short to hold every symbol.
	Truncated bool `csv:"truncated"`
}

// Inspect reads the length header of a [genopack.FormatLengthHeader] stream and
// compares the size it implies with the real size of the stream. The stream
// position is undefined afterwards.
//
// A stream too short to hold the header fails with
// [genopack.ErrStreamTruncated]. A stream whose body is short is not an error;
// it's reported through StreamInfo.Truncated.
func Inspect(stream io.ReadSeeker) (StreamInfo, error) {
	_, err := stream.Seek(0, io.SeekStart)
	if err != nil {
		return StreamInfo{}, genopack.ErrIOFailed.Wrap(err)
	}

	header, err := readField(bitio.NewReader(stream), HeaderBits)
	if err != nil {
		if errors.Is(err, genopack.ErrStreamTruncated) {
			return StreamInfo{}, genopack.ErrStreamTruncated.WithMessage("missing length header")
		}
		return StreamInfo{}, err
	}

	actualSize, err := stream.Seek(0, io.SeekEnd)
	if err != nil {
		return StreamInfo{}, genopack.ErrIOFailed.Wrap(err)
	}

	expectedSize := Codec{}.PackedSize(int64(header))
	return StreamInfo{
		Symbols:      uint32(header),
		ExpectedSize: expectedSize,
		ActualSize:   actualSize,
		Truncated:    actualSize < expectedSize,
	}, nil
}
