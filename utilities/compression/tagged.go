package compression

import (
	"errors"

	"github.com/dargueta/genopack"
)

// TaggedCodec is the [SequenceCodec] for [genopack.FormatTagged] streams.
//
// Instead of a length header, the top two bits of the first byte hold the
// number of symbols modulo 4 (the "tag"). The tag is followed by just enough
// zero bits that the whole stream ends on a byte boundary once the codes are
// appended:
//
//	len % 4   first bits
//	0         00 000000
//	1         01 0000
//	2         10 00
//	3         11
//
// The decoder reads codes until the stream is exhausted. This only works if the
// stream is not followed by anything else, and a trailing partial byte cannot
// be told apart from a well-formed stream.
type TaggedCodec struct{}

// tagPadBits returns the number of zero bits written after the tag.
func tagPadBits(tag uint64) uint8 {
	return uint8(6 - 2*tag)
}

func (TaggedCodec) Encode(sequence []byte, sink genopack.BitWriter) error {
	err := Validate(sequence)
	if err != nil {
		return err
	}

	tag := uint64(len(sequence) % 4)
	if tag == 0 {
		err = sink.WriteByte(0)
	} else {
		padBits := tagPadBits(tag)
		err = sink.WriteBits(tag<<padBits, CodeBits+padBits)
	}
	if err != nil {
		return genopack.ErrIOFailed.Wrap(err)
	}
	return writeCodes(sequence, sink)
}

func (TaggedCodec) Decode(source genopack.BitReader) ([]byte, error) {
	tag, err := readField(source, CodeBits)
	if err != nil {
		if errors.Is(err, genopack.ErrStreamTruncated) {
			return nil, genopack.ErrStreamTruncated.WithMessage("missing tag byte")
		}
		return nil, err
	}

	padBits := tagPadBits(tag)
	if padBits > 0 {
		_, err = readField(source, padBits)
		if err != nil {
			return nil, err
		}
	}

	sequence := []byte{}
	for {
		code, err := readField(source, CodeBits)
		if err != nil {
			if errors.Is(err, genopack.ErrStreamTruncated) {
				// Running out of bits on a code boundary is the normal end of
				// the stream.
				return sequence, nil
			}
			return nil, err
		}
		sequence = append(sequence, CodeSymbol(byte(code)))
	}
}

func (TaggedCodec) PackedSize(symbols int64) int64 {
	return symbols/4 + 1
}
