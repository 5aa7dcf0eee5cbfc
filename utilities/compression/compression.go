package compression

import (
	"bytes"
	"io"

	"github.com/dargueta/genopack"
	"github.com/hashicorp/go-multierror"
	"github.com/icza/bitio"
)

// Options controls [Compress] and [Expand]. The zero value selects the
// length-header format and rejects whitespace in the input.
type Options struct {
	// Format is the packed stream layout to read or write.
	Format genopack.Format
	// IgnoreWhitespace makes Compress drop ASCII whitespace (e.g. line breaks in
	// a FASTA body) before encoding. Any other byte outside the alphabet is
	// still an error. Expand ignores this.
	IgnoreWhitespace bool
}

// Compress reads a genome sequence from the input until EOF and writes its
// packed form to the output.
//
// The returned int64 gives the number of bytes written to the output stream. If
// an error occurred, the value is undefined and should not be used. The input
// is validated before anything is written, so an invalid symbol leaves the
// output untouched.
func Compress(input io.Reader, output io.Writer, options Options) (int64, error) {
	codec, err := CodecFor(options.Format)
	if err != nil {
		return 0, err
	}

	sequence, err := io.ReadAll(input)
	if err != nil {
		return 0, genopack.ErrIOFailed.Wrap(err)
	}
	if options.IgnoreWhitespace {
		sequence = StripWhitespace(sequence)
	}

	sink := bitio.NewWriter(output)
	err = codec.Encode(sequence, sink)

	// The sink has to be closed on every path so that buffered bits aren't
	// lost and the final byte gets padded.
	closeErr := sink.Close()
	if closeErr != nil {
		closeErr = genopack.ErrIOFailed.Wrap(closeErr)
		if err != nil {
			return 0, multierror.Append(err, closeErr)
		}
		return 0, closeErr
	}
	if err != nil {
		return 0, err
	}
	return codec.PackedSize(int64(len(sequence))), nil
}

// Expand decodes a packed stream from the input and writes the genome sequence
// to the output.
//
// The whole sequence is decoded before anything is written, so a truncated or
// unreadable stream produces no output. Bits following the last symbol of a
// length-header stream are never interpreted. The returned int64 gives the number of
// symbols written.
func Expand(input io.Reader, output io.Writer, options Options) (int64, error) {
	codec, err := CodecFor(options.Format)
	if err != nil {
		return 0, err
	}

	sequence, err := codec.Decode(bitio.NewReader(input))
	if err != nil {
		return 0, err
	}

	if len(sequence) == 0 {
		return 0, nil
	}

	n, err := output.Write(sequence)
	if err == nil && n < len(sequence) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return int64(n), genopack.ErrIOFailed.Wrap(err)
	}
	return int64(n), nil
}

// CompressBytes is a convenience function wrapping [Compress]. It returns the
// packed stream in a new byte slice.
func CompressBytes(sequence []byte, options Options) ([]byte, error) {
	buffer := bytes.NewBuffer(make([]byte, 0, len(sequence)/4+8))
	_, err := Compress(bytes.NewReader(sequence), buffer, options)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// ExpandBytes is a convenience function wrapping [Expand]. It returns the
// expanded sequence in a new byte slice.
func ExpandBytes(packed []byte, options Options) ([]byte, error) {
	buffer := bytes.NewBuffer(make([]byte, 0, len(packed)*4))
	_, err := Expand(bytes.NewReader(packed), buffer, options)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
