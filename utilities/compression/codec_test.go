package compression_test

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/dargueta/genopack"
	gtest "github.com/dargueta/genopack/testing"
	c "github.com/dargueta/genopack/utilities/compression"
	"github.com/noxer/bytewriter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type PackingTestCase struct {
	Input          []byte
	ExpectedOutput []byte
	Name           string
}

func TestCodecCompress__Basic(t *testing.T) {
	tests := []PackingTestCase{
		{[]byte(""), []byte{0, 0, 0, 0}, "empty"},
		{[]byte("A"), []byte{0, 0, 0, 1, 0x00}, "single A"},
		{[]byte("T"), []byte{0, 0, 0, 1, 0xc0}, "single T"},
		{[]byte("ACGT"), []byte{0, 0, 0, 4, 0x1b}, "whole alphabet"},
		{[]byte("TTTTT"), []byte{0, 0, 0, 5, 0xff, 0xc0}, "one past a byte"},
		{[]byte("GATTACA"), []byte{0, 0, 0, 7, 0x8f, 0x10}, "gattaca"},
	}

	for _, test := range tests {
		t.Run(
			test.Name,
			func(t *testing.T) {
				runPackingTestCase(t, test, c.Options{})
			},
		)
	}
}

func TestCodecRoundTrip__AllShortLengths(t *testing.T) {
	for length := 0; length <= 33; length++ {
		runRoundTripTestCase(t, gtest.RandomGenome(length, int64(length)), c.Options{})
	}
}

func TestCodecRoundTrip__LongRun(t *testing.T) {
	sequence := bytes.Repeat([]byte("A"), 1000)
	packed := runRoundTripTestCase(t, sequence, c.Options{})
	assert.Len(t, packed, 4+250)
}

func TestCodecRoundTrip__Random(t *testing.T) {
	runRoundTripTestCase(t, gtest.RandomGenome(9174, 119), c.Options{})
}

func TestCodecPackedSize(t *testing.T) {
	for length := 0; length <= 64; length++ {
		expectedBits := 32 + 2*length
		expectedBytes := int64((expectedBits + 7) / 8)
		assert.Equal(t, expectedBytes, c.Codec{}.PackedSize(int64(length)), "length %d", length)

		packed, err := c.CompressBytes(gtest.RandomGenome(length, 1), c.Options{})
		require.NoError(t, err)
		assert.EqualValues(t, expectedBytes, len(packed), "length %d", length)
	}
}

func TestCodecPackedSize__LargestHeader(t *testing.T) {
	assert.EqualValues(t, 1073741828, c.Codec{}.PackedSize(math.MaxUint32))
	assert.EqualValues(t, 1073741824, c.TaggedCodec{}.PackedSize(math.MaxUint32))
}

func TestCodecCompress__Deterministic(t *testing.T) {
	sequence := gtest.RandomGenome(501, 7)

	first, err := c.CompressBytes(sequence, c.Options{})
	require.NoError(t, err)
	second, err := c.CompressBytes(sequence, c.Options{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCodecCompress__InvalidSymbol(t *testing.T) {
	output := bytes.Buffer{}
	_, err := c.Compress(bytes.NewReader([]byte("ACNGT")), &output, c.Options{})

	assert.ErrorIs(t, err, genopack.ErrInvalidSymbol)
	assert.Contains(t, err.Error(), "'N' at offset 2")
	assert.Zero(t, output.Len(), "nothing should be written for invalid input")
}

func TestCodecExpand__Truncated(t *testing.T) {
	tests := []struct {
		Name   string
		Packed []byte
	}{
		{"empty stream", []byte{}},
		{"partial header", []byte{0, 0, 0}},
		{"header only", []byte{0, 0, 0, 1}},
		{"ten declared, eight present", []byte{0, 0, 0, 10, 0x1b, 0x1b}},
		{"one byte short", []byte{0, 0, 0, 5, 0xff}},
		{"largest count", []byte{0xff, 0xff, 0xff, 0xff, 0x1b}},
		{"count with top bit set", []byte{0x80, 0, 0, 0, 0x1b, 0x1b}},
	}

	for _, test := range tests {
		t.Run(
			test.Name,
			func(t *testing.T) {
				output := bytes.Buffer{}
				_, err := c.Expand(bytes.NewReader(test.Packed), &output, c.Options{})
				assert.ErrorIs(t, err, genopack.ErrStreamTruncated)
				assert.Zero(t, output.Len(), "partial sequence was written")
			},
		)
	}
}

func TestCodecExpand__IgnoresTrailingData(t *testing.T) {
	packed := []byte{0, 0, 0, 4, 0x1b, 0xff, 0xff, 0x12}
	sequence, err := c.ExpandBytes(packed, c.Options{})
	require.NoError(t, err)
	assert.Equal(t, []byte("ACGT"), sequence)
}

func TestCodecExpand__IgnoresPadBits(t *testing.T) {
	// "G" with its six pad bits set. They carry no data.
	sequence, err := c.ExpandBytes([]byte{0, 0, 0, 1, 0xbf}, c.Options{})
	require.NoError(t, err)
	assert.Equal(t, []byte("G"), sequence)
}

func TestCodecEncode__WriteFails(t *testing.T) {
	sinkErr := errors.New("disk on fire")
	err := c.Codec{}.Encode([]byte("ACGT"), failingSink{err: sinkErr})
	assert.ErrorIs(t, err, genopack.ErrIOFailed)
	assert.ErrorIs(t, err, sinkErr)
}

func TestCodecDecode__ReadFails(t *testing.T) {
	sourceErr := errors.New("cable unplugged")
	_, err := c.Codec{}.Decode(failingSource{err: sourceErr})
	assert.ErrorIs(t, err, genopack.ErrIOFailed)
	assert.ErrorIs(t, err, sourceErr)
	assert.NotErrorIs(t, err, genopack.ErrStreamTruncated)
}

func TestCodecFor(t *testing.T) {
	codec, err := c.CodecFor(genopack.FormatLengthHeader)
	require.NoError(t, err)
	assert.IsType(t, c.Codec{}, codec)

	codec, err = c.CodecFor(genopack.FormatTagged)
	require.NoError(t, err)
	assert.IsType(t, c.TaggedCodec{}, codec)

	_, err = c.CodecFor(genopack.Format(42))
	assert.ErrorIs(t, err, genopack.ErrInvalidFormat)
}

////////////////////////////////////////////////////////////////////////////////
// Helper functions

type failingSink struct {
	err error
}

func (s failingSink) WriteBits(r uint64, n uint8) error { return s.err }
func (s failingSink) WriteByte(b byte) error { return s.err }
func (s failingSink) Close() error { return nil }

type failingSource struct {
	err error
}

func (s failingSource) ReadBits(n uint8) (uint64, error) { return 0, s.err }

func runPackingTestCase(t *testing.T, test PackingTestCase, options c.Options) {
	outputBuffer := make([]byte, len(test.ExpectedOutput)*2)
	outputWriter := bytewriter.New(outputBuffer)

	n, err := c.Compress(bytes.NewReader(test.Input), outputWriter, options)
	require.NoError(t, err, "unexpected error while compressing")

	assert.EqualValues(t, len(test.ExpectedOutput), n, "bytes written is wrong")
	assert.Equal(t, test.ExpectedOutput, outputBuffer[:n], "output data is wrong")
	assert.Equal(
		t,
		make([]byte, len(outputBuffer)-int(n)),
		outputBuffer[n:],
		"wrote past the reported size",
	)

	expanded, err := c.ExpandBytes(test.ExpectedOutput, options)
	require.NoError(t, err, "unexpected error while expanding")
	assert.Equal(t, test.Input, expanded, "expanded data is wrong")
}

// runRoundTripTestCase packs and expands `originalData`, checks that nothing
// changed, and returns the packed form.
func runRoundTripTestCase(t *testing.T, originalData []byte, options c.Options) []byte {
	compressedBuffer := make([]byte, len(originalData)/4+16)
	compressedWriter := bytewriter.New(compressedBuffer)

	compressedSize, err := c.Compress(bytes.NewReader(originalData), compressedWriter, options)
	require.NoError(t, err, "unexpected error while compressing")
	t.Logf("compressed %d to %d", len(originalData), compressedSize)

	decompressedBuffer := make([]byte, len(originalData))
	decompressedWriter := bytewriter.New(decompressedBuffer)
	compressedReader := bytes.NewReader(compressedBuffer[:compressedSize])

	n, err := c.Expand(compressedReader, decompressedWriter, options)
	require.NoError(t, err, "unexpected error while expanding")
	assert.EqualValues(t, len(originalData), n, "expanded sequence has wrong size")
	assert.Equal(t, originalData, decompressedBuffer, "expanded data is wrong")

	return compressedBuffer[:compressedSize]
}
