package testing

import (
	"io"
	"math/rand"
	"testing"

	"github.com/dargueta/genopack/utilities/compression"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

// RandomGenome returns a sequence of `length` symbols drawn uniformly from the
// alphabet. The same seed always gives the same sequence.
func RandomGenome(length int, seed int64) []byte {
	source := rand.New(rand.NewSource(seed))
	sequence := make([]byte, length)
	for i := range sequence {
		sequence[i] = compression.Alphabet[source.Intn(len(compression.Alphabet))]
	}
	return sequence
}

// LoadPackedStream packs `sequence` in the length-header format and returns a
// stream to access the packed bytes.
//
//   - The stream is a fixed-size view over the packed bytes. Attempting to
//     write past the end of it will trigger an error.
//   - `truncateBy` bytes are cut off the end of the packed data first, so tests
//     can build incomplete streams.
func LoadPackedStream(t *testing.T, sequence []byte, truncateBy int) io.ReadWriteSeeker {
	packed, err := compression.CompressBytes(sequence, compression.Options{})
	require.NoError(t, err)

	require.Equal(
		t,
		compression.Codec{}.PackedSize(int64(len(sequence))),
		int64(len(packed)),
		"packed stream is wrong size",
	)
	require.LessOrEqual(t, truncateBy, len(packed), "can't truncate more than the whole stream")
	return bytesextra.NewReadWriteSeeker(packed[:len(packed)-truncateBy])
}
