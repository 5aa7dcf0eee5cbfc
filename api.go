package genopack

// BitReader is the bit-level input source a packed stream is decoded from.
//
// Bits are consumed most significant first. When no whole bits remain, ReadBits
// must return [io.EOF]; codecs use this as the "stream exhausted" signal. An
// [*bitio.Reader] from github.com/icza/bitio satisfies this interface.
type BitReader interface {
	// ReadBits reads the next n bits (n <= 64) and returns them as an unsigned
	// integer.
	ReadBits(n uint8) (uint64, error)
}

// BitWriter is the bit-level output sink a packed stream is encoded into.
type BitWriter interface {
	// WriteBits writes the n lowest bits of r, most significant first.
	WriteBits(r uint64, n uint8) error
	// WriteByte writes all eight bits of b. The sink need not be byte-aligned.
	WriteByte(b byte) error
	// Close pads the final partial byte with zero bits and flushes everything
	// to the underlying stream. It must be called exactly once, including when
	// encoding fails.
	Close() error
}
