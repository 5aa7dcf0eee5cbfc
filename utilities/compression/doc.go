// Package compression packs genome sequences over the alphabet {A, C, G, T} into
// two bits per symbol, and expands them back.
//
// The codes are fixed:
//
//	A 00    C 01    G 10    T 11
//
// A plain-text genome thus shrinks to a quarter of its size. Since the packed
// codes don't necessarily fill the last byte, the decoder needs to know where
// the sequence ends. Two layouts are supported:
//
//   - The length-header layout ([Codec], the default) writes the number of
//     symbols as a 32-bit unsigned integer before the codes. The decoder reads
//     exactly that many codes and ignores whatever follows, pad bits included.
//     An empty sequence is four zero bytes. A 1000-symbol sequence takes
//     4 + 250 bytes.
//   - The tagged layout ([TaggedCodec]) stores only the symbol count modulo 4
//     in the top two bits of the first byte and pads the tag so the stream ends
//     on a byte boundary. It saves three bytes but the decoder has to read
//     until the end of the stream, so it can't be embedded in anything else.
//
// Bits are written most significant first, using github.com/icza/bitio as the
// bit-level reader and writer. Input containing anything other than the four
// upper-case symbols is rejected rather than silently dropped, since dropping
// would make the packed length disagree with the input length. Whitespace can
// be stripped beforehand with [Options].IgnoreWhitespace.
//
// For example, "ACGT" packs to the length-header stream
//
//	00 00 00 04 1B
//
// and to the tagged stream
//
//	00 1B
package compression
