package compression

import (
	"fmt"

	"github.com/boljen/go-bitmap"
	"github.com/dargueta/genopack"
)

// CodeBits is the width of the code for a single symbol.
const CodeBits = 2

const noCode = 0xff

// Alphabet lists the symbols in code order, i.e. Alphabet[c] is the symbol with
// code c.
var Alphabet = [4]byte{'A', 'C', 'G', 'T'}

var symbolCodes [256]byte

// whitespace marks the bytes StripWhitespace removes.
var whitespace = bitmap.New(256)

func init() {
	for i := range symbolCodes {
		symbolCodes[i] = noCode
	}
	for code, symbol := range Alphabet {
		symbolCodes[symbol] = byte(code)
	}

	for _, c := range []byte{' ', '\t', '\n', '\v', '\f', '\r'} {
		whitespace.Set(int(c), true)
	}
}

// SymbolCode returns the 2-bit code for `symbol`. The second return value is
// false if the byte isn't in the alphabet.
func SymbolCode(symbol byte) (byte, bool) {
	code := symbolCodes[symbol]
	return code, code != noCode
}

// CodeSymbol is the inverse of [SymbolCode]. Only the lowest two bits of `code`
// are used.
func CodeSymbol(code byte) byte {
	return Alphabet[code&0x3]
}

// Validate checks every byte of `sequence` against the alphabet and returns an
// error wrapping [genopack.ErrInvalidSymbol] for the first one that doesn't
// belong.
func Validate(sequence []byte) error {
	for i, symbol := range sequence {
		if symbolCodes[symbol] == noCode {
			return genopack.ErrInvalidSymbol.WithMessage(
				fmt.Sprintf("%q at offset %d", symbol, i))
		}
	}
	return nil
}

// StripWhitespace removes ASCII whitespace from `sequence` in place and returns
// the shortened slice.
func StripWhitespace(sequence []byte) []byte {
	kept := sequence[:0]
	for _, c := range sequence {
		if !whitespace.Get(int(c)) {
			kept = append(kept, c)
		}
	}
	return kept
}
