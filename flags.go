package genopack

import (
	"fmt"
	"strings"
)

// Format selects the layout of a packed stream.
type Format int

const (
	// FormatLengthHeader prefixes the 2-bit codes with the symbol count as a
	// 32-bit unsigned integer. This is the default.
	FormatLengthHeader Format = iota
	// FormatTagged stores only the symbol count modulo 4 in the top two bits of
	// the first byte; the decoder reads codes until the stream is exhausted.
	FormatTagged
)

var formatNames = map[Format]string{
	FormatLengthHeader: "header",
	FormatTagged:       "tagged",
}

func (f Format) String() string {
	name, ok := formatNames[f]
	if ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat returns the [Format] with the given name, ignoring case.
func ParseFormat(name string) (Format, error) {
	for format, formatName := range formatNames {
		if strings.EqualFold(name, formatName) {
			return format, nil
		}
	}
	return FormatLengthHeader, ErrInvalidFormat.WithMessage(fmt.Sprintf("%q", name))
}
