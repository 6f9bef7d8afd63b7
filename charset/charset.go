// Package charset maps message text to the single-byte character codes the
// bitstream carries. Code points 0 through 255 map to themselves (ISO 8859-1);
// anything above cannot be represented.
package charset

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

var ErrUnrepresentable = errors.New("message contains characters above U+00FF")

// Encode converts s to single-byte codes. s is NFC-normalised first so that
// decomposed accents such as "é" still fit in one byte.
func Encode(s string) ([]byte, error) {
	b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(norm.NFC.String(s)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnrepresentable, err)
	}
	return b, nil
}

// Decode converts single-byte codes back to a UTF-8 string.
func Decode(b []byte) string {
	// Every byte is defined in ISO 8859-1, decoding cannot fail.
	s, _ := charmap.ISO8859_1.NewDecoder().Bytes(b)
	return string(s)
}
