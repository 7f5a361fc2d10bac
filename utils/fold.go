package utils

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldASCII strips combining marks so accented locality names compare
// equal to their plain-ASCII directory spellings ("Pondichéry" ->
// "Pondichery"). Input that cannot be transformed is returned as-is.
func FoldASCII(s string) string {
	// transformers carry state, so build the chain per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
