package memory

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldKey returns the comparison key for name and email uniqueness: the
// string is decomposed, stripped of combining marks, recomposed and case
// folded, so "José" and "JOSE" share a key. Transformers and casers are
// stateful, hence built per call.
func foldKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return cases.Fold().String(stripped)
}
