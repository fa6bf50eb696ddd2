package lexicon

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Folder reduces a Greek word to its lookup key.
type Folder func(string) string

// FoldAccents strips breathings, accents, diaeresis and iota subscript, then
// case-folds (Ἄνθρωπος -> ανθρωποσ, τῷ -> τω).
func FoldAccents(s string) string {
	// Transformers and casers keep state; build them per call.
	strip := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(strip, s)
	if err != nil {
		stripped = s
	}
	return cases.Fold().String(stripped)
}

// FoldCase case-folds but keeps diacritics. Final sigma folds to σ.
func FoldCase(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// FoldNone keys on the exact NFC form.
func FoldNone(s string) string {
	return norm.NFC.String(s)
}

// GetFolder returns the folder for a manifest fold mode.
// Default is "accents".
func GetFolder(mode string) Folder {
	switch mode {
	case "accents":
		return FoldAccents
	case "case":
		return FoldCase
	case "none":
		return FoldNone
	default:
		return FoldAccents
	}
}
