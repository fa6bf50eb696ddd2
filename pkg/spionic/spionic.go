// Package spionic converts SPIonic, an ASCII transliteration of polytonic
// Greek, into precomposed Unicode Greek.
//
// Conversion runs three passes over the input:
//
//  1. width: wide diacritic symbols become their narrow forms ("a)" -> "a0")
//  2. combination: adjacent breathing/accent pairs collapse into one
//     combined marker ("a0/" -> "a1")
//  3. glyphs: longest-match substitution of every token ("a1" -> "ἄ")
//
// Characters that match no table entry pass through unchanged. All functions
// are total and safe for concurrent use; the tables are built once and never
// modified.
package spionic

import (
	"sync"
)

type tables struct {
	width    *Table
	combined *Table
	glyphs   *Table
	// byForm holds the glyph table with each replacement already in that
	// normalization form, indexed by Form.
	byForm [formCount]*Table
}

var loadTables = sync.OnceValue(func() *tables {
	t := &tables{
		width:    NewTable(widthRules),
		combined: NewTable(combinedRules),
		glyphs:   NewTable(glyphRules),
	}
	for f := Form(0); f < formCount; f++ {
		t.byForm[f] = glyphsIn(f)
	}
	return t
})

// WidthTable returns the wide-to-narrow diacritic table.
func WidthTable() *Table { return loadTables().width }

// CombinedTable returns the adjacent-diacritic table.
func CombinedTable() *Table { return loadTables().combined }

// GlyphTable returns the token-to-glyph table.
func GlyphTable() *Table { return loadTables().glyphs }

// NormalizeWidth rewrites wide diacritic symbols to their narrow equivalents.
func NormalizeWidth(s string) string {
	return WidthTable().Replace(s)
}

// CombineDiacritics collapses adjacent breathing/accent pairs, in either
// order, into a single combined marker. Input must already be narrow.
func CombineDiacritics(s string) string {
	return CombinedTable().Replace(s)
}

// MapGlyphs replaces every narrow-form token with its Greek glyph.
func MapGlyphs(s string) string {
	return GlyphTable().Replace(s)
}

// Normalize applies the width and combination passes and returns the
// narrow, combined ASCII form.
func Normalize(s string) string {
	return CombineDiacritics(NormalizeWidth(s))
}

// Convert returns s as Unicode Greek. Glyphs are NFC; characters that match
// no token are copied unchanged.
func Convert(s string) string {
	return defaultConverter.Convert(s)
}
