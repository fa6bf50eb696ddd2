package spionic

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Form selects the Unicode normalization of the glyphs a Converter emits.
// Only table output is affected; unmatched input passes through as is.
type Form int

const (
	// FormNFC composes each glyph. Ano teleia and the Greek question mark
	// become U+00B7 and ';'.
	FormNFC Form = iota
	// FormNFD decomposes every glyph into base letter plus combining marks.
	FormNFD
	// FormNone emits the glyph table entries untouched.
	FormNone

	formCount
)

// ParseForm maps "nfc", "nfd" or "none" to a Form. Empty means NFC.
func ParseForm(s string) (Form, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nfc":
		return FormNFC, nil
	case "nfd":
		return FormNFD, nil
	case "none", "raw":
		return FormNone, nil
	default:
		return FormNFC, fmt.Errorf("unknown output form %q", s)
	}
}

func (f Form) String() string {
	switch f {
	case FormNFD:
		return "nfd"
	case FormNone:
		return "none"
	default:
		return "nfc"
	}
}

// glyphsIn compiles the glyph table with every replacement in form f.
func glyphsIn(f Form) *Table {
	var nf norm.Form
	switch f {
	case FormNFC:
		nf = norm.NFC
	case FormNFD:
		nf = norm.NFD
	default:
		return NewTable(glyphRules)
	}
	rules := make([]Rule, len(glyphRules))
	for i, r := range glyphRules {
		rules[i] = Rule{Pattern: r.Pattern, Replacement: nf.String(r.Replacement)}
	}
	return NewTable(rules)
}

// Option configures a Converter.
type Option func(*Converter)

// WithForm sets the output normalization form.
func WithForm(f Form) Option {
	return func(c *Converter) { c.form = f }
}

// Converter converts SPIonic text with a fixed output form. The zero value
// is not usable; call New.
type Converter struct {
	form   Form
	t      *tables
	glyphs *Table
}

var defaultConverter = New()

// New returns a Converter. Without options the output is NFC; an unknown
// form also falls back to NFC.
func New(opts ...Option) *Converter {
	c := &Converter{form: FormNFC}
	for _, o := range opts {
		o(c)
	}
	if c.form < 0 || c.form >= formCount {
		c.form = FormNFC
	}
	c.t = loadTables()
	c.glyphs = c.t.byForm[c.form]
	return c
}

// Form returns the output normalization form.
func (c *Converter) Form() Form { return c.form }

// Normalize returns the narrow, combined ASCII form of s.
func (c *Converter) Normalize(s string) string {
	return c.t.combined.Replace(c.t.width.Replace(s))
}

// Convert returns s as Unicode Greek in the converter's form.
func (c *Converter) Convert(s string) string {
	return c.glyphs.Replace(c.Normalize(s))
}

// Transformer returns a transform.Transformer producing the same output as
// Convert for any chunking of its input.
func (c *Converter) Transformer() transform.Transformer {
	return &segmenter{c: c}
}

// NewReader returns a reader yielding the converted contents of r.
func (c *Converter) NewReader(r io.Reader) io.Reader {
	return transform.NewReader(r, c.Transformer())
}
