package spionic

import (
	"fmt"
	"strings"
)

// MaxPatternLen is the longest token any table may hold.
const MaxPatternLen = 3

// Rule maps one ASCII pattern to its replacement.
type Rule struct {
	Pattern     string `json:"pattern"`
	Replacement string `json:"replacement"`
}

// Table is an immutable pattern table applied with leftmost, longest-match-first,
// non-overlapping substitution.
type Table struct {
	rules  []Rule
	byLen  [MaxPatternLen + 1]map[string]string
	maxLen int
	bytes  [256]bool
}

// NewTable compiles rules into a Table. It panics on an empty, overlong,
// non-ASCII or duplicate pattern: tables are package data, not user input.
func NewTable(rules []Rule) *Table {
	t := &Table{rules: make([]Rule, len(rules))}
	copy(t.rules, rules)

	for _, r := range rules {
		n := len(r.Pattern)
		if n == 0 || n > MaxPatternLen {
			panic(fmt.Sprintf("spionic: pattern %q: length %d out of range", r.Pattern, n))
		}
		if t.byLen[n] == nil {
			t.byLen[n] = make(map[string]string)
		}
		if _, dup := t.byLen[n][r.Pattern]; dup {
			panic(fmt.Sprintf("spionic: duplicate pattern %q", r.Pattern))
		}
		for i := 0; i < n; i++ {
			c := r.Pattern[i]
			if c >= 0x80 {
				panic(fmt.Sprintf("spionic: pattern %q: non-ASCII byte", r.Pattern))
			}
			t.bytes[c] = true
		}
		t.byLen[n][r.Pattern] = r.Replacement
		if n > t.maxLen {
			t.maxLen = n
		}
	}
	return t
}

// Replace rewrites s. At each position the longest matching pattern wins;
// the scan resumes after the consumed bytes. Bytes that start no pattern are
// copied unchanged.
func (t *Table) Replace(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	t.replace(&b, s)
	return b.String()
}

func (t *Table) replace(b *strings.Builder, s string) {
	for i := 0; i < len(s); {
		n, repl, ok := t.match(s[i:])
		if !ok {
			b.WriteByte(s[i])
			i++
			continue
		}
		b.WriteString(repl)
		i += n
	}
}

// match returns the longest pattern that prefixes s.
func (t *Table) match(s string) (int, string, bool) {
	if len(s) == 0 || !t.bytes[s[0]] {
		return 0, "", false
	}
	n := t.maxLen
	if len(s) < n {
		n = len(s)
	}
	for ; n > 0; n-- {
		if repl, ok := t.byLen[n][s[:n]]; ok {
			return n, repl, true
		}
	}
	return 0, "", false
}

// Lookup returns the replacement for an exact pattern.
func (t *Table) Lookup(pattern string) (string, bool) {
	if len(pattern) == 0 || len(pattern) > MaxPatternLen {
		return "", false
	}
	repl, ok := t.byLen[len(pattern)][pattern]
	return repl, ok
}

// Rules returns a copy of the rules in declaration order.
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Len returns the number of rules.
func (t *Table) Len() int { return len(t.rules) }

// MaxLen returns the length of the longest pattern.
func (t *Table) MaxLen() int { return t.maxLen }
