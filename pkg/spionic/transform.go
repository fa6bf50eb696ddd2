package spionic

import (
	"golang.org/x/text/transform"
)

// segmenter runs the three passes over src and emits only the tokens every
// pass has fully decided. A pass decides the token at position i once it can
// see MaxLen bytes from i, or the end of input. Committed tokens end on a
// boundary of all three scans, so the next call resumes exactly where a
// single pass over the whole input would be. It keeps no state: whatever it
// has not committed stays in src.
type segmenter struct {
	c *Converter
}

func (s *segmenter) Reset() {}

func (s *segmenter) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	t := s.c.t

	// Width rules are single bytes on both sides, so narrow[i] lines up
	// with src[i].
	narrow := t.width.Replace(string(src))

	// Combination pass. mid[k] is one output byte, ends[k] the src offset
	// just past the input it came from.
	mid := make([]byte, 0, len(narrow))
	ends := make([]int, 0, len(narrow))
	i := 0
	for i < len(narrow) {
		if !atEOF && len(narrow)-i < t.combined.maxLen {
			break
		}
		n, repl, ok := t.combined.match(narrow[i:])
		if !ok {
			n, repl = 1, narrow[i:i+1]
		}
		i += n
		for j := 0; j < len(repl); j++ {
			mid = append(mid, repl[j])
			ends = append(ends, i)
		}
	}
	midDone := i == len(narrow)

	// Glyph pass.
	glyphs := s.c.glyphs
	m := string(mid)
	for k := 0; k < len(m); {
		if !midDone && len(m)-k < glyphs.maxLen {
			break
		}
		n, repl, ok := glyphs.match(m[k:])
		if !ok {
			n, repl = 1, m[k:k+1]
		}
		if len(repl) > len(dst)-nDst {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], repl)
		k += n
		nSrc = ends[k-1]
	}

	if nSrc < len(src) {
		return nDst, nSrc, transform.ErrShortSrc
	}
	return nDst, nSrc, nil
}
