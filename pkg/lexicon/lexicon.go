package lexicon

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hazyhaar/spionic/pkg/spionic"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Entry is one word of a lexicon, in both scripts.
type Entry struct {
	SPIonic  string            `json:"spionic"`
	Greek    string            `json:"greek"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Lexicon is one loaded word list indexed by folded Greek form.
type Lexicon struct {
	Manifest *Manifest          `json:"manifest"`
	Entries  map[string][]*Entry `json:"-"`
	fold     Folder
}

// LoadLexicon reads dir/manifest.yaml and loads data.gob, or the CSV data
// file when no gob is present.
func LoadLexicon(dir string) (*Lexicon, error) {
	manifest, err := LoadManifest(filepath.Join(dir, "manifest.yaml"))
	if err != nil {
		return nil, err
	}

	l := &Lexicon{
		Manifest: manifest,
		Entries:  make(map[string][]*Entry),
		fold:     GetFolder(manifest.Format.Fold),
	}

	gobPath := filepath.Join(dir, "data.gob")
	if _, err := os.Stat(gobPath); err == nil {
		if err := l.loadGob(gobPath); err != nil {
			return nil, fmt.Errorf("lexicon %s: %w", manifest.ID, err)
		}
		return l, nil
	}

	f, err := os.Open(filepath.Join(dir, manifest.DataFile))
	if err != nil {
		return nil, fmt.Errorf("lexicon %s: open data file: %w", manifest.ID, err)
	}
	defer f.Close()

	entries, err := ReadEntries(f, manifest)
	if err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", manifest.ID, err)
	}
	l.Entries = entries
	return l, nil
}

// ReadEntries parses CSV rows laid out as m.Format describes, converts the
// key column from SPIonic and indexes the words by folded Greek form.
func ReadEntries(src io.Reader, m *Manifest) (map[string][]*Entry, error) {
	var reader io.Reader = src
	if enc := m.Format.Encoding; enc != "" && !isUTF8(enc) {
		e, err := htmlindex.Get(enc)
		if err != nil {
			return nil, fmt.Errorf("unsupported encoding %q: %w", enc, err)
		}
		reader = transform.NewReader(src, e.NewDecoder())
	}

	r := csv.NewReader(reader)
	if delim := m.Format.Delimiter; delim != "" {
		r.Comma = []rune(delim)[0]
	}
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	var header []string
	if m.Format.HasHeader {
		var err error
		header, err = r.Read()
		if err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		for i := range header {
			header[i] = strings.TrimSpace(header[i])
		}
	}

	keyIdx := 0
	if col := m.Format.KeyColumn; col != "" && header != nil {
		keyIdx = indexOf(header, col)
		if keyIdx < 0 {
			return nil, fmt.Errorf("key column %q not found in header %v", col, header)
		}
	}

	metaIdx := make(map[string]int)
	for _, mc := range m.MetadataCols {
		if header == nil {
			break
		}
		if i := indexOf(header, mc.Column); i >= 0 {
			metaIdx[mc.Name] = i
		}
	}

	fold := GetFolder(m.Format.Fold)
	entries := make(map[string][]*Entry)
	var shared int
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if keyIdx >= len(record) {
			continue
		}

		word := strings.TrimSpace(record[keyIdx])
		if word == "" {
			continue
		}
		greek := spionic.Convert(word)
		key := fold(greek)

		entry := &Entry{SPIonic: word, Greek: greek}
		if len(metaIdx) > 0 {
			entry.Metadata = make(map[string]string, len(metaIdx))
			for name, idx := range metaIdx {
				if idx < len(record) {
					entry.Metadata[name] = strings.TrimSpace(record[idx])
				}
			}
		}
		if len(entries[key]) == 1 {
			shared++
		}
		entries[key] = append(entries[key], entry)
	}

	if shared > 0 {
		slog.Debug("words sharing a folded key", "lexicon", m.ID, "keys", shared)
	}
	return entries, nil
}

// Lookup converts term from SPIonic (Greek input passes through unchanged)
// and returns the entries filed under its folded form.
func (l *Lexicon) Lookup(term string) ([]*Entry, bool) {
	e, ok := l.Entries[l.Key(term)]
	return e, ok
}

// Key returns the index key for term.
func (l *Lexicon) Key(term string) string {
	return l.fold(spionic.Convert(term))
}

// Size returns the number of words in the lexicon.
func (l *Lexicon) Size() int {
	n := 0
	for _, es := range l.Entries {
		n += len(es)
	}
	return n
}

func indexOf(header []string, col string) int {
	for i, h := range header {
		if h == col {
			return i
		}
	}
	return -1
}

func isUTF8(enc string) bool {
	e := strings.ToLower(strings.ReplaceAll(enc, "-", ""))
	return e == "utf8" || e == ""
}
