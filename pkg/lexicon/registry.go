package lexicon

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"

	"github.com/hazyhaar/spionic/pkg/spionic"
)

// Registry holds every lexicon found under a directory.
type Registry struct {
	mu       sync.RWMutex
	lexicons map[string]*Lexicon
	dir      string
}

// NewRegistry creates an empty registry for dir.
func NewRegistry(dir string) *Registry {
	return &Registry{
		lexicons: make(map[string]*Lexicon),
		dir:      dir,
	}
}

// Load scans the directory and loads every subdirectory holding a
// manifest.yaml. The previous set is replaced only if all loads succeed.
func (r *Registry) Load() error {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return fmt.Errorf("read lexicons dir %s: %w", r.dir, err)
	}

	loaded := make(map[string]*Lexicon)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(r.dir, entry.Name())
		if _, err := os.Stat(filepath.Join(dir, "manifest.yaml")); err != nil {
			continue
		}
		l, err := LoadLexicon(dir)
		if err != nil {
			return fmt.Errorf("load lexicon %s: %w", entry.Name(), err)
		}
		loaded[l.Manifest.ID] = l
	}

	r.mu.Lock()
	r.lexicons = loaded
	r.mu.Unlock()
	return nil
}

// Reload reloads all lexicons from disk.
func (r *Registry) Reload() error {
	return r.Load()
}

// Match is one lexicon hit for a looked-up term.
type Match struct {
	LexiconID string            `json:"lexicon_id"`
	Language  string            `json:"language"`
	SPIonic   string            `json:"spionic"`
	Greek     string            `json:"greek"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// LookupResult is the response for a single term.
type LookupResult struct {
	Term    string  `json:"term"`
	Greek   string  `json:"greek"`
	Folded  string  `json:"folded"`
	Matches []Match `json:"matches"`
}

// LookupOptions restrict which lexicons are searched.
type LookupOptions struct {
	Lexicons  []string
	Languages []string
}

// Lookup searches every (or every selected) lexicon for term, given in
// SPIonic or Greek. Lexicons are visited in ID order.
func (r *Registry) Lookup(term string, opts *LookupOptions) *LookupResult {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := &LookupResult{
		Term:    term,
		Greek:   spionic.Convert(term),
		Matches: []Match{},
	}

	ids := make([]string, 0, len(r.lexicons))
	for id := range r.lexicons {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		l := r.lexicons[id]
		if opts != nil {
			if len(opts.Lexicons) > 0 && !slices.Contains(opts.Lexicons, id) {
				continue
			}
			if len(opts.Languages) > 0 && !slices.Contains(opts.Languages, l.Manifest.Language) {
				continue
			}
		}

		key := l.fold(result.Greek)
		entries, ok := l.Entries[key]
		if !ok {
			continue
		}
		if result.Folded == "" {
			result.Folded = key
		}
		for _, e := range entries {
			result.Matches = append(result.Matches, Match{
				LexiconID: id,
				Language:  l.Manifest.Language,
				SPIonic:   e.SPIonic,
				Greek:     e.Greek,
				Metadata:  e.Metadata,
			})
		}
	}

	if result.Folded == "" {
		result.Folded = FoldAccents(result.Greek)
	}
	return result
}

// Info is the public metadata of a loaded lexicon.
type Info struct {
	ID          string `json:"id"`
	Version     string `json:"version"`
	Language    string `json:"language"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source"`
	SourceURL   string `json:"source_url,omitempty"`
	License     string `json:"license"`
	Entries     int    `json:"entries"`
}

// List returns metadata for all loaded lexicons, sorted by ID.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]Info, 0, len(r.lexicons))
	for _, l := range r.lexicons {
		infos = append(infos, Info{
			ID:          l.Manifest.ID,
			Version:     l.Manifest.Version,
			Language:    l.Manifest.Language,
			Description: l.Manifest.Description,
			Source:      l.Manifest.Source,
			SourceURL:   l.Manifest.SourceURL,
			License:     l.Manifest.License,
			Entries:     l.Size(),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// Count returns the number of loaded lexicons.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.lexicons)
}

// TotalEntries returns the number of words across all lexicons.
func (r *Registry) TotalEntries() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0
	for _, l := range r.lexicons {
		total += l.Size()
	}
	return total
}
