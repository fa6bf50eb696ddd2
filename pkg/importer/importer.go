// Package importer builds lexicon directories from SPIonic word lists and
// keeps track of where each one came from.
package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/hazyhaar/spionic/pkg/lexicon"
)

var validID = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// Request describes one lexicon to build.
type Request struct {
	ID           string
	Source       string // local path or http(s) URL
	OutputDir    string
	Language     string
	License      string
	Description  string
	Version      string
	Format       lexicon.FormatSpec
	MetadataCols []lexicon.MetadataColumn
}

// Result reports what an import wrote.
type Result struct {
	Dir     string
	Entries int
	Keys    int
}

// Importer fetches sources, converts them and writes lexicon directories.
type Importer struct {
	sources *SourceDB
	logger  *slog.Logger
}

// New returns an Importer. sources may be nil, in which case imports are not
// recorded.
func New(sources *SourceDB, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{sources: sources, logger: logger}
}

// Import builds <OutputDir>/<ID>/ with data.csv, data.gob and manifest.yaml.
func (im *Importer) Import(ctx context.Context, req Request) (*Result, error) {
	res, err := im.run(ctx, req)
	if im.sources != nil && validID.MatchString(req.ID) {
		if err != nil {
			if rerr := im.sources.RecordFailure(req.ID, req.Source, err.Error()); rerr != nil {
				im.logger.Error("record import failure", "lexicon", req.ID, "error", rerr)
			}
		} else if rerr := im.sources.RecordImport(req.ID, req.Source, res.Entries); rerr != nil {
			im.logger.Error("record import", "lexicon", req.ID, "error", rerr)
		}
	}
	return res, err
}

func (im *Importer) run(ctx context.Context, req Request) (*Result, error) {
	if !validID.MatchString(req.ID) {
		return nil, fmt.Errorf("invalid lexicon id %q", req.ID)
	}
	if req.Source == "" {
		return nil, fmt.Errorf("lexicon %s: missing source", req.ID)
	}

	dir := filepath.Join(req.OutputDir, req.ID)
	if err := ensureDir(dir); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	m := &lexicon.Manifest{
		ID:           req.ID,
		Version:      req.Version,
		Language:     req.Language,
		Description:  req.Description,
		Source:       req.Source,
		License:      req.License,
		DataFile:     "data.csv",
		Format:       req.Format,
		MetadataCols: req.MetadataCols,
	}
	if m.Language == "" {
		m.Language = "grc"
	}
	if m.Version == "" {
		m.Version = "1"
	}
	if isURL(req.Source) {
		m.SourceURL = req.Source
	}

	dataPath := filepath.Join(dir, m.DataFile)
	im.logger.Info("fetching lexicon source", "lexicon", req.ID, "source", req.Source)
	if err := fetch(ctx, req.Source, dataPath); err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", req.ID, err)
	}

	f, err := os.Open(dataPath)
	if err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", req.ID, err)
	}
	entries, err := lexicon.ReadEntries(f, m)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", req.ID, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("lexicon %s: source has no entries", req.ID)
	}

	if err := lexicon.SaveGob(entries, filepath.Join(dir, "data.gob")); err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", req.ID, err)
	}
	if err := lexicon.WriteManifest(dir, m); err != nil {
		return nil, fmt.Errorf("lexicon %s: write manifest: %w", req.ID, err)
	}

	res := &Result{Dir: dir, Keys: len(entries)}
	for _, es := range entries {
		res.Entries += len(es)
	}
	im.logger.Info("lexicon imported", "lexicon", req.ID, "entries", res.Entries, "keys", res.Keys, "dir", dir)
	return res, nil
}

// fetch copies source to dest, downloading it when source is a URL.
func fetch(ctx context.Context, source, dest string) error {
	if isURL(source) {
		return downloadFile(ctx, source, dest)
	}

	in, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy source: %w", err)
	}
	return out.Close()
}
