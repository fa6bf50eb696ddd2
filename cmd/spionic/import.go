package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/hazyhaar/spionic/pkg/importer"
	"github.com/hazyhaar/spionic/pkg/lexicon"
	"github.com/spf13/cobra"
)

type importOptions struct {
	id          string
	source      string
	column      string
	outputDir   string
	sourcesDB   string
	delimiter   string
	encoding    string
	noHeader    bool
	language    string
	license     string
	description string
	fold        string
	meta        []string
}

func newImportCmd() *cobra.Command {
	var o importOptions
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Build a lexicon from a SPIonic CSV word list",
		Long: `import reads a CSV file or URL whose key column is SPIonic, converts every
word and writes <output-dir>/<id>/ with manifest.yaml, data.csv and data.gob.
Each import is recorded in the sources database.

Without --id it lists the recorded imports.`,
		Example: `  spionic import --id attic --source words.csv --column lemma --meta gloss=english
  spionic import --id lsj --source https://example.org/lsj.tsv --delimiter '\t'
  spionic import`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runImport(cmd, &o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.id, "id", "", "lexicon ID (lowercase, digits, '.', '_' or '-')")
	f.StringVar(&o.source, "source", "", "CSV path or http(s) URL")
	f.StringVar(&o.column, "column", "", "header name of the SPIonic column (default: first column)")
	f.StringVarP(&o.outputDir, "output-dir", "o", "lexicons", "directory holding the lexicons")
	f.StringVar(&o.sourcesDB, "sources-db", "", "sources database (default: <output-dir>/sources.db)")
	f.StringVar(&o.delimiter, "delimiter", ",", `field delimiter ('\t' for tab)`)
	f.StringVar(&o.encoding, "encoding", "", "source encoding, e.g. iso-8859-7 (default: UTF-8)")
	f.BoolVar(&o.noHeader, "no-header", false, "the source has no header row")
	f.StringVar(&o.language, "language", "grc", "language tag of the lexicon")
	f.StringVar(&o.license, "license", "", "license of the source data")
	f.StringVar(&o.description, "description", "", "free-text description")
	f.StringVar(&o.fold, "fold", "accents", "index folding: accents, case or none")
	f.StringArrayVar(&o.meta, "meta", nil, "metadata column as name=column (repeatable)")
	return cmd
}

func runImport(cmd *cobra.Command, o *importOptions) error {
	dbPath := o.sourcesDB
	if dbPath == "" {
		dbPath = filepath.Join(o.outputDir, "sources.db")
	}
	if err := ensureParent(dbPath); err != nil {
		return err
	}
	sdb, err := importer.OpenSourceDB(dbPath)
	if err != nil {
		return err
	}
	defer sdb.Close()

	if o.id == "" {
		return listImports(cmd, sdb)
	}

	req, err := o.request()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Minute)
	defer cancel()

	logger := newLogger(cmd.ErrOrStderr(), slog.LevelInfo)
	res, err := importer.New(sdb, logger).Import(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "[%s] OK -> %s (%d entries, %d keys)\n", req.ID, res.Dir, res.Entries, res.Keys)
	return nil
}

func (o *importOptions) request() (importer.Request, error) {
	if o.source == "" {
		return importer.Request{}, fmt.Errorf("--source is required with --id")
	}
	delim := o.delimiter
	if delim == `\t` {
		delim = "\t"
	}

	var meta []lexicon.MetadataColumn
	for _, m := range o.meta {
		name, col, ok := strings.Cut(m, "=")
		if !ok {
			name, col = m, m
		}
		if name == "" || col == "" {
			return importer.Request{}, fmt.Errorf("invalid --meta %q, want name=column", m)
		}
		meta = append(meta, lexicon.MetadataColumn{Name: name, Column: col})
	}
	if o.noHeader && (o.column != "" || len(meta) > 0) {
		return importer.Request{}, fmt.Errorf("--column and --meta need a header row")
	}

	return importer.Request{
		ID:          o.id,
		Source:      o.source,
		OutputDir:   o.outputDir,
		Language:    o.language,
		License:     o.license,
		Description: o.description,
		Format: lexicon.FormatSpec{
			Delimiter: delim,
			Encoding:  o.encoding,
			HasHeader: !o.noHeader,
			KeyColumn: o.column,
			Fold:      o.fold,
		},
		MetadataCols: meta,
	}, nil
}

func listImports(cmd *cobra.Command, sdb *importer.SourceDB) error {
	sources, err := sdb.ListSources()
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if len(sources) == 0 {
		fmt.Fprintln(w, "No imports recorded.")
		fmt.Fprintln(w, "Usage: spionic import --id <id> --source <path|url> [--column <name>]")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tENTRIES\tIMPORTED\tSTATUS\tSOURCE")
	for _, src := range sources {
		imported := "-"
		if src.ImportedAt != nil {
			imported = time.Unix(*src.ImportedAt, 0).UTC().Format(time.DateTime)
		}
		status := "ok"
		if src.LastStatus != nil {
			status = fmt.Sprintf("%d", *src.LastStatus)
		}
		if src.LastError != nil {
			status = "error: " + *src.LastError
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", src.LexiconID, src.Entries, imported, status, src.Source)
	}
	return tw.Flush()
}

func ensureParent(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
