package importer

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Source is one row of the lexicon_imports table.
type Source struct {
	LexiconID  string
	Source     string
	Entries    int
	ImportedAt *int64
	LastError  *string
	LastCheck  *int64
	LastStatus *int
	UpdatedAt  int64
}

// IsRemote reports whether the source was fetched over HTTP.
func (s Source) IsRemote() bool {
	return isURL(s.Source)
}

// SourceDB records where each lexicon was imported from.
type SourceDB struct {
	db *sql.DB
}

// OpenSourceDB opens (or creates) the SQLite database at path and ensures the
// lexicon_imports table exists.
func OpenSourceDB(path string) (*SourceDB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open source db: %w", err)
	}

	const ddl = `CREATE TABLE IF NOT EXISTS lexicon_imports (
		lexicon_id   TEXT PRIMARY KEY,
		source       TEXT NOT NULL,
		entries      INTEGER NOT NULL DEFAULT 0,
		imported_at  INTEGER,
		last_error   TEXT,
		last_check   INTEGER,
		last_status  INTEGER,
		updated_at   INTEGER NOT NULL
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create lexicon_imports table: %w", err)
	}

	return &SourceDB{db: db}, nil
}

// Close closes the database.
func (s *SourceDB) Close() error {
	return s.db.Close()
}

// RecordImport stores a successful import and clears any previous error.
func (s *SourceDB) RecordImport(lexiconID, source string, entries int) error {
	now := time.Now().Unix()
	_, err := s.db.Exec(`INSERT INTO lexicon_imports
		(lexicon_id, source, entries, imported_at, last_error, updated_at)
		VALUES (?, ?, ?, ?, NULL, ?)
		ON CONFLICT(lexicon_id) DO UPDATE SET
			source = excluded.source,
			entries = excluded.entries,
			imported_at = excluded.imported_at,
			last_error = NULL,
			updated_at = excluded.updated_at`,
		lexiconID, source, entries, now, now)
	if err != nil {
		return fmt.Errorf("record import %s: %w", lexiconID, err)
	}
	return nil
}

// RecordFailure stores a failed import. Counts from the last good import are kept.
func (s *SourceDB) RecordFailure(lexiconID, source, importErr string) error {
	now := time.Now().Unix()
	_, err := s.db.Exec(`INSERT INTO lexicon_imports
		(lexicon_id, source, last_error, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(lexicon_id) DO UPDATE SET
			source = excluded.source,
			last_error = excluded.last_error,
			updated_at = excluded.updated_at`,
		lexiconID, source, importErr, now)
	if err != nil {
		return fmt.Errorf("record failure %s: %w", lexiconID, err)
	}
	return nil
}

// UpdateCheck persists the result of an availability check.
func (s *SourceDB) UpdateCheck(lexiconID string, status int, checkErr string) error {
	var errPtr *string
	if checkErr != "" {
		errPtr = &checkErr
	}
	_, err := s.db.Exec(
		`UPDATE lexicon_imports SET last_check = ?, last_status = ?, last_error = ? WHERE lexicon_id = ?`,
		time.Now().Unix(), status, errPtr, lexiconID,
	)
	if err != nil {
		return fmt.Errorf("update check for %s: %w", lexiconID, err)
	}
	return nil
}

const sourceColumns = `lexicon_id, source, entries, imported_at, last_error,
	last_check, last_status, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanSource(row scanner) (Source, error) {
	var src Source
	err := row.Scan(&src.LexiconID, &src.Source, &src.Entries, &src.ImportedAt,
		&src.LastError, &src.LastCheck, &src.LastStatus, &src.UpdatedAt)
	return src, err
}

// Get returns the row for a lexicon.
func (s *SourceDB) Get(lexiconID string) (*Source, error) {
	row := s.db.QueryRow(`SELECT `+sourceColumns+` FROM lexicon_imports WHERE lexicon_id = ?`, lexiconID)
	src, err := scanSource(row)
	if err != nil {
		return nil, fmt.Errorf("get source %s: %w", lexiconID, err)
	}
	return &src, nil
}

// ListSources returns all rows ordered by lexicon_id.
func (s *SourceDB) ListSources() ([]Source, error) {
	rows, err := s.db.Query(`SELECT ` + sourceColumns + ` FROM lexicon_imports ORDER BY lexicon_id`)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	defer rows.Close()

	var sources []Source
	for rows.Next() {
		src, err := scanSource(rows)
		if err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		sources = append(sources, src)
	}
	return sources, rows.Err()
}
