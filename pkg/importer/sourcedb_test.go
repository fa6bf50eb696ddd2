package importer

import (
	"os"
	"path/filepath"
	"testing"
)

func tempSourceDB(t *testing.T) *SourceDB {
	t.Helper()
	dir := t.TempDir()
	sdb, err := OpenSourceDB(filepath.Join(dir, "sources.db"))
	if err != nil {
		t.Fatalf("OpenSourceDB: %v", err)
	}
	t.Cleanup(func() { sdb.Close() })
	return sdb
}

func TestOpenSourceDB_CreatesTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	sdb, err := OpenSourceDB(path)
	if err != nil {
		t.Fatalf("OpenSourceDB: %v", err)
	}
	defer sdb.Close()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("db file not created: %v", err)
	}

	sources, err := sdb.ListSources()
	if err != nil {
		t.Fatalf("ListSources on empty db: %v", err)
	}
	if len(sources) != 0 {
		t.Fatalf("expected 0 sources, got %d", len(sources))
	}
}

func TestRecordImportAndGet(t *testing.T) {
	sdb := tempSourceDB(t)

	if err := sdb.RecordImport("attic", "https://example.org/attic.csv", 42); err != nil {
		t.Fatalf("RecordImport: %v", err)
	}

	src, err := sdb.Get("attic")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if src.Source != "https://example.org/attic.csv" {
		t.Errorf("Source = %q", src.Source)
	}
	if src.Entries != 42 {
		t.Errorf("Entries = %d, want 42", src.Entries)
	}
	if src.ImportedAt == nil {
		t.Error("ImportedAt not set")
	}
	if src.LastError != nil {
		t.Errorf("LastError = %q, want nil", *src.LastError)
	}
	if !src.IsRemote() {
		t.Error("IsRemote = false for an https source")
	}
}

func TestRecordFailureKeepsCounts(t *testing.T) {
	sdb := tempSourceDB(t)

	if err := sdb.RecordImport("attic", "words.csv", 10); err != nil {
		t.Fatalf("RecordImport: %v", err)
	}
	if err := sdb.RecordFailure("attic", "words.csv", "boom"); err != nil {
		t.Fatalf("RecordFailure: %v", err)
	}

	src, err := sdb.Get("attic")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if src.Entries != 10 {
		t.Errorf("Entries = %d, want 10 kept from last import", src.Entries)
	}
	if src.LastError == nil || *src.LastError != "boom" {
		t.Errorf("LastError = %v, want boom", src.LastError)
	}
	if src.IsRemote() {
		t.Error("IsRemote = true for a local path")
	}

	// A later success clears the error.
	if err := sdb.RecordImport("attic", "words.csv", 12); err != nil {
		t.Fatalf("RecordImport: %v", err)
	}
	src, _ = sdb.Get("attic")
	if src.LastError != nil {
		t.Errorf("LastError = %q after success, want nil", *src.LastError)
	}
	if src.Entries != 12 {
		t.Errorf("Entries = %d, want 12", src.Entries)
	}
}

func TestRecordFailureFirstImport(t *testing.T) {
	sdb := tempSourceDB(t)

	if err := sdb.RecordFailure("new", "missing.csv", "open source: no such file"); err != nil {
		t.Fatalf("RecordFailure: %v", err)
	}
	src, err := sdb.Get("new")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if src.Entries != 0 || src.ImportedAt != nil {
		t.Errorf("got entries=%d imported_at=%v, want empty", src.Entries, src.ImportedAt)
	}
}

func TestGetUnknown(t *testing.T) {
	sdb := tempSourceDB(t)
	if _, err := sdb.Get("nope"); err == nil {
		t.Error("expected error for unknown lexicon")
	}
}

func TestListSourcesOrdered(t *testing.T) {
	sdb := tempSourceDB(t)
	for _, id := range []string{"koine", "attic", "homeric"} {
		if err := sdb.RecordImport(id, id+".csv", 1); err != nil {
			t.Fatalf("RecordImport(%s): %v", id, err)
		}
	}

	sources, err := sdb.ListSources()
	if err != nil {
		t.Fatalf("ListSources: %v", err)
	}
	want := []string{"attic", "homeric", "koine"}
	if len(sources) != len(want) {
		t.Fatalf("got %d sources, want %d", len(sources), len(want))
	}
	for i, src := range sources {
		if src.LexiconID != want[i] {
			t.Errorf("sources[%d] = %q, want %q", i, src.LexiconID, want[i])
		}
	}
}

func TestUpdateCheck(t *testing.T) {
	sdb := tempSourceDB(t)
	if err := sdb.RecordImport("attic", "https://example.org/a.csv", 1); err != nil {
		t.Fatalf("RecordImport: %v", err)
	}

	if err := sdb.UpdateCheck("attic", 404, "not found"); err != nil {
		t.Fatalf("UpdateCheck: %v", err)
	}
	src, _ := sdb.Get("attic")
	if src.LastStatus == nil || *src.LastStatus != 404 {
		t.Errorf("LastStatus = %v, want 404", src.LastStatus)
	}
	if src.LastCheck == nil {
		t.Error("LastCheck not set")
	}

	if err := sdb.UpdateCheck("attic", 200, ""); err != nil {
		t.Fatalf("UpdateCheck: %v", err)
	}
	src, _ = sdb.Get("attic")
	if src.LastError != nil {
		t.Errorf("LastError = %q after 200, want nil", *src.LastError)
	}
}
