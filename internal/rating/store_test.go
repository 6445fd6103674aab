package rating

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := NewStore(filepath.Join(dir, "ratings.json"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return s
}

func sample(name string, score float64) Rating {
	return Rating{
		ID:        "test-" + name,
		Wine:      name,
		Score:     score,
		CreatedAt: time.Date(2025, 6, 1, 19, 30, 0, 0, time.UTC),
	}
}

func TestStore_LoadMissingFile(t *testing.T) {
	s := newTestStore(t)

	col, err := s.Load()
	if err != nil {
		t.Fatalf("Load of missing file should not fail: %v", err)
	}
	if len(col) != 0 {
		t.Errorf("expected empty collection, got %d records", len(col))
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	col, err := s.Append(Collection{}, sample("Barolo", 8.5))
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if _, err = s.Append(col, sample("Chianti", 7.0)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 records, got %d", len(loaded))
	}
	if loaded[0].Wine != "Barolo" || loaded[1].Wine != "Chianti" {
		t.Errorf("insertion order not preserved: %q, %q", loaded[0].Wine, loaded[1].Wine)
	}

	// save(load()) twice must produce byte-identical files
	before, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(loaded); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	after, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("persistence is not idempotent: file content changed on re-save")
	}
}

func TestStore_LoadCorrupt(t *testing.T) {
	cases := map[string]string{
		"not json":       `{{{`,
		"wrong shape":    `{"wine_name": "Barolo"}`,
		"score too high": `[{"wine_name": "Barolo", "score": 11, "created_at": "2025-06-01T19:30:00Z"}]`,
		"missing name":   `[{"score": 5, "created_at": "2025-06-01T19:30:00Z"}]`,
		"empty name":     `[{"wine_name": "", "score": 5, "created_at": "2025-06-01T19:30:00Z"}]`,
		"truncated":      `[{"wine_name": "Barolo", "sco`,
		"excess precision": `[{"wine_name": "Barolo", "score": 7.55, "created_at": "2025-06-01T19:30:00Z"}]`,
	}

	for label, content := range cases {
		s := newTestStore(t)
		if err := os.WriteFile(s.Path(), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		_, err := s.Load()
		var corrupt *CorruptError
		if !errors.As(err, &corrupt) {
			t.Errorf("%s: Load = %v, want CorruptError", label, err)
			continue
		}
		if corrupt.Path != s.Path() {
			t.Errorf("%s: CorruptError.Path = %q, want %q", label, corrupt.Path, s.Path())
		}

		// The corrupt file must be left exactly as it was.
		data, err := os.ReadFile(s.Path())
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != content {
			t.Errorf("%s: corrupt file was modified", label)
		}
	}
}

func TestStore_AppendRejectsInvalid(t *testing.T) {
	s := newTestStore(t)

	bad := Rating{Wine: "Merlot", Score: 10.5, CreatedAt: time.Now()}
	_, err := s.Append(Collection{}, bad)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Append = %v, want ValidationError", err)
	}

	// Nothing persisted
	if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
		t.Error("invalid append should not create the file")
	}
}

func TestStore_RemoveAt(t *testing.T) {
	s := newTestStore(t)

	col := Collection{}
	for _, name := range []string{"Barolo", "Chianti", "Rioja"} {
		var err error
		col, err = s.Append(col, sample(name, 7.0))
		if err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	next, removed, err := s.RemoveAt(col, 2)
	if err != nil {
		t.Fatalf("RemoveAt failed: %v", err)
	}
	if removed.Wine != "Chianti" {
		t.Errorf("removed %q, want Chianti", removed.Wine)
	}
	if len(next) != 2 || next[0].Wine != "Barolo" || next[1].Wine != "Rioja" {
		t.Errorf("survivors out of order: %+v", next)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Errorf("removal not persisted: %d records on disk", len(loaded))
	}
}

func TestStore_RemoveAtOutOfRange(t *testing.T) {
	s := newTestStore(t)

	col, err := s.Append(Collection{}, sample("Barolo", 8.5))
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	before, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}

	for _, idx := range []int{0, -1, 2, 99} {
		if _, _, err := s.RemoveAt(col, idx); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("RemoveAt(%d) = %v, want ErrIndexOutOfRange", idx, err)
		}
	}

	after, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("out-of-range removal modified the file")
	}
}

func TestStore_SaveLeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save(Collection{sample("Barolo", 8.5)}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".ratings-") {
			t.Errorf("stray temp file left behind: %s", e.Name())
		}
	}
}

func TestStore_ListCopies(t *testing.T) {
	s := newTestStore(t)

	col := Collection{sample("Barolo", 8.5)}
	out := s.List(col)
	out[0].Wine = "mutated"
	if col[0].Wine != "Barolo" {
		t.Error("List should return a copy, not a view")
	}
}
