package rating

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// fileSchema describes the shape of the ratings file: an array of
// records, each with a non-empty name, a 0–10 score and a timestamp.
// Precision is re-checked in Go after decoding; JSON Schema's
// multipleOf is unreliable for decimal fractions.
const fileSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["wine_name", "score", "created_at"],
    "properties": {
      "id": {"type": "string"},
      "wine_name": {"type": "string", "minLength": 1},
      "score": {"type": "number", "minimum": 0, "maximum": 10},
      "created_at": {"type": "string"}
    }
  }
}`

// CorruptError means the ratings file exists but cannot be trusted.
// The store never repairs or overwrites such a file; the caller
// decides whether to back it up and start over.
type CorruptError struct {
	Path  string
	Cause error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("ratings file %s is corrupt: %v", e.Path, e.Cause)
}

func (e *CorruptError) Unwrap() error { return e.Cause }

// Store owns the ratings file. All file I/O goes through it; every
// save rewrites the full collection so the file is always a complete
// snapshot.
type Store struct {
	path   string
	schema *gojsonschema.Schema
}

// NewStore creates a store over the given file path. The file does not
// need to exist yet.
func NewStore(path string) (*Store, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(fileSchema))
	if err != nil {
		return nil, fmt.Errorf("compile ratings schema: %w", err)
	}
	return &Store{path: path, schema: schema}, nil
}

// Path returns the location of the ratings file.
func (s *Store) Path() string { return s.path }

// Load reads the ratings file. A missing file is a first run and
// yields an empty collection; anything unreadable or malformed yields
// a CorruptError with the underlying cause.
func (s *Store) Load() (Collection, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Collection{}, nil
		}
		return nil, &CorruptError{Path: s.path, Cause: err}
	}

	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		// Not even valid JSON.
		return nil, &CorruptError{Path: s.path, Cause: err}
	}
	if !result.Valid() {
		var descs []string
		for _, desc := range result.Errors() {
			descs = append(descs, desc.String())
		}
		return nil, &CorruptError{
			Path:  s.path,
			Cause: fmt.Errorf("schema violation: %s", strings.Join(descs, "; ")),
		}
	}

	var collection Collection
	if err := json.Unmarshal(data, &collection); err != nil {
		return nil, &CorruptError{Path: s.path, Cause: err}
	}
	for i, r := range collection {
		if err := r.Validate(); err != nil {
			return nil, &CorruptError{
				Path:  s.path,
				Cause: fmt.Errorf("record %d: %w", i+1, err),
			}
		}
	}
	return collection, nil
}

// Save atomically replaces the ratings file with the full collection.
// It writes to a temp file in the same directory and renames it over
// the target, so a crash mid-write leaves the old snapshot intact.
// The temp file is removed on every failure path.
func (s *Store) Save(collection Collection) error {
	data, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal ratings: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".ratings-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write ratings: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync ratings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	// CreateTemp makes the file 0600; match the usual data-file mode.
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace ratings file: %w", err)
	}
	return nil
}

// Append validates the rating, appends it and persists the new
// collection. The validation duplicates the service's checks on
// purpose: the store enforces its own invariant regardless of caller
// discipline.
func (s *Store) Append(collection Collection, r Rating) (Collection, error) {
	if err := r.Validate(); err != nil {
		return nil, &ValidationError{Cause: err}
	}
	next := make(Collection, 0, len(collection)+1)
	next = append(next, collection...)
	next = append(next, r)
	if err := s.Save(next); err != nil {
		return nil, err
	}
	return next, nil
}

// RemoveAt removes the rating at the 1-based index and persists the
// result. Survivors keep their relative order. Nothing is written if
// the index is out of range.
func (s *Store) RemoveAt(collection Collection, index int) (Collection, Rating, error) {
	if index < 1 || index > len(collection) {
		return nil, Rating{}, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(collection))
	}
	removed := collection[index-1]
	next := make(Collection, 0, len(collection)-1)
	next = append(next, collection[:index-1]...)
	next = append(next, collection[index:]...)
	if err := s.Save(next); err != nil {
		return nil, Rating{}, err
	}
	return next, removed, nil
}

// List returns a read-only copy of the collection in stored order.
func (s *Store) List(collection Collection) []Rating {
	out := make([]Rating, len(collection))
	copy(out, collection)
	return out
}
