package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrCorruptCatalog is returned by Load when the catalog file exists but
// cannot be parsed as a JSON array. The store resets to empty in that
// case and remains usable; the caller decides how loudly to complain.
var ErrCorruptCatalog = errors.New("catalog file is not a valid JSON array")

// Store owns the in-memory hutbe catalog during a run. It is not safe
// for concurrent use; the harvester is the only writer by design, and
// running two harvests against the same catalog file is unsupported.
type Store struct {
	path      string
	entries   []Entry
	knownIDs  map[string]struct{}
	knownURLs map[string]struct{}
	added     int
}

// NewStore creates an empty store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{
		path:      path,
		knownIDs:  make(map[string]struct{}),
		knownURLs: make(map[string]struct{}),
	}
}

// Load reads the catalog from disk and rebuilds the dedup index. A
// missing file yields an empty catalog. A corrupt file also yields an
// empty catalog and reports ErrCorruptCatalog; the run proceeds either
// way, since ids are URL-derived and dedup holds again on the next load.
func (s *Store) Load() error {
	s.entries = nil
	s.knownIDs = make(map[string]struct{})
	s.knownURLs = make(map[string]struct{})
	s.added = 0

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var entries []Entry
	if unmarshalErr := json.Unmarshal(data, &entries); unmarshalErr != nil {
		return fmt.Errorf("%w: %s", ErrCorruptCatalog, s.path)
	}

	s.entries = entries
	for _, e := range entries {
		s.knownIDs[e.ID] = struct{}{}
		s.knownURLs[e.SourcePDFURL] = struct{}{}
	}

	return nil
}

// Known reports whether an id or source URL is already catalogued. The
// URL check is redundant while ids stay URL-derived; it guards against
// id-derivation changes and hand-edited catalogs.
func (s *Store) Known(id, sourceURL string) bool {
	if _, ok := s.knownIDs[id]; ok {
		return true
	}
	_, ok := s.knownURLs[sourceURL]
	return ok
}

// Prepend inserts a newly discovered entry at the front of the catalog
// and registers it in the dedup index, keeping the sequence roughly
// newest-first.
func (s *Store) Prepend(e Entry) {
	s.entries = append([]Entry{e}, s.entries...)
	s.knownIDs[e.ID] = struct{}{}
	s.knownURLs[e.SourcePDFURL] = struct{}{}
	s.added++
}

// Entries returns the catalog sequence, newest first.
func (s *Store) Entries() []Entry {
	return s.entries
}

// Len returns the number of catalogued entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Added returns how many entries this run has prepended since Load.
func (s *Store) Added() int {
	return s.added
}

// Save writes the catalog back to its file as indented UTF-8 JSON. The
// write is a direct overwrite, not an atomic rename; an interrupted save
// surfaces as a corrupt catalog on the next run.
func (s *Store) Save() error {
	return writeJSON(s.path, s.entries)
}

// WritePrayers overwrites the prayer catalog file with the given
// entries. Unlike the hutbe catalog it is regenerated wholesale on
// every run.
func WritePrayers(path string, entries []PrayerEntry) error {
	return writeJSON(path, entries)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if encodeErr := enc.Encode(v); encodeErr != nil {
		return fmt.Errorf("encode %s: %w", path, encodeErr)
	}

	return nil
}
