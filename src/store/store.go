// Package store persists entity records as one JSON file per id next to an
// index.json aggregate. Every write rewrites the whole file.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BielosX/wombat/poke-data/src/pokemon"
)

const IndexFileName = "index.json"

var (
	ErrNotExist    = errors.New("record does not exist")
	ErrNotAnObject = errors.New("record is not a JSON object")
)

// Document is a record file decoded one level deep. Keys no step touches
// are written back byte for byte.
type Document map[string]json.RawMessage

// Decode unmarshals key into v and reports whether the key was present
// and not null.
func (d Document) Decode(key string, v any) (bool, error) {
	raw, ok := d[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("field %s: %w", key, err)
	}
	return true, nil
}

// Set replaces key with the encoding of v.
func (d Document) Set(key string, v any) error {
	raw, err := encode(v, "")
	if err != nil {
		return err
	}
	d[key] = bytes.TrimSuffix(raw, []byte("\n"))
	return nil
}

type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) RecordPath(id int) string {
	return filepath.Join(s.dir, fmt.Sprintf("%d.json", id))
}

func (s *Store) IndexPath() string {
	return filepath.Join(s.dir, IndexFileName)
}

func (s *Store) Load(id int) (*pokemon.Record, error) {
	var record pokemon.Record
	if err := readJSON(s.RecordPath(id), &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Store) Save(record *pokemon.Record) error {
	return writeJSON(s.RecordPath(record.Id), record)
}

// LoadDocument reads record id without mapping it onto Record, so fields
// the program does not model survive a later SaveDocument.
func (s *Store) LoadDocument(id int) (Document, error) {
	path := s.RecordPath(id)
	var doc Document
	if err := readJSON(path, &doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotAnObject)
		}
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrNotAnObject)
	}
	return doc, nil
}

func (s *Store) SaveDocument(id int, doc Document) error {
	return writeJSON(s.RecordPath(id), doc)
}

// IDs lists the ids of every stored record in ascending order.
func (s *Store) IDs() ([]int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("data directory %s: %w", s.dir, ErrNotExist)
		}
		return nil, err
	}
	var ids []int
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == IndexFileName || !strings.HasSuffix(name, ".json") {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSuffix(name, ".json"))
		if err != nil || id < 0 {
			continue
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

// LoadIndex returns the stored index, or an empty one if none exists yet.
func (s *Store) LoadIndex() ([]pokemon.IndexEntry, error) {
	var entries []pokemon.IndexEntry
	err := readJSON(s.IndexPath(), &entries)
	if errors.Is(err, ErrNotExist) {
		return []pokemon.IndexEntry{}, nil
	}
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Store) SaveIndex(entries []pokemon.IndexEntry) error {
	return writeJSON(s.IndexPath(), entries)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, ErrNotExist)
		}
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("reading JSON file %s: %w", path, err)
	}
	return nil
}

func encode(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", indent)
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(path string, v any) error {
	data, err := encode(v, "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
