// Package jsonstore persists lists as one JSON file per list in a directory.
// No locking; fine for a local single-user CLI.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/model"
)

const fileExt = ".json"

// Store reads and writes list files under a single directory.
type Store struct {
	dir string
	log *log.Logger
}

// Entry is a list file that decoded and validated cleanly.
type Entry struct {
	File string
	List *model.List
}

// New returns a store rooted at dir, creating the directory if needed.
// An empty dir means the process working directory.
func New(dir string, logger *log.Logger) (*Store, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getwd: %w", err)
		}
		dir = wd
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if _, err := compiledSchema(); err != nil {
		return nil, err
	}
	return &Store{dir: dir, log: logger}, nil
}

// Dir returns the directory the store reads and writes.
func (s *Store) Dir() string { return s.dir }

// FileName derives the file name of a list: spaces become underscores and
// the .json extension is appended. Path separators are flattened too so a
// name can never escape the store directory.
func FileName(name string) string {
	r := strings.NewReplacer(" ", "_", "/", "_", `\`, "_")
	return r.Replace(strings.TrimSpace(name)) + fileExt
}

// Resolve accepts either a file name ("Groceries.json") or a list name
// ("Groceries") and returns the file name.
func Resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	if strings.EqualFold(filepath.Ext(ref), fileExt) {
		return filepath.Base(ref)
	}
	return FileName(ref)
}

func (s *Store) path(file string) string {
	return filepath.Join(s.dir, filepath.Base(file))
}

// Save writes l to the file named after it, bumping LastModified first.
func (s *Store) Save(l *model.List) error {
	return s.SaveTo(FileName(l.Name), l)
}

// SaveTo writes l to file, which may differ from FileName(l.Name) when the
// list was loaded from a renamed or hand-edited file.
func (s *Store) SaveTo(file string, l *model.List) error {
	file = Resolve(file)
	l.Reconcile()
	l.Touch()
	b, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	b = append(b, '\n')
	if err := os.WriteFile(s.path(file), b, 0o644); err != nil {
		return fmt.Errorf("write list file: %w", err)
	}
	s.log.Debug("saved list", "file", file, "items", len(l.Items))
	return nil
}

// Create saves a new list, refusing to overwrite an existing file.
func (s *Store) Create(l *model.List) error {
	file := FileName(l.Name)
	if _, err := os.Stat(s.path(file)); err == nil {
		return fmt.Errorf("%s: %w", file, ErrListExists)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat list file: %w", err)
	}
	return s.Save(l)
}

// Load reads and validates a list file. A missing file wraps both
// ErrListNotFound and os.ErrNotExist; a corrupt one is a *ParseError.
func (s *Store) Load(file string) (*model.List, error) {
	file = Resolve(file)
	b, err := os.ReadFile(s.path(file))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w: %w", file, ErrListNotFound, err)
		}
		return nil, fmt.Errorf("read list file: %w", err)
	}
	if err := validate(b); err != nil {
		return nil, &ParseError{File: file, Err: err}
	}
	var l model.List
	if err := json.Unmarshal(b, &l); err != nil {
		return nil, &ParseError{File: file, Err: fmt.Errorf("json unmarshal: %w", err)}
	}
	if err := checkIDs(&l); err != nil {
		return nil, &ParseError{File: file, Err: err}
	}
	l.Reconcile()
	s.log.Debug("loaded list", "file", file, "items", len(l.Items))
	return &l, nil
}

// Lists loads every valid list file in the directory, sorted by file name.
// Files that fail to load are logged and skipped.
func (s *Store) Lists() ([]Entry, error) {
	des, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}
	var out []Entry
	for _, de := range des {
		if de.IsDir() || !strings.EqualFold(filepath.Ext(de.Name()), fileExt) {
			continue
		}
		l, err := s.Load(de.Name())
		if err != nil {
			s.log.Warn("skipping list file", "file", de.Name(), "err", err)
			continue
		}
		out = append(out, Entry{File: de.Name(), List: l})
	}
	return out, nil
}

// ListAvailable returns the file names of every valid list.
func (s *Store) ListAvailable() ([]string, error) {
	entries, err := s.Lists()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.File)
	}
	return names, nil
}

// Delete removes a list file.
func (s *Store) Delete(file string) error {
	file = Resolve(file)
	if err := os.Remove(s.path(file)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", file, ErrListNotFound)
		}
		return fmt.Errorf("remove list file: %w", err)
	}
	s.log.Debug("deleted list", "file", file)
	return nil
}
