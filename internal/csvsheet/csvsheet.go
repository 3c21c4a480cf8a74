// Package csvsheet implements the Gateway over a single CSV document on
// local disk. The file is the whole store: ReadAll parses it in full,
// Append writes one row at the end, and ReplaceAll atomically rewrites it
// using the temp-file, fsync, rename pattern so a crash mid-write never
// leaves a half-document behind.
package csvsheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Hungchenyu0926/EEGReasearch/internal/schema"
	"github.com/Hungchenyu0926/EEGReasearch/pkg/types"
)

// Compile-time interface check.
var _ types.Gateway = (*Store)(nil)

// Store is a CSV-backed Gateway.
type Store struct {
	mu       sync.Mutex
	attached bool
	path     string
}

// New creates a detached Store; call Attach with a Config to initialize.
func New() *Store {
	return &Store{}
}

// Attach resolves the document path under the configured data directory,
// creating the directory and an empty document (header only) on first
// use. Returns ErrAlreadyAttached if called while attached.
func (s *Store) Attach(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	path := filepath.Join(dataDir, config.GetSheetName()+".csv")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := writeDocument(path, schema.Header(), nil); err != nil {
			return fmt.Errorf("seed document: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("stat document: %w", err)
	}

	s.path = path
	s.attached = true
	return nil
}

// Detach releases the store. Idempotent.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attached = false
	return nil
}

// Path returns the document location, for confirmations. Empty while
// detached.
func (s *Store) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// ReadAll parses the entire document and returns the header row plus
// every data row in stored order.
func (s *Store) ReadAll() ([]string, [][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil, nil, types.ErrStoreDetached
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // rows from older generations may be narrower
	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse document: %w", err)
	}
	if len(all) == 0 {
		return schema.Header(), nil, nil
	}
	return all[0], all[1:], nil
}

// Append adds exactly one row at the end of the document.
func (s *Store) Append(row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return types.ErrStoreDetached
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(row); err != nil {
		f.Close()
		return fmt.Errorf("append row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("append row: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync document: %w", err)
	}
	return f.Close()
}

// ReplaceAll atomically rewrites the document so its content equals
// exactly header followed by rows.
func (s *Store) ReplaceAll(header []string, rows [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return types.ErrStoreDetached
	}
	return writeDocument(s.path, header, rows)
}

// writeDocument writes the full document via a temp file in the same
// directory, fsyncs it, and renames it over the target.
func writeDocument(path string, header []string, rows [][]string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".sheet-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flush document: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
