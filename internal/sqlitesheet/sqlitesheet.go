// Package sqlitesheet implements the Gateway over a local SQLite file.
// The database holds the document as one header row and an ordered run
// of data rows, each a JSON array of cells; the exposed surface is still
// only read-all, append, and replace-all, so higher layers cannot come
// to depend on update primitives the real backing service lacks.
package sqlitesheet

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/Hungchenyu0926/EEGReasearch/internal/schema"
	"github.com/Hungchenyu0926/EEGReasearch/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// Compile-time interface check.
var _ types.Gateway = (*Store)(nil)

// Store is a SQLite-backed Gateway.
type Store struct {
	mu       sync.Mutex
	attached bool
	db       *sql.DB
	path     string
}

// New creates a detached Store; call Attach with a Config to initialize.
func New() *Store {
	return &Store{}
}

// Attach opens (or creates) the database under the configured data
// directory, applies the schema, and seeds the canonical header if the
// document is new. Returns ErrAlreadyAttached if called while attached.
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

	path := filepath.Join(dataDir, config.GetSheetName()+".db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return fmt.Errorf("apply schema: %w", err)
	}
	if err := seedHeader(db); err != nil {
		db.Close()
		return fmt.Errorf("seed header: %w", err)
	}

	s.db = db
	s.path = path
	s.attached = true
	return nil
}

// seedHeader writes the canonical header when the document has none yet.
func seedHeader(db *sql.DB) error {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM sheet_header").Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	cells, err := json.Marshal(schema.Header())
	if err != nil {
		return err
	}
	_, err = db.Exec("INSERT INTO sheet_header (id, cells) VALUES (1, ?)", string(cells))
	return err
}

// Detach closes the database. Idempotent.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil
	}
	s.attached = false
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

// Path returns the database location, for confirmations. Empty while
// detached.
func (s *Store) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// ReadAll fetches the header and every data row in stored order.
func (s *Store) ReadAll() ([]string, [][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil, nil, types.ErrStoreDetached
	}

	var headerJSON string
	if err := s.db.QueryRow("SELECT cells FROM sheet_header WHERE id = 1").Scan(&headerJSON); err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	var header []string
	if err := json.Unmarshal([]byte(headerJSON), &header); err != nil {
		return nil, nil, fmt.Errorf("decode header: %w", err)
	}

	rows, err := s.db.Query("SELECT cells FROM sheet_rows ORDER BY pos")
	if err != nil {
		return nil, nil, fmt.Errorf("read rows: %w", err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		var cellsJSON string
		if err := rows.Scan(&cellsJSON); err != nil {
			return nil, nil, fmt.Errorf("scan row: %w", err)
		}
		var cells []string
		if err := json.Unmarshal([]byte(cellsJSON), &cells); err != nil {
			return nil, nil, fmt.Errorf("decode row: %w", err)
		}
		out = append(out, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate rows: %w", err)
	}
	return header, out, nil
}

// Append adds exactly one row after the current last position.
func (s *Store) Append(row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return types.ErrStoreDetached
	}

	cells, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("encode row: %w", err)
	}
	_, err = s.db.Exec(
		"INSERT INTO sheet_rows (pos, cells) SELECT COALESCE(MAX(pos), -1) + 1, ? FROM sheet_rows",
		string(cells),
	)
	if err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	return nil
}

// ReplaceAll rewrites the document in one transaction so its content
// equals exactly header followed by rows.
func (s *Store) ReplaceAll(header []string, rows [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return types.ErrStoreDetached
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("encode header: %w", err)
	}
	if _, err := tx.Exec("INSERT OR REPLACE INTO sheet_header (id, cells) VALUES (1, ?)", string(headerJSON)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM sheet_rows"); err != nil {
		return fmt.Errorf("clear rows: %w", err)
	}
	for pos, row := range rows {
		cells, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("encode row %d: %w", pos, err)
		}
		if _, err := tx.Exec("INSERT INTO sheet_rows (pos, cells) VALUES (?, ?)", pos, string(cells)); err != nil {
			return fmt.Errorf("write row %d: %w", pos, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}
