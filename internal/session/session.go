// Package session drives one load → filter → edit → write-back cycle
// against the store. A session's snapshot from ReadAll is the only valid
// basis for its eventual ReplaceAll; row identifiers are positions within
// that snapshot and mean nothing outside the session. Two overlapping
// sessions race as last-writer-wins, an accepted limitation of the
// backing store.
package session

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Hungchenyu0926/EEGReasearch/internal/filter"
	"github.com/Hungchenyu0926/EEGReasearch/internal/reconcile"
	"github.com/Hungchenyu0926/EEGReasearch/internal/schema"
	"github.com/Hungchenyu0926/EEGReasearch/pkg/types"
)

// Session is one user interaction with the authoritative row set. It is
// not safe for concurrent use; each interaction runs to completion before
// the next begins.
type Session struct {
	id      string
	gateway types.Gateway
	header  []string
	rows    [][]string
	columns map[string]int

	query   string
	view    []int
	pending map[int][]string // staged fixed-mode edits, keyed by identifier

	committed bool
}

// Begin reads the entire document and opens an edit session over it. The
// initial view is the full set (empty query).
func Begin(gw types.Gateway) (*Session, error) {
	header, rows, err := gw.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	return &Session{
		id:      id.String(),
		gateway: gw,
		header:  header,
		rows:    rows,
		columns: schema.ColumnIndex(header),
		view:    filter.Apply(rows, ""),
		pending: make(map[int][]string),
	}, nil
}

// ID returns the opaque session identifier, used in confirmations.
func (s *Session) ID() string { return s.id }

// Header returns the document header as loaded.
func (s *Session) Header() []string { return s.header }

// Rows returns the authoritative snapshot as loaded.
func (s *Session) Rows() [][]string { return s.rows }

// RowCount returns the size of the authoritative snapshot.
func (s *Session) RowCount() int { return len(s.rows) }

// Query returns the active search query.
func (s *Session) Query() string { return s.query }

// Filtered reports whether a non-empty query narrows the view.
func (s *Session) Filtered() bool { return s.query != "" }

// Filter narrows the view to the rows matching query and drops any
// staged edits, since their identifiers belonged to the previous view.
// An empty query restores the full view.
func (s *Session) Filter(query string) []int {
	s.query = query
	s.view = filter.Apply(s.rows, query)
	s.pending = make(map[int][]string)
	return s.View()
}

// View returns the identifiers of the current view, in stored order.
func (s *Session) View() []int {
	out := make([]int, len(s.view))
	copy(out, s.view)
	return out
}

// Row returns the staged row for id when one exists, otherwise the row
// as loaded. Returns ErrRowNotInView for identifiers outside the view.
func (s *Session) Row(id int) ([]string, error) {
	if !s.inView(id) {
		return nil, fmt.Errorf("%w: identifier %d", types.ErrRowNotInView, id)
	}
	if staged, ok := s.pending[id]; ok {
		return staged, nil
	}
	return s.rows[id], nil
}

// SetCell stages a fixed-mode edit: the named column of row id takes the
// given value. The row must be part of the current view and the column
// part of the loaded header. Nothing reaches the store until Commit.
func (s *Session) SetCell(id int, column, value string) error {
	if s.committed {
		return types.ErrSessionCommitted
	}
	if !s.inView(id) {
		return fmt.Errorf("%w: identifier %d", types.ErrRowNotInView, id)
	}
	col, ok := s.columns[column]
	if !ok {
		return fmt.Errorf("%w: %q", types.ErrUnknownColumn, column)
	}

	staged, ok := s.pending[id]
	if !ok {
		staged = copyRow(s.rows[id])
		// Pad rows from older, narrower document generations.
		for len(staged) < len(s.header) {
			staged = append(staged, "")
		}
		s.pending[id] = staged
	}
	staged[col] = value
	return nil
}

// Dirty reports whether any edits are staged.
func (s *Session) Dirty() bool { return len(s.pending) > 0 }

// Commit writes staged edits back in fixed-cardinality mode. The edited
// subset is the full current view (staged rows where touched, loaded rows
// elsewhere), so its identifiers match the view by construction; the
// merge and the row-count gate still run before the destructive replace.
// Returns the document row count after the write.
func (s *Session) Commit() (int, error) {
	edited := make(map[int][]string, len(s.view))
	for _, id := range s.view {
		if staged, ok := s.pending[id]; ok {
			edited[id] = staged
		} else {
			edited[id] = s.rows[id]
		}
	}
	return s.CommitEdited(edited)
}

// CommitEdited writes an externally assembled edited subset back in
// fixed-cardinality mode. The subset must carry exactly the identifiers
// of the current view; a mismatch aborts with ErrViewCardinality and the
// store is left untouched. The row-count gate runs strictly before the
// destructive replace.
func (s *Session) CommitEdited(edited map[int][]string) (int, error) {
	if s.committed {
		return 0, types.ErrSessionCommitted
	}

	merged, err := reconcile.MergeFixed(s.rows, s.view, edited)
	if err != nil {
		return 0, err
	}
	if err := reconcile.CheckRowCount(len(s.rows), len(merged)); err != nil {
		return 0, err
	}

	if err := s.gateway.ReplaceAll(s.header, merged); err != nil {
		return 0, fmt.Errorf("replace store: %w", err)
	}
	s.committed = true
	return len(merged), nil
}

// CommitReplace writes rows as the new authoritative set, unrestricted:
// rows may be added or removed and the row-count gate does not apply.
// Because every row absent from the replacement is destroyed, this mode
// is refused unless the current view is the full, unfiltered set —
// otherwise filtered-out records would be silently lost.
func (s *Session) CommitReplace(rows [][]string) (int, error) {
	if s.committed {
		return 0, types.ErrSessionCommitted
	}
	if s.Filtered() {
		return 0, fmt.Errorf("%w: active query %q", types.ErrFilteredViewFull, s.query)
	}

	if err := s.gateway.ReplaceAll(s.header, rows); err != nil {
		return 0, fmt.Errorf("replace store: %w", err)
	}
	s.committed = true
	return len(rows), nil
}

func (s *Session) inView(id int) bool {
	for _, v := range s.view {
		if v == id {
			return true
		}
	}
	return false
}

func copyRow(row []string) []string {
	out := make([]string, len(row))
	copy(out, row)
	return out
}
