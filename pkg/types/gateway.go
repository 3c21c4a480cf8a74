package types

import "errors"

// Gateway abstracts the backing tabular store. The store offers exactly
// three primitives: a full read, a single-row append, and a destructive
// whole-document replace. There is no per-row update and no transaction;
// callers must reconstruct the complete row set before ReplaceAll, since
// any row omitted from it is permanently lost.
type Gateway interface {
	// Attach connects to the document described by config, creating it
	// with the canonical header if it does not exist yet. Returns
	// ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases store resources. Idempotent: multiple calls
	// succeed. After Detach, the three data operations return
	// ErrStoreDetached.
	Detach() error

	// ReadAll fetches the entire document: the header row and every
	// data row in stored order. A row's position in the returned slice
	// is its session-scoped identifier.
	ReadAll() (header []string, rows [][]string, err error)

	// Append adds exactly one row at the end of the document. Used only
	// for new-record creation, never for edits.
	Append(row []string) error

	// ReplaceAll rewrites the document so its content equals exactly
	// header followed by rows. No retry is attempted; a failure leaves
	// the previously committed state for the caller to re-read.
	ReplaceAll(header []string, rows [][]string) error
}

// Gateway lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Reconciliation errors. These guard the write-back path against the
// dominant failure mode: writing a filtered view back as if it were the
// whole document.
var (
	ErrViewCardinality  = errors.New("edited subset does not match the view it was derived from")
	ErrShrinkingWrite   = errors.New("write would shrink the authoritative row count")
	ErrFilteredViewFull = errors.New("unrestricted edit requires the full, unfiltered view")
	ErrUnknownColumn    = errors.New("unknown column name")
	ErrRowNotInView     = errors.New("row is not part of the current view")
	ErrSessionCommitted = errors.New("edit session already committed")
)
