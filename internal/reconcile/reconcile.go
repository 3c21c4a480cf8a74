// Package reconcile merges an edited subset of rows back into the
// authoritative full set. The backing store's only update primitive is a
// destructive whole-document replace, so the merge must reconstruct the
// complete row set: every row the user's filtered view excluded passes
// through untouched, and a guard blocks any write that would shrink the
// document while the view claimed a fixed shape.
package reconcile

import (
	"fmt"

	"github.com/Hungchenyu0926/EEGReasearch/pkg/types"
)

// MergeFixed merges edited rows into authoritative by identifier under
// fixed-cardinality rules: the edited subset must cover exactly the
// identifiers of the view it was derived from, no more and no fewer.
// Rows outside viewIDs are returned unmodified; rows inside are replaced
// wholesale by their edited version. A mismatch between edited and
// viewIDs is a logic error, reported as ErrViewCardinality and never
// retried.
func MergeFixed(authoritative [][]string, viewIDs []int, edited map[int][]string) ([][]string, error) {
	if len(edited) != len(viewIDs) {
		return nil, fmt.Errorf("%w: view has %d rows, edit has %d",
			types.ErrViewCardinality, len(viewIDs), len(edited))
	}
	inView := make(map[int]bool, len(viewIDs))
	for _, id := range viewIDs {
		if id < 0 || id >= len(authoritative) {
			return nil, fmt.Errorf("%w: identifier %d outside authoritative set",
				types.ErrViewCardinality, id)
		}
		inView[id] = true
	}
	for id := range edited {
		if !inView[id] {
			return nil, fmt.Errorf("%w: identifier %d not part of the view",
				types.ErrViewCardinality, id)
		}
	}

	merged := make([][]string, len(authoritative))
	for i, row := range authoritative {
		if replacement, ok := edited[i]; ok {
			merged[i] = replacement
		} else {
			merged[i] = row
		}
	}
	return merged, nil
}

// CheckRowCount is the pre-commit safety gate for fixed-cardinality
// writes: a merged set smaller than the set it was derived from means
// rows are about to be destroyed, so the write must abort before the
// store is touched. It is a coarse guard, not a consistency proof, but
// it deterministically blocks writing a filtered view back as if it were
// the whole document.
func CheckRowCount(previous, next int) error {
	if next < previous {
		return fmt.Errorf("%w: %d rows where %d were loaded",
			types.ErrShrinkingWrite, next, previous)
	}
	return nil
}
