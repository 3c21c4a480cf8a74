// Package form accumulates transient user input into one pending case
// record. Nothing touches the store until Submit; a validation failure
// leaves the store untouched and the form intact for correction.
package form

import (
	"fmt"
	"time"

	"github.com/Hungchenyu0926/EEGReasearch/internal/schema"
	"github.com/Hungchenyu0926/EEGReasearch/pkg/types"
)

// Form holds one pending record under construction.
type Form struct {
	Record types.CaseRecord

	// now is swapped in tests for a fixed clock.
	now func() time.Time
}

// New returns an empty form.
func New() *Form {
	return &Form{now: time.Now}
}

// SetTraining records one training slot on the pending record. slot is
// 1-based to match the printed forms.
func (f *Form) SetTraining(slot int, session types.TrainingSession) error {
	return f.Record.SetSession(slot, session)
}

// Validate checks the pending record without touching the store.
func (f *Form) Validate() error {
	return f.Record.Validate()
}

// Submit validates the pending record, stamps its submission time,
// normalizes it, and appends it to the store as one encoded row. The
// returned record is the normalized form of what was written. The form
// is not reusable after a successful submit; build a new one per case.
func (f *Form) Submit(gw types.Gateway) (types.CaseRecord, error) {
	if err := f.Record.Validate(); err != nil {
		return types.CaseRecord{}, err
	}

	f.Record.SubmittedAt = f.now().Format(schema.TimestampLayout)
	f.Record.Normalize()

	if err := gw.Append(schema.Encode(f.Record)); err != nil {
		return types.CaseRecord{}, fmt.Errorf("append record: %w", err)
	}
	return f.Record, nil
}
