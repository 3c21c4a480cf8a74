package types

import "errors"

// Gender values as they appear in stored cells.
const (
	GenderMale   = "男"
	GenderFemale = "女"
	GenderOther  = "其他"
)

// Study group values as they appear in stored cells.
const (
	GroupExperimental = "實驗組"
	GroupControl      = "控制組"
)

// TrainingSessionCount is the fixed number of training session slots per
// case. The stored layout depends on this never changing.
const TrainingSessionCount = 8

// MMSE score bounds.
const (
	MMSEMin = 0
	MMSEMax = 30
)

// MMSEUnavailable marks an MMSE cell whose stored value could not be
// parsed. Aggregations skip it; it is never written back as a number.
const MMSEUnavailable = -1

// validGenders is the set of recognized gender values.
var validGenders = map[string]bool{
	GenderMale:   true,
	GenderFemale: true,
	GenderOther:  true,
}

// validGroups is the set of recognized group values.
var validGroups = map[string]bool{
	GroupExperimental: true,
	GroupControl:      true,
}

// Record validation errors.
var (
	ErrNameRequired      = errors.New("name must not be empty")
	ErrInvalidGender     = errors.New("invalid gender value")
	ErrInvalidGroup      = errors.New("invalid group value")
	ErrMMSEOutOfRange    = errors.New("MMSE score out of range")
	ErrEducationNegative = errors.New("education years must not be negative")
	ErrSessionIndex      = errors.New("training session index out of range")
)

// TrainingEntry is one half of a training session slot: either the
// attention run or the relaxation run.
type TrainingEntry struct {
	Completed bool   // whether the run took place
	Date      string // YYYY-MM-DD, empty when not completed
	Duration  string // free text such as "30min", empty when not completed
}

// TrainingSession is one of the fixed ordinal training slots. Each slot
// holds an attention run and a relaxation run recorded in parallel.
type TrainingSession struct {
	Attention  TrainingEntry
	Relaxation TrainingEntry
}

// CaseRecord holds one research participant's full longitudinal data:
// demographics, pre-test scores, the fixed-length training log, and
// post-test scores.
type CaseRecord struct {
	Name           string // required, non-empty
	DateOfBirth    string // YYYY-MM-DD
	Gender         string // one of the Gender constants
	Group          string // one of the Group constants
	EducationYears int
	Occupation     string
	Phone          string
	Location       string

	PreTestDate     string // YYYY-MM-DD
	PreTestMMSE     int
	PreTestQOLDone  bool
	PreTestCPT3Done bool

	Training [TrainingSessionCount]TrainingSession

	PostTestDone     bool
	PostTestDate     string // empty unless PostTestDone
	PostTestMMSE     int
	PostTestQOLDone  bool
	PostTestCPT3Done bool

	SubmittedAt string // YYYY-MM-DD HH:MM:SS, set at creation, never edited
}

// Validate checks that the record is acceptable for submission. Name is
// the only required field; enums and numeric ranges are checked when set.
func (r *CaseRecord) Validate() error {
	if r.Name == "" {
		return ErrNameRequired
	}
	if r.Gender != "" && !validGenders[r.Gender] {
		return ErrInvalidGender
	}
	if r.Group != "" && !validGroups[r.Group] {
		return ErrInvalidGroup
	}
	if r.EducationYears < 0 {
		return ErrEducationNegative
	}
	if err := validMMSE(r.PreTestMMSE); err != nil {
		return err
	}
	return validMMSE(r.PostTestMMSE)
}

// validMMSE accepts scores within bounds plus the unavailable sentinel.
func validMMSE(score int) error {
	if score == MMSEUnavailable {
		return nil
	}
	if score < MMSEMin || score > MMSEMax {
		return ErrMMSEOutOfRange
	}
	return nil
}

// Normalize enforces the completion invariant: an incomplete training run
// carries no date or duration, and a case without a finished post-test
// carries no post-test date. Values entered while a checkbox was
// transiently ticked are dropped here so a later scan can trust the
// Completed field alone.
func (r *CaseRecord) Normalize() {
	for i := range r.Training {
		r.Training[i].Attention.clearIfIncomplete()
		r.Training[i].Relaxation.clearIfIncomplete()
	}
	if !r.PostTestDone {
		r.PostTestDate = ""
	}
}

func (e *TrainingEntry) clearIfIncomplete() {
	if !e.Completed {
		e.Date = ""
		e.Duration = ""
	}
}

// SetSession records one training slot. slot is 1-based to match the
// printed forms. Returns ErrSessionIndex when slot is out of range.
func (r *CaseRecord) SetSession(slot int, session TrainingSession) error {
	if slot < 1 || slot > TrainingSessionCount {
		return ErrSessionIndex
	}
	r.Training[slot-1] = session
	return nil
}
