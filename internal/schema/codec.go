package schema

import (
	"strconv"

	"github.com/Hungchenyu0926/EEGReasearch/pkg/types"
)

// Encode flattens a record into one row of cells matching the canonical
// column order. The completion invariant is applied here as well as at
// the form layer: an incomplete training run encodes empty date and
// duration cells no matter what the in-memory entry holds, and training
// completion marks encode as Yes-or-empty (not Yes/No), matching the
// layout already stored in existing documents. Checkbox fields outside
// the training block encode as Yes/No.
func Encode(r types.CaseRecord) []string {
	row := make([]string, 0, ColumnCount())
	row = append(row,
		r.Name,
		r.DateOfBirth,
		r.Gender,
		r.Group,
		strconv.Itoa(r.EducationYears),
		r.Occupation,
		r.Phone,
		r.Location,
		r.PreTestDate,
		encodeMMSE(r.PreTestMMSE),
		encodeBool(r.PreTestQOLDone),
		encodeBool(r.PreTestCPT3Done),
	)
	for _, session := range r.Training {
		row = appendEntry(row, session.Attention)
		row = appendEntry(row, session.Relaxation)
	}
	postDate := ""
	if r.PostTestDone {
		postDate = r.PostTestDate
	}
	return append(row,
		encodeBool(r.PostTestDone),
		postDate,
		encodeMMSE(r.PostTestMMSE),
		encodeBool(r.PostTestQOLDone),
		encodeBool(r.PostTestCPT3Done),
		r.SubmittedAt,
	)
}

// appendEntry encodes one training run as its three cells.
func appendEntry(row []string, e types.TrainingEntry) []string {
	if !e.Completed {
		return append(row, "", "", "")
	}
	return append(row, Yes, e.Date, e.Duration)
}

func encodeBool(b bool) string {
	if b {
		return Yes
	}
	return No
}

// encodeMMSE writes the unavailable sentinel as an empty cell; it exists
// only on the read side and must never reach the document as a number.
func encodeMMSE(score int) string {
	if score == types.MMSEUnavailable {
		return ""
	}
	return strconv.Itoa(score)
}

// Decode rebuilds a record from one row of cells, keyed by the document's
// own header. Decoding is tolerant: a column missing from the header (or
// a row too short to reach it) yields the field's zero value, and a
// non-empty numeric cell that fails to parse yields the unavailable
// sentinel rather than an error, so aggregates stay computable over
// partially dirty data.
func Decode(header, row []string) types.CaseRecord {
	idx := ColumnIndex(header)
	cell := func(name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	r := types.CaseRecord{
		Name:            cell(ColName),
		DateOfBirth:     cell(ColDateOfBirth),
		Gender:          cell(ColGender),
		Group:           cell(ColGroup),
		EducationYears:  decodeCount(cell(ColEducationYears)),
		Occupation:      cell(ColOccupation),
		Phone:           cell(ColPhone),
		Location:        cell(ColLocation),
		PreTestDate:     cell(ColPreTestDate),
		PreTestMMSE:     decodeMMSE(cell(ColPreTestMMSE)),
		PreTestQOLDone:  cell(ColPreTestQOL) == Yes,
		PreTestCPT3Done: cell(ColPreTestCPT3) == Yes,

		PostTestDone:     cell(ColPostTestDone) == Yes,
		PostTestDate:     cell(ColPostTestDate),
		PostTestMMSE:     decodeMMSE(cell(ColPostTestMMSE)),
		PostTestQOLDone:  cell(ColPostTestQOL) == Yes,
		PostTestCPT3Done: cell(ColPostTestCPT3) == Yes,

		SubmittedAt: cell(ColSubmittedAt),
	}

	for slot := 1; slot <= trainingSlots; slot++ {
		r.Training[slot-1] = types.TrainingSession{
			Attention: decodeEntry(
				cell(AttentionCompletedCol(slot)),
				cell(AttentionDateCol(slot)),
				cell(AttentionDurationCol(slot)),
			),
			Relaxation: decodeEntry(
				cell(RelaxationCompletedCol(slot)),
				cell(RelaxationDateCol(slot)),
				cell(RelaxationDurationCol(slot)),
			),
		}
	}

	return r
}

// decodeEntry reads one training run. Exactly the Yes token marks a run
// completed; anything else, including the No token from a hand-edited
// cell, reads as not completed with the detail cells dropped.
func decodeEntry(completed, date, duration string) types.TrainingEntry {
	if completed != Yes {
		return types.TrainingEntry{}
	}
	return types.TrainingEntry{Completed: true, Date: date, Duration: duration}
}

// decodeMMSE parses a score cell. Empty reads as zero; a non-empty cell
// that is not a number reads as the unavailable sentinel.
func decodeMMSE(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return types.MMSEUnavailable
	}
	return n
}

// decodeCount parses a non-negative count cell, defaulting to zero on any
// parse failure.
func decodeCount(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
