// Package schema owns the stored sheet layout: the ordered column names,
// the cell token conventions, and the codec between CaseRecord and a flat
// row of cells. Column order is the single compatibility contract with
// every external consumer of the document, so it is defined exactly once,
// here, and consumed by both encode and decode.
package schema

import (
	"fmt"

	"github.com/Hungchenyu0926/EEGReasearch/pkg/types"
)

// trainingSlots aliases the fixed slot count so the header and the codec
// cannot disagree about it.
const trainingSlots = types.TrainingSessionCount

// Boolean cell tokens. The medium is untyped text, so booleans are stored
// as tokens rather than raw values.
const (
	Yes = "是"
	No  = "否"
)

// Cell timestamp layouts.
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

// Basic demographic and pre-test column names, in stored order.
const (
	ColName           = "個案姓名"
	ColDateOfBirth    = "出生年月日"
	ColGender         = "性別"
	ColGroup          = "分組"
	ColEducationYears = "教育年數"
	ColOccupation     = "職業經驗"
	ColPhone          = "連絡電話"
	ColLocation       = "據點位置"
	ColPreTestDate    = "前測時間"
	ColPreTestMMSE    = "前測MMSE"
	ColPreTestQOL     = "前測生活品質量表"
	ColPreTestCPT3    = "前測CPT3測驗"
)

// Post-test and bookkeeping column names, in stored order.
const (
	ColPostTestDone = "完成後測"
	ColPostTestDate = "後測日期"
	ColPostTestMMSE = "後測MMSE"
	ColPostTestQOL  = "後測生活品質"
	ColPostTestCPT3 = "後測CPT3"
	ColSubmittedAt  = "填寫時間"
)

// Training column name patterns. Each ordinal slot contributes six
// columns, attention first, interleaved per slot rather than grouped per
// run kind. The interleaving mirrors the paper form row layout and is
// preserved for compatibility with already-stored documents.
const (
	attentionPrefix  = "注意"
	relaxationPrefix = "放鬆"
	completedSuffix  = "-完成"
	dateSuffix       = "-日期"
	durationSuffix   = "-時間"
)

// AttentionCompletedCol returns the column name for slot's attention
// completion mark. slot is 1-based.
func AttentionCompletedCol(slot int) string {
	return fmt.Sprintf("%s%d%s", attentionPrefix, slot, completedSuffix)
}

// AttentionDateCol returns the column name for slot's attention date.
func AttentionDateCol(slot int) string {
	return fmt.Sprintf("%s%d%s", attentionPrefix, slot, dateSuffix)
}

// AttentionDurationCol returns the column name for slot's attention
// duration.
func AttentionDurationCol(slot int) string {
	return fmt.Sprintf("%s%d%s", attentionPrefix, slot, durationSuffix)
}

// RelaxationCompletedCol returns the column name for slot's relaxation
// completion mark.
func RelaxationCompletedCol(slot int) string {
	return fmt.Sprintf("%s%d%s", relaxationPrefix, slot, completedSuffix)
}

// RelaxationDateCol returns the column name for slot's relaxation date.
func RelaxationDateCol(slot int) string {
	return fmt.Sprintf("%s%d%s", relaxationPrefix, slot, dateSuffix)
}

// RelaxationDurationCol returns the column name for slot's relaxation
// duration.
func RelaxationDurationCol(slot int) string {
	return fmt.Sprintf("%s%d%s", relaxationPrefix, slot, durationSuffix)
}

// columns is the canonical ordered header, built once at init.
var columns = buildColumns()

func buildColumns() []string {
	cols := []string{
		ColName, ColDateOfBirth, ColGender, ColGroup,
		ColEducationYears, ColOccupation, ColPhone, ColLocation,
		ColPreTestDate, ColPreTestMMSE, ColPreTestQOL, ColPreTestCPT3,
	}
	for slot := 1; slot <= trainingSlots; slot++ {
		cols = append(cols,
			AttentionCompletedCol(slot),
			AttentionDateCol(slot),
			AttentionDurationCol(slot),
			RelaxationCompletedCol(slot),
			RelaxationDateCol(slot),
			RelaxationDurationCol(slot),
		)
	}
	return append(cols,
		ColPostTestDone, ColPostTestDate, ColPostTestMMSE,
		ColPostTestQOL, ColPostTestCPT3, ColSubmittedAt,
	)
}

// Header returns a fresh copy of the canonical ordered column names.
// Callers may modify the returned slice freely.
func Header() []string {
	out := make([]string, len(columns))
	copy(out, columns)
	return out
}

// ColumnCount is the width of a fully encoded row.
func ColumnCount() int {
	return len(columns)
}

// ColumnIndex maps each column name in header to its position. Decoding
// is keyed by name, not position, so a document whose header gained or
// lost columns still decodes (schema-on-read).
func ColumnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := idx[name]; dup {
			continue // first occurrence wins
		}
		idx[name] = i
	}
	return idx
}
