package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaseRecordValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CaseRecord)
		wantErr error
	}{
		{
			name:   "minimal valid record",
			mutate: func(r *CaseRecord) {},
		},
		{
			name:    "empty name rejected",
			mutate:  func(r *CaseRecord) { r.Name = "" },
			wantErr: ErrNameRequired,
		},
		{
			name:   "known gender accepted",
			mutate: func(r *CaseRecord) { r.Gender = GenderFemale },
		},
		{
			name:    "unknown gender rejected",
			mutate:  func(r *CaseRecord) { r.Gender = "unknown" },
			wantErr: ErrInvalidGender,
		},
		{
			name:   "empty gender accepted",
			mutate: func(r *CaseRecord) { r.Gender = "" },
		},
		{
			name:   "known group accepted",
			mutate: func(r *CaseRecord) { r.Group = GroupControl },
		},
		{
			name:    "unknown group rejected",
			mutate:  func(r *CaseRecord) { r.Group = "對照組" },
			wantErr: ErrInvalidGroup,
		},
		{
			name:    "negative education rejected",
			mutate:  func(r *CaseRecord) { r.EducationYears = -1 },
			wantErr: ErrEducationNegative,
		},
		{
			name:    "pre MMSE above bound rejected",
			mutate:  func(r *CaseRecord) { r.PreTestMMSE = 31 },
			wantErr: ErrMMSEOutOfRange,
		},
		{
			name:    "post MMSE below bound rejected",
			mutate:  func(r *CaseRecord) { r.PostTestMMSE = -3 },
			wantErr: ErrMMSEOutOfRange,
		},
		{
			name:   "MMSE unavailable sentinel accepted",
			mutate: func(r *CaseRecord) { r.PreTestMMSE = MMSEUnavailable },
		},
		{
			name:   "MMSE boundary values accepted",
			mutate: func(r *CaseRecord) { r.PreTestMMSE = MMSEMin; r.PostTestMMSE = MMSEMax },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &CaseRecord{Name: "王大明"}
			tt.mutate(r)

			err := r.Validate()

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCaseRecordNormalize(t *testing.T) {
	r := &CaseRecord{Name: "王大明", PostTestDate: "2025-06-01"}
	r.Training[2] = TrainingSession{
		Attention:  TrainingEntry{Completed: false, Date: "2025-03-01", Duration: "30min"},
		Relaxation: TrainingEntry{Completed: true, Date: "2025-03-01", Duration: "20min"},
	}

	r.Normalize()

	assert.Empty(t, r.Training[2].Attention.Date, "incomplete run keeps no date")
	assert.Empty(t, r.Training[2].Attention.Duration, "incomplete run keeps no duration")
	assert.Equal(t, "2025-03-01", r.Training[2].Relaxation.Date, "completed run untouched")
	assert.Equal(t, "20min", r.Training[2].Relaxation.Duration)
	assert.Empty(t, r.PostTestDate, "post-test date cleared while post-test not done")
}

func TestCaseRecordNormalizeKeepsPostDateWhenDone(t *testing.T) {
	r := &CaseRecord{Name: "王大明", PostTestDone: true, PostTestDate: "2025-06-01"}
	r.Normalize()
	assert.Equal(t, "2025-06-01", r.PostTestDate)
}

func TestCaseRecordSetSession(t *testing.T) {
	r := &CaseRecord{Name: "王大明"}
	session := TrainingSession{
		Attention: TrainingEntry{Completed: true, Date: "2025-02-14", Duration: "30min"},
	}

	require.NoError(t, r.SetSession(1, session))
	assert.Equal(t, session, r.Training[0])

	require.NoError(t, r.SetSession(TrainingSessionCount, session))
	assert.Equal(t, session, r.Training[TrainingSessionCount-1])

	assert.ErrorIs(t, r.SetSession(0, session), ErrSessionIndex)
	assert.ErrorIs(t, r.SetSession(TrainingSessionCount+1, session), ErrSessionIndex)
}
