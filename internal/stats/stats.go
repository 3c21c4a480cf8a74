// Package stats computes aggregate views over decoded case records.
// Aggregates must stay computable over partially dirty data: score cells
// carrying the unavailable sentinel are skipped, never treated as zero.
package stats

import "github.com/Hungchenyu0926/EEGReasearch/pkg/types"

// Summary is the aggregate view the dashboard reports.
type Summary struct {
	Records      int
	Experimental int
	Control      int
	PostTestDone int

	// Completion counts per ordinal training slot. A slot counts as
	// completed on the Completed field alone; detail cells are not
	// consulted.
	AttentionDone  [types.TrainingSessionCount]int
	RelaxationDone [types.TrainingSessionCount]int

	// MMSE means over the records whose score was available.
	PreMMSEKnown  int
	PreMMSEMean   float64
	PostMMSEKnown int
	PostMMSEMean  float64
}

// Summarize folds records into a Summary.
func Summarize(records []types.CaseRecord) Summary {
	var s Summary
	var preSum, postSum int

	for _, r := range records {
		s.Records++

		switch r.Group {
		case types.GroupExperimental:
			s.Experimental++
		case types.GroupControl:
			s.Control++
		}

		for i, session := range r.Training {
			if session.Attention.Completed {
				s.AttentionDone[i]++
			}
			if session.Relaxation.Completed {
				s.RelaxationDone[i]++
			}
		}

		if r.PreTestMMSE != types.MMSEUnavailable {
			s.PreMMSEKnown++
			preSum += r.PreTestMMSE
		}
		if r.PostTestDone {
			s.PostTestDone++
			if r.PostTestMMSE != types.MMSEUnavailable {
				s.PostMMSEKnown++
				postSum += r.PostTestMMSE
			}
		}
	}

	if s.PreMMSEKnown > 0 {
		s.PreMMSEMean = float64(preSum) / float64(s.PreMMSEKnown)
	}
	if s.PostMMSEKnown > 0 {
		s.PostMMSEMean = float64(postSum) / float64(s.PostMMSEKnown)
	}
	return s
}
