// Add command creates a new case record.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Hungchenyu0926/EEGReasearch/internal/form"
	"github.com/Hungchenyu0926/EEGReasearch/pkg/types"
)

var (
	addName       string
	addDOB        string
	addGender     string
	addGroup      string
	addEducation  int
	addOccupation string
	addPhone      string
	addLocation   string

	addPreDate string
	addPreMMSE int
	addPreQOL  bool
	addPreCPT3 bool

	addAttention  []string
	addRelaxation []string

	addPostDone bool
	addPostDate string
	addPostMMSE int
	addPostQOL  bool
	addPostCPT3 bool
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new case record",
	Long: `Add appends one case record to the ledger. Name is the only
required field; everything else defaults to its empty value.

Training runs are given as slot:date:duration, one flag per completed
run, slots 1 through 8.

Example:
  casedeck add --name 王大明 --group 實驗組 --pre-mmse 24
  casedeck add --name 林小香 --phone 0912345678 \
    --attention 1:2025-02-03:30min --relaxation 1:2025-02-03:20min`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addName, "name", "", "participant name (required)")
	addCmd.Flags().StringVar(&addDOB, "dob", "", "date of birth (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&addGender, "gender", "", "gender (男, 女, 其他)")
	addCmd.Flags().StringVar(&addGroup, "group", "", "study group (實驗組, 控制組)")
	addCmd.Flags().IntVar(&addEducation, "education", 0, "education years")
	addCmd.Flags().StringVar(&addOccupation, "occupation", "", "occupation")
	addCmd.Flags().StringVar(&addPhone, "phone", "", "contact phone")
	addCmd.Flags().StringVar(&addLocation, "location", "", "site location")

	addCmd.Flags().StringVar(&addPreDate, "pre-date", "", "pre-test date (YYYY-MM-DD)")
	addCmd.Flags().IntVar(&addPreMMSE, "pre-mmse", 0, "pre-test MMSE score (0-30)")
	addCmd.Flags().BoolVar(&addPreQOL, "pre-qol", false, "pre-test quality-of-life scale done")
	addCmd.Flags().BoolVar(&addPreCPT3, "pre-cpt3", false, "pre-test CPT3 done")

	addCmd.Flags().StringArrayVar(&addAttention, "attention", nil, "completed attention run as slot:date:duration (repeatable)")
	addCmd.Flags().StringArrayVar(&addRelaxation, "relaxation", nil, "completed relaxation run as slot:date:duration (repeatable)")

	addCmd.Flags().BoolVar(&addPostDone, "post-done", false, "post-test completed")
	addCmd.Flags().StringVar(&addPostDate, "post-date", "", "post-test date (YYYY-MM-DD)")
	addCmd.Flags().IntVar(&addPostMMSE, "post-mmse", 0, "post-test MMSE score (0-30)")
	addCmd.Flags().BoolVar(&addPostQOL, "post-qol", false, "post-test quality-of-life scale done")
	addCmd.Flags().BoolVar(&addPostCPT3, "post-cpt3", false, "post-test CPT3 done")

	_ = addCmd.MarkFlagRequired("name")
}

func runAdd(cmd *cobra.Command, args []string) error {
	f := form.New()
	f.Record = types.CaseRecord{
		Name:           addName,
		DateOfBirth:    addDOB,
		Gender:         addGender,
		Group:          addGroup,
		EducationYears: addEducation,
		Occupation:     addOccupation,
		Phone:          addPhone,
		Location:       addLocation,

		PreTestDate:     addPreDate,
		PreTestMMSE:     addPreMMSE,
		PreTestQOLDone:  addPreQOL,
		PreTestCPT3Done: addPreCPT3,

		PostTestDone:     addPostDone,
		PostTestDate:     addPostDate,
		PostTestMMSE:     addPostMMSE,
		PostTestQOLDone:  addPostQOL,
		PostTestCPT3Done: addPostCPT3,
	}

	if err := applyTrainingFlags(f, addAttention, false); err != nil {
		return err
	}
	if err := applyTrainingFlags(f, addRelaxation, true); err != nil {
		return err
	}

	// Validate before touching the store so a bad record costs nothing.
	if err := f.Validate(); err != nil {
		return fmt.Errorf("invalid record: %w", err)
	}

	gw, err := openGateway()
	if err != nil {
		return err
	}
	defer gw.Detach()

	saved, err := f.Submit(gw)
	if err != nil {
		return fmt.Errorf("create record: %w", err)
	}

	if flagJSON {
		return printJSON(saved)
	}
	fmt.Printf("Created record: %s\n", saved.Name)
	return nil
}

// applyTrainingFlags parses slot:date:duration values onto the pending
// record. relaxation selects which run of the slot is written.
func applyTrainingFlags(f *form.Form, values []string, relaxation bool) error {
	for _, v := range values {
		slot, entry, err := parseTrainingFlag(v)
		if err != nil {
			return err
		}

		session := f.Record.Training[slot-1]
		if relaxation {
			session.Relaxation = entry
		} else {
			session.Attention = entry
		}
		if err := f.SetTraining(slot, session); err != nil {
			return fmt.Errorf("training flag %q: %w", v, err)
		}
	}
	return nil
}

// parseTrainingFlag reads "slot", "slot:date", or "slot:date:duration".
// Listing a slot marks its run completed.
func parseTrainingFlag(v string) (int, types.TrainingEntry, error) {
	parts := strings.SplitN(v, ":", 3)

	slot, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, types.TrainingEntry{}, fmt.Errorf("training flag %q: bad slot: %w", v, err)
	}
	if slot < 1 || slot > types.TrainingSessionCount {
		return 0, types.TrainingEntry{}, fmt.Errorf("training flag %q: %w", v, types.ErrSessionIndex)
	}

	entry := types.TrainingEntry{Completed: true}
	if len(parts) > 1 {
		entry.Date = parts[1]
	}
	if len(parts) > 2 {
		entry.Duration = parts[2]
	}
	return slot, entry, nil
}
