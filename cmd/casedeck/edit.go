// Edit command updates cells of records in a filtered view and merges
// the result back into the full ledger.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Hungchenyu0926/EEGReasearch/internal/schema"
	"github.com/Hungchenyu0926/EEGReasearch/internal/session"
	"github.com/Hungchenyu0926/EEGReasearch/pkg/types"
)

var (
	editQuery string
	editRow   int
	editSets  []string
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit records in a filtered view",
	Long: `Edit opens a session over the ledger, narrows it with --query,
applies --set column=value changes, and merges the view back. Records
outside the view are never touched, and a write that would shrink the
ledger is refused before the store is modified.

With --row the changes apply to that document row only (as printed by
list or search); without it they apply to every row in the view.

Example:
  casedeck edit --query 0912 --set 據點位置=新北據點
  casedeck edit --row 3 --set 分組=控制組
  casedeck edit --query 王大明 --set 完成後測=是 --set 後測日期=2025-06-20`,
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editQuery, "query", "", "narrow the view with a free-text query")
	editCmd.Flags().IntVar(&editRow, "row", 0, "apply changes to this document row only (1-based)")
	editCmd.Flags().StringArrayVar(&editSets, "set", nil, "column=value change (repeatable, required)")
}

func runEdit(cmd *cobra.Command, args []string) error {
	if len(editSets) == 0 {
		return fmt.Errorf("at least one --set column=value is required")
	}
	changes, err := parseSetFlags(editSets)
	if err != nil {
		return err
	}

	gw, err := openGateway()
	if err != nil {
		return err
	}
	defer gw.Detach()

	s, err := session.Begin(gw)
	if err != nil {
		return err
	}

	view := s.Filter(editQuery)
	if len(view) == 0 {
		return fmt.Errorf("no records match query %q", editQuery)
	}

	targets := view
	if editRow > 0 {
		targets = []int{editRow - 1}
	}

	for _, id := range targets {
		for column, value := range changes {
			if err := s.SetCell(id, column, value); err != nil {
				return fmt.Errorf("row %d: %w", id+1, err)
			}
		}
	}

	count, err := s.Commit()
	if err != nil {
		return fmt.Errorf("write back: %w", err)
	}

	if flagJSON {
		return printJSON(map[string]any{
			"session": s.ID(),
			"edited":  len(targets),
			"records": count,
		})
	}
	fmt.Printf("Updated %d of %d records (session %s)\n", len(targets), count, s.ID())
	return nil
}

// parseSetFlags turns column=value pairs into a change map, validating
// enum-valued columns up front so a typo cannot reach the document.
func parseSetFlags(sets []string) (map[string]string, error) {
	changes := make(map[string]string, len(sets))
	for _, set := range sets {
		column, value, ok := strings.Cut(set, "=")
		if !ok || column == "" {
			return nil, fmt.Errorf("bad --set %q: want column=value", set)
		}
		if err := validateCell(column, value); err != nil {
			return nil, fmt.Errorf("bad --set %q: %w", set, err)
		}
		changes[column] = value
	}
	return changes, nil
}

// validateCell rejects values the spreadsheet column editor would refuse.
func validateCell(column, value string) error {
	probe := types.CaseRecord{Name: "probe"}
	switch column {
	case schema.ColGender:
		probe.Gender = value
	case schema.ColGroup:
		probe.Group = value
	default:
		return nil
	}
	return probe.Validate()
}
