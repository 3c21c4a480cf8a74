// Delete command removes one record, in unrestricted mode over the full
// view.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Hungchenyu0926/EEGReasearch/internal/schema"
	"github.com/Hungchenyu0926/EEGReasearch/internal/session"
)

var (
	deleteRow int
	deleteYes bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a record by document row",
	Long: `Delete removes one record. Because the store's only update
primitive is a full rewrite, deletion runs in unrestricted mode: the
session must hold the complete, unfiltered ledger, and the row-count
safety net does not apply. --yes is required to confirm.

Example:
  casedeck delete --row 3 --yes`,
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().IntVar(&deleteRow, "row", 0, "document row to delete (1-based, required)")
	deleteCmd.Flags().BoolVar(&deleteYes, "yes", false, "confirm the deletion")
	_ = deleteCmd.MarkFlagRequired("row")
}

func runDelete(cmd *cobra.Command, args []string) error {
	if !deleteYes {
		return fmt.Errorf("deletion is destructive; re-run with --yes to confirm")
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

	id := deleteRow - 1
	if id < 0 || id >= s.RowCount() {
		return fmt.Errorf("row %d does not exist (%d records)", deleteRow, s.RowCount())
	}
	name := schema.Decode(s.Header(), s.Rows()[id]).Name

	remaining := make([][]string, 0, s.RowCount()-1)
	for i, row := range s.Rows() {
		if i != id {
			remaining = append(remaining, row)
		}
	}

	count, err := s.CommitReplace(remaining)
	if err != nil {
		return fmt.Errorf("write back: %w", err)
	}

	if flagJSON {
		return printJSON(map[string]any{
			"deleted": name,
			"row":     deleteRow,
			"records": count,
		})
	}
	fmt.Printf("Deleted record: %s (%d records remain)\n", name, count)
	return nil
}
