// List command shows every record in the ledger.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Hungchenyu0926/EEGReasearch/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all case records",
	Long: `List reads the whole ledger and prints one line per record.

Example:
  casedeck list
  casedeck list --json`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	gw, err := openGateway()
	if err != nil {
		return err
	}
	defer gw.Detach()

	records, err := loadRecords(gw)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(records)
	}

	printRecordTable(records)
	fmt.Printf("%d records\n", len(records))
	return nil
}

// printRecordTable prints records in a human-readable table format. Row
// numbers are 1-based positions in the current document, valid only
// until the next write.
func printRecordTable(records []types.CaseRecord) {
	rowNumbers := make([]int, len(records))
	for i := range records {
		rowNumbers[i] = i + 1
	}
	printRecordTableRows(records, rowNumbers)
}

// printRecordTableRows prints records alongside their document row
// numbers, which need not be contiguous for a filtered view.
func printRecordTableRows(records []types.CaseRecord, rowNumbers []int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ROW\tNAME\tGROUP\tPHONE\tLOCATION\tPRE-MMSE\tPOST-MMSE\tPOST-TEST")
	for i, r := range records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			rowNumbers[i], r.Name, r.Group, r.Phone, r.Location,
			formatMMSE(r.PreTestMMSE), formatMMSE(r.PostTestMMSE),
			formatDone(r.PostTestDone))
	}
	w.Flush()
}

func formatMMSE(score int) string {
	if score == types.MMSEUnavailable {
		return "-"
	}
	return fmt.Sprintf("%d", score)
}

func formatDone(done bool) string {
	if done {
		return "yes"
	}
	return "no"
}
