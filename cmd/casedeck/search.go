// Search command filters the ledger by a free-text query.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Hungchenyu0926/EEGReasearch/internal/schema"
	"github.com/Hungchenyu0926/EEGReasearch/internal/session"
	"github.com/Hungchenyu0926/EEGReasearch/pkg/types"
)

var searchQuery string

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search records by free text",
	Long: `Search matches the query case-insensitively against every cell of
every record, so any fragment (part of a phone number, part of a site
name) surfaces the record. An empty query shows everything.

Example:
  casedeck search --query 0912
  casedeck search --query 台北 --json`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchQuery, "query", "", "free-text search query")
}

func runSearch(cmd *cobra.Command, args []string) error {
	gw, err := openGateway()
	if err != nil {
		return err
	}
	defer gw.Detach()

	s, err := session.Begin(gw)
	if err != nil {
		return err
	}

	view := s.Filter(searchQuery)

	records := make([]types.CaseRecord, 0, len(view))
	rowNumbers := make([]int, 0, len(view))
	for _, id := range view {
		row, err := s.Row(id)
		if err != nil {
			return err
		}
		records = append(records, schema.Decode(s.Header(), row))
		rowNumbers = append(rowNumbers, id+1)
	}

	if flagJSON {
		return printJSON(map[string]any{
			"query":   searchQuery,
			"rows":    rowNumbers,
			"matched": len(records),
			"total":   s.RowCount(),
			"records": records,
		})
	}

	printRecordTableRows(records, rowNumbers)
	fmt.Printf("Showing %d of %d records\n", len(records), s.RowCount())
	return nil
}
