// Export command dumps decoded records as JSON.
package main

import (
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all records as JSON",
	Long: `Export decodes every row of the ledger and writes the records to
stdout as indented JSON.

Example:
  casedeck export > cases.json`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	gw, err := openGateway()
	if err != nil {
		return err
	}
	defer gw.Detach()

	records, err := loadRecords(gw)
	if err != nil {
		return err
	}
	return printJSON(records)
}
