// Init command creates the document and configuration on first use.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the case ledger",
	Long: `Init attaches the configured storage backend, creating the data
directory and an empty document (header only) if none exists yet.

Example:
  casedeck init
  casedeck init --data-dir ./study-2025`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	gw, err := openGateway()
	if err != nil {
		return err
	}
	defer gw.Detach()

	_, rows, err := gw.ReadAll()
	if err != nil {
		return fmt.Errorf("read store: %w", err)
	}

	if flagJSON {
		return printJSON(map[string]any{
			"backend": configBackend,
			"records": len(rows),
		})
	}
	fmt.Printf("Case ledger ready (%s backend, %d records)\n", configBackend, len(rows))
	return nil
}
