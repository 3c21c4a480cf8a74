// Shared helpers for casedeck CLI commands.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/Hungchenyu0926/EEGReasearch/internal/schema"
	"github.com/Hungchenyu0926/EEGReasearch/internal/store"
	"github.com/Hungchenyu0926/EEGReasearch/pkg/types"
)

// openGateway resolves the data directory and attaches the configured
// backend. The caller must defer gw.Detach().
func openGateway() (types.Gateway, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend:   configBackend,
		DataDir:   dataDir,
		SheetName: configSheetName,
	}

	gw, err := store.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return gw, nil
}

// loadRecords reads the whole document and decodes every row.
func loadRecords(gw types.Gateway) ([]types.CaseRecord, error) {
	header, rows, err := gw.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}

	records := make([]types.CaseRecord, len(rows))
	for i, row := range rows {
		records[i] = schema.Decode(header, row)
	}
	return records, nil
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}
