// Root command for the casedeck CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/Hungchenyu0926/EEGReasearch/internal/paths"
)

const version = "0.1.0"

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
)

// Values loaded from config.yaml by PersistentPreRunE so all subcommands
// can use them.
var (
	configBackend   string
	configDataDir   string
	configSheetName string
)

var rootCmd = &cobra.Command{
	Use:     "casedeck",
	Short:   "Casedeck manages a shared research case ledger",
	Version: version,
	Long: `Casedeck records and edits longitudinal research case data in one
shared tabular document: demographics, pre-test scores, the eight-slot
training log, and post-test scores.

The document's only update primitive is a full rewrite, so every edit
runs as a load, filter, edit, merge, write-back cycle with a row-count
guard in front of the destructive write.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configBackend = cfg.GetString(cfgKeyBackend)
		configDataDir = cfg.GetString(cfgKeyDataDir)
		configSheetName = cfg.GetString(cfgKeySheetName)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.casedeck-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > CASEDECK_CONFIG_DIR env > default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveDataDir returns the data directory following the precedence:
// --data-dir flag > config.yaml data_dir > CASEDECK_DATA_DIR env > default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}
