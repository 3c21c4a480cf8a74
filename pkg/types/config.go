package types

import "errors"

// Config holds backend selection and parameters for Gateway.Attach.
type Config struct {
	Backend   string `json:"backend" yaml:"backend"`
	DataDir   string `json:"data_dir" yaml:"data_dir"`
	SheetName string `json:"sheet_name" yaml:"sheet_name"`
}

// Supported backend names.
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// DefaultSheetName is the document name used when the config does not
// provide one.
const DefaultSheetName = "cases"

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendCSV:    true,
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	return nil
}

// GetSheetName returns the configured document name, falling back to
// DefaultSheetName.
func (c Config) GetSheetName() string {
	if c.SheetName == "" {
		return DefaultSheetName
	}
	return c.SheetName
}
