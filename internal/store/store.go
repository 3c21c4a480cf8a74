// Package store selects and attaches a Gateway backend from config. The
// gateway is an explicitly constructed, explicitly passed handle with its
// own attach/detach lifecycle; nothing in the program holds a process
// global.
package store

import (
	"fmt"

	"github.com/Hungchenyu0926/EEGReasearch/internal/csvsheet"
	"github.com/Hungchenyu0926/EEGReasearch/internal/sqlitesheet"
	"github.com/Hungchenyu0926/EEGReasearch/pkg/types"
)

// Open constructs the backend named by config and attaches it. The
// caller must defer Detach on the returned gateway.
func Open(config types.Config) (types.Gateway, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var gw types.Gateway
	switch config.Backend {
	case types.BackendCSV:
		gw = csvsheet.New()
	case types.BackendSQLite:
		gw = sqlitesheet.New()
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrBackendUnknown, config.Backend)
	}

	if err := gw.Attach(config); err != nil {
		return nil, fmt.Errorf("attach %s backend: %w", config.Backend, err)
	}
	return gw, nil
}
