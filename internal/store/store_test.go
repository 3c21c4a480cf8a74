package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hungchenyu0926/EEGReasearch/internal/csvsheet"
	"github.com/Hungchenyu0926/EEGReasearch/internal/sqlitesheet"
	"github.com/Hungchenyu0926/EEGReasearch/pkg/types"
)

func TestOpenCSV(t *testing.T) {
	gw, err := Open(types.Config{Backend: types.BackendCSV, DataDir: t.TempDir()})
	require.NoError(t, err)
	defer gw.Detach()

	assert.IsType(t, &csvsheet.Store{}, gw)

	_, rows, err := gw.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestOpenSQLite(t *testing.T) {
	gw, err := Open(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()})
	require.NoError(t, err)
	defer gw.Detach()

	assert.IsType(t, &sqlitesheet.Store{}, gw)
}

func TestOpenRejectsBadConfig(t *testing.T) {
	_, err := Open(types.Config{})
	assert.ErrorIs(t, err, types.ErrBackendEmpty)

	_, err = Open(types.Config{Backend: "gsheet"})
	assert.ErrorIs(t, err, types.ErrBackendUnknown)
}
