package csvsheet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hungchenyu0926/EEGReasearch/internal/schema"
	"github.com/Hungchenyu0926/EEGReasearch/pkg/types"
)

func attachedStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()

	s := New()
	require.NoError(t, s.Attach(types.Config{Backend: types.BackendCSV, DataDir: dir}))
	t.Cleanup(func() { _ = s.Detach() })
	return s, dir
}

func TestAttachSeedsHeaderOnlyDocument(t *testing.T) {
	s, dir := attachedStore(t)

	assert.Equal(t, filepath.Join(dir, "cases.csv"), s.Path())

	header, rows, err := s.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, schema.Header(), header)
	assert.Empty(t, rows)
}

func TestAttachTwiceRejected(t *testing.T) {
	s, dir := attachedStore(t)
	err := s.Attach(types.Config{Backend: types.BackendCSV, DataDir: dir})
	assert.ErrorIs(t, err, types.ErrAlreadyAttached)
}

func TestAttachValidatesConfig(t *testing.T) {
	s := New()
	assert.ErrorIs(t, s.Attach(types.Config{}), types.ErrBackendEmpty)
}

func TestAttachKeepsExistingDocument(t *testing.T) {
	dir := t.TempDir()

	s := New()
	require.NoError(t, s.Attach(types.Config{Backend: types.BackendCSV, DataDir: dir}))
	require.NoError(t, s.Append(schema.Encode(types.CaseRecord{Name: "王大明"})))
	require.NoError(t, s.Detach())

	// Re-attach the same directory; the row must survive.
	s2 := New()
	require.NoError(t, s2.Attach(types.Config{Backend: types.BackendCSV, DataDir: dir}))
	_, rows, err := s2.ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestDetachedOperationsRejected(t *testing.T) {
	s := New()

	_, _, err := s.ReadAll()
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	assert.ErrorIs(t, s.Append([]string{"x"}), types.ErrStoreDetached)
	assert.ErrorIs(t, s.ReplaceAll([]string{"x"}, nil), types.ErrStoreDetached)
}

func TestAppendThenReadAll(t *testing.T) {
	s, _ := attachedStore(t)

	r := types.CaseRecord{Name: "王大明", Group: types.GroupExperimental, PreTestMMSE: 24}
	require.NoError(t, s.Append(schema.Encode(r)))

	header, rows, err := s.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)

	got := schema.Decode(header, rows[0])
	assert.Equal(t, 24, got.PreTestMMSE)
	assert.Equal(t, types.GroupExperimental, got.Group)
}

func TestReplaceAllRewritesDocument(t *testing.T) {
	s, _ := attachedStore(t)

	for _, name := range []string{"王大明", "林小香", "陳阿姨"} {
		require.NoError(t, s.Append(schema.Encode(types.CaseRecord{Name: name})))
	}

	header := schema.Header()
	replacement := [][]string{
		schema.Encode(types.CaseRecord{Name: "王大明", Location: "新北據點"}),
		schema.Encode(types.CaseRecord{Name: "林小香"}),
		schema.Encode(types.CaseRecord{Name: "陳阿姨"}),
	}
	require.NoError(t, s.ReplaceAll(header, replacement))

	gotHeader, rows, err := s.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, header, gotHeader)
	assert.Equal(t, replacement, rows)
}

func TestReplaceAllLeavesNoTempFiles(t *testing.T) {
	s, dir := attachedStore(t)
	require.NoError(t, s.ReplaceAll(schema.Header(), [][]string{
		schema.Encode(types.CaseRecord{Name: "王大明"}),
	}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"),
			"temp file %s left behind", e.Name())
	}
}

func TestCellsWithCommasAndQuotesSurvive(t *testing.T) {
	s, _ := attachedStore(t)

	r := types.CaseRecord{Name: `王 "大" 明`, Occupation: "教師, 退休"}
	require.NoError(t, s.Append(schema.Encode(r)))

	header, rows, err := s.ReadAll()
	require.NoError(t, err)
	got := schema.Decode(header, rows[0])
	assert.Equal(t, r.Name, got.Name)
	assert.Equal(t, r.Occupation, got.Occupation)
}
