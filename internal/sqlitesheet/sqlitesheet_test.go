package sqlitesheet

import (
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
	require.NoError(t, s.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	t.Cleanup(func() { _ = s.Detach() })
	return s, dir
}

func TestAttachSeedsCanonicalHeader(t *testing.T) {
	s, _ := attachedStore(t)

	header, rows, err := s.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, schema.Header(), header)
	assert.Empty(t, rows)
}

func TestAttachTwiceRejected(t *testing.T) {
	s, dir := attachedStore(t)
	err := s.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir})
	assert.ErrorIs(t, err, types.ErrAlreadyAttached)
}

func TestDetachIdempotent(t *testing.T) {
	s, _ := attachedStore(t)
	require.NoError(t, s.Detach())
	require.NoError(t, s.Detach())

	_, _, err := s.ReadAll()
	assert.ErrorIs(t, err, types.ErrStoreDetached)
}

func TestAppendPreservesOrder(t *testing.T) {
	s, _ := attachedStore(t)

	names := []string{"王大明", "林小香", "陳阿姨"}
	for _, name := range names {
		require.NoError(t, s.Append(schema.Encode(types.CaseRecord{Name: name})))
	}

	header, rows, err := s.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(names))
	for i, name := range names {
		assert.Equal(t, name, schema.Decode(header, rows[i]).Name)
	}
}

func TestRowsSurviveReattach(t *testing.T) {
	dir := t.TempDir()

	s := New()
	require.NoError(t, s.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	require.NoError(t, s.Append(schema.Encode(types.CaseRecord{Name: "王大明", PreTestMMSE: 24})))
	require.NoError(t, s.Detach())

	s2 := New()
	require.NoError(t, s2.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	defer s2.Detach()

	header, rows, err := s2.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 24, schema.Decode(header, rows[0]).PreTestMMSE)
}

func TestReplaceAllRewritesDocument(t *testing.T) {
	s, _ := attachedStore(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Append(schema.Encode(types.CaseRecord{Name: "舊資料"})))
	}

	header := schema.Header()
	replacement := [][]string{
		schema.Encode(types.CaseRecord{Name: "王大明"}),
		schema.Encode(types.CaseRecord{Name: "林小香"}),
		schema.Encode(types.CaseRecord{Name: "陳阿姨"}),
		schema.Encode(types.CaseRecord{Name: "張伯伯"}),
		schema.Encode(types.CaseRecord{Name: "李奶奶"}),
	}
	require.NoError(t, s.ReplaceAll(header, replacement))

	gotHeader, rows, err := s.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, header, gotHeader)
	assert.Equal(t, replacement, rows)
}

func TestAppendAfterReplaceContinuesAtEnd(t *testing.T) {
	s, _ := attachedStore(t)

	require.NoError(t, s.ReplaceAll(schema.Header(), [][]string{
		schema.Encode(types.CaseRecord{Name: "王大明"}),
	}))
	require.NoError(t, s.Append(schema.Encode(types.CaseRecord{Name: "林小香"})))

	header, rows, err := s.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "林小香", schema.Decode(header, rows[1]).Name)
}
