// Integration tests for the full load → filter → edit → merge →
// write-back cycle, run against every storage backend.
package integration

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hungchenyu0926/EEGReasearch/internal/form"
	"github.com/Hungchenyu0926/EEGReasearch/internal/schema"
	"github.com/Hungchenyu0926/EEGReasearch/internal/session"
	"github.com/Hungchenyu0926/EEGReasearch/internal/store"
	"github.com/Hungchenyu0926/EEGReasearch/pkg/types"
)

var backends = []string{types.BackendCSV, types.BackendSQLite}

// openStore attaches a fresh store of the given backend in a temp dir.
func openStore(t *testing.T, backend string) types.Gateway {
	t.Helper()
	gw, err := store.Open(types.Config{Backend: backend, DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = gw.Detach() })
	return gw
}

// submitCase appends one record through the form layer.
func submitCase(t *testing.T, gw types.Gateway, r types.CaseRecord) {
	t.Helper()
	f := form.New()
	f.Record = r
	_, err := f.Submit(gw)
	require.NoError(t, err)
}

// Appending one record and reading it back reproduces the submitted
// values through a full encode/store/decode cycle.
func TestAppendAndReadBack(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			gw := openStore(t, backend)

			submitCase(t, gw, types.CaseRecord{
				Name:        "王大明",
				Group:       types.GroupExperimental,
				PreTestMMSE: 24,
			})

			header, rows, err := gw.ReadAll()
			require.NoError(t, err)
			require.Len(t, rows, 1, "one data row besides the header")

			got := schema.Decode(header, rows[0])
			assert.Equal(t, "王大明", got.Name)
			assert.Equal(t, 24, got.PreTestMMSE)
			assert.Equal(t, types.GroupExperimental, got.Group)
			assert.NotEmpty(t, got.SubmittedAt)
		})
	}
}

// Editing the two records a phone-fragment query matches leaves the
// other eight rows byte-for-byte identical.
func TestFilteredEditIsolation(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			gw := openStore(t, backend)

			for i := 0; i < 10; i++ {
				r := types.CaseRecord{
					Name:  fmt.Sprintf("個案%d", i+1),
					Phone: fmt.Sprintf("0955%06d", i),
				}
				if i == 3 || i == 7 {
					r.Phone = fmt.Sprintf("0912%06d", i)
				}
				submitCase(t, gw, r)
			}

			_, before, err := gw.ReadAll()
			require.NoError(t, err)

			s, err := session.Begin(gw)
			require.NoError(t, err)
			require.Equal(t, []int{3, 7}, s.Filter("0912"))

			require.NoError(t, s.SetCell(3, schema.ColLocation, "新北據點"))
			require.NoError(t, s.SetCell(7, schema.ColLocation, "花蓮據點"))

			count, err := s.Commit()
			require.NoError(t, err)
			assert.Equal(t, 10, count)

			header, after, err := gw.ReadAll()
			require.NoError(t, err)
			require.Len(t, after, 10)

			idx := schema.ColumnIndex(header)
			for i := range after {
				switch i {
				case 3:
					assert.Equal(t, "新北據點", after[i][idx[schema.ColLocation]])
				case 7:
					assert.Equal(t, "花蓮據點", after[i][idx[schema.ColLocation]])
				default:
					assert.Equal(t, before[i], after[i], "row %d changed outside the view", i)
				}
			}
		})
	}
}

// An edited subset that lost a row relative to its view aborts the
// write; the stored row count stays at ten.
func TestShrunkEditAborts(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			gw := openStore(t, backend)

			for i := 0; i < 10; i++ {
				submitCase(t, gw, types.CaseRecord{
					Name:  fmt.Sprintf("個案%d", i+1),
					Phone: fmt.Sprintf("0912%06d", i),
				})
			}

			s, err := session.Begin(gw)
			require.NoError(t, err)
			view := s.Filter("0912")
			require.Len(t, view, 10)

			edited := make(map[int][]string, len(view)-1)
			for _, id := range view[:len(view)-1] { // last row vanished
				row, err := s.Row(id)
				require.NoError(t, err)
				edited[id] = row
			}

			_, err = s.CommitEdited(edited)
			assert.ErrorIs(t, err, types.ErrViewCardinality)

			_, rows, err := gw.ReadAll()
			require.NoError(t, err)
			assert.Len(t, rows, 10, "store size unchanged after abort")
		})
	}
}

// A second session appending between another session's load and commit
// is the documented last-writer-wins hazard: the commit rewrites the
// document from its own snapshot.
func TestOverlappingSessionsLastWriterWins(t *testing.T) {
	gw := openStore(t, types.BackendCSV)
	submitCase(t, gw, types.CaseRecord{Name: "王大明"})

	s, err := session.Begin(gw)
	require.NoError(t, err)

	// Another session appends while s holds its snapshot.
	submitCase(t, gw, types.CaseRecord{Name: "林小香"})

	require.NoError(t, s.SetCell(0, schema.ColLocation, "台北據點"))
	count, err := s.Commit()
	require.NoError(t, err)

	assert.Equal(t, 1, count, "the commit wins and the interleaved append is lost")
	_, rows, err := gw.ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

// Deleting through unrestricted mode requires the full view and shrinks
// the document.
func TestUnrestrictedDelete(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			gw := openStore(t, backend)
			for _, name := range []string{"王大明", "林小香", "陳阿姨"} {
				submitCase(t, gw, types.CaseRecord{Name: name})
			}

			s, err := session.Begin(gw)
			require.NoError(t, err)

			remaining := [][]string{s.Rows()[0], s.Rows()[2]}
			count, err := s.CommitReplace(remaining)
			require.NoError(t, err)
			assert.Equal(t, 2, count)

			header, rows, err := gw.ReadAll()
			require.NoError(t, err)
			require.Len(t, rows, 2)
			assert.Equal(t, "陳阿姨", schema.Decode(header, rows[1]).Name)
		})
	}
}

// A record written by one backend decodes identically when its rows are
// replayed into the other, since both speak the same codec.
func TestBackendsShareTheCodec(t *testing.T) {
	csvGW := openStore(t, types.BackendCSV)
	sqliteGW := openStore(t, types.BackendSQLite)

	r := types.CaseRecord{Name: "王大明", PreTestMMSE: 24, Group: types.GroupControl}
	r.Training[0] = types.TrainingSession{
		Attention: types.TrainingEntry{Completed: true, Date: "2025-02-03", Duration: "30min"},
	}
	submitCase(t, csvGW, r)

	header, rows, err := csvGW.ReadAll()
	require.NoError(t, err)
	require.NoError(t, sqliteGW.ReplaceAll(header, rows))

	header2, rows2, err := sqliteGW.ReadAll()
	require.NoError(t, err)
	assert.Equal(t,
		schema.Decode(header, rows[0]),
		schema.Decode(header2, rows2[0]))
}
