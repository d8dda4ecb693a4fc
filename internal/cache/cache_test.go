package cache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/timetable-viewer/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "snapshots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testSnapshot() *model.Snapshot {
	score := "0hard/-3soft"
	return &model.Snapshot{
		Score:        &score,
		SolverStatus: model.SolverStatusNotSolving,
		Rooms:        []model.Room{{ID: "1", Name: "Room A"}},
		Timeslots:    []model.Timeslot{{ID: "1", DayOfWeek: "MONDAY", StartTime: "08:30:00", EndTime: "09:30:00"}},
		Lessons: []model.Lesson{
			{ID: "1", Subject: "Math", Teacher: "A. Turing", StudentGroup: "9th grade",
				Timeslot: &model.Ref{ID: "1"}, Room: &model.Ref{ID: "1"}},
			{ID: "2", Subject: "Physics", Teacher: "M. Curie", StudentGroup: "9th grade"},
		},
	}
}

func TestStore_SaveLoad(t *testing.T) {
	store := openTestStore(t)
	fixed := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	require.NoError(t, store.Save("http://a:8080", testSnapshot()))

	entry, err := store.Load("http://a:8080")
	require.NoError(t, err)
	assert.Equal(t, "http://a:8080", entry.Server)
	assert.True(t, entry.FetchedAt.Equal(fixed))
	if diff := cmp.Diff(testSnapshot(), entry.Snapshot); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_SaveReplaces(t *testing.T) {
	store := openTestStore(t)

	first := testSnapshot()
	require.NoError(t, store.Save("s", first))
	second := testSnapshot()
	second.Lessons = second.Lessons[:1]
	require.NoError(t, store.Save("s", second))

	entry, err := store.Load("s")
	require.NoError(t, err)
	assert.Len(t, entry.Snapshot.Lessons, 1)
}

func TestStore_LoadMissing(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Load("http://nowhere")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorContains(t, err, "http://nowhere")
}

func TestStore_Servers(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Save("http://b", testSnapshot()))
	require.NoError(t, store.Save("http://a", testSnapshot()))

	servers, err := store.Servers()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://a", "http://b"}, servers)
}

func TestStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.db")
	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Save("s", testSnapshot()))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()
	_, err = store.Load("s")
	assert.NoError(t, err)
}

type stubAPI struct {
	snapshot *model.Snapshot
	err      error
}

func (s stubAPI) FetchSnapshot(context.Context) (*model.Snapshot, error) { return s.snapshot, s.err }
func (s stubAPI) StartSolving(context.Context) error                     { return nil }
func (s stubAPI) DeleteRoom(context.Context, model.ID) error             { return nil }
func (s stubAPI) DeleteTimeslot(context.Context, model.ID) error         { return nil }
func (s stubAPI) DeleteLesson(context.Context, model.ID) error           { return nil }

func TestRecorder(t *testing.T) {
	store := openTestStore(t)

	rec := NewRecorder(stubAPI{snapshot: testSnapshot()}, store, "s", nil)
	got, err := rec.FetchSnapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, got.Lessons, 2)

	entry, err := store.Load("s")
	require.NoError(t, err)
	assert.Len(t, entry.Snapshot.Lessons, 2)
}

func TestRecorder_FetchErrorIsNotCached(t *testing.T) {
	store := openTestStore(t)

	rec := NewRecorder(stubAPI{err: errors.New("connection refused")}, store, "s", nil)
	_, err := rec.FetchSnapshot(context.Background())
	assert.ErrorContains(t, err, "connection refused")

	_, err = store.Load("s")
	assert.ErrorIs(t, err, ErrNotFound)
}
