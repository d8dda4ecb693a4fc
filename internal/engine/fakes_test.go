package engine

import (
	"context"
	"sync"

	"github.com/ytget/timetable-viewer/internal/model"
	"github.com/ytget/timetable-viewer/internal/pivot"
)

type fakeAPI struct {
	mu        sync.Mutex
	snapshot  *model.Snapshot
	fetchErr  error
	mutateErr error
	fetches   int
	calls     []string
	// onFetch runs before a fetch returns. It receives the 1-based fetch number.
	onFetch func(ctx context.Context, n int) (*model.Snapshot, error)
}

func (f *fakeAPI) FetchSnapshot(ctx context.Context) (*model.Snapshot, error) {
	f.mu.Lock()
	f.fetches++
	n := f.fetches
	hook := f.onFetch
	snapshot, err := f.snapshot, f.fetchErr
	f.mu.Unlock()

	if hook != nil {
		return hook(ctx, n)
	}
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (f *fakeAPI) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.mutateErr
}

func (f *fakeAPI) StartSolving(context.Context) error {
	return f.record("solve")
}

func (f *fakeAPI) DeleteRoom(_ context.Context, id model.ID) error {
	return f.record("room " + id.String())
}

func (f *fakeAPI) DeleteTimeslot(_ context.Context, id model.ID) error {
	return f.record("timeslot " + id.String())
}

func (f *fakeAPI) DeleteLesson(_ context.Context, id model.ID) error {
	return f.record("lesson " + id.String())
}

func (f *fakeAPI) setSnapshot(s *model.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshot = s
}

func (f *fakeAPI) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

func (f *fakeAPI) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fakeView struct {
	mu         sync.Mutex
	timetables []*pivot.Timetable
	scores     []string
	solving    []bool
	errs       []error
}

func (v *fakeView) ShowTimetable(t *pivot.Timetable) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.timetables = append(v.timetables, t)
}

func (v *fakeView) ShowScore(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.scores = append(v.scores, text)
}

func (v *fakeView) ShowSolving(solving bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.solving = append(v.solving, solving)
}

func (v *fakeView) ShowError(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errs = append(v.errs, err)
}

func (v *fakeView) renders() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.timetables)
}

func (v *fakeView) lastTimetable() *pivot.Timetable {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.timetables) == 0 {
		return nil
	}
	return v.timetables[len(v.timetables)-1]
}

func (v *fakeView) errors() []error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]error(nil), v.errs...)
}

func (v *fakeView) solvingLog() []bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]bool(nil), v.solving...)
}

func (v *fakeView) scoreLog() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.scores...)
}

func ref(id model.ID) *model.Ref {
	return &model.Ref{ID: id}
}

func snapshotWith(status model.SolverStatus, subjects ...string) *model.Snapshot {
	s := &model.Snapshot{
		SolverStatus: status,
		Rooms:        []model.Room{{ID: "1", Name: "Room A"}},
		Timeslots:    []model.Timeslot{{ID: "1", DayOfWeek: "MONDAY", StartTime: "08:30:00", EndTime: "09:30:00"}},
	}
	for i, subject := range subjects {
		s.Lessons = append(s.Lessons, model.Lesson{
			ID:           model.ID(string(rune('a' + i))),
			Subject:      subject,
			Teacher:      "A. Turing",
			StudentGroup: "9th grade",
			Timeslot:     ref("1"),
			Room:         ref("1"),
		})
	}
	return s
}
