package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ytget/timetable-viewer/internal/config"
	"github.com/ytget/timetable-viewer/internal/model"
	"github.com/ytget/timetable-viewer/internal/pivot"
	"github.com/ytget/timetable-viewer/internal/textview"
)

type fakeController struct {
	mu      sync.Mutex
	calls   []string
	err     error
	deleted []model.ID
}

func (f *fakeController) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeController) Start(context.Context) error        { return f.record("start") }
func (f *fakeController) Refresh(context.Context) error      { return f.record("refresh") }
func (f *fakeController) StartSolving(context.Context) error { return f.record("solve") }

func (f *fakeController) DeleteLesson(_ context.Context, lesson model.Lesson) error {
	f.mu.Lock()
	f.deleted = append(f.deleted, lesson.ID)
	f.mu.Unlock()
	return f.record("delete")
}

func watchTimetable() *pivot.Timetable {
	slot := &model.Ref{ID: "1"}
	room := &model.Ref{ID: "1"}
	return pivot.Build(&model.Snapshot{
		Rooms:     []model.Room{{ID: "1", Name: "Room A"}},
		Timeslots: []model.Timeslot{{ID: "1", DayOfWeek: "MONDAY", StartTime: "08:30:00", EndTime: "09:30:00"}},
		Lessons: []model.Lesson{
			{ID: "a", Subject: "Math", Teacher: "A. Turing", StudentGroup: "9th grade", Timeslot: slot, Room: room},
			{ID: "b", Subject: "Physics", Teacher: "M. Curie", StudentGroup: "9th grade", Timeslot: slot, Room: room},
			{ID: "c", Subject: "Chemistry", Teacher: "M. Curie", StudentGroup: "10th grade"},
		},
	})
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds messages through Update and returns the model and the last command
func send(t *testing.T, m watchModel, msgs ...tea.Msg) (watchModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		m, ok = next.(watchModel)
		require.True(t, ok)
	}
	return m, cmd
}

func newTestWatchModel(ctrl *fakeController) watchModel {
	return newWatchModel(ctrl, textview.PlainStyles())
}

func TestWatchModel_InitLoads(t *testing.T) {
	ctrl := &fakeController{}
	m := newTestWatchModel(ctrl)

	assert.NotNil(t, m.Init())

	msg := m.action("load", ctrl.Start)()
	assert.Equal(t, actionDoneMsg{op: "load"}, msg)
	assert.Equal(t, []string{"start"}, ctrl.calls)
}

func TestWatchModel_RendersTimetable(t *testing.T) {
	m := newTestWatchModel(&fakeController{})
	assert.Contains(t, m.View(), "loading...")

	m, _ = send(t, m,
		tea.WindowSizeMsg{Width: 120, Height: 40},
		timetableMsg{timetable: watchTimetable()},
		scoreMsg("Score: 0hard/-3soft"),
	)

	view := m.View()
	assert.Contains(t, view, "Math")
	assert.Contains(t, view, "Physics")
	assert.Contains(t, view, "Score: 0hard/-3soft")
	assert.Contains(t, view, "idle")
}

func TestWatchModel_TabCycling(t *testing.T) {
	m, _ := send(t, newTestWatchModel(&fakeController{}), timetableMsg{timetable: watchTimetable()})

	m, _ = send(t, m, keyMsg("tab"))
	assert.Equal(t, tabTeacher, m.tab)

	m, _ = send(t, m, keyMsg("shift+tab"), keyMsg("shift+tab"))
	assert.Equal(t, tabUnassigned, m.tab)
	assert.Contains(t, m.content, "Chemistry")
	assert.NotContains(t, m.content, "Physics")

	m, _ = send(t, m, keyMsg("tab"))
	assert.Equal(t, tabRoom, m.tab)
}

func TestWatchModel_Selection(t *testing.T) {
	m, _ := send(t, newTestWatchModel(&fakeController{}), timetableMsg{timetable: watchTimetable()})

	card, ok := m.selectedCard()
	require.True(t, ok)
	assert.Equal(t, model.ID("a"), card.LessonID)

	m, _ = send(t, m, keyMsg("n"), keyMsg("n"), keyMsg("n"))
	card, ok = m.selectedCard()
	require.True(t, ok)
	assert.Equal(t, model.ID("b"), card.LessonID, "selection stops at the last card")
	assert.Contains(t, m.View(), "selected: Physics #b")

	m, _ = send(t, m, keyMsg("p"), keyMsg("p"))
	card, _ = m.selectedCard()
	assert.Equal(t, model.ID("a"), card.LessonID)

	// teacher and group cards are read-only
	m, _ = send(t, m, keyMsg("tab"))
	_, ok = m.selectedCard()
	assert.False(t, ok)
}

func TestWatchModel_SelectionFollowsCardAcrossRefresh(t *testing.T) {
	m, _ := send(t, newTestWatchModel(&fakeController{}), timetableMsg{timetable: watchTimetable()}, keyMsg("n"))
	card, _ := m.selectedCard()
	require.Equal(t, model.ID("b"), card.LessonID)

	// A new lesson lands ahead of the selection in the same cell.
	slot := &model.Ref{ID: "1"}
	room := &model.Ref{ID: "1"}
	grown := pivot.Build(&model.Snapshot{
		Rooms:     []model.Room{{ID: "1", Name: "Room A"}},
		Timeslots: []model.Timeslot{{ID: "1", DayOfWeek: "MONDAY", StartTime: "08:30:00", EndTime: "09:30:00"}},
		Lessons: []model.Lesson{
			{ID: "z", Subject: "Art", Teacher: "F. Kahlo", StudentGroup: "9th grade", Timeslot: slot, Room: room},
			{ID: "a", Subject: "Math", Teacher: "A. Turing", StudentGroup: "9th grade", Timeslot: slot, Room: room},
			{ID: "b", Subject: "Physics", Teacher: "M. Curie", StudentGroup: "9th grade", Timeslot: slot, Room: room},
		},
	})
	m, _ = send(t, m, timetableMsg{timetable: grown})
	card, ok := m.selectedCard()
	require.True(t, ok)
	assert.Equal(t, model.ID("b"), card.LessonID)
	assert.Equal(t, 2, m.selected)
	assert.Equal(t, grown.ByRoom.Address(0, 0)+"/b", m.selectedKey)

	// The selected lesson is gone: the nearest remaining card is selected.
	shrunk := pivot.Build(&model.Snapshot{
		Rooms:     []model.Room{{ID: "1", Name: "Room A"}},
		Timeslots: []model.Timeslot{{ID: "1", DayOfWeek: "MONDAY", StartTime: "08:30:00", EndTime: "09:30:00"}},
		Lessons: []model.Lesson{
			{ID: "a", Subject: "Math", Teacher: "A. Turing", StudentGroup: "9th grade", Timeslot: slot, Room: room},
		},
	})
	m, _ = send(t, m, timetableMsg{timetable: shrunk})
	card, ok = m.selectedCard()
	require.True(t, ok)
	assert.Equal(t, model.ID("a"), card.LessonID)
	assert.Equal(t, shrunk.ByRoom.Address(0, 0)+"/a", m.selectedKey)
}

func TestWatchModel_DeleteSelected(t *testing.T) {
	ctrl := &fakeController{}
	m, _ := send(t, newTestWatchModel(ctrl), timetableMsg{timetable: watchTimetable()}, keyMsg("n"))

	m, cmd := send(t, m, keyMsg("x"))
	require.NotNil(t, cmd)
	assert.Contains(t, m.status, "deleting Physics #b")

	m, _ = send(t, m, cmd())
	assert.Equal(t, []model.ID{"b"}, ctrl.deleted)
	assert.Equal(t, "delete lesson done", m.status)
	assert.NoError(t, m.err)
}

func TestWatchModel_DeleteUnassigned(t *testing.T) {
	ctrl := &fakeController{}
	m, _ := send(t, newTestWatchModel(ctrl),
		timetableMsg{timetable: watchTimetable()},
		keyMsg("shift+tab"))

	_, cmd := send(t, m, keyMsg("x"))
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, []model.ID{"c"}, ctrl.deleted)
}

func TestWatchModel_DeleteWithoutSelection(t *testing.T) {
	ctrl := &fakeController{}
	m, _ := send(t, newTestWatchModel(ctrl), timetableMsg{timetable: watchTimetable()}, keyMsg("tab"))

	_, cmd := send(t, m, keyMsg("x"))
	assert.Nil(t, cmd)
	assert.Empty(t, ctrl.calls)
}

func TestWatchModel_ActionFailure(t *testing.T) {
	ctrl := &fakeController{err: errors.New("409 Conflict")}
	m, _ := send(t, newTestWatchModel(ctrl), timetableMsg{timetable: watchTimetable()})

	m, cmd := send(t, m, keyMsg("r"))
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())

	assert.Equal(t, "refresh failed", m.status)
	assert.Contains(t, m.View(), "error: 409 Conflict")
	assert.Contains(t, m.content, "Math", "the last timetable stays visible")
}

func TestWatchModel_Solving(t *testing.T) {
	ctrl := &fakeController{}
	m := newTestWatchModel(ctrl)

	m, cmd := send(t, m, keyMsg("s"))
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, []string{"solve"}, ctrl.calls)

	m, _ = send(t, m, solvingMsg(true))
	assert.Contains(t, m.View(), "solving")

	_, cmd = send(t, m, keyMsg("s"))
	assert.Nil(t, cmd, "solve is ignored while the solver runs")

	m, _ = send(t, m, solvingMsg(false))
	assert.Contains(t, m.View(), "idle")
}

func TestWatchModel_EngineError(t *testing.T) {
	m, _ := send(t, newTestWatchModel(&fakeController{}), errMsg{err: errors.New("fetch timetable: boom")})
	assert.Contains(t, m.View(), "error: fetch timetable: boom")
}

func TestWatchModel_HelpAndQuit(t *testing.T) {
	m := newTestWatchModel(&fakeController{})

	m, _ = send(t, m, keyMsg("?"))
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "previous pivot")

	for _, k := range []string{"q", "ctrl+c"} {
		_, cmd := send(t, m, keyMsg(k))
		require.NotNil(t, cmd, k)
		assert.Equal(t, tea.QuitMsg{}, cmd(), k)
	}
}

func TestWatchLoggerStaysOffScreen(t *testing.T) {
	c := &cli{cfg: config.DefaultFile(), logger: zap.NewExample()}

	require.NoError(t, c.useInteractiveLogger(""))
	assert.False(t, c.logger.Core().Enabled(zapcore.ErrorLevel), "logs are discarded by default")

	path := filepath.Join(t.TempDir(), "watch.log")
	require.NoError(t, c.useInteractiveLogger(path))
	c.logger.Info("solver state changed")
	require.NoError(t, c.logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "solver state changed")
}

func TestWatchModel_SanitizesServerText(t *testing.T) {
	m, _ := send(t, newTestWatchModel(&fakeController{}),
		scoreMsg("Score: 0hard\x1b]0;pwned\x07"),
		errMsg{err: errors.New("409 Conflict: \x1b[2Jbusy")},
	)
	view := m.View()
	assert.NotContains(t, view, "pwned")
	assert.NotContains(t, view, "\x1b[2J")
	assert.Contains(t, view, "error: 409 Conflict: busy")
}
