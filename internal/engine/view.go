package engine

import "github.com/ytget/timetable-viewer/internal/pivot"

// View receives render updates from the engine. Calls may arrive from any
// goroutine; implementations marshal them onto their own UI thread.
type View interface {
	ShowTimetable(t *pivot.Timetable)
	ShowScore(text string)
	ShowSolving(solving bool)
	ShowError(err error)
}

type nopView struct{}

func (nopView) ShowTimetable(*pivot.Timetable) {}
func (nopView) ShowScore(string)               {}
func (nopView) ShowSolving(bool)               {}
func (nopView) ShowError(error)                {}
