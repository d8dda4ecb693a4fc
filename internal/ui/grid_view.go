package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/timetable-viewer/internal/model"
	"github.com/ytget/timetable-viewer/internal/pivot"
)

// GridActions receives the delete requests raised inside a grid
type GridActions struct {
	OnDeleteRoom     func(room model.Room)
	OnDeleteTimeslot func(timeslot model.Timeslot)
	OnDeleteLesson   func(lesson model.Lesson)
}

// GridView lays a pivot grid out as a scrollable table
type GridView struct {
	grid   *pivot.Grid
	scroll *container.Scroll

	cards         []*LessonCard
	columnDeletes []*widget.Button
	rowDeletes    []*widget.Button
}

// NewGridView builds the table for grid
func NewGridView(grid *pivot.Grid, localization *Localization, actions GridActions) *GridView {
	gv := &GridView{
		grid:          grid,
		columnDeletes: make([]*widget.Button, len(grid.Columns)),
		rowDeletes:    make([]*widget.Button, len(grid.Rows)),
	}

	objects := make([]fyne.CanvasObject, 0, (len(grid.Rows)+1)*(len(grid.Columns)+1))
	objects = append(objects, fixedWidth(RowHeaderWidth, widget.NewLabel("")))
	for c, column := range grid.Columns {
		objects = append(objects, gv.columnHeader(c, column, actions))
	}

	for r, row := range grid.Rows {
		objects = append(objects, gv.rowHeader(r, row, actions))
		for c := range grid.Columns {
			objects = append(objects, gv.cell(r, c, localization, actions))
		}
	}

	table := container.NewGridWithColumns(len(grid.Columns)+1, objects...)
	gv.scroll = container.NewScroll(table)
	return gv
}

// Object returns the canvas object to place in a window
func (gv *GridView) Object() fyne.CanvasObject {
	return gv.scroll
}

// Cards returns the lesson cards in row-major order
func (gv *GridView) Cards() []*LessonCard {
	return gv.cards
}

func (gv *GridView) columnHeader(index int, column pivot.Column, actions GridActions) fyne.CanvasObject {
	label := widget.NewLabelWithStyle(column.Label, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	label.Truncation = fyne.TextTruncateEllipsis

	if !column.Deletable() || actions.OnDeleteRoom == nil {
		return fixedWidth(ColumnMinWidth, label)
	}

	room := *column.Room
	btn := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		actions.OnDeleteRoom(room)
	})
	btn.Importance = widget.LowImportance
	gv.columnDeletes[index] = btn
	return fixedWidth(ColumnMinWidth, container.NewBorder(nil, nil, nil, btn, label))
}

func (gv *GridView) rowHeader(index int, row pivot.Row, actions GridActions) fyne.CanvasObject {
	label := widget.NewLabelWithStyle(row.Label, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	label.Wrapping = fyne.TextWrapWord

	if !gv.grid.RowsDeletable() || actions.OnDeleteTimeslot == nil {
		return fixedWidth(RowHeaderWidth, label)
	}

	timeslot := row.Timeslot
	btn := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		actions.OnDeleteTimeslot(timeslot)
	})
	btn.Importance = widget.LowImportance
	gv.rowDeletes[index] = btn
	return fixedWidth(RowHeaderWidth, container.NewBorder(nil, nil, nil, btn, label))
}

func (gv *GridView) cell(row, col int, localization *Localization, actions GridActions) fyne.CanvasObject {
	cards := gv.grid.Cell(row, col)
	box := container.NewVBox()
	for _, card := range cards {
		lc := NewLessonCard(card, localization, actions.OnDeleteLesson)
		gv.cards = append(gv.cards, lc)
		box.Add(lc)
	}
	return fixedWidth(ColumnMinWidth, box)
}

// NewUnassignedView lays out the lessons without a timeslot or room
func NewUnassignedView(cards []pivot.Card, localization *Localization, onDelete func(lesson model.Lesson)) (fyne.CanvasObject, []*LessonCard) {
	if len(cards) == 0 {
		return container.NewCenter(widget.NewLabel(localization.GetText(KeyNoUnassigned))), nil
	}

	rendered := make([]*LessonCard, 0, len(cards))
	wrap := container.NewGridWrap(fyne.NewSize(UnassignedCardsW, UnassignedCardsH))
	for _, card := range cards {
		lc := NewLessonCard(card, localization, onDelete)
		rendered = append(rendered, lc)
		wrap.Add(lc)
	}
	return container.NewVScroll(wrap), rendered
}

// fixedWidth keeps obj at least w wide using a transparent rectangle underneath
func fixedWidth(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
	spacer := canvas.NewRectangle(color.Transparent)
	spacer.SetMinSize(fyne.NewSize(w, 0))
	return container.NewStack(spacer, obj)
}
