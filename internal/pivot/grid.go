package pivot

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ytget/timetable-viewer/internal/model"
)

// Kind identifies which dimension a grid pivots the lessons on
type Kind int

const (
	KindRoom Kind = iota
	KindTeacher
	KindStudentGroup
)

// String returns the address segment used for the kind
func (k Kind) String() string {
	switch k {
	case KindRoom:
		return "room"
	case KindTeacher:
		return "teacher"
	case KindStudentGroup:
		return "studentGroup"
	default:
		return "unknown"
	}
}

// Column is one header of a grid
type Column struct {
	// Key is the room id, or the raw teacher / student group label.
	Key string
	// Token is the address component: the room id, or Encode(label).
	Token string
	Label string
	// Room is set for by-room columns only. Those are the only deletable headers.
	Room *model.Room
}

// Deletable reports whether the header carries a delete control
func (c Column) Deletable() bool {
	return c.Room != nil
}

// Row is one timeslot of a grid
type Row struct {
	Timeslot model.Timeslot
	Label    string
}

// CellKey addresses a cell without going through strings built from labels
type CellKey struct {
	TimeslotID model.ID
	Column     string
}

// Card is the rendered form of a lesson
type Card struct {
	LessonID     model.ID
	Subject      string
	Teacher      string
	StudentGroup string
	Color        colorful.Color
	// Deletable is true for by-room and unassigned cards.
	Deletable bool
	Lesson    model.Lesson
}

// Title returns the headline of the card
func (c Card) Title() string {
	return c.Subject
}

// Byline returns the teacher line of the card
func (c Card) Byline() string {
	return "by " + c.Teacher
}

// Grid is one pivot table: timeslot rows against Kind columns
type Grid struct {
	Kind    Kind
	Columns []Column
	Rows    []Row

	cells       map[CellKey][]Card
	columnIndex map[string]int
	rowIndex    map[model.ID]int
}

func newGrid(kind Kind, rows []Row, columns []Column) *Grid {
	g := &Grid{
		Kind:        kind,
		Columns:     columns,
		Rows:        rows,
		cells:       make(map[CellKey][]Card),
		columnIndex: make(map[string]int, len(columns)),
		rowIndex:    make(map[model.ID]int, len(rows)),
	}
	for i, column := range columns {
		g.columnIndex[column.Key] = i
	}
	for i, row := range rows {
		g.rowIndex[row.Timeslot.ID] = i
	}
	return g
}

// place appends a card to an existing cell. Unknown coordinates are rejected.
func (g *Grid) place(timeslotID model.ID, column string, card Card) bool {
	if _, ok := g.rowIndex[timeslotID]; !ok {
		return false
	}
	if _, ok := g.columnIndex[column]; !ok {
		return false
	}
	key := CellKey{TimeslotID: timeslotID, Column: column}
	g.cells[key] = append(g.cells[key], card)
	return true
}

// Cell returns the cards of the cell at the given row and column index
func (g *Grid) Cell(row, col int) []Card {
	if row < 0 || row >= len(g.Rows) || col < 0 || col >= len(g.Columns) {
		return nil
	}
	return g.Lookup(g.Rows[row].Timeslot.ID, g.Columns[col].Key)
}

// Lookup returns the cards placed at a timeslot id and column key
func (g *Grid) Lookup(timeslotID model.ID, column string) []Card {
	cards := g.cells[CellKey{TimeslotID: timeslotID, Column: column}]
	if len(cards) == 0 {
		return nil
	}
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}

// Address returns the structural address of a cell, e.g. "timeslot1room2".
// It names the cell across rebuilds of the same snapshot data.
func (g *Grid) Address(row, col int) string {
	if row < 0 || row >= len(g.Rows) || col < 0 || col >= len(g.Columns) {
		return ""
	}
	return "timeslot" + g.Rows[row].Timeslot.ID.String() + g.Kind.String() + g.Columns[col].Token
}

// RowsDeletable reports whether the timeslot headers carry delete controls
func (g *Grid) RowsDeletable() bool {
	return g.Kind == KindRoom
}

// CardCount returns the number of cards placed in the grid
func (g *Grid) CardCount() int {
	total := 0
	for _, cards := range g.cells {
		total += len(cards)
	}
	return total
}

// Timetable is the output of one build pass
type Timetable struct {
	ByRoom         *Grid
	ByTeacher      *Grid
	ByStudentGroup *Grid
	Unassigned     []Card
}

// Grids returns the three pivots in display order
func (t *Timetable) Grids() []*Grid {
	return []*Grid{t.ByRoom, t.ByTeacher, t.ByStudentGroup}
}
