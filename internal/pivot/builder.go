package pivot

import (
	"github.com/ytget/timetable-viewer/internal/model"
)

// Build derives the three pivots and the unassigned bucket from a snapshot.
// Every call starts from scratch. A lesson goes into grid cells only when
// both of its references resolve to entities of the same snapshot;
// otherwise it lands in Unassigned. Build never fails.
func Build(s *model.Snapshot) *Timetable {
	if s == nil {
		s = &model.Snapshot{}
	}

	rows := buildRows(s.Timeslots)
	roomColumns := buildRoomColumns(s.Rooms)

	tt := &Timetable{
		ByRoom:         newGrid(KindRoom, rows, roomColumns),
		ByTeacher:      newGrid(KindTeacher, rows, buildLabelColumns(s.Teachers())),
		ByStudentGroup: newGrid(KindStudentGroup, rows, buildLabelColumns(s.StudentGroups())),
	}

	for _, lesson := range s.Lessons {
		card := newCard(lesson)

		if !tt.resolves(lesson) {
			card.Deletable = true
			tt.Unassigned = append(tt.Unassigned, card)
			continue
		}

		timeslotID := lesson.Timeslot.ID
		roomCard := card
		roomCard.Deletable = true
		tt.ByRoom.place(timeslotID, lesson.Room.ID.String(), roomCard)
		tt.ByTeacher.place(timeslotID, lesson.Teacher, card)
		tt.ByStudentGroup.place(timeslotID, lesson.StudentGroup, card)
	}

	return tt
}

// resolves reports whether a lesson can be placed in all three grids
func (t *Timetable) resolves(lesson model.Lesson) bool {
	if !lesson.IsAssigned() {
		return false
	}
	if _, ok := t.ByRoom.rowIndex[lesson.Timeslot.ID]; !ok {
		return false
	}
	_, ok := t.ByRoom.columnIndex[lesson.Room.ID.String()]
	return ok
}

func newCard(lesson model.Lesson) Card {
	return Card{
		LessonID:     lesson.ID,
		Subject:      lesson.Subject,
		Teacher:      lesson.Teacher,
		StudentGroup: lesson.StudentGroup,
		Color:        ColorFor(lesson.Subject),
		Lesson:       lesson,
	}
}

// buildRows keeps snapshot order; a repeated timeslot id keeps its first row
func buildRows(timeslots []model.Timeslot) []Row {
	rows := make([]Row, 0, len(timeslots))
	seen := make(map[model.ID]struct{}, len(timeslots))
	for _, timeslot := range timeslots {
		if _, dup := seen[timeslot.ID]; dup {
			continue
		}
		seen[timeslot.ID] = struct{}{}
		rows = append(rows, Row{Timeslot: timeslot, Label: timeslot.Label()})
	}
	return rows
}

func buildRoomColumns(rooms []model.Room) []Column {
	columns := make([]Column, 0, len(rooms))
	seen := make(map[model.ID]struct{}, len(rooms))
	for i := range rooms {
		room := rooms[i]
		if _, dup := seen[room.ID]; dup {
			continue
		}
		seen[room.ID] = struct{}{}
		columns = append(columns, Column{
			Key:   room.ID.String(),
			Token: room.ID.String(),
			Label: room.Name,
			Room:  &room,
		})
	}
	return columns
}

func buildLabelColumns(labels []string) []Column {
	columns := make([]Column, 0, len(labels))
	for _, label := range labels {
		columns = append(columns, Column{
			Key:   label,
			Token: Encode(label),
			Label: label,
		})
	}
	return columns
}
