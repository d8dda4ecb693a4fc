package model

// ScoreUnknown is displayed while the server has not computed a score
const ScoreUnknown = "?"

// Snapshot is the full polled state of the scheduling problem at one instant
type Snapshot struct {
	Score        *string      `json:"score"`
	SolverStatus SolverStatus `json:"solverStatus"`
	Rooms        []Room       `json:"roomList"`
	Timeslots    []Timeslot   `json:"timeslotList"`
	Lessons      []Lesson     `json:"lessonList"`
}

// ScoreText returns the score line shown next to the solve controls
func (s *Snapshot) ScoreText() string {
	if s == nil || s.Score == nil {
		return "Score: " + ScoreUnknown
	}
	return "Score: " + *s.Score
}

// Teachers returns the distinct teacher labels in order of first appearance
func (s *Snapshot) Teachers() []string {
	if s == nil {
		return nil
	}
	return distinct(s.Lessons, func(l Lesson) string { return l.Teacher })
}

// StudentGroups returns the distinct student group labels in order of first appearance
func (s *Snapshot) StudentGroups() []string {
	if s == nil {
		return nil
	}
	return distinct(s.Lessons, func(l Lesson) string { return l.StudentGroup })
}

func distinct(lessons []Lesson, label func(Lesson) string) []string {
	seen := make(map[string]struct{}, len(lessons))
	var out []string
	for _, lesson := range lessons {
		value := label(lesson)
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
