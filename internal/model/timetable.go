package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Time formatting layouts
const (
	ClockLayout = "15:04"
)

// timeLayouts are tried in order when parsing server time-of-day values
var timeLayouts = []string{"15:04:05.999999999", "15:04"}

// ID is an opaque entity identifier. The server may send numbers or strings.
type ID string

// String returns the identifier as text
func (id ID) String() string {
	return string(id)
}

// UnmarshalJSON accepts a JSON string, a JSON number, or null
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Ref points at another entity of the snapshot. The server embeds the whole
// referenced object, so both {"id": 1, ...} and a bare id are accepted.
type Ref struct {
	ID ID
}

// UnmarshalJSON decodes an embedded object or a bare identifier
func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var embedded struct {
			ID ID `json:"id"`
		}
		if err := json.Unmarshal(data, &embedded); err != nil {
			return fmt.Errorf("decode reference: %w", err)
		}
		r.ID = embedded.ID
		return nil
	}
	return r.ID.UnmarshalJSON(data)
}

// MarshalJSON encodes the reference as {"id": ...}
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID ID `json:"id"`
	}{ID: r.ID})
}

// Timeslot is one row of every pivot grid
type Timeslot struct {
	ID        ID     `json:"id"`
	DayOfWeek string `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Label returns the row header text, e.g. "Monday 08:00 - 09:00"
func (t Timeslot) Label() string {
	return fmt.Sprintf("%s %s - %s", DayName(t.DayOfWeek), ClockTime(t.StartTime), ClockTime(t.EndTime))
}

// Room is one column of the by-room grid
type Room struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// Lesson is a single teaching unit placed by the solver
type Lesson struct {
	ID           ID     `json:"id"`
	Subject      string `json:"subject"`
	Teacher      string `json:"teacher"`
	StudentGroup string `json:"studentGroup"`
	Timeslot     *Ref   `json:"timeslot"`
	Room         *Ref   `json:"room"`
}

// IsAssigned returns true if the lesson references both a timeslot and a room
func (l Lesson) IsAssigned() bool {
	return l.Timeslot != nil && l.Room != nil
}

// DayName turns an enumerated day such as "MONDAY" into "Monday"
func DayName(day string) string {
	if day == "" {
		return ""
	}
	lower := strings.ToLower(day)
	first, size := utf8.DecodeRuneInString(lower)
	return string(unicode.ToUpper(first)) + lower[size:]
}

// ClockTime formats a server time-of-day value as HH:MM.
// Values that do not parse are returned unchanged.
func ClockTime(value string) string {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(ClockLayout)
		}
	}
	return value
}
