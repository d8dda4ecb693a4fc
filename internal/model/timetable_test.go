package model

import (
	"encoding/json"
	"testing"
	"unicode/utf8"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input    string
		expected ID
	}{
		{`1`, "1"},
		{`42`, "42"},
		{`"R1"`, "R1"},
		{`""`, ""},
		{`null`, ""},
	}

	for _, test := range tests {
		var id ID
		if err := json.Unmarshal([]byte(test.input), &id); err != nil {
			t.Fatalf("Unmarshal(%s) returned error: %v", test.input, err)
		}
		if id != test.expected {
			t.Errorf("Unmarshal(%s) = %q, expected %q", test.input, id, test.expected)
		}
	}
}

func TestID_UnmarshalJSON_Invalid(t *testing.T) {
	var id ID
	if err := json.Unmarshal([]byte(`{"id":1}`), &id); err == nil {
		t.Error("Expected error for object id, got nil")
	}
}

func TestLesson_DecodeReferences(t *testing.T) {
	data := `{
		"id": 7,
		"subject": "Math",
		"teacher": "A. Turing",
		"studentGroup": "9th grade",
		"timeslot": {"id": 3, "dayOfWeek": "MONDAY", "startTime": "08:30:00", "endTime": "09:30:00"},
		"room": 2
	}`

	var lesson Lesson
	if err := json.Unmarshal([]byte(data), &lesson); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}

	if lesson.ID != "7" {
		t.Errorf("Expected lesson ID 7, got %q", lesson.ID)
	}
	if lesson.Timeslot == nil || lesson.Timeslot.ID != "3" {
		t.Errorf("Expected timeslot ref 3, got %+v", lesson.Timeslot)
	}
	if lesson.Room == nil || lesson.Room.ID != "2" {
		t.Errorf("Expected room ref 2, got %+v", lesson.Room)
	}
	if !lesson.IsAssigned() {
		t.Error("Expected lesson to be assigned")
	}
}

func TestLesson_NullReferences(t *testing.T) {
	data := `{"id": 1, "subject": "Physics", "teacher": "M. Curie", "studentGroup": "10th grade", "timeslot": null, "room": {"id": 1}}`

	var lesson Lesson
	if err := json.Unmarshal([]byte(data), &lesson); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}

	if lesson.Timeslot != nil {
		t.Errorf("Expected nil timeslot, got %+v", lesson.Timeslot)
	}
	if lesson.IsAssigned() {
		t.Error("Expected lesson with null timeslot to be unassigned")
	}
}

func TestTimeslot_Label(t *testing.T) {
	tests := []struct {
		timeslot Timeslot
		expected string
	}{
		{Timeslot{DayOfWeek: "MONDAY", StartTime: "08:00:00", EndTime: "09:00:00"}, "Monday 08:00 - 09:00"},
		{Timeslot{DayOfWeek: "TUESDAY", StartTime: "13:30", EndTime: "14:30"}, "Tuesday 13:30 - 14:30"},
		{Timeslot{DayOfWeek: "friday", StartTime: "10:15:30.5", EndTime: "11:00"}, "Friday 10:15 - 11:00"},
		{Timeslot{DayOfWeek: "WEDNESDAY", StartTime: "morning", EndTime: "noon"}, "Wednesday morning - noon"},
	}

	for _, test := range tests {
		result := test.timeslot.Label()
		if result != test.expected {
			t.Errorf("Label() for %+v = %q, expected %q", test.timeslot, result, test.expected)
		}
	}
}

func TestDayName(t *testing.T) {
	tests := []struct {
		day      string
		expected string
	}{
		{"", ""},
		{"MONDAY", "Monday"},
		{"sunday", "Sunday"},
		{"X", "X"},
		{"ÉTÉ", "Été"},
		{"ñ", "Ñ"},
		{"\xffMONDAY", "\uFFFDmonday"},
	}

	for _, test := range tests {
		if result := DayName(test.day); result != test.expected {
			t.Errorf("DayName(%q) = %q, expected %q", test.day, result, test.expected)
		}
		if result := DayName(test.day); !utf8.ValidString(result) {
			t.Errorf("DayName(%q) = %q is not valid UTF-8", test.day, result)
		}
	}
}
