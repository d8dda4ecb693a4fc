// Package pivot turns one server snapshot into the three timetable views
// (by room, by teacher, by student group) plus the unassigned bucket.
//
// Cells are held in an explicit map keyed by timeslot id and column key, so
// renderers never derive lookups from address strings. Untrusted labels are
// only turned into address tokens through Encode, and subject colours come
// from ColorFor; both are pure functions of their input.
package pivot
