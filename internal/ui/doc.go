package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It renders the room, teacher and student group pivots plus the unassigned
// lessons, forwards user actions to a Controller and receives render updates
// through the engine.View methods. All UI strings are localized via Localization.
