package ui

import "time"

// UI-wide sizes, timeouts and labels.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconClose    = "×"
	IconError    = "❌"
)

// Text fragments
const (
	LessonIDPrefix = "#"
)

// Layout sizing (lesson cards / grids)
const (
	CardMinWidth     float32 = 150
	CardMinHeight    float32 = 64
	RowHeaderWidth   float32 = 160
	ColumnMinWidth   float32 = 170
	UnassignedCardsW float32 = 180
	UnassignedCardsH float32 = 96
	CardCornerRadius float32 = 4
)

// Window sizing
const (
	WindowWidth  float32 = 1100
	WindowHeight float32 = 720
	DialogWidth  float32 = 460
	DialogHeight float32 = 360
)

// Notification behavior
const (
	NotificationAutoHide = 8 * time.Second
)

// Background work
const (
	ActionTimeout = 30 * time.Second
)
