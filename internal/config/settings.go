package config

import (
	"strings"
	"time"

	"fyne.io/fyne/v2"
)

// Settings keys for Fyne preferences
const (
	KeyServerURL       = "server_url"
	KeyRefreshInterval = "refresh_interval_seconds"
	KeyRequestTimeout  = "request_timeout_seconds"
	KeyLanguage        = "app_language"
	KeyConfirmDelete   = "confirm_delete"
)

// Default values
const (
	DefaultServerURL       = "http://localhost:8080"
	DefaultRefreshInterval = 2
	DefaultRequestTimeout  = 10
	DefaultLanguage        = "system"
	DefaultConfirmDelete   = true
)

// Limits, in seconds
const (
	MinRefreshInterval = 1
	MaxRefreshInterval = 60
	MinRequestTimeout  = 1
	MaxRequestTimeout  = 120
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetServerURL returns the timetable server base URL
func (s *Settings) GetServerURL() string {
	url := s.app.Preferences().String(KeyServerURL)
	if url == "" {
		s.SetServerURL(DefaultServerURL)
		return DefaultServerURL
	}
	return url
}

// SetServerURL sets the server base URL. An empty value restores the default.
func (s *Settings) SetServerURL(url string) {
	url = strings.TrimSpace(url)
	if url == "" {
		url = DefaultServerURL
	}
	s.app.Preferences().SetString(KeyServerURL, strings.TrimRight(url, "/"))
}

// GetRefreshInterval returns the polling period used while solving, in seconds
func (s *Settings) GetRefreshInterval() int {
	value := s.app.Preferences().Int(KeyRefreshInterval)
	if value <= 0 {
		s.SetRefreshInterval(DefaultRefreshInterval)
		return DefaultRefreshInterval
	}
	return value
}

// SetRefreshInterval sets the polling period in seconds
func (s *Settings) SetRefreshInterval(seconds int) {
	s.app.Preferences().SetInt(KeyRefreshInterval, clamp(seconds, MinRefreshInterval, MaxRefreshInterval))
}

// RefreshInterval returns the polling period as a duration
func (s *Settings) RefreshInterval() time.Duration {
	return time.Duration(s.GetRefreshInterval()) * time.Second
}

// GetRequestTimeout returns the HTTP request timeout in seconds
func (s *Settings) GetRequestTimeout() int {
	value := s.app.Preferences().Int(KeyRequestTimeout)
	if value <= 0 {
		s.SetRequestTimeout(DefaultRequestTimeout)
		return DefaultRequestTimeout
	}
	return value
}

// SetRequestTimeout sets the HTTP request timeout in seconds
func (s *Settings) SetRequestTimeout(seconds int) {
	s.app.Preferences().SetInt(KeyRequestTimeout, clamp(seconds, MinRequestTimeout, MaxRequestTimeout))
}

// RequestTimeout returns the HTTP request timeout as a duration
func (s *Settings) RequestTimeout() time.Duration {
	return time.Duration(s.GetRequestTimeout()) * time.Second
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetConfirmDelete returns whether deletions ask for confirmation
func (s *Settings) GetConfirmDelete() bool {
	return s.app.Preferences().BoolWithFallback(KeyConfirmDelete, DefaultConfirmDelete)
}

// SetConfirmDelete sets whether deletions ask for confirmation
func (s *Settings) SetConfirmDelete(confirm bool) {
	s.app.Preferences().SetBool(KeyConfirmDelete, confirm)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

func clamp(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
