package main

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ytget/timetable-viewer/internal/config"
	"github.com/ytget/timetable-viewer/internal/ui"
)

func newTestSession(t *testing.T) *session {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)
	window := a.NewWindow("")
	settings := config.NewSettings(a)
	root := ui.NewRootUI(window, settings, nil, zap.NewNop())
	return &session{settings: settings, root: root, logger: zap.NewNop()}
}

func TestSessionConnect(t *testing.T) {
	var fetches atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		_, _ = w.Write([]byte(`{"solverStatus":"NOT_SOLVING","roomList":[],"timeslotList":[],"lessonList":[]}`))
	}))
	defer srv.Close()

	s := newTestSession(t)
	s.settings.SetServerURL(srv.URL)
	s.connect()
	first := s.engine
	require.NotNil(t, first)
	assert.Eventually(t, func() bool { return fetches.Load() >= 1 }, time.Second, 10*time.Millisecond)

	s.connect()
	assert.NotSame(t, first, s.engine, "reconnecting replaces the engine")

	s.close()
	assert.Nil(t, s.engine)
}

func TestSessionInvalidURL(t *testing.T) {
	s := newTestSession(t)
	s.settings.SetServerURL("ftp://example.com")
	s.connect()
	assert.Nil(t, s.engine)
}
