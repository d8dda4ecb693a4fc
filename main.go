package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/ytget/timetable-viewer/internal/client"
	"github.com/ytget/timetable-viewer/internal/config"
	"github.com/ytget/timetable-viewer/internal/engine"
	"github.com/ytget/timetable-viewer/internal/logging"
	"github.com/ytget/timetable-viewer/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID = "com.ytget.timetable-viewer"
)

func main() {
	logger, err := logging.New(os.Getenv(config.EnvLogLevel), logging.FormatConsole)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("timetable viewer starting", zap.String("version", version))

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow("")
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	settings := config.NewSettings(myApp)
	root := ui.NewRootUI(myWindow, settings, nil, logger.Named("ui"))

	s := &session{settings: settings, root: root, logger: logger}
	root.SetOnSettingsChanged(s.connect)
	myWindow.SetOnClosed(s.close)
	s.connect()

	myWindow.ShowAndRun()
}

// session owns the engine bound to the window. Saving the settings
// replaces it with one built for the new server URL and intervals.
type session struct {
	settings *config.Settings
	root     *ui.RootUI
	logger   *zap.Logger

	mu     sync.Mutex
	engine *engine.Engine
}

func (s *session) connect() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.release()

	serverURL := s.settings.GetServerURL()
	api, err := client.New(serverURL,
		client.WithTimeout(s.settings.RequestTimeout()),
		client.WithLogger(s.logger.Named("client")))
	if err != nil {
		s.logger.Error("invalid server URL", zap.String("url", serverURL), zap.Error(err))
		s.root.SetController(nil)
		go s.root.ShowError(err)
		return
	}

	eng := engine.New(api,
		engine.WithLogger(s.logger.Named("engine")),
		engine.WithInterval(s.settings.RefreshInterval()),
		engine.WithView(s.root))
	s.engine = eng
	s.root.SetController(eng)

	s.logger.Info("connecting", zap.String("url", api.BaseURL()))
	go func() {
		// Errors are shown by the view.
		_ = eng.Start(context.Background())
	}()
}

func (s *session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.release()
}

// release detaches the current engine from the window and stops it.
// Must be called with mu held.
func (s *session) release() {
	if s.engine == nil {
		return
	}
	s.engine.SetView(nil)
	s.engine.Close()
	s.engine = nil
}
