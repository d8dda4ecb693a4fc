package ui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/timetable-viewer/internal/config"
	"github.com/ytget/timetable-viewer/internal/model"
	"github.com/ytget/timetable-viewer/internal/pivot"
)

// Controller receives the user actions of the window
type Controller interface {
	Refresh(ctx context.Context) error
	StartSolving(ctx context.Context) error
	DeleteRoom(ctx context.Context, room model.Room) error
	DeleteTimeslot(ctx context.Context, timeslot model.Timeslot) error
	DeleteLesson(ctx context.Context, lesson model.Lesson) error
}

// Tab indexes, in display order
const (
	TabByRoom = iota
	TabByTeacher
	TabByStudentGroup
	TabUnassigned
)

var tabTitleKeys = []string{KeyByRoom, KeyByTeacher, KeyByStudentGroup, KeyUnassigned}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	logger       *zap.Logger

	mu                sync.RWMutex
	controller        Controller
	onSettingsChanged func()

	refreshBtn     *widget.Button
	solveBtn       *widget.Button
	solvingBtn     *widget.Button
	solvingSpinner *widget.ProgressBarInfinite
	scoreLabel     *widget.Label
	tabs           *container.AppTabs
	tabItems       []*container.TabItem

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSeq       int
	afterFunc             func(time.Duration, func()) *time.Timer

	// Owned by the UI goroutine
	timetable       *pivot.Timetable
	gridViews       []*GridView
	unassignedCards []*LessonCard
	solving         bool
}

// NewRootUI creates and initializes the main UI. The controller may be set later.
func NewRootUI(window fyne.Window, settings *config.Settings, controller Controller, logger *zap.Logger) *RootUI {
	if logger == nil {
		logger = zap.NewNop()
	}

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		logger:       logger,
		controller:   controller,

		afterFunc: time.AfterFunc,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.setupUI()
	return ui
}

// SetController replaces the controller receiving user actions
func (ui *RootUI) SetController(controller Controller) {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	ui.controller = controller
}

// SetOnSettingsChanged sets the callback run after the settings dialog saves
func (ui *RootUI) SetOnSettingsChanged(fn func()) {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	ui.onSettingsChanged = fn
}

func (ui *RootUI) currentController() Controller {
	ui.mu.RLock()
	defer ui.mu.RUnlock()
	return ui.controller
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.refreshBtn = widget.NewButton(ui.localization.GetText(KeyRefresh), ui.onRefreshClick)

	ui.solveBtn = widget.NewButton(ui.localization.GetText(KeySolve), ui.onSolveClick)
	ui.solveBtn.Importance = widget.HighImportance

	ui.solvingBtn = widget.NewButton(ui.localization.GetText(KeySolving), nil)
	ui.solvingBtn.Disable()
	ui.solvingBtn.Hide()

	ui.solvingSpinner = widget.NewProgressBarInfinite()
	ui.solvingSpinner.Hide()

	ui.scoreLabel = widget.NewLabelWithStyle("Score: "+model.ScoreUnknown, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	toolbar := container.NewBorder(nil, nil,
		container.NewHBox(settingsBtn, ui.refreshBtn, ui.solveBtn, ui.solvingBtn),
		ui.scoreLabel,
		ui.solvingSpinner,
	)

	// Notification panel under the toolbar (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Wrapping = fyne.TextWrapWord
	closeBtn := widget.NewButton(IconClose, ui.hideNotification)
	closeBtn.Importance = widget.LowImportance
	ui.notificationContainer = container.NewBorder(nil, nil, nil, closeBtn, ui.notificationLabel)
	ui.notificationContainer.Hide()

	ui.tabItems = make([]*container.TabItem, len(tabTitleKeys))
	for i, key := range tabTitleKeys {
		ui.tabItems[i] = container.NewTabItem(ui.localization.GetText(key),
			container.NewCenter(widget.NewLabel(ui.localization.GetText(KeyNoTimetable))))
	}
	ui.tabs = container.NewAppTabs(ui.tabItems...)

	content := container.NewBorder(
		container.NewVBox(toolbar, ui.notificationContainer), // top
		nil,     // bottom
		nil,     // left
		nil,     // right
		ui.tabs, // center
	)

	ui.window.SetContent(content)
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)
	refreshItem := fyne.NewMenuItem(ui.localization.GetText(KeyRefresh), ui.onRefreshClick)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), refreshItem, settingsItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.refreshBtn.SetText(ui.localization.GetText(KeyRefresh))
	ui.solveBtn.SetText(ui.localization.GetText(KeySolve))
	ui.solvingBtn.SetText(ui.localization.GetText(KeySolving))
	for i, key := range tabTitleKeys {
		ui.tabItems[i].Text = ui.localization.GetText(key)
	}
	ui.renderTimetable(ui.timetable)
}

// ShowTimetable replaces the rendered pivots
func (ui *RootUI) ShowTimetable(t *pivot.Timetable) {
	fyne.Do(func() {
		ui.renderTimetable(t)
	})
}

// ShowScore updates the score line
func (ui *RootUI) ShowScore(text string) {
	fyne.Do(func() {
		ui.scoreLabel.SetText(text)
	})
}

// ShowSolving toggles between the solve button and the solving indicator
func (ui *RootUI) ShowSolving(solving bool) {
	fyne.Do(func() {
		ui.renderSolving(solving)
	})
}

// ShowError reports a failed fetch or mutation
func (ui *RootUI) ShowError(err error) {
	if err == nil {
		return
	}
	fyne.Do(func() {
		ui.renderError(err)
	})
}

func (ui *RootUI) renderTimetable(t *pivot.Timetable) {
	ui.timetable = t
	if t == nil {
		ui.tabs.Refresh()
		return
	}

	actions := GridActions{
		OnDeleteRoom:     ui.onDeleteRoom,
		OnDeleteTimeslot: ui.onDeleteTimeslot,
		OnDeleteLesson:   ui.onDeleteLesson,
	}

	ui.gridViews = ui.gridViews[:0]
	for i, grid := range t.Grids() {
		gv := NewGridView(grid, ui.localization, actions)
		ui.gridViews = append(ui.gridViews, gv)
		ui.tabItems[i].Content = gv.Object()
	}

	var unassigned fyne.CanvasObject
	unassigned, ui.unassignedCards = NewUnassignedView(t.Unassigned, ui.localization, ui.onDeleteLesson)
	ui.tabItems[TabUnassigned].Content = unassigned

	ui.tabs.Refresh()
}

func (ui *RootUI) renderSolving(solving bool) {
	ui.solving = solving
	if solving {
		ui.solveBtn.Hide()
		ui.solvingBtn.Show()
		ui.solvingSpinner.Show()
		ui.solvingSpinner.Start()
		return
	}
	ui.solvingSpinner.Stop()
	ui.solvingSpinner.Hide()
	ui.solvingBtn.Hide()
	ui.solveBtn.Show()
}

func (ui *RootUI) renderError(err error) {
	ui.showNotification(IconError + " " + err.Error())
	dialog.ShowError(err, ui.window)
}

// showNotification displays a message in the notification panel under the
// toolbar. It hides itself after NotificationAutoHide unless replaced.
func (ui *RootUI) showNotification(message string) {
	ui.notificationLabel.SetText(message)
	ui.notificationContainer.Show()
	ui.notificationContainer.Refresh()

	ui.notificationSeq++
	seq := ui.notificationSeq
	ui.afterFunc(NotificationAutoHide, func() {
		fyne.Do(func() {
			if ui.notificationSeq == seq {
				ui.hideNotification()
			}
		})
	})
}

// hideNotification hides the notification panel.
func (ui *RootUI) hideNotification() {
	ui.notificationContainer.Hide()
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()

		ui.mu.RLock()
		fn := ui.onSettingsChanged
		ui.mu.RUnlock()
		if fn != nil {
			fn()
		}
	})
}

func (ui *RootUI) onRefreshClick() {
	ui.hideNotification()
	ui.run("refresh", func(ctx context.Context, c Controller) error {
		return c.Refresh(ctx)
	})
}

func (ui *RootUI) onSolveClick() {
	ui.run("solve", func(ctx context.Context, c Controller) error {
		return c.StartSolving(ctx)
	})
}

func (ui *RootUI) onDeleteRoom(room model.Room) {
	ui.confirmDelete(fmt.Sprintf(ui.localization.GetText(KeyDeleteRoom), room.Name), func() {
		ui.run("delete room", func(ctx context.Context, c Controller) error {
			return c.DeleteRoom(ctx, room)
		})
	})
}

func (ui *RootUI) onDeleteTimeslot(timeslot model.Timeslot) {
	ui.confirmDelete(fmt.Sprintf(ui.localization.GetText(KeyDeleteTimeslot), timeslot.Label()), func() {
		ui.run("delete timeslot", func(ctx context.Context, c Controller) error {
			return c.DeleteTimeslot(ctx, timeslot)
		})
	})
}

func (ui *RootUI) onDeleteLesson(lesson model.Lesson) {
	label := lesson.Subject + " " + LessonIDPrefix + lesson.ID.String()
	ui.confirmDelete(fmt.Sprintf(ui.localization.GetText(KeyDeleteLesson), label), func() {
		ui.run("delete lesson", func(ctx context.Context, c Controller) error {
			return c.DeleteLesson(ctx, lesson)
		})
	})
}

func (ui *RootUI) confirmDelete(message string, action func()) {
	if !ui.settings.GetConfirmDelete() {
		action()
		return
	}
	dialog.ShowConfirm(ui.localization.GetText(KeyConfirmDeleteTitle), message, func(ok bool) {
		if ok {
			action()
		}
	}, ui.window)
}

// run performs a controller call off the UI goroutine. The controller reports
// failures to the view itself, so errors are only logged here.
func (ui *RootUI) run(op string, call func(ctx context.Context, c Controller) error) {
	c := ui.currentController()
	if c == nil {
		ui.logger.Warn("no controller for action", zap.String("op", op))
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), ActionTimeout)
		defer cancel()
		if err := call(ctx, c); err != nil {
			ui.logger.Debug("action failed", zap.String("op", op), zap.Error(err))
		}
	}()
}
