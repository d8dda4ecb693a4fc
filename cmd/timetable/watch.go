package main

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ytget/timetable-viewer/internal/logging"
	"github.com/ytget/timetable-viewer/internal/model"
	"github.com/ytget/timetable-viewer/internal/pivot"
	"github.com/ytget/timetable-viewer/internal/textview"
)

const (
	watchActionTimeout = 30 * time.Second
	watchChromeHeight  = 5
)

// Tabs of the watch view, in pivot display order
const (
	tabRoom = iota
	tabTeacher
	tabGroup
	tabUnassigned
	tabCount
)

func (c *cli) newWatchCmd() *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Interactive timetable view",
		Long: `Shows the timetable in a full-screen view. Switch pivots with tab,
refresh with r, start the solver with s. Select a lesson in the room or
unassigned pivot with n / p and delete it with x.

Logs would cover the screen, so they are discarded unless --log-file is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.useInteractiveLogger(logFile); err != nil {
				return err
			}

			eng, err := c.newEngine(nil)
			if err != nil {
				return err
			}
			defer c.closeCache()
			defer eng.Close()

			p := tea.NewProgram(newWatchModel(eng, c.styles()),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()))
			eng.SetView(programView{program: p})

			_, err = p.Run()
			return err
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file while the view is open")
	return cmd
}

// useInteractiveLogger replaces the stderr logger for full-screen views
func (c *cli) useInteractiveLogger(path string) error {
	if c.logger != nil {
		_ = c.logger.Sync()
	}
	if path == "" {
		c.logger = zap.NewNop()
		return nil
	}
	logger, err := logging.NewFile(c.cfg.Logging.Level, c.cfg.Logging.Format, path)
	if err != nil {
		return err
	}
	c.logger = logger
	return nil
}

// watchController is the part of the engine the watch view drives
type watchController interface {
	Start(ctx context.Context) error
	Refresh(ctx context.Context) error
	StartSolving(ctx context.Context) error
	DeleteLesson(ctx context.Context, lesson model.Lesson) error
}

// Engine updates delivered to the program loop
type (
	timetableMsg  struct{ timetable *pivot.Timetable }
	scoreMsg      string
	solvingMsg    bool
	errMsg        struct{ err error }
	actionDoneMsg struct {
		op  string
		err error
	}
)

// programView forwards engine updates into the bubbletea loop
type programView struct {
	program *tea.Program
}

func (v programView) ShowTimetable(t *pivot.Timetable) { v.program.Send(timetableMsg{timetable: t}) }
func (v programView) ShowScore(text string)             { v.program.Send(scoreMsg(text)) }
func (v programView) ShowSolving(solving bool)          { v.program.Send(solvingMsg(solving)) }
func (v programView) ShowError(err error)               { v.program.Send(errMsg{err: err}) }

type watchKeyMap struct {
	NextTab key.Binding
	PrevTab key.Binding
	Next    key.Binding
	Prev    key.Binding
	Refresh key.Binding
	Solve   key.Binding
	Delete  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultWatchKeys() watchKeyMap {
	return watchKeyMap{
		NextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pivot")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous pivot")),
		Next:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next lesson")),
		Prev:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "previous lesson")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Solve:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "solve")),
		Delete:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete lesson")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Refresh, k.Solve, k.Delete, k.Help, k.Quit}
}

func (k watchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab},
		{k.Next, k.Prev, k.Delete},
		{k.Refresh, k.Solve},
		{k.Help, k.Quit},
	}
}

type watchModel struct {
	ctrl   watchController
	styles textview.Styles
	keys   watchKeyMap
	help   help.Model

	viewport viewport.Model
	spinner  spinner.Model
	ready    bool
	content  string

	tab       int
	selected  int
	// selectedKey follows the selected card across refreshes
	selectedKey string
	timetable *pivot.Timetable
	score     string
	solving   bool
	status    string
	err       error
}

func newWatchModel(ctrl watchController, styles textview.Styles) watchModel {
	return watchModel{
		ctrl:    ctrl,
		styles:  styles,
		keys:    defaultWatchKeys(),
		help:    help.New(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		score:   "Score: " + model.ScoreUnknown,
		status:  "loading...",
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.action("load", m.ctrl.Start))
}

// action runs a controller call in a tea.Cmd goroutine
func (m watchModel) action(op string, call func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), watchActionTimeout)
		defer cancel()
		return actionDoneMsg{op: op, err: call(ctx)}
	}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := max(msg.Height-watchChromeHeight, 1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.help.Width = msg.Width
		m.viewport.SetContent(m.content)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case timetableMsg:
		m.timetable = msg.timetable
		m.restoreSelection()
		m.refreshContent()
		return m, nil

	case scoreMsg:
		m.score = textview.Sanitize(string(msg))
		return m, nil

	case solvingMsg:
		m.solving = bool(msg)
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = msg.op + " failed"
			return m, nil
		}
		m.err = nil
		m.status = msg.op + " done"
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m watchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextTab):
		m.tab = (m.tab + 1) % tabCount
		m.selected = 0
		m.clampSelection()
		m.refreshContent()
		return m, nil

	case key.Matches(msg, m.keys.PrevTab):
		m.tab = (m.tab + tabCount - 1) % tabCount
		m.selected = 0
		m.clampSelection()
		m.refreshContent()
		return m, nil

	case key.Matches(msg, m.keys.Next):
		m.selected++
		m.clampSelection()
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m.selected--
		m.clampSelection()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.status = "refreshing..."
		return m, m.action("refresh", m.ctrl.Refresh)

	case key.Matches(msg, m.keys.Solve):
		if m.solving {
			return m, nil
		}
		m.status = "starting solver..."
		return m, m.action("solve", m.ctrl.StartSolving)

	case key.Matches(msg, m.keys.Delete):
		card, ok := m.selectedCard()
		if !ok {
			return m, nil
		}
		lesson := card.Lesson
		m.status = "deleting " + textview.Sanitize(card.Title()+" #"+card.LessonID.String()) + "..."
		return m, m.action("delete lesson", func(ctx context.Context) error {
			return m.ctrl.DeleteLesson(ctx, lesson)
		})

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// selection is a deletable card and the key that finds it again after a refresh
type selection struct {
	key  string
	card pivot.Card
}

// selectable returns the deletable cards of the current tab in display order
func (m watchModel) selectable() []selection {
	if m.timetable == nil {
		return nil
	}
	switch m.tab {
	case tabRoom:
		grid := m.timetable.ByRoom
		var out []selection
		for r := range grid.Rows {
			for c := range grid.Columns {
				address := grid.Address(r, c)
				for _, card := range grid.Cell(r, c) {
					out = append(out, selection{key: address + "/" + card.LessonID.String(), card: card})
				}
			}
		}
		return out
	case tabUnassigned:
		out := make([]selection, 0, len(m.timetable.Unassigned))
		for _, card := range m.timetable.Unassigned {
			out = append(out, selection{key: "unassigned/" + card.LessonID.String(), card: card})
		}
		return out
	default:
		return nil
	}
}

func (m watchModel) selectedCard() (pivot.Card, bool) {
	items := m.selectable()
	if m.selected < 0 || m.selected >= len(items) {
		return pivot.Card{}, false
	}
	return items[m.selected].card, true
}

func (m *watchModel) clampSelection() {
	items := m.selectable()
	n := len(items)
	switch {
	case n == 0:
		m.selected = 0
		m.selectedKey = ""
		return
	case m.selected >= n:
		m.selected = n - 1
	case m.selected < 0:
		m.selected = 0
	}
	m.selectedKey = items[m.selected].key
}

// restoreSelection keeps the same card selected when it is still in the
// same cell after a refresh, and falls back to the nearest index otherwise.
func (m *watchModel) restoreSelection() {
	if m.selectedKey != "" {
		for i, item := range m.selectable() {
			if item.key == m.selectedKey {
				m.selected = i
				return
			}
		}
	}
	m.clampSelection()
}

func (m *watchModel) refreshContent() {
	switch {
	case m.timetable == nil:
		m.content = m.styles.Muted.Render("(no timetable)")
	case m.tab == tabUnassigned:
		m.content = textview.RenderUnassigned(m.timetable.Unassigned, m.styles)
	default:
		m.content = textview.RenderGrid(m.timetable.Grids()[m.tab], m.styles)
	}
	if m.ready {
		m.viewport.SetContent(m.content)
	}
}

func (m watchModel) View() string {
	var sb strings.Builder

	tabs := make([]string, 0, tabCount)
	for i, title := range textview.TabTitles {
		if i == m.tab {
			tabs = append(tabs, m.styles.ActiveTab.Render(title))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(title))
		}
	}
	state := m.styles.Muted.Render("idle")
	if m.solving {
		state = m.spinner.View() + m.styles.Solving.Render("solving")
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, append(tabs, "  ", m.styles.Score.Render(m.score), "  ", state)...))
	sb.WriteString("\n\n")

	if m.ready {
		sb.WriteString(m.viewport.View())
	} else {
		sb.WriteString(m.content)
	}
	sb.WriteString("\n")

	if card, ok := m.selectedCard(); ok {
		sb.WriteString(m.styles.Selected.Render("selected: " + strings.Join(textview.CardText(card), ", ")))
	}
	sb.WriteString("\n")

	if m.err != nil {
		sb.WriteString(m.styles.Error.Render("error: " + textview.Sanitize(m.err.Error())))
	} else {
		sb.WriteString(m.styles.Muted.Render(m.status))
	}
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}
