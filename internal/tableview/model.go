package tableview

import (
	"context"
	"log"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/dynotable/internal/frame"
	"github.com/five82/dynotable/internal/loader"
	"github.com/five82/dynotable/internal/prefs"
	"github.com/five82/dynotable/internal/state"
	"github.com/five82/dynotable/internal/viewstate"
)

// Reloader triggers a manual reload of the data source.
type Reloader interface {
	Reload()
}

// Options configures a Model.
type Options[C comparable, R frame.Row[C]] struct {
	Title     string
	Table     string
	Stages    <-chan loader.Stage[frame.Frame[C, R]]
	Reloader  Reloader
	Store     *state.Store // optional; feeds the status bar
	Draw      DrawSettings
	ThemeName string // overrides Draw.Colors when set
	PrefsPath string // where theme changes are saved; empty disables saving
}

// Model is the Bubble Tea model of one table view.
type Model[C comparable, R frame.Row[C]] struct {
	// Configuration
	title     string
	table     string
	stages    <-chan loader.Stage[frame.Frame[C, R]]
	reloader  Reloader
	store     *state.Store
	draw      DrawSettings
	prefsPath string

	// Components
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	body    viewport.Model

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool

	// Data state
	stage    loader.Stage[frame.Frame[C, R]]
	current  frame.Frame[C, R]
	rows     []R
	view     *viewstate.State[C]
	snapshot state.Snapshot
	closed   bool

	// Interaction state
	focus    int // index into the visible columns
	selected int
	showHelp bool
	menu     *menu
	drag     *drag[C]
}

type drag[C comparable] struct {
	col   C
	lastX int
}

// New creates a table view model.
func New[C comparable, R frame.Row[C]](opts Options[C, R]) Model[C, R] {
	draw := opts.Draw.normalized()

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = draw.Colors
	}

	keys := defaultKeyMap()
	keys.applyDrawSettings(draw)

	m := Model[C, R]{
		title:     opts.Title,
		table:     opts.Table,
		stages:    opts.Stages,
		reloader:  opts.Reloader,
		store:     opts.Store,
		draw:      draw,
		prefsPath: opts.PrefsPath,
		keys:      keys,
		help:      help.New(),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		body:      viewport.New(0, 0),
		view:      viewstate.New[C](draw.viewOptions()),
	}
	if m.title == "" {
		m.title = "dynotable"
	}
	m.setTheme(GetTheme(themeName))
	return m
}

// Init implements tea.Model.
func (m Model[C, R]) Init() tea.Cmd {
	return tea.Batch(waitForStage(m.stages), m.spinner.Tick)
}

// Update implements tea.Model.
func (m Model[C, R]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		m.refreshBody()
		return m, nil

	case stageMsg[C, R]:
		return m.handleStage(msg.stage)

	case streamClosedMsg:
		m.closed = true
		return m, nil

	case spinner.TickMsg:
		if !m.stage.IsTrigger() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

// handleStage applies one pipeline stage. A successful load reinitializes
// the view state from the new frame's columns.
func (m Model[C, R]) handleStage(st loader.Stage[frame.Frame[C, R]]) (tea.Model, tea.Cmd) {
	m.stage = st
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
	}

	cmds := []tea.Cmd{waitForStage(m.stages)}
	switch {
	case st.Kind == loader.StageLoadSucceeded:
		m.applyFrame(st.Frame)
	case st.IsTrigger():
		cmds = append(cmds, m.spinner.Tick)
	}
	m.refreshBody()
	return m, tea.Batch(cmds...)
}

func (m *Model[C, R]) applyFrame(f frame.Frame[C, R]) {
	m.current = f
	m.drag = nil
	if f == nil {
		m.view.Load(nil)
		m.rows = nil
		return
	}
	m.view.Load(f.Columns())
	m.resort()
	m.clampFocus()
}

// resort re-applies the sort selection, keeping the selected row by ID.
func (m *Model[C, R]) resort() {
	if m.current == nil {
		m.rows = nil
		m.selected = 0
		return
	}
	var selectedID string
	if m.selected >= 0 && m.selected < len(m.rows) {
		selectedID = m.rows[m.selected].ID()
	}

	m.rows = viewstate.Sort(m.view, m.current.Rows(), m.current.Schema())

	if selectedID != "" {
		for i, r := range m.rows {
			if r.ID() == selectedID {
				m.selected = i
				return
			}
		}
	}
	m.clampSelection()
}

func (m *Model[C, R]) clampSelection() {
	if m.selected >= len(m.rows) {
		m.selected = len(m.rows) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *Model[C, R]) clampFocus() {
	n := m.view.VisibleCount()
	if m.focus >= n {
		m.focus = n - 1
	}
	if m.focus < 0 {
		m.focus = 0
	}
}

// focusedColumn returns the column keyboard gestures act on.
func (m Model[C, R]) focusedColumn() (C, bool) {
	cols := m.view.VisibleColumns()
	if m.focus < 0 || m.focus >= len(cols) {
		var zero C
		return zero, false
	}
	return cols[m.focus], true
}

func (m *Model[C, R]) reload() {
	if m.reloader != nil {
		m.reloader.Reload()
	}
}

func (m *Model[C, R]) setTheme(t Theme) {
	m.theme = t
	styles := t.Styles()
	m.spinner.Style = styles.Accent
	m.help.Styles.ShortKey = styles.Accent
	m.help.Styles.ShortDesc = styles.Muted
	m.help.Styles.ShortSeparator = styles.Faint
	m.help.Styles.FullKey = styles.Warning
	m.help.Styles.FullDesc = styles.Text
	m.help.Styles.FullSeparator = styles.Faint
	m.help.Styles.Ellipsis = styles.Faint
}

func (m *Model[C, R]) cycleTheme() {
	m.setTheme(GetTheme(NextTheme(m.theme.Name)))
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
		log.Printf("save theme preference failed: %v", err)
	}
}

// Rows returns the rows in display order.
func (m Model[C, R]) Rows() []R { return append([]R(nil), m.rows...) }

// ViewState exposes the interaction state of the view.
func (m Model[C, R]) ViewState() *viewstate.State[C] { return m.view }

// Stage returns the last stage received from the pipeline.
func (m Model[C, R]) Stage() loader.Stage[frame.Frame[C, R]] { return m.stage }

// Messages

type stageMsg[C comparable, R frame.Row[C]] struct {
	stage loader.Stage[frame.Frame[C, R]]
}

type streamClosedMsg struct{}

// Commands

func waitForStage[C comparable, R frame.Row[C]](ch <-chan loader.Stage[frame.Frame[C, R]]) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return streamClosedMsg{}
		}
		return stageMsg[C, R]{stage: st}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// ends.
func Run[C comparable, R frame.Row[C]](ctx context.Context, opts Options[C, R]) error {
	p := tea.NewProgram(New(opts),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
