package tableview

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/dynotable/internal/loader"
)

// resizeStep is how many cells one keyboard resize moves a border.
const resizeStep = 2

// handleKey processes keyboard input.
func (m Model[C, R]) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.menu != nil {
		return m.handleMenuKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		m.refreshBody()
		return m, nil
	}

	// The failure panel offers retry regardless of AllowRefresh.
	if m.stage.Kind == loader.StageLoadFailed {
		if msg.String() == "r" || msg.String() == "enter" {
			m.reload()
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.Refresh) {
		m.reload()
		return m, nil
	}
	if m.current == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Left):
		if m.focus > 0 {
			m.focus--
		}
	case key.Matches(msg, m.keys.Right):
		if m.focus < m.view.VisibleCount()-1 {
			m.focus++
		}
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = len(m.rows) - 1
		m.clampSelection()
	case key.Matches(msg, m.keys.PageUp):
		m.moveSelection(-m.pageRows())
	case key.Matches(msg, m.keys.PageDown):
		m.moveSelection(m.pageRows())
	case key.Matches(msg, m.keys.Sort):
		m.sortFocused()
	case key.Matches(msg, m.keys.Narrow):
		m.resizeFocused(-resizeStep)
	case key.Matches(msg, m.keys.Widen):
		m.resizeFocused(resizeStep)
	case key.Matches(msg, m.keys.Hide):
		m.hideFocused()
	case key.Matches(msg, m.keys.UnhideAll):
		m.view.UnhideAll()
	case key.Matches(msg, m.keys.ResetWidths):
		m.view.ResetWidths()
	case key.Matches(msg, m.keys.Menu):
		m.openMenu()
	default:
		return m, nil
	}
	m.refreshBody()
	return m, nil
}

func (m *Model[C, R]) moveSelection(delta int) {
	m.selected += delta
	m.clampSelection()
}

func (m Model[C, R]) pageRows() int {
	return max(m.bodyHeight()/m.draw.MinRowHeight, 1)
}

func (m *Model[C, R]) sortFocused() {
	if !m.draw.AllowResort {
		return
	}
	if col, ok := m.focusedColumn(); ok {
		m.view.SelectSort(col)
		m.resort()
	}
}

// resizeFocused moves the focused column's right border by delta cells. The
// last visible column has no right neighbour, so its left border moves
// the opposite way instead.
func (m *Model[C, R]) resizeFocused(delta int) {
	col, ok := m.focusedColumn()
	if !ok {
		return
	}
	overall := m.overall()
	if m.focus < m.view.VisibleCount()-1 {
		m.view.Resize(col, true, float64(delta), overall)
		return
	}
	m.view.Resize(col, false, float64(-delta), overall)
}

func (m *Model[C, R]) hideFocused() {
	if col, ok := m.focusedColumn(); ok && m.view.Hide(col) {
		m.clampFocus()
	}
}

// handleMouse maps clicks and drags on the header to sort and resize.
func (m Model[C, R]) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.current == nil || m.showHelp || m.menu != nil || m.stage.Kind == loader.StageLoadFailed {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.moveSelection(-1)
		case tea.MouseButtonWheelDown:
			m.moveSelection(1)
		case tea.MouseButtonLeft:
			m.handlePress(msg.X, msg.Y)
		case tea.MouseButtonRight:
			if idx, _ := m.columnAt(msg.X); idx >= 0 && m.inHeader(msg.Y) {
				m.focus = idx
				m.openMenu()
			}
		default:
			return m, nil
		}

	case tea.MouseActionMotion:
		if m.drag == nil {
			return m, nil
		}
		delta := msg.X - m.drag.lastX
		if delta == 0 {
			return m, nil
		}
		m.view.Resize(m.drag.col, true, float64(delta), m.overall())
		m.drag.lastX = msg.X

	case tea.MouseActionRelease:
		m.drag = nil
		return m, nil
	}
	m.refreshBody()
	return m, nil
}

func (m *Model[C, R]) handlePress(x, y int) {
	if !m.inHeader(y) {
		if row, ok := m.rowAt(y); ok {
			m.selected = row
		}
		return
	}
	idx, onBorder := m.columnAt(x)
	if idx < 0 {
		return
	}
	m.focus = idx
	spans := m.spans()
	if onBorder && m.draw.AllowResize {
		m.drag = &drag[C]{col: spans[idx].layout.ID, lastX: x}
		return
	}
	if m.draw.AllowResort {
		m.view.SelectSort(spans[idx].layout.ID)
		m.resort()
	}
}

// inHeader reports whether screen line y belongs to the header.
func (m Model[C, R]) inHeader(y int) bool {
	return y >= headerTop && y < headerTop+m.draw.HeaderHeight
}

// columnAt returns the visible column index under screen cell x, and
// whether x is that column's right border. It returns -1 outside the grid.
func (m Model[C, R]) columnAt(x int) (int, bool) {
	for i, s := range m.spans() {
		if x >= s.x && x < s.x+s.width {
			return i, x == s.x+s.width-1
		}
	}
	return -1, false
}

// rowAt maps a screen line inside the body to a row index.
func (m Model[C, R]) rowAt(y int) (int, bool) {
	line := y - headerTop - m.draw.HeaderHeight
	if line < 0 || line >= m.bodyHeight() {
		return 0, false
	}
	line += m.body.YOffset
	spans := m.spans()
	top := 0
	for i, r := range m.rows {
		h := m.rowHeight(r, spans)
		if line < top+h {
			return i, true
		}
		top += h
	}
	return 0, false
}
