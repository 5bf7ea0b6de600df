package tableview

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type menuAction int

const (
	actionSort menuAction = iota
	actionHide
	actionResetWidths
	actionUnhideAll
	actionRefresh
)

type menuItem struct {
	action   menuAction
	label    string
	disabled bool
}

// menu is the per-column action menu.
type menu struct {
	title  string
	items  []menuItem
	cursor int
}

// openMenu shows the action menu for the focused column. Items follow the
// draw settings; nothing opens when every action is disabled.
func (m *Model[C, R]) openMenu() {
	if !m.draw.ShowMenu {
		return
	}
	col, ok := m.focusedColumn()
	if !ok {
		return
	}

	var items []menuItem
	if m.draw.AllowResort {
		items = append(items, menuItem{action: actionSort, label: "Cycle sort"})
	}
	if m.draw.AllowHide {
		items = append(items, menuItem{action: actionHide, label: "Hide column", disabled: !m.view.CanHide()})
	}
	if m.draw.AllowResize {
		items = append(items, menuItem{action: actionResetWidths, label: "Reset widths"})
	}
	if m.draw.AllowHide {
		items = append(items, menuItem{action: actionUnhideAll, label: "Unhide all"})
	}
	if m.draw.AllowRefresh {
		items = append(items, menuItem{action: actionRefresh, label: "Refresh"})
	}
	if len(items) == 0 {
		return
	}
	m.menu = &menu{title: m.current.Schema().Header(col), items: items}
}

func (m Model[C, R]) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Menu), key.Matches(msg, m.keys.Quit):
		m.menu = nil
	case key.Matches(msg, m.keys.Up):
		if m.menu.cursor > 0 {
			m.menu.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.menu.cursor < len(m.menu.items)-1 {
			m.menu.cursor++
		}
	case key.Matches(msg, m.keys.Confirm):
		item := m.menu.items[m.menu.cursor]
		if item.disabled {
			return m, nil
		}
		m.menu = nil
		m.runAction(item.action)
		m.refreshBody()
	}
	return m, nil
}

func (m *Model[C, R]) runAction(a menuAction) {
	switch a {
	case actionSort:
		m.sortFocused()
	case actionHide:
		m.hideFocused()
	case actionResetWidths:
		m.view.ResetWidths()
	case actionUnhideAll:
		m.view.UnhideAll()
	case actionRefresh:
		m.reload()
	}
}

// renderMenu renders the action menu as a centered modal.
func (m Model[C, R]) renderMenu() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(truncate(m.menu.title, 28)))
	b.WriteString("\n")
	b.WriteString(styles.Faint.Render(strings.Repeat("─", 28)))
	b.WriteString("\n")

	for i, item := range m.menu.items {
		style := styles.Text
		prefix := "  "
		if item.disabled {
			style = styles.Faint
		}
		if i == m.menu.cursor {
			prefix = "› "
			style = style.Foreground(lipgloss.Color(m.theme.Accent)).Bold(true)
		}
		b.WriteString(style.Render(prefix + item.label))
		if i < len(m.menu.items)-1 {
			b.WriteString("\n")
		}
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(36)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
