package tableview

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/dynotable/internal/loader"
	"github.com/five82/dynotable/internal/viewstate"
)

// headerTop is the screen line of the first header line; the status bar
// sits above it.
const headerTop = 1

// span is a resolved column rounded to whole terminal cells.
type span[C comparable] struct {
	layout viewstate.ColumnLayout[C]
	x      int
	width  int
}

// View implements tea.Model.
func (m Model[C, R]) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.menu != nil {
		return m.renderMenu()
	}

	var b strings.Builder
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	return b.String()
}

func (m Model[C, R]) overall() float64 { return float64(m.width) }

// bodyHeight is the number of lines left for rows.
func (m Model[C, R]) bodyHeight() int {
	return max(m.height-2-m.draw.HeaderHeight, 1)
}

// spans rounds the view state layout to cells. Rounding the running total
// keeps the columns summing to the overall width.
func (m Model[C, R]) spans() []span[C] {
	layout := m.view.Layout(m.overall())
	out := make([]span[C], 0, len(layout))
	acc, x := 0.0, 0
	for _, col := range layout {
		acc += col.Width
		end := max(int(math.Round(acc)), x+1)
		out = append(out, span[C]{layout: col, x: x, width: end - x})
		x = end
	}
	return out
}

// rowHeight returns the lines row r occupies, between the configured
// minimum and maximum.
func (m Model[C, R]) rowHeight(r R, spans []span[C]) int {
	if m.draw.MaxRowHeight == m.draw.MinRowHeight {
		return m.draw.MinRowHeight
	}
	need := 1
	for _, s := range spans {
		need = max(need, lineCount(r.Cell(s.layout.ID), s.width-1))
	}
	return min(max(need, m.draw.MinRowHeight), m.draw.MaxRowHeight)
}

// renderStatusBar renders the title, stage and load bookkeeping.
func (m Model[C, R]) renderStatusBar() string {
	styles := m.theme.Styles()
	bar := styles.Bar
	on := func(s lipgloss.Style) lipgloss.Style { return s.Inherit(bar) }
	sep := bar.Render("  ")

	parts := []string{on(styles.Accent).Bold(true).Render(m.title)}
	if m.table != "" {
		parts = append(parts, on(styles.Text).Render(m.table))
	}

	label, style := m.stageLabel(styles)
	if m.stage.IsTrigger() {
		label = m.spinner.View() + bar.Render(" ") + on(style).Render(label)
	} else {
		label = on(style).Render(label)
	}
	parts = append(parts, label)

	if m.current != nil {
		parts = append(parts,
			on(styles.Muted).Render("Rows:")+bar.Render(" ")+
				on(styles.Text).Render(fmt.Sprintf("%d", len(m.rows))))
	}
	if !m.snapshot.LastSuccess.IsZero() {
		parts = append(parts,
			on(styles.Muted).Render("Updated:")+bar.Render(" ")+
				on(styles.Text).Render(m.snapshot.LastSuccess.Format("15:04:05")))
	}
	if m.snapshot.IsOffline() {
		parts = append(parts, on(styles.Danger).Render(
			fmt.Sprintf("OFFLINE (%d failures)", m.snapshot.ConsecutiveFailures)))
	}
	if m.closed {
		parts = append(parts, on(styles.Faint).Render("stopped"))
	}

	return bar.Width(m.width).MaxWidth(m.width).Render(strings.Join(parts, sep))
}

func (m Model[C, R]) stageLabel(styles Styles) (string, lipgloss.Style) {
	switch m.stage.Kind {
	case loader.StageLoadingInitialised:
		return "Loading…", styles.Warning
	case loader.StageLoadingUnderway:
		return "Updating…", styles.Warning
	case loader.StageRefreshing:
		return "Refreshing…", styles.Warning
	case loader.StageLoadSucceeded:
		return "Loaded", styles.Success
	case loader.StageLoadFailed:
		return "Load failed", styles.Danger
	default:
		return "Idle", styles.Muted
	}
}

// renderContent renders the header and body, or a placeholder panel.
func (m Model[C, R]) renderContent() string {
	height := m.draw.HeaderHeight + m.bodyHeight()
	styles := m.theme.Styles()

	switch {
	case m.stage.Kind == loader.StageLoadFailed:
		msg := styles.Danger.Render("Failed to load data. Press r to retry")
		if m.stage.Err != nil {
			msg += "\n\n" + styles.Muted.Render(truncate(m.stage.Err.Error(), max(m.width-4, 10)))
		}
		return m.place(height, msg)
	case m.current == nil && m.stage.IsTrigger():
		return m.place(height, m.spinner.View()+" "+styles.Muted.Render("Loading table…"))
	case m.current == nil:
		return m.place(height, styles.Muted.Render("No data"))
	case len(m.current.Columns()) == 0:
		return m.place(height, styles.Muted.Render("Table is empty"))
	}
	return m.renderHeader() + "\n" + m.body.View()
}

func (m Model[C, R]) place(height int, content string) string {
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, lipgloss.NewStyle().Align(lipgloss.Center).Render(content))
}

// renderHeader renders the column headers with the sort glyph. The focused
// column is highlighted.
func (m Model[C, R]) renderHeader() string {
	styles := m.theme.Styles()
	schema := m.current.Schema()
	spans := m.spans()
	lines := make([]string, m.draw.HeaderHeight)

	for i, s := range spans {
		text := schema.Header(s.layout.ID)
		if s.layout.Glyph != "" {
			text = s.layout.Glyph + " " + text
		}
		style := styles.Header
		if i == m.focus {
			style = styles.HeaderHot
		}
		cell := wrapLines(text, s.width-1, m.draw.HeaderHeight)
		for j := range lines {
			var part string
			if j < len(cell) {
				part = cell[j]
			}
			lines[j] += style.Render(fit(part, s.width-1)) + styles.GridLine.Inherit(styles.Header).Render(m.border(i, spans))
		}
	}
	clip := lipgloss.NewStyle().MaxWidth(m.width)
	for j := range lines {
		lines[j] = clip.Render(lines[j])
	}
	return strings.Join(lines, "\n")
}

// border returns the separator drawn after column i. Draggable borders
// are marked when resizing is allowed.
func (m Model[C, R]) border(i int, spans []span[C]) string {
	if m.draw.AllowResize && i < len(spans)-1 {
		return "┃"
	}
	return "│"
}

// renderRows renders every row in display order.
func (m Model[C, R]) renderRows() string {
	if len(m.rows) == 0 {
		return m.theme.Styles().Muted.Render("No items")
	}
	styles := m.theme.Styles()
	spans := m.spans()
	clip := lipgloss.NewStyle().MaxWidth(m.width)

	var out []string
	for i, r := range m.rows {
		h := m.rowHeight(r, spans)
		style := styles.Cell
		if i == m.selected {
			style = styles.Selected
		}
		lines := make([]string, h)
		for _, s := range spans {
			cell := wrapLines(r.Cell(s.layout.ID), s.width-1, h)
			for j := range lines {
				var part string
				if j < len(cell) {
					part = cell[j]
				}
				lines[j] += style.Render(fit(part, s.width-1)) + styles.GridLine.Inherit(style).Render("│")
			}
		}
		for _, line := range lines {
			out = append(out, clip.Render(line))
		}
	}
	return strings.Join(out, "\n")
}

// refreshBody re-renders the rows into the viewport and scrolls the
// selected row into view.
func (m *Model[C, R]) refreshBody() {
	if !m.ready {
		return
	}
	m.body.Width = m.width
	m.body.Height = m.bodyHeight()
	if m.current == nil {
		m.body.SetContent("")
		return
	}
	m.body.SetContent(m.renderRows())

	spans := m.spans()
	top := 0
	for i := 0; i < m.selected && i < len(m.rows); i++ {
		top += m.rowHeight(m.rows[i], spans)
	}
	h := 1
	if m.selected < len(m.rows) {
		h = m.rowHeight(m.rows[m.selected], spans)
	}
	switch {
	case top < m.body.YOffset:
		m.body.SetYOffset(top)
	case top+h > m.body.YOffset+m.body.Height:
		m.body.SetYOffset(top + h - m.body.Height)
	}
}

// renderCommandBar renders the short help plus the theme indicator.
func (m Model[C, R]) renderCommandBar() string {
	styles := m.theme.Styles()
	h := m.help
	h.ShowAll = false
	hints := h.View(m.keys)
	theme := styles.Accent.Render("T") + styles.Faint.Render(":"+m.theme.Name)
	return styles.Bar.Width(m.width).MaxWidth(m.width).Render(hints + "  " + theme)
}

// renderHelp renders the help overlay.
func (m Model[C, R]) renderHelp() string {
	styles := m.theme.Styles()

	h := m.help
	h.ShowAll = true

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.Faint.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")
	b.WriteString(h.View(m.keys))
	if m.draw.AllowResort || m.draw.AllowResize {
		b.WriteString("\n\n")
		b.WriteString(styles.Accent.Bold(true).Render("Mouse"))
		b.WriteString("\n")
		if m.draw.AllowResort {
			b.WriteString(styles.Text.Render("click header   cycle sort"))
			b.WriteString("\n")
		}
		if m.draw.AllowResize {
			b.WriteString(styles.Text.Render("drag ┃ border  resize column"))
			b.WriteString("\n")
		}
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2)

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
