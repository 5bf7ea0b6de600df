package tableview

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings of the table view.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Menu       key.Binding
	Escape     key.Binding

	// Navigation
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Column actions
	Sort        key.Binding
	Narrow      key.Binding
	Widen       key.Binding
	Hide        key.Binding
	UnhideAll   key.Binding
	ResetWidths key.Binding
	Refresh     key.Binding

	Confirm key.Binding
}

// defaultKeyMap returns the default key bindings.
func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Menu: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Column menu"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close"),
		),

		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "Previous column"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "Next column"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdown", "Page down"),
		),

		Sort: key.NewBinding(
			key.WithKeys("s", "enter"),
			key.WithHelp("s/enter", "Cycle sort"),
		),
		Narrow: key.NewBinding(
			key.WithKeys("<", ","),
			key.WithHelp("<", "Narrow column"),
		),
		Widen: key.NewBinding(
			key.WithKeys(">", "."),
			key.WithHelp(">", "Widen column"),
		),
		Hide: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Hide column"),
		),
		UnhideAll: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Unhide all"),
		),
		ResetWidths: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "Reset widths"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}

// applyDrawSettings disables bindings for gestures the settings forbid so
// they neither fire nor show up in help.
func (k *keyMap) applyDrawSettings(d DrawSettings) {
	k.Sort.SetEnabled(d.AllowResort)
	k.Narrow.SetEnabled(d.AllowResize)
	k.Widen.SetEnabled(d.AllowResize)
	k.ResetWidths.SetEnabled(d.AllowResize)
	k.Hide.SetEnabled(d.AllowHide)
	k.UnhideAll.SetEnabled(d.AllowHide)
	k.Refresh.SetEnabled(d.AllowRefresh)
	k.Menu.SetEnabled(d.ShowMenu)
}

// ShortHelp returns key bindings for the command bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Sort, k.Hide, k.Refresh, k.Menu, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.Top, k.Bottom, k.PageUp, k.PageDown},
		{k.Sort, k.Narrow, k.Widen, k.Hide, k.UnhideAll, k.ResetWidths},
		{k.Refresh, k.Menu, k.CycleTheme, k.Help, k.Quit},
	}
}
