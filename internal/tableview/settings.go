package tableview

import "github.com/five82/dynotable/internal/viewstate"

// DrawSettings is the presentation bundle of a table view. Heights are in
// terminal lines, MinWidth in cells.
type DrawSettings struct {
	HeaderHeight int
	MinRowHeight int
	MaxRowHeight int

	AllowHide    bool
	AllowResize  bool
	AllowRefresh bool
	AllowResort  bool
	ShowMenu     bool

	Colors   string // theme name
	MinWidth int
}

// DefaultDrawSettings enables every gesture with single-line rows.
func DefaultDrawSettings() DrawSettings {
	return DrawSettings{
		HeaderHeight: 1,
		MinRowHeight: 1,
		MaxRowHeight: 1,
		AllowHide:    true,
		AllowResize:  true,
		AllowRefresh: true,
		AllowResort:  true,
		ShowMenu:     true,
		Colors:       themeOrder[0],
		MinWidth:     int(viewstate.DefaultMinWidth),
	}
}

// normalized clamps heights to at least one line and keeps
// MaxRowHeight >= MinRowHeight.
func (d DrawSettings) normalized() DrawSettings {
	d.HeaderHeight = max(d.HeaderHeight, 1)
	d.MinRowHeight = max(d.MinRowHeight, 1)
	d.MaxRowHeight = max(d.MaxRowHeight, d.MinRowHeight)
	if d.MinWidth <= 0 {
		d.MinWidth = int(viewstate.DefaultMinWidth)
	}
	return d
}

// viewOptions maps the settings the interaction engine must also respect.
func (d DrawSettings) viewOptions() viewstate.Options {
	return viewstate.Options{
		AllowHide:   d.AllowHide,
		AllowResize: d.AllowResize,
		MinWidth:    float64(d.MinWidth),
	}
}
