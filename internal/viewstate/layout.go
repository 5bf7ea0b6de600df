package viewstate

// ColumnLayout is one fully resolved column for a renderer.
type ColumnLayout[C comparable] struct {
	ID       C
	Position int
	Width    float64
	Sorted   bool
	Glyph    string
}

// Layout resolves the visible columns, in position order, for a view of the
// given overall width.
func (s *State[C]) Layout(overall float64) []ColumnLayout[C] {
	cols := s.VisibleColumns()
	out := make([]ColumnLayout[C], len(cols))
	for i, col := range cols {
		sorted := s.hasSort && s.sortColumn == col && s.order != OrderNone
		glyph := ""
		if sorted {
			glyph = s.order.Glyph()
		}
		out[i] = ColumnLayout[C]{
			ID:       col,
			Position: s.positions[col],
			Width:    s.ColumnWidth(col, overall),
			Sorted:   sorted,
			Glyph:    glyph,
		}
	}
	return out
}
