package viewstate

import (
	"math"
	"sort"
)

// DefaultMinWidth is the narrowest width ColumnWidth ever reports.
const DefaultMinWidth = 20.0

// Options gate the mutating gestures and set the width floor.
type Options struct {
	AllowHide   bool
	AllowResize bool
	MinWidth    float64
}

// DefaultOptions enables every gesture with the default width floor.
func DefaultOptions() Options {
	return Options{AllowHide: true, AllowResize: true, MinWidth: DefaultMinWidth}
}

// State holds the layout customizations of one table view: visible column
// positions, width factors and the sort selection. It is not safe for
// concurrent use; mutate it only from the renderer's event loop.
type State[C comparable] struct {
	opts Options

	sortColumn C
	hasSort    bool
	order      Order

	positions map[C]int
	original  map[C]int
	factors   map[C]float64
}

// New returns an empty State. Call Load once a frame arrives.
func New[C comparable](opts Options) *State[C] {
	if opts.MinWidth <= 0 {
		opts.MinWidth = DefaultMinWidth
	}
	return &State[C]{
		opts:      opts,
		positions: make(map[C]int),
		original:  make(map[C]int),
		factors:   make(map[C]float64),
	}
}

// Options returns the gesture options.
func (s *State[C]) Options() Options { return s.opts }

// Load rebuilds positions and widths from a freshly loaded frame's columns.
// Hidden columns and width factors from a previous frame are discarded; the
// sort selection is kept.
func (s *State[C]) Load(columns []C) {
	s.positions = make(map[C]int, len(columns))
	s.factors = make(map[C]float64, len(columns))
	for i, col := range columns {
		s.positions[col] = i
		s.factors[col] = 1
	}
	s.original = copyPositions(s.positions)
}

// VisibleCount returns the number of columns not hidden.
func (s *State[C]) VisibleCount() int { return len(s.positions) }

// Position returns the position of a visible column.
func (s *State[C]) Position(id C) (int, bool) {
	pos, ok := s.positions[id]
	return pos, ok
}

// Positions returns a copy of the visible column positions.
func (s *State[C]) Positions() map[C]int { return copyPositions(s.positions) }

// OriginalPositions returns a copy of the positions snapshot taken at load.
func (s *State[C]) OriginalPositions() map[C]int { return copyPositions(s.original) }

// WidthFactor returns the width factor of id (1 when unknown).
func (s *State[C]) WidthFactor(id C) float64 {
	if f, ok := s.factors[id]; ok {
		return f
	}
	return 1
}

// VisibleColumns returns the visible columns ordered by position.
func (s *State[C]) VisibleColumns() []C {
	cols := make([]C, 0, len(s.positions))
	for col := range s.positions {
		cols = append(cols, col)
	}
	sort.Slice(cols, func(i, j int) bool { return s.positions[cols[i]] < s.positions[cols[j]] })
	return cols
}

// ColumnWidth splits overall evenly between visible columns, scales the
// share by id's width factor and never reports less than the width floor.
func (s *State[C]) ColumnWidth(id C, overall float64) float64 {
	n := len(s.positions)
	if n == 0 {
		return s.opts.MinWidth
	}
	return math.Max(overall/float64(n)*s.WidthFactor(id), s.opts.MinWidth)
}

// Resize applies a border drag of delta units to column id. Width moves
// between id and its nearest visible neighbour on the dragged side, so the
// two factors always sum to the same total. The delta is clamped so neither
// column drops below the width floor. It reports whether anything changed.
func (s *State[C]) Resize(id C, rightEdge bool, delta, overall float64) bool {
	if !s.opts.AllowResize || overall <= 0 || delta == 0 {
		return false
	}
	if _, ok := s.positions[id]; !ok {
		return false
	}
	neighbour, ok := s.neighbour(id, rightEdge)
	if !ok {
		return false
	}

	// Treat every drag as a drag on the border between left and right.
	left, right := id, neighbour
	if !rightEdge {
		left, right = neighbour, id
	}

	scale := float64(len(s.positions)) / overall
	floor := s.opts.MinWidth * scale
	d := delta * scale
	if d < 0 {
		d = math.Max(d, math.Min(0, floor-s.factors[left]))
	} else {
		d = math.Min(d, math.Max(0, s.factors[right]-floor))
	}
	if d == 0 {
		return false
	}
	s.factors[left] += d
	s.factors[right] -= d
	return true
}

func (s *State[C]) neighbour(id C, rightEdge bool) (C, bool) {
	pos := s.positions[id]
	var (
		best  C
		found bool
		bestP int
	)
	for col, p := range s.positions {
		if rightEdge && p > pos && (!found || p < bestP) {
			best, bestP, found = col, p, true
		}
		if !rightEdge && p < pos && (!found || p > bestP) {
			best, bestP, found = col, p, true
		}
	}
	return best, found
}

// Hide removes id from the visible columns. Hiding the last visible column
// is refused. It reports whether the column was hidden.
func (s *State[C]) Hide(id C) bool {
	if !s.opts.AllowHide || len(s.positions) <= 1 {
		return false
	}
	if _, ok := s.positions[id]; !ok {
		return false
	}
	delete(s.positions, id)
	return true
}

// CanHide reports whether Hide would currently succeed for a visible column.
func (s *State[C]) CanHide() bool {
	return s.opts.AllowHide && len(s.positions) > 1
}

// UnhideAll restores the positions captured at load. Widths and sort are
// untouched.
func (s *State[C]) UnhideAll() {
	s.positions = copyPositions(s.original)
}

// ResetWidths sets every width factor back to 1.
func (s *State[C]) ResetWidths() {
	for col := range s.factors {
		s.factors[col] = 1
	}
}

// SelectSort advances the sort cycle for id. Selecting the current sort
// column steps none → descending → ascending → none; any other column starts
// at descending.
func (s *State[C]) SelectSort(id C) {
	if s.hasSort && s.sortColumn == id {
		s.order = s.order.Next()
		return
	}
	s.sortColumn = id
	s.hasSort = true
	s.order = OrderDescending
}

// SortColumn returns the selected sort column, if any.
func (s *State[C]) SortColumn() (C, bool) { return s.sortColumn, s.hasSort }

// Order returns the current sort order.
func (s *State[C]) Order() Order { return s.order }

func copyPositions[C comparable](src map[C]int) map[C]int {
	dup := make(map[C]int, len(src))
	for k, v := range src {
		dup[k] = v
	}
	return dup
}
