package viewstate

import "sort"

// Order is the three-state sort cycle.
type Order int

const (
	OrderNone Order = iota
	OrderDescending
	OrderAscending
)

// Next returns the order reached by selecting the same column again.
func (o Order) Next() Order {
	switch o {
	case OrderNone:
		return OrderDescending
	case OrderDescending:
		return OrderAscending
	default:
		return OrderNone
	}
}

// Glyph returns the header indicator for o.
func (o Order) Glyph() string {
	switch o {
	case OrderAscending:
		return "▼"
	case OrderDescending:
		return "▲"
	default:
		return ""
	}
}

func (o Order) String() string {
	switch o {
	case OrderAscending:
		return "ascending"
	case OrderDescending:
		return "descending"
	default:
		return "none"
	}
}

// Comparer produces the "a comes before b" comparator for a column.
// frame.Schema satisfies it.
type Comparer[C comparable, R any] interface {
	Less(col C, ok bool) func(a, b R) bool
}

// Presence is implemented by comparers that know whether a row carries a
// value for a column. Sort places rows without one last in either order.
type Presence[C comparable, R any] interface {
	Has(row R, col C) bool
}

// Sort orders rows for display. With OrderNone rows is returned as is.
// Descending uses the column comparator directly; ascending uses its
// negation, which is not a strict ordering: equal rows may swap places.
func Sort[C comparable, R any](s *State[C], rows []R, cmp Comparer[C, R]) []R {
	if s.order == OrderNone {
		return rows
	}
	less := cmp.Less(s.sortColumn, s.hasSort)

	out := make([]R, 0, len(rows))
	var missing []R
	if p, ok := cmp.(Presence[C, R]); ok && s.hasSort {
		for _, r := range rows {
			if p.Has(r, s.sortColumn) {
				out = append(out, r)
			} else {
				missing = append(missing, r)
			}
		}
	} else {
		out = append(out, rows...)
	}

	if s.order == OrderDescending {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	} else {
		sort.SliceStable(out, func(i, j int) bool { return !less(out[i], out[j]) })
	}
	return append(out, missing...)
}
