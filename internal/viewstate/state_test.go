package viewstate

import (
	"fmt"
	"math"
	"reflect"
	"testing"
)

func columnsOf(n int) []string {
	cols := make([]string, n)
	for i := range cols {
		cols[i] = fmt.Sprintf("c%d", i)
	}
	return cols
}

func loaded(cols ...string) *State[string] {
	s := New[string](DefaultOptions())
	s.Load(cols)
	return s
}

func TestLoad_PositionsAreBijection(t *testing.T) {
	for n := 1; n <= 8; n++ {
		s := New[string](DefaultOptions())
		s.Load(columnsOf(n))

		if s.VisibleCount() != n {
			t.Fatalf("n=%d: VisibleCount = %d", n, s.VisibleCount())
		}
		seen := make(map[int]bool)
		for col, pos := range s.Positions() {
			if pos < 0 || pos >= n || seen[pos] {
				t.Fatalf("n=%d: column %s has bad position %d", n, col, pos)
			}
			seen[pos] = true
		}
		if !reflect.DeepEqual(s.Positions(), s.OriginalPositions()) {
			t.Fatalf("n=%d: original snapshot differs from positions", n)
		}
		for _, col := range columnsOf(n) {
			if s.WidthFactor(col) != 1 {
				t.Fatalf("n=%d: factor(%s) = %v, want 1", n, col, s.WidthFactor(col))
			}
		}
	}
}

func TestLoad_ReplacesPreviousState(t *testing.T) {
	s := loaded("a", "b", "c")
	s.Hide("a")
	s.Resize("b", true, 30, 300)
	s.SelectSort("c")

	s.Load([]string{"x", "y"})

	if got, want := s.Positions(), map[string]int{"x": 0, "y": 1}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Positions = %v, want %v", got, want)
	}
	if s.WidthFactor("x") != 1 || s.WidthFactor("y") != 1 {
		t.Fatalf("factors not reset after load")
	}
	if col, ok := s.SortColumn(); !ok || col != "c" {
		t.Fatalf("sort selection should survive a reload, got %q %v", col, ok)
	}
}

func TestHide_NeverBelowOneVisible(t *testing.T) {
	s := loaded(columnsOf(4)...)
	for round := 0; round < 3; round++ {
		for _, col := range columnsOf(4) {
			s.Hide(col)
			if s.VisibleCount() < 1 {
				t.Fatalf("VisibleCount dropped to %d", s.VisibleCount())
			}
		}
	}
	if s.VisibleCount() != 1 {
		t.Fatalf("VisibleCount = %d, want 1", s.VisibleCount())
	}
	if s.CanHide() {
		t.Fatalf("CanHide = true with one visible column")
	}
}

func TestHide_UnknownOrDisallowed(t *testing.T) {
	s := loaded("a", "b")
	if s.Hide("zzz") {
		t.Fatalf("Hide(unknown) = true")
	}

	opts := DefaultOptions()
	opts.AllowHide = false
	s = New[string](opts)
	s.Load([]string{"a", "b"})
	if s.Hide("a") || s.VisibleCount() != 2 {
		t.Fatalf("Hide should be a no-op when hiding is disallowed")
	}
}

func TestUnhideAll_RestoresOriginal(t *testing.T) {
	s := loaded(columnsOf(5)...)
	s.Hide("c1")
	s.Hide("c3")
	s.Hide("c0")
	s.Resize("c2", true, 10, 500)
	before := s.WidthFactor("c2")
	s.SelectSort("c4")

	s.UnhideAll()

	if !reflect.DeepEqual(s.Positions(), s.OriginalPositions()) {
		t.Fatalf("Positions = %v, want %v", s.Positions(), s.OriginalPositions())
	}
	if s.WidthFactor("c2") != before {
		t.Fatalf("UnhideAll changed width factors")
	}
	if col, _ := s.SortColumn(); col != "c4" || s.Order() != OrderDescending {
		t.Fatalf("UnhideAll changed sort state")
	}
}

func TestVisibleColumns_OrderedByPosition(t *testing.T) {
	s := loaded("id", "name", "era", "length")
	s.Hide("name")
	if got, want := s.VisibleColumns(), []string{"id", "era", "length"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("VisibleColumns = %v, want %v", got, want)
	}
}

func TestColumnWidth(t *testing.T) {
	s := loaded("a", "b", "c", "d")
	if got := s.ColumnWidth("a", 400); got != 100 {
		t.Fatalf("ColumnWidth = %v, want 100", got)
	}
	if got := s.ColumnWidth("a", 40); got != DefaultMinWidth {
		t.Fatalf("ColumnWidth below floor = %v, want %v", got, DefaultMinWidth)
	}
	if got := New[string](DefaultOptions()).ColumnWidth("a", 400); got != DefaultMinWidth {
		t.Fatalf("ColumnWidth with no columns = %v, want floor", got)
	}
}

func TestResetWidths_EvenSplit(t *testing.T) {
	s := loaded(columnsOf(3)...)
	s.Resize("c0", true, 50, 300)
	s.Resize("c2", false, -20, 300)
	s.ResetWidths()

	for _, w := range []float64{0, 10, 60, 300, 1234.5} {
		for _, col := range s.VisibleColumns() {
			want := math.Max(w/3, DefaultMinWidth)
			if got := s.ColumnWidth(col, w); got != want {
				t.Fatalf("ColumnWidth(%s, %v) = %v, want %v", col, w, got, want)
			}
		}
	}
}

func TestResize_ConservesFactors(t *testing.T) {
	cases := []struct {
		id        string
		rightEdge bool
		delta     float64
	}{
		{"c1", true, 25},
		{"c1", true, -25},
		{"c1", false, 40},
		{"c1", false, -40},
		{"c0", true, 1000},
		{"c3", false, -1000},
		{"c2", true, 3.5},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s/%v/%v", tc.id, tc.rightEdge, tc.delta), func(t *testing.T) {
			s := loaded(columnsOf(4)...)
			const overall = 400.0
			before := 0.0
			for _, col := range columnsOf(4) {
				before += s.WidthFactor(col)
			}

			if !s.Resize(tc.id, tc.rightEdge, tc.delta, overall) {
				t.Fatalf("Resize reported no change")
			}

			after := 0.0
			for _, col := range columnsOf(4) {
				after += s.WidthFactor(col)
				if w := overall / 4 * s.WidthFactor(col); w < DefaultMinWidth-1e-9 {
					t.Fatalf("column %s raw width %v fell below floor", col, w)
				}
			}
			if math.Abs(before-after) > 1e-9 {
				t.Fatalf("factor sum %v -> %v, want conserved", before, after)
			}
		})
	}
}

func TestResize_MovesWidthBetweenNeighbours(t *testing.T) {
	s := loaded("a", "b", "c")
	// 300 wide, 3 columns: a drag of 30 is a factor delta of 0.3.
	s.Resize("a", true, 30, 300)
	if math.Abs(s.WidthFactor("a")-1.3) > 1e-9 || math.Abs(s.WidthFactor("b")-0.7) > 1e-9 {
		t.Fatalf("factors a=%v b=%v, want 1.3 / 0.7", s.WidthFactor("a"), s.WidthFactor("b"))
	}
	if s.WidthFactor("c") != 1 {
		t.Fatalf("non-adjacent column changed: %v", s.WidthFactor("c"))
	}

	// Dragging the left border of c to the left widens c and narrows b.
	s.Resize("c", false, -10, 300)
	if math.Abs(s.WidthFactor("b")-0.6) > 1e-9 || math.Abs(s.WidthFactor("c")-1.1) > 1e-9 {
		t.Fatalf("factors b=%v c=%v, want 0.6 / 1.1", s.WidthFactor("b"), s.WidthFactor("c"))
	}
}

func TestResize_ClampsAtFloor(t *testing.T) {
	s := loaded("a", "b")
	// 200 wide: each column 100, floor 20 leaves 80 to give away.
	s.Resize("a", true, 500, 200)
	if got := s.ColumnWidth("b", 200); math.Abs(got-DefaultMinWidth) > 1e-9 {
		t.Fatalf("ColumnWidth(b) = %v, want floor", got)
	}
	if got := s.ColumnWidth("a", 200); math.Abs(got-180) > 1e-9 {
		t.Fatalf("ColumnWidth(a) = %v, want 180", got)
	}
	s.Resize("a", true, 5, 200)
	if got := s.ColumnWidth("b", 200); math.Abs(got-DefaultMinWidth) > 1e-9 {
		t.Fatalf("ColumnWidth(b) after second drag = %v, want floor", got)
	}
}

func TestResize_NoNeighbourIsNoop(t *testing.T) {
	s := loaded("a", "b", "c")
	if s.Resize("a", false, 10, 300) {
		t.Fatalf("left edge of first column should be a no-op")
	}
	if s.Resize("c", true, 10, 300) {
		t.Fatalf("right edge of last column should be a no-op")
	}
	if s.Resize("missing", true, 10, 300) {
		t.Fatalf("unknown column should be a no-op")
	}
	for _, col := range []string{"a", "b", "c"} {
		if s.WidthFactor(col) != 1 {
			t.Fatalf("factor(%s) = %v after no-op resizes", col, s.WidthFactor(col))
		}
	}
}

func TestResize_SkipsHiddenColumns(t *testing.T) {
	s := loaded("a", "b", "c")
	s.Hide("b")
	if !s.Resize("a", true, 10, 200) {
		t.Fatalf("Resize should reach the next visible column")
	}
	if s.WidthFactor("c") >= 1 || s.WidthFactor("b") != 1 {
		t.Fatalf("factors a=%v b=%v c=%v", s.WidthFactor("a"), s.WidthFactor("b"), s.WidthFactor("c"))
	}
}

func TestResize_Disallowed(t *testing.T) {
	opts := DefaultOptions()
	opts.AllowResize = false
	s := New[string](opts)
	s.Load([]string{"a", "b"})
	if s.Resize("a", true, 10, 200) || s.WidthFactor("a") != 1 {
		t.Fatalf("Resize should be a no-op when resizing is disallowed")
	}
}

func TestIDScenario_HideAndUnhide(t *testing.T) {
	s := New[string](DefaultOptions())
	s.Load([]string{"id", "name"})

	if got, want := s.Positions(), map[string]int{"id": 0, "name": 1}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Positions = %v, want %v", got, want)
	}
	if !s.Hide("id") || s.VisibleCount() != 1 {
		t.Fatalf("hiding id failed, VisibleCount = %d", s.VisibleCount())
	}
	if s.Hide("name") || s.VisibleCount() != 1 {
		t.Fatalf("hiding the last column should be rejected")
	}
	s.UnhideAll()
	if s.VisibleCount() != 2 {
		t.Fatalf("UnhideAll restored %d columns, want 2", s.VisibleCount())
	}
}

func TestLayout(t *testing.T) {
	s := loaded("a", "b", "c")
	s.Hide("a")
	s.SelectSort("c")

	got := s.Layout(100)
	if len(got) != 2 {
		t.Fatalf("Layout returned %d columns, want 2", len(got))
	}
	if got[0].ID != "b" || got[0].Sorted || got[0].Glyph != "" || got[0].Width != 50 {
		t.Fatalf("layout[0] = %+v", got[0])
	}
	if got[1].ID != "c" || !got[1].Sorted || got[1].Glyph != "▲" || got[1].Position != 2 {
		t.Fatalf("layout[1] = %+v", got[1])
	}
}
