package viewstate

import (
	"reflect"
	"testing"
)

type numRow struct {
	id  string
	num int
}

type numSchema struct{}

func (numSchema) Less(col string, ok bool) func(a, b numRow) bool {
	if !ok {
		return func(a, b numRow) bool { return true }
	}
	return func(a, b numRow) bool { return a.num < b.num }
}

func ids(rows []numRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.id
	}
	return out
}

func TestOrder_Cycle(t *testing.T) {
	s := loaded("a", "b")
	if s.Order() != OrderNone {
		t.Fatalf("initial order = %v, want none", s.Order())
	}

	want := []Order{OrderDescending, OrderAscending, OrderNone, OrderDescending}
	for i, w := range want {
		s.SelectSort("a")
		if s.Order() != w {
			t.Fatalf("selection %d: order = %v, want %v", i+1, s.Order(), w)
		}
	}
}

func TestOrder_DifferentColumnResetsToDescending(t *testing.T) {
	for _, presses := range []int{1, 2, 3} {
		s := loaded("a", "b")
		for i := 0; i < presses; i++ {
			s.SelectSort("a")
		}
		s.SelectSort("b")
		if col, _ := s.SortColumn(); col != "b" || s.Order() != OrderDescending {
			t.Fatalf("after %d presses on a: column=%q order=%v, want b descending", presses, col, s.Order())
		}
	}
}

func TestOrder_Glyph(t *testing.T) {
	if OrderNone.Glyph() != "" || OrderDescending.Glyph() != "▲" || OrderAscending.Glyph() != "▼" {
		t.Fatalf("unexpected glyphs")
	}
}

func TestSort_NoneIsIdentity(t *testing.T) {
	s := loaded("num")
	rows := []numRow{{"x", 3}, {"y", 1}, {"z", 2}}
	got := Sort[string, numRow](s, rows, numSchema{})
	if !reflect.DeepEqual(ids(got), []string{"x", "y", "z"}) {
		t.Fatalf("Sort with none = %v, want input order", ids(got))
	}
	if &got[0] != &rows[0] {
		t.Fatalf("Sort with none should return the input slice")
	}
}

func TestSort_DescendingAndAscending(t *testing.T) {
	s := loaded("num")
	rows := []numRow{{"x", 3}, {"y", 1}, {"z", 2}}

	s.SelectSort("num")
	if got := ids(Sort[string, numRow](s, rows, numSchema{})); !reflect.DeepEqual(got, []string{"y", "z", "x"}) {
		t.Fatalf("descending = %v, want [y z x]", got)
	}

	s.SelectSort("num")
	if got := ids(Sort[string, numRow](s, rows, numSchema{})); !reflect.DeepEqual(got, []string{"x", "z", "y"}) {
		t.Fatalf("ascending = %v, want [x z y]", got)
	}

	if !reflect.DeepEqual(ids(rows), []string{"x", "y", "z"}) {
		t.Fatalf("Sort mutated its input: %v", ids(rows))
	}
}

// sparseSchema treats negative numbers as a missing value.
type sparseSchema struct{ numSchema }

func (sparseSchema) Has(r numRow, _ string) bool { return r.num >= 0 }

func TestSort_MissingValuesLastInBothOrders(t *testing.T) {
	s := loaded("num")
	rows := []numRow{{"none", -1}, {"a", 1}, {"b", 2}}

	s.SelectSort("num")
	if got := ids(Sort[string, numRow](s, rows, sparseSchema{})); !reflect.DeepEqual(got, []string{"a", "b", "none"}) {
		t.Fatalf("descending = %v, want [a b none]", got)
	}

	s.SelectSort("num")
	if got := ids(Sort[string, numRow](s, rows, sparseSchema{})); !reflect.DeepEqual(got, []string{"b", "a", "none"}) {
		t.Fatalf("ascending = %v, want [b a none]", got)
	}
}
