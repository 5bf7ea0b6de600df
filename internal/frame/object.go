package frame

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/five82/dynotable/internal/attr"
	"github.com/five82/dynotable/internal/source"
)

// Object is an untyped row: an attribute map as returned by a scan.
type Object struct {
	id   string
	data attr.Item
}

// NewObject wraps item with a freshly generated row ID.
func NewObject(item attr.Item) Object {
	data := make(attr.Item, len(item))
	for k, v := range item {
		data[k] = v
	}
	return Object{id: uuid.NewString(), data: data}
}

// ID implements Row.
func (o Object) ID() string { return o.id }

// Cell implements Row. Missing columns render empty.
func (o Object) Cell(col string) string {
	v, ok := o.data[col]
	if !ok {
		return ""
	}
	return attr.Display(v)
}

// Value returns the raw attribute for col.
func (o Object) Value(col string) (attr.Value, bool) {
	v, ok := o.data[col]
	return v, ok
}

// ObjectSchema is the static contract for Object rows.
type ObjectSchema struct{}

// Header renders the column name verbatim.
func (ObjectSchema) Header(col string) string { return col }

// Less orders Objects by the attribute at col. Rows missing the column sort
// after rows that have it; two missing rows report false.
func (ObjectSchema) Less(col string, ok bool) func(a, b Object) bool {
	if !ok {
		return alwaysBefore[Object]
	}
	return func(a, b Object) bool {
		av, aok := a.data[col]
		bv, bok := b.data[col]
		switch {
		case !aok:
			return false
		case !bok:
			return true
		}
		return attr.Less(av, bv)
	}
}

// Has reports whether o carries a value for col. viewstate.Sort uses it to
// keep rows without the column last in both orders.
func (ObjectSchema) Has(o Object, col string) bool {
	_, ok := o.data[col]
	return ok
}

// ObjectFrame is a Frame built from raw attribute maps. Its columns are the
// sorted union of every row's attribute names.
type ObjectFrame struct {
	columns []string
	rows    []Object
}

// NewObjectFrame builds a frame from scanned items.
func NewObjectFrame(items []attr.Item) *ObjectFrame {
	seen := make(map[string]struct{})
	rows := make([]Object, len(items))
	for i, item := range items {
		for k := range item {
			seen[k] = struct{}{}
		}
		rows[i] = NewObject(item)
	}
	columns := make([]string, 0, len(seen))
	for k := range seen {
		columns = append(columns, k)
	}
	sort.Strings(columns)
	return &ObjectFrame{columns: columns, rows: rows}
}

// Columns implements Frame.
func (f *ObjectFrame) Columns() []string { return append([]string(nil), f.columns...) }

// Rows implements Frame.
func (f *ObjectFrame) Rows() []Object { return append([]Object(nil), f.rows...) }

// Schema implements Frame.
func (f *ObjectFrame) Schema() Schema[string, Object] { return ObjectSchema{} }

// Len returns the number of rows.
func (f *ObjectFrame) Len() int { return len(f.rows) }

// LoadObjects scans table into an ObjectFrame.
func LoadObjects(ctx context.Context, h source.Handle, table string) (Frame[string, Object], error) {
	if strings.TrimSpace(table) == "" {
		return nil, source.ErrNoTable
	}
	items, err := h.Scan(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", table, err)
	}
	return NewObjectFrame(items), nil
}

var _ Loader[string, Object] = LoadObjects
