package frame

import (
	"context"
	"fmt"
	"strings"

	"github.com/five82/dynotable/internal/source"
)

// TableSchema is a Schema whose column set is statically enumerable.
type TableSchema[C comparable, R Row[C]] interface {
	Schema[C, R]
	Columns() []C
}

// Table is a Frame of decoded records of type R.
type Table[C comparable, R Row[C]] struct {
	schema TableSchema[C, R]
	rows   []R
}

// NewTable builds a typed frame. Nil pointer rows (a null item decoded
// into a pointer record) are dropped. Rows embedding Identity without an ID
// get one assigned.
func NewTable[C comparable, R Row[C]](schema TableSchema[C, R], rows []R) *Table[C, R] {
	kept := make([]R, 0, len(rows))
	for _, r := range rows {
		if isNil(r) {
			continue
		}
		assignIdentity(r)
		kept = append(kept, r)
	}
	return &Table[C, R]{schema: schema, rows: kept}
}

// Columns implements Frame.
func (t *Table[C, R]) Columns() []C { return append([]C(nil), t.schema.Columns()...) }

// Rows implements Frame.
func (t *Table[C, R]) Rows() []R { return append([]R(nil), t.rows...) }

// Schema implements Frame.
func (t *Table[C, R]) Schema() Schema[C, R] { return t.schema }

// TableLoader returns a Loader that scans a table into records of type R.
func TableLoader[C comparable, R Row[C]](schema TableSchema[C, R]) Loader[C, R] {
	return func(ctx context.Context, h source.Handle, table string) (Frame[C, R], error) {
		if strings.TrimSpace(table) == "" {
			return nil, source.ErrNoTable
		}
		var rows []R
		if err := h.ScanInto(ctx, table, &rows); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		return NewTable(schema, rows), nil
	}
}
