package frame

import (
	"context"
	"reflect"

	"github.com/google/uuid"

	"github.com/five82/dynotable/internal/source"
)

// Row is the per-instance half of the row content contract.
type Row[C comparable] interface {
	// ID identifies the row for list identity only.
	ID() string
	// Cell renders the value of one column.
	Cell(col C) string
}

// Schema is the static half of the row content contract: it does not depend
// on any row instance.
type Schema[C comparable, R Row[C]] interface {
	// Header renders a column header.
	Header(col C) string
	// Less returns the "a comes before b" comparator for col. When ok is
	// false no column is selected and the comparator always reports true.
	Less(col C, ok bool) func(a, b R) bool
}

// Frame is one fetched snapshot: a column set plus ordered rows.
type Frame[C comparable, R Row[C]] interface {
	Columns() []C
	Rows() []R
	Schema() Schema[C, R]
}

// Loader fetches a fresh Frame from a data source handle.
type Loader[C comparable, R Row[C]] func(ctx context.Context, h source.Handle, table string) (Frame[C, R], error)

// Identity gives typed records a process-assigned row ID. Embed it in a
// record struct and use a pointer to the record as the row type; NewTable
// assigns IDs to rows that have none.
type Identity struct {
	id string
}

// ID returns the assigned identity.
func (i *Identity) ID() string {
	if i == nil {
		return ""
	}
	return i.id
}

func (i *Identity) assignID(id string) {
	if i.id == "" {
		i.id = id
	}
}

type identifiable interface {
	assignID(id string)
}

func assignIdentity(row any) {
	if r, ok := row.(identifiable); ok {
		r.assignID(uuid.NewString())
	}
}

func isNil(row any) bool {
	if row == nil {
		return true
	}
	v := reflect.ValueOf(row)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Interface, reflect.Slice:
		return v.IsNil()
	}
	return false
}

func alwaysBefore[R any](R, R) bool { return true }
