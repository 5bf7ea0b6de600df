// Package sqlite implements source.Handle for SQLite database files using
// the pure Go modernc.org/sqlite driver. Each table row becomes one item.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/five82/dynotable/internal/attr"
	"github.com/five82/dynotable/internal/source"
)

// Handle scans tables of a SQLite database file.
type Handle struct {
	path string

	mu sync.Mutex
	db *sql.DB
}

var _ source.Handle = (*Handle)(nil)

// Open opens the database at path and verifies it is reachable.
func Open(path string) (*Handle, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	return &Handle{path: path, db: db}, nil
}

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// DB exposes the current connection pool.
func (h *Handle) DB() *sql.DB {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.db
}

// Close releases the database.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.db == nil {
		return nil
	}
	err := h.db.Close()
	h.db = nil
	return err
}

// ResetConnection closes the pool and opens the file again.
func (h *Handle) ResetConnection() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.db != nil {
		if err := h.db.Close(); err != nil {
			return fmt.Errorf("close database: %w", err)
		}
		h.db = nil
	}
	db, err := openDB(h.path)
	if err != nil {
		return err
	}
	h.db = db
	return nil
}

// Scan reads every row of table. Columns holding NULL are kept as Null
// attributes.
func (h *Handle) Scan(ctx context.Context, table string) ([]attr.Item, error) {
	if strings.TrimSpace(table) == "" {
		return nil, source.ErrNoTable
	}
	db := h.DB()
	if db == nil {
		return nil, fmt.Errorf("scan %s: database is closed", table)
	}

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(table))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", table, err)
	}

	var items []attr.Item
	for rows.Next() {
		ptrs := make([]any, len(cols))
		for i := range ptrs {
			ptrs[i] = new(any)
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		item := make(attr.Item, len(cols))
		for i, name := range cols {
			item[name] = valueFrom(*(ptrs[i].(*any)))
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", table, err)
	}
	return items, nil
}

// ScanInto decodes every row of table into out through json struct tags.
func (h *Handle) ScanInto(ctx context.Context, table string, out any) error {
	items, err := h.Scan(ctx, table)
	if err != nil {
		return err
	}
	if err := attr.UnmarshalItems(items, out); err != nil {
		return fmt.Errorf("decode %s: %w", table, err)
	}
	return nil
}

// valueFrom maps the driver's int64/float64/string/[]byte/nil values.
func valueFrom(v any) attr.Value {
	switch x := v.(type) {
	case nil:
		return attr.Null()
	case int64:
		return attr.Number(strconv.FormatInt(x, 10))
	case float64:
		return attr.Number(strconv.FormatFloat(x, 'f', -1, 64))
	case bool:
		return attr.Bool(x)
	case string:
		return attr.String(x)
	case []byte:
		return attr.Binary(x)
	case time.Time:
		return attr.String(x.Format(time.RFC3339Nano))
	default:
		return attr.String(fmt.Sprint(x))
	}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
