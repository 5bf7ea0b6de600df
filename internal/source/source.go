package source

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/five82/dynotable/internal/attr"
)

// Handle is the data source collaborator. Implementations own their
// connection state; callers serialize ResetConnection with in-flight scans.
type Handle interface {
	// Scan reads every item of table as attribute maps.
	Scan(ctx context.Context, table string) ([]attr.Item, error)
	// ScanInto reads every item of table and decodes them into out, a
	// pointer to a slice of records.
	ScanInto(ctx context.Context, table string, out any) error
	// ResetConnection discards pooled connection state so the next scan
	// starts on a fresh transport.
	ResetConnection() error
}

// ErrNoTable is returned when a scan is requested without a table name.
var ErrNoTable = errors.New("no table configured")

// Kind names a supported Handle implementation.
type Kind string

const (
	KindDynamoDB Kind = "dynamodb"
	KindSQLite   Kind = "sqlite"
)

// ParseKind normalizes a configured source name. Empty selects DynamoDB.
func ParseKind(name string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(name))) {
	case "", KindDynamoDB, "dynamo":
		return KindDynamoDB, nil
	case KindSQLite:
		return KindSQLite, nil
	default:
		return "", &UnknownKindError{Name: name}
	}
}

// UnknownKindError reports an unsupported source name.
type UnknownKindError struct {
	Name string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown source %q (want dynamodb or sqlite)", e.Name)
}
