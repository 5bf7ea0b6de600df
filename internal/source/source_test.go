package source

import (
	"errors"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"", KindDynamoDB},
		{"dynamodb", KindDynamoDB},
		{" Dynamo ", KindDynamoDB},
		{"SQLite", KindSQLite},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if err != nil {
			t.Fatalf("ParseKind(%q) returned error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseKind_Unknown(t *testing.T) {
	_, err := ParseKind("postgres")
	var unknown *UnknownKindError
	if !errors.As(err, &unknown) {
		t.Fatalf("ParseKind error = %v, want UnknownKindError", err)
	}
	if unknown.Name != "postgres" {
		t.Fatalf("Name = %q, want postgres", unknown.Name)
	}
}
