package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/dynotable/internal/source"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Source != source.KindDynamoDB {
		t.Fatalf("Source = %q, want dynamodb", cfg.Source)
	}
	if cfg.AutoRefresh != 0 {
		t.Fatalf("AutoRefresh = %v, want 0", cfg.AutoRefresh)
	}
	if cfg.Draw != DefaultDraw() {
		t.Fatalf("Draw = %+v, want defaults", cfg.Draw)
	}
	wantLog, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath: %v", err)
	}
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
}

func TestLoad_ParsesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, `
source = " SQLite "
table = "  Dinosaurs  "
auto_refresh_seconds = 2.5
log_file = "~/logs/dyno.log"

[sqlite]
path = "~/data/dinos.db"

[draw]
max_row_height = 3
allow_hide = false
colors = "Kanagawa"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Source != source.KindSQLite {
		t.Fatalf("Source = %q, want sqlite", cfg.Source)
	}
	if cfg.Table != "Dinosaurs" {
		t.Fatalf("Table = %q, want Dinosaurs", cfg.Table)
	}
	if cfg.AutoRefresh != 2500*time.Millisecond {
		t.Fatalf("AutoRefresh = %v, want 2.5s", cfg.AutoRefresh)
	}
	if cfg.LogFile != filepath.Join(home, "logs", "dyno.log") {
		t.Fatalf("LogFile = %q", cfg.LogFile)
	}
	if cfg.SQLite.Path != filepath.Join(home, "data", "dinos.db") {
		t.Fatalf("SQLite.Path = %q", cfg.SQLite.Path)
	}

	want := DefaultDraw()
	want.MaxRowHeight = 3
	want.AllowHide = false
	want.Colors = "Kanagawa"
	if cfg.Draw != want {
		t.Fatalf("Draw = %+v, want %+v", cfg.Draw, want)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
table = "Dinosaurs"
auto_refresh_seconds = 10

[dynamodb]
region = "us-east-1"
`)
	t.Setenv("DYNOTABLE_TABLE", "Fossils")
	t.Setenv("DYNOTABLE_AUTO_REFRESH_SECONDS", "1")
	t.Setenv("DYNOTABLE_DYNAMODB_ENDPOINT", "http://localhost:8000")
	t.Setenv("DYNOTABLE_DYNAMODB_REGION", "   ")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Table != "Fossils" {
		t.Fatalf("Table = %q, want Fossils", cfg.Table)
	}
	if cfg.AutoRefresh != time.Second {
		t.Fatalf("AutoRefresh = %v, want 1s", cfg.AutoRefresh)
	}
	if cfg.DynamoDB.Endpoint != "http://localhost:8000" {
		t.Fatalf("Endpoint = %q", cfg.DynamoDB.Endpoint)
	}
	if cfg.DynamoDB.Region != "us-east-1" {
		t.Fatalf("blank env should not override region, got %q", cfg.DynamoDB.Region)
	}
}

func TestLoad_MemoryDatabaseIsNotExpanded(t *testing.T) {
	path := writeConfig(t, "source = \"sqlite\"\n[sqlite]\npath = \":memory:\"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SQLite.Path != ":memory:" {
		t.Fatalf("SQLite.Path = %q, want :memory:", cfg.SQLite.Path)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		want    string
	}{
		{name: "invalid toml", content: "table = [", want: "parse config"},
		{name: "unknown source", content: `source = "postgres"`, want: "unknown source"},
		{name: "negative refresh", content: "auto_refresh_seconds = -1", want: "must not be negative"},
		{name: "sqlite without path", content: `source = "sqlite"`, want: "[sqlite] path"},
		{name: "bad env refresh", env: map[string]string{"DYNOTABLE_AUTO_REFRESH_SECONDS": "soon"}, want: "AUTO_REFRESH_SECONDS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/dynotable")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	if got != filepath.Join(home, "dynotable") {
		t.Fatalf("expandPath = %q", got)
	}
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
