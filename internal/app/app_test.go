package app

import (
	"bytes"
	"context"
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/five82/dynotable/internal/config"
	"github.com/five82/dynotable/internal/frame"
	"github.com/five82/dynotable/internal/loader"
	"github.com/five82/dynotable/internal/source"
	"github.com/five82/dynotable/internal/tableview"
)

func TestApplyOptions(t *testing.T) {
	base := config.Default()
	base.Table = "Dinosaurs"
	base.AutoRefresh = 10 * time.Second

	tests := []struct {
		name    string
		opts    Options
		table   string
		refresh time.Duration
		source  source.Kind
	}{
		{"no overrides", Options{}, "Dinosaurs", 10 * time.Second, source.KindDynamoDB},
		{"table and refresh", Options{Table: " Fossils ", RefreshSeconds: 0.5}, "Fossils", 500 * time.Millisecond, source.KindDynamoDB},
		{"disable refresh", Options{RefreshSeconds: -1}, "Dinosaurs", 0, source.KindDynamoDB},
		{"explicit dynamo", Options{Source: "dynamo"}, "Dinosaurs", 10 * time.Second, source.KindDynamoDB},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			if err := applyOptions(&cfg, tt.opts); err != nil {
				t.Fatalf("applyOptions returned error: %v", err)
			}
			if cfg.Table != tt.table || cfg.AutoRefresh != tt.refresh || cfg.Source != tt.source {
				t.Fatalf("got table=%q refresh=%v source=%q", cfg.Table, cfg.AutoRefresh, cfg.Source)
			}
		})
	}
}

func TestApplyOptions_Errors(t *testing.T) {
	cfg := config.Default()
	if err := applyOptions(&cfg, Options{Source: "postgres"}); err == nil {
		t.Fatalf("expected unknown source error")
	}
	cfg = config.Default()
	if err := applyOptions(&cfg, Options{Source: "sqlite"}); err == nil {
		t.Fatalf("expected missing sqlite path error")
	}
}

func TestDrawSettings(t *testing.T) {
	d := config.DefaultDraw()
	d.AllowResize = false
	got := drawSettings(d)

	want := tableview.DefaultDrawSettings()
	want.AllowResize = false
	if got != want {
		t.Fatalf("drawSettings = %+v, want %+v", got, want)
	}

	d.Colors = "Slate"
	if got := drawSettings(d); got.Colors != "Slate" {
		t.Fatalf("Colors = %q, want Slate", got.Colors)
	}
}

func TestOpenHandle_SQLiteFeedsPipeline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dinos.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE Dinosaurs (id INTEGER, name TEXT);
		INSERT INTO Dinosaurs VALUES (1, 'Triceratops'), (2, 'Velociraptor');`); err != nil {
		t.Fatalf("seed: %v", err)
	}
	_ = db.Close()

	cfg := config.Default()
	cfg.Source = source.KindSQLite
	cfg.SQLite.Path = path
	cfg.Table = "Dinosaurs"

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h, closeHandle, err := openHandle(ctx, cfg)
	if err != nil {
		t.Fatalf("openHandle: %v", err)
	}
	defer closeHandle()

	p, err := loader.New(frame.LoadObjects, h, loader.Options{Table: cfg.Table, RequireTable: true})
	if err != nil {
		t.Fatalf("loader.New: %v", err)
	}
	stages, err := p.Start(ctx)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer p.Cancel()

	for {
		select {
		case st := <-stages:
			switch st.Kind {
			case loader.StageLoadSucceeded:
				if n := len(st.Frame.Rows()); n != 2 {
					t.Fatalf("rows = %d, want 2", n)
				}
				if cols := st.Frame.Columns(); strings.Join(cols, ",") != "id,name" {
					t.Fatalf("columns = %v", cols)
				}
				return
			case loader.StageLoadFailed:
				t.Fatalf("load failed: %v", st.Err)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for load")
		}
	}
}

func TestRedirectLog(t *testing.T) {
	var before bytes.Buffer
	log.SetOutput(&before)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	path := filepath.Join(t.TempDir(), "logs", "dynotable.log")
	restore, err := redirectLog(path)
	if err != nil {
		t.Fatalf("redirectLog: %v", err)
	}
	log.Printf("scan failed: boom")
	restore()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "scan failed: boom") {
		t.Fatalf("log file = %q", data)
	}
	if before.Len() != 0 {
		t.Fatalf("previous writer should not receive redirected output")
	}
	if log.Writer() != &before {
		t.Fatalf("restore should reinstate the previous writer")
	}
}
