package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/five82/dynotable/internal/config"
	"github.com/five82/dynotable/internal/frame"
	"github.com/five82/dynotable/internal/loader"
	"github.com/five82/dynotable/internal/prefs"
	"github.com/five82/dynotable/internal/source"
	"github.com/five82/dynotable/internal/source/dynamo"
	"github.com/five82/dynotable/internal/source/sqlite"
	"github.com/five82/dynotable/internal/state"
	"github.com/five82/dynotable/internal/tableview"
)

// Options configure the dynotable application. Non-zero fields override
// the config file and environment.
type Options struct {
	ConfigPath     string
	PrefsPath      string  // empty uses default ~/.config/dynotable/prefs.toml
	Source         string  // dynamodb or sqlite
	Table          string
	RefreshSeconds float64 // negative disables the timer
}

// Run boots the table viewer until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applyOptions(&cfg, opts); err != nil {
		return err
	}

	restoreLog, err := redirectLog(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer restoreLog()

	h, closeHandle, err := openHandle(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s source: %w", cfg.Source, err)
	}
	defer closeHandle()

	prefsPath := opts.PrefsPath
	if strings.TrimSpace(prefsPath) == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, _ := prefs.Load(prefsPath)

	store := &state.Store{}
	pipeline, err := loader.New(frame.LoadObjects, h, loader.Options{
		Table:        cfg.Table,
		RequireTable: true,
		AutoRefresh:  cfg.AutoRefresh,
		Store:        store,
	})
	if err != nil {
		return err
	}
	stages, err := pipeline.Start(ctx)
	if err != nil {
		return err
	}
	defer pipeline.Cancel()

	log.Printf("viewing %s table %q (auto refresh %v)", cfg.Source, cfg.Table, cfg.AutoRefresh)

	return tableview.Run(ctx, tableview.Options[string, frame.Object]{
		Title:     "dynotable",
		Table:     cfg.Table,
		Stages:    stages,
		Reloader:  pipeline,
		Store:     store,
		Draw:      drawSettings(cfg.Draw),
		ThemeName: userPrefs.Theme,
		PrefsPath: prefsPath,
	})
}

// applyOptions layers command-line values over the loaded config.
func applyOptions(cfg *config.Config, opts Options) error {
	if strings.TrimSpace(opts.Source) != "" {
		kind, err := source.ParseKind(opts.Source)
		if err != nil {
			return err
		}
		cfg.Source = kind
	}
	if t := strings.TrimSpace(opts.Table); t != "" {
		cfg.Table = t
	}
	switch {
	case opts.RefreshSeconds < 0:
		cfg.AutoRefresh = 0
	case opts.RefreshSeconds > 0:
		cfg.AutoRefresh = time.Duration(opts.RefreshSeconds * float64(time.Second))
	}
	if cfg.Source == source.KindSQLite && cfg.SQLite.Path == "" {
		return fmt.Errorf("sqlite source needs a database path")
	}
	return nil
}

// openHandle connects the configured source. The returned func releases it.
func openHandle(ctx context.Context, cfg config.Config) (source.Handle, func(), error) {
	switch cfg.Source {
	case source.KindSQLite:
		h, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return h, func() {
			if err := h.Close(); err != nil {
				log.Printf("close sqlite: %v", err)
			}
		}, nil
	case source.KindDynamoDB:
		h, err := dynamo.Open(ctx, dynamo.Options{
			Region:   cfg.DynamoDB.Region,
			Endpoint: cfg.DynamoDB.Endpoint,
			Profile:  cfg.DynamoDB.Profile,
		})
		if err != nil {
			return nil, nil, err
		}
		return h, func() {}, nil
	default:
		return nil, nil, &source.UnknownKindError{Name: string(cfg.Source)}
	}
}

func drawSettings(d config.Draw) tableview.DrawSettings {
	out := tableview.DrawSettings{
		HeaderHeight: d.HeaderHeight,
		MinRowHeight: d.MinRowHeight,
		MaxRowHeight: d.MaxRowHeight,
		AllowHide:    d.AllowHide,
		AllowResize:  d.AllowResize,
		AllowRefresh: d.AllowRefresh,
		AllowResort:  d.AllowResort,
		ShowMenu:     d.ShowMenu,
		Colors:       d.Colors,
		MinWidth:     d.MinWidth,
	}
	if out.Colors == "" {
		out.Colors = tableview.DefaultDrawSettings().Colors
	}
	return out
}

// redirectLog sends the standard logger to path while the TUI owns the
// terminal. Without a path logging is discarded.
func redirectLog(path string) (func(), error) {
	prev := log.Writer()
	if strings.TrimSpace(path) == "" {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(prev) }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(prev)
		_ = f.Close()
	}, nil
}
