package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/dynotable/internal/source"
)

// Config is the resolved dynotable configuration.
type Config struct {
	Source      source.Kind
	Table       string
	AutoRefresh time.Duration // zero disables the refresh timer
	LogFile     string

	DynamoDB DynamoDB
	SQLite   SQLite
	Draw     Draw
}

// DynamoDB selects the AWS account and endpoint to scan.
type DynamoDB struct {
	Region   string
	Endpoint string // optional, e.g. http://localhost:8000 for DynamoDB Local
	Profile  string
}

// SQLite points at a database file.
type SQLite struct {
	Path string
}

// Draw is the presentation bundle passed to the table view.
type Draw struct {
	HeaderHeight int
	MinRowHeight int
	MaxRowHeight int
	AllowHide    bool
	AllowResize  bool
	AllowRefresh bool
	AllowResort  bool
	ShowMenu     bool
	Colors       string
	MinWidth     int
}

const (
	defaultConfigPath = "~/.config/dynotable/config.toml"
	defaultLogFile    = "~/.local/share/dynotable/dynotable.log"
	defaultMinWidth   = 20

	envPrefix = "DYNOTABLE_"
)

// DefaultDraw enables every gesture with single-line rows.
func DefaultDraw() Draw {
	return Draw{
		HeaderHeight: 1,
		MinRowHeight: 1,
		MaxRowHeight: 1,
		AllowHide:    true,
		AllowResize:  true,
		AllowRefresh: true,
		AllowResort:  true,
		ShowMenu:     true,
		MinWidth:     defaultMinWidth,
	}
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Source:  source.KindDynamoDB,
		LogFile: mustExpand(defaultLogFile),
		Draw:    DefaultDraw(),
	}
}

type rawConfig struct {
	Source             string  `toml:"source"`
	Table              string  `toml:"table"`
	AutoRefreshSeconds float64 `toml:"auto_refresh_seconds"`
	LogFile            string  `toml:"log_file"`

	DynamoDB struct {
		Region   string `toml:"region"`
		Endpoint string `toml:"endpoint"`
		Profile  string `toml:"profile"`
	} `toml:"dynamodb"`

	SQLite struct {
		Path string `toml:"path"`
	} `toml:"sqlite"`

	Draw struct {
		HeaderHeight *int   `toml:"header_height"`
		MinRowHeight *int   `toml:"min_row_height"`
		MaxRowHeight *int   `toml:"max_row_height"`
		AllowHide    *bool  `toml:"allow_hide"`
		AllowResize  *bool  `toml:"allow_resize"`
		AllowRefresh *bool  `toml:"allow_refresh"`
		AllowResort  *bool  `toml:"allow_resort"`
		ShowMenu     *bool  `toml:"show_menu"`
		Colors       string `toml:"colors"`
		MinWidth     *int   `toml:"min_width"`
	} `toml:"draw"`
}

// Load reads the config file at path (or the default location), then
// applies DYNOTABLE_* environment overrides. A .env file in the working
// directory is loaded first and never overrides variables already set.
// A missing config file yields defaults.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw rawConfig
	data, err := os.ReadFile(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := applyEnv(&raw); err != nil {
		return Config{}, err
	}
	return raw.resolve()
}

func (raw rawConfig) resolve() (Config, error) {
	cfg := Default()

	kind, err := source.ParseKind(raw.Source)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.Source = kind
	cfg.Table = strings.TrimSpace(raw.Table)

	if raw.AutoRefreshSeconds < 0 {
		return Config{}, fmt.Errorf("parse config: auto_refresh_seconds must not be negative")
	}
	cfg.AutoRefresh = time.Duration(raw.AutoRefreshSeconds * float64(time.Second))

	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}

	cfg.DynamoDB = DynamoDB{
		Region:   strings.TrimSpace(raw.DynamoDB.Region),
		Endpoint: strings.TrimSpace(raw.DynamoDB.Endpoint),
		Profile:  strings.TrimSpace(raw.DynamoDB.Profile),
	}
	if p := strings.TrimSpace(raw.SQLite.Path); p != "" {
		cfg.SQLite.Path = p
		if p != ":memory:" {
			cfg.SQLite.Path = mustExpand(p)
		}
	}
	if cfg.Source == source.KindSQLite && cfg.SQLite.Path == "" {
		return Config{}, fmt.Errorf("parse config: sqlite source needs [sqlite] path")
	}

	d := raw.Draw
	setInt(&cfg.Draw.HeaderHeight, d.HeaderHeight)
	setInt(&cfg.Draw.MinRowHeight, d.MinRowHeight)
	setInt(&cfg.Draw.MaxRowHeight, d.MaxRowHeight)
	setInt(&cfg.Draw.MinWidth, d.MinWidth)
	setBool(&cfg.Draw.AllowHide, d.AllowHide)
	setBool(&cfg.Draw.AllowResize, d.AllowResize)
	setBool(&cfg.Draw.AllowRefresh, d.AllowRefresh)
	setBool(&cfg.Draw.AllowResort, d.AllowResort)
	setBool(&cfg.Draw.ShowMenu, d.ShowMenu)
	cfg.Draw.Colors = strings.TrimSpace(d.Colors)

	return cfg, nil
}

// applyEnv overlays DYNOTABLE_* variables on the file values.
func applyEnv(raw *rawConfig) error {
	for name, dst := range map[string]*string{
		"SOURCE":            &raw.Source,
		"TABLE":             &raw.Table,
		"LOG_FILE":          &raw.LogFile,
		"DYNAMODB_REGION":   &raw.DynamoDB.Region,
		"DYNAMODB_ENDPOINT": &raw.DynamoDB.Endpoint,
		"DYNAMODB_PROFILE":  &raw.DynamoDB.Profile,
		"SQLITE_PATH":       &raw.SQLite.Path,
		"COLORS":            &raw.Draw.Colors,
	} {
		if v, ok := lookupEnv(name); ok {
			*dst = v
		}
	}
	if v, ok := lookupEnv("AUTO_REFRESH_SECONDS"); ok {
		secs, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parse %sAUTO_REFRESH_SECONDS: %w", envPrefix, err)
		}
		raw.AutoRefreshSeconds = secs
	}
	return nil
}

func lookupEnv(name string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
