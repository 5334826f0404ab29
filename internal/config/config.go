// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/gantt/internal/dateutil"
	"github.com/javiermolinar/gantt/internal/timeline"
)

// Config holds the application configuration.
type Config struct {
	View         ViewConfig         `toml:"view"`
	Drag         DragConfig         `toml:"drag"`
	Collaborator CollaboratorConfig `toml:"collaborator"`
	Seed         SeedConfig         `toml:"seed"`
	Export       ExportConfig       `toml:"export"`
	UI           UIConfig           `toml:"ui"`
	Log          LogConfig          `toml:"log"`
}

// ViewConfig holds timeline settings.
type ViewConfig struct {
	DefaultMode string `toml:"default_mode"` // "day", "week" or "month"
	Timezone    string `toml:"timezone"`     // IANA name, "UTC" or "Local"
}

// DragConfig holds drag controller settings.
type DragConfig struct {
	SnapshotBasis bool `toml:"snapshot_basis"` // freeze pixel/time scale at drag start
}

// CollaboratorConfig holds the simulated collaborator settings.
type CollaboratorConfig struct {
	Enabled  bool   `toml:"enabled"`
	Interval string `toml:"interval"` // Go duration, e.g. "60s"
}

// SeedConfig points at the initial schedule.
type SeedConfig struct {
	Path string `toml:"path"` // empty uses the built-in sample
}

// ExportConfig holds export destinations.
type ExportConfig struct {
	Dir        string `toml:"dir"`
	CSVName    string `toml:"csv_name"`
	SQLiteName string `toml:"sqlite_name"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte", "light"
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"` // zerolog level name
	Path  string `toml:"path"`  // empty discards logs
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		View: ViewConfig{
			DefaultMode: string(timeline.ModeWeek),
			Timezone:    "UTC",
		},
		Collaborator: CollaboratorConfig{
			Enabled:  true,
			Interval: "60s",
		},
		Export: ExportConfig{
			Dir:        ".",
			CSVName:    "gantt_chart.csv",
			SQLiteName: "gantt_chart.db",
		},
		UI: UIConfig{
			Theme: "frappe",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "gantt", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Seed.Path = expandPath(cfg.Seed.Path)
	cfg.Export.Dir = expandPath(cfg.Export.Dir)
	cfg.Log.Path = expandPath(cfg.Log.Path)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config. Unparseable
// booleans are ignored.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GANTT_VIEW_MODE"); v != "" {
		cfg.View.DefaultMode = v
	}
	if v := os.Getenv("GANTT_TIMEZONE"); v != "" {
		cfg.View.Timezone = v
	}

	if v := os.Getenv("GANTT_DRAG_SNAPSHOT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Drag.SnapshotBasis = b
		}
	}

	if v := os.Getenv("GANTT_COLLAB_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Collaborator.Enabled = b
		}
	}
	if v := os.Getenv("GANTT_COLLAB_INTERVAL"); v != "" {
		cfg.Collaborator.Interval = v
	}

	if v := os.Getenv("GANTT_SEED_PATH"); v != "" {
		cfg.Seed.Path = v
	}
	if v := os.Getenv("GANTT_EXPORT_DIR"); v != "" {
		cfg.Export.Dir = v
	}

	if v := os.Getenv("GANTT_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}

	if v := os.Getenv("GANTT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("GANTT_LOG_PATH"); v != "" {
		cfg.Log.Path = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := timeline.ParseMode(c.View.DefaultMode); err != nil {
		return fmt.Errorf("default_mode: %w", err)
	}
	if _, err := dateutil.LoadLocation(c.View.Timezone); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}

	d, err := time.ParseDuration(c.Collaborator.Interval)
	if err != nil {
		return fmt.Errorf("collaborator interval must be a duration like \"60s\", got %q", c.Collaborator.Interval)
	}
	if d <= 0 {
		return errors.New("collaborator interval must be positive")
	}

	if c.Export.Dir == "" {
		return errors.New("export dir must be set")
	}
	if c.Export.CSVName == "" || c.Export.SQLiteName == "" {
		return errors.New("export file names must be set")
	}
	if strings.ContainsRune(c.Export.CSVName, filepath.Separator) || strings.ContainsRune(c.Export.SQLiteName, filepath.Separator) {
		return errors.New("export file names must not contain a path separator")
	}

	if c.UI.Theme == "" {
		return errors.New("ui theme must be set")
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		return fmt.Errorf("invalid log level: %q", c.Log.Level)
	}
	return nil
}

// Mode returns the configured default view mode.
func (c *Config) Mode() timeline.Mode {
	m, err := timeline.ParseMode(c.View.DefaultMode)
	if err != nil {
		return timeline.ModeWeek
	}
	return m
}

// Location returns the configured timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := dateutil.LoadLocation(c.View.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// CollabInterval returns the collaborator tick interval.
func (c *Config) CollabInterval() time.Duration {
	d, err := time.ParseDuration(c.Collaborator.Interval)
	if err != nil || d <= 0 {
		return time.Minute
	}
	return d
}

// CSVPath returns where CSV exports are written.
func (c *Config) CSVPath() string {
	return filepath.Join(c.Export.Dir, c.Export.CSVName)
}

// SQLitePath returns where SQLite exports are written.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.Export.Dir, c.Export.SQLiteName)
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
