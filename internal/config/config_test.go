package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/javiermolinar/gantt/internal/timeline"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.View.DefaultMode != "week" {
		t.Errorf("expected default_mode week, got %s", cfg.View.DefaultMode)
	}
	if cfg.View.Timezone != "UTC" {
		t.Errorf("expected timezone UTC, got %s", cfg.View.Timezone)
	}
	if cfg.Drag.SnapshotBasis {
		t.Error("expected live drag basis by default")
	}
	if !cfg.Collaborator.Enabled || cfg.CollabInterval() != time.Minute {
		t.Errorf("unexpected collaborator defaults: %+v", cfg.Collaborator)
	}
	if cfg.Export.CSVName != "gantt_chart.csv" || cfg.Export.SQLiteName != "gantt_chart.db" {
		t.Errorf("unexpected export names: %+v", cfg.Export)
	}
	if cfg.UI.Theme != "frappe" {
		t.Errorf("expected theme frappe, got %s", cfg.UI.Theme)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should return defaults
	if cfg.Mode() != timeline.ModeWeek {
		t.Errorf("expected default mode, got %s", cfg.Mode())
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[view]
default_mode = "month"
timezone = "Europe/Madrid"

[drag]
snapshot_basis = true

[collaborator]
enabled = false
interval = "5m"

[seed]
path = "/tmp/team.yaml"

[export]
dir = "/tmp/out"
csv_name = "plan.csv"

[log]
level = "debug"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Mode() != timeline.ModeMonth {
		t.Errorf("expected month mode, got %s", cfg.Mode())
	}
	if cfg.Location().String() != "Europe/Madrid" {
		t.Errorf("expected Europe/Madrid, got %s", cfg.Location())
	}
	if !cfg.Drag.SnapshotBasis {
		t.Error("expected snapshot basis from file")
	}
	if cfg.Collaborator.Enabled || cfg.CollabInterval() != 5*time.Minute {
		t.Errorf("unexpected collaborator: %+v", cfg.Collaborator)
	}
	if cfg.Seed.Path != "/tmp/team.yaml" {
		t.Errorf("expected seed path, got %s", cfg.Seed.Path)
	}
	if cfg.CSVPath() != "/tmp/out/plan.csv" {
		t.Errorf("expected csv path /tmp/out/plan.csv, got %s", cfg.CSVPath())
	}
	// Unset keys keep their defaults
	if cfg.SQLitePath() != "/tmp/out/gantt_chart.db" {
		t.Errorf("expected default sqlite name, got %s", cfg.SQLitePath())
	}
	if cfg.UI.Theme != "frappe" {
		t.Errorf("expected default theme, got %s", cfg.UI.Theme)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[view]
default_mode = "month"

[ui]
theme = "latte"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("GANTT_VIEW_MODE", "day")
	t.Setenv("GANTT_DRAG_SNAPSHOT", "true")
	t.Setenv("GANTT_COLLAB_ENABLED", "false")
	t.Setenv("GANTT_COLLAB_INTERVAL", "2s")
	t.Setenv("GANTT_LOG_LEVEL", "warn")
	t.Setenv("GANTT_EXPORT_DIR", "/srv/exports")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Env should override file
	if cfg.Mode() != timeline.ModeDay {
		t.Errorf("expected day mode from env, got %s", cfg.Mode())
	}
	// File value should be kept when no env override
	if cfg.UI.Theme != "latte" {
		t.Errorf("expected theme latte from file, got %s", cfg.UI.Theme)
	}
	// Env should override default
	if !cfg.Drag.SnapshotBasis || cfg.Collaborator.Enabled {
		t.Errorf("bool overrides not applied: drag=%+v collab=%+v", cfg.Drag, cfg.Collaborator)
	}
	if cfg.CollabInterval() != 2*time.Second {
		t.Errorf("expected 2s interval, got %v", cfg.CollabInterval())
	}
	if cfg.Log.Level != "warn" || cfg.Export.Dir != "/srv/exports" {
		t.Errorf("unexpected overrides: log=%+v export=%+v", cfg.Log, cfg.Export)
	}
}

func TestLoadFrom_InvalidBoolEnvIgnored(t *testing.T) {
	t.Setenv("GANTT_COLLAB_ENABLED", "perhaps")

	cfg, err := LoadFrom("/nonexistent/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Collaborator.Enabled {
		t.Error("invalid bool should leave the default in place")
	}
}

func TestLoadFrom_InvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[view\nmode="), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(configPath); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown mode", func(c *Config) { c.View.DefaultMode = "year" }},
		{"unknown timezone", func(c *Config) { c.View.Timezone = "Mars/Olympus" }},
		{"bad interval", func(c *Config) { c.Collaborator.Interval = "soon" }},
		{"zero interval", func(c *Config) { c.Collaborator.Interval = "0s" }},
		{"empty export dir", func(c *Config) { c.Export.Dir = "" }},
		{"empty csv name", func(c *Config) { c.Export.CSVName = "" }},
		{"csv name with separator", func(c *Config) { c.Export.CSVName = "a/b.csv" }},
		{"empty theme", func(c *Config) { c.UI.Theme = "" }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestLocation_Fallback(t *testing.T) {
	cfg := Default()
	cfg.View.Timezone = "Nowhere/Special"
	if cfg.Location() != time.UTC {
		t.Errorf("expected UTC fallback, got %v", cfg.Location())
	}
	cfg.View.DefaultMode = "bogus"
	if cfg.Mode() != timeline.ModeWeek {
		t.Errorf("expected week fallback, got %v", cfg.Mode())
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/seed.toml", filepath.Join(home, "seed.toml")},
		{"/absolute/path.toml", "/absolute/path.toml"},
		{"relative/path.toml", "relative/path.toml"},
		{"", ""},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := expandPath(tc.input)
			if got != tc.want {
				t.Errorf("expandPath(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.toml")

	cfg := Default()
	cfg.View.DefaultMode = "day"
	cfg.Collaborator.Interval = "90s"
	cfg.UI.Theme = "mocha"

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Mode() != timeline.ModeDay {
		t.Errorf("expected day mode, got %s", loaded.Mode())
	}
	if loaded.CollabInterval() != 90*time.Second {
		t.Errorf("expected 90s interval, got %v", loaded.CollabInterval())
	}
	if loaded.UI.Theme != "mocha" {
		t.Errorf("expected theme mocha, got %s", loaded.UI.Theme)
	}
}
