package ui

import (
	"bufio"
	"cmp"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/gantt/internal/config"
	"github.com/javiermolinar/gantt/internal/timeline"
	"github.com/javiermolinar/gantt/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Configuration management.

Without a subcommand, prints the effective configuration (defaults,
config file and GANTT_* environment overrides merged).

Example:
  gantt config
  gantt config init
  gantt config edit`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printConfig(cmd.OutOrStdout(), a.config)
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			RunE: func(cmd *cobra.Command, _ []string) error {
				printConfig(cmd.OutOrStdout(), a.config)
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file path",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), a.path())
			},
		},
		a.configInitCmd(),
		a.configEditCmd(),
	)
	return cmd
}

func (a *App) path() string {
	return cmp.Or(a.configPath, config.DefaultConfigPath())
}

func (a *App) configInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.path()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("checking config file: %w", err)
			}

			if err := config.Default().SaveTo(path); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func (a *App) configEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the configuration interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), a.config, a.path())
		},
	}
}

func runConfigInteractive(in io.Reader, out io.Writer, cfg *config.Config, path string) error {
	fmt.Fprintf(out, "Config file: %s\n\n", path)
	printConfig(out, cfg)
	fmt.Fprintln(out, "\nPress enter to keep the current value.")

	reader := bufio.NewReader(in)

	cfg.View.DefaultMode = promptMode(reader, out, cfg.View.DefaultMode)
	cfg.View.Timezone = promptValue(reader, out, "Timezone", cfg.View.Timezone)
	cfg.Drag.SnapshotBasis = promptBool(reader, out, "Freeze drag scale at drag start", cfg.Drag.SnapshotBasis)
	cfg.Collaborator.Enabled = promptBool(reader, out, "Simulated collaborator", cfg.Collaborator.Enabled)
	cfg.Collaborator.Interval = promptValue(reader, out, "Collaborator interval", cfg.Collaborator.Interval)
	cfg.Seed.Path = promptValue(reader, out, "Seed file (empty for the sample project)", cfg.Seed.Path)
	cfg.Export.Dir = promptValue(reader, out, "Export directory", cfg.Export.Dir)
	cfg.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)
	cfg.Log.Level = promptValue(reader, out, "Log level", cfg.Log.Level)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[view]")
	fmt.Fprintf(out, "  default_mode   = %s\n", cfg.View.DefaultMode)
	fmt.Fprintf(out, "  timezone       = %s\n", cfg.View.Timezone)
	fmt.Fprintln(out, "\n[drag]")
	fmt.Fprintf(out, "  snapshot_basis = %t\n", cfg.Drag.SnapshotBasis)
	fmt.Fprintln(out, "\n[collaborator]")
	fmt.Fprintf(out, "  enabled        = %t\n", cfg.Collaborator.Enabled)
	fmt.Fprintf(out, "  interval       = %s\n", cfg.Collaborator.Interval)
	fmt.Fprintln(out, "\n[seed]")
	fmt.Fprintf(out, "  path           = %s\n", cmp.Or(cfg.Seed.Path, "(built-in sample)"))
	fmt.Fprintln(out, "\n[export]")
	fmt.Fprintf(out, "  dir            = %s\n", cfg.Export.Dir)
	fmt.Fprintf(out, "  csv_name       = %s\n", cfg.Export.CSVName)
	fmt.Fprintf(out, "  sqlite_name    = %s\n", cfg.Export.SQLiteName)
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme          = %s\n", cfg.UI.Theme)
	fmt.Fprintln(out, "\n[log]")
	fmt.Fprintf(out, "  level          = %s\n", cfg.Log.Level)
	if cfg.Log.Path != "" {
		fmt.Fprintf(out, "  path           = %s\n", cfg.Log.Path)
	}
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

// maxAttempts bounds the re-prompt loops so a closed stdin cannot spin.
const maxAttempts = 3

func promptBool(reader *bufio.Reader, out io.Writer, label string, current bool) bool {
	for range maxAttempts {
		value := promptValue(reader, out, label+" (true/false)", strconv.FormatBool(current))
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
		fmt.Fprintf(out, "  Invalid value %q\n", value)
	}
	return current
}

func promptMode(reader *bufio.Reader, out io.Writer, current string) string {
	for range maxAttempts {
		value := strings.ToLower(promptValue(reader, out, "Default view (day, week, month)", current))
		if mode, err := timeline.ParseMode(value); err == nil {
			return string(mode)
		}
		fmt.Fprintf(out, "  Invalid view %q\n", value)
	}
	return current
}

func promptTheme(reader *bufio.Reader, out io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for range maxAttempts {
		value := strings.ToLower(promptValue(reader, out, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(out, "  Invalid theme %q. Available: %s\n", value, options)
	}
	return current
}
