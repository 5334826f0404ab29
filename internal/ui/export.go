package ui

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/gantt/internal/export"
)

// Export formats accepted by --format.
const (
	formatCSV       = "csv"
	formatSQLite    = "sqlite"
	formatClipboard = "clipboard"
)

func (a *App) exportCmd() *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the schedule",
		Long: `Export every task with its assignees, progress and duration.

csv writes a spreadsheet-friendly file (use --out - for stdout), sqlite
writes a snapshot database and clipboard copies the CSV text.
Paths default to the [export] section of the config.`,
		Example: `  gantt export
  gantt export --format sqlite --out plan.db
  gantt export --format clipboard`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.loadStore()
			if err != nil {
				return err
			}
			rows := export.Rows(store.Tasks(), store.Members())
			w := cmd.OutOrStdout()

			switch format {
			case formatCSV:
				if out == "-" {
					return export.WriteCSV(w, rows)
				}
				path := cmp.Or(out, a.config.CSVPath())
				if err := writeCSVFile(path, rows); err != nil {
					return err
				}
				fmt.Fprintf(w, "Exported %d tasks to %s\n", len(rows), path)
			case formatSQLite:
				path := cmp.Or(out, a.config.SQLitePath())
				if err := ensureDir(path); err != nil {
					return err
				}
				if err := export.WriteSQLite(cmd.Context(), path, rows); err != nil {
					return err
				}
				fmt.Fprintf(w, "Saved %d tasks to %s\n", len(rows), path)
			case formatClipboard:
				if err := export.CopyCSV(rows); err != nil {
					return err
				}
				fmt.Fprintf(w, "Copied %d tasks to clipboard\n", len(rows))
			default:
				return fmt.Errorf("unknown format %q (want csv, sqlite or clipboard)", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatCSV, "Export format: csv, sqlite or clipboard")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path (defaults to the configured export dir)")
	return cmd
}

func writeCSVFile(path string, rows []export.Row) (err error) {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing export file: %w", cerr)
		}
	}()
	return export.WriteCSV(f, rows)
}

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	return nil
}
