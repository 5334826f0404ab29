// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/gantt/internal/export"
)

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// CollabTickMsg asks the model to run the collaborator once.
type CollabTickMsg struct {
	At time.Time
}

// CollabTick fires a CollabTickMsg after interval. A non-positive interval
// disables the schedule.
func CollabTick(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		return nil
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return CollabTickMsg{At: t}
	})
}

// ClearStatusAfter clears the status line after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// ExportCSV writes rows to path as CSV.
func ExportCSV(path string, rows []export.Row) tea.Cmd {
	return func() tea.Msg {
		if err := writeCSVFile(path, rows); err != nil {
			return ErrMsg{Err: err}
		}
		return StatusMsgCmd{Msg: fmt.Sprintf("Exported %d tasks to %s", len(rows), path)}
	}
}

func writeCSVFile(path string, rows []export.Row) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating export directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return export.WriteCSV(f, rows)
}

// ExportSQLite writes rows to a SQLite snapshot at path.
func ExportSQLite(path string, rows []export.Row) tea.Cmd {
	return func() tea.Msg {
		if err := export.WriteSQLite(context.Background(), path, rows); err != nil {
			return ErrMsg{Err: err}
		}
		return StatusMsgCmd{Msg: fmt.Sprintf("Saved %d tasks to %s", len(rows), path)}
	}
}

// CopyCSV copies rows to the system clipboard as CSV.
func CopyCSV(rows []export.Row) tea.Cmd {
	return func() tea.Msg {
		if err := export.CopyCSV(rows); err != nil {
			return ErrMsg{Err: err}
		}
		return StatusMsgCmd{Msg: fmt.Sprintf("Copied %d tasks to clipboard", len(rows))}
	}
}
