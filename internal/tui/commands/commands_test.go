package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/javiermolinar/gantt/internal/export"
)

func sampleRows() []export.Row {
	return []export.Row{
		{
			TaskID:       "1",
			Title:        "Planning",
			Description:  "Scope the work",
			StartDate:    "2025-03-01",
			EndDate:      "2025-03-03",
			AssignedTo:   "Alice Johnson",
			Progress:     "100%",
			Priority:     "high",
			Completed:    "Yes",
			DurationDays: 2,
		},
	}
}

func TestExportCSVWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "gantt.csv")

	msg := ExportCSV(path, sampleRows())()
	status, ok := msg.(StatusMsgCmd)
	if !ok {
		t.Fatalf("msg = %T, want StatusMsgCmd", msg)
	}
	if !strings.Contains(status.Msg, "Exported 1 tasks") {
		t.Errorf("status = %q", status.Msg)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "Task ID,") || !strings.HasPrefix(lines[1], "1,Planning,") {
		t.Errorf("csv = %q", data)
	}
}

func TestExportCSVReportsError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	msg := ExportCSV(filepath.Join(blocker, "gantt.csv"), sampleRows())()
	if _, ok := msg.(ErrMsg); !ok {
		t.Fatalf("msg = %T, want ErrMsg", msg)
	}
}

func TestExportSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gantt.db")

	msg := ExportSQLite(path, sampleRows())()
	if _, ok := msg.(StatusMsgCmd); !ok {
		t.Fatalf("msg = %T (%v), want StatusMsgCmd", msg, msg)
	}

	snap, err := export.OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = snap.Close() }()
	rows, err := snap.Rows(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].Title != "Planning" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestCollabTickDisabled(t *testing.T) {
	if CollabTick(0) != nil {
		t.Error("CollabTick(0) should be nil")
	}
	if CollabTick(-1) != nil {
		t.Error("CollabTick(-1) should be nil")
	}
}
