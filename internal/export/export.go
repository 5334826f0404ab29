// Package export flattens the schedule into rows and writes them out.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/javiermolinar/gantt/internal/task"
)

// Header is the column order of every export.
var Header = []string{
	"Task ID",
	"Title",
	"Description",
	"Start Date",
	"End Date",
	"Assigned To",
	"Progress",
	"Priority",
	"Completed",
	"Duration (days)",
}

// Row is one exported task.
type Row struct {
	TaskID       string
	Title        string
	Description  string
	StartDate    string // YYYY-MM-DD in UTC
	EndDate      string // YYYY-MM-DD in UTC
	AssignedTo   string // member names joined with ", "
	Progress     string // "40%"
	Priority     string
	Completed    string // "Yes" or "No"
	DurationDays int
}

// Values returns the row in Header order.
func (r Row) Values() []string {
	return []string{
		r.TaskID,
		r.Title,
		r.Description,
		r.StartDate,
		r.EndDate,
		r.AssignedTo,
		r.Progress,
		r.Priority,
		r.Completed,
		strconv.Itoa(r.DurationDays),
	}
}

// Rows converts tasks into export rows in task order. Assignee ids missing
// from members are left out of the name list.
func Rows(tasks []*task.Task, members []task.Member) []Row {
	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.ID] = m.Name
	}

	rows := make([]Row, 0, len(tasks))
	for _, t := range tasks {
		var assigned []string
		for _, id := range t.AssignedTo {
			if name, ok := names[id]; ok {
				assigned = append(assigned, name)
			}
		}
		completed := "No"
		if t.Completed {
			completed = "Yes"
		}

		rows = append(rows, Row{
			TaskID:       t.ID,
			Title:        t.Title,
			Description:  t.Description,
			StartDate:    t.StartDate.UTC().Format("2006-01-02"),
			EndDate:      t.EndDate.UTC().Format("2006-01-02"),
			AssignedTo:   strings.Join(assigned, ", "),
			Progress:     fmt.Sprintf("%d%%", t.Progress),
			Priority:     string(t.Priority),
			Completed:    completed,
			DurationDays: task.DurationDays(t.StartDate, t.EndDate),
		})
	}
	return rows
}

// WriteCSV writes the header and one record per row.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.Values()); err != nil {
			return fmt.Errorf("writing csv row %s: %w", r.TaskID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

// CSV renders rows as a CSV document.
func CSV(rows []Row) (string, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// clipboardWrite is replaced in tests.
var clipboardWrite = clipboard.WriteAll

// CopyCSV puts the CSV rendering of rows on the system clipboard.
func CopyCSV(rows []Row) error {
	text, err := CSV(rows)
	if err != nil {
		return err
	}
	if err := clipboardWrite(text); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	return nil
}
