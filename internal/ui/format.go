package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/gantt/internal/task"
	"github.com/javiermolinar/gantt/internal/timeline"
)

const (
	nameCol       = 22 // task title column, without the conflict mark
	minTrackWidth = 20
	barCell       = "█"
	emptyCell     = " "
	todayCell     = "┊"
)

// trackWidth returns the bar track width for a terminal of the given width.
func trackWidth(termWidth int) int {
	return max(termWidth-nameCol-2, minTrackWidth)
}

// cellOf returns the track column for instant, or -1 outside the window.
func cellOf(w timeline.Window, instant time.Time, width int) int {
	if w.IsZero() || !w.Contains(instant) || w.Duration() <= 0 {
		return -1
	}
	col := int(float64(instant.Sub(w.Start)) / float64(w.Duration()) * float64(width))
	return min(col, width-1)
}

// renderTrack splits a track into the cells before, on and after the bar so
// each part can be colored separately. todayCol marks now; -1 hides it.
func renderTrack(p timeline.Placement, width, todayCol int) (before, bar, after string) {
	start, span := timeline.Columns(p, width)
	if span == 0 {
		return "", "", ""
	}

	cells := make([]string, span)
	for i := range cells {
		cells[i] = barCell
	}
	if p.ContinuesLeft {
		cells[0] = "◀"
	}
	if p.ContinuesRight {
		cells[span-1] = "▶"
	}

	return emptyTrack(0, start, todayCol), strings.Join(cells, ""), emptyTrack(start+span, width, todayCol)
}

// emptyTrack renders the cells in [from, to).
func emptyTrack(from, to, todayCol int) string {
	var b strings.Builder
	for i := from; i < to; i++ {
		if i == todayCol {
			b.WriteString(todayCell)
		} else {
			b.WriteString(emptyCell)
		}
	}
	return b.String()
}

// ruler places bucket labels at their columns, skipping any that would
// overlap the previous label.
func ruler(w timeline.Window, width int) string {
	line := []rune(strings.Repeat(" ", width))
	next := 0
	for _, b := range w.Buckets {
		col := cellOf(w, b, width)
		label := timeline.BucketLabel(w.Mode, b)
		if col < next || col+len(label) > width {
			continue
		}
		copy(line[col:], []rune(label))
		next = col + len(label) + 1
	}
	return string(line)
}

// formatRange returns e.g. "Mar 3 → Mar 5 (2d)".
func formatRange(start, end time.Time) string {
	return fmt.Sprintf("%s → %s (%dd)", formatTime(start), formatTime(end), task.DurationDays(start, end))
}

func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 {
		return t.Format("Jan 2")
	}
	return t.Format("Jan 2 15:04")
}

// formatOverlap renders a duration in days, hours and minutes, e.g. "1d 6h".
func formatOverlap(d time.Duration) string {
	if d <= 0 {
		return "0m"
	}
	days := d / task.Day
	hours := (d % task.Day) / time.Hour
	mins := (d % time.Hour) / time.Minute

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if mins > 0 {
		parts = append(parts, fmt.Sprintf("%dm", mins))
	}
	if len(parts) == 0 {
		return "<1m"
	}
	return strings.Join(parts, " ")
}

// avatars returns the assignees' short labels, falling back to the name.
func avatars(t *task.Task, members map[string]task.Member) string {
	labels := make([]string, 0, len(t.AssignedTo))
	for _, id := range t.AssignedTo {
		m, ok := members[id]
		if !ok {
			continue
		}
		if m.Avatar != "" {
			labels = append(labels, m.Avatar)
		} else {
			labels = append(labels, m.Name)
		}
	}
	return strings.Join(labels, " ")
}

func memberIndex(members []task.Member) map[string]task.Member {
	idx := make(map[string]task.Member, len(members))
	for _, m := range members {
		idx[m.ID] = m
	}
	return idx
}

// truncate shortens s to width cells with an ellipsis.
func truncate(s string, width int) string {
	return ansi.Truncate(s, width, "…")
}

func padRight(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
