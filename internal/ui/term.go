package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/gantt/internal/task"
)

// Color definitions for consistent styling across the UI.
var (
	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Conflicts: bold red so double bookings stand out
	colorConflict = color.New(color.FgRed, color.Bold)

	// Accent: cyan for avatars and the today marker
	colorAccent = color.New(color.FgCyan)

	// Completed tasks: green
	colorDone = color.New(color.FgGreen)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)

	colorPriority = map[task.Priority]*color.Color{
		task.PriorityHigh:   color.New(color.FgRed),
		task.PriorityMedium: color.New(color.FgYellow),
		task.PriorityLow:    color.New(color.FgBlue),
	}
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatConflict formats text for conflict warnings.
func formatConflict(s string) string {
	return colorConflict.Sprint(s)
}

func formatAccent(s string) string {
	return colorAccent.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

// formatBar colors a bar by priority, or green once the task is done.
func formatBar(s string, t *task.Task) string {
	if t.Completed {
		return colorDone.Sprint(s)
	}
	if c, ok := colorPriority[t.Priority]; ok {
		return c.Sprint(s)
	}
	return s
}
