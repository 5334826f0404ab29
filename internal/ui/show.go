package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/gantt/internal/dateutil"
	"github.com/javiermolinar/gantt/internal/schedule"
	"github.com/javiermolinar/gantt/internal/timeline"
)

func (a *App) showCmd() *cobra.Command {
	var at string
	var noColor bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the timeline",
		Long: `Print the visible window with one bar per task.

Bars cut by the window edge end in ◀ or ▶, tasks that double-book a
member are marked with !. With --at, lists the tasks in progress at
that instant instead.`,
		Example: `  gantt show
  gantt show --mode month --date 2025-03-01
  gantt show --at "2025-03-05 14:00"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}

			store, err := a.loadStore()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if at != "" {
				instant, err := a.parseInstant(at)
				if err != nil {
					return err
				}
				printActive(out, store, instant)
				return nil
			}

			anchor, err := a.anchor()
			if err != nil {
				return err
			}
			w := timeline.NewWindow(anchor, a.config.Mode())
			printTimeline(out, store, w, a.now(), trackWidth(termWidth()))
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", `List tasks active at an instant (RFC 3339, "2025-03-05 14:00" or a date)`)
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

// parseInstant accepts RFC 3339, "YYYY-MM-DD HH:MM" in the configured
// timezone, or anything dateutil.ParseAnchor understands.
func (a *App) parseInstant(s string) (time.Time, error) {
	loc := a.config.Location()
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	t, err := dateutil.ParseAnchor(s, a.now().In(loc))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at %q: %w", s, err)
	}
	return t, nil
}

func printTimeline(out io.Writer, store *schedule.Store, w timeline.Window, now time.Time, width int) {
	fmt.Fprintf(out, "=== %s ===\n\n", formatHeader(timeline.Label(w)))
	fmt.Fprintf(out, "%s%s\n", strings.Repeat(" ", nameCol+2), formatMuted(ruler(w, width)))

	tasks := store.Tasks()
	conflicts := store.Conflicts()
	members := memberIndex(store.Members())
	todayCol := cellOf(w, now, width)

	shown := 0
	for _, t := range tasks {
		p, ok := timeline.LayoutTask(t, w)
		if !ok {
			continue
		}
		shown++

		mark := " "
		if conflicts.Conflicted(t.ID) {
			mark = formatConflict("!")
		}
		before, bar, after := renderTrack(p, width, todayCol)
		fmt.Fprintf(out, "%s%s %s%s%s  %s\n",
			mark,
			padRight(truncate(t.Title, nameCol), nameCol),
			formatMuted(before),
			formatBar(bar, t),
			formatMuted(after),
			formatAccent(avatars(t, members)),
		)
	}
	if shown == 0 {
		fmt.Fprintln(out, formatMuted("No tasks in this window."))
	}

	var parts []string
	prev, next := timeline.Continuation(tasks, w)
	if prev > 0 {
		parts = append(parts, fmt.Sprintf("◀ %d from previous", prev))
	}
	if next > 0 {
		parts = append(parts, fmt.Sprintf("%d continue ▶", next))
	}
	if n := conflicts.Len(); n > 0 {
		parts = append(parts, formatConflict(fmt.Sprintf("⚠ %d tasks in conflict", n)))
	}
	if len(parts) > 0 {
		fmt.Fprintf(out, "\n%s\n", strings.Join(parts, " · "))
	}
}

func printActive(out io.Writer, store *schedule.Store, instant time.Time) {
	fmt.Fprintf(out, "=== Active at %s ===\n\n", formatHeader(instant.Format("Mon Jan 2 15:04")))

	active := timeline.ActiveAt(store.Tasks(), instant)
	if len(active) == 0 {
		fmt.Fprintln(out, "No tasks active at that time.")
		return
	}

	conflicts := store.Conflicts()
	members := memberIndex(store.Members())
	for _, t := range active {
		mark := " "
		if conflicts.Conflicted(t.ID) {
			mark = formatConflict("!")
		}
		fmt.Fprintf(out, " %s %s %s  %s  %s\n",
			mark,
			padRight(truncate(t.Title, nameCol), nameCol),
			formatMuted(formatRange(t.StartDate, t.EndDate)),
			formatBar(string(t.Priority), t),
			formatAccent(avatars(t, members)),
		)
	}
}
