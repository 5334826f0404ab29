package ui

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/gantt/internal/conflict"
	"github.com/javiermolinar/gantt/internal/schedule"
	"github.com/javiermolinar/gantt/internal/task"
)

func (a *App) conflictsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "conflicts",
		Short: "List double-booked members",
		Long: `List every member assigned to overlapping tasks, with each
overlapping pair and how long the two tasks overlap.

Tasks that only touch at their boundaries do not conflict.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.loadStore()
			if err != nil {
				return err
			}
			printConflicts(cmd.OutOrStdout(), store)
			return nil
		},
	}
}

func printConflicts(out io.Writer, store *schedule.Store) {
	members := store.Members()
	byMember := conflict.ByMember(store.Tasks(), members)
	if len(byMember) == 0 {
		fmt.Fprintln(out, "No scheduling conflicts.")
		return
	}

	for _, m := range members {
		pairs, ok := byMember[m.ID]
		if !ok {
			continue
		}
		fmt.Fprintf(out, "%s %s\n", formatConflict(m.Name), formatMuted("("+m.Avatar+")"))
		for _, p := range pairs {
			a, okA := store.Task(p.A)
			b, okB := store.Task(p.B)
			if !okA || !okB {
				continue
			}
			overlap := task.OverlapDuration(a.StartDate, a.EndDate, b.StartDate, b.EndDate)
			fmt.Fprintf(out, "  %s ↔ %s  %s\n", a.Title, b.Title, formatMuted(formatOverlap(overlap)+" overlap"))
		}
	}

	fmt.Fprintf(out, "\n%d members double-booked, %d tasks in conflict\n", len(byMember), store.Conflicts().Len())
}
