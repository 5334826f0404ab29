package ui

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/gantt/internal/conflict"
	"github.com/javiermolinar/gantt/internal/schedule"
)

func (a *App) membersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "members",
		Short: "List the team roster",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.loadStore()
			if err != nil {
				return err
			}
			printMembers(cmd.OutOrStdout(), store)
			return nil
		},
	}
}

func printMembers(out io.Writer, store *schedule.Store) {
	members := store.Members()
	if len(members) == 0 {
		fmt.Fprintln(out, "No members.")
		return
	}

	tasks := store.Tasks()
	byMember := conflict.ByMember(tasks, members)

	for i, m := range members {
		assigned := 0
		for _, t := range tasks {
			if t.IsAssigned(m.ID) {
				assigned++
			}
		}

		conflicted := make(map[string]struct{})
		for _, p := range byMember[m.ID] {
			conflicted[p.A] = struct{}{}
			conflicted[p.B] = struct{}{}
		}

		line := fmt.Sprintf("%d  %s %s %s %d tasks",
			i+1,
			formatAccent(padRight(m.Avatar, 3)),
			padRight(m.Name, 18),
			formatMuted(padRight(m.Email, 24)),
			assigned,
		)
		if n := len(conflicted); n > 0 {
			line += ", " + formatConflict(fmt.Sprintf("%d in conflict", n))
		}
		fmt.Fprintln(out, line)
	}
}
