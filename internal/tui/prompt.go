package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/gantt/internal/dateutil"
	"github.com/javiermolinar/gantt/internal/timeline"
	"github.com/javiermolinar/gantt/internal/tui/commands"
	"github.com/javiermolinar/gantt/internal/tui/input"
)

var promptCommands = []input.PromptCommand{
	{Name: "/add", Args: "<title>", Description: "Add a one-day task starting now"},
	{Name: "/goto", Args: "<date>", Description: "Jump to a date (2025-03-05, today, next-week, friday)"},
	{Name: "/mode", Args: "<day|week|month>", Description: "Change the view"},
	{Name: "/assign", Args: "<member>", Description: "Toggle a member on the selected task"},
	{Name: "/export", Args: "[csv|sqlite|clipboard]", Description: "Export the schedule"},
	{Name: "/help", Description: "Show key bindings"},
}

func (m *Model) autocompletePrompt() {
	if value, ok := input.PromptAutocomplete(m.prompt.Value(), promptCommands); ok {
		m.prompt.SetValue(value)
		m.prompt.CursorEnd()
	}
}

// runPromptCommand executes a submitted slash command.
func (m Model) runPromptCommand(value string) (tea.Model, tea.Cmd) {
	name, arg, ok := input.ParseCommand(value)
	if !ok {
		if strings.TrimSpace(value) == "" {
			return m, nil
		}
		return m, m.setError("prompt", fmt.Errorf("commands start with '/': %q", value))
	}

	switch name {
	case "/add":
		return m, m.addTask(arg)

	case "/goto":
		anchor, err := dateutil.ParseAnchor(arg, m.nowFunc().In(m.loc))
		if err != nil {
			return m, m.setError("goto", err)
		}
		m.vp.anchor = anchor
		LogModeChange(m.vp.mode, m.vp.mode, "goto "+arg)
		return m, nil

	case "/mode":
		mode, err := timeline.ParseMode(arg)
		if err != nil {
			return m, m.setError("mode", err)
		}
		m.setMode(mode)
		return m, nil

	case "/assign":
		id, err := m.findMember(arg)
		if err != nil {
			return m, m.setError("assign", err)
		}
		return m, m.toggleAssignment(id)

	case "/export":
		switch strings.ToLower(arg) {
		case "", "csv":
			return m, commands.ExportCSV(m.config.CSVPath(), m.exportRows())
		case "sqlite":
			return m, commands.ExportSQLite(m.config.SQLitePath(), m.exportRows())
		case "clipboard":
			return m, commands.CopyCSV(m.exportRows())
		default:
			return m, m.setError("export", fmt.Errorf("unknown export format %q", arg))
		}

	case "/help":
		m.showHelp = true
		return m, nil

	default:
		return m, m.setError("prompt", fmt.Errorf("unknown command %s", name))
	}
}

// findMember resolves a member by id, avatar or case-insensitive name prefix.
func (m Model) findMember(query string) (string, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", fmt.Errorf("member name required")
	}
	var matches []string
	for _, member := range m.store.Members() {
		switch {
		case strings.ToLower(member.ID) == q, strings.ToLower(member.Avatar) == q:
			return member.ID, nil
		case strings.HasPrefix(strings.ToLower(member.Name), q):
			matches = append(matches, member.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no member matches %q", query)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%d members match %q", len(matches), query)
	}
}
