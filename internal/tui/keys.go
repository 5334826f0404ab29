package tui

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/gantt/internal/export"
	"github.com/javiermolinar/gantt/internal/timeline"
	"github.com/javiermolinar/gantt/internal/tui/commands"
)

var errNoSelection = errors.New("no task selected")

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.promptKind != PromptNone {
		return m.handlePromptKeys(msg)
	}
	if m.showHelp {
		switch msg.String() {
		case "esc", "?", "q":
			m.showHelp = false
		}
		return m, nil
	}
	return m.handleNormalKeys(msg)
}

// handleNormalKeys handles keys when no prompt or help is open.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q":
		return m, tea.Quit

	// Timeline navigation
	case "h", "left":
		m.navigate(-1)
	case "l", "right":
		m.navigate(1)
	case "t":
		m.goToday()
	case "d":
		m.setMode(timeline.ModeDay)
	case "w":
		m.setMode(timeline.ModeWeek)
	case "m":
		m.setMode(timeline.ModeMonth)

	// Selection
	case "j", "down":
		m.selected++
		m.clampSelection()
	case "k", "up":
		m.selected--
		m.clampSelection()
	case "g", "home":
		m.selected = 0
		m.clampSelection()
	case "G", "end":
		m.selected = m.store.Len() - 1
		m.clampSelection()

	// Editing
	case "a":
		return m.openPrompt(PromptAdd, "")
	case "/", ":":
		return m.openPrompt(PromptCommand, "/")
	case "x", "delete":
		return m, m.deleteSelected()
	case " ":
		return m, m.toggleCompleted()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		n, _ := strconv.Atoi(key)
		return m, m.toggleMember(n - 1)
	case "c":
		return m, m.runCollaborator()

	// Export
	case "e":
		return m, commands.ExportCSV(m.config.CSVPath(), m.exportRows())
	case "s":
		return m, commands.ExportSQLite(m.config.SQLitePath(), m.exportRows())
	case "y":
		return m, commands.CopyCSV(m.exportRows())

	case "?":
		m.showHelp = true
	case "esc":
		m.statusMsg = ""
		m.err = nil
	}
	return m, nil
}

// handlePromptKeys handles keys while the prompt line is open.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePrompt()
		return m, nil
	case "tab":
		if m.promptKind == PromptCommand {
			m.autocompletePrompt()
		}
		return m, nil
	case "enter":
		value := m.prompt.Value()
		kind := m.promptKind
		m.closePrompt()
		if kind == PromptAdd {
			return m, m.addTask(value)
		}
		return m.runPromptCommand(value)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m Model) openPrompt(kind PromptKind, value string) (tea.Model, tea.Cmd) {
	m.promptKind = kind
	m.prompt.Placeholder = "Task title"
	if kind == PromptCommand {
		m.prompt.Placeholder = "/add, /goto, /mode, /export ..."
	}
	m.prompt.SetValue(value)
	m.prompt.CursorEnd()
	m.prompt.Focus()
	return m, textinput.Blink
}

func (m *Model) closePrompt() {
	m.promptKind = PromptNone
	m.prompt.Blur()
	m.prompt.SetValue("")
}

func (m *Model) navigate(direction int) {
	m.vp.anchor = timeline.Navigate(m.vp.anchor, m.vp.mode, direction)
	LogModeChange(m.vp.mode, m.vp.mode, fmt.Sprintf("navigate %+d", direction))
}

func (m *Model) goToday() {
	m.vp.anchor = timeline.Today(m.nowFunc(), m.loc)
	LogModeChange(m.vp.mode, m.vp.mode, "today")
}

func (m *Model) setMode(mode timeline.Mode) {
	if m.vp.mode == mode {
		return
	}
	LogModeChange(m.vp.mode, mode, "key")
	m.vp.mode = mode
}

// addTask creates a task from a prompt title and selects it.
func (m *Model) addTask(title string) tea.Cmd {
	t, err := m.store.AddTask(title)
	if err != nil {
		return m.setError("add", err)
	}
	if t == nil {
		return nil
	}
	m.selected = m.store.Len() - 1
	m.clampSelection()
	return m.drainEvents()
}

// dragging reports whether a drag session owns the store. Keyboard edits
// are dropped until the pointer is released.
func (m Model) dragging() bool {
	return m.drag != nil && m.drag.Active()
}

func (m *Model) deleteSelected() tea.Cmd {
	t, ok := m.Selected()
	if !ok || m.dragging() {
		return nil
	}
	if err := m.store.DeleteTask(t.ID); err != nil {
		return m.setError("delete", err)
	}
	m.clampSelection()
	return m.drainEvents()
}

func (m *Model) toggleCompleted() tea.Cmd {
	t, ok := m.Selected()
	if !ok || m.dragging() {
		return nil
	}
	if err := m.store.ToggleCompleted(t.ID); err != nil {
		return m.setError("complete", err)
	}
	if t.Completed {
		return m.setStatus(fmt.Sprintf("Reopened %q", t.Title), statusDuration)
	}
	return m.setStatus(fmt.Sprintf("Completed %q", t.Title), statusDuration)
}

// toggleMember toggles the assignment of the roster member at index n.
func (m *Model) toggleMember(n int) tea.Cmd {
	members := m.store.Members()
	if n < 0 || n >= len(members) {
		return nil
	}
	return m.toggleAssignment(members[n].ID)
}

func (m *Model) toggleAssignment(memberID string) tea.Cmd {
	if m.dragging() {
		return nil
	}
	t, ok := m.Selected()
	if !ok {
		return m.setError("assign", errNoSelection)
	}
	member, _ := m.store.Member(memberID)
	if err := m.store.ToggleAssignment(t.ID, memberID); err != nil {
		return m.setError("assign", err)
	}
	if cmd := m.drainEvents(); cmd != nil {
		return cmd
	}
	if t.IsAssigned(memberID) {
		return m.setStatus(fmt.Sprintf("Unassigned %s", member.Name), statusDuration)
	}
	return m.setStatus(fmt.Sprintf("Assigned %s", member.Name), statusDuration)
}

func (m Model) exportRows() []export.Row {
	return export.Rows(m.store.Tasks(), m.store.Members())
}
