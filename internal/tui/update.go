package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/gantt/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.vp.width = msg.Width
		m.vp.height = msg.Height
		m.prompt.Width = max(msg.Width-4, 10)
		m.clampSelection()
		return m, nil

	case commands.CollabTickMsg:
		cmd := m.runCollaborator()
		return m, tea.Batch(cmd, commands.CollabTick(m.config.CollabInterval()))

	case commands.ErrMsg:
		return m, m.setError("command", msg.Err)

	case commands.StatusMsgCmd:
		m.err = nil
		return m, m.setStatus(msg.Msg, statusDuration)

	case commands.ClearStatusMsg:
		if !time.Now().Before(m.statusTime) {
			m.statusMsg = ""
			m.err = nil
		}
		return m, nil
	}

	if m.promptKind != PromptNone {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

// runCollaborator adds one collaborator task after the last task.
func (m *Model) runCollaborator() tea.Cmd {
	if m.collab == nil {
		return nil
	}
	t, message, ok := m.collab.Next(m.store.Tasks(), m.store.Members())
	if !ok {
		return nil
	}
	if err := m.store.InsertTask(t, message); err != nil {
		return m.setError("collaborator", fmt.Errorf("inserting collaborator task: %w", err))
	}
	m.collab.Commit()
	return m.drainEvents()
}
