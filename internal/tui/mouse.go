package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/gantt/internal/drag"
	"github.com/javiermolinar/gantt/internal/timeline"
)

// hit is what a screen cell maps to.
type hit struct {
	row    int
	taskID string
	onBar  bool
	kind   drag.Kind
}

// handleMouseMsg maps presses on a bar to drag sessions. The first cell of a
// bar resizes its start, the last cell its end, anything between moves it.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.selected--
			m.clampSelection()
			return m, nil
		case tea.MouseButtonWheelDown:
			m.selected++
			m.clampSelection()
			return m, nil
		case tea.MouseButtonLeft:
		default:
			return m, nil
		}

		h, ok := m.hitTest(msg.X, msg.Y)
		LogMouse(msg, h.taskID)
		if !ok {
			return m, nil
		}
		m.selected = h.row
		m.clampSelection()
		if h.onBar && m.promptKind == PromptNone {
			began := m.drag.Begin(h.taskID, h.kind, float64(msg.X))
			LogDrag("begin", h.taskID, h.kind, began)
		}
		return m, nil

	case tea.MouseActionMotion:
		if !m.drag.Active() {
			return m, nil
		}
		id, kind, _ := m.drag.Session()
		applied := m.drag.Move(float64(msg.X))
		LogDrag("move", id, kind, applied)
		if !applied {
			return m, nil
		}
		return m, m.drainEvents()

	case tea.MouseActionRelease:
		id, kind, active := m.drag.Session()
		if !active {
			return m, nil
		}
		m.drag.End()
		LogDrag("end", id, kind, true)
		return m, m.drainEvents()
	}
	return m, nil
}

// hitTest maps a screen cell to a task row and, when the cell is on the
// task's bar, the gesture a press there starts.
func (m Model) hitTest(x, y int) (hit, bool) {
	if y < headerLines || y >= headerLines+m.visibleRows() {
		return hit{}, false
	}
	tasks := m.store.Tasks()
	row := y - headerLines + m.offset
	if row < 0 || row >= len(tasks) {
		return hit{}, false
	}

	h := hit{row: row, taskID: tasks[row].ID}
	cell := x - trackX
	if cell < 0 {
		return h, true
	}
	p, ok := timeline.LayoutTask(tasks[row], m.vp.window())
	if !ok {
		return h, true
	}
	start, span := timeline.Columns(p, m.vp.trackWidth())
	if cell < start || cell >= start+span {
		return h, true
	}
	h.onBar = true
	h.kind = barKind(cell-start, span, p)
	return h, true
}

// barKind picks the gesture for a press offset cells into a bar span cells
// wide. Edges cut off by the window cannot be resized from here.
func barKind(offset, span int, p timeline.Placement) drag.Kind {
	switch {
	case span >= 2 && offset == 0 && !p.ContinuesLeft:
		return drag.ResizeLeft
	case span >= 2 && offset == span-1 && !p.ContinuesRight:
		return drag.ResizeRight
	default:
		return drag.Move
	}
}
