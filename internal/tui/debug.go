package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/gantt/internal/drag"
	"github.com/javiermolinar/gantt/internal/timeline"
)

// debugLog receives TUI traces: keystrokes, mouse gestures and view changes.
var debugLog = zerolog.Nop()

// SetDebugLogger routes TUI traces to l.
func SetDebugLogger(l zerolog.Logger) {
	debugLog = l.With().Str("component", "tui").Logger()
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	debugLog.Debug().
		Str("event", "KEY_PRESS").
		Str("key", msg.String()).
		Msg("key")
}

// LogMouse logs a mouse event and the task row it landed on, if any.
func LogMouse(msg tea.MouseMsg, taskID string) {
	ev := debugLog.Debug().
		Str("event", "MOUSE").
		Str("mouse", msg.String()).
		Int("x", msg.X).
		Int("y", msg.Y)
	if taskID != "" {
		ev = ev.Str("task_id", taskID)
	}
	ev.Msg("mouse")
}

// LogModeChange logs a timeline mode or anchor change.
func LogModeChange(from, to timeline.Mode, reason string) {
	debugLog.Debug().
		Str("event", "MODE_CHANGE").
		Str("from", string(from)).
		Str("to", string(to)).
		Str("reason", reason).
		Msg("view")
}

// LogDrag logs a drag session step.
func LogDrag(step, taskID string, kind drag.Kind, applied bool) {
	debugLog.Debug().
		Str("event", "DRAG").
		Str("step", step).
		Str("task_id", taskID).
		Stringer("kind", kind).
		Bool("applied", applied).
		Msg("drag")
}

// LogError logs a failed action.
func LogError(action string, err error) {
	if err == nil {
		return
	}
	debugLog.Error().
		Str("event", "ERROR").
		Str("action", action).
		Err(err).
		Msg("action failed")
}
