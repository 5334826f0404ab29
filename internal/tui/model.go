// Package tui provides the terminal user interface for gantt.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/gantt/internal/collab"
	"github.com/javiermolinar/gantt/internal/config"
	"github.com/javiermolinar/gantt/internal/drag"
	"github.com/javiermolinar/gantt/internal/notify"
	"github.com/javiermolinar/gantt/internal/schedule"
	"github.com/javiermolinar/gantt/internal/task"
	"github.com/javiermolinar/gantt/internal/timeline"
	"github.com/javiermolinar/gantt/internal/tui/commands"
	"github.com/javiermolinar/gantt/internal/tui/theme"
)

// Screen geometry. The name column is followed by a one-cell separator and
// then the track, which takes the rest of the width.
const (
	nameWidth     = 24
	trackX        = nameWidth + 1
	minTrackWidth = 20
	headerLines   = 2
	footerLines   = 3

	statusDuration = 3 * time.Second
	errorDuration  = 5 * time.Second
)

// PromptKind says what the prompt line is collecting.
type PromptKind int

const (
	PromptNone    PromptKind = iota
	PromptAdd                // new task title
	PromptCommand            // slash command
)

// viewport is the visible window and terminal size. It is shared by pointer
// so the drag controller sees view changes made while a drag is running.
type viewport struct {
	mode   timeline.Mode
	anchor time.Time
	width  int
	height int
}

func (v *viewport) window() timeline.Window {
	return timeline.NewWindow(v.anchor, v.mode)
}

func (v *viewport) trackWidth() int {
	return max(v.width-trackX, minTrackWidth)
}

func (v *viewport) basis() drag.Basis {
	return drag.Basis{Window: v.window(), Width: float64(v.trackWidth())}
}

// Model is the main TUI model.
type Model struct {
	store  *schedule.Store
	inbox  *notify.Recorder
	config *config.Config
	theme  *theme.Theme
	styles *Styles
	loc    *time.Location
	log    zerolog.Logger

	vp     *viewport
	drag   *drag.Controller
	collab *collab.Producer

	nowFunc func() time.Time
	anchor  time.Time // set by WithAnchor

	selected int
	offset   int

	prompt     textinput.Model
	promptKind PromptKind
	showHelp   bool

	statusMsg  string
	statusTime time.Time
	err        error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithLogger sets the logger used by the drag controller and for events.
func WithLogger(l zerolog.Logger) ModelOption {
	return func(m *Model) {
		m.log = l
	}
}

// WithClock overrides time.Now for "today" and new tasks shown on screen.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		if now != nil {
			m.nowFunc = now
		}
	}
}

// WithAnchor opens the timeline on t instead of today.
func WithAnchor(t time.Time) ModelOption {
	return func(m *Model) {
		m.anchor = t
	}
}

// WithProducer sets the collaborator producer.
func WithProducer(p *collab.Producer) ModelOption {
	return func(m *Model) {
		m.collab = p
	}
}

// New creates a new TUI model over store. Events the store sends to inbox
// are shown on the status line; inbox may be nil.
func New(store *schedule.Store, inbox *notify.Recorder, cfg *config.Config, opts ...ModelOption) Model {
	if cfg == nil {
		cfg = config.Default()
	}

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("mocha")
	}
	styles := NewStyles(t)

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 48
	ti.PromptStyle = styles.PromptStyle
	ti.TextStyle = styles.PromptStyle

	m := Model{
		store:   store,
		inbox:   inbox,
		config:  cfg,
		theme:   t,
		styles:  styles,
		loc:     cfg.Location(),
		log:     zerolog.Nop(),
		collab:  collab.New(),
		nowFunc: time.Now,
		prompt:  ti,
	}
	for _, opt := range opts {
		opt(&m)
	}

	anchor := m.anchor
	if anchor.IsZero() {
		anchor = timeline.Today(m.nowFunc(), m.loc)
	}
	m.vp = &viewport{mode: cfg.Mode(), anchor: anchor.In(m.loc)}

	var notifier notify.Multi
	notifier = append(notifier, notify.Logger{Log: m.log})
	if inbox != nil {
		notifier = append(notifier, inbox)
	}
	dragOpts := []drag.Option{drag.WithNotifier(notifier), drag.WithLogger(m.log)}
	if cfg.Drag.SnapshotBasis {
		dragOpts = append(dragOpts, drag.WithSnapshotBasis())
	}
	m.drag = drag.New(store, m.vp.basis, dragOpts...)

	m.drainEvents()
	return m
}

// Init starts the collaborator schedule and the first status timeout.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.config.Collaborator.Enabled && m.collab != nil {
		cmds = append(cmds, commands.CollabTick(m.config.CollabInterval()))
	}
	if m.statusMsg != "" {
		cmds = append(cmds, commands.ClearStatusAfter(statusDuration))
	}
	return tea.Batch(cmds...)
}

// Run starts the TUI over a store seeded with members and tasks.
func Run(cfg *config.Config, members []task.Member, tasks []*task.Task, log zerolog.Logger, opts ...ModelOption) error {
	SetDebugLogger(log)

	inbox := &notify.Recorder{}
	store := schedule.New(
		schedule.WithNotifier(notify.Multi{notify.Logger{Log: log}, inbox}),
		schedule.WithLogger(log),
	)
	if err := store.Seed(members, tasks); err != nil {
		return fmt.Errorf("seeding schedule: %w", err)
	}

	model := New(store, inbox, cfg, append([]ModelOption{WithLogger(log)}, opts...)...)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Mode returns the current view mode.
func (m Model) Mode() timeline.Mode {
	return m.vp.mode
}

// Window returns the visible window.
func (m Model) Window() timeline.Window {
	return m.vp.window()
}

// Selected returns the selected task, if any.
func (m Model) Selected() (*task.Task, bool) {
	tasks := m.store.Tasks()
	if m.selected < 0 || m.selected >= len(tasks) {
		return nil, false
	}
	return tasks[m.selected], true
}

// Status returns the status line text.
func (m Model) Status() string {
	return m.statusMsg
}

func (m *Model) setStatus(msg string, d time.Duration) tea.Cmd {
	m.statusMsg = msg
	m.statusTime = time.Now().Add(d)
	return commands.ClearStatusAfter(d)
}

func (m *Model) setError(action string, err error) tea.Cmd {
	LogError(action, err)
	m.err = err
	return m.setStatus(fmt.Sprintf("Error: %v", err), errorDuration)
}

// drainEvents moves store and drag notifications onto the status line.
func (m *Model) drainEvents() tea.Cmd {
	if m.inbox == nil || len(m.inbox.Events) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(m.inbox.Events))
	for _, e := range m.inbox.Events {
		msgs = append(msgs, e.String())
	}
	m.inbox.Reset()
	m.err = nil
	return m.setStatus(strings.Join(msgs, " · "), statusDuration)
}

func (m Model) visibleRows() int {
	if m.vp.height == 0 {
		return max(m.store.Len(), 1)
	}
	return max(m.vp.height-headerLines-footerLines, 1)
}

// clampSelection keeps the selection on an existing task and in view.
func (m *Model) clampSelection() {
	n := m.store.Len()
	m.selected = min(max(m.selected, 0), max(n-1, 0))

	rows := m.visibleRows()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+rows {
		m.offset = m.selected - rows + 1
	}
	m.offset = min(max(m.offset, 0), max(n-rows, 0))
}
