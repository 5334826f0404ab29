package tui

import (
	"os"
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/gantt/internal/timeline"
	"github.com/javiermolinar/gantt/internal/tui/commands"
)

func TestNavigationKeys(t *testing.T) {
	tests := []struct {
		name      string
		keys      []string
		wantMode  timeline.Mode
		wantStart time.Time
	}{
		{name: "next week", keys: []string{"right"}, wantMode: timeline.ModeWeek, wantStart: d(7)},
		{name: "previous week vim", keys: []string{"h"}, wantMode: timeline.ModeWeek, wantStart: d(-7)},
		{name: "day view", keys: []string{"d"}, wantMode: timeline.ModeDay, wantStart: d(3)},
		{name: "next day", keys: []string{"d", "l"}, wantMode: timeline.ModeDay, wantStart: d(4)},
		{name: "month view", keys: []string{"m"}, wantMode: timeline.ModeMonth, wantStart: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{name: "previous month", keys: []string{"m", "left"}, wantMode: timeline.ModeMonth, wantStart: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		{name: "today resets anchor", keys: []string{"right", "right", "t"}, wantMode: timeline.ModeWeek, wantStart: d(0)},
		{name: "week after day", keys: []string{"d", "w"}, wantMode: timeline.ModeWeek, wantStart: d(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(t, newTestModel(t), tt.keys...)
			if m.Mode() != tt.wantMode {
				t.Errorf("mode = %q, want %q", m.Mode(), tt.wantMode)
			}
			if got := m.Window().Start; !got.Equal(tt.wantStart) {
				t.Errorf("window start = %v, want %v", got, tt.wantStart)
			}
		})
	}
}

func TestSelectionKeys(t *testing.T) {
	m := newTestModel(t,
		mkTask("a", "Alpha", d(0), d(1)),
		mkTask("b", "Beta", d(1), d(2)),
		mkTask("c", "Gamma", d(2), d(3)),
	)

	m = press(t, m, "j", "down")
	if sel, _ := m.Selected(); sel.ID != "c" {
		t.Errorf("selected %s, want c", sel.ID)
	}
	m = press(t, m, "j")
	if sel, _ := m.Selected(); sel.ID != "c" {
		t.Errorf("selection moved past the end: %s", sel.ID)
	}
	m = press(t, m, "k", "up", "k")
	if sel, _ := m.Selected(); sel.ID != "a" {
		t.Errorf("selected %s, want a", sel.ID)
	}
}

func TestAddTaskPrompt(t *testing.T) {
	m, fx := newFixture(t, nil, mkTask("a", "Alpha", d(0), d(1)))

	m = press(t, m, "a")
	if m.promptKind != PromptAdd {
		t.Fatalf("prompt kind = %v, want add", m.promptKind)
	}
	// Keys go to the prompt, not the timeline.
	m = press(t, m, "Write docs")
	if m.Mode() != timeline.ModeWeek {
		t.Fatal("typing in the prompt changed the view")
	}
	m = press(t, m, "enter")

	if m.promptKind != PromptNone {
		t.Error("prompt still open after enter")
	}
	tasks := fx.store.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("store has %d tasks, want 2", len(tasks))
	}
	added := tasks[1]
	if added.ID != "new-1" || added.Title != "Write docs" || !added.StartDate.Equal(testNow) {
		t.Errorf("added = %+v", added)
	}
	if sel, _ := m.Selected(); sel.ID != "new-1" {
		t.Errorf("selected %s, want the new task", sel.ID)
	}
	if m.Status() != "Task added successfully" {
		t.Errorf("status = %q", m.Status())
	}
}

func TestAddTaskPrompt_BlankAndCancel(t *testing.T) {
	m, fx := newFixture(t, nil)

	m = press(t, m, "a", "   ", "enter")
	if fx.store.Len() != 0 {
		t.Error("blank title added a task")
	}

	m = press(t, m, "a", "Draft", "esc")
	if fx.store.Len() != 0 || m.promptKind != PromptNone {
		t.Errorf("esc should cancel: len %d, prompt %v", fx.store.Len(), m.promptKind)
	}
}

func TestDeleteKey(t *testing.T) {
	m, fx := newFixture(t, nil,
		mkTask("a", "Alpha", d(0), d(1)),
		mkTask("b", "Beta", d(1), d(2)),
	)

	m = press(t, m, "j", "x")
	if fx.store.Len() != 1 {
		t.Fatalf("store has %d tasks", fx.store.Len())
	}
	if _, ok := fx.store.Task("b"); ok {
		t.Error("b should be deleted")
	}
	if sel, _ := m.Selected(); sel.ID != "a" {
		t.Errorf("selection should fall back to a, got %s", sel.ID)
	}
	if m.Status() != "Task deleted" {
		t.Errorf("status = %q", m.Status())
	}

	m = press(t, m, "x", "x")
	if fx.store.Len() != 0 {
		t.Errorf("store has %d tasks", fx.store.Len())
	}
	if _, ok := m.Selected(); ok {
		t.Error("empty store should have no selection")
	}
}

func TestToggleCompletedKey(t *testing.T) {
	m, fx := newFixture(t, nil, mkTask("a", "Alpha", d(0), d(1)))

	m = press(t, m, "space")
	got, _ := fx.store.Task("a")
	if !got.Completed || got.Progress != 100 {
		t.Errorf("after space: completed %t, progress %d", got.Completed, got.Progress)
	}
	if m.Status() != `Completed "Alpha"` {
		t.Errorf("status = %q", m.Status())
	}

	m = press(t, m, "space")
	got, _ = fx.store.Task("a")
	if got.Completed || got.Progress != 0 {
		t.Errorf("after second space: completed %t, progress %d", got.Completed, got.Progress)
	}
	if m.Status() != `Reopened "Alpha"` {
		t.Errorf("status = %q", m.Status())
	}
}

func TestToggleMemberKeys(t *testing.T) {
	m, fx := newFixture(t, nil,
		mkTask("a", "Alpha", d(0), d(5), "1"),
		mkTask("b", "Beta", d(3), d(8)),
	)

	m = press(t, m, "j", "1")
	got, _ := fx.store.Task("b")
	if !slices.Equal(got.AssignedTo, []string{"1"}) {
		t.Fatalf("assignees = %v", got.AssignedTo)
	}
	if m.Status() != "2 tasks have scheduling conflicts" {
		t.Errorf("status = %q", m.Status())
	}
	if !fx.store.Conflicts().Has("a", "b") {
		t.Error("expected a/b conflict")
	}

	m = press(t, m, "1")
	got, _ = fx.store.Task("b")
	if len(got.AssignedTo) != 0 {
		t.Errorf("assignees = %v", got.AssignedTo)
	}
	if m.Status() != "Unassigned Alice Johnson" {
		t.Errorf("status = %q", m.Status())
	}
	if fx.store.Conflicts().Len() != 0 {
		t.Error("conflict should be gone")
	}

	// Out of roster range is ignored.
	m = press(t, m, "9")
	if got, _ = fx.store.Task("b"); len(got.AssignedTo) != 0 {
		t.Errorf("assignees = %v", got.AssignedTo)
	}
}

func TestCollaboratorKey(t *testing.T) {
	m, fx := newFixture(t, nil, mkTask("a", "Alpha", d(0), d(1)))

	updated, cmd := m.Update(key("c"))
	m = updated.(Model)
	if fx.store.Len() != 2 {
		t.Fatalf("store has %d tasks", fx.store.Len())
	}
	if cmd == nil {
		t.Error("expected status timeout command")
	}
	if !strings.HasPrefix(fx.store.Tasks()[1].ID, "collab-") {
		t.Errorf("collaborator id = %q", fx.store.Tasks()[1].ID)
	}
	if !strings.Contains(m.Status(), "added a new task") {
		t.Errorf("status = %q", m.Status())
	}

	// Accepted tasks are numbered without gaps.
	_ = press(t, m, "c")
	tasks := fx.store.Tasks()
	if tasks[1].Title != "Collaborator Task 1" || tasks[2].Title != "Collaborator Task 2" {
		t.Errorf("titles = %q, %q", tasks[1].Title, tasks[2].Title)
	}
}

func TestExportKeys(t *testing.T) {
	m, fx := newFixture(t, nil, mkTask("a", "Alpha", d(0), d(1), "1"))

	_, cmd := m.Update(key("e"))
	if cmd == nil {
		t.Fatal("e should return an export command")
	}
	msg := cmd()
	status, ok := msg.(commands.StatusMsgCmd)
	if !ok {
		t.Fatalf("msg = %T (%v)", msg, msg)
	}
	if !strings.Contains(status.Msg, fx.cfg.CSVPath()) {
		t.Errorf("status = %q", status.Msg)
	}
	data, err := os.ReadFile(fx.cfg.CSVPath())
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if !strings.Contains(string(data), "a,Alpha,,2025-03-02,2025-03-03,Alice Johnson,") {
		t.Errorf("csv = %q", data)
	}

	_, cmd = m.Update(key("s"))
	if msg := cmd(); msg == nil {
		t.Error("sqlite export returned no message")
	} else if _, ok := msg.(commands.StatusMsgCmd); !ok {
		t.Errorf("sqlite msg = %T (%v)", msg, msg)
	}
	if _, err := os.Stat(fx.cfg.SQLitePath()); err != nil {
		t.Errorf("sqlite snapshot missing: %v", err)
	}
}

func TestHelpKeys(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "?")
	if !m.showHelp {
		t.Fatal("? should open help")
	}
	// Timeline keys are inert while help is open.
	m = press(t, m, "d")
	if m.Mode() != timeline.ModeWeek {
		t.Error("help should swallow view keys")
	}
	m = press(t, m, "esc")
	if m.showHelp {
		t.Error("esc should close help")
	}
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		_, cmd := newTestModel(t).Update(key(k))
		if cmd == nil {
			t.Fatalf("%s returned no command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s did not quit", k)
		}
	}

	// q types into the prompt, ctrl+c still quits.
	m := press(t, newTestModel(t), "a", "q")
	if m.prompt.Value() != "q" {
		t.Errorf("prompt value = %q", m.prompt.Value())
	}
}
