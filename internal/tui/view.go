package tui

import (
	"cmp"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/gantt/internal/conflict"
	"github.com/javiermolinar/gantt/internal/task"
	"github.com/javiermolinar/gantt/internal/timeline"
	"github.com/javiermolinar/gantt/internal/tui/input"
)

type keyHelp struct {
	key  string
	desc string
}

var keyBindings = []keyHelp{
	{"←/→ h/l", "previous / next page"},
	{"d w m", "day, week or month view"},
	{"t", "jump to today"},
	{"j/k", "select task"},
	{"a", "add task"},
	{"/", "command prompt"},
	{"x", "delete task"},
	{"space", "toggle completed"},
	{"1-9", "toggle Nth member on task"},
	{"c", "collaborator adds a task"},
	{"e s y", "export csv, sqlite, clipboard"},
	{"drag bar", "move; drag an edge to resize"},
	{"?", "close help"},
	{"q", "quit"},
}

// View renders the timeline.
func (m Model) View() string {
	if m.vp.width == 0 || m.vp.height == 0 {
		return "Loading..."
	}
	width := m.vp.width
	w := m.vp.window()

	lines := []string{m.renderHeader(w, width), m.renderRuler(w)}
	if m.showHelp {
		lines = append(lines, m.renderHelp()...)
	} else {
		lines = append(lines, m.renderRows(w)...)
	}

	body := m.vp.height - footerLines
	blank := m.styles.TrackStyle.Render(strings.Repeat(" ", width))
	for len(lines) < body {
		lines = append(lines, blank)
	}
	lines = lines[:max(body, 0)]
	lines = append(lines, m.renderFooter(w)...)

	for i, line := range lines {
		lines[i] = padRight(ansi.Truncate(line, width, ""), width)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderHeader(w timeline.Window, width int) string {
	left := m.styles.TitleStyle.Render(" gantt ") +
		m.styles.LabelStyle.Render(" "+timeline.Label(w))

	var tabs []string
	for _, mode := range []timeline.Mode{timeline.ModeDay, timeline.ModeWeek, timeline.ModeMonth} {
		style := m.styles.ModeInactiveStyle
		if mode == w.Mode {
			style = m.styles.ModeActiveStyle
		}
		tabs = append(tabs, style.Render(string(mode)))
	}
	right := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + m.styles.TrackStyle.Render(strings.Repeat(" ", gap)) + right
}

// renderRuler draws the bucket labels at their track columns. Labels that
// would touch the previous one are skipped.
func (m Model) renderRuler(w timeline.Window) string {
	tw := m.vp.trackWidth()
	today := -1
	if w.Mode != timeline.ModeDay {
		today = w.BucketIndex(m.nowFunc())
	}

	var b strings.Builder
	b.WriteString(m.styles.NameStyle.Render(padRight(" Task", nameWidth)))
	b.WriteString(m.styles.SeparatorStyle.Render("│"))

	pos := 0
	for i, bucket := range w.Buckets {
		col := trackColumn(bucket, w, tw)
		label := timeline.BucketLabel(w.Mode, bucket)
		if col < pos || col+len(label) > tw {
			continue
		}
		b.WriteString(m.styles.BucketStyle.Render(strings.Repeat(" ", col-pos)))
		style := m.styles.BucketStyle
		if i == today {
			style = m.styles.BucketTodayStyle
		}
		b.WriteString(style.Render(label))
		pos = col + len(label) + 1
		if pos <= tw {
			b.WriteString(m.styles.BucketStyle.Render(" "))
		}
	}
	if pos < tw {
		b.WriteString(m.styles.BucketStyle.Render(strings.Repeat(" ", tw-pos)))
	}
	return b.String()
}

func (m Model) renderRows(w timeline.Window) []string {
	tasks := m.store.Tasks()
	conflicts := m.store.Conflicts()
	draggedID, _, dragging := m.drag.Session()

	end := min(m.offset+m.visibleRows(), len(tasks))
	lines := make([]string, 0, max(end-m.offset, 0))
	for i := m.offset; i < end; i++ {
		t := tasks[i]
		active := i == m.selected || (dragging && t.ID == draggedID)
		lines = append(lines, m.renderRow(i, t, w, conflicts, active))
	}
	if len(tasks) == 0 {
		lines = append(lines, m.styles.HelpStyle.Render(" No tasks. Press a to add one."))
	}
	return lines
}

func (m Model) renderRow(i int, t *task.Task, w timeline.Window, conflicts conflict.Map, active bool) string {
	conflicted := conflicts.Conflicted(t.ID)

	mark := m.styles.NameStyle.Render(" ")
	if conflicted {
		mark = m.styles.ConflictMarkStyle.Render("!")
	}
	nameStyle := m.styles.NameStyle
	switch {
	case i == m.selected:
		nameStyle = m.styles.NameSelectedStyle
	case t.Completed:
		nameStyle = m.styles.NameDoneStyle
	}
	name := nameStyle.Render(padRight(" "+ansi.Truncate(t.Title, nameWidth-3, "…"), nameWidth-1))

	track := m.styles.TrackStyle
	if i%2 == 1 {
		track = m.styles.TrackAltStyle
	}

	tw := m.vp.trackWidth()
	todayCol := -1
	if now := m.nowFunc(); w.Contains(now) {
		todayCol = trackColumn(now, w, tw)
	}

	var b strings.Builder
	b.WriteString(mark)
	b.WriteString(name)
	b.WriteString(m.styles.SeparatorStyle.Render("│"))

	p, ok := timeline.LayoutTask(t, w)
	if !ok {
		b.WriteString(m.emptyTrack(0, tw, todayCol, track))
		return b.String()
	}

	start, span := timeline.Columns(p, tw)
	b.WriteString(m.emptyTrack(0, start, todayCol, track))
	bar := m.styles.Bar(t.Priority, t.Completed, active, conflicted)
	b.WriteString(bar.Render(m.barText(t, p, span)))
	b.WriteString(m.emptyTrack(start+span, tw, todayCol, track))
	return b.String()
}

// emptyTrack renders cells [from, to) of a row with the today marker.
func (m Model) emptyTrack(from, to, todayCol int, style lipgloss.Style) string {
	if from >= to {
		return ""
	}
	if todayCol < from || todayCol >= to {
		return style.Render(strings.Repeat(" ", to-from))
	}
	return style.Render(strings.Repeat(" ", todayCol-from)) +
		m.styles.TodayMarkerStyle.Render("┊") +
		style.Render(strings.Repeat(" ", to-todayCol-1))
}

// barText fits the task label into span cells, with arrows on edges that
// continue outside the window.
func (m Model) barText(t *task.Task, p timeline.Placement, span int) string {
	var prefix, suffix string
	if p.ContinuesLeft {
		prefix = "◀"
	}
	if p.ContinuesRight {
		suffix = "▶"
	}
	room := span - ansi.StringWidth(prefix) - ansi.StringWidth(suffix)
	if room <= 0 {
		return ansi.Truncate(prefix+suffix, span, "")
	}

	label := " " + t.Title
	if avatars := m.avatars(t); avatars != "" {
		label += " · " + avatars
	}
	return prefix + padRight(ansi.Truncate(label, room, "…"), room) + suffix
}

func (m Model) avatars(t *task.Task) string {
	var out []string
	for _, id := range t.AssignedTo {
		if member, ok := m.store.Member(id); ok {
			out = append(out, cmp.Or(member.Avatar, member.Name))
		}
	}
	return strings.Join(out, " ")
}

func (m Model) renderFooter(w timeline.Window) []string {
	return []string{
		m.renderInfoLine(w),
		m.renderStatusLine(),
		m.renderHintLine(),
	}
}

// renderInfoLine shows prompt suggestions, the drag in progress, or the
// continuation and conflict counters.
func (m Model) renderInfoLine(w timeline.Window) string {
	if m.promptKind == PromptCommand {
		var parts []string
		for _, c := range input.PromptMatchingCommands(m.prompt.Value(), promptCommands) {
			parts = append(parts, m.styles.HelpKeyStyle.Render(c.Name)+m.styles.HelpStyle.Render(" "+c.Args))
		}
		return m.styles.FooterStyle.Render(" ") + strings.Join(parts, m.styles.FooterStyle.Render("  "))
	}

	if id, kind, ok := m.drag.Session(); ok {
		if t, found := m.store.Task(id); found {
			return m.styles.StatusStyle.Render(fmt.Sprintf(" %s %q  %s → %s",
				kind, t.Title, formatTime(t.StartDate.In(m.loc)), formatTime(t.EndDate.In(m.loc))))
		}
	}

	var parts []string
	fromPrev, intoNext := timeline.Continuation(m.store.Tasks(), w)
	if fromPrev > 0 {
		parts = append(parts, m.styles.ContinuationStyle.Render(fmt.Sprintf("◀ %d from previous", fromPrev)))
	}
	if intoNext > 0 {
		parts = append(parts, m.styles.ContinuationStyle.Render(fmt.Sprintf("%d continue ▶", intoNext)))
	}
	if n := m.store.Conflicts().Len(); n > 0 {
		parts = append(parts, m.styles.ConflictStyle.Render(fmt.Sprintf("⚠ %d tasks in conflict", n)))
	}
	if len(parts) == 0 {
		parts = append(parts, m.styles.FooterStyle.Render(fmt.Sprintf("%d tasks", m.store.Len())))
	}
	return m.styles.FooterStyle.Render(" ") + strings.Join(parts, m.styles.FooterStyle.Render("  ·  "))
}

func (m Model) renderStatusLine() string {
	switch {
	case m.promptKind != PromptNone:
		return " " + m.prompt.View()
	case m.err != nil && m.statusMsg != "":
		return m.styles.ErrorStyle.Render(" " + m.statusMsg + " ")
	case m.statusMsg != "":
		return m.styles.StatusStyle.Render(" " + m.statusMsg)
	}

	t, ok := m.Selected()
	if !ok {
		return m.styles.FooterStyle.Render("")
	}
	detail := fmt.Sprintf(" %s · %s → %s (%dd) · %s · %d%%",
		t.Title,
		formatTime(t.StartDate.In(m.loc)),
		formatTime(t.EndDate.In(m.loc)),
		task.DurationDays(t.StartDate, t.EndDate),
		t.Priority,
		t.Progress,
	)
	return m.styles.FooterStyle.Render(detail)
}

func (m Model) renderHintLine() string {
	if m.promptKind != PromptNone {
		return m.styles.HelpStyle.Render(" enter submit · esc cancel · tab complete")
	}
	return m.styles.HelpStyle.Render(" ←/→ page · d/w/m view · t today · a add · / command · ? help · q quit")
}

// renderHelp lays out key bindings beside the prompt commands and roster.
func (m Model) renderHelp() []string {
	left := []string{m.styles.LabelStyle.Render(" Keys")}
	for _, k := range keyBindings {
		left = append(left, m.styles.HelpKeyStyle.Render(padRight("  "+k.key, 12))+m.styles.HelpStyle.Render(k.desc))
	}

	right := []string{m.styles.LabelStyle.Render("Commands")}
	for _, c := range promptCommands {
		right = append(right, m.styles.HelpKeyStyle.Render(padRight(c.Name+" "+c.Args, 32))+m.styles.HelpStyle.Render(c.Description))
	}
	if members := m.store.Members(); len(members) > 0 {
		right = append(right, "", m.styles.LabelStyle.Render("Members"))
		for i, member := range members[:min(len(members), 9)] {
			right = append(right, m.styles.HelpKeyStyle.Render(fmt.Sprintf("%d", i+1))+m.styles.HelpStyle.Render("  "+member.Name))
		}
	}

	block := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, left...),
		"    ",
		lipgloss.JoinVertical(lipgloss.Left, right...),
	)
	return strings.Split(block, "\n")
}

// trackColumn returns the cell of instant t on a track of width cells.
func trackColumn(t time.Time, w timeline.Window, width int) int {
	if w.Duration() <= 0 {
		return 0
	}
	col := int(float64(width) * float64(t.Sub(w.Start)) / float64(w.Duration()))
	return min(max(col, 0), width-1)
}

func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 {
		return t.Format("Jan 2")
	}
	return t.Format("Jan 2 15:04")
}

func padRight(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
