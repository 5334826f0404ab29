package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/gantt/internal/task"
	"github.com/javiermolinar/gantt/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	// Header
	TitleStyle        lipgloss.Style
	LabelStyle        lipgloss.Style
	ModeActiveStyle   lipgloss.Style
	ModeInactiveStyle lipgloss.Style

	// Bucket ruler above the track
	BucketStyle      lipgloss.Style
	BucketTodayStyle lipgloss.Style

	// Task name column
	NameStyle         lipgloss.Style
	NameSelectedStyle lipgloss.Style
	NameDoneStyle     lipgloss.Style
	ConflictMarkStyle lipgloss.Style

	// Track
	TrackStyle       lipgloss.Style
	TrackAltStyle    lipgloss.Style // every other row
	TodayMarkerStyle lipgloss.Style
	SeparatorStyle   lipgloss.Style

	// Footer
	FooterStyle       lipgloss.Style
	ContinuationStyle lipgloss.Style
	ConflictStyle     lipgloss.Style
	StatusStyle       lipgloss.Style
	ErrorStyle        lipgloss.Style
	HelpStyle         lipgloss.Style
	HelpKeyStyle      lipgloss.Style
	PromptStyle       lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	s := &Styles{palette: p}

	base := lipgloss.NewStyle().Background(p.Bg).Foreground(p.Fg)

	s.TitleStyle = base.Bold(true).Foreground(p.Accent)
	s.LabelStyle = base.Bold(true)
	s.ModeActiveStyle = lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(p.TextOnAccent).
		Background(p.Accent)
	s.ModeInactiveStyle = base.Padding(0, 1).Foreground(p.FgMuted)

	s.BucketStyle = base.Foreground(p.FgMuted)
	s.BucketTodayStyle = base.Bold(true).Foreground(p.Today)

	s.NameStyle = base
	s.NameSelectedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Fg).
		Background(p.BgSelection)
	s.NameDoneStyle = base.Foreground(p.FgMuted).Strikethrough(true)
	s.ConflictMarkStyle = base.Bold(true).Foreground(p.Conflict)

	s.TrackStyle = base
	s.TrackAltStyle = lipgloss.NewStyle().Background(p.BgHighlight).Foreground(p.Fg)
	s.TodayMarkerStyle = base.Foreground(p.Today)
	s.SeparatorStyle = base.Foreground(p.BgSelection)

	s.FooterStyle = base.Foreground(p.FgMuted)
	s.ContinuationStyle = base.Foreground(p.Accent)
	s.ConflictStyle = base.Bold(true).Foreground(p.Conflict)
	s.StatusStyle = base.Foreground(p.Accent)
	s.ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextOnWarning).
		Background(p.Warning)
	s.HelpStyle = base.Foreground(p.FgMuted)
	s.HelpKeyStyle = base.Bold(true).Foreground(p.Accent)
	s.PromptStyle = base.Foreground(p.Fg)

	return s
}

// Bar returns the style of a task bar.
func (s *Styles) Bar(prio task.Priority, done, active, conflicted bool) lipgloss.Style {
	c := s.palette.Bar(prio)
	bg := c.Bg
	switch {
	case active:
		bg = c.BgActive
	case done:
		bg = c.BgDone
	}
	style := lipgloss.NewStyle().Background(bg).Foreground(c.Text)
	if conflicted {
		style = style.Foreground(s.palette.Conflict).Bold(true).Underline(true)
	}
	if done {
		style = style.Faint(true)
	}
	return style
}

// Bg returns the app background color.
func (s *Styles) Bg() lipgloss.Color {
	return s.palette.Bg
}
