// Package seed loads the initial roster and task list.
package seed

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/gantt/internal/dateutil"
	"github.com/javiermolinar/gantt/internal/task"
)

//go:embed embedded/default.toml
var embedded embed.FS

// Seed errors.
var (
	ErrUnknownFormat = errors.New("seed file must be .toml, .yaml or .yml")
	ErrMissingTime   = errors.New("task needs start/end, start_offset/end_offset or start_days/end_days")
	ErrAmbiguousTime = errors.New("task boundary is given more than one way")
)

// Format is a seed file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// File is the on-disk seed document.
type File struct {
	Members []Member `toml:"members" yaml:"members"`
	Tasks   []Task   `toml:"tasks" yaml:"tasks"`
}

// Member is a roster entry.
type Member struct {
	ID     string `toml:"id" yaml:"id"`
	Name   string `toml:"name" yaml:"name"`
	Avatar string `toml:"avatar" yaml:"avatar"`
	Color  string `toml:"color" yaml:"color"`
	Email  string `toml:"email" yaml:"email"`
}

// Task is a task entry. Each boundary is given exactly one way: an absolute
// time (RFC 3339 or YYYY-MM-DD in UTC), a Go duration offset from now, or a
// whole number of days from now. Entries that set a boundary two ways are
// rejected with ErrAmbiguousTime.
type Task struct {
	ID           string   `toml:"id" yaml:"id"`
	Title        string   `toml:"title" yaml:"title"`
	Description  string   `toml:"description" yaml:"description"`
	Start        string   `toml:"start" yaml:"start"`
	End          string   `toml:"end" yaml:"end"`
	StartOffset  string   `toml:"start_offset" yaml:"start_offset"`
	EndOffset    string   `toml:"end_offset" yaml:"end_offset"`
	StartDays    *int     `toml:"start_days" yaml:"start_days"`
	EndDays      *int     `toml:"end_days" yaml:"end_days"`
	AssignedTo   []string `toml:"assigned_to" yaml:"assigned_to"`
	Completed    bool     `toml:"completed" yaml:"completed"`
	Progress     int      `toml:"progress" yaml:"progress"`
	Priority     string   `toml:"priority" yaml:"priority"`
	Dependencies []string `toml:"dependencies" yaml:"dependencies"`
}

// Default returns the built-in sample team and project around now.
func Default(now time.Time) ([]task.Member, []*task.Task, error) {
	data, err := embedded.ReadFile("embedded/default.toml")
	if err != nil {
		return nil, nil, fmt.Errorf("reading default seed: %w", err)
	}
	return Parse(data, FormatTOML, now)
}

// Load reads a seed file, picking the format from its extension.
func Load(path string, now time.Time) ([]task.Member, []*task.Task, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading seed file: %w", err)
	}
	return Parse(data, format, now)
}

// Parse decodes a seed document and resolves relative times against now.
func Parse(data []byte, format Format, now time.Time) ([]task.Member, []*task.Task, error) {
	var f File
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, nil, fmt.Errorf("parsing seed toml: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, nil, fmt.Errorf("parsing seed yaml: %w", err)
		}
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	members := make([]task.Member, 0, len(f.Members))
	for _, m := range f.Members {
		members = append(members, task.Member{
			ID:     m.ID,
			Name:   m.Name,
			Avatar: m.Avatar,
			Color:  m.Color,
			Email:  m.Email,
		})
	}

	tasks := make([]*task.Task, 0, len(f.Tasks))
	for _, t := range f.Tasks {
		converted, err := t.toTask(now)
		if err != nil {
			return nil, nil, fmt.Errorf("task %q: %w", t.ID, err)
		}
		tasks = append(tasks, converted)
	}
	return members, tasks, nil
}

func (t Task) toTask(now time.Time) (*task.Task, error) {
	start, err := resolve(t.Start, t.StartOffset, t.StartDays, now)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	end, err := resolve(t.End, t.EndOffset, t.EndDays, now)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	priority := task.PriorityMedium
	if t.Priority != "" {
		priority, err = task.ParsePriority(t.Priority)
		if err != nil {
			return nil, err
		}
	}

	return &task.Task{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		StartDate:    start,
		EndDate:      end,
		AssignedTo:   t.AssignedTo,
		Completed:    t.Completed,
		Progress:     t.Progress,
		Priority:     priority,
		Dependencies: t.Dependencies,
	}, nil
}

func resolve(absolute, offset string, days *int, now time.Time) (time.Time, error) {
	set := 0
	for _, given := range []bool{absolute != "", offset != "", days != nil} {
		if given {
			set++
		}
	}
	if set > 1 {
		return time.Time{}, ErrAmbiguousTime
	}

	switch {
	case absolute != "":
		if ts, err := time.Parse(time.RFC3339, absolute); err == nil {
			return ts, nil
		}
		return dateutil.ParseDate(absolute, time.UTC)
	case offset != "":
		d, err := time.ParseDuration(offset)
		if err != nil {
			return time.Time{}, fmt.Errorf("parsing offset %q: %w", offset, err)
		}
		return now.Add(d), nil
	case days != nil:
		return now.Add(time.Duration(*days) * task.Day), nil
	default:
		return time.Time{}, ErrMissingTime
	}
}
