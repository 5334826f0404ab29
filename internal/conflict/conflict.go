// Package conflict finds members booked on overlapping tasks.
package conflict

import (
	"cmp"
	"maps"
	"slices"

	"github.com/javiermolinar/gantt/internal/task"
)

// Set is a set of task ids.
type Set map[string]struct{}

// Map records, for each task id, the ids of tasks it double-books a member with.
// The relation is symmetric and never contains self entries.
type Map map[string]Set

// Pair is an unordered pair of conflicting tasks, A < B.
type Pair struct {
	A, B string
}

// Detect computes the conflict map for tasks over the given members.
// Only members present in the roster are considered; an assignee id with no
// roster entry never produces a conflict.
func Detect(tasks []*task.Task, members []task.Member) Map {
	conflicts := make(Map)
	for _, m := range members {
		for _, p := range memberPairs(tasks, m.ID) {
			conflicts.add(p.A, p.B)
		}
	}
	return conflicts
}

// ByMember returns the overlapping pairs each member is double-booked on.
// Members with no conflicts are omitted.
func ByMember(tasks []*task.Task, members []task.Member) map[string][]Pair {
	out := make(map[string][]Pair)
	for _, m := range members {
		if pairs := memberPairs(tasks, m.ID); len(pairs) > 0 {
			out[m.ID] = pairs
		}
	}
	return out
}

// memberPairs compares every unordered pair of the member's tasks.
func memberPairs(tasks []*task.Task, memberID string) []Pair {
	var assigned []*task.Task
	for _, t := range tasks {
		if t != nil && t.IsAssigned(memberID) {
			assigned = append(assigned, t)
		}
	}

	var pairs []Pair
	for i := 0; i < len(assigned); i++ {
		for j := i + 1; j < len(assigned); j++ {
			a, b := assigned[i], assigned[j]
			if a.ID == b.ID || !a.Overlaps(b) {
				continue
			}
			pairs = append(pairs, newPair(a.ID, b.ID))
		}
	}
	return pairs
}

func newPair(a, b string) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

func (m Map) add(a, b string) {
	if a == b {
		return
	}
	if m[a] == nil {
		m[a] = make(Set)
	}
	if m[b] == nil {
		m[b] = make(Set)
	}
	m[a][b] = struct{}{}
	m[b][a] = struct{}{}
}

// Has returns true if a and b conflict.
func (m Map) Has(a, b string) bool {
	_, ok := m[a][b]
	return ok
}

// Conflicted returns true if the task conflicts with anything.
func (m Map) Conflicted(id string) bool {
	return len(m[id]) > 0
}

// IDs returns the sorted ids conflicting with id.
func (m Map) IDs(id string) []string {
	return slices.Sorted(maps.Keys(m[id]))
}

// Len returns the number of tasks involved in at least one conflict.
func (m Map) Len() int {
	n := 0
	for _, s := range m {
		if len(s) > 0 {
			n++
		}
	}
	return n
}

// Pairs returns every unordered conflicting pair, sorted.
func (m Map) Pairs() []Pair {
	var pairs []Pair
	for a, s := range m {
		for b := range s {
			if a < b {
				pairs = append(pairs, Pair{A: a, B: b})
			}
		}
	}
	slices.SortFunc(pairs, func(x, y Pair) int {
		return cmp.Or(cmp.Compare(x.A, y.A), cmp.Compare(x.B, y.B))
	})
	return pairs
}

// Equal returns true if both maps describe the same relation.
func (m Map) Equal(other Map) bool {
	if m.Len() != other.Len() {
		return false
	}
	for a, s := range m {
		if len(s) != len(other[a]) {
			return false
		}
		for b := range s {
			if !other.Has(a, b) {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for a, s := range m {
		out[a] = maps.Clone(s)
	}
	return out
}
