package coincidence

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/katalvlaran/topograph/geom"
)

type linearEntry struct {
	id  string
	pos v3.Vec
}

// Linear is an O(n) scan index. Entries are kept in insertion order.
type Linear struct {
	metric  Metric
	entries []linearEntry
	pos     map[string]int
}

// NewLinear returns an empty Linear index.
func NewLinear(m Metric) *Linear {
	return &Linear{metric: m, pos: make(map[string]int)}
}

// Insert implements Index.
func (l *Linear) Insert(id string, p v3.Vec) {
	if i, ok := l.pos[id]; ok {
		l.entries[i].pos = p
		return
	}
	l.pos[id] = len(l.entries)
	l.entries = append(l.entries, linearEntry{id: id, pos: p})
}

// Remove implements Index.
func (l *Linear) Remove(id string) {
	i, ok := l.pos[id]
	if !ok {
		return
	}
	delete(l.pos, id)
	copy(l.entries[i:], l.entries[i+1:])
	l.entries = l.entries[:len(l.entries)-1]
	for j := i; j < len(l.entries); j++ {
		l.pos[l.entries[j].id] = j
	}
}

// Find implements Index.
func (l *Linear) Find(p v3.Vec, tol float64) (string, bool) {
	if tol <= 0 {
		return "", false
	}
	for _, e := range l.entries {
		if l.metric.Coincident(e.pos, p, tol) {
			return e.id, true
		}
	}

	return "", false
}

// Within implements Index.
func (l *Linear) Within(p v3.Vec, radius float64) []string {
	var out []string
	for _, e := range l.entries {
		if geom.Distance(e.pos, p) < radius {
			out = append(out, e.id)
		}
	}

	return out
}

// Len implements Index.
func (l *Linear) Len() int { return len(l.entries) }

// Metric implements Index.
func (l *Linear) Metric() Metric { return l.metric }

// Clone implements Index.
func (l *Linear) Clone() Index {
	c := &Linear{
		metric:  l.metric,
		entries: make([]linearEntry, len(l.entries)),
		pos:     make(map[string]int, len(l.pos)),
	}
	copy(c.entries, l.entries)
	for id, i := range l.pos {
		c.pos[id] = i
	}

	return c
}
