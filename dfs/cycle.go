package dfs

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/topograph/core"
)

// DetectCycles reports the independent cycles of s, one per back edge met by
// a depth-first walk in insertion order.
//
// Each cycle is closed ([v0, v1, ..., v0]) and canonical: the minimal
// rotation of either traversal direction, so the same ring is reported once
// regardless of where the walk entered it. A self-loop yields [v, v]. A pair
// joined only by parallel segments is not a cycle.
//
// Returns (true, cycles, nil) if any cycle exists, (false, nil, nil)
// otherwise. A nil store is cycle-free.
//
// Complexity:
//
//   - Time:   O(V + E + C·L), C cycles of average length L.
//   - Memory: O(V + L_max).
func DetectCycles(s *core.Store) (bool, [][]string, error) {
	if s == nil {
		return false, nil, nil
	}

	nodes := s.Nodes()
	c := &cycleFinder{
		s:     s,
		state: make(map[string]int, len(nodes)),
		path:  make([]string, 0, len(nodes)),
		seen:  make(map[string]struct{}),
	}
	for _, n := range nodes {
		if c.state[n.ID] != White {
			continue
		}
		if err := c.visit(n.ID, ""); err != nil {
			return false, nil, fmt.Errorf("dfs: DetectCycles: %w", err)
		}
	}

	if len(c.cycles) == 0 {
		return false, nil, nil
	}
	sort.Slice(c.cycles, func(i, j int) bool {
		return joinSig(c.cycles[i]) < joinSig(c.cycles[j])
	})

	return true, c.cycles, nil
}

type cycleFinder struct {
	s      *core.Store
	state  map[string]int
	path   []string
	seen   map[string]struct{}
	cycles [][]string
}

// visit colours id Gray, records a cycle for every Gray neighbour other than
// the tree parent, and colours id Black on the way out.
func (c *cycleFinder) visit(id, parent string) error {
	if _, ok := c.s.Node(id); !ok {
		return fmt.Errorf("node %q vanished during traversal", id)
	}
	c.state[id] = Gray
	c.path = append(c.path, id)

	for _, nb := range c.s.NeighborIDs(id) {
		if nb == parent {
			continue
		}
		switch c.state[nb] {
		case White:
			if err := c.visit(nb, id); err != nil {
				return err
			}
		case Gray:
			c.record(nb)
		}
	}

	c.path = c.path[:len(c.path)-1]
	c.state[id] = Black

	return nil
}

// record closes the stack suffix starting at from and keeps it if new.
func (c *cycleFinder) record(from string) {
	idx := indexOf(c.path, from)
	if idx < 0 {
		return
	}
	seq := append([]string(nil), c.path[idx:]...)
	sig, canon := canonical(seq)
	if _, dup := c.seen[sig]; dup {
		return
	}
	c.seen[sig] = struct{}{}
	c.cycles = append(c.cycles, canon)
}

// canonical picks the smaller of the minimal forward and minimal reversed
// rotations of the open ring, closes it, and returns its signature.
func canonical(ring []string) (string, []string) {
	fwd := minimalRotation(ring)
	rev := minimalRotation(reverse(ring))
	pick := fwd
	if compare(rev, fwd) < 0 {
		pick = rev
	}
	closed := append(append([]string(nil), pick...), pick[0])

	return joinSig(closed), closed
}
