package coincidence

import (
	"sort"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/dhconnelly/rtreego"

	"github.com/katalvlaran/topograph/geom"
)

const (
	treeDim         = 3
	treeMinChildren = 25
	treeMaxChildren = 50
	// pointExtent is the half-side of the box stored for each point.
	pointExtent = 1e-9
)

type spatialEntry struct {
	id   string
	pos  v3.Vec
	seq  uint64
	rect rtreego.Rect
}

func (e *spatialEntry) Bounds() rtreego.Rect { return e.rect }

func newSpatialEntry(id string, p v3.Vec, seq uint64) *spatialEntry {
	return &spatialEntry{
		id:   id,
		pos:  p,
		seq:  seq,
		rect: rtreego.Point{p.X, p.Y, p.Z}.ToRect(pointExtent),
	}
}

// Spatial is an R-tree backed index. Window queries narrow the candidates,
// which are then checked exactly; ties resolve to the earliest insertion so
// results match Linear.
type Spatial struct {
	metric  Metric
	tree    *rtreego.Rtree
	byID    map[string]*spatialEntry
	nextSeq uint64
}

// NewSpatial returns an empty Spatial index.
func NewSpatial(m Metric) *Spatial {
	return &Spatial{
		metric: m,
		tree:   rtreego.NewTree(treeDim, treeMinChildren, treeMaxChildren),
		byID:   make(map[string]*spatialEntry),
	}
}

// Insert implements Index.
func (s *Spatial) Insert(id string, p v3.Vec) {
	seq := s.nextSeq
	if old, ok := s.byID[id]; ok {
		s.tree.Delete(old)
		seq = old.seq
	} else {
		s.nextSeq++
	}
	e := newSpatialEntry(id, p, seq)
	s.byID[id] = e
	s.tree.Insert(e)
}

// Remove implements Index.
func (s *Spatial) Remove(id string) {
	e, ok := s.byID[id]
	if !ok {
		return
	}
	s.tree.Delete(e)
	delete(s.byID, id)
}

func (s *Spatial) candidates(p v3.Vec, radius float64) []*spatialEntry {
	hits := s.tree.SearchIntersect(rtreego.Point{p.X, p.Y, p.Z}.ToRect(radius + pointExtent))
	out := make([]*spatialEntry, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.(*spatialEntry))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })

	return out
}

// Find implements Index.
func (s *Spatial) Find(p v3.Vec, tol float64) (string, bool) {
	if tol <= 0 || len(s.byID) == 0 {
		return "", false
	}
	for _, e := range s.candidates(p, s.metric.Radius(tol)) {
		if s.metric.Coincident(e.pos, p, tol) {
			return e.id, true
		}
	}

	return "", false
}

// Within implements Index.
func (s *Spatial) Within(p v3.Vec, radius float64) []string {
	if radius <= 0 {
		return nil
	}
	var out []string
	for _, e := range s.candidates(p, radius) {
		if geom.Distance(e.pos, p) < radius {
			out = append(out, e.id)
		}
	}

	return out
}

// Len implements Index.
func (s *Spatial) Len() int { return s.tree.Size() }

// Metric implements Index.
func (s *Spatial) Metric() Metric { return s.metric }

// Clone implements Index.
func (s *Spatial) Clone() Index {
	c := &Spatial{
		metric:  s.metric,
		byID:    make(map[string]*spatialEntry, len(s.byID)),
		nextSeq: s.nextSeq,
	}
	objs := make([]rtreego.Spatial, 0, len(s.byID))
	for id, e := range s.byID {
		ne := newSpatialEntry(id, e.pos, e.seq)
		c.byID[id] = ne
		objs = append(objs, ne)
	}
	c.tree = rtreego.NewTree(treeDim, treeMinChildren, treeMaxChildren, objs...)

	return c
}
