package geom

import (
	"errors"
	"fmt"
	"sync"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/google/uuid"
)

// ErrForeignEntity is returned when Memory receives an entity it did not create.
var ErrForeignEntity = errors.New("geom: entity not owned by this kernel")

// Vertex is a point entity owned by a Memory kernel.
type Vertex struct {
	ID    string
	At    v3.Vec
	Attrs map[string]float64
}

// Edge is a straight connector entity owned by a Memory kernel.
type Edge struct {
	ID         string
	Start, End *Vertex
	Attrs      map[string]float64
}

// Memory is an in-process Kernel backed by plain structs. It is the kernel
// used by the scene loader and the command-line tool; production callers plug
// in their own Kernel.
type Memory struct {
	mu       sync.RWMutex
	vertices map[string]*Vertex
	edges    map[string]*Edge
}

// NewMemory returns an empty Memory kernel.
func NewMemory() *Memory {
	return &Memory{
		vertices: make(map[string]*Vertex),
		edges:    make(map[string]*Edge),
	}
}

// NewVertex creates and registers a point at p.
func (m *Memory) NewVertex(p v3.Vec) *Vertex {
	v := &Vertex{ID: uuid.NewString(), At: p, Attrs: make(map[string]float64)}
	m.mu.Lock()
	m.vertices[v.ID] = v
	m.mu.Unlock()

	return v
}

// NewEdge creates and registers a straight connector between a and b.
func (m *Memory) NewEdge(a, b *Vertex) *Edge {
	e := &Edge{ID: uuid.NewString(), Start: a, End: b, Attrs: make(map[string]float64)}
	m.mu.Lock()
	m.edges[e.ID] = e
	m.mu.Unlock()

	return e
}

// SetAttribute stores a numeric attribute on a Vertex or Edge.
func (m *Memory) SetAttribute(e Entity, key string, value float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch x := e.(type) {
	case *Vertex:
		x.Attrs[key] = value
	case *Edge:
		x.Attrs[key] = value
	default:
		return fmt.Errorf("SetAttribute(%T): %w", e, ErrForeignEntity)
	}

	return nil
}

// Vertices returns the number of point entities created so far.
func (m *Memory) Vertices() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.vertices)
}

// Edges returns the number of connector entities created so far.
func (m *Memory) Edges() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.edges)
}

// Position implements PointAccessor.
func (m *Memory) Position(e Entity) (v3.Vec, bool) {
	v, ok := e.(*Vertex)
	if !ok || v == nil {
		return v3.Vec{}, false
	}

	return v.At, true
}

// Endpoints implements EdgeAccessor.
func (m *Memory) Endpoints(e Entity) (Entity, Entity, bool) {
	x, ok := e.(*Edge)
	if !ok || x == nil {
		return nil, nil, false
	}

	return x.Start, x.End, true
}

// Synthesize implements SegmentSynthesizer. Both arguments must be *Vertex.
func (m *Memory) Synthesize(a, b Entity) (Entity, error) {
	va, okA := a.(*Vertex)
	vb, okB := b.(*Vertex)
	if !okA || !okB || va == nil || vb == nil {
		return nil, fmt.Errorf("Synthesize(%T, %T): %w", a, b, ErrForeignEntity)
	}

	return m.NewEdge(va, vb), nil
}

// Attribute implements AttributeSource.
func (m *Memory) Attribute(e Entity, key string) (float64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var attrs map[string]float64
	switch x := e.(type) {
	case *Vertex:
		if x != nil {
			attrs = x.Attrs
		}
	case *Edge:
		if x != nil {
			attrs = x.Attrs
		}
	}
	val, ok := attrs[key]

	return val, ok
}

// Length implements LengthMeasurer.
func (m *Memory) Length(e Entity) (float64, bool) {
	x, ok := e.(*Edge)
	if !ok || x == nil || x.Start == nil || x.End == nil {
		return 0, false
	}

	return Distance(x.Start.At, x.End.At), true
}

var _ Kernel = (*Memory)(nil)
