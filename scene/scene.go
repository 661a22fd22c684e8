// SPDX-License-Identifier: MIT

// Package scene reads and writes YAML scene documents: named points with
// optional numeric attributes, and segments joining them by name.
//
//	points:
//	  - id: a
//	    at: [0, 0, 0]
//	    attrs: {toll: 3}
//	  - id: b
//	    at: [1, 0, 0]
//	segments:
//	  - from: a
//	    to: b
//	    attrs: {length: 5}
//
// Build turns a Document into a geom.Memory kernel plus a core.Store whose
// nodes and segments reference the kernel entities, so attribute-driven
// searches work on loaded scenes. FromStore goes the other way.
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/topograph/builder"
	"github.com/katalvlaran/topograph/core"
	"github.com/katalvlaran/topograph/geom"
)

// MaxDocumentSize bounds the bytes Decode reads (8 MiB).
const MaxDocumentSize = 8 << 20

var (
	// ErrTooLarge reports a document over MaxDocumentSize.
	ErrTooLarge = errors.New("scene: document too large")

	// ErrEmptyID reports a point without an id.
	ErrEmptyID = errors.New("scene: point id is empty")

	// ErrDuplicateID reports two points, or two segments, sharing an id.
	ErrDuplicateID = errors.New("scene: duplicate id")

	// ErrUnknownPoint reports a segment endpoint naming no point.
	ErrUnknownPoint = errors.New("scene: unknown point")

	// ErrNonFinite reports a NaN or infinite coordinate.
	ErrNonFinite = errors.New("scene: non-finite coordinate")
)

// Document is the YAML form of a scene.
type Document struct {
	Points   []Point   `yaml:"points"`
	Segments []Segment `yaml:"segments,omitempty"`
}

// Point is a named position.
type Point struct {
	ID    string             `yaml:"id"`
	At    [3]float64         `yaml:"at,flow"`
	Attrs map[string]float64 `yaml:"attrs,omitempty,flow"`
}

// Pos returns At as a vector.
func (p Point) Pos() v3.Vec { return v3.Vec{X: p.At[0], Y: p.At[1], Z: p.At[2]} }

// Segment joins two points by id.
type Segment struct {
	ID    string             `yaml:"id,omitempty"`
	From  string             `yaml:"from"`
	To    string             `yaml:"to"`
	Attrs map[string]float64 `yaml:"attrs,omitempty,flow"`
}

// Decode parses one document from r. Unknown keys are rejected.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("scene: read: %w", err)
	}
	if len(data) > MaxDocumentSize {
		return nil, ErrTooLarge
	}

	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("scene: decode: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	return &doc, nil
}

// LoadFile decodes the document stored at path.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

// Validate checks ids, references and coordinates.
func (d *Document) Validate() error {
	seen := make(map[string]bool, len(d.Points))
	for i, p := range d.Points {
		if p.ID == "" {
			return fmt.Errorf("scene: points[%d]: %w", i, ErrEmptyID)
		}
		if seen[p.ID] {
			return fmt.Errorf("scene: points[%d] %q: %w", i, p.ID, ErrDuplicateID)
		}
		if !geom.Finite(p.Pos()) {
			return fmt.Errorf("scene: points[%d] %q: %w", i, p.ID, ErrNonFinite)
		}
		seen[p.ID] = true
	}
	segIDs := make(map[string]bool, len(d.Segments))
	for i, s := range d.Segments {
		for _, end := range [2]string{s.From, s.To} {
			if !seen[end] {
				return fmt.Errorf("scene: segments[%d]: %q: %w", i, end, ErrUnknownPoint)
			}
		}
		if s.ID == "" {
			continue
		}
		if segIDs[s.ID] {
			return fmt.Errorf("scene: segments[%d] %q: %w", i, s.ID, ErrDuplicateID)
		}
		segIDs[s.ID] = true
	}

	return nil
}

// Encode writes d to w as YAML.
func Encode(w io.Writer, d *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("scene: encode: %w", err)
	}

	return enc.Close()
}

// Build creates kernel entities for every point and segment of d and
// registers them in a new store configured by opts. Points closer than the
// store tolerance share one node; a segment whose endpoints already have a
// segment between them is skipped.
func Build(d *Document, opts ...core.Option) (*builder.Scene, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	sc := &builder.Scene{Kernel: geom.NewMemory(), Store: core.New(opts...)}
	tol := sc.Store.Tolerance()

	verts := make(map[string]*geom.Vertex, len(d.Points))
	nodes := make([]*core.Node, 0, len(d.Points))
	for _, p := range d.Points {
		v := sc.Kernel.NewVertex(p.Pos())
		for k, val := range p.Attrs {
			v.Attrs[k] = val
		}
		verts[p.ID] = v
		nodes = append(nodes, &core.Node{ID: p.ID, Pos: v.At, Ref: v})
	}
	if err := sc.Store.AddNodes(nodes, tol); err != nil {
		return nil, fmt.Errorf("scene: build: %w", err)
	}

	segs := make([]*core.Segment, 0, len(d.Segments))
	for _, s := range d.Segments {
		a, b := verts[s.From], verts[s.To]
		e := sc.Kernel.NewEdge(a, b)
		for k, val := range s.Attrs {
			e.Attrs[k] = val
		}
		segs = append(segs, &core.Segment{
			ID:  s.ID,
			A:   &core.Node{Pos: a.At, Ref: a},
			B:   &core.Node{Pos: b.At, Ref: b},
			Ref: e,
		})
	}
	if err := sc.Store.AddSegments(segs, tol); err != nil {
		return nil, fmt.Errorf("scene: build: %w", err)
	}

	return sc, nil
}

// FromStore snapshots s as a Document. Node and segment IDs become point
// and segment ids; attributes are copied from *geom.Vertex and *geom.Edge
// references.
func FromStore(s *core.Store) *Document {
	d := &Document{}
	for _, n := range s.Nodes() {
		p := Point{ID: n.ID, At: [3]float64{n.Pos.X, n.Pos.Y, n.Pos.Z}}
		if v, ok := n.Ref.(*geom.Vertex); ok && v != nil {
			p.Attrs = copyAttrs(v.Attrs)
		}
		d.Points = append(d.Points, p)
	}
	for _, seg := range s.Segments() {
		out := Segment{ID: seg.ID, From: seg.A.ID, To: seg.B.ID}
		if e, ok := seg.Ref.(*geom.Edge); ok && e != nil {
			out.Attrs = copyAttrs(e.Attrs)
		}
		d.Segments = append(d.Segments, out)
	}

	return d
}

func copyAttrs(in map[string]float64) map[string]float64 {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}

	return out
}
