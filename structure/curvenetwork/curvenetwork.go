// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package curvenetwork implements the curve-network structure of
// spec.md §3: a set of polyline segments rendered as tubes, built
// either from an open/closed chain of points or from explicit
// unordered segment pairs.
package curvenetwork

import (
	"fmt"

	"github.com/gogpu/geoviz/gpumath"
	"github.com/gogpu/geoviz/structure"
)

// RenderMode selects how a CurveNetwork's edges are drawn, per
// spec.md §4.4.3.
type RenderMode int

const (
	// RenderLine draws each edge as a thin line segment.
	RenderLine RenderMode = iota
	// RenderTube expands each edge into an oriented tube (a capsule
	// approximated here by an oriented box) with node joints filled
	// by a sphere impostor.
	RenderTube
)

// CurveNetwork is a set of vertices connected by edges (ordered pairs
// of vertex indices); edges need not form a single chain.
type CurveNetwork struct {
	name      string
	transform gpumath.Mat4
	enabled   bool
	dirty     bool

	Vertices []gpumath.Vec3
	Edges    [][2]uint32

	Radius float32
	Color  gpumath.RGB
	Mode   RenderMode

	quantities structure.QuantitySet
}

func newNetwork(name string, vertices []gpumath.Vec3, edges [][2]uint32) *CurveNetwork {
	return &CurveNetwork{
		name:      name,
		transform: gpumath.Identity(),
		enabled:   true,
		dirty:     true,
		Vertices:  vertices,
		Edges:     edges,
		Radius:    0.01,
		Color:     gpumath.RGB{R: 0.9, G: 0.3, B: 0.2},
		Mode:      RenderLine,
	}
}

// SetRenderMode switches between line and tube rendering.
func (c *CurveNetwork) SetRenderMode(m RenderMode) { c.Mode = m }

// NewLine builds an open chain v0-v1-v2-...-v(n-1) from an ordered
// point sequence.
func NewLine(name string, points []gpumath.Vec3) *CurveNetwork {
	edges := make([][2]uint32, 0, len(points)-1)
	for i := 0; i+1 < len(points); i++ {
		edges = append(edges, [2]uint32{uint32(i), uint32(i + 1)})
	}
	return newNetwork(name, points, edges)
}

// NewLoop builds a closed chain v0-v1-...-v(n-1)-v0.
func NewLoop(name string, points []gpumath.Vec3) *CurveNetwork {
	n := newNetwork(name, points, nil)
	edges := make([][2]uint32, len(points))
	for i := range points {
		edges[i] = [2]uint32{uint32(i), uint32((i + 1) % len(points))}
	}
	n.Edges = edges
	return n
}

// NewSegments builds a network from explicit, possibly disconnected
// vertex-index pairs.
func NewSegments(name string, points []gpumath.Vec3, edges [][2]uint32) *CurveNetwork {
	return newNetwork(name, points, edges)
}

func (c *CurveNetwork) Name() string             { return c.name }
func (c *CurveNetwork) Domain() structure.Domain { return structure.DomainCurveNetwork }
func (c *CurveNetwork) Transform() gpumath.Mat4  { return c.transform }
func (c *CurveNetwork) SetTransform(m gpumath.Mat4) {
	c.transform = m
	c.dirty = true
}
func (c *CurveNetwork) Enabled() bool     { return c.enabled }
func (c *CurveNetwork) SetEnabled(e bool) { c.enabled = e }
func (c *CurveNetwork) Dirty() bool       { return c.dirty }
func (c *CurveNetwork) MarkClean()        { c.dirty = false }

func (c *CurveNetwork) BoundingBox() gpumath.Box3 {
	b := gpumath.EmptyBox3()
	pad := gpumath.Vec3{X: c.Radius, Y: c.Radius, Z: c.Radius}
	for _, v := range c.Vertices {
		b = b.Union(v.Sub(pad))
		b = b.Union(v.Add(pad))
	}
	return b
}

func (c *CurveNetwork) Quantities() []structure.Quantity { return c.quantities.List() }
func (c *CurveNetwork) AddQuantity(q structure.Quantity) error {
	if q.Domain() != structure.DomainCurveNetwork {
		return fmt.Errorf("curvenetwork: quantity %q belongs to domain %v, not curve_network", q.Name(), q.Domain())
	}
	if err := c.validateElementCount(q); err != nil {
		return err
	}
	return c.quantities.Add(q)
}
func (c *CurveNetwork) RemoveQuantity(name string) { c.quantities.Remove(name) }

// validateElementCount enforces spec.md §3's "element counts must
// match the structure's domain" invariant: a node-domain quantity
// needs exactly len(Vertices) entries, an edge-domain one exactly
// len(Edges).
func (c *CurveNetwork) validateElementCount(q structure.Quantity) error {
	var n int
	var perEdge bool
	switch v := q.(type) {
	case *ScalarQuantity:
		n, perEdge = len(v.Values), v.PerEdge
	case *ColorQuantity:
		n, perEdge = len(v.Colors), v.PerEdge
	case *VectorQuantity:
		n, perEdge = len(v.Vectors), v.PerEdge
	default:
		return nil
	}
	want := len(c.Vertices)
	domain := "node"
	if perEdge {
		want, domain = len(c.Edges), "edge"
	}
	if n != want {
		return fmt.Errorf("curvenetwork: %s quantity %q has %d entries, want %d (%s count)", domain, q.Name(), n, want, domain)
	}
	return nil
}

// ActiveScalar returns the currently active scalar quantity, or nil.
func (c *CurveNetwork) ActiveScalar() *ScalarQuantity {
	q, _ := c.quantities.Active(structure.CategoryScalar).(*ScalarQuantity)
	return q
}

// ActiveColor returns the currently active color quantity, or nil.
func (c *CurveNetwork) ActiveColor() *ColorQuantity {
	q, _ := c.quantities.Active(structure.CategoryColor).(*ColorQuantity)
	return q
}
