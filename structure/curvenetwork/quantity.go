// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package curvenetwork

import (
	"github.com/gogpu/geoviz/colormap"
	"github.com/gogpu/geoviz/gpumath"
	"github.com/gogpu/geoviz/structure"
)

// ScalarQuantity colors either nodes or edges by a scalar value
// mapped through a colormap, depending on PerEdge.
type ScalarQuantity struct {
	name     string
	enabled  bool
	Values   []float64
	PerEdge  bool
	ColorMap *colormap.Map
	Min, Max float64
}

// NewNodeScalarQuantity returns a per-node scalar quantity with an
// auto-detected range and the viridis colormap.
func NewNodeScalarQuantity(name string, values []float64) *ScalarQuantity {
	lo, hi := structure.AutoRange(values)
	return &ScalarQuantity{name: name, enabled: true, Values: values, ColorMap: colormap.Lookup("viridis"), Min: lo, Max: hi}
}

// NewEdgeScalarQuantity returns a per-edge scalar quantity.
func NewEdgeScalarQuantity(name string, values []float64) *ScalarQuantity {
	q := NewNodeScalarQuantity(name, values)
	q.PerEdge = true
	return q
}

func (q *ScalarQuantity) Name() string                 { return q.name }
func (q *ScalarQuantity) Domain() structure.Domain     { return structure.DomainCurveNetwork }
func (q *ScalarQuantity) Category() structure.Category { return structure.CategoryScalar }
func (q *ScalarQuantity) Enabled() bool                { return q.enabled }
func (q *ScalarQuantity) SetEnabled(e bool)            { q.enabled = e }

// ColorAt returns the colormap-shaded color for element i (a node or
// edge index depending on PerEdge).
func (q *ScalarQuantity) ColorAt(i int) gpumath.RGB {
	t := structure.Normalize(q.Values[i], q.Min, q.Max)
	return q.ColorMap.Sample(float32(t))
}

// ColorQuantity colors nodes or edges directly by an explicit RGB
// value, bypassing the colormap.
type ColorQuantity struct {
	name    string
	enabled bool
	Colors  []gpumath.RGB
	PerEdge bool
}

// NewNodeColorQuantity returns a direct per-node color quantity.
func NewNodeColorQuantity(name string, colors []gpumath.RGB) *ColorQuantity {
	return &ColorQuantity{name: name, enabled: true, Colors: colors}
}

// NewEdgeColorQuantity returns a direct per-edge color quantity.
func NewEdgeColorQuantity(name string, colors []gpumath.RGB) *ColorQuantity {
	return &ColorQuantity{name: name, enabled: true, Colors: colors, PerEdge: true}
}

func (q *ColorQuantity) Name() string                 { return q.name }
func (q *ColorQuantity) Domain() structure.Domain     { return structure.DomainCurveNetwork }
func (q *ColorQuantity) Category() structure.Category { return structure.CategoryColor }
func (q *ColorQuantity) Enabled() bool                { return q.enabled }
func (q *ColorQuantity) SetEnabled(e bool)            { q.enabled = e }

// VectorQuantity draws an arrow glyph at each node or edge midpoint,
// depending on PerEdge.
type VectorQuantity struct {
	name    string
	enabled bool
	Vectors []gpumath.Vec3
	PerEdge bool
	Scale   float32
}

// NewNodeVectorQuantity returns a per-node vector quantity with a
// default glyph scale.
func NewNodeVectorQuantity(name string, vectors []gpumath.Vec3) *VectorQuantity {
	return &VectorQuantity{name: name, enabled: true, Vectors: vectors, Scale: 1}
}

// NewEdgeVectorQuantity returns a per-edge vector quantity, drawn at
// each edge's midpoint.
func NewEdgeVectorQuantity(name string, vectors []gpumath.Vec3) *VectorQuantity {
	q := NewNodeVectorQuantity(name, vectors)
	q.PerEdge = true
	return q
}

func (q *VectorQuantity) Name() string                 { return q.name }
func (q *VectorQuantity) Domain() structure.Domain     { return structure.DomainCurveNetwork }
func (q *VectorQuantity) Category() structure.Category { return structure.CategoryVector }
func (q *VectorQuantity) Enabled() bool                { return q.enabled }
func (q *VectorQuantity) SetEnabled(e bool)            { q.enabled = e }
