// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package volumemesh

import (
	"github.com/gogpu/geoviz/colormap"
	"github.com/gogpu/geoviz/gpumath"
	"github.com/gogpu/geoviz/structure"
)

// ScalarQuantity colors either vertices or cells by a scalar value
// mapped through a colormap, depending on PerCell.
type ScalarQuantity struct {
	name     string
	enabled  bool
	Values   []float64
	PerCell  bool
	ColorMap *colormap.Map
	Min, Max float64
}

// NewVertexScalarQuantity returns a per-vertex scalar quantity with an
// auto-detected range and the viridis colormap.
func NewVertexScalarQuantity(name string, values []float64) *ScalarQuantity {
	lo, hi := structure.AutoRange(values)
	return &ScalarQuantity{name: name, enabled: true, Values: values, ColorMap: colormap.Lookup("viridis"), Min: lo, Max: hi}
}

// NewCellScalarQuantity returns a per-cell scalar quantity.
func NewCellScalarQuantity(name string, values []float64) *ScalarQuantity {
	q := NewVertexScalarQuantity(name, values)
	q.PerCell = true
	return q
}

func (q *ScalarQuantity) Name() string                 { return q.name }
func (q *ScalarQuantity) Domain() structure.Domain     { return structure.DomainVolumeMesh }
func (q *ScalarQuantity) Category() structure.Category { return structure.CategoryScalar }
func (q *ScalarQuantity) Enabled() bool                { return q.enabled }
func (q *ScalarQuantity) SetEnabled(e bool)            { q.enabled = e }

// ColorAt returns the colormap-shaded color for element i (a vertex
// or cell index depending on PerCell).
func (q *ScalarQuantity) ColorAt(i int) gpumath.RGB {
	t := structure.Normalize(q.Values[i], q.Min, q.Max)
	return q.ColorMap.Sample(float32(t))
}

// ColorQuantity colors vertices or cells directly by an explicit RGB
// value, bypassing the colormap.
type ColorQuantity struct {
	name    string
	enabled bool
	Colors  []gpumath.RGB
	PerCell bool
}

// NewVertexColorQuantity returns a direct per-vertex color quantity.
func NewVertexColorQuantity(name string, colors []gpumath.RGB) *ColorQuantity {
	return &ColorQuantity{name: name, enabled: true, Colors: colors}
}

// NewCellColorQuantity returns a direct per-cell color quantity; it
// colors every triangle belonging to its cell, per spec.md §4.4.4.
func NewCellColorQuantity(name string, colors []gpumath.RGB) *ColorQuantity {
	return &ColorQuantity{name: name, enabled: true, Colors: colors, PerCell: true}
}

func (q *ColorQuantity) Name() string                 { return q.name }
func (q *ColorQuantity) Domain() structure.Domain     { return structure.DomainVolumeMesh }
func (q *ColorQuantity) Category() structure.Category { return structure.CategoryColor }
func (q *ColorQuantity) Enabled() bool                { return q.enabled }
func (q *ColorQuantity) SetEnabled(e bool)            { q.enabled = e }

// VectorQuantity draws a glyph at each vertex or cell centroid.
type VectorQuantity struct {
	name    string
	enabled bool
	Vectors []gpumath.Vec3
	PerCell bool
	Scale   float32
}

// NewVertexVectorQuantity returns a per-vertex vector quantity.
func NewVertexVectorQuantity(name string, vectors []gpumath.Vec3) *VectorQuantity {
	return &VectorQuantity{name: name, enabled: true, Vectors: vectors, Scale: 1}
}

// NewCellVectorQuantity returns a per-cell vector quantity, drawn at
// each cell's centroid.
func NewCellVectorQuantity(name string, vectors []gpumath.Vec3) *VectorQuantity {
	q := NewVertexVectorQuantity(name, vectors)
	q.PerCell = true
	return q
}

func (q *VectorQuantity) Name() string                 { return q.name }
func (q *VectorQuantity) Domain() structure.Domain     { return structure.DomainVolumeMesh }
func (q *VectorQuantity) Category() structure.Category { return structure.CategoryVector }
func (q *VectorQuantity) Enabled() bool                { return q.enabled }
func (q *VectorQuantity) SetEnabled(e bool)            { q.enabled = e }
