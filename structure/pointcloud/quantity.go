// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pointcloud

import (
	"github.com/gogpu/geoviz/colormap"
	"github.com/gogpu/geoviz/gpumath"
	"github.com/gogpu/geoviz/structure"
)

// ScalarQuantity colors each point by a per-point scalar value mapped
// through a colormap over an (auto-detected or explicit) range.
type ScalarQuantity struct {
	name     string
	enabled  bool
	Values   []float64
	ColorMap *colormap.Map
	Min, Max float64
}

// NewScalarQuantity returns a scalar quantity with its range
// auto-detected from values (NaN-skipping) and the viridis colormap.
func NewScalarQuantity(name string, values []float64) *ScalarQuantity {
	lo, hi := structure.AutoRange(values)
	return &ScalarQuantity{
		name:     name,
		enabled:  true,
		Values:   values,
		ColorMap: colormap.Lookup("viridis"),
		Min:      lo,
		Max:      hi,
	}
}

func (q *ScalarQuantity) Name() string                   { return q.name }
func (q *ScalarQuantity) Domain() structure.Domain        { return structure.DomainPointCloud }
func (q *ScalarQuantity) Category() structure.Category    { return structure.CategoryScalar }
func (q *ScalarQuantity) Enabled() bool                   { return q.enabled }
func (q *ScalarQuantity) SetEnabled(e bool)               { q.enabled = e }

// ColorAt returns the shaded color for point i.
func (q *ScalarQuantity) ColorAt(i int) gpumath.RGB {
	t := structure.Normalize(q.Values[i], q.Min, q.Max)
	return q.ColorMap.Sample(float32(t))
}

// VectorQuantity draws a glyph (arrow) at each point along a per-point
// vector value.
type VectorQuantity struct {
	name    string
	enabled bool
	Vectors []gpumath.Vec3
	Scale   float32
}

// NewVectorQuantity returns a vector quantity with a default glyph scale.
func NewVectorQuantity(name string, vectors []gpumath.Vec3) *VectorQuantity {
	return &VectorQuantity{name: name, enabled: true, Vectors: vectors, Scale: 1}
}

func (q *VectorQuantity) Name() string                 { return q.name }
func (q *VectorQuantity) Domain() structure.Domain     { return structure.DomainPointCloud }
func (q *VectorQuantity) Category() structure.Category { return structure.CategoryVector }
func (q *VectorQuantity) Enabled() bool                { return q.enabled }
func (q *VectorQuantity) SetEnabled(e bool)            { q.enabled = e }

// ColorQuantity colors each point directly by an explicit per-point
// RGB value, bypassing the colormap.
type ColorQuantity struct {
	name    string
	enabled bool
	Colors  []gpumath.RGB
}

// NewColorQuantity returns a direct-color quantity.
func NewColorQuantity(name string, colors []gpumath.RGB) *ColorQuantity {
	return &ColorQuantity{name: name, enabled: true, Colors: colors}
}

func (q *ColorQuantity) Name() string                 { return q.name }
func (q *ColorQuantity) Domain() structure.Domain     { return structure.DomainPointCloud }
func (q *ColorQuantity) Category() structure.Category { return structure.CategoryColor }
func (q *ColorQuantity) Enabled() bool                { return q.enabled }
func (q *ColorQuantity) SetEnabled(e bool)            { q.enabled = e }
