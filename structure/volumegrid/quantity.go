// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package volumegrid

import (
	"errors"

	"github.com/gogpu/geoviz/colormap"
	"github.com/gogpu/geoviz/gpumath"
	"github.com/gogpu/geoviz/structure"
)

// errCellIsosurfaceUnsupported is returned by ScalarQuantity.SetMode
// when VizIsosurface is requested on a per-cell quantity.
var errCellIsosurfaceUnsupported = errors.New("volumegrid: isosurface visualization is node-scalar only")

// VizMode selects how a node ScalarQuantity is visualized, per
// spec.md §4.4.5. Cell scalars only ever support VizGridcube.
type VizMode int

const (
	// VizGridcube draws a small colored cube at each node (or cell
	// center), sized by CubeSizeFactor.
	VizGridcube VizMode = iota
	// VizIsosurface invokes the marching-cubes extractor on this
	// quantity's field instead; node-scalar only.
	VizIsosurface
)

// ScalarQuantity is a per-node or per-cell scalar field. A node
// scalar is the same data an isosurface is extracted from when Mode
// is VizIsosurface and it is the active quantity; a cell scalar only
// ever renders as gridcubes centered at cell centers.
type ScalarQuantity struct {
	name            string
	enabled         bool
	Values          []float32
	PerCell         bool
	Mode            VizMode
	CubeSizeFactor  float32 // (0,1]; fraction of cell spacing the gridcube occupies
	ColorMap        *colormap.Map
	Min, Max        float64
}

// NewNodeScalarQuantity returns a per-node scalar quantity with an
// auto-detected range (NaN-skipping), the viridis colormap, and
// gridcube visualization by default.
func NewNodeScalarQuantity(name string, values []float32) *ScalarQuantity {
	asFloat64 := make([]float64, len(values))
	for i, v := range values {
		asFloat64[i] = float64(v)
	}
	lo, hi := structure.AutoRange(asFloat64)
	return &ScalarQuantity{name: name, enabled: true, Values: values, Mode: VizGridcube, CubeSizeFactor: 0.5, ColorMap: colormap.Lookup("viridis"), Min: lo, Max: hi}
}

// NewCellScalarQuantity returns a per-cell scalar quantity; cell
// scalars support gridcube visualization only, per spec.md §4.4.5.
func NewCellScalarQuantity(name string, values []float32) *ScalarQuantity {
	q := NewNodeScalarQuantity(name, values)
	q.PerCell = true
	return q
}

func (q *ScalarQuantity) Name() string                 { return q.name }
func (q *ScalarQuantity) Domain() structure.Domain     { return structure.DomainVolumeGrid }
func (q *ScalarQuantity) Category() structure.Category { return structure.CategoryScalar }
func (q *ScalarQuantity) Enabled() bool                { return q.enabled }
func (q *ScalarQuantity) SetEnabled(e bool)            { q.enabled = e }

// SetMode selects gridcube or isosurface visualization; isosurface
// mode is rejected for cell quantities, which have no well-defined
// marching-cubes field.
func (q *ScalarQuantity) SetMode(m VizMode) error {
	if m == VizIsosurface && q.PerCell {
		return errCellIsosurfaceUnsupported
	}
	q.Mode = m
	return nil
}

// ColorAt returns the colormap-shaded color for node or cell index i
// (a flat index into Values, per-node or per-cell depending on
// PerCell), for gridcube visualization.
func (q *ScalarQuantity) ColorAt(i int) gpumath.RGB {
	t := structure.Normalize(float64(q.Values[i]), q.Min, q.Max)
	return q.ColorMap.Sample(float32(t))
}
