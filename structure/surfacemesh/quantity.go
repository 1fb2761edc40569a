// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surfacemesh

import (
	"github.com/gogpu/geoviz/colormap"
	"github.com/gogpu/geoviz/gpumath"
	"github.com/gogpu/geoviz/structure"
)

// ScalarQuantity colors the mesh by a per-vertex or per-face scalar
// value, depending on PerFace.
type ScalarQuantity struct {
	name     string
	enabled  bool
	Values   []float64
	PerFace  bool
	ColorMap *colormap.Map
	Min, Max float64
}

// NewVertexScalarQuantity returns a per-vertex scalar quantity with an
// auto-detected range and the viridis colormap.
func NewVertexScalarQuantity(name string, values []float64) *ScalarQuantity {
	lo, hi := structure.AutoRange(values)
	return &ScalarQuantity{name: name, enabled: true, Values: values, ColorMap: colormap.Lookup("viridis"), Min: lo, Max: hi}
}

// NewFaceScalarQuantity returns a per-face scalar quantity.
func NewFaceScalarQuantity(name string, values []float64) *ScalarQuantity {
	q := NewVertexScalarQuantity(name, values)
	q.PerFace = true
	return q
}

func (q *ScalarQuantity) Name() string                 { return q.name }
func (q *ScalarQuantity) Domain() structure.Domain     { return structure.DomainSurfaceMesh }
func (q *ScalarQuantity) Category() structure.Category { return structure.CategoryScalar }
func (q *ScalarQuantity) Enabled() bool                { return q.enabled }
func (q *ScalarQuantity) SetEnabled(e bool)            { q.enabled = e }

// ColorAt returns the colormap-shaded color for element i (a vertex or
// face index depending on PerFace).
func (q *ScalarQuantity) ColorAt(i int) gpumath.RGB {
	t := structure.Normalize(q.Values[i], q.Min, q.Max)
	return q.ColorMap.Sample(float32(t))
}

// ColorQuantity colors the mesh directly by a per-vertex or per-face
// RGB or RGBA value, bypassing the colormap. An RGBA color quantity
// marks the mesh transparent, routing it through the depth-peeling
// pass instead of the opaque one.
type ColorQuantity struct {
	name    string
	enabled bool
	PerFace bool
	RGB     []gpumath.RGB  // used when Alpha is nil
	Alpha   []float32      // parallel to RGB; non-nil selects RGBA mode
}

// NewVertexColorQuantity returns an opaque per-vertex RGB color quantity.
func NewVertexColorQuantity(name string, colors []gpumath.RGB) *ColorQuantity {
	return &ColorQuantity{name: name, enabled: true, RGB: colors}
}

// NewFaceColorQuantity returns an opaque per-face RGB color quantity.
// Each face's color applies to every fan triangle the face spawns, so
// a vertex shared by faces of differing colors shows each face's own
// color on that face.
func NewFaceColorQuantity(name string, colors []gpumath.RGB) *ColorQuantity {
	q := NewVertexColorQuantity(name, colors)
	q.PerFace = true
	return q
}

// NewVertexColorRGBAQuantity returns a per-vertex RGBA color quantity;
// any alpha < 1 makes the owning mesh transparent.
func NewVertexColorRGBAQuantity(name string, colors []gpumath.RGB, alpha []float32) *ColorQuantity {
	return &ColorQuantity{name: name, enabled: true, RGB: colors, Alpha: alpha}
}

// NewFaceColorRGBAQuantity returns a per-face RGBA color quantity.
func NewFaceColorRGBAQuantity(name string, colors []gpumath.RGB, alpha []float32) *ColorQuantity {
	q := NewVertexColorRGBAQuantity(name, colors, alpha)
	q.PerFace = true
	return q
}

func (q *ColorQuantity) Name() string                 { return q.name }
func (q *ColorQuantity) Domain() structure.Domain     { return structure.DomainSurfaceMesh }
func (q *ColorQuantity) Category() structure.Category { return structure.CategoryColor }
func (q *ColorQuantity) Enabled() bool                { return q.enabled }
func (q *ColorQuantity) SetEnabled(e bool)            { q.enabled = e }

// Transparent reports whether this quantity carries a per-element
// alpha channel, per spec.md §4.4.2's "RGBA triggers depth-peeling
// transparency" rule.
func (q *ColorQuantity) Transparent() bool { return q.Alpha != nil }

// ColorAt returns the RGB color and alpha (1 if this is an RGB, not
// RGBA, quantity) for element i.
func (q *ColorQuantity) ColorAt(i int) (gpumath.RGB, float32) {
	a := float32(1)
	if q.Alpha != nil {
		a = q.Alpha[i]
	}
	return q.RGB[i], a
}

// VectorQuantity draws a world-space arrow glyph per vertex or face.
type VectorQuantity struct {
	name    string
	enabled bool
	PerFace bool
	Vectors []gpumath.Vec3
	Scale   float32
}

// NewVertexVectorQuantity returns a per-vertex world-space vector
// quantity with a default glyph scale.
func NewVertexVectorQuantity(name string, vectors []gpumath.Vec3) *VectorQuantity {
	return &VectorQuantity{name: name, enabled: true, Vectors: vectors, Scale: 1}
}

// NewFaceVectorQuantity returns a per-face world-space vector quantity.
func NewFaceVectorQuantity(name string, vectors []gpumath.Vec3) *VectorQuantity {
	q := NewVertexVectorQuantity(name, vectors)
	q.PerFace = true
	return q
}

func (q *VectorQuantity) Name() string                 { return q.name }
func (q *VectorQuantity) Domain() structure.Domain     { return structure.DomainSurfaceMesh }
func (q *VectorQuantity) Category() structure.Category { return structure.CategoryVector }
func (q *VectorQuantity) Enabled() bool                { return q.enabled }
func (q *VectorQuantity) SetEnabled(e bool)            { q.enabled = e }

// IntrinsicVectorQuantity draws a tangent-plane vector glyph per
// vertex or per face, expressed in an intrinsic 2D (u, v) tangent
// basis rather than ambient 3D coordinates.
type IntrinsicVectorQuantity struct {
	name    string
	enabled bool
	PerFace bool
	U, V    []float32 // parallel arrays, one (u, v) pair per element
	Scale   float32
}

// NewIntrinsicVectorQuantity returns an intrinsic vector quantity.
func NewIntrinsicVectorQuantity(name string, u, v []float32) *IntrinsicVectorQuantity {
	return &IntrinsicVectorQuantity{name: name, enabled: true, U: u, V: v, Scale: 1}
}

func (q *IntrinsicVectorQuantity) Name() string                 { return q.name }
func (q *IntrinsicVectorQuantity) Domain() structure.Domain     { return structure.DomainSurfaceMesh }
func (q *IntrinsicVectorQuantity) Category() structure.Category { return structure.CategoryVector }
func (q *IntrinsicVectorQuantity) Enabled() bool                { return q.enabled }
func (q *IntrinsicVectorQuantity) SetEnabled(e bool)            { q.enabled = e }

// OneFormQuantity assigns a scalar circulation value to each oriented
// mesh edge (identified by an ordered pair of vertex indices), used to
// visualize discrete 1-forms (e.g. vector-field line integrals).
type OneFormQuantity struct {
	name    string
	enabled bool
	Edges   [][2]uint32
	Values  []float64
}

// NewOneFormQuantity returns a one-form quantity. len(edges) must
// equal len(values); this is validated by the owning SurfaceMesh when
// the quantity is attached via AddQuantity in the same way vertex
// counts are.
func NewOneFormQuantity(name string, edges [][2]uint32, values []float64) *OneFormQuantity {
	return &OneFormQuantity{name: name, enabled: true, Edges: edges, Values: values}
}

func (q *OneFormQuantity) Name() string                 { return q.name }
func (q *OneFormQuantity) Domain() structure.Domain     { return structure.DomainSurfaceMesh }
func (q *OneFormQuantity) Category() structure.Category { return structure.CategoryVector }
func (q *OneFormQuantity) Enabled() bool                { return q.enabled }
func (q *OneFormQuantity) SetEnabled(e bool)            { q.enabled = e }

// ParamStyle selects how a ParameterizationQuantity's (u, v)
// coordinates are visualized.
type ParamStyle int

const (
	// StyleChecker tiles a two-color checkerboard over (u, v).
	StyleChecker ParamStyle = iota
	// StyleGrid draws thin iso-lines at fixed (u, v) intervals.
	StyleGrid
	// StyleLocalCheck tiles the checker pattern over the fractional
	// part of (u, v), repeating it within every unit (u, v) tile.
	StyleLocalCheck
	// StyleLocalRad draws concentric rings around the center of every
	// unit (u, v) tile instead of a rectilinear grid.
	StyleLocalRad
)

// ParameterizationQuantity assigns a per-corner (u, v) texture
// coordinate, one pair per face corner rather than per vertex, since a
// UV atlas generally requires seams that split a vertex's coordinate
// across adjacent faces.
type ParameterizationQuantity struct {
	name    string
	enabled bool
	Style   ParamStyle
	// UV holds one (u, v) per face corner, faces in order and each
	// face's corners in the order Faces lists them: len(UV) must
	// equal the sum of each face's vertex count.
	UV       [][2]float32
	GridSize float32
}

// NewParameterizationQuantity returns a parameterization quantity with
// the checker style and a default grid size.
func NewParameterizationQuantity(name string, uv [][2]float32) *ParameterizationQuantity {
	return &ParameterizationQuantity{name: name, enabled: true, Style: StyleChecker, UV: uv, GridSize: 10}
}

func (q *ParameterizationQuantity) Name() string             { return q.name }
func (q *ParameterizationQuantity) Domain() structure.Domain { return structure.DomainSurfaceMesh }
func (q *ParameterizationQuantity) Category() structure.Category {
	return structure.CategoryParameterization
}
func (q *ParameterizationQuantity) Enabled() bool     { return q.enabled }
func (q *ParameterizationQuantity) SetEnabled(e bool) { q.enabled = e }

// ColorAt evaluates this quantity's Style at the given (u, v),
// returning a checker/grid/ring intensity in [0, 1] that the shader
// mixes with the surface's base color.
func (q *ParameterizationQuantity) ColorAt(u, v float32) float32 {
	switch q.Style {
	case StyleGrid:
		return gridLine(u, q.GridSize) * gridLine(v, q.GridSize)
	case StyleLocalCheck:
		return checker(fract(u)*q.GridSize, fract(v)*q.GridSize)
	case StyleLocalRad:
		r := radial(fract(u)-0.5, fract(v)-0.5, q.GridSize)
		return r
	default: // StyleChecker
		return checker(u*q.GridSize, v*q.GridSize)
	}
}

func fract(x float32) float32 {
	return x - float32(int(x))
}

func checker(u, v float32) float32 {
	if (int(u)+int(v))%2 == 0 {
		return 1
	}
	return 0
}

func gridLine(x, size float32) float32 {
	f := fract(x * size)
	if f < 0.05 || f > 0.95 {
		return 1
	}
	return 0
}

func radial(u, v, rings float32) float32 {
	d := u*u + v*v
	f := fract(d * rings)
	if f < 0.1 {
		return 1
	}
	return 0
}
