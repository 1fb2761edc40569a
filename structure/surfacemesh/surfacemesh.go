// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surfacemesh implements the surface-mesh structure of
// spec.md §3: an indexed polygon mesh (triangles or n-gons, fan
// triangulated for rendering) with per-vertex, per-face, and
// per-corner quantities.
package surfacemesh

import (
	"errors"
	"fmt"

	"github.com/gogpu/geoviz/gpumath"
	"github.com/gogpu/geoviz/material"
	"github.com/gogpu/geoviz/structure"
)

// ErrDegenerateFace is returned when a face has fewer than 3 vertices.
var ErrDegenerateFace = errors.New("surfacemesh: face has fewer than 3 vertices")

// SurfaceMesh is a polygon mesh: Vertices is the shared vertex pool,
// Faces is a list of variable-length vertex-index loops (triangles
// and n-gons alike).
type SurfaceMesh struct {
	name      string
	transform gpumath.Mat4
	enabled   bool
	dirty     bool

	Vertices []gpumath.Vec3
	Faces    [][]uint32

	SurfaceColor gpumath.RGB

	// Material, when set, matcap-shades the mesh (spec.md §4.4) in
	// place of SurfaceColor whenever no scalar or color quantity is
	// active. Nil means flat SurfaceColor shading, as before.
	Material *material.Material

	quantities structure.QuantitySet

	// fanTriangles and fanFaceOf are rebuilt on demand from Faces:
	// fanTriangles holds fan-triangulated (a, b, c) index triples for
	// rendering, and fanFaceOf[i] gives the source face index for
	// fan triangle i, letting per-face data broadcast to every
	// triangle spawned from it.
	fanTriangles []uint32
	fanFaceOf    []int
	fanBuilt     bool
}

// New returns a surface mesh with the given vertices and faces.
func New(name string, vertices []gpumath.Vec3, faces [][]uint32) *SurfaceMesh {
	return &SurfaceMesh{
		name:         name,
		transform:    gpumath.Identity(),
		enabled:      true,
		dirty:        true,
		Vertices:     vertices,
		Faces:        faces,
		SurfaceColor: gpumath.RGB{R: 0.7, G: 0.7, B: 0.75},
	}
}

func (m *SurfaceMesh) Name() string             { return m.name }
func (m *SurfaceMesh) Domain() structure.Domain { return structure.DomainSurfaceMesh }
func (m *SurfaceMesh) Transform() gpumath.Mat4  { return m.transform }
func (m *SurfaceMesh) SetTransform(t gpumath.Mat4) {
	m.transform = t
	m.dirty = true
}
func (m *SurfaceMesh) Enabled() bool     { return m.enabled }
func (m *SurfaceMesh) SetEnabled(e bool) { m.enabled = e }
func (m *SurfaceMesh) Dirty() bool       { return m.dirty }
func (m *SurfaceMesh) MarkClean()        { m.dirty = false }

func (m *SurfaceMesh) BoundingBox() gpumath.Box3 {
	b := gpumath.EmptyBox3()
	for _, v := range m.Vertices {
		b = b.Union(v)
	}
	return b
}

func (m *SurfaceMesh) Quantities() []structure.Quantity { return m.quantities.List() }
func (m *SurfaceMesh) AddQuantity(q structure.Quantity) error {
	if q.Domain() != structure.DomainSurfaceMesh {
		return fmt.Errorf("surfacemesh: quantity %q belongs to domain %v, not surface_mesh", q.Name(), q.Domain())
	}
	if err := m.validateElementCount(q); err != nil {
		return err
	}
	return m.quantities.Add(q)
}
func (m *SurfaceMesh) RemoveQuantity(name string) { m.quantities.Remove(name) }

// validateElementCount enforces spec.md §3's "element counts must
// match the structure's domain" invariant for the quantity kinds that
// carry a fixed-size values array: a per-vertex quantity needs exactly
// len(Vertices) entries, a per-face one exactly len(Faces).
func (m *SurfaceMesh) validateElementCount(q structure.Quantity) error {
	var n int
	var perFace bool
	switch v := q.(type) {
	case *ScalarQuantity:
		n, perFace = len(v.Values), v.PerFace
	case *ColorQuantity:
		n, perFace = len(v.RGB), v.PerFace
	case *VectorQuantity:
		n, perFace = len(v.Vectors), v.PerFace
	default:
		return nil
	}
	want := len(m.Vertices)
	domain := "vertex"
	if perFace {
		want, domain = len(m.Faces), "face"
	}
	if n != want {
		return fmt.Errorf("surfacemesh: %s quantity %q has %d entries, want %d (%s count)", domain, q.Name(), n, want, domain)
	}
	return nil
}

// ActiveScalar returns the currently active scalar quantity, or nil.
func (m *SurfaceMesh) ActiveScalar() *ScalarQuantity {
	q, _ := m.quantities.Active(structure.CategoryScalar).(*ScalarQuantity)
	return q
}

// ActiveColor returns the currently active color quantity, or nil.
func (m *SurfaceMesh) ActiveColor() *ColorQuantity {
	q, _ := m.quantities.Active(structure.CategoryColor).(*ColorQuantity)
	return q
}

// ActiveParameterization returns the currently active UV
// parameterization quantity, or nil.
func (m *SurfaceMesh) ActiveParameterization() *ParameterizationQuantity {
	q, _ := m.quantities.Active(structure.CategoryParameterization).(*ParameterizationQuantity)
	return q
}

// SetMaterial attaches (or clears, with nil) a matcap material.
func (m *SurfaceMesh) SetMaterial(mat *material.Material) {
	m.Material = mat
	m.dirty = true
}

// IsTransparent reports whether the active color quantity (if any)
// carries an alpha channel, per spec.md §4.4.2.
func (m *SurfaceMesh) IsTransparent() bool {
	c := m.ActiveColor()
	return c != nil && c.Transparent()
}

// FanTriangulate fan-triangulates every face — for a face with
// vertices [v0, v1, ..., vk], it emits triangles (v0,v1,v2),
// (v0,v2,v3), ..., (v0,v(k-1),vk). Triangles and a triangle->owning-face
// map (needed to broadcast per-face quantities to every triangle a face
// spawns) are cached until InvalidateTopology is called.
func (m *SurfaceMesh) FanTriangulate() (triangles []uint32, triFace []int, err error) {
	if m.fanBuilt {
		return m.fanTriangles, m.fanFaceOf, nil
	}
	m.fanTriangles = m.fanTriangles[:0]
	m.fanFaceOf = m.fanFaceOf[:0]
	for fi, face := range m.Faces {
		if len(face) < 3 {
			return nil, nil, fmt.Errorf("surfacemesh: face %d has %d vertices: %w", fi, len(face), ErrDegenerateFace)
		}
		for k := 1; k < len(face)-1; k++ {
			m.fanTriangles = append(m.fanTriangles, face[0], face[k], face[k+1])
			m.fanFaceOf = append(m.fanFaceOf, fi)
		}
	}
	m.fanBuilt = true
	return m.fanTriangles, m.fanFaceOf, nil
}

// InvalidateTopology forces FanTriangulate to rebuild its cache; call
// after mutating Faces.
func (m *SurfaceMesh) InvalidateTopology() {
	m.fanBuilt = false
	m.dirty = true
}

// FaceNormal returns the area-weighted-consistent normal of face fi,
// computed from its first three vertices (planar-face assumption).
func (m *SurfaceMesh) FaceNormal(fi int) gpumath.Vec3 {
	face := m.Faces[fi]
	p0, p1, p2 := m.Vertices[face[0]], m.Vertices[face[1]], m.Vertices[face[2]]
	return p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
}

// VertexNormals returns area-weighted per-vertex normals, accumulated
// over every face's fan triangulation.
func (m *SurfaceMesh) VertexNormals() ([]gpumath.Vec3, error) {
	tris, _, err := m.FanTriangulate()
	if err != nil {
		return nil, err
	}
	normals := make([]gpumath.Vec3, len(m.Vertices))
	for i := 0; i+2 < len(tris); i += 3 {
		a, b, c := tris[i], tris[i+1], tris[i+2]
		pa, pb, pc := m.Vertices[a], m.Vertices[b], m.Vertices[c]
		face := pb.Sub(pa).Cross(pc.Sub(pa))
		normals[a] = normals[a].Add(face)
		normals[b] = normals[b].Add(face)
		normals[c] = normals[c].Add(face)
	}
	for i, n := range normals {
		normals[i] = n.Normalize()
	}
	return normals, nil
}
