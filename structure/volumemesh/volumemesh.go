// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package volumemesh implements the volume-mesh structure of
// spec.md §3: a tetrahedral or hexahedral cell complex. Only the
// exterior faces (those belonging to exactly one cell) are rendered,
// and slice planes cull whole cells rather than clipping triangles, so
// cutting the mesh exposes real interior faces rather than a clipped
// silhouette.
package volumemesh

import (
	"errors"
	"fmt"

	"github.com/gogpu/geoviz/gpumath"
	"github.com/gogpu/geoviz/sliceplane"
	"github.com/gogpu/geoviz/structure"
)

// CellKind distinguishes the two supported cell shapes.
type CellKind int

const (
	CellTet CellKind = iota // 4 vertices, 4 triangular faces
	CellHex                 // 8 vertices, 6 quad faces
)

// ErrMixedCellKind is returned when a mesh's Cells slice mixes
// tet and hex vertex counts under a single declared CellKind.
var ErrMixedCellKind = errors.New("volumemesh: cell vertex count does not match declared CellKind")

// tetFaces and hexFaces give, for each cell kind, the local vertex
// indices of each face (outward winding is not significant here since
// faces are deduplicated by vertex-index set, not orientation).
var tetFaces = [4][3]int{{0, 1, 2}, {0, 1, 3}, {0, 2, 3}, {1, 2, 3}}
var hexFaces = [6][4]int{
	{0, 1, 2, 3}, {4, 5, 6, 7},
	{0, 1, 5, 4}, {1, 2, 6, 5},
	{2, 3, 7, 6}, {3, 0, 4, 7},
}

// VolumeMesh is a cell complex over a shared vertex pool.
type VolumeMesh struct {
	name      string
	transform gpumath.Mat4
	enabled   bool
	dirty     bool

	Vertices []gpumath.Vec3
	Cells    [][]uint32
	Kind     CellKind

	Color gpumath.RGB

	quantities structure.QuantitySet

	exteriorFaces [][]uint32
	exteriorCells []int
	exteriorBuilt bool
}

// New returns a volume mesh of the given cell kind.
func New(name string, kind CellKind, vertices []gpumath.Vec3, cells [][]uint32) (*VolumeMesh, error) {
	want := 4
	if kind == CellHex {
		want = 8
	}
	for i, c := range cells {
		if len(c) != want {
			return nil, fmt.Errorf("volumemesh: cell %d has %d vertices, want %d: %w", i, len(c), want, ErrMixedCellKind)
		}
	}
	return &VolumeMesh{
		name:      name,
		transform: gpumath.Identity(),
		enabled:   true,
		dirty:     true,
		Vertices:  vertices,
		Cells:     cells,
		Kind:      kind,
		Color:     gpumath.RGB{R: 0.6, G: 0.65, B: 0.8},
	}, nil
}

func (m *VolumeMesh) Name() string             { return m.name }
func (m *VolumeMesh) Domain() structure.Domain { return structure.DomainVolumeMesh }
func (m *VolumeMesh) Transform() gpumath.Mat4  { return m.transform }
func (m *VolumeMesh) SetTransform(t gpumath.Mat4) {
	m.transform = t
	m.dirty = true
}
func (m *VolumeMesh) Enabled() bool     { return m.enabled }
func (m *VolumeMesh) SetEnabled(e bool) { m.enabled = e }
func (m *VolumeMesh) Dirty() bool       { return m.dirty }
func (m *VolumeMesh) MarkClean()        { m.dirty = false }

func (m *VolumeMesh) BoundingBox() gpumath.Box3 {
	b := gpumath.EmptyBox3()
	for _, v := range m.Vertices {
		b = b.Union(v)
	}
	return b
}

func (m *VolumeMesh) Quantities() []structure.Quantity { return m.quantities.List() }
func (m *VolumeMesh) AddQuantity(q structure.Quantity) error {
	if q.Domain() != structure.DomainVolumeMesh {
		return fmt.Errorf("volumemesh: quantity %q belongs to domain %v, not volume_mesh", q.Name(), q.Domain())
	}
	if err := m.validateElementCount(q); err != nil {
		return err
	}
	return m.quantities.Add(q)
}
func (m *VolumeMesh) RemoveQuantity(name string) { m.quantities.Remove(name) }

// validateElementCount enforces spec.md §3's element-count invariant:
// a vertex-domain quantity needs exactly len(Vertices) entries, a
// cell-domain one exactly len(Cells).
func (m *VolumeMesh) validateElementCount(q structure.Quantity) error {
	var n int
	var perCell bool
	switch v := q.(type) {
	case *ScalarQuantity:
		n, perCell = len(v.Values), v.PerCell
	case *ColorQuantity:
		n, perCell = len(v.Colors), v.PerCell
	case *VectorQuantity:
		n, perCell = len(v.Vectors), v.PerCell
	default:
		return nil
	}
	want := len(m.Vertices)
	domain := "vertex"
	if perCell {
		want, domain = len(m.Cells), "cell"
	}
	if n != want {
		return fmt.Errorf("volumemesh: %s quantity %q has %d entries, want %d (%s count)", domain, q.Name(), n, want, domain)
	}
	return nil
}

// ActiveScalar returns the currently active scalar quantity, or nil.
func (m *VolumeMesh) ActiveScalar() *ScalarQuantity {
	q, _ := m.quantities.Active(structure.CategoryScalar).(*ScalarQuantity)
	return q
}

// ActiveColor returns the currently active color quantity, or nil.
func (m *VolumeMesh) ActiveColor() *ColorQuantity {
	q, _ := m.quantities.Active(structure.CategoryColor).(*ColorQuantity)
	return q
}

// faceKey canonicalizes a face's vertex-index set (order-independent)
// for exterior-face deduplication.
func faceKey(idx []uint32) [4]uint32 {
	var k [4]uint32
	k[3] = ^uint32(0) // sentinel for the unused 4th slot of a tri face
	copy(k[:], idx)
	// Sort the (at most 4) indices with a small fixed network —
	// insertion sort, since n <= 4.
	for i := 1; i < len(idx); i++ {
		for j := i; j > 0 && k[j] < k[j-1]; j-- {
			k[j], k[j-1] = k[j-1], k[j]
		}
	}
	return k
}

// ExteriorFaces returns the faces belonging to exactly one cell —
// the mesh's visible shell. Faces belonging to two cells are interior
// and are never rendered directly; InvalidateTopology forces a
// rebuild after Cells changes (e.g. from slice-plane cell culling).
func (m *VolumeMesh) ExteriorFaces() [][]uint32 {
	faces, _ := m.exteriorFacesAndCells()
	return faces
}

// ExteriorFaceCells returns, parallel to ExteriorFaces, the index of
// the one cell each exterior face belongs to — the owner a cell
// quantity's ColorAt/Vectors indexes by.
func (m *VolumeMesh) ExteriorFaceCells() []int {
	_, cells := m.exteriorFacesAndCells()
	return cells
}

func (m *VolumeMesh) exteriorFacesAndCells() ([][]uint32, []int) {
	if m.exteriorBuilt {
		return m.exteriorFaces, m.exteriorCells
	}
	faceList := tetFacesForKind(m.Kind)
	type faceRef struct {
		verts []uint32
		cell  int
		count int
	}
	counts := make(map[[4]uint32]*faceRef)
	var order [][4]uint32
	for ci, cell := range m.Cells {
		for _, local := range faceList {
			verts := make([]uint32, len(local))
			for i, li := range local {
				verts[i] = cell[li]
			}
			key := faceKey(verts)
			if ref, ok := counts[key]; ok {
				ref.count++
			} else {
				counts[key] = &faceRef{verts: verts, cell: ci, count: 1}
				order = append(order, key)
			}
		}
	}
	faces := make([][]uint32, 0, len(order))
	cells := make([]int, 0, len(order))
	for _, key := range order {
		if ref := counts[key]; ref.count == 1 {
			faces = append(faces, ref.verts)
			cells = append(cells, ref.cell)
		}
	}
	m.exteriorFaces = faces
	m.exteriorCells = cells
	m.exteriorBuilt = true
	return faces, cells
}

// InvalidateTopology forces ExteriorFaces to rebuild its cache.
func (m *VolumeMesh) InvalidateTopology() {
	m.exteriorBuilt = false
	m.dirty = true
}

func tetFacesForKind(k CellKind) [][]int {
	if k == CellHex {
		out := make([][]int, len(hexFaces))
		for i, f := range hexFaces {
			out[i] = []int{f[0], f[1], f[2], f[3]}
		}
		return out
	}
	out := make([][]int, len(tetFaces))
	for i, f := range tetFaces {
		out[i] = []int{f[0], f[1], f[2]}
	}
	return out
}

// CullByPlanes rebuilds Cells to contain only cells whose centroid is
// kept by every enabled plane in planes, per spec.md §4.2's structural
// (whole-cell) slice-plane behavior for volume meshes. It invalidates
// the exterior-face cache so newly exposed interior faces are
// rendered.
func (m *VolumeMesh) CullByPlanes(planes *sliceplane.Set) {
	kept := m.Cells[:0:0]
	for _, cell := range m.Cells {
		centroid := gpumath.Vec3{}
		for _, vi := range cell {
			centroid = centroid.Add(m.Vertices[vi])
		}
		centroid = centroid.Scale(1 / float32(len(cell)))
		if planes.IsKept(centroid) {
			kept = append(kept, cell)
		}
	}
	m.Cells = kept
	m.InvalidateTopology()
}
