// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package marchingcubes extracts a triangulated isosurface from a
// regular scalar field, per spec.md §4.3. It is used both to build
// the visualization mesh for volume-grid isosurface quantities and,
// standalone, by callers who just want a mesh from a sampled field.
package marchingcubes

import (
	"errors"
	"fmt"

	"github.com/gogpu/geoviz/gpumath"
)

// ErrInvalidDimensions is returned when nx, ny, or nz is less than 2
// (a cell needs two samples per axis) or the field slice length does
// not match nx*ny*nz.
var ErrInvalidDimensions = errors.New("marchingcubes: invalid field dimensions")

// Mesh is the triangulated isosurface: Vertices and Normals are
// parallel arrays, Indices are flat triangle-index triples.
type Mesh struct {
	Vertices []gpumath.Vec3
	Normals  []gpumath.Vec3
	Indices  []uint32
}

// edgeVertex records the mesh vertex index produced for a cut edge;
// valid distinguishes a cached entry from the zero value.
type edgeVertex struct {
	index uint32
	valid bool
}

// Extract triangulates the isosurface field(x,y,z) == iso over a
// regular nx*ny*nz lattice of unit-spaced grid points, where field is
// stored z-fastest, then y, then x, per spec.md §4.3's
// (i*ny+j)*nz+k addressing (field[(x*ny+y)*nz+z]).
//
// It uses a two-slab cache of edge-vertex indices — only the current
// and previous z layer are kept resident, indexed by z%2 — rather than
// a full nx*ny*nz cache, since each cell only ever shares edges with
// its immediate neighbors in x, y and the adjacent z layer.
func Extract(field []float32, nx, ny, nz int, iso float32) (Mesh, error) {
	if nx < 2 || ny < 2 || nz < 2 {
		return Mesh{}, fmt.Errorf("marchingcubes: nx=%d ny=%d nz=%d: %w", nx, ny, nz, ErrInvalidDimensions)
	}
	if len(field) != nx*ny*nz {
		return Mesh{}, fmt.Errorf("marchingcubes: field has %d samples, want %d: %w", len(field), nx*ny*nz, ErrInvalidDimensions)
	}

	at := func(x, y, z int) float32 { return field[(x*ny+y)*nz+z] }

	var mesh Mesh
	normalAccum := make([]gpumath.Vec3, 0, 1024)

	// slab[s][edgeKind] holds cached vertex indices for the two
	// x/y-running edge families per z layer (s = z%2); z-running
	// edges (axis 2) connect the two layers and are cached in the
	// current layer's slab.
	type slabKey struct{ x, y, axis int }
	slabCache := [2]map[slabKey]edgeVertex{{}, {}}
	slabCache[0] = make(map[slabKey]edgeVertex)
	slabCache[1] = make(map[slabKey]edgeVertex)

	addVertex := func(p gpumath.Vec3) uint32 {
		idx := uint32(len(mesh.Vertices))
		mesh.Vertices = append(mesh.Vertices, p)
		normalAccum = append(normalAccum, gpumath.Vec3{})
		return idx
	}

	for z := 0; z < nz-1; z++ {
		cur := z % 2
		for y := 0; y < ny-1; y++ {
			for x := 0; x < nx-1; x++ {
				var corner [8]float32
				config := 0
				for c := 0; c < 8; c++ {
					off := cubeCornerOffset[c]
					v := at(x+off[0], y+off[1], z+off[2])
					corner[c] = v
					if v < iso {
						config |= 1 << uint(c)
					}
				}
				mask := edgeTable[config]
				if mask == 0 {
					continue
				}

				var edgeIdx [12]uint32
				for e := 0; e < 12; e++ {
					if mask&(1<<uint(e)) == 0 {
						continue
					}
					a, b := cubeEdgeCorners[e][0], cubeEdgeCorners[e][1]
					oa, ob := cubeCornerOffset[a], cubeCornerOffset[b]

					axis := edgeAxis[e]
					// Key on the lower-indexed corner of the edge so
					// neighboring cells referencing the same physical
					// edge compute the same key.
					lowX, lowY := x+oa[0], y+oa[1]
					if ob[0] < oa[0] {
						lowX = x + ob[0]
					}
					if ob[1] < oa[1] {
						lowY = y + ob[1]
					}

					// z-running (axis 2) edges live entirely within this
					// z iteration, so they're keyed on the current
					// slab. x/y-running edges lie on one of the cell's
					// two z-faces; keying on that face's real z parity
					// (not always the current slab) is what lets the
					// next z iteration find and reuse the face it
					// shares with this one.
					slabZ := cur
					if axis != 2 {
						slabZ = (z + oa[2]) % 2
					}
					key := slabKey{lowX, lowY, axis}
					if ev, ok := slabCache[slabZ][key]; ok && ev.valid {
						edgeIdx[e] = ev.index
						continue
					}

					va, vb := corner[a], corner[b]
					t := float32(0.5)
					if denom := vb - va; denom != 0 {
						t = (iso - va) / denom
					}
					pa := gpumath.Vec3{
						X: float32(x + oa[0]),
						Y: float32(y + oa[1]),
						Z: float32(z + oa[2]),
					}
					pb := gpumath.Vec3{
						X: float32(x + ob[0]),
						Y: float32(y + ob[1]),
						Z: float32(z + ob[2]),
					}
					p := pa.Lerp(pb, t)
					idx := addVertex(p)
					slabCache[slabZ][key] = edgeVertex{index: idx, valid: true}
					edgeIdx[e] = idx
				}

				packed := packedTriangleTable[config]
				tris := triangleCount(packed)
				for ti := 0; ti < tris; ti++ {
					i0 := edgeIdx[triangleEdge(packed, ti*3+0)]
					i1 := edgeIdx[triangleEdge(packed, ti*3+1)]
					i2 := edgeIdx[triangleEdge(packed, ti*3+2)]
					mesh.Indices = append(mesh.Indices, i0, i1, i2)

					p0, p1, p2 := mesh.Vertices[i0], mesh.Vertices[i1], mesh.Vertices[i2]
					// Area-weighted face normal: the unnormalized cross
					// product's magnitude is twice the triangle area, so
					// accumulating it directly weights each vertex's
					// normal contribution by the area of triangles
					// around it before the final per-vertex normalize.
					faceNormal := p1.Sub(p0).Cross(p2.Sub(p0))
					normalAccum[i0] = normalAccum[i0].Add(faceNormal)
					normalAccum[i1] = normalAccum[i1].Add(faceNormal)
					normalAccum[i2] = normalAccum[i2].Add(faceNormal)
				}
			}
		}
		// Drop the slab two layers behind; it can no longer be
		// referenced by any future cell.
		slabCache[cur] = make(map[slabKey]edgeVertex)
	}

	mesh.Normals = make([]gpumath.Vec3, len(normalAccum))
	for i, n := range normalAccum {
		mesh.Normals[i] = n.Normalize()
	}
	return mesh, nil
}
