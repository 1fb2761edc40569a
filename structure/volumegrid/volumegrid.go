// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package volumegrid implements the volume-grid structure of
// spec.md §3: a regular nx*ny*nz lattice of scalar samples,
// visualized either as gridcubes (a small solid cube per node or cell
// center) or as a Marching Cubes isosurface.
package volumegrid

import (
	"errors"
	"fmt"

	"github.com/gogpu/geoviz/gpumath"
	"github.com/gogpu/geoviz/marchingcubes"
	"github.com/gogpu/geoviz/structure"
)

// ErrInvalidIndex is returned by Flatten/Unflatten for an out-of-range
// grid coordinate or flat index.
var ErrInvalidIndex = errors.New("volumegrid: index out of range")

// VolumeGrid is a regular scalar lattice occupying [Origin, Origin +
// (Nx-1,Ny-1,Nz-1)*Spacing] in local space.
type VolumeGrid struct {
	name      string
	transform gpumath.Mat4
	enabled   bool
	dirty     bool

	Nx, Ny, Nz int
	Origin     gpumath.Vec3
	Spacing    float32

	quantities structure.QuantitySet

	showGridcube    bool
	isosurfaceStale bool
	isosurfaceIso   float32
	cachedMesh      marchingcubes.Mesh
	cachedMeshValid bool
	promoteRequested bool
}

// New returns an empty volume grid of the given resolution.
func New(name string, nx, ny, nz int, origin gpumath.Vec3, spacing float32) *VolumeGrid {
	return &VolumeGrid{
		name:         name,
		transform:    gpumath.Identity(),
		enabled:      true,
		dirty:        true,
		Nx:           nx,
		Ny:           ny,
		Nz:           nz,
		Origin:       origin,
		Spacing:      spacing,
		showGridcube: true,
	}
}

func (g *VolumeGrid) Name() string             { return g.name }
func (g *VolumeGrid) Domain() structure.Domain { return structure.DomainVolumeGrid }
func (g *VolumeGrid) Transform() gpumath.Mat4  { return g.transform }
func (g *VolumeGrid) SetTransform(m gpumath.Mat4) {
	g.transform = m
	g.dirty = true
}
func (g *VolumeGrid) Enabled() bool     { return g.enabled }
func (g *VolumeGrid) SetEnabled(e bool) { g.enabled = e }
func (g *VolumeGrid) Dirty() bool       { return g.dirty }
func (g *VolumeGrid) MarkClean()        { g.dirty = false }

func (g *VolumeGrid) BoundingBox() gpumath.Box3 {
	max := gpumath.Vec3{
		X: g.Origin.X + float32(g.Nx-1)*g.Spacing,
		Y: g.Origin.Y + float32(g.Ny-1)*g.Spacing,
		Z: g.Origin.Z + float32(g.Nz-1)*g.Spacing,
	}
	return gpumath.Box3{Min: g.Origin, Max: max}
}

func (g *VolumeGrid) Quantities() []structure.Quantity { return g.quantities.List() }
func (g *VolumeGrid) AddQuantity(q structure.Quantity) error {
	if q.Domain() != structure.DomainVolumeGrid {
		return fmt.Errorf("volumegrid: quantity %q belongs to domain %v, not volume_grid", q.Name(), q.Domain())
	}
	if sq, ok := q.(*ScalarQuantity); ok {
		want := g.Nx * g.Ny * g.Nz
		if sq.PerCell {
			want = (g.Nx - 1) * (g.Ny - 1) * (g.Nz - 1)
		}
		if len(sq.Values) != want {
			domain := "node"
			if sq.PerCell {
				domain = "cell"
			}
			return fmt.Errorf("volumegrid: %s quantity %q has %d entries, want %d", domain, q.Name(), len(sq.Values), want)
		}
	}
	return g.quantities.Add(q)
}
func (g *VolumeGrid) RemoveQuantity(name string) { g.quantities.Remove(name) }

// ActiveScalar returns the currently active scalar quantity, or nil.
func (g *VolumeGrid) ActiveScalar() *ScalarQuantity {
	q, _ := g.quantities.Active(structure.CategoryScalar).(*ScalarQuantity)
	return q
}

// RequestPromoteIsosurface marks the cached isosurface mesh (if any)
// for promotion to a first-class surface_mesh structure, per
// spec.md §4.4.5 ("the user action sets a flag consumed by the host
// one frame later"). The host drains this via TakePromoteIsosurface.
func (g *VolumeGrid) RequestPromoteIsosurface() { g.promoteRequested = true }

// TakePromoteIsosurface reports whether promotion was requested and
// clears the flag, so the host's next-frame check fires exactly once
// per request.
func (g *VolumeGrid) TakePromoteIsosurface() bool {
	v := g.promoteRequested
	g.promoteRequested = false
	return v
}

// PositionOfNode returns the local-space (pre-transform) position of
// grid node (x, y, z): Origin plus the node's coordinate times
// Spacing along each axis. The corner nodes therefore equal
// BoundingBox().Min and BoundingBox().Max exactly.
func (g *VolumeGrid) PositionOfNode(x, y, z int) (gpumath.Vec3, error) {
	if x < 0 || x >= g.Nx || y < 0 || y >= g.Ny || z < 0 || z >= g.Nz {
		return gpumath.Vec3{}, fmt.Errorf("volumegrid: (%d,%d,%d) outside %dx%dx%d: %w", x, y, z, g.Nx, g.Ny, g.Nz, ErrInvalidIndex)
	}
	return gpumath.Vec3{
		X: g.Origin.X + float32(x)*g.Spacing,
		Y: g.Origin.Y + float32(y)*g.Spacing,
		Z: g.Origin.Z + float32(z)*g.Spacing,
	}, nil
}

// Flatten converts a 3D grid coordinate into a flat index, matching
// spec.md §4.3's z-fastest, then y, then x layout ((x*Ny+y)*Nz+z)
// that marchingcubes.Extract expects.
func (g *VolumeGrid) Flatten(x, y, z int) (int, error) {
	if x < 0 || x >= g.Nx || y < 0 || y >= g.Ny || z < 0 || z >= g.Nz {
		return 0, fmt.Errorf("volumegrid: (%d,%d,%d) outside %dx%dx%d: %w", x, y, z, g.Nx, g.Ny, g.Nz, ErrInvalidIndex)
	}
	return (x*g.Ny+y)*g.Nz + z, nil
}

// Unflatten converts a flat index back into a 3D grid coordinate.
func (g *VolumeGrid) Unflatten(i int) (x, y, z int, err error) {
	if i < 0 || i >= g.Nx*g.Ny*g.Nz {
		return 0, 0, 0, fmt.Errorf("volumegrid: flat index %d outside [0,%d): %w", i, g.Nx*g.Ny*g.Nz, ErrInvalidIndex)
	}
	z = i % g.Nz
	y = (i / g.Nz) % g.Ny
	x = i / (g.Nz * g.Ny)
	return x, y, z, nil
}

// SetShowGridcube toggles gridcube visualization (spec.md §4.4.5(a)):
// a small colored cube drawn at each node or cell center when the
// active scalar quantity's Mode is VizGridcube.
func (g *VolumeGrid) SetShowGridcube(show bool) { g.showGridcube = show }
func (g *VolumeGrid) ShowGridcube() bool        { return g.showGridcube }

// RequestIsosurface marks the grid's isosurface at the given
// isovalue as needing recomputation. The previously computed mesh (if
// any) is kept and returned by CachedIsosurface until
// RecomputeIsosurface finishes, so the displayed surface never
// flickers to empty while a new extraction runs.
func (g *VolumeGrid) RequestIsosurface(iso float32) {
	g.isosurfaceIso = iso
	g.isosurfaceStale = true
}

// IsosurfaceStale reports whether RecomputeIsosurface needs to run.
func (g *VolumeGrid) IsosurfaceStale() bool { return g.isosurfaceStale }

// RecomputeIsosurface extracts the current isosurface from field and
// replaces the cached mesh. field must have Nx*Ny*Nz samples.
func (g *VolumeGrid) RecomputeIsosurface(field []float32) error {
	mesh, err := marchingcubes.Extract(field, g.Nx, g.Ny, g.Nz, g.isosurfaceIso)
	if err != nil {
		return err
	}
	g.cachedMesh = mesh
	g.cachedMeshValid = true
	g.isosurfaceStale = false
	return nil
}

// CachedIsosurface returns the most recently computed isosurface mesh
// and whether one has ever been computed.
func (g *VolumeGrid) CachedIsosurface() (marchingcubes.Mesh, bool) {
	return g.cachedMesh, g.cachedMeshValid
}
