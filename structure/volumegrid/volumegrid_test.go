// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package volumegrid

import (
	"testing"

	"github.com/gogpu/geoviz/gpumath"
)

func TestFlattenUnflattenRoundTrip(t *testing.T) {
	g := New("g", 4, 5, 6, gpumath.Vec3{}, 1)
	for z := 0; z < 6; z++ {
		for y := 0; y < 5; y++ {
			for x := 0; x < 4; x++ {
				flat, err := g.Flatten(x, y, z)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				gx, gy, gz, err := g.Unflatten(flat)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if gx != x || gy != y || gz != z {
					t.Fatalf("round-trip (%d,%d,%d) -> %d -> (%d,%d,%d)", x, y, z, flat, gx, gy, gz)
				}
			}
		}
	}
}

func TestFlattenRejectsOutOfRange(t *testing.T) {
	g := New("g", 4, 4, 4, gpumath.Vec3{}, 1)
	if _, err := g.Flatten(4, 0, 0); err == nil {
		t.Fatalf("expected ErrInvalidIndex for x==Nx")
	}
	if _, err := g.Flatten(-1, 0, 0); err == nil {
		t.Fatalf("expected ErrInvalidIndex for negative x")
	}
}

func TestCachedIsosurfaceSurvivesUntilRecompute(t *testing.T) {
	g := New("g", 3, 3, 3, gpumath.Vec3{}, 1)
	if _, ok := g.CachedIsosurface(); ok {
		t.Fatalf("fresh grid should have no cached isosurface")
	}

	field := make([]float32, 27)
	for i := range field {
		field[i] = 10
	}
	field[0] = -10 // one corner below iso=0

	g.RequestIsosurface(0)
	if !g.IsosurfaceStale() {
		t.Fatalf("RequestIsosurface should mark stale")
	}
	if err := g.RecomputeIsosurface(field); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.IsosurfaceStale() {
		t.Fatalf("RecomputeIsosurface should clear stale flag")
	}
	mesh, ok := g.CachedIsosurface()
	if !ok || len(mesh.Vertices) == 0 {
		t.Fatalf("expected a non-empty cached mesh after recompute")
	}

	// Requesting again keeps the old mesh available until the next
	// RecomputeIsosurface call actually runs.
	g.RequestIsosurface(5)
	stillCached, ok := g.CachedIsosurface()
	if !ok || len(stillCached.Vertices) != len(mesh.Vertices) {
		t.Fatalf("cached mesh should be unchanged until RecomputeIsosurface runs again")
	}
}

func TestBoundingBoxScalesWithSpacing(t *testing.T) {
	g := New("g", 3, 3, 3, gpumath.Vec3{}, 2)
	b := g.BoundingBox()
	if b.Max.X != 4 {
		t.Fatalf("bbox max.X = %v, want 4 (2 cells * spacing 2)", b.Max.X)
	}
}

func TestPositionOfNodeMatchesBoundingBoxCorners(t *testing.T) {
	g := New("g", 4, 5, 6, gpumath.Vec3{X: 1, Y: 2, Z: 3}, 2)
	b := g.BoundingBox()

	min, err := g.PositionOfNode(0, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if min != b.Min {
		t.Fatalf("PositionOfNode(0,0,0) = %+v, want bbox min %+v", min, b.Min)
	}

	max, err := g.PositionOfNode(g.Nx-1, g.Ny-1, g.Nz-1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if max != b.Max {
		t.Fatalf("PositionOfNode(Nx-1,Ny-1,Nz-1) = %+v, want bbox max %+v", max, b.Max)
	}
}

func TestPositionOfNodeRejectsOutOfRange(t *testing.T) {
	g := New("g", 3, 3, 3, gpumath.Vec3{}, 1)
	if _, err := g.PositionOfNode(3, 0, 0); err == nil {
		t.Fatalf("expected ErrInvalidIndex for x==Nx")
	}
}

func TestAddQuantityRejectsNodeCountMismatch(t *testing.T) {
	g := New("g", 3, 3, 3, gpumath.Vec3{}, 1) // 27 nodes
	q := NewNodeScalarQuantity("s", []float32{1, 2})
	if err := g.AddQuantity(q); err == nil {
		t.Fatalf("expected a node-count mismatch error")
	}
}

func TestAddQuantityRejectsCellCountMismatch(t *testing.T) {
	g := New("g", 3, 3, 3, gpumath.Vec3{}, 1) // 2x2x2 = 8 cells
	q := NewCellScalarQuantity("s", []float32{1, 2})
	if err := g.AddQuantity(q); err == nil {
		t.Fatalf("expected a cell-count mismatch error")
	}
}

func TestSetModeRejectsIsosurfaceOnCellQuantity(t *testing.T) {
	q := NewCellScalarQuantity("s", make([]float32, 8))
	if err := q.SetMode(VizIsosurface); err == nil {
		t.Fatalf("expected an error requesting isosurface mode on a cell quantity")
	}
}

func TestPromoteIsosurfaceFlagFiresOnce(t *testing.T) {
	g := New("g", 3, 3, 3, gpumath.Vec3{}, 1)
	if g.TakePromoteIsosurface() {
		t.Fatalf("fresh grid should have no pending promotion")
	}
	g.RequestPromoteIsosurface()
	if !g.TakePromoteIsosurface() {
		t.Fatalf("expected promotion request to be observed")
	}
	if g.TakePromoteIsosurface() {
		t.Fatalf("expected the promotion flag to clear after being taken")
	}
}
