// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package marchingcubes

import (
	"math"
	"testing"
)

func uniformField(nx, ny, nz int, v float32) []float32 {
	f := make([]float32, nx*ny*nz)
	for i := range f {
		f[i] = v
	}
	return f
}

func TestExtractEmptyFieldAllAbove(t *testing.T) {
	m, err := Extract(uniformField(4, 4, 4, 10), 4, 4, 4, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Indices) != 0 || len(m.Vertices) != 0 {
		t.Fatalf("expected empty mesh, got %d verts / %d indices", len(m.Vertices), len(m.Indices))
	}
}

func TestExtractEmptyFieldAllBelow(t *testing.T) {
	m, err := Extract(uniformField(4, 4, 4, -10), 4, 4, 4, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Indices) != 0 {
		t.Fatalf("expected empty mesh, got %d indices", len(m.Indices))
	}
}

func TestExtractSingleCornerIn(t *testing.T) {
	// 2x2x2 field: corner (0,0,0) is below iso, the other 7 are above.
	field := uniformField(2, 2, 2, 10)
	field[0] = -10 // x=0,y=0,z=0
	m, err := Extract(field, 2, 2, 2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Indices) != 3 {
		t.Fatalf("expected exactly 1 triangle (3 indices), got %d indices", len(m.Indices))
	}
	if len(m.Vertices) != 3 {
		t.Fatalf("expected 3 distinct vertices for a corner cut, got %d", len(m.Vertices))
	}
}

func TestExtractSphereSDF(t *testing.T) {
	const n = 20
	const radius = 7.0
	center := float32(n-1) / 2
	field := make([]float32, n*n*n)
	for z := 0; z < n; z++ {
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				dx := float32(x) - center
				dy := float32(y) - center
				dz := float32(z) - center
				dist := float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
				field[(x*n+y)*n+z] = dist - radius
			}
		}
	}

	m, err := Extract(field, n, n, n, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	triCount := len(m.Indices) / 3
	if triCount <= 100 {
		t.Fatalf("expected more than 100 triangles for a sphere isosurface, got %d", triCount)
	}
	if len(m.Indices)%3 != 0 {
		t.Fatalf("index count %d is not a multiple of 3", len(m.Indices))
	}
	if len(m.Normals) != len(m.Vertices) {
		t.Fatalf("normal count %d != vertex count %d", len(m.Normals), len(m.Vertices))
	}

	for _, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			t.Fatalf("index %d out of range (%d vertices)", idx, len(m.Vertices))
		}
	}

	for i, n3 := range m.Normals {
		mag := float64(n3.Length())
		if mag < 1e-6 {
			continue // degenerate-star vertex; normalize() leaves it zero
		}
		if math.Abs(mag-1) >= 0.01 {
			t.Fatalf("vertex %d normal magnitude %v not within 0.01 of 1", i, mag)
		}
	}

	for i, v := range m.Vertices {
		dx := v.X - center
		dy := v.Y - center
		dz := v.Z - center
		dist := math.Sqrt(float64(dx*dx + dy*dy + dz*dz))
		if math.Abs(dist-radius) > 2 {
			t.Fatalf("vertex %d at %+v is %v from center, want within 2 of radius %v", i, v, dist, radius)
		}
	}
}

func TestExtractRejectsBadDimensions(t *testing.T) {
	if _, err := Extract(uniformField(4, 4, 4, 0), 1, 4, 4, 0); err == nil {
		t.Fatalf("expected error for nx<2")
	}
	if _, err := Extract(make([]float32, 10), 2, 2, 2, 0); err == nil {
		t.Fatalf("expected error for mismatched field length")
	}
}
