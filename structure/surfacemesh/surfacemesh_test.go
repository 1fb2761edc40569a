// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surfacemesh

import (
	"testing"

	"github.com/gogpu/geoviz/gpumath"
	"github.com/gogpu/geoviz/material"
)

func square() *SurfaceMesh {
	verts := []gpumath.Vec3{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	return New("square", verts, [][]uint32{{0, 1, 2, 3}})
}

func TestSetMaterialAttachesAndClears(t *testing.T) {
	m := square()
	if m.Material != nil {
		t.Fatalf("expected no material by default")
	}
	mat := material.NewStatic("chrome")
	m.SetMaterial(mat)
	if m.Material != mat {
		t.Fatalf("expected SetMaterial to attach the given material")
	}
	m.SetMaterial(nil)
	if m.Material != nil {
		t.Fatalf("expected SetMaterial(nil) to clear the material")
	}
}

func TestFanTriangulateQuad(t *testing.T) {
	m := square()
	tris, faceOf, err := m.FanTriangulate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tris) != 6 {
		t.Fatalf("expected 2 triangles (6 indices) from a quad, got %d indices", len(tris))
	}
	if len(faceOf) != 2 || faceOf[0] != 0 || faceOf[1] != 0 {
		t.Fatalf("both fan triangles should map back to face 0, got %v", faceOf)
	}
}

func TestFanTriangulateRejectsDegenerateFace(t *testing.T) {
	verts := []gpumath.Vec3{{X: 0}, {X: 1}}
	m := New("line", verts, [][]uint32{{0, 1}})
	if _, _, err := m.FanTriangulate(); err == nil {
		t.Fatalf("expected ErrDegenerateFace")
	}
}

func TestVertexNormalsPlanarQuadPointsUp(t *testing.T) {
	m := square()
	normals, err := m.VertexNormals()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, n := range normals {
		if n.Z <= 0 {
			t.Fatalf("vertex %d normal %+v should point toward +Z", i, n)
		}
	}
}

func TestInvalidateTopologyForcesRebuild(t *testing.T) {
	m := square()
	_, _, _ = m.FanTriangulate()
	m.Faces = append(m.Faces, []uint32{0, 1, 2})
	m.InvalidateTopology()
	tris, _, err := m.FanTriangulate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tris) != 9 {
		t.Fatalf("expected 3 triangles after adding a face, got %d indices", len(tris))
	}
}

func TestParameterizationCheckerAlternates(t *testing.T) {
	q := NewParameterizationQuantity("uv", nil)
	q.GridSize = 1
	a := q.ColorAt(0, 0)
	b := q.ColorAt(1, 0)
	if a == b {
		t.Fatalf("adjacent checker cells should alternate")
	}
}

func TestAddQuantityRejectsVertexCountMismatch(t *testing.T) {
	m := square() // 4 vertices
	q := NewVertexScalarQuantity("s", []float64{1, 2})
	if err := m.AddQuantity(q); err == nil {
		t.Fatalf("expected a vertex-count mismatch error")
	}
}

func TestAddQuantityRejectsFaceCountMismatch(t *testing.T) {
	m := square() // 1 face
	q := NewFaceColorQuantity("c", []gpumath.RGB{{R: 1}, {G: 1}})
	if err := m.AddQuantity(q); err == nil {
		t.Fatalf("expected a face-count mismatch error")
	}
}

func TestActiveColorRGBAMarksTransparent(t *testing.T) {
	m := square()
	q := NewVertexColorRGBAQuantity("glass", []gpumath.RGB{{R: 1}, {G: 1}, {B: 1}, {R: 1, G: 1}}, []float32{0.5, 0.5, 0.5, 0.5})
	if err := m.AddQuantity(q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.IsTransparent() {
		t.Fatalf("expected an RGBA color quantity to mark the mesh transparent")
	}
}

func TestOpaqueColorQuantityIsNotTransparent(t *testing.T) {
	m := square()
	q := NewVertexColorQuantity("solid", []gpumath.RGB{{R: 1}, {G: 1}, {B: 1}, {R: 1, G: 1}})
	if err := m.AddQuantity(q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.IsTransparent() {
		t.Fatalf("expected an RGB-only color quantity not to mark the mesh transparent")
	}
}

func TestAddQuantityAttachesVectorQuantity(t *testing.T) {
	m := square()
	q := NewVertexVectorQuantity("v", []gpumath.Vec3{{X: 1}, {X: 1}, {X: 1}, {X: 1}})
	if err := m.AddQuantity(q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := m.Quantities()
	if len(got) != 1 || got[0] != q {
		t.Fatalf("expected the vector quantity to be attached")
	}
}
