// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package engine

import (
	"testing"

	"github.com/gogpu/geoviz/gpumath"
)

func TestNewCameraDefaultsToPerspective(t *testing.T) {
	c := NewCamera(gpumath.Vec3{Z: 5}, gpumath.Vec3{})
	if c.Mode != ProjectionPerspective {
		t.Fatalf("expected default projection mode to be perspective")
	}
}

func TestOrthographicHalfExtentsScaleWithAspect(t *testing.T) {
	c := NewCamera(gpumath.Vec3{Z: 5}, gpumath.Vec3{})
	c.Mode = ProjectionOrthographic
	c.Aspect = 2
	c.OrthoScale = 3
	m := c.ProjectionMatrix()
	// m[0] = 1/halfWidth = 1/(OrthoScale*Aspect) = 1/6
	want := float32(1.0 / 6.0)
	if diff := m[0] - want; diff > 1e-4 || diff < -1e-4 {
		t.Fatalf("expected m[0]=%v, got %v", want, m[0])
	}
}

func TestViewProjectionMatrixComposesBothMatrices(t *testing.T) {
	c := NewCamera(gpumath.Vec3{Z: 5}, gpumath.Vec3{})
	vp := c.ViewProjectionMatrix()
	want := c.ProjectionMatrix().Mul(c.ViewMatrix())
	for i := range vp {
		if vp[i] != want[i] {
			t.Fatalf("ViewProjectionMatrix did not match Projection*View at index %d", i)
		}
	}
}
