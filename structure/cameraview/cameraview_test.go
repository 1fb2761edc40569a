// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cameraview

import (
	"math"
	"testing"

	"github.com/gogpu/geoviz/gpumath"
)

func TestFrustumCornersFarWiderThanNear(t *testing.T) {
	c := New("cam", gpumath.Identity(), float32(math.Pi)/2, 1, 1, 10)
	corners := c.FrustumCorners()
	nearWidth := corners[1].X - corners[0].X
	farWidth := corners[5].X - corners[4].X
	if farWidth <= nearWidth {
		t.Fatalf("far plane (%v) should be wider than near plane (%v)", farWidth, nearWidth)
	}
}

func TestFrustumCornersRespectAspect(t *testing.T) {
	c := New("cam", gpumath.Identity(), float32(math.Pi)/2, 2, 1, 10)
	corners := c.FrustumCorners()
	width := corners[1].X - corners[0].X
	height := corners[2].Y - corners[1].Y
	if math.Abs(float64(width/height-2)) > 1e-4 {
		t.Fatalf("width/height should equal aspect 2, got %v", width/height)
	}
}

func TestBoundingBoxTranslatesWithTransform(t *testing.T) {
	c := New("cam", gpumath.Translate(gpumath.Vec3{X: 100}), float32(math.Pi)/2, 1, 1, 10)
	b := c.BoundingBox()
	if b.Center().X < 99 {
		t.Fatalf("bbox should be translated to around x=100, got center %+v", b.Center())
	}
}
