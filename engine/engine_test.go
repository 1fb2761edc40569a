// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package engine

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/gogpu/geoviz/gpumath"
	"github.com/gogpu/geoviz/material"
	"github.com/gogpu/geoviz/registry"
	"github.com/gogpu/geoviz/structure/curvenetwork"
	"github.com/gogpu/geoviz/structure/pointcloud"
	"github.com/gogpu/geoviz/structure/surfacemesh"
)

func triangleMeshScene(t *testing.T) *registry.Context {
	t.Helper()
	ctx := registry.NewContext()
	verts := []gpumath.Vec3{
		{X: -1, Y: -1, Z: 0},
		{X: 1, Y: -1, Z: 0},
		{X: 0, Y: 1, Z: 0},
	}
	mesh := surfacemesh.New("tri", verts, [][]uint32{{0, 1, 2}})
	if err := ctx.Add("surfacemesh", mesh); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return ctx
}

func TestRenderProducesNonBackgroundPixelsWhereMeshIs(t *testing.T) {
	ctx := triangleMeshScene(t)
	e, err := NewEngine(ctx, 64, 64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img, err := e.Render()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(img) != 64*64*4 {
		t.Fatalf("expected a 64x64 RGBA8 image, got %d bytes", len(img))
	}

	center := (32*64 + 32) * 4
	bg := backgroundColor.ToRGBA8()
	if img[center] == bg.R && img[center+1] == bg.G && img[center+2] == bg.B {
		t.Fatalf("expected the triangle to cover the center pixel, got background color")
	}
}

func TestRenderOnEmptySceneIsAllBackground(t *testing.T) {
	ctx := registry.NewContext()
	e, err := NewEngine(ctx, 16, 16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img, err := e.Render()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bg := backgroundColor.ToRGBA8()
	for i := 0; i < len(img); i += 4 {
		if img[i] != bg.R || img[i+1] != bg.G || img[i+2] != bg.B {
			t.Fatalf("expected uniform background, found a non-background pixel at byte %d", i)
		}
	}
}

func TestNewEngineRejectsNonPositiveSize(t *testing.T) {
	if _, err := NewEngine(registry.NewContext(), 0, 10); err == nil {
		t.Fatalf("expected ErrInvalidSize")
	}
}

func TestResizeReallocatesFramebuffer(t *testing.T) {
	e, err := NewEngine(registry.NewContext(), 10, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := e.Resize(20, 30); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.fb.width != 20 || e.fb.height != 30 {
		t.Fatalf("expected framebuffer resized to 20x30, got %dx%d", e.fb.width, e.fb.height)
	}
}

func TestSetSSAARejectsInvalidFactor(t *testing.T) {
	e, _ := NewEngine(registry.NewContext(), 10, 10)
	if err := e.SetSSAA(3); err == nil {
		t.Fatalf("expected ErrInvalidSSAAFactor for k=3")
	}
}

func TestSetSSAAScalesFramebuffer(t *testing.T) {
	e, _ := NewEngine(registry.NewContext(), 10, 10)
	if err := e.SetSSAA(SSAA2x); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.fb.width != 20 || e.fb.height != 20 {
		t.Fatalf("expected 2x supersampled framebuffer, got %dx%d", e.fb.width, e.fb.height)
	}
}

func TestPickAtHitsRenderedTriangle(t *testing.T) {
	ctx := triangleMeshScene(t)
	e, err := NewEngine(ctx, 64, 64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := e.Render(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, err := e.PickAt(32, 32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Hit {
		t.Fatalf("expected a pick hit at the triangle's center")
	}
}

func TestPickAtMissesBackground(t *testing.T) {
	ctx := triangleMeshScene(t)
	e, err := NewEngine(ctx, 64, 64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := e.Render(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, err := e.PickAt(0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Hit {
		t.Fatalf("expected a miss at a corner outside the triangle")
	}
}

func TestPickAtRejectsOutOfBounds(t *testing.T) {
	e, _ := NewEngine(registry.NewContext(), 10, 10)
	if _, err := e.PickAt(100, 100); err == nil {
		t.Fatalf("expected an error for out-of-bounds pick coordinates")
	}
}

func TestCaptureScreenshotMatchesNativeResolution(t *testing.T) {
	ctx := triangleMeshScene(t)
	e, err := NewEngine(ctx, 32, 48)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img, err := e.CaptureScreenshot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(img) != 32*48*4 {
		t.Fatalf("expected tightly packed 32x48 RGBA8, got %d bytes", len(img))
	}
}

func TestRenderToImageIndependentOfViewportSize(t *testing.T) {
	ctx := triangleMeshScene(t)
	e, err := NewEngine(ctx, 64, 64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img, err := e.RenderToImage(100, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(img) != 100*50*4 {
		t.Fatalf("expected a 100x50 image, got %d bytes", len(img))
	}
}

func TestPointCloudRendersVisiblePixel(t *testing.T) {
	ctx := registry.NewContext()
	pc := pointcloud.New("pts", []gpumath.Vec3{{X: 0, Y: 0, Z: 0}})
	if err := ctx.Add("pointcloud", pc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e, err := NewEngine(ctx, 64, 64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img, err := e.Render()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	center := (32*64 + 32) * 4
	bg := backgroundColor.ToRGBA8()
	if img[center] == bg.R && img[center+1] == bg.G && img[center+2] == bg.B {
		t.Fatalf("expected the point splat to cover the center pixel")
	}
}

func TestCurveNetworkTubeModeRendersVisiblePixel(t *testing.T) {
	ctx := registry.NewContext()
	cn := curvenetwork.NewLine("wire", []gpumath.Vec3{{X: -1, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}})
	cn.Radius = 0.3
	cn.SetRenderMode(curvenetwork.RenderTube)
	if err := ctx.Add("curvenetwork", cn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e, err := NewEngine(ctx, 64, 64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img, err := e.Render()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	center := (32*64 + 32) * 4
	bg := backgroundColor.ToRGBA8()
	if img[center] == bg.R && img[center+1] == bg.G && img[center+2] == bg.B {
		t.Fatalf("expected the tube to cover the center pixel")
	}
}

func TestMaterialShadesMeshOnceLoaded(t *testing.T) {
	ctx := triangleMeshScene(t)
	meshes := ctx.Visible()
	mesh := meshes[0].(*surfacemesh.SurfaceMesh)

	e, err := NewEngine(ctx, 64, 64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before, err := e.Render()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mat := material.NewStatic("chrome")
	mesh.SetMaterial(mat)

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 200, B: 10, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	<-e.Materials.Submit(context.Background(), mat, 0, buf.Bytes())

	after, err := e.Render()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	center := (32*64 + 32) * 4
	if before[center] == after[center] && before[center+1] == after[center+1] && before[center+2] == after[center+2] {
		t.Fatalf("expected the drained matcap material to change the mesh's shaded color")
	}
}

func TestEnablingVertexScalarQuantityChangesRenderedPixel(t *testing.T) {
	ctx := triangleMeshScene(t)
	meshes := ctx.Visible()
	mesh := meshes[0].(*surfacemesh.SurfaceMesh)

	e, err := NewEngine(ctx, 64, 64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before, err := e.Render()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q := surfacemesh.NewVertexScalarQuantity("temp", []float64{0, 5, 10})
	if err := mesh.AddQuantity(q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after, err := e.Render()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	center := (32*64 + 32) * 4
	if before[center] == after[center] && before[center+1] == after[center+1] && before[center+2] == after[center+2] {
		t.Fatalf("expected enabling a vertex scalar quantity to change the center pixel's color")
	}
}

func TestToneMapExposureIncreaseIsLuminanceMonotonic(t *testing.T) {
	ctx := triangleMeshScene(t)
	e, err := NewEngine(ctx, 32, 32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e.ToneMap.Exposure = 0.5
	dim, err := e.Render()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e.ToneMap.Exposure = 1.5
	bright, err := e.Render()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	center := (16*32 + 16) * 4
	lumDim := 0.299*float64(dim[center]) + 0.587*float64(dim[center+1]) + 0.114*float64(dim[center+2])
	lumBright := 0.299*float64(bright[center]) + 0.587*float64(bright[center+1]) + 0.114*float64(bright[center+2])
	if lumBright < lumDim {
		t.Fatalf("expected non-decreasing luminance as exposure increases: dim=%v bright=%v", lumDim, lumBright)
	}
}

func TestPickAtCornerMissesWithTwoPointClouds(t *testing.T) {
	ctx := registry.NewContext()
	a := pointcloud.New("A", []gpumath.Vec3{{X: -5}})
	pts := make([]gpumath.Vec3, 20)
	for i := range pts {
		pts[i] = gpumath.Vec3{X: float32(i) * 0.05, Y: 0}
	}
	b := pointcloud.New("B", pts)
	if err := ctx.Add("pointcloud", a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ctx.Add("pointcloud", b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e, err := NewEngine(ctx, 128, 128)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := e.Render(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r, err := e.PickAt(0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Hit {
		t.Fatalf("expected a background miss at the corner")
	}
}
