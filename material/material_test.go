// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package material

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/gogpu/geoviz/gpumath"
)

func encodeTestPNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

func TestNewStaticHasNoPixelsUntilLoaded(t *testing.T) {
	m := NewStatic("chrome")
	static, _, _ := m.Pixels()
	if static != nil {
		t.Fatalf("fresh material should have no pixels yet")
	}
}

func TestLoadQueueDrainPopulatesStatic(t *testing.T) {
	q := NewLoadQueue()
	m := NewStatic("chrome")
	data := encodeTestPNG(t, 8, 8, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	done := q.Submit(context.Background(), m, 0, data)
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for background decode")
	}

	n := q.Drain()
	if n != 1 {
		t.Fatalf("expected 1 drained request, got %d", n)
	}

	static, a, _ := m.Pixels()
	if len(static) != TextureSize*TextureSize*4 {
		t.Fatalf("expected resampled %dx%d RGBA buffer, got %d bytes", TextureSize, TextureSize, len(static))
	}
	if len(a) != len(static) {
		t.Fatalf("static load should also populate TextureA's pixel slot")
	}
}

func TestLoadQueueDrainIsIdempotentWhenEmpty(t *testing.T) {
	q := NewLoadQueue()
	if n := q.Drain(); n != 0 {
		t.Fatalf("draining an empty queue should report 0, got %d", n)
	}
}

func TestBlendableLoadsBothSlots(t *testing.T) {
	q := NewLoadQueue()
	m := NewBlendable("metal-to-rubber")

	dataA := encodeTestPNG(t, 4, 4, color.RGBA{R: 255, A: 255})
	dataB := encodeTestPNG(t, 4, 4, color.RGBA{B: 255, A: 255})

	doneA := q.Submit(context.Background(), m, 0, dataA)
	doneB := q.Submit(context.Background(), m, 1, dataB)
	<-doneA
	<-doneB
	q.Drain()

	_, a, b := m.Pixels()
	if len(a) == 0 || len(b) == 0 {
		t.Fatalf("both blend slots should be populated after drain")
	}
}

func TestSampleViewNormalFailsBeforeLoad(t *testing.T) {
	m := NewStatic("chrome")
	if _, ok := m.SampleViewNormal(gpumath.Vec3{Z: 1}); ok {
		t.Fatalf("expected ok=false before any matcap has loaded")
	}
}

func TestSampleViewNormalReadsLoadedStaticPixels(t *testing.T) {
	q := NewLoadQueue()
	m := NewStatic("chrome")
	data := encodeTestPNG(t, 8, 8, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	<-q.Submit(context.Background(), m, 0, data)
	q.Drain()

	c, ok := m.SampleViewNormal(gpumath.Vec3{Z: 1})
	if !ok {
		t.Fatalf("expected ok=true once a matcap is loaded")
	}
	if c.R < 0.03 || c.R > 0.05 {
		t.Fatalf("expected the uniform test texture's red channel (~10/255), got %v", c.R)
	}
}

func TestSampleViewNormalBlendsBothSlots(t *testing.T) {
	q := NewLoadQueue()
	m := NewBlendable("metal-to-rubber")
	dataA := encodeTestPNG(t, 4, 4, color.RGBA{R: 255, A: 255})
	dataB := encodeTestPNG(t, 4, 4, color.RGBA{B: 255, A: 255})
	<-q.Submit(context.Background(), m, 0, dataA)
	<-q.Submit(context.Background(), m, 1, dataB)
	q.Drain()

	m.BlendFactor = 0
	pureA, _ := m.SampleViewNormal(gpumath.Vec3{Z: 1})
	m.BlendFactor = 1
	pureB, _ := m.SampleViewNormal(gpumath.Vec3{Z: 1})
	if pureA.R < 0.9 || pureB.B < 0.9 {
		t.Fatalf("expected BlendFactor=0 to read TextureA and 1 to read TextureB, got %+v / %+v", pureA, pureB)
	}
}

func TestDecodeAndResampleRejectsGarbage(t *testing.T) {
	q := NewLoadQueue()
	m := NewStatic("bad")
	done := q.Submit(context.Background(), m, 0, []byte("not an image"))
	select {
	case err := <-done:
		if err == nil {
			t.Fatalf("expected a decode error for invalid image data")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for decode failure")
	}
}
