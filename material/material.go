// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package material implements the matcap-based surface shading model
// of spec.md §4.4: a material samples one or more matcap images by
// view-space normal, either directly (Static) or blended between two
// matcaps by a per-material mix factor (Blendable).
package material

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"sync"

	"golang.org/x/image/draw"

	"github.com/gogpu/geoviz/gpucore"
	"github.com/gogpu/geoviz/gpumath"
)

// Kind distinguishes the two matcap shading models.
type Kind int

const (
	// KindStatic samples a single matcap texture.
	KindStatic Kind = iota
	// KindBlendable samples two matcap textures and linearly mixes
	// them by BlendFactor, letting a quantity fade a structure's
	// material (e.g. metal -> rubber) without a shader permutation.
	KindBlendable
)

// TextureSize is the fixed resolution every matcap is resampled to
// before upload, matching the square-texture assumption baked into
// every matcap shader variant.
const TextureSize = 256

// Material is a named matcap material ready for GPU upload.
type Material struct {
	Name string
	Kind Kind

	// Texture is the GPU handle for a Static material's single matcap.
	Texture gpucore.TextureID

	// TextureA/TextureB are the two GPU handles for a Blendable
	// material; BlendFactor in [0,1] mixes between them.
	TextureA, TextureB gpucore.TextureID
	BlendFactor        float32

	pixelsStatic []byte // TextureSize*TextureSize*4, valid once loaded
	pixelsA      []byte
	pixelsB      []byte
}

// Pixels returns the decoded, resampled RGBA8 pixel buffer(s) backing
// this material, for upload by the pipeline layer. For KindStatic only
// the first return value is valid.
func (m *Material) Pixels() (static, a, b []byte) {
	return m.pixelsStatic, m.pixelsA, m.pixelsB
}

// decodeAndResample decodes an image and resamples it to a
// TextureSize x TextureSize RGBA buffer using golang.org/x/image/draw's
// bilinear scaler.
func decodeAndResample(r *bytes.Reader) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("material: decode matcap: %w", err)
	}
	dst := image.NewRGBA(image.Rect(0, 0, TextureSize, TextureSize))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst.Pix, nil
}

// loadRequest is one pending LoadQueue entry.
type loadRequest struct {
	material *Material
	slot     int // 0 = static/A, 1 = B
	data     []byte
	done     chan error
}

// LoadQueue decodes and resamples matcap images off the render thread
// and hands finished pixel buffers back to their Material on the next
// Drain call, so a slow image decode never stalls a frame.
type LoadQueue struct {
	mu      sync.Mutex
	pending []loadRequest
}

// NewLoadQueue returns an empty queue.
func NewLoadQueue() *LoadQueue { return &LoadQueue{} }

// Submit schedules data to be decoded and written into m (slot 0 for
// Static/TextureA, slot 1 for TextureB). Submit returns immediately;
// the decode happens on a background goroutine and the result is only
// visible to callers after the matching Drain. The returned channel
// receives the decode error, or nil once the decoded image is queued
// for the next Drain.
func (q *LoadQueue) Submit(ctx context.Context, m *Material, slot int, data []byte) <-chan error {
	done := make(chan error, 1)
	req := loadRequest{material: m, slot: slot, data: data, done: done}
	go func() {
		pix, err := decodeAndResample(bytes.NewReader(data))
		if err != nil {
			select {
			case done <- err:
			case <-ctx.Done():
			}
			return
		}
		q.mu.Lock()
		req.data = pix // reuse field to carry the decoded result
		q.pending = append(q.pending, req)
		q.mu.Unlock()
		done <- nil
	}()
	return done
}

// Drain applies every decoded-and-ready load onto its material. Call
// once per frame from the same goroutine that owns GPU upload, per
// spec.md §5's single-threaded-per-frame resource model.
func (q *LoadQueue) Drain() int {
	q.mu.Lock()
	reqs := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, r := range reqs {
		switch r.slot {
		case 0:
			r.material.pixelsStatic = r.data
			r.material.pixelsA = r.data
		case 1:
			r.material.pixelsB = r.data
		}
		select {
		case r.done <- nil:
		default:
		}
	}
	return len(reqs)
}

// SampleViewNormal returns the matcap-shaded color for the view-space
// normal n, sampling the decoded pixel buffer at the standard matcap
// UV convention (u, v) = (n.X*0.5+0.5, 0.5-n.Y*0.5) — the CPU
// rasterizer's stand-in for the GPU fragment shader's texture lookup.
// ok is false if no image has reached this material yet (Pixels still
// nil), in which case the caller should fall back to flat shading.
func (m *Material) SampleViewNormal(n gpumath.Vec3) (c gpumath.RGB, ok bool) {
	pix := m.pixelsStatic
	if m.Kind == KindBlendable {
		pix = blendPixels(m.pixelsA, m.pixelsB, m.BlendFactor)
	}
	if pix == nil {
		return gpumath.RGB{}, false
	}
	u := n.X*0.5 + 0.5
	v := 0.5 - n.Y*0.5
	x := clampPixel(int(u*TextureSize), 0, TextureSize-1)
	y := clampPixel(int(v*TextureSize), 0, TextureSize-1)
	i := (y*TextureSize + x) * 4
	return gpumath.RGB{
		R: float32(pix[i]) / 255,
		G: float32(pix[i+1]) / 255,
		B: float32(pix[i+2]) / 255,
	}, true
}

// blendPixels linearly mixes two equal-length RGBA8 buffers by t,
// returning nil if either input hasn't loaded yet.
func blendPixels(a, b []byte, t float32) []byte {
	if a == nil || b == nil {
		return nil
	}
	out := make([]byte, len(a))
	for i := range a {
		out[i] = byte(float32(a[i])*(1-t) + float32(b[i])*t)
	}
	return out
}

func clampPixel(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NewStatic returns a Static material with no texture loaded yet;
// submit matcap image bytes via a LoadQueue to populate it.
func NewStatic(name string) *Material {
	return &Material{Name: name, Kind: KindStatic}
}

// NewBlendable returns a Blendable material with BlendFactor 0 (pure
// TextureA) until both textures are loaded and a factor is set.
func NewBlendable(name string) *Material {
	return &Material{Name: name, Kind: KindBlendable}
}
