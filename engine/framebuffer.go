// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package engine

import (
	"math"

	"github.com/gogpu/geoviz/gpumath"
)

// framebuffer holds the CPU-side render targets the software raster
// path draws into: an HDR linear color accumulator and a depth buffer,
// matching the formats spec.md §4.8 pins for the real GPU path (HDR
// RGBA16Float, depth Depth24PlusStencil8) closely enough that the
// same tone-map math applies to either.
type framebuffer struct {
	width, height int
	hdr           []gpumath.RGB
	depth         []float32
	pick          []uint32 // decoded global ids, software-path pick emulation
}

func newFramebuffer(width, height int) *framebuffer {
	fb := &framebuffer{width: width, height: height}
	fb.clear()
	return fb
}

// backgroundColor is the HDR clear color for the opaque pass, per
// spec.md §4.8 step 3 ("clear HDR color to background").
var backgroundColor = gpumath.RGB{R: 0.08, G: 0.08, B: 0.1}

func (fb *framebuffer) clear() {
	n := fb.width * fb.height
	fb.hdr = make([]gpumath.RGB, n)
	fb.depth = make([]float32, n)
	fb.pick = make([]uint32, n)
	for i := range fb.hdr {
		fb.hdr[i] = backgroundColor
		fb.depth[i] = 1
	}
}

func (fb *framebuffer) inBounds(x, y int) bool {
	return x >= 0 && x < fb.width && y >= 0 && y < fb.height
}

func (fb *framebuffer) index(x, y int) int { return y*fb.width + x }

// testAndSetDepth performs a LESS depth test and, on pass, writes z
// and returns true so the caller may also write color.
func (fb *framebuffer) testAndSetDepth(x, y int, z float32) bool {
	i := fb.index(x, y)
	if z < 0 || z > 1 || z >= fb.depth[i] {
		return false
	}
	fb.depth[i] = z
	return true
}

// toneMap applies the exposure/white-level/gamma tone-map of spec.md
// §4.8 step 10 and returns the native-resolution LDR image as tightly
// packed RGBA8 bytes (no row padding — that constraint only applies
// to the GPU readback path's staging buffer, not this in-process
// buffer).
func (fb *framebuffer) toneMap(exposure, whiteLevel, gamma float32) []byte {
	out := make([]byte, fb.width*fb.height*4)
	invGamma := float32(1)
	if gamma > 0 {
		invGamma = 1 / gamma
	}
	for i, c := range fb.hdr {
		r := reinhard(c.R*exposure, whiteLevel)
		g := reinhard(c.G*exposure, whiteLevel)
		b := reinhard(c.B*exposure, whiteLevel)
		rgba := gpumath.RGB{R: gammaEncode(r, invGamma), G: gammaEncode(g, invGamma), B: gammaEncode(b, invGamma)}.ToRGBA8()
		out[i*4+0] = rgba.R
		out[i*4+1] = rgba.G
		out[i*4+2] = rgba.B
		out[i*4+3] = 255
	}
	return out
}

func reinhard(v, whiteLevel float32) float32 {
	if whiteLevel <= 0 {
		whiteLevel = 1
	}
	return v * (1 + v/(whiteLevel*whiteLevel)) / (1 + v)
}

func gammaEncode(v, invGamma float32) float32 {
	if v <= 0 {
		return 0
	}
	if invGamma == 1 {
		return v
	}
	return float32(math.Pow(float64(v), float64(invGamma)))
}
