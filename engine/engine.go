// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package engine drives the per-frame pass graph of spec.md §4.8: it
// owns the pipeline cache, bind-group layouts, resize-dependent render
// targets, and the two blocking entry points (PickAt, CaptureScreenshot)
// a host calls synchronously from its event loop.
//
// Render's pixels come from the software raster path described in
// software.go's doc comment rather than a wgpu command encoder, since
// this package has no adapter or surface to build one against. The
// surrounding machinery a GPU backend needs is still live, not stubbed
// out: every visible structure resolves its pipeline.Kind through
// Pipelines each frame (see pipelines.go), Materials drains decoded
// matcap textures into their structures on the same per-frame
// schedule a GPU upload would, and a host that does have a device can
// AttachDevice it for the same adapter-info diagnostic a real backend
// logs at startup. What's missing is only the final step of issuing
// those pipelines' draw calls against real render targets instead of
// the CPU's own triangle fill.
package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/geoviz/gpudevice"
	"github.com/gogpu/geoviz/gpumath"
	"github.com/gogpu/geoviz/material"
	"github.com/gogpu/geoviz/pick"
	"github.com/gogpu/geoviz/pipeline"
	"github.com/gogpu/geoviz/registry"
	"github.com/gogpu/geoviz/structure"
)

// SSAAFactor is the supersampling factor k of spec.md §4.7; only 1, 2,
// and 4 are valid.
type SSAAFactor int

const (
	SSAANone SSAAFactor = 1
	SSAA2x   SSAAFactor = 2
	SSAA4x   SSAAFactor = 4
)

// ErrInvalidSSAAFactor is returned by SetSSAA for any k outside {1,2,4}.
var ErrInvalidSSAAFactor = errors.New("engine: ssaa factor must be 1, 2, or 4")

// ErrInvalidSize is returned by Resize/RenderToImage for non-positive
// dimensions.
var ErrInvalidSize = errors.New("engine: width and height must be positive")

// ToneMapSettings holds the exposure/white-level/gamma parameters of
// spec.md §4.8 step 10.
type ToneMapSettings struct {
	Exposure   float32
	WhiteLevel float32
	Gamma      float32
}

// DefaultToneMapSettings mirrors a neutral tone-map curve.
var DefaultToneMapSettings = ToneMapSettings{Exposure: 1, WhiteLevel: 4, Gamma: 2.2}

// Engine owns everything the pass graph touches that is not owned by
// an individual Structure: the registry it renders, the pick-id
// table, resize-dependent render targets, and tone-map parameters.
// Per spec.md §5, none of this is safe for concurrent access from
// more than the host's own render loop.
type Engine struct {
	Scene   *registry.Context
	Picks   *pick.Table
	Camera  Camera
	ToneMap ToneMapSettings
	ssaa    SSAAFactor
	width   int
	height  int
	fb      *framebuffer

	// Pipelines caches the pipeline table of spec.md §4.5, built
	// against a software stand-in for real bind-group-layout IDs
	// (see softwareBindGroupLayouts) since there is no wgpu device to
	// build them against here. Render resolves every visible
	// structure's pipeline through it each frame.
	Pipelines *pipeline.Cache

	// Materials decodes and resamples matcap images off the render
	// thread; Render drains it once per frame per spec.md §5, handing
	// any newly finished matcap textures to their SurfaceMesh.Material
	// before that frame's shading reads them.
	Materials *material.LoadQueue

	// Device, when attached via AttachDevice, is the real wgpu device
	// a host opened against an adapter it selected. The software
	// rasterizer never issues GPU calls through it; it exists so a
	// host using this engine headlessly still has a place to report
	// which GPU it is driving, the same diagnostic a real render
	// backend logs at startup.
	Device *gpudevice.Device
}

// NewEngine returns an engine bound to scene, at the given native
// resolution with no supersampling.
func NewEngine(scene *registry.Context, width, height int) (*Engine, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	e := &Engine{
		Scene:     scene,
		Picks:     pick.NewTable(),
		Camera:    NewCamera(gpumath.Vec3{Z: 5}, gpumath.Vec3{}),
		ToneMap:   DefaultToneMapSettings,
		ssaa:      SSAANone,
		width:     width,
		height:    height,
		Pipelines: pipeline.NewCache(softwareBindGroupLayouts(), nil),
		Materials: material.NewLoadQueue(),
	}
	e.Camera.Aspect = float32(width) / float32(height)
	e.fb = newFramebuffer(width*int(e.ssaa), height*int(e.ssaa))
	return e, nil
}

// Resize reallocates the engine's render targets for a new viewport
// size, per spec.md §5's "reallocated lazily when engine.resize(w,h)
// is called" resource model. There is no GPU device here to poll to
// completion before dropping old textures; the software path's
// "textures" are just Go slices the garbage collector reclaims once
// the old framebuffer is no longer referenced.
func (e *Engine) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidSize
	}
	e.width, e.height = width, height
	e.Camera.Aspect = float32(width) / float32(height)
	e.fb = newFramebuffer(width*int(e.ssaa), height*int(e.ssaa))
	return nil
}

// SetSSAA changes the supersampling factor, reallocating render
// targets at k*width x k*height per spec.md §4.7.
func (e *Engine) SetSSAA(k SSAAFactor) error {
	if k != SSAANone && k != SSAA2x && k != SSAA4x {
		return ErrInvalidSSAAFactor
	}
	e.ssaa = k
	e.fb = newFramebuffer(e.width*int(k), e.height*int(k))
	return nil
}

// SSAA returns the current supersampling factor.
func (e *Engine) SSAA() SSAAFactor { return e.ssaa }

// AttachDevice binds a GPU device the host already opened against an
// adapter it selected (gpudevice.Open itself needs a real adapter and
// surface, a windowing concern this package stays out of). If log is
// non-nil its adapter info is logged immediately, the once-per-session
// "which GPU did we land on" diagnostic a real render backend would
// emit right before building its pipeline cache against the device.
func (e *Engine) AttachDevice(d *gpudevice.Device, log *slog.Logger) error {
	e.Device = d
	if log == nil {
		return nil
	}
	return d.LogInfo(log)
}

// syncPickIDs ensures every visible structure has a pick-id
// allocation sized to its element count, the "registration time"
// allocation spec.md §4.6 describes, then returns a lookup used by
// the rasterizer to stamp a pick id per drawn primitive.
func (e *Engine) syncPickIDs(structureKey string, elementCount int) []uint32 {
	offset, ok := e.Picks.Offset(structureKey)
	if ok {
		// Reallocate when the element count differs from the existing range.
		last, hit := e.Picks.Lookup(offset + uint32(elementCount) - 1)
		next, more := e.Picks.Lookup(offset + uint32(elementCount))
		ok = hit && last.StructureName == structureKey && last.LocalIndex == uint32(elementCount-1) &&
			!(more && next.StructureName == structureKey && next.LocalIndex == uint32(elementCount))
	}
	if !ok {
		var err error
		offset, err = e.Picks.Allocate(structureKey, structureKey, structureKey, uint32(elementCount))
		if err != nil {
			return nil
		}
	}
	ids := make([]uint32, elementCount)
	for i := range ids {
		ids[i] = offset + uint32(i)
	}
	return ids
}

// Render executes the opaque-plus-tone-map subset of spec.md §4.8's
// pass sequence (steps 1-3 and 10; see software.go) and
// returns the tone-mapped LDR image at the engine's current
// (possibly supersampled) render-target resolution, downsampled back
// to native size by box-filter averaging when SSAA > 1.
func (e *Engine) Render() ([]byte, error) {
	if e.Scene == nil {
		return nil, fmt.Errorf("engine: no scene bound")
	}
	e.fb.clear()
	e.Materials.Drain()

	visible := e.Scene.Visible()
	resolvePipelines(e.Pipelines, visible)

	vp := e.Camera.ViewProjectionMatrix()
	drawOpaque(e.fb, vp, visible, e.Scene.Planes, e.pickIDsFor)

	ldr := e.fb.toneMap(e.ToneMap.Exposure, e.ToneMap.WhiteLevel, e.ToneMap.Gamma)
	if e.ssaa == SSAANone {
		return ldr, nil
	}
	return downsample(ldr, e.fb.width, e.fb.height, int(e.ssaa)), nil
}

// pickIDsFor returns the pick ids assigned to each drawable element
// of s (points, triangles, or edges depending on kind), allocating
// them on first use.
func (e *Engine) pickIDsFor(s structure.Structure) []uint32 {
	count := elementCountOf(s)
	if count == 0 {
		return nil
	}
	return e.syncPickIDs(fmt.Sprintf("%T/%s", s, s.Name()), count)
}

// downsample box-filters an SSAA-resolution RGBA8 buffer down to
// native resolution, the CPU equivalent of spec.md §4.7's box-filter
// downsample pass.
func downsample(src []byte, srcW, srcH, k int) []byte {
	dstW, dstH := srcW/k, srcH/k
	out := make([]byte, dstW*dstH*4)
	for y := 0; y < dstH; y++ {
		for x := 0; x < dstW; x++ {
			var r, g, b int
			for sy := 0; sy < k; sy++ {
				for sx := 0; sx < k; sx++ {
					i := ((y*k+sy)*srcW + (x*k + sx)) * 4
					r += int(src[i])
					g += int(src[i+1])
					b += int(src[i+2])
				}
			}
			n := k * k
			o := (y*dstW + x) * 4
			out[o] = byte(r / n)
			out[o+1] = byte(g / n)
			out[o+2] = byte(b / n)
			out[o+3] = 255
		}
	}
	return out
}

// PickAt resolves the element under pixel (x, y) at native
// resolution, the synchronous "submit a copy, wait for the map"
// operation of spec.md §5. In the software path there is no GPU
// readback to wait on: pick ids are already resident in fb.pick from
// the most recent Render call, scaled to the current SSAA resolution.
func (e *Engine) PickAt(x, y int) (pick.Result, error) {
	if x < 0 || x >= e.width || y < 0 || y >= e.height {
		return pick.Result{}, fmt.Errorf("engine: pick coordinates (%d,%d) out of bounds", x, y)
	}
	sx, sy := x*int(e.ssaa), y*int(e.ssaa)
	if !e.fb.inBounds(sx, sy) {
		return pick.Result{}, fmt.Errorf("engine: pick framebuffer not rendered yet")
	}
	id := e.fb.pick[e.fb.index(sx, sy)]
	return e.Picks.Resolve(id), nil
}

// CaptureScreenshot renders at native resolution (no SSAA) and
// returns tightly packed RGBA8 bytes, per spec.md §4.8 step 12 and
// §6's "screenshot row-padding must be stripped" contract. The
// software path has no row-aligned staging buffer to strip in the
// first place, since it never leaves process memory.
func (e *Engine) CaptureScreenshot() ([]byte, error) {
	return e.RenderToImage(e.width, e.height)
}

// RenderToImage renders the scene at an explicit resolution,
// independent of the engine's current viewport size, and returns
// tightly packed native-resolution RGBA8 bytes (no SSAA applied).
func (e *Engine) RenderToImage(width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	if e.Scene == nil {
		return nil, fmt.Errorf("engine: no scene bound")
	}

	cam := e.Camera
	cam.Aspect = float32(width) / float32(height)
	fb := newFramebuffer(width, height)
	visible := e.Scene.Visible()
	resolvePipelines(e.Pipelines, visible)
	drawOpaque(fb, cam.ViewProjectionMatrix(), visible, e.Scene.Planes, e.pickIDsFor)
	return fb.toneMap(e.ToneMap.Exposure, e.ToneMap.WhiteLevel, e.ToneMap.Gamma), nil
}
