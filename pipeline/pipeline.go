// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package pipeline caches the GPU render and compute pipelines the
// engine draws with. Every pipeline in spec.md §4.5's table is
// created once, on first request, and kept for the life of the
// device; callers look pipelines up by a small, hashable key instead
// of holding onto pipeline handles themselves.
package pipeline

import (
	"fmt"
	"sync"

	"github.com/gogpu/geoviz/gpucore"
)

// Kind identifies one row of spec.md §4.5's pipeline table. Each Kind
// has a fixed topology, blend state, and depth state baked in — only
// the shader variant (e.g. which quantity is bound) can differ across
// pipelines sharing the same Kind, and that is handled by keying the
// cache on (Kind, Shader) rather than by Kind alone.
type Kind uint8

const (
	KindPointSphere Kind = iota
	KindSurfaceMesh
	KindSurfaceMeshPeel
	KindCompositePeelUnder
	KindCompositePeelOver
	KindPeelDepthUpdate
	KindCurveNetworkLine
	KindCurveNetworkTube
	KindVectorArrow
	KindVolumeGridCube
	KindIsosurface
	KindGroundPlane
	KindDepthToMask
	KindSSAO
	KindSSAOBlur
	KindToneMap
	KindSSAADownsample
	KindPick
)

func (k Kind) String() string {
	switch k {
	case KindPointSphere:
		return "point_sphere"
	case KindSurfaceMesh:
		return "surface_mesh"
	case KindSurfaceMeshPeel:
		return "surface_mesh_peel"
	case KindCompositePeelUnder:
		return "composite_peel_under"
	case KindCompositePeelOver:
		return "composite_peel_over"
	case KindPeelDepthUpdate:
		return "peel_depth_update"
	case KindCurveNetworkLine:
		return "curve_network_line"
	case KindCurveNetworkTube:
		return "curve_network_tube"
	case KindVectorArrow:
		return "vector_arrow"
	case KindVolumeGridCube:
		return "volume_grid_cube"
	case KindIsosurface:
		return "isosurface"
	case KindGroundPlane:
		return "ground_plane"
	case KindDepthToMask:
		return "depth_to_mask"
	case KindSSAO:
		return "ssao"
	case KindSSAOBlur:
		return "ssao_blur"
	case KindToneMap:
		return "tone_map"
	case KindSSAADownsample:
		return "ssaa_downsample"
	case KindPick:
		return "pick"
	default:
		return "unknown"
	}
}

// Topology mirrors the fixed primitive topology of a pipeline row.
type Topology uint8

const (
	TopologyTriangleList Topology = iota
	TopologyLineList
	TopologyFullscreenTriangle
)

// BlendMode mirrors one of spec.md §4.5's blend column entries.
type BlendMode uint8

const (
	BlendNone BlendMode = iota
	BlendPeelUnder               // OneMinusDstAlpha, One
	BlendPeelOver                // One, OneMinusSrcAlpha
	BlendMax                     // Max, R-channel only
)

// DepthMode mirrors the depth column.
type DepthMode uint8

const (
	DepthDisabled DepthMode = iota
	DepthLessWrite
	DepthLessNoWrite
	DepthStencilReflect
)

// key uniquely identifies a cached pipeline: the draw Kind plus the
// shader variant selected for it (e.g. a quantity-specific fragment
// shader bound to the otherwise-identical surface mesh pipeline).
type key struct {
	kind   Kind
	shader gpucore.ShaderModuleID
}

// layoutRow describes the fixed per-pipeline state spec.md §4.5 pins;
// it is informational (for validation and for the engine to build the
// matching render-pass/color-target descriptors) rather than an
// argument the caller supplies per Get call.
type layoutRow struct {
	Topology Topology
	Blend    BlendMode
	Depth    DepthMode
}

var rows = map[Kind]layoutRow{
	KindPointSphere:        {TopologyTriangleList, BlendNone, DepthLessWrite},
	KindSurfaceMesh:        {TopologyTriangleList, BlendNone, DepthLessWrite},
	KindSurfaceMeshPeel:    {TopologyTriangleList, BlendNone, DepthLessWrite},
	KindCompositePeelUnder: {TopologyFullscreenTriangle, BlendPeelUnder, DepthDisabled},
	KindCompositePeelOver:  {TopologyFullscreenTriangle, BlendPeelOver, DepthDisabled},
	KindPeelDepthUpdate:    {TopologyFullscreenTriangle, BlendMax, DepthDisabled},
	KindCurveNetworkLine:   {TopologyLineList, BlendNone, DepthLessWrite},
	KindCurveNetworkTube:   {TopologyTriangleList, BlendNone, DepthLessWrite},
	KindVectorArrow:        {TopologyTriangleList, BlendNone, DepthLessWrite},
	KindVolumeGridCube:     {TopologyTriangleList, BlendNone, DepthLessWrite},
	KindIsosurface:         {TopologyTriangleList, BlendNone, DepthLessWrite},
	KindGroundPlane:        {TopologyTriangleList, BlendNone, DepthStencilReflect},
	KindDepthToMask:        {TopologyFullscreenTriangle, BlendNone, DepthDisabled},
	KindSSAO:               {TopologyFullscreenTriangle, BlendNone, DepthDisabled},
	KindSSAOBlur:           {TopologyFullscreenTriangle, BlendNone, DepthDisabled},
	KindToneMap:            {TopologyFullscreenTriangle, BlendNone, DepthDisabled},
	KindSSAADownsample:     {TopologyFullscreenTriangle, BlendNone, DepthDisabled},
	KindPick:               {TopologyTriangleList, BlendNone, DepthLessWrite},
}

// Row returns the fixed topology/blend/depth state for a Kind.
func Row(k Kind) (Topology, BlendMode, DepthMode, bool) {
	r, ok := rows[k]
	return r.Topology, r.Blend, r.Depth, ok
}

// BindGroupSlot names one of the four conventional bind-group indices
// of spec.md §4.5.
type BindGroupSlot uint8

const (
	// SlotStructure carries camera uniforms (binding 0), structure
	// uniforms (binding 1), and geometry storage buffers (binding 2+).
	SlotStructure BindGroupSlot = iota
	// SlotSlicePlanes carries the slice-plane uniform array.
	SlotSlicePlanes
	// SlotMatcap carries the matcap material textures and sampler.
	SlotMatcap
	// SlotPeel carries the min-depth texture and sampler; only bound
	// by peel pipelines.
	SlotPeel
)

// Handle is an opaque reference to a cached, created pipeline.
type Handle uint64

// invalidHandle is the zero value, returned for lookups that miss.
const invalidHandle Handle = 0

// factory creates the GPU-side pipeline object for a Kind/shader
// combination. In the real engine this closes over the device and
// issues the backend's create-render-pipeline call; it is injected so
// Cache has no direct wgpu dependency and can be driven by tests with
// a stub factory.
type factory func(k Kind, shader gpucore.ShaderModuleID, layouts [4]gpucore.BindGroupLayoutID) (Handle, error)

// Cache lazily creates and memoizes pipelines, mirroring the
// double-checked-locking shape of the teacher's wgpu.PipelineCache:
// an RWMutex guards a map so concurrent Get calls for already-cached
// pipelines never block each other, and only a cache miss takes the
// write lock.
type Cache struct {
	mu      sync.RWMutex
	handles map[key]Handle
	layouts [4]gpucore.BindGroupLayoutID
	next    Handle
	create  factory
}

// NewCache returns an empty pipeline cache bound to the four
// conventional bind-group layouts. create is called once per distinct
// (Kind, shader) pair until it succeeds; a failed creation is not
// cached, so a later Get calls create again.
func NewCache(layouts [4]gpucore.BindGroupLayoutID, create factory) *Cache {
	return &Cache{
		handles: make(map[key]Handle),
		layouts: layouts,
		create:  create,
	}
}

// Get returns the cached pipeline for (k, shader), creating it on
// first request.
func (c *Cache) Get(k Kind, shader gpucore.ShaderModuleID) (Handle, error) {
	if _, ok := rows[k]; !ok {
		return invalidHandle, fmt.Errorf("pipeline: unknown kind %d", k)
	}

	ky := key{kind: k, shader: shader}

	c.mu.RLock()
	h, ok := c.handles[ky]
	c.mu.RUnlock()
	if ok {
		return h, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if h, ok = c.handles[ky]; ok {
		return h, nil
	}

	var err error
	if c.create != nil {
		h, err = c.create(k, shader, c.layouts)
	} else {
		c.next++
		h = c.next
	}
	if err != nil {
		return invalidHandle, fmt.Errorf("pipeline: create %s: %w", k, err)
	}
	c.handles[ky] = h
	return h, nil
}

// Count returns the number of distinct pipelines created so far.
func (c *Cache) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.handles)
}

// Layouts returns the four bind-group layouts this cache was built
// with, in SlotStructure..SlotPeel order.
func (c *Cache) Layouts() [4]gpucore.BindGroupLayoutID {
	return c.layouts
}

// WarmupEntry names one pipeline to pre-create via Warmup.
type WarmupEntry struct {
	Kind   Kind
	Shader gpucore.ShaderModuleID
}

// Warmup pre-creates pipelines for the given (Kind, shader) pairs, so
// the first frame that uses them does not pay pipeline-compilation
// stutter.
func (c *Cache) Warmup(entries []WarmupEntry) error {
	for _, e := range entries {
		if _, err := c.Get(e.Kind, e.Shader); err != nil {
			return err
		}
	}
	return nil
}
