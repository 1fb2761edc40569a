// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package cameraview implements the camera-view structure of
// spec.md §3: a widget visualizing another camera's frustum as a
// wireframe, useful for comparing multiple captured viewpoints in one
// scene.
package cameraview

import (
	"fmt"
	"math"

	"github.com/gogpu/geoviz/gpumath"
	"github.com/gogpu/geoviz/structure"
)

// CameraView draws the frustum of a pinhole camera defined by a
// view-space-to-world transform and perspective parameters.
type CameraView struct {
	name      string
	transform gpumath.Mat4
	enabled   bool
	dirty     bool

	FovY, Aspect, Near, Far float32
	Color                   gpumath.RGB

	quantities structure.QuantitySet
}

// New returns a camera-view widget. view is the camera's world
// transform (camera-to-world); fovY is in radians.
func New(name string, view gpumath.Mat4, fovY, aspect, near, far float32) *CameraView {
	return &CameraView{
		name:      name,
		transform: view,
		enabled:   true,
		dirty:     true,
		FovY:      fovY,
		Aspect:    aspect,
		Near:      near,
		Far:       far,
		Color:     gpumath.RGB{R: 0.9, G: 0.9, B: 0.2},
	}
}

func (c *CameraView) Name() string             { return c.name }
func (c *CameraView) Domain() structure.Domain { return structure.DomainCameraView }
func (c *CameraView) Transform() gpumath.Mat4  { return c.transform }
func (c *CameraView) SetTransform(m gpumath.Mat4) {
	c.transform = m
	c.dirty = true
}
func (c *CameraView) Enabled() bool     { return c.enabled }
func (c *CameraView) SetEnabled(e bool) { c.enabled = e }
func (c *CameraView) Dirty() bool       { return c.dirty }
func (c *CameraView) MarkClean()        { c.dirty = false }

// FrustumCorners returns the 8 corners of the frustum (4 at Near, 4 at
// Far) in the camera-view's own local space, z looking down -Z.
func (c *CameraView) FrustumCorners() [8]gpumath.Vec3 {
	var corners [8]gpumath.Vec3
	halfFovTan := float32(math.Tan(float64(c.FovY / 2)))
	for i, depth := range []float32{c.Near, c.Far} {
		h := halfFovTan * depth
		w := h * c.Aspect
		base := i * 4
		corners[base+0] = gpumath.Vec3{X: -w, Y: -h, Z: -depth}
		corners[base+1] = gpumath.Vec3{X: w, Y: -h, Z: -depth}
		corners[base+2] = gpumath.Vec3{X: w, Y: h, Z: -depth}
		corners[base+3] = gpumath.Vec3{X: -w, Y: h, Z: -depth}
	}
	return corners
}

func (c *CameraView) BoundingBox() gpumath.Box3 {
	b := gpumath.EmptyBox3()
	for _, corner := range c.FrustumCorners() {
		b = b.Union(corner)
	}
	return b.Transform(c.transform)
}

func (c *CameraView) Quantities() []structure.Quantity { return c.quantities.List() }
func (c *CameraView) AddQuantity(q structure.Quantity) error {
	if q.Domain() != structure.DomainCameraView {
		return fmt.Errorf("cameraview: quantity %q belongs to domain %v, not camera_view", q.Name(), q.Domain())
	}
	return c.quantities.Add(q)
}
func (c *CameraView) RemoveQuantity(name string) { c.quantities.Remove(name) }
