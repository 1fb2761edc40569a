// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package engine

import "github.com/gogpu/geoviz/gpumath"

// ProjectionMode selects how Camera.ProjectionMatrix projects world
// space onto the viewport.
type ProjectionMode uint8

const (
	ProjectionPerspective ProjectionMode = iota
	ProjectionOrthographic
)

// Camera holds the view parameters spec.md §4.7 names: a right-handed
// look-at view and either a right-handed perspective or a
// symmetric-extent orthographic projection, both with a WebGPU
// [0,1] depth range.
type Camera struct {
	Position, Target, Up gpumath.Vec3
	FovY, Aspect         float32
	Near, Far            float32
	Mode                 ProjectionMode
	OrthoScale           float32
}

// NewCamera returns a perspective camera looking from position at
// target, with sane defaults for fov/near/far/ortho_scale.
func NewCamera(position, target gpumath.Vec3) Camera {
	return Camera{
		Position:   position,
		Target:     target,
		Up:         gpumath.Vec3{Y: 1},
		FovY:       0.7853982, // pi/4
		Aspect:     1,
		Near:       0.01,
		Far:        1000,
		Mode:       ProjectionPerspective,
		OrthoScale: 1,
	}
}

// ViewMatrix returns the right-handed look-at view matrix.
func (c Camera) ViewMatrix() gpumath.Mat4 {
	return gpumath.LookAt(c.Position, c.Target, c.Up)
}

// ProjectionMatrix returns the perspective or orthographic projection
// per c.Mode. The orthographic half-extents are ortho_scale*aspect by
// ortho_scale, per spec.md §4.7; its depth range encloses the current
// camera-target distance plus Far so panning doesn't need a manual
// near/far retune, the same derivation gpumath.Orthographic's doc
// comment calls out as an open question it does not resolve itself.
func (c Camera) ProjectionMatrix() gpumath.Mat4 {
	if c.Mode == ProjectionOrthographic {
		halfH := c.OrthoScale
		halfW := c.OrthoScale * c.Aspect
		dist := c.Target.Sub(c.Position).Length()
		far := dist + c.Far
		near := c.Near
		if far < c.OrthoScale*100 {
			far = c.OrthoScale * 100
		}
		return gpumath.Orthographic(halfW, halfH, near, far)
	}
	return gpumath.Perspective(c.FovY, c.Aspect, c.Near, c.Far)
}

// ViewProjectionMatrix returns ProjectionMatrix() * ViewMatrix().
func (c Camera) ViewProjectionMatrix() gpumath.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}
