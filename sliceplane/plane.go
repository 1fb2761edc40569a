// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package sliceplane implements the slice-plane clipping model of
// spec.md §4.2: up to MaxPlanes planes, each defined by an origin and
// unit normal, compiled into a fixed-size uniform array consumed by
// every surface-shading fragment shader.
package sliceplane

import (
	"errors"
	"fmt"

	"github.com/gogpu/geoviz/gpumath"
)

// MaxPlanes is the compile-time cap on the number of simultaneously
// active slice planes. Shaders expect exactly this many uniform slots;
// unused slots are marked disabled rather than omitted.
const MaxPlanes = 4

// ErrTooManyPlanes is returned when registering a plane would exceed
// MaxPlanes.
var ErrTooManyPlanes = errors.New("sliceplane: exceeds the maximum of 4 active planes")

// Plane is a single clipping plane: points p with (p-Origin)·Normal >= 0
// are kept, the rest are discarded.
type Plane struct {
	Name string

	Origin gpumath.Vec3
	Normal gpumath.Vec3

	Enabled    bool
	DrawPlane  bool
	DrawWidget bool

	Color        gpumath.RGBA
	Transparency float32
	HalfSize     float32
}

// NewPlane returns a plane through origin with the given (not
// necessarily normalized) normal, enabled, with a default visualization
// size.
func NewPlane(name string, origin, normal gpumath.Vec3) *Plane {
	return &Plane{
		Name:         name,
		Origin:       origin,
		Normal:       normal.Normalize(),
		Enabled:      true,
		DrawPlane:    true,
		DrawWidget:   false,
		Color:        gpumath.RGBA{R: 0.8, G: 0.8, B: 0.8, A: 0.5},
		Transparency: 0.5,
		HalfSize:     1,
	}
}

// SignedDistance returns (p-Origin)·Normal.
func (p *Plane) SignedDistance(pt gpumath.Vec3) float32 {
	return pt.Sub(p.Origin).Dot(p.Normal)
}

// IsKept reports whether pt survives this plane's clip test. A disabled
// plane keeps everything.
func (p *Plane) IsKept(pt gpumath.Vec3) bool {
	if !p.Enabled {
		return true
	}
	return p.SignedDistance(pt) >= 0
}

// Project returns the orthogonal projection of pt onto the plane.
func (p *Plane) Project(pt gpumath.Vec3) gpumath.Vec3 {
	d := p.SignedDistance(pt)
	return pt.Sub(p.Normal.Scale(d))
}

// Basis returns an arbitrary orthonormal basis {u, v, n} for the plane,
// where n is the plane normal — used to orient the visualization quad.
func (p *Plane) Basis() (u, v, n gpumath.Vec3) {
	n = p.Normal
	// Pick a reference axis not parallel to n.
	ref := gpumath.Vec3{X: 1}
	if abs32(n.X) > 0.9 {
		ref = gpumath.Vec3{Y: 1}
	}
	u = n.Cross(ref).Normalize()
	v = n.Cross(u)
	return u, v, n
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// ToTransform encodes the plane as a 4x4 transform whose translation is
// Origin and whose third column (z axis) is Normal — used so the plane
// can be manipulated by the same gizmo code that moves structures.
func (p *Plane) ToTransform() gpumath.Mat4 {
	u, v, n := p.Basis()
	return gpumath.Mat4{
		u.X, u.Y, u.Z, 0,
		v.X, v.Y, v.Z, 0,
		n.X, n.Y, n.Z, 0,
		p.Origin.X, p.Origin.Y, p.Origin.Z, 1,
	}
}

// FromTransform recovers a plane's origin and normal from a transform
// produced by ToTransform (or an externally supplied gizmo transform
// with the same column convention).
func FromTransform(name string, m gpumath.Mat4) *Plane {
	origin := gpumath.Vec3{X: m[12], Y: m[13], Z: m[14]}
	normal := gpumath.Vec3{X: m[8], Y: m[9], Z: m[10]}.Normalize()
	return NewPlane(name, origin, normal)
}

// Uniform is the GPU-uniform-shaped representation of a single plane
// slot, matching the layout every surface-shading shader expects.
type Uniform struct {
	Origin  gpumath.Vec3
	Normal  gpumath.Vec3
	Enabled uint32
	_       [3]uint32 // pad to 16-byte alignment
}

// UniformSet is the fixed-size array of plane uniforms uploaded once
// per frame, per spec.md §4.2.
type UniformSet [MaxPlanes]Uniform

// Set is an ordered, capacity-limited collection of planes.
type Set struct {
	planes []*Plane
}

// NewSet returns an empty plane set.
func NewSet() *Set { return &Set{} }

// Add registers a new plane. Returns ErrTooManyPlanes if the set is
// already at capacity (spec.md §7: usage error, fail fast).
func (s *Set) Add(p *Plane) error {
	if len(s.planes) >= MaxPlanes {
		return fmt.Errorf("sliceplane: add %q: %w", p.Name, ErrTooManyPlanes)
	}
	s.planes = append(s.planes, p)
	return nil
}

// Remove deletes the named plane, if present.
func (s *Set) Remove(name string) {
	for i, p := range s.planes {
		if p.Name == name {
			s.planes = append(s.planes[:i], s.planes[i+1:]...)
			return
		}
	}
}

// Get returns the named plane, or nil if not found.
func (s *Set) Get(name string) *Plane {
	for _, p := range s.planes {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// All returns the planes in registration order.
func (s *Set) All() []*Plane { return s.planes }

// Enabled returns only the enabled planes.
func (s *Set) Enabled() []*Plane {
	out := make([]*Plane, 0, len(s.planes))
	for _, p := range s.planes {
		if p.Enabled {
			out = append(out, p)
		}
	}
	return out
}

// IsKept reports whether pt survives every enabled plane in the set.
func (s *Set) IsKept(pt gpumath.Vec3) bool {
	for _, p := range s.planes {
		if !p.IsKept(pt) {
			return false
		}
	}
	return true
}

// CompileUniforms produces the fixed-size uniform array for upload,
// zeroing / disabling unused slots, per spec.md's "shaders expect
// exactly that cap's worth of uniform slots" invariant.
func (s *Set) CompileUniforms() UniformSet {
	var out UniformSet
	for i := 0; i < MaxPlanes && i < len(s.planes); i++ {
		p := s.planes[i]
		enabled := uint32(0)
		if p.Enabled {
			enabled = 1
		}
		out[i] = Uniform{Origin: p.Origin, Normal: p.Normal, Enabled: enabled}
	}
	return out
}
