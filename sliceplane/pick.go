// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sliceplane

import "github.com/gogpu/geoviz/gpumath"

// Ray is a parametric ray used for CPU-side picking, per spec.md §4.6:
// slice-plane picking is a pure CPU ray-quad test in the click handler,
// never a GPU pass.
type Ray struct {
	Origin, Direction gpumath.Vec3
}

// IntersectQuad tests the ray against the plane's axis-aligned
// visualization quad (half-size HalfSize, centered at Origin, oriented
// by Basis()). Returns the hit point and true if the ray hits the quad
// in front of the origin.
func (p *Plane) IntersectQuad(r Ray) (gpumath.Vec3, bool) {
	denom := r.Direction.Dot(p.Normal)
	if denom == 0 {
		return gpumath.Vec3{}, false
	}
	t := p.Origin.Sub(r.Origin).Dot(p.Normal) / denom
	if t < 0 {
		return gpumath.Vec3{}, false
	}
	hit := r.Origin.Add(r.Direction.Scale(t))
	u, v, _ := p.Basis()
	local := hit.Sub(p.Origin)
	lu := local.Dot(u)
	lv := local.Dot(v)
	if lu < -p.HalfSize || lu > p.HalfSize || lv < -p.HalfSize || lv > p.HalfSize {
		return gpumath.Vec3{}, false
	}
	return hit, true
}

// PickResult identifies which visible, plane-drawing plane a ray hit
// first.
type PickResult struct {
	Plane *Plane
	Point gpumath.Vec3
	T     float32
}

// Pick tests r against every enabled, DrawWidget-or-DrawPlane plane in
// the set and returns the closest hit, if any.
func (s *Set) Pick(r Ray) (PickResult, bool) {
	var best PickResult
	found := false
	for _, p := range s.planes {
		if !p.Enabled || (!p.DrawPlane && !p.DrawWidget) {
			continue
		}
		hit, ok := p.IntersectQuad(r)
		if !ok {
			continue
		}
		t := hit.Sub(r.Origin).Length()
		if !found || t < best.T {
			best = PickResult{Plane: p, Point: hit, T: t}
			found = true
		}
	}
	return best, found
}
