// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpumath

import "math"

// Box3 is an axis-aligned bounding box. A well-formed Box3 has Min
// components no greater than the corresponding Max components.
type Box3 struct {
	Min, Max Vec3
}

// EmptyBox3 returns a box that contains nothing; the first point
// merged into it becomes both Min and Max.
func EmptyBox3() Box3 {
	inf := float32(math.Inf(1))
	return Box3{
		Min: Vec3{X: inf, Y: inf, Z: inf},
		Max: Vec3{X: -inf, Y: -inf, Z: -inf},
	}
}

// IsEmpty reports whether the box has never been extended with a point.
func (b Box3) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Union returns the smallest box containing both b and p.
func (b Box3) Union(p Vec3) Box3 {
	return Box3{Min: MinElem(b.Min, p), Max: MaxElem(b.Max, p)}
}

// Merge returns the smallest box containing both b and o.
func (b Box3) Merge(o Box3) Box3 {
	if o.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return o
	}
	return Box3{Min: MinElem(b.Min, o.Min), Max: MaxElem(b.Max, o.Max)}
}

// Corners returns the eight corners of the box.
func (b Box3) Corners() [8]Vec3 {
	return [8]Vec3{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}
}

// Transform returns the AABB of the box's eight corners after applying
// m — conservative, per spec.md's bounding-box invariant.
func (b Box3) Transform(m Mat4) Box3 {
	if b.IsEmpty() {
		return b
	}
	out := EmptyBox3()
	for _, c := range b.Corners() {
		out = out.Union(m.MulPoint(c))
	}
	return out
}

// Diagonal returns the length of the box's diagonal — the scene
// length-scale per spec.md §3.
func (b Box3) Diagonal() float32 {
	if b.IsEmpty() {
		return 0
	}
	return b.Max.Sub(b.Min).Length()
}

// Center returns the box's center point.
func (b Box3) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}
