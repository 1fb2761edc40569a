// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpumath provides the column-major, GPU-alignment-friendly
// math primitives shared by every other package in geoviz: 3/4-vectors,
// 4x4 matrices and axis-aligned bounding boxes.
//
// Types here follow the layout used by GPU uniform buffers: Vec3 carries
// a trailing padding field so a slice of Vec3 matches a WGSL array of
// vec3<f32> under std140/std430 rules, the same convention used by
// soypat/glgl's ms3.Vec.
package gpumath

import "math"

// Vec3 is a 3D vector stored as 4 float32s. The trailing field pads the
// type to 16 bytes so it can be uploaded directly into a GPU storage or
// uniform buffer without repacking.
type Vec3 struct {
	X, Y, Z float32
	_       float32
}

// NewVec3 builds a Vec3 from three components.
func NewVec3(x, y, z float32) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// Add returns a+b.
func (a Vec3) Add(b Vec3) Vec3 { return Vec3{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z} }

// Sub returns a-b.
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z} }

// Scale returns a*s.
func (a Vec3) Scale(s float32) Vec3 { return Vec3{X: a.X * s, Y: a.Y * s, Z: a.Z * s} }

// Dot returns the dot product of a and b.
func (a Vec3) Dot(b Vec3) float32 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

// Cross returns the cross product a x b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// Length returns the Euclidean norm of a.
func (a Vec3) Length() float32 {
	return float32(math.Sqrt(float64(a.Dot(a))))
}

// Normalize returns a unit vector in the direction of a. Zero-length
// vectors are returned unchanged (spec: "zero-length vectors skip
// normalization").
func (a Vec3) Normalize() Vec3 {
	l := a.Length()
	if l == 0 {
		return a
	}
	return a.Scale(1 / l)
}

// Lerp linearly interpolates between a and b by t.
func (a Vec3) Lerp(b Vec3, t float32) Vec3 {
	return Vec3{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
}

// MinElem returns the component-wise minimum of a and b.
func MinElem(a, b Vec3) Vec3 {
	return Vec3{X: minF(a.X, b.X), Y: minF(a.Y, b.Y), Z: minF(a.Z, b.Z)}
}

// MaxElem returns the component-wise maximum of a and b.
func MaxElem(a, b Vec3) Vec3 {
	return Vec3{X: maxF(a.X, b.X), Y: maxF(a.Y, b.Y), Z: maxF(a.Z, b.Z)}
}

func minF(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// Vec4 is a homogeneous 4-component vector.
type Vec4 struct {
	X, Y, Z, W float32
}

// NewVec4 builds a Vec4 from four components.
func NewVec4(x, y, z, w float32) Vec4 { return Vec4{X: x, Y: y, Z: z, W: w} }

// Vec4FromVec3 lifts a Vec3 to homogeneous coordinates with the given w.
func Vec4FromVec3(v Vec3, w float32) Vec4 { return Vec4{X: v.X, Y: v.Y, Z: v.Z, W: w} }

// XYZ drops the w component.
func (v Vec4) XYZ() Vec3 { return Vec3{X: v.X, Y: v.Y, Z: v.Z} }
