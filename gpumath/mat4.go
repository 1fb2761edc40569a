// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpumath

import "math"

// Mat4 is a 4x4 matrix stored column-major, matching the layout WGSL
// and every other GPU shading language expects for a mat4x4<f32>
// uniform. Element (row, col) lives at m[col*4+row].
type Mat4 [16]float32

// Identity returns the 4x4 identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// At returns element (row, col).
func (m Mat4) At(row, col int) float32 { return m[col*4+row] }

// Mul returns a*b (applies b first, then a, to a column vector).
func (a Mat4) Mul(b Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a.At(row, k) * b.At(k, col)
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// MulVec4 transforms v by m.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		X: m.At(0, 0)*v.X + m.At(0, 1)*v.Y + m.At(0, 2)*v.Z + m.At(0, 3)*v.W,
		Y: m.At(1, 0)*v.X + m.At(1, 1)*v.Y + m.At(1, 2)*v.Z + m.At(1, 3)*v.W,
		Z: m.At(2, 0)*v.X + m.At(2, 1)*v.Y + m.At(2, 2)*v.Z + m.At(2, 3)*v.W,
		W: m.At(3, 0)*v.X + m.At(3, 1)*v.Y + m.At(3, 2)*v.Z + m.At(3, 3)*v.W,
	}
}

// MulPoint transforms a point (implicit w=1) and divides by the
// resulting w when it is not 1 (perspective divide).
func (m Mat4) MulPoint(v Vec3) Vec3 {
	r := m.MulVec4(Vec4FromVec3(v, 1))
	if r.W != 0 && r.W != 1 {
		return Vec3{X: r.X / r.W, Y: r.Y / r.W, Z: r.Z / r.W}
	}
	return r.XYZ()
}

// MulDirection transforms a direction (implicit w=0); translation is
// not applied.
func (m Mat4) MulDirection(v Vec3) Vec3 {
	return m.MulVec4(Vec4FromVec3(v, 0)).XYZ()
}

// Translate returns a translation matrix.
func Translate(v Vec3) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

// ScaleMat returns a non-uniform scale matrix.
func ScaleMat(v Vec3) Mat4 {
	m := Identity()
	m[0], m[5], m[10] = v.X, v.Y, v.Z
	return m
}

// LookAt builds a right-handed view matrix.
func LookAt(eye, target, up Vec3) Mat4 {
	f := target.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)
	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}

// Perspective builds a right-handed perspective projection with depth
// range [0, 1] (WebGPU convention), fovY in radians.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := float32(1 / math.Tan(float64(fovY)/2))
	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = far / (near - far)
	m[11] = -1
	m[14] = (far * near) / (near - far)
	return m
}

// Orthographic builds a right-handed orthographic projection with depth
// range [0, 1], from symmetric half-extents and a near/far pair.
//
// Open question carried from the source (spec.md §9): the depth range
// passed in here is derived by the camera from the current
// camera-to-target distance plus far, clamped to a lower bound of
// ortho_scale*100. That clamp mitigates but does not guarantee no
// near-plane clipping when panning close to geometry; this function
// does not second-guess the caller's near/far choice.
func Orthographic(halfWidth, halfHeight, near, far float32) Mat4 {
	var m Mat4
	m[0] = 1 / halfWidth
	m[5] = 1 / halfHeight
	m[10] = -1 / (far - near)
	m[14] = -near / (far - near)
	m[15] = 1
	return m
}

// Transpose returns the transpose of m.
func (m Mat4) Transpose() Mat4 {
	var out Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out[row*4+col] = m[col*4+row]
		}
	}
	return out
}
