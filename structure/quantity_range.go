// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package structure

import "math"

// AutoRange scans values and returns [min, max], skipping NaN entries
// per spec.md §8. If every value is NaN (or values is empty), it
// returns [0, 0] rather than propagating NaN into the colormap.
func AutoRange(values []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 0
	}
	return lo, hi
}

// Normalize maps v into [0, 1] given the range [lo, hi], clamping and
// mapping a degenerate (lo == hi) range to the constant 0.5, and
// mapping NaN to 0.5 so it renders as the colormap midpoint rather
// than a clamp artifact.
func Normalize(v, lo, hi float64) float64 {
	if math.IsNaN(v) || hi == lo {
		return 0.5
	}
	t := (v - lo) / (hi - lo)
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
