// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package colormap implements the scalar-to-color mapping used by
// every scalar quantity, per spec.md §4.4: a named, sorted list of
// color stops sampled continuously or baked into a fixed-size lookup
// texture.
package colormap

import (
	"sort"

	"github.com/gogpu/geoviz/gpumath"
)

// Stop is a color at a specific position in a colormap, 0 at one end
// and 1 at the other.
type Stop struct {
	Offset float32
	Color  gpumath.RGB
}

// Map is an immutable, sorted sequence of color stops.
type Map struct {
	Name  string
	stops []Stop
}

// New returns a Map from the given stops, sorted by offset. Stops need
// not be pre-sorted or deduplicated by the caller.
func New(name string, stops []Stop) *Map {
	sorted := make([]Stop, len(stops))
	copy(sorted, stops)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })
	return &Map{Name: name, stops: sorted}
}

// Sample returns the linearly interpolated color at t, clamping t to
// [0, 1] (colormaps have no extend mode — callers normalize their
// data range before sampling).
func (m *Map) Sample(t float32) gpumath.RGB {
	if len(m.stops) == 0 {
		return gpumath.RGB{}
	}
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	if len(m.stops) == 1 {
		return m.stops[0].Color
	}

	idx := sort.Search(len(m.stops), func(i int) bool { return m.stops[i].Offset >= t })
	if idx == 0 {
		return m.stops[0].Color
	}
	if idx >= len(m.stops) {
		return m.stops[len(m.stops)-1].Color
	}
	a, b := m.stops[idx-1], m.stops[idx]
	if b.Offset == a.Offset {
		return a.Color
	}
	localT := (t - a.Offset) / (b.Offset - a.Offset)
	return a.Color.Lerp(b.Color, localT)
}

// Baked is a fixed-256-entry lookup texture row, the representation
// the renderer uploads once per colormap and indexes with a single
// texture fetch per fragment.
type Baked [256]gpumath.RGBA8

// Bake samples the map at 256 evenly spaced points and quantizes each
// to 8 bits per channel with alpha fixed at 255.
func (m *Map) Bake() Baked {
	var out Baked
	for i := 0; i < 256; i++ {
		t := float32(i) / 255
		out[i] = m.Sample(t).ToRGBA8()
	}
	return out
}

func stop(offset, r, g, b float32) Stop {
	return Stop{Offset: offset, Color: gpumath.RGB{R: r, G: g, B: b}}
}

// Builtin colormaps, grounded in the standard set every scientific
// visualization tool ships (matplotlib-compatible viridis/coolwarm,
// ColorBrewer-derived spectral/reds/blues, and jet for compatibility
// with legacy datasets).
var builtins = map[string]*Map{
	"viridis": New("viridis", []Stop{
		stop(0.0, 0.267, 0.004, 0.329),
		stop(0.25, 0.229, 0.322, 0.545),
		stop(0.5, 0.128, 0.567, 0.551),
		stop(0.75, 0.369, 0.788, 0.383),
		stop(1.0, 0.993, 0.906, 0.144),
	}),
	"coolwarm": New("coolwarm", []Stop{
		stop(0.0, 0.230, 0.299, 0.754),
		stop(0.5, 0.865, 0.865, 0.865),
		stop(1.0, 0.706, 0.016, 0.150),
	}),
	"spectral": New("spectral", []Stop{
		stop(0.0, 0.620, 0.004, 0.259),
		stop(0.25, 0.957, 0.427, 0.263),
		stop(0.5, 1.0, 1.0, 0.749),
		stop(0.75, 0.4, 0.761, 0.647),
		stop(1.0, 0.369, 0.310, 0.635),
	}),
	"reds": New("reds", []Stop{
		stop(0.0, 1.0, 0.961, 0.941),
		stop(1.0, 0.404, 0.0, 0.051),
	}),
	"blues": New("blues", []Stop{
		stop(0.0, 0.969, 0.984, 1.0),
		stop(1.0, 0.031, 0.188, 0.420),
	}),
	"jet": New("jet", []Stop{
		stop(0.0, 0.0, 0.0, 0.5),
		stop(0.125, 0.0, 0.0, 1.0),
		stop(0.375, 0.0, 1.0, 1.0),
		stop(0.625, 1.0, 1.0, 0.0),
		stop(0.875, 1.0, 0.0, 0.0),
		stop(1.0, 0.5, 0.0, 0.0),
	}),
}

// Lookup returns a builtin colormap by name, or nil if unknown.
func Lookup(name string) *Map { return builtins[name] }

// Names returns the builtin colormap names, sorted.
func Names() []string {
	out := make([]string, 0, len(builtins))
	for k := range builtins {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
