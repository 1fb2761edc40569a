// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package colormap

import "testing"

func TestSampleClampsAndEndpoints(t *testing.T) {
	m := Lookup("viridis")
	if m == nil {
		t.Fatalf("viridis should be a builtin")
	}
	lo := m.Sample(-1)
	if lo != m.Sample(0) {
		t.Fatalf("t<0 should clamp to t=0")
	}
	hi := m.Sample(2)
	if hi != m.Sample(1) {
		t.Fatalf("t>1 should clamp to t=1")
	}
}

func TestSampleMonotoneInterpolation(t *testing.T) {
	m := New("two-stop", []Stop{
		stop(0, 0, 0, 0),
		stop(1, 1, 1, 1),
	})
	mid := m.Sample(0.5)
	if mid.R < 0.49 || mid.R > 0.51 {
		t.Fatalf("midpoint of black->white should be ~0.5, got %v", mid.R)
	}
}

func TestBakeProducesOpaqueRow(t *testing.T) {
	m := Lookup("coolwarm")
	baked := m.Bake()
	if len(baked) != 256 {
		t.Fatalf("baked table should have 256 entries, got %d", len(baked))
	}
	for i, c := range baked {
		if c.A != 255 {
			t.Fatalf("entry %d alpha = %d, want 255", i, c.A)
		}
	}
	first := baked[0]
	last := baked[255]
	if first == last {
		t.Fatalf("coolwarm endpoints should differ")
	}
}

func TestNamesIncludesAllBuiltins(t *testing.T) {
	names := Names()
	want := map[string]bool{"viridis": true, "coolwarm": true, "spectral": true, "reds": true, "blues": true, "jet": true}
	if len(names) != len(want) {
		t.Fatalf("got %d builtin names, want %d", len(names), len(want))
	}
	for _, n := range names {
		if !want[n] {
			t.Fatalf("unexpected builtin colormap %q", n)
		}
	}
}

func TestLookupUnknownReturnsNil(t *testing.T) {
	if Lookup("does-not-exist") != nil {
		t.Fatalf("unknown colormap should return nil")
	}
}
