// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package structure

import (
	"math"
	"testing"
)

type fakeQuantity struct {
	name     string
	domain   Domain
	category Category
	enabled  bool
}

func (f *fakeQuantity) Name() string         { return f.name }
func (f *fakeQuantity) Domain() Domain       { return f.domain }
func (f *fakeQuantity) Category() Category   { return f.category }
func (f *fakeQuantity) Enabled() bool        { return f.enabled }
func (f *fakeQuantity) SetEnabled(e bool)    { f.enabled = e }

func TestQuantitySetAddRejectsDuplicateName(t *testing.T) {
	var s QuantitySet
	q1 := &fakeQuantity{name: "temperature", category: CategoryScalar, enabled: true}
	q2 := &fakeQuantity{name: "temperature", category: CategoryScalar, enabled: true}
	if err := s.Add(q1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Add(q2); err != ErrDuplicateQuantity {
		t.Fatalf("expected ErrDuplicateQuantity, got %v", err)
	}
}

func TestQuantitySetFirstAddedBecomesActive(t *testing.T) {
	var s QuantitySet
	q := &fakeQuantity{name: "pressure", category: CategoryScalar, enabled: true}
	_ = s.Add(q)
	if s.Active(CategoryScalar) != q {
		t.Fatalf("first scalar quantity should become active automatically")
	}
}

func TestQuantitySetSetActiveRejectsWrongCategory(t *testing.T) {
	var s QuantitySet
	scalar := &fakeQuantity{name: "s", category: CategoryScalar}
	vector := &fakeQuantity{name: "v", category: CategoryVector}
	_ = s.Add(scalar)
	_ = s.Add(vector)
	if s.SetActive(CategoryScalar, "v") {
		t.Fatalf("SetActive should reject a name from a different category")
	}
}

func TestQuantitySetRemoveClearsActive(t *testing.T) {
	var s QuantitySet
	q := &fakeQuantity{name: "s", category: CategoryScalar}
	_ = s.Add(q)
	s.Remove("s")
	if s.Active(CategoryScalar) != nil {
		t.Fatalf("removing the active quantity should clear the active slot")
	}
	if s.Get("s") != nil {
		t.Fatalf("removed quantity should no longer be retrievable")
	}
}

func TestAutoRangeSkipsNaN(t *testing.T) {
	lo, hi := AutoRange([]float64{1, math.NaN(), -3, 5, math.NaN()})
	if lo != -3 || hi != 5 {
		t.Fatalf("got [%v, %v], want [-3, 5]", lo, hi)
	}
}

func TestAutoRangeAllNaNReturnsZero(t *testing.T) {
	lo, hi := AutoRange([]float64{math.NaN(), math.NaN()})
	if lo != 0 || hi != 0 {
		t.Fatalf("got [%v, %v], want [0, 0]", lo, hi)
	}
}

func TestNormalizeDegenerateRange(t *testing.T) {
	if got := Normalize(5, 3, 3); got != 0.5 {
		t.Fatalf("degenerate range should normalize to 0.5, got %v", got)
	}
}

func TestNormalizeClamps(t *testing.T) {
	if got := Normalize(-10, 0, 10); got != 0 {
		t.Fatalf("below-range value should clamp to 0, got %v", got)
	}
	if got := Normalize(20, 0, 10); got != 1 {
		t.Fatalf("above-range value should clamp to 1, got %v", got)
	}
}
