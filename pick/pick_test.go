// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pick

import "testing"

func TestAllocateStartsAtOneNotZero(t *testing.T) {
	tbl := NewTable()
	offset, err := tbl.Allocate("surfacemesh/bunny", "surfacemesh", "bunny", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if offset != 1 {
		t.Fatalf("first allocation should start at id 1 (0 reserved for background), got %d", offset)
	}
}

func TestLookupRoundTrip(t *testing.T) {
	tbl := NewTable()
	offset, err := tbl.Allocate("pointcloud/cloud", "pointcloud", "cloud", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e, ok := tbl.Lookup(offset + 3)
	if !ok {
		t.Fatalf("expected a hit for an allocated id")
	}
	if e.StructureName != "cloud" || e.LocalIndex != 3 {
		t.Fatalf("unexpected element: %+v", e)
	}
}

func TestLookupBackgroundMisses(t *testing.T) {
	tbl := NewTable()
	if _, ok := tbl.Lookup(BackgroundID); ok {
		t.Fatalf("background id should never resolve to an element")
	}
}

func TestLookupUnallocatedMisses(t *testing.T) {
	tbl := NewTable()
	_, _ = tbl.Allocate("surfacemesh/a", "surfacemesh", "a", 3)
	if _, ok := tbl.Lookup(9999); ok {
		t.Fatalf("expected a miss for an id never allocated")
	}
}

func TestReallocateReplacesPriorRange(t *testing.T) {
	tbl := NewTable()
	off1, err := tbl.Allocate("surfacemesh/a", "surfacemesh", "a", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = tbl.Allocate("surfacemesh/b", "surfacemesh", "b", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	off1b, err := tbl.Allocate("surfacemesh/a", "surfacemesh", "a", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := tbl.Lookup(off1 + 2); ok {
		t.Fatalf("old allocation's higher indices should be released")
	}
	if e, ok := tbl.Lookup(off1b); !ok || e.StructureName != "a" {
		t.Fatalf("new allocation for the same key should resolve")
	}
}

func TestResolveSplitsIDForAPIErgonomics(t *testing.T) {
	tbl := NewTable()
	offset, _ := tbl.Allocate("curvenetwork/net", "curvenetwork", "net", 1)
	r := tbl.Resolve(offset)
	if !r.Hit {
		t.Fatalf("expected hit")
	}
	if r.StructureID != uint16(offset&0xFFFF) {
		t.Fatalf("unexpected structure id split: %+v", r)
	}
}

func TestResolveBackgroundIsMiss(t *testing.T) {
	tbl := NewTable()
	r := tbl.Resolve(BackgroundID)
	if r.Hit {
		t.Fatalf("background resolve should never hit")
	}
}

func TestAlignedBytesPerRowRoundsUpTo256(t *testing.T) {
	got, err := AlignedBytesPerRow(1, 4) // 4 bytes, rounds up to 256
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 256 {
		t.Fatalf("expected 256-byte aligned row, got %d", got)
	}
}

func TestAlignedBytesPerRowExactMultipleUnchanged(t *testing.T) {
	got, err := AlignedBytesPerRow(64, 4) // exactly 256 bytes
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 256 {
		t.Fatalf("expected exact 256-byte row to stay 256, got %d", got)
	}
}

func TestAlignedBytesPerRowRejectsNonPositive(t *testing.T) {
	if _, err := AlignedBytesPerRow(0, 4); err == nil {
		t.Fatalf("expected error for zero width")
	}
}

func TestTexelOffsetUsesAlignedStride(t *testing.T) {
	off := TexelOffset(2, 3, 512, 4)
	want := 3*512 + 2*4
	if off != want {
		t.Fatalf("got %d, want %d", off, want)
	}
}
