// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package pick implements the flat global-id allocator and reverse
// lookup table behind spec.md §4.6's GPU picking contract, plus the
// row-alignment arithmetic for its single-texel readback.
package pick

import (
	"errors"
	"fmt"
	"sync"
)

// BackgroundID is the reserved id meaning "no element", returned for
// a pick miss.
const BackgroundID uint32 = 0

// maxGlobalID is the largest id a 24-bit global index can hold.
const maxGlobalID = 1<<24 - 1

// ErrIDSpaceExhausted is returned by Allocate when the 24-bit global
// id space is full.
var ErrIDSpaceExhausted = errors.New("pick: 24-bit global id space exhausted")

// Element identifies one pickable piece of geometry: a structure by
// name, a type tag distinguishing structure kinds that might
// otherwise collide on name, and the index of the element within that
// structure (a point, a triangle, a curve segment, ...).
type Element struct {
	TypeTag       string
	StructureName string
	LocalIndex    uint32
}

// Table assigns flat 24-bit global ids to elements at registration
// time and reverses the mapping for a pick readback, mirroring
// spec.md §4.6's "per-process counter with per-structure offset
// recorded" allocation model.
type Table struct {
	mu      sync.Mutex
	next    uint32 // next id to hand out; 0 is reserved for background
	offsets map[string]uint32
	entries map[uint32]Element
}

// NewTable returns an empty id table. next starts at 1 so 0 stays
// reserved for background.
func NewTable() *Table {
	return &Table{next: 1, offsets: make(map[string]uint32), entries: make(map[uint32]Element)}
}

// Allocate reserves count consecutive global ids for structureKey
// (typically "type_tag/structure_name") and returns the offset of the
// first id. Re-registering the same structureKey (e.g. after a
// topology change) replaces its prior allocation.
func (t *Table) Allocate(structureKey string, typeTag, structureName string, count uint32) (uint32, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if prevOffset, ok := t.offsets[structureKey]; ok {
		t.releaseLocked(prevOffset)
	}

	if count == 0 {
		delete(t.offsets, structureKey)
		return 0, nil
	}
	if uint64(t.next)+uint64(count) > maxGlobalID+1 {
		return 0, ErrIDSpaceExhausted
	}

	offset := t.next
	for i := uint32(0); i < count; i++ {
		t.entries[offset+i] = Element{TypeTag: typeTag, StructureName: structureName, LocalIndex: i}
	}
	t.next += count
	t.offsets[structureKey] = offset
	return offset, nil
}

// releaseLocked removes all entries previously allocated at offset.
// It scans forward from offset until it hits an id belonging to a
// different structure allocation or the end of the used range; this
// is a linear cost paid only on re-registration, not on every frame.
func (t *Table) releaseLocked(offset uint32) {
	for id := offset; id < t.next; id++ {
		e, ok := t.entries[id]
		if !ok {
			continue
		}
		if e.LocalIndex == 0 && id != offset {
			break
		}
		delete(t.entries, id)
	}
}

// Lookup translates a decoded global id back to the element it names.
// It returns false for BackgroundID or any id never allocated.
func (t *Table) Lookup(globalID uint32) (Element, bool) {
	if globalID == BackgroundID {
		return Element{}, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[globalID]
	return e, ok
}

// Offset returns the first global id allocated to structureKey.
func (t *Table) Offset(structureKey string) (uint32, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	o, ok := t.offsets[structureKey]
	return o, ok
}

// Result is the public return shape of a pick query per spec.md §6:
// the full 24-bit id, split into a 16-bit structure id and an 8-bit
// element index for API ergonomics, plus the resolved element.
type Result struct {
	GlobalID      uint32
	StructureID   uint16
	ElementIndex  uint16
	Element       Element
	Hit           bool
}

// Resolve decodes a raw global id into a Result, looking up the
// element in t. A BackgroundID or unknown id yields Hit == false.
func (t *Table) Resolve(globalID uint32) Result {
	e, ok := t.Lookup(globalID)
	return Result{
		GlobalID:     globalID,
		StructureID:  uint16(globalID & 0xFFFF),
		ElementIndex: uint16((globalID >> 16) & 0xFF),
		Element:      e,
		Hit:          ok,
	}
}

// RowAlignment is the GPU copy-to-buffer row alignment spec.md §4.6
// requires for the pick texture's single-texel readback.
const RowAlignment = 256

// AlignedBytesPerRow rounds width*bytesPerPixel up to the next
// multiple of RowAlignment, as required by a row-aligned
// texture-to-buffer copy.
func AlignedBytesPerRow(width int, bytesPerPixel int) (int, error) {
	if width <= 0 || bytesPerPixel <= 0 {
		return 0, fmt.Errorf("pick: invalid row size (width=%d, bytesPerPixel=%d)", width, bytesPerPixel)
	}
	unaligned := width * bytesPerPixel
	return (unaligned + RowAlignment - 1) / RowAlignment * RowAlignment, nil
}

// TexelOffset returns the byte offset of pixel (x, y) within a
// staging buffer whose rows are padded to alignedBytesPerRow.
func TexelOffset(x, y, alignedBytesPerRow, bytesPerPixel int) int {
	return y*alignedBytesPerRow + x*bytesPerPixel
}
