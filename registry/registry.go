// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package registry holds the scene-wide state a host owns across
// frames: the flat structure collection, the slice-plane set, named
// groups, and the aggregate bounding box / length scale derived from
// them. Per spec.md §9's redesign flag, this is an explicit value a
// host constructs and passes around — never a package-level
// singleton — so a process can run more than one independent scene.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/geoviz/gpumath"
	"github.com/gogpu/geoviz/sliceplane"
	"github.com/gogpu/geoviz/structure"
)

// ErrDuplicateStructure is returned by Add when (typeTag, name) is
// already registered.
var ErrDuplicateStructure = errors.New("registry: structure already registered")

// ErrStructureNotFound is returned by lookups for an unregistered key.
var ErrStructureNotFound = errors.New("registry: structure not found")

// key identifies a structure by its kind and name, matching the
// "(type_tag, name)"-keyed map spec.md §3.10 calls for — two
// structures of different kinds may share a display name.
type key struct {
	typeTag string
	name    string
}

func (k key) String() string { return k.typeTag + "/" + k.name }

// entry pairs a registered structure with its enable mask, which is
// tracked by the registry (not the structure itself) so a host can
// hide a structure without mutating it.
type entry struct {
	structure structure.Structure
	enabled   bool
}

// Context is the flat, process-owned scene container: every
// registered structure, the active slice-plane set, and named groups
// of structures for bulk enable/disable.
type Context struct {
	mu         sync.RWMutex
	structures map[key]*entry
	groups     map[string]map[key]struct{}
	Planes     *sliceplane.Set
}

// NewContext returns an empty scene context with its own slice-plane
// set.
func NewContext() *Context {
	return &Context{
		structures: make(map[key]*entry),
		groups:     make(map[string]map[key]struct{}),
		Planes:     sliceplane.NewSet(),
	}
}

// Add registers s under (typeTag, s.Name()), enabled by default.
func (c *Context) Add(typeTag string, s structure.Structure) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := key{typeTag: typeTag, name: s.Name()}
	if _, exists := c.structures[k]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateStructure, k)
	}
	c.structures[k] = &entry{structure: s, enabled: true}
	return nil
}

// Remove unregisters a structure and drops it from every group.
func (c *Context) Remove(typeTag, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := key{typeTag: typeTag, name: name}
	delete(c.structures, k)
	for _, members := range c.groups {
		delete(members, k)
	}
}

// Get returns the structure registered under (typeTag, name).
func (c *Context) Get(typeTag, name string) (structure.Structure, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.structures[key{typeTag: typeTag, name: name}]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrStructureNotFound, typeTag, name)
	}
	return e.structure, nil
}

// SetEnabled toggles the registry-owned enable mask for a structure,
// independent of the structure's own Enabled/SetEnabled (which a host
// may also use for finer per-quantity visibility).
func (c *Context) SetEnabled(typeTag, name string, enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.structures[key{typeTag: typeTag, name: name}]
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrStructureNotFound, typeTag, name)
	}
	e.enabled = enabled
	return nil
}

// Visible returns every registered, enabled structure whose own
// Enabled() also reports true, sorted by (typeTag, name) for
// deterministic draw order.
func (c *Context) Visible() []structure.Structure {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]key, 0, len(c.structures))
	for k, e := range c.structures {
		if e.enabled && e.structure.Enabled() {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].typeTag != keys[j].typeTag {
			return keys[i].typeTag < keys[j].typeTag
		}
		return keys[i].name < keys[j].name
	})

	out := make([]structure.Structure, len(keys))
	for i, k := range keys {
		out[i] = c.structures[k].structure
	}
	return out
}

// All returns every registered structure regardless of enable state,
// sorted the same way as Visible.
func (c *Context) All() []structure.Structure {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]key, 0, len(c.structures))
	for k := range c.structures {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].typeTag != keys[j].typeTag {
			return keys[i].typeTag < keys[j].typeTag
		}
		return keys[i].name < keys[j].name
	})
	out := make([]structure.Structure, len(keys))
	for i, k := range keys {
		out[i] = c.structures[k].structure
	}
	return out
}

// Group adds (typeTag, name) to a named group, creating the group if
// it doesn't exist. Registering a structure that isn't (yet) in the
// context is allowed; the group membership just has no effect until
// the structure is added.
func (c *Context) Group(groupName, typeTag, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	members, ok := c.groups[groupName]
	if !ok {
		members = make(map[key]struct{})
		c.groups[groupName] = members
	}
	members[key{typeTag: typeTag, name: name}] = struct{}{}
}

// SetGroupEnabled toggles every member of a group. Members referring
// to structures not currently registered are skipped silently.
func (c *Context) SetGroupEnabled(groupName string, enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k := range c.groups[groupName] {
		if e, ok := c.structures[k]; ok {
			e.enabled = enabled
		}
	}
}

// BoundingBox merges the bounding box of every visible structure.
func (c *Context) BoundingBox() gpumath.Box3 {
	b := gpumath.EmptyBox3()
	for _, s := range c.Visible() {
		b = b.Merge(s.BoundingBox())
	}
	return b
}

// LengthScale returns the diagonal length of the aggregate bounding
// box, the reference scale used to size point radii, arrow lengths,
// and slice-plane extents relative to "the scene", the way a render
// of a 1-unit cube and a render of a 1000-unit terrain should each
// get proportionally sized widgets. Returns 1 for an empty scene so
// callers never divide by zero.
func (c *Context) LengthScale() float32 {
	b := c.BoundingBox()
	if b.IsEmpty() || b.Diagonal() == 0 {
		return 1
	}
	return b.Diagonal()
}
