// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package pointcloud implements the point-cloud structure of
// spec.md §3: a named, transformable set of points rendered as
// billboarded spheres or discs, optionally shaded by scalar, color,
// or vector quantities.
package pointcloud

import (
	"fmt"

	"github.com/gogpu/geoviz/gpumath"
	"github.com/gogpu/geoviz/structure"
)

// PointCloud is a flat array of points with no connectivity.
type PointCloud struct {
	name      string
	transform gpumath.Mat4
	enabled   bool
	dirty     bool

	Points     []gpumath.Vec3
	Radius     float32 // world-space radius applied before transform scale
	PointColor gpumath.RGB

	quantities structure.QuantitySet
}

// New returns a point cloud over points, enabled, with a default
// radius and color.
func New(name string, points []gpumath.Vec3) *PointCloud {
	return &PointCloud{
		name:       name,
		transform:  gpumath.Identity(),
		enabled:    true,
		dirty:      true,
		Points:     points,
		Radius:     0.02,
		PointColor: gpumath.RGB{R: 0.2, G: 0.5, B: 0.9},
	}
}

func (p *PointCloud) Name() string             { return p.name }
func (p *PointCloud) Domain() structure.Domain { return structure.DomainPointCloud }
func (p *PointCloud) Transform() gpumath.Mat4  { return p.transform }
func (p *PointCloud) SetTransform(m gpumath.Mat4) {
	p.transform = m
	p.dirty = true
}
func (p *PointCloud) Enabled() bool      { return p.enabled }
func (p *PointCloud) SetEnabled(e bool)  { p.enabled = e }
func (p *PointCloud) Dirty() bool        { return p.dirty }
func (p *PointCloud) MarkClean()         { p.dirty = false }

// SetPoints replaces the point array and marks the structure dirty so
// the engine re-uploads its GPU buffers next frame.
func (p *PointCloud) SetPoints(points []gpumath.Vec3) {
	p.Points = points
	p.dirty = true
}

// BoundingBox returns the local-space bounding box of the points,
// expanded by Radius on every axis.
func (p *PointCloud) BoundingBox() gpumath.Box3 {
	b := gpumath.EmptyBox3()
	pad := gpumath.Vec3{X: p.Radius, Y: p.Radius, Z: p.Radius}
	for _, pt := range p.Points {
		b = b.Union(pt.Sub(pad))
		b = b.Union(pt.Add(pad))
	}
	return b
}

func (p *PointCloud) Quantities() []structure.Quantity { return p.quantities.List() }

func (p *PointCloud) AddQuantity(q structure.Quantity) error {
	if q.Domain() != structure.DomainPointCloud {
		return fmt.Errorf("pointcloud: quantity %q belongs to domain %v, not point_cloud", q.Name(), q.Domain())
	}
	if len(scalarValues(q)) != 0 && len(scalarValues(q)) != len(p.Points) {
		return fmt.Errorf("pointcloud: quantity %q has %d values, structure has %d points", q.Name(), len(scalarValues(q)), len(p.Points))
	}
	return p.quantities.Add(q)
}

func (p *PointCloud) RemoveQuantity(name string) { p.quantities.Remove(name) }

// ActiveScalar returns the currently active scalar quantity, or nil.
func (p *PointCloud) ActiveScalar() *ScalarQuantity {
	q := p.quantities.Active(structure.CategoryScalar)
	if q == nil {
		return nil
	}
	sq, _ := q.(*ScalarQuantity)
	return sq
}

func scalarValues(q structure.Quantity) []float64 {
	if sq, ok := q.(*ScalarQuantity); ok {
		return sq.Values
	}
	return nil
}
