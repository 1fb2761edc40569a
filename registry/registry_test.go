// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package registry

import (
	"errors"
	"testing"

	"github.com/gogpu/geoviz/gpumath"
	"github.com/gogpu/geoviz/structure/pointcloud"
)

func newCloud(name string, x float32) *pointcloud.PointCloud {
	return pointcloud.New(name, []gpumath.Vec3{{X: x, Y: 0, Z: 0}})
}

func TestAddAndGet(t *testing.T) {
	ctx := NewContext()
	c := newCloud("a", 0)
	if err := ctx.Add("pointcloud", c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := ctx.Get("pointcloud", "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != c {
		t.Fatalf("expected the same structure back")
	}
}

func TestAddDuplicateRejected(t *testing.T) {
	ctx := NewContext()
	_ = ctx.Add("pointcloud", newCloud("a", 0))
	err := ctx.Add("pointcloud", newCloud("a", 1))
	if !errors.Is(err, ErrDuplicateStructure) {
		t.Fatalf("expected ErrDuplicateStructure, got %v", err)
	}
}

func TestSameNameDifferentTypeTagAllowed(t *testing.T) {
	ctx := NewContext()
	if err := ctx.Add("pointcloud", newCloud("mesh1", 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ctx.Add("surfacemesh", newCloud("mesh1", 0)); err != nil {
		t.Fatalf("expected different type tags to coexist under the same name: %v", err)
	}
}

func TestGetNotFound(t *testing.T) {
	ctx := NewContext()
	if _, err := ctx.Get("pointcloud", "missing"); !errors.Is(err, ErrStructureNotFound) {
		t.Fatalf("expected ErrStructureNotFound, got %v", err)
	}
}

func TestRemoveDropsFromVisible(t *testing.T) {
	ctx := NewContext()
	_ = ctx.Add("pointcloud", newCloud("a", 0))
	ctx.Remove("pointcloud", "a")
	if len(ctx.Visible()) != 0 {
		t.Fatalf("expected no visible structures after remove")
	}
}

func TestSetEnabledHidesFromVisible(t *testing.T) {
	ctx := NewContext()
	_ = ctx.Add("pointcloud", newCloud("a", 0))
	if err := ctx.SetEnabled("pointcloud", "a", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ctx.Visible()) != 0 {
		t.Fatalf("expected disabled structure to be excluded from Visible")
	}
	if len(ctx.All()) != 1 {
		t.Fatalf("expected disabled structure to still appear in All")
	}
}

func TestVisibleSortedDeterministically(t *testing.T) {
	ctx := NewContext()
	_ = ctx.Add("pointcloud", newCloud("zeta", 0))
	_ = ctx.Add("pointcloud", newCloud("alpha", 0))
	vis := ctx.Visible()
	if len(vis) != 2 || vis[0].Name() != "alpha" || vis[1].Name() != "zeta" {
		t.Fatalf("expected alphabetically sorted visible list, got %v, %v", vis[0].Name(), vis[1].Name())
	}
}

func TestGroupEnableDisablesAllMembers(t *testing.T) {
	ctx := NewContext()
	_ = ctx.Add("pointcloud", newCloud("a", 0))
	_ = ctx.Add("pointcloud", newCloud("b", 0))
	ctx.Group("cloudset", "pointcloud", "a")
	ctx.Group("cloudset", "pointcloud", "b")

	ctx.SetGroupEnabled("cloudset", false)
	if len(ctx.Visible()) != 0 {
		t.Fatalf("expected group disable to hide both members")
	}

	ctx.SetGroupEnabled("cloudset", true)
	if len(ctx.Visible()) != 2 {
		t.Fatalf("expected group enable to restore both members")
	}
}

func TestBoundingBoxMergesVisibleStructures(t *testing.T) {
	ctx := NewContext()
	_ = ctx.Add("pointcloud", newCloud("a", -5))
	_ = ctx.Add("pointcloud", newCloud("b", 5))
	b := ctx.BoundingBox()
	if b.Min.X > -5 || b.Max.X < 5 {
		t.Fatalf("expected bounding box to span both points, got %+v", b)
	}
}

func TestBoundingBoxExcludesDisabled(t *testing.T) {
	ctx := NewContext()
	_ = ctx.Add("pointcloud", newCloud("a", -5))
	_ = ctx.Add("pointcloud", newCloud("b", 5))
	_ = ctx.SetEnabled("pointcloud", "b", false)
	b := ctx.BoundingBox()
	if b.Max.X >= 5 {
		t.Fatalf("expected disabled structure to be excluded from bounding box, got %+v", b)
	}
}

func TestLengthScaleDefaultsToOneWhenEmpty(t *testing.T) {
	ctx := NewContext()
	if got := ctx.LengthScale(); got != 1 {
		t.Fatalf("expected length scale 1 for an empty scene, got %v", got)
	}
}

func TestLengthScaleTracksBoundingBoxDiagonal(t *testing.T) {
	ctx := NewContext()
	_ = ctx.Add("pointcloud", newCloud("a", 0))
	_ = ctx.Add("pointcloud", newCloud("b", 10))
	if got := ctx.LengthScale(); got <= 1 {
		t.Fatalf("expected a length scale reflecting the 10-unit spread, got %v", got)
	}
}

func TestPlanesIsUsableOutOfTheBox(t *testing.T) {
	ctx := NewContext()
	if ctx.Planes == nil {
		t.Fatalf("expected NewContext to initialize a Planes set")
	}
}
