// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"errors"
	"sync"
	"testing"

	"github.com/gogpu/geoviz/gpucore"
)

func TestGetCachesByKindAndShader(t *testing.T) {
	calls := 0
	c := NewCache([4]gpucore.BindGroupLayoutID{1, 2, 3, 4}, func(k Kind, shader gpucore.ShaderModuleID, layouts [4]gpucore.BindGroupLayoutID) (Handle, error) {
		calls++
		return Handle(calls), nil
	})

	h1, err := c.Get(KindSurfaceMesh, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h2, err := c.Get(KindSurfaceMesh, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h1 != h2 {
		t.Fatalf("expected cached handle to be reused, got %v and %v", h1, h2)
	}
	if calls != 1 {
		t.Fatalf("expected factory called once, got %d", calls)
	}

	if _, err := c.Get(KindSurfaceMesh, 11); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected a distinct shader to trigger a new pipeline, calls=%d", calls)
	}
}

func TestGetRejectsUnknownKind(t *testing.T) {
	c := NewCache([4]gpucore.BindGroupLayoutID{}, nil)
	if _, err := c.Get(Kind(200), 0); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestGetPropagatesFactoryError(t *testing.T) {
	wantErr := errors.New("boom")
	c := NewCache([4]gpucore.BindGroupLayoutID{}, func(k Kind, shader gpucore.ShaderModuleID, layouts [4]gpucore.BindGroupLayoutID) (Handle, error) {
		return invalidHandle, wantErr
	})
	if _, err := c.Get(KindToneMap, 0); err == nil || !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped factory error, got %v", err)
	}
}

func TestGetConcurrentSameKeyCreatesOnce(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	c := NewCache([4]gpucore.BindGroupLayoutID{}, func(k Kind, shader gpucore.ShaderModuleID, layouts [4]gpucore.BindGroupLayoutID) (Handle, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return Handle(1), nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Get(KindPointSphere, 0); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if calls != 1 {
		t.Fatalf("expected exactly one factory call under concurrency, got %d", calls)
	}
}

func TestRowLookupMatchesSpecTable(t *testing.T) {
	topo, blend, depth, ok := Row(KindCompositePeelUnder)
	if !ok {
		t.Fatalf("expected composite peel under to have a row")
	}
	if topo != TopologyFullscreenTriangle {
		t.Fatalf("composite peel under should be a fullscreen triangle, got %v", topo)
	}
	if blend != BlendPeelUnder {
		t.Fatalf("composite peel under should use BlendPeelUnder, got %v", blend)
	}
	if depth != DepthDisabled {
		t.Fatalf("composite peel under should not test depth, got %v", depth)
	}
}

func TestWarmupCreatesAllEntriesOnce(t *testing.T) {
	calls := 0
	c := NewCache([4]gpucore.BindGroupLayoutID{}, func(k Kind, shader gpucore.ShaderModuleID, layouts [4]gpucore.BindGroupLayoutID) (Handle, error) {
		calls++
		return Handle(calls), nil
	})
	err := c.Warmup([]WarmupEntry{
		{Kind: KindSurfaceMesh, Shader: 1},
		{Kind: KindPointSphere, Shader: 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Count() != 2 {
		t.Fatalf("expected 2 cached pipelines after warmup, got %d", c.Count())
	}
}

func TestCountTracksDistinctPipelines(t *testing.T) {
	c := NewCache([4]gpucore.BindGroupLayoutID{}, nil)
	if c.Count() != 0 {
		t.Fatalf("expected empty cache to start at 0")
	}
	_, _ = c.Get(KindSSAO, 0)
	_, _ = c.Get(KindSSAOBlur, 0)
	_, _ = c.Get(KindSSAO, 0)
	if c.Count() != 2 {
		t.Fatalf("expected 2 distinct pipelines, got %d", c.Count())
	}
}
