// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package engine

import (
	"github.com/gogpu/geoviz/gpucore"
	"github.com/gogpu/geoviz/pipeline"
	"github.com/gogpu/geoviz/structure"
	"github.com/gogpu/geoviz/structure/curvenetwork"
	"github.com/gogpu/geoviz/structure/pointcloud"
	"github.com/gogpu/geoviz/structure/surfacemesh"
	"github.com/gogpu/geoviz/structure/volumegrid"
	"github.com/gogpu/geoviz/structure/volumemesh"
)

// softwareBindGroupLayouts assigns deterministic, sequential
// BindGroupLayoutIDs to pipeline.StandardLayouts()'s four descriptors.
// A real backend turns each gpucore.BindGroupLayoutDesc into an ID by
// calling the device's create-bind-group-layout entry point; this
// engine has no device to call it against, so it assigns the slot
// index instead, which is enough to keep pipeline.Cache's (Kind,
// shader) keying and layout plumbing exercised end to end without a
// GPU.
func softwareBindGroupLayouts() [4]gpucore.BindGroupLayoutID {
	descs := pipeline.StandardLayouts()
	var ids [4]gpucore.BindGroupLayoutID
	for i := range descs {
		ids[i] = gpucore.BindGroupLayoutID(i + 1)
	}
	return ids
}

// kindFor reports the pipeline.Kind spec.md §4.5's table assigns to a
// structure's draw, so resolvePipelines can look it up the same way a
// real per-structure render-pass record would.
func kindFor(s structure.Structure) (pipeline.Kind, bool) {
	switch st := s.(type) {
	case *pointcloud.PointCloud:
		return pipeline.KindPointSphere, true
	case *surfacemesh.SurfaceMesh:
		return pipeline.KindSurfaceMesh, true
	case *curvenetwork.CurveNetwork:
		if st.Mode == curvenetwork.RenderTube {
			return pipeline.KindCurveNetworkTube, true
		}
		return pipeline.KindCurveNetworkLine, true
	case *volumemesh.VolumeMesh:
		return pipeline.KindSurfaceMesh, true
	case *volumegrid.VolumeGrid:
		if scalar := st.ActiveScalar(); scalar != nil && scalar.Mode == volumegrid.VizIsosurface {
			return pipeline.KindIsosurface, true
		}
		return pipeline.KindVolumeGridCube, true
	default:
		return 0, false
	}
}

// resolvePipelines resolves (or, on first use, lazily creates through
// the cache) the pipeline each visible structure would draw with. The
// software rasterizer still does its own flat-shaded CPU fill rather
// than binding the returned handle, but every visible structure now
// resolves through pipelines on every frame exactly as a wgpu-backed
// Render would, so the cache is exercised by a live render path
// instead of sitting unreferenced outside its own tests.
func resolvePipelines(pipelines *pipeline.Cache, structures []structure.Structure) {
	if pipelines == nil {
		return
	}
	for _, s := range structures {
		k, ok := kindFor(s)
		if !ok {
			continue
		}
		// Shader variant 0: the software path never compiles a real
		// shader module, so every structure of a given Kind shares the
		// default variant; a GPU backend would key this on whichever
		// quantity-specific fragment shader is bound instead.
		_, _ = pipelines.Get(k, gpucore.ShaderModuleID(0))
	}
}
