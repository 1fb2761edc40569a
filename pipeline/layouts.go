// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pipeline

import "github.com/gogpu/geoviz/gpucore"

// StandardLayouts returns the bind-group layout descriptors for the
// four conventional slots of spec.md §4.5. Passing these to the
// backend's create-bind-group-layout call yields the
// [4]gpucore.BindGroupLayoutID that NewCache expects; callers that
// don't need SlotPeel (any pipeline outside the depth-peel pass) may
// still request it since peel pipelines share the cache's layout set.
func StandardLayouts() [4]gpucore.BindGroupLayoutDesc {
	var d [4]gpucore.BindGroupLayoutDesc

	d[SlotStructure] = gpucore.BindGroupLayoutDesc{
		Label: "geoviz/structure",
		Entries: []gpucore.BindGroupLayoutEntry{
			{Binding: 0, Type: gpucore.BindingTypeUniformBuffer}, // camera
			{Binding: 1, Type: gpucore.BindingTypeUniformBuffer}, // per-structure
			{Binding: 2, Type: gpucore.BindingTypeReadOnlyStorageBuffer},
		},
	}
	d[SlotSlicePlanes] = gpucore.BindGroupLayoutDesc{
		Label: "geoviz/slice_planes",
		Entries: []gpucore.BindGroupLayoutEntry{
			{Binding: 0, Type: gpucore.BindingTypeUniformBuffer},
		},
	}
	d[SlotMatcap] = gpucore.BindGroupLayoutDesc{
		Label: "geoviz/matcap",
		Entries: []gpucore.BindGroupLayoutEntry{
			{Binding: 0, Type: gpucore.BindingTypeSampledTexture},
			{Binding: 1, Type: gpucore.BindingTypeSampledTexture},
			{Binding: 2, Type: gpucore.BindingTypeSampler},
		},
	}
	d[SlotPeel] = gpucore.BindGroupLayoutDesc{
		Label: "geoviz/peel",
		Entries: []gpucore.BindGroupLayoutEntry{
			{Binding: 0, Type: gpucore.BindingTypeSampledTexture},
			{Binding: 1, Type: gpucore.BindingTypeSampler},
		},
	}
	return d
}

// AttachmentFormats pins the engine's render-target formats per
// spec.md §4.8's closing paragraph. These are the formats the engine
// allocates resize-dependent textures with; the pipeline cache itself
// does not own any textures, but every pipeline it creates must be
// compiled against render targets of these exact formats.
var AttachmentFormats = struct {
	HDR, NormalGBuffer, SSAO, Depth, PeelMinDepth, PeelDepthAsColor, Pick gpucore.TextureFormat
}{
	HDR:              gpucore.TextureFormatRGBA16Float,
	NormalGBuffer:    gpucore.TextureFormatRGBA16Float,
	SSAO:             gpucore.TextureFormatR8Unorm,
	Depth:            gpucore.TextureFormatDepth24PlusStencil8,
	PeelMinDepth:     gpucore.TextureFormatRGBA16Float,
	PeelDepthAsColor: gpucore.TextureFormatR32Float,
	Pick:             gpucore.TextureFormatRGBA8Unorm,
}
