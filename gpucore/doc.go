// Package gpucore provides the opaque GPU resource handles and
// descriptor types shared across the renderer's pipeline cache,
// material system, and bind-group layouts: [BufferID], [TextureID],
// [ShaderModuleID], [TextureFormat], and [BindGroupLayoutDesc].
//
// Concrete device/adapter implementations (wgpu, or a future gogpu
// backend) translate these opaque ids to real GPU resources; this
// package stays backend-agnostic so the pipeline cache and material
// system can be built, wired, and tested without a GPU device present.
package gpucore
