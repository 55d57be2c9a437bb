// Package spv compiles shader source into SPIR-V artifacts and assembles
// validated pipeline layouts for GPU backends.
//
// # Overview
//
// spv covers the two halves of getting a shader onto a device. The first
// half turns WGSL source text into a SPIR-V [Artifact] with a deterministic
// content hash, using the Pure Go gogpu/naga compiler. The second half
// accumulates descriptor set layouts and push constant ranges in a
// [LayoutDescription], validates them against the rules Vulkan-style
// backends assume but do not check themselves, and realizes them into a
// single backend [PipelineLayout] handle.
//
// # Quick Start
//
//	import "github.com/gogpu/spv"
//
//	// Compile a compute shader
//	art, err := spv.CompileShader("scale", spv.FileSource("scale.wgsl"), spv.StageCompute)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(art.SourceHash) // 64-char hex content identity
//
//	// Assemble and realize a pipeline layout
//	desc := spv.NewLayoutDescription()
//	desc.AddSetLayout(0, setLayout)
//	desc.AddPushConstant(0, 64, spv.StageCompute)
//	layout, err := spv.Realize(device, desc)
//	defer layout.Destroy()
//
// # Identity and Caching
//
// [HashSource] computes a SHA-256 digest over source text only. Two
// artifacts compiled from identical source with different optimization
// settings share an identity: identity tracks source, not compiled bytes,
// so a flag change never looks like a new shader to a source-level cache.
// [CachingCompiler] layers an in-memory compile-through cache on top of
// this identity.
//
// # Backends
//
// The layout half depends only on two small interfaces: [SetLayout]
// (anything with a retrievable native handle) and [Device] (creates and
// destroys pipeline layout objects). backend/wgpu adapts a gogpu/wgpu
// HAL device to them.
//
// # Architecture
//
// The library is organized into:
//   - Public API: SourceRef, Artifact, LayoutDescription, PipelineLayout
//   - cache/: sharded in-memory artifact cache
//   - backend/wgpu/: gogpu/wgpu HAL adapter
//   - cmd/spvc/: command line compiler
package spv

// Version is the current version of the library.
const Version = "0.1.0"
