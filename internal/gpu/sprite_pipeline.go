//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/pick2d"
)

// spriteVertexStride is the byte stride per vertex in the sprite pipeline.
// Layout per vertex:
//
//	position     (vec3<f32>) = 12 bytes (location 0)
//	uv           (vec2<f32>) =  8 bytes (location 1)
//	entity_index (u32)       =  4 bytes (location 2)
//	color        (vec4<f32>) = 16 bytes (location 3)
//
// Total = 40 bytes per vertex.
const spriteVertexStride = 40

// SpritePipeline manages GPU resources for the sprite shading program.
// Each SpriteVariant gets its own pipeline because the variant toggles are
// baked into the shader as consts; PickSession keeps one SpritePipeline
// per variant it has seen.
//
// Both color targets share the pipeline: target 0 is the blended color
// attachment, target 1 the R32Uint pick attachment with blending disabled
// so the flat entity index lands untouched.
type SpritePipeline struct {
	device hal.Device
	queue  hal.Queue

	variant SpriteVariant

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline

	// Default sampler for sprite textures.
	sampler hal.Sampler
}

// NewSpritePipeline creates a sprite pipeline for one variant. GPU objects
// are not created until ensurePipeline is called.
func NewSpritePipeline(device hal.Device, queue hal.Queue, variant SpriteVariant) *SpritePipeline {
	return &SpritePipeline{
		device:  device,
		queue:   queue,
		variant: variant,
	}
}

// Destroy releases all GPU resources held by the pipeline. Safe to call
// multiple times or on a pipeline with no allocated resources.
func (p *SpritePipeline) Destroy() {
	p.destroyPipeline()
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
}

// ensurePipeline creates the render pipeline on first use.
func (p *SpritePipeline) ensurePipeline() error {
	if p.pipeline != nil {
		return nil
	}
	return p.createPipeline()
}

// createPipeline compiles the sprite shader variant and creates the render
// pipeline with premultiplied alpha blending on the color target and no
// blending on the pick target.
func (p *SpritePipeline) createPipeline() error {
	source := spriteShaderSource(p.variant)

	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "sprite_shader",
		Source: hal.ShaderSource{WGSL: source},
	})
	if err != nil {
		return fmt.Errorf("compile sprite shader: %w", err)
	}
	p.shader = shader

	// Bind group layout:
	//   Binding 0: View uniform (uniform buffer, vertex+fragment)
	//   Binding 1: Sprite texture (texture_2d, fragment)
	//   Binding 2: Sampler (fragment)
	uniformLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "sprite_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create sprite uniform layout: %w", err)
	}
	p.uniformLayout = uniformLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "sprite_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("create sprite pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	sampler, err := p.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "sprite_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return fmt.Errorf("create sprite sampler: %w", err)
	}
	p.sampler = sampler

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "sprite_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    spriteVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets:    pickColorTargets(&premulBlend),
		},
		DepthStencil: pickDepthState(),
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create sprite pipeline: %w", err)
	}
	p.pipeline = pipeline

	return nil
}

// RecordDraws records sprite draw commands into an existing render pass.
// The render pass is owned by PickSession.
func (p *SpritePipeline) RecordDraws(rp hal.RenderPassEncoder, resources *spriteFrameResources) {
	if resources == nil || resources.indexCount == 0 {
		return
	}
	rp.SetPipeline(p.pipeline)
	rp.SetBindGroup(0, resources.bindGroup, nil)
	rp.SetVertexBuffer(0, resources.vertBuf, 0)
	rp.SetIndexBuffer(resources.idxBuf, gputypes.IndexFormatUint16, 0)
	rp.DrawIndexed(resources.indexCount, 1, 0, 0, 0)
}

// destroyPipeline releases all pipeline resources in reverse creation order.
func (p *SpritePipeline) destroyPipeline() {
	if p.device == nil {
		return
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.uniformLayout != nil {
		p.device.DestroyBindGroupLayout(p.uniformLayout)
		p.uniformLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// spriteFrameResources holds per-frame GPU resources for one sprite batch.
type spriteFrameResources struct {
	vertBuf    hal.Buffer
	idxBuf     hal.Buffer
	uniformBuf hal.Buffer
	texture    *sampledTexture
	bindGroup  hal.BindGroup
	indexCount uint32
}

func (r *spriteFrameResources) destroy(device hal.Device) {
	if r.bindGroup != nil {
		device.DestroyBindGroup(r.bindGroup)
	}
	r.texture.destroy(device)
	if r.uniformBuf != nil {
		device.DestroyBuffer(r.uniformBuf)
	}
	if r.idxBuf != nil {
		device.DestroyBuffer(r.idxBuf)
	}
	if r.vertBuf != nil {
		device.DestroyBuffer(r.vertBuf)
	}
}

// spriteVertexLayout returns the vertex buffer layout for the sprite
// pipeline. Matches VertexInput in sprite.wgsl:
//
//	location 0: position (vec3<f32>)
//	location 1: uv (vec2<f32>)
//	location 2: entity_index (u32)
//	location 3: color (vec4<f32>)
func spriteVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: spriteVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1}, // uv
				{Format: gputypes.VertexFormatUint32, Offset: 20, ShaderLocation: 2},    // entity_index
				{Format: gputypes.VertexFormatFloat32x4, Offset: 24, ShaderLocation: 3}, // color
			},
		},
	}
}

// pickColorTargets returns the dual color target state shared by the
// sprite and color-material pipelines: blended color at 0, raw R32Uint
// pick values at 1. The pick target must never blend; a uint target has
// no meaningful blend arithmetic and the index must survive bit-exact.
func pickColorTargets(colorBlend *gputypes.BlendState) []gputypes.ColorTargetState {
	return []gputypes.ColorTargetState{
		{
			Format:    gputypes.TextureFormatBGRA8Unorm,
			Blend:     colorBlend,
			WriteMask: gputypes.ColorWriteMaskAll,
		},
		{
			Format:    gputypes.TextureFormatR32Uint,
			Blend:     nil,
			WriteMask: gputypes.ColorWriteMaskAll,
		},
	}
}

// pickDepthState returns the depth state shared by the picking pipelines:
// depth writes on, test disabled. Draws composite in submission order,
// same as the software path; the depth attachment only records each
// pixel's last writer for readback.
func pickDepthState() *hal.DepthStencilState {
	return &hal.DepthStencilState{
		Format:            gputypes.TextureFormatDepth32Float,
		DepthWriteEnabled: true,
		DepthCompare:      gputypes.CompareFunctionAlways,
		StencilFront: hal.StencilFaceState{
			Compare:     gputypes.CompareFunctionAlways,
			FailOp:      hal.StencilOperationKeep,
			DepthFailOp: hal.StencilOperationKeep,
			PassOp:      hal.StencilOperationKeep,
		},
		StencilBack: hal.StencilFaceState{
			Compare:     gputypes.CompareFunctionAlways,
			FailOp:      hal.StencilOperationKeep,
			DepthFailOp: hal.StencilOperationKeep,
			PassOp:      hal.StencilOperationKeep,
		},
		StencilReadMask:  0x00,
		StencilWriteMask: 0x00,
	}
}

// buildSpriteVertexData serializes sprite vertices into raw bytes for GPU
// upload, 40 bytes per vertex matching spriteVertexLayout.
func buildSpriteVertexData(verts []pick2d.SpriteVertex) []byte {
	if len(verts) == 0 {
		return nil
	}
	data := make([]byte, len(verts)*spriteVertexStride)
	off := 0
	for _, v := range verts {
		writeFloat32(data[off:], v.Position.X)
		writeFloat32(data[off+4:], v.Position.Y)
		writeFloat32(data[off+8:], v.Position.Z)
		writeFloat32(data[off+12:], v.UV.X)
		writeFloat32(data[off+16:], v.UV.Y)
		binary.LittleEndian.PutUint32(data[off+20:], v.EntityIndex)
		writeFloat32(data[off+24:], v.Color.R)
		writeFloat32(data[off+28:], v.Color.G)
		writeFloat32(data[off+32:], v.Color.B)
		writeFloat32(data[off+36:], v.Color.A)
		off += spriteVertexStride
	}
	return data
}

// buildIndexData serializes uint16 indices into raw bytes for GPU upload.
func buildIndexData(indices []uint16) []byte {
	if len(indices) == 0 {
		return nil
	}
	data := make([]byte, len(indices)*2)
	for i, idx := range indices {
		binary.LittleEndian.PutUint16(data[i*2:], idx)
	}
	return data
}

// quadIndices returns the index pattern for count quads laid out as four
// vertices each: 0,1,2 / 2,1,3 per quad.
func quadIndices(count int) []uint16 {
	indices := make([]uint16, count*6)
	for i := 0; i < count; i++ {
		base := i * 6
		vertex := uint16(i * 4) //nolint:gosec // quad count bounded by uint16 index space

		indices[base+0] = vertex + 0
		indices[base+1] = vertex + 1
		indices[base+2] = vertex + 2

		indices[base+3] = vertex + 2
		indices[base+4] = vertex + 1
		indices[base+5] = vertex + 3
	}
	return indices
}
