//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/pick2d"
)

// meshVertexStride is the byte stride per vertex in the color-material
// pipeline. Layout per vertex:
//
//	position (vec3<f32>) = 12 bytes (location 0)
//	uv       (vec2<f32>) =  8 bytes (location 1)
//	color    (vec4<f32>) = 16 bytes (location 2)
//
// Total = 36 bytes per vertex. No per-vertex entity index: the identifier
// comes from the material uniform, one value for the whole draw.
const meshVertexStride = 36

// MaterialPipeline manages GPU resources for the color-material shading
// program. Bind group 0 carries the shared View uniform, bind group 1 the
// per-draw material uniform plus its texture and sampler.
type MaterialPipeline struct {
	device hal.Device
	queue  hal.Queue

	variant MaterialVariant

	shader         hal.ShaderModule
	viewLayout     hal.BindGroupLayout
	materialLayout hal.BindGroupLayout
	pipeLayout     hal.PipelineLayout
	pipeline       hal.RenderPipeline

	// Default sampler for material textures.
	sampler hal.Sampler
}

// NewMaterialPipeline creates a color-material pipeline for one variant.
// GPU objects are not created until ensurePipeline is called.
func NewMaterialPipeline(device hal.Device, queue hal.Queue, variant MaterialVariant) *MaterialPipeline {
	return &MaterialPipeline{
		device:  device,
		queue:   queue,
		variant: variant,
	}
}

// Destroy releases all GPU resources held by the pipeline. Safe to call
// multiple times or on a pipeline with no allocated resources.
func (p *MaterialPipeline) Destroy() {
	p.destroyPipeline()
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
}

// ensurePipeline creates the render pipeline on first use.
func (p *MaterialPipeline) ensurePipeline() error {
	if p.pipeline != nil {
		return nil
	}
	return p.createPipeline()
}

// createPipeline compiles the color-material shader variant and creates
// the render pipeline with the same dual color targets as the sprite
// pipeline.
func (p *MaterialPipeline) createPipeline() error {
	source := materialShaderSource(p.variant)

	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "color_material_shader",
		Source: hal.ShaderSource{WGSL: source},
	})
	if err != nil {
		return fmt.Errorf("compile color_material shader: %w", err)
	}
	p.shader = shader

	// Bind group 0:
	//   Binding 0: View uniform (uniform buffer, vertex)
	viewLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "color_material_view_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create color_material view layout: %w", err)
	}
	p.viewLayout = viewLayout

	// Bind group 1:
	//   Binding 0: ColorMaterial uniform (uniform buffer, fragment)
	//   Binding 1: Material texture (texture_2d, fragment)
	//   Binding 2: Sampler (fragment)
	materialLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "color_material_material_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
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
		return fmt.Errorf("create color_material material layout: %w", err)
	}
	p.materialLayout = materialLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "color_material_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.viewLayout, p.materialLayout},
	})
	if err != nil {
		return fmt.Errorf("create color_material pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	sampler, err := p.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "color_material_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return fmt.Errorf("create color_material sampler: %w", err)
	}
	p.sampler = sampler

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "color_material_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    meshVertexLayout(),
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
		return fmt.Errorf("create color_material pipeline: %w", err)
	}
	p.pipeline = pipeline

	return nil
}

// RecordDraws records mesh draw commands into an existing render pass.
// The render pass is owned by PickSession.
func (p *MaterialPipeline) RecordDraws(rp hal.RenderPassEncoder, resources *materialFrameResources) {
	if resources == nil || resources.indexCount == 0 {
		return
	}
	rp.SetPipeline(p.pipeline)
	rp.SetBindGroup(0, resources.viewBind, nil)
	rp.SetBindGroup(1, resources.materialBind, nil)
	rp.SetVertexBuffer(0, resources.vertBuf, 0)
	rp.SetIndexBuffer(resources.idxBuf, gputypes.IndexFormatUint16, 0)
	rp.DrawIndexed(resources.indexCount, 1, 0, 0, 0)
}

// destroyPipeline releases all pipeline resources in reverse creation order.
func (p *MaterialPipeline) destroyPipeline() {
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
	if p.materialLayout != nil {
		p.device.DestroyBindGroupLayout(p.materialLayout)
		p.materialLayout = nil
	}
	if p.viewLayout != nil {
		p.device.DestroyBindGroupLayout(p.viewLayout)
		p.viewLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// materialFrameResources holds per-frame GPU resources for one mesh batch.
type materialFrameResources struct {
	vertBuf      hal.Buffer
	idxBuf       hal.Buffer
	viewBuf      hal.Buffer
	materialBuf  hal.Buffer
	texture      *sampledTexture
	viewBind     hal.BindGroup
	materialBind hal.BindGroup
	indexCount   uint32
}

func (r *materialFrameResources) destroy(device hal.Device) {
	if r.materialBind != nil {
		device.DestroyBindGroup(r.materialBind)
	}
	if r.viewBind != nil {
		device.DestroyBindGroup(r.viewBind)
	}
	r.texture.destroy(device)
	if r.materialBuf != nil {
		device.DestroyBuffer(r.materialBuf)
	}
	if r.viewBuf != nil {
		device.DestroyBuffer(r.viewBuf)
	}
	if r.idxBuf != nil {
		device.DestroyBuffer(r.idxBuf)
	}
	if r.vertBuf != nil {
		device.DestroyBuffer(r.vertBuf)
	}
}

// meshVertexLayout returns the vertex buffer layout for the color-material
// pipeline. Matches VertexInput in color_material.wgsl:
//
//	location 0: position (vec3<f32>)
//	location 1: uv (vec2<f32>)
//	location 2: color (vec4<f32>)
func meshVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: meshVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1}, // uv
				{Format: gputypes.VertexFormatFloat32x4, Offset: 20, ShaderLocation: 2}, // color
			},
		},
	}
}

// buildMeshVertexData serializes mesh vertices into raw bytes for GPU
// upload, 36 bytes per vertex matching meshVertexLayout.
func buildMeshVertexData(verts []pick2d.MeshVertex) []byte {
	if len(verts) == 0 {
		return nil
	}
	data := make([]byte, len(verts)*meshVertexStride)
	off := 0
	for _, v := range verts {
		writeFloat32(data[off:], v.Position.X)
		writeFloat32(data[off+4:], v.Position.Y)
		writeFloat32(data[off+8:], v.Position.Z)
		writeFloat32(data[off+12:], v.UV.X)
		writeFloat32(data[off+16:], v.UV.Y)
		writeFloat32(data[off+20:], v.Color.R)
		writeFloat32(data[off+24:], v.Color.G)
		writeFloat32(data[off+28:], v.Color.B)
		writeFloat32(data[off+32:], v.Color.A)
		off += meshVertexStride
	}
	return data
}
