//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/pick2d"
)

// Session errors.
var (
	// ErrNilFrame is returned when Render is called with a nil frame.
	ErrNilFrame = errors.New("gpu: frame is nil")

	// ErrNilView is returned when the frame has no view.
	ErrNilView = errors.New("gpu: frame view is nil")

	// ErrEmptyViewport is returned when the view's viewport has no area.
	ErrEmptyViewport = errors.New("gpu: viewport is empty")

	// ErrBadSpriteBatch is returned when a sprite batch's vertex count is
	// not a multiple of four.
	ErrBadSpriteBatch = errors.New("gpu: sprite batch vertex count not a multiple of 4")

	// ErrBadMeshIndices is returned when a mesh batch's index count is not
	// a multiple of three or an index is out of range.
	ErrBadMeshIndices = errors.New("gpu: mesh batch indices do not form triangles")
)

// copyPitchAlignment is the BytesPerRow alignment WebGPU (and DX12)
// require for texture-to-buffer copies.
const copyPitchAlignment = 256

// SpriteBatch is one textured sprite draw: quads of four vertices each in
// TL, TR, BL, BR order, shaded by one SpriteVariant.
type SpriteBatch struct {
	Variant SpriteVariant

	// Texture is sampled per fragment. A nil texture draws with a 1x1
	// white texture, leaving tinting to the vertex colors.
	Texture *pick2d.Texture

	// Vertices holds four vertices per sprite. Every vertex of a sprite
	// must carry the same entity index.
	Vertices []pick2d.SpriteVertex
}

// MeshBatch is one indexed triangle-list draw shaded by a color material.
// The material's entity index identifies every fragment of the batch.
type MeshBatch struct {
	Variant  MaterialVariant
	Material pick2d.ColorMaterial

	// Texture is sampled when the material's texture flag is set. A nil
	// texture draws with a 1x1 white texture.
	Texture *pick2d.Texture

	Vertices []pick2d.MeshVertex
	Indices  []uint16
}

// Frame is one picking pass submission: a shared view and the batches to
// draw into it.
type Frame struct {
	View    *pick2d.View
	Sprites []SpriteBatch
	Meshes  []MeshBatch
}

// FrameResult holds the CPU-side outputs of a picking pass.
type FrameResult struct {
	Width  int
	Height int

	// Color is the shaded frame, RGBA, 4 bytes per pixel, row-major.
	Color []byte

	// Picks maps each pixel to the virtual entity index written there.
	Picks *PickMap

	// Depth holds the depth value of each pixel's last writer; uncovered
	// pixels keep the clear value of 1.
	Depth *DepthMap
}

// PickSession owns the attachment textures and per-variant pipelines of
// the picking pass, and drives encode/submit/readback for whole frames.
//
// Architecture mirrors the rest of the stack:
//
//	PickSession owns attachment textures and per-frame buffers
//	SpritePipeline/MaterialPipeline own shader, layouts, pipeline, sampler
//	bind groups are created per batch (uniform + texture + sampler)
//
// A session is bound to one device/queue pair and is not safe for
// concurrent use.
type PickSession struct {
	device hal.Device
	queue  hal.Queue

	textures pickTargetSet

	spritePipes   map[SpriteVariant]*SpritePipeline
	materialPipes map[MaterialVariant]*MaterialPipeline

	// 1x1 white fallback for batches without a texture.
	whiteTex *sampledTexture
}

// NewPickSession creates a picking session on the given device and queue.
// GPU resources are allocated lazily on the first Render call.
func NewPickSession(device hal.Device, queue hal.Queue) *PickSession {
	return &PickSession{
		device:        device,
		queue:         queue,
		spritePipes:   make(map[SpriteVariant]*SpritePipeline),
		materialPipes: make(map[MaterialVariant]*MaterialPipeline),
	}
}

// Destroy releases all GPU resources held by the session.
func (s *PickSession) Destroy() {
	for _, p := range s.spritePipes {
		p.Destroy()
	}
	s.spritePipes = make(map[SpriteVariant]*SpritePipeline)
	for _, p := range s.materialPipes {
		p.Destroy()
	}
	s.materialPipes = make(map[MaterialVariant]*MaterialPipeline)
	s.whiteTex.destroy(s.device)
	s.whiteTex = nil
	s.textures.destroyTextures(s.device)
}

// Render encodes the frame into one dual-attachment render pass, submits
// it, and reads back both the shaded color image and the pick map.
//
// The pick attachment is cleared to zero, so pixels no batch covered
// resolve to no entity.
func (s *PickSession) Render(frame *Frame) (*FrameResult, error) {
	if frame == nil {
		return nil, ErrNilFrame
	}
	if frame.View == nil {
		return nil, ErrNilView
	}
	w := uint32(frame.View.Viewport.Width)
	h := uint32(frame.View.Viewport.Height)
	if w == 0 || h == 0 {
		return nil, ErrEmptyViewport
	}

	if err := s.textures.ensureTextures(s.device, w, h, "pick_session"); err != nil {
		return nil, err
	}
	if err := s.ensureWhiteTexture(); err != nil {
		return nil, err
	}

	viewUniform := makeViewUniform(frame.View)

	spriteRes := make([]*spriteFrameResources, 0, len(frame.Sprites))
	materialRes := make([]*materialFrameResources, 0, len(frame.Meshes))
	defer func() {
		for _, r := range spriteRes {
			r.destroy(s.device)
		}
		for _, r := range materialRes {
			r.destroy(s.device)
		}
	}()

	spritePipes := make([]*SpritePipeline, 0, len(frame.Sprites))
	for i := range frame.Sprites {
		batch := &frame.Sprites[i]
		pipe, err := s.spritePipeline(batch.Variant)
		if err != nil {
			return nil, err
		}
		res, err := s.buildSpriteResources(pipe, batch, viewUniform)
		if err != nil {
			return nil, fmt.Errorf("sprite batch %d: %w", i, err)
		}
		spritePipes = append(spritePipes, pipe)
		spriteRes = append(spriteRes, res)
	}

	materialPipes := make([]*MaterialPipeline, 0, len(frame.Meshes))
	for i := range frame.Meshes {
		batch := &frame.Meshes[i]
		pipe, err := s.materialPipeline(batch.Variant)
		if err != nil {
			return nil, err
		}
		res, err := s.buildMaterialResources(pipe, batch, viewUniform)
		if err != nil {
			return nil, fmt.Errorf("mesh batch %d: %w", i, err)
		}
		materialPipes = append(materialPipes, pipe)
		materialRes = append(materialRes, res)
	}

	return s.encodeSubmitReadback(w, h, spritePipes, spriteRes, materialPipes, materialRes)
}

// spritePipeline returns the cached pipeline for a variant, creating it
// on first use.
func (s *PickSession) spritePipeline(v SpriteVariant) (*SpritePipeline, error) {
	if p, ok := s.spritePipes[v]; ok {
		return p, nil
	}
	p := NewSpritePipeline(s.device, s.queue, v)
	if err := p.ensurePipeline(); err != nil {
		p.Destroy()
		return nil, fmt.Errorf("sprite pipeline: %w", err)
	}
	s.spritePipes[v] = p
	pick2d.Logger().Debug("created sprite pipeline",
		"colored", v.Colored, "tonemap", v.Tonemap, "quantize_alpha", v.QuantizeAlpha)
	return p, nil
}

// materialPipeline returns the cached pipeline for a variant, creating it
// on first use.
func (s *PickSession) materialPipeline(v MaterialVariant) (*MaterialPipeline, error) {
	if p, ok := s.materialPipes[v]; ok {
		return p, nil
	}
	p := NewMaterialPipeline(s.device, s.queue, v)
	if err := p.ensurePipeline(); err != nil {
		p.Destroy()
		return nil, fmt.Errorf("material pipeline: %w", err)
	}
	s.materialPipes[v] = p
	pick2d.Logger().Debug("created material pipeline",
		"vertex_colors", v.VertexColors, "quantize_alpha", v.QuantizeAlpha)
	return p, nil
}

// ensureWhiteTexture creates the 1x1 white fallback texture once.
func (s *PickSession) ensureWhiteTexture() error {
	if s.whiteTex != nil {
		return nil
	}
	tex, err := uploadTexture(s.device, s.queue, pick2d.NewUniformTexture(pick2d.White), "pick_session_white")
	if err != nil {
		return fmt.Errorf("create white texture: %w", err)
	}
	s.whiteTex = tex
	return nil
}

// batchTexture uploads the batch texture, or returns the shared white
// fallback with ownTex=false when the batch has none.
func (s *PickSession) batchTexture(src *pick2d.Texture, label string) (tex *sampledTexture, ownTex bool, err error) {
	if src == nil {
		return s.whiteTex, false, nil
	}
	tex, err = uploadTexture(s.device, s.queue, src, label)
	if err != nil {
		return nil, false, err
	}
	return tex, true, nil
}

// buildSpriteResources creates per-batch vertex/index/uniform buffers and
// the bind group for one sprite batch.
func (s *PickSession) buildSpriteResources(pipe *SpritePipeline, batch *SpriteBatch, viewUniform []byte) (*spriteFrameResources, error) {
	if len(batch.Vertices) == 0 || len(batch.Vertices)%4 != 0 {
		return nil, ErrBadSpriteBatch
	}
	quads := len(batch.Vertices) / 4

	vertBuf, err := s.createAndUploadBuffer("pick_sprite_verts", buildSpriteVertexData(batch.Vertices),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, fmt.Errorf("create vertex buffer: %w", err)
	}

	idxBuf, err := s.createAndUploadBuffer("pick_sprite_indices", buildIndexData(quadIndices(quads)),
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		s.device.DestroyBuffer(vertBuf)
		return nil, fmt.Errorf("create index buffer: %w", err)
	}

	uniformBuf, err := s.createAndUploadBuffer("pick_sprite_uniform", viewUniform,
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		s.device.DestroyBuffer(idxBuf)
		s.device.DestroyBuffer(vertBuf)
		return nil, fmt.Errorf("create uniform buffer: %w", err)
	}

	tex, ownTex, err := s.batchTexture(batch.Texture, "pick_sprite_texture")
	if err != nil {
		s.device.DestroyBuffer(uniformBuf)
		s.device.DestroyBuffer(idxBuf)
		s.device.DestroyBuffer(vertBuf)
		return nil, fmt.Errorf("upload texture: %w", err)
	}

	bindGroup, err := s.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "pick_sprite_bind",
		Layout: pipe.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: viewUniformSize,
			}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{TextureView: tex.view.NativeHandle()}},
			{Binding: 2, Resource: gputypes.SamplerBinding{Sampler: pipe.sampler.NativeHandle()}},
		},
	})
	if err != nil {
		if ownTex {
			tex.destroy(s.device)
		}
		s.device.DestroyBuffer(uniformBuf)
		s.device.DestroyBuffer(idxBuf)
		s.device.DestroyBuffer(vertBuf)
		return nil, fmt.Errorf("create bind group: %w", err)
	}

	res := &spriteFrameResources{
		vertBuf:    vertBuf,
		idxBuf:     idxBuf,
		uniformBuf: uniformBuf,
		bindGroup:  bindGroup,
		indexCount: uint32(quads * 6), //nolint:gosec // quad count fits uint32
	}
	if ownTex {
		res.texture = tex
	}
	return res, nil
}

// buildMaterialResources creates per-batch buffers and bind groups for
// one mesh batch.
func (s *PickSession) buildMaterialResources(pipe *MaterialPipeline, batch *MeshBatch, viewUniform []byte) (*materialFrameResources, error) {
	if len(batch.Indices) == 0 || len(batch.Indices)%3 != 0 {
		return nil, ErrBadMeshIndices
	}
	for _, idx := range batch.Indices {
		if int(idx) >= len(batch.Vertices) {
			return nil, ErrBadMeshIndices
		}
	}

	vertBuf, err := s.createAndUploadBuffer("pick_mesh_verts", buildMeshVertexData(batch.Vertices),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, fmt.Errorf("create vertex buffer: %w", err)
	}

	idxBuf, err := s.createAndUploadBuffer("pick_mesh_indices", buildIndexData(batch.Indices),
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		s.device.DestroyBuffer(vertBuf)
		return nil, fmt.Errorf("create index buffer: %w", err)
	}

	viewBuf, err := s.createAndUploadBuffer("pick_mesh_view_uniform", viewUniform,
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		s.device.DestroyBuffer(idxBuf)
		s.device.DestroyBuffer(vertBuf)
		return nil, fmt.Errorf("create view uniform buffer: %w", err)
	}

	materialBuf, err := s.createAndUploadBuffer("pick_mesh_material_uniform", makeMaterialUniform(batch.Material),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		s.device.DestroyBuffer(viewBuf)
		s.device.DestroyBuffer(idxBuf)
		s.device.DestroyBuffer(vertBuf)
		return nil, fmt.Errorf("create material uniform buffer: %w", err)
	}

	cleanup := func() {
		s.device.DestroyBuffer(materialBuf)
		s.device.DestroyBuffer(viewBuf)
		s.device.DestroyBuffer(idxBuf)
		s.device.DestroyBuffer(vertBuf)
	}

	tex, ownTex, err := s.batchTexture(batch.Texture, "pick_mesh_texture")
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("upload texture: %w", err)
	}

	viewBind, err := s.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "pick_mesh_view_bind",
		Layout: pipe.viewLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: viewBuf.NativeHandle(), Offset: 0, Size: viewUniformSize,
			}},
		},
	})
	if err != nil {
		if ownTex {
			tex.destroy(s.device)
		}
		cleanup()
		return nil, fmt.Errorf("create view bind group: %w", err)
	}

	materialBind, err := s.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "pick_mesh_material_bind",
		Layout: pipe.materialLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: materialBuf.NativeHandle(), Offset: 0, Size: materialUniformSize,
			}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{TextureView: tex.view.NativeHandle()}},
			{Binding: 2, Resource: gputypes.SamplerBinding{Sampler: pipe.sampler.NativeHandle()}},
		},
	})
	if err != nil {
		s.device.DestroyBindGroup(viewBind)
		if ownTex {
			tex.destroy(s.device)
		}
		cleanup()
		return nil, fmt.Errorf("create material bind group: %w", err)
	}

	res := &materialFrameResources{
		vertBuf:      vertBuf,
		idxBuf:       idxBuf,
		viewBuf:      viewBuf,
		materialBuf:  materialBuf,
		viewBind:     viewBind,
		materialBind: materialBind,
		indexCount:   uint32(len(batch.Indices)), //nolint:gosec // index count fits uint32
	}
	if ownTex {
		res.texture = tex
	}
	return res, nil
}

// encodeSubmitReadback encodes the dual-attachment render pass, copies
// both attachments to staging buffers, submits, waits, and reads back.
func (s *PickSession) encodeSubmitReadback(
	w, h uint32,
	spritePipes []*SpritePipeline,
	spriteRes []*spriteFrameResources,
	materialPipes []*MaterialPipeline,
	materialRes []*materialFrameResources,
) (*FrameResult, error) {
	encoder, err := s.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "pick_session_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("pick_session_frame"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	// All attachments clear: color to transparent, pick to zero so
	// uncovered pixels read back as no entity, depth to the far plane.
	rpDesc := &hal.RenderPassDescriptor{
		Label: "pick_session_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       s.textures.colorView,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 0},
			},
			{
				View:       s.textures.pickView,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 0},
			},
		},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:            s.textures.depthView,
			DepthLoadOp:     gputypes.LoadOpClear,
			DepthStoreOp:    gputypes.StoreOpStore,
			DepthClearValue: 1.0,
		},
	}

	rp := encoder.BeginRenderPass(rpDesc)
	for i, res := range spriteRes {
		spritePipes[i].RecordDraws(rp, res)
	}
	for i, res := range materialRes {
		materialPipes[i].RecordDraws(rp, res)
	}
	rp.End()

	// Transition the attachments for transfer. A no-op on Metal, GLES,
	// software, and noop backends; Vulkan and DX12 need the explicit
	// layout change before CopyTextureToBuffer.
	encoder.TransitionTextures([]hal.TextureBarrier{
		{
			Texture: s.textures.colorTex,
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageRenderAttachment,
				NewUsage: gputypes.TextureUsageCopySrc,
			},
		},
		{
			Texture: s.textures.pickTex,
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageRenderAttachment,
				NewUsage: gputypes.TextureUsageCopySrc,
			},
		},
		{
			Texture: s.textures.depthTex,
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageRenderAttachment,
				NewUsage: gputypes.TextureUsageCopySrc,
			},
		},
	})

	// All three formats are 4 bytes per pixel, so one pitch serves every
	// staging buffer.
	bytesPerRow := w * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingBufSize := uint64(alignedBytesPerRow) * uint64(h)

	colorStaging, err := s.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "pick_session_color_staging",
		Size:  stagingBufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("create color staging buffer: %w", err)
	}
	defer s.device.DestroyBuffer(colorStaging)

	pickStaging, err := s.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "pick_session_pick_staging",
		Size:  stagingBufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("create pick staging buffer: %w", err)
	}
	defer s.device.DestroyBuffer(pickStaging)

	depthStaging, err := s.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "pick_session_depth_staging",
		Size:  stagingBufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("create depth staging buffer: %w", err)
	}
	defer s.device.DestroyBuffer(depthStaging)

	encoder.CopyTextureToBuffer(s.textures.colorTex, colorStaging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: s.textures.colorTex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})
	encoder.CopyTextureToBuffer(s.textures.pickTex, pickStaging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: s.textures.pickTex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})
	encoder.CopyTextureToBuffer(s.textures.depthTex, depthStaging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: s.textures.depthTex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	// Transition back so the next frame's render pass finds the
	// attachments in the layout it expects.
	encoder.TransitionTextures([]hal.TextureBarrier{
		{
			Texture: s.textures.colorTex,
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageCopySrc,
				NewUsage: gputypes.TextureUsageRenderAttachment,
			},
		},
		{
			Texture: s.textures.pickTex,
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageCopySrc,
				NewUsage: gputypes.TextureUsageRenderAttachment,
			},
		},
		{
			Texture: s.textures.depthTex,
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageCopySrc,
				NewUsage: gputypes.TextureUsageRenderAttachment,
			},
		},
	})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	defer s.device.FreeCommandBuffer(cmdBuf)

	fence, err := s.device.CreateFence()
	if err != nil {
		return nil, fmt.Errorf("create fence: %w", err)
	}
	defer s.device.DestroyFence(fence)

	if err := s.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := s.device.Wait(fence, 1, 5*time.Second)
	if err != nil || !fenceOK {
		return nil, fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	colorRaw := make([]byte, stagingBufSize)
	if err := s.queue.ReadBuffer(colorStaging, 0, colorRaw); err != nil {
		return nil, fmt.Errorf("color readback: %w", err)
	}
	pickRaw := make([]byte, stagingBufSize)
	if err := s.queue.ReadBuffer(pickStaging, 0, pickRaw); err != nil {
		return nil, fmt.Errorf("pick readback: %w", err)
	}
	depthRaw := make([]byte, stagingBufSize)
	if err := s.queue.ReadBuffer(depthStaging, 0, depthRaw); err != nil {
		return nil, fmt.Errorf("depth readback: %w", err)
	}

	color := stripRowPadding(colorRaw, w*4, alignedBytesPerRow, h)
	bgraToRGBAInPlace(color)

	picks := DecodePickRows(pickRaw, int(w), int(h), int(alignedBytesPerRow))
	depth := DecodeDepthRows(depthRaw, int(w), int(h), int(alignedBytesPerRow))

	return &FrameResult{
		Width:  int(w),
		Height: int(h),
		Color:  color,
		Picks:  picks,
		Depth:  depth,
	}, nil
}

// createAndUploadBuffer creates a GPU buffer and uploads data.
func (s *PickSession) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := s.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	s.queue.WriteBuffer(buf, 0, data)
	pick2d.Logger().Debug("created buffer", "label", label, "size", len(data))
	return buf, nil
}

// stripRowPadding removes per-row copy alignment padding from readback
// data, returning tightly packed rows. When the pitch is already tight
// the data is returned truncated, without copying rows.
func stripRowPadding(data []byte, bytesPerRow, alignedBytesPerRow, rows uint32) []byte {
	if alignedBytesPerRow == bytesPerRow {
		return data[:uint64(bytesPerRow)*uint64(rows)]
	}
	tight := make([]byte, uint64(bytesPerRow)*uint64(rows))
	for row := uint32(0); row < rows; row++ {
		srcOff := int(row) * int(alignedBytesPerRow)
		dstOff := int(row) * int(bytesPerRow)
		copy(tight[dstOff:dstOff+int(bytesPerRow)], data[srcOff:srcOff+int(bytesPerRow)])
	}
	return tight
}

// bgraToRGBAInPlace swaps the B and R channels of 4-byte pixels.
func bgraToRGBAInPlace(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+2] = pix[i+2], pix[i]
	}
}
