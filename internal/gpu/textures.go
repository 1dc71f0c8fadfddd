//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/pick2d"
)

// pickTargetSet holds the attachment textures of a picking pass:
//   - Color: 1x sample, BGRA8Unorm, RenderAttachment | CopySrc
//   - Pick: 1x sample, R32Uint, RenderAttachment | CopySrc
//   - Depth: 1x sample, Depth32Float, RenderAttachment | CopySrc
//
// All are single-sampled. The pick attachment carries one virtual entity
// index per pixel and cannot be resolved, so multisampling the color side
// would split the pass in two; picking passes render at 1x instead.
// Depth32Float is the only depth format WebGPU allows as a copy source,
// which the depth readback needs.
type pickTargetSet struct {
	colorTex  hal.Texture
	colorView hal.TextureView
	pickTex   hal.Texture
	pickView  hal.TextureView
	depthTex  hal.Texture
	depthView hal.TextureView
	width     uint32
	height    uint32
}

// ensureTextures creates or recreates the attachment textures if the
// requested dimensions differ from the current size. If dimensions match
// and textures exist, this is a no-op.
func (ts *pickTargetSet) ensureTextures(device hal.Device, w, h uint32, labelPrefix string) error {
	if ts.width == w && ts.height == h && ts.colorTex != nil {
		return nil
	}
	ts.destroyTextures(device)

	size := hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1}

	colorTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         labelPrefix + "_color",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create color texture: %w", err)
	}
	ts.colorTex = colorTex

	colorView, err := device.CreateTextureView(colorTex, &hal.TextureViewDescriptor{
		Label: labelPrefix + "_color_view",
	})
	if err != nil {
		ts.destroyTextures(device)
		return fmt.Errorf("create color view: %w", err)
	}
	ts.colorView = colorView

	pickTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         labelPrefix + "_pick",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatR32Uint,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		ts.destroyTextures(device)
		return fmt.Errorf("create pick texture: %w", err)
	}
	ts.pickTex = pickTex

	pickView, err := device.CreateTextureView(pickTex, &hal.TextureViewDescriptor{
		Label: labelPrefix + "_pick_view",
	})
	if err != nil {
		ts.destroyTextures(device)
		return fmt.Errorf("create pick view: %w", err)
	}
	ts.pickView = pickView

	depthTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         labelPrefix + "_depth",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatDepth32Float,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		ts.destroyTextures(device)
		return fmt.Errorf("create depth texture: %w", err)
	}
	ts.depthTex = depthTex

	depthView, err := device.CreateTextureView(depthTex, &hal.TextureViewDescriptor{
		Label: labelPrefix + "_depth_view",
	})
	if err != nil {
		ts.destroyTextures(device)
		return fmt.Errorf("create depth view: %w", err)
	}
	ts.depthView = depthView

	ts.width = w
	ts.height = h
	pick2d.Logger().Debug("created pick attachments", "width", w, "height", h)
	return nil
}

// destroyTextures releases all texture resources and resets dimensions.
func (ts *pickTargetSet) destroyTextures(device hal.Device) {
	if ts.depthView != nil {
		device.DestroyTextureView(ts.depthView)
		ts.depthView = nil
	}
	if ts.depthTex != nil {
		device.DestroyTexture(ts.depthTex)
		ts.depthTex = nil
	}
	if ts.pickView != nil {
		device.DestroyTextureView(ts.pickView)
		ts.pickView = nil
	}
	if ts.pickTex != nil {
		device.DestroyTexture(ts.pickTex)
		ts.pickTex = nil
	}
	if ts.colorView != nil {
		device.DestroyTextureView(ts.colorView)
		ts.colorView = nil
	}
	if ts.colorTex != nil {
		device.DestroyTexture(ts.colorTex)
		ts.colorTex = nil
	}
	ts.width = 0
	ts.height = 0
}

// sampledTexture is a GPU copy of a CPU-side texture, bindable as
// texture_2d<f32> in the sprite and color-material shaders.
type sampledTexture struct {
	tex  hal.Texture
	view hal.TextureView
}

// uploadTexture creates an RGBA8 GPU texture from src and uploads its
// pixel data via queue.WriteTexture.
func uploadTexture(device hal.Device, queue hal.Queue, src *pick2d.Texture, label string) (*sampledTexture, error) {
	w := uint32(src.Width())  //nolint:gosec // texture sizes fit uint32
	h := uint32(src.Height()) //nolint:gosec // texture sizes fit uint32

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture %s: %w", label, err)
	}

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("create texture view %s: %w", label, err)
	}

	queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
		},
		src.Pixels(),
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  w * 4,
			RowsPerImage: h,
		},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)

	return &sampledTexture{tex: tex, view: view}, nil
}

// destroy releases the texture and its view.
func (st *sampledTexture) destroy(device hal.Device) {
	if st == nil {
		return
	}
	if st.view != nil {
		device.DestroyTextureView(st.view)
		st.view = nil
	}
	if st.tex != nil {
		device.DestroyTexture(st.tex)
		st.tex = nil
	}
}
