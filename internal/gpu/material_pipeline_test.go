//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"math"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/pick2d"
)

func TestMaterialPipelineCreateDestroy(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	p := NewMaterialPipeline(device, queue, MaterialVariant{VertexColors: true})
	if err := p.ensurePipeline(); err != nil {
		t.Fatalf("ensurePipeline failed: %v", err)
	}
	if p.pipeline == nil {
		t.Error("pipeline not created")
	}
	if p.viewLayout == nil || p.materialLayout == nil {
		t.Error("bind group layouts not created")
	}

	p.Destroy()
	if p.pipeline != nil || p.shader != nil || p.sampler != nil {
		t.Error("Destroy left resources allocated")
	}
	p.Destroy()
}

func TestMeshVertexLayout(t *testing.T) {
	layouts := meshVertexLayout()
	if len(layouts) != 1 {
		t.Fatalf("layout count = %d, want 1", len(layouts))
	}
	l := layouts[0]
	if l.ArrayStride != meshVertexStride {
		t.Errorf("stride = %d, want %d", l.ArrayStride, meshVertexStride)
	}
	if len(l.Attributes) != 3 {
		t.Fatalf("attribute count = %d, want 3", len(l.Attributes))
	}
	wantOffsets := []uint64{0, 12, 20}
	wantFormats := []gputypes.VertexFormat{
		gputypes.VertexFormatFloat32x3,
		gputypes.VertexFormatFloat32x2,
		gputypes.VertexFormatFloat32x4,
	}
	for i, a := range l.Attributes {
		if a.Offset != wantOffsets[i] {
			t.Errorf("attribute %d offset = %d, want %d", i, a.Offset, wantOffsets[i])
		}
		if a.Format != wantFormats[i] {
			t.Errorf("attribute %d format = %v, want %v", i, a.Format, wantFormats[i])
		}
	}
}

func TestBuildMeshVertexData(t *testing.T) {
	verts := []pick2d.MeshVertex{{
		Position: math32.Vec3(4, 5, 6),
		UV:       math32.Vec2(0.5, 1),
		Color:    pick2d.RGBA(0.9, 0.8, 0.7, 0.6),
	}}
	data := buildMeshVertexData(verts)
	if len(data) != meshVertexStride {
		t.Fatalf("data length = %d, want %d", len(data), meshVertexStride)
	}

	readF := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
	}
	if readF(0) != 4 || readF(4) != 5 || readF(8) != 6 {
		t.Error("position bytes wrong")
	}
	if readF(12) != 0.5 || readF(16) != 1 {
		t.Error("uv bytes wrong")
	}
	if readF(20) != 0.9 || readF(32) != 0.6 {
		t.Error("color bytes wrong")
	}
}
