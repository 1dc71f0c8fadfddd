//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"math"

	"cogentcore.org/core/math32"

	"github.com/gogpu/pick2d"
)

// viewUniformSize is the byte size of the View uniform buffer.
// Layout: view_proj (mat4x4<f32>) = 64 bytes +
// inverse_view_proj (mat4x4<f32>) = 64 bytes +
// world_position (vec3<f32> + pad) = 16 bytes +
// viewport (vec4<f32>) = 16 bytes = 160 bytes.
const viewUniformSize = 160

// materialUniformSize is the byte size of the ColorMaterial uniform buffer.
// Layout: color (vec4<f32>) = 16 bytes + flags (u32) + entity_index (u32) +
// 2 pad u32 = 32 bytes.
const materialUniformSize = 32

// writeFloat32 writes one little-endian float32 into buf.
func writeFloat32(buf []byte, v float32) {
	binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
}

// writeMatrix4 writes a column-major mat4x4<f32> (64 bytes) into buf.
// math32.Matrix4 already stores its elements in column-major order, the
// layout WGSL expects.
func writeMatrix4(buf []byte, m *math32.Matrix4) {
	for i, v := range m {
		writeFloat32(buf[i*4:], v)
	}
}

// makeViewUniform serializes a View into the 160-byte uniform layout
// shared by the sprite and color-material shaders.
func makeViewUniform(view *pick2d.View) []byte {
	buf := make([]byte, viewUniformSize)

	vp := view.ViewProjection()
	writeMatrix4(buf[0:64], &vp)

	inv := view.InverseViewProjection()
	writeMatrix4(buf[64:128], &inv)

	writeFloat32(buf[128:], view.WorldPosition.X)
	writeFloat32(buf[132:], view.WorldPosition.Y)
	writeFloat32(buf[136:], view.WorldPosition.Z)
	// buf[140:144] is padding for the vec3 slot.

	writeFloat32(buf[144:], view.Viewport.X)
	writeFloat32(buf[148:], view.Viewport.Y)
	writeFloat32(buf[152:], view.Viewport.Width)
	writeFloat32(buf[156:], view.Viewport.Height)

	return buf
}

// makeMaterialUniform serializes a ColorMaterial into the 32-byte uniform
// layout of the color-material shader.
func makeMaterialUniform(mat pick2d.ColorMaterial) []byte {
	buf := make([]byte, materialUniformSize)

	writeFloat32(buf[0:], mat.Color.R)
	writeFloat32(buf[4:], mat.Color.G)
	writeFloat32(buf[8:], mat.Color.B)
	writeFloat32(buf[12:], mat.Color.A)

	binary.LittleEndian.PutUint32(buf[16:], mat.Flags)
	binary.LittleEndian.PutUint32(buf[20:], mat.EntityIndex)
	// buf[24:32] is reserved padding.

	return buf
}
