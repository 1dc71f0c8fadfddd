// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"

	"cogentcore.org/core/math32"

	"github.com/gogpu/pick2d"
)

// Renderer errors.
var (
	// ErrNilTarget is returned when a draw is issued against a nil target.
	ErrNilTarget = errors.New("render: nil target")

	// ErrNilProgram is returned when a draw carries no shading program.
	ErrNilProgram = errors.New("render: nil shading program")

	// ErrBadIndices is returned when mesh indices are not a whole number
	// of triangles or reference vertices out of range.
	ErrBadIndices = errors.New("render: invalid mesh indices")
)

// SpriteDraw is one sprite quad submission. Corners are ordered
// top-left, top-right, bottom-left, bottom-right; the renderer splits the
// quad into two triangles.
type SpriteDraw struct {
	Program  *pick2d.SpriteProgram
	Vertices [4]pick2d.SpriteVertex
}

// MeshDraw is one color-material mesh submission: a triangle list over
// shared vertices. The entity identifier comes from the program's
// material block, not from the vertices.
type MeshDraw struct {
	Program  *pick2d.ColorMaterialProgram
	View     *pick2d.View
	Vertices []pick2d.MeshVertex
	Indices  []uint16
}

// SoftwareRenderer rasterizes sprite quads and color-material meshes on
// the CPU, running the pick2d shading programs once per covered pixel.
// It is the reference implementation of the GPU pipelines: same inputs,
// same fragment contracts, same dual output.
//
// Draws composite in submission order. Every fragment invocation is a
// pure function of its inputs; the renderer itself holds no state between
// draws, so one renderer may serve many targets.
type SoftwareRenderer struct{}

// NewSoftwareRenderer creates a CPU renderer for pick targets.
func NewSoftwareRenderer() *SoftwareRenderer {
	return &SoftwareRenderer{}
}

// screenVertex is a post-transform vertex in pixel coordinates with its
// interpolable varyings. The flat entity identifier is carried per
// triangle, not here.
type screenVertex struct {
	x, y, z float32
	uv      math32.Vector2
	color   pick2d.Color
}

// DrawSprite rasterizes one sprite quad into the target.
func (r *SoftwareRenderer) DrawSprite(target *PickTarget, d SpriteDraw) error {
	if target == nil {
		return ErrNilTarget
	}
	if d.Program == nil || d.Program.View == nil || d.Program.Texture == nil {
		return ErrNilProgram
	}

	var sv [4]screenVertex
	var entity [4]uint32
	for i, v := range d.Vertices {
		out := d.Program.Vertex(v)
		sv[i] = toScreen(out.ClipPosition, out.UV, out.Color, target)
		entity[i] = out.EntityIndex
	}

	shade := func(id uint32) func(uv math32.Vector2, c pick2d.Color) pick2d.FragmentOutput {
		return func(uv math32.Vector2, c pick2d.Color) pick2d.FragmentOutput {
			return d.Program.Fragment(pick2d.SpriteVaryings{
				UV:          uv,
				Color:       c,
				EntityIndex: id,
			})
		}
	}

	// The identifier is flat: each triangle takes its first vertex's
	// value, never an interpolation.
	rasterTriangle(target, sv[0], sv[1], sv[2], shade(entity[0]))
	rasterTriangle(target, sv[2], sv[1], sv[3], shade(entity[2]))
	return nil
}

// DrawMesh rasterizes a color-material triangle list into the target.
// The vertex transform is the generic mesh path: View.ViewProjection()
// applied to each position.
func (r *SoftwareRenderer) DrawMesh(target *PickTarget, d MeshDraw) error {
	if target == nil {
		return ErrNilTarget
	}
	if d.Program == nil || d.Program.Material == nil || d.View == nil {
		return ErrNilProgram
	}
	if len(d.Indices)%3 != 0 {
		return ErrBadIndices
	}

	vp := d.View.ViewProjection()
	sv := make([]screenVertex, len(d.Vertices))
	for i, v := range d.Vertices {
		clip := math32.Vector4FromVector3(v.Position, 1).MulMatrix4(&vp)
		sv[i] = toScreen(clip, v.UV, v.Color, target)
	}

	shade := func(uv math32.Vector2, c pick2d.Color) pick2d.FragmentOutput {
		return d.Program.Fragment(uv, c)
	}

	for i := 0; i+2 < len(d.Indices); i += 3 {
		i0, i1, i2 := int(d.Indices[i]), int(d.Indices[i+1]), int(d.Indices[i+2])
		if i0 >= len(sv) || i1 >= len(sv) || i2 >= len(sv) {
			return ErrBadIndices
		}
		rasterTriangle(target, sv[i0], sv[i1], sv[i2], shade)
	}
	return nil
}

// toScreen maps a clip-space position to pixel coordinates within the
// target. NDC +Y is up; pixel +Y is down.
func toScreen(clip math32.Vector4, uv math32.Vector2, c pick2d.Color, target *PickTarget) screenVertex {
	w := clip.W
	if w == 0 {
		w = 1
	}
	nx, ny, nz := clip.X/w, clip.Y/w, clip.Z/w
	return screenVertex{
		x:     (nx + 1) * 0.5 * float32(target.Width()),
		y:     (1 - ny) * 0.5 * float32(target.Height()),
		z:     nz,
		uv:    uv,
		color: c,
	}
}

// rasterTriangle fills one triangle with edge-function coverage, sampling
// at pixel centers under the top-left fill rule. Varyings interpolate
// barycentrically; the shade callback receives them and returns the dual
// fragment output.
func rasterTriangle(target *PickTarget, v0, v1, v2 screenVertex, shade func(uv math32.Vector2, c pick2d.Color) pick2d.FragmentOutput) {
	area := edge(v0.x, v0.y, v1.x, v1.y, v2.x, v2.y)
	if area == 0 {
		return
	}
	// Accept both windings.
	if area < 0 {
		v1, v2 = v2, v1
		area = -area
	}

	minX := int(math32.Floor(min3(v0.x, v1.x, v2.x)))
	maxX := int(math32.Ceil(max3(v0.x, v1.x, v2.x)))
	minY := int(math32.Floor(min3(v0.y, v1.y, v2.y)))
	maxY := int(math32.Ceil(max3(v0.y, v1.y, v2.y)))
	minX = maxInt(minX, 0)
	minY = maxInt(minY, 0)
	maxX = minInt(maxX, target.Width()-1)
	maxY = minInt(maxY, target.Height()-1)

	for py := minY; py <= maxY; py++ {
		for px := minX; px <= maxX; px++ {
			cx := float32(px) + 0.5
			cy := float32(py) + 0.5

			w0 := edge(v1.x, v1.y, v2.x, v2.y, cx, cy)
			w1 := edge(v2.x, v2.y, v0.x, v0.y, cx, cy)
			w2 := edge(v0.x, v0.y, v1.x, v1.y, cx, cy)
			if !covers(w0, v1, v2) || !covers(w1, v2, v0) || !covers(w2, v0, v1) {
				continue
			}

			b0, b1, b2 := w0/area, w1/area, w2/area
			uv := math32.Vec2(
				v0.uv.X*b0+v1.uv.X*b1+v2.uv.X*b2,
				v0.uv.Y*b0+v1.uv.Y*b1+v2.uv.Y*b2,
			)
			col := pick2d.Color{
				R: v0.color.R*b0 + v1.color.R*b1 + v2.color.R*b2,
				G: v0.color.G*b0 + v1.color.G*b1 + v2.color.G*b2,
				B: v0.color.B*b0 + v1.color.B*b1 + v2.color.B*b2,
				A: v0.color.A*b0 + v1.color.A*b1 + v2.color.A*b2,
			}
			depth := v0.z*b0 + v1.z*b1 + v2.z*b2

			target.writeFragment(px, py, shade(uv, col), depth)
		}
	}
}

func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// covers applies the top-left fill rule to one edge weight. Strictly
// interior centers always pass; a center lying exactly on the edge from
// a to b passes only when that edge is a top or left edge. A shared edge
// of two triangles then owns each center exactly once, so no pixel is
// shaded twice within a draw and no seam pixel is dropped.
//
// In pixel coordinates (+Y down, positive triangle area) a top edge runs
// rightward along a row and a left edge runs upward.
func covers(w float32, a, b screenVertex) bool {
	if w != 0 {
		return w > 0
	}
	return (a.y == b.y && b.x > a.x) || b.y < a.y
}

func min3(a, b, c float32) float32 { return math32.Min(a, math32.Min(b, c)) }
func max3(a, b, c float32) float32 { return math32.Max(a, math32.Max(b, c)) }

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
