package pick2d

import "cogentcore.org/core/math32"

// Tonemap is the external tone-mapping transform invoked by the sprite
// program's TonemapInShader variant. It takes and returns an RGB triple;
// alpha is never passed through it. The algorithm itself is outside this
// package's scope — any transform satisfying the signature can be bound.
type Tonemap func(rgb math32.Vector3) math32.Vector3

// TonemapReinhard is a stock operator usable where the surrounding
// pipeline does not supply its own transform: c / (1 + c) per channel.
func TonemapReinhard(rgb math32.Vector3) math32.Vector3 {
	return math32.Vec3(
		rgb.X/(1+rgb.X),
		rgb.Y/(1+rgb.Y),
		rgb.Z/(1+rgb.Z),
	)
}
