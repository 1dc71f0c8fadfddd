package pick2d

import "cogentcore.org/core/math32"

// QuantizeAlpha forces any non-zero coverage to full opacity: 0 stays 0,
// every positive value becomes 1.
//
// Picking answers "which entity is at this pixel" per entity, not as a
// blend. Two overlapping semi-transparent draws would otherwise have their
// contributions mixed by the compositor into a value belonging to neither.
// The ceiling (rather than a threshold) keeps even faint coverage
// selectable, trading precision at soft edges for selection recall.
//
// QuantizeAlpha conditions the color channel's alpha in configurations
// where picking is derived from the color target; the identifier write
// path never depends on it. Idempotent over [0, 1].
func QuantizeAlpha(a float32) float32 {
	return math32.Ceil(math32.Clamp(a, 0, 1))
}
