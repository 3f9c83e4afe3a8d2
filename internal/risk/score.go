package risk

// applyClamp limits a raw score to [0, 100] when clamping is enabled,
// reporting whether the value changed. The percent-difference formulas are
// unbounded for extreme inputs, so the unclamped value is kept for display.
func applyClamp(raw int, clamp bool) (score int, clamped bool) {
	if !clamp {
		return raw, false
	}
	switch {
	case raw < 0:
		return 0, true
	case raw > 100:
		return 100, true
	default:
		return raw, false
	}
}
