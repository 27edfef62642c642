package imaging

import "math"

// ScaleToBounds returns the dimensions an image must be resized to so that its
// shorter side is at least minSize and its longer side at most maxSize.
//
// Images already within bounds are returned unchanged. Otherwise a single
// uniform ratio is derived, first for the "too small" case and then for the
// "too large" case, and each resulting side is clamped into [minSize, maxSize].
// Extreme aspect ratios can therefore be distorted by the clamp.
func ScaleToBounds(width, height, minSize, maxSize int) (int, int) {
	if width <= 0 || height <= 0 {
		return width, height
	}
	shorter, longer := min(width, height), max(width, height)
	if shorter >= minSize && longer <= maxSize {
		return width, height
	}

	ratio := 1.0
	if shorter < minSize {
		ratio = math.Max(float64(minSize)/float64(shorter), float64(minSize)/float64(longer))
	}
	if longer > maxSize {
		down := float64(maxSize) / float64(longer)
		if ratio > 1 {
			ratio = math.Min(ratio, down)
		} else {
			ratio = down
		}
	}

	return clamp(scaleSide(width, ratio), minSize, maxSize), clamp(scaleSide(height, ratio), minSize, maxSize)
}

// InBounds reports whether ScaleToBounds would leave the size untouched.
func InBounds(width, height, minSize, maxSize int) bool {
	w, h := ScaleToBounds(width, height, minSize, maxSize)
	return w == width && h == height
}

func scaleSide(side int, ratio float64) int {
	// the epsilon keeps 200*(512/200) at 512 instead of 511
	return int(math.Floor(float64(side)*ratio + 1e-9))
}

func clamp(v, lo, hi int) int {
	return max(min(v, hi), lo)
}
