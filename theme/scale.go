package theme

import "math"

// Size is a text size step
type Size int

const (
	SizeSm Size = iota
	SizeMd
	SizeLg
)

// FontScale shrinks long labels: (scale/length)^0.3.
// A zero scale or empty label leaves the size alone.
func FontScale(scale float64, length int) float64 {
	if scale <= 0 || length <= 0 {
		return 1
	}
	return math.Pow(scale/float64(length), 0.3)
}

// FontSize returns the relative size of a label
func FontSize(size Size, scale float64, label string) float64 {
	base := 2.5
	switch size {
	case SizeSm:
		base = 1
	case SizeMd:
		base = 1.5
	}
	return FontScale(scale, len([]rune(label))) * base
}

// KnobAngle maps a value 0-1 to a pointer angle in degrees, -135 to 135
func KnobAngle(v float64) float64 {
	return (v - 0.5) * 270
}

// SpaceCells converts a space keyword to terminal cells for the theme
func (t Theme) SpaceCells(size Size) int {
	base := 1.0
	switch size {
	case SizeSm:
		base = 0.5
	case SizeLg:
		base = 2
	}
	return int(math.Round(base * t.Space))
}
