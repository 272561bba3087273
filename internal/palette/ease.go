package palette

import "math"

// EaseInOutCubic maps linear progress in [0,1] onto a cubic ease-in-out
// curve. Input outside [0,1] is clamped.
func EaseInOutCubic(p float64) float64 {
	p = Clamp01(p)
	if p < 0.5 {
		return 4 * p * p * p
	}
	return 1 - math.Pow(-2*p+2, 3)/2
}

// Lerp blends a toward b per channel by t and rounds to the nearest integer.
func Lerp(a, b Color, t float64) Color {
	return Color{
		R: ClampChannel(lerp(a.R, b.R, t)),
		G: ClampChannel(lerp(a.G, b.G, t)),
		B: ClampChannel(lerp(a.B, b.B, t)),
	}
}

// Interpolate is Lerp with eased progress.
func Interpolate(a, b Color, progress float64) Color {
	return Lerp(a, b, EaseInOutCubic(progress))
}

// InterpolateLevel eases between two unrounded gray levels and rounds only
// the result.
func InterpolateLevel(a, b, progress float64) Color {
	return Gray(a + (b-a)*EaseInOutCubic(progress))
}

func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func lerp(a, b uint8, t float64) float64 {
	return float64(a) + (float64(b)-float64(a))*t
}
