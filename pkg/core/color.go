package core

// Color is an RGB triple. Every combining operation clamps the
// channels back into [0,1].
type Color struct {
	R, G, B float64
}

// NewColor creates a clamped color
func NewColor(r, g, b float64) Color {
	return Color{r, g, b}.Clamp()
}

// Black returns the zero color
func Black() Color {
	return Color{}
}

// White returns full intensity on every channel
func White() Color {
	return Color{1, 1, 1}
}

// Clamp returns the color with every channel limited to [0,1]
func (c Color) Clamp() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

// Add returns the clamped sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}.Clamp()
}

// Multiply returns the clamped color scaled by a scalar
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}.Clamp()
}

// MultiplyColor returns the clamped channel-wise product
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}.Clamp()
}

// AverageColors returns the channel-wise mean, or black for no colors
func AverageColors(colors []Color) Color {
	if len(colors) == 0 {
		return Black()
	}
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	n := float64(len(colors))
	return Color{r / n, g / n, b / n}.Clamp()
}

func clamp01(x float64) float64 {
	return max(0, min(1, x))
}
