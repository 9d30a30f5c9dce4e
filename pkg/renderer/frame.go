package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Frame holds rendered pixel colors in image order: row 0 is the top
type Frame struct {
	Width  int
	Height int
	Pixels []core.Color
}

// NewFrame creates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{Width: width, Height: height, Pixels: make([]core.Color, width*height)}
}

// At returns the color at image coordinates (x, y)
func (f *Frame) At(x, y int) core.Color {
	return f.Pixels[y*f.Width+x]
}

// Set stores the color at image coordinates (x, y)
func (f *Frame) Set(x, y int, c core.Color) {
	f.Pixels[y*f.Width+x] = c
}

// ToRGBA converts the frame to an 8-bit image
func (f *Frame) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := f.At(x, y).Clamp()
			img.SetRGBA(x, y, color.RGBA{
				R: quantize8(c.R),
				G: quantize8(c.G),
				B: quantize8(c.B),
				A: 255,
			})
		}
	}
	return img
}

// ToRGBA64 converts the frame to a 16-bit image
func (f *Frame) ToRGBA64() *image.RGBA64 {
	img := image.NewRGBA64(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := f.At(x, y).Clamp()
			img.SetRGBA64(x, y, color.RGBA64{
				R: quantize16(c.R),
				G: quantize16(c.G),
				B: quantize16(c.B),
				A: 0xffff,
			})
		}
	}
	return img
}

func quantize8(v float64) uint8 {
	return uint8(v*255 + 0.5)
}

func quantize16(v float64) uint16 {
	return uint16(v*65535 + 0.5)
}
