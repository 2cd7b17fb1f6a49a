package imaging

import (
	"image"
	"image/color"
)

// Image holds real-valued pixel data for a grayscale (1 channel) or RGB
// (3 channel) image. Pixels are stored row-major with interleaved channels.
// Intensities are conventionally in [0,1]; operations that can leave that
// range say so explicitly.
type Image struct {
	Pix      []float64
	Height   int
	Width    int
	Channels int
}

// New creates a zero-valued image of the given dimensions.
func New(height, width, channels int) *Image {
	return &Image{
		Pix:      make([]float64, height*width*channels),
		Height:   height,
		Width:    width,
		Channels: channels,
	}
}

// NewGray creates a zero-valued single-channel image.
func NewGray(height, width int) *Image {
	return New(height, width, 1)
}

// FromImage converts a decoded standard-library image into a float64 image
// with intensities in [0,1]. Opaque color input produces 3 channels.
func FromImage(src image.Image) *Image {
	bounds := src.Bounds()
	height, width := bounds.Dy(), bounds.Dx()

	if gray, ok := src.(*image.Gray); ok {
		img := New(height, width, 1)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				img.Pix[y*width+x] = float64(gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y) / 255.0
			}
		}
		return img
	}

	img := New(height, width, 3)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := src.At(x, y).RGBA()
			img.Pix[i] = float64(r) / 65535.0
			img.Pix[i+1] = float64(g) / 65535.0
			img.Pix[i+2] = float64(b) / 65535.0
			i += 3
		}
	}
	return img
}

// IsColor reports whether the image has three channels.
func (p *Image) IsColor() bool {
	return p.Channels == 3
}

// offset computes the buffer index of the first channel at (row, col).
func (p *Image) offset(row, col int) int {
	return (row*p.Width + col) * p.Channels
}

// At returns the first-channel value at (row, col). For grayscale images
// this is the pixel intensity.
func (p *Image) At(row, col int) float64 {
	return p.Pix[p.offset(row, col)]
}

// AtChannel returns the value of channel ch at (row, col).
func (p *Image) AtChannel(row, col, ch int) float64 {
	return p.Pix[p.offset(row, col)+ch]
}

// Set writes the first-channel value at (row, col).
func (p *Image) Set(row, col int, value float64) {
	p.Pix[p.offset(row, col)] = value
}

// SetChannel writes the value of channel ch at (row, col).
func (p *Image) SetChannel(row, col, ch int, value float64) {
	p.Pix[p.offset(row, col)+ch] = value
}

// Clone returns a deep copy. Transforms in this toolkit never mutate their
// inputs; they operate on clones or freshly allocated images.
func (p *Image) Clone() *Image {
	out := New(p.Height, p.Width, p.Channels)
	copy(out.Pix, p.Pix)
	return out
}

// SameShape reports whether two images have identical dimensions.
func (p *Image) SameShape(other *Image) bool {
	return p.Height == other.Height && p.Width == other.Width && p.Channels == other.Channels
}

// ToGray renders the image into a standard-library grayscale image,
// clamping intensities to [0,1]. Color images are reduced per-pixel by the
// NTSC luma weights.
func (p *Image) ToGray() *image.Gray {
	gray := image.NewGray(image.Rect(0, 0, p.Width, p.Height))
	for row := 0; row < p.Height; row++ {
		for col := 0; col < p.Width; col++ {
			v := p.At(row, col)
			if p.IsColor() {
				v = lumaR*p.AtChannel(row, col, 0) + lumaG*p.AtChannel(row, col, 1) + lumaB*p.AtChannel(row, col, 2)
			}
			gray.SetGray(col, row, color.Gray{Y: clampByte(v)})
		}
	}
	return gray
}

// ToRGBA renders the image into a standard-library RGBA image, clamping
// intensities to [0,1]. Grayscale images replicate their channel.
func (p *Image) ToRGBA() *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	for row := 0; row < p.Height; row++ {
		for col := 0; col < p.Width; col++ {
			var r, g, b uint8
			if p.IsColor() {
				r = clampByte(p.AtChannel(row, col, 0))
				g = clampByte(p.AtChannel(row, col, 1))
				b = clampByte(p.AtChannel(row, col, 2))
			} else {
				r = clampByte(p.At(row, col))
				g, b = r, r
			}
			rgba.SetRGBA(col, row, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return rgba
}

func clampByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}
