package imaging

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"go-image-processing/internal/errors"
	"go-image-processing/internal/logger"
)

// NTSC luma weights. The combination closely tracks perceived brightness of
// the red, green and blue primaries.
const (
	lumaR = 0.2989
	lumaG = 0.5870
	lumaB = 0.1140
)

// Grayscale converts a color image to grayscale using the NTSC luma
// weights. A grayscale input is returned as a copy.
func Grayscale(img *Image) *Image {
	logger.Debug("Converting image to grayscale")

	if !img.IsColor() {
		logger.Warn("Image is already grayscale, returning a copy")
		return img.Clone()
	}

	out := NewGray(img.Height, img.Width)
	for row := 0; row < img.Height; row++ {
		for col := 0; col < img.Width; col++ {
			v := lumaR*img.AtChannel(row, col, 0) +
				lumaG*img.AtChannel(row, col, 1) +
				lumaB*img.AtChannel(row, col, 2)
			out.Set(row, col, v)
		}
	}
	return out
}

// Scale multiplies every pixel value by factor. Used to move between the
// [0,1] convention and the [0,255] integer domain and back.
func Scale(img *Image, factor float64) *Image {
	logger.WithField("factor", factor).Debug("Scaling pixel values")

	out := img.Clone()
	for i := range out.Pix {
		out.Pix[i] *= factor
	}
	return out
}

// Lookup transforms an image through a 256-entry lookup table. The image is
// expected in the [0,255] integer domain; each pixel is replaced with the
// table value at its intensity.
func Lookup(img *Image, table []float64) (*Image, error) {
	if len(table) != 256 {
		return nil, errors.NewValidationError("lookup table must have 256 entries", nil)
	}

	out := img.Clone()
	for i, v := range out.Pix {
		idx := int(v)
		if idx < 0 {
			idx = 0
		} else if idx > 255 {
			idx = 255
		}
		out.Pix[i] = table[idx]
	}
	return out, nil
}

// SaltAndPepper distorts an image by randomly forcing pixels to white
// (salt) or black (pepper) with the given probabilities.
func SaltAndPepper(img *Image, pepper, salt float64, rng *rand.Rand) (*Image, error) {
	if pepper < 0 || salt < 0 || pepper+salt > 1 {
		return nil, errors.NewValidationError("salt and pepper probabilities must be non-negative and sum to at most 1", nil)
	}

	logger.WithFields(logrus.Fields{
		"pepper": pepper,
		"salt":   salt,
	}).Info("Adding salt and pepper noise")

	out := img.Clone()
	pepperPixels, saltPixels := 0, 0
	for row := 0; row < out.Height; row++ {
		for col := 0; col < out.Width; col++ {
			r := rng.Float64()
			switch {
			case r < pepper:
				if out.At(row, col) != 0 {
					pepperPixels++
				}
				for ch := 0; ch < out.Channels; ch++ {
					out.SetChannel(row, col, ch, 0)
				}
			case r < pepper+salt:
				if out.At(row, col) != 1 {
					saltPixels++
				}
				for ch := 0; ch < out.Channels; ch++ {
					out.SetChannel(row, col, ch, 1)
				}
			}
		}
	}

	total := float64(out.Height * out.Width)
	logger.WithFields(logrus.Fields{
		"pepper_pixels":  pepperPixels,
		"pepper_percent": 100 * float64(pepperPixels) / total,
		"salt_pixels":    saltPixels,
		"salt_percent":   100 * float64(saltPixels) / total,
	}).Info("Noise injection complete")

	return out, nil
}
