package segmentation

import (
	"math"

	"go-image-processing/internal/imaging"
	"go-image-processing/internal/logger"
)

// Threshold binarizes an image against a scalar cut value: an output pixel
// is 1 where the source pixel strictly exceeds the threshold, otherwise 0.
func Threshold(img *imaging.Image, thresholdValue float64) *imaging.Image {
	logger.WithField("threshold", thresholdValue).Debug("Thresholding image")

	out := imaging.New(img.Height, img.Width, img.Channels)
	for i, v := range img.Pix {
		if v > thresholdValue {
			out.Pix[i] = 1
		}
	}
	return out
}

// absolute returns a copy of the image with every value replaced by its
// absolute value. Detectors threshold response magnitudes, not signs.
func absolute(img *imaging.Image) *imaging.Image {
	out := img.Clone()
	for i, v := range out.Pix {
		out.Pix[i] = math.Abs(v)
	}
	return out
}
