package filter

import (
	"github.com/sirupsen/logrus"

	"gonum.org/v1/gonum/floats"

	"go-image-processing/internal/errors"
	"go-image-processing/internal/imaging"
	"go-image-processing/internal/logger"
)

// NormMethod selects how a post-convolution image is brought back toward
// the canonical [0,1] intensity range.
type NormMethod int

const (
	// NormUnchanged returns the image as is; values may exceed [0,1].
	NormUnchanged NormMethod = iota
	// NormStretch remaps the observed [min,max] range affinely onto [0,1].
	NormStretch
	// NormCutoff clamps values below 0 up to 0 and above 1 down to 1,
	// discarding out-of-range information.
	NormCutoff
)

func (m NormMethod) String() string {
	switch m {
	case NormUnchanged:
		return "unchanged"
	case NormStretch:
		return "stretch"
	case NormCutoff:
		return "cutoff"
	default:
		return "unknown"
	}
}

// ParseNormMethod maps a method name to a NormMethod. Unrecognized names
// fall back to unchanged with a diagnostic, never an error.
func ParseNormMethod(name string) NormMethod {
	switch name {
	case "unchanged", "":
		return NormUnchanged
	case "stretch":
		return NormStretch
	case "cutoff":
		return NormCutoff
	default:
		logger.WithFields(logrus.Fields{
			"normalization_method": name,
			"available":            "unchanged, stretch, cutoff",
		}).Warn("Unrecognized normalization method, falling back to unchanged")
		return NormUnchanged
	}
}

// Normalize rescales an image under the selected method. The returned
// image is always a fresh allocation. An unrecognized method behaves as
// unchanged with a diagnostic.
func Normalize(img *imaging.Image, method NormMethod) (*imaging.Image, error) {
	logger.WithField("method", method.String()).Debug("Normalizing image")

	switch method {
	case NormUnchanged:
		return img.Clone(), nil
	case NormStretch:
		return ContrastStretch(img)
	case NormCutoff:
		out := img.Clone()
		for i, v := range out.Pix {
			if v > 1 {
				out.Pix[i] = 1
			} else if v < 0 {
				out.Pix[i] = 0
			}
		}
		return out, nil
	default:
		logger.WithField("method", int(method)).Warn("Unrecognized normalization method, returning image unchanged")
		return img.Clone(), nil
	}
}

// ContrastStretch affinely remaps the image so the lowest observed value
// becomes 0 and the highest becomes 1. A constant image has no range to
// stretch and is rejected as degenerate rather than dividing by zero.
func ContrastStretch(img *imaging.Image) (*imaging.Image, error) {
	maxValue := floats.Max(img.Pix)
	minValue := floats.Min(img.Pix)
	logger.WithFields(logrus.Fields{
		"min": minValue,
		"max": maxValue,
	}).Debug("Stretching contrast to [0,1]")

	if maxValue == minValue {
		return nil, errors.NewDegenerateError("cannot stretch a constant image (max equals min)", nil)
	}

	slope := 1 / (maxValue - minValue)
	out := img.Clone()
	for i, v := range out.Pix {
		out.Pix[i] = slope * (v - minValue)
	}
	return out, nil
}
