package filter

import (
	"github.com/sirupsen/logrus"

	"go-image-processing/internal/errors"
	"go-image-processing/internal/imaging"
	"go-image-processing/internal/logger"
)

// PaddingType selects the boundary extension policy used before a
// neighborhood operation.
type PaddingType int

const (
	// PaddingZero extends the border with zero-valued pixels.
	PaddingZero PaddingType = iota
)

func (t PaddingType) String() string {
	switch t {
	case PaddingZero:
		return "zero"
	default:
		return "unknown"
	}
}

// ParsePaddingType maps a policy name to a PaddingType. Unrecognized names
// fall back to zero padding with a diagnostic; the policy is advisory, not
// a hard precondition.
func ParsePaddingType(name string) PaddingType {
	switch name {
	case "zero", "":
		return PaddingZero
	default:
		logger.WithField("padding_type", name).Warn("Unrecognized padding type, falling back to zero padding")
		return PaddingZero
	}
}

// Pad extends the image border by size pixels on all four sides, producing
// a (H+2s)×(W+2s) image. An unrecognized policy leaves the allocation
// untouched: the result stays all zero, matching the historical fallback.
func Pad(img *imaging.Image, paddingType PaddingType, size int) *imaging.Image {
	logger.WithFields(logrus.Fields{
		"padding_type": paddingType.String(),
		"padding_size": size,
	}).Debug("Padding image boundaries")

	padded := imaging.New(img.Height+2*size, img.Width+2*size, img.Channels)
	switch paddingType {
	case PaddingZero:
		for row := 0; row < img.Height; row++ {
			for col := 0; col < img.Width; col++ {
				for ch := 0; ch < img.Channels; ch++ {
					padded.SetChannel(row+size, col+size, ch, img.AtChannel(row, col, ch))
				}
			}
		}
	default:
		logger.WithField("padding_type", paddingType).Warn("Unrecognized padding type, image left zero-valued")
	}
	return padded
}

// SubImage returns the size×size neighborhood centered at (row, col). The
// size must be odd so the neighborhood has a center pixel. Bounds are not
// checked: callers are expected to operate on padded images where every
// requested neighborhood is in range.
func SubImage(img *imaging.Image, row, col, size int) (*imaging.Image, error) {
	if size%2 == 0 {
		return nil, errors.NewValidationError("sub-image size is an even number, a sub-image must have a center pixel", nil)
	}

	half := size / 2
	sub := imaging.New(size, size, img.Channels)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			for ch := 0; ch < img.Channels; ch++ {
				sub.SetChannel(r, c, ch, img.AtChannel(row-half+r, col-half+c, ch))
			}
		}
	}
	return sub, nil
}
