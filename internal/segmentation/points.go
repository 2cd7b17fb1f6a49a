package segmentation

import (
	"github.com/sirupsen/logrus"

	"go-image-processing/internal/filter"
	"go-image-processing/internal/imaging"
	"go-image-processing/internal/logger"
)

// IsolatedPoints flags pixels whose local second derivative stands out
// from all immediate neighbors: the image is convolved with a Laplacian
// kernel and the absolute response is thresholded.
func IsolatedPoints(img *imaging.Image, opts PointOptions) (*imaging.Image, error) {
	logger.WithFields(logrus.Fields{
		"include_diagonal": opts.IncludeDiagonal,
		"threshold":        opts.Threshold,
	}).Info("Detecting isolated points")

	kernel := laplacian4
	if opts.IncludeDiagonal {
		kernel = laplacian8
	}

	response, err := filter.Convolve(img, kernel, opts.Padding, filter.NormUnchanged)
	if err != nil {
		return nil, err
	}
	return Threshold(absolute(response), opts.Threshold), nil
}
