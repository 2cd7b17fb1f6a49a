package segmentation

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"gonum.org/v1/gonum/stat"

	"go-image-processing/internal/errors"
	"go-image-processing/internal/imaging"
	"go-image-processing/internal/logger"
)

// GlobalThresholdResult holds the outcome of the iterative global
// threshold search.
type GlobalThresholdResult struct {
	// Image is the input binarized with the converged threshold.
	Image *imaging.Image
	// Threshold is the converged cut value.
	Threshold float64
	// Thresholds traces every candidate computed during the search.
	Thresholds []float64
	// Iterations is the number of iterations the search took.
	Iterations int
}

// GlobalThreshold estimates a single cut value separating object and
// background intensities, then binarizes the image with it. Each iteration
// partitions the pixels around the current threshold, takes the mean of
// both groups and moves the threshold to the average of the two means,
// rounded to three decimal digits; the search stops once successive
// thresholds differ by less than DeltaT. Color input is converted to
// grayscale first.
//
// The iteration is inherently sequential. A MaxIterations bound turns an
// oscillating search into a convergence error instead of an endless loop.
func GlobalThreshold(img *imaging.Image, opts GlobalThresholdOptions) (*GlobalThresholdResult, error) {
	gray := imaging.Grayscale(img)

	threshold := round3(opts.InitialThreshold)
	logger.WithFields(logrus.Fields{
		"initial_threshold": threshold,
		"delta_t":           opts.DeltaT,
	}).Info("Searching for global threshold")

	var trace []float64
	above := make([]float64, 0, len(gray.Pix))
	below := make([]float64, 0, len(gray.Pix))

	for iteration := 1; iteration <= opts.MaxIterations; iteration++ {
		above, below = above[:0], below[:0]
		for _, v := range gray.Pix {
			if v > threshold {
				above = append(above, v)
			} else {
				below = append(below, v)
			}
		}
		if len(above) == 0 || len(below) == 0 {
			return nil, errors.NewDegenerateError(
				fmt.Sprintf("threshold %.3f leaves an empty pixel group, intensities are not separable", threshold), nil)
		}

		newThreshold := round3(0.5 * (stat.Mean(above, nil) + stat.Mean(below, nil)))
		trace = append(trace, newThreshold)

		if math.Abs(newThreshold-threshold) < opts.DeltaT {
			logger.WithFields(logrus.Fields{
				"threshold":  threshold,
				"iterations": iteration,
				"trace":      trace,
			}).Info("Global threshold reached")

			return &GlobalThresholdResult{
				Image:      Threshold(gray, threshold),
				Threshold:  threshold,
				Thresholds: trace,
				Iterations: iteration,
			}, nil
		}
		threshold = newThreshold
	}

	return nil, errors.NewConvergenceError(
		fmt.Sprintf("global threshold did not converge within %d iterations", opts.MaxIterations), nil)
}

// round3 rounds to three decimals, halves away from zero. A candidate
// landing exactly on a .0005 midpoint can differ by 0.001 from a
// round-half-to-even scheme; the convergence test absorbs that.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
