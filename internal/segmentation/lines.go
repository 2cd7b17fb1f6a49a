package segmentation

import (
	"sync"

	"go-image-processing/internal/filter"
	"go-image-processing/internal/imaging"
	"go-image-processing/internal/logger"
	"go-image-processing/internal/pool"
)

// DetectLines convolves the image with each of the four fixed orientation
// kernels and thresholds the absolute response independently. The result
// holds one binary image per orientation; callers inspect whichever
// orientations matter to them.
//
// The four directions are independent, so they run concurrently on a
// worker pool with a single join at the end.
func DetectLines(img *imaging.Image, opts LineOptions) (map[LineDirection]*imaging.Image, error) {
	logger.WithField("threshold", opts.Threshold).Info("Detecting lines in all orientations")

	results := make(map[LineDirection]*imaging.Image, len(LineDirections))
	var mu sync.Mutex
	var firstErr error

	wp := pool.NewWorkerPool(opts.Workers)
	wp.Start()
	defer wp.Close()

	for _, direction := range LineDirections {
		direction := direction
		wp.Submit(func() {
			logger.WithField("direction", string(direction)).Debug("Filtering orientation")
			response, err := filter.Convolve(img, lineKernels[direction], opts.Padding, filter.NormUnchanged)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			results[direction] = Threshold(absolute(response), opts.Threshold)
		})
	}
	wp.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
