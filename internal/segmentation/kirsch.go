package segmentation

import (
	"sync"

	"go-image-processing/internal/filter"
	"go-image-processing/internal/imaging"
	"go-image-processing/internal/logger"
	"go-image-processing/internal/pool"
)

// KirschEdges convolves the image with the eight compass kernels and
// compares the responses per pixel. A running maximum is built across all
// directions; each direction then keeps its raw response at every pixel
// where it is not strictly dominated by another direction, and is zeroed
// elsewhere. Ties all keep their value, so the result is eight sparse
// directional images whose union approximates the total edge map.
func KirschEdges(img *imaging.Image, opts KirschOptions) (map[CompassDirection]*imaging.Image, error) {
	logger.Info("Performing Kirsch edge detection")

	responses := make(map[CompassDirection]*imaging.Image, len(CompassDirections))
	var mu sync.Mutex
	var firstErr error

	wp := pool.NewWorkerPool(opts.Workers)
	wp.Start()
	defer wp.Close()

	for _, direction := range CompassDirections {
		direction := direction
		wp.Submit(func() {
			logger.WithField("direction", string(direction)).Debug("Filtering direction")
			response, err := filter.Convolve(img, kirschKernels[direction], opts.Padding, filter.NormUnchanged)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			responses[direction] = response
		})
	}
	wp.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	// Running per-pixel maximum across all directions. Starting from zero
	// means negative responses never contribute to the maximum.
	maxImage := imaging.New(img.Height, img.Width, img.Channels)
	for _, direction := range CompassDirections {
		response := responses[direction]
		for i, v := range response.Pix {
			if v > maxImage.Pix[i] {
				maxImage.Pix[i] = v
			}
		}
	}

	// Keep a direction's response wherever it does not exceed the running
	// maximum. The comparison is deliberately non-strict: directions tied
	// at the maximum all pass through at their raw value.
	results := make(map[CompassDirection]*imaging.Image, len(CompassDirections))
	for _, direction := range CompassDirections {
		response := responses[direction]
		kept := imaging.New(img.Height, img.Width, img.Channels)
		for i, v := range response.Pix {
			if v <= maxImage.Pix[i] {
				kept.Pix[i] = v
			}
		}
		results[direction] = kept
	}
	return results, nil
}

// KirschRunningMax recomputes the per-pixel maximum over a set of Kirsch
// directional outputs. Exposed for consistency checks: the maximum over
// the kept directional images must equal the maximum over the raw
// responses at every pixel.
func KirschRunningMax(results map[CompassDirection]*imaging.Image) *imaging.Image {
	var maxImage *imaging.Image
	for _, direction := range CompassDirections {
		response, ok := results[direction]
		if !ok {
			continue
		}
		if maxImage == nil {
			maxImage = imaging.New(response.Height, response.Width, response.Channels)
		}
		for i, v := range response.Pix {
			if v > maxImage.Pix[i] {
				maxImage.Pix[i] = v
			}
		}
	}
	return maxImage
}
