package filter

import (
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"

	"go-image-processing/internal/imaging"
	"go-image-processing/internal/logger"
)

// Convolve slides the kernel over the image and computes one weighted sum
// per output pixel, per channel for color images. The image is padded by
// half the kernel size first so boundary pixels have full neighborhoods,
// and the raw result is always routed through Normalize before returning.
// Output shape equals input shape.
//
// Every output pixel is an independent reduction over its neighborhood, so
// the row loop is split into strips processed by one worker per CPU. The
// padded image and kernel are read-only during the operation; no locking
// is needed.
func Convolve(img *imaging.Image, kernel *Kernel, paddingType PaddingType, method NormMethod) (*imaging.Image, error) {
	logger.WithFields(logrus.Fields{
		"kernel_size":          kernel.Size,
		"padding_type":         paddingType.String(),
		"normalization_method": method.String(),
	}).Debug("Performing 2D convolution")

	margin := kernel.Size / 2
	padded := Pad(img, paddingType, margin)
	out := imaging.New(img.Height, img.Width, img.Channels)

	numWorkers := runtime.NumCPU()
	if img.Height < numWorkers {
		numWorkers = img.Height
	}
	if numWorkers < 1 {
		numWorkers = 1
	}
	rowsPerWorker := (img.Height + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		startRow := i * rowsPerWorker
		endRow := startRow + rowsPerWorker
		if endRow > img.Height {
			endRow = img.Height
		}
		if startRow >= endRow {
			continue
		}
		wg.Add(1)
		go func(startRow, endRow int) {
			defer wg.Done()
			convolveRows(padded, kernel, out, startRow, endRow)
		}(startRow, endRow)
	}
	wg.Wait()

	return Normalize(out, method)
}

// convolveRows computes output rows [startRow, endRow). Row strips are
// disjoint, so workers write to out without synchronization.
func convolveRows(padded *imaging.Image, kernel *Kernel, out *imaging.Image, startRow, endRow int) {
	for row := startRow; row < endRow; row++ {
		for col := 0; col < out.Width; col++ {
			for ch := 0; ch < out.Channels; ch++ {
				var sum float64
				for kr := 0; kr < kernel.Size; kr++ {
					for kc := 0; kc < kernel.Size; kc++ {
						sum += kernel.At(kr, kc) * padded.AtChannel(row+kr, col+kc, ch)
					}
				}
				out.SetChannel(row, col, ch, sum)
			}
		}
	}
}
