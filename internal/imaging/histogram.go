package imaging

import (
	"gonum.org/v1/gonum/floats"

	"go-image-processing/internal/logger"
)

// HistogramBins is the number of intensity buckets in a histogram. Pixel
// values in [0,1] are scaled to the [0,255] integer domain for counting.
const HistogramBins = 256

// Histogram counts pixels per intensity value for a grayscale image. When
// normalize is set, counts become probabilities that sum to 1. Color input
// counts only the first channel and logs a warning; use ChannelHistograms
// for per-channel counts.
func Histogram(img *Image, normalize bool) []float64 {
	logger.Debug("Calculating image histogram")

	if img.IsColor() {
		logger.Warn("Histogram called on a color image, counting only the first channel")
	}

	hist := make([]float64, HistogramBins)
	for row := 0; row < img.Height; row++ {
		for col := 0; col < img.Width; col++ {
			bin := int(img.At(row, col) * (HistogramBins - 1))
			if bin < 0 {
				bin = 0
			} else if bin >= HistogramBins {
				bin = HistogramBins - 1
			}
			hist[bin]++
		}
	}

	if normalize {
		total := floats.Sum(hist)
		if total > 0 {
			floats.Scale(1/total, hist)
		}
	}
	return hist
}

// ChannelHistograms computes one histogram per channel of a color image.
// For a grayscale image the slice holds a single histogram.
func ChannelHistograms(img *Image, normalize bool) [][]float64 {
	if !img.IsColor() {
		return [][]float64{Histogram(img, normalize)}
	}

	logger.Debug("Color image, splitting into channel histograms")
	histograms := make([][]float64, img.Channels)
	for ch := 0; ch < img.Channels; ch++ {
		channel := NewGray(img.Height, img.Width)
		for row := 0; row < img.Height; row++ {
			for col := 0; col < img.Width; col++ {
				channel.Set(row, col, img.AtChannel(row, col, ch))
			}
		}
		histograms[ch] = Histogram(channel, normalize)
	}
	return histograms
}
