package segmentation

import "go-image-processing/internal/filter"

// Default parameter values shared by the detectors.
const (
	DefaultThresholdValue = 0.5
	DefaultDeltaT         = 0.01
	DefaultMaxIterations  = 100
)

// PointOptions configures isolated-point detection.
type PointOptions struct {
	Padding         filter.PaddingType
	IncludeDiagonal bool
	Threshold       float64
}

// DefaultPointOptions returns the default isolated-point configuration.
func DefaultPointOptions() PointOptions {
	return PointOptions{
		Padding:         filter.PaddingZero,
		IncludeDiagonal: false,
		Threshold:       DefaultThresholdValue,
	}
}

// LineOptions configures line detection.
type LineOptions struct {
	Padding filter.PaddingType
	// Threshold sets the gradient strength a line response must exceed; a
	// higher value keeps only higher-contrast lines.
	Threshold float64
	// Workers bounds the per-direction fan-out. Zero means one per CPU.
	Workers int
}

// DefaultLineOptions returns the default line-detection configuration.
func DefaultLineOptions() LineOptions {
	return LineOptions{
		Padding:   filter.PaddingZero,
		Threshold: DefaultThresholdValue,
	}
}

// KirschOptions configures Kirsch edge detection.
type KirschOptions struct {
	Padding filter.PaddingType
	// Workers bounds the per-direction fan-out. Zero means one per CPU.
	Workers int
}

// DefaultKirschOptions returns the default Kirsch configuration.
func DefaultKirschOptions() KirschOptions {
	return KirschOptions{Padding: filter.PaddingZero}
}

// GlobalThresholdOptions configures the iterative global threshold search.
type GlobalThresholdOptions struct {
	// InitialThreshold seeds the iteration.
	InitialThreshold float64
	// DeltaT stops the iteration once successive thresholds differ by less
	// than this amount.
	DeltaT float64
	// MaxIterations bounds the search; exceeding it is a convergence
	// failure rather than an endless loop.
	MaxIterations int
}

// DefaultGlobalThresholdOptions returns the default global-threshold
// configuration.
func DefaultGlobalThresholdOptions() GlobalThresholdOptions {
	return GlobalThresholdOptions{
		InitialThreshold: DefaultThresholdValue,
		DeltaT:           DefaultDeltaT,
		MaxIterations:    DefaultMaxIterations,
	}
}
