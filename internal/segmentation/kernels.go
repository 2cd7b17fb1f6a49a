package segmentation

import "go-image-processing/internal/filter"

// LineDirection labels one of the four orientations the line detector
// responds to.
type LineDirection string

const (
	LineHorizontal LineDirection = "horizontal"
	LinePlus45     LineDirection = "plus_45"
	LineVertical   LineDirection = "vertical"
	LineMinus45    LineDirection = "minus_45"
)

// CompassDirection labels one of the eight Kirsch kernel orientations.
type CompassDirection string

const (
	North     CompassDirection = "north"
	NorthWest CompassDirection = "north_west"
	West      CompassDirection = "west"
	SouthWest CompassDirection = "south_west"
	South     CompassDirection = "south"
	SouthEast CompassDirection = "south_east"
	East      CompassDirection = "east"
	NorthEast CompassDirection = "north_east"
)

// LineDirections lists the line detector orientations in a stable order.
var LineDirections = []LineDirection{LineHorizontal, LinePlus45, LineVertical, LineMinus45}

// CompassDirections lists the Kirsch directions in a stable order.
var CompassDirections = []CompassDirection{
	North, NorthWest, West, SouthWest, South, SouthEast, East, NorthEast,
}

// mustKernel wraps NewKernel for the fixed 3×3 constants below, which
// satisfy the odd-size/square contract by construction.
func mustKernel(weights [][]float64) *filter.Kernel {
	kernel, err := filter.NewKernel(weights)
	if err != nil {
		panic(err)
	}
	return kernel
}

// lineKernels holds the four fixed orientation kernels for line detection.
var lineKernels = map[LineDirection]*filter.Kernel{
	LineHorizontal: mustKernel([][]float64{
		{-1, -1, -1},
		{2, 2, 2},
		{-1, -1, -1},
	}),
	LinePlus45: mustKernel([][]float64{
		{2, -1, -1},
		{-1, 2, -1},
		{-1, -1, 2},
	}),
	LineVertical: mustKernel([][]float64{
		{-1, 2, -1},
		{-1, 2, -1},
		{-1, 2, -1},
	}),
	LineMinus45: mustKernel([][]float64{
		{-1, -1, 2},
		{-1, 2, -1},
		{2, -1, -1},
	}),
}

// kirschKernels holds the eight fixed compass kernels for Kirsch edge
// detection. They are design constants and are not renormalized.
var kirschKernels = map[CompassDirection]*filter.Kernel{
	North: mustKernel([][]float64{
		{-3, -3, 5},
		{-3, 0, 5},
		{-3, -3, 5},
	}),
	NorthWest: mustKernel([][]float64{
		{-3, 5, 5},
		{-3, 0, 5},
		{-3, -3, -3},
	}),
	West: mustKernel([][]float64{
		{5, 5, 5},
		{-3, 0, -3},
		{-3, -3, -3},
	}),
	SouthWest: mustKernel([][]float64{
		{5, 5, -3},
		{5, 0, -3},
		{-3, -3, -3},
	}),
	South: mustKernel([][]float64{
		{5, -3, -3},
		{5, 0, -3},
		{5, -3, -3},
	}),
	SouthEast: mustKernel([][]float64{
		{-3, -3, -3},
		{5, 0, -3},
		{5, 5, -3},
	}),
	East: mustKernel([][]float64{
		{-3, -3, -3},
		{-3, 0, -3},
		{5, 5, 5},
	}),
	NorthEast: mustKernel([][]float64{
		{-3, -3, -3},
		{-3, 0, 5},
		{-3, 5, 5},
	}),
}

// LineKernel returns the fixed kernel for a line orientation, or nil for
// an unknown label.
func LineKernel(direction LineDirection) *filter.Kernel {
	return lineKernels[direction]
}

// KirschKernel returns the fixed kernel for a compass direction, or nil
// for an unknown label.
func KirschKernel(direction CompassDirection) *filter.Kernel {
	return kirschKernels[direction]
}

// laplacianKernel is the second-derivative kernel used by isolated-point
// detection. The diagonal variant responds to all eight neighbors.
var (
	laplacian4 = mustKernel([][]float64{
		{0, 1, 0},
		{1, -4, 1},
		{0, 1, 0},
	})
	laplacian8 = mustKernel([][]float64{
		{1, 1, 1},
		{1, -8, 1},
		{1, 1, 1},
	})
)
