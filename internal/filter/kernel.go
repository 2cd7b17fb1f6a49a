package filter

import (
	"math"

	"github.com/sirupsen/logrus"

	"go-image-processing/internal/errors"
	"go-image-processing/internal/logger"
)

// Kernel is a square weight matrix convolved over an image. The side
// length is always odd so the kernel has a unique center cell.
type Kernel struct {
	Weights [][]float64
	Size    int
}

// NewKernel validates and wraps a weight matrix. Non-square matrices and
// even side lengths are rejected: neighborhood extraction depends on a
// unique center pixel.
func NewKernel(weights [][]float64) (*Kernel, error) {
	size := len(weights)
	if size == 0 {
		return nil, errors.NewValidationError("kernel must not be empty", nil)
	}
	for _, row := range weights {
		if len(row) != size {
			return nil, errors.NewValidationError("kernel is not square", nil)
		}
	}
	if size%2 == 0 {
		return nil, errors.NewValidationError("kernel size is an even number, kernels must have an odd size", nil)
	}
	return &Kernel{Weights: weights, Size: size}, nil
}

// At returns the weight at (row, col).
func (k *Kernel) At(row, col int) float64 {
	return k.Weights[row][col]
}

// Sum returns the total of all weights.
func (k *Kernel) Sum() float64 {
	var sum float64
	for _, row := range k.Weights {
		for _, w := range row {
			sum += w
		}
	}
	return sum
}

// Normalize returns a copy of the kernel scaled so its weights sum to 1.
func (k *Kernel) Normalize() *Kernel {
	sum := k.Sum()
	weights := make([][]float64, k.Size)
	for i, row := range k.Weights {
		weights[i] = make([]float64, k.Size)
		for j, w := range row {
			weights[i][j] = w / sum
		}
	}
	return &Kernel{Weights: weights, Size: k.Size}
}

// Spec describes a parametric kernel family. Each variant carries exactly
// the parameters its family needs, so a missing parameter is a compile
// error rather than a runtime surprise.
type Spec interface {
	Build() (*Kernel, error)
}

// BoxSpec builds a uniform averaging kernel: all ones, normalized.
type BoxSpec struct {
	Size int
}

func (s BoxSpec) Build() (*Kernel, error) {
	logger.WithField("size", s.Size).Debug("Generating box filter")

	if err := checkOddSize(s.Size); err != nil {
		return nil, err
	}

	weights := make([][]float64, s.Size)
	for i := range weights {
		weights[i] = make([]float64, s.Size)
		for j := range weights[i] {
			weights[i][j] = 1
		}
	}
	kernel, err := NewKernel(weights)
	if err != nil {
		return nil, err
	}
	return kernel.Normalize(), nil
}

// GaussianSpec builds a Gaussian kernel. The weight at offset (dy, dx)
// from the center is K·exp(−(dx²+dy²)/(2σ²)); the kernel is then
// normalized so its weights sum to 1.
type GaussianSpec struct {
	Size  int
	K     float64
	Sigma float64
}

func (s GaussianSpec) Build() (*Kernel, error) {
	logger.WithFields(logrus.Fields{
		"size":  s.Size,
		"k":     s.K,
		"sigma": s.Sigma,
	}).Debug("Generating Gaussian filter")

	if err := checkOddSize(s.Size); err != nil {
		return nil, err
	}
	if s.K == 0 || s.Sigma == 0 {
		return nil, errors.NewValidationError("gaussian filter requires non-zero k and sigma parameters", nil)
	}

	center := s.Size / 2
	weights := make([][]float64, s.Size)
	for row := 0; row < s.Size; row++ {
		weights[row] = make([]float64, s.Size)
		for col := 0; col < s.Size; col++ {
			rSquared := math.Pow(float64(row-center), 2) + math.Pow(float64(col-center), 2)
			weights[row][col] = s.K * math.Exp(-rSquared/(2*math.Pow(s.Sigma, 2)))
		}
	}
	kernel, err := NewKernel(weights)
	if err != nil {
		return nil, err
	}
	return kernel.Normalize(), nil
}

func checkOddSize(size int) error {
	if size <= 0 {
		return errors.NewValidationError("filter size must be positive", nil)
	}
	if size%2 == 0 {
		return errors.NewValidationError("filter size is an even number, filters must have an odd size", nil)
	}
	return nil
}
