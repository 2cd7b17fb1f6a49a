package filter

import (
	"math"
	"testing"

	"go-image-processing/internal/imaging"
)

func TestConvolve_PreservesShape(t *testing.T) {
	img := imaging.NewGray(17, 11)
	for _, size := range []int{1, 3, 5, 7} {
		kernel, err := BoxSpec{Size: size}.Build()
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		out, err := Convolve(img, kernel, PaddingZero, NormUnchanged)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if out.Height != img.Height || out.Width != img.Width {
			t.Errorf("Kernel size %d: expected shape %dx%d, got %dx%d",
				size, img.Height, img.Width, out.Height, out.Width)
		}
	}
}

func TestConvolve_CenterImpulseWithBoxKernel(t *testing.T) {
	// A 3x3 image with a unit impulse at its center, convolved with the
	// 3x3 box kernel under zero padding: center becomes 1/9, corners 0.
	img := imaging.NewGray(3, 3)
	img.Set(1, 1, 1)

	kernel, err := BoxSpec{Size: 3}.Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	out, err := Convolve(img, kernel, PaddingZero, NormUnchanged)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if math.Abs(out.At(1, 1)-1.0/9) > 1e-12 {
		t.Errorf("Expected center 1/9, got %f", out.At(1, 1))
	}
	for _, corner := range [][2]int{{0, 0}, {0, 2}, {2, 0}, {2, 2}} {
		if got := out.At(corner[0], corner[1]); math.Abs(got-1.0/9) > 1e-12 {
			t.Errorf("Expected corner (%d,%d) to be 1/9, got %f", corner[0], corner[1], got)
		}
	}
}

func TestConvolve_ImpulseCornersZero(t *testing.T) {
	// With a larger image the corners fall outside the impulse
	// neighborhood and stay zero.
	img := imaging.NewGray(5, 5)
	img.Set(2, 2, 1)

	kernel, err := BoxSpec{Size: 3}.Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	out, err := Convolve(img, kernel, PaddingZero, NormUnchanged)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if math.Abs(out.At(2, 2)-1.0/9) > 1e-12 {
		t.Errorf("Expected center 1/9, got %f", out.At(2, 2))
	}
	for _, corner := range [][2]int{{0, 0}, {0, 4}, {4, 0}, {4, 4}} {
		if got := out.At(corner[0], corner[1]); got != 0 {
			t.Errorf("Expected corner (%d,%d) to be 0, got %f", corner[0], corner[1], got)
		}
	}
}

func TestConvolve_ConstantImageUnchangedByNormalizedKernels(t *testing.T) {
	// Interior pixels of a constant image survive any weight-sum-1 kernel.
	// Zero padding darkens the boundary, so only the interior is checked.
	img := imaging.NewGray(9, 9)
	for i := range img.Pix {
		img.Pix[i] = 0.6
	}

	specs := []Spec{
		BoxSpec{Size: 3},
		GaussianSpec{Size: 3, K: 1, Sigma: 1},
	}
	for _, spec := range specs {
		kernel, err := spec.Build()
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		out, err := Convolve(img, kernel, PaddingZero, NormUnchanged)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		for row := 1; row < 8; row++ {
			for col := 1; col < 8; col++ {
				if math.Abs(out.At(row, col)-0.6) > 1e-9 {
					t.Errorf("%T: expected interior pixel (%d,%d) to stay 0.6, got %f",
						spec, row, col, out.At(row, col))
				}
			}
		}
	}
}

func TestConvolve_ColorImagePerChannel(t *testing.T) {
	img := imaging.New(3, 3, 3)
	img.SetChannel(1, 1, 0, 0.9)
	img.SetChannel(1, 1, 2, 0.3)

	kernel, err := BoxSpec{Size: 3}.Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	out, err := Convolve(img, kernel, PaddingZero, NormUnchanged)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if math.Abs(out.AtChannel(1, 1, 0)-0.9/9) > 1e-12 {
		t.Errorf("Expected red center 0.1, got %f", out.AtChannel(1, 1, 0))
	}
	if got := out.AtChannel(1, 1, 1); got != 0 {
		t.Errorf("Expected green center 0, got %f", got)
	}
	if math.Abs(out.AtChannel(1, 1, 2)-0.3/9) > 1e-12 {
		t.Errorf("Expected blue center 0.3/9, got %f", out.AtChannel(1, 1, 2))
	}
}

func TestConvolve_DoesNotMutateInput(t *testing.T) {
	img := imaging.NewGray(4, 4)
	img.Set(1, 2, 0.7)
	before := img.Clone()

	kernel, err := BoxSpec{Size: 3}.Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := Convolve(img, kernel, PaddingZero, NormCutoff); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for i := range img.Pix {
		if img.Pix[i] != before.Pix[i] {
			t.Errorf("Expected input untouched at index %d, got %f", i, img.Pix[i])
		}
	}
}
