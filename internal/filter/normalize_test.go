package filter

import (
	"math"
	"testing"

	apperrors "go-image-processing/internal/errors"
	"go-image-processing/internal/imaging"
)

func testImageWithRange(values []float64) *imaging.Image {
	img := imaging.NewGray(1, len(values))
	copy(img.Pix, values)
	return img
}

func TestNormalize_UnchangedKeepsOutOfRangeValues(t *testing.T) {
	img := testImageWithRange([]float64{-0.5, 0.25, 1.75})

	out, err := Normalize(img, NormUnchanged)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for i := range img.Pix {
		if out.Pix[i] != img.Pix[i] {
			t.Errorf("Expected value %f preserved, got %f", img.Pix[i], out.Pix[i])
		}
	}
}

func TestNormalize_StretchMapsRangeToUnitInterval(t *testing.T) {
	img := testImageWithRange([]float64{-1, 0, 1, 3})

	out, err := Normalize(img, NormStretch)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	minValue, maxValue := out.Pix[0], out.Pix[0]
	for _, v := range out.Pix {
		minValue = math.Min(minValue, v)
		maxValue = math.Max(maxValue, v)
	}
	if math.Abs(minValue) > 1e-12 {
		t.Errorf("Expected stretched min 0, got %f", minValue)
	}
	if math.Abs(maxValue-1) > 1e-12 {
		t.Errorf("Expected stretched max 1, got %f", maxValue)
	}
	if math.Abs(out.Pix[1]-0.25) > 1e-12 {
		t.Errorf("Expected 0 to map to 0.25, got %f", out.Pix[1])
	}
}

func TestNormalize_StretchRejectsConstantImage(t *testing.T) {
	img := testImageWithRange([]float64{0.4, 0.4, 0.4})

	_, err := Normalize(img, NormStretch)
	if err == nil {
		t.Fatal("Expected error for constant image")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeDegenerate) {
		t.Errorf("Expected degenerate error, got %v", err)
	}
}

func TestNormalize_CutoffClampsToUnitInterval(t *testing.T) {
	img := testImageWithRange([]float64{-2, -0.1, 0.5, 1.1, 7})

	out, err := Normalize(img, NormCutoff)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for i, v := range out.Pix {
		if v < 0 || v > 1 {
			t.Errorf("Expected clamped value in [0,1], got %f at index %d", v, i)
		}
	}
	if out.Pix[2] != 0.5 {
		t.Errorf("Expected in-range value preserved, got %f", out.Pix[2])
	}
	if out.Pix[0] != 0 || out.Pix[4] != 1 {
		t.Errorf("Expected extremes clamped to 0 and 1, got %f and %f", out.Pix[0], out.Pix[4])
	}
}

func TestNormalize_UnrecognizedMethodFallsBackToUnchanged(t *testing.T) {
	img := testImageWithRange([]float64{-0.5, 2})

	out, err := Normalize(img, NormMethod(42))
	if err != nil {
		t.Fatalf("Expected fallback, not error: %v", err)
	}
	if out.Pix[0] != -0.5 || out.Pix[1] != 2 {
		t.Errorf("Expected values preserved by fallback, got %v", out.Pix)
	}
}

func TestNormalize_ReturnsFreshAllocation(t *testing.T) {
	img := testImageWithRange([]float64{0.1, 0.9})

	out, err := Normalize(img, NormUnchanged)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	out.Pix[0] = 0.7
	if img.Pix[0] != 0.1 {
		t.Errorf("Expected input untouched, got %f", img.Pix[0])
	}
}

func TestParseNormMethod(t *testing.T) {
	cases := []struct {
		name     string
		expected NormMethod
	}{
		{"unchanged", NormUnchanged},
		{"", NormUnchanged},
		{"stretch", NormStretch},
		{"cutoff", NormCutoff},
		{"sigmoid", NormUnchanged}, // unknown falls back
	}
	for _, tc := range cases {
		if got := ParseNormMethod(tc.name); got != tc.expected {
			t.Errorf("ParseNormMethod(%q): expected %v, got %v", tc.name, tc.expected, got)
		}
	}
}

func TestContrastStretch_NonConstantBounds(t *testing.T) {
	img := testImageWithRange([]float64{2, 4, 6})

	out, err := ContrastStretch(img)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Pix[0] != 0 || out.Pix[2] != 1 {
		t.Errorf("Expected endpoints 0 and 1, got %f and %f", out.Pix[0], out.Pix[2])
	}
	if math.Abs(out.Pix[1]-0.5) > 1e-12 {
		t.Errorf("Expected midpoint 0.5, got %f", out.Pix[1])
	}
}
