package imaging

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestNew_ZeroValued(t *testing.T) {
	img := New(3, 4, 3)
	if img.Height != 3 || img.Width != 4 || img.Channels != 3 {
		t.Errorf("Expected 3x4x3 image, got %dx%dx%d", img.Height, img.Width, img.Channels)
	}
	if len(img.Pix) != 36 {
		t.Errorf("Expected 36 pixel values, got %d", len(img.Pix))
	}
	for i, v := range img.Pix {
		if v != 0 {
			t.Errorf("Expected zero value at index %d, got %f", i, v)
		}
	}
}

func TestAtSetChannel_RoundTrip(t *testing.T) {
	img := New(2, 3, 3)
	img.SetChannel(1, 2, 2, 0.75)
	if got := img.AtChannel(1, 2, 2); got != 0.75 {
		t.Errorf("Expected 0.75, got %f", got)
	}
	if got := img.AtChannel(1, 2, 0); got != 0 {
		t.Errorf("Expected untouched channel to stay 0, got %f", got)
	}
}

func TestClone_Independent(t *testing.T) {
	img := NewGray(2, 2)
	img.Set(0, 0, 0.5)

	clone := img.Clone()
	clone.Set(0, 0, 0.9)

	if img.At(0, 0) != 0.5 {
		t.Errorf("Expected original untouched, got %f", img.At(0, 0))
	}
	if clone.At(0, 0) != 0.9 {
		t.Errorf("Expected clone updated, got %f", clone.At(0, 0))
	}
}

func TestFromImage_Gray(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	gray.SetGray(1, 0, color.Gray{Y: 255})

	img := FromImage(gray)
	if img.Channels != 1 {
		t.Fatalf("Expected 1 channel, got %d", img.Channels)
	}
	if math.Abs(img.At(0, 1)-1) > 1e-9 {
		t.Errorf("Expected white pixel to map to 1, got %f", img.At(0, 1))
	}
	if img.At(0, 0) != 0 {
		t.Errorf("Expected black pixel to map to 0, got %f", img.At(0, 0))
	}
}

func TestFromImage_Color(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 1, 1))
	rgba.SetRGBA(0, 0, color.RGBA{R: 255, G: 0, B: 127, A: 255})

	img := FromImage(rgba)
	if img.Channels != 3 {
		t.Fatalf("Expected 3 channels, got %d", img.Channels)
	}
	if math.Abs(img.AtChannel(0, 0, 0)-1) > 1e-3 {
		t.Errorf("Expected red 1, got %f", img.AtChannel(0, 0, 0))
	}
	if img.AtChannel(0, 0, 1) != 0 {
		t.Errorf("Expected green 0, got %f", img.AtChannel(0, 0, 1))
	}
	if math.Abs(img.AtChannel(0, 0, 2)-127.0/255) > 1e-3 {
		t.Errorf("Expected blue 127/255, got %f", img.AtChannel(0, 0, 2))
	}
}

func TestToGray_RoundTrip(t *testing.T) {
	img := NewGray(1, 2)
	img.Set(0, 0, 0)
	img.Set(0, 1, 1)

	gray := img.ToGray()
	if gray.GrayAt(0, 0).Y != 0 {
		t.Errorf("Expected 0, got %d", gray.GrayAt(0, 0).Y)
	}
	if gray.GrayAt(1, 0).Y != 255 {
		t.Errorf("Expected 255, got %d", gray.GrayAt(1, 0).Y)
	}
}

func TestToGray_ClampsOutOfRange(t *testing.T) {
	img := NewGray(1, 2)
	img.Set(0, 0, -0.5)
	img.Set(0, 1, 1.5)

	gray := img.ToGray()
	if gray.GrayAt(0, 0).Y != 0 {
		t.Errorf("Expected negative value clamped to 0, got %d", gray.GrayAt(0, 0).Y)
	}
	if gray.GrayAt(1, 0).Y != 255 {
		t.Errorf("Expected overflow clamped to 255, got %d", gray.GrayAt(1, 0).Y)
	}
}

func TestToRGBA_GrayscaleReplicatesChannels(t *testing.T) {
	img := NewGray(1, 1)
	img.Set(0, 0, 0.5)

	rgba := img.ToRGBA()
	c := rgba.RGBAAt(0, 0)
	if c.R != c.G || c.G != c.B {
		t.Errorf("Expected equal channels, got %d %d %d", c.R, c.G, c.B)
	}
	if c.A != 255 {
		t.Errorf("Expected opaque pixel, got alpha %d", c.A)
	}
}

func TestSameShape(t *testing.T) {
	a := New(2, 3, 1)
	b := New(2, 3, 1)
	c := New(3, 2, 1)
	if !a.SameShape(b) {
		t.Error("Expected identical shapes to match")
	}
	if a.SameShape(c) {
		t.Error("Expected different shapes not to match")
	}
}
