package preprocess

import (
	"image"
	"image/color"
	"math"
	"testing"
)

// solidImage builds a uniform RGBA image.
func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestResizeNoop(t *testing.T) {
	img := solidImage(4, 4, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	if got := Resize(img, 4, 4); got != img {
		t.Error("Expected the same image back when size already matches")
	}
}

func TestResizeScales(t *testing.T) {
	img := solidImage(8, 8, color.RGBA{R: 100, G: 100, B: 100, A: 255})
	got := Resize(img, 2, 4)
	b := got.Bounds()
	if b.Dx() != 2 || b.Dy() != 4 {
		t.Errorf("Expected 2x4, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestToTensorNCHW(t *testing.T) {
	img := solidImage(2, 2, color.RGBA{R: 255, G: 0, B: 127, A: 255})

	data, shape, err := ToTensor(img, Options{Width: 2, Height: 2})
	if err != nil {
		t.Fatalf("ToTensor failed: %v", err)
	}

	wantShape := []int64{1, 3, 2, 2}
	for i, d := range wantShape {
		if shape[i] != d {
			t.Fatalf("Expected shape %v, got %v", wantShape, shape)
		}
	}
	if len(data) != 12 {
		t.Fatalf("Expected 12 values, got %d", len(data))
	}

	// Planar layout: 4 red values, then 4 green, then 4 blue.
	for i := 0; i < 4; i++ {
		if data[i] != 1 {
			t.Errorf("Red plane value %d: got %v, want 1", i, data[i])
		}
		if data[4+i] != 0 {
			t.Errorf("Green plane value %d: got %v, want 0", i, data[4+i])
		}
		if math.Abs(float64(data[8+i]-127.0/255)) > 1e-6 {
			t.Errorf("Blue plane value %d: got %v, want %v", i, data[8+i], 127.0/255)
		}
	}
}

func TestToTensorNHWC(t *testing.T) {
	img := solidImage(2, 2, color.RGBA{R: 255, G: 0, B: 0, A: 255})

	data, shape, err := ToTensor(img, Options{Width: 2, Height: 2, Layout: NHWC})
	if err != nil {
		t.Fatalf("ToTensor failed: %v", err)
	}

	wantShape := []int64{1, 2, 2, 3}
	for i, d := range wantShape {
		if shape[i] != d {
			t.Fatalf("Expected shape %v, got %v", wantShape, shape)
		}
	}

	// Interleaved layout: R G B per pixel.
	for px := 0; px < 4; px++ {
		if data[px*3] != 1 || data[px*3+1] != 0 || data[px*3+2] != 0 {
			t.Errorf("Pixel %d: got %v", px, data[px*3:px*3+3])
		}
	}
}

func TestToTensorNormalization(t *testing.T) {
	img := solidImage(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	data, _, err := ToTensor(img, Options{
		Width:  1,
		Height: 1,
		Mean:   ImageNet.Mean,
		Std:    ImageNet.Std,
	})
	if err != nil {
		t.Fatalf("ToTensor failed: %v", err)
	}

	want := (1 - ImageNet.Mean[0]) / ImageNet.Std[0]
	if math.Abs(float64(data[0]-want)) > 1e-5 {
		t.Errorf("Expected %v, got %v", want, data[0])
	}
}

func TestToTensorResizes(t *testing.T) {
	img := solidImage(10, 10, color.RGBA{R: 50, G: 50, B: 50, A: 255})

	data, _, err := ToTensor(img, Options{Width: 3, Height: 3})
	if err != nil {
		t.Fatalf("ToTensor failed: %v", err)
	}
	if len(data) != 27 {
		t.Errorf("Expected 27 values, got %d", len(data))
	}
}

func TestToTensorInvalidSize(t *testing.T) {
	img := solidImage(2, 2, color.RGBA{})
	if _, _, err := ToTensor(img, Options{Width: 0, Height: 2}); err == nil {
		t.Error("Expected error for zero width")
	}
}
