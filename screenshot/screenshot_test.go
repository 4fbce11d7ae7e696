package screenshot

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestEncodePNGRoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.SetRGBA(1, 1, color.RGBA{R: 255, A: 255})

	data, err := EncodePNG(img)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not valid PNG: %v", err)
	}
	if got := decoded.Bounds(); got != img.Bounds() {
		t.Errorf("bounds changed: got %v, want %v", got, img.Bounds())
	}
	r, _, _, a := decoded.At(1, 1).RGBA()
	if r == 0 || a == 0 {
		t.Error("pixel data lost in encoding")
	}
}

func TestCapturePrimary(t *testing.T) {
	img, err := CapturePrimary()
	if err != nil {
		t.Skipf("no display available: %v", err)
	}
	if img.Bounds().Dx() <= 0 || img.Bounds().Dy() <= 0 {
		t.Errorf("captured frame has empty bounds: %v", img.Bounds())
	}
}
