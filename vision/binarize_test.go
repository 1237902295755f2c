package vision

import (
	"image"
	"image/color"
	"testing"
)

func TestBinarizeWhite(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	fill(img, color.NRGBA{R: 30, G: 30, B: 30, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{R: 240, G: 240, B: 240, A: 255})

	out := BinarizeWhite(img)
	if out.Bounds().Dx() != 8 || out.Bounds().Dy() != 8 {
		t.Fatalf("output %dx%d, want 8x8 after 2x upscale", out.Bounds().Dx(), out.Bounds().Dy())
	}
	if out.GrayAt(2, 2).Y != 255 {
		t.Error("white source pixel did not binarize to 255")
	}
	if out.GrayAt(7, 7).Y != 0 {
		t.Error("dark source pixel did not binarize to 0")
	}
}

func TestBinarizeYellow(t *testing.T) {
	tests := []struct {
		name string
		c    color.NRGBA
		want uint8
	}{
		{"yellow text", color.NRGBA{R: 255, G: 200, B: 30, A: 255}, 255},
		{"white text ignored", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, 0},
		{"red ignored", color.NRGBA{R: 255, G: 40, B: 40, A: 255}, 0},
		{"dark background", color.NRGBA{R: 20, G: 20, B: 20, A: 255}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := solid(4, 4, tt.c)
			out := BinarizeYellow(img)
			if got := out.GrayAt(4, 4).Y; got != tt.want {
				t.Errorf("center pixel = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUpscaleFactorOne(t *testing.T) {
	img := solid(5, 5, color.NRGBA{R: 9, A: 255})
	out := Upscale(img, 1)
	if out.Bounds().Dx() != 5 || out.Bounds().Dy() != 5 {
		t.Errorf("factor 1 changed size to %dx%d", out.Bounds().Dx(), out.Bounds().Dy())
	}
}
