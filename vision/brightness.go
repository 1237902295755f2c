package vision

import "image"

// DefaultActiveThreshold is the grayscale mean above which a button is
// considered enabled. Brightness-sensitive call sites (race strategy
// icons, ghost event choices) pass 160 instead.
const DefaultActiveThreshold = 150.0

// RegionBrightness returns the mean luminance (0..255) of rect within img.
func RegionBrightness(img image.Image, rect image.Rectangle) float64 {
	r := rect.Intersect(img.Bounds())
	if r.Empty() {
		return 0
	}
	src := toNRGBA(img)
	// toNRGBA rebases non-NRGBA sources to a zero origin; shift the
	// rectangle into src's coordinate space before indexing.
	rr := r.Sub(img.Bounds().Min).Add(src.Bounds().Min)

	var sum float64
	for y := 0; y < rr.Dy(); y++ {
		o := src.PixOffset(rr.Min.X, rr.Min.Y+y)
		for x := 0; x < rr.Dx(); x++ {
			sum += luminance(src.Pix[o+0], src.Pix[o+1], src.Pix[o+2])
			o += 4
		}
	}
	return sum / float64(r.Dx()*r.Dy())
}

// IsButtonActive reports whether a region's mean brightness clears the
// given threshold. Disabled buttons render dimmed, well below 150.
func IsButtonActive(avgBrightness, threshold float64) bool {
	return avgBrightness > threshold
}

func luminance(r, g, b uint8) float64 {
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}
