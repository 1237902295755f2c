package vision

import (
	"image"
	"image/draw"
)

// matchPixelTolerance is the per-pixel Euclidean RGB distance under which
// a screen pixel counts as matching its template pixel. 60 absorbs
// compression noise and slight shading without letting a mid-gray region
// pass for a bright icon.
const matchPixelTolerance = 60

const matchPixelToleranceSq = matchPixelTolerance * matchPixelTolerance

// Crop returns a copy of the given rectangle of img. The result always has
// a zero-origin bounds so it can be handed to OCR or saved directly.
func Crop(img image.Image, r image.Rectangle) *image.NRGBA {
	r = r.Intersect(img.Bounds())
	dst := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), img, r.Min, draw.Src)
	return dst
}

// MatchTemplate slides tpl over region of img and returns every location
// whose similarity reaches threshold (0..1). Similarity is the fraction
// of pixels whose RGB distance to the template stays within a fixed
// per-pixel tolerance, so 1.0 means every pixel is within tolerance.
// Returns an empty slice, never nil, when nothing matches. A zero region
// means the whole image.
func MatchTemplate(img image.Image, tpl image.Image, threshold float64, region image.Rectangle) []Box {
	matches := []Box{}

	src := toNRGBA(img)
	sub := toNRGBA(tpl)

	tw := sub.Bounds().Dx()
	th := sub.Bounds().Dy()
	if tw == 0 || th == 0 {
		return matches
	}

	search := src.Bounds()
	if !region.Empty() {
		search = search.Intersect(region)
	}
	if search.Empty() {
		return matches
	}

	// Worst acceptable count of out-of-tolerance pixels for the
	// requested threshold; mismatchAt bails out early past it.
	allowedFails := int(float64(tw*th) * (1.0 - threshold))

	endX := search.Max.X - tw
	endY := search.Max.Y - th
	for y := search.Min.Y; y <= endY; y++ {
		for x := search.Min.X; x <= endX; x++ {
			if mismatchAt(src, sub, x, y, allowedFails) <= allowedFails {
				matches = append(matches, Box{X: x, Y: y, W: tw, H: th})
			}
		}
	}
	return matches
}

// MatchMax returns the best similarity score of tpl anywhere inside region,
// with the box it was found at. ok is false when the region is smaller than
// the template.
func MatchMax(img image.Image, tpl image.Image, region image.Rectangle) (Box, float64, bool) {
	src := toNRGBA(img)
	sub := toNRGBA(tpl)

	tw := sub.Bounds().Dx()
	th := sub.Bounds().Dy()
	if tw == 0 || th == 0 {
		return Box{}, 0, false
	}

	search := src.Bounds()
	if !region.Empty() {
		search = search.Intersect(region)
	}
	endX := search.Max.X - tw
	endY := search.Max.Y - th
	if search.Empty() || endX < search.Min.X-1 || endY < search.Min.Y-1 {
		return Box{}, 0, false
	}

	total := tw * th
	best := total
	bestBox := Box{}
	found := false
	for y := search.Min.Y; y <= endY; y++ {
		for x := search.Min.X; x <= endX; x++ {
			failed := mismatchAt(src, sub, x, y, best)
			if failed < best {
				best = failed
				bestBox = Box{X: x, Y: y, W: tw, H: th}
				found = true
			}
		}
	}
	if !found {
		return Box{}, 0, false
	}
	return bestBox, 1.0 - float64(best)/float64(total), true
}

// mismatchAt counts the pixels of sub laid over src at (offX, offY) whose
// RGB distance exceeds the per-pixel tolerance, bailing out as soon as
// the count exceeds limit.
func mismatchAt(src, sub *image.NRGBA, offX, offY, limit int) int {
	failed := 0

	tw := sub.Bounds().Dx()
	th := sub.Bounds().Dy()
	subMin := sub.Bounds().Min

	for i := 0; i < th; i++ {
		so := src.PixOffset(offX, offY+i)
		to := sub.PixOffset(subMin.X, subMin.Y+i)
		for j := 0; j < tw; j++ {
			d := sq(src.Pix[so+0], sub.Pix[to+0]) +
				sq(src.Pix[so+1], sub.Pix[to+1]) +
				sq(src.Pix[so+2], sub.Pix[to+2])
			if d > matchPixelToleranceSq {
				failed++
				if failed > limit {
					return failed
				}
			}
			so += 4
			to += 4
		}
	}
	return failed
}

func sq(a, b uint8) int {
	d := int(a) - int(b)
	return d * d
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
