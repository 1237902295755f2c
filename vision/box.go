package vision

import (
	"image"
	"math"

	"github.com/rs/zerolog/log"
)

// Box is a template-match bounding box in screen pixel coordinates,
// top-left origin. Boxes are produced per frame and never persisted.
type Box struct {
	X, Y, W, H int
}

// Center returns the pixel center of the box.
func (b Box) Center() (int, int) {
	return b.X + b.W/2, b.Y + b.H/2
}

// Rect converts the box into an image.Rectangle.
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.W, b.Y+b.H)
}

// Deduplicate collapses near-duplicate matches by greedy center-distance
// clustering. The first match is always accepted; each later match is
// discarded when its center lies within thresholdPx of any already
// accepted center. First-seen wins, so the result is order-dependent.
// Boxes with a non-positive side are skipped.
func Deduplicate(matches []Box, thresholdPx int) []Box {
	if len(matches) == 0 {
		return []Box{}
	}

	accepted := make([]Box, 0, len(matches))
	for _, m := range matches {
		if m.W <= 0 || m.H <= 0 {
			log.Warn().
				Int("x", m.X).Int("y", m.Y).Int("w", m.W).Int("h", m.H).
				Msg("skipping degenerate match box")
			continue
		}
		cx, cy := m.Center()
		duplicate := false
		for _, a := range accepted {
			ax, ay := a.Center()
			if math.Hypot(float64(cx-ax), float64(cy-ay)) < float64(thresholdPx) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			accepted = append(accepted, m)
		}
	}
	return accepted
}
