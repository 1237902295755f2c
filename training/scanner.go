package training

import (
	"image"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/umauto/uma-agent/config"
	"github.com/umauto/uma-agent/device"
	"github.com/umauto/uma-agent/ocr"
	"github.com/umauto/uma-agent/vision"
)

const (
	supportMatchThreshold = 0.80
	hintMatchThreshold    = 0.80
	dedupThresholdPx      = 30

	// Failure OCR: each binarization path gets three attempts and a
	// reading only counts once its mean confidence clears the bar.
	failureOCRAttempts   = 3
	failureMinConfidence = 0.7

	hoverSettle  = 100 * time.Millisecond
	retryBackoff = 100 * time.Millisecond
)

// Scanner evaluates the five training options by hovering each button and
// reading the support overlay. Perception failures never abort a scan;
// they degrade the affected fields to their documented worst-case
// defaults so the policy can run on whatever was readable.
type Scanner struct {
	dev       device.Device
	engine    ocr.Engine
	templates *vision.Library
	weights   config.ScoreWeights

	sleep func(time.Duration)
}

// NewScanner wires a scanner over the device, OCR engine and template
// library. Score weights are a per-cycle snapshot.
func NewScanner(dev device.Device, engine ocr.Engine, templates *vision.Library, weights config.ScoreWeights) *Scanner {
	return &Scanner{
		dev:       dev,
		engine:    engine,
		templates: templates,
		weights:   weights,
		sleep:     time.Sleep,
	}
}

// SetWeights swaps the score weights for the next scan. Weights come
// from a per-cycle config snapshot, so they stay stable within a scan.
func (s *Scanner) SetWeights(w config.ScoreWeights) {
	s.weights = w
}

// ScanAll produces the full per-type option map. All five passes complete
// before the result is returned; the policy needs the whole map to rank.
func (s *Scanner) ScanAll() map[Type]*OptionResult {
	results := make(map[Type]*OptionResult, len(Types))
	for _, t := range Types {
		results[t] = s.scanOne(t)
	}
	return results
}

func (s *Scanner) scanOne(t Type) *OptionResult {
	coords := trainingCoords[t]

	// Hold on the button and drag up so the support tooltip surfaces.
	if err := s.dev.Swipe(coords.X, coords.Y, coords.X, coords.Y-hoverLift, 100); err != nil {
		log.Warn().Err(err).Str("type", t.String()).Msg("hover gesture failed")
		return worstCaseResult(t)
	}
	s.sleep(hoverSettle)

	frame, err := s.dev.Screencap()
	if err != nil {
		log.Warn().Err(err).Str("type", t.String()).Msg("screencap failed during scan")
		return worstCaseResult(t)
	}

	detail, counts, total := s.scanSupportCards(frame)
	hint := s.scanHint(frame)
	failure, confidence := s.checkFailure(t, frame)
	score := Score(detail, hint, t, s.weights)

	result := &OptionResult{
		Type:              t,
		SupportCounts:     counts,
		SupportDetail:     detail,
		HintPresent:       hint,
		TotalSupport:      total,
		FailurePercent:    failure,
		FailureConfidence: confidence,
		Score:             score,
	}

	log.Info().
		Str("type", t.String()).
		Int("support", total).
		Bool("hint", hint).
		Int("failure", failure).
		Float64("confidence", confidence).
		Float64("score", score).
		Msg("training option scanned")
	return result
}

// scanSupportCards template-matches each card-type icon inside the
// support region, deduplicates, and classifies the bond ring color at a
// fixed offset from each icon center.
func (s *Scanner) scanSupportCards(frame image.Image) (map[CardType][]Observation, map[CardType]int, int) {
	detail := make(map[CardType][]Observation)
	counts := make(map[CardType]int)
	total := 0

	src := frame
	bounds := frame.Bounds()

	for _, card := range CardTypes {
		tpl, err := s.templates.Load(cardTemplates[card])
		if err != nil {
			log.Warn().Err(err).Str("card", card.String()).Msg("support template unavailable")
			continue
		}

		raw := vision.MatchTemplate(src, tpl, supportMatchThreshold, supportCardRegion)
		matches := vision.Deduplicate(raw, dedupThresholdPx)
		if len(matches) == 0 {
			continue
		}

		obs := make([]Observation, 0, len(matches))
		for _, m := range matches {
			cx, cy := m.Center()
			sx := clamp(cx+bondSampleOffset.X, bounds.Min.X, bounds.Max.X-1)
			sy := clamp(cy+bondSampleOffset.Y, bounds.Min.Y, bounds.Max.Y-1)
			r, g, b, _ := src.At(sx, sy).RGBA()
			rgb := [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
			obs = append(obs, Observation{
				Card:      card,
				Box:       m,
				BondLevel: vision.ClassifyBondLevel(int(rgb[0]), int(rgb[1]), int(rgb[2])),
				SampleRGB: rgb,
			})
		}
		detail[card] = obs
		counts[card] = len(obs)
		total += len(obs)
	}
	return detail, counts, total
}

func (s *Scanner) scanHint(frame image.Image) bool {
	tpl, err := s.templates.Load(hintTemplate)
	if err != nil {
		log.Warn().Err(err).Msg("hint template unavailable")
		return false
	}
	return len(vision.MatchTemplate(frame, tpl, hintMatchThreshold, supportCardRegion)) > 0
}

// checkFailure OCRs the failure percentage with the two-pass strategy:
// white-text binarization first, then the yellow "Failure" variant, three
// attempts each, re-capturing between attempts. When no attempt produces
// a confident in-range percentage, the result is the fail-safe (100, 0.0).
func (s *Scanner) checkFailure(t Type, firstFrame image.Image) (int, float64) {
	region := failureRegions[t]

	frame := firstFrame
	for pass, binarize := range []func(image.Image) *image.Gray{vision.BinarizeWhite, vision.BinarizeYellow} {
		for attempt := 0; attempt < failureOCRAttempts; attempt++ {
			if frame == nil {
				var err error
				frame, err = s.dev.Screencap()
				if err != nil {
					log.Warn().Err(err).Str("type", t.String()).Msg("screencap failed during failure OCR")
					continue
				}
			}

			crop := vision.Crop(frame, region)
			text, confidence, err := s.engine.TextWithConfidence(binarize(crop))
			frame = nil // force a fresh capture on retry
			if err != nil {
				log.Debug().Err(err).Str("type", t.String()).Int("pass", pass).Msg("failure OCR error")
				s.sleep(retryBackoff)
				continue
			}

			if rate, ok := ocr.ExtractPercent(text); ok && confidence >= failureMinConfidence {
				return rate, confidence
			}
			log.Debug().
				Str("type", t.String()).
				Str("text", text).
				Float64("confidence", confidence).
				Int("pass", pass).
				Int("attempt", attempt+1).
				Msg("failure OCR below confidence bar")
			s.sleep(retryBackoff)
		}
	}

	log.Warn().Str("type", t.String()).Msg("failure rate unreadable, assuming worst case")
	return 100, 0.0
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
