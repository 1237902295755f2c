package career

import (
	"image"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/umauto/uma-agent/device"
	"github.com/umauto/uma-agent/ocr"
	"github.com/umauto/uma-agent/training"
	"github.com/umauto/uma-agent/vision"
)

const (
	moodAttempts       = 3
	skillPointCacheTTL = 5 * time.Minute
)

// Turn is the parsed turn counter: either a number or the Race Day
// banner.
type Turn struct {
	RaceDay bool
	Number  int
}

// Reader performs the lobby state reads: mood, turn, year, goal
// criteria, stats, skill points and energy. Every read degrades to a
// safe default instead of failing the cycle.
type Reader struct {
	dev       device.Device
	engine    ocr.Engine
	templates *vision.Library

	skillPts       int
	skillPtsReadAt time.Time

	sleep func(time.Duration)
	now   func() time.Time
}

// NewReader wires a state reader over the device, OCR engine and
// template library.
func NewReader(dev device.Device, engine ocr.Engine, templates *vision.Library) *Reader {
	return &Reader{
		dev:       dev,
		engine:    engine,
		templates: templates,
		sleep:     time.Sleep,
		now:       time.Now,
	}
}

// Mood reads the mood banner, retrying up to three times. "UNKNOWN" when
// nothing fuzzy-matches.
func (r *Reader) Mood() string {
	for attempt := 1; attempt <= moodAttempts; attempt++ {
		frame, err := r.dev.Screencap()
		if err != nil {
			log.Warn().Err(err).Msg("screencap failed during mood read")
			continue
		}
		crop := vision.Upscale(vision.Crop(frame, moodRegion), 2)
		text, err := r.engine.TextLine(crop)
		if err != nil {
			log.Debug().Err(err).Msg("mood OCR error")
			continue
		}
		mood := fuzzyMatchMood(strings.ToUpper(strings.TrimSpace(text)))
		if mood != "UNKNOWN" {
			return mood
		}
		log.Warn().Int("attempt", attempt).Str("text", text).Msg("mood not recognized")
		if attempt < moodAttempts {
			r.sleep(500 * time.Millisecond)
		}
	}
	return "UNKNOWN"
}

// fuzzyMatchMood resolves OCR-damaged mood text. Patterns are ordered
// most-restrictive first so AWFUL and GREAT never fall through to their
// shorter cousins.
func fuzzyMatchMood(text string) string {
	for _, m := range moodList {
		if text == m {
			return m
		}
	}

	cleaned := strings.NewReplacer("0", "O", "1", "I", "5", "S").Replace(text)

	containsAny := func(patterns ...string) bool {
		for _, p := range patterns {
			if strings.Contains(cleaned, p) {
				return true
			}
		}
		return false
	}

	switch {
	case containsAny("AWF", "AWFUL", "AWFU", "VAWF", "WAWF"):
		return "AWFUL"
	case containsAny("GREAT", "GREA", "REAT", "EA"):
		return "GREAT"
	case containsAny("GOOD", "GOO", "OOD", "OO"):
		return "GOOD"
	case containsAny("NORMAL", "NORMA", "ORMA", "RMAL"):
		return "NORMAL"
	case containsAny("BAD") && !strings.Contains(cleaned, "AWF"):
		return "BAD"
	}

	for _, m := range moodList {
		if strings.Contains(cleaned, m) {
			return m
		}
	}
	return "UNKNOWN"
}

// MoodIndex returns a mood's position on the scale, -1 for UNKNOWN.
func MoodIndex(mood string) int {
	for i, m := range moodList {
		if m == mood {
			return i
		}
	}
	return -1
}

// ReadTurn parses the turn counter. Race Day is checked before digit
// cleanup since the replacements would corrupt it. Defaults to turn 1.
func (r *Reader) ReadTurn(frame image.Image) Turn {
	crop := vision.Upscale(vision.Crop(frame, turnRegion), 2)
	text, err := r.engine.TextLine(crop)
	if err != nil {
		log.Debug().Err(err).Msg("turn OCR error, defaulting to 1")
		return Turn{Number: 1}
	}
	return parseTurn(text)
}

func parseTurn(text string) Turn {
	trimmed := strings.TrimSpace(text)
	for _, variant := range []string{"Race Day", "RaceDay", "Race Da"} {
		if strings.Contains(trimmed, variant) {
			return Turn{RaceDay: true}
		}
	}
	if n, ok := ocr.ExtractNumber(ocr.FixDigitConfusions(trimmed)); ok {
		return Turn{Number: n}
	}
	return Turn{Number: 1}
}

// ReadYear OCRs the year banner. "Unknown Year" when unreadable.
func (r *Reader) ReadYear(frame image.Image) string {
	crop := vision.Upscale(vision.Crop(frame, yearRegion), 2)
	text, err := r.engine.TextLine(crop)
	if err != nil || strings.TrimSpace(text) == "" {
		return "Unknown Year"
	}
	return strings.TrimSpace(text)
}

// criteriaFixups repair the concatenations tesseract produces on the
// goal banner.
var criteriaFixups = strings.NewReplacer(
	"Entrycriteriamet", "Entry criteria met",
	"Entrycriteria", "Entry criteria",
	"criteriamet", "criteria met",
	"Goalachieved", "Goal achieved",
)

// ReadCriteria OCRs the goal criteria banner. "Unknown Criteria" when
// unreadable.
func (r *Reader) ReadCriteria(frame image.Image) string {
	crop := vision.Upscale(vision.Crop(frame, criteriaRegion), 2)
	text, err := r.engine.TextLine(crop)
	if err != nil || strings.TrimSpace(text) == "" {
		return "Unknown Criteria"
	}
	return criteriaFixups.Replace(strings.TrimSpace(text))
}

// ReadStats OCRs the five current stat values. An unreadable stat reads
// as 0, which never filters a training out (caps compare with >=).
func (r *Reader) ReadStats(frame image.Image) training.Stats {
	stats := make(training.Stats, len(training.Types))
	for i, t := range training.Types {
		crop := vision.Upscale(vision.Crop(frame, statRegions[i]), 2)
		text, err := r.engine.TextLine(crop)
		if err != nil {
			stats[t] = 0
			continue
		}
		n, _ := ocr.ExtractNumber(text)
		stats[t] = n
	}
	return stats
}

// SkillPoints reads the skill point counter, caching the value for five
// minutes to avoid redundant OCR across nearby calls.
func (r *Reader) SkillPoints(frame image.Image) int {
	if !r.skillPtsReadAt.IsZero() && r.now().Sub(r.skillPtsReadAt) < skillPointCacheTTL {
		return r.skillPts
	}
	crop := vision.Upscale(vision.Crop(frame, skillPtsRegion), 2)
	text, err := r.engine.TextLine(crop)
	if err != nil {
		return r.skillPts
	}
	n, ok := ocr.ExtractNumber(text)
	if !ok {
		return r.skillPts
	}
	r.skillPts = n
	r.skillPtsReadAt = r.now()
	return n
}

// EnergyPercent estimates the energy bar fill by scanning the bar row
// for lit pixels. The bar background is dark gray; anything bright
// counts as filled.
func (r *Reader) EnergyPercent(frame image.Image) float64 {
	rect := energyBarRegion.Intersect(frame.Bounds())
	if rect.Empty() {
		return 0
	}
	y := (rect.Min.Y + rect.Max.Y) / 2
	lit := 0
	for x := rect.Min.X; x < rect.Max.X; x++ {
		if vision.RegionBrightness(frame, image.Rect(x, y, x+1, y+1)) > 90 {
			lit++
		}
	}
	return float64(lit) / float64(rect.Dx()) * 100
}

// NeedsInfirmary reports whether a debuff icon is visible and the
// infirmary button renders at full brightness.
func (r *Reader) NeedsInfirmary(frame image.Image) bool {
	tpl, err := r.templates.Load(tplDebuff)
	if err != nil {
		return false
	}
	if len(vision.MatchTemplate(frame, tpl, 0.8, image.Rectangle{})) == 0 {
		return false
	}
	brightness := vision.RegionBrightness(frame, infirmaryButtonRegion)
	return vision.IsButtonActive(brightness, vision.DefaultActiveThreshold)
}
