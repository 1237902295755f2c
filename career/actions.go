package career

import (
	"image"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/umauto/uma-agent/vision"
)

const (
	buttonMatchThreshold = 0.85
	tapRetryAttempts     = 3
	tapRetryBackoff      = 500 * time.Millisecond
	postTapSettle        = 500 * time.Millisecond
)

// findTemplate looks for a template on a fresh screenshot and returns
// its best match box.
func (l *Loop) findTemplate(frame image.Image, name string) (vision.Box, bool) {
	tpl, err := l.templates.Load(name)
	if err != nil {
		log.Error().Err(err).Str("template", name).Msg("template load failed")
		return vision.Box{}, false
	}
	box, score, ok := vision.MatchMax(frame, tpl, image.Rectangle{})
	if !ok || score < buttonMatchThreshold {
		return vision.Box{}, false
	}
	return box, true
}

// tapTemplate captures the screen, finds the template and taps its
// center, retrying with fresh captures while the button has not shown
// up yet.
func (l *Loop) tapTemplate(name string) bool {
	for attempt := 1; attempt <= tapRetryAttempts; attempt++ {
		frame, err := l.dev.Screencap()
		if err != nil {
			log.Warn().Err(err).Str("template", name).Msg("screencap failed before tap")
			l.sleep(tapRetryBackoff)
			continue
		}
		if box, ok := l.findTemplate(frame, name); ok {
			cx, cy := box.Center()
			if err := l.dev.Tap(cx, cy); err != nil {
				log.Warn().Err(err).Str("template", name).Msg("tap failed")
				return false
			}
			l.sleep(postTapSettle)
			return true
		}
		l.sleep(tapRetryBackoff)
	}
	return false
}

// tapIfVisible taps the template only when it is already on the given
// frame, without re-capturing.
func (l *Loop) tapIfVisible(frame image.Image, name string) bool {
	box, ok := l.findTemplate(frame, name)
	if !ok {
		return false
	}
	cx, cy := box.Center()
	if err := l.dev.Tap(cx, cy); err != nil {
		log.Warn().Err(err).Str("template", name).Msg("tap failed")
		return false
	}
	l.sleep(postTapSettle)
	return true
}

// doRest taps through the rest flow from the lobby.
func (l *Loop) doRest() {
	log.Info().Msg("resting")
	if !l.tapTemplate(tplRest) {
		log.Warn().Msg("rest button not found")
		return
	}
	l.tapTemplate(tplOK)
}

// doRecreation taps through the recreation flow from the lobby.
func (l *Loop) doRecreation() {
	log.Info().Msg("going on recreation")
	if !l.tapTemplate(tplRecreation) {
		log.Warn().Msg("recreation button not found")
		return
	}
	l.tapTemplate(tplOK)
}

// doInfirmary sends the character to the infirmary to clear a debuff.
func (l *Loop) doInfirmary() {
	log.Info().Msg("visiting infirmary")
	if !l.tapTemplate(tplInfirmary) {
		log.Warn().Msg("infirmary button not found")
		return
	}
	l.tapTemplate(tplOK)
}

// doTraining hovers are already done by the scanner; picking an option
// means tapping its training slot twice (select, then confirm).
func (l *Loop) doTraining(x, y int) {
	if err := l.dev.TripleTap(x, y); err != nil {
		log.Warn().Err(err).Msg("training tap failed")
	}
	l.sleep(postTapSettle)
}

// doRace navigates the race list and runs a race with skipped viewing.
// Returns false when no race could be started, so the caller can fall
// back to training or rest.
func (l *Loop) doRace() bool {
	log.Info().Msg("looking for a race")
	if !l.tapTemplate(tplRaces) {
		log.Warn().Msg("races button not found")
		return false
	}
	l.tapTemplate(tplOK)
	if !l.tapTemplate(tplRace) {
		log.Warn().Msg("no race available, backing out")
		l.tapTemplate(tplBack)
		l.tapTemplate(tplBack)
		return false
	}
	l.runRaceFlow()
	return true
}

// doRaceDay runs the scheduled race on a Race Day turn.
func (l *Loop) doRaceDay() {
	log.Info().Msg("race day")
	if !l.tapTemplate(tplRaceDay) {
		log.Warn().Msg("race day button not found")
		return
	}
	l.tapTemplate(tplOK)
	l.runRaceFlow()
}

// doURAFinale enters the URA finale race.
func (l *Loop) doURAFinale() {
	log.Info().Msg("URA finale")
	if !l.tapTemplate(tplRaceURA) {
		log.Warn().Msg("URA race button not found")
		return
	}
	l.tapTemplate(tplOK)
	l.runRaceFlow()
}

// runRaceFlow confirms the entry, skips the race and taps through the
// results until the lobby shows up again.
func (l *Loop) runRaceFlow() {
	l.tapTemplate(tplRace)
	l.tapTemplate(tplOK)

	// Results screens vary in count; mash Next until nothing is left.
	for i := 0; i < 10; i++ {
		frame, err := l.dev.Screencap()
		if err != nil {
			l.sleep(time.Second)
			continue
		}
		if l.tapIfVisible(frame, tplNext) {
			continue
		}
		if l.tapIfVisible(frame, tplOK) {
			continue
		}
		if _, ok := l.findTemplate(frame, tplTazunaHint); ok {
			return
		}
		l.sleep(time.Second)
	}
}
