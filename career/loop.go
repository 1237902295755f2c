package career

import (
	"context"
	"image"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/umauto/uma-agent/config"
	"github.com/umauto/uma-agent/device"
	"github.com/umauto/uma-agent/ocr"
	"github.com/umauto/uma-agent/training"
	"github.com/umauto/uma-agent/vision"
)

const cycleInterval = time.Second

// Loop drives the career lobby: each cycle takes one screenshot,
// dispatches any popup it recognizes, and otherwise reads the lobby
// state and picks the next turn action.
type Loop struct {
	dev       device.Device
	engine    ocr.Engine
	templates *vision.Library
	store     *config.Store
	reader    *Reader
	scanner   *training.Scanner

	sleep func(time.Duration)
}

// NewLoop wires the career loop over an already-connected device.
func NewLoop(dev device.Device, engine ocr.Engine, templates *vision.Library, store *config.Store) *Loop {
	_, weights := store.Snapshot()
	return &Loop{
		dev:       dev,
		engine:    engine,
		templates: templates,
		store:     store,
		reader:    NewReader(dev, engine, templates),
		scanner:   training.NewScanner(dev, engine, templates, weights),
		sleep:     time.Sleep,
	}
}

// Run cycles until ctx is cancelled. Every cycle is independent: it
// re-snapshots the config so edits on disk apply on the next turn.
func (l *Loop) Run(ctx context.Context) error {
	log.Info().Msg("career loop started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("career loop stopped")
			return ctx.Err()
		default:
		}
		l.Cycle()
		l.sleep(cycleInterval)
	}
}

// Cycle runs one perception-decision-action pass. Popups are handled
// before any lobby logic, mirroring how the game stacks its dialogs.
func (l *Loop) Cycle() {
	cycleID := uuid.NewString()
	logger := log.With().Str("cycle", cycleID).Logger()

	cfg, weights := l.store.Snapshot()
	l.scanner.SetWeights(weights)

	frame, err := l.dev.Screencap()
	if err != nil {
		logger.Warn().Err(err).Msg("screencap failed, skipping cycle")
		return
	}

	// Popup dispatch. Order matters: claw machine and events would be
	// misread as lobby otherwise.
	if l.tapIfVisible(frame, tplClawMachine) {
		logger.Info().Msg("claw machine minigame, tapping through")
		return
	}
	if l.tapIfVisible(frame, tplOK) {
		logger.Debug().Msg("dismissed OK dialog")
		return
	}
	if l.handleEvent(frame, logger) {
		return
	}
	if l.tapIfVisible(frame, tplInspiration) {
		logger.Info().Msg("inspiration event")
		return
	}
	if l.tapIfVisible(frame, tplNext) {
		logger.Debug().Msg("dismissed Next dialog")
		return
	}
	if l.tapIfVisible(frame, tplCancel) {
		logger.Debug().Msg("dismissed Cancel dialog")
		return
	}

	// Not in the lobby: nothing recognizable, wait for the UI to settle.
	if _, ok := l.findTemplate(frame, tplTazunaHint); !ok {
		logger.Debug().Msg("lobby not visible")
		return
	}

	if l.reader.NeedsInfirmary(frame) {
		l.doInfirmary()
		return
	}

	turn := l.reader.ReadTurn(frame)
	year := l.reader.ReadYear(frame)
	criteria := l.reader.ReadCriteria(frame)
	mood := l.reader.Mood()
	energy := l.reader.EnergyPercent(frame)
	stats := l.reader.ReadStats(frame)

	logger.Info().
		Bool("race_day", turn.RaceDay).
		Int("turn", turn.Number).
		Str("year", year).
		Str("criteria", criteria).
		Str("mood", mood).
		Float64("energy", energy).
		Msg("lobby state")

	if cfg.EnableSkillPointCheck {
		if pts := l.reader.SkillPoints(frame); pts >= cfg.SkillPointCap {
			logger.Info().Int("skill_points", pts).Msg("skill point cap reached")
		}
	}

	// URA finale outranks everything else once its entry button shows.
	if _, ok := l.findTemplate(frame, tplRaceURA); ok {
		l.doURAFinale()
		return
	}
	if turn.RaceDay {
		l.doRaceDay()
		return
	}

	preDebut := training.IsPreDebut(year)
	if cfg.PrioritizeG1Race &&
		training.ShouldPrioritizeRacing(criteria, year, turn.Number, cfg.RaceTurnLimitEnabled) {
		logger.Info().Msg("criteria not met, prioritizing a race")
		if l.doRace() {
			return
		}
		logger.Info().Msg("no race found, falling back to training")
	}

	// Mood below the floor means recreation, unless energy is nearly
	// full and the turn is better spent training.
	if MoodIndex(mood) >= 0 && MoodIndex(mood) < MoodIndex(cfg.MinimumMood) && energy <= 90 {
		l.doRecreation()
		return
	}

	if energy < float64(cfg.MinEnergy) {
		logger.Info().Float64("energy", energy).Msg("energy below floor")
		l.doRest()
		return
	}

	l.trainOrFallback(frame, cfg, stats, year, preDebut, logger)
}

// handleEvent picks the top choice of a story event when one is on
// screen.
func (l *Loop) handleEvent(frame image.Image, logger zerolog.Logger) bool {
	tpl, err := l.templates.Load(tplEventChoice)
	if err != nil {
		return false
	}
	matches := vision.MatchTemplate(frame, tpl, 0.8, eventChoiceRegion)
	matches = vision.Deduplicate(matches, eventChoiceDedupPx)
	if len(matches) == 0 {
		return false
	}
	// Topmost choice is the default pick.
	best := matches[0]
	for _, m := range matches[1:] {
		if m.Y < best.Y {
			best = m
		}
	}
	cx, cy := best.Center()
	logger.Info().Int("choices", len(matches)).Msg("event, picking top choice")
	if err := l.dev.Tap(cx, cy); err != nil {
		logger.Warn().Err(err).Msg("event tap failed")
	}
	l.sleep(postTapSettle)
	return true
}

// trainOrFallback scans the five trainings, applies the strict policy,
// then walks the fallback chain when nothing passes.
func (l *Loop) trainOrFallback(frame image.Image, cfg config.Config, stats training.Stats, year string, preDebut bool, logger zerolog.Logger) {
	if !l.tapTemplate(tplTraining) {
		logger.Warn().Msg("training button not found")
		return
	}

	results := l.scanner.ScanAll()
	decision := training.DecisionFromConfig(cfg)

	if choice, ok := training.ChooseBest(results, decision, stats); ok {
		l.pickTraining(choice, results[choice], logger)
		return
	}

	logger.Info().Msg("no training passed the strict policy")

	if training.AllUnsafe(results, decision.MaximumFailure) {
		logger.Info().Msg("every training above the failure ceiling, resting")
		l.tapTemplate(tplBack)
		l.doRest()
		return
	}

	// During summer camp and Finale Season the race list cannot be
	// entered; skip straight to the relaxed pass instead of navigating
	// into a dead end every turn.
	if cfg.DoRaceWhenBadTraining && !preDebut && training.IsRacingAvailable(year) {
		l.tapTemplate(tplBack)
		if l.doRace() {
			return
		}
		if !l.tapTemplate(tplTraining) {
			return
		}
	}

	if choice, ok := training.ChooseBest(results, decision.Relaxed(), stats); ok {
		// A low-value WIT pick restores energy but wastes the turn; a
		// plain rest restores more.
		if choice == training.WIT && results[choice].Score < cfg.MinWitScore {
			l.tapTemplate(tplBack)
			l.doRest()
			return
		}
		l.pickTraining(choice, results[choice], logger)
		return
	}

	l.tapTemplate(tplBack)
	l.doRest()
}

func (l *Loop) pickTraining(t training.Type, result *training.OptionResult, logger zerolog.Logger) {
	logger.Info().
		Str("training", t.String()).
		Float64("score", result.Score).
		Int("failure", result.FailurePercent).
		Msg("training chosen")
	if pt, ok := training.TapPoint(t); ok {
		l.doTraining(pt.X, pt.Y)
	}
}
