package config

import (
	"os"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
)

// Store hands out Config snapshots and hot-reloads config.json when its
// modification time changes. The check-and-reload is guarded by one
// mutex; callers only invoke it at the top of a decision cycle.
type Store struct {
	path       string
	scorePath  string
	mu         sync.Mutex
	cached     Config
	weights    ScoreWeights
	mtime      time.Time
	scoreMtime time.Time
	loaded     bool
}

// NewStore creates a store over config.json and training_score.json
// paths. Nothing is read until the first Snapshot call.
func NewStore(path, scorePath string) *Store {
	return &Store{path: path, scorePath: scorePath}
}

// Snapshot returns the current config and score weights, re-reading
// either file if it changed on disk. A missing or unreadable file keeps
// the last good snapshot (or defaults on first load).
func (s *Store) Snapshot() (Config, ScoreWeights) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		s.cached = Default()
		s.weights = DefaultScoreWeights()
		s.loaded = true
	}

	if mtime, ok := fileMtime(s.path); ok && !mtime.Equal(s.mtime) {
		if cfg, err := readConfig(s.path); err != nil {
			log.Error().Err(err).Str("path", s.path).Msg("config reload failed, keeping previous")
		} else {
			s.cached = cfg
			s.mtime = mtime
			log.Info().Str("path", s.path).Msg("config loaded")
		}
	}

	if mtime, ok := fileMtime(s.scorePath); ok && !mtime.Equal(s.scoreMtime) {
		if w, err := readScoreWeights(s.scorePath); err != nil {
			log.Error().Err(err).Str("path", s.scorePath).Msg("score weights reload failed, keeping previous")
		} else {
			s.weights = w
			s.scoreMtime = mtime
			log.Info().Str("path", s.scorePath).Msg("score weights loaded")
		}
	}

	return s.cached, s.weights
}

func fileMtime(path string) (time.Time, bool) {
	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return fi.ModTime(), true
}

func readConfig(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := sonic.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

func readScoreWeights(path string) (ScoreWeights, error) {
	var f scoreFile
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultScoreWeights(), err
	}
	if err := sonic.Unmarshal(data, &f); err != nil {
		return DefaultScoreWeights(), err
	}

	// Rules absent from the file keep their defaults; only explicit
	// point values override.
	w := DefaultScoreWeights()
	if p := f.ScoringRules.RainbowSupport.Points; p != nil {
		w.Rainbow = *p
	}
	if p := f.ScoringRules.NotRainbowSupportLow.Points; p != nil {
		w.LowBond = *p
	}
	if p := f.ScoringRules.NotRainbowSupportHigh.Points; p != nil {
		w.HighBondOffType = *p
	}
	if p := f.ScoringRules.Hint.Points; p != nil {
		w.Hint = *p
	}
	return w, nil
}
