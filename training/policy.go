package training

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/umauto/uma-agent/config"
)

// DecisionConfig is the immutable per-cycle snapshot the selection policy
// runs against.
type DecisionConfig struct {
	MaximumFailure int
	MinScore       float64
	MinWitScore    float64
	// Priority ranks the five stats; earlier wins regardless of score.
	// A stat missing from the list sorts after all listed ones.
	Priority []Type
	// StatCaps are optional ceilings; a missing entry means no cap.
	StatCaps map[Type]int
}

// DecisionFromConfig converts the string-keyed file config into the
// typed policy config. Unknown stat symbols are dropped with a warning
// rather than failing the cycle.
func DecisionFromConfig(cfg config.Config) DecisionConfig {
	d := DecisionConfig{
		MaximumFailure: cfg.MaximumFailure,
		MinScore:       cfg.MinScore,
		MinWitScore:    cfg.MinWitScore,
		StatCaps:       make(map[Type]int, len(cfg.StatCaps)),
	}
	for _, s := range cfg.PriorityStat {
		t, ok := ParseType(s)
		if !ok {
			log.Warn().Str("stat", s).Msg("unknown stat in priority_stat, ignoring")
			continue
		}
		d.Priority = append(d.Priority, t)
	}
	for s, limit := range cfg.StatCaps {
		t, ok := ParseType(s)
		if !ok {
			log.Warn().Str("stat", s).Msg("unknown stat in stat_caps, ignoring")
			continue
		}
		d.StatCaps[t] = limit
	}
	return d
}

// Relaxed returns a copy with both score floors lifted, for the
// caller-visible second pass when the strict pass chose nothing. Only the
// score gate is relaxed; failure and cap gates still apply.
func (d DecisionConfig) Relaxed() DecisionConfig {
	r := d
	r.MinScore = 0.0
	r.MinWitScore = 0.0
	return r
}

// ChooseBest runs the filter-then-rank pipeline over the scanned options:
// failure-rate gate, stat-cap gate, minimum-score gate (WIT has its own
// floor), then ranking by priority order with score descending as the
// tie-break within a priority tier. ok is false when every candidate was
// eliminated, which is a normal outcome the caller must handle.
func ChooseBest(results map[Type]*OptionResult, cfg DecisionConfig, stats Stats) (Type, bool) {
	var candidates []*OptionResult

	for _, t := range Types {
		r, present := results[t]
		if !present || r == nil {
			continue
		}

		if r.FailurePercent > cfg.MaximumFailure {
			log.Debug().Str("type", t.String()).
				Int("failure", r.FailurePercent).
				Int("max_failure", cfg.MaximumFailure).
				Msg("eliminated by failure gate")
			continue
		}

		if limit, capped := cfg.StatCaps[t]; capped {
			if cur, known := stats[t]; known && cur >= limit {
				log.Debug().Str("type", t.String()).
					Int("current", cur).Int("cap", limit).
					Msg("eliminated by stat cap")
				continue
			}
		}

		floor := cfg.MinScore
		if t == WIT {
			floor = cfg.MinWitScore
		}
		if r.Score < floor {
			log.Debug().Str("type", t.String()).
				Float64("score", r.Score).Float64("floor", floor).
				Msg("eliminated by score gate")
			continue
		}

		candidates = append(candidates, r)
	}

	if len(candidates) == 0 {
		return 0, false
	}

	rank := priorityIndex(cfg.Priority)
	sort.SliceStable(candidates, func(i, j int) bool {
		ri, rj := rank(candidates[i].Type), rank(candidates[j].Type)
		if ri != rj {
			return ri < rj
		}
		return candidates[i].Score > candidates[j].Score
	})

	best := candidates[0]
	log.Info().Str("type", best.Type.String()).
		Float64("score", best.Score).
		Int("failure", best.FailurePercent).
		Msg("training selected")
	return best.Type, true
}

// AllUnsafe reports whether every scanned option exceeds the failure
// ceiling, the trigger for the rest-instead-of-race fallback.
func AllUnsafe(results map[Type]*OptionResult, maxFailure int) bool {
	for _, r := range results {
		if r != nil && r.FailurePercent <= maxFailure {
			return false
		}
	}
	return true
}

func priorityIndex(priority []Type) func(Type) int {
	idx := make(map[Type]int, len(priority))
	for i, t := range priority {
		idx[t] = i
	}
	return func(t Type) int {
		if i, ok := idx[t]; ok {
			return i
		}
		return len(priority) + int(t)
	}
}
