// Package config owns the two JSON files the agent is tuned with:
// config.json for decision thresholds and device settings, and
// training_score.json for scoring weights.
package config

// Config is one immutable snapshot of config.json. Components receive a
// snapshot per decision cycle; they never reach into the store mid-cycle.
type Config struct {
	DeviceSerial string `json:"device_serial"`
	AssetDir     string `json:"asset_dir"`
	DebugMode    bool   `json:"debug_mode"`

	MinimumMood string `json:"minimum_mood"`
	MinEnergy   int    `json:"min_energy"`

	MaximumFailure int            `json:"maximum_failure"`
	MinScore       float64        `json:"min_score"`
	MinWitScore    float64        `json:"min_wit_score"`
	PriorityStat   []string       `json:"priority_stat"`
	StatCaps       map[string]int `json:"stat_caps"`

	DoRaceWhenBadTraining bool `json:"do_race_when_bad_training"`
	PrioritizeG1Race      bool `json:"prioritize_g1_race"`
	// The turn<10 racing condition from the goal decision; ships
	// disabled because its original intent is unclear.
	RaceTurnLimitEnabled bool `json:"race_turn_limit_enabled"`

	EnableSkillPointCheck bool `json:"enable_skill_point_check"`
	SkillPointCap         int  `json:"skill_point_cap"`
}

// Default returns the documented defaults, applied before the file is
// merged on top.
func Default() Config {
	return Config{
		AssetDir:       "assets",
		MinimumMood:    "NORMAL",
		MinEnergy:      30,
		MaximumFailure: 15,
		MinScore:       1.0,
		MinWitScore:    1.0,
		PriorityStat:   []string{"spd", "sta", "wit", "pwr", "guts"},
		StatCaps: map[string]int{
			"spd": 600, "sta": 600, "pwr": 600, "guts": 600, "wit": 600,
		},
		DoRaceWhenBadTraining: true,
		EnableSkillPointCheck: true,
		SkillPointCap:         9999,
	}
}

// ScoreWeights are the training score rule points from
// training_score.json.
type ScoreWeights struct {
	Rainbow         float64
	LowBond         float64
	HighBondOffType float64
	Hint            float64
}

// DefaultScoreWeights are the shipped scoring rule points, used until
// training_score.json is present.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		Rainbow:         1.0,
		LowBond:         0.7,
		HighBondOffType: 0.0,
		Hint:            0.3,
	}
}

// scoreFile is the on-disk shape of training_score.json: each rule keeps
// a free-text description next to its point value.
type scoreFile struct {
	ScoringRules struct {
		RainbowSupport        scoreRule `json:"rainbow_support"`
		NotRainbowSupportLow  scoreRule `json:"not_rainbow_support_low"`
		NotRainbowSupportHigh scoreRule `json:"not_rainbow_support_high"`
		Hint                  scoreRule `json:"hint"`
	} `json:"scoring_rules"`
}

// Points is a pointer so a rule left out of the file can keep its
// default instead of zeroing out.
type scoreRule struct {
	Description string   `json:"description"`
	Points      *float64 `json:"points"`
}
