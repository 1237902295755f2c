// Package training holds the training-choice decision engine: the
// per-type scanner that turns screen frames into option records, the
// scoring rules, and the filter-then-rank selection policy.
package training

import "github.com/umauto/uma-agent/vision"

// Type is one of the five trainable stats.
type Type int

const (
	SPD Type = iota
	STA
	PWR
	GUTS
	WIT
)

// Types lists all training types in canonical scan order.
var Types = [5]Type{SPD, STA, PWR, GUTS, WIT}

func (t Type) String() string {
	switch t {
	case SPD:
		return "spd"
	case STA:
		return "sta"
	case PWR:
		return "pwr"
	case GUTS:
		return "guts"
	case WIT:
		return "wit"
	default:
		return "unknown"
	}
}

// ParseType maps a config symbol ("spd"…) to its Type.
func ParseType(s string) (Type, bool) {
	switch s {
	case "spd":
		return SPD, true
	case "sta":
		return STA, true
	case "pwr":
		return PWR, true
	case "guts":
		return GUTS, true
	case "wit":
		return WIT, true
	default:
		return 0, false
	}
}

// CardType is a support card's type: one of the five stats or friend.
type CardType int

const (
	CardSPD CardType = iota
	CardSTA
	CardPWR
	CardGUTS
	CardWIT
	CardFriend
)

// CardTypes lists all card types in scan order.
var CardTypes = [6]CardType{CardSPD, CardSTA, CardPWR, CardGUTS, CardWIT, CardFriend}

func (c CardType) String() string {
	if c == CardFriend {
		return "friend"
	}
	return Type(c).String()
}

// Trains reports whether a card of this type boosts the given training.
// Friend cards train nothing.
func (c CardType) Trains(t Type) bool {
	return c != CardFriend && Type(c) == t
}

// Observation is one detected support-card icon during a hover scan.
type Observation struct {
	Card      CardType
	Box       vision.Box
	BondLevel int      // 1..5
	SampleRGB [3]uint8 // diagnostic: the pixel the bond level came from
}

// OptionResult is the evaluated state of one training type for the
// current frame. Constructed fresh each cycle, consumed by the policy,
// never mutated afterward.
type OptionResult struct {
	Type              Type
	SupportCounts     map[CardType]int
	SupportDetail     map[CardType][]Observation
	HintPresent       bool
	TotalSupport      int
	FailurePercent    int     // defaults to 100 when OCR cannot read it
	FailureConfidence float64 // defaults to 0.0 alongside
	Score             float64
}

// worstCaseResult is the fail-safe record used when perception cannot
// evaluate a training type at all: a mis-read must never look
// attractively low-risk.
func worstCaseResult(t Type) *OptionResult {
	return &OptionResult{
		Type:              t,
		SupportCounts:     map[CardType]int{},
		SupportDetail:     map[CardType][]Observation{},
		FailurePercent:    100,
		FailureConfidence: 0.0,
	}
}

// Stats is the character's current stat values, used only for cap
// filtering.
type Stats map[Type]int
