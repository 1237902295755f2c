package training

import (
	"testing"

	"github.com/umauto/uma-agent/config"
)

func obs(card CardType, bond int) Observation {
	return Observation{Card: card, BondLevel: bond}
}

func TestScore(t *testing.T) {
	w := config.DefaultScoreWeights()

	tests := []struct {
		name   string
		detail map[CardType][]Observation
		hint   bool
		train  Type
		want   float64
	}{
		{
			name:   "no supports no hint",
			detail: map[CardType][]Observation{},
			train:  SPD,
			want:   0.0,
		},
		{
			name: "rainbow support",
			detail: map[CardType][]Observation{
				CardSPD: {obs(CardSPD, 4)},
			},
			train: SPD,
			want:  1.0,
		},
		{
			name: "low bond on type",
			detail: map[CardType][]Observation{
				CardSPD: {obs(CardSPD, 3)},
			},
			train: SPD,
			want:  0.7,
		},
		{
			name: "low bond off type still counts",
			detail: map[CardType][]Observation{
				CardSTA: {obs(CardSTA, 1)},
			},
			train: SPD,
			want:  0.7,
		},
		{
			name: "high bond off type is worthless",
			detail: map[CardType][]Observation{
				CardSTA: {obs(CardSTA, 5)},
			},
			train: SPD,
			want:  0.0,
		},
		{
			name: "friend card never rainbows",
			detail: map[CardType][]Observation{
				CardFriend: {obs(CardFriend, 5)},
			},
			train: SPD,
			want:  0.0,
		},
		{
			name: "friend card at low bond",
			detail: map[CardType][]Observation{
				CardFriend: {obs(CardFriend, 2)},
			},
			train: SPD,
			want:  0.7,
		},
		{
			name:   "hint alone",
			detail: map[CardType][]Observation{},
			hint:   true,
			train:  SPD,
			want:   0.3,
		},
		{
			name: "hint counted once over mixed lineup",
			detail: map[CardType][]Observation{
				CardSPD: {obs(CardSPD, 5), obs(CardSPD, 2)},
				CardWIT: {obs(CardWIT, 4)},
			},
			hint:  true,
			train: SPD,
			want:  2.0, // 1.0 + 0.7 + 0.0 + 0.3
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.detail, tt.hint, tt.train, w)
			if got != tt.want {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreNeverNegative(t *testing.T) {
	w := config.DefaultScoreWeights()
	detail := map[CardType][]Observation{
		CardSTA:    {obs(CardSTA, 5), obs(CardSTA, 5)},
		CardFriend: {obs(CardFriend, 5)},
	}
	if got := Score(detail, false, SPD, w); got < 0 {
		t.Errorf("Score() = %v, want >= 0", got)
	}
}

func TestScoreAdditivePerIcon(t *testing.T) {
	// Two icons of the same card type score the sum of their individual
	// contributions; bond levels are never averaged.
	w := config.DefaultScoreWeights()
	detail := map[CardType][]Observation{
		CardSPD: {obs(CardSPD, 5), obs(CardSPD, 1)},
	}
	if got := Score(detail, false, SPD, w); got != 1.7 {
		t.Errorf("Score() = %v, want 1.7", got)
	}
}

func TestScoreRounding(t *testing.T) {
	w := config.ScoreWeights{Rainbow: 0.333, LowBond: 0.333, HighBondOffType: 0, Hint: 0}
	detail := map[CardType][]Observation{
		CardSPD: {obs(CardSPD, 5), obs(CardSPD, 5), obs(CardSPD, 5)},
	}
	if got := Score(detail, false, SPD, w); got != 1.0 {
		t.Errorf("Score() = %v, want 1.0 after rounding", got)
	}
}
