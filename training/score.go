package training

import (
	"math"

	"github.com/umauto/uma-agent/config"
)

// Score rates one training's support lineup. Each observation contributes
// its own term; bond levels are never averaged across icons:
//
//   - same type as the training and bond >= 4 ("rainbow"): Rainbow points
//   - bond < 4, any type: LowBond points (bond still worth building)
//   - bond >= 4 but a different type: HighBondOffType points (maxed for a
//     stat this training doesn't touch)
//
// A present hint adds Hint points once. The sum is rounded to two
// decimals and has no upper bound.
func Score(detail map[CardType][]Observation, hintPresent bool, t Type, w config.ScoreWeights) float64 {
	var total float64
	for card, obs := range detail {
		for _, o := range obs {
			switch {
			case card.Trains(t) && o.BondLevel >= 4:
				total += w.Rainbow
			case o.BondLevel < 4:
				total += w.LowBond
			default:
				total += w.HighBondOffType
			}
		}
	}
	if hintPresent {
		total += w.Hint
	}
	return math.Round(total*100) / 100
}
