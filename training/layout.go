package training

import "image"

// Fixed screen layout for the 1080x1920 reference resolution. Training
// buttons sit along the bottom row; the support-card tooltip overlay
// renders along the right edge while a training is hovered.

// trainingCoords are the tap/hover points of the five training buttons.
var trainingCoords = map[Type]image.Point{
	SPD:  {X: 165, Y: 1557},
	STA:  {X: 357, Y: 1563},
	PWR:  {X: 546, Y: 1557},
	GUTS: {X: 735, Y: 1566},
	WIT:  {X: 936, Y: 1572},
}

// supportCardRegion bounds the support-card icon column in the hover
// overlay.
var supportCardRegion = image.Rect(879, 278, 1059, 1169)

// failureRegions hold the per-type "xx%" failure text.
var failureRegions = map[Type]image.Rectangle{
	SPD:  image.Rect(95, 1110, 255, 1158),
	STA:  image.Rect(287, 1113, 447, 1161),
	PWR:  image.Rect(476, 1110, 636, 1158),
	GUTS: image.Rect(665, 1116, 825, 1164),
	WIT:  image.Rect(866, 1120, 1026, 1168),
}

// bondSampleOffset is where the bond-color ring renders relative to a
// support icon's center.
var bondSampleOffset = image.Point{X: -2, Y: 116}

// hoverLift is how far the hover swipe drags up from the training button
// to keep the tooltip overlay on screen.
const hoverLift = 200

// cardTemplates are the support icon assets, relative to the asset dir.
var cardTemplates = map[CardType]string{
	CardSPD:    "icons/support_card_type_spd.png",
	CardSTA:    "icons/support_card_type_sta.png",
	CardPWR:    "icons/support_card_type_pwr.png",
	CardGUTS:   "icons/support_card_type_guts.png",
	CardWIT:    "icons/support_card_type_wit.png",
	CardFriend: "icons/support_card_type_friend.png",
}

const hintTemplate = "icons/hint.png"

// TapPoint returns the training button position for a type, for the
// caller that executes the chosen training.
func TapPoint(t Type) (image.Point, bool) {
	p, ok := trainingCoords[t]
	return p, ok
}
