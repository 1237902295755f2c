package career

import "image"

// Lobby OCR regions for the 1080x1920 reference resolution.
var (
	moodRegion      = image.Rect(705, 123, 855, 168)
	turnRegion      = image.Rect(12, 24, 174, 111)
	yearRegion      = image.Rect(12, 130, 310, 180)
	criteriaRegion  = image.Rect(360, 177, 810, 222)
	skillPtsRegion  = image.Rect(870, 1227, 1050, 1284)
	energyBarRegion = image.Rect(380, 57, 1000, 72)

	statRegions = []image.Rectangle{
		image.Rect(108, 1284, 204, 1326),  // spd
		image.Rect(273, 1284, 375, 1329),  // sta
		image.Rect(444, 1284, 543, 1326),  // pwr
		image.Rect(621, 1281, 711, 1323),  // guts
		image.Rect(780, 1284, 876, 1323),  // wit
	}

	// infirmaryButtonRegion is sampled for brightness: the button dims
	// when the infirmary is unavailable.
	infirmaryButtonRegion = image.Rect(206, 1641, 416, 1728)

	// eventChoiceRegion bounds the left icon column of event choices.
	eventChoiceRegion = image.Rect(6, 450, 126, 1776)
)

// eventChoiceDedupPx is the dedup distance for event-choice icons. Wider
// than the support-card 30px because duplicate detections smear across a
// whole choice row; anything closer than a row apart is the same choice.
const eventChoiceDedupPx = 150

// Button and UI templates, relative to the asset dir.
const (
	tplOK          = "buttons/ok_btn.png"
	tplNext        = "buttons/next_btn.png"
	tplCancel      = "buttons/cancel_btn.png"
	tplBack        = "buttons/back_btn.png"
	tplTraining    = "buttons/training_btn.png"
	tplRaces       = "buttons/races_btn.png"
	tplRace        = "buttons/race_btn.png"
	tplRaceURA     = "buttons/race_ura.png"
	tplRaceDay     = "buttons/race_day_btn.png"
	tplRest        = "buttons/rest_btn.png"
	tplRecreation  = "buttons/recreation_btn.png"
	tplInfirmary   = "buttons/infirmary_btn.png"
	tplInspiration = "buttons/inspiration_btn.png"
	tplTazunaHint  = "ui/tazuna_hint.png"
	tplDebuff      = "ui/debuff_status.png"
	tplEventChoice = "icons/event_choice_1.png"
	tplClawMachine = "ui/claw_machine.png"
)

// Moods in ascending order; the index doubles as the comparison scale
// for the minimum-mood check.
var moodList = []string{"AWFUL", "BAD", "NORMAL", "GOOD", "GREAT"}
