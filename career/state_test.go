package career

import "testing"

func TestFuzzyMatchMood(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"exact", "GREAT", "GREAT"},
		{"exact low tier", "AWFUL", "AWFUL"},
		{"truncated great", "REAT", "GREAT"},
		{"truncated good", "GOO", "GOOD"},
		{"truncated normal", "ORMA", "NORMAL"},
		{"awful with junk prefix", "VAWF", "AWFUL"},
		{"bad", "BAD", "BAD"},
		{"awful beats bad substring", "WAWFUL", "AWFUL"},
		{"zero reads as O", "G0OD", "GOOD"},
		{"one reads as I", "NORMA1", "NORMAL"},
		{"garbage", "XYZ", "UNKNOWN"},
		{"empty", "", "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fuzzyMatchMood(tt.text); got != tt.want {
				t.Errorf("fuzzyMatchMood(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestMoodIndex(t *testing.T) {
	if MoodIndex("AWFUL") != 0 || MoodIndex("GREAT") != 4 {
		t.Error("mood scale out of order")
	}
	if MoodIndex("UNKNOWN") != -1 {
		t.Error("unknown mood must index -1")
	}
	if MoodIndex("NORMAL") >= MoodIndex("GOOD") {
		t.Error("NORMAL must rank below GOOD")
	}
}

func TestParseTurn(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Turn
	}{
		{"plain number", "Turn 12", Turn{Number: 12}},
		{"race day", "Race Day", Turn{RaceDay: true}},
		{"race day glued", "RaceDay", Turn{RaceDay: true}},
		{"race day truncated", "Race Da", Turn{RaceDay: true}},
		{"confused digits", "]2", Turn{Number: 12}},
		{"letter l as one", "l5", Turn{Number: 15}},
		{"unreadable defaults to one", "???", Turn{Number: 1}},
		{"empty defaults to one", "", Turn{Number: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseTurn(tt.text); got != tt.want {
				t.Errorf("parseTurn(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestCriteriaFixups(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Entrycriteriamet", "Entry criteria met"},
		{"Entrycriteria", "Entry criteria"},
		{"criteriamet", "criteria met"},
		{"Goalachieved", "Goal achieved"},
		{"Entry criteria met", "Entry criteria met"},
	}

	for _, tt := range tests {
		if got := criteriaFixups.Replace(tt.in); got != tt.want {
			t.Errorf("fixup(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
