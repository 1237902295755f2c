package training

import "testing"

func TestCriteriaMet(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Entry criteria met", true},
		{"criteria met", true},
		{"Criteria achieved", true},
		{"Goal achieved", true},
		{"goal achieved!", true},
		{"Achieve 2 fans", false},
		{"Unknown Criteria", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := CriteriaMet(tt.text); got != tt.want {
			t.Errorf("CriteriaMet(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestIsPreDebut(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Junior Year Pre-Debut", true},
		{"PreDebut", true},
		{"PreeDebut Early Jul", true},
		{"Junior Year Early Jul", false},
		{"Senior Year Late Dec", false},
	}

	for _, tt := range tests {
		if got := IsPreDebut(tt.text); got != tt.want {
			t.Errorf("IsPreDebut(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestIsRacingAvailable(t *testing.T) {
	tests := []struct {
		year string
		want bool
	}{
		{"Classic Year Early Jan", true},
		{"Senior Year Late Dec", true},
		{"Junior Year Pre-Debut", true},
		{"Classic Year Early Jul", false},
		{"Classic Year Late Jul", false},
		{"Senior Year Early Aug", false},
		{"Senior Year Late Aug", false},
		{"Finale Season", false},
	}

	for _, tt := range tests {
		if got := IsRacingAvailable(tt.year); got != tt.want {
			t.Errorf("IsRacingAvailable(%q) = %v, want %v", tt.year, got, tt.want)
		}
	}
}

func TestShouldPrioritizeRacing(t *testing.T) {
	tests := []struct {
		name             string
		criteria         string
		year             string
		turn             int
		turnLimitEnabled bool
		want             bool
	}{
		{"criteria unmet", "Achieve 6000 fans", "Classic Year Early Jan", 20, false, true},
		{"criteria met", "Goal achieved", "Classic Year Early Jan", 20, false, false},
		{"pre-debut never races", "Achieve 6000 fans", "Junior Year Pre-Debut", 2, false, false},
		{"turn limit off ignores turn", "Achieve 6000 fans", "Senior Year Late Dec", 50, false, true},
		{"turn limit on blocks late turns", "Achieve 6000 fans", "Senior Year Late Dec", 50, true, false},
		{"turn limit on allows early turns", "Achieve 6000 fans", "Senior Year Early Jan", 5, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShouldPrioritizeRacing(tt.criteria, tt.year, tt.turn, tt.turnLimitEnabled)
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
