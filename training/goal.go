package training

import "strings"

// OCR-typo variants of "Pre-Debut" seen in the year banner.
var preDebutVariants = []string{"Pre-Debut", "PreDebut", "PreeDebut", "Pre"}

// CriteriaMet loosely matches the goal banner text. The checks are
// deliberately substring-based so minor OCR damage still registers.
func CriteriaMet(criteriaText string) bool {
	lower := strings.ToLower(strings.TrimSpace(criteriaText))
	return strings.HasPrefix(lower, "criteria") ||
		strings.Contains(lower, "criteria met") ||
		strings.Contains(lower, "goal achieved")
}

// IsPreDebut reports whether the year text belongs to the Pre-Debut
// period, tolerating the usual OCR misspellings.
func IsPreDebut(yearText string) bool {
	for _, v := range preDebutVariants {
		if strings.Contains(yearText, v) {
			return true
		}
	}
	return false
}

// Months with no open race entries: the July/August summer camp.
var summerMonths = []string{"Jul", "Aug"}

// IsRacingAvailable reports whether the race list can be entered for the
// given year banner. Closed during the summer camp and in Finale Season,
// whose races run through their own entry flow.
func IsRacingAvailable(yearText string) bool {
	if strings.Contains(yearText, "Finale") {
		return false
	}
	for _, m := range summerMonths {
		if strings.Contains(yearText, m) {
			return false
		}
	}
	return true
}

// ShouldPrioritizeRacing decides whether the cycle should attempt a race
// before considering training: race while the goal criteria are unmet,
// except during Pre-Debut. The turn<10 condition is carried but disabled
// by default (turnLimitEnabled); it only participates when the config
// toggle turns it on.
func ShouldPrioritizeRacing(criteriaText, yearText string, turn int, turnLimitEnabled bool) bool {
	prioritize := !CriteriaMet(criteriaText) && !IsPreDebut(yearText)
	if turnLimitEnabled {
		prioritize = prioritize && turn < 10
	}
	return prioritize
}
