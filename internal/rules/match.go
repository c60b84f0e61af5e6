package rules

import "strings"

// Predicate helpers shared by the baseline rules. All of them assume the
// text is already lowercased.

// containsAny fires when at least one phrase is present. Phrase lists are
// written tolerant of drafting variants ("non-compete", "non compete").
func containsAny(phrases ...string) func(string) bool {
	return func(text string) bool {
		for _, p := range phrases {
			if strings.Contains(text, p) {
				return true
			}
		}
		return false
	}
}

// missingAll fires when none of the phrases appear. Absence checks are
// only meaningful on full documents, so they are additionally gated on a
// minimum length: a short excerpt should not be penalized for omitting
// boilerplate it never had room for.
func missingAll(minLen int, phrases ...string) func(string) bool {
	return func(text string) bool {
		if len(text) < minLen {
			return false
		}
		for _, p := range phrases {
			if strings.Contains(text, p) {
				return false
			}
		}
		return true
	}
}

// absenceMinLen is the document size at which absence rules engage.
const absenceMinLen = 1500
