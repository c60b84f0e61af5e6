package rules

import "strings"

// Settings carries the configurable knobs for a registry. The baseline
// weights are hand-tuned constants; overriding them is a config concern,
// not a code change.
type Settings struct {
	// Weights maps UPPER(ruleID) to an overriding score weight.
	Weights map[string]int
	// Disabled maps UPPER(ruleID) to true to skip a rule entirely.
	Disabled map[string]bool
}

func (s Settings) withDefaults() Settings {
	if s.Weights == nil {
		s.Weights = map[string]int{}
	}
	if s.Disabled == nil {
		s.Disabled = map[string]bool{}
	}
	return s
}

// SettingsFromConfig normalizes config-sourced overrides (mixed-case IDs,
// disabled list) into Settings.
func SettingsFromConfig(weights map[string]int, disabled []string) Settings {
	s := Settings{}.withDefaults()
	for id, w := range weights {
		s.Weights[strings.ToUpper(strings.TrimSpace(id))] = w
	}
	for _, id := range disabled {
		s.Disabled[strings.ToUpper(strings.TrimSpace(id))] = true
	}
	return s
}
