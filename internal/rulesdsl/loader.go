// Package rulesdsl loads additional clause rules from YAML packs, so
// practice groups can extend the detector without a code change. Weights,
// phrases, and templates all live in the pack file.
package rulesdsl

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lexkit/clauseguard/internal/contract"
	"github.com/lexkit/clauseguard/internal/rules"
)

type dslPack struct {
	Rules []dslRule `yaml:"rules"`
}

type dslRule struct {
	ID         string `yaml:"id"`
	Clause     string `yaml:"clause"`
	Section    string `yaml:"section"`
	Severity   string `yaml:"severity"` // red_flag|warning
	Weight     int    `yaml:"weight"`
	Issue      string `yaml:"issue"`
	Suggestion string `yaml:"suggestion"`

	Where struct {
		Any       []string `yaml:"any"`        // fire if any phrase present
		All       []string `yaml:"all"`        // every phrase must be present
		Absent    []string `yaml:"absent"`     // fire if none present (absence rule)
		Regex     string   `yaml:"regex"`      // optional, case-insensitive
		MinLength int      `yaml:"min_length"` // gate for absence rules
	} `yaml:"where"`
}

// LoadAndRegister compiles every rule in the pack at path and registers it
// on reg. Returns the number of rules added.
func LoadAndRegister(path string, reg *rules.Registry) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read rule pack: %w", err)
	}
	var pack dslPack
	if err := yaml.Unmarshal(b, &pack); err != nil {
		return 0, fmt.Errorf("parse yaml: %w", err)
	}
	var n int
	for _, r := range pack.Rules {
		rule, err := compile(r)
		if err != nil {
			return n, fmt.Errorf("compile rule %q: %w", r.ID, err)
		}
		reg.Register(rule)
		n++
	}
	return n, nil
}

func compile(r dslRule) (rules.Rule, error) {
	if r.ID == "" || r.Clause == "" || r.Issue == "" || r.Suggestion == "" {
		return rules.Rule{}, fmt.Errorf("missing required fields (id/clause/issue/suggestion)")
	}
	var sev contract.Severity
	switch strings.ToLower(strings.TrimSpace(r.Severity)) {
	case "red_flag", "redflag":
		sev = contract.SeverityRedFlag
	case "warning":
		sev = contract.SeverityWarning
	default:
		return rules.Rule{}, fmt.Errorf("severity must be red_flag or warning, got %q", r.Severity)
	}
	if r.Weight <= 0 {
		return rules.Rule{}, fmt.Errorf("weight must be positive")
	}
	if len(r.Where.Any) == 0 && len(r.Where.All) == 0 && len(r.Where.Absent) == 0 && r.Where.Regex == "" {
		return rules.Rule{}, fmt.Errorf("where clause is empty")
	}

	var re *regexp.Regexp
	if r.Where.Regex != "" {
		var err error
		re, err = regexp.Compile("(?i)" + r.Where.Regex)
		if err != nil {
			return rules.Rule{}, fmt.Errorf("regex: %w", err)
		}
	}
	// Lowercase phrases once at compile time; match input is lowercased.
	anyOf := lowerAll(r.Where.Any)
	allOf := lowerAll(r.Where.All)
	absent := lowerAll(r.Where.Absent)
	minLen := r.Where.MinLength

	match := func(text string) bool {
		if len(anyOf) > 0 && !containsAny(text, anyOf) {
			return false
		}
		for _, p := range allOf {
			if !strings.Contains(text, p) {
				return false
			}
		}
		if len(absent) > 0 {
			if len(text) < minLen {
				return false
			}
			if containsAny(text, absent) {
				return false
			}
		}
		if re != nil && !re.MatchString(text) {
			return false
		}
		return true
	}

	return rules.Rule{
		ID:         r.ID,
		Clause:     r.Clause,
		Section:    r.Section,
		Severity:   sev,
		Weight:     r.Weight,
		Issue:      r.Issue,
		Suggestion: r.Suggestion,
		Match:      match,
	}, nil
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
