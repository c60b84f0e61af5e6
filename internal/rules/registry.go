package rules

import (
	"strings"

	"github.com/lexkit/clauseguard/internal/contract"
)

// Registry holds an ordered set of rules. It is constructed explicitly at
// startup and passed into the analyzer; there is no package-level instance.
// Order matters only for the order findings are reported in, never for
// what a rule matches or contributes.
type Registry struct {
	rules     []Rule
	ruleIndex map[string]int // UPPER(ruleID) -> index
	settings  Settings
}

func NewRegistry(s Settings) *Registry {
	return &Registry{
		ruleIndex: map[string]int{},
		settings:  s.withDefaults(),
	}
}

// NewBaseline builds a registry preloaded with the ten baseline clause rules.
func NewBaseline(s Settings) *Registry {
	reg := NewRegistry(s)
	for _, r := range Baseline() {
		reg.Register(r)
	}
	return reg
}

func (reg *Registry) Register(r Rule) {
	reg.rules = append(reg.rules, r)
	reg.ruleIndex[strings.ToUpper(strings.TrimSpace(r.ID))] = len(reg.rules) - 1
}

// List returns enabled rules in registration order.
func (reg *Registry) List() []Rule {
	out := make([]Rule, 0, len(reg.rules))
	for _, r := range reg.rules {
		if reg.settings.Disabled[strings.ToUpper(r.ID)] {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Get returns a rule by ID if registered (used by the API rules inventory).
func (reg *Registry) Get(id string) (Rule, bool) {
	idx, ok := reg.ruleIndex[strings.ToUpper(strings.TrimSpace(id))]
	if !ok || idx < 0 || idx >= len(reg.rules) {
		return Rule{}, false
	}
	return reg.rules[idx], true
}

// WeightFor resolves a rule's effective score weight, honoring any
// configured override.
func (reg *Registry) WeightFor(r Rule) int {
	if w, ok := reg.settings.Weights[strings.ToUpper(r.ID)]; ok {
		return w
	}
	return r.Weight
}

// Evaluate runs every enabled rule independently over the lowercased text
// and returns red flags, warnings, and the raw (unclamped) weight sum.
// Rules are not mutually exclusive; several may fire on overlapping text.
// The raw score is a commutative sum, so evaluation order cannot change it.
func (reg *Registry) Evaluate(text string) (redFlags, warnings []contract.Finding, raw int) {
	for _, r := range reg.List() {
		if !r.Match(text) {
			continue
		}
		raw += reg.WeightFor(r)
		f := r.Finding()
		if r.Severity == contract.SeverityRedFlag {
			redFlags = append(redFlags, f)
		} else {
			warnings = append(warnings, f)
		}
	}
	return redFlags, warnings, raw
}
