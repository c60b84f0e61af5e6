package rules

import "github.com/lexkit/clauseguard/internal/contract"

// Rule is a single independent clause check executed over lowercased
// contract text. Rules never inspect each other's output; evaluation is
// commutative and the registry order only fixes reporting order.
type Rule struct {
	ID         string
	Clause     string
	Section    string
	Severity   contract.Severity
	Weight     int
	Issue      string
	Suggestion string
	// Match reports whether the rule fires. Input is the full contract
	// text, already lowercased exactly once by the analyzer.
	Match func(text string) bool
}

// Finding converts the rule into the immutable finding it contributes.
func (r Rule) Finding() contract.Finding {
	return contract.Finding{
		RuleID:     r.ID,
		Clause:     r.Clause,
		Section:    r.Section,
		Issue:      r.Issue,
		Suggestion: r.Suggestion,
		Severity:   r.Severity,
	}
}
