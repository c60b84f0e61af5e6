package rules

import "github.com/lexkit/clauseguard/internal/contract"

func ruleAmbiguousIPOwnership() Rule {
	return Rule{
		ID:       "IP-OWNERSHIP-AMBIGUOUS",
		Clause:   "Ambiguous IP Ownership",
		Section:  "10.2",
		Severity: contract.SeverityWarning,
		Weight:   15,
		Issue: "Intellectual property ownership language is sweeping or unclear " +
			"about pre-existing materials and derivative works.",
		Suggestion: "State explicitly who owns deliverables, carve out each " +
			"party's pre-existing IP, and grant only the licenses actually " +
			"needed to use the deliverables.",
		Match: containsAny(
			"work for hire",
			"work made for hire",
			"all intellectual property",
			"assigns all rights",
			"assign all right, title and interest",
			"exclusive ownership of all",
		),
	}
}
