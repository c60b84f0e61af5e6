package rules

import "github.com/lexkit/clauseguard/internal/contract"

func ruleRestrictiveNonCompete() Rule {
	return Rule{
		ID:       "NONCOMPETE-RESTRICTIVE",
		Clause:   "Restrictive Non-Compete",
		Section:  "11.4",
		Severity: contract.SeverityRedFlag,
		Weight:   25,
		Issue: "The agreement contains a non-compete restriction that may be " +
			"overly broad in duration, geography, or scope of restricted activity.",
		Suggestion: "Narrow the non-compete to a defined market segment and " +
			"geography, limit it to 12 months or less, and confirm it is " +
			"enforceable in the governing jurisdiction.",
		Match: containsAny(
			"non-compete",
			"non compete",
			"noncompete",
			"covenant not to compete",
			"shall not compete",
			"refrain from competing",
		),
	}
}
