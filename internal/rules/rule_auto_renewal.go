package rules

import "github.com/lexkit/clauseguard/internal/contract"

func ruleAutomaticRenewal() Rule {
	return Rule{
		ID:       "RENEWAL-AUTOMATIC",
		Clause:   "Automatic Renewal",
		Section:  "2.3",
		Severity: contract.SeverityWarning,
		Weight:   10,
		Issue: "The agreement renews automatically, which can silently extend " +
			"the commitment past the intended term.",
		Suggestion: "Replace automatic renewal with renewal by mutual written " +
			"agreement, or require a renewal notice at least 60 days before " +
			"the term ends.",
		Match: containsAny(
			"automatically renew",
			"automatic renewal",
			"auto-renew",
			"auto renew",
			"successive renewal terms",
			"renews for successive",
		),
	}
}
