package rules

import "github.com/lexkit/clauseguard/internal/contract"

func ruleMissingLiabilityCap() Rule {
	return Rule{
		ID:       "LIABILITY-CAP-MISSING",
		Clause:   "Missing Limitation of Liability",
		Section:  "6.1",
		Severity: contract.SeverityRedFlag,
		Weight:   20,
		Issue: "The contract has no limitation of liability clause, leaving " +
			"exposure to direct, indirect, and consequential damages uncapped.",
		Suggestion: "Add a limitation of liability clause capping aggregate " +
			"liability and excluding consequential, incidental, and punitive damages.",
		// Absence rule: fires only on full-length documents that contain no
		// recognizable liability-cap language anywhere.
		Match: missingAll(absenceMinLen,
			"limitation of liability",
			"liability shall not exceed",
			"liability is limited",
			"aggregate liability",
			"liability cap",
			"cap on liability",
		),
	}
}
