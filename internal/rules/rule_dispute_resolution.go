package rules

import "github.com/lexkit/clauseguard/internal/contract"

func ruleMissingDisputeResolution() Rule {
	return Rule{
		ID:       "DISPUTE-RESOLUTION-MISSING",
		Clause:   "No Dispute Resolution Mechanism",
		Severity: contract.SeverityWarning,
		Weight:   5,
		Issue: "The contract names no dispute resolution mechanism or governing " +
			"law, so any disagreement heads straight to litigation in an " +
			"unpredictable forum.",
		Suggestion: "Add a tiered dispute resolution clause: good-faith " +
			"negotiation, then mediation, then binding arbitration, with an " +
			"explicit governing law and venue.",
		// Absence rule, same length gate as the liability cap check.
		Match: missingAll(absenceMinLen,
			"arbitration",
			"mediation",
			"dispute resolution",
			"governing law",
			"jurisdiction",
		),
	}
}
