package rules

import "github.com/lexkit/clauseguard/internal/contract"

func ruleBroadIndemnity() Rule {
	return Rule{
		ID:       "INDEMNITY-BROAD",
		Clause:   "Broad Indemnification",
		Section:  "8.1",
		Severity: contract.SeverityRedFlag,
		Weight:   25,
		Issue: "The indemnification obligation is one-sided or unbounded, " +
			"covering any and all claims regardless of fault.",
		Suggestion: "Make indemnification mutual, limit it to third-party claims " +
			"caused by the indemnifying party's breach or negligence, and carve " +
			"out claims arising from the other party's own misconduct.",
		Match: containsAny(
			"indemnify and hold harmless",
			"defend, indemnify",
			"indemnify against any and all",
			"indemnification obligations",
			"hold harmless from any and all claims",
		),
	}
}
