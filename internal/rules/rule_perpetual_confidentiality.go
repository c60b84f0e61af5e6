package rules

import "github.com/lexkit/clauseguard/internal/contract"

func rulePerpetualConfidentiality() Rule {
	return Rule{
		ID:       "CONFIDENTIALITY-PERPETUAL",
		Clause:   "Perpetual Confidentiality",
		Section:  "7.1",
		Severity: contract.SeverityWarning,
		Weight:   10,
		Issue: "Confidentiality obligations never expire, which is hard to " +
			"comply with and usually broader than the information warrants.",
		Suggestion: "Limit confidentiality to 3-5 years after termination, with " +
			"perpetual protection reserved for trade secrets only.",
		Match: containsAny(
			"perpetual confidentiality",
			"in perpetuity",
			"confidentiality obligations survive indefinitely",
			"survive indefinitely",
			"remain confidential forever",
		),
	}
}
