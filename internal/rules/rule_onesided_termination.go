package rules

import "github.com/lexkit/clauseguard/internal/contract"

func ruleOneSidedTermination() Rule {
	return Rule{
		ID:       "TERMINATION-ONESIDED",
		Clause:   "One-Sided Termination",
		Section:  "9.2",
		Severity: contract.SeverityRedFlag,
		Weight:   20,
		Issue: "One party may terminate at will while the other is locked in, " +
			"or termination requires no notice or cause.",
		Suggestion: "Give both parties equivalent termination rights with a " +
			"written notice period of at least 30 days, and define cure periods " +
			"for termination for cause.",
		Match: containsAny(
			"terminate at any time",
			"terminate for convenience",
			"terminate without cause",
			"terminate without notice",
			"sole discretion to terminate",
			"terminate this agreement immediately",
		),
	}
}
