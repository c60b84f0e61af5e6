package rules

import "github.com/lexkit/clauseguard/internal/contract"

func ruleUnlimitedLiability() Rule {
	return Rule{
		ID:       "LIABILITY-UNLIMITED",
		Clause:   "Unlimited Liability Clause",
		Section:  "6.3",
		Severity: contract.SeverityRedFlag,
		Weight:   30,
		Issue: "The contract exposes a party to unlimited liability for damages, " +
			"with no ceiling on the amount that could be owed.",
		Suggestion: "Cap total liability at the fees paid in the twelve months " +
			"preceding the claim, and exclude indirect and consequential damages.",
		Match: containsAny(
			"unlimited liability",
			"unlimited damages",
			"liability without limit",
			"without limitation of liability",
			"liable for all damages",
		),
	}
}
