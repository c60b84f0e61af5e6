package rules

import "github.com/lexkit/clauseguard/internal/contract"

func ruleUnfavorablePayment() Rule {
	return Rule{
		ID:       "PAYMENT-UNFAVORABLE",
		Clause:   "Unfavorable Payment Terms",
		Section:  "4.1",
		Severity: contract.SeverityWarning,
		Weight:   10,
		Issue: "Payment terms are skewed: long settlement windows, " +
			"non-refundable fees, or cost-shifting onto one party.",
		Suggestion: "Negotiate net-30 payment terms, add late-payment interest, " +
			"and tie any non-refundable fees to delivered milestones.",
		Match: containsAny(
			"net 90",
			"net-90",
			"net 120",
			"net-120",
			"payment within 90 days",
			"non-refundable",
			"no refunds",
			"pay all costs and expenses",
		),
	}
}
