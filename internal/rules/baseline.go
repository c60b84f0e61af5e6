package rules

// Baseline returns the ten stock clause rules in their canonical reporting
// order: red flags first, heaviest weights first. Each rule lives in its
// own rule_*.go file; adding a rule means adding a file and listing it
// here, the detector itself never changes.
func Baseline() []Rule {
	return []Rule{
		ruleUnlimitedLiability(),
		ruleBroadIndemnity(),
		ruleRestrictiveNonCompete(),
		ruleOneSidedTermination(),
		ruleMissingLiabilityCap(),
		ruleAmbiguousIPOwnership(),
		ruleUnfavorablePayment(),
		ruleAutomaticRenewal(),
		rulePerpetualConfidentiality(),
		ruleMissingDisputeResolution(),
	}
}
