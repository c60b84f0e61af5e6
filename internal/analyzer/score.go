package analyzer

import "github.com/lexkit/clauseguard/internal/contract"

// Risk level thresholds. The mapping is a step function of the clamped
// score: [0,30) low, [30,70) moderate, [70,100] high.
const (
	moderateRiskMin = 30
	highRiskMin     = 70
)

// ClampScore bounds the raw weight sum to [0,100].
func ClampScore(raw int) int {
	if raw < 0 {
		return 0
	}
	if raw > 100 {
		return 100
	}
	return raw
}

// RiskLevelFor maps a clamped score to its label. Pure; testable apart
// from the detector.
func RiskLevelFor(score int) contract.RiskLevel {
	switch {
	case score >= highRiskMin:
		return contract.RiskHigh
	case score >= moderateRiskMin:
		return contract.RiskModerate
	default:
		return contract.RiskLow
	}
}
