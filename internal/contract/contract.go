package contract

import "time"

const Version = "1.0"

// MinTextLen is the minimum number of characters a contract must have
// before analysis is attempted. Shorter inputs are rejected at the
// boundary and never reach the detector.
const MinTextLen = 50

type Severity string

const (
	SeverityRedFlag Severity = "red_flag"
	SeverityWarning Severity = "warning"
)

// RiskLevel is the user-facing label derived from the overall risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low Risk"
	RiskModerate RiskLevel = "Moderate Risk"
	RiskHigh     RiskLevel = "High Risk"
)

// Finding is one matched clause issue. Immutable; owned by the Result
// that contains it.
type Finding struct {
	RuleID     string   `json:"rule_id"`
	Clause     string   `json:"clause"`
	Section    string   `json:"section,omitempty"`
	Issue      string   `json:"issue"`
	Suggestion string   `json:"suggestion"`
	Severity   Severity `json:"severity"`
}

// Result is a completed risk assessment. The analyzer produces it fully
// populated except for ID and CreatedAt, which the caller assigns before
// persisting (mirrors how run identities are owned by the pipeline, not
// the engine).
type Result struct {
	ID           string `json:"id,omitempty"`
	ContractType string `json:"contract_type,omitempty"`
	TextLength   int    `json:"text_length"`

	OverallRisk int       `json:"overall_risk"` // 0..100
	RiskLevel   RiskLevel `json:"risk_level"`
	Confidence  int       `json:"confidence"` // 50..100

	RedFlags []Finding `json:"red_flags"`
	Warnings []Finding `json:"warnings"`

	SuggestedRevisions []string `json:"suggested_revisions"` // at most 5

	AnalysisTimeMs int64     `json:"analysis_time_ms"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}

// TotalFindings counts red flags and warnings together.
func (r *Result) TotalFindings() int {
	return len(r.RedFlags) + len(r.Warnings)
}

// Findings returns red flags followed by warnings, both in detection order.
func (r *Result) Findings() []Finding {
	out := make([]Finding, 0, r.TotalFindings())
	out = append(out, r.RedFlags...)
	out = append(out, r.Warnings...)
	return out
}
