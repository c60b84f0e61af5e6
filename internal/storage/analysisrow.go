package storage

import "time"

// AnalysisRow is a lightweight listing row for /analyses.
type AnalysisRow struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	ContractType string    `json:"contract_type,omitempty"`
	OverallRisk  int       `json:"overall_risk"`
	RiskLevel    string    `json:"risk_level"`
	Confidence   int       `json:"confidence"`
	Findings     int       `json:"findings"`
}
