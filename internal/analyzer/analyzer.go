// Package analyzer is the scoring entry point of the risk engine. Given
// free-form contract text it runs the rule registry, clamps the weighted
// score, estimates confidence, and synthesizes revision suggestions. All
// of it is pure and stateless: the same text always yields the same
// result, and concurrent calls share nothing.
package analyzer

import (
	"errors"
	"strings"
	"time"

	"github.com/lexkit/clauseguard/internal/contract"
	"github.com/lexkit/clauseguard/internal/rules"
)

// ErrTextTooShort rejects inputs below contract.MinTextLen before any
// rule runs.
var ErrTextTooShort = errors.New("contract text too short to analyze")

type Analyzer struct {
	reg  *rules.Registry
	conf ConfidenceWeights
}

// New builds an analyzer over an explicitly constructed registry. The
// registry and confidence table are injected at startup; the analyzer
// itself holds no mutable state.
func New(reg *rules.Registry) *Analyzer {
	return &Analyzer{reg: reg, conf: DefaultConfidenceWeights()}
}

// NewWithConfidence overrides the confidence adjustment table (config-driven).
func NewWithConfidence(reg *rules.Registry, cw ConfidenceWeights) *Analyzer {
	return &Analyzer{reg: reg, conf: cw}
}

// Registry exposes the rule set for inventory endpoints.
func (a *Analyzer) Registry() *rules.Registry { return a.reg }

// Analyze scores contractText. The text is lowercased exactly once; every
// rule then runs independently against the full lowercased text. Output
// is deterministic for identical input, except AnalysisTimeMs. ID and
// CreatedAt are left for the caller to assign before persisting.
func (a *Analyzer) Analyze(contractText, contractType string) (contract.Result, error) {
	if len(contractText) < contract.MinTextLen {
		return contract.Result{}, ErrTextTooShort
	}
	start := time.Now()

	text := strings.ToLower(contractText)
	redFlags, warnings, raw := a.reg.Evaluate(text)

	score := ClampScore(raw)
	total := len(redFlags) + len(warnings)

	res := contract.Result{
		ContractType:       contractType,
		TextLength:         len(contractText),
		OverallRisk:        score,
		RiskLevel:          RiskLevelFor(score),
		Confidence:         a.conf.Estimate(text, total),
		RedFlags:           redFlags,
		Warnings:           warnings,
		SuggestedRevisions: synthesizeRevisions(redFlags, warnings),
		AnalysisTimeMs:     time.Since(start).Milliseconds(),
	}
	return res, nil
}
