package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lexkit/clauseguard/internal/contract"
)

// DiffReport compares two analyses of (typically) successive drafts of
// the same contract: which findings appeared, which were negotiated away,
// and how the risk moved.
type DiffReport struct {
	BaseID string `json:"base_id"`
	HeadID string `json:"head_id"`

	RiskDelta       int `json:"risk_delta"`       // head - base
	ConfidenceDelta int `json:"confidence_delta"` //

	New       []contract.Finding `json:"new,omitempty"`
	Resolved  []contract.Finding `json:"resolved,omitempty"`
	Unchanged []contract.Finding `json:"unchanged,omitempty"`
}

// Diff keys findings by rule ID: a rule firing in head but not base is
// new, the reverse is resolved. Finding content within a rule is fixed by
// the rule templates, so rule identity is the right granularity.
func Diff(base, head *contract.Result) DiffReport {
	baseByRule := map[string]contract.Finding{}
	for _, f := range base.Findings() {
		baseByRule[f.RuleID] = f
	}
	headByRule := map[string]contract.Finding{}
	for _, f := range head.Findings() {
		headByRule[f.RuleID] = f
	}

	rep := DiffReport{
		BaseID:          base.ID,
		HeadID:          head.ID,
		RiskDelta:       head.OverallRisk - base.OverallRisk,
		ConfidenceDelta: head.Confidence - base.Confidence,
	}
	for _, f := range head.Findings() {
		if _, ok := baseByRule[f.RuleID]; ok {
			rep.Unchanged = append(rep.Unchanged, f)
		} else {
			rep.New = append(rep.New, f)
		}
	}
	for _, f := range base.Findings() {
		if _, ok := headByRule[f.RuleID]; !ok {
			rep.Resolved = append(rep.Resolved, f)
		}
	}
	return rep
}

// WriteDiffJSON writes the diff artifact to outDir.
func WriteDiffJSON(rep DiffReport, outDir string) (string, error) {
	path := filepath.Join(outDir, fmt.Sprintf("diff-%s-%s.json", rep.BaseID, rep.HeadID))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return "", err
	}
	return path, nil
}
