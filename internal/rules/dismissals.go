package rules

import (
	"strings"

	"github.com/lexkit/clauseguard/internal/contract"
	"github.com/lexkit/clauseguard/internal/storage"
)

// ApplyDismissals filters out findings matched by an active dismissal.
// Returns (kept, dismissedCount). Dismissals suppress reporting only; the
// risk score stays a pure function of the text, so a dismissed clause
// still counts toward the overall risk.
func ApplyDismissals(in []contract.Finding, ds []storage.Dismissal) ([]contract.Finding, int) {
	if len(ds) == 0 || len(in) == 0 {
		return in, 0
	}
	out := make([]contract.Finding, 0, len(in))
	dismissed := 0
nextFinding:
	for _, f := range in {
		for _, d := range ds {
			if d.RuleID != "" && !eqCI(f.RuleID, d.RuleID) {
				continue
			}
			if d.Clause != "" && !eqCI(f.Clause, d.Clause) {
				continue
			}
			if d.PatternSub != "" {
				ps := strings.ToLower(d.PatternSub)
				if !strings.Contains(strings.ToLower(f.Issue), ps) &&
					!strings.Contains(strings.ToLower(f.Suggestion), ps) {
					continue
				}
			}
			dismissed++
			continue nextFinding
		}
		out = append(out, f)
	}
	return out, dismissed
}

func eqCI(a, b string) bool { return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) }
