package analyzer

import "github.com/lexkit/clauseguard/internal/contract"

// maxRevisions caps the suggested revision list.
const maxRevisions = 5

// maxWarningRevisions bounds how many warning-level suggestions make the
// list once every red flag has contributed.
const maxWarningRevisions = 2

// genericRevisions is the fallback pool of best-practice clauses, used to
// pad sparse results. Order matters: appended top-down until the cap.
var genericRevisions = []string{
	"Add a force majeure clause excusing performance during events beyond either party's reasonable control.",
	"Specify a minimum written notice period of 30 days for termination by either party.",
	"Add a definitions section so key terms are used consistently throughout the agreement.",
}

// synthesizeRevisions builds the deduplicated revision list: one entry per
// red flag, then at most two from warnings, all in detection order, padded
// from the generic pool. Never empty for valid input; never more than five.
func synthesizeRevisions(redFlags, warnings []contract.Finding) []string {
	out := make([]string, 0, maxRevisions)
	seen := make(map[string]struct{}, maxRevisions)

	add := func(s string) bool {
		if len(out) >= maxRevisions || s == "" {
			return false
		}
		if _, ok := seen[s]; ok {
			return false
		}
		seen[s] = struct{}{}
		out = append(out, s)
		return true
	}

	for _, f := range redFlags {
		add(f.Suggestion)
	}
	added := 0
	for _, f := range warnings {
		if added >= maxWarningRevisions {
			break
		}
		if add(f.Suggestion) {
			added++
		}
	}
	for _, g := range genericRevisions {
		if len(out) >= maxRevisions {
			break
		}
		add(g)
	}
	return out
}
