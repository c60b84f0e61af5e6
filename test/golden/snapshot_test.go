package golden

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/lexkit/clauseguard/internal/analyzer"
	"github.com/lexkit/clauseguard/internal/contract"
	"github.com/lexkit/clauseguard/internal/reporting"
	"github.com/lexkit/clauseguard/internal/rules"
)

// sampleContract is a small but complete services agreement drafted to
// exercise the whole pipeline: three red flags (unlimited liability, a
// broad non-compete, and no liability cap anywhere in the document), one
// warning (automatic renewal), and enough length that the absence checks
// engage. The governing law section keeps the dispute resolution check
// quiet.
const sampleContract = `SERVICES AGREEMENT

This Services Agreement (the "Agreement") is entered into by and between
Meridian Analytics LLC ("Provider") and Harbor Logistics Inc. ("Client").

Section 1. Services. Provider shall perform the consulting and data
migration services described in Schedule A attached to this Agreement.

Section 2. Term and Renewal. The initial term of this Agreement is
twelve (12) months. Thereafter this Agreement shall automatically renew
for successive twelve (12) month periods unless either party gives
written notice of non-renewal at least thirty (30) days before the end
of the then-current period.

Section 3. Fees. Client shall pay Provider the fees set out in Schedule
A. Invoices are payable net 30 days from the date of invoice.

Section 4. Confidentiality. Each party shall protect the other party's
confidential information with reasonable care for a period of three (3)
years following disclosure.

Section 5. Liability. Provider acknowledges and agrees that it shall
bear unlimited liability for any losses, costs, or damages suffered by
Client arising out of or in connection with the performance of the
services under this Agreement.

Section 6. Restrictive Covenant. During the term of this Agreement and
for a period of twenty-four (24) months thereafter, Provider shall not compete
with Client, directly or indirectly, in any market or territory in
which Client conducts business.

Section 7. Termination. Either party may terminate this Agreement for
material breach upon sixty (60) days prior written notice describing
the breach, provided the breach remains uncured at the end of the
notice period.

Section 8. Governing Law. This Agreement is governed by the laws of the
State of Delaware, and the parties consent to the exclusive
jurisdiction of the state and federal courts located in Wilmington.

Schedule A lists the services, deliverables, and fee schedule agreed by
the parties as of the effective date.
`

func analyzeSample(t *testing.T) contract.Result {
	t.Helper()
	a := analyzer.New(rules.NewBaseline(rules.Settings{}))
	res, err := a.Analyze(sampleContract, "service")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	return res
}

// finding resolves a registered rule into the finding the detector emits
// for it, so the snapshot asserts against the exact rule templates.
func finding(t *testing.T, id string) contract.Finding {
	t.Helper()
	r, ok := rules.NewBaseline(rules.Settings{}).Get(id)
	if !ok {
		t.Fatalf("rule %s not registered", id)
	}
	return r.Finding()
}

func TestSnapshot_ServicesAgreement(t *testing.T) {
	got := analyzeSample(t)
	// Volatile fields are owned by the caller, not the engine.
	got.AnalysisTimeMs = 0

	want := contract.Result{
		ContractType: "service",
		TextLength:   len(sampleContract),
		OverallRisk:  85,
		RiskLevel:    contract.RiskHigh,
		Confidence:   83,
		RedFlags: []contract.Finding{
			finding(t, "LIABILITY-UNLIMITED"),
			finding(t, "NONCOMPETE-RESTRICTIVE"),
			finding(t, "LIABILITY-CAP-MISSING"),
		},
		Warnings: []contract.Finding{
			finding(t, "RENEWAL-AUTOMATIC"),
		},
		SuggestedRevisions: []string{
			finding(t, "LIABILITY-UNLIMITED").Suggestion,
			finding(t, "NONCOMPETE-RESTRICTIVE").Suggestion,
			finding(t, "LIABILITY-CAP-MISSING").Suggestion,
			finding(t, "RENEWAL-AUTOMATIC").Suggestion,
			"Add a force majeure clause excusing performance during events beyond either party's reasonable control.",
		},
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("snapshot mismatch\n got:  %+v\n want: %+v", got, want)
	}
}

func TestSnapshot_Stable(t *testing.T) {
	a := analyzeSample(t)
	b := analyzeSample(t)
	a.AnalysisTimeMs, b.AnalysisTimeMs = 0, 0
	if !reflect.DeepEqual(a, b) {
		t.Fatal("repeated analysis of the same text diverged")
	}
}

func TestSnapshot_Report(t *testing.T) {
	res := analyzeSample(t)
	at := time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)

	text := reporting.BuildDocument(&res, at).PlainText()
	for _, line := range []string{
		"Contract Risk Analysis: service",
		"Overall Risk: 85/100 (High Risk)",
		"Confidence: 83%",
		"RED FLAGS (3)",
		"WARNINGS (1)",
		"SUGGESTED REVISIONS (5)",
		"Section: 6.3",
		"Clause: Missing Limitation of Liability",
	} {
		if !strings.Contains(text, line) {
			t.Errorf("report missing %q", line)
		}
	}
	if text != reporting.BuildDocument(&res, at).PlainText() {
		t.Fatal("report text not stable")
	}
}
