package rules

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/lexkit/clauseguard/internal/contract"
)

const sampleText = `section 5. liability. provider accepts unlimited liability for any and
all damages. section 6. restrictive covenants. client shall not compete with
provider in any market. section 7. renewal. this agreement shall automatically
renew for successive terms. governing law: delaware. limitation of liability:
as stated above.`

func findingIDs(fs []contract.Finding) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.RuleID)
	}
	return out
}

func TestEvaluate_BaselineSample(t *testing.T) {
	reg := NewBaseline(Settings{})
	red, warn, raw := reg.Evaluate(strings.ToLower(sampleText))

	wantRed := []string{"LIABILITY-UNLIMITED", "NONCOMPETE-RESTRICTIVE"}
	gotRed := findingIDs(red)
	if len(gotRed) != len(wantRed) {
		t.Fatalf("red flags = %v, want %v", gotRed, wantRed)
	}
	for i := range wantRed {
		if gotRed[i] != wantRed[i] {
			t.Fatalf("red flags = %v, want %v", gotRed, wantRed)
		}
	}
	gotWarn := findingIDs(warn)
	if len(gotWarn) != 1 || gotWarn[0] != "RENEWAL-AUTOMATIC" {
		t.Fatalf("warnings = %v, want [RENEWAL-AUTOMATIC]", gotWarn)
	}
	if want := 30 + 25 + 10; raw != want {
		t.Fatalf("raw score = %d, want %d", raw, want)
	}
}

// Removing an unrelated rule must not change findings attributable to the
// remaining rules.
func TestEvaluate_RuleIndependence(t *testing.T) {
	full := NewBaseline(Settings{})
	redFull, warnFull, _ := full.Evaluate(sampleText)

	reduced := NewBaseline(Settings{Disabled: map[string]bool{"RENEWAL-AUTOMATIC": true}})
	redReduced, _, _ := reduced.Evaluate(sampleText)

	if len(redFull) != len(redReduced) {
		t.Fatalf("disabling a warning rule changed red flags: %v vs %v",
			findingIDs(redFull), findingIDs(redReduced))
	}
	for i := range redFull {
		if redFull[i] != redReduced[i] {
			t.Fatalf("red flag %d changed: %+v vs %+v", i, redFull[i], redReduced[i])
		}
	}
	for _, f := range warnFull {
		if f.RuleID == "RENEWAL-AUTOMATIC" {
			return
		}
	}
	t.Fatalf("expected RENEWAL-AUTOMATIC in full run warnings: %v", findingIDs(warnFull))
}

// Registration order fixes reporting order only; score and level must be
// identical however the rules are shuffled.
func TestEvaluate_OrderIndependentScore(t *testing.T) {
	baseline := Baseline()
	ordered := NewBaseline(Settings{})
	_, _, wantRaw := ordered.Evaluate(sampleText)

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 20; trial++ {
		shuffled := make([]Rule, len(baseline))
		copy(shuffled, baseline)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		reg := NewRegistry(Settings{})
		for _, r := range shuffled {
			reg.Register(r)
		}
		red, warn, raw := reg.Evaluate(sampleText)
		if raw != wantRaw {
			t.Fatalf("trial %d: shuffled raw = %d, want %d", trial, raw, wantRaw)
		}
		if got, want := len(red)+len(warn), 3; got != want {
			t.Fatalf("trial %d: findings = %d, want %d", trial, got, want)
		}
	}
}

func TestWeightOverride(t *testing.T) {
	reg := NewBaseline(Settings{Weights: map[string]int{"LIABILITY-UNLIMITED": 50}})
	_, _, raw := reg.Evaluate("this snippet mentions unlimited liability and nothing else of note here")
	if raw != 50 {
		t.Fatalf("raw with override = %d, want 50", raw)
	}
}

func TestGet(t *testing.T) {
	reg := NewBaseline(Settings{})
	r, ok := reg.Get("liability-unlimited")
	if !ok {
		t.Fatal("Get is case-insensitive; expected a hit")
	}
	if r.Clause != "Unlimited Liability Clause" || r.Section != "6.3" {
		t.Fatalf("unexpected rule: %+v", r)
	}
	if _, ok := reg.Get("NO-SUCH-RULE"); ok {
		t.Fatal("expected miss for unknown rule")
	}
}
