package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/lexkit/clauseguard/internal/contract"
)

func openTest(t *testing.T) *DB {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "clauseguard.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.CreateSchema(); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return db
}

func sampleResult(id string, created time.Time) *contract.Result {
	return &contract.Result{
		ID:           id,
		ContractType: "service",
		TextLength:   2048,
		OverallRisk:  55,
		RiskLevel:    contract.RiskModerate,
		Confidence:   80,
		RedFlags: []contract.Finding{{
			RuleID:     "LIABILITY-UNLIMITED",
			Clause:     "Unlimited Liability Clause",
			Section:    "6.3",
			Issue:      "Contractor assumes unlimited liability",
			Suggestion: "Cap liability at 12 months of fees",
			Severity:   contract.SeverityRedFlag,
		}},
		Warnings: []contract.Finding{{
			RuleID:     "RENEWAL-AUTOMATIC",
			Clause:     "Automatic Renewal Clause",
			Section:    "2.3",
			Issue:      "Contract renews automatically",
			Suggestion: "Require written consent before renewal",
			Severity:   contract.SeverityWarning,
		}},
		SuggestedRevisions: []string{"Cap liability at 12 months of fees"},
		AnalysisTimeMs:     3,
		CreatedAt:          created,
	}
}

func TestSaveLoadAnalysis(t *testing.T) {
	db := openTest(t)
	want := sampleResult("a1", time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC))
	const text = "this agreement imposes unlimited liability on the contractor"

	if err := db.SaveAnalysis(want, text); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, gotText, err := db.LoadAnalysis("a1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if gotText != text {
		t.Fatalf("contract text = %q, want %q", gotText, text)
	}
	if got.ID != want.ID || got.OverallRisk != want.OverallRisk || got.RiskLevel != want.RiskLevel {
		t.Fatalf("result = %+v", got)
	}
	if len(got.RedFlags) != 1 || got.RedFlags[0].RuleID != "LIABILITY-UNLIMITED" {
		t.Fatalf("red flags = %+v", got.RedFlags)
	}
	if len(got.Warnings) != 1 || len(got.SuggestedRevisions) != 1 {
		t.Fatalf("warnings/revisions = %+v / %+v", got.Warnings, got.SuggestedRevisions)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, want.CreatedAt)
	}
}

func TestSaveAnalysis_UpsertReplacesFindings(t *testing.T) {
	db := openTest(t)
	res := sampleResult("a1", time.Now().UTC())
	if err := db.SaveAnalysis(res, "v1"); err != nil {
		t.Fatalf("save v1: %v", err)
	}

	res.Warnings = nil
	res.OverallRisk = 30
	if err := db.SaveAnalysis(res, "v2"); err != nil {
		t.Fatalf("save v2: %v", err)
	}

	got, text, err := db.LoadAnalysis("a1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if text != "v2" || got.OverallRisk != 30 {
		t.Fatalf("got text=%q risk=%d", text, got.OverallRisk)
	}

	rows, err := db.ListAnalyses(10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].Findings != 1 {
		t.Fatalf("rows = %+v, want 1 row with 1 finding", rows)
	}
}

func TestLoadAnalysis_NotFound(t *testing.T) {
	db := openTest(t)
	if _, _, err := db.LoadAnalysis("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	ok, err := db.HasAnalysis("missing")
	if err != nil || ok {
		t.Fatalf("has = %v, %v", ok, err)
	}
}

func TestListAnalyses_NewestFirstAndPaged(t *testing.T) {
	db := openTest(t)
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		res := sampleResult([]string{"a1", "a2", "a3"}[i], base.Add(time.Duration(i)*time.Hour))
		if err := db.SaveAnalysis(res, "text"); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	rows, err := db.ListAnalyses(2, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 || rows[0].ID != "a3" || rows[1].ID != "a2" {
		t.Fatalf("page 1 = %+v", rows)
	}
	rows, err = db.ListAnalyses(2, 2)
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != "a1" {
		t.Fatalf("page 2 = %+v", rows)
	}
}

func TestUsageCounters(t *testing.T) {
	db := openTest(t)
	ctx := context.Background()
	const key = "2026-05-01"

	// Reading an identity with no record yields zero, not an error.
	n, err := db.Current(ctx, "alice", key)
	if err != nil || n != 0 {
		t.Fatalf("current = %d, %v", n, err)
	}

	for i := 1; i <= 3; i++ {
		count, ok, err := db.IncrementWithin(ctx, "alice", key, 3)
		if err != nil || !ok || count != i {
			t.Fatalf("increment %d: count=%d ok=%v err=%v", i, count, ok, err)
		}
	}
	count, ok, err := db.IncrementWithin(ctx, "alice", key, 3)
	if err != nil || ok || count != 3 {
		t.Fatalf("over-limit: count=%d ok=%v err=%v", count, ok, err)
	}

	// Unconditional increment ignores the limit.
	n, err = db.Increment(ctx, "alice", key)
	if err != nil || n != 4 {
		t.Fatalf("unconditional = %d, %v", n, err)
	}

	// Separate identities and keys do not share counters.
	n, _ = db.Current(ctx, "bob", key)
	if n != 0 {
		t.Fatalf("bob count = %d, want 0", n)
	}
	n, _ = db.Current(ctx, "alice", "2026-05-02")
	if n != 0 {
		t.Fatalf("next day count = %d, want 0", n)
	}
}

func TestUsersAndSessions(t *testing.T) {
	db := openTest(t)

	id, err := db.CreateUser("frank", "hash-1", "analyst", "pro")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := db.CreateUser("frank", "hash-2", "analyst", "pro"); err == nil {
		t.Fatal("duplicate username accepted")
	}

	u, hash, err := db.GetUserByUsername("frank")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if u.ID != id || u.Role != "analyst" || u.Tier != "pro" || hash != "hash-1" {
		t.Fatalf("user = %+v hash=%q", u, hash)
	}

	if err := db.SetUserTier("frank", "enterprise"); err != nil {
		t.Fatalf("set tier: %v", err)
	}
	if err := db.SetUserTier("nobody", "pro"); err == nil {
		t.Fatal("set tier for unknown user succeeded")
	}

	if err := db.CreateSession(id, "tok", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("create session: %v", err)
	}
	su, err := db.GetSession("tok")
	if err != nil || su.Username != "frank" || su.Tier != "enterprise" {
		t.Fatalf("session user = %+v, %v", su, err)
	}

	if err := db.CreateSession(id, "old", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("create expired session: %v", err)
	}
	if _, err := db.GetSession("old"); err == nil {
		t.Fatal("expired session accepted")
	}

	if err := db.DeleteSession("tok"); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if _, err := db.GetSession("tok"); err == nil {
		t.Fatal("deleted session accepted")
	}
}

func TestDismissalsLifecycle(t *testing.T) {
	db := openTest(t)
	future := time.Now().Add(24 * time.Hour)

	if _, err := db.CreateDismissal("", "", "", "reason", "frank", future); err == nil {
		t.Fatal("matcher-less dismissal accepted")
	}
	if _, err := db.CreateDismissal("LIABILITY-UNLIMITED", "", "", "", "frank", future); err == nil {
		t.Fatal("reason-less dismissal accepted")
	}

	id, err := db.CreateDismissal("LIABILITY-UNLIMITED", "", "", "accepted by counsel", "frank", future)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := db.CreateDismissal("", "Payment Terms Clause", "net 90", "negotiated", "frank", time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("create expired: %v", err)
	}

	all, err := db.ListDismissals(false)
	if err != nil || len(all) != 2 {
		t.Fatalf("all = %d, %v", len(all), err)
	}
	active, err := db.ListDismissals(true)
	if err != nil || len(active) != 1 || active[0].ID != id {
		t.Fatalf("active = %+v, %v", active, err)
	}

	if err := db.RevokeDismissal(id); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if err := db.RevokeDismissal(id); err == nil {
		t.Fatal("double revoke succeeded")
	}
	active, _ = db.ListDismissals(true)
	if len(active) != 0 {
		t.Fatalf("active after revoke = %+v", active)
	}
}
