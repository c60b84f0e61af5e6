// Package quota enforces per-identity daily usage limits. It is the only
// part of the engine with shared mutable state (the counters), and that
// state lives behind a Store whose check-and-increment is atomic: two
// concurrent requests racing at count == limit-1 can never both commit.
package quota

import (
	"context"
	"errors"
	"time"
)

// ErrQuotaExceeded is the paywall signal: the request that would have
// exceeded the limit was never charged against the counter.
var ErrQuotaExceeded = errors.New("daily analysis quota exceeded")

type Tier string

const (
	TierFree       Tier = "free"
	TierPro        Tier = "pro"
	TierEnterprise Tier = "enterprise"
)

// Unlimited marks a tier with no daily cap.
const Unlimited = -1

// Limits maps tiers to daily request caps.
type Limits map[Tier]int

func DefaultLimits() Limits {
	return Limits{
		TierFree:       5,
		TierPro:        Unlimited,
		TierEnterprise: Unlimited,
	}
}

// For resolves a tier's limit; unknown tiers are treated as free so a
// mis-tagged identity can never bypass the cap.
func (l Limits) For(t Tier) int {
	if n, ok := l[t]; ok {
		return n
	}
	return l[TierFree]
}

// Store is the counter contract the gatekeeper needs from storage.
// IncrementWithin must be atomic with respect to concurrent calls for the
// same identity and period; contention across identities must not
// serialize requests.
type Store interface {
	// IncrementWithin increments the counter only while it is below limit,
	// creating the record lazily at zero. ok reports whether the increment
	// committed; count is the value after the call either way.
	IncrementWithin(ctx context.Context, identity, periodKey string, limit int) (count int, ok bool, err error)
	// Increment bumps the counter unconditionally (unlimited tiers are
	// still recorded so usage reporting works).
	Increment(ctx context.Context, identity, periodKey string) (int, error)
	// Current reads the counter without changing it.
	Current(ctx context.Context, identity, periodKey string) (int, error)
}

// Decision is the gatekeeper's verdict for one request.
type Decision struct {
	Authorized bool   `json:"authorized"`
	Tier       Tier   `json:"tier"`
	Used       int    `json:"used"`
	Limit      int    `json:"limit"` // -1 means unlimited
	Remaining  int    `json:"remaining"`
	PeriodKey  string `json:"period_key"`
}

// Gatekeeper authorizes scoring and export requests against the tier
// limit table. Constructed explicitly and injected; no package-level
// instance exists.
type Gatekeeper struct {
	store  Store
	limits Limits
	now    func() time.Time
}

func New(store Store, limits Limits) *Gatekeeper {
	if limits == nil {
		limits = DefaultLimits()
	}
	return &Gatekeeper{store: store, limits: limits, now: time.Now}
}

// WithClock fixes the time source, for period rollover tests.
func (g *Gatekeeper) WithClock(now func() time.Time) *Gatekeeper {
	g.now = now
	return g
}

// PeriodKey buckets usage by UTC calendar day. Rollover is implicit: a
// new key simply starts a fresh record.
func (g *Gatekeeper) PeriodKey() string {
	return g.now().UTC().Format("2006-01-02")
}

// Authorize performs the atomic check-and-increment for one request.
// Unlimited tiers are always authorized but still counted. A denial
// returns ErrQuotaExceeded alongside the decision.
func (g *Gatekeeper) Authorize(ctx context.Context, identity string, tier Tier) (Decision, error) {
	key := g.PeriodKey()
	limit := g.limits.For(tier)

	if limit == Unlimited {
		count, err := g.store.Increment(ctx, identity, key)
		if err != nil {
			return Decision{}, err
		}
		return Decision{Authorized: true, Tier: tier, Used: count, Limit: Unlimited, Remaining: Unlimited, PeriodKey: key}, nil
	}

	count, ok, err := g.store.IncrementWithin(ctx, identity, key, limit)
	if err != nil {
		return Decision{}, err
	}
	d := Decision{Authorized: ok, Tier: tier, Used: count, Limit: limit, Remaining: limit - count, PeriodKey: key}
	if !ok {
		return d, ErrQuotaExceeded
	}
	return d, nil
}

// Usage reads the current counter without charging the request.
func (g *Gatekeeper) Usage(ctx context.Context, identity string, tier Tier) (Decision, error) {
	key := g.PeriodKey()
	limit := g.limits.For(tier)
	count, err := g.store.Current(ctx, identity, key)
	if err != nil {
		return Decision{}, err
	}
	remaining := Unlimited
	if limit != Unlimited {
		remaining = limit - count
		if remaining < 0 {
			remaining = 0
		}
	}
	return Decision{Authorized: limit == Unlimited || count < limit, Tier: tier, Used: count, Limit: limit, Remaining: remaining, PeriodKey: key}, nil
}
