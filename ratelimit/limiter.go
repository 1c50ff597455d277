package ratelimit

import (
	"context"
	"strings"
	"time"
)

// Policy names one throttling rule: at most Total attempts per Window,
// applied to the HTTP methods in Methods. Empty Methods means every method.
// Name namespaces the counters, so two policies sharing a store never share
// a budget.
type Policy struct {
	Name    string
	Total   int
	Window  time.Duration
	Methods []string
}

// AuthPolicy is the strict preset: 5 attempts per 5 minutes, every method.
// Meant for the credential-bearing routes individually.
func AuthPolicy() Policy {
	return Policy{
		Name:   "auth",
		Total:  5,
		Window: 5 * time.Minute,
	}
}

// GlobalPostPolicy is the blanket preset: 15 POSTs per 5 minutes shared
// across every POST route.
func GlobalPostPolicy() Policy {
	return Policy{
		Name:    "post",
		Total:   15,
		Window:  5 * time.Minute,
		Methods: []string{"POST"},
	}
}

// Named returns a copy of the policy under a different counter namespace.
// Two limiters built from Named copies share the budget shape but not the
// counters.
func (p Policy) Named(name string) Policy {
	p.Name = name
	return p
}

// AppliesTo reports whether the policy throttles the given HTTP method.
func (p Policy) AppliesTo(method string) bool {
	if len(p.Methods) == 0 {
		return true
	}
	for _, m := range p.Methods {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}

// Limiter applies one [Policy] against a [Store].
type Limiter struct {
	store  Store
	policy Policy
}

// New builds a limiter for policy over store.
func New(store Store, policy Policy) *Limiter {
	return &Limiter{store: store, policy: policy}
}

// Policy returns the limiter's policy.
func (l *Limiter) Policy() Policy {
	return l.policy
}

// Allow records one attempt for key (the caller's network address) and
// reports whether it is within budget. The increment lands before the
// compare, so a rejected attempt still counts against the window. Methods
// outside the policy's filter pass without consuming budget.
func (l *Limiter) Allow(ctx context.Context, key, method string) (bool, error) {
	if !l.policy.AppliesTo(method) {
		return true, nil
	}

	count, err := l.store.Incr(ctx, l.policy.Name+":"+key, l.policy.Window)
	if err != nil {
		return false, err
	}

	return count <= int64(l.policy.Total), nil
}
