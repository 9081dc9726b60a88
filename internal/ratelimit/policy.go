package ratelimit

import "time"

// LimitConfig allows at most Max requests per sliding Window.
type LimitConfig struct {
	Window time.Duration
	Max    int64
}

// Policy maps scopes to the limits enforced for them.
type Policy struct {
	Limits map[Scope][]LimitConfig
}

// DefaultPolicy is applied to endpoints without custom limits.
func DefaultPolicy() *Policy {
	return &Policy{
		Limits: map[Scope][]LimitConfig{
			ScopeGlobal: {{Window: time.Minute, Max: 1000}},
			ScopeWrite:  {{Window: time.Minute, Max: 60}},
			ScopeRead:   {{Window: time.Minute, Max: 600}},
		},
	}
}

// MaxWindow returns the longest window in the policy and in extra, which
// bounds how long a store has to remember a request.
func (p *Policy) MaxWindow(extra ...LimitConfig) time.Duration {
	var longest time.Duration

	for _, limits := range p.Limits {
		for _, l := range limits {
			longest = max(longest, l.Window)
		}
	}

	for _, l := range extra {
		longest = max(longest, l.Window)
	}

	return longest
}
