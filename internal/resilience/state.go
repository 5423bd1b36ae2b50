package resilience

import "time"

// StateVersion is the schema version of the persisted state file.
const StateVersion = 1

// State is the resilience state shared by all agencydesk processes.
type State struct {
	Version   int          `json:"version"`
	Breaker   BreakerState `json:"breaker"`
	Limiter   LimiterState `json:"limiter"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Circuit states.
const (
	CircuitClosed   = "closed"
	CircuitOpen     = "open"
	CircuitHalfOpen = "half_open"
)

// BreakerState tracks the circuit breaker across processes.
type BreakerState struct {
	// State is "closed", "open" or "half_open". Empty means closed.
	State string `json:"state"`

	// Failures counts consecutive failures while closed.
	Failures int `json:"failures"`

	// Successes counts consecutive successes while half-open.
	Successes int `json:"successes"`

	// OpenedAt is when the circuit last tripped.
	OpenedAt time.Time `json:"opened_at"`

	// LastFailureAt is when the most recent failure was recorded.
	LastFailureAt time.Time `json:"last_failure_at"`
}

func (b *BreakerState) IsClosed() bool {
	return b.State == "" || b.State == CircuitClosed
}

func (b *BreakerState) IsOpen() bool {
	return b.State == CircuitOpen
}

func (b *BreakerState) IsHalfOpen() bool {
	return b.State == CircuitHalfOpen
}

// LimiterState tracks the shared token bucket.
type LimiterState struct {
	// Tokens currently available.
	Tokens float64 `json:"tokens"`

	// LastRefillAt is when tokens were last topped up. Zero means the
	// bucket has never been initialized.
	LastRefillAt time.Time `json:"last_refill_at"`

	// RetryAfterUntil blocks all requests until the given time. Set
	// when HQ answers 429 with a Retry-After header.
	RetryAfterUntil time.Time `json:"retry_after_until"`
}

// Blocked reports whether a Retry-After window is still active.
func (l *LimiterState) Blocked(now time.Time) bool {
	return !l.RetryAfterUntil.IsZero() && now.Before(l.RetryAfterUntil)
}

// BlockedFor returns the remaining Retry-After window, or zero.
func (l *LimiterState) BlockedFor(now time.Time) time.Duration {
	if l.RetryAfterUntil.IsZero() {
		return 0
	}
	remaining := l.RetryAfterUntil.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// NewState returns fresh state. LimiterState.LastRefillAt stays zero so
// the first refill fills the bucket from the configured maximum.
func NewState() *State {
	return &State{
		Version:   StateVersion,
		Breaker:   BreakerState{State: CircuitClosed},
		UpdatedAt: time.Now(),
	}
}
