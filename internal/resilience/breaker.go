package resilience

import "time"

// BreakerConfig configures the circuit breaker.
type BreakerConfig struct {
	// FailureThreshold is how many consecutive failures trip the circuit.
	FailureThreshold int

	// SuccessThreshold is how many consecutive half-open successes
	// close the circuit again.
	SuccessThreshold int

	// OpenTimeout is how long a tripped circuit rejects requests
	// before probing HQ again.
	OpenTimeout time.Duration
}

func (c BreakerConfig) withDefaults() BreakerConfig {
	if c.FailureThreshold <= 0 {
		c.FailureThreshold = 5
	}
	if c.SuccessThreshold <= 0 {
		c.SuccessThreshold = 2
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = 30 * time.Second
	}
	return c
}

// Breaker is a circuit breaker whose state is shared across processes
// through a Store. While the circuit is open all requests fail fast;
// after OpenTimeout it moves to half-open and lets probes through.
type Breaker struct {
	config BreakerConfig
	store  *Store
	clock  func() time.Time
}

// NewBreaker creates a breaker backed by store. Zero config fields take
// defaults.
func NewBreaker(store *Store, config BreakerConfig) *Breaker {
	return &Breaker{
		config: config.withDefaults(),
		store:  store,
		clock:  time.Now,
	}
}

// Allow reports whether a request may proceed. Closed circuits answer
// from a read-only load; open circuits transition to half-open once
// OpenTimeout has elapsed. Store errors fail open.
func (b *Breaker) Allow() bool {
	state, err := b.store.Load()
	if err != nil {
		return true
	}

	now := b.clock()
	br := &state.Breaker

	if br.IsClosed() || br.IsHalfOpen() {
		return true
	}

	// Open circuit: reject until the timeout expires, then probe.
	if now.Sub(br.OpenedAt) < b.config.OpenTimeout {
		return false
	}

	allowed := true
	err = b.store.Update(func(s *State) error {
		if s.Breaker.IsOpen() {
			if now.Sub(s.Breaker.OpenedAt) < b.config.OpenTimeout {
				allowed = false
				return nil
			}
			s.Breaker.State = CircuitHalfOpen
			s.Breaker.Failures = 0
			s.Breaker.Successes = 0
			s.UpdatedAt = now
		}
		return nil
	})
	if err != nil {
		return true
	}
	return allowed
}

// RecordSuccess notes a successful request. Enough half-open successes
// close the circuit; a success while closed resets the failure streak.
func (b *Breaker) RecordSuccess() error {
	return b.store.Update(func(state *State) error {
		br := &state.Breaker
		switch {
		case br.IsHalfOpen():
			br.Successes++
			if br.Successes >= b.config.SuccessThreshold {
				state.Breaker = BreakerState{State: CircuitClosed}
			}
		case br.IsClosed():
			br.Failures = 0
		}
		state.UpdatedAt = b.clock()
		return nil
	})
}

// RecordFailure notes a failed request. Reaching the failure threshold
// while closed, or any failure while half-open, opens the circuit.
func (b *Breaker) RecordFailure() error {
	return b.store.Update(func(state *State) error {
		now := b.clock()
		br := &state.Breaker
		br.LastFailureAt = now

		switch {
		case br.IsClosed():
			br.Failures++
			if br.Failures >= b.config.FailureThreshold {
				br.State = CircuitOpen
				br.OpenedAt = now
			}
		case br.IsHalfOpen():
			br.State = CircuitOpen
			br.OpenedAt = now
			br.Successes = 0
		}

		state.UpdatedAt = now
		return nil
	})
}

// State returns the effective circuit state, accounting for an open
// circuit whose timeout has already expired.
func (b *Breaker) State() (string, error) {
	state, err := b.store.Load()
	if err != nil {
		return CircuitClosed, err
	}
	br := &state.Breaker
	if br.IsOpen() && b.clock().Sub(br.OpenedAt) >= b.config.OpenTimeout {
		return CircuitHalfOpen, nil
	}
	if br.State == "" {
		return CircuitClosed, nil
	}
	return br.State, nil
}

// Reset forces the circuit closed.
func (b *Breaker) Reset() error {
	return b.store.Update(func(state *State) error {
		state.Breaker = BreakerState{State: CircuitClosed}
		state.UpdatedAt = b.clock()
		return nil
	})
}
