package resilience

import "time"

// LimiterConfig configures the token bucket rate limiter.
type LimiterConfig struct {
	// MaxTokens is the bucket capacity.
	MaxTokens float64

	// RefillRate is how many tokens are added per second.
	RefillRate float64
}

func (c LimiterConfig) withDefaults() LimiterConfig {
	if c.MaxTokens <= 0 {
		c.MaxTokens = 50
	}
	if c.RefillRate <= 0 {
		c.RefillRate = 10
	}
	return c
}

// Limiter is a token bucket rate limiter shared across processes.
// Every request costs one token; an empty bucket or an active
// Retry-After window rejects the request.
type Limiter struct {
	config LimiterConfig
	store  *Store
	clock  func() time.Time
}

// NewLimiter creates a limiter backed by store. Zero config fields take
// defaults.
func NewLimiter(store *Store, config LimiterConfig) *Limiter {
	return &Limiter{
		config: config.withDefaults(),
		store:  store,
		clock:  time.Now,
	}
}

func (l *Limiter) refill(state *LimiterState, now time.Time) {
	if state.LastRefillAt.IsZero() {
		state.Tokens = l.config.MaxTokens
		state.LastRefillAt = now
		return
	}

	elapsed := now.Sub(state.LastRefillAt)
	state.LastRefillAt = now
	state.Tokens += elapsed.Seconds() * l.config.RefillRate
	if state.Tokens > l.config.MaxTokens {
		state.Tokens = l.config.MaxTokens
	}
}

// Allow consumes a token if one is available and reports whether the
// request may proceed. Store errors fail open.
func (l *Limiter) Allow() bool {
	allowed := true
	err := l.store.Update(func(state *State) error {
		now := l.clock()
		if state.Limiter.Blocked(now) {
			allowed = false
			return nil
		}

		l.refill(&state.Limiter, now)
		if state.Limiter.Tokens >= 1 {
			state.Limiter.Tokens--
		} else {
			allowed = false
		}
		state.UpdatedAt = now
		return nil
	})
	if err != nil {
		return true
	}
	return allowed
}

// SetRetryAfter blocks all requests for the given duration. A shorter
// window never shrinks an existing one.
func (l *Limiter) SetRetryAfter(d time.Duration) error {
	return l.store.Update(func(state *State) error {
		now := l.clock()
		until := now.Add(d)
		if until.After(state.Limiter.RetryAfterUntil) {
			state.Limiter.RetryAfterUntil = until
			state.UpdatedAt = now
		}
		return nil
	})
}

// RetryAfterRemaining returns the remaining Retry-After window, or zero.
func (l *Limiter) RetryAfterRemaining() (time.Duration, error) {
	state, err := l.store.Load()
	if err != nil {
		return 0, err
	}
	return state.Limiter.BlockedFor(l.clock()), nil
}

// Tokens reports the available token count after refilling.
func (l *Limiter) Tokens() (float64, error) {
	var tokens float64
	err := l.store.Update(func(state *State) error {
		l.refill(&state.Limiter, l.clock())
		tokens = state.Limiter.Tokens
		return nil
	})
	if err != nil {
		return 0, err
	}
	return tokens, nil
}

// Reset refills the bucket and clears any Retry-After window.
func (l *Limiter) Reset() error {
	return l.store.Update(func(state *State) error {
		now := l.clock()
		state.Limiter = LimiterState{
			Tokens:       l.config.MaxTokens,
			LastRefillAt: now,
		}
		state.UpdatedAt = now
		return nil
	})
}
