package resilience

import (
	"errors"
	"time"
)

// Gate errors reported from Acquire.
var (
	// ErrCircuitOpen means HQ has been failing and requests are being
	// rejected until the circuit recovers.
	ErrCircuitOpen = errors.New("circuit open")

	// ErrRateLimited means the local token bucket is exhausted or a
	// Retry-After window is active.
	ErrRateLimited = errors.New("rate limited")
)

// Config bundles the gate's breaker and limiter settings.
type Config struct {
	Breaker BreakerConfig
	Limiter LimiterConfig
}

// Gate combines the circuit breaker and rate limiter into the single
// checkpoint the API client consults before each request.
type Gate struct {
	breaker *Breaker
	limiter *Limiter
}

// NewGate creates a gate persisting state under dir. An empty dir
// selects the default cache location.
func NewGate(dir string, config Config) *Gate {
	store := NewStore(dir)
	return &Gate{
		breaker: NewBreaker(store, config.Breaker),
		limiter: NewLimiter(store, config.Limiter),
	}
}

// Acquire checks the limiter and breaker. A nil error means the request
// may proceed.
func (g *Gate) Acquire() error {
	if !g.limiter.Allow() {
		return ErrRateLimited
	}
	if !g.breaker.Allow() {
		return ErrCircuitOpen
	}
	return nil
}

// RecordSuccess feeds a successful request into the breaker.
func (g *Gate) RecordSuccess() {
	_ = g.breaker.RecordSuccess()
}

// RecordFailure feeds a failed request into the breaker. Only server
// and transport failures should be recorded, not client errors.
func (g *Gate) RecordFailure() {
	_ = g.breaker.RecordFailure()
}

// RecordRetryAfter blocks further requests for the duration HQ asked
// for in a 429 response.
func (g *Gate) RecordRetryAfter(d time.Duration) {
	_ = g.limiter.SetRetryAfter(d)
}

// Breaker exposes the underlying circuit breaker, used by doctor.
func (g *Gate) Breaker() *Breaker {
	return g.breaker
}

// Limiter exposes the underlying rate limiter, used by doctor.
func (g *Gate) Limiter() *Limiter {
	return g.limiter
}
