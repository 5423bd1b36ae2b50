// Package observability provides request metrics and tracing for the
// HTTP gateway. The API client reports every request through a Hooks
// implementation; the collector aggregates counters for the session
// and the trace writer streams them to stderr under --verbose.
package observability

import (
	"sync"
	"time"
)

// RequestInfo identifies one HTTP request attempt.
type RequestInfo struct {
	Method  string
	URL     string
	Attempt int
}

// RequestResult carries the outcome of one HTTP request attempt.
type RequestResult struct {
	StatusCode int
	Duration   time.Duration
	FromCache  bool
	Err        error
}

// Hooks receives request lifecycle events from the API client.
type Hooks interface {
	OnRequestStart(info RequestInfo)
	OnRequestEnd(info RequestInfo, result RequestResult)
	OnRetry(info RequestInfo, delay time.Duration, err error)
}

// SessionMetrics is a point-in-time aggregate of a session's requests.
type SessionMetrics struct {
	StartTime     time.Time
	TotalRequests int
	CacheHits     int
	CacheMisses   int
	Failed        int
	Retries       int
	TotalLatency  time.Duration
}

// AvgLatency returns the mean request latency, zero when no requests.
func (m SessionMetrics) AvgLatency() time.Duration {
	if m.TotalRequests == 0 {
		return 0
	}
	return m.TotalLatency / time.Duration(m.TotalRequests)
}

// Collector accumulates request counters across a session. Safe for
// concurrent use; counters only, no unbounded slices.
type Collector struct {
	mu        sync.Mutex
	startTime time.Time
	requests  int
	cacheHits int
	misses    int
	failed    int
	retries   int
	latency   time.Duration
}

// NewCollector creates a collector with the session start anchored now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

// RecordRequest records one completed request attempt.
func (c *Collector) RecordRequest(result RequestResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests++
	c.latency += result.Duration
	if result.Err != nil {
		c.failed++
	}
	if result.FromCache {
		c.cacheHits++
	} else {
		c.misses++
	}
}

// RecordRetry records one retry event.
func (c *Collector) RecordRetry() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.retries++
}

// Snapshot returns the current aggregate.
func (c *Collector) Snapshot() SessionMetrics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return SessionMetrics{
		StartTime:     c.startTime,
		TotalRequests: c.requests,
		CacheHits:     c.cacheHits,
		CacheMisses:   c.misses,
		Failed:        c.failed,
		Retries:       c.retries,
		TotalLatency:  c.latency,
	}
}
