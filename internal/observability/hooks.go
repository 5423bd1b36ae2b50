package observability

import (
	"sync"
	"time"
)

// Verify CLIHooks satisfies Hooks at compile time.
var _ Hooks = (*CLIHooks)(nil)

// CLIHooks routes request events to a collector and, depending on the
// verbosity level, a trace writer:
//   - 0: silent, counters only
//   - 1: request lines
//   - 2: request lines plus retries and outcomes
type CLIHooks struct {
	mu        sync.Mutex
	level     int
	collector *Collector
	writer    *TraceWriter
}

// NewCLIHooks creates hooks at the given verbosity. A nil collector
// disables counting; a nil writer disables tracing.
func NewCLIHooks(level int, collector *Collector, writer *TraceWriter) *CLIHooks {
	return &CLIHooks{level: level, collector: collector, writer: writer}
}

// SetLevel changes the verbosity level at runtime.
func (h *CLIHooks) SetLevel(level int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.level = level
}

func (h *CLIHooks) state() (int, *Collector, *TraceWriter) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.level, h.collector, h.writer
}

func (h *CLIHooks) OnRequestStart(info RequestInfo) {
	level, _, writer := h.state()
	if level >= 1 && writer != nil {
		writer.WriteRequestStart(info)
	}
}

func (h *CLIHooks) OnRequestEnd(info RequestInfo, result RequestResult) {
	level, collector, writer := h.state()
	if collector != nil {
		collector.RecordRequest(result)
	}
	if level >= 2 && writer != nil {
		writer.WriteRequestEnd(info, result)
	}
}

func (h *CLIHooks) OnRetry(info RequestInfo, delay time.Duration, err error) {
	level, collector, writer := h.state()
	if collector != nil {
		collector.RecordRetry()
	}
	if level >= 2 && writer != nil {
		writer.WriteRetry(info, delay, err)
	}
}
