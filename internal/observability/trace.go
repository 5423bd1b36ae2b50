package observability

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"
	"time"
)

// sensitiveParams are query parameter names scrubbed from trace output.
var sensitiveParams = map[string]bool{
	"token":        true,
	"access_token": true,
	"api_key":      true,
	"apikey":       true,
	"secret":       true,
}

// TraceWriter streams request events as human-readable lines with
// timestamps relative to session start.
type TraceWriter struct {
	mu        sync.Mutex
	w         io.Writer
	startTime time.Time
}

// NewTraceWriter creates a trace writer. Pass os.Stderr in production.
func NewTraceWriter(w io.Writer) *TraceWriter {
	return &TraceWriter{w: w, startTime: time.Now()}
}

func (t *TraceWriter) elapsed() string {
	return fmt.Sprintf("+%dms", time.Since(t.startTime).Milliseconds())
}

// WriteRequestStart logs the beginning of a request attempt.
func (t *TraceWriter) WriteRequestStart(info RequestInfo) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "[agencydesk %s] %s %s (attempt %d)\n", t.elapsed(), info.Method, scrubURL(info.URL), info.Attempt)
}

// WriteRequestEnd logs the outcome of a request attempt.
func (t *TraceWriter) WriteRequestEnd(info RequestInfo, result RequestResult) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch {
	case result.Err != nil:
		fmt.Fprintf(t.w, "[agencydesk %s] %s %s failed: %v\n", t.elapsed(), info.Method, scrubURL(info.URL), result.Err)
	case result.FromCache:
		fmt.Fprintf(t.w, "[agencydesk %s] HTTP %d (cached, %v)\n", t.elapsed(), result.StatusCode, result.Duration.Round(time.Millisecond))
	default:
		fmt.Fprintf(t.w, "[agencydesk %s] HTTP %d (%v)\n", t.elapsed(), result.StatusCode, result.Duration.Round(time.Millisecond))
	}
}

// WriteRetry logs an upcoming retry.
func (t *TraceWriter) WriteRetry(info RequestInfo, delay time.Duration, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "[agencydesk %s] retry %s %s in %v: %v\n", t.elapsed(), info.Method, scrubURL(info.URL), delay.Round(time.Millisecond), err)
}

// Reset re-anchors relative timestamps, for long-lived TUI sessions.
func (t *TraceWriter) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.startTime = time.Now()
}

// scrubURL redacts sensitive query parameters for safe logging.
func scrubURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		// Malformed URLs may carry secrets in unexpected places.
		return "[unparseable URL]"
	}

	query := u.Query()
	modified := false
	for key := range query {
		if sensitiveParams[strings.ToLower(key)] {
			query.Set(key, "[REDACTED]")
			modified = true
		}
	}
	if !modified {
		return rawURL
	}
	u.RawQuery = query.Encode()
	return u.String()
}
