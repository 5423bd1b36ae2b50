package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestWriterOKJSON(t *testing.T) {
	var buf bytes.Buffer
	w := New(Options{Format: FormatJSON, Writer: &buf})

	if err := w.OK(map[string]any{"id": 7, "title": "A"}); err != nil {
		t.Fatalf("OK failed: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(buf.Bytes(), &resp); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if resp["ok"] != true {
		t.Errorf("ok = %v, want true", resp["ok"])
	}
}

func TestWriterErrEnvelope(t *testing.T) {
	var buf bytes.Buffer
	w := New(Options{Format: FormatJSON, Writer: &buf})

	if err := w.Err(ErrNotFound("Blog post", "42")); err != nil {
		t.Fatalf("Err failed: %v", err)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(buf.Bytes(), &resp); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if resp.OK {
		t.Error("ok = true, want false")
	}
	if resp.Code != CodeNotFound {
		t.Errorf("code = %q, want %q", resp.Code, CodeNotFound)
	}
}

func TestWriterIDs(t *testing.T) {
	var buf bytes.Buffer
	w := New(Options{Format: FormatIDs, Writer: &buf})

	data := []map[string]any{
		{"id": 1, "title": "a"},
		{"id": 2, "title": "b"},
	}
	if err := w.OK(data); err != nil {
		t.Fatalf("OK failed: %v", err)
	}
	if got := buf.String(); got != "1\n2\n" {
		t.Errorf("ids output = %q, want %q", got, "1\n2\n")
	}
}

func TestWriterCount(t *testing.T) {
	var buf bytes.Buffer
	w := New(Options{Format: FormatCount, Writer: &buf})

	if err := w.OK([]map[string]any{{"id": 1}, {"id": 2}, {"id": 3}}); err != nil {
		t.Fatalf("OK failed: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "3" {
		t.Errorf("count output = %q, want 3", got)
	}
}

func TestWriterTable(t *testing.T) {
	var buf bytes.Buffer
	w := New(Options{Format: FormatTable, Writer: &buf})

	data := []map[string]any{
		{"id": float64(1), "title": "First", "status": "draft"},
		{"id": float64(2), "title": "Second", "status": "published"},
	}
	if err := w.OK(data); err != nil {
		t.Fatalf("OK failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "TITLE") {
		t.Errorf("table missing header: %q", out)
	}
	if !strings.Contains(out, "published") {
		t.Errorf("table missing row value: %q", out)
	}
}

func TestErrorExitCodes(t *testing.T) {
	tests := []struct {
		err  *Error
		code int
	}{
		{ErrUsage("bad"), ExitUsage},
		{ErrNotFound("Lead", "9"), ExitNotFound},
		{ErrAuth("no token"), ExitAuth},
		{ErrRateLimit(30), ExitRateLimit},
		{ErrNetwork(errors.New("refused")), ExitNetwork},
		{ErrAPI(500, "boom"), ExitAPI},
		{ErrValidation("email", "missing @"), ExitValidation},
	}
	for _, tt := range tests {
		if got := tt.err.ExitCode(); got != tt.code {
			t.Errorf("ExitCode(%s) = %d, want %d", tt.err.Code, got, tt.code)
		}
	}
}

func TestAsErrorWrapsPlain(t *testing.T) {
	plain := errors.New("something broke")
	e := AsError(plain)
	if e.Code != CodeAPI {
		t.Errorf("code = %q, want %q", e.Code, CodeAPI)
	}
	if !errors.Is(e, plain) {
		t.Error("AsError should preserve the cause chain")
	}
}

func TestIsSuccess(t *testing.T) {
	for _, status := range []int{200, 201, 204, 299} {
		if !IsSuccess(status) {
			t.Errorf("IsSuccess(%d) = false, want true", status)
		}
	}
	for _, status := range []int{0, 199, 300, 400, 404, 500} {
		if IsSuccess(status) {
			t.Errorf("IsSuccess(%d) = true, want false", status)
		}
	}
}
