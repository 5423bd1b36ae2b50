package cli

import (
	"testing"

	"github.com/agencydesk/agencydesk/internal/output"
)

func TestTransformCobraError(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want string
	}{
		{"missing value", "flag needs an argument: --account", "--account requires a value"},
		{"unknown flag", "unknown flag: --bogus", "Unknown option: --bogus"},
		{"unknown shorthand", "unknown shorthand flag: 'x' in -x", "Unknown option: -x"},
		{"missing args", "accepts 1 arg(s), received 0", "ID required"},
		{"required flag", `required flag(s) "title" not set`, "title required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := transformCobraError(errString(tt.msg))
			apiErr, ok := got.(*output.Error)
			if !ok {
				t.Fatalf("expected *output.Error, got %T", got)
			}
			if apiErr.Message != tt.want {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.want)
			}
			if apiErr.Code != output.CodeUsage {
				t.Errorf("Code = %q, want %q", apiErr.Code, output.CodeUsage)
			}
		})
	}
}

func TestTransformCobraErrorPassthrough(t *testing.T) {
	err := errString("something else entirely")
	if got := transformCobraError(err); got != err {
		t.Errorf("expected unrelated errors passed through, got %v", got)
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	if got := normalizeBaseURL(""); got != "" {
		t.Errorf("empty input should stay empty, got %q", got)
	}
	if got := normalizeBaseURL("localhost:8000"); got != "http://localhost:8000" {
		t.Errorf("localhost should get http scheme, got %q", got)
	}
	if got := normalizeBaseURL("api.example.com"); got != "https://api.example.com" {
		t.Errorf("remote host should get https scheme, got %q", got)
	}
}

type errString string

func (e errString) Error() string { return string(e) }
