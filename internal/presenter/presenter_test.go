package presenter

import (
	"strings"
	"testing"
	"time"

	"github.com/agencydesk/agencydesk/internal/tui"
)

var enUS = NewLocale("en-US")

func TestLookupByName(t *testing.T) {
	schema := LookupByName("blog_post")
	if schema == nil {
		t.Fatal("Expected blog_post schema, got nil")
	}
	if schema.Entity != "blog_post" {
		t.Errorf("Entity = %q, want %q", schema.Entity, "blog_post")
	}
	if schema.TypeKey != "BlogPost" {
		t.Errorf("TypeKey = %q, want %q", schema.TypeKey, "BlogPost")
	}
	if schema.Identity.ID != "id" {
		t.Errorf("Identity.ID = %q, want %q", schema.Identity.ID, "id")
	}
}

func TestLookupUnknownEntity(t *testing.T) {
	if schema := LookupByName("invoice"); schema != nil {
		t.Errorf("Expected nil for unknown entity, got %+v", schema)
	}
}

func TestAllSchemasLoad(t *testing.T) {
	for _, name := range []string{
		"blog_post", "marketing_plan", "employee", "task",
		"lead", "client", "calendar_entry",
	} {
		if LookupByName(name) == nil {
			t.Errorf("Missing schema for %q", name)
		}
	}
}

func TestDetectByTypeKey(t *testing.T) {
	data := map[string]any{"type": "Task", "title": "Call the printer"}
	schema := Detect(data, "")
	if schema == nil || schema.Entity != "task" {
		t.Fatalf("Detect by type key failed: %+v", schema)
	}
}

func TestDetectHintWins(t *testing.T) {
	data := map[string]any{"type": "Task"}
	schema := Detect(data, "lead")
	if schema == nil || schema.Entity != "lead" {
		t.Fatalf("Expected hint to win, got %+v", schema)
	}
}

func TestRenderHeadlineDefault(t *testing.T) {
	schema := LookupByName("blog_post")
	got := RenderHeadline(schema, map[string]any{"title": "Spring launch", "status": "draft"})
	if got != "Spring launch" {
		t.Errorf("Headline = %q, want %q", got, "Spring launch")
	}
}

func TestRenderHeadlineStatusVariant(t *testing.T) {
	schema := LookupByName("blog_post")
	got := RenderHeadline(schema, map[string]any{"title": "Spring launch", "status": "failed"})
	if got != "Spring launch (generation failed)" {
		t.Errorf("Headline = %q", got)
	}
}

func TestFormatStatusLabels(t *testing.T) {
	spec := FieldSpec{Format: "status", Labels: map[string]string{"awaiting_feedback": "Awaiting feedback"}}
	if got := FormatField(spec, "awaiting_feedback", enUS); got != "Awaiting feedback" {
		t.Errorf("status = %q", got)
	}
	// Unmapped values pass through raw.
	if got := FormatField(spec, "completed", enUS); got != "completed" {
		t.Errorf("unmapped status = %q", got)
	}
}

func TestFormatDateByLocale(t *testing.T) {
	spec := FieldSpec{Format: "date"}
	tests := []struct {
		locale string
		want   string
	}{
		{"en-US", "Mar 5, 2026"},
		{"en-GB", "5 Mar 2026"},
		{"ja-JP", "2026-03-05"},
	}
	for _, tt := range tests {
		got := FormatField(spec, "2026-03-05", NewLocale(tt.locale))
		if got != tt.want {
			t.Errorf("%s: date = %q, want %q", tt.locale, got, tt.want)
		}
	}
}

func TestFormatList(t *testing.T) {
	spec := FieldSpec{Format: "list"}
	got := FormatField(spec, []any{"seo", "launch"}, enUS)
	if got != "seo, launch" {
		t.Errorf("list = %q", got)
	}
}

func TestFormatCountGrouping(t *testing.T) {
	spec := FieldSpec{Format: "count"}
	if got := FormatField(spec, float64(12500), enUS); got != "12,500" {
		t.Errorf("count = %q", got)
	}
	if got := FormatField(spec, float64(12500), NewLocale("de-DE")); got != "12.500" {
		t.Errorf("de count = %q", got)
	}
}

func TestFormatRelativeTime(t *testing.T) {
	spec := FieldSpec{Format: "relative_time"}
	recent := time.Now().Add(-5 * time.Minute).Format(time.RFC3339)
	if got := FormatField(spec, recent, enUS); got != "5 minutes ago" {
		t.Errorf("relative = %q", got)
	}
}

func TestIsOverdue(t *testing.T) {
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	if !IsOverdue(yesterday) {
		t.Error("yesterday should be overdue")
	}
	if IsOverdue(tomorrow) {
		t.Error("tomorrow should not be overdue")
	}
	if IsOverdue("") {
		t.Error("empty date should not be overdue")
	}
}

func TestNewLocaleFallback(t *testing.T) {
	l := NewLocale("not-a-locale!!")
	if l.Tag().String() != "en-US" {
		t.Errorf("fallback tag = %q", l.Tag())
	}
	l = NewLocale("de_DE.UTF-8")
	if base, _ := l.Tag().Base(); base.String() != "de" {
		t.Errorf("POSIX parse base = %q", base)
	}
}

func TestPresentDetail(t *testing.T) {
	var b strings.Builder
	data := map[string]any{
		"type":     "BlogPost",
		"id":       float64(7),
		"title":    "Spring launch",
		"status":   "completed",
		"keywords": []any{"seo"},
		"content":  "Body text here",
	}
	ok := PresentWithTheme(&b, data, "", ModeStyled, tui.NoColorTheme())
	if !ok {
		t.Fatal("Present returned false")
	}
	out := b.String()
	for _, want := range []string{"Spring launch", "Completed", "seo", "Body text here"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	// The completed post offers a publish affordance.
	if !strings.Contains(out, "agencydesk blogs publish 7") {
		t.Errorf("missing publish affordance:\n%s", out)
	}
}

func TestPresentDetailDraftHidesPublish(t *testing.T) {
	var b strings.Builder
	data := map[string]any{
		"type": "BlogPost", "id": float64(7),
		"title": "Draft", "status": "draft",
	}
	PresentWithTheme(&b, data, "", ModeStyled, tui.NoColorTheme())
	if strings.Contains(b.String(), "blogs publish") {
		t.Errorf("draft post should not offer publish:\n%s", b.String())
	}
}

func TestPresentList(t *testing.T) {
	var b strings.Builder
	data := []map[string]any{
		{"type": "Lead", "id": float64(1), "name": "Acme Corp", "status": "new", "score": float64(80)},
		{"type": "Lead", "id": float64(2), "name": "Globex", "status": "qualified", "score": float64(95)},
	}
	if !PresentWithTheme(&b, data, "", ModeStyled, tui.NoColorTheme()) {
		t.Fatal("Present returned false")
	}
	out := b.String()
	if !strings.Contains(out, "Acme Corp") || !strings.Contains(out, "Globex") {
		t.Errorf("list output incomplete:\n%s", out)
	}
}

func TestPresentMarkdownList(t *testing.T) {
	var b strings.Builder
	data := []map[string]any{
		{"type": "Client", "id": float64(1), "name": "Initech", "company": "Initech LLC"},
	}
	if !PresentWithTheme(&b, data, "", ModeMarkdown, tui.NoColorTheme()) {
		t.Fatal("Present returned false")
	}
	out := b.String()
	if !strings.Contains(out, "| Id |") && !strings.Contains(out, "| Initech |") {
		t.Errorf("markdown table missing cells:\n%s", out)
	}
}

func TestPresentUnknownDataFallsThrough(t *testing.T) {
	var b strings.Builder
	if PresentWithTheme(&b, map[string]any{"foo": "bar"}, "", ModeStyled, tui.NoColorTheme()) {
		t.Error("expected false for unknown data")
	}
}

func TestFieldLabel(t *testing.T) {
	tests := map[string]string{
		"due_on":       "Due",
		"scheduled_at": "Scheduled",
		"source_id":    "Source Id",
		"name":         "Name",
	}
	for in, want := range tests {
		if got := fieldLabel(in); got != want {
			t.Errorf("fieldLabel(%q) = %q, want %q", in, got, want)
		}
	}
}
