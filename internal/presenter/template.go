package presenter

import (
	"bytes"
	"fmt"
	"text/template"
)

// RenderTemplate executes a Go text/template against the record.
// Returns empty string on parse or execution errors.
func RenderTemplate(tmpl string, data map[string]any) string {
	t, err := template.New("").Parse(tmpl)
	if err != nil {
		return ""
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return ""
	}
	return buf.String()
}

// EvalCondition evaluates an affordance "when" template. An empty
// condition is always visible.
func EvalCondition(condition string, data map[string]any) bool {
	if condition == "" {
		return true
	}
	return RenderTemplate(condition, data) == "true"
}

// RenderHeadline selects and renders the headline for the record.
// Non-default headline keys match against the record's status, so a
// schema can headline failed posts differently from published ones.
func RenderHeadline(schema *EntitySchema, data map[string]any) string {
	if schema.Headline == nil {
		if label := schema.Identity.Label; label != "" {
			if v, ok := data[label]; ok {
				return fmt.Sprintf("%v", v)
			}
		}
		return ""
	}

	if status, ok := data["status"].(string); ok {
		if spec, found := schema.Headline[status]; found {
			if rendered := RenderTemplate(spec.Template, data); rendered != "" {
				return rendered
			}
		}
	}

	if spec, ok := schema.Headline["default"]; ok {
		return RenderTemplate(spec.Template, data)
	}
	return ""
}
