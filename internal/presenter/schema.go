// Package presenter provides schema-aware rendering for back-office
// records. It sits between commands and the output writer, using
// declarative YAML schemas to turn API records into human-centered
// terminal output.
package presenter

// EntitySchema describes how one record type wants to be presented.
// Schemas are loaded from embedded YAML files.
type EntitySchema struct {
	Entity   string                  `yaml:"entity"`
	TypeKey  string                  `yaml:"type_key"`
	Identity Identity                `yaml:"identity"`
	Headline map[string]HeadlineSpec `yaml:"headline"`
	Fields   map[string]FieldSpec    `yaml:"fields"`
	Views    ViewSpecs               `yaml:"views"`
	Actions  []Affordance            `yaml:"affordances"`
}

// Identity names the record's label and id fields.
type Identity struct {
	Label string `yaml:"label"`
	ID    string `yaml:"id"`
}

// HeadlineSpec defines a headline template. Non-default keys are
// matched against the record's status field, so a published blog post
// and a failed one can headline differently.
type HeadlineSpec struct {
	Template string `yaml:"template"`
}

// FieldSpec describes how a single field should be presented.
type FieldSpec struct {
	Role        string            `yaml:"role"`
	Emphasis    string            `yaml:"emphasis"`
	Format      string            `yaml:"format"`
	Labels      map[string]string `yaml:"labels"`
	WhenOverdue string            `yaml:"when_overdue"`
}

// ViewSpecs declares which fields appear per presentation context.
type ViewSpecs struct {
	List   ListView   `yaml:"list"`
	Detail DetailView `yaml:"detail"`
}

// ListView configures the table presentation.
type ListView struct {
	Columns []string `yaml:"columns"`
}

// DetailView configures the single-record detail presentation.
type DetailView struct {
	Sections []DetailSection `yaml:"sections"`
}

// DetailSection groups fields under an optional heading.
type DetailSection struct {
	Heading string   `yaml:"heading"`
	Fields  []string `yaml:"fields"`
}

// Affordance is a templated follow-up command shown under a detail
// view, e.g. "agencydesk blogs publish 7" under a draft post.
type Affordance struct {
	Action string `yaml:"action"`
	Cmd    string `yaml:"cmd"`
	Label  string `yaml:"label"`
	When   string `yaml:"when"`
}
