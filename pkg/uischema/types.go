package uischema

import "sort"

// Store keeps the parsed operations from UI schema documents. It is safe for
// concurrent readers when treated as immutable after construction.
type Store struct {
	operations map[string]Operation
}

// Operation describes the UI overrides for one form operation.
type Operation struct {
	ID       string
	Source   string
	Form     FormConfig
	Sections []SectionConfig
	Fields   map[string]FieldConfig
}

// FormConfig captures form-level copy: heading, intro, the submit button, and
// the success surface shown after a submission is accepted.
type FormConfig struct {
	Title       string            `json:"title" yaml:"title"`
	Subtitle    string            `json:"subtitle" yaml:"subtitle"`
	SubmitLabel string            `json:"submitLabel" yaml:"submitLabel"`
	Success     SuccessConfig     `json:"success" yaml:"success"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// SuccessConfig is the copy for the terminal submitted state.
type SuccessConfig struct {
	Title   string `json:"title" yaml:"title"`
	Message string `json:"message" yaml:"message"`
	Icon    string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// SectionConfig retitles, reorders, and decorates a section. Icon holds
// inline SVG markup; it is sanitized before reaching the form model.
type SectionConfig struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Order       *int   `json:"order,omitempty" yaml:"order,omitempty"`
}

// FieldConfig customizes how a single field is presented.
type FieldConfig struct {
	Section     string            `json:"section,omitempty" yaml:"section,omitempty"`
	Order       *int              `json:"order,omitempty" yaml:"order,omitempty"`
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	HelpText    string            `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	Widget      string            `json:"widget,omitempty" yaml:"widget,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Operation returns the configuration for the supplied operation id.
func (s *Store) Operation(id string) (Operation, bool) {
	if s == nil {
		return Operation{}, false
	}
	op, ok := s.operations[id]
	return op, ok
}

// Operations returns every parsed operation sorted by id.
func (s *Store) Operations() []Operation {
	if s == nil || len(s.operations) == 0 {
		return nil
	}
	ids := make([]string, 0, len(s.operations))
	for id := range s.operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]Operation, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.operations[id])
	}
	return out
}

// Empty reports whether the store holds any operations.
func (s *Store) Empty() bool {
	return s == nil || len(s.operations) == 0
}
