package model

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
)

// Canonical validation rule kinds. Numeric bounds and length limits encode
// their threshold in Params["value"]; pattern rules keep the expression in
// Params["pattern"]. The rules mirror the live schema so renderers can map
// them onto HTML attributes and prompt validators; the schema package stays
// the authority on acceptance.
const (
	ValidationRuleMin       = "min"
	ValidationRuleMinLength = "minLength"
	ValidationRuleLength    = "length"
	ValidationRulePattern   = "pattern"
	ValidationRuleMinAge    = "minAge"
)

// ValidationRule represents a single constraint attached to a field.
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Field models an individual input on the account-opening form. Struct fields
// are annotated so renderers can serialize them directly.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Format      string            `json:"format,omitempty"`
	Required    bool              `json:"required"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Description string            `json:"description,omitempty"`
	Default     any               `json:"default,omitempty"`
	Enum        []any             `json:"enum,omitempty"`
	Section     string            `json:"section,omitempty"`
	Widget      string            `json:"widget,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Section groups fields for display. Icon, when present, holds sanitized
// inline SVG markup.
type Section struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// FormModel is the top-level representation renderers consume.
type FormModel struct {
	OperationID string            `json:"operationId"`
	Endpoint    string            `json:"endpoint"`
	Method      string            `json:"method"`
	Summary     string            `json:"summary,omitempty"`
	Description string            `json:"description,omitempty"`
	Sections    []Section         `json:"sections,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Field returns the named field and whether it exists.
func (m FormModel) Field(name string) (Field, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// SectionFields returns the fields assigned to the given section, preserving
// form order. Fields without a section are returned for the empty id.
func (m FormModel) SectionFields(id string) []Field {
	var out []Field
	for _, f := range m.Fields {
		if f.Section == id {
			out = append(out, f)
		}
	}
	return out
}

// Clone returns a deep copy so decorators can adjust presentation without
// touching the canonical model.
func (m FormModel) Clone() FormModel {
	out := m
	out.Sections = append([]Section(nil), m.Sections...)
	out.Metadata = cloneStringMap(m.Metadata)
	out.Fields = make([]Field, len(m.Fields))
	for i, f := range m.Fields {
		out.Fields[i] = f.clone()
	}
	return out
}

func (f Field) clone() Field {
	out := f
	out.Enum = append([]any(nil), f.Enum...)
	out.Metadata = cloneStringMap(f.Metadata)
	out.Validations = make([]ValidationRule, len(f.Validations))
	for i, rule := range f.Validations {
		out.Validations[i] = ValidationRule{Kind: rule.Kind, Params: cloneStringMap(rule.Params)}
	}
	return out
}

func cloneStringMap(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
