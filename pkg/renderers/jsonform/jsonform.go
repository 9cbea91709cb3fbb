// Package jsonform renders the form model as a machine-readable JSON
// document. API clients (SPAs, mobile apps) use it to build their own UI
// while the server keeps authority over structure and validation bounds.
package jsonform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-openaccount/pkg/model"
	"github.com/goliatone/go-openaccount/pkg/render"
	theme "github.com/goliatone/go-theme"
)

// Option customises the renderer configuration.
type Option func(*Renderer)

// WithIndent pretty-prints the document with the given indent string.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// Renderer serialises a FormModel plus per-request state into JSON.
type Renderer struct {
	indent string
}

// New constructs a jsonform renderer applying any provided options.
func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Name identifies the renderer inside the registry.
func (r *Renderer) Name() string {
	return "jsonform"
}

// ContentType returns the MIME type for generated documents.
func (r *Renderer) ContentType() string {
	return "application/json; charset=utf-8"
}

// Render produces the JSON document. Field order follows the form model so
// clients can lay out controls without extra bookkeeping.
func (r *Renderer) Render(_ context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	doc := document{
		Form:       toOrderedForm(form),
		Action:     submitAction(form, options),
		Method:     submitMethod(form, options),
		Values:     options.Values,
		Errors:     options.Errors,
		FormErrors: render.MergeFormErrors(nil, options.FormErrors...),
		Hidden:     options.Hidden,
		Theme:      buildThemeContext(options.Theme),
		Success:    options.Success,
	}

	var (
		payload []byte
		err     error
	)
	if r.indent != "" {
		payload, err = json.MarshalIndent(doc, "", r.indent)
	} else {
		payload, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("jsonform renderer: marshal document: %w", err)
	}
	return payload, nil
}

type document struct {
	Form       orderedForm         `json:"form"`
	Action     string              `json:"action"`
	Method     string              `json:"method"`
	Values     map[string]any      `json:"values,omitempty"`
	Errors     map[string][]string `json:"errors,omitempty"`
	FormErrors []string            `json:"formErrors,omitempty"`
	Hidden     map[string]string   `json:"hidden,omitempty"`
	Theme      *themeContext       `json:"theme,omitempty"`
	Success    bool                `json:"success,omitempty"`
}

type orderedForm struct {
	OperationID string           `json:"operationId"`
	Endpoint    string           `json:"endpoint"`
	Method      string           `json:"method"`
	Summary     string           `json:"summary,omitempty"`
	Description string           `json:"description,omitempty"`
	Sections    []orderedSection `json:"sections,omitempty"`
	Fields      []orderedField   `json:"fields"`
	Metadata    orderedMap       `json:"metadata,omitempty"`
}

type orderedSection struct {
	ID          string `json:"id"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

type orderedField struct {
	Name        string          `json:"name"`
	Type        model.FieldType `json:"type"`
	Format      string          `json:"format,omitempty"`
	Required    bool            `json:"required"`
	Label       string          `json:"label,omitempty"`
	Placeholder string          `json:"placeholder,omitempty"`
	Description string          `json:"description,omitempty"`
	Default     any             `json:"default,omitempty"`
	Enum        []any           `json:"enum,omitempty"`
	Section     string          `json:"section,omitempty"`
	Widget      string          `json:"widget,omitempty"`
	Validations []orderedRule   `json:"validations,omitempty"`
	Metadata    orderedMap      `json:"metadata,omitempty"`
}

type orderedRule struct {
	Kind   string     `json:"kind"`
	Params orderedMap `json:"params,omitempty"`
}

type themeContext struct {
	Name    string            `json:"name,omitempty"`
	Variant string            `json:"variant,omitempty"`
	Tokens  map[string]string `json:"tokens,omitempty"`
	CSSVars map[string]string `json:"cssVars,omitempty"`
}

func toOrderedForm(form model.FormModel) orderedForm {
	sections := make([]orderedSection, len(form.Sections))
	for i, section := range form.Sections {
		sections[i] = orderedSection{
			ID:          section.ID,
			Title:       section.Title,
			Description: section.Description,
			Icon:        section.Icon,
		}
	}

	fields := make([]orderedField, len(form.Fields))
	for i, field := range form.Fields {
		fields[i] = toOrderedField(field)
	}

	return orderedForm{
		OperationID: form.OperationID,
		Endpoint:    form.Endpoint,
		Method:      form.Method,
		Summary:     form.Summary,
		Description: form.Description,
		Sections:    sections,
		Fields:      fields,
		Metadata:    newOrderedMap(form.Metadata),
	}
}

func toOrderedField(field model.Field) orderedField {
	var rules []orderedRule
	if len(field.Validations) > 0 {
		rules = make([]orderedRule, len(field.Validations))
		for i, rule := range field.Validations {
			rules[i] = orderedRule{
				Kind:   rule.Kind,
				Params: newOrderedMap(rule.Params),
			}
		}
	}

	return orderedField{
		Name:        field.Name,
		Type:        field.Type,
		Format:      field.Format,
		Required:    field.Required,
		Label:       field.Label,
		Placeholder: field.Placeholder,
		Description: field.Description,
		Default:     field.Default,
		Enum:        field.Enum,
		Section:     field.Section,
		Widget:      field.Widget,
		Validations: rules,
		Metadata:    newOrderedMap(field.Metadata),
	}
}

func buildThemeContext(cfg *theme.RendererConfig) *themeContext {
	if cfg == nil {
		return nil
	}
	return &themeContext{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		Tokens:  copyStringMap(cfg.Tokens),
		CSSVars: copyStringMap(cfg.CSSVars),
	}
}

func submitAction(form model.FormModel, options render.RenderOptions) string {
	if action := strings.TrimSpace(options.Action); action != "" {
		return action
	}
	return form.Endpoint
}

func submitMethod(form model.FormModel, options render.RenderOptions) string {
	if method := strings.TrimSpace(options.Method); method != "" {
		return strings.ToUpper(method)
	}
	if form.Method != "" {
		return strings.ToUpper(form.Method)
	}
	return "POST"
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

// orderedMap marshals string maps with sorted keys so rendered documents are
// byte-stable across runs.
type orderedMap map[string]string

func newOrderedMap(values map[string]string) orderedMap {
	if len(values) == 0 {
		return nil
	}
	out := make(map[string]string, len(values))
	for key, value := range values {
		out[key] = value
	}
	return orderedMap(out)
}

func (m orderedMap) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyPayload, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		valuePayload, err := json.Marshal(m[key])
		if err != nil {
			return nil, err
		}
		buf.Write(keyPayload)
		buf.WriteByte(':')
		buf.Write(valuePayload)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
