package vanilla

import (
	"encoding/json"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/goliatone/go-openaccount/pkg/model"
	"github.com/goliatone/go-openaccount/pkg/widgets"
)

// fieldRenderer builds the HTML for a single field: the control itself plus
// the chrome around it (label, help text, inline errors).
type fieldRenderer struct {
	widgets *widgets.Registry
	values  map[string]any
	errors  map[string][]string
}

func newFieldRenderer(registry *widgets.Registry, values map[string]any, errors map[string][]string) *fieldRenderer {
	if registry == nil {
		registry = widgets.NewRegistry()
	}
	return &fieldRenderer{
		widgets: registry,
		values:  values,
		errors:  errors,
	}
}

func (r *fieldRenderer) render(field model.Field) (string, error) {
	widget := r.widgetFor(field)

	control, err := r.buildControl(field, widget)
	if err != nil {
		return "", err
	}
	return r.buildFieldMarkup(field, widget, control), nil
}

func (r *fieldRenderer) widgetFor(field model.Field) string {
	if widget := strings.TrimSpace(field.Widget); widget != "" {
		return widget
	}
	if widget, ok := r.widgets.Resolve(field); ok {
		return widget
	}
	return widgets.WidgetText
}

func (r *fieldRenderer) buildControl(field model.Field, widget string) (string, error) {
	switch widget {
	case widgets.WidgetSelect:
		return r.buildSelect(field), nil
	case widgets.WidgetCheckbox:
		return r.buildCheckbox(field), nil
	case widgets.WidgetTextarea:
		return r.buildTextarea(field), nil
	case widgets.WidgetNumber:
		return r.buildInput(field, "number"), nil
	case widgets.WidgetEmail:
		return r.buildInput(field, "email"), nil
	case widgets.WidgetTel:
		return r.buildInput(field, "tel"), nil
	case widgets.WidgetDate:
		return r.buildInput(field, "date"), nil
	case widgets.WidgetText:
		return r.buildInput(field, "text"), nil
	default:
		return "", fmt.Errorf("widget %q has no control builder", widget)
	}
}

func (r *fieldRenderer) buildFieldMarkup(field model.Field, widget, control string) string {
	fieldErrors := r.errors[field.Name]

	var b strings.Builder
	b.Grow(len(control) + 256)

	b.WriteString(`<div class="oa-field`)
	if len(fieldErrors) > 0 {
		b.WriteString(` oa-field-invalid`)
	}
	b.WriteString(`" data-field="`)
	b.WriteString(html.EscapeString(field.Name))
	b.WriteString(`" data-widget="`)
	b.WriteString(html.EscapeString(widget))
	b.WriteString("\">\n")

	// Checkboxes carry their label inside the control so the text stays
	// clickable; everything else gets a plain <label for>.
	if widget != widgets.WidgetCheckbox && strings.TrimSpace(field.Label) != "" {
		b.WriteString(`    <label for="`)
		b.WriteString(controlID(field.Name))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(field.Label))
		if field.Required {
			b.WriteString(` *`)
		}
		b.WriteString("</label>\n")
	}

	for _, line := range strings.Split(control, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		b.WriteString("    ")
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if desc := strings.TrimSpace(field.Description); desc != "" {
		b.WriteString(`    <small class="oa-help">`)
		b.WriteString(html.EscapeString(desc))
		b.WriteString("</small>\n")
	}

	for _, message := range fieldErrors {
		b.WriteString(`    <p class="oa-error" id="`)
		b.WriteString(errorID(field.Name))
		b.WriteString(`" role="alert">`)
		b.WriteString(html.EscapeString(message))
		b.WriteString("</p>\n")
	}

	b.WriteString("</div>\n")
	return b.String()
}

func (r *fieldRenderer) buildInput(field model.Field, inputType string) string {
	var b strings.Builder
	b.WriteString(`<input type="`)
	b.WriteString(inputType)
	b.WriteByte('"')
	writeAttr(&b, "id", controlID(field.Name))
	writeAttr(&b, "name", field.Name)

	if value, ok := r.valueFor(field); ok && value != "" {
		writeAttr(&b, "value", value)
	}
	if field.Placeholder != "" {
		writeAttr(&b, "placeholder", field.Placeholder)
	}
	if inputType == "number" {
		writeAttr(&b, "step", "any")
	}
	r.writeConstraintAttrs(&b, field)
	r.writeValidityAttrs(&b, field)
	b.WriteString(">")
	return b.String()
}

func (r *fieldRenderer) buildTextarea(field model.Field) string {
	var b strings.Builder
	b.WriteString(`<textarea`)
	writeAttr(&b, "id", controlID(field.Name))
	writeAttr(&b, "name", field.Name)
	if field.Placeholder != "" {
		writeAttr(&b, "placeholder", field.Placeholder)
	}
	r.writeConstraintAttrs(&b, field)
	r.writeValidityAttrs(&b, field)
	b.WriteString(">")
	if value, ok := r.valueFor(field); ok {
		b.WriteString(html.EscapeString(value))
	}
	b.WriteString("</textarea>")
	return b.String()
}

func (r *fieldRenderer) buildSelect(field model.Field) string {
	current, hasValue := r.valueFor(field)

	var b strings.Builder
	b.WriteString(`<select`)
	writeAttr(&b, "id", controlID(field.Name))
	writeAttr(&b, "name", field.Name)
	r.writeValidityAttrs(&b, field)
	b.WriteString(">\n")

	placeholder := field.Placeholder
	if placeholder == "" {
		placeholder = "Select an option"
	}
	b.WriteString(`    <option value=""`)
	if !hasValue || current == "" {
		b.WriteString(` selected`)
	}
	b.WriteString(`>`)
	b.WriteString(html.EscapeString(placeholder))
	b.WriteString("</option>\n")

	for _, option := range field.Enum {
		value := stringValue(option)
		b.WriteString(`    <option value="`)
		b.WriteString(html.EscapeString(value))
		b.WriteByte('"')
		if hasValue && value == current {
			b.WriteString(` selected`)
		}
		b.WriteByte('>')
		b.WriteString(html.EscapeString(optionLabel(value)))
		b.WriteString("</option>\n")
	}
	b.WriteString("</select>")
	return b.String()
}

func (r *fieldRenderer) buildCheckbox(field model.Field) string {
	var b strings.Builder
	b.WriteString(`<label class="oa-checkbox" for="`)
	b.WriteString(controlID(field.Name))
	b.WriteString("\">\n")
	b.WriteString(`    <input type="checkbox"`)
	writeAttr(&b, "id", controlID(field.Name))
	writeAttr(&b, "name", field.Name)
	writeAttr(&b, "value", "true")
	if r.checkedFor(field) {
		b.WriteString(" checked")
	}
	r.writeValidityAttrs(&b, field)
	b.WriteString(">\n    <span>")
	b.WriteString(html.EscapeString(field.Label))
	if field.Required {
		b.WriteString(` *`)
	}
	b.WriteString("</span>\n</label>")
	return b.String()
}

// writeConstraintAttrs maps validation rules onto native HTML attributes so
// browsers can pre-check input. Server-side validation remains authoritative.
func (r *fieldRenderer) writeConstraintAttrs(b *strings.Builder, field model.Field) {
	for _, rule := range field.Validations {
		switch rule.Kind {
		case model.ValidationRuleMinLength:
			writeAttr(b, "minlength", rule.Params["value"])
		case model.ValidationRuleLength:
			writeAttr(b, "minlength", rule.Params["value"])
			writeAttr(b, "maxlength", rule.Params["value"])
		case model.ValidationRulePattern:
			writeAttr(b, "pattern", rule.Params["pattern"])
		case model.ValidationRuleMin:
			writeAttr(b, "min", rule.Params["value"])
		case model.ValidationRuleMinAge:
			writeAttr(b, "data-min-age", rule.Params["value"])
		}
	}
}

func (r *fieldRenderer) writeValidityAttrs(b *strings.Builder, field model.Field) {
	if field.Required {
		b.WriteString(" required")
	}
	if len(r.errors[field.Name]) > 0 {
		b.WriteString(` aria-invalid="true"`)
		writeAttr(b, "aria-describedby", errorID(field.Name))
	}
}

func (r *fieldRenderer) valueFor(field model.Field) (string, bool) {
	if r.values != nil {
		if raw, ok := r.values[field.Name]; ok {
			return stringValue(raw), true
		}
	}
	if field.Default != nil {
		return stringValue(field.Default), true
	}
	return "", false
}

func (r *fieldRenderer) checkedFor(field model.Field) bool {
	if r.values != nil {
		if raw, ok := r.values[field.Name]; ok {
			return boolValue(raw)
		}
	}
	return boolValue(field.Default)
}

func writeAttr(b *strings.Builder, name, value string) {
	b.WriteByte(' ')
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(html.EscapeString(value))
	b.WriteByte('"')
}

func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case json.Number:
		return v.String()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// boolValue recognises the shapes a checkbox value arrives in: a real bool
// from JSON, or the strings browsers and query decoders produce.
func boolValue(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "on", "1", "yes":
			return true
		}
	}
	return false
}
