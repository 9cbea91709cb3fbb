// Package tui renders the account-opening form as an interactive terminal
// session: one prompt per field with immediate rule feedback, backed by the
// same schema the server enforces.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-openaccount/pkg/model"
	"github.com/goliatone/go-openaccount/pkg/render"
	"github.com/goliatone/go-openaccount/pkg/schema"
)

// Renderer implements render.Renderer for terminal-driven sessions. A render
// pass walks the form's fields, prompting for each one; when RenderOptions
// carry field errors, only the failing fields are prompted again and every
// other answer is preserved.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	rules             *schema.Schema
	submitTransformer SubmitTransformer
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = newSurveyDriver()
	}
	if r.rules == nil {
		r.rules = schema.New()
	}

	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for the form's fields and serializes the collected values.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	state := NewState(opts.Values, opts.Errors)

	for _, field := range form.Fields {
		if state.HasErrors() && len(state.ErrorsFor(field.Name)) == 0 {
			continue
		}
		if err := r.promptField(ctx, field, state); err != nil {
			return nil, err
		}
	}

	values := state.Values()
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}

	return r.serialize(values)
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, state *State) error {
	for _, msg := range state.ErrorsFor(field.Name) {
		_ = r.driver.Info(ctx, fmt.Sprintf("%s: %s", displayLabel(field), msg))
	}

	switch {
	case field.Type == model.FieldTypeBoolean:
		return r.promptBoolean(ctx, field, state)
	case len(field.Enum) > 0:
		return r.promptEnum(ctx, field, state)
	case field.Type == model.FieldTypeNumber:
		return r.promptNumber(ctx, field, state)
	default:
		return r.promptString(ctx, field, state)
	}
}

func (r *Renderer) promptString(ctx context.Context, field model.Field, state *State) error {
	label := displayLabel(field)
	defaultVal := defaultStringValue(state, field)

	for {
		response, err := r.driver.Input(ctx, InputConfig{
			Message:   label,
			Default:   defaultVal,
			Help:      displayHelp(field),
			Validator: r.fieldValidator(field.Name),
		})
		if err != nil {
			return err
		}

		if msg := r.rules.CheckField(field.Name, response); msg != "" {
			_ = r.driver.Info(ctx, fmt.Sprintf("%s: %s", label, msg))
			defaultVal = response
			continue
		}

		state.Set(field.Name, strings.TrimSpace(response))
		return nil
	}
}

func (r *Renderer) promptNumber(ctx context.Context, field model.Field, state *State) error {
	label := displayLabel(field)
	defaultVal := defaultStringValue(state, field)

	for {
		response, err := r.driver.Input(ctx, InputConfig{
			Message:   label,
			Default:   defaultVal,
			Help:      displayHelp(field),
			Validator: r.fieldValidator(field.Name),
		})
		if err != nil {
			return err
		}

		if msg := r.rules.CheckField(field.Name, response); msg != "" {
			_ = r.driver.Info(ctx, fmt.Sprintf("%s: %s", label, msg))
			defaultVal = response
			continue
		}

		parsed, err := strconv.ParseFloat(strings.TrimSpace(response), 64)
		if err != nil {
			_ = r.driver.Info(ctx, fmt.Sprintf("%s: %v", label, err))
			defaultVal = response
			continue
		}

		state.Set(field.Name, parsed)
		return nil
	}
}

func (r *Renderer) promptEnum(ctx context.Context, field model.Field, state *State) error {
	label := displayLabel(field)
	options := stringifyEnum(field.Enum)

	defaultIdx := -1
	if v, ok := state.Get(field.Name); ok {
		if s, ok := v.(string); ok {
			defaultIdx = indexOf(options, s)
		}
	}

	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      options,
			DefaultIndex: defaultIdx,
			Help:         displayHelp(field),
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(options) {
			_ = r.driver.Info(ctx, fmt.Sprintf("%s: invalid selection", label))
			continue
		}

		selected := options[idx]
		if msg := r.rules.CheckField(field.Name, selected); msg != "" {
			_ = r.driver.Info(ctx, fmt.Sprintf("%s: %s", label, msg))
			continue
		}

		state.Set(field.Name, selected)
		return nil
	}
}

func (r *Renderer) promptBoolean(ctx context.Context, field model.Field, state *State) error {
	label := displayLabel(field)

	defaultVal := false
	if v, ok := state.Get(field.Name); ok {
		if b, ok := v.(bool); ok {
			defaultVal = b
		}
	}

	for {
		response, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: label,
			Default: defaultVal,
			Help:    displayHelp(field),
		})
		if err != nil {
			return err
		}

		if msg := r.rules.CheckField(field.Name, response); msg != "" {
			_ = r.driver.Info(ctx, fmt.Sprintf("%s: %s", label, msg))
			continue
		}

		state.Set(field.Name, response)
		return nil
	}
}

// fieldValidator adapts the schema check into the driver's inline validator
// so capable drivers can reject input before the prompt returns.
func (r *Renderer) fieldValidator(name string) func(string) error {
	return func(value string) error {
		if msg := r.rules.CheckField(name, value); msg != "" {
			return errors.New(msg)
		}
		return nil
	}
}

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(encodeForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return json.Marshal(values)
	}
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func displayHelp(field model.Field) string {
	if field.Description != "" {
		return field.Description
	}
	if field.Placeholder != "" {
		return "e.g. " + field.Placeholder
	}
	return ""
}

func defaultStringValue(state *State, field model.Field) string {
	if v, ok := state.Get(field.Name); ok && v != nil {
		return fmt.Sprint(v)
	}
	if s, ok := field.Default.(string); ok {
		return s
	}
	return ""
}

func stringifyEnum(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, fmt.Sprint(v))
	}
	return out
}

func encodeForm(values map[string]any) string {
	form := url.Values{}
	for key, value := range values {
		form.Set(key, fmt.Sprint(value))
	}
	return form.Encode()
}

func prettyPrint(values map[string]any) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s=%v\n", key, values[key])
	}
	return b.String()
}
