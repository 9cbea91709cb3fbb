package model

import (
	"errors"
	"fmt"
)

var (
	errOperationIDMissing = errors.New("model: operation id is required")
	errEndpointMissing    = errors.New("model: endpoint is required")
	errMethodMissing      = errors.New("model: method is required")
	errNoFields           = errors.New("model: form has no fields")
)

// Validate checks the structural invariants builders and decorators must
// uphold before a form reaches a renderer.
func Validate(form FormModel) error {
	if form.OperationID == "" {
		return errOperationIDMissing
	}
	if form.Endpoint == "" {
		return errEndpointMissing
	}
	if form.Method == "" {
		return errMethodMissing
	}
	if len(form.Fields) == 0 {
		return errNoFields
	}

	sections := make(map[string]struct{}, len(form.Sections))
	for _, s := range form.Sections {
		if s.ID == "" {
			return errors.New("model: section id is required")
		}
		if _, dup := sections[s.ID]; dup {
			return fmt.Errorf("model: duplicate section %q", s.ID)
		}
		sections[s.ID] = struct{}{}
	}

	seen := make(map[string]struct{}, len(form.Fields))
	for _, f := range form.Fields {
		if f.Name == "" {
			return errors.New("model: field name is required")
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("model: duplicate field %q", f.Name)
		}
		seen[f.Name] = struct{}{}

		switch f.Type {
		case FieldTypeString, FieldTypeNumber, FieldTypeBoolean:
		default:
			return fmt.Errorf("model: field %q has unknown type %q", f.Name, f.Type)
		}

		if f.Section != "" {
			if _, ok := sections[f.Section]; !ok {
				return fmt.Errorf("model: field %q references unknown section %q", f.Name, f.Section)
			}
		}
	}
	return nil
}
