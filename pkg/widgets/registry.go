package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-openaccount/pkg/model"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetText     = "text"
	WidgetEmail    = "email"
	WidgetTel      = "tel"
	WidgetDate     = "date"
	WidgetSelect   = "select"
	WidgetNumber   = "number"
	WidgetCheckbox = "checkbox"
	WidgetTextarea = "textarea"
)

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on explicit hints or registered
// matchers. Higher priority wins; ties fall back to registration order. An
// empty registry never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in widget matchers
// registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority. Higher
// priority values take precedence. Callers should avoid duplicate names; the
// latest registration wins during resolution.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Names returns the sorted set of widget names the registry can resolve.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool, len(r.rules))
	names := make([]string, 0, len(r.rules))
	for _, entry := range r.rules {
		if seen[entry.name] {
			continue
		}
		seen[entry.name] = true
		names = append(names, entry.name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the widget name for a field. Explicit hints (the field's
// Widget slot or widget metadata) are honoured before matcher evaluation.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if explicit := explicitWidget(field); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Decorate implements model.Decorator, applying registry resolution to every
// field in the form. Fields that already carry a widget keep it.
func (r *Registry) Decorate(form *model.FormModel) error {
	if r == nil || form == nil {
		return nil
	}
	for idx := range form.Fields {
		field := &form.Fields[idx]
		if field.Widget != "" {
			continue
		}
		if widget, ok := r.Resolve(*field); ok {
			field.Widget = widget
		}
	}
	return nil
}

func explicitWidget(field model.Field) string {
	if widget := strings.TrimSpace(field.Widget); widget != "" {
		return widget
	}
	if field.Metadata != nil {
		if widget := strings.TrimSpace(field.Metadata["widget"]); widget != "" {
			return widget
		}
	}
	return ""
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetCheckbox, 90, func(field model.Field) bool {
		return field.Type == model.FieldTypeBoolean
	})

	r.Register(WidgetSelect, 80, func(field model.Field) bool {
		return field.Type != model.FieldTypeBoolean && len(field.Enum) > 0
	})

	r.Register(WidgetNumber, 70, func(field model.Field) bool {
		return field.Type == model.FieldTypeNumber
	})

	r.Register(WidgetDate, 60, func(field model.Field) bool {
		return field.Type == model.FieldTypeString && fieldFormat(field) == "date"
	})

	r.Register(WidgetEmail, 60, func(field model.Field) bool {
		return field.Type == model.FieldTypeString && fieldFormat(field) == "email"
	})

	r.Register(WidgetTel, 60, func(field model.Field) bool {
		return field.Type == model.FieldTypeString && fieldFormat(field) == "tel"
	})

	r.Register(WidgetTextarea, 40, func(field model.Field) bool {
		if field.Type != model.FieldTypeString {
			return false
		}
		if fieldFormat(field) == "multiline" {
			return true
		}
		return field.Metadata != nil && strings.TrimSpace(field.Metadata["rows"]) != ""
	})

	r.Register(WidgetText, 0, func(field model.Field) bool {
		return field.Type == model.FieldTypeString
	})
}

func fieldFormat(field model.Field) string {
	return strings.TrimSpace(strings.ToLower(field.Format))
}
