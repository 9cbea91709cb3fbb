package render

import (
	"strings"

	"github.com/goliatone/go-openaccount/pkg/model"
)

// FieldSubset selects a slice of the form for partial rendering, for example
// re-rendering a single section after the applicant edits it. Matching is
// case-insensitive; a field survives when any filter matches it.
type FieldSubset struct {
	// Sections keeps fields assigned to the listed section ids.
	Sections []string
	// Names keeps the listed fields regardless of their section.
	Names []string
}

// Empty reports whether the subset applies no filtering.
func (s FieldSubset) Empty() bool {
	return len(normalizeTokens(s.Sections)) == 0 && len(normalizeTokens(s.Names)) == 0
}

// ApplySubset removes fields that do not match the supplied subset filters
// and prunes sections left without fields so renderers do not emit empty
// groups. When subset is empty or form is nil, the form is left unchanged.
func ApplySubset(form *model.FormModel, subset FieldSubset) {
	if form == nil || subset.Empty() {
		return
	}

	sections := normalizeTokens(subset.Sections)
	names := normalizeTokens(subset.Names)

	filtered := make([]model.Field, 0, len(form.Fields))
	for _, field := range form.Fields {
		if matchesSubset(field, sections, names) {
			filtered = append(filtered, field)
		}
	}
	form.Fields = filtered
	if len(form.Fields) == 0 {
		form.Fields = nil
	}

	pruneEmptySections(form)
}

func matchesSubset(field model.Field, sections, names map[string]struct{}) bool {
	if len(sections) > 0 {
		if _, ok := sections[normalizeToken(field.Section)]; ok {
			return true
		}
	}
	if len(names) > 0 {
		if _, ok := names[normalizeToken(field.Name)]; ok {
			return true
		}
	}
	return false
}

func pruneEmptySections(form *model.FormModel) {
	if len(form.Sections) == 0 {
		return
	}

	used := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		if id := normalizeToken(field.Section); id != "" {
			used[id] = struct{}{}
		}
	}

	kept := make([]model.Section, 0, len(form.Sections))
	for _, section := range form.Sections {
		if _, ok := used[normalizeToken(section.ID)]; ok {
			kept = append(kept, section)
		}
	}
	form.Sections = kept
	if len(form.Sections) == 0 {
		form.Sections = nil
	}
}

func normalizeTokens(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	result := make(map[string]struct{}, len(values))
	for _, value := range values {
		token := normalizeToken(value)
		if token == "" {
			continue
		}
		result[token] = struct{}{}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func normalizeToken(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
