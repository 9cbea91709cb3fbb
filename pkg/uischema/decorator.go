package uischema

import (
	"fmt"
	"math"
	"sort"
	"strings"

	pkgmodel "github.com/goliatone/go-openaccount/pkg/model"
)

// Metadata keys the decorator writes for templates to consume.
const (
	MetaSubmitLabel    = "submitLabel"
	MetaSuccessTitle   = "success.title"
	MetaSuccessMessage = "success.message"
	MetaSuccessIcon    = "success.icon"
)

// Decorator applies UI schema overrides to a form model.
type Decorator struct {
	store *Store
}

// NewDecorator builds a Decorator backed by the provided store. A nil or
// empty store produces a no-op decorator.
func NewDecorator(store *Store) *Decorator {
	return &Decorator{store: store}
}

// Decorate augments form with the overrides registered for its operation id.
// Forms without a matching operation are left untouched. Decoration changes
// presentation only; validation rules and field names never move.
func (d *Decorator) Decorate(form *pkgmodel.FormModel) error {
	if d == nil || d.store == nil || d.store.Empty() || form == nil {
		return nil
	}
	op, ok := d.store.Operation(form.OperationID)
	if !ok {
		return nil
	}

	applyFormConfig(form, op)
	applySections(form, op)
	if err := applyFields(form, op); err != nil {
		return err
	}
	reorderFields(form, op)
	return nil
}

func applyFormConfig(form *pkgmodel.FormModel, op Operation) {
	if v := strings.TrimSpace(op.Form.Title); v != "" {
		form.Summary = v
	}
	if v := strings.TrimSpace(op.Form.Subtitle); v != "" {
		form.Description = v
	}

	meta := make(map[string]string)
	if v := strings.TrimSpace(op.Form.SubmitLabel); v != "" {
		meta[MetaSubmitLabel] = v
	}
	if v := strings.TrimSpace(op.Form.Success.Title); v != "" {
		meta[MetaSuccessTitle] = v
	}
	if v := strings.TrimSpace(op.Form.Success.Message); v != "" {
		meta[MetaSuccessMessage] = v
	}
	if op.Form.Success.Icon != "" {
		meta[MetaSuccessIcon] = op.Form.Success.Icon
	}
	for k, v := range op.Form.Metadata {
		meta[k] = v
	}
	if len(meta) > 0 {
		form.Metadata = mergeStringMap(form.Metadata, meta)
	}
}

func applySections(form *pkgmodel.FormModel, op Operation) {
	for _, cfg := range op.Sections {
		idx := sectionIndex(form.Sections, cfg.ID)
		if idx < 0 {
			form.Sections = append(form.Sections, pkgmodel.Section{ID: cfg.ID})
			idx = len(form.Sections) - 1
		}
		section := &form.Sections[idx]
		if cfg.Title != "" {
			section.Title = cfg.Title
		}
		if cfg.Description != "" {
			section.Description = cfg.Description
		}
		if cfg.Icon != "" {
			section.Icon = cfg.Icon
		}
	}

	if !hasSectionOrder(op.Sections) {
		return
	}
	orderOf := make(map[string]int, len(op.Sections))
	for _, cfg := range op.Sections {
		if cfg.Order != nil {
			orderOf[cfg.ID] = *cfg.Order
		}
	}
	pos := make(map[string]int, len(form.Sections))
	for i, s := range form.Sections {
		pos[s.ID] = i
	}
	sort.SliceStable(form.Sections, func(i, j int) bool {
		a, b := form.Sections[i], form.Sections[j]
		ao, bo := effectiveOrder(orderOf, a.ID), effectiveOrder(orderOf, b.ID)
		if ao != bo {
			return ao < bo
		}
		return pos[a.ID] < pos[b.ID]
	})
}

func applyFields(form *pkgmodel.FormModel, op Operation) error {
	for name, cfg := range op.Fields {
		idx := fieldIndex(form.Fields, name)
		if idx < 0 {
			return fmt.Errorf("uischema: operation %q overrides unknown field %q", op.ID, name)
		}
		field := &form.Fields[idx]
		if cfg.Label != "" {
			field.Label = cfg.Label
		}
		if cfg.Placeholder != "" {
			field.Placeholder = cfg.Placeholder
		}
		if cfg.HelpText != "" {
			field.Description = cfg.HelpText
		}
		if cfg.Widget != "" {
			field.Widget = cfg.Widget
		}
		if cfg.Section != "" {
			field.Section = cfg.Section
		}
		if len(cfg.Metadata) > 0 {
			field.Metadata = mergeStringMap(field.Metadata, cfg.Metadata)
		}
	}
	return nil
}

// reorderFields rebuilds the field list in section order, sorting each
// section's fields by explicit Order first and original position second.
func reorderFields(form *pkgmodel.FormModel, op Operation) {
	type keyed struct {
		field pkgmodel.Field
		order int
		pos   int
	}

	bySection := make(map[string][]keyed, len(form.Sections)+1)
	for i, f := range form.Fields {
		k := keyed{field: f, order: math.MaxInt, pos: i}
		if cfg, ok := op.Fields[f.Name]; ok && cfg.Order != nil {
			k.order = *cfg.Order
		}
		bySection[f.Section] = append(bySection[f.Section], k)
	}

	sectionIDs := make([]string, 0, len(bySection))
	if _, ok := bySection[""]; ok {
		sectionIDs = append(sectionIDs, "")
	}
	for _, s := range form.Sections {
		if _, ok := bySection[s.ID]; ok {
			sectionIDs = append(sectionIDs, s.ID)
		}
	}
	// Fields moved into sections the form does not declare keep their group;
	// model validation rejects them afterwards with a precise error.
	seen := make(map[string]bool, len(sectionIDs))
	for _, id := range sectionIDs {
		seen[id] = true
	}
	var strays []string
	for id := range bySection {
		if !seen[id] {
			strays = append(strays, id)
		}
	}
	sort.Strings(strays)
	sectionIDs = append(sectionIDs, strays...)

	out := make([]pkgmodel.Field, 0, len(form.Fields))
	for _, id := range sectionIDs {
		group := bySection[id]
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].order != group[j].order {
				return group[i].order < group[j].order
			}
			return group[i].pos < group[j].pos
		})
		for _, k := range group {
			out = append(out, k.field)
		}
	}
	form.Fields = out
}

func sectionIndex(sections []pkgmodel.Section, id string) int {
	for i := range sections {
		if sections[i].ID == id {
			return i
		}
	}
	return -1
}

func fieldIndex(fields []pkgmodel.Field, name string) int {
	for i := range fields {
		if fields[i].Name == name {
			return i
		}
	}
	return -1
}

func hasSectionOrder(sections []SectionConfig) bool {
	for _, s := range sections {
		if s.Order != nil {
			return true
		}
	}
	return false
}

func effectiveOrder(orders map[string]int, id string) int {
	if v, ok := orders[id]; ok {
		return v
	}
	return math.MaxInt
}

func mergeStringMap(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
