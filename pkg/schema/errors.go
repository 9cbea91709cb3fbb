package schema

import (
	"sort"
	"strings"
)

// Errors maps a field name to the message of the first failing rule for that
// field. An absent entry means the field passed. A nil or empty set reports
// a fully valid input.
type Errors map[string]string

// Error summarizes the set, fields sorted for determinism.
func (e Errors) Error() string {
	if len(e) == 0 {
		return "schema: no validation errors"
	}
	fields := e.Fields()
	var b strings.Builder
	for i, field := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(field)
		b.WriteString(": ")
		b.WriteString(e[field])
	}
	return b.String()
}

// Fields returns the failing field names in sorted order.
func (e Errors) Fields() []string {
	if len(e) == 0 {
		return nil
	}
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Has reports whether field carries a message.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}
