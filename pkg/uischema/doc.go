// Package uischema loads and applies UI overrides that enrich the canonical
// form model with presentation: copy, section grouping and icons, field
// labels, placeholders, help text, and widget choices. The overrides live in
// JSON or YAML documents so the form's look can change without touching the
// validation rules; a default document for the account-opening form ships
// embedded.
package uischema
