package model

import internalmodel "github.com/goliatone/go-openaccount/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeString  = internalmodel.FieldTypeString
	FieldTypeNumber  = internalmodel.FieldTypeNumber
	FieldTypeBoolean = internalmodel.FieldTypeBoolean
)

// Validation rule kinds carried by fields.
const (
	ValidationRuleMin       = internalmodel.ValidationRuleMin
	ValidationRuleMinLength = internalmodel.ValidationRuleMinLength
	ValidationRuleLength    = internalmodel.ValidationRuleLength
	ValidationRulePattern   = internalmodel.ValidationRulePattern
	ValidationRuleMinAge    = internalmodel.ValidationRuleMinAge
)

// Section ids of the canonical account-opening form.
const (
	SectionPersonal = internalmodel.SectionPersonal
	SectionAccount  = internalmodel.SectionAccount
	SectionAddress  = internalmodel.SectionAddress
	SectionConsent  = internalmodel.SectionConsent
)

type ValidationRule = internalmodel.ValidationRule
type Field = internalmodel.Field
type Section = internalmodel.Section
type FormModel = internalmodel.FormModel

// Option configures form construction.
type Option = internalmodel.Option

// WithLabeler overrides the default label derivation.
func WithLabeler(labeler func(string) string) Option {
	return internalmodel.WithLabeler(labeler)
}

// DefaultLabeler converts a field name into a sentence-case label.
func DefaultLabeler(name string) string {
	return internalmodel.DefaultLabeler(name)
}

// AccountOpening builds the canonical account-opening form model.
func AccountOpening(opts ...Option) FormModel {
	return internalmodel.AccountOpening(opts...)
}

// Validate checks the structural invariants a form must uphold before it
// reaches a renderer.
func Validate(form FormModel) error {
	return internalmodel.Validate(form)
}
