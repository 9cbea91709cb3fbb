package model

import (
	"strconv"

	"github.com/goliatone/go-openaccount/pkg/account"
	"github.com/goliatone/go-openaccount/pkg/schema"
)

// Section ids used by the canonical form.
const (
	SectionPersonal = "personal"
	SectionAccount  = "account"
	SectionAddress  = "address"
	SectionConsent  = "consent"
)

// Options configures form construction.
type Options struct {
	Labeler func(string) string
}

// Option mutates Options.
type Option func(*Options)

// WithLabeler overrides the default label derivation.
func WithLabeler(labeler func(string) string) Option {
	return func(o *Options) {
		if labeler != nil {
			o.Labeler = labeler
		}
	}
}

// AccountOpening builds the canonical account-opening form model. Field
// constraints mirror the schema package so every surface displays the same
// bounds the validator enforces; acceptance is always the schema's call.
func AccountOpening(opts ...Option) FormModel {
	cfg := Options{Labeler: DefaultLabeler}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	label := cfg.Labeler

	return FormModel{
		OperationID: "openAccount",
		Endpoint:    "/submit",
		Method:      "POST",
		Summary:     "Open a new account",
		Description: "Tell us about yourself, pick an account, and fund it with an initial deposit.",
		Sections: []Section{
			{ID: SectionPersonal, Title: "Personal details"},
			{ID: SectionAccount, Title: "Account details"},
			{ID: SectionAddress, Title: "Address"},
			{ID: SectionConsent, Title: "Terms"},
		},
		Fields: []Field{
			{
				Name:        account.FieldFullName,
				Type:        FieldTypeString,
				Required:    true,
				Label:       label(account.FieldFullName),
				Section:     SectionPersonal,
				Validations: []ValidationRule{minLengthRule(schema.MinFullNameLen)},
			},
			{
				Name:     account.FieldEmail,
				Type:     FieldTypeString,
				Format:   "email",
				Required: true,
				Label:    label(account.FieldEmail),
				Section:  SectionPersonal,
			},
			{
				Name:     account.FieldPhone,
				Type:     FieldTypeString,
				Format:   "tel",
				Required: true,
				Label:    label(account.FieldPhone),
				Section:  SectionPersonal,
				Validations: []ValidationRule{
					patternRule(`[0-9]{10}`),
					lengthRule(schema.PhoneDigits),
				},
			},
			{
				Name:        account.FieldDateOfBirth,
				Type:        FieldTypeString,
				Format:      "date",
				Required:    true,
				Label:       label(account.FieldDateOfBirth),
				Section:     SectionPersonal,
				Validations: []ValidationRule{minAgeRule(schema.MinAge)},
			},
			{
				Name:     account.FieldAccountType,
				Type:     FieldTypeString,
				Required: true,
				Label:    label(account.FieldAccountType),
				Section:  SectionAccount,
				Enum:     enumValues(account.Types()),
			},
			{
				Name:        account.FieldInitialDeposit,
				Type:        FieldTypeNumber,
				Required:    true,
				Label:       label(account.FieldInitialDeposit),
				Section:     SectionAccount,
				Validations: []ValidationRule{minRule(schema.MinDeposit)},
			},
			{
				Name:     account.FieldCurrency,
				Type:     FieldTypeString,
				Required: true,
				Label:    label(account.FieldCurrency),
				Section:  SectionAccount,
				Enum:     enumValues(account.Currencies()),
			},
			{
				Name:     account.FieldStreetAddress,
				Type:     FieldTypeString,
				Required: true,
				Label:    label(account.FieldStreetAddress),
				Section:  SectionAddress,
			},
			{
				Name:     account.FieldCity,
				Type:     FieldTypeString,
				Required: true,
				Label:    label(account.FieldCity),
				Section:  SectionAddress,
			},
			{
				Name:     account.FieldZipCode,
				Type:     FieldTypeString,
				Required: true,
				Label:    label(account.FieldZipCode),
				Section:  SectionAddress,
				Validations: []ValidationRule{
					patternRule(`[0-9]{5}`),
					lengthRule(schema.ZipDigits),
				},
			},
			{
				Name:     account.FieldTermsAccepted,
				Type:     FieldTypeBoolean,
				Required: true,
				Label:    label(account.FieldTermsAccepted),
				Section:  SectionConsent,
			},
		},
	}
}

func minLengthRule(n int) ValidationRule {
	return ValidationRule{
		Kind:   ValidationRuleMinLength,
		Params: map[string]string{"value": strconv.Itoa(n)},
	}
}

func lengthRule(n int) ValidationRule {
	return ValidationRule{
		Kind:   ValidationRuleLength,
		Params: map[string]string{"value": strconv.Itoa(n)},
	}
}

func patternRule(expr string) ValidationRule {
	return ValidationRule{
		Kind:   ValidationRulePattern,
		Params: map[string]string{"pattern": expr},
	}
}

func minRule(v float64) ValidationRule {
	return ValidationRule{
		Kind:   ValidationRuleMin,
		Params: map[string]string{"value": strconv.FormatFloat(v, 'f', -1, 64)},
	}
}

func minAgeRule(years int) ValidationRule {
	return ValidationRule{
		Kind:   ValidationRuleMinAge,
		Params: map[string]string{"value": strconv.Itoa(years)},
	}
}

func enumValues[T ~string](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
