// Package schema implements the declarative validation rules for the
// account-opening form. The rules turn a raw account.FormInput into a typed
// account.Request, or into an Errors set mapping each failing field to one
// human-readable message.
//
// Validation is pure: no I/O, no side effects, deterministic for identical
// input and an identical clock reading. Every field is always evaluated, so a
// single pass reports every problem at once.
package schema

import (
	"time"

	"github.com/goliatone/go-openaccount/pkg/account"
)

// Clock supplies the current time for the age rule. Tests pin it to a fixed
// instant; production use defaults to time.Now.
type Clock func() time.Time

// Schema binds the validation rules to a clock.
type Schema struct {
	now Clock
}

// Option configures a Schema.
type Option func(*Schema)

// WithClock overrides the clock used by time-dependent rules.
func WithClock(clock Clock) Option {
	return func(s *Schema) {
		if clock != nil {
			s.now = clock
		}
	}
}

// New returns a Schema ready to validate form input.
func New(opts ...Option) *Schema {
	s := &Schema{now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Validate runs every field rule against in using the schema's clock. See
// ValidateAt for the result contract.
func (s *Schema) Validate(in account.FormInput) (account.Request, Errors) {
	return ValidateAt(in, s.now())
}

// CheckField validates a single field value and returns the failure message,
// or the empty string when the value passes. Interactive surfaces use it for
// immediate feedback while the user types; submit-time validation still runs
// the full rule set.
func (s *Schema) CheckField(field string, value any) string {
	return checkField(field, value, s.now())
}

// ValidateAt runs every field rule against in, treating now as the current
// time. On success it returns the coerced request and a nil error set. On
// failure it returns a zero request and one message per failing field, the
// first failing rule winning within each field. Fields never short-circuit
// each other.
func ValidateAt(in account.FormInput, now time.Time) (account.Request, Errors) {
	var (
		req  account.Request
		errs = Errors{}
	)

	if v, msg := checkFullName(in.FullName); msg != "" {
		errs[account.FieldFullName] = msg
	} else {
		req.FullName = v
	}

	if v, msg := checkEmail(in.Email); msg != "" {
		errs[account.FieldEmail] = msg
	} else {
		req.Email = v
	}

	if v, msg := checkPhone(in.Phone); msg != "" {
		errs[account.FieldPhone] = msg
	} else {
		req.Phone = v
	}

	if v, msg := checkDateOfBirth(in.DateOfBirth, now); msg != "" {
		errs[account.FieldDateOfBirth] = msg
	} else {
		req.DateOfBirth = v
	}

	if v, msg := checkAccountType(in.AccountType); msg != "" {
		errs[account.FieldAccountType] = msg
	} else {
		req.AccountType = v
	}

	if v, msg := checkDeposit(in.InitialDeposit); msg != "" {
		errs[account.FieldInitialDeposit] = msg
	} else {
		req.InitialDeposit = v
	}

	if v, msg := checkCurrency(in.Currency); msg != "" {
		errs[account.FieldCurrency] = msg
	} else {
		req.Currency = v
	}

	if v, msg := checkRequiredText(in.StreetAddress, msgStreetRequired); msg != "" {
		errs[account.FieldStreetAddress] = msg
	} else {
		req.StreetAddress = v
	}

	if v, msg := checkRequiredText(in.City, msgCityRequired); msg != "" {
		errs[account.FieldCity] = msg
	} else {
		req.City = v
	}

	if v, msg := checkZipCode(in.ZipCode); msg != "" {
		errs[account.FieldZipCode] = msg
	} else {
		req.ZipCode = v
	}

	if msg := checkTerms(in.TermsAccepted); msg != "" {
		errs[account.FieldTermsAccepted] = msg
	} else {
		req.TermsAccepted = true
	}

	if len(errs) > 0 {
		return account.Request{}, errs
	}
	return req, nil
}
