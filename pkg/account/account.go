// Package account defines the domain types exchanged by the account-opening
// form: the raw input captured from a form surface and the typed request
// produced by successful validation.
package account

import "time"

// Type identifies the kind of account being opened.
type Type string

const (
	TypeSavings Type = "savings"
	TypeCurrent Type = "current"
)

// Types lists the account types offered by the form, in display order.
func Types() []Type {
	return []Type{TypeSavings, TypeCurrent}
}

// Valid reports whether t names a known account type.
func (t Type) Valid() bool {
	switch t {
	case TypeSavings, TypeCurrent:
		return true
	}
	return false
}

func (t Type) String() string {
	return string(t)
}

// Currency identifies the currency of the initial deposit.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyLKR Currency = "LKR"
)

// Currencies lists the currencies offered by the form, in display order.
func Currencies() []Currency {
	return []Currency{CurrencyUSD, CurrencyEUR, CurrencyLKR}
}

// Valid reports whether c names a known currency.
func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyLKR:
		return true
	}
	return false
}

func (c Currency) String() string {
	return string(c)
}

// Field names shared by the schema, the renderers, and the UI overrides.
const (
	FieldFullName       = "fullName"
	FieldEmail          = "email"
	FieldPhone          = "phone"
	FieldDateOfBirth    = "dateOfBirth"
	FieldAccountType    = "accountType"
	FieldInitialDeposit = "initialDeposit"
	FieldCurrency       = "currency"
	FieldStreetAddress  = "streetAddress"
	FieldCity           = "city"
	FieldZipCode        = "zipCode"
	FieldTermsAccepted  = "termsAccepted"
)

// FormInput is the raw, unvalidated record captured from a form surface. It
// exists only for the current interaction cycle; nothing persists it.
//
// InitialDeposit carries whatever the surface produced: numeric text from an
// HTML form, a JSON number from the API, or a Go numeric in embedded use.
type FormInput struct {
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	DateOfBirth    string `json:"dateOfBirth"`
	AccountType    string `json:"accountType"`
	InitialDeposit any    `json:"initialDeposit"`
	Currency       string `json:"currency"`
	StreetAddress  string `json:"streetAddress"`
	City           string `json:"city"`
	ZipCode        string `json:"zipCode"`
	TermsAccepted  bool   `json:"termsAccepted"`
}

// Values returns the input keyed by field name, in the shape renderers expect
// when re-displaying a form after a failed attempt.
func (in FormInput) Values() map[string]any {
	return map[string]any{
		FieldFullName:       in.FullName,
		FieldEmail:          in.Email,
		FieldPhone:          in.Phone,
		FieldDateOfBirth:    in.DateOfBirth,
		FieldAccountType:    in.AccountType,
		FieldInitialDeposit: in.InitialDeposit,
		FieldCurrency:       in.Currency,
		FieldStreetAddress:  in.StreetAddress,
		FieldCity:           in.City,
		FieldZipCode:        in.ZipCode,
		FieldTermsAccepted:  in.TermsAccepted,
	}
}

// Request is the typed, schema-accepted account-opening request. Instances
// are produced only by successful validation and are treated as read-only.
type Request struct {
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`       // exactly ten digits
	DateOfBirth    time.Time `json:"dateOfBirth"` // calendar date, UTC midnight
	AccountType    Type      `json:"accountType"`
	InitialDeposit float64   `json:"initialDeposit"` // at least the minimum deposit
	Currency       Currency  `json:"currency"`
	StreetAddress  string    `json:"streetAddress"`
	City           string    `json:"city"`
	ZipCode        string    `json:"zipCode"`       // exactly five digits
	TermsAccepted  bool      `json:"termsAccepted"` // always true
}
