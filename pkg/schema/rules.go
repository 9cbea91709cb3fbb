package schema

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-openaccount/pkg/account"
)

// Rule bounds shared with the form model and the API description.
const (
	// MinFullNameLen is the minimum number of characters in a full name.
	MinFullNameLen = 3
	// PhoneDigits is the exact number of digits in a phone number.
	PhoneDigits = 10
	// ZipDigits is the exact number of digits in a zip code.
	ZipDigits = 5
	// MinDeposit is the smallest accepted initial deposit, in the selected
	// currency's major unit.
	MinDeposit = 100.0
	// MinAge is the minimum account-holder age in calendar years.
	MinAge = 18
	// DateLayout is the accepted date-of-birth layout.
	DateLayout = "2006-01-02"
)

const (
	msgFullNameRequired = "full name is required"
	msgFullNameShort    = "full name must be at least 3 characters"
	msgEmailRequired    = "email is required"
	msgEmailFormat      = "enter a valid email address"
	msgPhoneRequired    = "phone number is required"
	msgPhoneDigits      = "phone number must contain only digits"
	msgPhoneLength      = "phone number must be exactly 10 digits"
	msgDOBRequired      = "date of birth is required"
	msgDOBFormat        = "date of birth must be in YYYY-MM-DD format"
	msgDOBAge           = "you must be at least 18 years old"
	msgTypeRequired     = "account type is required"
	msgTypeInvalid      = "select a valid account type"
	msgDepositRequired  = "initial deposit is required"
	msgDepositNumber    = "initial deposit must be a number"
	msgDepositMinimum   = "minimum deposit is 100"
	msgCurrencyRequired = "currency is required"
	msgCurrencyInvalid  = "select a valid currency"
	msgStreetRequired   = "street address is required"
	msgCityRequired     = "city is required"
	msgZipRequired      = "zip code is required"
	msgZipFormat        = "must be exactly 5 digits"
	msgTermsRequired    = "must accept terms"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Each check walks its field's rules in order and reports the first failure.
// Checks receive the raw value and return the coerced value plus a message;
// an empty message means the field passed.

func checkFullName(raw string) (string, string) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", msgFullNameRequired
	}
	if utf8.RuneCountInString(v) < MinFullNameLen {
		return "", msgFullNameShort
	}
	return v, ""
}

func checkEmail(raw string) (string, string) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", msgEmailRequired
	}
	if !emailPattern.MatchString(v) {
		return "", msgEmailFormat
	}
	return v, ""
}

func checkPhone(raw string) (string, string) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", msgPhoneRequired
	}
	if !isDigits(v) {
		return "", msgPhoneDigits
	}
	if len(v) != PhoneDigits {
		return "", msgPhoneLength
	}
	return v, ""
}

// checkDateOfBirth accepts YYYY-MM-DD dates for holders at least MinAge
// calendar years old. Age uses plain year subtraction, so a birthday later in
// the current year still counts as a full year.
func checkDateOfBirth(raw string, now time.Time) (time.Time, string) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return time.Time{}, msgDOBRequired
	}
	if !datePattern.MatchString(v) {
		return time.Time{}, msgDOBFormat
	}
	dob, err := time.ParseInLocation(DateLayout, v, time.UTC)
	if err != nil {
		return time.Time{}, msgDOBFormat
	}
	if now.Year()-dob.Year() < MinAge {
		return time.Time{}, msgDOBAge
	}
	return dob, ""
}

func checkAccountType(raw string) (account.Type, string) {
	v := account.Type(strings.TrimSpace(raw))
	if v == "" {
		return "", msgTypeRequired
	}
	if !v.Valid() {
		return "", msgTypeInvalid
	}
	return v, ""
}

func checkCurrency(raw string) (account.Currency, string) {
	v := account.Currency(strings.TrimSpace(raw))
	if v == "" {
		return "", msgCurrencyRequired
	}
	if !v.Valid() {
		return "", msgCurrencyInvalid
	}
	return v, ""
}

// checkDeposit accepts numeric text alongside Go and JSON numerics.
func checkDeposit(raw any) (float64, string) {
	switch v := raw.(type) {
	case nil:
		return 0, msgDepositRequired
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, msgDepositRequired
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, msgDepositNumber
		}
		return checkDepositAmount(f)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, msgDepositNumber
		}
		return checkDepositAmount(f)
	case float64:
		return checkDepositAmount(v)
	case float32:
		return checkDepositAmount(float64(v))
	case int:
		return checkDepositAmount(float64(v))
	case int64:
		return checkDepositAmount(float64(v))
	default:
		return 0, msgDepositNumber
	}
}

func checkDepositAmount(f float64) (float64, string) {
	if f < MinDeposit {
		return 0, msgDepositMinimum
	}
	return f, ""
}

func checkRequiredText(raw, msg string) (string, string) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", msg
	}
	return v, ""
}

func checkZipCode(raw string) (string, string) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", msgZipRequired
	}
	if !isDigits(v) || len(v) != ZipDigits {
		return "", msgZipFormat
	}
	return v, ""
}

func checkTerms(accepted bool) string {
	if !accepted {
		return msgTermsRequired
	}
	return ""
}

// checkField dispatches a single-field check for interactive surfaces.
// Unknown fields pass: presentation-only inputs carry no rules.
func checkField(field string, value any, now time.Time) string {
	switch field {
	case account.FieldFullName:
		_, msg := checkFullName(text(value))
		return msg
	case account.FieldEmail:
		_, msg := checkEmail(text(value))
		return msg
	case account.FieldPhone:
		_, msg := checkPhone(text(value))
		return msg
	case account.FieldDateOfBirth:
		_, msg := checkDateOfBirth(text(value), now)
		return msg
	case account.FieldAccountType:
		_, msg := checkAccountType(text(value))
		return msg
	case account.FieldInitialDeposit:
		_, msg := checkDeposit(value)
		return msg
	case account.FieldCurrency:
		_, msg := checkCurrency(text(value))
		return msg
	case account.FieldStreetAddress:
		_, msg := checkRequiredText(text(value), msgStreetRequired)
		return msg
	case account.FieldCity:
		_, msg := checkRequiredText(text(value), msgCityRequired)
		return msg
	case account.FieldZipCode:
		_, msg := checkZipCode(text(value))
		return msg
	case account.FieldTermsAccepted:
		accepted, _ := value.(bool)
		return checkTerms(accepted)
	default:
		return ""
	}
}

func text(value any) string {
	s, _ := value.(string)
	return s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
