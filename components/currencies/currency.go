package currencies

import (
	"fmt"

	"github.com/goliatone/go-openaccount/pkg/account"
)

// Currency describes one deposit currency offered by the form.
type Currency struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Symbol     string `json:"symbol"`
	MinorUnits int    `json:"minorUnits"`
}

// Option is the JSON shape select inputs consume.
type Option struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Symbol string `json:"symbol,omitempty"`
}

// metadata keyed by ISO 4217 code for every currency the schema accepts.
var metadata = map[account.Currency]Currency{
	account.CurrencyUSD: {Code: "USD", Name: "US Dollar", Symbol: "$", MinorUnits: 2},
	account.CurrencyEUR: {Code: "EUR", Name: "Euro", Symbol: "€", MinorUnits: 2},
	account.CurrencyLKR: {Code: "LKR", Name: "Sri Lankan Rupee", Symbol: "Rs", MinorUnits: 2},
}

// DefaultCurrencies returns the offered currencies in display order. The set
// is derived from the schema's accepted values; a missing metadata entry is a
// programming error surfaced at call time.
func DefaultCurrencies() ([]Currency, error) {
	accepted := account.Currencies()
	out := make([]Currency, 0, len(accepted))
	for _, code := range accepted {
		meta, ok := metadata[code]
		if !ok {
			return nil, fmt.Errorf("currencies: no metadata for %s", code)
		}
		out = append(out, meta)
	}
	return out, nil
}

// Lookup returns the metadata for a currency code, matching case-sensitively
// against the schema's accepted values.
func Lookup(code string) (Currency, bool) {
	meta, ok := metadata[account.Currency(code)]
	return meta, ok
}

// optionFor converts a currency into the select-option payload.
func optionFor(c Currency) Option {
	return Option{
		Value:  c.Code,
		Label:  c.Name,
		Symbol: c.Symbol,
	}
}
