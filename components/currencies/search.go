package currencies

import (
	"sort"
	"strings"
)

// Search filters the currency list by code, name, or symbol. Code-prefix
// matches rank first, then name-prefix matches, then the rest by code.
func Search(list []Currency, query string, limit int, opts Options) []Currency {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.EmptySearchMode == EmptySearchTop {
			if len(list) <= limit {
				return append([]Currency{}, list...)
			}
			return append([]Currency{}, list[:limit]...)
		}
		return nil
	}

	q := strings.ToLower(query)
	matches := make([]matchedCurrency, 0, len(list))
	for _, currency := range list {
		code := strings.ToLower(currency.Code)
		name := strings.ToLower(currency.Name)
		if !strings.Contains(code, q) && !strings.Contains(name, q) && !strings.EqualFold(currency.Symbol, query) {
			continue
		}
		matches = append(matches, matchedCurrency{
			currency:   currency,
			codePrefix: strings.HasPrefix(code, q),
			namePrefix: strings.HasPrefix(name, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].codePrefix != matches[j].codePrefix {
			return matches[i].codePrefix
		}
		if matches[i].namePrefix != matches[j].namePrefix {
			return matches[i].namePrefix
		}
		return matches[i].currency.Code < matches[j].currency.Code
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]Currency, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.currency)
	}
	return out
}

// SearchOptions runs Search and converts the results into select options.
func SearchOptions(list []Currency, query string, limit int, opts Options) []Option {
	results := Search(list, query, limit, opts)
	if len(results) == 0 {
		return nil
	}

	out := make([]Option, 0, len(results))
	for _, currency := range results {
		out = append(out, optionFor(currency))
	}
	return out
}

type matchedCurrency struct {
	currency   Currency
	codePrefix bool
	namePrefix bool
}
