package currencies

import (
	"testing"

	"github.com/goliatone/go-openaccount/pkg/account"
)

func TestDefaultCurrencies_MatchSchemaAcceptedSet(t *testing.T) {
	list, err := DefaultCurrencies()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(list) != len(account.Currencies()) {
		t.Fatalf("expected %d currencies, got %d", len(account.Currencies()), len(list))
	}
	for i, accepted := range account.Currencies() {
		if list[i].Code != string(accepted) {
			t.Fatalf("position %d: got %q want %q", i, list[i].Code, accepted)
		}
		if !account.Currency(list[i].Code).Valid() {
			t.Fatalf("currency %q not accepted by the schema", list[i].Code)
		}
		if list[i].Name == "" || list[i].Symbol == "" {
			t.Fatalf("incomplete metadata: %#v", list[i])
		}
	}
}

func TestLookup(t *testing.T) {
	eur, ok := Lookup("EUR")
	if !ok {
		t.Fatal("expected EUR to resolve")
	}
	if eur.Name != "Euro" || eur.Symbol != "€" {
		t.Fatalf("unexpected metadata: %#v", eur)
	}

	if _, ok := Lookup("GBP"); ok {
		t.Fatal("GBP is not offered and should not resolve")
	}
}

func TestSearch_MatchesCodeNameAndSymbol(t *testing.T) {
	list, err := DefaultCurrencies()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	opts := NewOptions()

	byName := Search(list, "euro", 10, opts)
	if len(byName) != 1 || byName[0].Code != "EUR" {
		t.Fatalf("unexpected name match: %#v", byName)
	}

	bySymbol := Search(list, "Rs", 10, opts)
	if len(bySymbol) != 1 || bySymbol[0].Code != "LKR" {
		t.Fatalf("unexpected symbol match: %#v", bySymbol)
	}

	byCode := Search(list, "usd", 10, opts)
	if len(byCode) != 1 || byCode[0].Code != "USD" {
		t.Fatalf("unexpected code match: %#v", byCode)
	}
}

func TestSearch_CodePrefixBeforeContains(t *testing.T) {
	list, err := DefaultCurrencies()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	opts := NewOptions()

	results := Search(list, "u", 10, opts)
	want := []string{"USD", "EUR", "LKR"}
	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d: %#v", len(want), len(results), results)
	}
	for i := range want {
		if results[i].Code != want[i] {
			t.Fatalf("unexpected ordering at %d: got %q want %q", i, results[i].Code, want[i])
		}
	}
}

func TestSearch_EmptyQueryModes(t *testing.T) {
	list, err := DefaultCurrencies()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	top := Search(list, "", 0, NewOptions(WithEmptySearchMode(EmptySearchTop)))
	if len(top) != len(list) {
		t.Fatalf("expected full set, got %d", len(top))
	}

	none := Search(list, "", 0, NewOptions(WithEmptySearchMode(EmptySearchNone)))
	if none != nil {
		t.Fatalf("expected no results, got %#v", none)
	}
}

func TestSearch_LimitApplied(t *testing.T) {
	list, err := DefaultCurrencies()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	opts := NewOptions(WithDefaultLimit(2), WithMaxLimit(3))

	results := Search(list, "", 0, opts)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d: %#v", len(results), results)
	}
}

func TestSearchOptions_MapsValueLabelSymbol(t *testing.T) {
	list, err := DefaultCurrencies()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	results := SearchOptions(list, "usd", 10, NewOptions())
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Value != "USD" || results[0].Label != "US Dollar" || results[0].Symbol != "$" {
		t.Fatalf("unexpected option: %#v", results[0])
	}
}
