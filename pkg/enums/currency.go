package enums

import (
	"fmt"
	"strings"
)

// Currency represents the display currencies a quote can be converted into.
type Currency string

const (
	CurrencyPEN Currency = "PEN"
	CurrencyUSD Currency = "USD"
	CurrencyMXN Currency = "MXN"
	CurrencyCOP Currency = "COP"
	CurrencyCLP Currency = "CLP"
)

var validCurrencies = []Currency{
	CurrencyPEN,
	CurrencyUSD,
	CurrencyMXN,
	CurrencyCOP,
	CurrencyCLP,
}

var currencyLabels = map[Currency]string{
	CurrencyPEN: "Peruvian Sol",
	CurrencyUSD: "US Dollar",
	CurrencyMXN: "Mexican Peso",
	CurrencyCOP: "Colombian Peso",
	CurrencyCLP: "Chilean Peso",
}

var currencySymbols = map[Currency]string{
	CurrencyPEN: "S/",
	CurrencyUSD: "$",
	CurrencyMXN: "MX$",
	CurrencyCOP: "COL$",
	CurrencyCLP: "CLP$",
}

// String implements fmt.Stringer.
func (c Currency) String() string {
	return string(c)
}

// IsValid reports whether the currency is recognized.
func (c Currency) IsValid() bool {
	for _, candidate := range validCurrencies {
		if candidate == c {
			return true
		}
	}
	return false
}

// Label returns the human readable name, e.g. "PEN - Peruvian Sol".
func (c Currency) Label() string {
	name, ok := currencyLabels[c]
	if !ok {
		return string(c)
	}
	return fmt.Sprintf("%s - %s", c, name)
}

// Symbol returns the prefix used when formatting converted amounts.
func (c Currency) Symbol() string {
	if sym, ok := currencySymbols[c]; ok {
		return sym
	}
	return string(c)
}

// Currencies lists the supported currencies in picker order.
func Currencies() []Currency {
	out := make([]Currency, len(validCurrencies))
	copy(out, validCurrencies)
	return out
}

// ParseCurrency converts a raw string into a Currency.
func ParseCurrency(value string) (Currency, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for _, candidate := range validCurrencies {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid currency %q", value)
}
