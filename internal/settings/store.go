package settings

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/cardfinderz/pkg/enums"
	pkgerrors "github.com/angelmondragon/cardfinderz/pkg/errors"
)

// Default values used when the store is built without configuration.
var (
	DefaultCurrency = enums.CurrencyPEN
	DefaultRate     = decimal.RequireFromString("3.7")
)

// Snapshot is the display preference at one point in time. Rate is the
// number of Currency units per 1 USD.
type Snapshot struct {
	Currency enums.Currency
	Rate     decimal.Decimal
}

// Convert turns a USD amount into the snapshot currency.
func (s Snapshot) Convert(usd decimal.Decimal) decimal.Decimal {
	return usd.Mul(s.Rate)
}

// ShowConverted reports whether a converted total should be displayed next to
// the USD subtotal.
func (s Snapshot) ShowConverted() bool {
	return s.Currency != enums.CurrencyUSD
}

// Store keeps the display currency and manual exchange rate in memory.
type Store struct {
	mu      sync.RWMutex
	current Snapshot
}

// NewStore validates the initial preference and returns a ready store.
func NewStore(currency string, rate decimal.Decimal) (*Store, error) {
	cur, err := parseCurrency(currency)
	if err != nil {
		return nil, err
	}
	if err := validateRate(rate); err != nil {
		return nil, err
	}
	return &Store{current: Snapshot{Currency: cur, Rate: rate}}, nil
}

// NewDefaultStore starts at PEN with a 3.7 rate.
func NewDefaultStore() *Store {
	return &Store{current: Snapshot{Currency: DefaultCurrency, Rate: DefaultRate}}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SetCurrency switches the display currency. Unknown codes are rejected and
// leave the store unchanged.
func (s *Store) SetCurrency(code string) (Snapshot, error) {
	cur, err := parseCurrency(code)
	if err != nil {
		return s.Snapshot(), err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Currency = cur
	return s.current, nil
}

// SetExchangeRate replaces the manual rate. Non-positive rates are rejected.
func (s *Store) SetExchangeRate(rate decimal.Decimal) (Snapshot, error) {
	if err := validateRate(rate); err != nil {
		return s.Snapshot(), err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Rate = rate
	return s.current, nil
}

// Convert turns a USD amount into the current currency.
func (s *Store) Convert(usd decimal.Decimal) decimal.Decimal {
	return s.Snapshot().Convert(usd)
}

func parseCurrency(code string) (enums.Currency, error) {
	cur, err := enums.ParseCurrency(code)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unsupported currency").
			WithDetails(map[string]any{"currency": code, "supported": enums.Currencies()})
	}
	return cur, nil
}

func validateRate(rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "exchange rate must be greater than zero").
			WithDetails(map[string]any{"exchange_rate": rate.String()})
	}
	return nil
}
