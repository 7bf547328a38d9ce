package cart

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/cardfinderz/internal/settings"
	"github.com/angelmondragon/cardfinderz/pkg/enums"
)

// QuoteLine is a cart line with its resolved price.
type QuoteLine struct {
	Line
	// UnitPrice is zero when the card has no resolvable price.
	UnitPrice decimal.Decimal
	Priced    bool
	LineTotal decimal.Decimal

	// ConvertedLineTotal is LineTotal in the snapshot currency.
	ConvertedLineTotal decimal.Decimal
}

// Quote holds the derived cart totals for one settings snapshot.
type Quote struct {
	Lines          []QuoteLine
	TotalUnits     int
	SubtotalUSD    decimal.Decimal
	Currency       enums.Currency
	Rate           decimal.Decimal
	ConvertedTotal decimal.Decimal
	ShowConverted  bool
}

// Quote computes totals from the current lines. Nothing is cached; every call
// reads the lines and the given snapshot afresh.
func (s *Store) Quote(snap settings.Snapshot) Quote {
	return BuildQuote(s.Lines(), snap)
}

// BuildQuote prices lines and converts the USD subtotal using snap.
func BuildQuote(lines []Line, snap settings.Snapshot) Quote {
	q := Quote{
		Lines:       make([]QuoteLine, 0, len(lines)),
		SubtotalUSD: decimal.Zero,
		Currency:    snap.Currency,
		Rate:        snap.Rate,
	}
	for _, line := range lines {
		unit, priced := line.Card.ResolvedPrice()
		total := unit.Mul(decimal.NewFromInt(int64(line.Quantity)))
		q.Lines = append(q.Lines, QuoteLine{
			Line:               line,
			UnitPrice:          unit,
			Priced:             priced,
			LineTotal:          total,
			ConvertedLineTotal: snap.Convert(total),
		})
		q.TotalUnits += line.Quantity
		q.SubtotalUSD = q.SubtotalUSD.Add(total)
	}
	q.ConvertedTotal = snap.Convert(q.SubtotalUSD)
	q.ShowConverted = snap.ShowConverted()
	return q
}

// UnitPriceLabel formats the unit price, or "N/A" when unpriced.
func (l QuoteLine) UnitPriceLabel() string {
	return l.Card.PriceLabel()
}
