package cards

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PriceNotAvailable is shown when no price can be resolved.
const PriceNotAvailable = "N/A"

// NumberNotAvailable replaces a missing card number in set labels.
const NumberNotAvailable = "N/A"

// releaseDateLayouts lists accepted set release date formats, catalog format first.
var releaseDateLayouts = []string{
	"2006/01/02",
	"2006-01-02",
	time.RFC3339,
}

type ImageSize int

const (
	ImageSmall ImageSize = iota
	ImageLarge
)

// ResolvedPrice picks the unit price in USD: the cardmarket average sell price
// when present and non-zero, otherwise the flat price.
func (c Card) ResolvedPrice() (decimal.Decimal, bool) {
	if c.CardMarket != nil {
		avg := c.CardMarket.Prices.AverageSellPrice
		if avg.Valid && !avg.Decimal.IsZero() {
			return avg.Decimal, true
		}
	}
	if c.Price.Valid {
		return c.Price.Decimal, true
	}
	return decimal.Zero, false
}

// PriceOrZero is the resolved price with unresolved prices counted as zero.
func (c Card) PriceOrZero() decimal.Decimal {
	price, _ := c.ResolvedPrice()
	return price
}

// PriceLabel formats the resolved price with two decimals, or N/A.
func (c Card) PriceLabel() string {
	price, ok := c.ResolvedPrice()
	if !ok {
		return PriceNotAvailable
	}
	return price.StringFixed(2)
}

// SetLabel renders "<set name> · <card number>" for structured sets and the
// plain label otherwise. A missing number shows as N/A.
func (c Card) SetLabel() string {
	if c.Set.Name != "" {
		number := c.Number
		if number == "" {
			number = NumberNotAvailable
		}
		return c.Set.Name + " · " + number
	}
	return c.Set.Label
}

// ImageURL returns the requested image size, falling back to the other size
// and then to the flat image field.
func (c Card) ImageURL(size ImageSize) string {
	if c.Images != nil {
		primary, secondary := c.Images.Small, c.Images.Large
		if size == ImageLarge {
			primary, secondary = secondary, primary
		}
		if primary != "" {
			return primary
		}
		if secondary != "" {
			return secondary
		}
	}
	return c.Image
}

// ReleaseDate parses the set release date. Missing or unparseable dates
// report false.
func (c Card) ReleaseDate() (time.Time, bool) {
	raw := strings.TrimSpace(c.Set.ReleaseDate)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range releaseDateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// PrintedTotal returns the set's printed card count when known.
func (c Card) PrintedTotal() (int, bool) {
	if c.Set.PrintedTotal == nil {
		return 0, false
	}
	return *c.Set.PrintedTotal, true
}
