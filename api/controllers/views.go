package controllers

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/cardfinderz/internal/cards"
	"github.com/angelmondragon/cardfinderz/internal/cart"
	"github.com/angelmondragon/cardfinderz/internal/search"
	"github.com/angelmondragon/cardfinderz/internal/settings"
	"github.com/angelmondragon/cardfinderz/pkg/enums"
)

const releaseDateLayout = "2006-01-02"

// cardView is the catalog record plus the resolved display fields, so the
// client can render it and post it back to the cart unchanged.
type cardView struct {
	cards.Card
	Display cardDisplay `json:"display"`
}

type cardDisplay struct {
	SetLabel    string `json:"set_label"`
	Price       string `json:"price"`
	ImageSmall  string `json:"image_small,omitempty"`
	ImageLarge  string `json:"image_large,omitempty"`
	ReleaseDate string `json:"release_date,omitempty"`

	// ConvertedPrice is set on detail and cart views when the display
	// currency is not USD and the card has a price.
	ConvertedPrice string `json:"converted_price,omitempty"`
}

func newCardView(c cards.Card) cardView {
	view := cardView{
		Card: c,
		Display: cardDisplay{
			SetLabel:   c.SetLabel(),
			Price:      c.PriceLabel(),
			ImageSmall: c.ImageURL(cards.ImageSmall),
			ImageLarge: c.ImageURL(cards.ImageLarge),
		},
	}
	if released, ok := c.ReleaseDate(); ok {
		view.Display.ReleaseDate = released.Format(releaseDateLayout)
	}
	return view
}

func (v cardView) withConversion(snap settings.Snapshot) cardView {
	if price, ok := v.Card.ResolvedPrice(); ok && snap.ShowConverted() {
		v.Display.ConvertedPrice = money(snap.Convert(price))
	}
	return v
}

func newCardViews(list []cards.Card) []cardView {
	out := make([]cardView, 0, len(list))
	for _, c := range list {
		out = append(out, newCardView(c))
	}
	return out
}

type searchStateView struct {
	Query       string     `json:"query"`
	Results     []cardView `json:"results"`
	IsLoading   bool       `json:"is_loading"`
	ShowResults bool       `json:"show_results"`
}

func newSearchStateView(s search.State) searchStateView {
	return searchStateView{
		Query:       s.Query,
		Results:     newCardViews(s.Results),
		IsLoading:   s.Loading,
		ShowResults: s.ShowResults,
	}
}

type searchOutcomeView struct {
	Outcome string          `json:"outcome"`
	Seq     uint64          `json:"seq,omitempty"`
	Failed  bool            `json:"failed"`
	Detail  *cardView       `json:"detail,omitempty"`
	State   searchStateView `json:"state"`
}

func newSearchOutcomeView(out search.Outcome, state search.State, snap settings.Snapshot) searchOutcomeView {
	view := searchOutcomeView{
		Outcome: string(out.Kind),
		Seq:     out.Seq,
		Failed:  out.Failed,
		State:   newSearchStateView(state),
	}
	if out.Detail != nil {
		detail := newCardView(*out.Detail).withConversion(snap)
		view.Detail = &detail
	}
	return view
}

type cartLineView struct {
	Card               cardView `json:"card"`
	Quantity           int      `json:"quantity"`
	UnitPrice          string   `json:"unit_price"`
	LineTotal          string   `json:"line_total"`
	ConvertedLineTotal string   `json:"converted_line_total,omitempty"`
}

type cartView struct {
	Lines          []cartLineView `json:"lines"`
	TotalUnits     int            `json:"total_units"`
	SubtotalUSD    string         `json:"subtotal_usd"`
	Currency       string         `json:"currency"`
	CurrencySymbol string         `json:"currency_symbol"`
	ExchangeRate   string         `json:"exchange_rate"`
	ConvertedTotal string         `json:"converted_total"`
	ShowConverted  bool           `json:"show_converted"`
}

func newCartView(q cart.Quote) cartView {
	view := cartView{
		Lines:          make([]cartLineView, 0, len(q.Lines)),
		TotalUnits:     q.TotalUnits,
		SubtotalUSD:    money(q.SubtotalUSD),
		Currency:       q.Currency.String(),
		CurrencySymbol: q.Currency.Symbol(),
		ExchangeRate:   q.Rate.String(),
		ConvertedTotal: money(q.ConvertedTotal),
		ShowConverted:  q.ShowConverted,
	}
	snap := settings.Snapshot{Currency: q.Currency, Rate: q.Rate}
	for _, line := range q.Lines {
		lv := cartLineView{
			Card:      newCardView(line.Card).withConversion(snap),
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPriceLabel(),
			LineTotal: money(line.LineTotal),
		}
		if q.ShowConverted {
			lv.ConvertedLineTotal = money(line.ConvertedLineTotal)
		}
		view.Lines = append(view.Lines, lv)
	}
	return view
}

type currencyView struct {
	Code   string `json:"code"`
	Label  string `json:"label"`
	Symbol string `json:"symbol"`
}

type settingsView struct {
	Currency     currencyView   `json:"currency"`
	ExchangeRate string         `json:"exchange_rate"`
	MinRate      string         `json:"min_exchange_rate"`
	MaxRate      string         `json:"max_exchange_rate"`
	Currencies   []currencyView `json:"currencies"`
}

func newCurrencyView(c enums.Currency) currencyView {
	return currencyView{Code: c.String(), Label: c.Label(), Symbol: c.Symbol()}
}

func newSettingsView(snap settings.Snapshot, minRate, maxRate decimal.Decimal) settingsView {
	view := settingsView{
		Currency:     newCurrencyView(snap.Currency),
		ExchangeRate: snap.Rate.StringFixed(2),
		MinRate:      minRate.StringFixed(2),
		MaxRate:      maxRate.StringFixed(2),
	}
	for _, c := range enums.Currencies() {
		view.Currencies = append(view.Currencies, newCurrencyView(c))
	}
	return view
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
