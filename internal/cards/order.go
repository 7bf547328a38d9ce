package cards

import (
	"sort"
	"time"
)

type datedCard struct {
	card  Card
	date  time.Time
	dated bool
}

// SortByRelease orders cards newest release first. Dated cards always precede
// undated ones, and cards that compare equal keep their incoming order.
func SortByRelease(list []Card) {
	keyed := make([]datedCard, len(list))
	for i, card := range list {
		date, ok := card.ReleaseDate()
		keyed[i] = datedCard{card: card, date: date, dated: ok}
	}
	sort.SliceStable(keyed, func(i, j int) bool {
		a, b := keyed[i], keyed[j]
		if a.dated && b.dated {
			return a.date.After(b.date)
		}
		return a.dated && !b.dated
	})
	for i := range keyed {
		list[i] = keyed[i].card
	}
}

// FilterPrintedTotal keeps the cards whose set prints exactly total cards.
func FilterPrintedTotal(list []Card, total int) []Card {
	out := make([]Card, 0, len(list))
	for _, card := range list {
		if printed, ok := card.PrintedTotal(); ok && printed == total {
			out = append(out, card)
		}
	}
	return out
}
