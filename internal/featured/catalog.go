package featured

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/angelmondragon/cardfinderz/internal/cards"
)

//go:embed featured.json
var featuredJSON []byte

// Catalog is the fixed list of cards shown on the home view.
type Catalog struct {
	items []cards.Card
	index map[cards.ID]int
}

// Load parses the embedded featured list.
func Load() (*Catalog, error) {
	return Parse(featuredJSON)
}

// Parse builds a catalog from a JSON array of cards. Ids must be unique.
func Parse(data []byte) (*Catalog, error) {
	var items []cards.Card
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode featured cards: %w", err)
	}
	index := make(map[cards.ID]int, len(items))
	for i, c := range items {
		if c.ID == "" {
			return nil, fmt.Errorf("featured card %d has no id", i)
		}
		if _, dup := index[c.ID]; dup {
			return nil, fmt.Errorf("duplicate featured card id %q", c.ID)
		}
		index[c.ID] = i
	}
	return &Catalog{items: items, index: index}, nil
}

// List returns the featured cards in file order.
func (c *Catalog) List() []cards.Card {
	return slices.Clone(c.items)
}

func (c *Catalog) Get(id cards.ID) (cards.Card, bool) {
	i, ok := c.index[id]
	if !ok {
		return cards.Card{}, false
	}
	return c.items[i], true
}

func (c *Catalog) Len() int {
	return len(c.items)
}
