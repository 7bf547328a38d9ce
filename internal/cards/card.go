// Package cards models catalog entries as the card catalog returns them and
// resolves the optional, fallback-chained fields used for display and totals.
package cards

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ID is a catalog identity. The catalog uses string ids ("swsh4-43") while
// the featured list uses numbers; both normalise to their decimal/string form.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("card id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// SetInfo is either a plain label ("Vivid Voltage · 043/185") or the
// structured set record returned by the catalog.
type SetInfo struct {
	Label string

	ID           string
	Name         string
	Number       string
	Series       string
	PrintedTotal *int
	ReleaseDate  string
}

type setRecord struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	Number       string `json:"number,omitempty"`
	Series       string `json:"series,omitempty"`
	PrintedTotal *int   `json:"printedTotal,omitempty"`
	ReleaseDate  string `json:"releaseDate,omitempty"`
}

// Structured reports whether the set came as a record rather than a label.
func (s SetInfo) Structured() bool {
	return s.Name != "" || s.ID != "" || s.PrintedTotal != nil || s.ReleaseDate != ""
}

func (s *SetInfo) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = SetInfo{}
		return nil
	}
	if trimmed[0] == '"' {
		var label string
		if err := json.Unmarshal(trimmed, &label); err != nil {
			return err
		}
		*s = SetInfo{Label: label}
		return nil
	}
	var rec setRecord
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return fmt.Errorf("decode card set: %w", err)
	}
	*s = SetInfo{
		ID:           rec.ID,
		Name:         rec.Name,
		Number:       rec.Number,
		Series:       rec.Series,
		PrintedTotal: rec.PrintedTotal,
		ReleaseDate:  rec.ReleaseDate,
	}
	return nil
}

func (s SetInfo) MarshalJSON() ([]byte, error) {
	if s.Structured() {
		return json.Marshal(setRecord{
			ID:           s.ID,
			Name:         s.Name,
			Number:       s.Number,
			Series:       s.Series,
			PrintedTotal: s.PrintedTotal,
			ReleaseDate:  s.ReleaseDate,
		})
	}
	if s.Label == "" {
		return []byte("null"), nil
	}
	return json.Marshal(s.Label)
}

type Images struct {
	Small string `json:"small,omitempty"`
	Large string `json:"large,omitempty"`
}

// Prices is the cardmarket snapshot attached to catalog cards.
type Prices struct {
	AverageSellPrice decimal.NullDecimal `json:"averageSellPrice"`
	LowPrice         decimal.NullDecimal `json:"lowPrice"`
	TrendPrice       decimal.NullDecimal `json:"trendPrice"`
	GermanProLow     decimal.NullDecimal `json:"germanProLow"`
	SuggestedPrice   decimal.NullDecimal `json:"suggestedPrice"`
}

type Market struct {
	URL       string `json:"url,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
	Prices    Prices `json:"prices"`
}

// Card is one catalog entry.
type Card struct {
	ID         ID                  `json:"id"`
	Name       string              `json:"name"`
	Number     string              `json:"number,omitempty"`
	Rarity     string              `json:"rarity,omitempty"`
	Set        SetInfo             `json:"set"`
	Images     *Images             `json:"images,omitempty"`
	Image      string              `json:"image,omitempty"`
	CardMarket *Market             `json:"cardmarket,omitempty"`
	Price      decimal.NullDecimal `json:"price"`
}
