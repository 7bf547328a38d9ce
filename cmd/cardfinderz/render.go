package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/angelmondragon/cardfinderz/internal/cards"
	"github.com/angelmondragon/cardfinderz/internal/search"
	"github.com/angelmondragon/cardfinderz/internal/settings"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

type cardRow struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Set       string `json:"set"`
	Released  string `json:"released,omitempty"`
	PriceUSD  string `json:"price_usd"`
	Converted string `json:"converted,omitempty"`
	Image     string `json:"image,omitempty"`
}

func newCardRow(c cards.Card, snap settings.Snapshot) cardRow {
	row := cardRow{
		ID:       c.ID.String(),
		Name:     c.Name,
		Set:      c.SetLabel(),
		PriceUSD: c.PriceLabel(),
		Image:    c.ImageURL(cards.ImageSmall),
	}
	if released, ok := c.ReleaseDate(); ok {
		row.Released = released.Format("2006-01-02")
	}
	if price, ok := c.ResolvedPrice(); ok && snap.ShowConverted() {
		row.Converted = fmt.Sprintf("%s %s", snap.Currency.Symbol(), snap.Convert(price).StringFixed(2))
	}
	return row
}

func renderOutcome(w io.Writer, format string, out search.Outcome, snap settings.Snapshot) error {
	if out.Kind == search.OutcomeDetail && out.Detail != nil {
		return renderDetail(w, format, *out.Detail, snap)
	}
	if len(out.Results) == 0 && format != formatJSON {
		_, err := fmt.Fprintln(w, "No cards found.")
		return err
	}
	return renderCards(w, format, out.Results, snap)
}

func renderCards(w io.Writer, format string, list []cards.Card, snap settings.Snapshot) error {
	rows := make([]cardRow, 0, len(list))
	for _, c := range list {
		rows = append(rows, newCardRow(c, snap))
	}

	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case formatTable, "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		header := "ID\tNAME\tSET\tRELEASED\tUSD"
		if snap.ShowConverted() {
			header += "\t" + snap.Currency.String()
		}
		fmt.Fprintln(tw, header)
		for _, row := range rows {
			line := fmt.Sprintf("%s\t%s\t%s\t%s\t%s", row.ID, row.Name, row.Set, dash(row.Released), row.PriceUSD)
			if snap.ShowConverted() {
				line += "\t" + dash(row.Converted)
			}
			fmt.Fprintln(tw, line)
		}
		return tw.Flush()
	default:
		return codeError(2, "unknown format %q", format)
	}
}

func renderDetail(w io.Writer, format string, c cards.Card, snap settings.Snapshot) error {
	row := newCardRow(c, snap)
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(row)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Name:\t%s\n", row.Name)
	fmt.Fprintf(tw, "Set:\t%s\n", row.Set)
	fmt.Fprintf(tw, "Released:\t%s\n", dash(row.Released))
	fmt.Fprintf(tw, "Price (USD):\t%s\n", row.PriceUSD)
	if snap.ShowConverted() {
		fmt.Fprintf(tw, "Price (%s):\t%s\n", snap.Currency, dash(row.Converted))
	}
	if image := c.ImageURL(cards.ImageLarge); image != "" {
		fmt.Fprintf(tw, "Image:\t%s\n", image)
	}
	return tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
