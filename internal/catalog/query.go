package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type Kind string

const (
	KindName   Kind = "name"
	KindNumber Kind = "number"
)

var numberTotalPattern = regexp.MustCompile(`^(\d+)/(\d+)$`)

// unmatchableTotal stands in for printed totals too large to parse. No set
// prints a negative count, so filtering on it keeps nothing.
const unmatchableTotal = -1

// Query is a normalised search request. Number queries carry the card number
// sent upstream and the printed set total the results must match.
type Query struct {
	Kind         Kind
	Text         string
	Number       string
	PrintedTotal int
}

// ParseQuery trims and lowercases raw input and classifies it as a
// "<number>/<total>" token or free text. Blank input reports false.
func ParseQuery(raw string) (Query, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return Query{}, false
	}
	if m := numberTotalPattern.FindStringSubmatch(normalized); m != nil {
		total, err := strconv.Atoi(m[2])
		if err != nil {
			total = unmatchableTotal
		}
		return Query{Kind: KindNumber, Text: normalized, Number: trimLeadingZeros(m[1]), PrintedTotal: total}, true
	}
	return Query{Kind: KindName, Text: normalized}, true
}

// Upstream renders the catalog search expression.
func (q Query) Upstream() string {
	if q.Kind == KindNumber {
		return fmt.Sprintf("number:%s", q.Number)
	}
	escaped := strings.ReplaceAll(q.Text, `"`, `\"`)
	return fmt.Sprintf(`name:"%s"`, escaped)
}

// trimLeadingZeros maps printed numbers like "043" to the catalog form "43".
func trimLeadingZeros(number string) string {
	trimmed := strings.TrimLeft(number, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}
