package search

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/angelmondragon/cardfinderz/internal/cards"
	"github.com/angelmondragon/cardfinderz/internal/catalog"
	"github.com/angelmondragon/cardfinderz/pkg/logger"
	"github.com/angelmondragon/cardfinderz/pkg/metrics"
)

type OutcomeKind string

const (
	// OutcomeIgnored is returned for blank input; nothing was dispatched.
	OutcomeIgnored OutcomeKind = "ignored"
	// OutcomeResults carries the ordered result list (possibly empty).
	OutcomeResults OutcomeKind = "results"
	// OutcomeDetail asks the UI to open the single matching card.
	OutcomeDetail OutcomeKind = "detail"
	// OutcomeSuperseded means a newer submission or a clear won; the
	// response was discarded.
	OutcomeSuperseded OutcomeKind = "superseded"
)

// Outcome is the result of one submission.
type Outcome struct {
	Kind    OutcomeKind
	Seq     uint64
	Results []cards.Card
	Detail  *cards.Card
	// Failed is set when the lookup errored and the results degraded to empty.
	Failed bool
}

// State is a snapshot of the search store.
type State struct {
	Query       string
	Results     []cards.Card
	Loading     bool
	ShowResults bool
}

// Controller owns the search state. Each submission takes the next sequence
// number; a completion is applied only when its number is still the latest.
type Controller struct {
	lookup  catalog.Lookup
	logg    *logger.Logger
	metrics *metrics.SearchMetrics

	mu    sync.Mutex
	seq   uint64
	state State
}

func NewController(lookup catalog.Lookup, logg *logger.Logger, m *metrics.SearchMetrics) (*Controller, error) {
	if lookup == nil {
		return nil, fmt.Errorf("catalog lookup required")
	}
	return &Controller{lookup: lookup, logg: logg, metrics: m}, nil
}

// Submit normalises raw, runs the lookup and applies the ordered results.
// Lookup failures are logged and reported as an empty result set.
func (c *Controller) Submit(ctx context.Context, raw string) Outcome {
	q, ok := catalog.ParseQuery(raw)
	if !ok {
		return Outcome{Kind: OutcomeIgnored}
	}
	seq := c.begin(q.Text)
	return c.run(ctx, seq, q)
}

// SubmitAsync dispatches like Submit but returns immediately. The sequence
// number is taken before returning, so call order decides which submission
// is the latest.
func (c *Controller) SubmitAsync(ctx context.Context, raw string) <-chan Outcome {
	out := make(chan Outcome, 1)
	q, ok := catalog.ParseQuery(raw)
	if !ok {
		out <- Outcome{Kind: OutcomeIgnored}
		close(out)
		return out
	}
	seq := c.begin(q.Text)
	go func() {
		defer close(out)
		out <- c.run(ctx, seq, q)
	}()
	return out
}

// Clear resets the store and invalidates any lookup still in flight.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.state = State{}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := c.state
	snap.Results = slices.Clone(c.state.Results)
	return snap
}

func (c *Controller) begin(query string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.state = State{
		Query:       query,
		Loading:     true,
		ShowResults: true,
	}
	return c.seq
}

func (c *Controller) run(ctx context.Context, seq uint64, q catalog.Query) Outcome {
	if c.logg != nil {
		ctx = c.logg.WithFields(c.logg.WithSearchSeq(ctx, seq), map[string]any{
			"query":      q.Text,
			"query_kind": string(q.Kind),
		})
	}

	start := time.Now()
	found, err := c.lookup.Lookup(ctx, q)
	c.metrics.ObserveLookup(string(q.Kind), time.Since(start))

	failed := err != nil
	if failed {
		if c.logg != nil {
			c.logg.Error(ctx, "search.lookup_failed", err)
		}
		found = nil
	}

	return c.complete(ctx, seq, order(q, found), failed)
}

// order applies the printed-total filter for number queries and sorts by
// release date.
func order(q catalog.Query, found []cards.Card) []cards.Card {
	list := slices.Clone(found)
	if q.Kind == catalog.KindNumber {
		list = cards.FilterPrintedTotal(list, q.PrintedTotal)
	}
	cards.SortByRelease(list)
	if list == nil {
		list = []cards.Card{}
	}
	return list
}

func (c *Controller) complete(ctx context.Context, seq uint64, list []cards.Card, failed bool) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		c.metrics.IncOutcome(metrics.OutcomeSuperseded)
		if c.logg != nil {
			c.logg.Debug(c.logg.WithField(ctx, "latest_seq", c.seq), "search.response_discarded")
		}
		return Outcome{Kind: OutcomeSuperseded, Seq: seq}
	}

	c.state.Loading = false

	if len(list) == 1 {
		detail := list[0]
		c.state.Results = []cards.Card{}
		c.metrics.IncOutcome(metrics.OutcomeDetail)
		return Outcome{Kind: OutcomeDetail, Seq: seq, Detail: &detail, Results: []cards.Card{}}
	}

	c.state.Results = list
	switch {
	case failed:
		c.metrics.IncOutcome(metrics.OutcomeFailed)
	case len(list) == 0:
		c.metrics.IncOutcome(metrics.OutcomeEmpty)
	default:
		c.metrics.IncOutcome(metrics.OutcomeResults)
	}
	return Outcome{Kind: OutcomeResults, Seq: seq, Results: slices.Clone(list), Failed: failed}
}
