package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/cardfinderz/internal/cards"
)

// Searcher runs raw catalog search expressions.
type Searcher interface {
	SearchCards(ctx context.Context, query string) ([]cards.Card, error)
}

// Lookup resolves a parsed query to the unfiltered upstream records.
type Lookup interface {
	Lookup(ctx context.Context, q Query) ([]cards.Card, error)
}

// Service bounds every upstream call with a timeout.
type Service struct {
	searcher Searcher
	timeout  time.Duration
}

// NewService builds the catalog lookup backed by searcher.
func NewService(searcher Searcher, timeout time.Duration) (*Service, error) {
	if searcher == nil {
		return nil, fmt.Errorf("catalog searcher required")
	}
	return &Service{searcher: searcher, timeout: timeout}, nil
}

func (s *Service) Lookup(ctx context.Context, q Query) ([]cards.Card, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.searcher.SearchCards(ctx, q.Upstream())
}
