// Package app composes the client-local stores into one state object that is
// built once per process and handed to request handlers through the context.
package app

import (
	"context"
	"fmt"

	"github.com/angelmondragon/cardfinderz/internal/cart"
	"github.com/angelmondragon/cardfinderz/internal/featured"
	"github.com/angelmondragon/cardfinderz/internal/search"
	"github.com/angelmondragon/cardfinderz/internal/settings"
	pkgerrors "github.com/angelmondragon/cardfinderz/pkg/errors"
)

type State struct {
	Search   *search.Controller
	Cart     *cart.Store
	Settings *settings.Store
	Featured *featured.Catalog
}

// NewState checks that every store is present.
func NewState(searchCtrl *search.Controller, cartStore *cart.Store, settingsStore *settings.Store, catalog *featured.Catalog) (*State, error) {
	if searchCtrl == nil {
		return nil, fmt.Errorf("search controller required")
	}
	if cartStore == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if settingsStore == nil {
		return nil, fmt.Errorf("settings store required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("featured catalog required")
	}
	return &State{
		Search:   searchCtrl,
		Cart:     cartStore,
		Settings: settingsStore,
		Featured: catalog,
	}, nil
}

type ctxKey struct{}

// WithState attaches s to ctx.
func WithState(ctx context.Context, s *State) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, s)
}

// Lookup returns the state attached to ctx, if any.
func Lookup(ctx context.Context) (*State, bool) {
	if ctx == nil {
		return nil, false
	}
	s, ok := ctx.Value(ctxKey{}).(*State)
	return s, ok && s != nil
}

// FromContext returns the attached state and panics when there is none.
// Reaching a store without its state is a wiring bug, not a request error.
func FromContext(ctx context.Context) *State {
	s, ok := Lookup(ctx)
	if !ok {
		panic(pkgerrors.New(pkgerrors.CodeInvariant, "app state accessed outside its provider"))
	}
	return s
}
