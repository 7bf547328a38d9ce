package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/cardfinderz/api/responses"
	"github.com/angelmondragon/cardfinderz/api/validators"
	"github.com/angelmondragon/cardfinderz/internal/app"
	"github.com/angelmondragon/cardfinderz/internal/cards"
	pkgerrors "github.com/angelmondragon/cardfinderz/pkg/errors"
	"github.com/angelmondragon/cardfinderz/pkg/logger"
)

// CartAddBody adds either a full card record or a featured card by id.
type CartAddBody struct {
	Card       *CardInput `json:"card" validate:"required_without=FeaturedID"`
	FeaturedID string     `json:"featured_id" validate:"required_without=Card"`
}

// CardInput accepts a card as rendered by this API, display block included.
type CardInput struct {
	cards.Card
	Display json.RawMessage `json:"display,omitempty"`
}

type CartQuantityBody struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// CartFetch renders the cart with totals for the current settings.
func CartFetch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := app.FromContext(r.Context())
		responses.WriteSuccess(w, newCartView(state.Cart.Quote(state.Settings.Snapshot())))
	}
}

func CartAddItem(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body CartAddBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state := app.FromContext(r.Context())

		var card cards.Card
		switch {
		case body.Card != nil:
			card = body.Card.Card
		default:
			found, ok := state.Featured.Get(cards.ID(body.FeaturedID))
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "featured card not found"))
				return
			}
			card = found
		}
		if card.ID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "card id is required").
				WithDetails(map[string]string{"card.id": "is required"}))
			return
		}

		state.Cart.Add(card)
		responses.WriteSuccessStatus(w, http.StatusCreated, newCartView(state.Cart.Quote(state.Settings.Snapshot())))
	}
}

// CartUpdateItem sets a line quantity; values below 1 are stored as 1.
func CartUpdateItem(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body CartQuantityBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state := app.FromContext(r.Context())
		if _, ok := state.Cart.SetQuantity(cards.ID(chi.URLParam(r, "cardId")), *body.Quantity); !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found"))
			return
		}

		responses.WriteSuccess(w, newCartView(state.Cart.Quote(state.Settings.Snapshot())))
	}
}

// CartRemoveItem is idempotent: removing an absent card still answers 200.
func CartRemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := app.FromContext(r.Context())
		state.Cart.Remove(cards.ID(chi.URLParam(r, "cardId")))
		responses.WriteSuccess(w, newCartView(state.Cart.Quote(state.Settings.Snapshot())))
	}
}

func CartClear() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := app.FromContext(r.Context())
		state.Cart.Clear()
		responses.WriteSuccess(w, newCartView(state.Cart.Quote(state.Settings.Snapshot())))
	}
}
