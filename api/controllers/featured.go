package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/cardfinderz/api/responses"
	"github.com/angelmondragon/cardfinderz/api/validators"
	"github.com/angelmondragon/cardfinderz/internal/app"
	"github.com/angelmondragon/cardfinderz/internal/cards"
	pkgerrors "github.com/angelmondragon/cardfinderz/pkg/errors"
	"github.com/angelmondragon/cardfinderz/pkg/logger"
)

// FeaturedList returns the home view cards, optionally capped by ?limit=.
func FeaturedList(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := app.FromContext(r.Context())
		items := state.Featured.List()

		limit, err := validators.ParseQueryInt(r, "limit", len(items), 1, max(len(items), 1))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if limit < len(items) {
			items = items[:limit]
		}

		responses.WriteSuccess(w, newCardViews(items))
	}
}

func FeaturedDetail(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := app.FromContext(r.Context())

		id := cards.ID(chi.URLParam(r, "cardId"))
		card, ok := state.Featured.Get(id)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "featured card not found"))
			return
		}

		responses.WriteSuccess(w, newCardView(card).withConversion(state.Settings.Snapshot()))
	}
}
