package controllers

import (
	"net/http"

	"github.com/angelmondragon/cardfinderz/api/responses"
	"github.com/angelmondragon/cardfinderz/api/validators"
	"github.com/angelmondragon/cardfinderz/internal/app"
	"github.com/angelmondragon/cardfinderz/pkg/logger"
)

const maxQueryLength = 120

type SearchSubmitBody struct {
	Query string `json:"query" validate:"max=512"`
}

// SearchSubmit runs one search and answers with its outcome. Lookup failures
// come back as an empty result list with failed=true, never as an error.
func SearchSubmit(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body SearchSubmitBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state := app.FromContext(r.Context())
		ctrl := state.Search
		out := ctrl.Submit(r.Context(), validators.SanitizeString(body.Query, maxQueryLength))

		responses.WriteSuccess(w, newSearchOutcomeView(out, ctrl.Snapshot(), state.Settings.Snapshot()))
	}
}

func SearchState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctrl := app.FromContext(r.Context()).Search
		responses.WriteSuccess(w, newSearchStateView(ctrl.Snapshot()))
	}
}

func SearchClear() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctrl := app.FromContext(r.Context()).Search
		ctrl.Clear()
		responses.WriteSuccess(w, newSearchStateView(ctrl.Snapshot()))
	}
}
