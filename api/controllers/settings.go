package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/cardfinderz/api/responses"
	"github.com/angelmondragon/cardfinderz/api/validators"
	"github.com/angelmondragon/cardfinderz/internal/app"
	"github.com/angelmondragon/cardfinderz/pkg/config"
	pkgerrors "github.com/angelmondragon/cardfinderz/pkg/errors"
	"github.com/angelmondragon/cardfinderz/pkg/logger"
)

type SettingsUpdateBody struct {
	Currency     *string          `json:"currency"`
	ExchangeRate *decimal.Decimal `json:"exchange_rate"`
}

func SettingsFetch(cfg config.SettingsConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := app.FromContext(r.Context())
		responses.WriteSuccess(w, newSettingsView(state.Settings.Snapshot(), cfg.MinRate, cfg.MaxRate))
	}
}

// SettingsUpdate applies a currency and/or rate change. Rates are clamped to
// the configured slider range before they reach the store.
func SettingsUpdate(cfg config.SettingsConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body SettingsUpdateBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if body.Currency == nil && body.ExchangeRate == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "currency or exchange_rate is required"))
			return
		}

		store := app.FromContext(r.Context()).Settings

		if body.Currency != nil {
			if _, err := store.SetCurrency(*body.Currency); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}
		if body.ExchangeRate != nil {
			rate := cfg.ClampRate(*body.ExchangeRate)
			if _, err := store.SetExchangeRate(rate); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		snap := store.Snapshot()
		if logg != nil {
			ctx := logg.WithFields(r.Context(), map[string]any{
				"currency":      snap.Currency.String(),
				"exchange_rate": snap.Rate.String(),
			})
			logg.Info(ctx, "settings.updated")
		}

		responses.WriteSuccess(w, newSettingsView(snap, cfg.MinRate, cfg.MaxRate))
	}
}
