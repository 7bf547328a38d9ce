package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/cardfinderz/api/responses"
	"github.com/angelmondragon/cardfinderz/pkg/config"
	pkgerrors "github.com/angelmondragon/cardfinderz/pkg/errors"
	"github.com/angelmondragon/cardfinderz/pkg/logger"
	"github.com/angelmondragon/cardfinderz/pkg/redis"
)

const healthPingTimeout = 2 * time.Second

// Healthz reports liveness and, when redis is configured, its reachability.
// A nil pinger means redis is disabled.
func Healthz(cfg *config.Config, logg *logger.Logger, redisPinger redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-CardFinderz-Env", cfg.App.Env)

		payload := map[string]string{"status": "ok", "redis": "disabled"}
		if redisPinger != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
			defer cancel()
			if err := redisPinger.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
			payload["redis"] = "ok"
		}

		responses.WriteSuccess(w, payload)
	}
}
