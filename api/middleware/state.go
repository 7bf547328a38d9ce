package middleware

import (
	"net/http"

	"github.com/angelmondragon/cardfinderz/internal/app"
)

// State attaches the process-wide app state to every request.
func State(state *app.State) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(app.WithState(r.Context(), state)))
		})
	}
}
