package middleware

import (
	"fmt"
	"net/http"

	"github.com/angelmondragon/cardfinderz/api/responses"
	pkgerrors "github.com/angelmondragon/cardfinderz/pkg/errors"
	"github.com/angelmondragon/cardfinderz/pkg/logger"
)

// Recoverer turns handler panics into a 500 envelope. Typed panics, such as
// the invariant violation raised when app state is missing, keep their code.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				var err error
				if typed, ok := rec.(error); ok && pkgerrors.As(typed) != nil {
					err = typed
				} else {
					err = pkgerrors.Wrap(pkgerrors.CodeInternal, fmt.Errorf("panic: %v", rec), "panic")
				}

				ctx := r.Context()
				if logg != nil {
					ctx = logg.WithFields(ctx, map[string]any{"panic": fmt.Sprint(rec)})
					logg.Error(ctx, "panic.recovered", err)
				}
				responses.WriteError(ctx, nil, w, err)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
