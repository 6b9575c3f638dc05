package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/persona/persona-api/internal/pkg/logger"
	"github.com/persona/persona-api/internal/pkg/response"
)

// Recover turns a handler panic into a 500 envelope.
// http.ErrAbortHandler is re-raised so the server aborts the connection.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			err, ok := rec.(error)
			if !ok {
				err = fmt.Errorf("%v", rec)
			}
			logger.FromContext(r.Context()).Error().
				Err(err).
				Bytes("stack", debug.Stack()).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("Panic recovered")

			response.InternalError(w)
		}()

		next.ServeHTTP(w, r)
	})
}
