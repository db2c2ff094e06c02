package middleware

import (
	"net/http"
	"runtime/debug"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/philly/quillpost/internal/platform/logger"
)

// Recoverer turns a handler panic into a logged 500 with a JSON body.
// http.ErrAbortHandler is re-panicked so net/http can abort the connection.
// If the handler already started its response, the panic is only logged.
func Recoverer(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				log.Error(r.Context(), "panic while serving request",
					"panic", rvr,
					"method", r.Method,
					"path", r.URL.Path,
					"status_written", ww.Status(),
					"stack", string(debug.Stack()),
				)
				if ww.Status() == 0 {
					WriteJSONError(ww, MessageInternalError, http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
