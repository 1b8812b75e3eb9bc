package problemdetails

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// MiddlewareFunc defines a function type for HTTP middleware. A
// MiddlewareFunc takes a http.Handler as input and returns a new
// http.Handler that wraps the original handler with additional logic.
type MiddlewareFunc func(next http.Handler) http.Handler

// NewPanicRecoveryMiddleware creates a MiddlewareFunc that recovers from
// panics within handlers. It logs the panic using the provided logger and
// writes a 500 problem details response with the given codec. It is
// important to note that any data written to the ResponseWriter before the
// panic will be sent to the client.
func NewPanicRecoveryMiddleware(logger *slog.Logger, codec Codec) MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func(ctx context.Context) {
				if err := recover(); err != nil {
					if writeErr := WriteResponse(w, codec, ServerError(r)); writeErr != nil {
						logger.ErrorContext(ctx, "Panic recovery failed to write problem details response", slog.Any("error", writeErr))
					}

					logger.ErrorContext(
						ctx,
						"Handler panicked",
						slog.Any("error", err),
						slog.String("stack", string(debug.Stack())),
					)
				}
			}(r.Context())

			next.ServeHTTP(w, r)
		})
	}
}
