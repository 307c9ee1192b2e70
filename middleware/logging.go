package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/thoufiq2326/NexusAI/internal/observability"
)

// RequestLogger logs every request once it completes and records it on metrics.
// Requests are labelled by route pattern, so path parameters do not explode
// the label space. metrics may be nil.
func RequestLogger(logger *zap.Logger, metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				elapsed := time.Since(start)

				route := r.URL.Path
				if rctx := chi.RouteContext(r.Context()); rctx != nil {
					if pattern := rctx.RoutePattern(); pattern != "" {
						route = pattern
					}
				}

				fields := []zap.Field{
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", status),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", elapsed),
					zap.String("request_id", GetRequestIDFromContext(r.Context())),
				}
				if status >= http.StatusInternalServerError {
					logger.Error("request completed", fields...)
				} else {
					logger.Info("request completed", fields...)
				}

				metrics.RecordHTTPRequest(r.Method, route, status, elapsed)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
