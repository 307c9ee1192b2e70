package middleware

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// GetRequestIDFromContext returns the request ID assigned by the router
func GetRequestIDFromContext(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}
