package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/thoufiq2326/NexusAI/models"
	"github.com/thoufiq2326/NexusAI/utils"
)

// LogWriter appends operator-visible log lines
type LogWriter interface {
	Log(agent, message string, severity models.Severity) models.LogEntry
}

// Recoverer turns a panic in a handler into a 500 JSON response. The panic is
// logged through zap and surfaced on the operator feed as a SYSTEM error.
func Recoverer(feed LogWriter, logger *zap.Logger) func(http.Handler) http.Handler {
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

				msg := fmt.Sprint(rec)
				logger.Error("panic recovered",
					zap.String("path", r.URL.Path),
					zap.String("request_id", GetRequestIDFromContext(r.Context())),
					zap.String("panic", msg),
					zap.ByteString("stack", debug.Stack()),
				)

				if feed != nil {
					feed.Log(models.AgentSystem,
						fmt.Sprintf("Server error on %s: %s", r.URL.Path, truncate(msg, 80)),
						models.SeverityError)
				}

				_ = utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse{
					Error:   "internal_error",
					Message: truncate(msg, 100),
					Detail:  "Internal server error",
				})
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
