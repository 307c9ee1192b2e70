package handlers

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/thoufiq2326/NexusAI/internal/observability"
	"github.com/thoufiq2326/NexusAI/models"
	"github.com/thoufiq2326/NexusAI/services/notify"
)

// LogFeed returns the current operator feed
type LogFeed interface {
	Logs(limit int) []models.LogEntry
}

// Subscriber registers live listeners
type Subscriber interface {
	Subscribe() *notify.Subscription
	Unsubscribe(sub *notify.Subscription)
	SubscriberCount() int
}

// LogStreamConfig holds push channel settings
type LogStreamConfig struct {
	KeepaliveInterval time.Duration
	WriteTimeout      time.Duration
	// OriginPatterns are host patterns allowed to open cross-origin connections
	OriginPatterns []string
}

// LogStreamHandler pushes the operator feed over WebSocket
type LogStreamHandler struct {
	feed    LogFeed
	hub     Subscriber
	config  LogStreamConfig
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewLogStreamHandler creates a new LogStreamHandler. metrics may be nil.
func NewLogStreamHandler(feed LogFeed, hub Subscriber, config LogStreamConfig, metrics *observability.Metrics, logger *zap.Logger) *LogStreamHandler {
	if config.KeepaliveInterval <= 0 {
		config.KeepaliveInterval = 15 * time.Second
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = 5 * time.Second
	}
	return &LogStreamHandler{
		feed:    feed,
		hub:     hub,
		config:  config,
		metrics: metrics,
		logger:  logger,
	}
}

// HandleLogs handles GET /ws/logs
// Sends the full feed on connect, then every new entry and a periodic ping
func (h *LogStreamHandler) HandleLogs(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.config.OriginPatterns,
	})
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close(websocket.StatusInternalError, "")

	// subscribe before the snapshot so no entry falls between the two
	sub := h.hub.Subscribe()
	h.metrics.SetSubscribers(h.hub.SubscriberCount())
	defer func() {
		h.hub.Unsubscribe(sub)
		h.metrics.SetSubscribers(h.hub.SubscriberCount())
	}()

	// the client never sends; CloseRead handles control frames and cancels ctx on disconnect
	ctx := conn.CloseRead(r.Context())

	if err := h.send(ctx, conn, notify.InitMessage(h.feed.Logs(0))); err != nil {
		h.logger.Debug("failed to send initial feed", zap.Error(err))
		return
	}

	ticker := time.NewTicker(h.config.KeepaliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case msg, ok := <-sub.C:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "feed closed")
				return
			}
			if err := h.send(ctx, conn, msg); err != nil {
				h.logger.Debug("subscriber write failed", zap.Error(err))
				return
			}

		case <-ticker.C:
			if err := h.send(ctx, conn, notify.Message{Type: notify.MessagePing}); err != nil {
				h.logger.Debug("keepalive failed", zap.Error(err))
				return
			}
		}
	}
}

func (h *LogStreamHandler) send(ctx context.Context, conn *websocket.Conn, msg notify.Message) error {
	ctx, cancel := context.WithTimeout(ctx, h.config.WriteTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, msg)
}

// OriginPatterns converts allowed origins such as "http://localhost:5173"
// into the host patterns the WebSocket handshake matches against
func OriginPatterns(origins []string) []string {
	patterns := make([]string, 0, len(origins))
	for _, o := range origins {
		if o == "*" {
			patterns = append(patterns, "*")
			continue
		}
		u, err := url.Parse(o)
		if err != nil || u.Host == "" {
			patterns = append(patterns, o)
			continue
		}
		patterns = append(patterns, u.Host)
	}
	return patterns
}
