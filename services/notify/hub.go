package notify

import (
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/thoufiq2326/NexusAI/models"
	"go.uber.org/zap"
)

// MessageType identifies the kind of push message
type MessageType string

const (
	MessageInit   MessageType = "init"
	MessageNewLog MessageType = "new_log"
	MessagePing   MessageType = "ping"
	MessageReset  MessageType = "reset"
)

// Message is one frame sent to live subscribers
type Message struct {
	Type MessageType       `json:"type"`
	Log  *models.LogEntry  `json:"log,omitempty"`
	Logs []models.LogEntry `json:"logs,omitempty"`
}

// MarshalJSON always emits the logs array on init frames, even when empty.
func (m Message) MarshalJSON() ([]byte, error) {
	if m.Type == MessageInit {
		logs := m.Logs
		if logs == nil {
			logs = []models.LogEntry{}
		}
		return json.Marshal(struct {
			Type MessageType       `json:"type"`
			Logs []models.LogEntry `json:"logs"`
		}{m.Type, logs})
	}
	type plain Message
	return json.Marshal(plain(m))
}

// NewLogMessage wraps a single log entry
func NewLogMessage(entry models.LogEntry) Message {
	return Message{Type: MessageNewLog, Log: &entry}
}

// InitMessage carries the full log snapshot sent on connect
func InitMessage(logs []models.LogEntry) Message {
	if logs == nil {
		logs = []models.LogEntry{}
	}
	return Message{Type: MessageInit, Logs: logs}
}

// Subscription is a live listener's delivery channel. C is closed when the
// subscriber is pruned, unsubscribed or the hub stops.
type Subscription struct {
	id uint64
	ch chan Message
	C  <-chan Message
}

// Config holds configuration for the Hub
type Config struct {
	BufferSize       int // Size of the publish queue
	SubscriberBuffer int // Per-subscriber delivery buffer
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		BufferSize:       1024,
		SubscriberBuffer: 64,
	}
}

// Hub fans published messages out to every live subscriber from a single
// background worker, so publishers never wait on subscriber health.
type Hub struct {
	logger   *zap.Logger
	config   Config
	msgChan  chan Message
	subs     map[uint64]*Subscription
	nextID   uint64
	wg       sync.WaitGroup
	mu       sync.Mutex
	started  bool
	stopped  bool
	dropped  atomic.Int64
	pruned   atomic.Int64
	sent     atomic.Int64
	onDrop   func()
	onPruned func()
}

// NewHub creates a new Hub instance
func NewHub(logger *zap.Logger, config Config) *Hub {
	if config.BufferSize <= 0 {
		config.BufferSize = DefaultConfig().BufferSize
	}
	if config.SubscriberBuffer <= 0 {
		config.SubscriberBuffer = DefaultConfig().SubscriberBuffer
	}
	return &Hub{
		logger:  logger,
		config:  config,
		msgChan: make(chan Message, config.BufferSize),
		subs:    make(map[uint64]*Subscription),
	}
}

// OnDrop registers callbacks for dropped publishes and pruned subscribers
func (h *Hub) OnDrop(dropped, pruned func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onDrop = dropped
	h.onPruned = pruned
}

// Start starts the background worker
func (h *Hub) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.started {
		return fmt.Errorf("notification hub already started")
	}

	h.wg.Add(1)
	go h.worker()

	h.started = true
	h.logger.Info("started notification hub",
		zap.Int("buffer_size", h.config.BufferSize),
		zap.Int("subscriber_buffer", h.config.SubscriberBuffer))

	return nil
}

// Stop drains pending messages and closes every subscription
func (h *Hub) Stop(timeout time.Duration) error {
	h.mu.Lock()
	if !h.started || h.stopped {
		h.mu.Unlock()
		return fmt.Errorf("notification hub not running")
	}
	h.stopped = true
	close(h.msgChan)
	h.mu.Unlock()

	h.logger.Info("stopping notification hub", zap.Int("pending_messages", len(h.msgChan)))

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	var err error
	select {
	case <-done:
		h.logger.Info("notification hub stopped gracefully")
	case <-time.After(timeout):
		err = fmt.Errorf("notification hub stop timeout after %v", timeout)
	}

	h.mu.Lock()
	for id := range h.subs {
		h.removeLocked(id)
	}
	h.mu.Unlock()

	return err
}

// Publish queues a message for delivery (non-blocking).
// A full queue drops the message.
func (h *Hub) Publish(msg Message) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.started || h.stopped {
		return fmt.Errorf("notification hub not running")
	}

	select {
	case h.msgChan <- msg:
		return nil
	default:
		h.dropped.Add(1)
		if h.onDrop != nil {
			h.onDrop()
		}
		h.logger.Warn("notification queue full, dropping message",
			zap.String("type", string(msg.Type)))
		return fmt.Errorf("notification buffer full")
	}
}

// PublishLog queues a new_log message for the entry
func (h *Hub) PublishLog(entry models.LogEntry) {
	if err := h.Publish(NewLogMessage(entry)); err != nil {
		h.logger.Debug("log entry not broadcast", zap.Error(err))
	}
}

// Subscribe registers a new listener
func (h *Hub) Subscribe() *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	ch := make(chan Message, h.config.SubscriberBuffer)
	sub := &Subscription{id: h.nextID, ch: ch, C: ch}
	if h.stopped {
		close(ch)
		return sub
	}
	h.subs[sub.id] = sub
	return sub
}

// Unsubscribe removes the listener and closes its channel. Safe to call more than once.
func (h *Hub) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(sub.id)
}

// SubscriberCount returns the number of live subscribers
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) removeLocked(id uint64) {
	if sub, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(sub.ch)
	}
}

// worker delivers queued messages to subscribers
func (h *Hub) worker() {
	defer h.wg.Done()

	h.logger.Debug("notification worker started")

	for msg := range h.msgChan {
		h.broadcast(msg)
	}

	h.logger.Debug("notification worker stopped")
}

// broadcast hands msg to every subscriber. Subscribers whose buffer is full
// are treated as dead and pruned.
func (h *Hub) broadcast(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, sub := range h.subs {
		select {
		case sub.ch <- msg:
			h.sent.Add(1)
		default:
			h.removeLocked(id)
			h.pruned.Add(1)
			if h.onPruned != nil {
				h.onPruned()
			}
			h.logger.Warn("pruned slow subscriber", zap.Uint64("subscriber_id", id))
		}
	}
}

// GetStats returns statistics about the hub
func (h *Hub) GetStats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()

	return Stats{
		BufferSize:      h.config.BufferSize,
		PendingMessages: len(h.msgChan),
		Subscribers:     len(h.subs),
		Delivered:       h.sent.Load(),
		Dropped:         h.dropped.Load(),
		Pruned:          h.pruned.Load(),
		Started:         h.started && !h.stopped,
	}
}

// Stats represents hub statistics
type Stats struct {
	BufferSize      int
	PendingMessages int
	Subscribers     int
	Delivered       int64
	Dropped         int64
	Pruned          int64
	Started         bool
}
