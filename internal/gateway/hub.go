// Package gateway bridges websocket clients and the simulation engine. A hub
// owns the subscriber set, drives the engine from a frame loop, and fans out
// periodic state broadcasts.
package gateway

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"agentstead/server/internal/protocol"
	"agentstead/server/internal/sim"
)

// HubConfig tunes the frame and broadcast loops. Zero values fall back to
// defaults.
type HubConfig struct {
	FrameInterval     time.Duration
	BroadcastInterval time.Duration
	SendBuffer        int
	Logger            *log.Logger
}

func (cfg HubConfig) normalized() HubConfig {
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = 16 * time.Millisecond
	}
	if cfg.BroadcastInterval <= 0 {
		cfg.BroadcastInterval = 100 * time.Millisecond
	}
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = 32
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return cfg
}

// Hub fans simulation state out to websocket subscribers and feeds their
// commands into the engine.
type Hub struct {
	cfg       HubConfig
	engine    *sim.Engine
	validator *protocol.Validator
	logger    *log.Logger

	mu          sync.Mutex
	subscribers map[string]*subscriber
}

type subscriber struct {
	id   string
	conn *websocket.Conn

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func NewHub(engine *sim.Engine, validator *protocol.Validator, cfg HubConfig) *Hub {
	cfg = cfg.normalized()
	return &Hub{
		cfg:         cfg,
		engine:      engine,
		validator:   validator,
		logger:      cfg.Logger,
		subscribers: make(map[string]*subscriber),
	}
}

// Run drives the engine with measured frame deltas and broadcasts state at
// the configured cadence. It blocks until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	frame := time.NewTicker(h.cfg.FrameInterval)
	defer frame.Stop()
	broadcast := time.NewTicker(h.cfg.BroadcastInterval)
	defer broadcast.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-frame.C:
			h.engine.Advance(now.Sub(last).Seconds())
			last = now
		case <-broadcast.C:
			h.broadcastState()
		}
	}
}

func (h *Hub) broadcastState() {
	data, err := encodeJSON(protocol.NewStateMessage(h.engine.Snapshot()))
	if err != nil {
		h.logger.Printf("failed to encode state broadcast: %v", err)
		return
	}
	h.mu.Lock()
	subs := make([]*subscriber, 0, len(h.subscribers))
	for _, sub := range h.subscribers {
		subs = append(subs, sub)
	}
	h.mu.Unlock()
	for _, sub := range subs {
		// Slow consumers drop frames rather than stall the hub.
		sub.enqueue(data)
	}
}

// subscribe registers a new session and returns it with a fresh id. The
// caller owns the read loop; the hub owns the write pump.
func (h *Hub) subscribe(conn *websocket.Conn) *subscriber {
	sub := &subscriber{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, h.cfg.SendBuffer),
	}
	h.mu.Lock()
	h.subscribers[sub.id] = sub
	h.mu.Unlock()
	go sub.writePump(h)
	return sub
}

func (h *Hub) unsubscribe(sub *subscriber) {
	h.mu.Lock()
	delete(h.subscribers, sub.id)
	h.mu.Unlock()
	sub.close()
}

// SubscriberCount reports active sessions, for the health endpoint.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

func (s *subscriber) writePump(h *Hub) {
	for data := range s.send {
		if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.unsubscribe(s)
			return
		}
	}
}

// enqueue hands a payload to the write pump without blocking the caller.
// Payloads for a closed or backlogged session are dropped.
func (s *subscriber) enqueue(data []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.send <- data:
		return true
	default:
		return false
	}
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.send)
	if s.conn != nil {
		s.conn.Close()
	}
}
