package gateway

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"agentstead/server/internal/protocol"
)

// Handler upgrades websocket requests and runs the per-session read loop.
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.hub.logger.Printf("websocket upgrade failed: %v", err)
		return
	}

	sub := h.hub.subscribe(conn)
	defer h.hub.unsubscribe(sub)

	// New sessions get the terrain once, then the current entity state;
	// afterwards they ride the periodic broadcast.
	if !h.sendJSON(sub, protocol.NewWorldMessage(h.hub.engine.GridSnapshot())) {
		return
	}
	if !h.sendJSON(sub, protocol.NewStateMessage(h.hub.engine.Snapshot())) {
		return
	}

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}
		h.handleCommand(sub, payload)
	}
}

func (h *Handler) handleCommand(sub *subscriber, payload []byte) {
	if err := h.hub.validator.Validate(payload); err != nil {
		h.hub.logger.Printf("rejecting command from %s: %v", sub.id, err)
		h.sendReject(sub, 0, protocol.RejectSchema)
		return
	}
	cmd, err := protocol.DecodeCommand(payload)
	if err != nil {
		h.sendReject(sub, 0, protocol.RejectMalformed)
		return
	}

	if cmd.Type == protocol.TypeHeartbeat {
		h.sendJSON(sub, protocol.HeartbeatMessage{
			Ver:        protocol.Version,
			Type:       protocol.TypeHeartbeat,
			ServerTime: time.Now().UnixMilli(),
			ClientTime: cmd.SentAt,
		})
		return
	}

	result := h.hub.dispatch(cmd)
	if result.Reason != "" {
		h.sendReject(sub, cmd.Seq, result.Reason)
		return
	}
	h.sendJSON(sub, protocol.CommandAck{
		Ver:      protocol.Version,
		Type:     protocol.TypeCommandAck,
		Seq:      cmd.Seq,
		Tick:     h.hub.engine.Tick(),
		EntityID: result.EntityID,
		Results:  result.Results,
	})

	// World edits invalidate the terrain snapshot clients joined with.
	if cmd.Type == protocol.TypePlaceStructure {
		h.sendJSON(sub, protocol.NewWorldMessage(h.hub.engine.GridSnapshot()))
	}
}

func (h *Handler) sendReject(sub *subscriber, seq uint64, reason string) {
	h.sendJSON(sub, protocol.CommandReject{
		Ver:    protocol.Version,
		Type:   protocol.TypeCommandReject,
		Seq:    seq,
		Reason: reason,
	})
}

func (h *Handler) sendJSON(sub *subscriber, message any) bool {
	data, err := encodeJSON(message)
	if err != nil {
		h.hub.logger.Printf("failed to encode message for %s: %v", sub.id, err)
		return true
	}
	return sub.enqueue(data)
}

func encodeJSON(message any) ([]byte, error) {
	return json.Marshal(message)
}
