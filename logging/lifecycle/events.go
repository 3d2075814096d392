// Package lifecycle defines structured spawn/despawn/defeat events.
package lifecycle

import (
	"context"

	"agentstead/server/logging"
)

const (
	EventAgentSpawned    logging.EventType = "lifecycle.agent_spawned"
	EventAgentDespawned  logging.EventType = "lifecycle.agent_despawned"
	EventHostileSpawned  logging.EventType = "lifecycle.hostile_spawned"
	EventHostileDefeated logging.EventType = "lifecycle.hostile_defeated"
)

type AgentSpawnedPayload struct {
	Name     string `json:"name"`
	ParentID string `json:"parentId,omitempty"`
}

type HostileSpawnedPayload struct {
	Kind   string `json:"kind"`
	Cause  string `json:"cause,omitempty"`
	Target string `json:"target"`
}

type HostileDefeatedPayload struct {
	DefeatedBy string `json:"defeatedBy"`
	NewLevel   int    `json:"newLevel"`
}

func AgentSpawned(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload AgentSpawnedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventAgentSpawned,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
	})
}

func AgentDespawned(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventAgentDespawned,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
	})
}

func HostileSpawned(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload HostileSpawnedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventHostileSpawned,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
	})
}

func HostileDefeated(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload HostileDefeatedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventHostileDefeated,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
	})
}
