// Package combat defines structured events for damage exchanges.
package combat

import (
	"context"

	"agentstead/server/logging"
)

const (
	// EventAttackResolved is emitted for each agent-initiated exchange.
	EventAttackResolved logging.EventType = "combat.attack_resolved"
	// EventProximityHit is emitted when a hostile in range damages its target.
	EventProximityHit logging.EventType = "combat.proximity_hit"
	// EventAgentDowned is emitted when an agent's health reaches zero.
	EventAgentDowned logging.EventType = "combat.agent_downed"
)

type AttackResolvedPayload struct {
	Damage        int  `json:"damage"`
	CounterDamage int  `json:"counterDamage"`
	Defeated      bool `json:"defeated"`
	HostileHealth int  `json:"hostileHealth"`
	AgentHealth   int  `json:"agentHealth"`
}

type ProximityHitPayload struct {
	Damage      int     `json:"damage"`
	Distance    float64 `json:"distance"`
	AgentHealth int     `json:"agentHealth"`
}

func AttackResolved(ctx context.Context, pub logging.Publisher, tick uint64, actor, target logging.EntityRef, payload AttackResolvedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventAttackResolved,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}

func ProximityHit(ctx context.Context, pub logging.Publisher, tick uint64, actor, target logging.EntityRef, payload ProximityHitPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventProximityHit,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityDebug,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}

func AgentDowned(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventAgentDowned,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityWarn,
		Category: logging.CategoryCombat,
	})
}
