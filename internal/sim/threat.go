package sim

import (
	"context"
	"math"

	"agentstead/server/internal/entity"
	combatlog "agentstead/server/logging/combat"
)

// stepThreats moves every hostile toward its target and applies proximity
// damage when in range. There is no attack cooldown: a hostile standing next
// to its target lands a hit every step, which is why hostile damage rolls are
// small relative to the tick rate.
func (e *Engine) stepThreats(dt float64) {
	for _, id := range e.store.HostileIDs() {
		hostile, ok := e.store.Hostile(id)
		if !ok {
			continue
		}
		target, ok := e.store.Agent(hostile.TargetAgentID)
		if !ok {
			continue
		}

		dx := target.Position.X - hostile.Position.X
		dz := target.Position.Z - hostile.Position.Z
		dist := math.Hypot(dx, dz)
		if dist > 0 {
			step := math.Min(hostileSpeed*dt, dist)
			hostile.Position.X += dx / dist * step
			hostile.Position.Z += dz / dist * step
			hostile.Position = e.clampToBounds(hostile.Position)
			dist = planarDistance(hostile.Position, target.Position)
		}
		if dist >= attackRange {
			continue
		}

		damage := proximityDamage(e.rng.Intn(10))
		e.damageAgent(target, damage)
		combatlog.ProximityHit(context.Background(), e.publisher, e.tick, hostileRef(hostile.ID), agentRef(target.ID), combatlog.ProximityHitPayload{
			Damage:      damage,
			Distance:    dist,
			AgentHealth: target.Health,
		})
	}
}

// damageAgent floors health at zero and downs the agent when it gets there.
func (e *Engine) damageAgent(agent *entity.Agent, damage int) {
	agent.Health -= damage
	if agent.Health > 0 {
		return
	}
	agent.Health = 0
	if agent.State != entity.StateError {
		agent.ClearDestination()
		agent.SetState(entity.StateError)
		combatlog.AgentDowned(context.Background(), e.publisher, e.tick, agentRef(agent.ID))
	}
}
