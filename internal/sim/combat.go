package sim

import (
	"context"
	"math"

	"agentstead/server/internal/entity"
	combatlog "agentstead/server/logging/combat"
	lifecyclelog "agentstead/server/logging/lifecycle"
)

// AttackResult reports one agent-initiated exchange.
type AttackResult struct {
	Damage        int  `json:"damage"`
	CounterDamage int  `json:"counterDamage"`
	Defeated      bool `json:"defeated"`
	AgentDown     bool `json:"agentDown"`
}

// attackDamage is the agent's damage roll: a base of 10, plus 5 per level,
// plus a jitter in [-5, 5). The jitter is drawn before rounding so level 0
// agents deal 5 to 15.
func attackDamage(level int, jitter float64) int {
	return int(math.Round(10 + float64(level)*5 + jitter))
}

// proximityDamage is the hostile's roll, 5 to 14 from a [0,10) integer draw.
func proximityDamage(roll int) int {
	return 5 + roll
}

// Attack resolves a single exchange between an agent and a hostile. The
// attacker enters combat for the duration of the exchange; on a kill it moves
// to completing and gains a level, otherwise it takes a counterattack. The
// second return is false when either party is unknown.
func (e *Engine) Attack(agentID, hostileID string) (AttackResult, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.attackLocked(agentID, hostileID)
}

func (e *Engine) attackLocked(agentID, hostileID string) (AttackResult, bool) {
	agent, ok := e.store.Agent(agentID)
	if !ok {
		return AttackResult{}, false
	}
	hostile, ok := e.store.Hostile(hostileID)
	if !ok {
		return AttackResult{}, false
	}

	agent.SetState(entity.StateCombat)

	jitter := e.rng.Float64()*10 - 5
	result := AttackResult{Damage: attackDamage(agent.Level, jitter)}
	hostile.Health -= result.Damage
	if hostile.Health <= 0 {
		hostile.Health = 0
		result.Defeated = true
		e.store.RemoveHostile(hostile.ID)
		agent.Level++
		agent.SetState(entity.StateCompleting)
		lifecyclelog.HostileDefeated(context.Background(), e.publisher, e.tick, hostileRef(hostile.ID), lifecyclelog.HostileDefeatedPayload{
			DefeatedBy: agent.ID,
			NewLevel:   agent.Level,
		})
	} else {
		result.CounterDamage = proximityDamage(e.rng.Intn(10))
		e.damageAgent(agent, result.CounterDamage)
		result.AgentDown = agent.State == entity.StateError
	}

	combatlog.AttackResolved(context.Background(), e.publisher, e.tick, agentRef(agent.ID), hostileRef(hostile.ID), combatlog.AttackResolvedPayload{
		Damage:        result.Damage,
		CounterDamage: result.CounterDamage,
		Defeated:      result.Defeated,
		HostileHealth: hostile.Health,
		AgentHealth:   agent.Health,
	})
	return result, true
}

// EngageHostile resolves up to three exchanges against the same hostile,
// stopping early on a kill or when the agent goes down. Callers that want a
// fight to the finish issue the command again.
func (e *Engine) EngageHostile(agentID, hostileID string) []AttackResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	var results []AttackResult
	for i := 0; i < maxAutoResolveAttempts; i++ {
		result, ok := e.attackLocked(agentID, hostileID)
		if !ok {
			break
		}
		results = append(results, result)
		if result.Defeated || result.AgentDown {
			break
		}
	}
	return results
}
