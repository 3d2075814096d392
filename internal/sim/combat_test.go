package sim

import (
	"testing"

	"agentstead/server/internal/entity"
)

func TestAttackDamageFormula(t *testing.T) {
	cases := []struct {
		level  int
		jitter float64
		want   int
	}{
		{0, -5, 5},
		{0, 0, 10},
		{0, 4.9, 15},
		{1, 0, 15},
		{2, -5, 15},
		{3, 4.9, 30},
	}
	for _, tc := range cases {
		if got := attackDamage(tc.level, tc.jitter); got != tc.want {
			t.Fatalf("attackDamage(%d, %.1f) = %d, want %d", tc.level, tc.jitter, got, tc.want)
		}
	}
}

func TestAttackDefeatsWeakHostile(t *testing.T) {
	e := newTestEngine(t, Config{WorldWidth: 10, WorldHeight: 10, Seed: 1})
	agentID := e.SpawnAgent("fighter", entity.Vec3{X: 5, Z: 5}, "")
	hostileID := e.SpawnHostile("glitch", entity.Vec3{X: 5.5, Z: 5.5}, "test", agentID)
	hostile, _ := e.store.Hostile(hostileID)
	hostile.Health = 1 // any level-0 roll (at least 5) finishes it

	result, ok := e.Attack(agentID, hostileID)
	if !ok {
		t.Fatalf("attack rejected")
	}
	if !result.Defeated {
		t.Fatalf("expected defeat, dealt %d", result.Damage)
	}
	if result.CounterDamage != 0 {
		t.Fatalf("defeated hostile should not counter, got %d", result.CounterDamage)
	}
	if e.store.HostileCount() != 0 {
		t.Fatalf("defeated hostile still present")
	}
	agent := mustAgent(t, e, agentID)
	if agent.Level != 1 {
		t.Fatalf("expected level 1 after a kill, got %d", agent.Level)
	}
	if agent.State != entity.StateCompleting {
		t.Fatalf("expected completing after a kill, got %q", agent.State)
	}
}

func TestAttackSurvivingHostileCounters(t *testing.T) {
	e := newTestEngine(t, Config{WorldWidth: 10, WorldHeight: 10, Seed: 1})
	agentID := e.SpawnAgent("fighter", entity.Vec3{X: 5, Z: 5}, "")
	hostileID := e.SpawnHostile("glitch", entity.Vec3{X: 5.5, Z: 5.5}, "test", agentID)
	hostile, _ := e.store.Hostile(hostileID)
	hostile.Health = 1000

	result, ok := e.Attack(agentID, hostileID)
	if !ok {
		t.Fatalf("attack rejected")
	}
	if result.Defeated {
		t.Fatalf("hostile with 1000 health cannot fall to one level-0 hit")
	}
	if result.Damage < 5 || result.Damage > 15 {
		t.Fatalf("level-0 damage %d outside [5, 15]", result.Damage)
	}
	if result.CounterDamage < 5 || result.CounterDamage > 14 {
		t.Fatalf("counter damage %d outside [5, 14]", result.CounterDamage)
	}
	agent := mustAgent(t, e, agentID)
	if agent.Health != agent.MaxHealth-result.CounterDamage {
		t.Fatalf("agent health %d does not reflect counter %d", agent.Health, result.CounterDamage)
	}
	if agent.State != entity.StateCombat {
		t.Fatalf("expected combat to persist, got %q", agent.State)
	}
	if result.AgentDown {
		t.Fatalf("healthy agent reported down")
	}
}

func TestAttackCounterDownsFragileAgent(t *testing.T) {
	e := newTestEngine(t, Config{WorldWidth: 10, WorldHeight: 10, Seed: 1})
	agentID := e.SpawnAgent("fighter", entity.Vec3{X: 5, Z: 5}, "")
	hostileID := e.SpawnHostile("glitch", entity.Vec3{X: 5.5, Z: 5.5}, "test", agentID)
	hostile, _ := e.store.Hostile(hostileID)
	hostile.Health = 1000
	mustAgent(t, e, agentID).Health = 3 // any counter (at least 5) downs it

	result, ok := e.Attack(agentID, hostileID)
	if !ok {
		t.Fatalf("attack rejected")
	}
	if !result.AgentDown {
		t.Fatalf("expected the counter to down the agent")
	}
	agent := mustAgent(t, e, agentID)
	if agent.Health != 0 {
		t.Fatalf("health should floor at zero, got %d", agent.Health)
	}
	if agent.State != entity.StateError {
		t.Fatalf("expected error state, got %q", agent.State)
	}
}

func TestAttackUnknownParties(t *testing.T) {
	e := newTestEngine(t, Config{WorldWidth: 10, WorldHeight: 10, Seed: 1})
	agentID := e.SpawnAgent("fighter", entity.Vec3{X: 5, Z: 5}, "")
	if _, ok := e.Attack(agentID, "hostile-99"); ok {
		t.Fatalf("attack against a missing hostile should be rejected")
	}
	if _, ok := e.Attack("agent-99", "hostile-99"); ok {
		t.Fatalf("attack by a missing agent should be rejected")
	}
}

func TestEngageHostileStopsOnKill(t *testing.T) {
	e := newTestEngine(t, Config{WorldWidth: 10, WorldHeight: 10, Seed: 1})
	agentID := e.SpawnAgent("fighter", entity.Vec3{X: 5, Z: 5}, "")
	hostileID := e.SpawnHostile("glitch", entity.Vec3{X: 5.5, Z: 5.5}, "test", agentID)
	hostile, _ := e.store.Hostile(hostileID)
	hostile.Health = 1

	results := e.EngageHostile(agentID, hostileID)
	if len(results) != 1 {
		t.Fatalf("expected one exchange, got %d", len(results))
	}
	if !results[0].Defeated {
		t.Fatalf("expected the first exchange to finish the hostile")
	}
}

func TestEngageHostileCapsExchanges(t *testing.T) {
	e := newTestEngine(t, Config{WorldWidth: 10, WorldHeight: 10, Seed: 1})
	agentID := e.SpawnAgent("fighter", entity.Vec3{X: 5, Z: 5}, "")
	hostileID := e.SpawnHostile("glitch", entity.Vec3{X: 5.5, Z: 5.5}, "test", agentID)
	hostile, _ := e.store.Hostile(hostileID)
	hostile.Health = 100000
	mustAgent(t, e, agentID).Health = 100000

	results := e.EngageHostile(agentID, hostileID)
	if len(results) != maxAutoResolveAttempts {
		t.Fatalf("expected %d exchanges, got %d", maxAutoResolveAttempts, len(results))
	}
	for i, result := range results {
		if result.Defeated || result.AgentDown {
			t.Fatalf("exchange %d ended a fight both sides should survive", i)
		}
	}
}
