package gateway

import (
	"testing"

	"agentstead/server/internal/protocol"
	"agentstead/server/internal/sim"
)

func testHub(t *testing.T) *Hub {
	t.Helper()
	engine := sim.NewEngine(sim.Config{WorldWidth: 10, WorldHeight: 10, Seed: 1}, nil)
	return NewHub(engine, nil, HubConfig{})
}

func pos(x, z float64) *protocol.Position {
	return &protocol.Position{X: x, Z: z}
}

func TestDispatchSpawnAndDespawn(t *testing.T) {
	hub := testHub(t)

	result := hub.dispatch(protocol.Command{Type: protocol.TypeSpawnAgent, Name: "scout", Position: pos(1.5, 1.5)})
	if result.Reason != "" {
		t.Fatalf("spawn rejected: %s", result.Reason)
	}
	if result.EntityID == "" {
		t.Fatalf("spawn ack missing entity id")
	}

	if r := hub.dispatch(protocol.Command{Type: protocol.TypeDespawnAgent, AgentID: result.EntityID}); r.Reason != "" {
		t.Fatalf("despawn rejected: %s", r.Reason)
	}
	if r := hub.dispatch(protocol.Command{Type: protocol.TypeDespawnAgent, AgentID: result.EntityID}); r.Reason != protocol.RejectUnknownActor {
		t.Fatalf("second despawn should name an unknown actor, got %q", r.Reason)
	}
}

func TestDispatchRejectsMissingFields(t *testing.T) {
	hub := testHub(t)
	cases := []protocol.Command{
		{Type: protocol.TypeSpawnAgent},
		{Type: protocol.TypeSetDestination, AgentID: "agent-1"},
		{Type: protocol.TypeSetTask},
		{Type: protocol.TypeAttack, AgentID: "agent-1"},
		{Type: protocol.TypePlaceStructure},
	}
	for _, cmd := range cases {
		if r := hub.dispatch(cmd); r.Reason != protocol.RejectMissingField {
			t.Fatalf("%s: expected missing-field reject, got %q", cmd.Type, r.Reason)
		}
	}
}

func TestDispatchMovementAndTask(t *testing.T) {
	hub := testHub(t)
	id := hub.dispatch(protocol.Command{Type: protocol.TypeSpawnAgent, Name: "scout", Position: pos(1.5, 1.5)}).EntityID

	if r := hub.dispatch(protocol.Command{Type: protocol.TypeSetTask, AgentID: id, Task: "gather-wood"}); r.Reason != "" {
		t.Fatalf("set task rejected: %s", r.Reason)
	}
	if r := hub.dispatch(protocol.Command{Type: protocol.TypeSetDestination, AgentID: id, Destination: pos(8.5, 8.5)}); r.Reason != "" {
		t.Fatalf("set destination rejected: %s", r.Reason)
	}
	if r := hub.dispatch(protocol.Command{Type: protocol.TypeSetDestination, AgentID: "agent-99", Destination: pos(8.5, 8.5)}); r.Reason != protocol.RejectUnknownActor {
		t.Fatalf("expected unknown actor, got %q", r.Reason)
	}
	// Thinking is rejected mid-movement.
	if r := hub.dispatch(protocol.Command{Type: protocol.TypeSetThinking, AgentID: id}); r.Reason != protocol.RejectInvalidState {
		t.Fatalf("expected invalid state, got %q", r.Reason)
	}
}

func TestDispatchCombatFlow(t *testing.T) {
	hub := testHub(t)
	agentID := hub.dispatch(protocol.Command{Type: protocol.TypeSpawnAgent, Name: "fighter", Position: pos(5.5, 5.5)}).EntityID

	spawn := hub.dispatch(protocol.Command{
		Type:     protocol.TypeSpawnHostile,
		Kind:     "glitch",
		Cause:    "corrupted-task",
		Position: pos(5.6, 5.6),
		AgentID:  agentID,
	})
	if spawn.Reason != "" || spawn.EntityID == "" {
		t.Fatalf("hostile spawn failed: %+v", spawn)
	}

	attack := hub.dispatch(protocol.Command{Type: protocol.TypeAttack, AgentID: agentID, HostileID: spawn.EntityID})
	if attack.Reason != "" {
		t.Fatalf("attack rejected: %s", attack.Reason)
	}
	if len(attack.Results) != 1 {
		t.Fatalf("expected one exchange, got %d", len(attack.Results))
	}
	if attack.Results[0].Damage < 5 || attack.Results[0].Damage > 15 {
		t.Fatalf("level-0 damage %d outside [5, 15]", attack.Results[0].Damage)
	}

	engage := hub.dispatch(protocol.Command{Type: protocol.TypeEngageHostile, AgentID: agentID, HostileID: "hostile-99"})
	if engage.Reason != protocol.RejectUnknownActor {
		t.Fatalf("expected unknown actor for missing hostile, got %q", engage.Reason)
	}
}

func TestDispatchPlaceStructure(t *testing.T) {
	hub := testHub(t)
	x, z := 3, 4
	walkable := false
	cmd := protocol.Command{
		Type:     protocol.TypePlaceStructure,
		TileX:    &x,
		TileZ:    &z,
		Terrain:  "water",
		Walkable: &walkable,
	}
	if r := hub.dispatch(cmd); r.Reason != "" {
		t.Fatalf("place rejected: %s", r.Reason)
	}

	oob := 99
	cmd.TileX = &oob
	if r := hub.dispatch(cmd); r.Reason != protocol.RejectUnknownTile {
		t.Fatalf("expected unknown tile, got %q", r.Reason)
	}
}

func TestDispatchUnknownType(t *testing.T) {
	hub := testHub(t)
	if r := hub.dispatch(protocol.Command{Type: "warp"}); r.Reason != protocol.RejectUnknownType {
		t.Fatalf("expected unknown command reject, got %q", r.Reason)
	}
}
