package gateway

import (
	"agentstead/server/internal/entity"
	"agentstead/server/internal/protocol"
	"agentstead/server/internal/sim"
)

// dispatchResult carries the outcome of one command. An empty Reason means
// the command was accepted.
type dispatchResult struct {
	Reason   string
	EntityID string
	Results  []sim.AttackResult
}

func rejected(reason string) dispatchResult {
	return dispatchResult{Reason: reason}
}

// dispatch routes a decoded command to the engine. Validation already
// guaranteed shape; this layer checks per-command required fields and actor
// existence.
func (h *Hub) dispatch(cmd protocol.Command) dispatchResult {
	switch cmd.Type {
	case protocol.TypeSpawnAgent:
		if cmd.Name == "" || cmd.Position == nil {
			return rejected(protocol.RejectMissingField)
		}
		id := h.engine.SpawnAgent(cmd.Name, toVec3(cmd.Position), cmd.ParentID)
		return dispatchResult{EntityID: id}

	case protocol.TypeDespawnAgent:
		if cmd.AgentID == "" {
			return rejected(protocol.RejectMissingField)
		}
		if !h.engine.DespawnAgent(cmd.AgentID) {
			return rejected(protocol.RejectUnknownActor)
		}
		return dispatchResult{}

	case protocol.TypeSetDestination:
		if cmd.AgentID == "" || cmd.Destination == nil {
			return rejected(protocol.RejectMissingField)
		}
		if !h.engine.SetAgentDestination(cmd.AgentID, toVec3(cmd.Destination)) {
			return rejected(protocol.RejectUnknownActor)
		}
		return dispatchResult{}

	case protocol.TypeSetTask:
		if cmd.AgentID == "" {
			return rejected(protocol.RejectMissingField)
		}
		if !h.engine.SetAgentTask(cmd.AgentID, cmd.Task) {
			return rejected(protocol.RejectUnknownActor)
		}
		return dispatchResult{}

	case protocol.TypeSetThinking:
		if cmd.AgentID == "" {
			return rejected(protocol.RejectMissingField)
		}
		if !h.engine.SetAgentThinking(cmd.AgentID) {
			return rejected(protocol.RejectInvalidState)
		}
		return dispatchResult{}

	case protocol.TypeClearError:
		if cmd.AgentID == "" {
			return rejected(protocol.RejectMissingField)
		}
		if !h.engine.ClearAgentError(cmd.AgentID) {
			return rejected(protocol.RejectInvalidState)
		}
		return dispatchResult{}

	case protocol.TypeSpawnHostile:
		if cmd.Kind == "" || cmd.Position == nil || cmd.AgentID == "" {
			return rejected(protocol.RejectMissingField)
		}
		id := h.engine.SpawnHostile(cmd.Kind, toVec3(cmd.Position), cmd.Cause, cmd.AgentID)
		return dispatchResult{EntityID: id}

	case protocol.TypeAttack:
		if cmd.AgentID == "" || cmd.HostileID == "" {
			return rejected(protocol.RejectMissingField)
		}
		result, ok := h.engine.Attack(cmd.AgentID, cmd.HostileID)
		if !ok {
			return rejected(protocol.RejectUnknownActor)
		}
		return dispatchResult{Results: []sim.AttackResult{result}}

	case protocol.TypeEngageHostile:
		if cmd.AgentID == "" || cmd.HostileID == "" {
			return rejected(protocol.RejectMissingField)
		}
		results := h.engine.EngageHostile(cmd.AgentID, cmd.HostileID)
		if len(results) == 0 {
			return rejected(protocol.RejectUnknownActor)
		}
		return dispatchResult{Results: results}

	case protocol.TypePlaceStructure:
		if cmd.TileX == nil || cmd.TileZ == nil || cmd.Walkable == nil {
			return rejected(protocol.RejectMissingField)
		}
		if !h.engine.PlaceStructure(*cmd.TileX, *cmd.TileZ, protocol.TerrainKind(cmd.Terrain), *cmd.Walkable) {
			return rejected(protocol.RejectUnknownTile)
		}
		return dispatchResult{}

	default:
		return rejected(protocol.RejectUnknownType)
	}
}

func toVec3(p *protocol.Position) entity.Vec3 {
	return entity.Vec3{X: p.X, Y: p.Y, Z: p.Z}
}
