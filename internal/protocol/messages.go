// Package protocol defines the websocket wire format: the flat inbound
// command envelope, the outbound acknowledgement and broadcast messages, and
// schema validation for inbound payloads.
package protocol

import (
	"agentstead/server/internal/grid"
	"agentstead/server/internal/sim"
)

// Version tracks the wire-protocol revision expected by clients.
const Version = 1

// Client command type identifiers.
const (
	TypeSpawnAgent     = "spawnAgent"
	TypeDespawnAgent   = "despawnAgent"
	TypeSetDestination = "setDestination"
	TypeSetTask        = "setTask"
	TypeSetThinking    = "setThinking"
	TypeClearError     = "clearError"
	TypeSpawnHostile   = "spawnHostile"
	TypeAttack         = "attack"
	TypeEngageHostile  = "engageHostile"
	TypePlaceStructure = "placeStructure"
	TypeHeartbeat      = "heartbeat"
)

// Server message type identifiers.
const (
	TypeCommandAck    = "commandAck"
	TypeCommandReject = "commandReject"
	TypeState         = "state"
	TypeWorld         = "world"
)

// Position mirrors the simulation's world-space coordinates on the wire.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y,omitempty"`
	Z float64 `json:"z"`
}

// Command is the flat inbound envelope. Fields beyond Type are interpreted
// per command; unused fields are ignored. Tile coordinates are pointers so
// zero is distinguishable from absent.
type Command struct {
	Ver         int       `json:"ver,omitempty"`
	Type        string    `json:"type" jsonschema:"required,enum=spawnAgent,enum=despawnAgent,enum=setDestination,enum=setTask,enum=setThinking,enum=clearError,enum=spawnHostile,enum=attack,enum=engageHostile,enum=placeStructure,enum=heartbeat"`
	Seq         uint64    `json:"seq,omitempty"`
	AgentID     string    `json:"agentId,omitempty"`
	HostileID   string    `json:"hostileId,omitempty"`
	Name        string    `json:"name,omitempty"`
	ParentID    string    `json:"parentId,omitempty"`
	Task        string    `json:"task,omitempty"`
	Kind        string    `json:"kind,omitempty"`
	Cause       string    `json:"cause,omitempty"`
	Position    *Position `json:"position,omitempty"`
	Destination *Position `json:"destination,omitempty"`
	TileX       *int      `json:"tileX,omitempty"`
	TileZ       *int      `json:"tileZ,omitempty"`
	Terrain     string    `json:"terrain,omitempty"`
	Walkable    *bool     `json:"walkable,omitempty"`
	SentAt      int64     `json:"sentAt,omitempty"`
}

var knownCommandTypes = map[string]struct{}{
	TypeSpawnAgent:     {},
	TypeDespawnAgent:   {},
	TypeSetDestination: {},
	TypeSetTask:        {},
	TypeSetThinking:    {},
	TypeClearError:     {},
	TypeSpawnHostile:   {},
	TypeAttack:         {},
	TypeEngageHostile:  {},
	TypePlaceStructure: {},
	TypeHeartbeat:      {},
}

// KnownCommandType reports whether the type identifier names a command the
// server dispatches.
func KnownCommandType(commandType string) bool {
	_, ok := knownCommandTypes[commandType]
	return ok
}

// CommandAck confirms a processed command. EntityID carries the id assigned
// by spawn commands; Results carries combat outcomes.
type CommandAck struct {
	Ver      int                `json:"ver"`
	Type     string             `json:"type"`
	Seq      uint64             `json:"seq,omitempty"`
	Tick     uint64             `json:"tick"`
	EntityID string             `json:"entityId,omitempty"`
	Results  []sim.AttackResult `json:"results,omitempty"`
}

// CommandReject reports a command the server refused to process.
type CommandReject struct {
	Ver    int    `json:"ver"`
	Type   string `json:"type"`
	Seq    uint64 `json:"seq,omitempty"`
	Reason string `json:"reason"`
}

// StateMessage is the periodic entity broadcast.
type StateMessage struct {
	Ver   int          `json:"ver"`
	Type  string       `json:"type"`
	State sim.Snapshot `json:"state"`
}

// WorldMessage carries the terrain, sent once when a subscriber joins and
// after world regeneration.
type WorldMessage struct {
	Ver   int              `json:"ver"`
	Type  string           `json:"type"`
	World sim.GridSnapshot `json:"world"`
}

// HeartbeatMessage echoes client time so clients can estimate RTT.
type HeartbeatMessage struct {
	Ver        int    `json:"ver"`
	Type       string `json:"type"`
	ServerTime int64  `json:"serverTime"`
	ClientTime int64  `json:"clientTime"`
}

// NewStateMessage wraps a snapshot in the versioned envelope.
func NewStateMessage(snapshot sim.Snapshot) StateMessage {
	return StateMessage{Ver: Version, Type: TypeState, State: snapshot}
}

// NewWorldMessage wraps a grid snapshot in the versioned envelope.
func NewWorldMessage(world sim.GridSnapshot) WorldMessage {
	return WorldMessage{Ver: Version, Type: TypeWorld, World: world}
}

// TerrainKind maps a wire terrain string onto the grid's enum, defaulting to
// grass for unknown values.
func TerrainKind(name string) grid.TerrainKind {
	switch grid.TerrainKind(name) {
	case grid.TerrainGrass, grid.TerrainDirt, grid.TerrainStone, grid.TerrainWater, grid.TerrainPath:
		return grid.TerrainKind(name)
	default:
		return grid.TerrainGrass
	}
}
