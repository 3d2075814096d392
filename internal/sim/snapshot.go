package sim

import (
	"agentstead/server/internal/entity"
	"agentstead/server/internal/grid"
)

// Snapshot is a deep copy of entity state at a tick boundary, safe to encode
// off the engine lock.
type Snapshot struct {
	Tick     uint64               `json:"tick"`
	Agents   []entity.AgentView   `json:"agents"`
	Hostiles []entity.HostileView `json:"hostiles"`
}

// GridSnapshot carries the full terrain, sent once per subscriber rather than
// per broadcast.
type GridSnapshot struct {
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Tiles  []grid.Tile `json:"tiles"`
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{
		Tick:     e.tick,
		Agents:   e.store.SnapshotAgents(),
		Hostiles: e.store.SnapshotHostiles(),
	}
}

func (e *Engine) GridSnapshot() GridSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return GridSnapshot{
		Width:  e.grid.Width(),
		Height: e.grid.Height(),
		Tiles:  e.grid.Tiles(),
	}
}
