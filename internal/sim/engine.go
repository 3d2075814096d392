// Package sim runs the deterministic fixed-step simulation: movement along
// planned routes, the behavior state machine, hostile pursuit, and combat
// resolution. All mutation goes through the Engine's command surface; systems
// never touch entities outside a held engine lock.
package sim

import (
	"context"
	"math"
	"math/rand"
	"sync"

	"agentstead/server/internal/entity"
	"agentstead/server/internal/grid"
	"agentstead/server/logging"
	lifecyclelog "agentstead/server/logging/lifecycle"
	simlog "agentstead/server/logging/simulation"
)

// Config carries the knobs the engine needs at construction. Zero values fall
// back to defaults so tests can specify only what they care about.
type Config struct {
	TickRate        int
	CatchUpMaxSteps int
	WorldWidth      int
	WorldHeight     int
	Seed            int64
}

func (cfg Config) normalized() Config {
	if cfg.TickRate <= 0 {
		cfg.TickRate = defaultTickRate
	}
	if cfg.CatchUpMaxSteps <= 0 {
		cfg.CatchUpMaxSteps = defaultCatchUpMaxSteps
	}
	if cfg.WorldWidth <= 0 {
		cfg.WorldWidth = defaultWorldWidth
	}
	if cfg.WorldHeight <= 0 {
		cfg.WorldHeight = defaultWorldHeight
	}
	return cfg
}

// Engine owns the world grid, the entity store, and the tick accumulator.
// Every exported method takes the engine lock; Advance holds it for the whole
// batch of catch-up steps so commands observe tick boundaries only.
type Engine struct {
	mu        sync.Mutex
	cfg       Config
	grid      *grid.Grid
	store     *entity.Store
	rng       *rand.Rand
	publisher logging.Publisher
	clock     logging.Clock

	tick          uint64
	accumulatorMS float64
	stats         SchedulerStats
}

func NewEngine(cfg Config, publisher logging.Publisher) *Engine {
	cfg = cfg.normalized()
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	e := &Engine{
		cfg:       cfg,
		store:     entity.NewStore(),
		rng:       rand.New(rand.NewSource(cfg.Seed)),
		publisher: publisher,
		clock:     logging.SystemClock{},
	}
	e.initializeWorldLocked(cfg.WorldWidth, cfg.WorldHeight, cfg.Seed)
	return e
}

// InitializeWorld regenerates the terrain. Existing entities survive but are
// clamped into the new bounds; in-flight routes are invalidated because the
// tiles under them may have changed.
func (e *Engine) InitializeWorld(width, height int, seed int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.initializeWorldLocked(width, height, seed)
}

func (e *Engine) initializeWorldLocked(width, height int, seed int64) {
	if width <= 0 {
		width = e.cfg.WorldWidth
	}
	if height <= 0 {
		height = e.cfg.WorldHeight
	}
	e.grid = grid.Generate(width, height, seed)
	for _, id := range e.store.AgentIDs() {
		agent, ok := e.store.Agent(id)
		if !ok {
			continue
		}
		agent.Position = e.clampToBounds(agent.Position)
		agent.Path = nil
		agent.PathCursor = 0
		agent.PathDegraded = false
		if agent.Destination != nil {
			clamped := e.clampToBounds(*agent.Destination)
			agent.Destination = &clamped
		}
	}
	for _, id := range e.store.HostileIDs() {
		hostile, ok := e.store.Hostile(id)
		if !ok {
			continue
		}
		hostile.Position = e.clampToBounds(hostile.Position)
	}
	simlog.WorldInitialized(context.Background(), e.publisher, e.tick, simlog.WorldInitializedPayload{
		Width:  width,
		Height: height,
		Seed:   seed,
	})
}

// SpawnAgent creates an agent at the given position and returns its id. An
// unknown parent id is ignored rather than rejected; the original spawner may
// already be gone.
func (e *Engine) SpawnAgent(name string, position entity.Vec3, parentID string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	agent := e.store.SpawnAgent(name, e.clampToBounds(position), parentID)
	lifecyclelog.AgentSpawned(context.Background(), e.publisher, e.tick, agentRef(agent.ID), lifecyclelog.AgentSpawnedPayload{
		Name:     name,
		ParentID: agent.ParentID,
	})
	return agent.ID
}

// DespawnAgent removes an agent. Children are orphaned, not despawned.
func (e *Engine) DespawnAgent(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.store.DespawnAgent(id) {
		return false
	}
	lifecyclelog.AgentDespawned(context.Background(), e.publisher, e.tick, agentRef(id))
	return true
}

// SetAgentDestination assigns a movement goal and puts the agent in the
// moving state. Any previous route is discarded; the movement system plans a
// fresh one on the next step. Downed agents stay put until their error is
// cleared.
func (e *Engine) SetAgentDestination(id string, destination entity.Vec3) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	agent, ok := e.store.Agent(id)
	if !ok || agent.State == entity.StateError {
		return false
	}
	clamped := e.clampToBounds(destination)
	agent.ClearDestination()
	agent.Destination = &clamped
	agent.SetState(entity.StateMoving)
	return true
}

// SetAgentTask records what the agent should do on arrival. It does not
// change the behavior state by itself.
func (e *Engine) SetAgentTask(id, task string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	agent, ok := e.store.Agent(id)
	if !ok {
		return false
	}
	agent.Task = task
	return true
}

// SetAgentThinking moves an idle agent into the thinking state. Agents in any
// other state are left alone so an external planner can't interrupt movement
// or work in progress.
func (e *Engine) SetAgentThinking(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	agent, ok := e.store.Agent(id)
	if !ok || agent.State != entity.StateIdle {
		return false
	}
	agent.SetState(entity.StateThinking)
	return true
}

// ClearAgentError returns a downed agent to idle. The error state is terminal
// inside the simulation; only this command leaves it.
func (e *Engine) ClearAgentError(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	agent, ok := e.store.Agent(id)
	if !ok || agent.State != entity.StateError {
		return false
	}
	agent.SetState(entity.StateIdle)
	if agent.Health <= 0 {
		agent.Health = agent.MaxHealth
	}
	return true
}

// SpawnHostile creates a hostile targeting the given agent and returns its
// id. Hostiles persist until defeated.
func (e *Engine) SpawnHostile(kind string, position entity.Vec3, cause, targetAgentID string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	hostile := e.store.SpawnHostile(kind, e.clampToBounds(position), cause, targetAgentID)
	lifecyclelog.HostileSpawned(context.Background(), e.publisher, e.tick, hostileRef(hostile.ID), lifecyclelog.HostileSpawnedPayload{
		Kind:   kind,
		Cause:  cause,
		Target: targetAgentID,
	})
	return hostile.ID
}

// PlaceStructure overwrites a tile's terrain and walkability, letting callers
// carve obstacles or bridges at runtime. Routes already planned across the
// tile are not replanned.
func (e *Engine) PlaceStructure(x, z int, kind grid.TerrainKind, walkable bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grid.SetTile(x, z, kind, walkable)
}

// Stats returns a copy of the scheduler counters.
func (e *Engine) Stats() SchedulerStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// Tick returns the number of fixed steps executed so far.
func (e *Engine) Tick() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tick
}

// step runs one fixed simulation step. System order is load-bearing: movement
// first so behavior sees arrival-state transitions made this step, threats
// last so damage lands on settled positions.
func (e *Engine) step(nowMS int64, dt float64) {
	e.stepMovement(dt)
	e.stepBehavior(nowMS)
	e.stepThreats(dt)
}

func (e *Engine) clampToBounds(p entity.Vec3) entity.Vec3 {
	maxX := float64(e.grid.Width()) - positionMargin
	maxZ := float64(e.grid.Height()) - positionMargin
	p.X = clamp(p.X, 0, maxX)
	p.Z = clamp(p.Z, 0, maxZ)
	return p
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func cellOf(p entity.Vec3) (int, int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Z))
}

func agentRef(id string) logging.EntityRef {
	return logging.EntityRef{ID: id, Kind: logging.EntityKindAgent}
}

func hostileRef(id string) logging.EntityRef {
	return logging.EntityRef{ID: id, Kind: logging.EntityKindHostile}
}
