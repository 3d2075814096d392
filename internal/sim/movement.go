package sim

import (
	"context"
	"math"

	"agentstead/server/internal/entity"
	"agentstead/server/internal/path"
	simlog "agentstead/server/logging/simulation"
)

// stepMovement advances every agent that has a destination. The step an agent
// adopts a freshly planned route is spent on adoption only; motion begins on
// the following step.
func (e *Engine) stepMovement(dt float64) {
	for _, id := range e.store.AgentIDs() {
		agent, ok := e.store.Agent(id)
		if !ok || agent.Destination == nil {
			continue
		}
		e.moveAgent(agent, dt)
	}
}

func (e *Engine) moveAgent(agent *entity.Agent, dt float64) {
	dest := *agent.Destination

	if agent.Path == nil {
		sx, sz := cellOf(agent.Position)
		ex, ez := cellOf(dest)
		if route := path.Find(sx, sz, ex, ez, e.grid); route != nil {
			agent.Path = route
			agent.PathCursor = 0
			agent.PathDegraded = false
			return
		}
		if !agent.PathDegraded {
			agent.PathDegraded = true
			simlog.PathUnavailable(context.Background(), e.publisher, e.tick, agentRef(agent.ID), simlog.PathUnavailablePayload{
				FromX: sx,
				FromZ: sz,
				ToX:   ex,
				ToZ:   ez,
			})
		}
		e.moveToward(agent, dest, dt)
		return
	}

	if agent.PathCursor >= len(agent.Path) {
		e.arrive(agent, dest)
		return
	}

	waypoint := waypointCenter(agent.Path[agent.PathCursor])
	if planarDistance(agent.Position, waypoint) <= waypointRadius {
		agent.PathCursor++
		if agent.PathCursor >= len(agent.Path) {
			e.arrive(agent, dest)
			return
		}
		waypoint = waypointCenter(agent.Path[agent.PathCursor])
	}
	e.stepToward(agent, waypoint, dt)
}

// moveToward is direct-line steering with an arrival check, used for the
// final leg and the no-route fallback.
func (e *Engine) moveToward(agent *entity.Agent, dest entity.Vec3, dt float64) {
	if planarDistance(agent.Position, dest) <= arriveEpsilon {
		e.arrive(agent, dest)
		return
	}
	e.stepToward(agent, dest, dt)
	if planarDistance(agent.Position, dest) <= arriveEpsilon {
		e.arrive(agent, dest)
	}
}

// stepToward moves by at most agentSpeed*dt toward target, never overshooting.
func (e *Engine) stepToward(agent *entity.Agent, target entity.Vec3, dt float64) {
	dx := target.X - agent.Position.X
	dz := target.Z - agent.Position.Z
	dist := math.Hypot(dx, dz)
	if dist == 0 {
		return
	}
	step := math.Min(agentSpeed*dt, dist)
	agent.Position.X += dx / dist * step
	agent.Position.Z += dz / dist * step
	agent.Position = e.clampToBounds(agent.Position)
}

// arrive snaps to the destination and leaves the moving state. A pending task
// sends the agent to work; otherwise it goes idle.
func (e *Engine) arrive(agent *entity.Agent, dest entity.Vec3) {
	agent.Position = e.clampToBounds(dest)
	agent.ClearDestination()
	if hasTask(agent) {
		agent.SetState(entity.StateWorking)
	} else {
		agent.SetState(entity.StateIdle)
	}
}

func hasTask(agent *entity.Agent) bool {
	return agent.Task != "" && agent.Task != taskIdlePlaceholder
}

// waypointCenter maps a route cell to the world-space point agents steer at.
func waypointCenter(p path.Point) entity.Vec3 {
	return entity.Vec3{X: float64(p.X) + 0.5, Z: float64(p.Z) + 0.5}
}

func planarDistance(a, b entity.Vec3) float64 {
	return math.Hypot(b.X-a.X, b.Z-a.Z)
}
