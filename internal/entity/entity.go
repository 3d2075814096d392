// Package entity is the single source of truth for simulated entities. All
// systems borrow records by id for the duration of a tick; nothing outside the
// store retains pointers across ticks, because despawn and defeat may remove
// records between them.
package entity

import "agentstead/server/internal/path"

// Vec3 is a world-space position. Movement happens on the X/Z plane; Y is
// carried through untouched for the presentation layer.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// BehaviorState is the single active member of an agent's finite-state set.
// There is no "none": every agent is always in exactly one state.
type BehaviorState string

const (
	StateIdle       BehaviorState = "idle"
	StateThinking   BehaviorState = "thinking"
	StateMoving     BehaviorState = "moving"
	StateWorking    BehaviorState = "working"
	StateError      BehaviorState = "error"
	StateCompleting BehaviorState = "completing"
	StateCombat     BehaviorState = "combat"
)

// Agent is an autonomous worker on the grid.
//
// Destination and Path are paired: Path is only ever set while Destination is
// set, and clearing Destination must also clear Path and reset PathCursor.
// StateTimerStart belongs to the current behavior state only; every transition
// zeroes it so a stale timer can't fire after re-entering a state.
type Agent struct {
	ID              string
	Name            string
	Position        Vec3
	Destination     *Vec3
	Path            []path.Point
	PathCursor      int
	State           BehaviorState
	StateTimerStart int64 // unix milliseconds; 0 means unset
	PathDegraded    bool  // planner found no route; steering direct-line
	Health          int
	MaxHealth       int
	Level           int
	Task            string
	ParentID        string
	ChildIDs        map[string]struct{}
}

// ClearDestination resets the destination/path pairing in one place.
func (a *Agent) ClearDestination() {
	if a == nil {
		return
	}
	a.Destination = nil
	a.Path = nil
	a.PathCursor = 0
	a.PathDegraded = false
}

// SetState transitions the behavior state and clears the state-local timer.
func (a *Agent) SetState(state BehaviorState) {
	if a == nil {
		return
	}
	a.State = state
	a.StateTimerStart = 0
}

// Hostile is an adversarial entity pursuing a targeted agent. Hostiles have no
// natural decay; they exist until defeated.
type Hostile struct {
	ID            string
	Kind          string
	Cause         string
	Position      Vec3
	Health        int
	MaxHealth     int
	TargetAgentID string
}
