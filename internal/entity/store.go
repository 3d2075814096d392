package entity

import (
	"fmt"
	"sort"
)

const defaultMaxHealth = 100

// Store owns every Agent and Hostile record. Systems read and write through
// it and must not hold references across ticks.
type Store struct {
	agents        map[string]*Agent
	hostiles      map[string]*Hostile
	nextAgentID   uint64
	nextHostileID uint64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		agents:   make(map[string]*Agent),
		hostiles: make(map[string]*Hostile),
	}
}

// SpawnAgent creates an agent at the given position. New agents start Idle at
// full health with no destination. A non-empty parentID links the agent into
// the parent's child set when the parent exists.
func (s *Store) SpawnAgent(name string, position Vec3, parentID string) *Agent {
	s.nextAgentID++
	agent := &Agent{
		ID:        fmt.Sprintf("agent-%d", s.nextAgentID),
		Name:      name,
		Position:  position,
		State:     StateIdle,
		Health:    defaultMaxHealth,
		MaxHealth: defaultMaxHealth,
		ChildIDs:  make(map[string]struct{}),
	}
	if parentID != "" {
		if parent, ok := s.agents[parentID]; ok {
			agent.ParentID = parentID
			parent.ChildIDs[agent.ID] = struct{}{}
		}
	}
	s.agents[agent.ID] = agent
	return agent
}

// DespawnAgent removes an agent and unlinks it from its parent and children.
// Removing a missing id is a no-op.
func (s *Store) DespawnAgent(id string) bool {
	agent, ok := s.agents[id]
	if !ok {
		return false
	}
	if agent.ParentID != "" {
		if parent, ok := s.agents[agent.ParentID]; ok {
			delete(parent.ChildIDs, id)
		}
	}
	for childID := range agent.ChildIDs {
		if child, ok := s.agents[childID]; ok {
			child.ParentID = ""
		}
	}
	delete(s.agents, id)
	return true
}

// Agent borrows an agent record by id.
func (s *Store) Agent(id string) (*Agent, bool) {
	agent, ok := s.agents[id]
	return agent, ok
}

// AgentIDs returns a stable, sorted snapshot of agent ids. Systems iterate
// this snapshot so mid-tick removals never invalidate the walk.
func (s *Store) AgentIDs() []string {
	ids := make([]string, 0, len(s.agents))
	for id := range s.agents {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// AgentCount reports the number of live agents.
func (s *Store) AgentCount() int {
	return len(s.agents)
}

// SpawnHostile creates a hostile at the given position with a cause and an
// assigned target.
func (s *Store) SpawnHostile(kind string, position Vec3, cause, targetAgentID string) *Hostile {
	s.nextHostileID++
	hostile := &Hostile{
		ID:            fmt.Sprintf("hostile-%d", s.nextHostileID),
		Kind:          kind,
		Cause:         cause,
		Position:      position,
		Health:        defaultMaxHealth,
		MaxHealth:     defaultMaxHealth,
		TargetAgentID: targetAgentID,
	}
	s.hostiles[hostile.ID] = hostile
	return hostile
}

// RemoveHostile deletes a hostile record, normally on defeat.
func (s *Store) RemoveHostile(id string) bool {
	if _, ok := s.hostiles[id]; !ok {
		return false
	}
	delete(s.hostiles, id)
	return true
}

// Hostile borrows a hostile record by id.
func (s *Store) Hostile(id string) (*Hostile, bool) {
	hostile, ok := s.hostiles[id]
	return hostile, ok
}

// HostileIDs returns a stable, sorted snapshot of hostile ids.
func (s *Store) HostileIDs() []string {
	ids := make([]string, 0, len(s.hostiles))
	for id := range s.hostiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// HostileCount reports the number of live hostiles.
func (s *Store) HostileCount() int {
	return len(s.hostiles)
}
