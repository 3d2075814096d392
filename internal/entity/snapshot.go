package entity

import "sort"

// AgentView is the read-only projection of an agent handed to the
// presentation layer. Consumers never mutate it.
type AgentView struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Position    Vec3          `json:"position"`
	Destination *Vec3         `json:"destination,omitempty"`
	State       BehaviorState `json:"state"`
	Health      int           `json:"health"`
	MaxHealth   int           `json:"maxHealth"`
	Level       int           `json:"level"`
	Task        string        `json:"task,omitempty"`
	ParentID    string        `json:"parentId,omitempty"`
	ChildIDs    []string      `json:"childIds,omitempty"`
}

// HostileView is the read-only projection of a hostile.
type HostileView struct {
	ID            string `json:"id"`
	Kind          string `json:"kind"`
	Cause         string `json:"cause,omitempty"`
	Position      Vec3   `json:"position"`
	Health        int    `json:"health"`
	MaxHealth     int    `json:"maxHealth"`
	TargetAgentID string `json:"targetAgentId,omitempty"`
}

func (a *Agent) snapshot() AgentView {
	view := AgentView{
		ID:        a.ID,
		Name:      a.Name,
		Position:  a.Position,
		State:     a.State,
		Health:    a.Health,
		MaxHealth: a.MaxHealth,
		Level:     a.Level,
		Task:      a.Task,
		ParentID:  a.ParentID,
	}
	if a.Destination != nil {
		dest := *a.Destination
		view.Destination = &dest
	}
	if len(a.ChildIDs) > 0 {
		children := make([]string, 0, len(a.ChildIDs))
		for id := range a.ChildIDs {
			children = append(children, id)
		}
		sort.Strings(children)
		view.ChildIDs = children
	}
	return view
}

func (h *Hostile) snapshot() HostileView {
	return HostileView{
		ID:            h.ID,
		Kind:          h.Kind,
		Cause:         h.Cause,
		Position:      h.Position,
		Health:        h.Health,
		MaxHealth:     h.MaxHealth,
		TargetAgentID: h.TargetAgentID,
	}
}

// SnapshotAgents copies every agent into broadcast-friendly views, ordered by
// id.
func (s *Store) SnapshotAgents() []AgentView {
	views := make([]AgentView, 0, len(s.agents))
	for _, id := range s.AgentIDs() {
		views = append(views, s.agents[id].snapshot())
	}
	return views
}

// SnapshotHostiles copies every hostile into broadcast-friendly views,
// ordered by id.
func (s *Store) SnapshotHostiles() []HostileView {
	views := make([]HostileView, 0, len(s.hostiles))
	for _, id := range s.HostileIDs() {
		views = append(views, s.hostiles[id].snapshot())
	}
	return views
}
