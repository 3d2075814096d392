// Package simulation defines structured events emitted by the tick scheduler
// and movement system.
package simulation

import (
	"context"

	"agentstead/server/logging"
)

const (
	// EventPathUnavailable is emitted when the planner finds no route and
	// movement degrades to direct-line steering.
	EventPathUnavailable logging.EventType = "simulation.path_unavailable"
	// EventTickBudgetExceeded is emitted when the catch-up cap truncates a
	// large frame delta and accumulated time is dropped.
	EventTickBudgetExceeded logging.EventType = "simulation.tick_budget_exceeded"
	// EventWorldInitialized is emitted when the world grid is (re)generated.
	EventWorldInitialized logging.EventType = "simulation.world_initialized"
)

type PathUnavailablePayload struct {
	FromX int `json:"fromX"`
	FromZ int `json:"fromZ"`
	ToX   int `json:"toX"`
	ToZ   int `json:"toZ"`
}

type TickBudgetExceededPayload struct {
	StepsExecuted int     `json:"stepsExecuted"`
	DroppedMS     float64 `json:"droppedMs"`
}

type WorldInitializedPayload struct {
	Width  int   `json:"width"`
	Height int   `json:"height"`
	Seed   int64 `json:"seed"`
}

func PathUnavailable(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload PathUnavailablePayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventPathUnavailable,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityWarn,
		Category: logging.CategorySimulation,
		Payload:  payload,
	})
}

func TickBudgetExceeded(ctx context.Context, pub logging.Publisher, tick uint64, payload TickBudgetExceededPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventTickBudgetExceeded,
		Tick:     tick,
		Actor:    logging.EntityRef{Kind: logging.EntityKindWorld},
		Severity: logging.SeverityWarn,
		Category: logging.CategorySimulation,
		Payload:  payload,
	})
}

func WorldInitialized(ctx context.Context, pub logging.Publisher, tick uint64, payload WorldInitializedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventWorldInitialized,
		Tick:     tick,
		Actor:    logging.EntityRef{Kind: logging.EntityKindWorld},
		Severity: logging.SeverityInfo,
		Category: logging.CategorySimulation,
		Payload:  payload,
	})
}
