package logging_test

import (
	"context"
	"testing"
	"time"

	"agentstead/server/logging"
	"agentstead/server/logging/sinks"
)

func waitForEvents(t *testing.T, sink *sinks.MemorySink, want int) []logging.Event {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		events := sink.Events()
		if len(events) >= want {
			return events
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("sink never received %d events, have %d", want, len(sink.Events()))
	return nil
}

func TestRouterForwardsToSinks(t *testing.T) {
	memory := sinks.NewMemorySink()
	cfg := logging.DefaultConfig()
	cfg.Fields = map[string]any{"node": "test-1"}
	router := logging.NewRouter(cfg, nil, []logging.NamedSink{{Name: "memory", Sink: memory}})
	defer router.Close(context.Background())

	router.Publish(context.Background(), logging.Event{
		Type:     "simulation.world_initialized",
		Tick:     3,
		Actor:    logging.EntityRef{Kind: logging.EntityKindWorld},
		Severity: logging.SeverityInfo,
		Category: logging.CategorySimulation,
	})

	events := waitForEvents(t, memory, 1)
	event := events[0]
	if event.Type != "simulation.world_initialized" || event.Tick != 3 {
		t.Fatalf("unexpected event: %+v", event)
	}
	if event.Time.IsZero() {
		t.Fatalf("router should stamp the event time")
	}
	if event.Extra["node"] != "test-1" {
		t.Fatalf("ambient fields not applied: %+v", event.Extra)
	}
}

func TestRouterFiltersBelowMinimumSeverity(t *testing.T) {
	memory := sinks.NewMemorySink()
	cfg := logging.DefaultConfig()
	cfg.MinimumSeverity = logging.SeverityWarn
	router := logging.NewRouter(cfg, nil, []logging.NamedSink{{Name: "memory", Sink: memory}})

	router.Publish(context.Background(), logging.Event{Type: "combat.proximity_hit", Severity: logging.SeverityDebug})
	router.Publish(context.Background(), logging.Event{Type: "combat.agent_downed", Severity: logging.SeverityWarn})

	if err := router.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
	events := memory.Events()
	if len(events) != 1 {
		t.Fatalf("expected one surviving event, got %d", len(events))
	}
	if events[0].Type != "combat.agent_downed" {
		t.Fatalf("wrong event survived: %+v", events[0])
	}
}

func TestRouterDropsInsteadOfBlocking(t *testing.T) {
	block := make(chan struct{})
	slow := sinkFunc(func(logging.Event) error {
		<-block
		return nil
	})
	cfg := logging.DefaultConfig()
	cfg.BufferSize = 1
	router := logging.NewRouter(cfg, nil, []logging.NamedSink{{Name: "slow", Sink: slow}})

	// Saturate the dispatch goroutine and the one-slot buffer, then keep
	// publishing; Publish must return immediately every time.
	for i := 0; i < 50; i++ {
		router.Publish(context.Background(), logging.Event{Type: "lifecycle.agent_spawned", Severity: logging.SeverityInfo})
	}
	if stats := router.Stats(); stats.DroppedTotal == 0 {
		t.Fatalf("expected drops with a saturated buffer, stats %+v", stats)
	}
	close(block)
	router.Close(context.Background())
}

type sinkFunc func(logging.Event) error

func (f sinkFunc) Write(event logging.Event) error {
	return f(event)
}

func (sinkFunc) Close(context.Context) error {
	return nil
}
