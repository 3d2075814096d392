package sim

import (
	"context"

	simlog "agentstead/server/logging/simulation"
)

// SchedulerStats counts fixed-step execution. DroppedMS accumulates time shed
// by the catch-up cap; a nonzero value means the host can't keep up with the
// configured tick rate.
type SchedulerStats struct {
	TotalSteps uint64  `json:"totalSteps"`
	LastSteps  int     `json:"lastSteps"`
	DroppedMS  float64 `json:"droppedMs"`
}

// Advance feeds one frame's wall-clock delta (in seconds) into the
// accumulator and executes every whole fixed step it covers, up to the
// catch-up cap. Splitting a delta across calls executes the same steps as
// feeding it whole: the remainder carries.
//
// When a stall leaves more than CatchUpMaxSteps steps owed, the excess is
// dropped rather than simulated, so a long pause produces a hitch instead of
// a death spiral.
func (e *Engine) Advance(frameDeltaSeconds float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if frameDeltaSeconds <= 0 {
		e.stats.LastSteps = 0
		return
	}

	e.accumulatorMS += frameDeltaSeconds * 1000
	intervalMS := 1000.0 / float64(e.cfg.TickRate)
	dt := 1.0 / float64(e.cfg.TickRate)

	steps := 0
	for e.accumulatorMS >= intervalMS {
		e.accumulatorMS -= intervalMS
		e.tick++
		e.step(e.clock.Now().UnixMilli(), dt)
		steps++
		if steps >= e.cfg.CatchUpMaxSteps && e.accumulatorMS >= intervalMS {
			dropped := e.accumulatorMS
			e.accumulatorMS = 0
			e.stats.DroppedMS += dropped
			simlog.TickBudgetExceeded(context.Background(), e.publisher, e.tick, simlog.TickBudgetExceededPayload{
				StepsExecuted: steps,
				DroppedMS:     dropped,
			})
			break
		}
	}
	e.stats.LastSteps = steps
	e.stats.TotalSteps += uint64(steps)
}
