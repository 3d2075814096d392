package sim

import "agentstead/server/internal/entity"

// stepBehavior drives the timed states. Each timed state arms its timer on
// the first step after entry; transitions happen once the elapsed wall-clock
// time reaches the state's duration. Idle, moving, combat, and error have no
// timer and are exited elsewhere.
func (e *Engine) stepBehavior(nowMS int64) {
	for _, id := range e.store.AgentIDs() {
		agent, ok := e.store.Agent(id)
		if !ok {
			continue
		}
		switch agent.State {
		case entity.StateThinking:
			e.advanceTimedState(agent, nowMS, thinkDurationMS, entity.StateIdle, false)
		case entity.StateWorking:
			e.advanceTimedState(agent, nowMS, workDurationMS, entity.StateCompleting, false)
		case entity.StateCompleting:
			e.advanceTimedState(agent, nowMS, completeDurationMS, entity.StateIdle, true)
		}
	}
}

func (e *Engine) advanceTimedState(agent *entity.Agent, nowMS, durationMS int64, next entity.BehaviorState, resetTask bool) {
	if agent.StateTimerStart == 0 {
		agent.StateTimerStart = nowMS
		return
	}
	if nowMS-agent.StateTimerStart < durationMS {
		return
	}
	agent.SetState(next)
	if resetTask {
		agent.Task = taskIdlePlaceholder
	}
}
