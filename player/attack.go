package player

import (
	"log"
	"strconv"
)

// Attack plays one stage of the combo. Each stage must be held for its
// duration; after that, its max interval is the window in which another
// attack press chains into the next stage. The last stage has no window.
type Attack struct {
	stage     int
	stateTime float64
}

func (*Attack) Name() string { return "Attack" }

// Enter starts the configured stage, or falls back to Idle when the stage is
// out of range.
func (a *Attack) Enter(c *Controller) {
	if a.stage <= 0 || a.stage > c.Config.AttackStages {
		if c.debug {
			log.Printf("player: attack stage %d outside [1, %d], aborting to idle", a.stage, c.Config.AttackStages)
		}
		c.machine.ChangeState(c.idle)
		return
	}

	a.stateTime = 0
	c.animator.SetTrigger(animAttack + strconv.Itoa(a.stage))
}

func (*Attack) Exit(c *Controller) {}

func (a *Attack) Update(c *Controller) {
	// the config may have shrunk under a live stage
	if a.stage > c.Config.AttackStages {
		c.machine.ChangeState(c.idle)
		return
	}

	if c.AttemptToAttack() {
		return
	}

	a.stateTime += c.dt

	if a.IsStageExpired(c) {
		c.machine.ChangeState(c.idle)
	}
}

func (*Attack) LateUpdate(c *Controller) {}

func (*Attack) FixedUpdate(c *Controller) {}

// Stage is the active combo stage, 1-indexed.
func (a *Attack) Stage() int {
	return a.stage
}

// StateTime is the time spent in the active stage.
func (a *Attack) StateTime() float64 {
	return a.stateTime
}

func (a *Attack) isLastStage(c *Controller) bool {
	return a.stage == c.Config.AttackStages
}

// window returns the minimum hold of the active stage and the time its chain
// window closes.
func (a *Attack) window(c *Controller) (minHold, closes float64) {
	minHold = c.Config.AttackStageDurations[a.stage-1]
	interval := 0.0
	if !a.isLastStage(c) {
		interval = c.Config.AttackStageMaxIntervals[a.stage-1]
	}
	return minHold, minHold + interval
}

// CanSwitchStages reports whether an attack press now would chain into the
// next stage.
func (a *Attack) CanSwitchStages(c *Controller) bool {
	if a.isLastStage(c) {
		return false
	}
	minHold, closes := a.window(c)
	return a.stateTime >= minHold && a.stateTime <= closes
}

// IsStageExpired reports whether the active stage and its chain window are over.
func (a *Attack) IsStageExpired(c *Controller) bool {
	_, closes := a.window(c)
	return a.stateTime > closes
}
