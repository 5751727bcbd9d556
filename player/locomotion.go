package player

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/brawler/common"
	"github.com/milk9111/brawler/physics"
)

// jumpLiftoffGrace is how long Jump waits to leave the ground before giving up.
const jumpLiftoffGrace = 0.25

// Idle stands still until movement, jump or attack input arrives.
type Idle struct{}

func (*Idle) Name() string { return "Idle" }

func (*Idle) Enter(c *Controller) {}

func (*Idle) Exit(c *Controller) {}

func (*Idle) Update(c *Controller) {
	if c.AttemptToAttack() {
		return
	}
	if c.HasJumpInput && c.IsGrounded {
		c.machine.ChangeState(c.jump)
		return
	}
	if c.hasMovementInput() {
		c.machine.ChangeState(c.walking)
	}
}

func (*Idle) LateUpdate(c *Controller) {}

func (*Idle) FixedUpdate(c *Controller) {}

// Walking moves the body along the camera-relative input direction.
type Walking struct{}

func (*Walking) Name() string { return "Walking" }

func (*Walking) Enter(c *Controller) {}

func (*Walking) Exit(c *Controller) {}

func (*Walking) Update(c *Controller) {
	if c.AttemptToAttack() {
		return
	}
	if c.HasJumpInput && c.IsGrounded {
		c.machine.ChangeState(c.jump)
		return
	}
	if !c.hasMovementInput() {
		c.machine.ChangeState(c.idle)
	}
}

func (*Walking) LateUpdate(c *Controller) {}

func (*Walking) FixedUpdate(c *Controller) {
	c.steerToward(c.worldDirection().Mul(c.Config.MovementSpeed))
	c.RotateBodyToFaceInput()
}

// Jump launches the body and keeps reduced air control until it lands.
type Jump struct {
	airborne bool
	elapsed  float64
}

func (*Jump) Name() string { return "Jump" }

func (j *Jump) Enter(c *Controller) {
	j.airborne = false
	j.elapsed = 0
	c.animator.SetTrigger(animJump)

	v := c.body.Velocity()
	v[1] = 0
	c.body.SetVelocity(v)
	c.body.AddForce(common.Up.Mul(c.Config.JumpPower), physics.ForceModeVelocityChange)
}

func (*Jump) Exit(c *Controller) {}

// Update lands on the tick the body is grounded again after having left the
// ground.
func (j *Jump) Update(c *Controller) {
	j.elapsed += c.dt
	if !c.IsGrounded {
		j.airborne = true
		return
	}
	if !j.airborne && j.elapsed < jumpLiftoffGrace {
		return
	}
	if c.hasMovementInput() {
		c.machine.ChangeState(c.walking)
	} else {
		c.machine.ChangeState(c.idle)
	}
}

func (*Jump) LateUpdate(c *Controller) {}

func (*Jump) FixedUpdate(c *Controller) {
	if !c.hasMovementInput() {
		return
	}
	c.steerToward(c.worldDirection().Mul(c.Config.MovementSpeed * c.Config.JumpMovementFactor))
	c.RotateBodyToFaceInput()
}

// Airborne reports whether the body has left the ground since the jump began.
func (j *Jump) Airborne() bool {
	return j.airborne
}

// Dead is terminal.
type Dead struct{}

func (*Dead) Name() string { return "Dead" }

func (*Dead) Enter(c *Controller) {
	c.animator.SetTrigger(animDead)
	c.body.SetVelocity(mgl64.Vec3{0, c.body.Velocity().Y(), 0})
}

func (*Dead) Exit(c *Controller) {}

func (*Dead) Update(c *Controller) {}

func (*Dead) LateUpdate(c *Controller) {}

func (*Dead) FixedUpdate(c *Controller) {}
