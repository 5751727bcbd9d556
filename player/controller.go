// Package player implements the third-person locomotion and combat
// controller: a state machine over Idle, Walking, Jump, Attack and Dead that
// samples input on the variable tick and drives a physics body on the fixed
// tick.
package player

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/brawler/common"
	"github.com/milk9111/brawler/gamestate"
	"github.com/milk9111/brawler/physics"
)

const (
	movementThreshold = 0.01

	animVelocity = "fvelocity"
	animAttack   = "tAttack"
	animJump     = "tJump"
	animDead     = "tDead"
)

// Animator receives fire-and-forget animation signals.
type Animator interface {
	SetTrigger(name string)
	SetFloat(name string, value float64)
}

// Camera supplies the yaw, in degrees, movement input is relative to.
type Camera interface {
	Yaw() float64
}

// Input is the raw key snapshot for one variable tick.
type Input struct {
	Up, Down, Left, Right bool
	Jump                  bool
	// AttackPressed is true only on the tick the attack button went down.
	AttackPressed bool
}

// Movement maps the directional keys to a vector in [-1, 1]². Right wins
// over left and up over down.
func (in Input) Movement() mgl64.Vec2 {
	var x, y float64
	switch {
	case in.Right:
		x = 1
	case in.Left:
		x = -1
	}
	switch {
	case in.Up:
		y = 1
	case in.Down:
		y = -1
	}
	return mgl64.Vec2{x, y}
}

// Options wires a controller to its collaborators.
type Options struct {
	Config   Config
	Body     physics.Body
	Query    physics.Query
	Animator Animator
	Camera   Camera
	Game     *gamestate.State
	// Mask filters ground and slope probes. Zero means every layer except the player's.
	Mask physics.LayerMask
}

// Controller is the shared context every player state reads and writes.
type Controller struct {
	Config Config

	MovementVector mgl64.Vec2
	HasJumpInput   bool
	HasAttackInput bool
	IsGrounded     bool
	IsOnSlope      bool
	SlopeNormal    mgl64.Vec3
	GroundTag      physics.Tag

	body     physics.Body
	query    physics.Query
	animator Animator
	camera   Camera
	game     *gamestate.State
	mask     physics.LayerMask

	dt      float64
	fixedDt float64
	debug   bool

	machine *StateMachine
	idle    *Idle
	walking *Walking
	jump    *Jump
	attack  *Attack
	dead    *Dead
}

// New builds a controller and enters Idle.
func New(opts Options) (*Controller, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	if opts.Body == nil || opts.Query == nil {
		return nil, fmt.Errorf("player: body and query are required")
	}
	c := &Controller{
		Config:   opts.Config,
		body:     opts.Body,
		query:    opts.Query,
		animator: opts.Animator,
		camera:   opts.Camera,
		game:     opts.Game,
		mask:     opts.Mask,
		idle:     &Idle{},
		walking:  &Walking{},
		jump:     &Jump{},
		attack:   &Attack{stage: 1},
		dead:     &Dead{},
	}
	if c.animator == nil {
		c.animator = nopAnimator{}
	}
	if c.camera == nil {
		c.camera = fixedCamera(0)
	}
	if c.game == nil {
		c.game = gamestate.New()
	}
	if c.mask == 0 {
		c.mask = physics.LayerAll &^ physics.LayerPlayer
	}
	c.machine = NewStateMachine(c)
	c.machine.OnTransition = c.logTransition
	c.machine.Initialize(c.idle)
	return c, nil
}

// ApplyConfig swaps the tuning of a live controller. The active attack stage
// is kept; Attack falls back to Idle on its next Enter if it is out of range.
func (c *Controller) ApplyConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

func (c *Controller) SetDebug(debug bool) {
	c.debug = debug
}

func (c *Controller) logTransition(from, to State) {
	if !c.debug {
		return
	}
	log.Printf("player: %s -> %s", from.Name(), to.Name())
}

// SetInput samples the key snapshot for the coming variable tick.
func (c *Controller) SetInput(in Input) {
	c.MovementVector = in.Movement()
	c.HasJumpInput = in.Jump
	c.HasAttackInput = in.AttackPressed
}

// Update is the variable-tick entry point.
func (c *Controller) Update(dt float64) {
	c.dt = dt

	if c.game.IsGameOver() && c.machine.Current() != State(c.dead) {
		c.machine.ChangeState(c.dead)
	}

	c.animator.SetFloat(animVelocity, c.body.Velocity().Len()/c.Config.MovementSpeed)

	c.DetectGround()
	c.DetectSlope()

	c.machine.Update()
}

func (c *Controller) LateUpdate() {
	c.machine.LateUpdate()
}

// FixedUpdate is the fixed-tick entry point: gravity, the speed limit, then
// the active state's physics.
func (c *Controller) FixedUpdate(dt float64) {
	c.fixedDt = dt
	c.applyGravity()
	c.LimitSpeed()
	c.machine.FixedUpdate()
}

func (c *Controller) StateMachine() *StateMachine {
	return c.machine
}

func (c *Controller) CurrentStateName() string {
	return c.machine.CurrentStateName()
}

func (c *Controller) Body() physics.Body {
	return c.body
}

func (c *Controller) IdleState() *Idle {
	return c.idle
}

func (c *Controller) WalkingState() *Walking {
	return c.walking
}

func (c *Controller) JumpState() *Jump {
	return c.jump
}

func (c *Controller) AttackState() *Attack {
	return c.attack
}

func (c *Controller) DeadState() *Dead {
	return c.dead
}

// DeltaTime is the duration of the current variable tick.
func (c *Controller) DeltaTime() float64 {
	return c.dt
}

// FixedDeltaTime is the duration of the current fixed tick.
func (c *Controller) FixedDeltaTime() float64 {
	return c.fixedDt
}

func (c *Controller) hasMovementInput() bool {
	return c.MovementVector.Len() > movementThreshold
}

// AttemptToAttack consumes a fresh attack press. Outside Attack it starts
// stage 1; inside Attack it chains to the next stage only while the current
// stage's chain window is open. It reports whether a transition happened.
func (c *Controller) AttemptToAttack() bool {
	if !c.HasAttackInput {
		return false
	}
	c.HasAttackInput = false

	if c.machine.Current() != State(c.attack) {
		c.RequestAttackTransition(1)
		return true
	}
	if !c.attack.CanSwitchStages(c) {
		return false
	}
	c.RequestAttackTransition(c.attack.stage + 1)
	return true
}

// RequestAttackTransition sets the attack stage and then (re-)enters Attack,
// running Exit and Enter even when Attack is already active.
func (c *Controller) RequestAttackTransition(stage int) {
	c.attack.stage = stage
	c.machine.Retrigger(c.attack)
}

// worldDirection turns the movement input into a camera-relative horizontal
// direction with length at most 1.
func (c *Controller) worldDirection() mgl64.Vec3 {
	input := mgl64.Vec3{c.MovementVector.X(), 0, c.MovementVector.Y()}
	if l := input.Len(); l > 1 {
		input = input.Mul(1 / l)
	}
	return common.YawRotation(c.camera.Yaw()).Rotate(input)
}

// RotateBodyToFaceInput turns the body toward the camera-relative input
// direction. Zero input keeps the last facing. smoothness overrides
// Config.MovementSmoothness for this call; values above 1 overshoot.
func (c *Controller) RotateBodyToFaceInput(smoothness ...float64) {
	if c.MovementVector.X() == 0 && c.MovementVector.Y() == 0 {
		return
	}
	t := c.Config.MovementSmoothness
	if len(smoothness) > 0 {
		t = smoothness[0]
	}

	look := common.LookRotationPlanar(mgl64.Vec3{c.MovementVector.X(), 0, c.MovementVector.Y()})
	target := look.Mul(common.YawRotation(c.camera.Yaw()))
	c.body.MoveRotation(common.LerpUnclamped(c.body.Rotation(), target, t))
}

// LimitSpeed clamps the horizontal speed to MaxSpeed. Vertical speed is untouched.
func (c *Controller) LimitSpeed() {
	v := c.body.Velocity()
	clamped := common.ClampPlanar(v, c.Config.MaxSpeed)
	if clamped != v {
		c.body.SetVelocity(clamped)
	}
}

// applyGravity pulls the body down, or into the surface while standing on a slope.
func (c *Controller) applyGravity() {
	g := c.Config.Gravity * c.Config.GravityScale
	if g == 0 {
		return
	}
	dir := common.Down
	if c.IsGrounded && c.IsOnSlope {
		dir = c.SlopeNormal.Mul(-1)
	}
	c.body.AddForce(dir.Mul(g), physics.ForceModeAcceleration)
}

// steerToward changes the horizontal velocity toward target by at most
// Acceleration per second. Along a slope the change follows the surface.
func (c *Controller) steerToward(target mgl64.Vec3) {
	v := c.body.Velocity()
	delta := target.Sub(common.Planar(v))
	if c.IsGrounded && c.IsOnSlope {
		delta = common.ProjectOnPlane(delta, c.SlopeNormal)
	}
	maxDelta := c.Config.Acceleration * c.fixedDt
	if l := delta.Len(); l > maxDelta && l > 0 {
		delta = delta.Mul(maxDelta / l)
	}
	c.body.AddForce(delta, physics.ForceModeVelocityChange)
}

type nopAnimator struct{}

func (nopAnimator) SetTrigger(string)        {}
func (nopAnimator) SetFloat(string, float64) {}

type fixedCamera float64

func (f fixedCamera) Yaw() float64 { return float64(f) }
