// Package game wires the player controller, the ECS world and the physics
// host into a playable session and drives it on fixed and variable ticks.
package game

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/brawler/common"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/ecs/system"
	"github.com/milk9111/brawler/gamestate"
	"github.com/milk9111/brawler/physics"
	"github.com/milk9111/brawler/physics/cpworld"
	"github.com/milk9111/brawler/player"
	"github.com/milk9111/brawler/prefabs"
)

type Options struct {
	Player prefabs.PlayerSpec
	Bomb   prefabs.BombSpec
	Level  prefabs.LevelSpec
	// Rules may be nil, in which case only the host ends the game.
	Rules *Rules

	Animator player.Animator
	Camera   player.Camera
	Audio    system.AudioPlayer
	Debug    bool
}

// Session owns one run of a level.
type Session struct {
	world     *ecs.World
	physics   *cpworld.World
	state     *gamestate.State
	player    *player.Controller
	scheduler *ecs.Scheduler
	rules     *Rules

	bombSpec prefabs.BombSpec
	level    prefabs.LevelSpec

	playerEntity ecs.Entity
	playerBody   *cpworld.Body

	input         player.Input
	elapsed       float64
	groundTag     physics.Tag
	groundSeconds float64
	broken        int
	events        []ecs.Event
	debug         bool
}

var _ Ticker = (*Session)(nil)

func NewSession(opts Options) (*Session, error) {
	if err := opts.Player.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Bomb.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Level.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		world:    ecs.NewWorld(),
		physics:  cpworld.New(),
		state:    gamestate.New(opts.Level.Ground()...),
		rules:    opts.Rules,
		bombSpec: opts.Bomb,
		level:    opts.Level,
		debug:    opts.Debug,
	}
	s.physics.SetDebug(opts.Debug)

	for _, p := range opts.Level.Platforms {
		s.addPlatform(p)
	}

	if err := s.spawnPlayer(opts); err != nil {
		return nil, err
	}

	bombs := system.NewBombSystem(s.physics)
	bombs.SetDebug(opts.Debug)
	s.scheduler = ecs.NewScheduler(
		bombs,
		system.NewRandomSoundSystem(opts.Audio),
		system.NewTTLSystem(),
	)
	s.scheduler.AddFixed(system.NewPhysicsSystem(s.physics))

	for _, at := range opts.Level.Bombs {
		s.SpawnBomb(at.Position())
	}

	if s.debug {
		log.Printf("game: level %q loaded with %d platforms and %d bombs", opts.Level.Name, len(opts.Level.Platforms), len(opts.Level.Bombs))
	}
	return s, nil
}

func (s *Session) addPlatform(p prefabs.PlatformSpec) ecs.Entity {
	e := ecs.CreateEntity(s.world)
	tag := physics.Tag(p.Tag)
	_ = ecs.Add(s.world, e, component.TransformComponent.Kind(), &component.Transform{
		Position: p.Transform.Position(),
		Rotation: mgl64.QuatRotate(mgl64.DegToRad(p.Angle), mgl64.Vec3{0, 0, 1}),
	})
	_ = ecs.Add(s.world, e, component.TagComponent.Kind(), &component.Tag{Name: tag})
	if p.Health > 0 {
		_ = ecs.Add(s.world, e, component.HealthComponent.Kind(), &component.Health{Initial: p.Health, Current: p.Health})
	}
	s.physics.AddPlatform(uint64(e), tag, p.Transform.Position(), p.Width, p.Height, p.Angle)
	return e
}

func (s *Session) spawnPlayer(opts Options) error {
	e := ecs.CreateEntity(s.world)
	spawn := opts.Level.Spawn.Position()
	rotation := common.YawRotation(opts.Level.Spawn.Yaw)
	_ = ecs.Add(s.world, e, component.TransformComponent.Kind(), &component.Transform{Position: spawn, Rotation: rotation})
	_ = ecs.Add(s.world, e, component.TagComponent.Kind(), &component.Tag{Name: physics.TagPlayer})
	_ = ecs.Add(s.world, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})

	body := s.physics.AddBody(uint64(e), physics.TagPlayer, physics.LayerPlayer, spawn, opts.Player.Collider.Size(), opts.Player.Mass)
	body.MoveRotation(rotation)
	// the controller applies its own, slope-aware gravity
	_ = ecs.Add(s.world, e, component.RigidBodyComponent.Kind(), &component.RigidBody{Body: body})

	controller, err := player.New(player.Options{
		Config:   opts.Player.Config(),
		Body:     body,
		Query:    s.physics,
		Animator: opts.Animator,
		Camera:   opts.Camera,
		Game:     s.state,
		Mask:     physics.LayerDefault,
	})
	if err != nil {
		return fmt.Errorf("game: spawn player: %w", err)
	}
	controller.SetDebug(opts.Debug)

	s.playerEntity = e
	s.playerBody = body
	s.player = controller
	return nil
}

// SpawnBomb drops a fresh bomb at position. It falls under gravity and
// explodes after the configured delay.
func (s *Session) SpawnBomb(position mgl64.Vec3) ecs.Entity {
	e := ecs.CreateEntity(s.world)
	_ = ecs.Add(s.world, e, component.TransformComponent.Kind(), &component.Transform{Position: position, Rotation: mgl64.QuatIdent()})
	_ = ecs.Add(s.world, e, component.TagComponent.Kind(), &component.Tag{Name: physics.TagBomb})
	_ = ecs.Add(s.world, e, component.BombComponent.Kind(), s.bombSpec.Component())

	body := s.physics.AddBody(uint64(e), physics.TagBomb, physics.LayerEffect, position, s.bombSpec.Collider.Size(), s.bombSpec.Mass)
	_ = ecs.Add(s.world, e, component.RigidBodyComponent.Kind(), &component.RigidBody{
		Body:    body,
		Gravity: common.Down.Mul(common.Gravity),
	})
	return e
}

// DropBomb spawns a bomb just above the player's head.
func (s *Session) DropBomb() ecs.Entity {
	above := s.playerBody.Size().Y()/2 + s.bombSpec.Collider.Height
	return s.SpawnBomb(s.playerBody.Position().Add(common.Up.Mul(above)))
}

// SetInput stores the key snapshot for the next variable tick. A press is
// delivered to exactly one tick.
func (s *Session) SetInput(in player.Input) {
	s.input = in
}

func (s *Session) FixedTick(dt float64) {
	s.player.FixedUpdate(dt)
	s.scheduler.FixedUpdate(s.world, dt)
}

func (s *Session) VariableTick(dt float64) {
	s.elapsed += dt

	s.player.SetInput(s.input)
	s.input.AttackPressed = false
	s.player.Update(dt)
	s.player.LateUpdate()

	s.scheduler.Update(s.world, dt)
	s.collectEvents()
	s.evaluateRules(dt)
}

func (s *Session) collectEvents() {
	s.events = s.world.Events().Drain()
	s.broken += ecs.CountType(s.events, system.EventTargetBroken)
}

func (s *Session) evaluateRules(dt float64) {
	switch {
	case !s.player.IsGrounded:
		s.groundTag = ""
		s.groundSeconds = 0
	case s.player.GroundTag == s.groundTag:
		s.groundSeconds += dt
	default:
		s.groundTag = s.player.GroundTag
		s.groundSeconds = 0
	}

	if s.rules == nil || s.state.IsGameOver() {
		return
	}
	over, err := s.rules.GameOver(s.Snapshot())
	if err != nil {
		log.Printf("%v; rules disabled", err)
		s.rules = nil
		return
	}
	if over {
		s.state.SetGameOver(true)
		log.Printf("game: over after %.2fs", s.elapsed)
	}
}

// Snapshot captures what the rule script evaluates.
func (s *Session) Snapshot() Snapshot {
	p := s.playerBody.Position()
	return Snapshot{
		PlayerX:       p.X(),
		PlayerY:       p.Y(),
		PlayerZ:       p.Z(),
		PlayerState:   s.player.CurrentStateName(),
		Grounded:      s.player.IsGrounded,
		GroundTag:     string(s.groundTag),
		GroundSeconds: s.groundSeconds,
		KillY:         s.level.KillY,
		Elapsed:       s.elapsed,
		Broken:        s.broken,
	}
}

// ApplyPlayerSpec re-tunes the live controller.
func (s *Session) ApplyPlayerSpec(spec prefabs.PlayerSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	return s.player.ApplyConfig(spec.Config())
}

// ApplyBombSpec changes the tuning of bombs spawned from now on.
func (s *Session) ApplyBombSpec(spec prefabs.BombSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	s.bombSpec = spec
	return nil
}

func (s *Session) SetRules(rules *Rules) {
	s.rules = rules
}

func (s *Session) Player() *player.Controller {
	return s.player
}

func (s *Session) PlayerEntity() ecs.Entity {
	return s.playerEntity
}

func (s *Session) PlayerBody() *cpworld.Body {
	return s.playerBody
}

func (s *Session) World() *ecs.World {
	return s.world
}

func (s *Session) Physics() *cpworld.World {
	return s.physics
}

func (s *Session) State() *gamestate.State {
	return s.state
}

func (s *Session) Level() prefabs.LevelSpec {
	return s.level
}

// Events returns the ECS events raised during the last variable tick.
func (s *Session) Events() []ecs.Event {
	return s.events
}
