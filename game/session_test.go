package game

import (
	"bytes"
	"log"
	"os"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/ecs/system"
	"github.com/milk9111/brawler/physics"
	"github.com/milk9111/brawler/player"
	"github.com/milk9111/brawler/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 1.0 / 60

type soundLog struct {
	clips []string
}

func (s *soundLog) PlayOneShot(clip string) {
	s.clips = append(s.clips, clip)
}

func flatLevel() prefabs.LevelSpec {
	return prefabs.LevelSpec{
		Name:  "flat",
		KillY: -10,
		Spawn: prefabs.TransformSpec{Y: 1.2},
		Platforms: []prefabs.PlatformSpec{
			{Name: "ground", Tag: "Platform", Transform: prefabs.TransformSpec{Y: -0.5}, Width: 40, Height: 1},
		},
	}
}

func newTestSession(t *testing.T, level prefabs.LevelSpec, rules *Rules) (*Session, *Loop, *soundLog) {
	t.Helper()
	playerSpec, err := prefabs.LoadPlayerSpec()
	require.NoError(t, err)
	bombSpec, err := prefabs.LoadBombSpec()
	require.NoError(t, err)

	sounds := &soundLog{}
	s, err := NewSession(Options{
		Player: *playerSpec,
		Bomb:   *bombSpec,
		Level:  level,
		Rules:  rules,
		Audio:  sounds,
	})
	require.NoError(t, err)
	return s, NewLoop(s), sounds
}

func run(loop *Loop, seconds float64) {
	for i := 0; i < int(seconds/frame); i++ {
		loop.Advance(frame)
	}
}

func TestSessionSettlesOnGround(t *testing.T) {
	s, loop, _ := newTestSession(t, flatLevel(), nil)

	run(loop, 1)

	assert.True(t, s.Player().IsGrounded)
	assert.Equal(t, "Idle", s.Player().CurrentStateName())
	assert.InDelta(t, 1, s.PlayerBody().Position().Y(), 0.15)

	tr, ok := ecs.Get(s.World(), s.PlayerEntity(), component.TransformComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, s.PlayerBody().Position(), tr.Position)
}

func TestSessionWalksAndRespectsSpeedLimit(t *testing.T) {
	s, loop, _ := newTestSession(t, flatLevel(), nil)
	run(loop, 0.5)

	s.SetInput(player.Input{Right: true})
	run(loop, 1)

	assert.Equal(t, "Walking", s.Player().CurrentStateName())
	assert.Greater(t, s.PlayerBody().Position().X(), 1.0)
	v := s.PlayerBody().Velocity()
	assert.LessOrEqual(t, mgl64.Vec3{v.X(), 0, v.Z()}.Len(), s.Player().Config.MaxSpeed+1e-9)
}

func TestSessionAttackPressIsDeliveredOnce(t *testing.T) {
	s, loop, _ := newTestSession(t, flatLevel(), nil)
	run(loop, 0.5)

	s.SetInput(player.Input{AttackPressed: true})
	loop.Advance(frame)
	require.Equal(t, "Attack", s.Player().CurrentStateName())

	// held past the first stage's window without a new press
	run(loop, 0.6)
	assert.Equal(t, "Idle", s.Player().CurrentStateName())
	assert.Equal(t, 1, s.Player().AttackState().Stage())
}

func TestSessionKillPlaneEndsGame(t *testing.T) {
	rules, err := LoadRules("game_over.tengo")
	require.NoError(t, err)
	s, loop, _ := newTestSession(t, flatLevel(), rules)
	run(loop, 0.2)
	require.False(t, s.State().IsGameOver())

	s.PlayerBody().SetPosition(mgl64.Vec3{100, -20, 0})
	loop.Advance(frame)
	assert.True(t, s.State().IsGameOver())

	loop.Advance(frame)
	assert.Equal(t, "Dead", s.Player().CurrentStateName())

	s.SetInput(player.Input{Right: true, Jump: true, AttackPressed: true})
	run(loop, 0.2)
	assert.Equal(t, "Dead", s.Player().CurrentStateName())
}

func TestSessionRuleErrorDisablesRules(t *testing.T) {
	rules, err := CompileRules("bad", []byte(`game_over := func(world) { return "yes" }`))
	require.NoError(t, err)
	s, loop, _ := newTestSession(t, flatLevel(), rules)

	var logged bytes.Buffer
	log.SetOutput(&logged)
	defer log.SetOutput(os.Stderr)

	run(loop, 0.1)

	assert.False(t, s.State().IsGameOver())
	assert.Nil(t, s.rules)
	assert.Contains(t, logged.String(), "game: rules bad")
	assert.NotContains(t, logged.String(), "game: game:")
}

func TestSessionBombBreaksPlank(t *testing.T) {
	level := flatLevel()
	level.Platforms = append(level.Platforms, prefabs.PlatformSpec{
		Name: "plank", Tag: "Platform", Transform: prefabs.TransformSpec{X: -6, Y: 2}, Width: 2, Height: 0.3, Health: 5,
	})
	level.Bombs = []prefabs.TransformSpec{{X: -6, Y: 3}}
	s, loop, sounds := newTestSession(t, level, nil)

	var plank ecs.Entity
	ecs.ForEach(s.World(), component.HealthComponent.Kind(), func(e ecs.Entity, _ *component.Health) {
		plank = e
	})
	require.True(t, ecs.IsAlive(s.World(), plank))

	var broken []system.DamageEvent
	for i := 0; i < int(6/frame); i++ {
		loop.Advance(frame)
		for _, evt := range s.Events() {
			if evt.Type == system.EventTargetBroken {
				broken = append(broken, evt.Data.(system.DamageEvent))
			}
		}
	}

	assert.False(t, ecs.IsAlive(s.World(), plank))
	require.Len(t, broken, 1)
	assert.Equal(t, plank, broken[0].Target)
	assert.Equal(t, 1, s.Snapshot().Broken)
	// one clip for the blast, one for the plank breaking
	require.Len(t, sounds.clips, 2)
	assert.Contains(t, []string{"explosion_1", "explosion_2"}, sounds.clips[0])
	assert.Equal(t, "wood_break", sounds.clips[1])

	_, ok := s.Physics().Raycast(mgl64.Vec3{-6, 5, 0}, mgl64.Vec3{0, -1, 0}, 3.5, physics.LayerAll)
	assert.False(t, ok, "plank collider removed")
}

func TestSessionDropBomb(t *testing.T) {
	s, loop, _ := newTestSession(t, flatLevel(), nil)
	run(loop, 0.5)

	bomb := s.DropBomb()
	tr, ok := ecs.Get(s.World(), bomb, component.TransformComponent.Kind())
	require.True(t, ok)
	assert.Greater(t, tr.Position.Y(), s.PlayerBody().Position().Y())

	run(loop, 6)
	assert.False(t, ecs.IsAlive(s.World(), bomb))
}

func TestSessionApplyPlayerSpec(t *testing.T) {
	s, _, _ := newTestSession(t, flatLevel(), nil)

	spec, err := prefabs.LoadPlayerSpec()
	require.NoError(t, err)
	spec.MaxSpeed = 3
	require.NoError(t, s.ApplyPlayerSpec(*spec))
	assert.Equal(t, 3.0, s.Player().Config.MaxSpeed)

	spec.AttackStages = nil
	assert.Error(t, s.ApplyPlayerSpec(*spec))
	assert.Equal(t, 3.0, s.Player().Config.MaxSpeed)
}

func TestNewSessionRejectsInvalidSpecs(t *testing.T) {
	playerSpec, err := prefabs.LoadPlayerSpec()
	require.NoError(t, err)
	bombSpec, err := prefabs.LoadBombSpec()
	require.NoError(t, err)

	level := flatLevel()
	level.KillY = 5
	_, err = NewSession(Options{Player: *playerSpec, Bomb: *bombSpec, Level: level})
	assert.ErrorIs(t, err, prefabs.ErrInvalidSpec)

	bad := *bombSpec
	bad.BlastRadius = 0
	_, err = NewSession(Options{Player: *playerSpec, Bomb: bad, Level: flatLevel()})
	assert.ErrorIs(t, err, prefabs.ErrInvalidSpec)
}
