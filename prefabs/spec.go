package prefabs

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/physics"
	"github.com/milk9111/brawler/player"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

const (
	PlayerFile = "player.yaml"
	BombFile   = "bomb.yaml"
	LevelFile  = "level.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type TransformSpec struct {
	X   float64 `yaml:"x"`
	Y   float64 `yaml:"y"`
	Z   float64 `yaml:"z"`
	Yaw float64 `yaml:"yaw"`
}

func (t TransformSpec) Position() mgl64.Vec3 {
	return mgl64.Vec3{t.X, t.Y, t.Z}
}

type ColliderSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Depth  float64 `yaml:"depth"`
}

func (c ColliderSpec) Size() mgl64.Vec3 {
	return mgl64.Vec3{c.Width, c.Height, c.Depth}
}

func (c ColliderSpec) validate(file string) error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %s: collider needs a positive width and height", ErrInvalidSpec, file)
	}
	return nil
}

type AudioSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

type AttackStageSpec struct {
	Duration    float64 `yaml:"duration"`
	MaxInterval float64 `yaml:"max_interval"`
}

type PlayerSpec struct {
	Name               string            `yaml:"name"`
	MovementSpeed      float64           `yaml:"movement_speed"`
	Acceleration       float64           `yaml:"acceleration"`
	JumpPower          float64           `yaml:"jump_power"`
	JumpMovementFactor float64           `yaml:"jump_movement_factor"`
	MovementSmoothness float64           `yaml:"movement_smoothness"`
	MaxSpeed           float64           `yaml:"max_speed"`
	MaxSlopeAngle      float64           `yaml:"max_slope_angle"`
	GravityScale       float64           `yaml:"gravity_scale"`
	Mass               float64           `yaml:"mass"`
	AttackStages       []AttackStageSpec `yaml:"attack_stages"`
	Collider           ColliderSpec      `yaml:"collider"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec](PlayerFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Config converts the spec into controller tuning. Gravity is the world's.
func (s PlayerSpec) Config() player.Config {
	cfg := player.Config{
		MovementSpeed:      s.MovementSpeed,
		Acceleration:       s.Acceleration,
		JumpPower:          s.JumpPower,
		JumpMovementFactor: s.JumpMovementFactor,
		MovementSmoothness: s.MovementSmoothness,
		MaxSpeed:           s.MaxSpeed,
		MaxSlopeAngle:      s.MaxSlopeAngle,
		Gravity:            player.DefaultConfig().Gravity,
		GravityScale:       s.GravityScale,
		AttackStages:       len(s.AttackStages),
	}
	for _, stage := range s.AttackStages {
		cfg.AttackStageDurations = append(cfg.AttackStageDurations, stage.Duration)
		cfg.AttackStageMaxIntervals = append(cfg.AttackStageMaxIntervals, stage.MaxInterval)
	}
	return cfg
}

func (s PlayerSpec) Validate() error {
	if err := s.Collider.validate(PlayerFile); err != nil {
		return err
	}
	if err := s.Config().Validate(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidSpec, PlayerFile, err)
	}
	return nil
}

type EffectSpec struct {
	Name   string      `yaml:"name"`
	Fade   float64     `yaml:"fade"`
	Sounds []AudioSpec `yaml:"sounds"`
}

func (e EffectSpec) clipNames() []string {
	names := make([]string, 0, len(e.Sounds))
	for _, sound := range e.Sounds {
		names = append(names, sound.Name)
	}
	return names
}

type BombSpec struct {
	Name            string       `yaml:"name"`
	ExplosionDelay  float64      `yaml:"explosion_delay"`
	BlastRadius     float64      `yaml:"blast_radius"`
	BlastDamage     float64      `yaml:"blast_damage"`
	DestructibleTag string       `yaml:"destructible_tag"`
	Mass            float64      `yaml:"mass"`
	Collider        ColliderSpec `yaml:"collider"`
	Explosion       EffectSpec   `yaml:"explosion"`
	Break           EffectSpec   `yaml:"break"`
}

func LoadBombSpec() (*BombSpec, error) {
	spec, err := LoadSpec[BombSpec](BombFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s BombSpec) Validate() error {
	if s.ExplosionDelay < 0 {
		return fmt.Errorf("%w: %s: negative explosion delay", ErrInvalidSpec, BombFile)
	}
	if s.BlastRadius <= 0 {
		return fmt.Errorf("%w: %s: blast radius must be positive", ErrInvalidSpec, BombFile)
	}
	if s.Explosion.Fade < 0 || s.Break.Fade < 0 {
		return fmt.Errorf("%w: %s: negative effect fade", ErrInvalidSpec, BombFile)
	}
	return s.Collider.validate(BombFile)
}

// Component builds a fresh, unfired bomb.
func (s BombSpec) Component() *component.Bomb {
	return &component.Bomb{
		ExplosionDelay:  s.ExplosionDelay,
		BlastRadius:     s.BlastRadius,
		BlastDamage:     s.BlastDamage,
		DestructibleTag: physics.Tag(s.DestructibleTag),
		ExplosionEffect: s.Explosion.Name,
		ExplosionFade:   s.Explosion.Fade,
		ExplosionSounds: s.Explosion.clipNames(),
		BreakEffect:     s.Break.Name,
		BreakFade:       s.Break.Fade,
		BreakSounds:     s.Break.clipNames(),
	}
}

// AudioSpecs lists every clip the bomb can play.
func (s BombSpec) AudioSpecs() []AudioSpec {
	out := make([]AudioSpec, 0, len(s.Explosion.Sounds)+len(s.Break.Sounds))
	out = append(out, s.Explosion.Sounds...)
	return append(out, s.Break.Sounds...)
}

type PlatformSpec struct {
	Name      string        `yaml:"name"`
	Tag       string        `yaml:"tag"`
	Transform TransformSpec `yaml:"transform"`
	Width     float64       `yaml:"width"`
	Height    float64       `yaml:"height"`
	Angle     float64       `yaml:"angle"`
	// Health of zero makes the platform indestructible.
	Health int `yaml:"health"`
}

type LevelSpec struct {
	Name        string          `yaml:"name"`
	GroundTags  []string        `yaml:"ground_tags"`
	KillY       float64         `yaml:"kill_y"`
	RulesScript string          `yaml:"rules_script"`
	Spawn       TransformSpec   `yaml:"spawn"`
	Platforms   []PlatformSpec  `yaml:"platforms"`
	Bombs       []TransformSpec `yaml:"bombs"`
}

func LoadLevelSpec(name string) (*LevelSpec, error) {
	if name == "" {
		name = LevelFile
	}
	spec, err := LoadSpec[LevelSpec](name)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s LevelSpec) Validate() error {
	for i, p := range s.Platforms {
		if p.Width <= 0 || p.Height <= 0 {
			return fmt.Errorf("%w: level %q: platform %d (%q) needs a positive size", ErrInvalidSpec, s.Name, i, p.Name)
		}
		if p.Health < 0 {
			return fmt.Errorf("%w: level %q: platform %d (%q) has negative health", ErrInvalidSpec, s.Name, i, p.Name)
		}
	}
	if s.Spawn.Y <= s.KillY {
		return fmt.Errorf("%w: level %q: spawn is below kill_y", ErrInvalidSpec, s.Name)
	}
	return nil
}

// Ground returns the walkable tags, or nil to use the default set.
func (s LevelSpec) Ground() []physics.Tag {
	if len(s.GroundTags) == 0 {
		return nil
	}
	tags := make([]physics.Tag, 0, len(s.GroundTags))
	for _, tag := range s.GroundTags {
		tags = append(tags, physics.Tag(tag))
	}
	return tags
}
