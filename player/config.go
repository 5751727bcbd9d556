package player

import (
	"errors"
	"fmt"
)

var ErrInvalidConfig = errors.New("player: invalid config")

// Config is the static per-entity tuning set at spawn time.
type Config struct {
	MovementSpeed      float64
	Acceleration       float64
	JumpPower          float64
	JumpMovementFactor float64
	MovementSmoothness float64
	MaxSpeed           float64
	MaxSlopeAngle      float64 // degrees
	Gravity            float64
	GravityScale       float64

	AttackStages            int
	AttackStageDurations    []float64
	AttackStageMaxIntervals []float64
}

func DefaultConfig() Config {
	return Config{
		MovementSpeed:           10,
		Acceleration:            100,
		JumpPower:               10,
		JumpMovementFactor:      1,
		MovementSmoothness:      0.5,
		MaxSpeed:                10,
		MaxSlopeAngle:           45,
		Gravity:                 9.81,
		GravityScale:            1,
		AttackStages:            3,
		AttackStageDurations:    []float64{0.3, 0.3, 0.4},
		AttackStageMaxIntervals: []float64{0.2, 0.2, 0},
	}
}

// Validate rejects tuning the state machine cannot run with.
func (c Config) Validate() error {
	if c.AttackStages < 1 {
		return fmt.Errorf("%w: attack stages must be at least 1, got %d", ErrInvalidConfig, c.AttackStages)
	}
	if len(c.AttackStageDurations) != c.AttackStages {
		return fmt.Errorf("%w: %d attack stage durations for %d stages", ErrInvalidConfig, len(c.AttackStageDurations), c.AttackStages)
	}
	if len(c.AttackStageMaxIntervals) != c.AttackStages {
		return fmt.Errorf("%w: %d attack stage intervals for %d stages", ErrInvalidConfig, len(c.AttackStageMaxIntervals), c.AttackStages)
	}
	for i := 0; i < c.AttackStages; i++ {
		if c.AttackStageDurations[i] < 0 || c.AttackStageMaxIntervals[i] < 0 {
			return fmt.Errorf("%w: attack stage %d has a negative timing", ErrInvalidConfig, i+1)
		}
	}
	if c.MovementSmoothness < 0 || c.MovementSmoothness > 1 {
		return fmt.Errorf("%w: movement smoothness %.3f outside [0, 1]", ErrInvalidConfig, c.MovementSmoothness)
	}
	if c.MovementSpeed <= 0 {
		return fmt.Errorf("%w: movement speed must be positive", ErrInvalidConfig)
	}
	if c.MaxSpeed <= 0 {
		return fmt.Errorf("%w: max speed must be positive", ErrInvalidConfig)
	}
	if c.MaxSlopeAngle < 0 || c.MaxSlopeAngle > 90 {
		return fmt.Errorf("%w: max slope angle %.1f outside [0, 90]", ErrInvalidConfig, c.MaxSlopeAngle)
	}
	return nil
}
