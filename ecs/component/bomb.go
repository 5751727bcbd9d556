package component

import "github.com/milk9111/brawler/physics"

// Bomb explodes once after ExplosionDelay seconds and damages destructible
// colliders inside BlastRadius.
type Bomb struct {
	ExplosionDelay  float64
	BlastRadius     float64
	BlastDamage     float64
	DestructibleTag physics.Tag

	ExplosionEffect string
	ExplosionFade   float64
	ExplosionSounds []string
	BreakEffect     string
	BreakFade       float64
	BreakSounds     []string

	Elapsed float64
	Fired   bool
}

var BombComponent = NewComponent[Bomb]()
