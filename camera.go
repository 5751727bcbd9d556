package main

import (
	"log"
	"math"
)

const cameraTurnSpeed = 90 // degrees per second

// orbitCamera is the third-person camera's yaw around the player.
type orbitCamera struct {
	yaw float64
}

func (c *orbitCamera) Yaw() float64 {
	return c.yaw
}

// Turn orbits by dir*cameraTurnSpeed*dt, keeping yaw in [0, 360).
func (c *orbitCamera) Turn(dir, dt float64) {
	if dir == 0 {
		return
	}
	c.yaw = math.Mod(c.yaw+dir*cameraTurnSpeed*dt, 360)
	if c.yaw < 0 {
		c.yaw += 360
	}
}

// hudAnimator records the animation parameters for the debug overlay.
type hudAnimator struct {
	lastTrigger string
	velocity    float64
	debug       bool
}

func (a *hudAnimator) SetTrigger(name string) {
	a.lastTrigger = name
	if a.debug {
		log.Printf("anim: trigger %s", name)
	}
}

func (a *hudAnimator) SetFloat(name string, value float64) {
	if name == "fvelocity" {
		a.velocity = value
	}
}
