package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrbitCameraTurn(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		dir   float64
		dt    float64
		want  float64
	}{
		{"idle", 45, 0, 1, 45},
		{"right", 0, 1, 0.5, 45},
		{"left wraps", 10, -1, 0.5, 325},
		{"right wraps", 350, 1, 0.5, 35},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &orbitCamera{yaw: tt.start}
			c.Turn(tt.dir, tt.dt)
			assert.InDelta(t, tt.want, c.Yaw(), 1e-9)
		})
	}
}

func TestHudAnimatorRecordsTriggers(t *testing.T) {
	a := &hudAnimator{}
	a.SetTrigger("tAttack1")
	a.SetFloat("fvelocity", 0.5)
	a.SetFloat("other", 9)

	assert.Equal(t, "tAttack1", a.lastTrigger)
	assert.Equal(t, 0.5, a.velocity)
}
