package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/physics"
)

// Stepper advances a physics simulation.
type Stepper interface {
	Step(dt float64)
}

// PhysicsSystem applies per-body gravity, steps the simulation and copies
// body poses back into Transforms. It runs on the fixed tick.
type PhysicsSystem struct {
	stepper Stepper
}

func NewPhysicsSystem(stepper Stepper) *PhysicsSystem {
	return &PhysicsSystem{stepper: stepper}
}

func (s *PhysicsSystem) FixedUpdate(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.RigidBodyComponent.Kind(), func(_ ecs.Entity, rb *component.RigidBody) {
		if rb.Body == nil || rb.Gravity == (mgl64.Vec3{}) {
			return
		}
		rb.Body.AddForce(rb.Gravity, physics.ForceModeAcceleration)
	})

	if s.stepper != nil {
		s.stepper.Step(dt)
	}

	ecs.ForEach2(w, component.RigidBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, rb *component.RigidBody, t *component.Transform) {
		if rb.Body == nil {
			return
		}
		t.Position = rb.Body.Position()
		t.Rotation = rb.Body.Rotation()
	})
}
