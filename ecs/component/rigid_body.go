package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/brawler/physics"
)

// RigidBody links an entity to its physics body. The entity's Transform
// follows the body after every physics step.
type RigidBody struct {
	Body physics.Body
	// Gravity is applied as an acceleration every fixed tick. Bodies whose
	// controller applies its own gravity leave it zero.
	Gravity mgl64.Vec3
}

var RigidBodyComponent = NewComponent[RigidBody]()
