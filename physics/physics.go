// Package physics describes the physics engine the gameplay code consumes:
// world queries and the rigid body of a controlled entity. The engine itself
// is provided by the host; see package cpworld for a reference host.
package physics

import "github.com/go-gl/mathgl/mgl64"

// Tag classifies the object a collider belongs to.
type Tag string

const (
	TagUntagged Tag = ""
	TagPlatform Tag = "Platform"
	TagWater    Tag = "Water"
	TagPlayer   Tag = "Player"
	TagBomb     Tag = "Bomb"
)

// LayerMask selects collider layers for a query.
type LayerMask uint32

const (
	LayerDefault LayerMask = 1 << iota
	LayerPlayer
	LayerEffect

	LayerAll LayerMask = ^LayerMask(0)
)

// Hit describes the first surface struck by a cast.
type Hit struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
	Collider Collider
}

// Collider is a query result. Owner is the id of the entity the collider
// was registered for, zero when it belongs to no entity.
type Collider struct {
	Owner    uint64
	Tag      Tag
	Position mgl64.Vec3
}

// Query answers geometric questions about the world.
type Query interface {
	// Raycast returns the closest hit along dir within maxDistance.
	Raycast(origin, dir mgl64.Vec3, maxDistance float64, mask LayerMask) (Hit, bool)
	// SphereCast sweeps a sphere of radius along dir.
	SphereCast(origin mgl64.Vec3, radius float64, dir mgl64.Vec3, maxDistance float64, mask LayerMask) (Hit, bool)
	// OverlapSphere returns every collider touching the sphere.
	OverlapSphere(center mgl64.Vec3, radius float64, mask LayerMask) []Collider
}

// ForceMode selects how AddForce changes a body's velocity.
type ForceMode int

const (
	// ForceModeForce is a continuous force, scaled by dt and divided by mass.
	ForceModeForce ForceMode = iota
	// ForceModeAcceleration is a continuous acceleration, scaled by dt.
	ForceModeAcceleration
	// ForceModeImpulse is an instant impulse, divided by mass.
	ForceModeImpulse
	// ForceModeVelocityChange is an instant velocity change.
	ForceModeVelocityChange
)

func (m ForceMode) String() string {
	switch m {
	case ForceModeForce:
		return "force"
	case ForceModeAcceleration:
		return "acceleration"
	case ForceModeImpulse:
		return "impulse"
	case ForceModeVelocityChange:
		return "velocity_change"
	default:
		return "unknown"
	}
}

// Body is the rigid body a controller drives. Rotation is kinematic:
// MoveRotation replaces the orientation outright.
type Body interface {
	Position() mgl64.Vec3
	Rotation() mgl64.Quat
	Velocity() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)
	AddForce(f mgl64.Vec3, mode ForceMode)
	MoveRotation(q mgl64.Quat)
	// Size is the extent of the body's collider bounds.
	Size() mgl64.Vec3
}

// World is a Query that can also forget colliders of removed entities.
type World interface {
	Query
	RemoveOwner(owner uint64)
}
