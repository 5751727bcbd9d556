package cpworld

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/physics"
)

// Body adapts a Chipmunk body to physics.Body. Position is the center of
// the collider bounds.
type Body struct {
	body  *cp.Body
	shape *cp.Shape
	size  mgl64.Vec3

	z, vz    float64
	rotation mgl64.Quat

	// continuous acceleration accumulated until the next step
	pending mgl64.Vec3
}

var _ physics.Body = (*Body)(nil)

func (b *Body) Position() mgl64.Vec3 {
	p := b.body.Position()
	return mgl64.Vec3{p.X, p.Y, b.z}
}

// SetPosition teleports the body.
func (b *Body) SetPosition(p mgl64.Vec3) {
	b.body.SetPosition(cp.Vector{X: p.X(), Y: p.Y()})
	b.z = p.Z()
}

func (b *Body) Rotation() mgl64.Quat {
	return b.rotation
}

func (b *Body) Velocity() mgl64.Vec3 {
	v := b.body.Velocity()
	return mgl64.Vec3{v.X, v.Y, b.vz}
}

func (b *Body) SetVelocity(v mgl64.Vec3) {
	b.body.SetVelocityVector(cp.Vector{X: v.X(), Y: v.Y()})
	b.vz = v.Z()
}

func (b *Body) AddForce(f mgl64.Vec3, mode physics.ForceMode) {
	mass := b.body.Mass()
	switch mode {
	case physics.ForceModeForce:
		b.pending = b.pending.Add(f.Mul(1 / mass))
	case physics.ForceModeAcceleration:
		b.pending = b.pending.Add(f)
	case physics.ForceModeImpulse:
		b.SetVelocity(b.Velocity().Add(f.Mul(1 / mass)))
	case physics.ForceModeVelocityChange:
		b.SetVelocity(b.Velocity().Add(f))
	}
}

func (b *Body) MoveRotation(q mgl64.Quat) {
	b.rotation = q
}

func (b *Body) Size() mgl64.Vec3 {
	return b.size
}

func (b *Body) integrate(dt, depthDrag float64) {
	v := b.Velocity().Add(b.pending.Mul(dt))
	b.pending = mgl64.Vec3{}
	v[2] /= 1 + depthDrag*dt
	b.SetVelocity(v)
}
