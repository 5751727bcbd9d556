package player

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/brawler/physics"
)

type fakeBody struct {
	position mgl64.Vec3
	rotation mgl64.Quat
	velocity mgl64.Vec3
	size     mgl64.Vec3

	forces    []appliedForce
	rotations int
}

type appliedForce struct {
	force mgl64.Vec3
	mode  physics.ForceMode
}

func newFakeBody() *fakeBody {
	return &fakeBody{
		position: mgl64.Vec3{0, 1, 0},
		rotation: mgl64.QuatIdent(),
		size:     mgl64.Vec3{1, 2, 1},
	}
}

func (b *fakeBody) Position() mgl64.Vec3      { return b.position }
func (b *fakeBody) Rotation() mgl64.Quat      { return b.rotation }
func (b *fakeBody) Velocity() mgl64.Vec3      { return b.velocity }
func (b *fakeBody) SetVelocity(v mgl64.Vec3)  { b.velocity = v }
func (b *fakeBody) Size() mgl64.Vec3          { return b.size }
func (b *fakeBody) MoveRotation(q mgl64.Quat) { b.rotation = q; b.rotations++ }

func (b *fakeBody) AddForce(f mgl64.Vec3, mode physics.ForceMode) {
	b.forces = append(b.forces, appliedForce{force: f, mode: mode})
	if mode == physics.ForceModeVelocityChange || mode == physics.ForceModeImpulse {
		b.velocity = b.velocity.Add(f)
	}
}

// fakeQuery answers every downward probe with the same ground.
type fakeQuery struct {
	ground   bool
	tag      physics.Tag
	normal   mgl64.Vec3
	distance float64
}

func groundQuery(tag physics.Tag) *fakeQuery {
	return &fakeQuery{ground: true, tag: tag, normal: mgl64.Vec3{0, 1, 0}, distance: 0.05}
}

func (q *fakeQuery) hit() (physics.Hit, bool) {
	if !q.ground {
		return physics.Hit{}, false
	}
	return physics.Hit{
		Normal:   q.normal,
		Distance: q.distance,
		Collider: physics.Collider{Tag: q.tag},
	}, true
}

func (q *fakeQuery) Raycast(_, _ mgl64.Vec3, _ float64, _ physics.LayerMask) (physics.Hit, bool) {
	return q.hit()
}

func (q *fakeQuery) SphereCast(_ mgl64.Vec3, _ float64, _ mgl64.Vec3, _ float64, _ physics.LayerMask) (physics.Hit, bool) {
	return q.hit()
}

func (q *fakeQuery) OverlapSphere(_ mgl64.Vec3, _ float64, _ physics.LayerMask) []physics.Collider {
	return nil
}

type fakeAnimator struct {
	triggers []string
	floats   map[string]float64
}

func (a *fakeAnimator) SetTrigger(name string) {
	a.triggers = append(a.triggers, name)
}

func (a *fakeAnimator) SetFloat(name string, value float64) {
	if a.floats == nil {
		a.floats = map[string]float64{}
	}
	a.floats[name] = value
}

type fakeCamera struct {
	yaw float64
}

func (c *fakeCamera) Yaw() float64 { return c.yaw }
