// Package cpworld is a reference physics host built on Chipmunk2D. The
// simulation runs in the vertical X/Y slice of the world; depth (Z) is
// integrated kinematically and does not collide. Static platforms span the
// full depth.
package cpworld

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/common"
	"github.com/milk9111/brawler/physics"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeDynamic
)

const (
	defaultIterations = 20
	defaultFriction   = 0.8
	defaultDepthDrag  = 8.0
)

// World owns the Chipmunk space and the colliders registered by owner id.
type World struct {
	space     *cp.Space
	depthDrag float64
	debug     bool

	bodies  []*Body
	byOwner map[uint64][]*cp.Shape
}

var _ physics.World = (*World)(nil)

// New creates a world with engine gravity pointing down. Bodies created with
// AddBody opt out of engine gravity; their controller applies its own.
func New() *World {
	space := cp.NewSpace()
	space.Iterations = defaultIterations
	space.SetGravity(cp.Vector{X: 0, Y: -common.Gravity})
	return &World{
		space:     space,
		depthDrag: defaultDepthDrag,
		byOwner:   make(map[uint64][]*cp.Shape),
	}
}

// SetDebug enables collider registration logging.
func (w *World) SetDebug(debug bool) {
	w.debug = debug
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// AddPlatform registers a static box centered on center, rotated by
// angleDeg about the depth axis (positive tilts the top toward -X).
func (w *World) AddPlatform(owner uint64, tag physics.Tag, center mgl64.Vec3, width, height, angleDeg float64) {
	if w == nil || width <= 0 || height <= 0 {
		return
	}
	rot := cp.ForAngle(mgl64.DegToRad(angleDeg))
	origin := cp.Vector{X: center.X(), Y: center.Y()}
	hw, hh := width/2, height/2
	corners := []cp.Vector{{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh}}
	verts := make([]cp.Vector, len(corners))
	for i, c := range corners {
		verts[i] = origin.Add(c.Rotate(rot))
	}

	shape := cp.NewPolyShapeRaw(w.space.StaticBody, len(verts), verts, 0)
	shape.SetFriction(defaultFriction)
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(physics.LayerDefault), cp.ALL_CATEGORIES))
	shape.UserData = &colliderData{owner: owner, tag: tag, center: &origin}
	w.space.AddShape(shape)

	w.byOwner[owner] = append(w.byOwner[owner], shape)
	if w.debug {
		log.Printf("cpworld: platform owner=%d tag=%q at=(%.2f, %.2f) angle=%.1f", owner, tag, center.X(), center.Y(), angleDeg)
	}
}

// AddBody registers a dynamic box with fixed rotation on layer.
func (w *World) AddBody(owner uint64, tag physics.Tag, layer physics.LayerMask, position, size mgl64.Vec3, mass float64) *Body {
	if w == nil {
		return nil
	}
	if mass <= 0 {
		mass = 1
	}
	cpBody := cp.NewBody(mass, math.Inf(1))
	cpBody.SetPosition(cp.Vector{X: position.X(), Y: position.Y()})
	cpBody.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		cp.BodyUpdateVelocity(body, cp.Vector{}, damping, dt)
	})
	w.space.AddBody(cpBody)

	shape := cp.NewBox(cpBody, size.X(), size.Y(), 0)
	shape.SetFriction(defaultFriction)
	shape.SetCollisionType(collisionTypeDynamic)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(layer), cp.ALL_CATEGORIES))
	shape.UserData = &colliderData{owner: owner, tag: tag}
	w.space.AddShape(shape)

	b := &Body{
		body:     cpBody,
		shape:    shape,
		size:     size,
		z:        position.Z(),
		rotation: mgl64.QuatIdent(),
	}
	w.bodies = append(w.bodies, b)
	w.byOwner[owner] = append(w.byOwner[owner], shape)
	if w.debug {
		log.Printf("cpworld: body owner=%d tag=%q mass=%.2f", owner, tag, mass)
	}
	return b
}

// RemoveOwner removes every collider registered for owner.
func (w *World) RemoveOwner(owner uint64) {
	if w == nil {
		return
	}
	shapes, ok := w.byOwner[owner]
	if !ok {
		return
	}
	for _, shape := range shapes {
		body := shape.Body()
		w.space.RemoveShape(shape)
		if body != nil && body != w.space.StaticBody {
			w.space.RemoveBody(body)
		}
		w.dropBody(body)
	}
	delete(w.byOwner, owner)
}

func (w *World) dropBody(body *cp.Body) {
	for i, b := range w.bodies {
		if b.body == body {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			return
		}
	}
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	for _, b := range w.bodies {
		b.integrate(dt, w.depthDrag)
	}
	w.space.Step(dt)
	for _, b := range w.bodies {
		b.z += b.vz * dt
	}
}

func (w *World) Raycast(origin, dir mgl64.Vec3, maxDistance float64, mask physics.LayerMask) (physics.Hit, bool) {
	return w.cast(origin, 0, dir, maxDistance, mask)
}

func (w *World) SphereCast(origin mgl64.Vec3, radius float64, dir mgl64.Vec3, maxDistance float64, mask physics.LayerMask) (physics.Hit, bool) {
	return w.cast(origin, radius, dir, maxDistance, mask)
}

func (w *World) cast(origin mgl64.Vec3, radius float64, dir mgl64.Vec3, maxDistance float64, mask physics.LayerMask) (physics.Hit, bool) {
	if w == nil || maxDistance <= 0 {
		return physics.Hit{}, false
	}
	planar := cp.Vector{X: dir.X(), Y: dir.Y()}
	if planar.Length() == 0 {
		return physics.Hit{}, false
	}
	planar = planar.Normalize()
	start := cp.Vector{X: origin.X(), Y: origin.Y()}
	end := start.Add(planar.Mult(maxDistance))

	info := w.space.SegmentQueryFirst(start, end, radius, queryFilter(mask))
	if info.Shape == nil {
		return physics.Hit{}, false
	}
	return physics.Hit{
		Point:    mgl64.Vec3{info.Point.X, info.Point.Y, origin.Z()},
		Normal:   mgl64.Vec3{info.Normal.X, info.Normal.Y, 0},
		Distance: info.Alpha * maxDistance,
		Collider: colliderFor(info.Shape, origin.Z()),
	}, true
}

func (w *World) OverlapSphere(center mgl64.Vec3, radius float64, mask physics.LayerMask) []physics.Collider {
	if w == nil || radius <= 0 {
		return nil
	}
	var out []physics.Collider
	seen := make(map[*cp.Shape]struct{})
	pt := cp.Vector{X: center.X(), Y: center.Y()}
	// the bounding box query is coarse; keep only shapes whose surface is in range
	w.space.BBQuery(cp.NewBBForCircle(pt, radius), queryFilter(mask), func(shape *cp.Shape, _ interface{}) {
		if _, ok := seen[shape]; ok {
			return
		}
		if shape.PointQuery(pt).Distance > radius {
			return
		}
		seen[shape] = struct{}{}
		out = append(out, colliderFor(shape, center.Z()))
	}, nil)
	return out
}

type colliderData struct {
	owner uint64
	tag   physics.Tag
	// static shapes share the space's static body, so they carry their own center
	center *cp.Vector
}

func colliderFor(shape *cp.Shape, z float64) physics.Collider {
	c := physics.Collider{}
	data, _ := shape.UserData.(*colliderData)
	if data != nil {
		c.Owner = data.owner
		c.Tag = data.tag
	}
	if data != nil && data.center != nil {
		c.Position = mgl64.Vec3{data.center.X, data.center.Y, z}
	} else if body := shape.Body(); body != nil {
		p := body.Position()
		c.Position = mgl64.Vec3{p.X, p.Y, z}
	}
	return c
}

func queryFilter(mask physics.LayerMask) cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(mask))
}

// TagOf returns the tag a shape was registered with.
func TagOf(shape *cp.Shape) physics.Tag {
	if shape == nil {
		return physics.TagUntagged
	}
	if data, ok := shape.UserData.(*colliderData); ok {
		return data.tag
	}
	return physics.TagUntagged
}
