package player

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/brawler/common"
)

const (
	groundProbeRadius = 0.33 // of collider width
	groundProbeLength = 0.25 // of collider height
	groundProbeSkin   = 0.05
	slopeProbeLength  = 0.6 // of collider height, below the feet
	// tilts below this many degrees count as flat
	slopeAngleEpsilon = 1e-3
)

// feet is the bottom center of the body's collider bounds.
func (c *Controller) feet() mgl64.Vec3 {
	return c.body.Position().Sub(mgl64.Vec3{0, c.body.Size().Y() / 2, 0})
}

// DetectGround sweeps a short sphere down from the feet. The body is grounded
// when the sweep strikes a collider the game classifies as ground.
func (c *Controller) DetectGround() {
	c.IsGrounded = false
	c.GroundTag = ""

	size := c.body.Size()
	radius := size.X() * groundProbeRadius
	maxDistance := size.Y() * groundProbeLength
	origin := c.feet().Add(common.Up.Mul(radius + groundProbeSkin))

	hit, ok := c.query.SphereCast(origin, radius, common.Down, maxDistance+groundProbeSkin, c.mask)
	if !ok {
		return
	}
	c.GroundTag = hit.Collider.Tag
	c.IsGrounded = c.game.IsGround(hit.Collider.Tag)
}

// DetectSlope casts a ray down from the body center and measures the tilt of
// the surface beneath it.
func (c *Controller) DetectSlope() {
	c.IsOnSlope = false
	c.SlopeNormal = mgl64.Vec3{}

	height := c.body.Size().Y()
	hit, ok := c.query.Raycast(c.body.Position(), common.Down, height/2+height*slopeProbeLength, c.mask)
	if !ok {
		return
	}
	angle := common.AngleBetween(common.Up, hit.Normal)
	if angle > slopeAngleEpsilon && angle < c.Config.MaxSlopeAngle {
		c.IsOnSlope = true
		c.SlopeNormal = hit.Normal.Normalize()
	}
}
