package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Gravity is the default downward acceleration in world units per second squared.
const Gravity = 9.81

var (
	Up   = mgl64.Vec3{0, 1, 0}
	Down = mgl64.Vec3{0, -1, 0}
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp01(v float64) float64 {
	return mgl64.Clamp(v, 0, 1)
}

// YawRotation returns a rotation of deg degrees about world up.
// Positive yaw turns +Z toward +X.
func YawRotation(deg float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(deg), Up)
}

// LookRotationPlanar returns the yaw rotation whose forward (+Z) points along
// the horizontal part of dir. The identity is returned for a vertical or zero dir.
func LookRotationPlanar(dir mgl64.Vec3) mgl64.Quat {
	if dir.X() == 0 && dir.Z() == 0 {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatRotate(math.Atan2(dir.X(), dir.Z()), Up)
}

// LerpUnclamped interpolates between two rotations without clamping t, so
// t > 1 extrapolates past b. The result is normalized.
func LerpUnclamped(a, b mgl64.Quat, t float64) mgl64.Quat {
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl64.QuatLerp(a, b, t).Normalize()
}

// Planar drops the vertical component.
func Planar(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}

// ClampPlanar limits the horizontal magnitude of v to max, leaving Y untouched.
func ClampPlanar(v mgl64.Vec3, max float64) mgl64.Vec3 {
	planar := Planar(v)
	speed := planar.Len()
	if speed <= max || speed == 0 {
		return v
	}
	planar = planar.Mul(max / speed)
	return mgl64.Vec3{planar.X(), v.Y(), planar.Z()}
}

// AngleBetween returns the angle between a and b in degrees.
func AngleBetween(a, b mgl64.Vec3) float64 {
	la, lb := a.Len(), b.Len()
	if la == 0 || lb == 0 {
		return 0
	}
	cos := mgl64.Clamp(a.Dot(b)/(la*lb), -1, 1)
	return mgl64.RadToDeg(math.Acos(cos))
}

// ProjectOnPlane removes the component of v along the plane normal n.
func ProjectOnPlane(v, n mgl64.Vec3) mgl64.Vec3 {
	sq := n.Dot(n)
	if sq == 0 {
		return v
	}
	return v.Sub(n.Mul(v.Dot(n) / sq))
}
