package cpworld

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/brawler/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var down = mgl64.Vec3{0, -1, 0}

func TestRaycastFlatPlatform(t *testing.T) {
	w := New()
	w.AddPlatform(7, physics.TagPlatform, mgl64.Vec3{0, 0, 0}, 10, 1, 0)

	hit, ok := w.Raycast(mgl64.Vec3{0, 5, 2}, down, 10, physics.LayerAll)
	require.True(t, ok)
	assert.InDelta(t, 0.5, hit.Point.Y(), 1e-6)
	assert.Equal(t, 2.0, hit.Point.Z())
	assert.InDelta(t, 4.5, hit.Distance, 1e-6)
	assert.True(t, hit.Normal.ApproxEqualThreshold(mgl64.Vec3{0, 1, 0}, 1e-6))
	assert.Equal(t, uint64(7), hit.Collider.Owner)
	assert.Equal(t, physics.TagPlatform, hit.Collider.Tag)
	assert.Equal(t, mgl64.Vec3{0, 0, 2}, hit.Collider.Position)
}

func TestRaycastMisses(t *testing.T) {
	w := New()
	w.AddPlatform(1, physics.TagPlatform, mgl64.Vec3{0, 0, 0}, 2, 1, 0)

	tests := []struct {
		name   string
		origin mgl64.Vec3
		dir    mgl64.Vec3
		max    float64
		mask   physics.LayerMask
	}{
		{"too_short", mgl64.Vec3{0, 5, 0}, down, 2, physics.LayerAll},
		{"beside", mgl64.Vec3{5, 5, 0}, down, 10, physics.LayerAll},
		{"pointing_up", mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0, 1, 0}, 10, physics.LayerAll},
		{"depth_only_direction", mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0, 0, 1}, 10, physics.LayerAll},
		{"masked_out", mgl64.Vec3{0, 5, 0}, down, 10, physics.LayerPlayer},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := w.Raycast(tc.origin, tc.dir, tc.max, tc.mask)
			assert.False(t, ok)
		})
	}
}

func TestRaycastSlopedPlatformNormal(t *testing.T) {
	w := New()
	w.AddPlatform(1, physics.TagPlatform, mgl64.Vec3{0, 0, 0}, 20, 1, 30)

	hit, ok := w.Raycast(mgl64.Vec3{0, 5, 0}, down, 10, physics.LayerAll)
	require.True(t, ok)

	angle := mgl64.RadToDeg(math.Acos(hit.Normal.Normalize().Dot(mgl64.Vec3{0, 1, 0})))
	assert.InDelta(t, 30, angle, 1e-4)
	assert.Less(t, hit.Normal.X(), 0.0, "top tilts toward -X")
}

func TestSphereCastHitsEarlierThanRay(t *testing.T) {
	w := New()
	w.AddPlatform(1, physics.TagWater, mgl64.Vec3{0, 0, 0}, 10, 1, 0)

	ray, ok := w.Raycast(mgl64.Vec3{0, 3, 0}, down, 5, physics.LayerAll)
	require.True(t, ok)
	sphere, ok := w.SphereCast(mgl64.Vec3{0, 3, 0}, 0.5, down, 5, physics.LayerAll)
	require.True(t, ok)

	assert.Less(t, sphere.Distance, ray.Distance)
	assert.Equal(t, physics.TagWater, sphere.Collider.Tag)
}

func TestOverlapSphere(t *testing.T) {
	w := New()
	w.AddPlatform(1, physics.TagPlatform, mgl64.Vec3{1, 0, 0}, 1, 1, 0)
	w.AddPlatform(2, physics.TagPlatform, mgl64.Vec3{-1, 0, 0}, 1, 1, 0)
	w.AddPlatform(3, physics.TagPlatform, mgl64.Vec3{6, 0, 0}, 1, 1, 0)
	w.AddBody(4, physics.TagBomb, physics.LayerEffect, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0.3, 0.3, 0.3}, 1)

	owners := func(cs []physics.Collider) []uint64 {
		var out []uint64
		for _, c := range cs {
			out = append(out, c.Owner)
		}
		return out
	}

	got := owners(w.OverlapSphere(mgl64.Vec3{0, 0, 0}, 1.5, physics.LayerAll))
	assert.ElementsMatch(t, []uint64{1, 2, 4}, got)

	got = owners(w.OverlapSphere(mgl64.Vec3{0, 0, 0}, 1.5, physics.LayerDefault))
	assert.ElementsMatch(t, []uint64{1, 2}, got)

	assert.Empty(t, w.OverlapSphere(mgl64.Vec3{0, 0, 0}, 0, physics.LayerAll))
}

func TestOverlapSphereSkipsBoxesOnlyNearTheBounds(t *testing.T) {
	w := New()
	// bounds overlap the sphere's box but the nearest corner is ~1.84 away
	w.AddPlatform(1, physics.TagPlatform, mgl64.Vec3{1.8, 1.8, 0}, 1, 1, 0)
	w.AddPlatform(2, physics.TagPlatform, mgl64.Vec3{1.8, 0, 0}, 1, 1, 0)

	got := w.OverlapSphere(mgl64.Vec3{0, 0, 0}, 1.5, physics.LayerAll)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(2), got[0].Owner)
}

func TestRemoveOwner(t *testing.T) {
	w := New()
	w.AddPlatform(1, physics.TagPlatform, mgl64.Vec3{0, 0, 0}, 4, 1, 0)
	b := w.AddBody(2, physics.TagBomb, physics.LayerEffect, mgl64.Vec3{0, 3, 0}, mgl64.Vec3{0.3, 0.3, 0.3}, 1)
	require.NotNil(t, b)

	w.RemoveOwner(1)
	w.RemoveOwner(2)
	w.RemoveOwner(99)

	_, ok := w.Raycast(mgl64.Vec3{0, 5, 0}, down, 10, physics.LayerAll)
	assert.False(t, ok)
	assert.Empty(t, w.bodies)
	assert.NotPanics(t, func() { w.Step(0.02) })
}

func TestBodyForces(t *testing.T) {
	tests := []struct {
		name  string
		force mgl64.Vec3
		mode  physics.ForceMode
		mass  float64
		step  float64
		want  mgl64.Vec3
	}{
		{"acceleration", mgl64.Vec3{0, -10, 0}, physics.ForceModeAcceleration, 2, 0.1, mgl64.Vec3{0, -1, 0}},
		{"force_divides_by_mass", mgl64.Vec3{4, 0, 0}, physics.ForceModeForce, 2, 0.5, mgl64.Vec3{1, 0, 0}},
		{"impulse", mgl64.Vec3{0, 6, 0}, physics.ForceModeImpulse, 2, 0, mgl64.Vec3{0, 3, 0}},
		{"velocity_change", mgl64.Vec3{3, 1, 0}, physics.ForceModeVelocityChange, 5, 0, mgl64.Vec3{3, 1, 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := New()
			b := w.AddBody(1, physics.TagPlayer, physics.LayerPlayer, mgl64.Vec3{0, 10, 0}, mgl64.Vec3{1, 2, 1}, tc.mass)

			b.AddForce(tc.force, tc.mode)
			w.Step(tc.step)

			assert.True(t, b.Velocity().ApproxEqualThreshold(tc.want, 1e-9), "got %v", b.Velocity())
		})
	}
}

func TestBodyIgnoresEngineGravity(t *testing.T) {
	w := New()
	b := w.AddBody(1, physics.TagPlayer, physics.LayerPlayer, mgl64.Vec3{0, 10, 0}, mgl64.Vec3{1, 2, 1}, 1)

	for i := 0; i < 10; i++ {
		w.Step(0.02)
	}

	assert.Equal(t, mgl64.Vec3{0, 10, 0}, b.Position())
}

func TestBodyDepthIsKinematic(t *testing.T) {
	w := New()
	b := w.AddBody(1, physics.TagPlayer, physics.LayerPlayer, mgl64.Vec3{0, 10, 0}, mgl64.Vec3{1, 2, 1}, 1)

	b.SetVelocity(mgl64.Vec3{0, 0, 1})
	w.Step(0.1)

	assert.Greater(t, b.Position().Z(), 0.0)
	assert.Less(t, b.Velocity().Z(), 1.0, "depth velocity is damped")
}

func TestBodyLandsOnPlatform(t *testing.T) {
	w := New()
	w.AddPlatform(1, physics.TagPlatform, mgl64.Vec3{0, -0.5, 0}, 10, 1, 0)
	b := w.AddBody(2, physics.TagPlayer, physics.LayerPlayer, mgl64.Vec3{0, 2, 0}, mgl64.Vec3{1, 2, 1}, 1)

	for i := 0; i < 100; i++ {
		b.AddForce(mgl64.Vec3{0, -9.81, 0}, physics.ForceModeAcceleration)
		w.Step(0.02)
	}

	assert.InDelta(t, 1, b.Position().Y(), 0.15)
}

func TestNilWorld(t *testing.T) {
	var w *World
	assert.NotPanics(t, func() {
		w.AddPlatform(1, physics.TagPlatform, mgl64.Vec3{}, 1, 1, 0)
		w.RemoveOwner(1)
		w.Step(0.02)
		_, _ = w.Raycast(mgl64.Vec3{}, down, 1, physics.LayerAll)
		_ = w.OverlapSphere(mgl64.Vec3{}, 1, physics.LayerAll)
	})
	assert.Nil(t, w.Space())
}

func TestTagOf(t *testing.T) {
	w := New()
	w.AddPlatform(1, physics.TagWater, mgl64.Vec3{}, 2, 1, 0)
	body := w.AddBody(2, physics.TagBomb, physics.LayerEffect, mgl64.Vec3{0, 3, 0}, mgl64.Vec3{1, 1, 1}, 1)
	require.NotNil(t, body)

	assert.Equal(t, physics.TagWater, TagOf(w.byOwner[1][0]))
	assert.Equal(t, physics.TagBomb, TagOf(body.shape))
	assert.Equal(t, physics.TagUntagged, TagOf(nil))
}
