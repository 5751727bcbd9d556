// Package render draws the playable slice of the world with vector strokes:
// colliders from the Chipmunk space and transient effects from the ECS.
package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/physics"
	"github.com/milk9111/brawler/physics/cpworld"
	"golang.org/x/image/colornames"
)

const (
	circleSegments = 24
	dotSize        = 0.1
	strokeWidth    = 2
)

// View maps world units onto the screen. World +Y is screen up.
type View struct {
	CenterX, CenterY float64
	// Zoom is pixels per world unit.
	Zoom          float64
	Width, Height float64
}

// ToScreen converts a world position in the X/Y slice to screen pixels.
func (v View) ToScreen(x, y float64) (float32, float32) {
	sx := (x-v.CenterX)*v.Zoom + v.Width/2
	sy := v.Height/2 - (y-v.CenterY)*v.Zoom
	return float32(sx), float32(sy)
}

// TagColor is the stroke color for colliders carrying tag.
func TagColor(tag physics.Tag) color.RGBA {
	switch tag {
	case physics.TagPlatform:
		return colornames.Sandybrown
	case physics.TagWater:
		return colornames.Steelblue
	case physics.TagPlayer:
		return colornames.Gold
	case physics.TagBomb:
		return colornames.Crimson
	default:
		return colornames.Lightgrey
	}
}

// DrawSpace outlines every shape in space.
func DrawSpace(screen *ebiten.Image, space *cp.Space, view View) {
	if screen == nil || space == nil {
		return
	}
	cp.DrawSpace(space, &spaceDrawer{screen: screen, view: view})
}

// DrawEffects draws each live effect as a ring that shrinks with its TTL.
func DrawEffects(screen *ebiten.Image, w *ecs.World, view View) {
	if screen == nil || w == nil {
		return
	}
	ecs.ForEach3(w, component.EffectComponent.Kind(), component.TransformComponent.Kind(), component.TTLComponent.Kind(),
		func(_ ecs.Entity, effect *component.Effect, t *component.Transform, ttl *component.TTL) {
			x, y := view.ToScreen(t.Position.X(), t.Position.Y())
			radius := float32(math.Max(ttl.Seconds, 0) * view.Zoom)
			if radius <= 0 {
				return
			}
			vector.StrokeCircle(screen, x, y, radius, strokeWidth, effectColor(effect.Name), true)
		})
}

func effectColor(name string) color.RGBA {
	if name == "explosion" {
		return colornames.Orangered
	}
	return colornames.Burlywood
}

type spaceDrawer struct {
	screen *ebiten.Image
	view   View
}

func (d *spaceDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawCircle(pos, radius, fill)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, fill)
}

func (d *spaceDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *spaceDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
	d.drawCircle(a, radius, fill)
	d.drawCircle(b, radius, fill)
}

func (d *spaceDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], fill)
}

func (d *spaceDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	half := dotSize / 2
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *spaceDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *spaceDrawer) OutlineColor() cp.FColor {
	return toFColor(colornames.Lightgrey)
}

func (d *spaceDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return toFColor(TagColor(cpworld.TagOf(shape)))
}

func (d *spaceDrawer) ConstraintColor() cp.FColor {
	return toFColor(colornames.Orange)
}

func (d *spaceDrawer) CollisionPointColor() cp.FColor {
	return toFColor(colornames.Red)
}

func (d *spaceDrawer) Data() interface{} {
	return nil
}

func (d *spaceDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.view.ToScreen(a.X, a.Y)
	x2, y2 := d.view.ToScreen(b.X, b.Y)
	vector.StrokeLine(d.screen, x1, y1, x2, y2, strokeWidth, toNRGBA(c), true)
}

func (d *spaceDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *spaceDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, circleSegments)
	for i := 0; i < circleSegments; i++ {
		t := 2 * math.Pi * float64(i) / circleSegments
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

func toFColor(c color.RGBA) cp.FColor {
	return cp.FColor{R: float32(c.R) / 255, G: float32(c.G) / 255, B: float32(c.B) / 255, A: float32(c.A) / 255}
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
