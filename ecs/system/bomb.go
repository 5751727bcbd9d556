package system

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/physics"
)

const (
	EventBombExploded  ecs.EventType = "bomb_exploded"
	EventTargetDamaged ecs.EventType = "target_damaged"
	EventTargetBroken  ecs.EventType = "target_broken"
)

// DamageEvent is the payload of EventTargetDamaged and EventTargetBroken.
type DamageEvent struct {
	Bomb   ecs.Entity
	Target ecs.Entity
	Damage int
	Health int
}

// BombSystem counts bombs down and resolves their blast.
type BombSystem struct {
	physics physics.World
	debug   bool
}

func NewBombSystem(world physics.World) *BombSystem {
	return &BombSystem{physics: world}
}

func (s *BombSystem) SetDebug(debug bool) {
	s.debug = debug
}

func (s *BombSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.BombComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bomb *component.Bomb, transform *component.Transform) {
		if bomb.Fired {
			return
		}
		bomb.Elapsed += dt
		if bomb.Elapsed < bomb.ExplosionDelay {
			return
		}
		s.explode(w, e, bomb, transform.Position)
	})
}

func (s *BombSystem) explode(w *ecs.World, e ecs.Entity, bomb *component.Bomb, center mgl64.Vec3) {
	bomb.Fired = true
	spawnEffect(w, bomb.ExplosionEffect, center, bomb.ExplosionFade, bomb.ExplosionSounds)
	w.Events().Push(ecs.Event{Type: EventBombExploded, Source: e, Data: center})
	if s.debug {
		log.Printf("bomb: %s exploded at (%.2f, %.2f, %.2f)", e, center.X(), center.Y(), center.Z())
	}

	if s.physics != nil {
		hit := make(map[uint64]struct{})
		for _, collider := range s.physics.OverlapSphere(center, bomb.BlastRadius, physics.LayerAll) {
			if collider.Tag != bomb.DestructibleTag || collider.Owner == uint64(e) {
				continue
			}
			if _, ok := hit[collider.Owner]; ok {
				continue
			}
			hit[collider.Owner] = struct{}{}
			s.damage(w, e, bomb, center, collider)
		}
		s.physics.RemoveOwner(uint64(e))
	}

	ecs.DestroyEntity(w, e)
}

func (s *BombSystem) damage(w *ecs.World, bombEntity ecs.Entity, bomb *component.Bomb, center mgl64.Vec3, collider physics.Collider) {
	target := ecs.Entity(collider.Owner)
	health, ok := ecs.Get(w, target, component.HealthComponent.Kind())
	if !ok {
		return
	}

	position := collider.Position
	if transform, ok := ecs.Get(w, target, component.TransformComponent.Kind()); ok {
		position = transform.Position
	}

	damage := BlastDamageAt(position.Sub(center).Len(), bomb.BlastRadius, bomb.BlastDamage)
	health.Current -= damage
	evt := DamageEvent{Bomb: bombEntity, Target: target, Damage: damage, Health: health.Current}
	w.Events().Push(ecs.Event{Type: EventTargetDamaged, Source: bombEntity, Data: evt})
	if s.debug {
		log.Printf("bomb: %s took %d damage, %d/%d left", target, damage, health.Current, health.Initial)
	}

	if !health.Dead() {
		return
	}
	spawnEffect(w, bomb.BreakEffect, position, bomb.BreakFade, bomb.BreakSounds)
	if s.physics != nil {
		s.physics.RemoveOwner(collider.Owner)
	}
	ecs.DestroyEntity(w, target)
	w.Events().Push(ecs.Event{Type: EventTargetBroken, Source: bombEntity, Data: evt})
}

// BlastDamageAt is the damage dealt at distance from a blast of radius. It
// falls off with the fourth power of the normalized distance, so targets
// near the center take nearly full damage and the edge takes none.
func BlastDamageAt(distance, radius, damage float64) int {
	if radius <= 0 {
		return 0
	}
	rate := mgl64.Clamp(distance/radius, 0, 1)
	return int(math.Ceil((1 - math.Pow(rate, 4)) * damage))
}

// spawnEffect creates a transient effect entity that lives for fade seconds.
func spawnEffect(w *ecs.World, name string, position mgl64.Vec3, fade float64, sounds []string) ecs.Entity {
	if name == "" {
		return 0
	}
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: position, Rotation: mgl64.QuatIdent()})
	_ = ecs.Add(w, e, component.EffectComponent.Kind(), &component.Effect{Name: name})
	_ = ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Seconds: fade})
	if len(sounds) > 0 {
		_ = ecs.Add(w, e, component.RandomSoundComponent.Kind(), &component.RandomSound{Clips: append([]string(nil), sounds...)})
	}
	return e
}
