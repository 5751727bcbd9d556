package component

// Effect marks a visual effect instance spawned by gameplay (explosions,
// break debris). The host decides how to draw it.
type Effect struct {
	Name string
}

var EffectComponent = NewComponent[Effect]()
