package component

// Health is the hit point pool of a destructible entity.
type Health struct {
	Initial int
	Current int
}

// Dead reports whether the pool is exhausted.
func (h *Health) Dead() bool {
	return h.Current <= 0
}

var HealthComponent = NewComponent[Health]()
