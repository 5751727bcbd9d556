package ecs

// System runs once per variable tick.
type System interface {
	Update(w *World, dt float64)
}

// FixedSystem runs once per fixed tick.
type FixedSystem interface {
	FixedUpdate(w *World, dt float64)
}

// Scheduler runs systems in registration order, each cadence separately.
type Scheduler struct {
	systems []System
	fixed   []FixedSystem
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) AddFixed(system FixedSystem) {
	if system == nil {
		return
	}
	s.fixed = append(s.fixed, system)
}

func (s *Scheduler) Update(w *World, dt float64) {
	for _, system := range s.systems {
		system.Update(w, dt)
	}
}

func (s *Scheduler) FixedUpdate(w *World, dt float64) {
	for _, system := range s.fixed {
		system.FixedUpdate(w, dt)
	}
}

// Systems returns a copy of the variable-tick systems.
func (s *Scheduler) Systems() []System {
	return append([]System(nil), s.systems...)
}
