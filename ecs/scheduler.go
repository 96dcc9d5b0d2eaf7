package ecs

type System interface {
	Update(w *World)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(w *World)

func (f SystemFunc) Update(w *World) {
	f(w)
}

// RunIf wraps a system so it only runs while cond holds.
func RunIf(cond func() bool, system System) System {
	return SystemFunc(func(w *World) {
		if cond() {
			system.Update(w)
		}
	})
}

type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Run sets the world delta to dt and updates every system in order.
func (s *Scheduler) Run(w *World, dt float64) {
	w.SetDelta(dt)
	s.Update(w)
}

func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		system.Update(w)
	}
}
