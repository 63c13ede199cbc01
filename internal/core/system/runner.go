package system

import (
	"fmt"
	"time"
)

// Runner executes systems phase by phase each frame. Systems sharing a
// phase run in registration order.
type Runner struct {
	phases [phaseCount][]System
}

func NewRunner() *Runner {
	return &Runner{}
}

// Register appends s to its phase. It panics on a phase outside the
// pipeline.
func (r *Runner) Register(s System) {
	p := s.Phase()
	if p < 0 || p >= phaseCount {
		panic(fmt.Sprintf("system: %T registered for unknown phase %d", s, p))
	}
	r.phases[p] = append(r.phases[p], s)
}

// Tick runs every phase once, in order.
func (r *Runner) Tick(dt time.Duration) {
	for p := range r.phases {
		r.TickPhase(Phase(p), dt)
	}
}

// TickPhase runs only the systems registered for phase.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	for _, s := range r.phases[phase] {
		s.Update(dt)
	}
}

// Len returns the number of registered systems.
func (r *Runner) Len() int {
	n := 0
	for _, systems := range r.phases {
		n += len(systems)
	}
	return n
}
