package system

import "time"

// Phase defines execution ordering within a single frame.
type Phase int

const (
	PhaseScript    Phase = iota // 0: native then embedded script update
	PhaseUpdate                 // 1: gameplay bookkeeping (projectiles)
	PhaseAnimation              // 2: resolve sprite frames
	PhasePhysics                // 3: step, sync transforms, collision dispatch
	PhaseRender                 // 4: render extraction
	PhaseCleanup                // 5: event dispatch, destroy queued entities

	phaseCount
)

func (p Phase) String() string {
	switch p {
	case PhaseScript:
		return "script"
	case PhaseUpdate:
		return "update"
	case PhaseAnimation:
		return "animation"
	case PhasePhysics:
		return "physics"
	case PhaseRender:
		return "render"
	case PhaseCleanup:
		return "cleanup"
	}
	return "unknown"
}

// System is the interface every frame-pipeline system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
