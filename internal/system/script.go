package system

import (
	"time"

	coresys "github.com/yuicy/engine/internal/core/system"
)

// Lifecycle is the contract shared by the native and Lua script managers.
type Lifecycle interface {
	Initialize()
	Update(dt time.Duration)
	Destroy()
}

// ScriptSystem drives one script manager's per-frame update.
// Phase 0 (Script); the native manager is registered before the Lua one.
type ScriptSystem struct {
	scripts Lifecycle
}

func NewScriptSystem(scripts Lifecycle) *ScriptSystem {
	return &ScriptSystem{scripts: scripts}
}

func (s *ScriptSystem) Phase() coresys.Phase { return coresys.PhaseScript }

func (s *ScriptSystem) Update(dt time.Duration) {
	s.scripts.Update(dt)
}
