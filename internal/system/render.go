package system

import (
	"time"

	coresys "github.com/yuicy/engine/internal/core/system"
	"github.com/yuicy/engine/internal/render"
)

// RenderSystem submits the frame's sprites. Phase 4 (Render).
type RenderSystem struct {
	extractor *render.Extractor
}

func NewRenderSystem(extractor *render.Extractor) *RenderSystem {
	return &RenderSystem{extractor: extractor}
}

func (s *RenderSystem) Phase() coresys.Phase { return coresys.PhaseRender }

func (s *RenderSystem) Update(_ time.Duration) {
	s.extractor.Extract()
}
