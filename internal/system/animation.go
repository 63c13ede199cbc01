package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/yuicy/engine/internal/component"
	"github.com/yuicy/engine/internal/core/ecs"
	coresys "github.com/yuicy/engine/internal/core/system"
)

// AnimationSystem advances clip playback and writes the current frame into
// the Sprite. Phase 2 (Animation).
type AnimationSystem struct {
	world *ecs.World
	log   *zap.Logger
}

func NewAnimationSystem(world *ecs.World, log *zap.Logger) *AnimationSystem {
	return &AnimationSystem{world: world, log: log}
}

func (s *AnimationSystem) Phase() coresys.Phase { return coresys.PhaseAnimation }

func (s *AnimationSystem) Update(dt time.Duration) {
	ecs.Each2(ecs.Query[component.Animation](s.world), ecs.Query[component.Sprite](s.world),
		func(_ ecs.EntityID, anim *component.Animation, sprite *component.Sprite) {
			anim.AttachLogger(s.log)
			if frame := AdvanceAnimation(anim, dt); frame != nil {
				sprite.SubTexture = frame
			}
		})
}

// AdvanceAnimation adds dt to the frame timer and steps frames until the
// timer is below one frame duration. A non-looping clip stops on its last
// frame and keeps any leftover time. It returns the frame to display, or nil
// when there is no clip with frames.
func AdvanceAnimation(anim *component.Animation, dt time.Duration) *component.SubTexture {
	clip := anim.CurrentClip()
	if clip == nil || len(clip.Frames) == 0 {
		return nil
	}

	st := &anim.State
	if st.Playing && !st.Finished && clip.FrameDuration > 0 {
		st.Timer += dt
		for st.Timer >= clip.FrameDuration {
			st.Timer -= clip.FrameDuration
			st.CurrentFrame++
			if st.CurrentFrame < len(clip.Frames) {
				continue
			}
			if clip.Loop {
				st.CurrentFrame = 0
				continue
			}
			st.CurrentFrame = len(clip.Frames) - 1
			st.Finished = true
			st.Playing = false
			break
		}
	}
	return anim.CurrentFrame()
}
