package component

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// Clip is a named run of frames played at a fixed rate.
type Clip struct {
	Name          string
	Frames        []*SubTexture
	FrameDuration time.Duration
	Loop          bool
}

func NewClip(name string, frameDuration time.Duration, loop bool) Clip {
	return Clip{Name: name, FrameDuration: frameDuration, Loop: loop}
}

// AddFramesFromSheet appends count cells starting at start, walking right
// when horizontal and up otherwise.
func (c *Clip) AddFramesFromSheet(sheet *Texture, start mgl64.Vec2, count int, cellSize, spriteSize mgl64.Vec2, horizontal bool) {
	for i := 0; i < count; i++ {
		coord := start
		if horizontal {
			coord[0] += float64(i)
		} else {
			coord[1] += float64(i)
		}
		c.Frames = append(c.Frames, SubTextureFromCoords(sheet, coord, cellSize, spriteSize))
	}
}

// AnimationState is the mutable playback cursor.
type AnimationState struct {
	CurrentClip  string
	CurrentFrame int
	Timer        time.Duration
	Playing      bool
	Finished     bool // only meaningful for non-looping clips
}

func (s *AnimationState) Reset() {
	s.CurrentFrame = 0
	s.Timer = 0
	s.Playing = true
	s.Finished = false
}

// Animation owns a set of clips and the playback state.
type Animation struct {
	Clips map[string]*Clip
	State AnimationState

	log *zap.Logger
}

// NewAnimation returns an empty animation. log may be nil; the scene
// attaches its own logger in that case.
func NewAnimation(log *zap.Logger) Animation {
	return Animation{
		Clips: make(map[string]*Clip),
		State: AnimationState{Playing: true},
		log:   log,
	}
}

// AttachLogger sets log only if no logger was given yet.
func (a *Animation) AttachLogger(log *zap.Logger) {
	if a.log == nil {
		a.log = log
	}
}

// AddClip registers clip; the first clip added becomes current.
func (a *Animation) AddClip(clip Clip) {
	if a.Clips == nil {
		a.Clips = make(map[string]*Clip)
	}
	c := clip
	a.Clips[c.Name] = &c
	if a.State.CurrentClip == "" {
		a.State.CurrentClip = c.Name
	}
}

// Play switches to name and restarts it. Replaying the active, unfinished
// clip is a no-op unless forceRestart is set. Unknown names leave state
// untouched. It reports whether playback was (re)started.
func (a *Animation) Play(name string, forceRestart bool) bool {
	if a.State.CurrentClip == name && !forceRestart && !a.State.Finished {
		return false
	}
	if _, ok := a.Clips[name]; !ok {
		a.logger().Warn("animation clip not found", zap.String("clip", name))
		return false
	}
	a.State.CurrentClip = name
	a.State.Reset()
	return true
}

func (a *Animation) Stop()   { a.State.Playing = false }
func (a *Animation) Pause()  { a.State.Playing = false }
func (a *Animation) Resume() { a.State.Playing = true }

func (a *Animation) IsPlaying() bool { return a.State.Playing && !a.State.Finished }

func (a *Animation) IsPlayingClip(name string) bool {
	return a.State.CurrentClip == name && a.IsPlaying()
}

func (a *Animation) IsFinished() bool { return a.State.Finished }

// CurrentClip returns the active clip, or nil.
func (a *Animation) CurrentClip() *Clip {
	return a.Clips[a.State.CurrentClip]
}

// CurrentFrame returns the frame image under the cursor, or nil.
func (a *Animation) CurrentFrame() *SubTexture {
	c := a.CurrentClip()
	if c == nil || len(c.Frames) == 0 {
		return nil
	}
	return c.Frames[a.State.CurrentFrame%len(c.Frames)]
}

func (a *Animation) logger() *zap.Logger {
	if a.log == nil {
		return zap.NewNop()
	}
	return a.log
}
