// Package rendertest provides a renderer that records draw calls.
package rendertest

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/yuicy/engine/internal/component"
)

// DrawCall is one submission captured by Recorder.
type DrawCall struct {
	Transform mgl64.Mat4
	Texture   component.TextureRef // nil for flat quads
	Tiling    float64
	Color     mgl64.Vec4
	FlipX     bool
	FlipY     bool
}

// Recorder keeps the draw calls of the most recent scene. Tests inspect it
// instead of a screen.
type Recorder struct {
	Camera *component.SceneCamera
	View   mgl64.Mat4
	Calls  []DrawCall
	Scenes int
	open   bool
}

func (r *Recorder) BeginScene(camera *component.SceneCamera, view mgl64.Mat4) {
	r.Camera, r.View = camera, view
	r.Calls = r.Calls[:0]
	r.open = true
}

func (r *Recorder) DrawQuad(transform mgl64.Mat4, color mgl64.Vec4) {
	r.mustBeOpen()
	r.Calls = append(r.Calls, DrawCall{Transform: transform, Tiling: 1, Color: color})
}

func (r *Recorder) DrawSprite(transform mgl64.Mat4, texture component.TextureRef, tiling float64, color mgl64.Vec4, flipX, flipY bool) {
	r.mustBeOpen()
	r.Calls = append(r.Calls, DrawCall{
		Transform: transform,
		Texture:   texture,
		Tiling:    tiling,
		Color:     color,
		FlipX:     flipX,
		FlipY:     flipY,
	})
}

func (r *Recorder) EndScene() {
	r.mustBeOpen()
	r.open = false
	r.Scenes++
}

func (r *Recorder) mustBeOpen() {
	if !r.open {
		panic("rendertest: draw call outside BeginScene/EndScene")
	}
}
