package render

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/yuicy/engine/internal/component"
)

// Renderer receives one frame of draw calls between BeginScene and
// EndScene. view is the camera's world transform.
type Renderer interface {
	BeginScene(camera *component.SceneCamera, view mgl64.Mat4)
	DrawQuad(transform mgl64.Mat4, color mgl64.Vec4)
	DrawSprite(transform mgl64.Mat4, texture component.TextureRef, tiling float64, color mgl64.Vec4, flipX, flipY bool)
	EndScene()
}

// Nop discards everything. Used for headless runs.
type Nop struct{}

func (Nop) BeginScene(*component.SceneCamera, mgl64.Mat4)                                {}
func (Nop) DrawQuad(mgl64.Mat4, mgl64.Vec4)                                              {}
func (Nop) DrawSprite(mgl64.Mat4, component.TextureRef, float64, mgl64.Vec4, bool, bool) {}
func (Nop) EndScene()                                                                    {}
