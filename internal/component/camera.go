package component

import "github.com/go-gl/mathgl/mgl64"

// SceneCamera is an orthographic projection sized by viewport aspect.
type SceneCamera struct {
	OrthographicSize float64
	Near, Far        float64
	AspectRatio      float64

	projection mgl64.Mat4
}

func NewSceneCamera() SceneCamera {
	c := SceneCamera{OrthographicSize: 10, Near: -1, Far: 1, AspectRatio: 1}
	c.recalculate()
	return c
}

func (c *SceneCamera) SetOrthographic(size, near, far float64) {
	c.OrthographicSize, c.Near, c.Far = size, near, far
	c.recalculate()
}

func (c *SceneCamera) SetViewportSize(width, height uint32) {
	if height == 0 {
		return
	}
	c.AspectRatio = float64(width) / float64(height)
	c.recalculate()
}

func (c *SceneCamera) Projection() mgl64.Mat4 { return c.projection }

func (c *SceneCamera) recalculate() {
	halfH := c.OrthographicSize * 0.5
	halfW := halfH * c.AspectRatio
	c.projection = mgl64.Ortho(-halfW, halfW, -halfH, halfH, c.Near, c.Far)
}

// Camera marks an entity as a viewpoint. Only a Primary camera is rendered.
type Camera struct {
	Camera           SceneCamera
	Primary          bool
	FixedAspectRatio bool
}

func NewCamera() Camera {
	return Camera{Camera: NewSceneCamera(), Primary: true}
}
