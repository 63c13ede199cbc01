package component

import "github.com/go-gl/mathgl/mgl64"

// Sprite is the visual of an entity. SubTexture wins over Texture, which
// wins over the flat Color.
type Sprite struct {
	Color        mgl64.Vec4
	Texture      *Texture
	SubTexture   *SubTexture
	TilingFactor float64
	FlipX        bool
	FlipY        bool
	SortingOrder int
}

func NewSprite(color mgl64.Vec4) Sprite {
	return Sprite{Color: color, TilingFactor: 1}
}

// Visual returns the texture to draw with, or false for a flat quad.
func (s *Sprite) Visual() (TextureRef, bool) {
	if s.SubTexture != nil {
		return s.SubTexture, true
	}
	if s.Texture != nil {
		return s.Texture, true
	}
	return nil, false
}
