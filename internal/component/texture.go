package component

import "github.com/go-gl/mathgl/mgl64"

// Texture is an opaque handle to renderer-owned image data. Loading and
// uploading pixels happens outside the scene core.
type Texture struct {
	ID     uint32
	Path   string
	Width  int
	Height int
}

// TextureRef is anything a sprite can be drawn with.
type TextureRef interface {
	BaseTexture() *Texture
	TexCoords() [4]mgl64.Vec2
}

var fullQuad = [4]mgl64.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

func (t *Texture) BaseTexture() *Texture     { return t }
func (t *Texture) TexCoords() [4]mgl64.Vec2 { return fullQuad }

// SubTexture is a rectangular region of a Texture, in normalized coords.
type SubTexture struct {
	Texture *Texture
	coords  [4]mgl64.Vec2
}

// NewSubTexture builds the region spanning min..max, counter-clockwise
// from the bottom-left corner.
func NewSubTexture(tex *Texture, min, max mgl64.Vec2) *SubTexture {
	return &SubTexture{
		Texture: tex,
		coords: [4]mgl64.Vec2{
			{min.X(), min.Y()},
			{max.X(), min.Y()},
			{max.X(), max.Y()},
			{min.X(), max.Y()},
		},
	}
}

// SubTextureFromCoords cuts a cell-aligned region out of a sprite sheet.
// coords counts cells, cellSize is in pixels and spriteSize is how many
// cells the sprite covers.
func SubTextureFromCoords(tex *Texture, coords, cellSize, spriteSize mgl64.Vec2) *SubTexture {
	w, h := float64(tex.Width), float64(tex.Height)
	min := mgl64.Vec2{coords.X() * cellSize.X() / w, coords.Y() * cellSize.Y() / h}
	max := mgl64.Vec2{
		(coords.X() + spriteSize.X()) * cellSize.X() / w,
		(coords.Y() + spriteSize.Y()) * cellSize.Y() / h,
	}
	return NewSubTexture(tex, min, max)
}

func (s *SubTexture) BaseTexture() *Texture     { return s.Texture }
func (s *SubTexture) TexCoords() [4]mgl64.Vec2 { return s.coords }
