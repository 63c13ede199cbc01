package component

import "github.com/go-gl/mathgl/mgl64"

// Transform places an entity in the world. Rotation is Euler radians.
// Scale components must stay nonzero.
type Transform struct {
	Translation mgl64.Vec3
	Rotation    mgl64.Vec3
	Scale       mgl64.Vec3
}

// NewTransform returns an identity transform at translation.
func NewTransform(translation mgl64.Vec3) Transform {
	return Transform{
		Translation: translation,
		Scale:       mgl64.Vec3{1, 1, 1},
	}
}

// WorldMatrix composes translation * rotation * scale.
func (t *Transform) WorldMatrix() mgl64.Mat4 {
	rot := mgl64.HomogRotate3DZ(t.Rotation.Z()).
		Mul4(mgl64.HomogRotate3DY(t.Rotation.Y())).
		Mul4(mgl64.HomogRotate3DX(t.Rotation.X()))
	return mgl64.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z()).
		Mul4(rot).
		Mul4(mgl64.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}
