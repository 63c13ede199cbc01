package component

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// BodyType selects how the simulator moves a body.
type BodyType int

const (
	BodyStatic BodyType = iota
	BodyDynamic
	BodyKinematic
)

func (t BodyType) String() string {
	switch t {
	case BodyStatic:
		return "static"
	case BodyDynamic:
		return "dynamic"
	case BodyKinematic:
		return "kinematic"
	}
	return fmt.Sprintf("BodyType(%d)", int(t))
}

func (t BodyType) Valid() bool { return t >= BodyStatic && t <= BodyKinematic }

// BodyHandle and FixtureHandle are lookup keys into the physics bridge.
// Zero means no runtime object exists (simulation stopped).
type (
	BodyHandle    uint32
	FixtureHandle uint32
)

// Collision layer bits for Category/Mask filtering.
const (
	LayerNone    uint16 = 0
	LayerDefault uint16 = 1 << 0
	LayerPlayer  uint16 = 1 << 1
	LayerEnemy   uint16 = 1 << 2
	LayerGround  uint16 = 1 << 3
	LayerTrigger uint16 = 1 << 4
	LayerBullet  uint16 = 1 << 5
	LayerAll     uint16 = 0xFFFF
)

var layerNames = map[string]uint16{
	"none":    LayerNone,
	"default": LayerDefault,
	"player":  LayerPlayer,
	"enemy":   LayerEnemy,
	"ground":  LayerGround,
	"trigger": LayerTrigger,
	"bullet":  LayerBullet,
	"all":     LayerAll,
}

// LayerByName resolves a case-insensitive layer name.
func LayerByName(name string) (uint16, bool) {
	bits, ok := layerNames[strings.ToLower(name)]
	return bits, ok
}

// LayerNames returns the name→bits table, used to seed script globals.
func LayerNames() map[string]uint16 {
	out := make(map[string]uint16, len(layerNames))
	for k, v := range layerNames {
		out[k] = v
	}
	return out
}

// RigidBody asks the physics bridge for a simulated body on start.
type RigidBody struct {
	Type          BodyType
	FixedRotation bool

	RuntimeBody BodyHandle
}

// Material holds the fixture parameters shared by every collider shape.
type Material struct {
	Density              float64
	Friction             float64
	Restitution          float64
	RestitutionThreshold float64
}

func DefaultMaterial() Material {
	return Material{Density: 1, Friction: 0.5, RestitutionThreshold: 0.5}
}

// Filter is a contact filter: a pair collides when each category overlaps
// the other's mask.
type Filter struct {
	CategoryBits uint16
	MaskBits     uint16
}

func DefaultFilter() Filter {
	return Filter{CategoryBits: LayerDefault, MaskBits: LayerAll}
}

// Accepts reports whether f and o may touch.
func (f Filter) Accepts(o Filter) bool {
	return f.CategoryBits&o.MaskBits != 0 && o.CategoryBits&f.MaskBits != 0
}

// BoxCollider is an axis-aligned box; Size holds half extents before
// Transform scale is applied.
type BoxCollider struct {
	Offset mgl64.Vec2
	Size   mgl64.Vec2
	Material
	Filter
	IsTrigger bool

	RuntimeFixture FixtureHandle
}

func NewBoxCollider(halfExtents mgl64.Vec2) BoxCollider {
	return BoxCollider{
		Size:     halfExtents,
		Material: DefaultMaterial(),
		Filter:   DefaultFilter(),
	}
}

// CircleCollider radius is scaled by Transform.Scale.X at start.
type CircleCollider struct {
	Offset mgl64.Vec2
	Radius float64
	Material
	Filter
	IsTrigger bool

	RuntimeFixture FixtureHandle
}

func NewCircleCollider(radius float64) CircleCollider {
	return CircleCollider{
		Radius:   radius,
		Material: DefaultMaterial(),
		Filter:   DefaultFilter(),
	}
}
