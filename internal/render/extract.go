package render

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/yuicy/engine/internal/component"
	"github.com/yuicy/engine/internal/core/ecs"
)

type drawItem struct {
	transform mgl64.Mat4
	sprite    *component.Sprite
}

// Extractor walks Transform+Sprite entities and submits them, ordered by
// SortingOrder, to a Renderer through the primary camera.
type Extractor struct {
	world    *ecs.World
	renderer Renderer
	log      *zap.Logger

	items []drawItem

	// primaries counted at the last warning; zero when not warned.
	warnedPrimaries int
}

func NewExtractor(world *ecs.World, renderer Renderer, log *zap.Logger) *Extractor {
	if renderer == nil {
		renderer = Nop{}
	}
	return &Extractor{world: world, renderer: renderer, log: log}
}

func (e *Extractor) Renderer() Renderer { return e.renderer }

// PrimaryCamera returns the first camera flagged primary in store order.
func (e *Extractor) PrimaryCamera() (ecs.EntityID, *component.Camera, bool) {
	var (
		found     ecs.EntityID
		cam       *component.Camera
		primaries int
	)
	ecs.Query[component.Camera](e.world).Each(func(id ecs.EntityID, c *component.Camera) {
		if !c.Primary {
			return
		}
		primaries++
		if cam == nil {
			found, cam = id, c
		}
	})

	if primaries > 1 && primaries != e.warnedPrimaries {
		e.log.Warn("multiple primary cameras, using the first",
			zap.Int("primaries", primaries),
			zap.Uint64("camera", uint64(found)),
		)
	}
	if primaries > 1 {
		e.warnedPrimaries = primaries
	} else {
		e.warnedPrimaries = 0
	}
	return found, cam, cam != nil
}

// Extract draws one frame. Nothing is submitted without a primary camera.
// It returns the number of sprites drawn.
func (e *Extractor) Extract() int {
	camID, cam, ok := e.PrimaryCamera()
	if !ok {
		return 0
	}
	view := mgl64.Ident4()
	if tr, ok := ecs.Get[component.Transform](e.world, camID); ok {
		view = tr.WorldMatrix()
	}

	e.items = e.items[:0]
	ecs.Each2(ecs.Query[component.Transform](e.world), ecs.Query[component.Sprite](e.world),
		func(_ ecs.EntityID, tr *component.Transform, sprite *component.Sprite) {
			e.items = append(e.items, drawItem{transform: tr.WorldMatrix(), sprite: sprite})
		})
	sort.SliceStable(e.items, func(i, j int) bool {
		return e.items[i].sprite.SortingOrder < e.items[j].sprite.SortingOrder
	})

	e.renderer.BeginScene(&cam.Camera, view)
	for _, it := range e.items {
		s := it.sprite
		if tex, ok := s.Visual(); ok {
			e.renderer.DrawSprite(it.transform, tex, s.TilingFactor, s.Color, s.FlipX, s.FlipY)
		} else {
			e.renderer.DrawQuad(it.transform, s.Color)
		}
	}
	e.renderer.EndScene()
	return len(e.items)
}
