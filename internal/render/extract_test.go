package render_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yuicy/engine/internal/component"
	"github.com/yuicy/engine/internal/core/ecs"
	"github.com/yuicy/engine/internal/render"
	"github.com/yuicy/engine/internal/render/rendertest"
)

func addSprite(w *ecs.World, x float64, order int, color mgl64.Vec4) ecs.EntityID {
	id := w.CreateEntity()
	ecs.Add(w, id, component.NewTransform(mgl64.Vec3{x, 0, 0}))
	s := component.NewSprite(color)
	s.SortingOrder = order
	ecs.Add(w, id, s)
	return id
}

func addCamera(w *ecs.World, primary bool) ecs.EntityID {
	id := w.CreateEntity()
	ecs.Add(w, id, component.NewTransform(mgl64.Vec3{}))
	c := component.NewCamera()
	c.Primary = primary
	ecs.Add(w, id, c)
	return id
}

func TestExtractSortsStably(t *testing.T) {
	w := ecs.NewWorld()
	addCamera(w, true)
	addSprite(w, 1, 2, mgl64.Vec4{1, 0, 0, 1})
	addSprite(w, 2, 0, mgl64.Vec4{0, 1, 0, 1})
	addSprite(w, 3, 2, mgl64.Vec4{0, 0, 1, 1})
	addSprite(w, 4, -1, mgl64.Vec4{1, 1, 1, 1})

	rec := &rendertest.Recorder{}
	e := render.NewExtractor(w, rec, zap.NewNop())
	if n := e.Extract(); n != 4 {
		t.Fatalf("drawn = %d, want 4", n)
	}

	wantX := []float64{4, 2, 1, 3}
	for i, call := range rec.Calls {
		if x := call.Transform.Col(3).X(); x != wantX[i] {
			t.Fatalf("call %d at x=%v, want %v", i, x, wantX[i])
		}
	}
	if rec.Scenes != 1 {
		t.Fatalf("scenes = %d, want 1", rec.Scenes)
	}
}

func TestExtractVisualPrecedence(t *testing.T) {
	w := ecs.NewWorld()
	addCamera(w, true)
	tex := &component.Texture{ID: 1, Width: 64, Height: 64}
	sub := component.NewSubTexture(tex, mgl64.Vec2{0, 0}, mgl64.Vec2{0.5, 0.5})

	addSprite(w, 0, 0, mgl64.Vec4{1, 1, 1, 1})
	textured := addSprite(w, 1, 1, mgl64.Vec4{1, 1, 1, 1})
	both := addSprite(w, 2, 2, mgl64.Vec4{1, 1, 1, 1})
	ecs.MustGet[component.Sprite](w, textured).Texture = tex
	ecs.MustGet[component.Sprite](w, both).Texture = tex
	ecs.MustGet[component.Sprite](w, both).SubTexture = sub

	rec := &rendertest.Recorder{}
	render.NewExtractor(w, rec, zap.NewNop()).Extract()

	if rec.Calls[0].Texture != nil {
		t.Fatal("flat sprite drawn with a texture")
	}
	if rec.Calls[1].Texture != component.TextureRef(tex) {
		t.Fatal("textured sprite not drawn with its texture")
	}
	if rec.Calls[2].Texture != component.TextureRef(sub) {
		t.Fatal("sub-texture did not take precedence")
	}
}

func TestExtractWithoutPrimaryCamera(t *testing.T) {
	w := ecs.NewWorld()
	addCamera(w, false)
	addSprite(w, 0, 0, mgl64.Vec4{1, 1, 1, 1})

	rec := &rendertest.Recorder{}
	if n := render.NewExtractor(w, rec, zap.NewNop()).Extract(); n != 0 {
		t.Fatalf("drawn = %d without a primary camera", n)
	}
	if rec.Scenes != 0 {
		t.Fatal("scene begun without a primary camera")
	}
}

func TestMultiplePrimariesWarnOnce(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	w := ecs.NewWorld()
	first := addCamera(w, true)
	addCamera(w, true)

	e := render.NewExtractor(w, &rendertest.Recorder{}, zap.New(core))
	for i := 0; i < 3; i++ {
		id, _, ok := e.PrimaryCamera()
		if !ok || id != first {
			t.Fatalf("primary = %v, want %v", id, first)
		}
	}
	if n := logs.FilterMessage("multiple primary cameras, using the first").Len(); n != 1 {
		t.Fatalf("warnings = %d, want 1", n)
	}

	addCamera(w, true)
	e.PrimaryCamera()
	if n := logs.Len(); n != 2 {
		t.Fatalf("warnings after adding a camera = %d, want 2", n)
	}
}
