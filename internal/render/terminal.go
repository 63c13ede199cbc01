package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/yuicy/engine/internal/component"
)

var quadCorners = [4]mgl64.Vec4{
	{-0.5, -0.5, 0, 1},
	{0.5, -0.5, 0, 1},
	{0.5, 0.5, 0, 1},
	{-0.5, 0.5, 0, 1},
}

const (
	quadRune     = '█'
	texturedRune = '▓'
)

// TerminalRenderer rasterises quads into terminal cells: every cell whose
// centre falls inside a quad's screen-space bounds takes the quad colour.
type TerminalRenderer struct {
	screen   tcell.Screen
	viewProj mgl64.Mat4
	width    int
	height   int
}

func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	return &TerminalRenderer{screen: screen, viewProj: mgl64.Ident4()}
}

func (r *TerminalRenderer) BeginScene(camera *component.SceneCamera, view mgl64.Mat4) {
	r.viewProj = camera.Projection().Mul4(view.Inv())
	r.width, r.height = r.screen.Size()
	r.screen.Clear()
}

func (r *TerminalRenderer) DrawQuad(transform mgl64.Mat4, color mgl64.Vec4) {
	r.fill(transform, quadRune, color)
}

func (r *TerminalRenderer) DrawSprite(transform mgl64.Mat4, _ component.TextureRef, _ float64, color mgl64.Vec4, _, _ bool) {
	r.fill(transform, texturedRune, color)
}

func (r *TerminalRenderer) EndScene() {
	r.screen.Show()
}

// ToCell maps a world-space point to a terminal cell using the current
// scene camera.
func (r *TerminalRenderer) ToCell(p mgl64.Vec4) (float64, float64) {
	clip := r.viewProj.Mul4x1(p)
	x := (clip.X() + 1) * 0.5 * float64(r.width)
	y := (1 - clip.Y()) * 0.5 * float64(r.height)
	return x, y
}

func (r *TerminalRenderer) fill(transform mgl64.Mat4, ch rune, color mgl64.Vec4) {
	if color.W() <= 0 || r.width == 0 || r.height == 0 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range quadCorners {
		x, y := r.ToCell(transform.Mul4x1(c))
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}

	x0, x1 := clampCell(math.Round(minX), r.width), clampCell(math.Round(maxX), r.width)
	y0, y1 := clampCell(math.Round(minY), r.height), clampCell(math.Round(maxY), r.height)
	// Quads smaller than a cell still show up as one cell.
	if x0 == x1 && x0 < r.width {
		x1 = x0 + 1
	}
	if y0 == y1 && y0 < r.height {
		y1 = y0 + 1
	}

	style := tcell.StyleDefault.Foreground(toColor(color))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r.screen.SetContent(x, y, ch, nil, style)
		}
	}
}

func clampCell(v float64, limit int) int {
	if v < 0 {
		return 0
	}
	if v > float64(limit) {
		return limit
	}
	return int(v)
}

func toColor(c mgl64.Vec4) tcell.Color {
	ch := func(v float64) int32 {
		return int32(mgl64.Clamp(v, 0, 1) * 255)
	}
	return tcell.NewRGBColor(ch(c.X()), ch(c.Y()), ch(c.Z()))
}
