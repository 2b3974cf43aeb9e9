//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/bayou-brogrammer/wgpu-playground/internal/core"
)

// Brush paints cells with the mouse: the left button sets cells, the right
// button clears them and the wheel or [ ] keys resize the brush.
type Brush struct {
	sim     core.Sim
	painter core.Painter
	scale   int
	radius  int
	pixel   *ebiten.Image

	cx, cy int
	over   bool
}

// NewBrush returns a brush for sim. Sims that do not implement core.Painter
// get a brush that only draws its cursor.
func NewBrush(sim core.Sim, scale int) *Brush {
	b := &Brush{sim: sim, scale: scale, radius: defaultBrushRadius}
	b.painter, _ = sim.(core.Painter)
	b.pixel = ebiten.NewImage(1, 1)
	b.pixel.Fill(color.White)
	return b
}

// Radius returns the brush radius in cells.
func (b *Brush) Radius() int { return b.radius }

// Update paints under the cursor. It reports whether any cell was painted.
func (b *Brush) Update() bool {
	_, wy := ebiten.Wheel()
	switch {
	case wy > 0 || inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		b.radius = clampRadius(b.radius + 1)
	case wy < 0 || inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		b.radius = clampRadius(b.radius - 1)
	}

	mx, my := ebiten.CursorPosition()
	b.cx, b.cy, b.over = cellUnderCursor(mx, my, b.scale, b.sim.Size())
	if !b.over || b.painter == nil {
		return false
	}
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		b.painter.Paint(b.cx, b.cy, b.radius, true)
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		b.painter.Paint(b.cx, b.cy, b.radius, false)
	default:
		return false
	}
	return true
}

// Draw outlines the brush under the cursor.
func (b *Brush) Draw(screen *ebiten.Image) {
	if !b.over || b.painter == nil {
		return
	}
	s := float64(b.scale)
	cx, cy := (float64(b.cx)+0.5)*s, (float64(b.cy)+0.5)*s
	r := (float64(b.radius) + 0.5) * s
	n := 16 + 4*b.radius
	for _, p := range outline(cx, cy, r, n) {
		b.drawPoint(screen, p[0], p[1], 2, color.RGBA{R: 255, G: 196, B: 64, A: 255})
	}
}

func (b *Brush) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size/2, y-size/2)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(b.pixel, op)
}
