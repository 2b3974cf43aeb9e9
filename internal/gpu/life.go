//go:build ebiten

package gpu

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/bayou-brogrammer/wgpu-playground/internal/core"
	"github.com/bayou-brogrammer/wgpu-playground/internal/render"
	"github.com/bayou-brogrammer/wgpu-playground/internal/shader"
	"github.com/bayou-brogrammer/wgpu-playground/internal/sims/life"
	"github.com/bayou-brogrammer/wgpu-playground/pkg/dsl"
)

// Life is a life-like automaton stepped by a Kage shader.
type Life struct {
	board

	asm    *shader.Assembler
	shader *ebiten.Shader
	cur    *ebiten.Image
	nxt    *ebiten.Image
	pixels []byte
}

// New compiles rule into the Kage template of asm and allocates a w by h
// board. asm must use the Kage dialect.
func New(asm *shader.Assembler, w, h int, ruleName string, rule dsl.Statement) (*Life, error) {
	sh, err := newShader(asm, rule)
	if err != nil {
		return nil, err
	}
	l := &Life{
		board:  newBoard(w, h, ruleName, life.DefaultConfig().Density),
		asm:    asm,
		shader: sh,
		cur:    ebiten.NewImage(w, h),
		nxt:    ebiten.NewImage(w, h),
		pixels: make([]byte, 4*w*h),
	}
	core.Logger().Info("gpu life ready", "rule", ruleName, "width", w, "height", h)
	return l, nil
}

// FromConfig resolves the configured rule and builds the simulation.
func FromConfig(asm *shader.Assembler, c life.Config) (*Life, error) {
	rule, err := dsl.Lookup(c.Rule)
	if err != nil {
		return nil, fmt.Errorf("gpu: %w", err)
	}
	l, err := New(asm, c.Width, c.Height, c.Rule, rule)
	if err != nil {
		return nil, err
	}
	l.density = c.Density
	return l, nil
}

func newShader(asm *shader.Assembler, rule dsl.Statement) (*ebiten.Shader, error) {
	src, err := compile(asm, rule)
	if err != nil {
		return nil, err
	}
	sh, err := ebiten.NewShader(src)
	if err != nil {
		core.Logger().Error("failed to compile kage shader", "template", Template, "err", err)
		return nil, fmt.Errorf("gpu: compile %s: %w", Template, err)
	}
	return sh, nil
}

// Name returns the simulation identifier.
func (l *Life) Name() string { return "life (gpu)" }

// Size returns the grid dimensions.
func (l *Life) Size() core.Size { return core.Size{W: l.grid.W, H: l.grid.H} }

// Generation returns the number of steps since the last reset.
func (l *Life) Generation() int { return l.generation }

// Reset randomizes the board using the provided seed. The cells reach the
// GPU on the next Step or Draw.
func (l *Life) Reset(seed int64) { l.reset(seed) }

// Step runs one shader pass.
func (l *Life) Step() {
	l.upload()
	l.nxt.Clear()
	l.nxt.DrawRectShader(l.grid.W, l.grid.H, l.shader, &ebiten.DrawRectShaderOptions{
		Images: [4]*ebiten.Image{l.cur},
	})
	l.cur, l.nxt = l.nxt, l.cur
	l.generation++
	l.stale = true
}

// Cells reads the board back from the GPU. Writes to the returned slice are
// not uploaded; use Paint.
func (l *Life) Cells() []uint8 {
	l.sync()
	return l.grid.Cells()
}

// Paint sets or clears every cell within radius of (x, y).
func (l *Life) Paint(x, y, radius int, alive bool) {
	l.sync()
	l.paint(x, y, radius, alive)
}

// Parameters publishes the rule and population for the HUD.
func (l *Life) Parameters() core.ParameterSnapshot {
	l.sync()
	return l.parameters()
}

// SetRule recompiles the shader for the named ruleset or rule string. The
// board is kept.
func (l *Life) SetRule(name string) error {
	rule, err := dsl.Lookup(name)
	if err != nil {
		return fmt.Errorf("gpu: %w", err)
	}
	sh, err := newShader(l.asm, rule)
	if err != nil {
		return err
	}
	l.shader.Dispose()
	l.shader = sh
	l.ruleName = name
	return nil
}

// Draw draws the board onto dst magnified by scale.
func (l *Life) Draw(dst *ebiten.Image, scale int) {
	l.upload()
	render.DrawScaled(dst, l.cur, scale)
}

func (l *Life) upload() {
	if !l.dirty {
		return
	}
	render.FillBinaryRGBA(l.pixels, l.grid.Cells(), color.White, color.Black)
	l.cur.WritePixels(l.pixels)
	l.dirty = false
}

func (l *Life) sync() {
	if !l.stale {
		return
	}
	l.cur.ReadPixels(l.pixels)
	render.ReadBinaryRGBA(l.grid.Cells(), l.pixels)
	l.stale = false
}
