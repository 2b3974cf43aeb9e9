//go:build ebiten

package app

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/bayou-brogrammer/wgpu-playground/internal/core"
	"github.com/bayou-brogrammer/wgpu-playground/internal/render"
	"github.com/bayou-brogrammer/wgpu-playground/internal/ui"
)

// maxStepsPerFrame bounds catch-up after a stalled frame.
const maxStepsPerFrame = 8

// HUDWidth is the width of the parameter panel in pixels.
const HUDWidth = 220

// drawer is implemented by sims that render themselves, such as the GPU
// backend whose cells already live in an image.
type drawer interface {
	Draw(dst *ebiten.Image, scale int)
}

// Options configures a Game.
type Options struct {
	Scale int
	TPS   int
	Seed  int64
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	drawer  drawer
	hud     *ui.HUD
	brush   *ui.Brush
	clock   *core.FixedStep

	onColor  color.Color
	offColor color.Color

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, opts Options) *Game {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	g := &Game{
		sim:      sim,
		hud:      ui.NewHUD(sim, HUDWidth),
		brush:    ui.NewBrush(sim, opts.Scale),
		clock:    core.NewFixedStep(opts.TPS),
		onColor:  color.White,
		offColor: color.Black,
		scale:    opts.Scale,
		seed:     opts.Seed,
	}
	if d, ok := sim.(drawer); ok {
		g.drawer = d
	} else {
		g.painter = render.NewGridPainter(sim.Size().W, sim.Size().H)
	}
	return g
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	core.Logger().Info("reset", "sim", g.sim.Name(), "seed", seed)
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.cycleRule()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.clock.SetTPS(nextTPS(g.clock.TPS(), inpututil.IsKeyJustPressed(ebiten.KeyEqual)))
		g.hud.SetStatus(fmt.Sprintf("%d ticks/s", g.clock.TPS()))
	}

	size := g.sim.Size()
	if !g.hud.Update(size.W * g.scale) {
		g.brush.Update()
	}

	steps := g.clock.Steps(maxStepsPerFrame)
	if g.paused {
		steps = 0
	}
	if g.tickOnce {
		steps = max(steps, 1)
		g.tickOnce = false
	}
	for i := 0; i < steps; i++ {
		g.sim.Step()
	}
	return nil
}

func (g *Game) cycleRule() {
	setter, ok := g.sim.(core.RuleSetter)
	if !ok {
		return
	}
	next := nextRule(setter.Rule(), cycleRules)
	if err := setter.SetRule(next); err != nil {
		core.Logger().Error("failed to switch rule", "rule", next, "err", err)
		g.hud.SetStatus("rule error: " + next)
		return
	}
	g.hud.SetStatus("rule: " + next)
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.drawer != nil {
		g.drawer.Draw(screen, g.scale)
	} else {
		g.painter.Blit(screen, g.sim.Cells(), g.onColor, g.offColor, g.scale)
	}
	g.brush.Draw(screen)
	g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
