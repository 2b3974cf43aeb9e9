// Package gpu runs life-like rules as Kage fragment shaders on ebiten images.
// Each generation is one shader pass from the current image into the next;
// the rule is compiled into the shader with the Kage dialect. A CPU copy of
// the board is kept for painting, seeding and the HUD, and is synchronised
// with the GPU lazily.
package gpu

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/bayou-brogrammer/wgpu-playground/internal/core"
	"github.com/bayou-brogrammer/wgpu-playground/internal/shader"
	"github.com/bayou-brogrammer/wgpu-playground/pkg/dsl"

	rng "github.com/bayou-brogrammer/wgpu-playground/pkg/core"
)

// Template is the Kage template the rule is spliced into.
const Template = "life.kage"

// ErrUnavailable is returned by New in builds without the ebiten tag.
var ErrUnavailable = errors.New("gpu: the GPU backend requires the ebiten build tag")

// board is the CPU side of a GPU simulation.
type board struct {
	grid       *core.ByteGrid
	ruleName   string
	density    int
	generation int

	// dirty means grid changed on the CPU and must be uploaded; stale means
	// the GPU advanced and grid must be read back before it is used.
	dirty bool
	stale bool
}

func newBoard(w, h int, ruleName string, density int) board {
	return board{
		grid:     core.NewByteGrid(w, h),
		ruleName: ruleName,
		density:  density,
	}
}

func (b *board) reset(seed int64) {
	rng.FillDensity(rng.NewRNG(seed).Source(), b.grid.Cells(), b.density)
	b.generation = 0
	b.dirty = true
	b.stale = false
}

func (b *board) paint(x, y, radius int, alive bool) {
	var v uint8
	if alive {
		v = 1
	}
	b.grid.Disc(x, y, radius, v)
	b.dirty = true
}

func (b *board) parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Rule",
			Params: []core.Parameter{
				{Key: "rule", Label: "Rule", Type: core.ParamTypeString, Value: b.ruleName},
				{Key: "density", Label: "Density %", Type: core.ParamTypeInt, Value: strconv.Itoa(b.density)},
				{Key: "backend", Label: "Backend", Type: core.ParamTypeString, Value: "gpu (kage)"},
			},
		},
		{
			Name: "State",
			Params: []core.Parameter{
				{Key: "generation", Label: "Generation", Type: core.ParamTypeInt, Value: strconv.Itoa(b.generation)},
				{Key: "population", Label: "Population", Type: core.ParamTypeInt, Value: strconv.Itoa(b.grid.Count())},
			},
		},
	}}
}

// ParameterControls exposes the reset density on the HUD.
func (b *board) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{{Key: "density", Label: "Density %", Step: 5, Min: 0, Max: 100}}
}

// SetIntParameter updates an adjustable parameter.
func (b *board) SetIntParameter(key string, value int) bool {
	if key != "density" {
		return false
	}
	b.density = b.ParameterControls()[0].Clamp(value)
	return true
}

// Rule returns the name of the running rule.
func (b *board) Rule() string { return b.ruleName }

// compile resolves the Kage template with rule spliced in.
func compile(asm *shader.Assembler, rule dsl.Statement) ([]byte, error) {
	if asm == nil {
		return nil, fmt.Errorf("gpu: no shader assembler")
	}
	if asm.Dialect() != dsl.Kage {
		return nil, fmt.Errorf("gpu: assembler compiles %s rules, want %s", asm.Dialect().Name, dsl.Kage.Name)
	}
	src, err := asm.LoadWithRule(Template, rule)
	if err != nil {
		return nil, fmt.Errorf("gpu: %w", err)
	}
	return []byte(src), nil
}
