// Package life runs a life-like automaton on the CPU. The update rule is a
// dsl.Statement, so the same rule tree that is compiled into the GPU shaders
// drives this simulation.
package life

import (
	"fmt"
	"strconv"

	"github.com/bayou-brogrammer/wgpu-playground/internal/core"
	"github.com/bayou-brogrammer/wgpu-playground/pkg/dsl"

	rng "github.com/bayou-brogrammer/wgpu-playground/pkg/core"
)

// Config controls the simulation dimensions, rule and initial density.
type Config struct {
	Width   int
	Height  int
	Rule    string
	Density int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{Width: 256, Height: 256, Rule: "conway", Density: 50}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparsable numbers keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= 100 {
			c.Density = parsed
		}
	}
	if v, ok := cfg["rule"]; ok && v != "" {
		c.Rule = v
	}
	return c
}

// Life steps a toroidal grid with a rule tree.
type Life struct {
	cur, nxt *core.ByteGrid

	ruleName   string
	table      [2][9]uint8
	density    int
	generation int
}

// New returns a Life simulation running rule on a w by h grid.
func New(w, h int, ruleName string, rule dsl.Statement) *Life {
	return &Life{
		cur:      core.NewByteGrid(w, h),
		nxt:      core.NewByteGrid(w, h),
		ruleName: ruleName,
		table:    dsl.Table(rule),
		density:  50,
	}
}

// FromConfig resolves the configured rule and builds the simulation.
func FromConfig(c Config) (*Life, error) {
	rule, err := dsl.Lookup(c.Rule)
	if err != nil {
		return nil, fmt.Errorf("life: %w", err)
	}
	l := New(c.Width, c.Height, c.Rule, rule)
	l.density = c.Density
	return l, nil
}

// Name returns the simulation identifier.
func (l *Life) Name() string { return "life" }

// Size returns the grid dimensions.
func (l *Life) Size() core.Size { return core.Size{W: l.cur.W, H: l.cur.H} }

// Cells exposes the current grid values.
func (l *Life) Cells() []uint8 { return l.cur.Cells() }

// Generation returns the number of steps since the last reset.
func (l *Life) Generation() int { return l.generation }

// Reset randomizes the board using the provided seed.
func (l *Life) Reset(seed int64) {
	rng.FillDensity(rng.NewRNG(seed).Source(), l.cur.Cells(), l.density)
	l.generation = 0
}

// Step advances the simulation by one generation.
func (l *Life) Step() {
	w, h := l.cur.W, l.cur.H
	cells := l.cur.Cells()
	next := l.nxt.Cells()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			alive := 0
			if cells[idx] != 0 {
				alive = 1
			}
			next[idx] = l.table[alive][l.cur.Neighbors(x, y)]
		}
	}
	l.cur, l.nxt = l.nxt, l.cur
	l.generation++
}

// Paint sets or clears every cell within radius of (x, y).
func (l *Life) Paint(x, y, radius int, alive bool) {
	var v uint8
	if alive {
		v = 1
	}
	l.cur.Disc(x, y, radius, v)
}

// Rule returns the name of the running rule.
func (l *Life) Rule() string { return l.ruleName }

// SetRule switches to the named ruleset or rule string. The board is kept.
func (l *Life) SetRule(name string) error {
	rule, err := dsl.Lookup(name)
	if err != nil {
		return fmt.Errorf("life: %w", err)
	}
	l.ruleName = name
	l.table = dsl.Table(rule)
	return nil
}

// Parameters publishes the rule and population for the HUD.
func (l *Life) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Rule",
			Params: []core.Parameter{
				{Key: "rule", Label: "Rule", Type: core.ParamTypeString, Value: l.ruleName},
				{Key: "density", Label: "Density %", Type: core.ParamTypeInt, Value: strconv.Itoa(l.density)},
			},
		},
		{
			Name: "State",
			Params: []core.Parameter{
				{Key: "generation", Label: "Generation", Type: core.ParamTypeInt, Value: strconv.Itoa(l.generation)},
				{Key: "population", Label: "Population", Type: core.ParamTypeInt, Value: strconv.Itoa(l.cur.Count())},
			},
		},
	}}
}

// ParameterControls exposes the reset density on the HUD.
func (l *Life) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{{Key: "density", Label: "Density %", Step: 5, Min: 0, Max: 100}}
}

// SetIntParameter updates an adjustable parameter.
func (l *Life) SetIntParameter(key string, value int) bool {
	if key != "density" {
		return false
	}
	l.density = l.ParameterControls()[0].Clamp(value)
	return true
}

func init() {
	core.Register("life", func(cfg map[string]string) (core.Sim, error) {
		return FromConfig(FromMap(cfg))
	})
}
