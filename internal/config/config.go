// Package config collects the settings of the life viewer and the shader
// tools. Values come from built-in defaults, an optional HCL file, the
// environment and command-line flags, later sources overriding earlier ones.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/hack-pad/hackpadfs"

	"github.com/bayou-brogrammer/wgpu-playground/pkg/dsl"
)

// Backends accepted by Config.Backend.
const (
	BackendGPU = "gpu"
	BackendCPU = "cpu"
)

// Config holds runtime configuration for the viewer.
type Config struct {
	Sim     string
	Rule    string
	Backend string

	Width   int
	Height  int
	Density int
	Scale   int
	TPS     int
	Seed    int64

	AssetRoot   string
	DebugShader bool

	// File is the HCL file that was applied, if any.
	File string
}

// NewConfig returns a Config populated with default values.
func NewConfig() *Config {
	return &Config{
		Sim:       "life",
		Rule:      "conway",
		Backend:   BackendGPU,
		Width:     256,
		Height:    256,
		Density:   50,
		Scale:     3,
		TPS:       60,
		Seed:      42,
		AssetRoot: "assets",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.File, "config", c.File, "HCL configuration file")
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.StringVar(&c.Rule, "rule", c.Rule, "ruleset name or B/S rule string")
	fs.StringVar(&c.Backend, "backend", c.Backend, "simulation backend (gpu or cpu)")
	fs.IntVar(&c.Width, "w", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "h", c.Height, "grid height in cells")
	fs.IntVar(&c.Density, "density", c.Density, "initial live cell percentage")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.StringVar(&c.AssetRoot, "assets", c.AssetRoot, "shader asset directory")
	fs.BoolVar(&c.DebugShader, "debug-shader", c.DebugShader, "dump resolved shaders next to their templates")
}

// Load builds a Config from args and environ. The file named by -config is
// read through fsys; a nil fsys reads the host file system.
func Load(name string, args, environ []string, fsys hackpadfs.FS) (*Config, error) {
	// The first pass only finds the config file.
	first := NewConfig()
	pfs := flag.NewFlagSet(name, flag.ContinueOnError)
	pfs.SetOutput(io.Discard)
	first.Bind(pfs)
	if err := pfs.Parse(args); err != nil {
		return nil, err
	}

	c := NewConfig()
	if first.File != "" {
		if err := c.LoadFile(fsys, first.File, environ); err != nil {
			return nil, err
		}
	}
	c.ApplyEnv(environ)

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	c.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Backend != BackendGPU && c.Backend != BackendCPU {
		errs = append(errs, fmt.Errorf("config: backend %q must be %q or %q", c.Backend, BackendGPU, BackendCPU))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("config: grid size %dx%d must be positive", c.Width, c.Height))
	}
	if c.Density < 0 || c.Density > 100 {
		errs = append(errs, fmt.Errorf("config: density %d out of range 0-100", c.Density))
	}
	if c.Scale <= 0 {
		errs = append(errs, fmt.Errorf("config: scale %d must be positive", c.Scale))
	}
	if c.TPS <= 0 {
		errs = append(errs, fmt.Errorf("config: tps %d must be positive", c.TPS))
	}
	if _, err := dsl.Lookup(c.Rule); err != nil {
		errs = append(errs, fmt.Errorf("config: %w", err))
	}
	return errors.Join(errs...)
}

// SimParams returns the settings a sim factory reads.
func (c *Config) SimParams() map[string]string {
	return map[string]string{
		"w":       strconv.Itoa(c.Width),
		"h":       strconv.Itoa(c.Height),
		"density": strconv.Itoa(c.Density),
		"rule":    c.Rule,
	}
}
