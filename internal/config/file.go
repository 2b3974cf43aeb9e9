package config

import (
	"fmt"
	"path/filepath"

	"github.com/hack-pad/hackpadfs"
	osfs "github.com/hack-pad/hackpadfs/os"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// hclFile is the top-level structure of a configuration file. Every field is
// optional; unset fields keep their current value.
//
//	sim     = "life"
//	rule    = "B36/S23"
//	backend = "cpu"
//	width   = 128
//
//	assets {
//	  root         = "${env.HOME}/shaders"
//	  debug_shader = true
//	}
type hclFile struct {
	Sim     *string    `hcl:"sim,optional"`
	Rule    *string    `hcl:"rule,optional"`
	Backend *string    `hcl:"backend,optional"`
	Width   *int       `hcl:"width,optional"`
	Height  *int       `hcl:"height,optional"`
	Density *int       `hcl:"density,optional"`
	Scale   *int       `hcl:"scale,optional"`
	TPS     *int       `hcl:"tps,optional"`
	Seed    *int64     `hcl:"seed,optional"`
	Assets  *hclAssets `hcl:"assets,block"`
}

type hclAssets struct {
	Root        *string `hcl:"root,optional"`
	DebugShader *bool   `hcl:"debug_shader,optional"`
}

// LoadFile reads the named HCL file from fsys and applies it. A nil fsys
// reads the host file system.
func (c *Config) LoadFile(fsys hackpadfs.FS, name string, environ []string) error {
	src, err := readFile(fsys, name)
	if err != nil {
		return fmt.Errorf("config: failed to read %s: %w", name, err)
	}
	if err := c.ApplyHCL(name, src, environ); err != nil {
		return err
	}
	c.File = name
	return nil
}

// ApplyHCL decodes src and applies the attributes it sets. Expressions can
// read environ through the env object, as in env.HOME.
func (c *Config) ApplyHCL(filename string, src []byte, environ []string) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return fmt.Errorf("config: failed to parse HCL file %s: %w", filename, diags)
	}

	var parsed hclFile
	diags = gohcl.DecodeBody(file.Body, evalContext(environ), &parsed)
	if diags.HasErrors() {
		return fmt.Errorf("config: failed to decode HCL file %s: %w", filename, diags)
	}

	setString(&c.Sim, parsed.Sim)
	setString(&c.Rule, parsed.Rule)
	setString(&c.Backend, parsed.Backend)
	setInt(&c.Width, parsed.Width)
	setInt(&c.Height, parsed.Height)
	setInt(&c.Density, parsed.Density)
	setInt(&c.Scale, parsed.Scale)
	setInt(&c.TPS, parsed.TPS)
	if parsed.Seed != nil {
		c.Seed = *parsed.Seed
	}
	if a := parsed.Assets; a != nil {
		setString(&c.AssetRoot, a.Root)
		if a.DebugShader != nil {
			c.DebugShader = *a.DebugShader
		}
	}
	return nil
}

func evalContext(environ []string) *hcl.EvalContext {
	vars := map[string]cty.Value{}
	for k, v := range envMap(environ) {
		vars[k] = cty.StringVal(v)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": cty.ObjectVal(vars)},
	}
}

func readFile(fsys hackpadfs.FS, name string) ([]byte, error) {
	if fsys != nil {
		return hackpadfs.ReadFile(fsys, name)
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, err
	}
	host := osfs.NewFS()
	rel, err := host.FromOSPath(abs)
	if err != nil {
		return nil, err
	}
	return hackpadfs.ReadFile(host, rel)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
