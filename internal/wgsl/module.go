// Package wgsl turns resolved WGSL source into SPIR-V modules with naga.
// This is the last validation step for assembled shaders: text the
// assembler produced is only known to be valid once it compiles here.
package wgsl

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/naga/spirv"

	"github.com/bayou-brogrammer/wgpu-playground/internal/core"
)

// ErrEmptySource is returned for blank shader text.
var ErrEmptySource = errors.New("wgsl: empty shader source")

// Stage is the pipeline stage of an entry point.
type Stage string

const (
	StageVertex   Stage = "vertex"
	StageFragment Stage = "fragment"
	StageCompute  Stage = "compute"
	StageOther    Stage = "other"
)

// EntryPoint describes one entry point of a compiled module.
type EntryPoint struct {
	Name      string
	Stage     Stage
	Workgroup [3]uint32
}

// Module is a compiled shader module.
type Module struct {
	Label       string
	SPIRV       []uint32
	EntryPoints []EntryPoint
}

// EntryPoint returns the named entry point.
func (m *Module) EntryPoint(name string) (EntryPoint, bool) {
	for _, ep := range m.EntryPoints {
		if ep.Name == name {
			return ep, true
		}
	}
	return EntryPoint{}, false
}

// Check parses source without lowering or code generation.
func Check(source string) error {
	if source == "" {
		return ErrEmptySource
	}
	if _, err := naga.Parse(source); err != nil {
		return fmt.Errorf("wgsl: %w", err)
	}
	return nil
}

// CompileModule parses, lowers, validates and compiles source to SPIR-V.
func CompileModule(label, source string) (*Module, error) {
	if source == "" {
		return nil, fmt.Errorf("%s: %w", label, ErrEmptySource)
	}
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("wgsl: %s: %w", label, err)
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, fmt.Errorf("wgsl: %s: lowering error: %w", label, err)
	}
	problems, err := naga.Validate(module)
	if err != nil {
		return nil, fmt.Errorf("wgsl: %s: validation error: %w", label, err)
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("wgsl: %s: validation failed: %w", label, &problems[0])
	}

	opts := spirv.DefaultOptions()
	opts.Version = spirv.Version1_3
	code, err := naga.GenerateSPIRV(module, opts)
	if err != nil {
		return nil, fmt.Errorf("wgsl: %s: %w", label, err)
	}

	m := &Module{Label: label, SPIRV: words(code)}
	for _, ep := range module.EntryPoints {
		m.EntryPoints = append(m.EntryPoints, EntryPoint{
			Name:      ep.Name,
			Stage:     stageOf(ep.Stage),
			Workgroup: ep.Workgroup,
		})
	}
	core.Logger().Debug("compiled shader module", "label", label, "words", len(m.SPIRV), "entry_points", len(m.EntryPoints))
	return m, nil
}

// words converts little-endian SPIR-V bytes to 32-bit words.
func words(code []byte) []uint32 {
	out := make([]uint32, len(code)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(code[i*4:])
	}
	return out
}

func stageOf(s ir.ShaderStage) Stage {
	switch s {
	case ir.StageVertex:
		return StageVertex
	case ir.StageFragment:
		return StageFragment
	case ir.StageCompute:
		return StageCompute
	}
	return StageOther
}
