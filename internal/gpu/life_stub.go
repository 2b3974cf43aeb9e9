//go:build !ebiten

package gpu

import (
	"github.com/bayou-brogrammer/wgpu-playground/internal/shader"
	"github.com/bayou-brogrammer/wgpu-playground/internal/sims/life"
	"github.com/bayou-brogrammer/wgpu-playground/pkg/dsl"
)

// Life is a placeholder for headless builds.
type Life struct{}

// New validates the shader source and reports that the GPU backend needs the
// ebiten build tag.
func New(asm *shader.Assembler, w, h int, ruleName string, rule dsl.Statement) (*Life, error) {
	if _, err := compile(asm, rule); err != nil {
		return nil, err
	}
	return nil, ErrUnavailable
}

// FromConfig reports that the GPU backend needs the ebiten build tag.
func FromConfig(asm *shader.Assembler, c life.Config) (*Life, error) {
	rule, err := dsl.Lookup(c.Rule)
	if err != nil {
		return nil, err
	}
	return New(asm, c.Width, c.Height, c.Rule, rule)
}
