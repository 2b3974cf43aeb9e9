package wgsl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bayou-brogrammer/wgpu-playground/internal/shader"
	"github.com/bayou-brogrammer/wgpu-playground/pkg/dsl"
)

const minimalCompute = `
@group(0) @binding(0) var<uniform> n: u32;

@compute @workgroup_size(64, 1, 1)
fn main(@builtin(global_invocation_id) id: vec3<u32>) {
    var result: u32 = 0u;
    if (id.x < n) {
        result = 1u;
    }
}
`

// skipUnsupported skips when naga reports a feature it has not implemented.
func skipUnsupported(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		return
	}
	msg := err.Error()
	if strings.Contains(msg, "not yet implemented") || strings.Contains(msg, "not supported") {
		t.Skipf("naga feature not yet implemented: %v", err)
	}
}

func resolve(t *testing.T, name string, rule dsl.Statement) string {
	t.Helper()
	fsys, err := shader.OpenDir("../../assets")
	require.NoError(t, err)
	a, err := shader.New(shader.Config{FS: fsys})
	require.NoError(t, err)
	src, err := a.Resolve(name, rule)
	require.NoError(t, err)
	return src
}

func TestCheck(t *testing.T) {
	assert.ErrorIs(t, Check(""), ErrEmptySource)
	assert.NoError(t, Check(minimalCompute))
	assert.Error(t, Check("fn main( {"))
}

func TestCompileModuleEmpty(t *testing.T) {
	_, err := CompileModule("empty", "")
	assert.ErrorIs(t, err, ErrEmptySource)
}

func TestCompileModuleSyntaxError(t *testing.T) {
	_, err := CompileModule("broken", "fn main( {")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestCompileModuleMinimal(t *testing.T) {
	m, err := CompileModule("minimal", minimalCompute)
	skipUnsupported(t, err)
	require.NoError(t, err)

	require.NotEmpty(t, m.SPIRV)
	assert.Equal(t, uint32(0x07230203), m.SPIRV[0])
	ep, ok := m.EntryPoint("main")
	require.True(t, ok)
	assert.Equal(t, StageCompute, ep.Stage)
	assert.Equal(t, [3]uint32{64, 1, 1}, ep.Workgroup)

	_, ok = m.EntryPoint("missing")
	assert.False(t, ok)
}

func TestCompileGameOfLife(t *testing.T) {
	for _, name := range []string{"conway", "highlife", "seeds", "daynight"} {
		t.Run(name, func(t *testing.T) {
			rule, err := dsl.Lookup(name)
			require.NoError(t, err)
			src := resolve(t, "game_of_life.wgsl", rule)

			m, err := CompileModule("game_of_life", src)
			skipUnsupported(t, err)
			require.NoError(t, err)

			for _, entry := range []string{"init", "update"} {
				ep, ok := m.EntryPoint(entry)
				require.True(t, ok, entry)
				assert.Equal(t, StageCompute, ep.Stage)
				assert.Equal(t, [3]uint32{8, 8, 1}, ep.Workgroup)
			}
		})
	}
}

func TestCompileDraw(t *testing.T) {
	m, err := CompileModule("draw", resolve(t, "draw.wgsl", nil))
	skipUnsupported(t, err)
	require.NoError(t, err)
	_, ok := m.EntryPoint("main")
	assert.True(t, ok)
}

func TestWords(t *testing.T) {
	assert.Equal(t, []uint32{0x07230203, 1}, words([]byte{0x03, 0x02, 0x23, 0x07, 1, 0, 0, 0}))
	assert.Empty(t, words(nil))
}
