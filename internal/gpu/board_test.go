package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bayou-brogrammer/wgpu-playground/internal/shader"
	"github.com/bayou-brogrammer/wgpu-playground/pkg/dsl"
)

func kageAssembler(t *testing.T, dialect dsl.Dialect) *shader.Assembler {
	t.Helper()
	fsys, err := shader.OpenDir("../../assets")
	require.NoError(t, err)
	asm, err := shader.New(shader.Config{FS: fsys, Dialect: dialect})
	require.NoError(t, err)
	return asm
}

func TestCompile(t *testing.T) {
	src, err := compile(kageAssembler(t, dsl.Kage), dsl.HighLife())
	require.NoError(t, err)
	assert.Contains(t, string(src), "package main")
	assert.Contains(t, string(src), "func cellAt(")
	assert.Contains(t, string(src), "(numNeighbors) == (6.0)")
	assert.NotContains(t, string(src), "{PLACEHOLDER}")
	assert.NotContains(t, string(src), "#import")
}

func TestCompileRequiresKage(t *testing.T) {
	_, err := compile(kageAssembler(t, dsl.WGSL), dsl.Conway())
	assert.Error(t, err)

	_, err = compile(nil, dsl.Conway())
	assert.Error(t, err)
}

func TestBoardResetAndPaint(t *testing.T) {
	b := newBoard(16, 8, "conway", 50)
	b.stale = true
	b.generation = 9
	b.reset(3)
	assert.True(t, b.dirty)
	assert.False(t, b.stale)
	assert.Zero(t, b.generation)
	first := append([]uint8(nil), b.grid.Cells()...)

	b.reset(3)
	assert.Equal(t, first, b.grid.Cells(), "same seed gives the same board")

	b.grid.Clear()
	b.dirty = false
	b.paint(0, 0, 1, true)
	assert.True(t, b.dirty)
	assert.Equal(t, 5, b.grid.Count())
}

func TestBoardParameters(t *testing.T) {
	b := newBoard(4, 4, "B36/S23", 30)
	assert.Equal(t, "B36/S23", b.Rule())
	assert.True(t, b.SetIntParameter("density", -5))
	assert.Zero(t, b.density)
	assert.False(t, b.SetIntParameter("tps", 1))

	snap := b.parameters()
	require.Len(t, snap.Groups, 2)
	assert.Equal(t, "B36/S23", snap.Groups[0].Params[0].Value)
	assert.Equal(t, "0", snap.Groups[1].Params[1].Value)
}

func TestNewWithoutGPU(t *testing.T) {
	if _, err := New(kageAssembler(t, dsl.WGSL), 4, 4, "conway", dsl.Conway()); err == nil {
		t.Fatal("expected an error for a WGSL assembler")
	}
}
