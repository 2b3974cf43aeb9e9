package shader

import (
	"path"
	"strings"
	"testing"

	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bayou-brogrammer/wgpu-playground/pkg/dsl"
)

func newFS(t *testing.T, files map[string]string) hackpadfs.FS {
	t.Helper()
	fsys, err := mem.NewFS()
	require.NoError(t, err)
	for name, body := range files {
		if dir := path.Dir(name); dir != "." {
			require.NoError(t, hackpadfs.MkdirAll(fsys, dir, 0o755))
		}
		require.NoError(t, hackpadfs.WriteFullFile(fsys, name, []byte(body), 0o644))
	}
	return fsys
}

func newAssembler(t *testing.T, files map[string]string) *Assembler {
	t.Helper()
	a, err := New(Config{FS: newFS(t, files)})
	require.NoError(t, err)
	return a
}

const ruleTemplate = `#define_import_path shaders
#import grid.wgsl

fn update() {
    var result: u32 = 0u;
    {PLACEHOLDER}
}
`

func TestNewRequiresFS(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestLoadWithoutImports(t *testing.T) {
	raw := "fn main() {\n    let x = 1u;\n}\n"
	a := newAssembler(t, map[string]string{"plain.wgsl": raw})

	got, err := a.Load("plain.wgsl")
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	withRule := "fn main() {\n    {PLACEHOLDER}\n}\n"
	a = newAssembler(t, map[string]string{"plain.wgsl": withRule})
	got, err = a.LoadWithRule("plain.wgsl", dsl.Set(dsl.U32(1)))
	require.NoError(t, err)
	assert.Equal(t, strings.Replace(withRule, "{PLACEHOLDER}", "result = 1u;", 1), got)
}

func TestLoadSplicesImportsFromImportPath(t *testing.T) {
	a := newAssembler(t, map[string]string{
		"main.wgsl":         "#define_import_path shaders\n#import grid.wgsl\nfn main() {}\n",
		"shaders/grid.wgsl": "fn grid() {}\n",
		"grid.wgsl":         "fn wrong_grid() {}\n",
	})
	got, err := a.Load("main.wgsl")
	require.NoError(t, err)
	assert.Equal(t, "fn grid() {}\n\nfn main() {}\n", got)
}

func TestLoadWithoutImportPathUsesAssetRoot(t *testing.T) {
	a := newAssembler(t, map[string]string{
		"nested/main.wgsl": "    #import common.wgsl\nfn main() {}\n",
		"common.wgsl":      "fn common() {}",
	})
	got, err := a.Load("nested/main.wgsl")
	require.NoError(t, err)
	assert.Equal(t, "    fn common() {}\nfn main() {}\n", got)
}

func TestLoadDuplicateImportsAreEachReplaced(t *testing.T) {
	a := newAssembler(t, map[string]string{
		"main.wgsl": "#import a.wgsl\n#import a.wgsl\n",
		"a.wgsl":    "A",
	})
	got, err := a.Load("main.wgsl")
	require.NoError(t, err)
	assert.Equal(t, "A\nA\n", got)
}

func TestLoadTransitiveImports(t *testing.T) {
	a := newAssembler(t, map[string]string{
		"main.wgsl":      "#define_import_path lib\n#import b.wgsl\nmain\n",
		"lib/b.wgsl":     "#define_import_path lib/sub\n#import c.wgsl\nb",
		"lib/sub/c.wgsl": "c",
	})
	got, err := a.Load("main.wgsl")
	require.NoError(t, err)
	assert.Equal(t, "c\nb\nmain\n", got)

	deps, err := a.Dependencies("main.wgsl")
	require.NoError(t, err)
	assert.Equal(t, []string{"lib/sub/c.wgsl", "lib/b.wgsl", "main.wgsl"}, deps)
}

func TestLoadDetectsCycles(t *testing.T) {
	a := newAssembler(t, map[string]string{
		"a.wgsl": "#import b.wgsl\n",
		"b.wgsl": "#import c.wgsl\n",
		"c.wgsl": "#import b.wgsl\n",
		"d.wgsl": "#import d.wgsl\n",
	})
	_, err := a.Load("a.wgsl")
	require.ErrorIs(t, err, ErrImportCycle)
	assert.Contains(t, err.Error(), "b.wgsl -> c.wgsl -> b.wgsl")

	_, err = a.Load("d.wgsl")
	assert.ErrorIs(t, err, ErrImportCycle)
}

func TestLoadMissingFiles(t *testing.T) {
	a := newAssembler(t, map[string]string{
		"main.wgsl": "#define_import_path shaders\n#import missing.wgsl\n{PLACEHOLDER}\n",
	})

	_, err := a.Load("nope.wgsl")
	assert.ErrorIs(t, err, ErrMissingTemplate)

	got, err := a.LoadWithRule("main.wgsl", dsl.Conway())
	require.ErrorIs(t, err, ErrMissingImport)
	assert.NotErrorIs(t, err, ErrMissingTemplate)
	assert.Empty(t, got)
	assert.Contains(t, err.Error(), "shaders/missing.wgsl")
}

func TestLoadRejectsDuplicateImportPath(t *testing.T) {
	a := newAssembler(t, map[string]string{
		"main.wgsl": "#define_import_path a\n#define_import_path b\n",
	})
	_, err := a.Load("main.wgsl")
	assert.ErrorIs(t, err, ErrDuplicateImportPath)
}

func TestLoadWithRulePlaceholderCount(t *testing.T) {
	a := newAssembler(t, map[string]string{
		"none.wgsl":  "fn main() {}\n",
		"twice.wgsl": "{PLACEHOLDER}\n{PLACEHOLDER}\n",
		"split.wgsl": "#import half.wgsl\n{PLACEHOLDER}\n",
		"half.wgsl":  "{PLACEHOLDER}",
	})
	for _, name := range []string{"none.wgsl", "twice.wgsl", "split.wgsl"} {
		_, err := a.LoadWithRule(name, dsl.Conway())
		assert.ErrorIs(t, err, ErrPlaceholder, name)
	}

	// Without a rule the placeholder is left alone.
	got, err := a.Load("twice.wgsl")
	require.NoError(t, err)
	assert.Equal(t, "{PLACEHOLDER}\n{PLACEHOLDER}\n", got)
}

func TestLoadWithNoopRule(t *testing.T) {
	a := newAssembler(t, map[string]string{"main.wgsl": "a {PLACEHOLDER} b"})
	got, err := a.LoadWithRule("main.wgsl", dsl.Void())
	require.NoError(t, err)
	assert.Equal(t, "a  b", got)

	got, err = a.LoadWithRule("main.wgsl", nil)
	require.NoError(t, err)
	assert.Equal(t, "a  b", got)
}

func TestLoadConwayRule(t *testing.T) {
	a := newAssembler(t, map[string]string{
		"life.wgsl":         ruleTemplate,
		"shaders/grid.wgsl": "fn grid() {}\n",
	})
	src, err := a.LoadWithRule("life.wgsl", dsl.Conway())
	require.NoError(t, err)

	assert.NotContains(t, src, "{PLACEHOLDER}")
	assert.NotContains(t, src, "#import")
	assert.NotContains(t, src, "#define_import_path")
	assert.Equal(t, 1, strings.Count(src, "if (is_alive) {"))

	_, rest, ok := strings.Cut(src, "if (is_alive) { ")
	require.True(t, ok)
	then, rest, ok := strings.Cut(rest, " } else { ")
	require.True(t, ok)
	els, _, ok := strings.Cut(rest, " }")
	require.True(t, ok)

	assert.True(t, strings.HasPrefix(then, "result = "))
	assert.Contains(t, then, "(num_neighbors) == (2u)")
	assert.Contains(t, then, "(num_neighbors) == (3u)")
	assert.Contains(t, then, ") | (")
	assert.Equal(t, "result = u32((num_neighbors) == (3u));", els)
	assert.NotContains(t, els, "2u")
}

func TestLoadIsIdempotent(t *testing.T) {
	a := newAssembler(t, map[string]string{
		"life.wgsl":         ruleTemplate,
		"shaders/grid.wgsl": "fn grid() {}\n",
	})
	first, err := a.LoadWithRule("life.wgsl", dsl.Conway())
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := a.LoadWithRule("life.wgsl", dsl.Conway())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestDebugDump(t *testing.T) {
	files := map[string]string{
		"life.wgsl":         ruleTemplate,
		"shaders/grid.wgsl": "fn grid() {}\n",
	}
	fsys := newFS(t, files)
	a, err := New(Config{FS: fsys, DebugDump: true})
	require.NoError(t, err)

	src, err := a.LoadWithRule("life.wgsl", dsl.Conway())
	require.NoError(t, err)
	dumped, err := hackpadfs.ReadFile(fsys, "life.wgsl.debug.wgsl")
	require.NoError(t, err)
	assert.Equal(t, src, string(dumped))

	quiet := newFS(t, files)
	a, err = New(Config{FS: quiet})
	require.NoError(t, err)
	_, err = a.LoadWithRule("life.wgsl", dsl.Conway())
	require.NoError(t, err)
	_, err = hackpadfs.ReadFile(quiet, "life.wgsl.debug.wgsl")
	assert.Error(t, err)
}

func TestDebugDumpToSeparateFS(t *testing.T) {
	dumps := newFS(t, nil)
	a, err := New(Config{
		FS:        newFS(t, map[string]string{"sub/x.kage": "package main\n"}),
		DebugDump: true,
		DumpFS:    dumps,
	})
	require.NoError(t, err)
	_, err = a.Load("sub/x.kage")
	require.NoError(t, err)

	dumped, err := hackpadfs.ReadFile(dumps, "sub/x.kage.debug.kage")
	require.NoError(t, err)
	assert.Equal(t, "package main\n", string(dumped))
}

func TestDebugPath(t *testing.T) {
	assert.Equal(t, "game_of_life.wgsl.debug.wgsl", DebugPath("game_of_life.wgsl"))
	assert.Equal(t, "shaders/life.kage.debug.kage", DebugPath("shaders/life.kage"))
	assert.Equal(t, "noext.debug", DebugPath("noext"))
}

func TestKageDialect(t *testing.T) {
	fsys := newFS(t, map[string]string{
		"life.kage":       "package main\n\n#import kage/cells.kage\n\nfunc rule() {\n\t{PLACEHOLDER}\n}\n",
		"kage/cells.kage": "func cellAt() {}\n",
	})
	a, err := New(Config{FS: fsys, Dialect: dsl.Kage})
	require.NoError(t, err)
	assert.Equal(t, dsl.Kage, a.Dialect())

	src, err := a.LoadWithRule("life.kage", dsl.Conway())
	require.NoError(t, err)
	assert.Contains(t, src, "func cellAt() {}")
	assert.Contains(t, src, "if ((isAlive) > 0.5) {")
}

func TestCustomPlaceholder(t *testing.T) {
	a, err := New(Config{
		FS:          newFS(t, map[string]string{"x.wgsl": "/*RULE*/ {PLACEHOLDER}"}),
		Placeholder: "/*RULE*/",
	})
	require.NoError(t, err)
	got, err := a.LoadWithRule("x.wgsl", dsl.Set(dsl.IsAlive()))
	require.NoError(t, err)
	assert.Equal(t, "result = is_alive; {PLACEHOLDER}", got)
}
