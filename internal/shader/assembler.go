// Package shader assembles shader source from template files. It expands
// "#import" directives across files of an asset tree and splices compiled
// rule code into the template's placeholder, producing text that is ready
// for a shader compiler.
//
// Directives are recognised per line:
//
//	#define_import_path shaders
//	#import grid.wgsl
//	#import "noise functions.wgsl"
//
// A file's imports are looked up under its define_import_path, relative to
// the asset root, or in the asset root when it declares none. Imported files
// are expanded transitively; cycles are reported as ErrImportCycle.
package shader

import (
	"fmt"
	"path"
	"strings"

	"github.com/hack-pad/hackpadfs"

	"github.com/bayou-brogrammer/wgpu-playground/internal/core"
	"github.com/bayou-brogrammer/wgpu-playground/pkg/dsl"
)

// DefaultPlaceholder marks where compiled rule code is spliced.
const DefaultPlaceholder = "{PLACEHOLDER}"

// Config configures an Assembler. FS is required; the rest default to the
// WGSL dialect, DefaultPlaceholder and no debug output.
type Config struct {
	// FS is the asset root. Template and import names are relative to it.
	FS hackpadfs.FS
	// Dialect compiles rules spliced into templates.
	Dialect dsl.Dialect
	// Placeholder overrides DefaultPlaceholder.
	Placeholder string
	// DebugDump writes every resolved source next to its template as
	// <template>.debug.<ext>.
	DebugDump bool
	// DumpFS receives debug dumps. It defaults to FS.
	DumpFS hackpadfs.FS
}

// Assembler resolves templates against an asset tree. It keeps no state
// between calls: every load re-reads the files it needs.
type Assembler struct {
	fs          hackpadfs.FS
	dumpFS      hackpadfs.FS
	dialect     dsl.Dialect
	placeholder string
	debug       bool
}

// New returns an Assembler for cfg.
func New(cfg Config) (*Assembler, error) {
	if cfg.FS == nil {
		return nil, fmt.Errorf("shader: config has no asset file system")
	}
	a := &Assembler{
		fs:          cfg.FS,
		dumpFS:      cfg.DumpFS,
		dialect:     cfg.Dialect,
		placeholder: cfg.Placeholder,
		debug:       cfg.DebugDump,
	}
	if a.dumpFS == nil {
		a.dumpFS = cfg.FS
	}
	if a.dialect == (dsl.Dialect{}) {
		a.dialect = dsl.WGSL
	}
	if a.placeholder == "" {
		a.placeholder = DefaultPlaceholder
	}
	return a, nil
}

// Dialect returns the dialect rules are compiled with.
func (a *Assembler) Dialect() dsl.Dialect { return a.dialect }

// Load resolves the imports of the named template.
func (a *Assembler) Load(name string) (string, error) {
	return a.Resolve(name, nil)
}

// LoadWithRule resolves the imports of the named template and replaces its
// placeholder with the compiled rule.
func (a *Assembler) LoadWithRule(name string, rule dsl.Statement) (string, error) {
	if rule == nil {
		rule = dsl.Void()
	}
	return a.Resolve(name, rule)
}

// Resolve expands the imports of the named template. When rule is non-nil
// the template must contain the placeholder exactly once; it is replaced by
// the rule compiled with the assembler's dialect.
func (a *Assembler) Resolve(name string, rule dsl.Statement) (string, error) {
	g, err := buildGraph(a.fs, name)
	if err != nil {
		return "", err
	}
	root := g.order[len(g.order)-1]
	src := g.expand()[root]

	if rule != nil {
		n := strings.Count(src, a.placeholder)
		if n != 1 {
			return "", fmt.Errorf("%w: %s: found %d occurrences of %s, want 1", ErrPlaceholder, name, n, a.placeholder)
		}
		src = strings.Replace(src, a.placeholder, a.dialect.CompileStatement(rule), 1)
	}

	if a.debug {
		a.dump(root, src)
	}
	return src, nil
}

// Dependencies lists the files the named template pulls in, dependencies
// before dependents, ending with the template itself.
func (a *Assembler) Dependencies(name string) ([]string, error) {
	g, err := buildGraph(a.fs, name)
	if err != nil {
		return nil, err
	}
	return g.order, nil
}

// DebugPath returns the file a resolved template is dumped to.
func DebugPath(name string) string {
	ext := path.Ext(name)
	return name + ".debug" + ext
}

// dump writes src for offline inspection. A failed dump does not fail the
// load.
func (a *Assembler) dump(name, src string) {
	out := DebugPath(name)
	if dir := path.Dir(out); dir != "." {
		if err := hackpadfs.MkdirAll(a.dumpFS, dir, 0o755); err != nil {
			core.Logger().Warn("failed to create shader dump directory", "path", dir, "err", err)
			return
		}
	}
	if err := hackpadfs.WriteFullFile(a.dumpFS, out, []byte(src), 0o644); err != nil {
		core.Logger().Warn("failed to write shader dump", "path", out, "err", err)
		return
	}
	core.Logger().Debug("wrote shader dump", "path", out, "bytes", len(src))
}
