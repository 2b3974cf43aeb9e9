package shader

import (
	"fmt"
	"path"
	"strings"

	"github.com/hack-pad/hackpadfs"

	"github.com/bayou-brogrammer/wgpu-playground/internal/core"
)

// unit is one parsed file of an import graph.
type unit struct {
	name    string
	lines   []line
	imports Imports
	deps    []string // resolved file names, parallel to imports.Targets
}

// graph holds every file reachable from a root, in dependency order.
type graph struct {
	units map[string]*unit
	order []string // dependencies before dependents; order[len-1] is the root
}

type visitState int

const (
	unvisited visitState = iota
	visiting
	visited
)

// buildGraph reads root and, transitively, every file it imports. Imports of
// a file are looked up under its define_import_path, relative to the asset
// root, or in the asset root itself.
func buildGraph(fsys hackpadfs.FS, root string) (*graph, error) {
	g := &graph{units: map[string]*unit{}}
	state := map[string]visitState{}
	var stack []string

	var visit func(name, importer string) error
	visit = func(name, importer string) error {
		switch state[name] {
		case visited:
			return nil
		case visiting:
			start := 0
			for i, s := range stack {
				if s == name {
					start = i
				}
			}
			chain := append(append([]string(nil), stack[start:]...), name)
			return fmt.Errorf("%w: %s", ErrImportCycle, strings.Join(chain, " -> "))
		}
		state[name] = visiting
		stack = append(stack, name)

		u, err := readUnit(fsys, name, importer)
		if err != nil {
			return err
		}
		dir := path.Clean(u.imports.ImportPath)
		if u.imports.ImportPath == "" {
			dir = "."
		}
		for _, target := range u.imports.Targets {
			dep := path.Join(dir, target)
			u.deps = append(u.deps, dep)
			if err := visit(dep, name); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		state[name] = visited
		g.units[name] = u
		g.order = append(g.order, name)
		return nil
	}

	if err := visit(path.Clean(root), ""); err != nil {
		return nil, err
	}
	return g, nil
}

func readUnit(fsys hackpadfs.FS, name, importer string) (*unit, error) {
	data, err := hackpadfs.ReadFile(fsys, name)
	if err != nil {
		if importer == "" {
			core.Logger().Error("failed to read shader file", "path", name, "err", err)
			return nil, fmt.Errorf("%w: %s: %w", ErrMissingTemplate, name, err)
		}
		core.Logger().Error("failed to read import file", "path", name, "importer", importer, "err", err)
		return nil, fmt.Errorf("%w: %s imported by %s: %w", ErrMissingImport, name, importer, err)
	}
	core.Logger().Debug("read shader file", "path", name, "bytes", len(data))

	lines, imports, err := scan(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &unit{name: name, lines: lines, imports: imports}, nil
}

// expand returns the text of every unit with its import directives replaced
// by the expanded text of the imported file and define_import_path lines
// dropped. Units are expanded leaves first, so each dependency is ready
// before its importers.
func (g *graph) expand() map[string]string {
	out := make(map[string]string, len(g.order))
	for _, name := range g.order {
		u := g.units[name]
		var b strings.Builder
		dep := 0
		for _, l := range u.lines {
			switch l.kind {
			case directiveImport:
				b.WriteString(l.indent)
				b.WriteString(out[u.deps[dep]])
				b.WriteString(l.ending)
				core.Logger().Debug("spliced import", "file", name, "import", u.deps[dep])
				dep++
			case directiveImportPath:
			default:
				b.WriteString(l.text)
				b.WriteString(l.ending)
			}
		}
		out[name] = b.String()
	}
	return out
}
