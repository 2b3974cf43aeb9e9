package shader

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mattn/go-shellwords"
)

// directiveRegex matches "#import x" and "#define_import_path p" with
// optional whitespace before and after the '#'. The name must be followed by
// whitespace or the end of the line.
var directiveRegex = regexp.MustCompile(`^\s*#\s*(import|define_import_path)(?:\s+(.*))?$`)

type directiveKind int

const (
	directiveNone directiveKind = iota
	directiveImport
	directiveImportPath
)

// line is one line of a shader file. Directive lines carry their argument.
type line struct {
	text   string // without the line ending
	ending string
	kind   directiveKind
	arg    string
	indent string
}

// Imports is the result of scanning one file: its import targets in
// first-seen order, duplicates kept, and the declared import path.
type Imports struct {
	Targets    []string
	ImportPath string
}

// ParseImports scans src line by line for directives. A second
// define_import_path is rejected with ErrDuplicateImportPath.
func ParseImports(src string) (Imports, error) {
	_, imports, err := scan(src)
	return imports, err
}

func scan(src string) ([]line, Imports, error) {
	var imports Imports
	var lines []line
	seenPath := false
	raw := strings.SplitAfter(src, "\n")
	for i, r := range raw {
		if r == "" {
			continue
		}
		l := splitEnding(r)
		m := directiveRegex.FindStringSubmatch(l.text)
		if m == nil {
			lines = append(lines, l)
			continue
		}
		arg, err := directiveArg(m[2])
		if err != nil {
			return nil, Imports{}, fmt.Errorf("%w: line %d: %q: %w", ErrMalformedDirective, i+1, l.text, err)
		}
		l.arg = arg
		l.indent = l.text[:len(l.text)-len(strings.TrimLeft(l.text, " \t"))]
		switch m[1] {
		case "import":
			l.kind = directiveImport
			imports.Targets = append(imports.Targets, arg)
		case "define_import_path":
			if seenPath {
				return nil, Imports{}, fmt.Errorf("%w: line %d: %q after %q", ErrDuplicateImportPath, i+1, arg, imports.ImportPath)
			}
			seenPath = true
			l.kind = directiveImportPath
			imports.ImportPath = arg
		}
		lines = append(lines, l)
	}
	return lines, imports, nil
}

func splitEnding(r string) line {
	text := strings.TrimSuffix(r, "\n")
	ending := r[len(text):]
	if trimmed := strings.TrimSuffix(text, "\r"); len(trimmed) != len(text) {
		ending = "\r" + ending
		text = trimmed
	}
	return line{text: text, ending: ending}
}

// directiveArg returns the single, possibly quoted, argument of a directive.
// Asset paths are slash separated, so backslashes are rejected rather than
// read as escapes.
func directiveArg(rest string) (string, error) {
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return "", fmt.Errorf("missing argument")
	}
	if strings.ContainsRune(rest, '\\') {
		return "", fmt.Errorf("backslash in %q", rest)
	}
	p := shellwords.NewParser()
	args, err := p.Parse(rest)
	if err != nil {
		return "", err
	}
	// The parser stops at an unquoted ; | & < or > and reports where.
	if p.Position >= 0 {
		return "", fmt.Errorf("unexpected shell operator in %q", rest)
	}
	if len(args) != 1 || args[0] == "" {
		return "", fmt.Errorf("want one argument, got %d", len(args))
	}
	return args[0], nil
}
