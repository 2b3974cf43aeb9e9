// Command shaderc resolves a shader template against the asset tree, splices
// a life rule into it and prints the result.
//
//	shaderc -rule highlife game_of_life.wgsl
//	shaderc -dialect kage -rule B3/S23 -out life.out.kage life.kage
//	shaderc -validate -rule conway game_of_life.wgsl
//	shaderc -deps game_of_life.wgsl
//
// With -deps, stdout carries the dependency list instead of the source; add
// -out to keep the source as well. A successful -validate prints one summary
// line on stderr.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/bayou-brogrammer/wgpu-playground/internal/config"
	"github.com/bayou-brogrammer/wgpu-playground/internal/core"
	"github.com/bayou-brogrammer/wgpu-playground/internal/shader"
	"github.com/bayou-brogrammer/wgpu-playground/internal/wgsl"
	"github.com/bayou-brogrammer/wgpu-playground/pkg/dsl"
)

type options struct {
	assets   string
	rule     string
	dialect  string
	out      string
	validate bool
	deps     bool
	debug    bool
	verbose  bool
	template string
}

func main() {
	if err := run(os.Args[1:], os.Environ(), os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "shaderc:", err)
		os.Exit(1)
	}
}

func parseArgs(args, environ []string, stderr io.Writer) (options, error) {
	defaults := config.NewConfig()
	defaults.ApplyEnv(environ)

	opts := options{dialect: dsl.WGSL.Name}
	fs := flag.NewFlagSet("shaderc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.assets, "assets", defaults.AssetRoot, "shader asset directory")
	fs.StringVar(&opts.rule, "rule", "", "ruleset name or B/S rule string to splice (none leaves the placeholder)")
	fs.StringVar(&opts.dialect, "dialect", opts.dialect, "rule dialect (wgsl or kage)")
	fs.StringVar(&opts.out, "out", "", "write the resolved source to this file instead of stdout")
	fs.BoolVar(&opts.validate, "validate", false, "compile WGSL output with naga")
	fs.BoolVar(&opts.deps, "deps", false, "print the files the template pulls in instead of the source")
	fs.BoolVar(&opts.debug, "debug-shader", defaults.DebugShader, "dump the resolved source next to the template")
	fs.BoolVar(&opts.verbose, "v", false, "verbose logging")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: shaderc [flags] template")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return opts, fmt.Errorf("expected one template, got %d", fs.NArg())
	}
	opts.template = fs.Arg(0)
	return opts, nil
}

func dialectByName(name string) (dsl.Dialect, error) {
	switch strings.ToLower(name) {
	case dsl.WGSL.Name:
		return dsl.WGSL, nil
	case dsl.Kage.Name:
		return dsl.Kage, nil
	}
	return dsl.Dialect{}, fmt.Errorf("unknown dialect %q", name)
}

func run(args, environ []string, stdout, stderr io.Writer) error {
	opts, err := parseArgs(args, environ, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	core.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	dialect, err := dialectByName(opts.dialect)
	if err != nil {
		return err
	}
	fsys, err := shader.OpenDir(opts.assets)
	if err != nil {
		return err
	}
	asm, err := shader.New(shader.Config{FS: fsys, Dialect: dialect, DebugDump: opts.debug})
	if err != nil {
		return err
	}

	if opts.deps {
		deps, err := asm.Dependencies(opts.template)
		if err != nil {
			return err
		}
		for _, d := range deps {
			if _, err := fmt.Fprintln(stdout, d); err != nil {
				return err
			}
		}
	}

	var rule dsl.Statement
	if opts.rule != "" {
		if rule, err = dsl.Lookup(opts.rule); err != nil {
			return err
		}
	}
	src, err := asm.Resolve(opts.template, rule)
	if err != nil {
		return err
	}

	if opts.validate {
		if dialect != dsl.WGSL {
			return fmt.Errorf("-validate only supports the %s dialect", dsl.WGSL.Name)
		}
		m, err := wgsl.CompileModule(opts.template, src)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(m.EntryPoints))
		for _, ep := range m.EntryPoints {
			core.Logger().Debug("entry point", "name", ep.Name, "stage", ep.Stage, "workgroup", ep.Workgroup)
			names = append(names, fmt.Sprintf("%s(%s)", ep.Name, ep.Stage))
		}
		fmt.Fprintf(stderr, "%s: valid, %d SPIR-V words, entry points: %s\n",
			opts.template, len(m.SPIRV), strings.Join(names, " "))
	}

	if opts.out == "" {
		if opts.deps {
			return nil
		}
		_, err = io.WriteString(stdout, src)
		return err
	}
	if err := os.WriteFile(opts.out, []byte(src), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.out, err)
	}
	core.Logger().Info("wrote shader", "path", opts.out, "bytes", len(src))
	return nil
}
