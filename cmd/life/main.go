//go:build ebiten

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/bayou-brogrammer/wgpu-playground/internal/app"
	"github.com/bayou-brogrammer/wgpu-playground/internal/config"
	"github.com/bayou-brogrammer/wgpu-playground/internal/core"
	"github.com/bayou-brogrammer/wgpu-playground/internal/gpu"
	"github.com/bayou-brogrammer/wgpu-playground/internal/shader"
	"github.com/bayou-brogrammer/wgpu-playground/internal/sims/life"
	"github.com/bayou-brogrammer/wgpu-playground/pkg/dsl"
)

func main() {
	cfg, err := config.Load("life", os.Args[1:], os.Environ(), nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if cfg.DebugShader {
		level = slog.LevelDebug
	}
	core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	sim, err := newSim(cfg)
	if err != nil {
		core.Logger().Error("failed to create simulation", "sim", cfg.Sim, "backend", cfg.Backend, "err", err)
		os.Exit(1)
	}
	sim.Reset(cfg.Seed)

	game := app.New(sim, app.Options{Scale: cfg.Scale, TPS: cfg.TPS, Seed: cfg.Seed})
	size := sim.Size()

	ebiten.SetWindowTitle(fmt.Sprintf("life - %s [%s]", sim.Name(), cfg.Rule))
	ebiten.SetWindowSize(size.W*cfg.Scale+app.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		core.Logger().Error("game loop failed", "err", err)
		os.Exit(1)
	}
}

func newSim(cfg *config.Config) (core.Sim, error) {
	if cfg.Backend != config.BackendGPU || cfg.Sim != "life" {
		return core.New(cfg.Sim, cfg.SimParams())
	}
	fsys, err := shader.OpenDir(cfg.AssetRoot)
	if err != nil {
		return nil, err
	}
	asm, err := shader.New(shader.Config{FS: fsys, Dialect: dsl.Kage, DebugDump: cfg.DebugShader})
	if err != nil {
		return nil, err
	}
	return gpu.FromConfig(asm, life.FromMap(cfg.SimParams()))
}
