package ui

import (
	"math"

	"github.com/bayou-brogrammer/wgpu-playground/internal/core"
)

const (
	minBrushRadius     = 0
	maxBrushRadius     = 32
	defaultBrushRadius = 3
)

// cellUnderCursor maps screen coordinates to a cell of a grid drawn at scale.
func cellUnderCursor(mx, my, scale int, size core.Size) (int, int, bool) {
	if scale <= 0 || mx < 0 || my < 0 {
		return 0, 0, false
	}
	x, y := mx/scale, my/scale
	if x >= size.W || y >= size.H {
		return 0, 0, false
	}
	return x, y, true
}

func clampRadius(r int) int {
	if r < minBrushRadius {
		return minBrushRadius
	}
	if r > maxBrushRadius {
		return maxBrushRadius
	}
	return r
}

// outline returns n points on the circle of radius r around (cx, cy).
func outline(cx, cy, r float64, n int) [][2]float64 {
	pts := make([][2]float64, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = [2]float64{cx + r*math.Cos(a), cy + r*math.Sin(a)}
	}
	return pts
}
