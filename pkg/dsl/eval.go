package dsl

// Eval runs s for a single cell and returns the value it assigns to the
// result. The result starts at 0, matching the templates, so a rule that
// assigns nothing kills the cell.
func Eval(s Statement, alive bool, neighbors uint32) uint32 {
	var result uint32
	exec(s, alive, neighbors, &result)
	return result
}

func exec(s Statement, alive bool, neighbors uint32, result *uint32) {
	switch s := s.(type) {
	case SetResult:
		*result = EvalExpr(s.Value, alive, neighbors)
	case IfThenElse:
		if EvalExpr(s.Cond, alive, neighbors) != 0 {
			exec(s.Then, alive, neighbors, result)
		} else {
			exec(s.Else, alive, neighbors, result)
		}
	}
}

// EvalExpr computes e with the same semantics as the generated WGSL:
// comparisons yield 0 or 1 and And/Or are bitwise.
func EvalExpr(e Expr, alive bool, neighbors uint32) uint32 {
	switch e := e.(type) {
	case Const:
		return uint32(e)
	case Alive:
		return b2u(alive)
	case NeighborCount:
		return neighbors
	case Binary:
		lhs := EvalExpr(e.LHS, alive, neighbors)
		rhs := EvalExpr(e.RHS, alive, neighbors)
		switch e.Op {
		case OpGt:
			return b2u(lhs > rhs)
		case OpGte:
			return b2u(lhs >= rhs)
		case OpLt:
			return b2u(lhs < rhs)
		case OpLte:
			return b2u(lhs <= rhs)
		case OpEqual:
			return b2u(lhs == rhs)
		case OpAnd:
			return lhs & rhs
		case OpOr:
			return lhs | rhs
		}
	}
	return 0
}

// Table precomputes s for every alive/neighbour combination of a Moore
// neighbourhood. Entries are 1 when the cell is alive in the next generation.
func Table(s Statement) [2][9]uint8 {
	var t [2][9]uint8
	for a := 0; a < 2; a++ {
		for n := uint32(0); n <= 8; n++ {
			if Eval(s, a == 1, n) != 0 {
				t[a][n] = 1
			}
		}
	}
	return t
}

func b2u(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
