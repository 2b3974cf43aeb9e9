package dsl

import "fmt"

// Dialect describes how rule nodes are spelled in one shading language. The
// format strings take the already compiled operands.
type Dialect struct {
	Name string

	// Alive, Neighbors and Result name the rule inputs and output. The
	// template the rule is spliced into must declare them.
	Alive     string
	Neighbors string
	Result    string

	// Literal formats an unsigned integer constant (one %d).
	Literal string
	// Cast turns a boolean comparison into the numeric rule type (one %s).
	Cast string
	// And and Or combine two 0/1 values (two %s).
	And string
	Or  string
	// Cond turns a numeric value into an if condition (one %s).
	Cond string
}

// WGSL targets the WebGPU shading language. Values are u32, comparisons are
// cast with u32(...) and and/or are the bitwise operators.
var WGSL = Dialect{
	Name:      "wgsl",
	Alive:     "is_alive",
	Neighbors: "num_neighbors",
	Result:    "result",
	Literal:   "%du",
	Cast:      "u32(%s)",
	And:       "((%s) & (%s))",
	Or:        "((%s) | (%s))",
	Cond:      "%s",
}

// Kage targets ebiten's Kage language, which has no unsigned integers in
// fragment code. Values are floats holding 0/1, b2f is declared by the
// template, and and/or become product and max. These agree with WGSL for
// 0/1 operands.
var Kage = Dialect{
	Name:      "kage",
	Alive:     "isAlive",
	Neighbors: "numNeighbors",
	Result:    "result",
	Literal:   "%d.0",
	Cast:      "b2f(%s)",
	And:       "((%s) * (%s))",
	Or:        "max((%s), (%s))",
	Cond:      "(%s) > 0.5",
}

// Compile returns the WGSL text of s.
func Compile(s Statement) string { return WGSL.CompileStatement(s) }

// CompileExpr returns the WGSL text of e.
func CompileExpr(e Expr) string { return WGSL.CompileExpr(e) }

// CompileExpr returns e as a fully parenthesized expression. A nil expression
// compiles as the literal 0.
func (d Dialect) CompileExpr(e Expr) string {
	switch e := e.(type) {
	case Const:
		return fmt.Sprintf(d.Literal, uint32(e))
	case Alive:
		return d.Alive
	case NeighborCount:
		return d.Neighbors
	case Binary:
		lhs, rhs := d.CompileExpr(e.LHS), d.CompileExpr(e.RHS)
		switch e.Op {
		case OpAnd:
			return fmt.Sprintf(d.And, lhs, rhs)
		case OpOr:
			return fmt.Sprintf(d.Or, lhs, rhs)
		default:
			return fmt.Sprintf(d.Cast, fmt.Sprintf("(%s) %s (%s)", lhs, e.Op.Symbol(), rhs))
		}
	}
	return fmt.Sprintf(d.Literal, 0)
}

// CompileStatement returns s as statement text. Noop and nil compile to the
// empty string, so the result must be spliced where a statement is legal.
func (d Dialect) CompileStatement(s Statement) string {
	switch s := s.(type) {
	case SetResult:
		return fmt.Sprintf("%s = %s;", d.Result, d.CompileExpr(s.Value))
	case IfThenElse:
		return fmt.Sprintf("if (%s) { %s } else { %s }",
			fmt.Sprintf(d.Cond, d.CompileExpr(s.Cond)),
			d.CompileStatement(s.Then),
			d.CompileStatement(s.Else),
		)
	}
	return ""
}
