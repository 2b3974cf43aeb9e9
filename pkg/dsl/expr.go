// Package dsl describes cellular automaton update rules as small expression
// trees and turns them into shader source.
//
// A rule only ever looks at two inputs: whether the current cell is alive and
// how many of its eight neighbours are alive. Comparisons produce 0/1
// integers, and And/Or combine those integers bitwise, so generated code never
// relies on implicit bool conversions or short-circuit evaluation.
package dsl

// Expr is a node of a rule expression. The concrete node types are Const,
// Alive, NeighborCount and Binary.
type Expr interface {
	isExpr()
}

// Const is an unsigned integer literal.
type Const uint32

// Alive reads whether the current cell is alive.
type Alive struct{}

// NeighborCount reads the number of live neighbours of the current cell.
type NeighborCount struct{}

// Op identifies the operator of a Binary node.
type Op uint8

const (
	// OpGt is lhs > rhs.
	OpGt Op = iota
	// OpGte is lhs >= rhs.
	OpGte
	// OpLt is lhs < rhs.
	OpLt
	// OpLte is lhs <= rhs.
	OpLte
	// OpEqual is lhs == rhs.
	OpEqual
	// OpAnd is the bitwise and of two 0/1 values.
	OpAnd
	// OpOr is the bitwise or of two 0/1 values.
	OpOr
)

// Symbol returns the operator token used in generated code.
func (o Op) Symbol() string {
	switch o {
	case OpGt:
		return ">"
	case OpGte:
		return ">="
	case OpLt:
		return "<"
	case OpLte:
		return "<="
	case OpEqual:
		return "=="
	case OpAnd:
		return "&"
	case OpOr:
		return "|"
	}
	return "?"
}

// IsComparison reports whether o yields a boolean that needs a cast.
func (o Op) IsComparison() bool { return o <= OpEqual }

func (o Op) String() string { return o.Symbol() }

// Binary applies Op to two owned subexpressions.
type Binary struct {
	Op  Op
	LHS Expr
	RHS Expr
}

func (Const) isExpr()         {}
func (Alive) isExpr()         {}
func (NeighborCount) isExpr() {}
func (Binary) isExpr()        {}

// U32 returns a literal.
func U32(v uint32) Expr { return Const(v) }

// IsAlive returns the alive input.
func IsAlive() Expr { return Alive{} }

// Neighbors returns the neighbour count input.
func Neighbors() Expr { return NeighborCount{} }

// Gt returns lhs > rhs.
func Gt(lhs, rhs Expr) Expr { return Binary{Op: OpGt, LHS: lhs, RHS: rhs} }

// Gte returns lhs >= rhs.
func Gte(lhs, rhs Expr) Expr { return Binary{Op: OpGte, LHS: lhs, RHS: rhs} }

// Lt returns lhs < rhs.
func Lt(lhs, rhs Expr) Expr { return Binary{Op: OpLt, LHS: lhs, RHS: rhs} }

// Lte returns lhs <= rhs.
func Lte(lhs, rhs Expr) Expr { return Binary{Op: OpLte, LHS: lhs, RHS: rhs} }

// Eq returns lhs == rhs.
func Eq(lhs, rhs Expr) Expr { return Binary{Op: OpEqual, LHS: lhs, RHS: rhs} }

// And returns the bitwise and of lhs and rhs.
func And(lhs, rhs Expr) Expr { return Binary{Op: OpAnd, LHS: lhs, RHS: rhs} }

// Or returns the bitwise or of lhs and rhs.
func Or(lhs, rhs Expr) Expr { return Binary{Op: OpOr, LHS: lhs, RHS: rhs} }
