package dsl

// Statement is a node of rule control flow. The concrete node types are
// Noop, SetResult and IfThenElse.
type Statement interface {
	isStatement()
}

// Noop does nothing.
type Noop struct{}

// SetResult assigns Value to the rule's output.
type SetResult struct {
	Value Expr
}

// IfThenElse runs Then when Cond is non-zero and Else otherwise. Both
// branches are always emitted.
type IfThenElse struct {
	Cond Expr
	Then Statement
	Else Statement
}

func (Noop) isStatement()       {}
func (SetResult) isStatement()  {}
func (IfThenElse) isStatement() {}

// Void returns the empty statement.
func Void() Statement { return Noop{} }

// Set returns a statement assigning e to the result.
func Set(e Expr) Statement { return SetResult{Value: e} }

// If returns a conditional with both branches.
func If(cond Expr, then, els Statement) Statement {
	return IfThenElse{Cond: cond, Then: then, Else: els}
}
