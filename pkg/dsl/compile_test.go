package dsl

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileLeaves(t *testing.T) {
	for _, n := range []uint32{0, 1, 2, 3, 8, 42, 1 << 16, math.MaxUint32} {
		assert.Equal(t, fmt.Sprintf("%du", n), CompileExpr(U32(n)))
	}
	assert.Equal(t, "is_alive", CompileExpr(IsAlive()))
	assert.Equal(t, "num_neighbors", CompileExpr(Neighbors()))
}

func TestCompileComparisons(t *testing.T) {
	n, three := Neighbors(), U32(3)
	assert.Equal(t, "u32((num_neighbors) > (3u))", CompileExpr(Gt(n, three)))
	assert.Equal(t, "u32((num_neighbors) >= (3u))", CompileExpr(Gte(n, three)))
	assert.Equal(t, "u32((num_neighbors) < (3u))", CompileExpr(Lt(n, three)))
	assert.Equal(t, "u32((num_neighbors) <= (3u))", CompileExpr(Lte(n, three)))
	assert.Equal(t, "u32((num_neighbors) == (3u))", CompileExpr(Eq(n, three)))
}

func TestCompileBitwiseCombinators(t *testing.T) {
	a := Eq(Neighbors(), U32(2))
	b := Eq(Neighbors(), U32(3))

	and := CompileExpr(And(a, b))
	or := CompileExpr(Or(a, b))
	assert.Equal(t, "((u32((num_neighbors) == (2u))) & (u32((num_neighbors) == (3u))))", and)
	assert.Equal(t, "((u32((num_neighbors) == (2u))) | (u32((num_neighbors) == (3u))))", or)

	rng := rand.New(rand.NewPCG(7, 0))
	for i := 0; i < 200; i++ {
		e := randomExpr(rng, 5)
		for _, src := range []string{CompileExpr(And(e, e)), CompileExpr(Or(e, e))} {
			assert.NotContains(t, src, "&&")
			assert.NotContains(t, src, "||")
		}
	}
}

func TestCompileStatements(t *testing.T) {
	assert.Equal(t, "", Compile(Void()))
	assert.Equal(t, "", Compile(nil))
	assert.Equal(t, "result = 1u;", Compile(Set(U32(1))))

	src := Compile(If(IsAlive(), Void(), Void()))
	assert.Equal(t, "if (is_alive) {  } else {  }", src)

	src = Compile(If(Gt(Neighbors(), U32(1)), Set(U32(1)), Void()))
	assert.Contains(t, src, "if (")
	assert.Contains(t, src, "} else {")
}

func TestCompileConway(t *testing.T) {
	want := "if (is_alive) { result = ((u32((num_neighbors) == (2u))) | (u32((num_neighbors) == (3u)))); } " +
		"else { result = u32((num_neighbors) == (3u)); }"
	assert.Equal(t, want, Compile(Conway()))
	assert.Equal(t, want, Compile(FromBirthSurvive([]uint32{3}, []uint32{2, 3})))
}

func TestCompileKage(t *testing.T) {
	want := "if ((isAlive) > 0.5) { result = max((b2f((numNeighbors) == (2.0))), (b2f((numNeighbors) == (3.0)))); } " +
		"else { result = b2f((numNeighbors) == (3.0)); }"
	assert.Equal(t, want, Kage.CompileStatement(Conway()))
	assert.Equal(t, "((1.0) * (0.0))", Kage.CompileExpr(And(U32(1), U32(0))))
}

// The compiled text must re-parse to the same tree with a parser that has no
// precedence table at all: every binary operand has to be parenthesized.
func TestCompileFullyParenthesized(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 1))
	for i := 0; i < 500; i++ {
		e := randomExpr(rng, 6)
		src := CompileExpr(e)
		p := &exprParser{src: src}
		got, err := p.parseExpr()
		require.NoError(t, err, src)
		require.Equal(t, len(src), p.pos, "trailing input in %s", src)
		require.Equal(t, e, got, src)
	}
}

func randomExpr(rng *rand.Rand, depth int) Expr {
	if depth == 0 || rng.IntN(4) == 0 {
		switch rng.IntN(3) {
		case 0:
			return U32(rng.Uint32N(10))
		case 1:
			return IsAlive()
		default:
			return Neighbors()
		}
	}
	op := Op(rng.IntN(int(OpOr) + 1))
	return Binary{Op: op, LHS: randomExpr(rng, depth-1), RHS: randomExpr(rng, depth-1)}
}

// exprParser reads compiled WGSL expressions back into trees. A binary
// operator may only appear between two parenthesized operands, and only once
// per parenthesized group, so operator precedence never matters.
type exprParser struct {
	src string
	pos int
}

var ops = []struct {
	tok string
	op  Op
}{
	{">=", OpGte}, {"<=", OpLte}, {"==", OpEqual}, {">", OpGt}, {"<", OpLt}, {"&", OpAnd}, {"|", OpOr},
}

func (p *exprParser) parseExpr() (Expr, error) {
	switch {
	case strings.HasPrefix(p.src[p.pos:], "u32("):
		p.pos += len("u32(")
		e, err := p.parseGroupBody()
		if err != nil {
			return nil, err
		}
		b, ok := e.(Binary)
		if !ok || !b.Op.IsComparison() {
			return nil, fmt.Errorf("cast around non-comparison at %d", p.pos)
		}
		return b, p.expect(")")
	case strings.HasPrefix(p.src[p.pos:], "("):
		p.pos++
		e, err := p.parseGroupBody()
		if err != nil {
			return nil, err
		}
		if b, ok := e.(Binary); ok && b.Op.IsComparison() {
			return nil, fmt.Errorf("comparison without cast at %d", p.pos)
		}
		return e, p.expect(")")
	case strings.HasPrefix(p.src[p.pos:], "is_alive"):
		p.pos += len("is_alive")
		return IsAlive(), nil
	case strings.HasPrefix(p.src[p.pos:], "num_neighbors"):
		p.pos += len("num_neighbors")
		return Neighbors(), nil
	}
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if start == p.pos {
		return nil, fmt.Errorf("unexpected input at %d: %q", p.pos, p.src[p.pos:])
	}
	var n uint32
	fmt.Sscanf(p.src[start:p.pos], "%d", &n)
	return U32(n), p.expect("u")
}

// parseGroupBody parses either a single operand or "(lhs) op (rhs)".
func (p *exprParser) parseGroupBody() (Expr, error) {
	if !strings.HasPrefix(p.src[p.pos:], "(") {
		return p.parseExpr()
	}
	lhs, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	for _, o := range ops {
		if strings.HasPrefix(p.src[p.pos:], " "+o.tok+" ") {
			p.pos += len(o.tok) + 2
			rhs, err := p.parseOperand()
			if err != nil {
				return nil, err
			}
			return Binary{Op: o.op, LHS: lhs, RHS: rhs}, nil
		}
	}
	return lhs, nil
}

// parseOperand parses "(" expr ")".
func (p *exprParser) parseOperand() (Expr, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return e, p.expect(")")
}

func (p *exprParser) expect(tok string) error {
	if !strings.HasPrefix(p.src[p.pos:], tok) {
		return fmt.Errorf("want %q at %d in %q", tok, p.pos, p.src)
	}
	p.pos += len(tok)
	return nil
}
