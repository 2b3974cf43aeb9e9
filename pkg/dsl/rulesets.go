package dsl

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownRule is returned by Lookup for names that are neither a known
// ruleset nor a valid rule string.
var ErrUnknownRule = errors.New("dsl: unknown rule")

// Conway is the standard Game of Life: a live cell survives with two or three
// neighbours, a dead cell is born with exactly three.
func Conway() Statement {
	return If(
		IsAlive(),
		Set(Or(
			Eq(Neighbors(), U32(2)),
			Eq(Neighbors(), U32(3)),
		)),
		Set(Eq(Neighbors(), U32(3))),
	)
}

// HighLife is B36/S23.
func HighLife() Statement {
	return FromBirthSurvive([]uint32{3, 6}, []uint32{2, 3})
}

// Seeds is B2/S: every live cell dies each generation.
func Seeds() Statement {
	return FromBirthSurvive([]uint32{2}, nil)
}

// DayAndNight is B3678/S34678.
func DayAndNight() Statement {
	return FromBirthSurvive([]uint32{3, 6, 7, 8}, []uint32{3, 4, 6, 7, 8})
}

// FromBirthSurvive builds the rule of a life-like automaton. A dead cell is
// born when its neighbour count is in birth; a live cell survives when it is
// in survive.
func FromBirthSurvive(birth, survive []uint32) Statement {
	return If(IsAlive(), Set(anyOf(survive)), Set(anyOf(birth)))
}

// anyOf ors together neighbour count equality tests, left to right.
func anyOf(counts []uint32) Expr {
	if len(counts) == 0 {
		return U32(0)
	}
	e := Eq(Neighbors(), U32(counts[0]))
	for _, c := range counts[1:] {
		e = Or(e, Eq(Neighbors(), U32(c)))
	}
	return e
}

var rulesets = map[string]func() Statement{
	"conway":      Conway,
	"life":        Conway,
	"highlife":    HighLife,
	"seeds":       Seeds,
	"daynight":    DayAndNight,
	"dayandnight": DayAndNight,
}

// Rulesets lists the names accepted by Lookup besides rule strings.
func Rulesets() []string {
	names := make([]string, 0, len(rulesets))
	for name := range rulesets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves a ruleset name ("conway", "highlife", ...) or a rule
// string such as "B36/S23".
func Lookup(name string) (Statement, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if build, ok := rulesets[key]; ok {
		return build(), nil
	}
	rule, err := ParseRule(name)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrUnknownRule, name, err)
	}
	return rule.Statement(), nil
}
