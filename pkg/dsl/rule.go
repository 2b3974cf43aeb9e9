package dsl

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadRule reports a malformed rule string.
var ErrBadRule = errors.New("dsl: malformed rule string")

// Rule is a life-like rule in birth/survive form.
type Rule struct {
	Birth   []uint32
	Survive []uint32
}

// ParseRule parses B/S notation ("B3/S23", "S23/B3", case-insensitive) or
// the older survive/birth notation ("23/3"). Counts must be digits 0-8;
// repeated digits are kept once.
func ParseRule(s string) (Rule, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return Rule{}, fmt.Errorf("%w: %q: want two parts separated by /", ErrBadRule, s)
	}

	var r Rule
	var haveB, haveS bool
	tagged := 0
	for _, p := range parts {
		if p != "" && strings.ContainsAny(p[:1], "BbSs") {
			tagged++
		}
	}
	switch tagged {
	case 0:
		survive, err := parseCounts(parts[0])
		if err != nil {
			return Rule{}, fmt.Errorf("%w: %q: %w", ErrBadRule, s, err)
		}
		birth, err := parseCounts(parts[1])
		if err != nil {
			return Rule{}, fmt.Errorf("%w: %q: %w", ErrBadRule, s, err)
		}
		return Rule{Birth: birth, Survive: survive}, nil
	case 2:
	default:
		return Rule{}, fmt.Errorf("%w: %q: mixed tagged and untagged parts", ErrBadRule, s)
	}

	for _, p := range parts {
		counts, err := parseCounts(p[1:])
		if err != nil {
			return Rule{}, fmt.Errorf("%w: %q: %w", ErrBadRule, s, err)
		}
		switch p[0] {
		case 'B', 'b':
			if haveB {
				return Rule{}, fmt.Errorf("%w: %q: birth given twice", ErrBadRule, s)
			}
			haveB = true
			r.Birth = counts
		case 'S', 's':
			if haveS {
				return Rule{}, fmt.Errorf("%w: %q: survival given twice", ErrBadRule, s)
			}
			haveS = true
			r.Survive = counts
		}
	}
	return r, nil
}

func parseCounts(s string) ([]uint32, error) {
	var seen [9]bool
	var counts []uint32
	for _, c := range s {
		if c < '0' || c > '8' {
			return nil, fmt.Errorf("neighbour count %q out of range 0-8", c)
		}
		n := uint32(c - '0')
		if seen[n] {
			continue
		}
		seen[n] = true
		counts = append(counts, n)
	}
	return counts, nil
}

// Statement builds the rule tree of r.
func (r Rule) Statement() Statement { return FromBirthSurvive(r.Birth, r.Survive) }

// String formats r in B/S notation.
func (r Rule) String() string {
	var b strings.Builder
	b.WriteByte('B')
	for _, n := range r.Birth {
		fmt.Fprintf(&b, "%d", n)
	}
	b.WriteString("/S")
	for _, n := range r.Survive {
		fmt.Fprintf(&b, "%d", n)
	}
	return b.String()
}
