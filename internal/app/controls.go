package app

import "slices"

// cycleRules lists the rulesets the rule key steps through.
var cycleRules = []string{"conway", "highlife", "seeds", "daynight"}

// nextRule returns the ruleset after current in names, wrapping around. A
// rule that is not in names, such as a custom B/S string, moves to the
// first entry.
func nextRule(current string, names []string) string {
	if len(names) == 0 {
		return current
	}
	i := slices.Index(names, current)
	return names[(i+1)%len(names)]
}

const (
	minTPS = 1
	maxTPS = 240
)

// nextTPS doubles or halves tps within [minTPS, maxTPS].
func nextTPS(tps int, faster bool) int {
	if faster {
		tps *= 2
	} else {
		tps /= 2
	}
	return min(max(tps, minTPS), maxTPS)
}
