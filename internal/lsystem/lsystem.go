// Package lsystem grows plants by rewriting a grammar and walking the
// result with a 3D turtle. Geometry comes out as instance transforms over
// two canonical meshes, a unit cylinder for branches and a unit sphere for
// leaves.
package lsystem

import "strings"

// Rules maps a symbol to its replacement. Symbols without a rule copy
// through unchanged.
type Rules map[rune]string

// Rewrite expands the axiom for the given number of iterations. Zero or
// negative iterations return the axiom as is.
func Rewrite(axiom string, rules Rules, iterations int) string {
	s := axiom
	for it := 0; it < iterations; it++ {
		var next strings.Builder
		next.Grow(len(s) * 3)
		for _, c := range s {
			if repl, ok := rules[c]; ok {
				next.WriteString(repl)
			} else {
				next.WriteRune(c)
			}
		}
		s = next.String()
	}
	return s
}

// Params shapes a single tree.
type Params struct {
	Iterations     int
	StepLength     float64
	BaseAngleDeg   float64
	AngleJitterDeg float64
	BaseRadius     float64
	RadiusDecay    float64
	LeafDensity    float64
}

// DefaultParams is a medium bushy tree.
func DefaultParams() Params {
	return Params{
		Iterations:     3,
		StepLength:     0.06,
		BaseAngleDeg:   35,
		AngleJitterDeg: 8,
		BaseRadius:     0.03,
		RadiusDecay:    0.8,
		LeafDensity:    1,
	}
}
