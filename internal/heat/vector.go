// Package heat computes register heat maps over a procedure's control-flow
// graph: for every reachable instruction, a per-register vector describing
// how recently each register was written, clamped to a configurable maximum.
//
// The analysis is purely static and deterministic. Loops are treated
// pessimistically (as if every looping condition were false before the
// first iteration) and closed in a separate pass; see Propagate.
package heat

import "github.com/rvheat/rvheat/internal/asm"

// Vector is the heat of the whole register file: one level per register,
// each in [0, maxHeat]. Higher means more recently written.
type Vector [asm.NumRegisters]int

// Decay ages every register by one step. Cold registers stay at zero.
func (v *Vector) Decay() {
	for r := range v {
		if v[r] > 0 {
			v[r]--
		}
	}
}

// Refresh marks a register as just written, raising it to the maximum heat
// regardless of its prior level.
func (v *Vector) Refresh(r asm.Register, maxHeat int) {
	v[r] = maxHeat
}

// Mediate combines the finalized heat vectors of several converging paths
// into one representative vector: the per-register integer mean, truncated
// toward zero. The input must not be empty; that is a caller bug, not a
// runtime condition.
func Mediate(vectors []Vector) Vector {
	if len(vectors) == 0 {
		panic("heat: Mediate requires at least one vector")
	}

	var mean Vector
	for r := range mean {
		sum := 0
		for _, v := range vectors {
			sum += v[r]
		}
		mean[r] = sum / len(vectors)
	}
	return mean
}

// Map links global instruction line numbers to the heat vector observed
// immediately after each instruction executes.
type Map map[int]Vector
