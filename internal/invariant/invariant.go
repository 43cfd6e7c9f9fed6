// Package invariant holds debug assertions for the partition invariants
// I1-I5 from spec §3/§8. A failing assertion here means a core bug, not a
// malformed user input (spec §7, InternalInvariant) — these panic rather
// than returning an error, the one place outside option constructors this
// repository allows a panic, per lvlath's "algorithms MUST NOT panic at
// runtime" policy applied in reverse: this package exists precisely to
// catch violations of that policy elsewhere.
package invariant

import (
	"fmt"

	"github.com/arborist-go/tabisim/partition"
)

// CheckCover panics unless every state in [0, n) belongs to exactly one
// block of p and every reported block is non-empty (I1, I3).
func CheckCover(p *partition.Partition, n int) {
	if n == 0 {
		return // the trivial empty automaton: partition.New(0)'s lone block has nothing to cover
	}

	seen := make([]bool, n)
	total := 0
	for b := 0; b < p.NumBlocks(); b++ {
		states := p.StatesOf(b)
		if len(states) == 0 {
			panic(fmt.Sprintf("invariant: block %d is empty (violates I4 compaction)", b))
		}
		for _, s := range states {
			if seen[s] {
				panic(fmt.Sprintf("invariant: state %d appears in more than one block (violates I1)", s))
			}
			seen[s] = true
			total++
		}
	}
	if total != n {
		panic(fmt.Sprintf("invariant: partition covers %d of %d states (violates I3)", total, n))
	}
}

// CheckRefines panics unless every block of fine is wholly contained in a
// single block of coarse (I2): fine must be a refinement of coarse.
func CheckRefines(coarse, fine *partition.Partition, n int) {
	for s := 0; s < n; s++ {
		cb := coarse.BlockOf(s)
		fb := fine.BlockOf(s)
		for _, other := range fine.StatesOf(fb) {
			if coarse.BlockOf(other) != cb {
				panic(fmt.Sprintf(
					"invariant: R-block %d spans P-blocks %d and %d (violates I2)",
					fb, cb, coarse.BlockOf(other),
				))
			}
		}
	}
}

// CheckNonDecreasing panics if the pair (|P|, |R|) has shrunk since the
// last observation, per I5: the termination measure must be
// non-decreasing across iterations.
func CheckNonDecreasing(prevP, prevR, curP, curR int) {
	if curP < prevP || curR < prevR {
		panic(fmt.Sprintf(
			"invariant: (|P|,|R|) went from (%d,%d) to (%d,%d) — violates I5",
			prevP, prevR, curP, curR,
		))
	}
}
