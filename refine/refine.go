// Package refine implements Minimize, the backward-bisimulation fixpoint
// driver that wires automaton, partition, observation, and selector
// together.
//
// Grounded on original_source/bisim.cpp's back_minim function for control
// flow, and on lvlath/algorithms's Options-struct-plus-hook idiom
// (OnVisit/OnEnqueue/OnDequeue) for the diagnostic callback.
package refine

import (
	"github.com/arborist-go/tabisim/automaton"
	"github.com/arborist-go/tabisim/observation"
	"github.com/arborist-go/tabisim/partition"
	"github.com/arborist-go/tabisim/selector"
)

// Options configures a Minimize run. The zero value runs silently.
type Options struct {
	// OnIteration, if set, is called once after the initial round (i == 0)
	// and once after every loop iteration thereafter, with the current P
	// and R partitions. Neither partition may be mutated by the callback;
	// both are owned by the running Minimize call for its duration.
	OnIteration func(i int, p, r *partition.Partition)

	// AcceptingStates, if non-empty, seeds both P and R with an initial
	// split separating these states from every other state before
	// refinement begins. Backward bisimulation alone is blind to
	// acceptance (it only relates states by how they are produced, never
	// by whether they are accepting); without this seed, an accepting and
	// a non-accepting state with identical produced-by behavior would
	// merge, and the quotient's accepted-tree set would no longer match
	// the input's. Seeding the split up front is what makes that
	// language-preservation property (P7, accepting-states-specified
	// variant) hold.
	AcceptingStates []int
}

// Minimize computes the coarsest backward bisimulation of a and returns it
// as a partition.Partition. An automaton with no states minimizes
// trivially to a partition with a single, empty block.
//
// Minimize does not fail: malformed input is rejected at ingestion
// (parser, automaton), and an automaton with no transitions terminates
// immediately with one block.
func Minimize(a *automaton.Automaton, opts Options) *partition.Partition {
	n := a.NumStates()
	p := partition.New(n)
	r := partition.New(n)
	sel := selector.New()

	if len(opts.AcceptingStates) > 0 {
		// p and r start as identical singleton partitions, so separating
		// both by the same witness set produces identical block ids in
		// each: block b of p is the P-parent of the same-numbered block b
		// of r.
		p.Separate(opts.AcceptingStates)
		r.Separate(opts.AcceptingStates)
	}
	for b := 0; b < p.NumBlocks(); b++ {
		sel.Seed(b, b)
	}

	separateAndTrack := func(r *partition.Partition, states []int) {
		renaming := r.Separate(states)
		sel.OnRSplit(renaming)
	}

	// Init: no witness, every transition relevant.
	initial := observation.Build(a, r, observation.RelevantInitial(a))
	initial.Walk(func(states []int) {
		separateAndTrack(r, states)
	})

	iteration := 0
	if opts.OnIteration != nil {
		opts.OnIteration(iteration, p, r)
	}

	for {
		pBlock, rBlock, ok := sel.Select(func(rb int) int {
			return len(r.StatesOf(rb))
		})
		if !ok {
			break
		}
		iteration++

		// 1. Cut P by B.
		bStates := r.StatesOf(rBlock)
		pRenaming := p.Separate(bStates)
		sel.OnPCut(pRenaming, rBlock)

		// 2. Refine R by B (no parent context yet: a cut round).
		cut := observation.Build(a, r, observation.RelevantCut(a, bStates))
		cut.Walk(func(states []int) {
			separateAndTrack(r, states)
		})

		// 3. Refine R by S∖B. After the cut above, pBlock retains exactly
		// the remainder S∖B (the witness states moved to a fresh id).
		notB := p.StatesOf(pBlock)
		refine := observation.Build(a, r, observation.RelevantRefine(a, bStates, notB))
		refine.Walk(func(states []int) {
			separateAndTrack(r, states)
		})

		if opts.OnIteration != nil {
			opts.OnIteration(iteration, p, r)
		}
	}

	return p
}
