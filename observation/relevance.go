// File: relevance.go
// Role: the three relevance filters of spec §4.3, each returning a sorted
//       slice of transition indices eligible for Build.

package observation

import (
	"sort"

	"github.com/arborist-go/tabisim/automaton"
)

// RelevantInitial returns every transition index: the first round has no
// witness, so every transition is relevant.
func RelevantInitial(a *automaton.Automaton) []int {
	txs := a.Transitions()
	out := make([]int, len(txs))
	for i := range out {
		out[i] = i
	}
	return out
}

// RelevantCut returns the indices of transitions with at least one
// argument in b. Used for the round that refines R by a cut witness block
// with no parent context.
func RelevantCut(a *automaton.Automaton, b []int) []int {
	seen := make(map[int]struct{})
	var out []int
	for _, s := range b {
		for _, ti := range a.TransitionsWithArg(s) {
			if _, ok := seen[ti]; ok {
				continue
			}
			seen[ti] = struct{}{}
			out = append(out, ti)
		}
	}
	sort.Ints(out)
	return out
}

// RelevantRefine returns the indices of transitions with at least one
// argument in b and no argument in notB. Used for the refinement round
// that compares a witness block B against its complement S∖B inside a
// parent P-block S: only transitions whose behavior could plausibly have
// changed since the previous round are worth observing.
func RelevantRefine(a *automaton.Automaton, b, notB []int) []int {
	excluded := make(map[int]struct{})
	for _, s := range notB {
		for _, ti := range a.TransitionsWithArg(s) {
			excluded[ti] = struct{}{}
		}
	}

	seen := make(map[int]struct{})
	var out []int
	for _, s := range b {
		for _, ti := range a.TransitionsWithArg(s) {
			if _, ok := excluded[ti]; ok {
				continue
			}
			if _, ok := seen[ti]; ok {
				continue
			}
			seen[ti] = struct{}{}
			out = append(out, ti)
		}
	}
	sort.Ints(out)
	return out
}
