// Package observation builds the per-round, per-symbol observation trie
// used by refine.Minimize to decide which states the current R-partition
// still separates.
//
// A Trie has one root per ranked symbol f appearing among its relevant
// transitions. Depth under that root equals f's arity; the edge at depth k
// is labelled by the R-block id of the transition's k-th argument. Each
// leaf — reached after consuming all of a transition's arguments — records
// the set of result states of every relevant transition that took that
// path. Two relevant transitions (f, q1..qr, p) and (f, q1'..qr', p') land
// at the same leaf, and hence contribute to the same witness set, exactly
// when R.BlockOf(qi) == R.BlockOf(qi') for every argument position i.
//
// Relevance filtering (§4.3 of the design) keeps a round's trie small: it
// only ever walks the transitions that could possibly have changed
// observable behavior since the previous round. See RelevantInitial,
// RelevantCut, and RelevantRefine.
//
// Grounded on manuelibar-tree-shaker's internal/jsonpath trie (map-keyed
// branch/leaf node shape) and on bisim.cpp's ObsQ/CountLL linked structure
// for the exact depth-by-arity walk and relevance-filter semantics.
package observation

import (
	"sort"

	"github.com/arborist-go/tabisim/automaton"
	"github.com/arborist-go/tabisim/partition"
)

// node is an internal trie node. leaf is non-nil only at a node where some
// relevant transition's argument list ends (depth == that transition's
// arity); children is nil where no longer transition continues. A symbol
// used with more than one arity can have a node with both set.
type node struct {
	children map[int]*node
	leaf     map[int]struct{}
}

// Trie is one per-round observation structure, built fresh every
// iteration and discarded after its leaf sets have been consumed by
// refine.Minimize to re-split R.
type Trie struct {
	roots map[string]*node
}

// Build constructs a Trie over exactly the transitions named by relevant,
// keyed by symbol and, at each depth, by the R-block id of the
// corresponding argument state.
//
// Complexity: O(len(relevant) * maxArity).
func Build(a *automaton.Automaton, r *partition.Partition, relevant []int) *Trie {
	t := &Trie{roots: make(map[string]*node)}

	txs := a.Transitions()
	for _, ti := range relevant {
		tx := txs[ti]

		root, ok := t.roots[tx.Symbol]
		if !ok {
			root = &node{}
			t.roots[tx.Symbol] = root
		}

		cur := root
		for _, arg := range tx.Args {
			blockID := r.BlockOf(arg)
			if cur.children == nil {
				cur.children = make(map[int]*node)
			}
			child, ok := cur.children[blockID]
			if !ok {
				child = &node{}
				cur.children[blockID] = child
			}
			cur = child
		}

		if cur.leaf == nil {
			cur.leaf = make(map[int]struct{})
		}
		cur.leaf[tx.Result] = struct{}{}
	}

	return t
}

// Walk visits every node of t depth-first, children before the node's own
// aggregate (so that in a nondeterministic automaton where the same result
// state reaches more than one leaf, the deepest — most specific —
// groupings are produced first). fn is called once per node — including
// internal ones — with a sorted, non-empty slice of result states: the
// union of every leaf in that node's subtree. An internal node's aggregate
// is itself a witness group, since refinement at a shallower depth can
// separate states even when their deeper children turn out identical
// (§4.3). Nodes reporting an empty subtree are skipped.
//
// Iteration order over symbols and over sibling branches is sorted, so two
// Walk calls over an identical Trie always call fn in the same order.
func (t *Trie) Walk(fn func(leafStates []int)) {
	symbols := make([]string, 0, len(t.roots))
	for sym := range t.roots {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	for _, sym := range symbols {
		walkNode(t.roots[sym], fn)
	}
}

// walkNode visits n's subtree and returns the sorted union of every result
// state found in it, reporting that union via fn at n itself and at every
// node beneath it.
func walkNode(n *node, fn func([]int)) map[int]struct{} {
	if n == nil {
		return nil
	}

	agg := make(map[int]struct{})

	blockIDs := make([]int, 0, len(n.children))
	for b := range n.children {
		blockIDs = append(blockIDs, b)
	}
	sort.Ints(blockIDs)
	for _, b := range blockIDs {
		for s := range walkNode(n.children[b], fn) {
			agg[s] = struct{}{}
		}
	}

	for s := range n.leaf {
		agg[s] = struct{}{}
	}

	if len(agg) > 0 {
		states := make([]int, 0, len(agg))
		for s := range agg {
			states = append(states, s)
		}
		sort.Ints(states)
		fn(states)
	}

	return agg
}
