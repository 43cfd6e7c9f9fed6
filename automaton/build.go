// File: build.go
// Role: AddTree — turns a tree.Node into states and transitions by
//       post-order traversal, mirroring bisim.cpp's Automaton::add.
// Concurrency:
//   - Mutations under muBuild write lock; safe to call AddTree from
//     multiple goroutines during ingestion.

package automaton

import "github.com/arborist-go/tabisim/tree"

// AddTree ingests root and all of its descendants, assigning one fresh
// state and one fresh transition per node, children before parents
// (post-order). It returns the state assigned to root.
//
// Steps:
//  1. Recurse into children first, collecting their assigned states.
//  2. Allocate a fresh state for this node (the next id after every
//     state already in the reverse index).
//  3. Append the Transition{Symbol, childStates, newState}.
//  4. Register the new transition index in the reverse index of every
//     child state (arguments-only, per DESIGN.md).
//
// Complexity: O(size of the subtree rooted at root).
func (a *Automaton) AddTree(root *tree.Node) int {
	a.muBuild.Lock()
	defer a.muBuild.Unlock()

	return a.addTree(root)
}

func (a *Automaton) addTree(n *tree.Node) int {
	args := make([]int, 0, len(n.Children))
	for _, child := range n.Children {
		args = append(args, a.addTree(child))
	}

	result := a.newState()
	a.addTransition(n.Label, args, result)

	return result
}
