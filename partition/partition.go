// Package partition implements a mutable equivalence relation over the
// integers [0, n): a set of disjoint, non-empty blocks whose union is
// [0, n), with a splitting primitive used by refine.Minimize to carve out
// witness sets.
//
// Block-ids form a contiguous range [0, K) at all times (the compaction
// invariant, spec §3 I4): when a split empties a block, the
// highest-numbered block is relocated into the freed slot rather than
// leaving a hole. Separate reports every id change this causes so callers
// (selector.BlockSelector) can keep their own bookkeeping in step without
// re-scanning the partition.
//
// Grounded on Jaxan-partition's block/split machinery for the splitting
// shape and on bisim.cpp's cut/split functions for the exact
// swap-last-into-empty-slot compaction behavior.
package partition

import "sort"

// Partition is a mutable equivalence relation over [0, n).
//
// Not safe for concurrent use; refine.Minimize owns a Partition exclusively
// for the lifetime of one minimization run (spec §5, "Partitions are owned
// exclusively by the refiner").
type Partition struct {
	blockOf []int             // state -> current block id
	blocks  []map[int]struct{} // block id -> member states
}

// New returns the trivial partition over [0, n): one block containing
// every state.
func New(n int) *Partition {
	all := make(map[int]struct{}, n)
	blockOf := make([]int, n)
	for s := 0; s < n; s++ {
		all[s] = struct{}{}
		blockOf[s] = 0
	}
	return &Partition{
		blockOf: blockOf,
		blocks:  []map[int]struct{}{all},
	}
}

// BlockOf returns the id of the block currently containing state.
func (p *Partition) BlockOf(state int) int {
	return p.blockOf[state]
}

// StatesOf returns the members of block, sorted ascending for determinism
// (mirroring lvlath's sorted-iteration-order convention for stable output).
// The returned slice is a fresh copy; mutating it does not affect p.
func (p *Partition) StatesOf(block int) []int {
	if block < 0 || block >= len(p.blocks) {
		return nil
	}
	out := make([]int, 0, len(p.blocks[block]))
	for s := range p.blocks[block] {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}

// NumBlocks returns the current number of blocks, K, satisfying the
// compaction invariant block-ids == [0, K).
func (p *Partition) NumBlocks() int {
	return len(p.blocks)
}

// Separate carves the states in witnesses out of their current blocks.
// For every block B that witnesses touch, the witnessed members of B move
// into one freshly allocated block; the rest of B, if any, stays put. If
// the move empties B, the highest-numbered block is relocated into B's
// slot to preserve contiguous ids.
//
// Separate returns a map from every new or renumbered block id to the id a
// caller's existing bookkeeping would already know it by: for an ordinary
// split, the new block maps to its source (parent) block; for a
// compaction-driven renumbering, the reused id maps to the relocated
// block's former id. Untouched blocks get no entry.
//
// Complexity: O(len(witnesses) + number of distinct source blocks).
func (p *Partition) Separate(witnesses []int) map[int]int {
	groups := make(map[int][]int)
	for _, w := range witnesses {
		b := p.blockOf[w]
		groups[b] = append(groups[b], w)
	}

	sourceIDs := make([]int, 0, len(groups))
	for b := range groups {
		sourceIDs = append(sourceIDs, b)
	}
	sort.Ints(sourceIDs)

	renaming := make(map[int]int, len(sourceIDs))
	for _, sourceID := range sourceIDs {
		members := groups[sourceID]

		newID := len(p.blocks)
		p.blocks = append(p.blocks, make(map[int]struct{}, len(members)))
		for _, s := range members {
			delete(p.blocks[sourceID], s)
			p.blocks[newID][s] = struct{}{}
			p.blockOf[s] = newID
		}
		renaming[newID] = sourceID

		if len(p.blocks[sourceID]) == 0 {
			p.compact(sourceID, renaming)
		}
	}

	return renaming
}

// compact relocates the highest-numbered block into the now-empty slot
// emptyID, shrinking the block list back to a contiguous range, and
// updates renaming so the caller sees a single consistent former id for
// whatever now lives at emptyID.
func (p *Partition) compact(emptyID int, renaming map[int]int) {
	last := len(p.blocks) - 1
	if emptyID == last {
		p.blocks = p.blocks[:last]
		return
	}

	p.blocks[emptyID] = p.blocks[last]
	for s := range p.blocks[emptyID] {
		p.blockOf[s] = emptyID
	}
	p.blocks = p.blocks[:last]

	if origin, ok := renaming[last]; ok {
		delete(renaming, last)
		renaming[emptyID] = origin
	} else {
		renaming[emptyID] = last
	}
}
