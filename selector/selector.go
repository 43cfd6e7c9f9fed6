// Package selector implements BlockSelector, the bookkeeping that tracks,
// for every P-block, which R-blocks currently refine it, and exposes the
// "process the smaller half" splitter choice that gives the algorithm its
// near-linear complexity bound.
//
// Grounded on bisim.cpp's Composite class: m_parent_to_split and
// m_split_to_parent mirror rChildrenOf/pParentOf here, and
// m_two_or_more_splits mirrors candidates.
package selector

// BlockSelector tracks the P-parent of every R-block and, for every
// P-block, the set of R-blocks that currently refine it. A P-block with
// two or more R-children is a candidate splitter.
//
// Not safe for concurrent use; owned exclusively by refine.Minimize for
// the lifetime of one run, same as partition.Partition.
type BlockSelector struct {
	pParentOf   map[int]int
	rChildrenOf map[int]map[int]struct{}
	candidates  map[int]struct{}
}

// New returns an empty BlockSelector. Callers must call Seed once per
// initial block (pairing each starting P-block with its R-block) before the
// first OnRSplit/OnPCut call.
func New() *BlockSelector {
	return &BlockSelector{
		pParentOf:   make(map[int]int),
		rChildrenOf: make(map[int]map[int]struct{}),
		candidates:  make(map[int]struct{}),
	}
}

// Seed registers a starting point: R-block rBlock's P-parent is pBlock.
// Called at refine.Minimize's Init step, once per initial block — (0, 0)
// for the single block both P and R start as, or once per block already
// produced by an accepting-states split (refine.Options.AcceptingStates),
// where P and R start identically partitioned.
func (s *BlockSelector) Seed(pBlock, rBlock int) {
	s.pParentOf[rBlock] = pBlock
	s.addChild(pBlock, rBlock)
}

// OnPCut is called immediately after partition.Partition.Separate cuts a
// P-block by the states of cutRBlock, producing renaming. It moves
// cutRBlock out of its former P-parent's child set and into the freshly
// cut P-block's (now singleton) child set.
func (s *BlockSelector) OnPCut(renaming map[int]int, cutRBlock int) {
	oldParent, ok := s.pParentOf[cutRBlock]
	if !ok {
		return
	}

	newParent, ok := resolveNewID(renaming, oldParent)
	if !ok || newParent == oldParent {
		return
	}

	s.removeChild(oldParent, cutRBlock)
	s.pParentOf[cutRBlock] = newParent
	s.addChild(newParent, cutRBlock)
}

// OnRSplit is called after partition.Partition.Separate refines R,
// producing renaming. Every new or renumbered R-block inherits the
// P-parent of the R-block it descended from.
func (s *BlockSelector) OnRSplit(renaming map[int]int) {
	for newID, oldID := range renaming {
		if newID == oldID {
			continue // pure no-op renumbering: content and id both unchanged
		}
		parent, ok := s.pParentOf[oldID]
		if !ok {
			continue
		}
		s.pParentOf[newID] = parent
		s.addChild(parent, newID)
	}
}

// Select returns a P-block with two or more R-children, together with the
// smaller of its two smallest R-children (by member count). Returning the
// smaller half is mandatory for the algorithm's complexity bound; which
// P-block is chosen among several candidates is not specified, so this
// returns an arbitrary one. ok is false once no P-block has two or more
// R-children, signalling termination.
//
// sizeOf reports the current size of an R-block; callers pass
// partition.Partition.StatesOf-backed sizes (selector has no partition
// reference of its own, to keep it decoupled from partition's
// representation).
func (s *BlockSelector) Select(sizeOf func(rBlock int) int) (pBlock, rBlock int, ok bool) {
	for p := range s.candidates {
		children := s.rChildrenOf[p]
		if len(children) < 2 {
			continue
		}

		smallest, secondSmallest := -1, -1
		smallestSize, secondSize := 0, 0
		for r := range children {
			sz := sizeOf(r)
			if smallest == -1 || sz < smallestSize {
				secondSmallest, secondSize = smallest, smallestSize
				smallest, smallestSize = r, sz
			} else if secondSmallest == -1 || sz < secondSize {
				secondSmallest, secondSize = r, sz
			}
		}

		if smallestSize <= secondSize {
			return p, smallest, true
		}
		return p, secondSmallest, true
	}
	return 0, 0, false
}

func (s *BlockSelector) addChild(pBlock, rBlock int) {
	children := s.rChildrenOf[pBlock]
	if children == nil {
		children = make(map[int]struct{})
		s.rChildrenOf[pBlock] = children
	}
	children[rBlock] = struct{}{}

	if len(children) >= 2 {
		s.candidates[pBlock] = struct{}{}
	}
}

func (s *BlockSelector) removeChild(pBlock, rBlock int) {
	children := s.rChildrenOf[pBlock]
	if children == nil {
		return
	}
	delete(children, rBlock)
	if len(children) < 2 {
		delete(s.candidates, pBlock)
	}
}

// resolveNewID finds the key in renaming whose value is oldID. If no such
// key exists but oldID itself is still a key (self-map), oldID is
// returned unchanged.
func resolveNewID(renaming map[int]int, oldID int) (int, bool) {
	if _, ok := renaming[oldID]; ok {
		if renaming[oldID] == oldID {
			return oldID, true
		}
	}
	for newID, fromID := range renaming {
		if fromID == oldID {
			return newID, true
		}
	}
	return 0, false
}
