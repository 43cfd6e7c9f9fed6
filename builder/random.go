package builder

import (
	"fmt"

	"github.com/arborist-go/tabisim/tree"
)

// RandomTree returns a randomly shaped tree with exactly n nodes (n < 1 is
// treated as 1): symbols are drawn uniformly from an alphabet of
// WithAlphabetSize distinct names, and no node is given more than
// WithMaxArity children.
func RandomTree(n int, opts ...Option) *tree.Node {
	cfg := newConfig(opts...)
	return randomTree(cfg, n)
}

// RandomForest returns nTrees independently shaped trees, each with
// statesPerTree nodes, drawn from one shared RNG stream so consecutive
// trees in the forest differ even under a fixed seed.
func RandomForest(nTrees, statesPerTree int, opts ...Option) []*tree.Node {
	cfg := newConfig(opts...)
	out := make([]*tree.Node, nTrees)
	for i := range out {
		out[i] = randomTree(cfg, statesPerTree)
	}
	return out
}

func randomTree(cfg *config, n int) *tree.Node {
	if n < 1 {
		n = 1
	}

	root := tree.New(randomSymbol(cfg))
	openSlots := []*tree.Node{root}

	for i := 1; i < n; i++ {
		candidates := openSlots[:0:0]
		for _, nd := range openSlots {
			if nd.Arity() < cfg.maxArity {
				candidates = append(candidates, nd)
			}
		}
		if len(candidates) == 0 {
			break // every existing node is already at max arity
		}

		parent := candidates[cfg.rng.Intn(len(candidates))]
		child := tree.New(randomSymbol(cfg))
		parent.AddChild(child)
		openSlots = append(openSlots, child)
	}

	return root
}

func randomSymbol(cfg *config) string {
	return fmt.Sprintf("sym%d", cfg.rng.Intn(cfg.alphabetSize))
}
