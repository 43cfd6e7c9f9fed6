package builder_test

import (
	"testing"

	"github.com/arborist-go/tabisim/builder"
	"github.com/arborist-go/tabisim/tree"
	"github.com/stretchr/testify/require"
)

func countNodes(n *tree.Node) int {
	total := 1
	for _, c := range n.Children {
		total += countNodes(c)
	}
	return total
}

func maxArity(n *tree.Node) int {
	m := n.Arity()
	for _, c := range n.Children {
		if a := maxArity(c); a > m {
			m = a
		}
	}
	return m
}

func TestRandomTree_DeterministicUnderSameSeed(t *testing.T) {
	t1 := builder.RandomTree(10, builder.WithSeed(42))
	t2 := builder.RandomTree(10, builder.WithSeed(42))
	require.Equal(t, t1, t2)
}

func TestRandomTree_ExactNodeCount(t *testing.T) {
	root := builder.RandomTree(15, builder.WithSeed(3))
	require.Equal(t, 15, countNodes(root))
}

func TestRandomTree_RespectsMaxArity(t *testing.T) {
	root := builder.RandomTree(30, builder.WithSeed(7), builder.WithMaxArity(2))
	require.LessOrEqual(t, maxArity(root), 2)
}

func TestRandomTree_ZeroOrNegativeSizeYieldsSingleLeaf(t *testing.T) {
	require.Equal(t, 1, countNodes(builder.RandomTree(0)))
	require.Equal(t, 1, countNodes(builder.RandomTree(-5)))
}

func TestRandomForest_ProducesRequestedCount(t *testing.T) {
	forest := builder.RandomForest(5, 4, builder.WithSeed(1))
	require.Len(t, forest, 5)
	for _, tr := range forest {
		require.Equal(t, 4, countNodes(tr))
	}
}
