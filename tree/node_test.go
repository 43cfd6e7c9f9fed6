package tree_test

import (
	"testing"

	"github.com/arborist-go/tabisim/tree"
	"github.com/stretchr/testify/require"
)

func TestNode_Leaf(t *testing.T) {
	n := tree.New("a")
	require.True(t, n.IsLeaf())
	require.Equal(t, 0, n.Arity())
}

func TestNode_AddChild(t *testing.T) {
	root := tree.New("f")
	root.AddChild(tree.New("a")).AddChild(tree.New("b"))
	require.False(t, root.IsLeaf())
	require.Equal(t, 2, root.Arity())
	require.Equal(t, "a", root.Children[0].Label)
	require.Equal(t, "b", root.Children[1].Label)
}
