package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type keyState string

func (s keyState) Key() string { return string(s) }

func TestNode(t *testing.T) {
	t.Run("RootHasNoParent", func(t *testing.T) {
		root := NewRoot(keyState("start"), 2.5, nil)
		assert.Nil(t, root.Parent)
		assert.Nil(t, root.Action)
		assert.Equal(t, 0, root.Depth)
		assert.Equal(t, 2.5, root.PathCost)
	})

	t.Run("ChildAccumulatesCostAndDepth", func(t *testing.T) {
		root := NewRoot(keyState("a"), 1, nil)
		child := root.Child(keyState("b"), "step", 2)
		grand := child.Child(keyState("c"), "step", 3)

		assert.Equal(t, root, child.Parent)
		assert.Equal(t, 1, child.Depth)
		assert.Equal(t, 3.0, child.PathCost)
		assert.Equal(t, 2, grand.Depth)
		assert.Equal(t, 6.0, grand.PathCost)
	})

	t.Run("ChildInheritsExtra", func(t *testing.T) {
		table := map[string]int{"x": 1}
		root := NewRoot(keyState("a"), 0, table)
		child := root.Child(keyState("b"), nil, 0)
		assert.Equal(t, table, child.Extra.(map[string]int))

		replaced := root.ChildWithExtra(keyState("c"), nil, 0, "other")
		assert.Equal(t, "other", replaced.Extra)
	})

	t.Run("PathReturnsActionsRootFirst", func(t *testing.T) {
		root := NewRoot(keyState("a"), 0, nil)
		n := root.Child(keyState("b"), "first", 1).
			Child(keyState("c"), "second", 1).
			Child(keyState("d"), "third", 1)

		assert.Equal(t, []any{"first", "second", "third"}, n.Path())
		assert.Empty(t, root.Path())
	})
}
