package engine

import (
	"testing"

	"github.com/piwi3910/BlockPack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertRect(t *testing.T, r *model.Rect, x, y, w, h int) {
	t.Helper()
	require.NotNil(t, r)
	assert.Equal(t, model.Box{X: x, Y: y, Width: w, Height: h}, r.Box())
}

func TestSplit_HorizontalWhenBlockIsRelativelyWide(t *testing.T) {
	// h*W = 2*10 = 20 < w*H = 6*4 = 24
	leaf := model.NewRect(3, 5, 10, 4)
	got := Split(leaf, 6, 2)

	assert.Same(t, leaf, got)
	assert.True(t, leaf.Used)
	assertRect(t, leaf.Down, 3, 7, 10, 2)
	assertRect(t, leaf.Right, 9, 5, 4, 2)
}

func TestSplit_VerticalWhenBlockIsRelativelyTall(t *testing.T) {
	// h*W = 6*10 = 60 >= w*H = 2*8 = 16
	leaf := model.NewRect(0, 0, 10, 8)
	Split(leaf, 2, 6)

	assertRect(t, leaf.Down, 0, 6, 2, 2)
	assertRect(t, leaf.Right, 2, 0, 8, 8)
}

func TestSplit_TieGoesVertical(t *testing.T) {
	// h*W = 2*4 = 8 == w*H = 2*4 = 8
	leaf := model.NewRect(0, 0, 4, 4)
	Split(leaf, 2, 2)

	assertRect(t, leaf.Down, 0, 2, 2, 2)
	assertRect(t, leaf.Right, 2, 0, 2, 4)
}

func TestSplit_ExactFitLeavesZeroAreaChildren(t *testing.T) {
	leaf := model.NewRect(0, 0, 8, 8)
	Split(leaf, 8, 8)

	assertRect(t, leaf.Down, 0, 8, 8, 0)
	assertRect(t, leaf.Right, 8, 0, 0, 8)
	assert.False(t, leaf.Down.Used)
	assert.False(t, leaf.Right.Used)
}

func TestFindFit_UnusedLeaf(t *testing.T) {
	leaf := model.NewRect(0, 0, 10, 4)
	assert.Same(t, leaf, FindFit(leaf, 10, 4))
	assert.Same(t, leaf, FindFit(leaf, 1, 1))
	assert.Nil(t, FindFit(leaf, 11, 4))
	assert.Nil(t, FindFit(leaf, 10, 5))
}

func TestFindFit_SearchesRightBeforeDown(t *testing.T) {
	root := model.NewRect(0, 0, 10, 4)
	Split(root, 6, 2) // down (0,2,10,2), right (6,0,4,2)

	// Both children hold 3x2; right wins.
	assertRect(t, FindFit(root, 3, 2), 6, 0, 4, 2)

	// Only the down child is wide enough.
	assertRect(t, FindFit(root, 8, 2), 0, 2, 10, 2)

	assert.Nil(t, FindFit(root, 11, 1))
}

func TestFindFit_IsPure(t *testing.T) {
	root := model.NewRect(0, 0, 10, 10)
	Split(root, 4, 4)

	before := *root.Right
	FindFit(root, 3, 3)
	assert.Equal(t, before, *root.Right)
	assert.False(t, root.Right.Used)
}

func TestFindFit_NilNode(t *testing.T) {
	assert.Nil(t, FindFit(nil, 1, 1))
}

func TestTree_InsertAndLeaves(t *testing.T) {
	tree := NewTree(10, 10)

	first := tree.Insert(4, 4) // vertical: down (0,4,4,6), right (4,0,6,10)
	assertRect(t, first, 0, 0, 10, 10)

	second := tree.Insert(6, 5) // right leaf 6x10
	assertRect(t, second, 4, 0, 6, 10)

	assert.Nil(t, tree.Insert(7, 7))

	var free int
	for _, leaf := range tree.Leaves() {
		assert.False(t, leaf.Used)
		free += leaf.Area()
	}
	assert.Equal(t, 100-16-30, free)
	assert.Equal(t, free, tree.FreeArea())
}

func TestTree_WalkStopsEarly(t *testing.T) {
	tree := NewTree(10, 10)
	tree.Insert(4, 4)
	tree.Insert(2, 2)

	visited := 0
	tree.Walk(func(*model.Rect) bool {
		visited++
		return visited < 2
	})
	assert.Equal(t, 2, visited)
}
