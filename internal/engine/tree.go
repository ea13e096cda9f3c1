package engine

import "github.com/piwi3910/BlockPack/internal/model"

// FindFit returns the first free leaf under node that can hold a w x h
// block, or nil. Used nodes are searched right subtree first, then down.
func FindFit(node *model.Rect, w, h int) *model.Rect {
	if node == nil {
		return nil
	}
	if node.Used {
		if leaf := FindFit(node.Right, w, h); leaf != nil {
			return leaf
		}
		return FindFit(node.Down, w, h)
	}
	if node.Fits(w, h) {
		return node
	}
	return nil
}

// Split marks node used by a w x h block at its top-left corner and gives it
// two children covering the rest of its area. When h*W < w*H the remainder
// below spans the full node width and the right child is as tall as the
// block; otherwise the right child spans the full node height and the
// remainder below is as wide as the block.
func Split(node *model.Rect, w, h int) *model.Rect {
	node.Used = true
	if h*node.Width < w*node.Height {
		node.Down = model.NewRect(node.X, node.Y+h, node.Width, node.Height-h)
		node.Right = model.NewRect(node.X+w, node.Y, node.Width-w, h)
	} else {
		node.Down = model.NewRect(node.X, node.Y+h, w, node.Height-h)
		node.Right = model.NewRect(node.X+w, node.Y, node.Width-w, node.Height)
	}
	return node
}

// Tree is a free-space tree for one bin.
type Tree struct {
	Root *model.Rect
}

// NewTree creates a tree whose root covers a width x height bin.
func NewTree(width, height int) *Tree {
	return &Tree{Root: model.NewRect(0, 0, width, height)}
}

// FindFit searches the whole tree for a free leaf holding w x h.
func (t *Tree) FindFit(w, h int) *model.Rect {
	return FindFit(t.Root, w, h)
}

// Insert places a w x h block and returns its node, or nil when no free
// leaf is large enough.
func (t *Tree) Insert(w, h int) *model.Rect {
	leaf := t.FindFit(w, h)
	if leaf == nil {
		return nil
	}
	return Split(leaf, w, h)
}

// Walk visits nodes depth first in search order (node, right, down) until
// fn returns false.
func (t *Tree) Walk(fn func(*model.Rect) bool) {
	walk(t.Root, fn)
}

func walk(node *model.Rect, fn func(*model.Rect) bool) bool {
	if node == nil {
		return true
	}
	if !fn(node) {
		return false
	}
	return walk(node.Right, fn) && walk(node.Down, fn)
}

// Leaves returns the free leaves in search order, including zero-area ones.
func (t *Tree) Leaves() []*model.Rect {
	var leaves []*model.Rect
	t.Walk(func(n *model.Rect) bool {
		if !n.Used {
			leaves = append(leaves, n)
		}
		return true
	})
	return leaves
}

// FreeArea returns the summed area of all free leaves.
func (t *Tree) FreeArea() int {
	total := 0
	for _, leaf := range t.Leaves() {
		total += leaf.Area()
	}
	return total
}
