package engine

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/BlockPack/internal/model"
)

// GrowingPacker packs every block into one bin that starts at the size of
// the first block and grows right or down whenever nothing fits.
type GrowingPacker struct {
	tree    *Tree
	blocks  []model.Block
	logger  *log.Logger
	growths int
}

// NewGrowingPacker prepares a single-bin packer over blocks. The packer
// writes placements into the given slice. Blocks are reset to unassigned.
func NewGrowingPacker(blocks []model.Block, opts ...Option) (*GrowingPacker, error) {
	if len(blocks) == 0 {
		return nil, ErrEmptyInput
	}
	if err := validateBlocks(blocks); err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	resetBlocks(blocks)

	first := blocks[0]
	return &GrowingPacker{
		tree:   NewTree(first.Width, first.Height),
		blocks: blocks,
		logger: o.logger,
	}, nil
}

// Root returns the current root of the bin's free-space tree.
func (p *GrowingPacker) Root() *model.Rect {
	return p.tree.Root
}

// Tree returns the bin's free-space tree.
func (p *GrowingPacker) Tree() *Tree {
	return p.tree
}

// Size returns the current bin extent.
func (p *GrowingPacker) Size() (int, int) {
	return p.tree.Root.Width, p.tree.Root.Height
}

// Growths returns how many times the bin has grown.
func (p *GrowingPacker) Growths() int {
	return p.growths
}

// Blocks returns the packed block slice.
func (p *GrowingPacker) Blocks() []model.Block {
	return p.blocks
}

// Pack places every unassigned block in order. It stops at the first block
// the bin cannot grow around; blocks placed before it keep their placement.
func (p *GrowingPacker) Pack() error {
	for i := range p.blocks {
		b := &p.blocks[i]
		if b.Bin != model.Unassigned {
			continue
		}
		node, err := p.place(b.Width, b.Height)
		if err != nil {
			return fmt.Errorf("block %d %s: %w", i, b, err)
		}
		b.Placement = node
		b.Bin = 0
	}
	return nil
}

func (p *GrowingPacker) place(w, h int) (*model.Rect, error) {
	if leaf := p.tree.FindFit(w, h); leaf != nil {
		return Split(leaf, w, h), nil
	}
	return p.grow(w, h)
}

// grow picks a growth direction that keeps the bin close to square and then
// places the block in the new strip.
func (p *GrowingPacker) grow(w, h int) (*model.Rect, error) {
	root := p.tree.Root

	canGrowDown := w <= root.Width
	canGrowRight := h <= root.Height

	shouldGrowRight := canGrowRight && root.Height >= root.Width+w
	shouldGrowDown := canGrowDown && root.Width >= root.Height+h

	switch {
	case shouldGrowRight:
		return p.growRight(w, h)
	case shouldGrowDown:
		return p.growDown(w, h)
	case canGrowRight:
		return p.growRight(w, h)
	case canGrowDown:
		return p.growDown(w, h)
	}
	return nil, fmt.Errorf("%w: %dx%d is larger than the %dx%d bin in both dimensions",
		ErrUnsatisfiableGrowth, w, h, root.Width, root.Height)
}

// growRight widens the bin by w. The old root becomes the down child of the
// new root so every earlier placement stays reachable at its coordinates.
func (p *GrowingPacker) growRight(w, h int) (*model.Rect, error) {
	old := p.tree.Root
	p.tree.Root = &model.Rect{
		X:      0,
		Y:      0,
		Width:  old.Width + w,
		Height: old.Height,
		Used:   true,
		Down:   old,
		Right:  model.NewRect(old.Width, 0, w, old.Height),
	}
	return p.afterGrowth("right", old, w, h)
}

// growDown heightens the bin by h. The old root becomes the right child of
// the new root.
func (p *GrowingPacker) growDown(w, h int) (*model.Rect, error) {
	old := p.tree.Root
	p.tree.Root = &model.Rect{
		X:      0,
		Y:      0,
		Width:  old.Width,
		Height: old.Height + h,
		Used:   true,
		Down:   model.NewRect(0, old.Height, old.Width, h),
		Right:  old,
	}
	return p.afterGrowth("down", old, w, h)
}

func (p *GrowingPacker) afterGrowth(direction string, old *model.Rect, w, h int) (*model.Rect, error) {
	p.growths++
	root := p.tree.Root
	p.logger.Debug("grew bin",
		"direction", direction,
		"from", fmt.Sprintf("%dx%d", old.Width, old.Height),
		"to", fmt.Sprintf("%dx%d", root.Width, root.Height),
		"block", fmt.Sprintf("%dx%d", w, h))

	leaf := p.tree.FindFit(w, h)
	if leaf == nil {
		return nil, fmt.Errorf("%w: no fit for %dx%d after growing %s to %dx%d",
			ErrUnsatisfiableGrowth, w, h, direction, root.Width, root.Height)
	}
	return Split(leaf, w, h), nil
}

// BoxSize rounds each dimension up to the next power of two.
func BoxSize(width, height int) (int, int) {
	return nextPow2(width), nextPow2(height)
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func validateBlocks(blocks []model.Block) error {
	for i, b := range blocks {
		if b.Width <= 0 || b.Height <= 0 {
			return fmt.Errorf("block %d %s: %w", i, b, ErrInvalidBlock)
		}
	}
	return nil
}

func resetBlocks(blocks []model.Block) {
	for i := range blocks {
		blocks[i].Bin = model.Unassigned
		blocks[i].Placement = nil
	}
}
