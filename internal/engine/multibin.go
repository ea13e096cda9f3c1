package engine

import (
	"github.com/charmbracelet/log"

	"github.com/piwi3910/BlockPack/internal/model"
)

// MultiBinPacker packs blocks into bins of one fixed size. Each bin takes a
// full greedy pass over the blocks still unassigned; whatever does not fit
// is retried from scratch in the next bin.
type MultiBinPacker struct {
	binWidth  int
	binHeight int
	blocks    []model.Block
	roots     []*model.Rect
	logger    *log.Logger
}

// NewMultiBinPacker prepares a fixed-size packer over blocks. The packer
// writes placements into the given slice. Blocks are reset to unassigned.
func NewMultiBinPacker(blocks []model.Block, binWidth, binHeight int, opts ...Option) (*MultiBinPacker, error) {
	if len(blocks) == 0 {
		return nil, ErrEmptyInput
	}
	if binWidth <= 0 || binHeight <= 0 {
		return nil, ErrInvalidBinSize
	}
	if err := validateBlocks(blocks); err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	resetBlocks(blocks)

	return &MultiBinPacker{
		binWidth:  binWidth,
		binHeight: binHeight,
		blocks:    blocks,
		logger:    o.logger,
	}, nil
}

// Pack opens bins until every block is placed or a fresh bin takes none of
// the remaining blocks. It returns the blocks that can never be placed.
func (p *MultiBinPacker) Pack() []model.Block {
	for p.remaining() > 0 {
		binIndex := len(p.roots)
		tree := NewTree(p.binWidth, p.binHeight)

		placed := 0
		for i := range p.blocks {
			b := &p.blocks[i]
			if b.Bin != model.Unassigned {
				continue
			}
			node := tree.Insert(b.Width, b.Height)
			if node == nil {
				continue
			}
			b.Placement = node
			b.Bin = binIndex
			placed++
		}

		if placed == 0 {
			break
		}
		p.roots = append(p.roots, tree.Root)
		p.logger.Debug("closed bin", "bin", binIndex, "placed", placed, "remaining", p.remaining())
	}

	unplaced := p.Unplaced()
	for _, b := range unplaced {
		p.logger.Warn("block does not fit the bin",
			"block", b.String(), "bin_width", p.binWidth, "bin_height", p.binHeight)
	}
	return unplaced
}

func (p *MultiBinPacker) remaining() int {
	n := 0
	for _, b := range p.blocks {
		if b.Bin == model.Unassigned {
			n++
		}
	}
	return n
}

// Roots returns the free-space tree root of every bin, in bin order.
func (p *MultiBinPacker) Roots() []*model.Rect {
	return p.roots
}

// BinCount returns the number of bins created.
func (p *MultiBinPacker) BinCount() int {
	return len(p.roots)
}

// BinSize returns the fixed bin extent.
func (p *MultiBinPacker) BinSize() (int, int) {
	return p.binWidth, p.binHeight
}

// Blocks returns the packed block slice.
func (p *MultiBinPacker) Blocks() []model.Block {
	return p.blocks
}

// Unplaced returns copies of the blocks still unassigned, in input order.
func (p *MultiBinPacker) Unplaced() []model.Block {
	var out []model.Block
	for _, b := range p.blocks {
		if b.Bin == model.Unassigned {
			out = append(out, b)
		}
	}
	return out
}
