package engine

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/BlockPack/internal/model"
)

// Packer runs a packing strategy and assembles the result.
type Packer struct {
	Settings model.PackSettings
	opts     []Option
	logger   *log.Logger
}

func New(settings model.PackSettings, opts ...Option) *Packer {
	o := buildOptions(opts)
	return &Packer{Settings: settings, opts: opts, logger: o.logger}
}

// Pack places blocks in the order given using the configured mode. The
// input slice is not modified. Blocks that can never fit a fixed bin are
// reported in PackResult.Unplaced rather than as an error.
func (p *Packer) Pack(blocks []model.Block) (model.PackResult, error) {
	work := make([]model.Block, len(blocks))
	copy(work, blocks)

	switch p.Settings.Mode {
	case model.ModeGrowing, "":
		return p.packGrowing(work)
	case model.ModeMultiBin:
		return p.packMultiBin(work)
	default:
		return model.PackResult{}, fmt.Errorf("%w: %q", ErrUnknownMode, p.Settings.Mode)
	}
}

func (p *Packer) packGrowing(blocks []model.Block) (model.PackResult, error) {
	gp, err := NewGrowingPacker(blocks, p.opts...)
	if err != nil {
		return model.PackResult{}, err
	}
	if err := gp.Pack(); err != nil {
		return model.PackResult{}, err
	}

	width, height := gp.Size()
	p.logger.Debug("packed growing bin", "blocks", len(blocks), "width", width, "height", height, "growths", gp.Growths())

	result := model.PackResult{
		Mode: model.ModeGrowing,
		Bins: []model.BinResult{buildBin(0, width, height, gp.Root(), blocks)},
	}
	result.Offcuts = model.FilterOffcuts(collectOffcuts(result.Bins), p.Settings.MinOffcutArea)
	return result, nil
}

func (p *Packer) packMultiBin(blocks []model.Block) (model.PackResult, error) {
	mp, err := NewMultiBinPacker(blocks, p.Settings.BinWidth, p.Settings.BinHeight, p.opts...)
	if err != nil {
		return model.PackResult{}, err
	}
	unplaced := mp.Pack()

	result := model.PackResult{
		Mode:     model.ModeMultiBin,
		Unplaced: unplaced,
	}
	for i, root := range mp.Roots() {
		result.Bins = append(result.Bins, buildBin(i, p.Settings.BinWidth, p.Settings.BinHeight, root, blocks))
	}
	result.Offcuts = model.FilterOffcuts(collectOffcuts(result.Bins), p.Settings.MinOffcutArea)

	p.logger.Debug("packed fixed bins", "blocks", len(blocks), "bins", len(result.Bins), "unplaced", len(unplaced))
	return result, nil
}

// buildBin collects the placements of bin index in block order.
func buildBin(index, width, height int, root *model.Rect, blocks []model.Block) model.BinResult {
	bin := model.BinResult{
		Index:      index,
		Width:      width,
		Height:     height,
		Placements: []model.Placement{},
		Root:       root,
	}
	for _, b := range blocks {
		if b.Bin != index || b.Placement == nil {
			continue
		}
		placed := b
		placed.Placement = nil
		bin.Placements = append(bin.Placements, model.Placement{
			Block: placed,
			Bin:   index,
			Leaf:  b.Placement.Box(),
		})
	}
	return bin
}

// collectOffcuts lists the free leaves of every bin tree.
func collectOffcuts(bins []model.BinResult) []model.Offcut {
	var offcuts []model.Offcut
	for _, bin := range bins {
		if bin.Root == nil {
			continue
		}
		tree := &Tree{Root: bin.Root}
		for _, leaf := range tree.Leaves() {
			offcuts = append(offcuts, model.Offcut{
				Bin:    bin.Index,
				X:      leaf.X,
				Y:      leaf.Y,
				Width:  leaf.Width,
				Height: leaf.Height,
			})
		}
	}
	return offcuts
}
