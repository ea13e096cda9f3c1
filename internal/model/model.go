package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Unassigned is the bin index of a block that has not been placed yet.
const Unassigned = -1

// Block is a rectangle to be packed. Width and Height never change; Bin and
// Placement are written once by a packer.
type Block struct {
	ID     string `json:"id" toml:"id"`
	Label  string `json:"label" toml:"label"`
	Width  int    `json:"width" toml:"width"`
	Height int    `json:"height" toml:"height"`

	Bin       int   `json:"bin" toml:"-"`
	Placement *Rect `json:"-" toml:"-"`
}

func NewBlock(label string, w, h int) Block {
	return Block{
		ID:     uuid.New().String()[:8],
		Label:  label,
		Width:  w,
		Height: h,
		Bin:    Unassigned,
	}
}

// Area returns Width*Height.
func (b Block) Area() int {
	return b.Width * b.Height
}

// Placed reports whether a packer has assigned the block to a bin.
func (b Block) Placed() bool {
	return b.Bin != Unassigned && b.Placement != nil
}

func (b Block) String() string {
	return fmt.Sprintf("%s(%dx%d)", b.Label, b.Width, b.Height)
}

// Box is a plain axis-aligned rectangle.
type Box struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Area returns Width*Height.
func (b Box) Area() int {
	return b.Width * b.Height
}

// Right returns the x coordinate just past the box.
func (b Box) Right() int { return b.X + b.Width }

// Bottom returns the y coordinate just past the box.
func (b Box) Bottom() int { return b.Y + b.Height }

// Overlaps reports whether the interiors of a and b intersect.
// Boxes that only share an edge do not overlap, and zero-area boxes
// overlap nothing.
func (b Box) Overlaps(o Box) bool {
	if b.Area() == 0 || o.Area() == 0 {
		return false
	}
	return b.X < o.Right() && o.X < b.Right() &&
		b.Y < o.Bottom() && o.Y < b.Bottom()
}

// Within reports whether b lies fully inside a width x height extent
// anchored at the origin.
func (b Box) Within(width, height int) bool {
	return b.X >= 0 && b.Y >= 0 && b.Right() <= width && b.Bottom() <= height
}

// Rect is a node of the free-space tree. An unused node is available space
// and has no children. A used node holds a block at its top-left corner and
// owns exactly two children covering the space left over around it.
type Rect struct {
	X      int   `json:"x"`
	Y      int   `json:"y"`
	Width  int   `json:"width"`
	Height int   `json:"height"`
	Used   bool  `json:"used"`
	Down   *Rect `json:"down,omitempty"`
	Right  *Rect `json:"right,omitempty"`
}

func NewRect(x, y, w, h int) *Rect {
	return &Rect{X: x, Y: y, Width: w, Height: h}
}

// Box returns the node's rectangle without its children.
func (r *Rect) Box() Box {
	return Box{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// Area returns Width*Height.
func (r *Rect) Area() int {
	return r.Width * r.Height
}

// Fits reports whether a w x h block fits inside the node's extent.
func (r *Rect) Fits(w, h int) bool {
	return w <= r.Width && h <= r.Height
}

func (r *Rect) String() string {
	return fmt.Sprintf("Rect(x:%d y:%d w:%d h:%d used:%t)", r.X, r.Y, r.Width, r.Height, r.Used)
}

// Mode selects the packing strategy.
type Mode string

const (
	ModeGrowing  Mode = "growing"  // Single bin that grows right or down on demand
	ModeMultiBin Mode = "multibin" // Fixed-size bins, overflow spills into new bins
)

func (m Mode) String() string {
	return string(m)
}

// ParseMode converts a user-supplied mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "growing", "grow", "single", "":
		return ModeGrowing, nil
	case "multibin", "multi", "multi-bin", "fixed":
		return ModeMultiBin, nil
	default:
		return "", fmt.Errorf("unknown packing mode %q", s)
	}
}

// PackSettings holds the parameters of one packing run.
type PackSettings struct {
	Mode      Mode `json:"mode" toml:"mode"`
	BinWidth  int  `json:"bin_width" toml:"bin_width"`   // Fixed bin width (multibin only)
	BinHeight int  `json:"bin_height" toml:"bin_height"` // Fixed bin height (multibin only)

	// SortKey names the ordering callers apply before packing. The engine
	// itself packs blocks in the order given.
	SortKey string `json:"sort_key" toml:"sort_key"`

	MarginFactor  float64 `json:"margin_factor" toml:"margin_factor"`     // Horizontal spacing of side-by-side bins in exports
	MinOffcutArea int     `json:"min_offcut_area" toml:"min_offcut_area"` // Free leaves below this area are left out of reports
}

func DefaultSettings() PackSettings {
	return PackSettings{
		Mode:          ModeGrowing,
		BinWidth:      100,
		BinHeight:     100,
		SortKey:       "max_side",
		MarginFactor:  1.1,
		MinOffcutArea: 1,
	}
}

// Placement is a block positioned inside a bin. Leaf is the free-space node
// the block was assigned to; the block occupies its top-left Width x Height.
type Placement struct {
	Block Block `json:"block"`
	Bin   int   `json:"bin"`
	Leaf  Box   `json:"leaf"`
}

// BlockBox returns the rectangle actually covered by the block.
func (p Placement) BlockBox() Box {
	return Box{X: p.Leaf.X, Y: p.Leaf.Y, Width: p.Block.Width, Height: p.Block.Height}
}

// BinResult is one bin with the blocks placed in it.
type BinResult struct {
	Index      int         `json:"index"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Placements []Placement `json:"placements"`
	Root       *Rect       `json:"-"`
}

// UsedArea returns the total area covered by blocks.
func (br BinResult) UsedArea() int {
	var total int
	for _, p := range br.Placements {
		total += p.Block.Area()
	}
	return total
}

// TotalArea returns the bin area.
func (br BinResult) TotalArea() int {
	return br.Width * br.Height
}

// Efficiency returns the usage percentage.
func (br BinResult) Efficiency() float64 {
	ta := br.TotalArea()
	if ta == 0 {
		return 0
	}
	return float64(br.UsedArea()) / float64(ta) * 100.0
}

// PackResult holds the full solution of a packing run.
type PackResult struct {
	Mode     Mode        `json:"mode"`
	Bins     []BinResult `json:"bins"`
	Unplaced []Block     `json:"unplaced"`
	Offcuts  []Offcut    `json:"offcuts,omitempty"`
}

// BinCount returns the number of bins used.
func (pr PackResult) BinCount() int {
	return len(pr.Bins)
}

// PlacedCount returns the number of placed blocks across all bins.
func (pr PackResult) PlacedCount() int {
	total := 0
	for _, b := range pr.Bins {
		total += len(b.Placements)
	}
	return total
}

// Complete reports whether every block was placed.
func (pr PackResult) Complete() bool {
	return len(pr.Unplaced) == 0
}

// TotalEfficiency returns overall usage percentage.
func (pr PackResult) TotalEfficiency() float64 {
	var used, total int
	for _, b := range pr.Bins {
		used += b.UsedArea()
		total += b.TotalArea()
	}
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total) * 100.0
}

// BlockSpec is a block entry in a job file. Quantity copies of the block are
// packed; zero means one.
type BlockSpec struct {
	Label    string `json:"label" toml:"label"`
	Width    int    `json:"width" toml:"width"`
	Height   int    `json:"height" toml:"height"`
	Quantity int    `json:"quantity,omitempty" toml:"quantity,omitempty"`
}

// Job ties settings and block list together for save/load.
type Job struct {
	Name     string       `json:"name" toml:"name"`
	Settings PackSettings `json:"settings" toml:"settings"`
	Blocks   []BlockSpec  `json:"blocks" toml:"blocks"`
}

func NewJob() Job {
	return Job{
		Name:     "Untitled",
		Settings: DefaultSettings(),
		Blocks:   []BlockSpec{},
	}
}

// Expand returns one Block per requested copy, in file order.
func (j Job) Expand() []Block {
	var blocks []Block
	for i, spec := range j.Blocks {
		qty := spec.Quantity
		if qty <= 0 {
			qty = 1
		}
		label := spec.Label
		if label == "" {
			label = fmt.Sprintf("Block %d", i+1)
		}
		for n := 0; n < qty; n++ {
			blocks = append(blocks, NewBlock(label, spec.Width, spec.Height))
		}
	}
	return blocks
}

// SpecsFromBlocks converts blocks back to single-quantity job entries.
func SpecsFromBlocks(blocks []Block) []BlockSpec {
	specs := make([]BlockSpec, 0, len(blocks))
	for _, b := range blocks {
		specs = append(specs, BlockSpec{Label: b.Label, Width: b.Width, Height: b.Height, Quantity: 1})
	}
	return specs
}
