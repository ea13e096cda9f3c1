package engine

import (
	"fmt"

	"github.com/piwi3910/BlockPack/internal/model"
)

// ViolationKind classifies a geometric defect in a packing result.
type ViolationKind string

const (
	ViolationOverlap  ViolationKind = "overlap"    // Two blocks in one bin intersect
	ViolationOutOfBin ViolationKind = "out_of_bin" // A block extends past its bin
	ViolationLeafSize ViolationKind = "leaf_size"  // A block is larger than its allotted leaf
	ViolationWrongBin ViolationKind = "wrong_bin"  // A placement's bin index disagrees with its bin
)

// Violation describes one defect found by Verify.
type Violation struct {
	Kind   ViolationKind `json:"kind"`
	Bin    int           `json:"bin"`
	Block  string        `json:"block"`
	Other  string        `json:"other,omitempty"`
	Detail string        `json:"detail"`
}

// Verify checks a packing result for overlapping blocks, blocks outside
// their bin, blocks larger than their leaf and mislabelled bin indices.
// A correct result yields no violations.
func Verify(result model.PackResult) []Violation {
	var violations []Violation

	for _, bin := range result.Bins {
		for i, p := range bin.Placements {
			box := p.BlockBox()

			if p.Bin != bin.Index || p.Block.Bin != bin.Index {
				violations = append(violations, Violation{
					Kind:   ViolationWrongBin,
					Bin:    bin.Index,
					Block:  blockName(p.Block),
					Detail: fmt.Sprintf("placement records bin %d, block records bin %d", p.Bin, p.Block.Bin),
				})
			}

			if !box.Within(bin.Width, bin.Height) {
				violations = append(violations, Violation{
					Kind:   ViolationOutOfBin,
					Bin:    bin.Index,
					Block:  blockName(p.Block),
					Detail: fmt.Sprintf("%s exceeds %dx%d", describeBox(box), bin.Width, bin.Height),
				})
			}

			if p.Block.Width > p.Leaf.Width || p.Block.Height > p.Leaf.Height {
				violations = append(violations, Violation{
					Kind:   ViolationLeafSize,
					Bin:    bin.Index,
					Block:  blockName(p.Block),
					Detail: fmt.Sprintf("block %dx%d in leaf %s", p.Block.Width, p.Block.Height, describeBox(p.Leaf)),
				})
			}

			for _, q := range bin.Placements[i+1:] {
				if box.Overlaps(q.BlockBox()) {
					violations = append(violations, Violation{
						Kind:   ViolationOverlap,
						Bin:    bin.Index,
						Block:  blockName(p.Block),
						Other:  blockName(q.Block),
						Detail: fmt.Sprintf("%s intersects %s", describeBox(box), describeBox(q.BlockBox())),
					})
				}
			}
		}
	}

	return deduplicateViolations(violations)
}

// deduplicateViolations keeps at most one violation per (kind, bin, block, other).
func deduplicateViolations(violations []Violation) []Violation {
	type key struct {
		kind  ViolationKind
		bin   int
		block string
		other string
	}
	seen := make(map[key]bool)
	var result []Violation

	for _, v := range violations {
		k := key{v.Kind, v.Bin, v.Block, v.Other}
		if !seen[k] {
			seen[k] = true
			result = append(result, v)
		}
	}
	return result
}

// FormatViolations produces human-readable messages from violations.
func FormatViolations(violations []Violation) []string {
	var msgs []string
	for _, v := range violations {
		msg := fmt.Sprintf("Bin %d: %s %s", v.Bin+1, v.Kind, v.Block)
		if v.Other != "" {
			msg += " / " + v.Other
		}
		msgs = append(msgs, msg+": "+v.Detail)
	}
	return msgs
}

func blockName(b model.Block) string {
	if b.ID == "" {
		return b.String()
	}
	return b.ID + " " + b.String()
}

func describeBox(b model.Box) string {
	return fmt.Sprintf("(%d,%d %dx%d)", b.X, b.Y, b.Width, b.Height)
}
