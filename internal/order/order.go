// Package order sorts block lists before they are handed to a packer.
// Every key sorts descending so the largest blocks are packed first.
package order

import (
	"fmt"
	"sort"
	"strings"

	"github.com/piwi3910/BlockPack/internal/model"
)

// Key names a sort order.
type Key string

const (
	KeyWidth   Key = "width"    // Wider blocks first
	KeyHeight  Key = "height"   // Taller blocks first
	KeyArea    Key = "area"     // Larger area first
	KeyMaxSide Key = "max_side" // Longer long side first, ties broken by the short side
	KeyNone    Key = "none"     // Keep input order
)

// Keys returns the sorting keys in display order.
func Keys() []Key {
	return []Key{KeyWidth, KeyHeight, KeyArea, KeyMaxSide}
}

// ParseKey converts a user-supplied key name to a Key.
func ParseKey(s string) (Key, error) {
	switch Key(strings.ToLower(strings.TrimSpace(s))) {
	case KeyWidth, "w":
		return KeyWidth, nil
	case KeyHeight, "h":
		return KeyHeight, nil
	case KeyArea:
		return KeyArea, nil
	case KeyMaxSide, "maxside", "max-side":
		return KeyMaxSide, nil
	case KeyNone, "":
		return KeyNone, nil
	default:
		return "", fmt.Errorf("unknown sort key %q", s)
	}
}

// less reports whether a sorts before b under key.
func less(key Key, a, b model.Block) bool {
	switch key {
	case KeyWidth:
		return a.Width > b.Width
	case KeyHeight:
		return a.Height > b.Height
	case KeyArea:
		return a.Area() > b.Area()
	case KeyMaxSide:
		amax, amin := maxMin(a)
		bmax, bmin := maxMin(b)
		if amax != bmax {
			return amax > bmax
		}
		return amin > bmin
	default:
		return false
	}
}

func maxMin(b model.Block) (int, int) {
	if b.Width >= b.Height {
		return b.Width, b.Height
	}
	return b.Height, b.Width
}

// Sort orders blocks in place by key and returns the same slice. The sort is
// stable, so equal blocks keep their input order.
func Sort(blocks []model.Block, key Key) []model.Block {
	if key == KeyNone {
		return blocks
	}
	sort.SliceStable(blocks, func(i, j int) bool {
		return less(key, blocks[i], blocks[j])
	})
	return blocks
}

// Sorted returns a sorted copy of blocks, leaving the input untouched.
func Sorted(blocks []model.Block, key Key) []model.Block {
	cp := make([]model.Block, len(blocks))
	copy(cp, blocks)
	return Sort(cp, key)
}
