package model

import "sort"

// Offcut is a free leaf of a bin's space tree: area no block was assigned to.
type Offcut struct {
	Bin    int `json:"bin"`
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Area returns the area of the offcut.
func (o Offcut) Area() int {
	return o.Width * o.Height
}

// Box returns the offcut rectangle.
func (o Offcut) Box() Box {
	return Box{X: o.X, Y: o.Y, Width: o.Width, Height: o.Height}
}

// FilterOffcuts drops offcuts smaller than minArea and sorts the rest by
// area descending, keeping bin order for equal areas.
func FilterOffcuts(offcuts []Offcut, minArea int) []Offcut {
	kept := make([]Offcut, 0, len(offcuts))
	for _, o := range offcuts {
		if o.Area() > 0 && o.Area() >= minArea {
			kept = append(kept, o)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Area() > kept[j].Area()
	})
	return kept
}

// TotalOffcutArea returns the summed area of all offcuts.
func TotalOffcutArea(offcuts []Offcut) int {
	var total int
	for _, o := range offcuts {
		total += o.Area()
	}
	return total
}
