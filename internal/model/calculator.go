package model

// BinEstimate summarizes how many fixed-size bins a block list needs at best.
type BinEstimate struct {
	TotalBlockArea int     `json:"total_block_area"`
	BinArea        int     `json:"bin_area"`
	BinsExact      float64 `json:"bins_exact"` // Fractional number of bins by area alone
	MinBins        int     `json:"min_bins"`   // Ceiling of BinsExact
	Oversized      int     `json:"oversized"`  // Blocks that exceed the bin in some dimension
}

// EstimateBins computes the area lower bound on the number of bins. Blocks
// that cannot fit the bin are counted in Oversized and excluded from the
// area total.
func EstimateBins(blocks []Block, binWidth, binHeight int) BinEstimate {
	est := BinEstimate{BinArea: binWidth * binHeight}
	for _, b := range blocks {
		if b.Width > binWidth || b.Height > binHeight {
			est.Oversized++
			continue
		}
		est.TotalBlockArea += b.Area()
	}
	if est.BinArea <= 0 {
		return est
	}
	est.BinsExact = float64(est.TotalBlockArea) / float64(est.BinArea)
	est.MinBins = (est.TotalBlockArea + est.BinArea - 1) / est.BinArea
	return est
}

// MinBins returns the area lower bound on the number of bins.
func MinBins(blocks []Block, binWidth, binHeight int) int {
	return EstimateBins(blocks, binWidth, binHeight).MinBins
}
