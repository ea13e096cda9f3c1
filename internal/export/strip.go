package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/BlockPack/internal/engine"
	"github.com/piwi3910/BlockPack/internal/model"
)

// StripLayout positions every bin of a result on one shared canvas. Bins
// sit side by side, each starting MarginFactor bin widths after the
// previous one.
type StripLayout struct {
	CanvasWidth  int
	CanvasHeight int
	Origins      []model.Box // One per bin, in bin order
}

// LayoutStrip computes the strip canvas. A single growing bin is drawn on a
// canvas rounded up to powers of two.
func LayoutStrip(result model.PackResult, marginFactor float64) StripLayout {
	if marginFactor < 1 {
		marginFactor = 1
	}
	if len(result.Bins) == 0 {
		return StripLayout{}
	}

	if result.Mode == model.ModeGrowing && len(result.Bins) == 1 {
		bin := result.Bins[0]
		w, h := engine.BoxSize(bin.Width, bin.Height)
		return StripLayout{
			CanvasWidth:  w,
			CanvasHeight: h,
			Origins:      []model.Box{{X: 0, Y: 0, Width: bin.Width, Height: bin.Height}},
		}
	}

	var layout StripLayout
	x := 0
	for _, bin := range result.Bins {
		layout.Origins = append(layout.Origins, model.Box{X: x, Y: 0, Width: bin.Width, Height: bin.Height})
		layout.CanvasWidth = max(layout.CanvasWidth, x+bin.Width)
		layout.CanvasHeight = max(layout.CanvasHeight, bin.Height)
		x += int(math.Round(float64(bin.Width) * marginFactor))
	}
	return layout
}

// ExportStripPDF draws all bins side by side on a single page. Each placed
// block shows its allotted leaf in blue with the block itself in green on
// top; the gap between bins is left red.
func ExportStripPDF(path string, result model.PackResult, settings model.PackSettings) error {
	if len(result.Bins) == 0 {
		return fmt.Errorf("no bins to export")
	}

	layout := LayoutStrip(result, settings.MarginFactor)

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%d bin(s), %.1f%% efficiency", result.BinCount(), result.TotalEfficiency())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom
	scale := math.Min(drawWidth/float64(layout.CanvasWidth), drawHeight/float64(layout.CanvasHeight))

	offsetX := marginLeft + (drawWidth-float64(layout.CanvasWidth)*scale)/2
	offsetY := drawAreaTop

	pdf.SetFillColor(220, 60, 60)
	pdf.Rect(offsetX, offsetY, float64(layout.CanvasWidth)*scale, float64(layout.CanvasHeight)*scale, "F")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.1)
	for i, bin := range result.Bins {
		origin := layout.Origins[i]
		ox := offsetX + float64(origin.X)*scale
		oy := offsetY + float64(origin.Y)*scale

		pdf.SetFillColor(255, 255, 255)
		pdf.Rect(ox, oy, float64(bin.Width)*scale, float64(bin.Height)*scale, "FD")

		for _, p := range bin.Placements {
			pdf.SetFillColor(40, 90, 220)
			pdf.Rect(ox+float64(p.Leaf.X)*scale, oy+float64(p.Leaf.Y)*scale,
				float64(p.Leaf.Width)*scale, float64(p.Leaf.Height)*scale, "FD")

			box := p.BlockBox()
			pdf.SetFillColor(60, 170, 80)
			pdf.Rect(ox+float64(box.X)*scale, oy+float64(box.Y)*scale,
				float64(box.Width)*scale, float64(box.Height)*scale, "FD")
		}
	}

	return pdf.OutputFileAndClose(path)
}
