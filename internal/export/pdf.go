// Package export provides functionality for exporting packing results
// to various file formats.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/BlockPack/internal/engine"
	"github.com/piwi3910/BlockPack/internal/model"
)

// blockColor represents an RGB color for a placed block.
type blockColor struct {
	R, G, B int
}

// blockColors cycles through placed blocks so neighbours stay distinguishable.
var blockColors = []blockColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF document containing the packing result.
// Each bin is rendered on its own page with a layout diagram showing the
// leaf allotted to every block and the free space left over, followed by a
// summary page with overall statistics.
func ExportPDF(path string, result model.PackResult, settings model.PackSettings) error {
	if len(result.Bins) == 0 {
		return fmt.Errorf("no bins to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, bin := range result.Bins {
		pdf.AddPage()
		renderBinPage(pdf, bin, offcutsForBin(result.Offcuts, bin.Index))
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result, settings)

	return pdf.OutputFileAndClose(path)
}

// renderBinPage draws a single bin on the current PDF page.
func renderBinPage(pdf *fpdf.Fpdf, bin model.BinResult, offcuts []model.Offcut) {
	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Bin %d (%d x %d)", bin.Index+1, bin.Width, bin.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Blocks: %d | Used area: %d | Total area: %d | Efficiency: %.1f%% | Free leaves: %d",
		len(bin.Placements), bin.UsedArea(), bin.TotalArea(), bin.Efficiency(), len(offcuts))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	scale := math.Min(drawWidth/float64(bin.Width), drawHeight/float64(bin.Height))
	canvasW := float64(bin.Width) * scale
	canvasH := float64(bin.Height) * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Bin background
	pdf.SetFillColor(255, 255, 255)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	drawOffcuts(pdf, offcuts, scale, offsetX, offsetY)

	for i, p := range bin.Placements {
		col := blockColors[i%len(blockColors)]

		// Allotted leaf, outlined
		lx := offsetX + float64(p.Leaf.X)*scale
		ly := offsetY + float64(p.Leaf.Y)*scale
		pdf.SetDrawColor(col.R, col.G, col.B)
		pdf.SetLineWidth(0.2)
		pdf.SetDashPattern([]float64{1, 1}, 0)
		pdf.Rect(lx, ly, float64(p.Leaf.Width)*scale, float64(p.Leaf.Height)*scale, "D")
		pdf.SetDashPattern([]float64{}, 0)

		// Block fill
		box := p.BlockBox()
		bw := float64(box.Width) * scale
		bh := float64(box.Height) * scale
		bx := offsetX + float64(box.X)*scale
		by := offsetY + float64(box.Y)*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(bx, by, bw, bh, "FD")

		// Block label (only if rectangle is large enough)
		if bw > 15 && bh > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(bw, bh))
			pdf.SetTextColor(0, 0, 0)

			label := p.Block.Label
			dims := fmt.Sprintf("%dx%d", p.Block.Width, p.Block.Height)

			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < bw-2 {
				pdf.SetXY(bx+(bw-labelW)/2, by+bh/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if bh > 14 && dimsW < bw-2 {
				pdf.SetXY(bx+(bw-dimsW)/2, by+bh/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, bin, offsetX, offsetY, canvasW, canvasH)
	drawBlocksLegend(pdf, bin, offsetY+canvasH+5)
}

// drawOffcuts hatches the free leaves of a bin.
func drawOffcuts(pdf *fpdf.Fpdf, offcuts []model.Offcut, scale, offsetX, offsetY float64) {
	for _, o := range offcuts {
		ox := offsetX + float64(o.X)*scale
		oy := offsetY + float64(o.Y)*scale
		ow := float64(o.Width) * scale
		oh := float64(o.Height) * scale

		pdf.SetFillColor(245, 235, 235)
		pdf.SetDrawColor(200, 150, 150)
		pdf.SetLineWidth(0.2)
		pdf.Rect(ox, oy, ow, oh, "FD")

		drawHatchPattern(pdf, ox, oy, ow, oh)

		if ow > 20 && oh > 8 {
			pdf.SetFont("Helvetica", "", 6)
			pdf.SetTextColor(160, 80, 80)
			text := fmt.Sprintf("free %dx%d", o.Width, o.Height)
			textW := pdf.GetStringWidth(text)
			pdf.SetXY(ox+(ow-textW)/2, oy+oh/2-2)
			pdf.CellFormat(textW, 4, text, "", 0, "C", false, 0, "")
		}
	}

	pdf.SetTextColor(0, 0, 0)
}

// drawHatchPattern draws diagonal lines inside a rectangle to mark free space.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(220, 170, 170)
	pdf.SetLineWidth(0.15)

	spacing := 4.0
	maxDist := w + h

	for d := spacing; d < maxDist; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)

		pdf.Line(x1, y1, x2, y2)
	}
}

// drawDimensionAnnotations adds width and height labels outside the bin rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, bin model.BinResult, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%d", bin.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%d", bin.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawBlocksLegend renders a compact legend of placed blocks below the bin.
func drawBlocksLegend(pdf *fpdf.Fpdf, bin model.BinResult, startY float64) {
	if len(bin.Placements) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Blocks placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range bin.Placements {
		col := blockColors[i%len(blockColors)]
		label := fmt.Sprintf("%s (%dx%d)", p.Block.Label, p.Block.Width, p.Block.Height)
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}
		if startY > pageHeight-marginBottom {
			break
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.PackResult, settings model.PackSettings) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Packing Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Bins Used", fmt.Sprintf("%d", result.BinCount())},
		{"Overall Efficiency", fmt.Sprintf("%.1f%%", result.TotalEfficiency())},
		{"Blocks Placed", fmt.Sprintf("%d", result.PlacedCount())},
		{"Unplaced Blocks", fmt.Sprintf("%d", len(result.Unplaced))},
		{"Free Area Reported", fmt.Sprintf("%d", model.TotalOffcutArea(result.Offcuts))},
	}
	if result.Mode == model.ModeGrowing && len(result.Bins) == 1 {
		bw, bh := engine.BoxSize(result.Bins[0].Width, result.Bins[0].Height)
		summaryItems = append(summaryItems, struct {
			label string
			value string
		}{"Box Size", fmt.Sprintf("%d x %d", bw, bh)})
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Bin Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 60, 50, 35, 70}
	headers := []string{"Bin", "Dimensions", "Blocks", "Efficiency", "Used / Total Area"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, bin := range result.Bins {
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", bin.Index+1),
			fmt.Sprintf("%d x %d", bin.Width, bin.Height),
			fmt.Sprintf("%d", len(bin.Placements)),
			fmt.Sprintf("%.1f%%", bin.Efficiency()),
			fmt.Sprintf("%d / %d", bin.UsedArea(), bin.TotalArea()),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if len(result.Unplaced) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unplaced Blocks", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)

		for _, b := range result.Unplaced {
			if y > pageHeight-marginBottom-10 {
				pdf.AddPage()
				y = marginTop
			}
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s: %d x %d", b.Label, b.Width, b.Height)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	y += 8
	if y > pageHeight-marginBottom-40 {
		pdf.AddPage()
		y = marginTop
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Pack Settings", "", 0, "L", false, 0, "")
	y += 9

	settingsItems := []struct {
		label string
		value string
	}{
		{"Mode", string(settings.Mode)},
		{"Sort Key", settings.SortKey},
		{"Bin Size", fmt.Sprintf("%d x %d", settings.BinWidth, settings.BinHeight)},
		{"Min Offcut Area", fmt.Sprintf("%d", settings.MinOffcutArea)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by BlockPack - Rectangle Bin Packer", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}

// offcutsForBin returns the offcuts that belong to bin index.
func offcutsForBin(offcuts []model.Offcut, index int) []model.Offcut {
	var out []model.Offcut
	for _, o := range offcuts {
		if o.Bin == index {
			out = append(out, o)
		}
	}
	return out
}
