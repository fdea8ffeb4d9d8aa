// Package export renders load plans into downloadable artifacts: a sliced
// PDF loading plan, an OpenSCAD scene of the packed bay, and an XLSX manifest.
package export

import (
	"fmt"
	"io"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/airstack/space-optimizer/internal/planner"
)

// itemColor represents an RGB color for a placed item.
type itemColor struct {
	R, G, B int
}

// itemColors matches the color cycle used by the web visualization.
var itemColors = []itemColor{
	{R: 244, G: 67, B: 54},  // red
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 235, B: 59}, // yellow
	{R: 233, G: 30, B: 233}, // magenta
	{R: 0, G: 188, B: 212},  // cyan
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
}

// Page layout constants (US Letter portrait in mm).
const (
	pageWidth    = 215.9
	pageHeight   = 279.4
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 35.0
	legendHeight = 55.0
	drawAreaTop  = marginTop + headerHeight + 5.0

	sliceCount = 4
)

// WriteLoadingPlanPDF renders the load plan as a PDF and writes it to w. The
// bay is cut into four equal slices along its length and each slice gets its
// own page showing a width/height cross-section of the items it intersects.
func WriteLoadingPlanPDF(w io.Writer, plan planner.PackingResult) error {
	bay := plan.Bay
	if bay.MaxLength <= 0 || bay.MaxWidth <= 0 || bay.MaxHeight <= 0 {
		return fmt.Errorf("bay dimensions must be positive")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	sliceLength := bay.MaxLength / sliceCount
	for slice := 0; slice < sliceCount; slice++ {
		sliceStart := float64(slice) * sliceLength
		sliceEnd := float64(slice+1) * sliceLength

		pdf.AddPage()
		renderSlicePage(pdf, plan, slice, sliceStart, sliceEnd)
	}

	return pdf.Output(w)
}

// itemsInSlice returns the packed items whose extent along the bay length
// overlaps the [start, end) slice.
func itemsInSlice(packed []planner.PlacedItem, start, end float64) []planner.PlacedItem {
	var items []planner.PlacedItem
	for _, item := range packed {
		itemStart := item.Position.X - item.Length/2
		itemEnd := item.Position.X + item.Length/2
		if itemStart < end && itemEnd > start {
			items = append(items, item)
		}
	}
	return items
}

// renderSlicePage draws one length slice of the bay on the current PDF page.
func renderSlicePage(pdf *fpdf.Fpdf, plan planner.PackingResult, slice int, sliceStart, sliceEnd float64) {
	bay := plan.Bay
	stats := plan.Stats
	items := itemsInSlice(plan.Packed, sliceStart, sliceEnd)

	// Title block
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(120, 8, fmt.Sprintf("AirStack Loading Plan - Slice %d of %d", slice+1, sliceCount), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetXY(marginLeft, marginTop+10)
	pdf.CellFormat(120, 5, "UH-60 Black Hawk", "", 0, "L", false, 0, "")
	pdf.SetXY(marginLeft, marginTop+16)
	pdf.CellFormat(120, 5, fmt.Sprintf("Length Section: %.2fm - %.2fm", sliceStart, sliceEnd), "", 0, "L", false, 0, "")

	// Stats block on the right
	pdf.SetFont("Helvetica", "", 9)
	statLines := []string{
		fmt.Sprintf("Total Weight: %.1f / %.0f kg", stats.TotalWeight, bay.MaxWeight),
		fmt.Sprintf("Items in Slice: %d", len(items)),
		fmt.Sprintf("Balance Score: %.1f%%", stats.BalanceScore),
		fmt.Sprintf("CoG: X:%.1f Y:%.1f Z:%.1fm", stats.CenterOfGravity.X, stats.CenterOfGravity.Y, stats.CenterOfGravity.Z),
	}
	statY := marginTop + 10
	for _, line := range statLines {
		pdf.SetXY(pageWidth-marginRight-70, statY)
		pdf.CellFormat(70, 4, line, "", 0, "L", false, 0, "")
		statY += 5
	}

	// Cross-section drawing area
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scale := math.Min(drawWidth/bay.MaxWidth, drawHeight/bay.MaxHeight)
	canvasW := bay.MaxWidth * scale
	canvasH := bay.MaxHeight * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Bay outline
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.6)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "D")

	// Axis labels
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(80, 80, 80)
	pdf.SetXY(offsetX+canvasW/2-10, offsetY+canvasH+2)
	pdf.CellFormat(20, 4, "Width (m)", "", 0, "C", false, 0, "")
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-4, offsetY+canvasH/2)
	pdf.SetXY(offsetX-14, offsetY+canvasH/2-2)
	pdf.CellFormat(20, 4, "Height (m)", "", 0, "C", false, 0, "")
	pdf.TransformEnd()
	pdf.SetTextColor(0, 0, 0)

	// Meter grid
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.15)
	for i := 1; i <= int(bay.MaxWidth); i++ {
		x := offsetX + float64(i)*scale
		pdf.Line(x, offsetY, x, offsetY+canvasH)
	}
	for i := 1; i <= int(bay.MaxHeight); i++ {
		y := offsetY + canvasH - float64(i)*scale
		pdf.Line(offsetX, y, offsetX+canvasW, y)
	}

	// Items, drawn as width/height rectangles. PDF y grows downward, so the
	// bay floor maps to the bottom of the canvas.
	for _, item := range items {
		col := itemColors[item.ID%len(itemColors)]
		bw := item.Width * scale
		bh := item.Height * scale
		bx := offsetX + (item.Position.Y-item.Width/2)*scale
		by := offsetY + canvasH - (item.Position.Z+item.Height/2)*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.4)
		pdf.Rect(bx, by, bw, bh, "FD")

		if bw > 18 && bh > 10 {
			pdf.SetTextColor(255, 255, 255)
			pdf.SetFont("Helvetica", "B", 8)
			pdf.SetXY(bx, by+bh/2-6)
			pdf.CellFormat(bw, 4, fmt.Sprintf("ID%d", item.ID), "", 0, "C", false, 0, "")

			pdf.SetFont("Helvetica", "", 7)
			pdf.SetXY(bx, by+bh/2-1)
			pdf.CellFormat(bw, 4, fmt.Sprintf("%.0fkg", item.Weight), "", 0, "C", false, 0, "")

			pdf.SetXY(bx, by+bh/2+4)
			pdf.CellFormat(bw, 4, truncateLabel(item.ItemType, 15), "", 0, "C", false, 0, "")
			pdf.SetTextColor(0, 0, 0)
		}
	}

	// Legend
	legendY := offsetY + canvasH + 10
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginLeft, legendY)
	pdf.CellFormat(80, 5, "Items in This Slice:", "", 0, "L", false, 0, "")
	legendY += 7

	pdf.SetFont("Helvetica", "", 8)
	for _, item := range items {
		if legendY > pageHeight-marginBottom-8 {
			pdf.SetXY(marginLeft, legendY)
			pdf.CellFormat(80, 4, "...and more", "", 0, "L", false, 0, "")
			break
		}

		col := itemColors[item.ID%len(itemColors)]
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.Rect(marginLeft, legendY, 4, 4, "FD")

		pdf.SetXY(marginLeft+6, legendY)
		text := fmt.Sprintf("ID%d: %s - %.0fkg - Priority %d", item.ID, item.ItemType, item.Weight, item.Priority)
		pdf.CellFormat(160, 4, text, "", 0, "L", false, 0, "")
		legendY += 6
	}

	// Page number
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(pageWidth-marginRight-30, pageHeight-marginBottom)
	pdf.CellFormat(30, 4, fmt.Sprintf("Page %d of %d", slice+1, sliceCount), "", 0, "R", false, 0, "")
}

// truncateLabel shortens long item names so they fit inside drawn boxes.
func truncateLabel(label string, limit int) string {
	if len(label) <= limit {
		return label
	}
	return label[:limit-3] + "..."
}
