package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/airstack/space-optimizer/internal/planner"
)

const (
	packedSheet   = "Packed Items"
	unpackedSheet = "Unpacked Items"
	summarySheet  = "Summary"
)

// WriteManifest renders the load plan as an XLSX workbook with one sheet of
// packed items (including positions), one of rejected items, and a summary of
// the packing statistics.
func WriteManifest(w io.Writer, plan planner.PackingResult) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", packedSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(unpackedSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	if err := writePackedSheet(f, plan.Packed); err != nil {
		return err
	}
	if err := writeUnpackedSheet(f, plan.Unpacked); err != nil {
		return err
	}
	if err := writeSummarySheet(f, plan); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writePackedSheet(f *excelize.File, packed []planner.PlacedItem) error {
	headers := []any{"ID", "Item Type", "Priority", "Weight (kg)", "Length (m)", "Width (m)", "Height (m)", "X (m)", "Y (m)", "Z (m)"}
	if err := writeRow(f, packedSheet, 1, headers); err != nil {
		return err
	}

	for i, item := range packed {
		row := []any{
			item.ID, item.ItemType, item.Priority, item.Weight,
			item.Length, item.Width, item.Height,
			item.Position.X, item.Position.Y, item.Position.Z,
		}
		if err := writeRow(f, packedSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeUnpackedSheet(f *excelize.File, unpacked []planner.CargoItem) error {
	headers := []any{"ID", "Item Type", "Priority", "Weight (kg)", "Length (m)", "Width (m)", "Height (m)"}
	if err := writeRow(f, unpackedSheet, 1, headers); err != nil {
		return err
	}

	for i, item := range unpacked {
		row := []any{
			item.ID, item.ItemType, item.Priority, item.Weight,
			item.Length, item.Width, item.Height,
		}
		if err := writeRow(f, unpackedSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, plan planner.PackingResult) error {
	stats := plan.Stats
	rows := [][]any{
		{"Metric", "Value"},
		{"Total Weight (kg)", stats.TotalWeight},
		{"Max Weight (kg)", stats.MaxWeight},
		{"Weight Utilization (%)", stats.WeightUtilization},
		{"Total Volume (m3)", stats.TotalVolume},
		{"Max Volume (m3)", stats.MaxVolume},
		{"Volume Utilization (%)", stats.VolumeUtilization},
		{"Items Packed", stats.ItemsPacked},
		{"Items Unpacked", stats.ItemsUnpacked},
		{"Balance Score (%)", stats.BalanceScore},
		{"Left Weight (kg)", stats.LeftWeight},
		{"Right Weight (kg)", stats.RightWeight},
		{"CoG X (m)", stats.CenterOfGravity.X},
		{"CoG Y (m)", stats.CenterOfGravity.Y},
		{"CoG Z (m)", stats.CenterOfGravity.Z},
		{"Bay Length (m)", plan.Bay.MaxLength},
		{"Bay Width (m)", plan.Bay.MaxWidth},
		{"Bay Height (m)", plan.Bay.MaxHeight},
	}

	for i, row := range rows {
		if err := writeRow(f, summarySheet, i+1, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}
