package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"emcli/pkg/contracts/domain"
)

// WriteDocumentXLSX writes the whole document as a workbook, one sheet per
// dataset. Each sheet carries a metadata block (source, frequency, position)
// above the column table.
func WriteDocumentXLSX(path string, doc *domain.Document) error {
	slog.Info("Writing document workbook",
		slog.String("path", path),
		slog.Int("dataset_count", len(doc.Data)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, ds := range doc.Data {
		sheet := sheetName(datasetTitle(ds, i), i)
		if i == 0 {
			f.SetSheetName(f.GetSheetName(0), sheet)
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
			}
		}
		if err := writeDatasetSheet(f, sheet, ds); err != nil {
			return fmt.Errorf("failed to fill sheet %q: %w", sheet, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeDatasetSheet(f *excelize.File, sheet string, ds domain.Dataset) error {
	rowNum := 1
	writeMeta := func(key, value string) error {
		if err := f.SetCellValue(sheet, "A"+strconv.Itoa(rowNum), key); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, "B"+strconv.Itoa(rowNum), value); err != nil {
			return err
		}
		rowNum++
		return nil
	}

	if ds.Frequency != nil {
		if err := writeMeta("Frequency", fmt.Sprintf("%g %s", ds.Frequency.Value, ds.Frequency.Units)); err != nil {
			return err
		}
	}
	if ds.Position != nil {
		if err := writeMeta("Position", fmt.Sprintf("(%g, %g, %g) %s", ds.Position.X, ds.Position.Y, ds.Position.Z, ds.Position.Units)); err != nil {
			return err
		}
	}
	if ds.Description != "" {
		if err := writeMeta("Description", ds.Description); err != nil {
			return err
		}
	}
	if len(ds.Data) == 0 {
		return nil
	}
	rowNum++ // blank separator row

	for c, col := range ds.Data {
		cell, err := excelize.CoordinatesToCellName(c+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, ColumnLabel(col)); err != nil {
			return err
		}
	}
	headerRow := rowNum

	for r := 0; r < ds.RowCount(); r++ {
		for c, col := range ds.Data {
			cell, err := excelize.CoordinatesToCellName(c+1, headerRow+1+r)
			if err != nil {
				return err
			}
			v := col.Values[r]
			var cellValue any
			if v.IsText {
				cellValue = v.Text
			} else {
				cellValue = v.Number
			}
			if err := f.SetCellValue(sheet, cell, cellValue); err != nil {
				return err
			}
		}
	}
	return nil
}

// sheetName builds a workbook-safe sheet name: excelize limits names to 31
// characters and a restricted character set.
func sheetName(title string, index int) string {
	cleaned := make([]rune, 0, len(title))
	for _, r := range title {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			cleaned = append(cleaned, '_')
		default:
			cleaned = append(cleaned, r)
		}
	}
	name := string(cleaned)
	if name == "" {
		name = "dataset " + strconv.Itoa(index+1)
	}
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}
