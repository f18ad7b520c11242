package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"emcli/pkg/contracts/domain"
)

// CSVOptions configures dataset CSV output.
type CSVOptions struct {
	// BOMPrefix writes a UTF-8 BOM so spreadsheet tools pick the right
	// encoding.
	BOMPrefix bool
}

// WriteDatasetCSV flattens one dataset to a CSV file: a label row derived
// from the column descriptors, then one line per data row.
func WriteDatasetCSV(path string, ds domain.Dataset, opts CSVOptions) error {
	slog.Info("Writing dataset CSV",
		slog.String("path", path),
		slog.Int("column_count", len(ds.Data)),
		slog.Int("row_count", ds.RowCount()))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if opts.BOMPrefix {
		if _, err := f.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	w := csv.NewWriter(f)
	defer w.Flush()

	header := make([]string, len(ds.Data))
	for i, col := range ds.Data {
		header[i] = ColumnLabel(col)
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for r := 0; r < ds.RowCount(); r++ {
		row := make([]string, len(ds.Data))
		for c, col := range ds.Data {
			row[c] = formatValue(col.Values[r])
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r, err)
		}
	}
	return w.Error()
}
