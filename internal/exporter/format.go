package exporter

import (
	"fmt"
	"sort"
	"strings"

	"emcli/pkg/contracts/domain"
)

// ColumnLabel renders a column descriptor as a single human-readable label,
// e.g. "electric field theta real (V/m)". Unknown columns fall back to the
// raw label the file carried.
func ColumnLabel(col domain.Column) string {
	if col.Quantity == domain.QuantityUnknown {
		if col.Description != "" {
			return col.Description
		}
		return domain.QuantityUnknown
	}

	parts := []string{col.Quantity}
	if col.VectorComponent != "" {
		parts = append(parts, col.VectorComponent)
	}
	if col.PhasorComponent != "" {
		parts = append(parts, col.PhasorComponent)
	}
	label := strings.Join(parts, " ")
	if col.Units != "" {
		label = fmt.Sprintf("%s (%s)", label, col.Units)
	}
	return label
}

// formatValue renders one cell for tabular output. Numbers use the shortest
// representation that round-trips.
func formatValue(v domain.Value) string {
	return v.String()
}

// datasetTitle picks a display name for a dataset: an explicit "*Name" header
// wins (first key in sorted order, for stable output), then the description,
// then a positional fallback.
func datasetTitle(ds domain.Dataset, index int) string {
	keys := make([]string, 0, len(ds.Names))
	for k := range ds.Names {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if ds.Names[k] != "" {
			return ds.Names[k]
		}
	}
	if ds.Description != "" {
		return ds.Description
	}
	return fmt.Sprintf("dataset %d", index+1)
}
