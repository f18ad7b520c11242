package ffe

import (
	"regexp"

	"emcli/pkg/contracts/domain"
)

// labelSplit breaks a column-header row into individual labels. Labels are
// double-quoted and separated by whitespace; quote characters never appear
// inside a label.
var labelSplit = regexp.MustCompile(`["\s]+`)

// splitColumnLabels returns the raw labels of a column-header row in file
// order, with quotes and separators stripped.
func splitColumnLabels(line string) []string {
	var labels []string
	for _, tok := range labelSplit.Split(line, -1) {
		if tok != "" {
			labels = append(labels, tok)
		}
	}
	return labels
}

// matchColumn maps one raw column label to its descriptor. The pattern table
// is scanned in order and the first match wins. An unmatched label still
// yields a column, tagged unknown and carrying the label verbatim, so the
// layout stays aligned with the source file.
func matchColumn(label string) domain.Column {
	for _, p := range columnPatterns {
		if p.re.MatchString(label) {
			return p.template
		}
	}
	return domain.Column{Quantity: domain.QuantityUnknown, Description: label}
}

// matchColumns maps every label of a column-header row, preserving order.
func matchColumns(labels []string) []domain.Column {
	cols := make([]domain.Column, 0, len(labels))
	for _, l := range labels {
		cols = append(cols, matchColumn(l))
	}
	return cols
}
