// Package ffe parses FEKO far/near-field export files (FFE) into normalized
// emdata documents.
//
// An FFE file interleaves metadata header lines (marked with '#' or '*') with
// whitespace-separated tabular data. The parser is a single-pass state
// machine over the line stream:
//
//	raw line → classifier → {header interpreter → column matcher} | {data line parser} → assembler → Document
//
// Dataset boundaries are decided by a single armed flag: the first header
// line after file start, or after any data row, begins a new dataset, so
// consecutive header lines accumulate metadata for one dataset while a
// header following data starts the next sweep.
//
// Tolerance policy: data rows whose token count does not match the dataset's
// column layout are dropped silently, unrecognized key/value headers are
// discarded, and unmatched column labels become "unknown" columns that keep
// the layout aligned. A non-numeric Frequency value or an Origin with fewer
// than three components is fatal for the whole file; the parser never returns
// a partially built document.
//
// The pattern table is read-only after package init; any number of files may
// be parsed concurrently, one assembler per file.
package ffe
