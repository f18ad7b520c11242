// Package exporter writes normalized emdata documents back out and reads them
// in again.
//
// Three output shapes are supported:
//
// Document: the canonical serialized form, a JSON tree mirroring the domain
// types. LoadDocument/SaveDocument are the whole-document boundary; a file
// that fails to deserialize aborts the operation, nothing is patched up.
//
// CSV: one dataset flattened to a table, one column per descriptor, with a
// human-readable label row. Optional UTF-8 BOM for spreadsheet tools.
//
// XLSX: the whole document as a workbook, one sheet per dataset with the
// dataset's metadata in a leading block.
package exporter
