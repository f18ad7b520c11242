package services

import "errors"

// Conversion service errors
var (
	ErrUnknownExtension   = errors.New("unknown export file extension")
	ErrConversionNotFound = errors.New("conversion not found")
	ErrDocumentMissing    = errors.New("document file missing")
	ErrEmptyFilename      = errors.New("filename is required")
)
