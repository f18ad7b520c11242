package exporter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"emcli/pkg/contracts/domain"
)

// SaveDocument writes a document as indented JSON. The parent directory is
// created if needed.
func SaveDocument(path string, doc *domain.Document) error {
	slog.Info("Writing document",
		slog.String("path", path),
		slog.Int("dataset_count", len(doc.Data)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return nil
}

// LoadDocument reads a serialized document. A file that cannot be read or
// deserialized fails the whole operation; the loaded document is validated
// before being handed back.
func LoadDocument(path string) (*domain.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	var doc domain.Document
	dec := json.NewDecoder(f)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", path, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("document %s is malformed: %w", path, err)
	}
	return &doc, nil
}
