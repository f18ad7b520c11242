package ffe

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"emcli/pkg/contracts/domain"
)

// Stats summarizes tolerance decisions made during one parse. Dropped rows
// and discarded headers are not errors; they are counted so callers can
// surface them as metrics.
type Stats struct {
	Lines            int
	Datasets         int
	DroppedRows      int
	DiscardedHeaders int
}

// Parse reads one FFE export from r and returns the normalized document.
// Parsing is single-pass and strictly sequential; any core parse failure
// (non-numeric frequency, short origin) fails the whole file and no partial
// document is returned.
func Parse(r io.Reader) (*domain.Document, error) {
	doc, _, err := ParseWithStats(r)
	return doc, err
}

// ParseWithStats is Parse plus the tolerance counters for the file.
func ParseWithStats(r io.Reader) (*domain.Document, Stats, error) {
	a := newAssembler()
	var stats Stats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if err := a.consumeLine(line, lineNo); err != nil {
			return nil, Stats{}, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, Stats{}, fmt.Errorf("failed to read input: %w", err)
	}

	doc := a.finish()
	stats = Stats{
		Lines:            lineNo,
		Datasets:         len(doc.Data),
		DroppedRows:      a.droppedRows,
		DiscardedHeaders: a.discardedHeaders,
	}
	if stats.DroppedRows > 0 || stats.DiscardedHeaders > 0 {
		slog.Debug("tolerated malformed content",
			slog.Int("dropped_rows", stats.DroppedRows),
			slog.Int("discarded_headers", stats.DiscardedHeaders))
	}
	return doc, stats, nil
}

// ParseFile reads and parses one FFE export file.
func ParseFile(path string) (*domain.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}
