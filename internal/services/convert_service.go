package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"emcli/internal/catalog"
	"emcli/internal/exporter"
	"emcli/internal/ffe"
	"emcli/internal/filetypes"
	"emcli/internal/infrastructure"
	"emcli/pkg/contracts/domain"
)

// ConvertService turns raw export file content into normalized documents,
// optionally persisting the document JSON and recording the conversion in
// the catalog.
type ConvertService struct {
	catalog   *catalog.Catalog
	outputDir string
	metrics   *infrastructure.ConverterMetrics
	tracer    trace.Tracer
	logger    *slog.Logger
}

// ConvertRequest describes one conversion. Filename is required for
// extension-based detection; Filetype and Datatype override it when set.
type ConvertRequest struct {
	Filename string
	Filetype string
	Datatype string
	Save     bool
	Body     io.Reader
}

// ConvertResult carries the parsed document plus parse statistics. The
// Conversion field is set only when the request asked for persistence.
type ConvertResult struct {
	Document   *domain.Document
	Stats      ffe.Stats
	Filetype   string
	Datatype   string
	Conversion *catalog.Conversion
}

// NewConvertService creates a conversion service. The catalog and metrics
// may be nil; persistence and instrumentation are then skipped.
func NewConvertService(cat *catalog.Catalog, outputDir string, metrics *infrastructure.ConverterMetrics, tracer trace.Tracer, logger *slog.Logger) *ConvertService {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("convert")
	}
	return &ConvertService{
		catalog:   cat,
		outputDir: outputDir,
		metrics:   metrics,
		tracer:    tracer,
		logger:    logger.With(slog.String("service", "convert")),
	}
}

// Convert parses the request body as an export file and returns the
// normalized document.
func (s *ConvertService) Convert(ctx context.Context, req ConvertRequest) (*ConvertResult, error) {
	if strings.TrimSpace(req.Filename) == "" {
		return nil, ErrEmptyFilename
	}

	filetype, err := filetypes.DetectFiletype(req.Filename, req.Filetype)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownExtension, req.Filename)
	}
	datatype, _ := filetypes.DetectDatatype(req.Filename, req.Datatype)

	ctx, span := s.tracer.Start(ctx, "convert.parse",
		trace.WithAttributes(
			attribute.String("filename", req.Filename),
			attribute.String("filetype", filetype),
		))
	defer span.End()

	doc, stats, err := ffe.ParseWithStats(req.Body)
	if err != nil {
		span.RecordError(err)
		s.metrics.RecordParseFailure(ctx, filetype)
		return nil, err
	}
	doc.ID = uuid.NewString()
	doc.Type = datatype

	s.metrics.RecordParse(ctx, filetype, stats.Datasets, stats.DroppedRows)
	s.logger.InfoContext(ctx, "export file converted",
		slog.String("filename", req.Filename),
		slog.String("filetype", filetype),
		slog.Int("datasets", stats.Datasets),
		slog.Int("dropped_rows", stats.DroppedRows),
	)

	result := &ConvertResult{
		Document: doc,
		Stats:    stats,
		Filetype: filetype,
		Datatype: datatype,
	}

	if req.Save {
		conv, err := s.persist(ctx, req.Filename, filetype, datatype, doc, stats)
		if err != nil {
			return nil, err
		}
		result.Conversion = conv
	}
	return result, nil
}

// persist writes the document JSON next to its peers in the output
// directory and records the conversion.
func (s *ConvertService) persist(ctx context.Context, filename, filetype, datatype string, doc *domain.Document, stats ffe.Stats) (*catalog.Conversion, error) {
	if s.catalog == nil {
		return nil, fmt.Errorf("persistence requested but no catalog is configured")
	}

	outPath := filepath.Join(s.outputDir, doc.ID+".json")
	if err := exporter.SaveDocument(outPath, doc); err != nil {
		return nil, fmt.Errorf("saving document: %w", err)
	}

	conv, err := s.catalog.Record(ctx, catalog.Conversion{
		ID:         doc.ID,
		SourcePath: filename,
		SourceMod:  time.Now(),
		Filetype:   filetype,
		Datatype:   datatype,
		OutputPath: outPath,
		Datasets:   stats.Datasets,
	})
	if err != nil {
		return nil, fmt.Errorf("recording conversion: %w", err)
	}
	return &conv, nil
}

// DocumentByID loads a previously persisted document.
func (s *ConvertService) DocumentByID(ctx context.Context, id string) (*domain.Document, error) {
	if s.catalog == nil {
		return nil, ErrConversionNotFound
	}
	conv, ok, err := s.catalog.LookupByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("catalog lookup: %w", err)
	}
	if !ok {
		return nil, ErrConversionNotFound
	}
	doc, err := exporter.LoadDocument(conv.OutputPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrDocumentMissing
		}
		return nil, fmt.Errorf("loading document: %w", err)
	}
	return doc, nil
}

// Conversions lists the recorded conversions, newest first.
func (s *ConvertService) Conversions(ctx context.Context) ([]catalog.Conversion, error) {
	if s.catalog == nil {
		return nil, nil
	}
	return s.catalog.List(ctx)
}
