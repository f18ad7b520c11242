package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"emcli/internal/catalog"
	"emcli/internal/config"
	"emcli/internal/exporter"
	"emcli/internal/ffe"
	"emcli/internal/files"
	"emcli/internal/filetypes"
	"emcli/internal/infrastructure"
)

func main() {
	inDir := flag.String("in", "", "input directory for export files (defaults to configured input dir)")
	outDir := flag.String("out", "", "output directory for documents (defaults to configured output dir)")
	formats := flag.String("format", "json", "comma-separated output formats: json, csv, xlsx")
	fullRework := flag.Bool("full", false, "force full rework of all files")
	workers := flag.Int("workers", 4, "number of parallel conversions")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	if *inDir == "" {
		*inDir = cfg.Paths.InputDir
	}
	if *outDir == "" {
		*outDir = cfg.Paths.OutputDir
	}
	if err := cfg.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	wanted, err := parseFormats(*formats)
	if err != nil {
		logger.Error("Invalid format flag", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Starting export file conversion",
		slog.String("input_dir", *inDir),
		slog.String("output_dir", *outDir),
		slog.String("formats", *formats),
		slog.Bool("full_rework", *fullRework))

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		logger.Error("Error creating output directory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cat, err := catalog.Open(cfg.Paths.CatalogFile)
	if err != nil {
		logger.Error("Failed to open conversion catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cat.Close()

	discovery := files.NewDiscovery("")
	exports, err := discovery.FindExportFiles(*inDir)
	if err != nil {
		logger.Error("Failed to read input directory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Export files discovered", slog.Int("count", len(exports)))
	fmt.Printf("Found %d export files\n", len(exports))

	if len(exports) == 0 {
		logger.Warn("No export files found in input directory",
			slog.String("input_dir", *inDir))
		fmt.Println("Conversion complete: 0 files")
		return
	}

	ctx := context.Background()

	// Smart update: skip files whose recorded conversion is still current.
	var toProcess []files.FileInfo
	if *fullRework {
		toProcess = exports
	} else {
		for _, f := range exports {
			current, err := cat.IsCurrent(ctx, f.Path, f.ModTime)
			if err != nil {
				logger.Warn("Catalog lookup failed, reprocessing",
					slog.String("file", f.Name),
					slog.String("error", err.Error()))
			}
			if current {
				logger.Debug("Skipping up-to-date file", slog.String("file", f.Name))
				continue
			}
			toProcess = append(toProcess, f)
		}
	}
	logger.Info("Smart update status", slog.Int("files_to_process", len(toProcess)))

	var converted, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(*workers)
	for _, f := range toProcess {
		g.Go(func() error {
			if err := convertOne(gctx, f, *outDir, wanted, cat, logger); err != nil {
				failed.Add(1)
				logger.Error("Conversion failed",
					slog.String("file", f.Name),
					slog.String("error", err.Error()))
				return nil
			}
			converted.Add(1)
			return nil
		})
	}
	// Workers report per-file failures through the counter and never return
	// an error, so Wait only fails if that contract is broken.
	if err := g.Wait(); err != nil {
		logger.Error("Conversion aborted", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Conversion complete",
		slog.Int64("converted", converted.Load()),
		slog.Int64("failed", failed.Load()))
	fmt.Printf("Conversion complete: %d files (%d failed)\n", converted.Load(), failed.Load())

	if failed.Load() > 0 {
		os.Exit(1)
	}
}

// convertOne parses a single export file and writes the requested outputs.
func convertOne(ctx context.Context, f files.FileInfo, outDir string, formats map[string]bool, cat *catalog.Catalog, logger *slog.Logger) error {
	filetype, err := filetypes.DetectFiletype(f.Name, "")
	if err != nil {
		return err
	}
	datatype, _ := filetypes.DetectDatatype(f.Name, "")

	in, err := os.Open(f.Path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", f.Path, err)
	}
	doc, stats, err := ffe.ParseWithStats(in)
	in.Close()
	if err != nil {
		return err
	}
	doc.ID = uuid.NewString()
	doc.Type = datatype

	logger.Info("File converted",
		slog.String("file", f.Name),
		slog.String("filetype", filetype),
		slog.Int("datasets", stats.Datasets),
		slog.Int("dropped_rows", stats.DroppedRows))

	stem := strings.TrimSuffix(f.Name, filepath.Ext(f.Name))
	jsonPath := filepath.Join(outDir, stem+".json")
	if err := exporter.SaveDocument(jsonPath, doc); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}

	if formats["csv"] {
		for i, ds := range doc.Data {
			csvPath := filepath.Join(outDir, fmt.Sprintf("%s_ds%d.csv", stem, i+1))
			if err := exporter.WriteDatasetCSV(csvPath, ds, exporter.CSVOptions{}); err != nil {
				return fmt.Errorf("writing CSV: %w", err)
			}
		}
	}
	if formats["xlsx"] {
		xlsxPath := filepath.Join(outDir, stem+".xlsx")
		if err := exporter.WriteDocumentXLSX(xlsxPath, doc); err != nil {
			return fmt.Errorf("writing XLSX: %w", err)
		}
	}

	_, err = cat.Record(ctx, catalog.Conversion{
		ID:         doc.ID,
		SourcePath: f.Path,
		SourceMod:  f.ModTime,
		Filetype:   filetype,
		Datatype:   datatype,
		OutputPath: jsonPath,
		Datasets:   stats.Datasets,
	})
	if err != nil {
		return fmt.Errorf("recording conversion: %w", err)
	}
	return nil
}

func parseFormats(s string) (map[string]bool, error) {
	wanted := map[string]bool{}
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		switch f {
		case "json", "csv", "xlsx":
			wanted[f] = true
		default:
			return nil, fmt.Errorf("unknown format %q", f)
		}
	}
	if len(wanted) == 0 {
		return nil, fmt.Errorf("no output formats requested")
	}
	return wanted, nil
}
