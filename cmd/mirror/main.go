package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Vikash02022000/FinSight/internal/config"
	"github.com/Vikash02022000/FinSight/internal/exporter"
	"github.com/Vikash02022000/FinSight/internal/infrastructure"
	"github.com/Vikash02022000/FinSight/internal/services"
	"github.com/Vikash02022000/FinSight/internal/validation"
	"github.com/Vikash02022000/FinSight/pkg/contracts"
)

func main() {
	inPath := flag.String("in", "", "input .xlsx workbook, or a directory of workbooks")
	outPath := flag.String("out", "", "output file (single input) or directory (batch input)")
	format := flag.String("format", "xlsx", "output format for single-file mode: xlsx or csv")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetVersionString())
		return
	}

	if *inPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: mirror -in trades.xlsx -out mirrored.xlsx [-format xlsx|csv]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config, using defaults", "error", err)
		defaults := config.Defaults()
		cfg = &defaults
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	ctx := context.Background()
	service := services.NewMirrorService(logger, nil, 0)
	validator := validation.NewFileValidator(logger)

	info, err := os.Stat(*inPath)
	if err != nil {
		logger.Error("cannot read input path", slog.String("path", *inPath), slog.String("error", err.Error()))
		os.Exit(1)
	}

	if info.IsDir() {
		if err := runBatch(ctx, service, validator, *inPath, *outPath, cfg.Processing.Workers); err != nil {
			logger.Error("batch processing failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	if err := runSingle(ctx, service, validator, logger, *inPath, *outPath, *format); err != nil {
		logger.Error("processing failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func runBatch(ctx context.Context, service *services.MirrorService, validator *validation.FileValidator, inDir, outDir string, workers int) error {
	if _, err := validator.ValidateInputDirectory(inDir); err != nil {
		return err
	}
	if err := validator.ValidateOutputDirectory(outDir); err != nil {
		return err
	}
	return service.ProcessDirectory(ctx, inDir, outDir, workers)
}

func runSingle(ctx context.Context, service *services.MirrorService, validator *validation.FileValidator, logger *slog.Logger, in, out, format string) error {
	if err := validator.ValidateInputFile(in); err != nil {
		return err
	}
	if err := validator.ValidateOutputDirectory(filepath.Dir(out)); err != nil {
		return err
	}

	switch strings.ToLower(format) {
	case "xlsx":
		result, err := service.ProcessFile(ctx, in, out)
		if err != nil {
			return err
		}
		logWarnings(logger, result)
	case "csv":
		f, err := os.Open(in)
		if err != nil {
			return err
		}
		defer f.Close()
		result, err := service.Process(ctx, f)
		if err != nil {
			return err
		}
		logWarnings(logger, result)
		writer := exporter.NewCSVWriter(logger)
		if err := writer.WriteSimpleCSV(out, result.Table.Headers, result.Table.Rows); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	return nil
}

func logWarnings(logger *slog.Logger, result *services.MirrorResult) {
	for _, w := range result.Warnings {
		logger.Warn(w.Message, slog.String("code", string(w.Code)))
	}
	logger.Info("done",
		slog.Int("rows_in", result.RowsIn),
		slog.Int("rows_mirrored", result.RowsMirrored),
		slog.Int("rows_out", result.RowsOut))
}
