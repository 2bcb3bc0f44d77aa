// Package services orchestrates the mirroring pipeline: read a workbook,
// resolve its headers, run the mirror engine and hand the result back to the
// transport or CLI layer.
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Vikash02022000/FinSight/internal/columns"
	apperrors "github.com/Vikash02022000/FinSight/internal/errors"
	"github.com/Vikash02022000/FinSight/internal/mirror"
	"github.com/Vikash02022000/FinSight/internal/spreadsheet"
	"github.com/Vikash02022000/FinSight/pkg/contracts/domain"
)

// MirrorService runs the full transformation for one workbook per call. It
// holds no per-invocation state, so a single instance serves concurrent
// requests.
type MirrorService struct {
	logger      *slog.Logger
	engine      *mirror.Engine
	metrics     *ProcessingMetrics
	previewRows int
}

// NewMirrorService creates the service. metrics may be nil when
// observability is disabled (CLI runs).
func NewMirrorService(logger *slog.Logger, metrics *ProcessingMetrics, previewRows int) *MirrorService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MirrorService{
		logger:      logger.With(slog.String("component", "mirror_service")),
		engine:      mirror.NewEngine(logger),
		metrics:     metrics,
		previewRows: previewRows,
	}
}

// MirrorResult is the caller-visible outcome of one transformation.
type MirrorResult struct {
	Table        domain.Table      `json:"-"`
	Mapping      map[string]string `json:"detected_columns"`
	Warnings     []domain.Warning  `json:"warnings"`
	RowsIn       int               `json:"rows_in"`
	RowsOut      int               `json:"rows_out"`
	RowsMirrored int               `json:"rows_mirrored"`
	Preview      [][]string        `json:"preview,omitempty"`
}

// Process reads a workbook from r, resolves its columns and mirrors every
// non-INR row. Fatal errors (unreadable input, missing required columns)
// return no partial output; everything else degrades into warnings on the
// result. An unexpected panic inside the transformation is converted into an
// internal error instead of crashing the host.
func (s *MirrorService) Process(ctx context.Context, r io.Reader) (*MirrorResult, error) {
	table, err := spreadsheet.Read(r)
	if err != nil {
		return nil, err
	}
	return s.processTable(ctx, table)
}

// ProcessFile mirrors the workbook at inPath and writes the combined table
// to outPath.
func (s *MirrorService) ProcessFile(ctx context.Context, inPath, outPath string) (*MirrorResult, error) {
	table, err := spreadsheet.ReadFile(inPath)
	if err != nil {
		return nil, err
	}
	result, err := s.processTable(ctx, table)
	if err != nil {
		return nil, err
	}
	if err := spreadsheet.WriteFile(result.Table, outPath); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "workbook mirrored",
		slog.String("input", inPath),
		slog.String("output", outPath),
		slog.Int("rows_in", result.RowsIn),
		slog.Int("rows_out", result.RowsOut))
	return result, nil
}

// ProcessDirectory mirrors every .xlsx workbook in inDir concurrently,
// writing each result into outDir with a _mirrored suffix. Safe because each
// transformation is independent and pure.
func (s *MirrorService) ProcessDirectory(ctx context.Context, inDir, outDir string, workers int) error {
	matches, err := filepath.Glob(filepath.Join(inDir, "*.xlsx"))
	if err != nil {
		return apperrors.NewStorageError("failed to list workbooks", err).WithContext("dir", inDir)
	}
	if len(matches) == 0 {
		s.logger.InfoContext(ctx, "no workbooks to process", slog.String("dir", inDir))
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	for _, in := range matches {
		g.Go(func() error {
			out := filepath.Join(outDir, mirroredName(in))
			_, err := s.ProcessFile(gctx, in, out)
			if err != nil {
				return fmt.Errorf("%s: %w", filepath.Base(in), err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *MirrorService) processTable(ctx context.Context, table domain.Table) (result *MirrorResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = apperrors.NewInternalError("unexpected failure while mirroring the workbook",
				fmt.Errorf("panic: %v", rec))
		}
	}()

	start := time.Now()

	mapping, err := columns.Resolve(table.Headers)
	if err != nil {
		s.logger.WarnContext(ctx, "column resolution failed",
			slog.String("error", err.Error()),
			slog.Any("headers", table.Headers))
		return nil, err
	}
	s.logger.InfoContext(ctx, "columns resolved", slog.Any("mapping", mappingForLog(mapping)))

	mirrored, err := s.engine.Mirror(ctx, table, mapping)
	if err != nil {
		return nil, err
	}

	result = &MirrorResult{
		Table:        mirrored.Table,
		Mapping:      mappingForLog(mapping),
		Warnings:     mirrored.Warnings,
		RowsIn:       table.RowCount(),
		RowsOut:      mirrored.Table.RowCount(),
		RowsMirrored: mirrored.Mirrored,
		Preview:      preview(mirrored.Table, s.previewRows),
	}
	s.record(ctx, result, time.Since(start))
	return result, nil
}

func (s *MirrorService) record(ctx context.Context, res *MirrorResult, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.WorkbooksProcessed.Add(ctx, 1)
	s.metrics.RowsProcessed.Add(ctx, int64(res.RowsIn))
	s.metrics.RowsMirrored.Add(ctx, int64(res.RowsMirrored))
	for _, w := range res.Warnings {
		if w.Code == domain.WarnConversionDegraded {
			s.metrics.ConversionsDegraded.Add(ctx, 1)
		}
	}
	s.metrics.ProcessingDuration.Record(ctx, elapsed.Seconds())
}

func mappingForLog(m columns.Mapping) map[string]string {
	out := make(map[string]string, len(m))
	for role, col := range m {
		out[string(role)] = col
	}
	return out
}

func preview(t domain.Table, n int) [][]string {
	if n <= 0 || t.RowCount() == 0 {
		return nil
	}
	if n > t.RowCount() {
		n = t.RowCount()
	}
	out := make([][]string, n)
	for i := 0; i < n; i++ {
		out[i] = t.CloneRow(i)
	}
	return out
}

func mirroredName(inPath string) string {
	base := filepath.Base(inPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + "_mirrored.xlsx"
}
