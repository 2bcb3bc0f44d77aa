package services

import (
	"go.opentelemetry.io/otel/metric"
)

// ProcessingMetrics are the business metrics of the mirroring pipeline.
type ProcessingMetrics struct {
	WorkbooksProcessed  metric.Int64Counter
	RowsProcessed       metric.Int64Counter
	RowsMirrored        metric.Int64Counter
	ConversionsDegraded metric.Int64Counter
	ProcessingDuration  metric.Float64Histogram
}

// NewProcessingMetrics registers the pipeline metrics on the meter.
func NewProcessingMetrics(meter metric.Meter) (*ProcessingMetrics, error) {
	workbooks, err := meter.Int64Counter(
		"mirror_workbooks_processed_total",
		metric.WithDescription("Total number of workbooks processed"),
	)
	if err != nil {
		return nil, err
	}

	rows, err := meter.Int64Counter(
		"mirror_rows_processed_total",
		metric.WithDescription("Total number of input rows processed"),
	)
	if err != nil {
		return nil, err
	}

	mirrored, err := meter.Int64Counter(
		"mirror_rows_mirrored_total",
		metric.WithDescription("Total number of mirrored rows produced"),
	)
	if err != nil {
		return nil, err
	}

	degraded, err := meter.Int64Counter(
		"mirror_conversions_degraded_total",
		metric.WithDescription("Total number of workbooks with degraded INR conversion"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"mirror_processing_duration_seconds",
		metric.WithDescription("Workbook processing duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &ProcessingMetrics{
		WorkbooksProcessed:  workbooks,
		RowsProcessed:       rows,
		RowsMirrored:        mirrored,
		ConversionsDegraded: degraded,
		ProcessingDuration:  duration,
	}, nil
}
