package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/submitty/dockerdash/lib/inventory"
)

// InventoryMetrics holds metrics for dashboard reconciliations.
type InventoryMetrics struct {
	ReconcileDuration metric.Float64Histogram
	ReconcilesTotal   metric.Int64Counter
	FoundImages       metric.Int64Gauge
	MissingContainers metric.Int64Gauge
	WarningsTotal     metric.Int64Counter
}

// NewInventoryMetrics creates metrics for reconciliations.
func NewInventoryMetrics(meter metric.Meter) (*InventoryMetrics, error) {
	reconcileDuration, err := meter.Float64Histogram(
		"dockerdash_reconcile_duration_seconds",
		metric.WithDescription("Time to load a snapshot and reconcile it"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	reconcilesTotal, err := meter.Int64Counter(
		"dockerdash_reconciles_total",
		metric.WithDescription("Total number of reconciliations by outcome"),
	)
	if err != nil {
		return nil, err
	}

	foundImages, err := meter.Int64Gauge(
		"dockerdash_found_images",
		metric.WithDescription("Configured autograding images present on the host"),
	)
	if err != nil {
		return nil, err
	}

	missingContainers, err := meter.Int64Gauge(
		"dockerdash_missing_containers",
		metric.WithDescription("Configured autograding containers with no matching image"),
	)
	if err != nil {
		return nil, err
	}

	warningsTotal, err := meter.Int64Counter(
		"dockerdash_reconcile_warnings_total",
		metric.WithDescription("Total number of recovered inventory problems by kind"),
	)
	if err != nil {
		return nil, err
	}

	return &InventoryMetrics{
		ReconcileDuration: reconcileDuration,
		ReconcilesTotal:   reconcilesTotal,
		FoundImages:       foundImages,
		MissingContainers: missingContainers,
		WarningsTotal:     warningsTotal,
	}, nil
}

// RecordReconcile records a finished reconciliation. view is nil on failure.
func (m *InventoryMetrics) RecordReconcile(ctx context.Context, view *inventory.View, duration time.Duration) {
	status := "success"
	if view == nil {
		status = "error"
	}
	attrs := metric.WithAttributes(attribute.String("status", status))

	m.ReconcileDuration.Record(ctx, duration.Seconds(), attrs)
	m.ReconcilesTotal.Add(ctx, 1, attrs)

	if view == nil {
		return
	}

	m.FoundImages.Record(ctx, int64(len(view.AutogradingContainers.Found)))
	m.MissingContainers.Record(ctx, int64(len(view.AutogradingContainers.NotFound)))
	for _, w := range view.Warnings {
		m.WarningsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", w.Kind.Error())))
	}
}
