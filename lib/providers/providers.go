package providers

import (
	"context"
	"fmt"
	"log/slog"

	gootel "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/submitty/dockerdash/cmd/api/config"
	"github.com/submitty/dockerdash/lib/collector"
	"github.com/submitty/dockerdash/lib/logger"
	"github.com/submitty/dockerdash/lib/middleware"
	"github.com/submitty/dockerdash/lib/otel"
	"github.com/submitty/dockerdash/lib/snapshot"
)

// ProvideContext provides a base context
func ProvideContext() context.Context {
	return context.Background()
}

// ProvideConfig provides the application configuration
func ProvideConfig() *config.Config {
	return config.Load()
}

// ProvideOtel initializes telemetry; the cleanup flushes exporters.
func ProvideOtel(ctx context.Context, cfg *config.Config) (*otel.Provider, func(), error) {
	p, err := otel.Init(ctx, otel.Config{
		Enabled:     cfg.OtelEnabled,
		Endpoint:    cfg.OtelEndpoint,
		ServiceName: cfg.OtelServiceName,
		Insecure:    cfg.OtelInsecure,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init otel: %w", err)
	}
	return p, func() { _ = p.Shutdown(context.Background()) }, nil
}

// ProvideLogger provides the API logger, bridged to OTel when enabled
func ProvideLogger(p *otel.Provider) *slog.Logger {
	log := middleware.NewAccessLogger(p.LogHandler)
	slog.SetDefault(log)
	return log
}

// ProvideHTTPMetrics provides the HTTP request instruments
func ProvideHTTPMetrics(p *otel.Provider) (*middleware.HTTPMetrics, error) {
	return middleware.NewHTTPMetrics(p.Meter)
}

// ProvideInventoryMetrics provides the reconciliation instruments
func ProvideInventoryMetrics(p *otel.Provider) (*otel.InventoryMetrics, error) {
	return otel.NewInventoryMetrics(p.Meter)
}

// ProvideTracer provides the tracer used around reconciliations
func ProvideTracer(cfg *config.Config) trace.Tracer {
	return gootel.Tracer(cfg.OtelServiceName)
}

// ProvideSnapshotSource provides the file-backed snapshot source
func ProvideSnapshotSource(cfg *config.Config, p *otel.Provider) snapshot.Source {
	src := snapshot.NewFileSource(cfg.ConfigDir, cfg.DockerDataFile, cfg.ContainersFile, cfg.WorkersFile)
	src.Logger = logger.NewSubsystemLogger(logger.SubsystemSnapshot, logger.NewConfig(), p.LogHandler)
	return src
}

// ProvideCollector provides the docker data collector; the cleanup closes the engine client.
func ProvideCollector(cfg *config.Config, p *otel.Provider) (*collector.Collector, func(), error) {
	cli, err := collector.NewDockerClient()
	if err != nil {
		return nil, nil, fmt.Errorf("create docker client: %w", err)
	}
	log := logger.NewSubsystemLogger(logger.SubsystemCollector, logger.NewConfig(), p.LogHandler)
	c := collector.New(cli, cfg.ConfigDir, cfg.DockerDataFile, cfg.CollectInterval, log)
	return c, func() { _ = cli.Close() }, nil
}
