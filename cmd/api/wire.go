//go:build wireinject

package main

import (
	"context"
	"log/slog"

	"github.com/google/wire"
	"github.com/submitty/dockerdash/cmd/api/api"
	"github.com/submitty/dockerdash/cmd/api/config"
	"github.com/submitty/dockerdash/lib/collector"
	"github.com/submitty/dockerdash/lib/middleware"
	"github.com/submitty/dockerdash/lib/otel"
	"github.com/submitty/dockerdash/lib/providers"
	"github.com/submitty/dockerdash/lib/snapshot"
)

// application struct to hold initialized components
type application struct {
	Ctx         context.Context
	Logger      *slog.Logger
	Config      *config.Config
	Otel        *otel.Provider
	HTTPMetrics *middleware.HTTPMetrics
	Source      snapshot.Source
	Collector   *collector.Collector
	ApiService  *api.ApiService
}

// initializeApp is the injector function
func initializeApp() (*application, func(), error) {
	panic(wire.Build(
		providers.ProvideContext,
		providers.ProvideConfig,
		providers.ProvideOtel,
		providers.ProvideLogger,
		providers.ProvideHTTPMetrics,
		providers.ProvideInventoryMetrics,
		providers.ProvideTracer,
		providers.ProvideSnapshotSource,
		providers.ProvideCollector,
		api.New,
		wire.Struct(new(application), "*"),
	))
}
