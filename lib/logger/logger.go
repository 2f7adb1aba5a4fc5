// Package logger provides subsystem-scoped slog loggers and carries the
// request logger through context.
package logger

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
)

// Subsystem names a component for per-subsystem log levels.
type Subsystem string

const (
	SubsystemAPI       Subsystem = "API"
	SubsystemSnapshot  Subsystem = "SNAPSHOT"
	SubsystemCollector Subsystem = "COLLECTOR"
)

// Config holds the default level and per-subsystem overrides.
type Config struct {
	DefaultLevel    slog.Level
	SubsystemLevels map[Subsystem]slog.Level
}

// NewConfig reads LOG_LEVEL and LOG_LEVEL_<SUBSYSTEM> from the environment.
func NewConfig() Config {
	cfg := Config{
		DefaultLevel:    parseLevel(os.Getenv("LOG_LEVEL"), slog.LevelInfo),
		SubsystemLevels: make(map[Subsystem]slog.Level),
	}
	for _, s := range []Subsystem{SubsystemAPI, SubsystemSnapshot, SubsystemCollector} {
		if v := os.Getenv("LOG_LEVEL_" + string(s)); v != "" {
			cfg.SubsystemLevels[s] = parseLevel(v, cfg.DefaultLevel)
		}
	}
	return cfg
}

// LevelFor returns the effective level for a subsystem.
func (c Config) LevelFor(s Subsystem) slog.Level {
	if lvl, ok := c.SubsystemLevels[s]; ok {
		return lvl
	}
	return c.DefaultLevel
}

func parseLevel(s string, fallback slog.Level) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return fallback
	}
	return lvl
}

// NewSubsystemLogger creates a JSON logger on stdout tagged with the
// subsystem. If extra is non-nil, records are also sent to it (e.g. an
// OTel log bridge).
func NewSubsystemLogger(s Subsystem, cfg Config, extra slog.Handler) *slog.Logger {
	var h slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LevelFor(s),
	})
	if extra != nil {
		h = &fanoutHandler{handlers: []slog.Handler{h, extra}}
	}
	return slog.New(h).With("subsystem", strings.ToLower(string(s)))
}

type ctxKey struct{}

// AddToContext returns a context carrying log.
func AddToContext(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return slog.Default()
}

// fanoutHandler duplicates records to several handlers.
type fanoutHandler struct {
	handlers []slog.Handler
}

func (f *fanoutHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	for _, h := range f.handlers {
		if h.Enabled(ctx, lvl) {
			return true
		}
	}
	return false
}

func (f *fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f.handlers {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (f *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	hs := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		hs[i] = h.WithAttrs(attrs)
	}
	return &fanoutHandler{handlers: hs}
}

func (f *fanoutHandler) WithGroup(name string) slog.Handler {
	hs := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		hs[i] = h.WithGroup(name)
	}
	return &fanoutHandler{handlers: hs}
}
