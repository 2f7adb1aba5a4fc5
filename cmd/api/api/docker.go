package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nrednav/cuid2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/submitty/dockerdash/lib/inventory"
	"github.com/submitty/dockerdash/lib/logger"
)

// ErrWorkerNotFound is returned when the requested worker is not in the roster
var ErrWorkerNotFound = errors.New("worker not found")

// GetDocker returns the reconciled dashboard view.
func (s *ApiService) GetDocker(w http.ResponseWriter, r *http.Request) {
	view, err := s.reconcile(r.Context())
	if err != nil {
		s.writeReconcileError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

// GetWorker returns the view of a single worker machine.
func (s *ApiService) GetWorker(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	view, err := s.reconcile(r.Context())
	if err != nil {
		s.writeReconcileError(w, r, err)
		return
	}

	worker, ok := view.Worker(name)
	if !ok {
		writeError(w, r, http.StatusNotFound, "not_found", fmt.Errorf("%w: %s", ErrWorkerNotFound, name))
		return
	}
	writeJSON(w, r, http.StatusOK, worker)
}

// reconcile loads the current snapshot and reconciles it.
func (s *ApiService) reconcile(ctx context.Context) (*inventory.View, error) {
	ctx, span := s.Tracer.Start(ctx, "inventory.reconcile")
	defer span.End()

	id := cuid2.Generate()
	log := logger.FromContext(ctx).With("reconcile_id", id)
	start := time.Now()

	view, err := s.load(ctx)

	if s.Metrics != nil {
		s.Metrics.RecordReconcile(ctx, view, time.Since(start))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	for _, warning := range view.Warnings {
		log.WarnContext(ctx, "inventory problem",
			"kind", warning.Kind.Error(),
			"identifier", warning.Identifier,
			"detail", warning.Detail)
	}

	span.SetAttributes(
		attribute.Int("inventory.found", len(view.AutogradingContainers.Found)),
		attribute.Int("inventory.missing", len(view.AutogradingContainers.NotFound)),
		attribute.Int("inventory.workers", len(view.WorkerMachines)),
	)
	log.InfoContext(ctx, "reconciled docker inventory",
		"found", len(view.AutogradingContainers.Found),
		"missing", len(view.AutogradingContainers.NotFound),
		"workers", len(view.WorkerMachines),
		"warnings", len(view.Warnings),
		"duration", time.Since(start))
	return view, nil
}

func (s *ApiService) load(ctx context.Context) (*inventory.View, error) {
	snap, err := s.Source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return inventory.Reconcile(snap)
}

func (s *ApiService) writeReconcileError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, inventory.ErrIncompleteSnapshot) {
		writeError(w, r, http.StatusServiceUnavailable, "incomplete_snapshot", err)
		return
	}
	writeError(w, r, http.StatusInternalServerError, "error", err)
}
