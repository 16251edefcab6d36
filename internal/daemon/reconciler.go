// Package daemon holds background maintenance for the slate daemon.
package daemon

import (
	"context"
	"log/slog"
	"time"
)

// Scanner performs one drift-correction pass against the host,
// reporting how many components were adopted and how many pruned.
type Scanner interface {
	Reconcile() (adopted, pruned int, err error)
}

// Config holds configuration for the reconciler.
type Config struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Reconciler periodically checks for drift between the board and the
// host's live windows and corrects it.
type Reconciler struct {
	interval time.Duration
	scanner  Scanner
	logger   *slog.Logger
}

// NewReconciler creates a reconciler around the given scanner.
func NewReconciler(cfg Config, scanner Scanner) *Reconciler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}

	return &Reconciler{
		interval: interval,
		scanner:  scanner,
		logger:   cfg.Logger,
	}
}

// Run starts the reconciliation loop. Blocks until context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("reconciler started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciler stopped")
			return
		case <-ticker.C:
			r.reconcile()
		}
	}
}

// reconcile performs a single reconciliation pass.
func (r *Reconciler) reconcile() {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("reconciler panic recovered", "error", err)
		}
	}()

	adopted, pruned, err := r.scanner.Reconcile()
	if err != nil {
		r.logger.Error("reconciler: scan failed", "error", err)
		return
	}
	if adopted > 0 || pruned > 0 {
		r.logger.Info("reconciler: corrected drift",
			"adopted", adopted,
			"pruned", pruned)
	}
}

// ReconcileNow triggers an immediate reconciliation pass.
func (r *Reconciler) ReconcileNow() {
	r.reconcile()
}
