package daemon

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/1broseidon/stacker/internal/platform"
	"github.com/1broseidon/stacker/internal/wm"
)

// WindowLister is a function that returns the IDs of live top-level windows.
type WindowLister func() ([]platform.WindowID, error)

// StateTarget is the part of the event loop the reconciler needs.
type StateTarget interface {
	Snapshot(ctx context.Context) (wm.Snapshot, error)
	Post(ev wm.Event)
}

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	Interval time.Duration
	Logger   *zerolog.Logger
}

// Reconciler periodically checks for windows the core still tracks but the
// display server no longer has, and reports them gone.
type Reconciler struct {
	interval    time.Duration
	target      StateTarget
	listWindows WindowLister
	logger      zerolog.Logger
}

// NewReconciler creates a new reconciler with the given configuration.
func NewReconciler(cfg ReconcilerConfig, target StateTarget, listWindows WindowLister) *Reconciler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &Reconciler{
		interval:    interval,
		target:      target,
		listWindows: listWindows,
		logger:      logger,
	}
}

// Run starts the reconciliation loop. Blocks until context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info().Dur("interval", r.interval).Msg("reconciler started")

	for {
		select {
		case <-ctx.Done():
			r.logger.Info().Msg("reconciler stopped")
			return
		case <-ticker.C:
			r.ReconcileNow(ctx)
		}
	}
}

// ReconcileNow performs a single pass and returns the number of windows
// reported gone.
func (r *Reconciler) ReconcileNow(ctx context.Context) (removed int) {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error().Interface("panic", err).Msg("reconciler panic recovered")
		}
	}()

	// The snapshot is taken before listing so a window created in between
	// is never mistaken for a vanished one.
	snap, err := r.target.Snapshot(ctx)
	if err != nil {
		r.logger.Warn().Err(err).Msg("reconciler: failed to read state")
		return 0
	}
	if len(snap.Windows) == 0 {
		return 0
	}

	live, err := r.listWindows()
	if err != nil {
		r.logger.Error().Err(err).Msg("reconciler: failed to list windows")
		return 0
	}
	alive := make(map[platform.WindowID]bool, len(live))
	for _, id := range live {
		alive[id] = true
	}

	for _, w := range snap.Windows {
		if alive[w.ID] {
			continue
		}
		r.logger.Info().
			Uint32("window", uint32(w.ID)).
			Int("workspace", w.Workspace).
			Str("title", w.Title).
			Msg("reconciler: window vanished")
		r.target.Post(wm.WindowGone{ID: w.ID, Generation: w.Generation})
		removed++
	}
	return removed
}
