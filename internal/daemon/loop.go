package daemon

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/1broseidon/stacker/internal/wm"
)

// ErrStopped is returned when a request reaches a loop that is no longer
// running.
var ErrStopped = errors.New("event loop stopped")

const defaultQueueSize = 256

// LoopConfig holds configuration for the event loop.
type LoopConfig struct {
	QueueSize int
	// Verify checks the core invariants after every event and logs
	// violations. Meant for debugging.
	Verify bool
	Logger *zerolog.Logger
}

type request struct {
	event wm.Event
	query func(*wm.Dispatcher)
	done  chan error
}

// Loop owns the Dispatcher. Every event and every state read runs on the
// goroutine that called Run, one at a time, in the order received.
type Loop struct {
	dispatcher *wm.Dispatcher
	requests   chan request
	stopped    chan struct{}
	started    time.Time
	verify     bool
	states     *StateSynchronizer
	logger     zerolog.Logger
}

// NewLoop creates an event loop around d. Run must be called to start it.
func NewLoop(d *wm.Dispatcher, cfg LoopConfig) *Loop {
	size := cfg.QueueSize
	if size <= 0 {
		size = defaultQueueSize
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	return &Loop{
		dispatcher: d,
		requests:   make(chan request, size),
		stopped:    make(chan struct{}),
		started:    time.Now(),
		verify:     cfg.Verify,
		states:     NewStateSynchronizer(),
		logger:     logger,
	}
}

// States returns the snapshot fan-out fed after every state-changing event.
func (l *Loop) States() *StateSynchronizer {
	return l.states
}

// Uptime reports how long ago the loop was created.
func (l *Loop) Uptime() time.Duration {
	return time.Since(l.started)
}

// Post queues ev without waiting for it to be handled. Events posted from
// one goroutine are handled in order. Post drops the event once the loop
// has stopped.
func (l *Loop) Post(ev wm.Event) {
	select {
	case l.requests <- request{event: ev}:
	case <-l.stopped:
	}
}

// Exec queues ev and waits for the dispatcher's result.
func (l *Loop) Exec(ctx context.Context, ev wm.Event) error {
	return l.wait(ctx, request{event: ev, done: make(chan error, 1)})
}

// Do runs fn on the loop goroutine with exclusive access to the dispatcher.
func (l *Loop) Do(ctx context.Context, fn func(*wm.Dispatcher)) error {
	return l.wait(ctx, request{query: fn, done: make(chan error, 1)})
}

// Snapshot returns a copy of the current state.
func (l *Loop) Snapshot(ctx context.Context) (wm.Snapshot, error) {
	var snap wm.Snapshot
	err := l.Do(ctx, func(d *wm.Dispatcher) { snap = d.Snapshot() })
	return snap, err
}

func (l *Loop) wait(ctx context.Context, req request) error {
	select {
	case l.requests <- req:
	case <-l.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-req.done:
		return err
	case <-l.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run handles requests until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.stopped)

	l.logger.Info().Msg("event loop started")
	l.states.Publish(l.dispatcher.Snapshot())

	for {
		select {
		case <-ctx.Done():
			l.logger.Info().Msg("event loop stopped")
			return nil
		case req := <-l.requests:
			l.handle(req)
		}
	}
}

func (l *Loop) handle(req request) {
	err := l.apply(req)
	if req.done != nil {
		req.done <- err
	}
	if req.event != nil && changesState(req.event) {
		l.states.Publish(l.dispatcher.Snapshot())
	}
}

// apply runs one request. A panic is contained to the request that caused
// it so the loop stays alive.
func (l *Loop) apply(req request) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while handling %T: %v", req.event, r)
			l.logger.Error().Interface("panic", r).Type("event", req.event).Msg("event loop panic recovered")
		}
	}()

	if req.query != nil {
		req.query(l.dispatcher)
		return nil
	}
	err = l.dispatcher.Handle(req.event)
	if l.verify {
		if verr := l.dispatcher.Verify(); verr != nil {
			l.logger.Error().Err(verr).Type("event", req.event).Msg("invariant violated")
		}
	}
	return err
}

// changesState filters out the high-frequency pointer motion events, whose
// geometry updates reach subscribers with the next release.
func changesState(ev wm.Event) bool {
	switch ev.(type) {
	case wm.PointerMotion:
		return false
	default:
		return true
	}
}
