package daemon

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/1broseidon/stacker/internal/platform"
	"github.com/1broseidon/stacker/internal/wm"
)

// nopDisplay accepts every request.
type nopDisplay struct{}

func (nopDisplay) Map(platform.WindowID) error                      { return nil }
func (nopDisplay) Unmap(platform.WindowID) error                    { return nil }
func (nopDisplay) Configure(platform.WindowID, platform.Rect) error { return nil }
func (nopDisplay) Restack(int, []platform.WindowID) error           { return nil }
func (nopDisplay) SetInputFocus(platform.WindowID) error            { return nil }
func (nopDisplay) Unfocus(platform.WindowID) error                  { return nil }
func (nopDisplay) Close(platform.WindowID) error                    { return nil }

// panicDisplay panics on Close.
type panicDisplay struct{ nopDisplay }

func (panicDisplay) Close(platform.WindowID) error { panic("boom") }

func startLoop(t *testing.T, display wm.Display) *Loop {
	t.Helper()
	d := wm.NewDispatcher(display, wm.Options{WorkArea: platform.Rect{Width: 800, Height: 600}})
	loop := NewLoop(d, LoopConfig{Verify: true})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = loop.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return loop
}

func TestLoop_PostThenSnapshotSeesEvents(t *testing.T) {
	loop := startLoop(t, nopDisplay{})
	for _, id := range []platform.WindowID{1, 2, 3} {
		loop.Post(wm.WindowAppeared{ID: id, Geometry: platform.Rect{Width: 10, Height: 10}})
	}

	snap, err := loop.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap.Windows) != 3 || snap.Focused != 3 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestLoop_ExecReturnsDispatcherError(t *testing.T) {
	loop := startLoop(t, nopDisplay{})
	err := loop.Exec(context.Background(), wm.SwitchWorkspace{Index: 42})
	if !errors.Is(err, wm.ErrInvalidWorkspace) {
		t.Fatalf("expected ErrInvalidWorkspace, got %v", err)
	}
	if err := loop.Exec(context.Background(), wm.SwitchWorkspace{Index: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap, _ := loop.Snapshot(context.Background())
	if snap.ActiveWorkspace != 2 {
		t.Fatalf("expected workspace 2, got %d", snap.ActiveWorkspace)
	}
}

func TestLoop_RecoversFromPanic(t *testing.T) {
	loop := startLoop(t, panicDisplay{})
	loop.Post(wm.WindowAppeared{ID: 1, Geometry: platform.Rect{Width: 10, Height: 10}})

	if err := loop.Exec(context.Background(), wm.Close{ID: 1}); err == nil {
		t.Fatalf("expected error from panicking event")
	}
	if _, err := loop.Snapshot(context.Background()); err != nil {
		t.Fatalf("loop should still serve requests: %v", err)
	}
}

func TestLoop_StoppedLoopRejectsRequests(t *testing.T) {
	d := wm.NewDispatcher(nopDisplay{}, wm.Options{})
	loop := NewLoop(d, LoopConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = loop.Run(ctx)

	if _, err := loop.Snapshot(context.Background()); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
	loop.Post(wm.CycleNext{}) // must not block
}

func TestLoop_PublishesToSubscribersAndHooks(t *testing.T) {
	d := wm.NewDispatcher(nopDisplay{}, wm.Options{})
	loop := NewLoop(d, LoopConfig{})

	var mu sync.Mutex
	var hookCalls int
	loop.States().OnState(func(wm.Snapshot) {
		mu.Lock()
		hookCalls++
		mu.Unlock()
	})
	updates, cancelSub := loop.States().Subscribe()
	defer cancelSub()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = loop.Run(ctx) }()

	loop.Post(wm.WindowAppeared{ID: 7, Geometry: platform.Rect{Width: 10, Height: 10}})

	deadline := time.After(2 * time.Second)
	for {
		select {
		case snap := <-updates:
			if len(snap.Windows) == 1 {
				mu.Lock()
				calls := hookCalls
				mu.Unlock()
				if calls == 0 {
					t.Fatalf("expected hook to be called")
				}
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for snapshot with window 7")
		}
	}
}
