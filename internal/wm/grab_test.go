package wm

import (
	"errors"
	"testing"

	"github.com/1broseidon/stacker/internal/platform"
)

func TestGrabController_Transitions(t *testing.T) {
	g := NewGrabController()
	if g.State() != GrabIdle {
		t.Fatalf("expected idle, got %s", g.State())
	}
	if _, _, ok := g.Motion(platform.Point{X: 1, Y: 1}); ok {
		t.Fatalf("motion while idle should not apply")
	}

	geom := platform.Rect{X: 10, Y: 10, Width: 100, Height: 100}
	if err := g.Start(1, GrabResize, platform.Point{X: 50, Y: 50}, geom); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.State() != GrabResizing {
		t.Fatalf("expected resizing, got %s", g.State())
	}
	if err := g.Start(2, GrabMove, platform.Point{}, geom); !errors.Is(err, ErrGrabActive) {
		t.Fatalf("expected ErrGrabActive, got %v", err)
	}

	// Deltas are measured from the start point, not from the last motion.
	g.Motion(platform.Point{X: 60, Y: 60})
	id, r, ok := g.Motion(platform.Point{X: 70, Y: 40})
	if !ok || id != 1 {
		t.Fatalf("expected motion on window 1")
	}
	if r != (platform.Rect{X: 10, Y: 10, Width: 120, Height: 90}) {
		t.Fatalf("unexpected geometry %+v", r)
	}

	if !g.Release() || g.State() != GrabIdle {
		t.Fatalf("release should return to idle")
	}
	if g.Release() {
		t.Fatalf("second release should report false")
	}
}

func TestGrabController_CancelOnlyMatchingWindow(t *testing.T) {
	g := NewGrabController()
	_ = g.Start(3, GrabMove, platform.Point{}, platform.Rect{Width: 1, Height: 1})
	if g.Cancel(4) {
		t.Fatalf("cancel of another window should not end the session")
	}
	if !g.Cancel(3) || g.State() != GrabIdle {
		t.Fatalf("cancel of grabbed window should end the session")
	}
}
