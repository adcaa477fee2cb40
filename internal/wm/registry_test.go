package wm

import (
	"errors"
	"slices"
	"testing"

	"github.com/1broseidon/stacker/internal/platform"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	w, err := r.Register(5, platform.Rect{X: 1, Y: 2, Width: 0, Height: -3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Geometry.Width != 1 || w.Geometry.Height != 1 {
		t.Fatalf("expected clamped geometry, got %+v", w.Geometry)
	}

	if _, err := r.Register(5, platform.Rect{Width: 10, Height: 10}); !errors.Is(err, ErrDuplicateHandle) {
		t.Fatalf("expected ErrDuplicateHandle, got %v", err)
	}
	if _, err := r.Register(platform.NoWindow, platform.Rect{}); err == nil {
		t.Fatalf("expected error for zero handle")
	}
	if _, err := r.Get(6); !errors.Is(err, ErrUnknownHandle) {
		t.Fatalf("expected ErrUnknownHandle, got %v", err)
	}
}

func TestRegistry_GetReturnsCopy(t *testing.T) {
	r := NewRegistry()
	_, _ = r.Register(1, platform.Rect{Width: 10, Height: 10})
	w, _ := r.Get(1)
	w.Title = "changed"
	if got, _ := r.Get(1); got.Title != "" {
		t.Fatalf("registry record modified through snapshot: %q", got.Title)
	}
}

func TestRegistry_SettersOnUnknownHandle(t *testing.T) {
	r := NewRegistry()
	checks := map[string]error{
		"geometry":   r.SetGeometry(9, platform.Rect{}),
		"title":      r.SetTitle(9, "x"),
		"mapped":     r.SetMapped(9, true),
		"workspace":  r.SetWorkspace(9, 1),
		"maximized":  r.SetMaximized(9, true, platform.Rect{}),
		"unregister": r.Unregister(9),
	}
	for name, err := range checks {
		if !errors.Is(err, ErrUnknownHandle) {
			t.Fatalf("%s: expected ErrUnknownHandle, got %v", name, err)
		}
	}
}

func TestRegistry_SetWorkspaceValidates(t *testing.T) {
	r := NewRegistry()
	_, _ = r.Register(1, platform.Rect{Width: 10, Height: 10})
	if err := r.SetWorkspace(1, NumWorkspaces); !errors.Is(err, ErrInvalidWorkspace) {
		t.Fatalf("expected ErrInvalidWorkspace, got %v", err)
	}
	if err := r.SetWorkspace(1, 8); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRegistry_IDsSorted(t *testing.T) {
	r := NewRegistry()
	for _, id := range ids(30, 10, 20) {
		_, _ = r.Register(id, platform.Rect{Width: 1, Height: 1})
	}
	if got := r.IDs(); !slices.Equal(got, ids(10, 20, 30)) {
		t.Fatalf("expected sorted ids, got %v", got)
	}
	_ = r.Unregister(20)
	if r.Len() != 2 || r.Has(20) {
		t.Fatalf("unregister did not remove the record")
	}
}
