package daemon

import (
	"context"
	"errors"
	"testing"

	"github.com/1broseidon/stacker/internal/platform"
	"github.com/1broseidon/stacker/internal/wm"
)

type fakeTarget struct {
	snap   wm.Snapshot
	err    error
	posted []wm.Event
}

func (f *fakeTarget) Snapshot(context.Context) (wm.Snapshot, error) { return f.snap, f.err }
func (f *fakeTarget) Post(ev wm.Event)                               { f.posted = append(f.posted, ev) }

func TestReconciler_ReportsVanishedWindows(t *testing.T) {
	target := &fakeTarget{snap: wm.Snapshot{Windows: []wm.Window{{ID: 1}, {ID: 2}, {ID: 3}}}}
	r := NewReconciler(ReconcilerConfig{}, target, func() ([]platform.WindowID, error) {
		return []platform.WindowID{1, 3, 99}, nil
	})

	if n := r.ReconcileNow(context.Background()); n != 1 {
		t.Fatalf("expected 1 removal, got %d", n)
	}
	if len(target.posted) != 1 || target.posted[0] != (wm.WindowGone{ID: 2}) {
		t.Fatalf("expected WindowGone{2}, got %v", target.posted)
	}
}

func TestReconciler_ListErrorChangesNothing(t *testing.T) {
	target := &fakeTarget{snap: wm.Snapshot{Windows: []wm.Window{{ID: 1}}}}
	r := NewReconciler(ReconcilerConfig{}, target, func() ([]platform.WindowID, error) {
		return nil, errors.New("connection lost")
	})
	if n := r.ReconcileNow(context.Background()); n != 0 || len(target.posted) != 0 {
		t.Fatalf("expected no removals, got %d %v", n, target.posted)
	}
}

func TestReconciler_SnapshotErrorSkipsListing(t *testing.T) {
	target := &fakeTarget{err: ErrStopped}
	listed := false
	r := NewReconciler(ReconcilerConfig{}, target, func() ([]platform.WindowID, error) {
		listed = true
		return nil, nil
	})
	r.ReconcileNow(context.Background())
	if listed {
		t.Fatalf("windows should not be listed without a snapshot")
	}
}

func TestReconciler_RecoversFromPanic(t *testing.T) {
	target := &fakeTarget{snap: wm.Snapshot{Windows: []wm.Window{{ID: 1}}}}
	r := NewReconciler(ReconcilerConfig{}, target, func() ([]platform.WindowID, error) {
		panic("lister exploded")
	})
	r.ReconcileNow(context.Background())
}

func TestReconciler_PostsRecordGeneration(t *testing.T) {
	target := &fakeTarget{snap: wm.Snapshot{Windows: []wm.Window{{ID: 4, Generation: 17}}}}
	r := NewReconciler(ReconcilerConfig{}, target, func() ([]platform.WindowID, error) {
		return nil, nil
	})

	r.ReconcileNow(context.Background())
	want := wm.WindowGone{ID: 4, Generation: 17}
	if len(target.posted) != 1 || target.posted[0] != want {
		t.Fatalf("expected %+v, got %v", want, target.posted)
	}
}
