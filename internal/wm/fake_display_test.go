package wm

import (
	"fmt"
	"strings"
	"testing"

	"github.com/1broseidon/stacker/internal/platform"
)

// recordingDisplay records every request as a short string such as
// "map 1" or "restack 0 [1 2 3]".
type recordingDisplay struct {
	calls []string
}

func (r *recordingDisplay) Map(id platform.WindowID) error {
	r.calls = append(r.calls, fmt.Sprintf("map %d", id))
	return nil
}

func (r *recordingDisplay) Unmap(id platform.WindowID) error {
	r.calls = append(r.calls, fmt.Sprintf("unmap %d", id))
	return nil
}

func (r *recordingDisplay) Configure(id platform.WindowID, rect platform.Rect) error {
	r.calls = append(r.calls, fmt.Sprintf("configure %d %d,%d %dx%d", id, rect.X, rect.Y, rect.Width, rect.Height))
	return nil
}

func (r *recordingDisplay) Restack(ws int, ids []platform.WindowID) error {
	r.calls = append(r.calls, fmt.Sprintf("restack %d %v", ws, ids))
	return nil
}

func (r *recordingDisplay) SetInputFocus(id platform.WindowID) error {
	r.calls = append(r.calls, fmt.Sprintf("focus %d", id))
	return nil
}

func (r *recordingDisplay) Unfocus(id platform.WindowID) error {
	r.calls = append(r.calls, fmt.Sprintf("unfocus %d", id))
	return nil
}

func (r *recordingDisplay) Close(id platform.WindowID) error {
	r.calls = append(r.calls, fmt.Sprintf("close %d", id))
	return nil
}

func (r *recordingDisplay) reset() {
	r.calls = nil
}

// count returns how many recorded calls start with prefix.
func (r *recordingDisplay) count(prefix string) int {
	n := 0
	for _, c := range r.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (r *recordingDisplay) has(call string) bool {
	for _, c := range r.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (r *recordingDisplay) index(call string) int {
	for i, c := range r.calls {
		if c == call {
			return i
		}
	}
	return -1
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *recordingDisplay) {
	t.Helper()
	disp := &recordingDisplay{}
	d := NewDispatcher(disp, Options{WorkArea: platform.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}})
	return d, disp
}

func mustHandle(t *testing.T, d *Dispatcher, ev Event) {
	t.Helper()
	if err := d.Handle(ev); err != nil {
		t.Fatalf("Handle(%T): %v", ev, err)
	}
	if err := d.Verify(); err != nil {
		t.Fatalf("invariants after %T: %v", ev, err)
	}
}

func appear(t *testing.T, d *Dispatcher, ids ...platform.WindowID) {
	t.Helper()
	for _, id := range ids {
		mustHandle(t, d, WindowAppeared{ID: id, Geometry: platform.Rect{X: 10, Y: 10, Width: 200, Height: 150}})
	}
}

func ids(v ...platform.WindowID) []platform.WindowID {
	return v
}
