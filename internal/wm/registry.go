package wm

import (
	"fmt"
	"sort"

	"github.com/1broseidon/stacker/internal/platform"
)

// NumWorkspaces is the fixed number of virtual workspaces.
const NumWorkspaces = 9

// ValidWorkspace reports whether index names one of the workspaces.
func ValidWorkspace(index int) bool {
	return index >= 0 && index < NumWorkspaces
}

// Window is a snapshot of a managed window record.
type Window struct {
	ID        platform.WindowID `json:"id"`
	Geometry  platform.Rect     `json:"geometry"`
	Workspace int               `json:"workspace"`
	Mapped    bool              `json:"mapped"`
	Title     string            `json:"title"`
	Decorated bool              `json:"decorated"`
	Maximized bool              `json:"maximized"`
	// Generation is unique per registration, so a handle the server reused
	// for a new window can be told apart from the record it replaced.
	Generation uint64 `json:"generation"`
	// Restore holds the geometry to return to when a maximized window is
	// toggled back.
	Restore platform.Rect `json:"restore,omitempty"`
}

// Registry owns every Window record. Other components hold handles only.
type Registry struct {
	windows     map[platform.WindowID]*Window
	generations uint64
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{windows: make(map[platform.WindowID]*Window)}
}

// Register adds a window with the given initial geometry.
func (r *Registry) Register(id platform.WindowID, geometry platform.Rect) (Window, error) {
	if id == platform.NoWindow {
		return Window{}, fmt.Errorf("register zero handle: %w", ErrUnknownHandle)
	}
	if _, ok := r.windows[id]; ok {
		return Window{}, fmt.Errorf("register window %d: %w", id, ErrDuplicateHandle)
	}
	r.generations++
	w := &Window{
		ID:         id,
		Geometry:   geometry.Normalized(),
		Decorated:  true,
		Generation: r.generations,
	}
	r.windows[id] = w
	return *w, nil
}

// Unregister erases a window record.
func (r *Registry) Unregister(id platform.WindowID) error {
	if _, ok := r.windows[id]; !ok {
		return fmt.Errorf("unregister window %d: %w", id, ErrUnknownHandle)
	}
	delete(r.windows, id)
	return nil
}

// Get returns a copy of the window record.
func (r *Registry) Get(id platform.WindowID) (Window, error) {
	w, ok := r.windows[id]
	if !ok {
		return Window{}, fmt.Errorf("window %d: %w", id, ErrUnknownHandle)
	}
	return *w, nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id platform.WindowID) bool {
	_, ok := r.windows[id]
	return ok
}

// Len returns the number of registered windows.
func (r *Registry) Len() int {
	return len(r.windows)
}

// IDs returns every registered handle in ascending order.
func (r *Registry) IDs() []platform.WindowID {
	ids := make([]platform.WindowID, 0, len(r.windows))
	for id := range r.windows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SetGeometry replaces the window geometry. Width and height are clamped to 1.
func (r *Registry) SetGeometry(id platform.WindowID, geometry platform.Rect) error {
	return r.update(id, func(w *Window) { w.Geometry = geometry.Normalized() })
}

// SetTitle records a new window title.
func (r *Registry) SetTitle(id platform.WindowID, title string) error {
	return r.update(id, func(w *Window) { w.Title = title })
}

// SetMapped records whether the window is currently visible.
func (r *Registry) SetMapped(id platform.WindowID, mapped bool) error {
	return r.update(id, func(w *Window) { w.Mapped = mapped })
}

// SetWorkspace records the workspace a window belongs to.
func (r *Registry) SetWorkspace(id platform.WindowID, workspace int) error {
	if !ValidWorkspace(workspace) {
		return fmt.Errorf("workspace %d: %w", workspace, ErrInvalidWorkspace)
	}
	return r.update(id, func(w *Window) { w.Workspace = workspace })
}

// SetMaximized toggles the maximized flag. restore is kept as the geometry
// to return to.
func (r *Registry) SetMaximized(id platform.WindowID, maximized bool, restore platform.Rect) error {
	return r.update(id, func(w *Window) {
		w.Maximized = maximized
		if maximized {
			w.Restore = restore
		} else {
			w.Restore = platform.Rect{}
		}
	})
}

func (r *Registry) update(id platform.WindowID, fn func(*Window)) error {
	w, ok := r.windows[id]
	if !ok {
		return fmt.Errorf("window %d: %w", id, ErrUnknownHandle)
	}
	fn(w)
	return nil
}
