package wm

import "github.com/1broseidon/stacker/internal/platform"

// Snapshot is an immutable copy of the core state for readers outside the
// event loop.
type Snapshot struct {
	ActiveWorkspace int                 `json:"active_workspace"`
	Focused         platform.WindowID   `json:"focused"`
	Workspaces      []WorkspaceSnapshot `json:"workspaces"`
	Windows         []Window            `json:"windows"`
	Grab            *GrabSnapshot       `json:"grab,omitempty"`
}

// WorkspaceSnapshot describes one workspace.
type WorkspaceSnapshot struct {
	Index    int                 `json:"index"`
	Stack    []platform.WindowID `json:"stack"`
	Tasklist []platform.WindowID `json:"tasklist"`
	Focused  platform.WindowID   `json:"focused"`
}

// GrabSnapshot describes a running grab.
type GrabSnapshot struct {
	State string `json:"state"`
	GrabSession
}

// Window returns the record of id from the snapshot.
func (s Snapshot) Window(id platform.WindowID) (Window, bool) {
	for _, w := range s.Windows {
		if w.ID == id {
			return w, true
		}
	}
	return Window{}, false
}

// Snapshot copies the current state.
func (d *Dispatcher) Snapshot() Snapshot {
	snap := Snapshot{
		ActiveWorkspace: d.workspaces.Active(),
		Focused:         d.focus.Focused(),
		Workspaces:      make([]WorkspaceSnapshot, 0, NumWorkspaces),
		Windows:         make([]Window, 0, d.registry.Len()),
	}
	for ws := 0; ws < NumWorkspaces; ws++ {
		snap.Workspaces = append(snap.Workspaces, WorkspaceSnapshot{
			Index:    ws,
			Stack:    d.stack.Order(ws),
			Tasklist: d.tasks.Order(ws),
			Focused:  d.focus.FocusedOn(ws),
		})
	}
	for _, id := range d.registry.IDs() {
		w, _ := d.registry.Get(id)
		snap.Windows = append(snap.Windows, w)
	}
	if s, ok := d.grab.Session(); ok {
		snap.Grab = &GrabSnapshot{State: d.grab.State().String(), GrabSession: s}
	}
	return snap
}
