package wm

import "github.com/1broseidon/stacker/internal/platform"

// FocusChange describes an input focus transfer produced by a sync.
type FocusChange struct {
	Prev platform.WindowID
	Next platform.WindowID
}

// Changed reports whether the change moves focus.
func (c FocusChange) Changed() bool {
	return c.Prev != c.Next
}

// FocusController keeps the focused window equal to the topmost window of
// the active workspace.
type FocusController struct {
	stack   *StackOrder
	perWS   [NumWorkspaces]platform.WindowID
	current platform.WindowID
}

func NewFocusController(stack *StackOrder) *FocusController {
	return &FocusController{stack: stack}
}

// Sync recomputes the focused window of ws. When ws is the active workspace
// and the window holding input focus changes, the transfer is returned.
func (f *FocusController) Sync(ws, active int) FocusChange {
	if !ValidWorkspace(ws) {
		return FocusChange{}
	}
	top, _ := f.stack.Topmost(ws)
	f.perWS[ws] = top
	if ws != active || top == f.current {
		return FocusChange{}
	}
	change := FocusChange{Prev: f.current, Next: top}
	f.current = top
	return change
}

// Forget drops every reference to a destroyed window. No unfocus is
// produced for it.
func (f *FocusController) Forget(id platform.WindowID) {
	for ws := range f.perWS {
		if f.perWS[ws] == id {
			f.perWS[ws] = platform.NoWindow
		}
	}
	if f.current == id {
		f.current = platform.NoWindow
	}
}

// Focused returns the window holding input focus.
func (f *FocusController) Focused() platform.WindowID {
	return f.current
}

// FocusedOn returns the recorded focused window of ws.
func (f *FocusController) FocusedOn(ws int) platform.WindowID {
	if !ValidWorkspace(ws) {
		return platform.NoWindow
	}
	return f.perWS[ws]
}
