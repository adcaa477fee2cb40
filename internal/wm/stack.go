package wm

import (
	"fmt"
	"slices"

	"github.com/1broseidon/stacker/internal/platform"
)

// StackOrder keeps the bottom-to-top z-order of every workspace. The last
// element of a stack is the topmost window.
type StackOrder struct {
	stacks [NumWorkspaces][]platform.WindowID
	owner  map[platform.WindowID]int
}

// NewStackOrder returns empty stacks for every workspace.
func NewStackOrder() *StackOrder {
	return &StackOrder{owner: make(map[platform.WindowID]int)}
}

// Insert places id at the top of ws. A handle already present in another
// stack is moved, so each handle lives in exactly one stack.
func (s *StackOrder) Insert(ws int, id platform.WindowID) error {
	if !ValidWorkspace(ws) {
		return fmt.Errorf("insert window %d: workspace %d: %w", id, ws, ErrInvalidWorkspace)
	}
	if prev, ok := s.owner[id]; ok {
		s.stacks[prev], _ = without(s.stacks[prev], id)
	}
	s.stacks[ws] = append(s.stacks[ws], id)
	s.owner[id] = ws
	return nil
}

// Remove deletes id from ws. Absent handles are ignored.
func (s *StackOrder) Remove(ws int, id platform.WindowID) bool {
	if !ValidWorkspace(ws) {
		return false
	}
	var removed bool
	s.stacks[ws], removed = without(s.stacks[ws], id)
	if removed {
		delete(s.owner, id)
	}
	return removed
}

// Raise moves id to the top of ws. It reports whether id is in the stack;
// raising the topmost window leaves the order unchanged.
func (s *StackOrder) Raise(ws int, id platform.WindowID) bool {
	if !s.Contains(ws, id) {
		return false
	}
	s.stacks[ws], _ = without(s.stacks[ws], id)
	s.stacks[ws] = append(s.stacks[ws], id)
	return true
}

// Lower moves id to the bottom of ws.
func (s *StackOrder) Lower(ws int, id platform.WindowID) bool {
	if !s.Contains(ws, id) {
		return false
	}
	s.stacks[ws], _ = without(s.stacks[ws], id)
	s.stacks[ws] = insertAt(s.stacks[ws], 0, id)
	return true
}

// RaiseNext sends the topmost window to the bottom, promoting the window
// immediately below it.
func (s *StackOrder) RaiseNext(ws int) bool {
	if !ValidWorkspace(ws) || len(s.stacks[ws]) < 2 {
		return false
	}
	st := s.stacks[ws]
	top := st[len(st)-1]
	copy(st[1:], st[:len(st)-1])
	st[0] = top
	return true
}

// RaisePrev brings the bottom window to the top. It undoes RaiseNext.
func (s *StackOrder) RaisePrev(ws int) bool {
	if !ValidWorkspace(ws) || len(s.stacks[ws]) < 2 {
		return false
	}
	st := s.stacks[ws]
	bottom := st[0]
	copy(st, st[1:])
	st[len(st)-1] = bottom
	return true
}

// Topmost returns the top window of ws.
func (s *StackOrder) Topmost(ws int) (platform.WindowID, bool) {
	if !ValidWorkspace(ws) || len(s.stacks[ws]) == 0 {
		return platform.NoWindow, false
	}
	st := s.stacks[ws]
	return st[len(st)-1], true
}

// Order returns a copy of the bottom-to-top stack of ws.
func (s *StackOrder) Order(ws int) []platform.WindowID {
	if !ValidWorkspace(ws) {
		return nil
	}
	return slices.Clone(s.stacks[ws])
}

// Contains reports whether id is in the stack of ws.
func (s *StackOrder) Contains(ws int, id platform.WindowID) bool {
	owner, ok := s.owner[id]
	return ok && owner == ws
}

// WorkspaceOf returns the workspace whose stack holds id.
func (s *StackOrder) WorkspaceOf(id platform.WindowID) (int, bool) {
	ws, ok := s.owner[id]
	return ws, ok
}

// Len returns the number of windows on ws.
func (s *StackOrder) Len(ws int) int {
	if !ValidWorkspace(ws) {
		return 0
	}
	return len(s.stacks[ws])
}
