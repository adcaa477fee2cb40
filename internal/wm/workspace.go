package wm

import (
	"fmt"

	"github.com/1broseidon/stacker/internal/platform"
)

// WorkspaceManager owns the active workspace and the operations that move
// windows between workspaces or along a tasklist.
type WorkspaceManager struct {
	active   int
	registry *Registry
	stack    *StackOrder
	tasks    *Tasklist
	focus    *FocusController
}

func NewWorkspaceManager(registry *Registry, stack *StackOrder, tasks *Tasklist, focus *FocusController) *WorkspaceManager {
	return &WorkspaceManager{
		registry: registry,
		stack:    stack,
		tasks:    tasks,
		focus:    focus,
	}
}

// Active returns the active workspace index.
func (m *WorkspaceManager) Active() int {
	return m.active
}

// SwitchTo makes index the active workspace. The new workspace is shown and
// focused before the old one is hidden.
func (m *WorkspaceManager) SwitchTo(index int, fx *plan) error {
	if !ValidWorkspace(index) {
		return fmt.Errorf("switch to workspace %d: %w", index, ErrInvalidWorkspace)
	}
	if index == m.active {
		return nil
	}
	old := m.active
	m.active = index

	for _, id := range m.stack.Order(index) {
		fx.Map(id)
	}
	fx.Restack(index)
	fx.Focus(m.focus.Sync(index, m.active))
	for _, id := range m.stack.Order(old) {
		fx.Unmap(id)
	}
	return nil
}

// Step switches delta workspaces away from the active one, wrapping around.
func (m *WorkspaceManager) Step(delta int, fx *plan) error {
	return m.SwitchTo(wrap(m.active+delta, NumWorkspaces), fx)
}

// MoveWindow reassigns id to workspace index, placing it on top there.
func (m *WorkspaceManager) MoveWindow(id platform.WindowID, index int, fx *plan) error {
	if !ValidWorkspace(index) {
		return fmt.Errorf("move window %d to workspace %d: %w", id, index, ErrInvalidWorkspace)
	}
	w, err := m.registry.Get(id)
	if err != nil {
		return err
	}
	src := w.Workspace
	if src == index {
		return nil
	}

	m.stack.Remove(src, id)
	m.tasks.Remove(src, id)
	if err := m.registry.SetWorkspace(id, index); err != nil {
		return err
	}
	if err := m.stack.Insert(index, id); err != nil {
		return err
	}
	m.tasks.Append(index, id)

	if index == m.active {
		fx.Map(id)
		fx.Restack(index)
		fx.Focus(m.focus.Sync(index, m.active))
	} else {
		fx.Unmap(id)
		m.focus.Sync(index, m.active)
	}
	fx.Focus(m.focus.Sync(src, m.active))
	return nil
}

// Reorder moves id to position pos of its workspace tasklist. The z-order
// and focus are not affected.
func (m *WorkspaceManager) Reorder(id platform.WindowID, pos int, fx *plan) error {
	w, err := m.registry.Get(id)
	if err != nil {
		return err
	}
	m.tasks.Move(w.Workspace, id, pos)
	fx.Focus(m.focus.Sync(w.Workspace, m.active))
	return nil
}

// Shift moves id delta places along its workspace tasklist.
func (m *WorkspaceManager) Shift(id platform.WindowID, delta int, fx *plan) error {
	w, err := m.registry.Get(id)
	if err != nil {
		return err
	}
	m.tasks.Shift(w.Workspace, id, delta)
	fx.Focus(m.focus.Sync(w.Workspace, m.active))
	return nil
}
