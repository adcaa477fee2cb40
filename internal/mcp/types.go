package mcp

import "github.com/1broseidon/stacker/internal/platform"

// GetStateInput is the input for the get_state tool.
type GetStateInput struct {
	Workspace *int `json:"workspace,omitempty" jsonschema:"Only report this workspace (0-8). Omit for all workspaces that hold windows plus the active one."`
}

// WindowInfo describes a single managed window.
type WindowInfo struct {
	ID        platform.WindowID `json:"id"`
	Title     string            `json:"title"`
	Geometry  platform.Rect     `json:"geometry"`
	Focused   bool              `json:"focused"`
	Maximized bool              `json:"maximized"`
}

// WorkspaceInfo describes one workspace.
type WorkspaceInfo struct {
	Index  int  `json:"index"`
	Active bool `json:"active"`
	// Windows is ordered top of the stack first.
	Windows  []WindowInfo        `json:"windows"`
	Tasklist []platform.WindowID `json:"tasklist"`
}

// GetStateOutput is the output for the get_state tool.
type GetStateOutput struct {
	ActiveWorkspace int               `json:"active_workspace"`
	Focused         platform.WindowID `json:"focused"`
	Workspaces      []WorkspaceInfo   `json:"workspaces"`
}

// RunCommandInput is the input for the run_command tool.
type RunCommandInput struct {
	Command string            `json:"command" jsonschema:"required,Command string such as raise, cycle_next, switch_workspace(2), move_to_workspace(4), tasklist_next, maximize, close"`
	Window  platform.WindowID `json:"window,omitempty" jsonschema:"Target window ID for window commands (default: focused window)"`
}

// SwitchWorkspaceInput is the input for the switch_workspace tool.
type SwitchWorkspaceInput struct {
	Workspace int `json:"workspace" jsonschema:"required,Workspace index 0-8"`
}

// FocusWindowInput is the input for the focus_window tool.
type FocusWindowInput struct {
	Window platform.WindowID `json:"window" jsonschema:"required,Window ID to focus. Its workspace becomes active and the window is raised."`
}

// MoveWindowInput is the input for the move_window tool.
type MoveWindowInput struct {
	Window    platform.WindowID `json:"window,omitempty" jsonschema:"Window ID to move (default: focused window)"`
	Workspace int               `json:"workspace" jsonschema:"required,Destination workspace index 0-8"`
}

// ActionOutput is returned by every tool that changes state.
type ActionOutput struct {
	Command         string            `json:"command"`
	ActiveWorkspace int               `json:"active_workspace"`
	Focused         platform.WindowID `json:"focused"`
}
