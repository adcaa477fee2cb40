package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/stacker/internal/command"
	"github.com/1broseidon/stacker/internal/platform"
	"github.com/1broseidon/stacker/internal/wm"
)

func (s *Server) handleGetState(_ context.Context, _ *mcpsdk.CallToolRequest, args GetStateInput) (*mcpsdk.CallToolResult, GetStateOutput, error) {
	if args.Workspace != nil && !wm.ValidWorkspace(*args.Workspace) {
		return nil, GetStateOutput{}, fmt.Errorf("workspace %d: %w", *args.Workspace, wm.ErrInvalidWorkspace)
	}

	snap, err := s.client.GetState()
	if err != nil {
		return nil, GetStateOutput{}, err
	}
	return nil, summarize(snap, args.Workspace), nil
}

func (s *Server) handleRunCommand(_ context.Context, _ *mcpsdk.CallToolRequest, args RunCommandInput) (*mcpsdk.CallToolResult, ActionOutput, error) {
	cmd := strings.TrimSpace(args.Command)
	if cmd == "" {
		return nil, ActionOutput{}, fmt.Errorf("command is required")
	}
	ev, err := command.Parse(cmd)
	if err != nil {
		return nil, ActionOutput{}, err
	}
	if command.IsGrab(ev) {
		return nil, ActionOutput{}, fmt.Errorf("%s needs a pointer and cannot be run as a tool", cmd)
	}
	return s.exec(cmd, args.Window)
}

func (s *Server) handleSwitchWorkspace(_ context.Context, _ *mcpsdk.CallToolRequest, args SwitchWorkspaceInput) (*mcpsdk.CallToolResult, ActionOutput, error) {
	if !wm.ValidWorkspace(args.Workspace) {
		return nil, ActionOutput{}, fmt.Errorf("workspace %d: %w", args.Workspace, wm.ErrInvalidWorkspace)
	}
	return s.exec(fmt.Sprintf("switch_workspace(%d)", args.Workspace), platform.NoWindow)
}

func (s *Server) handleFocusWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args FocusWindowInput) (*mcpsdk.CallToolResult, ActionOutput, error) {
	if args.Window == platform.NoWindow {
		return nil, ActionOutput{}, fmt.Errorf("window is required")
	}
	return s.exec(fmt.Sprintf("focus(%d)", args.Window), platform.NoWindow)
}

func (s *Server) handleMoveWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args MoveWindowInput) (*mcpsdk.CallToolResult, ActionOutput, error) {
	if !wm.ValidWorkspace(args.Workspace) {
		return nil, ActionOutput{}, fmt.Errorf("workspace %d: %w", args.Workspace, wm.ErrInvalidWorkspace)
	}
	return s.exec(fmt.Sprintf("move_to_workspace(%d)", args.Workspace), args.Window)
}

// exec runs cmd on the daemon and reports where focus ended up.
func (s *Server) exec(cmd string, window platform.WindowID) (*mcpsdk.CallToolResult, ActionOutput, error) {
	s.logger.Debug().Str("command", cmd).Uint32("window", uint32(window)).Msg("mcp command")

	if err := s.client.Exec(cmd, window); err != nil {
		return nil, ActionOutput{}, fmt.Errorf("%s: %w", cmd, err)
	}

	out := ActionOutput{Command: cmd}
	snap, err := s.client.GetState()
	if err != nil {
		s.logger.Warn().Err(err).Msg("state read after command failed")
		return nil, out, nil
	}
	out.ActiveWorkspace = snap.ActiveWorkspace
	out.Focused = snap.Focused
	return nil, out, nil
}

// summarize flattens a snapshot for tool output. Without a filter it keeps
// the active workspace and every workspace that holds windows.
func summarize(snap *wm.Snapshot, only *int) GetStateOutput {
	out := GetStateOutput{
		ActiveWorkspace: snap.ActiveWorkspace,
		Focused:         snap.Focused,
		Workspaces:      []WorkspaceInfo{},
	}
	for _, ws := range snap.Workspaces {
		active := ws.Index == snap.ActiveWorkspace
		if only != nil && ws.Index != *only {
			continue
		}
		if only == nil && !active && len(ws.Stack) == 0 {
			continue
		}

		info := WorkspaceInfo{
			Index:    ws.Index,
			Active:   active,
			Windows:  make([]WindowInfo, 0, len(ws.Stack)),
			Tasklist: ws.Tasklist,
		}
		for i := len(ws.Stack) - 1; i >= 0; i-- {
			id := ws.Stack[i]
			w, _ := snap.Window(id)
			info.Windows = append(info.Windows, WindowInfo{
				ID:        id,
				Title:     w.Title,
				Geometry:  w.Geometry,
				Focused:   active && id == snap.Focused,
				Maximized: w.Maximized,
			})
		}
		out.Workspaces = append(out.Workspaces, info)
	}
	return out
}
