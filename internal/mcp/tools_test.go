package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/1broseidon/stacker/internal/platform"
	"github.com/1broseidon/stacker/internal/wm"
)

type execCall struct {
	cmd    string
	window platform.WindowID
}

type fakeClient struct {
	snap    wm.Snapshot
	calls   []execCall
	execErr error
}

func (f *fakeClient) GetState() (*wm.Snapshot, error) {
	snap := f.snap
	return &snap, nil
}

func (f *fakeClient) Exec(cmd string, window platform.WindowID) error {
	f.calls = append(f.calls, execCall{cmd, window})
	return f.execErr
}

func sampleSnapshot() wm.Snapshot {
	snap := wm.Snapshot{ActiveWorkspace: 0, Focused: 2}
	for i := 0; i < wm.NumWorkspaces; i++ {
		snap.Workspaces = append(snap.Workspaces, wm.WorkspaceSnapshot{Index: i})
	}
	snap.Workspaces[0].Stack = []platform.WindowID{1, 2}
	snap.Workspaces[0].Tasklist = []platform.WindowID{2, 1}
	snap.Workspaces[3].Stack = []platform.WindowID{3}
	snap.Workspaces[3].Tasklist = []platform.WindowID{3}
	snap.Windows = []wm.Window{
		{ID: 1, Title: "editor"},
		{ID: 2, Title: "shell"},
		{ID: 3, Title: "browser", Workspace: 3, Maximized: true},
	}
	return snap
}

func TestHandleGetState(t *testing.T) {
	s := NewServer(&fakeClient{snap: sampleSnapshot()}, nil)

	_, out, err := s.handleGetState(context.Background(), nil, GetStateInput{})
	if err != nil {
		t.Fatalf("get_state: %v", err)
	}
	if len(out.Workspaces) != 2 {
		t.Fatalf("expected active and non-empty workspaces only, got %+v", out.Workspaces)
	}
	first := out.Workspaces[0]
	if !first.Active || len(first.Windows) != 2 || first.Windows[0].ID != 2 || !first.Windows[0].Focused {
		t.Fatalf("expected top-first order with focused window 2, got %+v", first)
	}
	if first.Windows[1].Title != "editor" {
		t.Fatalf("expected titles resolved, got %+v", first.Windows[1])
	}

	ws := 3
	_, out, err = s.handleGetState(context.Background(), nil, GetStateInput{Workspace: &ws})
	if err != nil {
		t.Fatalf("get_state filtered: %v", err)
	}
	if len(out.Workspaces) != 1 || !out.Workspaces[0].Windows[0].Maximized {
		t.Fatalf("unexpected filtered state %+v", out.Workspaces)
	}

	bad := 9
	if _, _, err := s.handleGetState(context.Background(), nil, GetStateInput{Workspace: &bad}); !errors.Is(err, wm.ErrInvalidWorkspace) {
		t.Fatalf("expected ErrInvalidWorkspace, got %v", err)
	}
}

func TestActionTools(t *testing.T) {
	tests := []struct {
		name    string
		call    func(s *Server) error
		want    execCall
		wantErr error
	}{
		{
			name: "switch_workspace",
			call: func(s *Server) error {
				_, _, err := s.handleSwitchWorkspace(context.Background(), nil, SwitchWorkspaceInput{Workspace: 4})
				return err
			},
			want: execCall{"switch_workspace(4)", 0},
		},
		{
			name: "focus_window",
			call: func(s *Server) error {
				_, _, err := s.handleFocusWindow(context.Background(), nil, FocusWindowInput{Window: 3})
				return err
			},
			want: execCall{"focus(3)", 0},
		},
		{
			name: "move_window",
			call: func(s *Server) error {
				_, _, err := s.handleMoveWindow(context.Background(), nil, MoveWindowInput{Window: 1, Workspace: 5})
				return err
			},
			want: execCall{"move_to_workspace(5)", 1},
		},
		{
			name: "run_command",
			call: func(s *Server) error {
				_, _, err := s.handleRunCommand(context.Background(), nil, RunCommandInput{Command: " cycle_next "})
				return err
			},
			want: execCall{"cycle_next", 0},
		},
		{
			name: "switch out of range",
			call: func(s *Server) error {
				_, _, err := s.handleSwitchWorkspace(context.Background(), nil, SwitchWorkspaceInput{Workspace: -1})
				return err
			},
			wantErr: wm.ErrInvalidWorkspace,
		},
		{
			name: "move out of range",
			call: func(s *Server) error {
				_, _, err := s.handleMoveWindow(context.Background(), nil, MoveWindowInput{Workspace: 9})
				return err
			},
			wantErr: wm.ErrInvalidWorkspace,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{snap: sampleSnapshot()}
			s := NewServer(client, nil)

			err := tt.call(s)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if len(client.calls) != 0 {
					t.Fatalf("expected no daemon calls, got %v", client.calls)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(client.calls) != 1 || client.calls[0] != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, client.calls)
			}
		})
	}
}

func TestHandleRunCommand_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		command string
	}{
		{"empty", "  "},
		{"unknown", "teleport"},
		{"grab", "grab_move"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{}
			s := NewServer(client, nil)
			if _, _, err := s.handleRunCommand(context.Background(), nil, RunCommandInput{Command: tt.command}); err == nil {
				t.Fatalf("expected error for %q", tt.command)
			}
			if len(client.calls) != 0 {
				t.Fatalf("expected no daemon calls")
			}
		})
	}
}

func TestExec_ReportsFocus(t *testing.T) {
	client := &fakeClient{snap: sampleSnapshot()}
	s := NewServer(client, nil)

	_, out, err := s.handleRunCommand(context.Background(), nil, RunCommandInput{Command: "raise", Window: 1})
	if err != nil {
		t.Fatalf("run_command: %v", err)
	}
	if out.Command != "raise" || out.Focused != 2 {
		t.Fatalf("unexpected output %+v", out)
	}

	client.execErr = wm.ErrUnknownHandle
	if _, _, err := s.handleRunCommand(context.Background(), nil, RunCommandInput{Command: "raise"}); !errors.Is(err, wm.ErrUnknownHandle) {
		t.Fatalf("expected wrapped daemon error, got %v", err)
	}
}
