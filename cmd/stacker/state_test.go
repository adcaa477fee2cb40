package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/1broseidon/stacker/internal/platform"
	"github.com/1broseidon/stacker/internal/wm"
)

func TestPrintState(t *testing.T) {
	snap := &wm.Snapshot{
		ActiveWorkspace: 0,
		Focused:         2,
		Windows: []wm.Window{
			{ID: 1, Title: "editor"},
			{ID: 2, Title: "shell", Maximized: true},
			{ID: 3, Title: "mail", Workspace: 4},
		},
	}
	for i := 0; i < wm.NumWorkspaces; i++ {
		snap.Workspaces = append(snap.Workspaces, wm.WorkspaceSnapshot{Index: i})
	}
	snap.Workspaces[0].Stack = []platform.WindowID{1, 2}
	snap.Workspaces[0].Tasklist = []platform.WindowID{2, 1}
	snap.Workspaces[0].Focused = 2
	snap.Workspaces[4].Stack = []platform.WindowID{3}
	snap.Workspaces[4].Tasklist = []platform.WindowID{3}

	var buf bytes.Buffer
	if err := printState(&buf, snap); err != nil {
		t.Fatalf("printState: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"workspace 1 (active)", "workspace 5", "max", "mail"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "workspace 2") {
		t.Errorf("empty inactive workspace should be skipped:\n%s", out)
	}
	if strings.Index(out, "shell") > strings.Index(out, "editor") {
		t.Errorf("stack should be printed top first:\n%s", out)
	}
	if !strings.Contains(out, "*") {
		t.Errorf("focused window should be marked:\n%s", out)
	}
}

func TestParseWindowID(t *testing.T) {
	tests := []struct {
		in      string
		want    platform.WindowID
		wantErr bool
	}{
		{"", platform.NoWindow, false},
		{"42", 42, false},
		{"0x1c00007", 0x1c00007, false},
		{"window", 0, true},
		{"0x100000000", 0, true},
	}
	for _, tt := range tests {
		got, err := parseWindowID(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("parseWindowID(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("parseWindowID(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
