package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/stacker/internal/platform"
	"github.com/1broseidon/stacker/internal/wm"
)

type fakeClient struct {
	snap  *wm.Snapshot
	err   error
	execs []string
}

func (f *fakeClient) GetState() (*wm.Snapshot, error) { return f.snap, f.err }

func (f *fakeClient) Exec(cmd string, window platform.WindowID) error {
	f.execs = append(f.execs, cmd)
	return f.err
}

func testSnapshot() *wm.Snapshot {
	snap := &wm.Snapshot{
		ActiveWorkspace: 1,
		Focused:         0x20,
		Windows: []wm.Window{
			{ID: 0x10, Title: "editor", Workspace: 1, Mapped: true, Geometry: platform.Rect{Width: 800, Height: 600}},
			{ID: 0x20, Title: "shell", Workspace: 1, Mapped: true, Maximized: true, Geometry: platform.Rect{Width: 1920, Height: 1080}},
		},
	}
	for i := 0; i < wm.NumWorkspaces; i++ {
		snap.Workspaces = append(snap.Workspaces, wm.WorkspaceSnapshot{Index: i})
	}
	snap.Workspaces[1].Stack = []platform.WindowID{0x10, 0x20}
	snap.Workspaces[1].Tasklist = []platform.WindowID{0x20, 0x10}
	snap.Workspaces[1].Focused = 0x20
	return snap
}

func TestKeyCommand(t *testing.T) {
	tests := []struct {
		key  string
		want string
		ok   bool
	}{
		{"1", "switch_workspace(0)", true},
		{"9", "switch_workspace(8)", true},
		{"h", "workspace_prev", true},
		{"right", "workspace_next", true},
		{"j", "tasklist_next", true},
		{"k", "tasklist_prev", true},
		{"r", "raise", true},
		{"m", "maximize", true},
		{"0", "", false},
		{"x", "", false},
	}
	for _, tt := range tests {
		got, ok := keyCommand(tt.key)
		if got != tt.want || ok != tt.ok {
			t.Errorf("keyCommand(%q) = %q, %v; want %q, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestUpdate_PollingKeepsTicking(t *testing.T) {
	client := &fakeClient{snap: testSnapshot()}
	m := newModel(client, time.Millisecond)

	msg := m.Init()()
	state, ok := msg.(stateMsg)
	if !ok || !state.poll {
		t.Fatalf("Init should poll, got %#v", msg)
	}

	next, cmd := m.Update(state)
	if next.(model).snap == nil {
		t.Fatal("snapshot not stored")
	}
	if cmd == nil {
		t.Fatal("polled state should schedule the next tick")
	}

	_, cmd = next.Update(stateMsg{snap: client.snap})
	if cmd != nil {
		t.Fatal("a refresh after a command must not schedule another tick")
	}
}

func TestUpdate_KeyRunsCommand(t *testing.T) {
	client := &fakeClient{snap: testSnapshot()}
	m := newModel(client, time.Second)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd().(execMsg)
	if len(client.execs) != 1 || client.execs[0] != "switch_workspace(2)" {
		t.Fatalf("unexpected execs %v", client.execs)
	}

	next, cmd := m.Update(msg)
	if next.(model).status != "switch_workspace(2)" {
		t.Fatalf("status = %q", next.(model).status)
	}
	if refresh, ok := cmd().(stateMsg); !ok || refresh.poll {
		t.Fatalf("expected a one-off refresh, got %#v", refresh)
	}
}

func TestUpdate_ErrorKeepsLastSnapshot(t *testing.T) {
	client := &fakeClient{}
	m := newModel(client, time.Second)
	m.snap = testSnapshot()

	next, _ := m.Update(stateMsg{err: errors.New("daemon gone")})
	got := next.(model)
	if got.err == nil || got.snap == nil {
		t.Fatalf("expected error with previous snapshot kept, got err=%v snap=%v", got.err, got.snap)
	}
}

func TestUpdate_Quit(t *testing.T) {
	m := newModel(&fakeClient{}, time.Second)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("ctrl+c should quit")
	}
}

func TestRenderWindows(t *testing.T) {
	out := renderWindows(testSnapshot(), 200, 20)

	shell := strings.Index(out, `"shell"`)
	editor := strings.Index(out, `"editor"`)
	if shell < 0 || editor < 0 {
		t.Fatalf("missing window titles:\n%s", out)
	}
	if shell > editor {
		t.Fatalf("stack should list the top window first:\n%s", out)
	}
	for _, want := range []string{"Stack (top first)", "Tasklist", "[max]", "0x20"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderWindows_NoState(t *testing.T) {
	if out := renderWindows(nil, 80, 5); !strings.Contains(out, "waiting for state") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRenderWorkspaceBar_Counts(t *testing.T) {
	out := renderWorkspaceBar(testSnapshot(), 200)
	if !strings.Contains(out, "2:2") {
		t.Fatalf("expected window count on workspace 2:\n%s", out)
	}
	if strings.Contains(out, "1:") {
		t.Fatalf("empty workspace should not show a count:\n%s", out)
	}
}
