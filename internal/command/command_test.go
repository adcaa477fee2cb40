package command

import (
	"errors"
	"testing"

	"github.com/1broseidon/stacker/internal/wm"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want wm.Event
	}{
		{"raise", wm.Raise{}},
		{"  Lower ", wm.Lower{}},
		{"cycle_next", wm.CycleNext{}},
		{"switch_workspace(3)", wm.SwitchWorkspace{Index: 3}},
		{"switch_workspace 0", wm.SwitchWorkspace{Index: 0}},
		{"move_to_workspace( 8 )", wm.MoveToWorkspace{Index: 8}},
		{"grab_resize", wm.GrabStart{Mode: wm.GrabResize}},
		{"workspace_prev", wm.StepWorkspace{Delta: -1}},
		{"tasklist_forward", wm.ShiftTasklist{Delta: 1}},
		{"reorder_tasklist(2)", wm.ReorderTasklist{Position: 2}},
		{"focus(42)", wm.Focus{ID: 42}},
		{"focus(0x1a00003)", wm.Focus{ID: 0x1a00003}},
		{"focus 4294967295", wm.Focus{ID: 0xffffffff}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %#v, got %#v", tt.want, got)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		in      string
		wantErr error
	}{
		{"", nil},
		{"explode", ErrUnknownCommand},
		{"raise(1)", nil},
		{"switch_workspace", nil},
		{"switch_workspace(x)", nil},
		{"switch_workspace(9)", wm.ErrInvalidWorkspace},
		{"move_to_workspace -1", wm.ErrInvalidWorkspace},
		{"switch_workspace(1", nil},
		{"focus(0)", nil},
		{"focus(0x0)", nil},
		{"focus(4294967296)", nil},
		{"focus(-1)", nil},
		{"focus(0xzz)", nil},
		{"switch_workspace 1 2", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := Parse(tt.in)
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	for _, name := range Names() {
		in := name
		switch name {
		case "switch_workspace", "move_to_workspace":
			in = name + "(4)"
		case "reorder_tasklist":
			in = name + "(1)"
		case "focus":
			in = name + "(7)"
		}
		ev, err := Parse(in)
		if err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		out, ok := Format(ev)
		if !ok || out != in {
			t.Fatalf("expected %q, got %q (%v)", in, out, ok)
		}
	}
}

func TestTarget(t *testing.T) {
	ev := Target(wm.MoveToWorkspace{Index: 2}, 9)
	if ev != (wm.MoveToWorkspace{ID: 9, Index: 2}) {
		t.Fatalf("unexpected event %#v", ev)
	}
	if Target(wm.CycleNext{}, 9) != (wm.CycleNext{}) {
		t.Fatalf("cycle should be unchanged")
	}
	if Target(wm.Raise{ID: 3}, 0) != (wm.Raise{ID: 3}) {
		t.Fatalf("zero target should keep the event")
	}
	if !IsGrab(wm.GrabStart{}) || IsGrab(wm.Raise{}) {
		t.Fatalf("IsGrab mismatch")
	}
}
