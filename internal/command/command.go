package command

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/1broseidon/stacker/internal/platform"
	"github.com/1broseidon/stacker/internal/wm"
)

// ErrUnknownCommand is returned for names not in the command table.
var ErrUnknownCommand = errors.New("unknown command")

type argKind int

const (
	argNone argKind = iota
	argWorkspace
	argInt
	argWindow
)

type entry struct {
	arg   argKind
	build func(n int64) wm.Event
}

var table = map[string]entry{
	"raise":             {argNone, func(int64) wm.Event { return wm.Raise{} }},
	"lower":             {argNone, func(int64) wm.Event { return wm.Lower{} }},
	"cycle_next":        {argNone, func(int64) wm.Event { return wm.CycleNext{} }},
	"cycle_prev":        {argNone, func(int64) wm.Event { return wm.CyclePrev{} }},
	"switch_workspace":  {argWorkspace, func(n int64) wm.Event { return wm.SwitchWorkspace{Index: int(n)} }},
	"move_to_workspace": {argWorkspace, func(n int64) wm.Event { return wm.MoveToWorkspace{Index: int(n)} }},
	"grab_move":         {argNone, func(int64) wm.Event { return wm.GrabStart{Mode: wm.GrabMove} }},
	"grab_resize":       {argNone, func(int64) wm.Event { return wm.GrabStart{Mode: wm.GrabResize} }},
	"workspace_next":    {argNone, func(int64) wm.Event { return wm.StepWorkspace{Delta: 1} }},
	"workspace_prev":    {argNone, func(int64) wm.Event { return wm.StepWorkspace{Delta: -1} }},
	"tasklist_next":     {argNone, func(int64) wm.Event { return wm.TasklistNext{} }},
	"tasklist_prev":     {argNone, func(int64) wm.Event { return wm.TasklistPrev{} }},
	"tasklist_forward":  {argNone, func(int64) wm.Event { return wm.ShiftTasklist{Delta: 1} }},
	"tasklist_backward": {argNone, func(int64) wm.Event { return wm.ShiftTasklist{Delta: -1} }},
	"reorder_tasklist":  {argInt, func(n int64) wm.Event { return wm.ReorderTasklist{Position: int(n)} }},
	"maximize":          {argNone, func(int64) wm.Event { return wm.ToggleMaximize{} }},
	"close":             {argNone, func(int64) wm.Event { return wm.Close{} }},
	"focus":             {argWindow, func(n int64) wm.Event { return wm.Focus{ID: platform.WindowID(n)} }},
}

// Names returns every command name in sorted order.
func Names() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse turns a command string into a core event. Accepted forms are
// "name", "name(arg)" and "name arg". Commands that act on a window target
// the focused one unless Target is applied afterwards.
func Parse(s string) (wm.Event, error) {
	name, arg, hasArg, err := split(s)
	if err != nil {
		return nil, err
	}
	e, ok := table[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}

	if e.arg == argNone {
		if hasArg {
			return nil, fmt.Errorf("command %q takes no argument", name)
		}
		return e.build(0), nil
	}
	if !hasArg {
		return nil, fmt.Errorf("command %q requires an argument", name)
	}

	if e.arg == argWindow {
		id, err := strconv.ParseUint(arg, 0, 32)
		if err != nil || id == 0 {
			return nil, fmt.Errorf("command %q: invalid window %q", name, arg)
		}
		return e.build(int64(id)), nil
	}

	n, err := strconv.Atoi(arg)
	if err != nil {
		return nil, fmt.Errorf("command %q: invalid argument %q", name, arg)
	}
	if e.arg == argWorkspace && !wm.ValidWorkspace(n) {
		return nil, fmt.Errorf("command %q: workspace %d: %w", name, n, wm.ErrInvalidWorkspace)
	}
	return e.build(int64(n)), nil
}

func split(s string) (name, arg string, hasArg bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", "", false, fmt.Errorf("empty command")
	}
	if open := strings.IndexByte(s, '('); open >= 0 {
		if !strings.HasSuffix(s, ")") {
			return "", "", false, fmt.Errorf("command %q: missing closing parenthesis", s)
		}
		name = strings.TrimSpace(s[:open])
		arg = strings.TrimSpace(s[open+1 : len(s)-1])
		return strings.ToLower(name), arg, arg != "", nil
	}
	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		return strings.ToLower(fields[0]), "", false, nil
	case 2:
		return strings.ToLower(fields[0]), fields[1], true, nil
	default:
		return "", "", false, fmt.Errorf("command %q: too many arguments", s)
	}
}

// Target points a window command at id. Events that do not act on a single
// window are returned unchanged.
func Target(ev wm.Event, id platform.WindowID) wm.Event {
	if id == platform.NoWindow {
		return ev
	}
	switch e := ev.(type) {
	case wm.Raise:
		e.ID = id
		return e
	case wm.Lower:
		e.ID = id
		return e
	case wm.MoveToWorkspace:
		e.ID = id
		return e
	case wm.ReorderTasklist:
		e.ID = id
		return e
	case wm.ShiftTasklist:
		e.ID = id
		return e
	case wm.Focus:
		e.ID = id
		return e
	case wm.GrabStart:
		e.ID = id
		return e
	case wm.ToggleMaximize:
		e.ID = id
		return e
	case wm.Close:
		e.ID = id
		return e
	default:
		return ev
	}
}

// IsGrab reports whether ev starts an interactive grab. Grabs need a
// pointer binding and cannot be bound to keys.
func IsGrab(ev wm.Event) bool {
	_, ok := ev.(wm.GrabStart)
	return ok
}

// Format renders a command event back into its string form.
func Format(ev wm.Event) (string, bool) {
	switch e := ev.(type) {
	case wm.Raise:
		return "raise", true
	case wm.Lower:
		return "lower", true
	case wm.CycleNext:
		return "cycle_next", true
	case wm.CyclePrev:
		return "cycle_prev", true
	case wm.SwitchWorkspace:
		return fmt.Sprintf("switch_workspace(%d)", e.Index), true
	case wm.MoveToWorkspace:
		return fmt.Sprintf("move_to_workspace(%d)", e.Index), true
	case wm.GrabStart:
		if e.Mode == wm.GrabResize {
			return "grab_resize", true
		}
		return "grab_move", true
	case wm.StepWorkspace:
		if e.Delta < 0 {
			return "workspace_prev", true
		}
		return "workspace_next", true
	case wm.TasklistNext:
		return "tasklist_next", true
	case wm.TasklistPrev:
		return "tasklist_prev", true
	case wm.ShiftTasklist:
		if e.Delta < 0 {
			return "tasklist_backward", true
		}
		return "tasklist_forward", true
	case wm.ReorderTasklist:
		return fmt.Sprintf("reorder_tasklist(%d)", e.Position), true
	case wm.ToggleMaximize:
		return "maximize", true
	case wm.Close:
		return "close", true
	case wm.Focus:
		return fmt.Sprintf("focus(%d)", e.ID), true
	default:
		return "", false
	}
}
