package wm

import "github.com/1broseidon/stacker/internal/platform"

// Event is the closed set of inputs handled by the Dispatcher: display
// server notifications and user commands.
type Event interface {
	event()
}

// GrabMode selects what an interactive grab does with pointer motion.
type GrabMode int

const (
	GrabMove GrabMode = iota
	GrabResize
)

func (m GrabMode) String() string {
	switch m {
	case GrabMove:
		return "move"
	case GrabResize:
		return "resize"
	default:
		return "unknown"
	}
}

// Notifications from the display server.

// WindowAppeared reports a window asking to be managed. Existing marks
// windows adopted at startup, which keep their geometry and mapped state.
type WindowAppeared struct {
	ID       platform.WindowID
	Geometry platform.Rect
	Title    string
	Existing bool
	Mapped   bool
}

// WindowGone reports a destroyed or withdrawn window. A non-zero
// Generation limits the removal to that registration of the handle.
type WindowGone struct {
	ID         platform.WindowID
	Generation uint64
}

// WindowResized reports a geometry request from the client.
type WindowResized struct {
	ID       platform.WindowID
	Geometry platform.Rect
}

type WindowRenamed struct {
	ID    platform.WindowID
	Title string
}

type PointerClick struct {
	ID       platform.WindowID
	Position platform.Point
}

type PointerMotion struct {
	Position platform.Point
}

type PointerRelease struct{}

// User commands. A zero ID targets the focused window.

type Raise struct {
	ID platform.WindowID
}

type Lower struct {
	ID platform.WindowID
}

type CycleNext struct{}

type CyclePrev struct{}

type SwitchWorkspace struct {
	Index int
}

// StepWorkspace switches by Delta workspaces, wrapping around.
type StepWorkspace struct {
	Delta int
}

type MoveToWorkspace struct {
	ID    platform.WindowID
	Index int
}

type ReorderTasklist struct {
	ID       platform.WindowID
	Position int
}

// ShiftTasklist moves a window Delta places along the tasklist.
type ShiftTasklist struct {
	ID    platform.WindowID
	Delta int
}

// TasklistNext raises the window following the focused one in tasklist order.
type TasklistNext struct{}

type TasklistPrev struct{}

// Focus activates a window, switching workspace if needed.
type Focus struct {
	ID platform.WindowID
}

type GrabStart struct {
	ID      platform.WindowID
	Mode    GrabMode
	Pointer platform.Point
}

type GrabEnd struct{}

type ToggleMaximize struct {
	ID platform.WindowID
}

type Close struct {
	ID platform.WindowID
}

func (WindowAppeared) event()  {}
func (WindowGone) event()      {}
func (WindowResized) event()   {}
func (WindowRenamed) event()   {}
func (PointerClick) event()    {}
func (PointerMotion) event()   {}
func (PointerRelease) event()  {}
func (Raise) event()           {}
func (Lower) event()           {}
func (CycleNext) event()       {}
func (CyclePrev) event()       {}
func (SwitchWorkspace) event() {}
func (StepWorkspace) event()   {}
func (MoveToWorkspace) event() {}
func (ReorderTasklist) event() {}
func (ShiftTasklist) event()   {}
func (TasklistNext) event()    {}
func (TasklistPrev) event()    {}
func (Focus) event()           {}
func (GrabStart) event()       {}
func (GrabEnd) event()         {}
func (ToggleMaximize) event()  {}
func (Close) event()           {}
