package wm

import "errors"

// Errors reported by the core. None of them is fatal: the dispatcher logs
// them and the event loop keeps running.
var (
	// ErrUnknownHandle means an operation named a window that is not in the
	// registry. Notifications and bookkeeping can race, so callers treat it
	// as a no-op.
	ErrUnknownHandle = errors.New("unknown window handle")

	// ErrDuplicateHandle means the display server reported a window that is
	// already registered. The dispatcher updates the existing record instead.
	ErrDuplicateHandle = errors.New("duplicate window handle")

	// ErrInvalidWorkspace means a command named a workspace outside
	// [0, NumWorkspaces). The command is rejected without a state change.
	ErrInvalidWorkspace = errors.New("invalid workspace")

	// ErrGrabActive means a grab was requested while another one is running.
	ErrGrabActive = errors.New("grab already in progress")

	// ErrNoWindow means a command targeted the focused window but nothing
	// is focused.
	ErrNoWindow = errors.New("no window to act on")

	// ErrMaximized means an interactive grab was requested on a maximized
	// window.
	ErrMaximized = errors.New("window is maximized")

	// ErrNoWorkArea means maximize was requested without a configured work area.
	ErrNoWorkArea = errors.New("no work area configured")
)
