package x11

import (
	"errors"
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xcursor"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/rs/zerolog"

	"github.com/1broseidon/stacker/internal/platform"
)

// ErrAnotherWM is returned by TakeOver when a window manager already owns
// substructure redirection on the root window.
var ErrAnotherWM = errors.New("another window manager is already running")

// Options controls how managed windows are decorated.
type Options struct {
	BorderWidth    int
	ActiveBorder   uint32
	InactiveBorder uint32
	Logger         *zerolog.Logger
}

// Connection manages the X11 connection and core X resources. It is the
// display side of the window manager: *Connection satisfies wm.Display.
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	opts   Options
	logger zerolog.Logger

	mu sync.Mutex
	// pendingUnmaps counts unmaps we issued whose UnmapNotify has not
	// arrived yet, so they are not mistaken for the client withdrawing.
	pendingUnmaps map[xproto.Window]int
	managed       map[xproto.Window]struct{}

	ewmh ewmhState
}

// NewConnection establishes a connection to the X11 server. An empty
// display uses $DISPLAY.
func NewConnection(display string, opts Options) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}

	// Initialize keybind and mousebind modules (required for global bindings)
	keybind.Initialize(xu)
	mousebind.Initialize(xu)

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	return &Connection{
		XUtil:         xu,
		Root:          xu.RootWin(),
		opts:          opts,
		logger:        logger,
		pendingUnmaps: make(map[xproto.Window]int),
		managed:       make(map[xproto.Window]struct{}),
	}, nil
}

// TakeOver asks for substructure redirection on the root window, which
// only one client may hold. It fails with ErrAnotherWM when a window
// manager is already running.
func (c *Connection) TakeOver() error {
	mask := uint32(xproto.EventMaskSubstructureRedirect |
		xproto.EventMaskSubstructureNotify |
		xproto.EventMaskStructureNotify |
		xproto.EventMaskPropertyChange)

	err := xproto.ChangeWindowAttributesChecked(
		c.XUtil.Conn(), c.Root, xproto.CwEventMask, []uint32{mask},
	).Check()
	if err != nil {
		if _, ok := err.(xproto.AccessError); ok {
			return ErrAnotherWM
		}
		return fmt.Errorf("failed to select root events: %w", err)
	}

	if cursor, err := xcursor.CreateCursor(c.XUtil, xcursor.LeftPtr); err == nil {
		xproto.ChangeWindowAttributes(c.XUtil.Conn(), c.Root, xproto.CwCursor, []uint32{uint32(cursor)})
	}
	return nil
}

// EventLoop starts the main X11 event loop (blocking)
func (c *Connection) EventLoop() {
	xevent.Main(c.XUtil)
}

// Quit makes EventLoop return after the current event.
func (c *Connection) Quit() {
	xevent.Quit(c.XUtil)
}

// Disconnect cleanly disconnects from the X11 server
func (c *Connection) Disconnect() {
	c.XUtil.Conn().Close()
}

func (c *Connection) isManaged(win xproto.Window) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.managed[win]
	return ok
}

func (c *Connection) setManaged(win xproto.Window, on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if on {
		c.managed[win] = struct{}{}
		return
	}
	delete(c.managed, win)
	delete(c.pendingUnmaps, win)
}

// expectUnmap records an unmap we are about to issue.
func (c *Connection) expectUnmap(win xproto.Window) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingUnmaps[win]++
}

// consumeUnmap reports whether an UnmapNotify for win was caused by us.
func (c *Connection) consumeUnmap(win xproto.Window) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pendingUnmaps[win] == 0 {
		return false
	}
	c.pendingUnmaps[win]--
	return true
}

func toXID(id platform.WindowID) xproto.Window {
	return xproto.Window(id)
}

func fromXID(win xproto.Window) platform.WindowID {
	return platform.WindowID(win)
}
