package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/1broseidon/stacker/internal/platform"
)

// Map makes a managed window visible.
func (c *Connection) Map(id platform.WindowID) error {
	win := toXID(id)
	if err := xproto.MapWindowChecked(c.XUtil.Conn(), win).Check(); err != nil {
		return fmt.Errorf("map %d: %w", id, err)
	}
	icccm.WmStateSet(c.XUtil, win, &icccm.WmState{State: icccm.StateNormal})
	return nil
}

// Unmap hides a managed window. The resulting UnmapNotify is swallowed.
func (c *Connection) Unmap(id platform.WindowID) error {
	win := toXID(id)
	c.expectUnmap(win)
	if err := xproto.UnmapWindowChecked(c.XUtil.Conn(), win).Check(); err != nil {
		c.consumeUnmap(win)
		return fmt.Errorf("unmap %d: %w", id, err)
	}
	icccm.WmStateSet(c.XUtil, win, &icccm.WmState{State: icccm.StateIconic})
	return nil
}

// Configure moves and resizes a window and tells the client where it ended up.
func (c *Connection) Configure(id platform.WindowID, r platform.Rect) error {
	win := toXID(id)
	mask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY |
		xproto.ConfigWindowWidth | xproto.ConfigWindowHeight |
		xproto.ConfigWindowBorderWidth)
	values := []uint32{
		uint32(int32(r.X)), uint32(int32(r.Y)),
		uint32(r.Width), uint32(r.Height),
		uint32(c.opts.BorderWidth),
	}
	if err := xproto.ConfigureWindowChecked(c.XUtil.Conn(), win, mask, values).Check(); err != nil {
		return fmt.Errorf("configure %d: %w", id, err)
	}
	c.sendConfigureNotify(win, r)
	return nil
}

// Restack raises the windows of a workspace in bottom-to-top order, leaving
// them in that relative order above everything else.
func (c *Connection) Restack(workspace int, bottomToTop []platform.WindowID) error {
	for _, id := range bottomToTop {
		err := xproto.ConfigureWindowChecked(c.XUtil.Conn(), toXID(id),
			xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove}).Check()
		if err != nil {
			return fmt.Errorf("restack workspace %d at %d: %w", workspace, id, err)
		}
	}
	return nil
}

// SetInputFocus gives id the keyboard focus. platform.NoWindow hands focus
// back to the root window.
func (c *Connection) SetInputFocus(id platform.WindowID) error {
	if id == platform.NoWindow {
		xproto.SetInputFocus(c.XUtil.Conn(), xproto.InputFocusPointerRoot, c.Root, xproto.TimeCurrentTime)
		return nil
	}

	win := toXID(id)
	c.setBorder(win, c.opts.ActiveBorder)
	if err := xproto.SetInputFocusChecked(c.XUtil.Conn(), xproto.InputFocusPointerRoot, win, xproto.TimeCurrentTime).Check(); err != nil {
		return fmt.Errorf("focus %d: %w", id, err)
	}
	return nil
}

// Unfocus restyles the window that lost focus.
func (c *Connection) Unfocus(id platform.WindowID) error {
	c.setBorder(toXID(id), c.opts.InactiveBorder)
	return nil
}

// Close asks the client to close id through WM_DELETE_WINDOW, or kills the
// client when it does not support the protocol.
func (c *Connection) Close(id platform.WindowID) error {
	win := toXID(id)

	protocols, err := icccm.WmProtocolsGet(c.XUtil, win)
	if err == nil && contains(protocols, "WM_DELETE_WINDOW") {
		protoAtom, err := xprop.Atm(c.XUtil, "WM_PROTOCOLS")
		if err != nil {
			return fmt.Errorf("close %d: %w", id, err)
		}
		deleteAtom, err := xprop.Atm(c.XUtil, "WM_DELETE_WINDOW")
		if err != nil {
			return fmt.Errorf("close %d: %w", id, err)
		}
		ev := xproto.ClientMessageEvent{
			Format: 32,
			Window: win,
			Type:   protoAtom,
			Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(deleteAtom), uint32(xproto.TimeCurrentTime), 0, 0, 0}),
		}
		return xproto.SendEventChecked(c.XUtil.Conn(), false, win, xproto.EventMaskNoEvent, string(ev.Bytes())).Check()
	}

	c.logger.Debug().Uint32("window", uint32(id)).Msg("client lacks WM_DELETE_WINDOW, killing")
	return xproto.KillClientChecked(c.XUtil.Conn(), uint32(win)).Check()
}

func (c *Connection) setBorder(win xproto.Window, color uint32) {
	if c.opts.BorderWidth <= 0 {
		return
	}
	xproto.ChangeWindowAttributes(c.XUtil.Conn(), win, xproto.CwBorderPixel, []uint32{color})
}

func (c *Connection) sendConfigureNotify(win xproto.Window, r platform.Rect) {
	ev := xproto.ConfigureNotifyEvent{
		Event:            win,
		Window:           win,
		AboveSibling:     xevent.NoWindow,
		X:                int16(r.X),
		Y:                int16(r.Y),
		Width:            uint16(r.Width),
		Height:           uint16(r.Height),
		BorderWidth:      uint16(c.opts.BorderWidth),
		OverrideRedirect: false,
	}
	xproto.SendEvent(c.XUtil.Conn(), false, win, xproto.EventMaskStructureNotify, string(ev.Bytes()))
}

// Title returns the window title, preferring _NET_WM_NAME.
func (c *Connection) Title(win xproto.Window) string {
	name, err := ewmh.WmNameGet(c.XUtil, win)
	if name == "" || err != nil {
		name, _ = icccm.WmNameGet(c.XUtil, win)
	}
	return name
}

// Geometry returns the window rectangle relative to the root window.
func (c *Connection) Geometry(win xproto.Window) (platform.Rect, error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(win)).Reply()
	if err != nil {
		return platform.Rect{}, fmt.Errorf("geometry of %d: %w", win, err)
	}
	return platform.Rect{
		X:      int(geom.X),
		Y:      int(geom.Y),
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}, nil
}

// IsNormalWindow checks if a window is a normal application window
func (c *Connection) IsNormalWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		// If we can't determine type, assume it's normal
		return true
	}
	return normalWindowType(types)
}

func normalWindowType(types []string) bool {
	for _, t := range types {
		switch t {
		case "_NET_WM_WINDOW_TYPE_NORMAL", "_NET_WM_WINDOW_TYPE_DIALOG", "_NET_WM_WINDOW_TYPE_UTILITY":
			return true
		case "_NET_WM_WINDOW_TYPE_DESKTOP", "_NET_WM_WINDOW_TYPE_DOCK",
			"_NET_WM_WINDOW_TYPE_SPLASH", "_NET_WM_WINDOW_TYPE_NOTIFICATION":
			return false
		}
	}
	// If no specific type is set, assume it's normal
	return len(types) == 0
}

// ListWindows returns every top-level window the server still knows about.
func (c *Connection) ListWindows() ([]platform.WindowID, error) {
	tree, err := xproto.QueryTree(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to query window tree: %w", err)
	}
	ids := make([]platform.WindowID, 0, len(tree.Children))
	for _, win := range tree.Children {
		ids = append(ids, fromXID(win))
	}
	return ids, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
