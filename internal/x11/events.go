package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/1broseidon/stacker/internal/platform"
	"github.com/1broseidon/stacker/internal/wm"
)

// Sink receives core events translated from X. *daemon.Loop satisfies it.
type Sink interface {
	Post(ev wm.Event)
}

// Listen connects the root window handlers. focusClick is the button that
// focuses a window when clicked ("" disables click to focus). onScreen runs
// when the root window changes size.
func (c *Connection) Listen(sink Sink, focusClick string, onScreen func()) {
	xevent.MapRequestFun(func(xu *xgbutil.XUtil, ev xevent.MapRequestEvent) {
		c.handleMapRequest(sink, focusClick, ev.Window)
	}).Connect(c.XUtil, c.Root)

	xevent.ConfigureRequestFun(func(xu *xgbutil.XUtil, ev xevent.ConfigureRequestEvent) {
		c.handleConfigureRequest(sink, ev)
	}).Connect(c.XUtil, c.Root)

	xevent.UnmapNotifyFun(func(xu *xgbutil.XUtil, ev xevent.UnmapNotifyEvent) {
		if !c.isManaged(ev.Window) || c.consumeUnmap(ev.Window) {
			return
		}
		c.forget(ev.Window)
		sink.Post(wm.WindowGone{ID: fromXID(ev.Window)})
	}).Connect(c.XUtil, c.Root)

	xevent.DestroyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.DestroyNotifyEvent) {
		if !c.isManaged(ev.Window) {
			return
		}
		c.forget(ev.Window)
		sink.Post(wm.WindowGone{ID: fromXID(ev.Window)})
	}).Connect(c.XUtil, c.Root)

	xevent.ConfigureNotifyFun(func(xu *xgbutil.XUtil, ev xevent.ConfigureNotifyEvent) {
		if ev.Window == c.Root && onScreen != nil {
			onScreen()
		}
	}).Connect(c.XUtil, c.Root)
}

// Adopt manages the windows that existed before we started: viewable ones
// and ones a previous instance left iconified on a hidden workspace.
func (c *Connection) Adopt(sink Sink, focusClick string) int {
	tree, err := xproto.QueryTree(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to query existing windows")
		return 0
	}

	adopted := 0
	for _, win := range tree.Children {
		attrs, err := xproto.GetWindowAttributes(c.XUtil.Conn(), win).Reply()
		if err != nil || attrs.OverrideRedirect {
			continue
		}
		viewable := attrs.MapState == xproto.MapStateViewable
		if !viewable && !c.iconic(win) {
			continue
		}
		if !c.IsNormalWindow(win) {
			continue
		}
		if c.manage(sink, focusClick, win, true, viewable) {
			adopted++
		}
	}
	return adopted
}

func (c *Connection) handleMapRequest(sink Sink, focusClick string, win xproto.Window) {
	if c.isManaged(win) {
		// A managed window asking to be shown lives on a hidden workspace.
		sink.Post(wm.Focus{ID: fromXID(win)})
		return
	}

	attrs, err := xproto.GetWindowAttributes(c.XUtil.Conn(), win).Reply()
	if err != nil {
		return
	}
	if attrs.OverrideRedirect || !c.IsNormalWindow(win) {
		xproto.MapWindow(c.XUtil.Conn(), win)
		return
	}
	c.manage(sink, focusClick, win, false, false)
}

func (c *Connection) manage(sink Sink, focusClick string, win xproto.Window, existing, mapped bool) bool {
	geom, err := c.Geometry(win)
	if err != nil {
		c.logger.Debug().Err(err).Uint32("window", uint32(win)).Msg("window vanished before it was managed")
		return false
	}

	c.setManaged(win, true)
	xproto.ChangeWindowAttributes(c.XUtil.Conn(), win, xproto.CwEventMask,
		[]uint32{xproto.EventMaskPropertyChange})
	c.setBorder(win, c.opts.InactiveBorder)

	xevent.PropertyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		name, err := xprop.AtomName(xu, ev.Atom)
		if err != nil || !isTitleAtom(name) {
			return
		}
		sink.Post(wm.WindowRenamed{ID: fromXID(win), Title: c.Title(win)})
	}).Connect(c.XUtil, win)

	if focusClick != "" {
		err := mousebind.ButtonPressFun(func(xu *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
			sink.Post(wm.PointerClick{
				ID:       fromXID(win),
				Position: platform.Point{X: int(ev.RootX), Y: int(ev.RootY)},
			})
			// The grab is synchronous; let the click through to the client.
			xproto.AllowEvents(xu.Conn(), xproto.AllowReplayPointer, 0)
		}).Connect(c.XUtil, win, focusClick, true, true)
		if err != nil {
			c.logger.Warn().Err(err).Str("button", focusClick).Msg("failed to bind click to focus")
		}
	}

	sink.Post(wm.WindowAppeared{
		ID:       fromXID(win),
		Geometry: geom,
		Title:    c.Title(win),
		Existing: existing,
		Mapped:   mapped,
	})
	return true
}

// forget drops our per-window state once the window is gone.
func (c *Connection) forget(win xproto.Window) {
	c.setManaged(win, false)
	xevent.Detach(c.XUtil, win)
	mousebind.Detach(c.XUtil, win)
}

func (c *Connection) iconic(win xproto.Window) bool {
	state, err := icccm.WmStateGet(c.XUtil, win)
	return err == nil && state.State == icccm.StateIconic
}

func (c *Connection) handleConfigureRequest(sink Sink, ev xevent.ConfigureRequestEvent) {
	if !c.isManaged(ev.Window) {
		// Not ours: grant the request as asked.
		mask, values := configureValues(ev.ConfigureRequestEvent)
		xproto.ConfigureWindow(c.XUtil.Conn(), ev.Window, mask, values)
		return
	}

	geom, err := c.Geometry(ev.Window)
	if err != nil {
		return
	}
	sink.Post(wm.WindowResized{ID: fromXID(ev.Window), Geometry: requestedGeometry(geom, ev.ConfigureRequestEvent)})
}

// requestedGeometry applies the fields a ConfigureRequest sets to current.
func requestedGeometry(current platform.Rect, ev *xproto.ConfigureRequestEvent) platform.Rect {
	r := current
	if ev.ValueMask&xproto.ConfigWindowX != 0 {
		r.X = int(ev.X)
	}
	if ev.ValueMask&xproto.ConfigWindowY != 0 {
		r.Y = int(ev.Y)
	}
	if ev.ValueMask&xproto.ConfigWindowWidth != 0 {
		r.Width = int(ev.Width)
	}
	if ev.ValueMask&xproto.ConfigWindowHeight != 0 {
		r.Height = int(ev.Height)
	}
	return r
}

// configureValues packs a ConfigureRequest into ConfigureWindow arguments,
// in the bit order the protocol expects.
func configureValues(ev *xproto.ConfigureRequestEvent) (uint16, []uint32) {
	var values []uint32
	if ev.ValueMask&xproto.ConfigWindowX != 0 {
		values = append(values, uint32(int32(ev.X)))
	}
	if ev.ValueMask&xproto.ConfigWindowY != 0 {
		values = append(values, uint32(int32(ev.Y)))
	}
	if ev.ValueMask&xproto.ConfigWindowWidth != 0 {
		values = append(values, uint32(ev.Width))
	}
	if ev.ValueMask&xproto.ConfigWindowHeight != 0 {
		values = append(values, uint32(ev.Height))
	}
	if ev.ValueMask&xproto.ConfigWindowBorderWidth != 0 {
		values = append(values, uint32(ev.BorderWidth))
	}
	if ev.ValueMask&xproto.ConfigWindowSibling != 0 {
		values = append(values, uint32(ev.Sibling))
	}
	if ev.ValueMask&xproto.ConfigWindowStackMode != 0 {
		values = append(values, uint32(ev.StackMode))
	}
	return ev.ValueMask, values
}

func isTitleAtom(name string) bool {
	return name == "_NET_WM_NAME" || name == "WM_NAME"
}
