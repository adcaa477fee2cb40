package x11

import (
	"fmt"
	"slices"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/stacker/internal/platform"
	"github.com/1broseidon/stacker/internal/wm"
)

// WMName is advertised through _NET_SUPPORTING_WM_CHECK.
const WMName = "stacker"

var supportedAtoms = []string{
	"_NET_SUPPORTED",
	"_NET_SUPPORTING_WM_CHECK",
	"_NET_WM_NAME",
	"_NET_NUMBER_OF_DESKTOPS",
	"_NET_DESKTOP_NAMES",
	"_NET_CURRENT_DESKTOP",
	"_NET_WM_DESKTOP",
	"_NET_ACTIVE_WINDOW",
	"_NET_CLIENT_LIST",
	"_NET_CLIENT_LIST_STACKING",
}

// ewmhState is what was last written to the root window.
type ewmhState struct {
	published bool
	desktop   int
	active    platform.WindowID
	clients   []platform.WindowID
	stacking  []platform.WindowID
	desktops  map[platform.WindowID]int
}

// ewmhUpdate lists the hints that differ from the previous publication.
type ewmhUpdate struct {
	desktop  *int
	active   *platform.WindowID
	clients  []platform.WindowID
	stacking []platform.WindowID
	desktops map[platform.WindowID]int
}

// SetupEWMH announces the window manager and its fixed desktop layout.
func (c *Connection) SetupEWMH() error {
	check, err := xwindow.Create(c.XUtil, c.Root)
	if err != nil {
		return fmt.Errorf("failed to create check window: %w", err)
	}
	if err := ewmh.SupportingWmCheckSet(c.XUtil, c.Root, check.Id); err != nil {
		return fmt.Errorf("failed to set supporting wm check: %w", err)
	}
	if err := ewmh.SupportingWmCheckSet(c.XUtil, check.Id, check.Id); err != nil {
		return fmt.Errorf("failed to set supporting wm check: %w", err)
	}
	if err := ewmh.WmNameSet(c.XUtil, check.Id, WMName); err != nil {
		return fmt.Errorf("failed to set wm name: %w", err)
	}
	if err := ewmh.SupportedSet(c.XUtil, supportedAtoms); err != nil {
		return fmt.Errorf("failed to set supported hints: %w", err)
	}

	names := make([]string, wm.NumWorkspaces)
	for i := range names {
		names[i] = fmt.Sprintf("%d", i+1)
	}
	if err := ewmh.NumberOfDesktopsSet(c.XUtil, uint(wm.NumWorkspaces)); err != nil {
		return fmt.Errorf("failed to set desktop count: %w", err)
	}
	if err := ewmh.DesktopNamesSet(c.XUtil, names); err != nil {
		return fmt.Errorf("failed to set desktop names: %w", err)
	}
	return ewmh.CurrentDesktopSet(c.XUtil, 0)
}

// Publish mirrors a state snapshot into EWMH hints for pagers and panels.
// Only hints that changed since the last call are written.
func (c *Connection) Publish(snap wm.Snapshot) {
	up := c.ewmh.diff(snap)

	if up.desktop != nil {
		if err := ewmh.CurrentDesktopSet(c.XUtil, uint(*up.desktop)); err != nil {
			c.logger.Debug().Err(err).Msg("failed to publish current desktop")
		}
	}
	if up.active != nil {
		if err := ewmh.ActiveWindowSet(c.XUtil, toXID(*up.active)); err != nil {
			c.logger.Debug().Err(err).Msg("failed to publish active window")
		}
	}
	if up.clients != nil {
		if err := ewmh.ClientListSet(c.XUtil, toXIDs(up.clients)); err != nil {
			c.logger.Debug().Err(err).Msg("failed to publish client list")
		}
	}
	if up.stacking != nil {
		if err := ewmh.ClientListStackingSet(c.XUtil, toXIDs(up.stacking)); err != nil {
			c.logger.Debug().Err(err).Msg("failed to publish stacking list")
		}
	}
	for id, ws := range up.desktops {
		if err := ewmh.WmDesktopSet(c.XUtil, toXID(id), uint(ws)); err != nil {
			c.logger.Debug().Err(err).Uint32("window", uint32(id)).Msg("failed to publish window desktop")
		}
	}
}

// diff records snap as published and returns what changed.
func (s *ewmhState) diff(snap wm.Snapshot) ewmhUpdate {
	var up ewmhUpdate

	if !s.published || s.desktop != snap.ActiveWorkspace {
		d := snap.ActiveWorkspace
		up.desktop = &d
		s.desktop = d
	}
	if !s.published || s.active != snap.Focused {
		a := snap.Focused
		up.active = &a
		s.active = a
	}

	clients := make([]platform.WindowID, 0, len(snap.Windows))
	desktops := make(map[platform.WindowID]int, len(snap.Windows))
	for _, w := range snap.Windows {
		clients = append(clients, w.ID)
		desktops[w.ID] = w.Workspace
	}
	if !s.published || !slices.Equal(s.clients, clients) {
		up.clients = clients
		s.clients = clients
	}

	stacking := []platform.WindowID{}
	for _, ws := range snap.Workspaces {
		if ws.Index == snap.ActiveWorkspace {
			stacking = append(stacking, ws.Stack...)
		}
	}
	if !s.published || !slices.Equal(s.stacking, stacking) {
		up.stacking = stacking
		s.stacking = stacking
	}

	for id, ws := range desktops {
		if prev, ok := s.desktops[id]; !ok || prev != ws {
			if up.desktops == nil {
				up.desktops = make(map[platform.WindowID]int)
			}
			up.desktops[id] = ws
		}
	}
	s.desktops = desktops
	s.published = true
	return up
}

func toXIDs(ids []platform.WindowID) []xproto.Window {
	out := make([]xproto.Window, len(ids))
	for i, id := range ids {
		out[i] = toXID(id)
	}
	return out
}
