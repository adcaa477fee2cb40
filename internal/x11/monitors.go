package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/1broseidon/stacker/internal/placement"
	"github.com/1broseidon/stacker/internal/platform"
)

// Screens retrieves all active monitors using XRandR. The usable area of
// each excludes the struts of dock windows. Without RandR the root window
// is the only screen.
func (c *Connection) Screens() ([]platform.Screen, error) {
	screens, err := c.randrScreens()
	if err != nil || len(screens) == 0 {
		if err != nil {
			c.logger.Debug().Err(err).Msg("randr unavailable, using root window geometry")
		}
		root, gerr := c.Geometry(c.Root)
		if gerr != nil {
			return nil, gerr
		}
		screens = []platform.Screen{{ID: 0, Name: "root", Bounds: root}}
	}

	rootGeom, err := c.Geometry(c.Root)
	if err != nil {
		return nil, err
	}
	struts := c.dockStruts(rootGeom)
	for i := range screens {
		screens[i].Usable = applyStruts(screens[i].Bounds, rootGeom, struts)
	}
	return screens, nil
}

func (c *Connection) randrScreens() ([]platform.Screen, error) {
	// Initialize RandR if not already done
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	// Get screen resources
	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var screens []platform.Screen

	// Query each CRTC for active monitors
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		outputName := fmt.Sprintf("Monitor%d", i)
		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			outputName = string(outputInfo.Name)
		}

		screens = append(screens, platform.Screen{
			ID:   i,
			Name: outputName,
			Bounds: platform.Rect{
				X:      int(crtcInfo.X),
				Y:      int(crtcInfo.Y),
				Width:  int(crtcInfo.Width),
				Height: int(crtcInfo.Height),
			},
		})
	}

	return screens, nil
}

// WorkArea returns the area new and maximized windows are fitted to: the
// usable part of the screen under the pointer, inset by the padding.
func (c *Connection) WorkArea(padding placement.Margins) (platform.Rect, error) {
	screens, err := c.Screens()
	if err != nil {
		return platform.Rect{}, err
	}

	screen := screens[0]
	if pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		p := platform.Point{X: int(pointer.RootX), Y: int(pointer.RootY)}
		for _, s := range screens {
			if s.Bounds.Contains(p) {
				screen = s
				break
			}
		}
	}
	return placement.WorkArea(screen.Usable, padding), nil
}

// struts are the screen edges reserved by docks and panels, as strut
// rectangles in root coordinates.
type struts []platform.Rect

func (c *Connection) dockStruts(root platform.Rect) struts {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil
	}

	var out struts
	for _, windowID := range clients {
		types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
		if err != nil || !contains(types, "_NET_WM_WINDOW_TYPE_DOCK") {
			continue
		}

		if sp, err := ewmh.WmStrutPartialGet(c.XUtil, windowID); err == nil {
			out = append(out, strutRects(root, sp)...)
			continue
		}

		// Some docks only set _NET_WM_STRUT (no partial ranges).
		if s, err := ewmh.WmStrutGet(c.XUtil, windowID); err == nil {
			out = append(out, strutRects(root, &ewmh.WmStrutPartial{
				Left:       s.Left,
				Right:      s.Right,
				Top:        s.Top,
				Bottom:     s.Bottom,
				LeftEndY:   uint(root.Height - 1),
				RightEndY:  uint(root.Height - 1),
				TopEndX:    uint(root.Width - 1),
				BottomEndX: uint(root.Width - 1),
			})...)
		}
	}
	return out
}

// strutRects converts a partial strut into the rectangles it reserves.
func strutRects(root platform.Rect, sp *ewmh.WmStrutPartial) struts {
	var out struts
	if sp.Top > 0 {
		out = append(out, platform.Rect{X: int(sp.TopStartX), Y: 0, Width: int(sp.TopEndX) - int(sp.TopStartX) + 1, Height: int(sp.Top)})
	}
	if sp.Bottom > 0 {
		out = append(out, platform.Rect{X: int(sp.BottomStartX), Y: root.Height - int(sp.Bottom), Width: int(sp.BottomEndX) - int(sp.BottomStartX) + 1, Height: int(sp.Bottom)})
	}
	if sp.Left > 0 {
		out = append(out, platform.Rect{X: 0, Y: int(sp.LeftStartY), Width: int(sp.Left), Height: int(sp.LeftEndY) - int(sp.LeftStartY) + 1})
	}
	if sp.Right > 0 {
		out = append(out, platform.Rect{X: root.Width - int(sp.Right), Y: int(sp.RightStartY), Width: int(sp.Right), Height: int(sp.RightEndY) - int(sp.RightStartY) + 1})
	}
	return out
}

// applyStruts shrinks a monitor by the struts overlapping it. A strut
// touching the top of the root window reserves the top of the monitor, and
// so on for the other edges.
func applyStruts(mon, root platform.Rect, reserved struts) platform.Rect {
	var top, bottom, left, right int
	for _, s := range reserved {
		isect := intersection(mon, s)
		if isect.Empty() {
			continue
		}
		switch {
		case s.Y == 0 && s.Width > s.Height:
			top = max(top, isect.Y+isect.Height-mon.Y)
		case s.Y+s.Height == root.Height && s.Width > s.Height:
			bottom = max(bottom, mon.Y+mon.Height-isect.Y)
		case s.X == 0:
			left = max(left, isect.X+isect.Width-mon.X)
		default:
			right = max(right, mon.X+mon.Width-isect.X)
		}
	}

	out := platform.Rect{
		X:      mon.X + left,
		Y:      mon.Y + top,
		Width:  mon.Width - left - right,
		Height: mon.Height - top - bottom,
	}
	return out.Normalized()
}

func intersection(a, b platform.Rect) platform.Rect {
	x1 := max(a.X, b.X)
	y1 := max(a.Y, b.Y)
	x2 := min(a.X+a.Width, b.X+b.Width)
	y2 := min(a.Y+a.Height, b.Y+b.Height)

	if x2 <= x1 || y2 <= y1 {
		return platform.Rect{}
	}
	return platform.Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}
