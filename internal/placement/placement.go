package placement

import (
	"fmt"

	"github.com/1broseidon/stacker/internal/platform"
)

// DefaultWidth and DefaultHeight are used for windows that ask for the full
// width of the work area.
const (
	DefaultWidth  = 1000
	DefaultHeight = 800
)

// Mode selects how new windows are placed.
type Mode string

const (
	// ModeCenter centers new windows in the work area.
	ModeCenter Mode = "center"
	// ModeKeep keeps the requested position, pulled inside the work area.
	ModeKeep Mode = "keep"
)

// ParseMode validates a placement mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeCenter, ModeKeep:
		return Mode(s), nil
	case "":
		return ModeCenter, nil
	default:
		return "", fmt.Errorf("unknown placement %q (want %q or %q)", s, ModeCenter, ModeKeep)
	}
}

// Margins reserves space on each edge of the screen, e.g. for a panel.
type Margins struct {
	Top    int `yaml:"top"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
	Right  int `yaml:"right"`
}

// Validate rejects negative margins.
func (m Margins) Validate() error {
	if m.Top < 0 || m.Bottom < 0 || m.Left < 0 || m.Right < 0 {
		return fmt.Errorf("margins must be >= 0")
	}
	return nil
}

// WorkArea applies margins to a screen, returning the usable region.
func WorkArea(screen platform.Rect, m Margins) platform.Rect {
	area := platform.Rect{
		X:      screen.X + m.Left,
		Y:      screen.Y + m.Top,
		Width:  screen.Width - m.Left - m.Right,
		Height: screen.Height - m.Top - m.Bottom,
	}
	return area.Normalized()
}

// Inset shrinks r by n pixels on every side. Window borders are drawn
// outside the client area, so the maximize area is inset by the border width.
func Inset(r platform.Rect, n int) platform.Rect {
	if n <= 0 {
		return r
	}
	return platform.Rect{
		X:      r.X,
		Y:      r.Y,
		Width:  r.Width - 2*n,
		Height: r.Height - 2*n,
	}.Normalized()
}

// Center places win in the middle of area. Windows as wide as the area get
// the default size first.
func Center(win, area platform.Rect) platform.Rect {
	if area.Empty() {
		return win.Normalized()
	}
	if win.Width >= area.Width {
		win.Width = min(DefaultWidth, area.Width)
		win.Height = min(DefaultHeight, area.Height)
	}
	win.Width = min(win.Width, area.Width)
	win.Height = min(win.Height, area.Height)
	win = win.Normalized()
	win.X = area.X + (area.Width-win.Width)/2
	win.Y = area.Y + (area.Height-win.Height)/2
	return win
}

// Clamp moves win so that its top-left corner lies inside area.
func Clamp(win, area platform.Rect) platform.Rect {
	win = win.Normalized()
	if area.Empty() {
		return win
	}
	if win.X < area.X || win.X >= area.X+area.Width {
		win.X = area.X
	}
	if win.Y < area.Y || win.Y >= area.Y+area.Height {
		win.Y = area.Y
	}
	return win
}

// Func returns the placement function for mode.
func Func(mode Mode) func(win, area platform.Rect) platform.Rect {
	if mode == ModeKeep {
		return Clamp
	}
	return Center
}
