package wm

import (
	"fmt"

	"github.com/1broseidon/stacker/internal/platform"
)

// GrabState is the state of the interactive move/resize machine.
type GrabState int

const (
	GrabIdle GrabState = iota
	GrabMoving
	GrabResizing
)

func (s GrabState) String() string {
	switch s {
	case GrabIdle:
		return "idle"
	case GrabMoving:
		return "moving"
	case GrabResizing:
		return "resizing"
	default:
		return "unknown"
	}
}

// GrabSession is the data captured when a grab starts.
type GrabSession struct {
	ID       platform.WindowID `json:"id"`
	Mode     GrabMode          `json:"-"`
	Pointer  platform.Point    `json:"pointer"`
	Geometry platform.Rect     `json:"geometry"`
}

// GrabController drives interactive move and resize.
type GrabController struct {
	state   GrabState
	session GrabSession
}

func NewGrabController() *GrabController {
	return &GrabController{}
}

// Start begins a session on id.
func (g *GrabController) Start(id platform.WindowID, mode GrabMode, pointer platform.Point, geometry platform.Rect) error {
	if g.state != GrabIdle {
		return fmt.Errorf("grab window %d while %s window %d: %w", id, g.state, g.session.ID, ErrGrabActive)
	}
	switch mode {
	case GrabMove:
		g.state = GrabMoving
	case GrabResize:
		g.state = GrabResizing
	default:
		return fmt.Errorf("unknown grab mode %d", mode)
	}
	g.session = GrabSession{ID: id, Mode: mode, Pointer: pointer, Geometry: geometry}
	return nil
}

// Motion returns the geometry the grabbed window should take for pointer p.
// The delta is always measured from the session start.
func (g *GrabController) Motion(p platform.Point) (platform.WindowID, platform.Rect, bool) {
	dx := p.X - g.session.Pointer.X
	dy := p.Y - g.session.Pointer.Y
	r := g.session.Geometry
	switch g.state {
	case GrabMoving:
		return g.session.ID, r.Translate(dx, dy), true
	case GrabResizing:
		r.Width += dx
		r.Height += dy
		return g.session.ID, r.Normalized(), true
	default:
		return platform.NoWindow, platform.Rect{}, false
	}
}

// Release ends the session. It reports whether one was active.
func (g *GrabController) Release() bool {
	if g.state == GrabIdle {
		return false
	}
	g.state = GrabIdle
	g.session = GrabSession{}
	return true
}

// Cancel ends the session if it operates on id.
func (g *GrabController) Cancel(id platform.WindowID) bool {
	if g.state == GrabIdle || g.session.ID != id {
		return false
	}
	return g.Release()
}

func (g *GrabController) State() GrabState {
	return g.state
}

// Session returns the active session, if any.
func (g *GrabController) Session() (GrabSession, bool) {
	return g.session, g.state != GrabIdle
}
