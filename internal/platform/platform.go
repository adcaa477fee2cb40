package platform

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// NoWindow is the zero handle. It never names a managed window.
const NoWindow WindowID = 0

// Point is a position in root (screen) coordinates.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Normalized returns r with width and height clamped to at least 1.
func (r Rect) Normalized() Rect {
	if r.Width < 1 {
		r.Width = 1
	}
	if r.Height < 1 {
		r.Height = 1
	}
	return r
}

// Translate returns r moved by dx, dy.
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Screen describes a physical display and its usable work area.
type Screen struct {
	ID     int
	Name   string
	Bounds Rect
	Usable Rect
}
