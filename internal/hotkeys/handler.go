package hotkeys

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xcursor"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/rs/zerolog"

	"github.com/1broseidon/stacker/internal/command"
	"github.com/1broseidon/stacker/internal/platform"
	"github.com/1broseidon/stacker/internal/wm"
)

// Sink receives the events bindings produce. *daemon.Loop satisfies it.
type Sink interface {
	Post(ev wm.Event)
}

// Handler manages global keyboard and pointer bindings.
type Handler struct {
	xu     *xgbutil.XUtil
	root   xproto.Window
	sink   Sink
	logger zerolog.Logger
	cursor xproto.Cursor
}

var ignoreModsOnce sync.Once

// NewHandler creates a new binding handler on the root window.
func NewHandler(xu *xgbutil.XUtil, sink Sink, logger *zerolog.Logger) *Handler {
	ignoreModsOnce.Do(func() {
		configureIgnoreMods(xu)
	})

	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}

	h := &Handler{
		xu:     xu,
		root:   xu.RootWin(),
		sink:   sink,
		logger: l,
	}
	if cursor, err := xcursor.CreateCursor(xu, xcursor.Fleur); err == nil {
		h.cursor = cursor
	}
	return h
}

// Register binds keySequence to a command string.
func (h *Handler) Register(keySequence, cmd string) error {
	ev, err := command.Parse(cmd)
	if err != nil {
		return err
	}
	if command.IsGrab(ev) {
		return fmt.Errorf("%s: %q can only be bound to a mouse button", keySequence, cmd)
	}
	return h.RegisterFunc(keySequence, func() {
		h.logger.Debug().Str("keys", keySequence).Str("command", cmd).Msg("binding triggered")
		h.sink.Post(ev)
	})
}

// RegisterFunc registers an arbitrary hotkey callback.
func (h *Handler) RegisterFunc(keySequence string, callback func()) error {
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.root, keySequence, true)
}

// RegisterDrag binds a button sequence such as "Mod4-1" to an interactive
// move or resize of the window under the pointer.
func (h *Handler) RegisterDrag(buttonSequence string, mode wm.GrabMode) error {
	if buttonSequence == "" {
		return nil
	}

	begin := func(xu *xgbutil.XUtil, rootX, rootY, eventX, eventY int) (bool, xproto.Cursor) {
		target := h.windowUnderPointer()
		if target == platform.NoWindow {
			return false, 0
		}
		h.sink.Post(wm.GrabStart{
			ID:      target,
			Mode:    mode,
			Pointer: platform.Point{X: rootX, Y: rootY},
		})
		return true, h.cursor
	}
	step := func(xu *xgbutil.XUtil, rootX, rootY, eventX, eventY int) {
		h.sink.Post(wm.PointerMotion{Position: platform.Point{X: rootX, Y: rootY}})
	}
	end := func(xu *xgbutil.XUtil, rootX, rootY, eventX, eventY int) {
		h.sink.Post(wm.PointerRelease{})
	}

	if _, _, err := mousebind.ParseString(h.xu, buttonSequence); err != nil {
		return fmt.Errorf("invalid button sequence %q: %w", buttonSequence, err)
	}
	mousebind.Drag(h.xu, h.root, h.root, buttonSequence, true, begin, step, end)
	return nil
}

// windowUnderPointer returns the top-level window below the pointer.
func (h *Handler) windowUnderPointer() platform.WindowID {
	reply, err := xproto.QueryPointer(h.xu.Conn(), h.root).Reply()
	if err != nil || reply.Child == 0 {
		return platform.NoWindow
	}
	return platform.WindowID(reply.Child)
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	unique := make(map[uint16]struct{})
	add := func(mask uint16) {
		unique[mask] = struct{}{}
	}

	add(0)
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		add(mask)
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}

	xevent.IgnoreMods = ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
