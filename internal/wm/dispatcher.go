package wm

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/1broseidon/stacker/internal/platform"
)

// PlaceFunc chooses the geometry of a newly managed window inside area.
type PlaceFunc func(win, area platform.Rect) platform.Rect

// Options configures a Dispatcher.
type Options struct {
	// WorkArea is the region used for placement and maximize.
	WorkArea platform.Rect
	// Place positions new windows. Nil keeps the requested geometry.
	Place PlaceFunc
	// Logger defaults to a disabled logger.
	Logger *zerolog.Logger
}

// Dispatcher is the single reducer over display notifications and user
// commands. It is not safe for concurrent use; one goroutine owns it.
type Dispatcher struct {
	display    Display
	registry   *Registry
	stack      *StackOrder
	tasks      *Tasklist
	focus      *FocusController
	workspaces *WorkspaceManager
	grab       *GrabController

	workArea platform.Rect
	place    PlaceFunc
	log      zerolog.Logger
}

// NewDispatcher builds an empty core that sends its requests to display.
func NewDispatcher(display Display, opts Options) *Dispatcher {
	registry := NewRegistry()
	stack := NewStackOrder()
	tasks := NewTasklist()
	focus := NewFocusController(stack)

	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	return &Dispatcher{
		display:    display,
		registry:   registry,
		stack:      stack,
		tasks:      tasks,
		focus:      focus,
		workspaces: NewWorkspaceManager(registry, stack, tasks, focus),
		grab:       NewGrabController(),
		workArea:   opts.WorkArea,
		place:      opts.Place,
		log:        log,
	}
}

// SetWorkArea replaces the work area, e.g. after a screen change.
func (d *Dispatcher) SetWorkArea(r platform.Rect) {
	d.workArea = r
}

// Handle applies one event and sends the resulting display requests. The
// returned error is informational: the state is consistent either way.
func (d *Dispatcher) Handle(ev Event) error {
	fx := newPlan(d.registry, d.stack)
	err := d.apply(ev, fx)
	fx.flush(d.display, d.log)

	if err != nil {
		lvl := zerolog.WarnLevel
		if errors.Is(err, ErrUnknownHandle) || errors.Is(err, ErrDuplicateHandle) {
			lvl = zerolog.DebugLevel
		}
		d.log.WithLevel(lvl).Err(err).Type("event", ev).Msg("event not fully applied")
	}
	return err
}

func (d *Dispatcher) apply(ev Event, fx *plan) error {
	switch e := ev.(type) {
	case WindowAppeared:
		return d.windowAppeared(e, fx)
	case WindowGone:
		return d.windowGone(e, fx)
	case WindowResized:
		return d.windowResized(e, fx)
	case WindowRenamed:
		return d.registry.SetTitle(e.ID, e.Title)
	case PointerClick:
		return d.activate(e.ID, fx)
	case PointerMotion:
		return d.pointerMotion(e.Position, fx)
	case PointerRelease:
		d.grab.Release()
		return nil
	case Raise:
		return d.withTarget(e.ID, func(id platform.WindowID) error { return d.raise(id, fx) })
	case Lower:
		return d.withTarget(e.ID, func(id platform.WindowID) error { return d.lower(id, fx) })
	case CycleNext:
		return d.cycle(d.stack.RaiseNext, fx)
	case CyclePrev:
		return d.cycle(d.stack.RaisePrev, fx)
	case SwitchWorkspace:
		return d.workspaces.SwitchTo(e.Index, fx)
	case StepWorkspace:
		return d.workspaces.Step(e.Delta, fx)
	case MoveToWorkspace:
		if !ValidWorkspace(e.Index) {
			return fmt.Errorf("move to workspace %d: %w", e.Index, ErrInvalidWorkspace)
		}
		return d.withTarget(e.ID, func(id platform.WindowID) error { return d.workspaces.MoveWindow(id, e.Index, fx) })
	case ReorderTasklist:
		return d.withTarget(e.ID, func(id platform.WindowID) error { return d.workspaces.Reorder(id, e.Position, fx) })
	case ShiftTasklist:
		return d.withTarget(e.ID, func(id platform.WindowID) error { return d.workspaces.Shift(id, e.Delta, fx) })
	case TasklistNext:
		return d.tasklistStep(1, fx)
	case TasklistPrev:
		return d.tasklistStep(-1, fx)
	case Focus:
		return d.withTarget(e.ID, func(id platform.WindowID) error { return d.activate(id, fx) })
	case GrabStart:
		return d.withTarget(e.ID, func(id platform.WindowID) error { return d.grabStart(id, e, fx) })
	case GrabEnd:
		d.grab.Release()
		return nil
	case ToggleMaximize:
		return d.withTarget(e.ID, func(id platform.WindowID) error { return d.toggleMaximize(id, fx) })
	case Close:
		return d.withTarget(e.ID, func(id platform.WindowID) error {
			if !d.registry.Has(id) {
				return fmt.Errorf("close window %d: %w", id, ErrUnknownHandle)
			}
			fx.Close(id)
			return nil
		})
	default:
		return fmt.Errorf("unhandled event %T", ev)
	}
}

// withTarget resolves a zero handle to the focused window.
func (d *Dispatcher) withTarget(id platform.WindowID, fn func(platform.WindowID) error) error {
	if id == platform.NoWindow {
		id = d.focus.Focused()
		if id == platform.NoWindow {
			return ErrNoWindow
		}
	}
	return fn(id)
}

func (d *Dispatcher) windowAppeared(e WindowAppeared, fx *plan) error {
	if d.registry.Has(e.ID) {
		_ = d.registry.SetGeometry(e.ID, e.Geometry)
		if e.Title != "" {
			_ = d.registry.SetTitle(e.ID, e.Title)
		}
		if w, err := d.registry.Get(e.ID); err == nil && w.Mapped {
			fx.Configure(e.ID, w.Geometry)
		}
		return fmt.Errorf("window %d appeared again: %w", e.ID, ErrDuplicateHandle)
	}

	geom := e.Geometry.Normalized()
	if d.place != nil && !e.Existing {
		geom = d.place(geom, d.workArea)
	}
	if _, err := d.registry.Register(e.ID, geom); err != nil {
		return err
	}

	active := d.workspaces.Active()
	_ = d.registry.SetTitle(e.ID, e.Title)
	_ = d.registry.SetWorkspace(e.ID, active)
	_ = d.registry.SetMapped(e.ID, e.Existing && e.Mapped)

	anchor := d.focus.Focused()
	if err := d.stack.Insert(active, e.ID); err != nil {
		return err
	}
	d.tasks.InsertAfter(active, e.ID, anchor)

	fx.Configure(e.ID, geom)
	fx.Map(e.ID)
	fx.Restack(active)
	fx.Focus(d.focus.Sync(active, active))
	return nil
}

func (d *Dispatcher) windowGone(e WindowGone, fx *plan) error {
	id := e.ID
	w, err := d.registry.Get(id)
	if err != nil {
		return err
	}
	if e.Generation != 0 && e.Generation != w.Generation {
		return fmt.Errorf("window %d generation %d replaced by %d: %w", id, e.Generation, w.Generation, ErrUnknownHandle)
	}
	d.grab.Cancel(id)
	d.stack.Remove(w.Workspace, id)
	d.tasks.Remove(w.Workspace, id)
	d.focus.Forget(id)
	if err := d.registry.Unregister(id); err != nil {
		return err
	}
	fx.Focus(d.focus.Sync(w.Workspace, d.workspaces.Active()))
	return nil
}

func (d *Dispatcher) windowResized(e WindowResized, fx *plan) error {
	w, err := d.registry.Get(e.ID)
	if err != nil {
		return err
	}
	if w.Maximized {
		// Keep the maximized geometry; remember the request for restore.
		_ = d.registry.SetMaximized(e.ID, true, e.Geometry.Normalized())
		fx.Configure(e.ID, w.Geometry)
		return nil
	}
	if err := d.registry.SetGeometry(e.ID, e.Geometry); err != nil {
		return err
	}
	fx.Configure(e.ID, e.Geometry.Normalized())
	return nil
}

// activate makes id the focused window: its workspace becomes active and
// it is raised to the top.
func (d *Dispatcher) activate(id platform.WindowID, fx *plan) error {
	w, err := d.registry.Get(id)
	if err != nil {
		return err
	}
	if w.Workspace != d.workspaces.Active() {
		if err := d.workspaces.SwitchTo(w.Workspace, fx); err != nil {
			return err
		}
	}
	return d.raise(id, fx)
}

func (d *Dispatcher) raise(id platform.WindowID, fx *plan) error {
	w, err := d.registry.Get(id)
	if err != nil {
		return err
	}
	d.stack.Raise(w.Workspace, id)
	fx.Restack(w.Workspace)
	fx.Focus(d.focus.Sync(w.Workspace, d.workspaces.Active()))
	return nil
}

func (d *Dispatcher) lower(id platform.WindowID, fx *plan) error {
	w, err := d.registry.Get(id)
	if err != nil {
		return err
	}
	d.stack.Lower(w.Workspace, id)
	fx.Restack(w.Workspace)
	fx.Focus(d.focus.Sync(w.Workspace, d.workspaces.Active()))
	return nil
}

func (d *Dispatcher) cycle(step func(int) bool, fx *plan) error {
	active := d.workspaces.Active()
	if step(active) {
		fx.Restack(active)
	}
	fx.Focus(d.focus.Sync(active, active))
	return nil
}

func (d *Dispatcher) tasklistStep(delta int, fx *plan) error {
	active := d.workspaces.Active()
	next, ok := d.tasks.Neighbor(active, d.focus.Focused(), delta)
	if !ok {
		return nil
	}
	return d.raise(next, fx)
}

func (d *Dispatcher) pointerMotion(p platform.Point, fx *plan) error {
	id, r, ok := d.grab.Motion(p)
	if !ok {
		return nil
	}
	if err := d.registry.SetGeometry(id, r); err != nil {
		d.grab.Cancel(id)
		return err
	}
	fx.Configure(id, r)
	return nil
}

func (d *Dispatcher) grabStart(id platform.WindowID, e GrabStart, fx *plan) error {
	if d.grab.State() != GrabIdle {
		s, _ := d.grab.Session()
		return fmt.Errorf("grab window %d while window %d is grabbed: %w", id, s.ID, ErrGrabActive)
	}
	if err := d.activate(id, fx); err != nil {
		return err
	}
	w, err := d.registry.Get(id)
	if err != nil {
		return err
	}
	if w.Maximized {
		return fmt.Errorf("grab window %d: %w", id, ErrMaximized)
	}
	return d.grab.Start(id, e.Mode, e.Pointer, w.Geometry)
}

func (d *Dispatcher) toggleMaximize(id platform.WindowID, fx *plan) error {
	w, err := d.registry.Get(id)
	if err != nil {
		return err
	}
	d.grab.Cancel(id)
	if w.Maximized {
		restore := w.Restore
		_ = d.registry.SetMaximized(id, false, platform.Rect{})
		_ = d.registry.SetGeometry(id, restore)
		fx.Configure(id, restore.Normalized())
		return nil
	}
	if d.workArea.Empty() {
		return fmt.Errorf("maximize window %d: %w", id, ErrNoWorkArea)
	}
	_ = d.registry.SetMaximized(id, true, w.Geometry)
	_ = d.registry.SetGeometry(id, d.workArea)
	fx.Configure(id, d.workArea)
	return nil
}
