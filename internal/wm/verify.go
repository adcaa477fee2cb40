package wm

import (
	"errors"
	"fmt"
	"slices"
)

// Verify checks the cross-component invariants and returns every violation
// found. It is used by tests and by the daemon in debug mode.
func (d *Dispatcher) Verify() error {
	var errs []error
	seen := 0
	for ws := 0; ws < NumWorkspaces; ws++ {
		order := d.stack.Order(ws)
		seen += len(order)
		for _, id := range order {
			w, err := d.registry.Get(id)
			if err != nil {
				errs = append(errs, fmt.Errorf("workspace %d stacks unregistered window %d", ws, id))
				continue
			}
			if w.Workspace != ws {
				errs = append(errs, fmt.Errorf("window %d is on stack %d but records workspace %d", id, ws, w.Workspace))
			}
		}

		tasks := d.tasks.Order(ws)
		sortedStack := slices.Clone(order)
		slices.Sort(sortedStack)
		slices.Sort(tasks)
		if !slices.Equal(sortedStack, tasks) {
			errs = append(errs, fmt.Errorf("workspace %d tasklist does not match its stack", ws))
		}

		top, _ := d.stack.Topmost(ws)
		if got := d.focus.FocusedOn(ws); got != top && ws == d.workspaces.Active() {
			errs = append(errs, fmt.Errorf("workspace %d focus %d is not topmost %d", ws, got, top))
		}
		if ws == d.workspaces.Active() {
			for _, id := range order {
				if w, err := d.registry.Get(id); err == nil && !w.Mapped {
					errs = append(errs, fmt.Errorf("window %d on active workspace is not mapped", id))
				}
			}
		}
	}
	if seen != d.registry.Len() {
		errs = append(errs, fmt.Errorf("%d windows stacked, %d registered", seen, d.registry.Len()))
	}

	top, _ := d.stack.Topmost(d.workspaces.Active())
	if d.focus.Focused() != top {
		errs = append(errs, fmt.Errorf("focused window %d is not topmost %d of active workspace", d.focus.Focused(), top))
	}
	if s, ok := d.grab.Session(); ok && !d.registry.Has(s.ID) {
		errs = append(errs, fmt.Errorf("grab holds unregistered window %d", s.ID))
	}
	return errors.Join(errs...)
}
