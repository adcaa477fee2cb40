package wm

import (
	"slices"

	"github.com/rs/zerolog"

	"github.com/1broseidon/stacker/internal/platform"
)

// Display is the set of requests the core makes to the display server.
type Display interface {
	Map(id platform.WindowID) error
	Unmap(id platform.WindowID) error
	Configure(id platform.WindowID, r platform.Rect) error
	Restack(workspace int, bottomToTop []platform.WindowID) error
	// SetInputFocus gives id the input focus. platform.NoWindow clears it.
	SetInputFocus(id platform.WindowID) error
	// Unfocus restyles a window that lost the focus.
	Unfocus(id platform.WindowID) error
	// Close asks the client to close the window.
	Close(id platform.WindowID) error
}

type configureCall struct {
	id   platform.WindowID
	rect platform.Rect
}

// plan collects the display requests produced while handling one event and
// emits them in a fixed order: configure, map, restack, unmap, focus, close.
type plan struct {
	registry *Registry
	stack    *StackOrder

	configures []configureCall
	maps       []platform.WindowID
	restacks   []int
	unmaps     []platform.WindowID
	focus      FocusChange
	focusSet   bool
	closes     []platform.WindowID
}

func newPlan(registry *Registry, stack *StackOrder) *plan {
	return &plan{registry: registry, stack: stack}
}

// Configure schedules a geometry update. Later updates of the same window
// replace earlier ones.
func (p *plan) Configure(id platform.WindowID, r platform.Rect) {
	for i := range p.configures {
		if p.configures[i].id == id {
			p.configures[i].rect = r
			return
		}
	}
	p.configures = append(p.configures, configureCall{id: id, rect: r})
}

// Map shows id unless it is already visible.
func (p *plan) Map(id platform.WindowID) {
	w, err := p.registry.Get(id)
	if err != nil || w.Mapped {
		return
	}
	_ = p.registry.SetMapped(id, true)
	if i := slices.Index(p.unmaps, id); i >= 0 {
		p.unmaps = slices.Delete(p.unmaps, i, i+1)
		return
	}
	p.maps = append(p.maps, id)
}

// Unmap hides id unless it is already hidden.
func (p *plan) Unmap(id platform.WindowID) {
	w, err := p.registry.Get(id)
	if err != nil || !w.Mapped {
		return
	}
	_ = p.registry.SetMapped(id, false)
	if i := slices.Index(p.maps, id); i >= 0 {
		p.maps = slices.Delete(p.maps, i, i+1)
		return
	}
	p.unmaps = append(p.unmaps, id)
}

// Restack schedules a restack of ws using its stack at flush time.
func (p *plan) Restack(ws int) {
	if !slices.Contains(p.restacks, ws) {
		p.restacks = append(p.restacks, ws)
	}
}

// Focus merges a focus change into the plan, keeping the first previous
// holder and the last new one.
func (p *plan) Focus(c FocusChange) {
	if !c.Changed() {
		return
	}
	if !p.focusSet {
		p.focus = c
		p.focusSet = true
		return
	}
	p.focus.Next = c.Next
}

// Close schedules a close request.
func (p *plan) Close(id platform.WindowID) {
	if !slices.Contains(p.closes, id) {
		p.closes = append(p.closes, id)
	}
}

// flush sends the collected requests. Display errors are logged and never
// roll back core state.
func (p *plan) flush(d Display, log zerolog.Logger) {
	report := func(op string, id platform.WindowID, err error) {
		if err != nil {
			log.Warn().Err(err).Str("op", op).Uint32("window", uint32(id)).Msg("display request failed")
		}
	}

	for _, c := range p.configures {
		if p.registry.Has(c.id) {
			report("configure", c.id, d.Configure(c.id, c.rect))
		}
	}
	for _, id := range p.maps {
		report("map", id, d.Map(id))
	}
	for _, ws := range p.restacks {
		if err := d.Restack(ws, p.stack.Order(ws)); err != nil {
			log.Warn().Err(err).Int("workspace", ws).Msg("restack failed")
		}
	}
	for _, id := range p.unmaps {
		report("unmap", id, d.Unmap(id))
	}
	if p.focusSet && p.focus.Changed() {
		if prev := p.focus.Prev; prev != platform.NoWindow && p.registry.Has(prev) {
			report("unfocus", prev, d.Unfocus(prev))
		}
		report("focus", p.focus.Next, d.SetInputFocus(p.focus.Next))
	}
	for _, id := range p.closes {
		report("close", id, d.Close(id))
	}
}
