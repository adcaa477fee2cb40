package wm

import (
	"slices"

	"github.com/1broseidon/stacker/internal/platform"
)

// Tasklist is the per-workspace order shown to the user. It is tracked
// separately from the z-order and never affects focus.
type Tasklist struct {
	lists [NumWorkspaces][]platform.WindowID
}

func NewTasklist() *Tasklist {
	return &Tasklist{}
}

// InsertAfter adds id right after anchor, or at the end when anchor is not
// in the list.
func (t *Tasklist) InsertAfter(ws int, id, anchor platform.WindowID) {
	if !ValidWorkspace(ws) {
		return
	}
	t.lists[ws], _ = without(t.lists[ws], id)
	i := slices.Index(t.lists[ws], anchor)
	if anchor == platform.NoWindow || i < 0 {
		t.lists[ws] = append(t.lists[ws], id)
		return
	}
	t.lists[ws] = insertAt(t.lists[ws], i+1, id)
}

// Append adds id at the end of the list.
func (t *Tasklist) Append(ws int, id platform.WindowID) {
	t.InsertAfter(ws, id, platform.NoWindow)
}

// Remove deletes id from ws.
func (t *Tasklist) Remove(ws int, id platform.WindowID) bool {
	if !ValidWorkspace(ws) {
		return false
	}
	var removed bool
	t.lists[ws], removed = without(t.lists[ws], id)
	return removed
}

// Move splices id to position pos, clamped to the list bounds.
func (t *Tasklist) Move(ws int, id platform.WindowID, pos int) bool {
	if !ValidWorkspace(ws) {
		return false
	}
	list, ok := without(t.lists[ws], id)
	if !ok {
		return false
	}
	t.lists[ws] = insertAt(list, pos, id)
	return true
}

// Shift swaps id with the entry delta positions away. At either end the
// partner wraps around, so only the two entries trade places.
func (t *Tasklist) Shift(ws int, id platform.WindowID, delta int) bool {
	if !ValidWorkspace(ws) {
		return false
	}
	list := t.lists[ws]
	i := slices.Index(list, id)
	if i < 0 {
		return false
	}
	j := wrap(i+delta, len(list))
	list[i], list[j] = list[j], list[i]
	return true
}

// Neighbor returns the window delta positions away from id, wrapping
// around. When id is not listed the first (delta > 0) or last entry is
// returned.
func (t *Tasklist) Neighbor(ws int, id platform.WindowID, delta int) (platform.WindowID, bool) {
	if !ValidWorkspace(ws) || len(t.lists[ws]) == 0 {
		return platform.NoWindow, false
	}
	list := t.lists[ws]
	i := slices.Index(list, id)
	if i < 0 {
		if delta >= 0 {
			return list[0], true
		}
		return list[len(list)-1], true
	}
	return list[wrap(i+delta, len(list))], true
}

// Order returns a copy of the tasklist of ws.
func (t *Tasklist) Order(ws int) []platform.WindowID {
	if !ValidWorkspace(ws) {
		return nil
	}
	return slices.Clone(t.lists[ws])
}
