package palette

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/1broseidon/stacker/internal/platform"
	"github.com/1broseidon/stacker/internal/wm"
)

// Client is the daemon access the switcher needs. *ipc.Client satisfies it.
type Client interface {
	GetState() (*wm.Snapshot, error)
	Exec(cmd string, window platform.WindowID) error
}

// WindowItems lists every managed window under a header per workspace, in
// tasklist order. The focused window is marked active.
func WindowItems(snap *wm.Snapshot) []Item {
	var items []Item
	for _, ws := range snap.Workspaces {
		if len(ws.Tasklist) == 0 {
			continue
		}
		header := fmt.Sprintf("Workspace %d", ws.Index+1)
		if ws.Index == snap.ActiveWorkspace {
			header += " (active)"
		}
		items = append(items, Item{Label: header, IsHeader: true})

		for _, id := range ws.Tasklist {
			w, _ := snap.Window(id)
			title := w.Title
			if title == "" {
				title = "(untitled)"
			}
			items = append(items, Item{
				Label:    fmt.Sprintf("%s  [0x%x]", title, uint32(id)),
				Info:     strconv.FormatUint(uint64(id), 10),
				IsActive: id == snap.Focused,
			})
		}
	}
	return items
}

// SwitchWindow lets the user pick a window and focuses it, switching to its
// workspace. Picking with the alternate key first moves the window to the
// active workspace.
func SwitchWindow(client Client, backend Backend) error {
	snap, err := client.GetState()
	if err != nil {
		return err
	}
	items := WindowItems(snap)
	if len(items) == 0 {
		return errors.New("no windows to switch to")
	}

	sel, err := backend.Show("window", items)
	if err != nil {
		return err
	}
	if sel.Item.IsHeader {
		return ErrCancelled
	}
	n, err := strconv.ParseUint(sel.Item.Info, 10, 32)
	if err != nil {
		return fmt.Errorf("palette: bad window id %q: %w", sel.Item.Info, err)
	}
	id := platform.WindowID(n)

	if sel.Alternate {
		if err := client.Exec(fmt.Sprintf("move_to_workspace(%d)", snap.ActiveWorkspace), id); err != nil {
			return err
		}
	}
	return client.Exec(fmt.Sprintf("focus(%d)", id), platform.NoWindow)
}
