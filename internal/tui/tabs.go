package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/stacker/internal/platform"
	"github.com/1broseidon/stacker/internal/wm"
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	occupiedTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("238")).
				Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				Background(lipgloss.Color("236")).
				Padding(0, 2)

	tabBarStyle = lipgloss.NewStyle().
			MarginBottom(1)

	tabGap = lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		SetString(" ")

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("250")).
			MarginBottom(1)

	focusedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	hiddenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	grabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// renderWorkspaceBar renders one tab per workspace with its window count.
func renderWorkspaceBar(snap *wm.Snapshot, width int) string {
	var tabs []string
	for i := 0; i < wm.NumWorkspaces; i++ {
		label := fmt.Sprintf("%d", i+1)
		count := 0
		if snap != nil && i < len(snap.Workspaces) {
			count = len(snap.Workspaces[i].Stack)
		}
		if count > 0 {
			label += fmt.Sprintf(":%d", count)
		}

		switch {
		case snap != nil && i == snap.ActiveWorkspace:
			tabs = append(tabs, activeTabStyle.Render(label))
		case count > 0:
			tabs = append(tabs, occupiedTabStyle.Render(label))
		default:
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, intersperse(tabs, tabGap.Render())...)
	return tabBarStyle.Width(width).Render(row)
}

// intersperse inserts sep between each element of items.
func intersperse(items []string, sep string) []string {
	if len(items) <= 1 {
		return items
	}
	result := make([]string, 0, len(items)*2-1)
	for i, item := range items {
		if i > 0 {
			result = append(result, sep)
		}
		result = append(result, item)
	}
	return result
}

// renderWindows shows the active workspace: the stack top first next to the
// tasklist in cycling order.
func renderWindows(snap *wm.Snapshot, width, height int) string {
	box := lipgloss.NewStyle().Width(width).Height(height).Padding(0, 1)
	if snap == nil || snap.ActiveWorkspace < 0 || snap.ActiveWorkspace >= len(snap.Workspaces) {
		return box.Foreground(lipgloss.Color("241")).Render("waiting for state...")
	}
	ws := snap.Workspaces[snap.ActiveWorkspace]

	stack := make([]string, 0, len(ws.Stack))
	for i := len(ws.Stack) - 1; i >= 0; i-- {
		stack = append(stack, windowLine(snap, ws.Stack[i]))
	}
	if len(stack) == 0 {
		stack = append(stack, hiddenStyle.Render("(empty)"))
	}

	tasks := make([]string, 0, len(ws.Tasklist))
	for i, id := range ws.Tasklist {
		tasks = append(tasks, fmt.Sprintf("%d. %s", i+1, windowLine(snap, id)))
	}
	if len(tasks) == 0 {
		tasks = append(tasks, hiddenStyle.Render("(empty)"))
	}

	half := max((width-2)/2, 20)
	left := lipgloss.NewStyle().Width(half).Render(
		headingStyle.Render("Stack (top first)") + "\n" + strings.Join(stack, "\n"))
	right := lipgloss.NewStyle().Width(half).Render(
		headingStyle.Render("Tasklist") + "\n" + strings.Join(tasks, "\n"))

	content := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	if snap.Grab != nil {
		content += "\n\n" + grabStyle.Render(fmt.Sprintf("grab %s on %s at %d,%d",
			snap.Grab.State, windowRef(snap.Grab.ID), snap.Grab.Pointer.X, snap.Grab.Pointer.Y))
	}
	return box.Render(content)
}

// windowLine describes one window: focus marker, id, title and flags.
func windowLine(snap *wm.Snapshot, id platform.WindowID) string {
	w, ok := snap.Window(id)
	if !ok {
		return hiddenStyle.Render(windowRef(id) + " (unknown)")
	}

	line := fmt.Sprintf("%s %s %dx%d+%d+%d", windowRef(id), titleOrDash(w.Title),
		w.Geometry.Width, w.Geometry.Height, w.Geometry.X, w.Geometry.Y)
	if w.Maximized {
		line += " [max]"
	}
	switch {
	case id == snap.Focused:
		return focusedStyle.Render("● " + line)
	case !w.Mapped:
		return hiddenStyle.Render("  " + line + " [hidden]")
	default:
		return "  " + line
	}
}

func windowRef(id platform.WindowID) string {
	return fmt.Sprintf("0x%x", uint32(id))
}

func titleOrDash(title string) string {
	if strings.TrimSpace(title) == "" {
		return "-"
	}
	return fmt.Sprintf("%q", title)
}

// renderStatusBar renders the daemon connection status bar.
func renderStatusBar(snap *wm.Snapshot, err error, width int) string {
	var status string
	switch {
	case err != nil:
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("●")
		status = dot + " " + err.Error()
	case snap == nil:
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("●")
		status = dot + " connecting"
	default:
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●")
		parts := []string{
			dot + " daemon connected",
			fmt.Sprintf("workspace:%d", snap.ActiveWorkspace+1),
			fmt.Sprintf("windows:%d", len(snap.Windows)),
		}
		if snap.Focused != platform.NoWindow {
			parts = append(parts, "focused:"+windowRef(snap.Focused))
		}
		status = strings.Join(parts, "  ")
	}

	style := lipgloss.NewStyle().
		Width(width).
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("250")).
		Padding(0, 1)
	return style.Render(status)
}

// renderHelpBar renders the bottom keybinding bar and the last command.
func renderHelpBar(status string, width int) string {
	help := "1-9: workspace  h/l: prev/next workspace  j/k: tasklist  r: raise  m: maximize  q: quit"
	if status != "" {
		help = status + "  |  " + help
	}
	style := lipgloss.NewStyle().
		Width(width).
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	return style.Render(help)
}
