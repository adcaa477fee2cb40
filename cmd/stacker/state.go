package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/1broseidon/stacker/internal/ipc"
	"github.com/1broseidon/stacker/internal/wm"
)

var stateJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := ipc.NewClient().GetStatus()
		if err != nil {
			return err
		}
		fmt.Printf("daemon_running:   %v\n", status.DaemonRunning)
		fmt.Printf("active_workspace: %d\n", status.ActiveWorkspace)
		fmt.Printf("focused:          0x%x\n", uint32(status.Focused))
		fmt.Printf("window_count:     %d\n", status.WindowCount)
		fmt.Printf("uptime_seconds:   %d\n", status.UptimeSeconds)
		return nil
	},
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print workspaces, stacks and tasklists",
	Long: `Print the window manager state. On a terminal the state is shown as a
table per workspace; otherwise, or with --json, as JSON.`,
	Example: `  # Human readable
  stacker state

  # Full snapshot for scripts
  stacker state --json | jq '.workspaces[.active_workspace]'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := ipc.NewClient().GetState()
		if err != nil {
			return err
		}
		if stateJSON || !term.IsTerminal(int(os.Stdout.Fd())) {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(snap)
		}
		return printState(os.Stdout, snap)
	},
}

func init() {
	stateCmd.Flags().BoolVar(&stateJSON, "json", false, "print the snapshot as JSON")
	rootCmd.AddCommand(statusCmd, stateCmd)
}

// printState writes every non-empty workspace, and the active one, with its
// stack listed top first.
func printState(out io.Writer, snap *wm.Snapshot) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, ws := range snap.Workspaces {
		active := ws.Index == snap.ActiveWorkspace
		if !active && len(ws.Stack) == 0 {
			continue
		}
		marker := ""
		if active {
			marker = " (active)"
		}
		fmt.Fprintf(w, "workspace %d%s\n", ws.Index+1, marker)
		fmt.Fprintln(w, "  \tWINDOW\tTASK\tGEOMETRY\tTITLE")
		for i := len(ws.Stack) - 1; i >= 0; i-- {
			id := ws.Stack[i]
			win, _ := snap.Window(id)
			focus := " "
			if id == ws.Focused {
				focus = "*"
			}
			task := "-"
			for pos, t := range ws.Tasklist {
				if t == id {
					task = fmt.Sprintf("%d", pos+1)
				}
			}
			geom := fmt.Sprintf("%dx%d+%d+%d", win.Geometry.Width, win.Geometry.Height, win.Geometry.X, win.Geometry.Y)
			if win.Maximized {
				geom += " max"
			}
			fmt.Fprintf(w, "  %s\t0x%x\t%s\t%s\t%s\n", focus, uint32(id), task, geom, win.Title)
		}
		fmt.Fprintln(w)
	}
	if snap.Grab != nil {
		fmt.Fprintf(w, "grab: %s 0x%x\n", snap.Grab.State, uint32(snap.Grab.ID))
	}
	return w.Flush()
}
