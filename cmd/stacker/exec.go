package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/1broseidon/stacker/internal/command"
	"github.com/1broseidon/stacker/internal/ipc"
	"github.com/1broseidon/stacker/internal/platform"
)

var execWindow string

var execCmd = &cobra.Command{
	Use:   "exec COMMAND",
	Short: "Run a window manager command",
	Long: `Run a command in the running window manager. Commands use the same
names as keybindings. Without --window the command acts on the focused window.

Commands: ` + strings.Join(command.Names(), ", "),
	Example: `  stacker exec "switch_workspace(2)"
  stacker exec raise --window 0x1c00007
  stacker exec tasklist_next`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := command.Parse(args[0]); err != nil {
			return err
		}
		window, err := parseWindowID(execWindow)
		if err != nil {
			return err
		}
		return ipc.NewClient().Exec(args[0], window)
	},
}

func init() {
	execCmd.Flags().StringVar(&execWindow, "window", "", "target window id (decimal or 0x hex)")
	rootCmd.AddCommand(execCmd)
}

func parseWindowID(s string) (platform.WindowID, error) {
	if s == "" {
		return platform.NoWindow, nil
	}
	n, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid window id %q: %w", s, err)
	}
	return platform.WindowID(n), nil
}
