package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/1broseidon/stacker/internal/ipc"
	"github.com/1broseidon/stacker/internal/palette"
)

var switchBackend string

var switchCmd = &cobra.Command{
	Use:   "switch",
	Short: "Pick a window from a rofi or dmenu menu and focus it",
	Long: `Show every managed window grouped by workspace. Selecting a window
switches to its workspace and focuses it. With rofi, Alt+Return brings the
window to the active workspace instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := palette.NewBackend(switchBackend)
		if err != nil {
			return err
		}
		err = palette.SwitchWindow(ipc.NewClient(), backend)
		if errors.Is(err, palette.ErrCancelled) {
			return nil
		}
		return err
	},
}

func init() {
	switchCmd.Flags().StringVar(&switchBackend, "backend", "auto", "menu program (auto, rofi, dmenu)")
	rootCmd.AddCommand(switchCmd)
}
