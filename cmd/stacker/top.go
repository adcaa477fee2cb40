package main

import (
	"github.com/spf13/cobra"

	"github.com/1broseidon/stacker/internal/ipc"
	"github.com/1broseidon/stacker/internal/tui"
)

var topInterval = tui.DefaultInterval

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Watch workspaces and windows live",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(ipc.NewClient(), topInterval)
	},
}

func init() {
	topCmd.Flags().DurationVar(&topInterval, "interval", tui.DefaultInterval, "refresh interval")
	rootCmd.AddCommand(topCmd)
}
