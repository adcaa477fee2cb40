package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/1broseidon/stacker/internal/ipc"
	"github.com/1broseidon/stacker/internal/logger"
	"github.com/1broseidon/stacker/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol integration",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server (stdio transport)",
	Long: `Start the MCP server on stdio. Designed to be invoked by MCP clients,
which can then read the window manager state and run commands.`,
	Example: `  claude mcp add stacker -- stacker mcp serve`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if res, err := loadConfig(); err == nil {
			res.Config.ApplyLogging()
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		server := mcp.NewServer(ipc.NewClient(), logger.WithComponent("mcp"))
		return server.Run(ctx)
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}
