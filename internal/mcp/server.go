package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/1broseidon/stacker/internal/platform"
	"github.com/1broseidon/stacker/internal/wm"
)

const (
	ServerName    = "stacker"
	ServerVersion = "0.1.0"
)

// Client is the daemon connection the tools act through. *ipc.Client
// satisfies it.
type Client interface {
	GetState() (*wm.Snapshot, error)
	Exec(cmd string, window platform.WindowID) error
}

// Server is the MCP server exposing window manager control.
type Server struct {
	mcpServer *mcpsdk.Server
	client    Client
	logger    zerolog.Logger
}

// NewServer creates a new MCP server that talks to the daemon through client.
func NewServer(client Client, logger *zerolog.Logger) *Server {
	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}
	s := &Server{
		client: client,
		logger: l,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_state",
		Description: "Report the window manager state: the active workspace, the focused window, and for each workspace its windows from top of the stack down plus the tasklist order.",
	}, s.handleGetState)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "run_command",
		Description: "Run a window manager command such as raise, lower, cycle_next, cycle_prev, switch_workspace(n), move_to_workspace(n), workspace_next, tasklist_next, tasklist_forward, maximize or close. Window commands act on the focused window unless window is given. Workspaces are numbered 0-8.",
	}, s.handleRunCommand)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "switch_workspace",
		Description: "Make a workspace (0-8) active. Its windows are shown and its top window is focused.",
	}, s.handleSwitchWorkspace)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_window",
		Description: "Focus a window by ID, switching to its workspace and raising it.",
	}, s.handleFocusWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_window",
		Description: "Move a window (default: focused) to another workspace (0-8).",
	}, s.handleMoveWindow)
}
