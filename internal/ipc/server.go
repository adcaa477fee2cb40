package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/1broseidon/stacker/internal/command"
	"github.com/1broseidon/stacker/internal/runtimepath"
	"github.com/1broseidon/stacker/internal/wm"
)

const requestTimeout = 5 * time.Second

// Controller is the daemon side of the protocol: the event loop.
type Controller interface {
	Exec(ctx context.Context, ev wm.Event) error
	Snapshot(ctx context.Context) (wm.Snapshot, error)
	Uptime() time.Duration
}

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	ctl          Controller
	logger       zerolog.Logger
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server
func NewServer(ctl Controller, logger *zerolog.Logger) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}

	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}

	return &Server{
		socketPath: socketPath,
		ctl:        ctl,
		logger:     l,
	}, nil
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	// A stale socket from a previous run would make Listen fail.
	if conn, err := net.DialTimeout("unix", s.socketPath, 200*time.Millisecond); err == nil {
		conn.Close()
		return fmt.Errorf("another daemon is listening on %s", s.socketPath)
	}
	os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info().Str("socket", s.socketPath).Msg("IPC server listening")

	go s.acceptLoop()
	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			s.logger.Warn().Err(err).Msg("IPC accept error")
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn().Err(err).Msg("IPC read error")
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	resp := s.handleCommand(ctx, req)

	respData, err := resp.Marshal()
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to marshal response")
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Warn().Err(err).Msg("failed to send response")
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(ctx context.Context, req *Request) *Response {
	switch req.Command {
	case CommandGetStatus:
		return s.handleGetStatus(ctx)
	case CommandGetState:
		return s.handleGetState(ctx)
	case CommandExec:
		return s.handleExec(ctx, req.Payload)
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleGetStatus(ctx context.Context) *Response {
	snap, err := s.ctl.Snapshot(ctx)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to read state: %v", err))
	}

	status := StatusData{
		ActiveWorkspace: snap.ActiveWorkspace,
		Focused:         snap.Focused,
		WindowCount:     len(snap.Windows),
		UptimeSeconds:   int64(s.ctl.Uptime().Seconds()),
		DaemonRunning:   true,
	}

	resp, _ := NewOKResponse(status)
	return resp
}

func (s *Server) handleGetState(ctx context.Context) *Response {
	snap, err := s.ctl.Snapshot(ctx)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to read state: %v", err))
	}
	resp, err := NewOKResponse(snap)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleExec(ctx context.Context, payload json.RawMessage) *Response {
	var req ExecPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid exec payload: %v", err))
	}
	ev, err := command.Parse(req.Command)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	if command.IsGrab(ev) {
		return NewErrorResponse("grab commands need a pointer and cannot be run over IPC")
	}
	ev = command.Target(ev, req.Window)

	s.logger.Debug().Str("command", req.Command).Uint32("window", uint32(req.Window)).Msg("IPC exec")

	if err := s.ctl.Exec(ctx, ev); err != nil {
		return NewErrorResponse(err.Error())
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
