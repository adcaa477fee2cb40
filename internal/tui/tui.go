package tui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/stacker/internal/platform"
	"github.com/1broseidon/stacker/internal/wm"
)

// DefaultInterval is how often the viewer polls the daemon.
const DefaultInterval = 500 * time.Millisecond

// Client is the daemon access the viewer needs. *ipc.Client satisfies it.
type Client interface {
	GetState() (*wm.Snapshot, error)
	Exec(cmd string, window platform.WindowID) error
}

// Run shows the live state viewer until the user quits.
func Run(client Client, interval time.Duration) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("top requires an interactive terminal (stdin/stdout must be TTYs)")
	}
	if interval <= 0 {
		interval = DefaultInterval
	}

	p := tea.NewProgram(newModel(client, interval), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
