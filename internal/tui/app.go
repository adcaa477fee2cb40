package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/stacker/internal/command"
	"github.com/1broseidon/stacker/internal/wm"
)

// model is the root bubbletea model for the viewer.
type model struct {
	client   Client
	interval time.Duration

	snap   *wm.Snapshot
	err    error
	status string

	// Terminal dimensions
	width  int
	height int
}

// stateMsg carries a fetched snapshot. Only polled fetches schedule the
// next tick.
type stateMsg struct {
	snap *wm.Snapshot
	err  error
	poll bool
}

type tickMsg time.Time

type execMsg struct {
	command string
	err     error
}

func newModel(client Client, interval time.Duration) model {
	return model{client: client, interval: interval}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return m.fetch(true)
}

func (m model) fetch(poll bool) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		snap, err := client.GetState()
		return stateMsg{snap: snap, err: err, poll: poll}
	}
}

func (m model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) exec(command string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return execMsg{command: command, err: client.Exec(command, 0)}
	}
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
		if command, ok := keyCommand(msg.String()); ok {
			return m, m.exec(command)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		return m, m.fetch(true)

	case stateMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.snap = msg.snap
			m.err = nil
		}
		if msg.poll {
			return m, m.tick()
		}
		return m, nil

	case execMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("%s: %v", msg.command, msg.err)
		} else {
			m.status = msg.command
		}
		return m, m.fetch(false)
	}

	return m, nil
}

// keyCommand maps a key press to the command string it runs.
func keyCommand(key string) (string, bool) {
	var ev wm.Event
	switch key {
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		ev = wm.SwitchWorkspace{Index: int(key[0] - '1')}
	case "h", "left":
		ev = wm.StepWorkspace{Delta: -1}
	case "l", "right":
		ev = wm.StepWorkspace{Delta: 1}
	case "j", "down":
		ev = wm.TasklistNext{}
	case "k", "up":
		ev = wm.TasklistPrev{}
	case "r":
		ev = wm.Raise{}
	case "m":
		ev = wm.ToggleMaximize{}
	default:
		return "", false
	}
	return command.Format(ev)
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	statusBar := renderStatusBar(m.snap, m.err, m.width)
	workspaceBar := renderWorkspaceBar(m.snap, m.width)
	helpBar := renderHelpBar(m.status, m.width)

	usedHeight := lipgloss.Height(statusBar) + lipgloss.Height(workspaceBar) + lipgloss.Height(helpBar)
	contentHeight := m.height - usedHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		workspaceBar,
		renderWindows(m.snap, m.width, contentHeight),
		helpBar,
	)
}
