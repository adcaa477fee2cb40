package palette

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrCancelled is returned when the user closes the palette without selecting an item.
var ErrCancelled = errors.New("palette cancelled")

// Item is a single row in a palette menu.
type Item struct {
	Label    string // Display text
	Info     string // Hidden data returned on selection
	IsHeader bool   // Non-selectable section header
	IsActive bool   // Highlighted and preselected
}

// Selection is the chosen item. Alternate is set when the user picked it
// with the alternate key (Alt+Return in rofi).
type Selection struct {
	Item      Item
	Alternate bool
}

// Backend shows a palette to the user and returns the selected item.
type Backend interface {
	Show(prompt string, items []Item) (Selection, error)
}

// NewBackend creates a backend by name.
//
// Supported names: auto, rofi, dmenu.
func NewBackend(name string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return detectBackend()
	case "rofi":
		if _, err := exec.LookPath("rofi"); err != nil {
			return nil, fmt.Errorf("palette backend %q not found in PATH", "rofi")
		}
		return newRofiBackend(), nil
	case "dmenu":
		if _, err := exec.LookPath("dmenu"); err != nil {
			return nil, fmt.Errorf("palette backend %q not found in PATH", "dmenu")
		}
		return newDmenuBackend(), nil
	default:
		return nil, fmt.Errorf("unknown palette backend: %q (expected: auto, rofi, dmenu)", name)
	}
}

func detectBackend() (Backend, error) {
	if _, err := exec.LookPath("rofi"); err == nil {
		return newRofiBackend(), nil
	}
	if _, err := exec.LookPath("dmenu"); err == nil {
		return newDmenuBackend(), nil
	}
	return nil, fmt.Errorf("no palette backend found in PATH (looked for: rofi, dmenu)")
}
