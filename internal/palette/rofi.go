package palette

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"os/exec"
	"strconv"
	"strings"
)

// exitAlternate is rofi's exit code for kb-custom-1.
const exitAlternate = 10

// menuBackend drives a dmenu compatible program over stdin/stdout.
type menuBackend struct {
	command string
	rofi    bool
}

func newRofiBackend() *menuBackend {
	return &menuBackend{command: "rofi", rofi: true}
}

func newDmenuBackend() *menuBackend {
	return &menuBackend{command: "dmenu"}
}

func (b *menuBackend) Show(prompt string, items []Item) (Selection, error) {
	if len(items) == 0 {
		return Selection{}, fmt.Errorf("palette: no items to show")
	}

	rows := make([]Item, len(items))
	copy(rows, items)
	if !b.rofi {
		disambiguate(rows)
	}

	cmd := exec.Command(b.command, b.buildArgs(prompt, rows)...)
	cmd.Stdin = strings.NewReader(b.formatInput(rows))
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	selection := strings.TrimSpace(string(out))

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Selection{}, fmt.Errorf("%s failed: %w", b.command, err)
		}
		exitCode = exitErr.ExitCode()
		if selection == "" && (exitCode == 1 || exitCode == 130) {
			return Selection{}, ErrCancelled
		}
		if exitCode != exitAlternate {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return Selection{}, fmt.Errorf("%s failed: %s", b.command, msg)
			}
			return Selection{}, fmt.Errorf("%s failed: %w", b.command, err)
		}
	}
	if selection == "" {
		return Selection{}, ErrCancelled
	}

	item, err := b.parseSelection(selection, rows)
	if err != nil {
		return Selection{}, err
	}
	return Selection{Item: item, Alternate: exitCode == exitAlternate}, nil
}

func (b *menuBackend) buildArgs(prompt string, items []Item) []string {
	if !b.rofi {
		args := []string{"-i", "-l", "20"}
		if prompt != "" {
			args = append(args, "-p", prompt)
		}
		return args
	}

	args := []string{"-dmenu", "-i", "-markup-rows", "-no-custom", "-format", "i"}
	if prompt != "" {
		args = append(args, "-p", prompt)
	}

	var active []string
	selected := -1
	for i, item := range items {
		if item.IsHeader {
			continue
		}
		if selected == -1 {
			selected = i
		}
		if item.IsActive {
			active = append(active, strconv.Itoa(i))
			selected = i
		}
	}
	if len(active) > 0 {
		args = append(args, "-a", strings.Join(active, ","))
	}
	if selected >= 0 {
		args = append(args, "-selected-row", strconv.Itoa(selected))
	}
	return append(args, "-kb-custom-1", "Alt+Return")
}

func (b *menuBackend) formatInput(items []Item) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, b.formatItem(item))
	}
	return strings.Join(lines, "\n")
}

func (b *menuBackend) formatItem(item Item) string {
	display := sanitizeLabel(item.Label)
	if !b.rofi {
		return display
	}

	// -markup-rows is on: escape the title, then add our own markup.
	display = html.EscapeString(display)
	var attrs []string
	if item.IsHeader {
		display = "<b>" + display + "</b>"
		attrs = append(attrs, "nonselectable", "true")
	}
	if item.Info != "" {
		attrs = append(attrs, "info", sanitizeRofiField(item.Info))
	}
	if len(attrs) == 0 {
		return display
	}
	// A single NUL starts the row properties; pairs are separated by \x1f.
	return display + "\x00" + strings.Join(attrs, "\x1f")
}

func (b *menuBackend) parseSelection(selection string, items []Item) (Item, error) {
	if b.rofi {
		idx, err := strconv.Atoi(selection)
		if err == nil {
			if idx < 0 || idx >= len(items) {
				return Item{}, fmt.Errorf("palette: index %d out of range", idx)
			}
			return items[idx], nil
		}
	}
	for _, item := range items {
		if sanitizeLabel(item.Label) == selection {
			return item, nil
		}
	}
	return Item{}, fmt.Errorf("palette: unknown selection %q", selection)
}

// disambiguate suffixes repeated labels for backends that return the
// selected text instead of an index.
func disambiguate(items []Item) {
	seen := make(map[string]int)
	for i := range items {
		if items[i].IsHeader {
			continue
		}
		key := sanitizeLabel(items[i].Label)
		if count := seen[key]; count > 0 {
			items[i].Label = fmt.Sprintf("%s (%d)", key, count+1)
		}
		seen[key]++
	}
}

func sanitizeLabel(label string) string {
	label = strings.ReplaceAll(label, "\r", " ")
	label = strings.ReplaceAll(label, "\n", " ")
	return strings.TrimSpace(label)
}

func sanitizeRofiField(value string) string {
	value = strings.ReplaceAll(value, "\x00", " ")
	value = strings.ReplaceAll(value, "\x1f", " ")
	return sanitizeLabel(value)
}
