package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/1broseidon/stacker/internal/command"
	"github.com/1broseidon/stacker/internal/logger"
	"github.com/1broseidon/stacker/internal/placement"
)

// ModPlaceholder in a binding is replaced by the configured mod_key.
const ModPlaceholder = "$mod"

// Mousebindings names the pointer sequences used by the window manager.
type Mousebindings struct {
	// Move starts an interactive move, e.g. "$mod-1".
	Move string `yaml:"move"`
	// Resize starts an interactive resize, e.g. "$mod-3".
	Resize string `yaml:"resize"`
	// FocusClick raises and focuses the clicked window.
	FocusClick string `yaml:"focus_click"`
}

// Config holds the application configuration.
type Config struct {
	Display             string            `yaml:"display,omitempty"`
	LogLevel            string            `yaml:"log_level"`
	LogPretty           bool              `yaml:"log_pretty"`
	ModKey              string            `yaml:"mod_key"`
	Keybindings         map[string]string `yaml:"keybindings"`
	Mousebindings       Mousebindings     `yaml:"mousebindings"`
	Placement           placement.Mode    `yaml:"placement"`
	WorkAreaPadding     placement.Margins `yaml:"work_area_padding"`
	BorderWidth         int               `yaml:"border_width"`
	BorderColorActive   string            `yaml:"border_color_active"`
	BorderColorInactive string            `yaml:"border_color_inactive"`
	ReconcileInterval   time.Duration     `yaml:"reconcile_interval"`
	HTTPListen          string            `yaml:"http_listen,omitempty"`
}

func DefaultConfig() *Config {
	keys := map[string]string{
		"$mod-k":         "tasklist_next",
		"$mod-j":         "tasklist_prev",
		"$mod-Shift-k":   "tasklist_forward",
		"$mod-Shift-j":   "tasklist_backward",
		"$mod-Tab":       "cycle_next",
		"$mod-Shift-Tab": "cycle_prev",
		"$mod-Up":        "raise",
		"$mod-Down":      "lower",
		"$mod-Right":     "workspace_next",
		"$mod-Left":      "workspace_prev",
		"$mod-x":         "close",
		"$mod-m":         "maximize",
	}
	for i := 0; i < 9; i++ {
		keys[fmt.Sprintf("$mod-%d", i+1)] = fmt.Sprintf("switch_workspace(%d)", i)
		keys[fmt.Sprintf("$mod-Shift-%d", i+1)] = fmt.Sprintf("move_to_workspace(%d)", i)
	}

	return &Config{
		LogLevel:    "info",
		ModKey:      "Mod4",
		Keybindings: keys,
		Mousebindings: Mousebindings{
			Move:       "$mod-1",
			Resize:     "$mod-3",
			FocusClick: "1",
		},
		Placement:           placement.ModeCenter,
		BorderWidth:         2,
		BorderColorActive:   "#5e81ac",
		BorderColorInactive: "#3b4252",
		ReconcileInterval:   5 * time.Second,
	}
}

// ExpandMod substitutes the mod key placeholder in a binding.
func (c *Config) ExpandMod(binding string) string {
	return strings.ReplaceAll(binding, ModPlaceholder, c.ModKey)
}

// Binding is one configured key sequence and the command it runs.
type Binding struct {
	Keys    string
	Command string
}

// Bindings returns the keybindings with the mod key expanded, sorted by key
// sequence.
func (c *Config) Bindings() []Binding {
	out := make([]Binding, 0, len(c.Keybindings))
	for keys, cmd := range c.Keybindings {
		out = append(out, Binding{Keys: c.ExpandMod(keys), Command: cmd})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Keys < out[j].Keys })
	return out
}

// ActiveBorder returns the focused border color as a pixel value.
func (c *Config) ActiveBorder() uint32 {
	px, _ := ParseColor(c.BorderColorActive)
	return px
}

// InactiveBorder returns the unfocused border color as a pixel value.
func (c *Config) InactiveBorder() uint32 {
	px, _ := ParseColor(c.BorderColorInactive)
	return px
}

// ParseColor parses "#rrggbb" into a 24-bit pixel value.
func ParseColor(s string) (uint32, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return 0, fmt.Errorf("color %q must have the form #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	return uint32(v), nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: trace, debug, info, warn, error")}
	}
	if strings.TrimSpace(c.ModKey) == "" {
		return &ValidationError{Path: "mod_key", Err: fmt.Errorf("mod_key is required")}
	}

	for _, keys := range sortedKeys(c.Keybindings) {
		path := "keybindings." + keys
		if strings.TrimSpace(keys) == "" {
			return &ValidationError{Path: "keybindings", Err: fmt.Errorf("keybindings contains an empty key sequence")}
		}
		ev, err := command.Parse(c.Keybindings[keys])
		if err != nil {
			return &ValidationError{Path: path, Err: err}
		}
		if command.IsGrab(ev) {
			return &ValidationError{Path: path, Err: fmt.Errorf("grab commands can only be bound in mousebindings")}
		}
	}

	mouse := map[string]string{
		"mousebindings.move":        c.Mousebindings.Move,
		"mousebindings.resize":      c.Mousebindings.Resize,
		"mousebindings.focus_click": c.Mousebindings.FocusClick,
	}
	for _, path := range sortedKeys(mouse) {
		if strings.TrimSpace(mouse[path]) == "" {
			return &ValidationError{Path: path, Err: fmt.Errorf("mouse binding is required")}
		}
	}
	if c.ExpandMod(c.Mousebindings.Move) == c.ExpandMod(c.Mousebindings.Resize) {
		return &ValidationError{Path: "mousebindings.resize", Err: fmt.Errorf("move and resize must use different buttons")}
	}

	if _, err := placement.ParseMode(string(c.Placement)); err != nil {
		return &ValidationError{Path: "placement", Err: err}
	}
	if err := c.WorkAreaPadding.Validate(); err != nil {
		return &ValidationError{Path: "work_area_padding", Err: err}
	}
	if c.BorderWidth < 0 {
		return &ValidationError{Path: "border_width", Err: fmt.Errorf("border_width must be >= 0")}
	}
	if _, err := ParseColor(c.BorderColorActive); err != nil {
		return &ValidationError{Path: "border_color_active", Err: err}
	}
	if _, err := ParseColor(c.BorderColorInactive); err != nil {
		return &ValidationError{Path: "border_color_inactive", Err: err}
	}
	if c.ReconcileInterval < 0 {
		return &ValidationError{Path: "reconcile_interval", Err: fmt.Errorf("reconcile_interval must be >= 0")}
	}
	return nil
}

// ApplyLogging configures the global logger from the config.
func (c *Config) ApplyLogging() {
	logger.Init(c.LogLevel, c.LogPretty)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
