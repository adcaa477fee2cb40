package config

import (
	"fmt"
	"strings"

	"github.com/1broseidon/stacker/internal/placement"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// BuildEffectiveConfig applies raw settings over the defaults.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.Display != nil {
		cfg.Display = strings.TrimSpace(*raw.Display)
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(*raw.LogLevel))
	}
	if raw.LogPretty != nil {
		cfg.LogPretty = *raw.LogPretty
	}
	if raw.ModKey != nil {
		cfg.ModKey = strings.TrimSpace(*raw.ModKey)
	}
	for keys, cmd := range raw.Keybindings {
		cmd = strings.TrimSpace(cmd)
		if cmd == "" || strings.EqualFold(cmd, "none") {
			delete(cfg.Keybindings, keys)
			continue
		}
		cfg.Keybindings[keys] = cmd
	}
	if m := raw.Mousebindings; m != nil {
		cfg.Mousebindings.Move = derefString(m.Move, cfg.Mousebindings.Move)
		cfg.Mousebindings.Resize = derefString(m.Resize, cfg.Mousebindings.Resize)
		cfg.Mousebindings.FocusClick = derefString(m.FocusClick, cfg.Mousebindings.FocusClick)
	}
	if raw.Placement != nil {
		mode, err := placement.ParseMode(strings.TrimSpace(*raw.Placement))
		if err != nil {
			return nil, &ValidationError{Path: "placement", Err: err}
		}
		cfg.Placement = mode
	}
	if p := raw.WorkAreaPadding; p != nil {
		cfg.WorkAreaPadding.Top = derefInt(p.Top, cfg.WorkAreaPadding.Top)
		cfg.WorkAreaPadding.Bottom = derefInt(p.Bottom, cfg.WorkAreaPadding.Bottom)
		cfg.WorkAreaPadding.Left = derefInt(p.Left, cfg.WorkAreaPadding.Left)
		cfg.WorkAreaPadding.Right = derefInt(p.Right, cfg.WorkAreaPadding.Right)
	}
	if raw.BorderWidth != nil {
		cfg.BorderWidth = *raw.BorderWidth
	}
	if raw.BorderColorActive != nil {
		cfg.BorderColorActive = strings.TrimSpace(*raw.BorderColorActive)
	}
	if raw.BorderColorInactive != nil {
		cfg.BorderColorInactive = strings.TrimSpace(*raw.BorderColorInactive)
	}
	if raw.ReconcileInterval != nil {
		cfg.ReconcileInterval = *raw.ReconcileInterval
	}
	if raw.HTTPListen != nil {
		cfg.HTTPListen = strings.TrimSpace(*raw.HTTPListen)
	}

	return cfg, nil
}

func derefInt(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func derefString(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}
