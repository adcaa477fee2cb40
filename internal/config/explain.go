package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths include:
//
//	display
//	log_level
//	mod_key
//	keybindings
//	keybindings.<sequence>
//	mousebindings.move
//	placement
//	work_area_padding.top
//	border_width
//	border_color_active
//	reconcile_interval
//	http_listen
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	head, rest, nested := strings.Cut(path, ".")
	scalar := func(v any) (any, error) {
		if nested {
			return nil, fmt.Errorf("%s has no fields", head)
		}
		return v, nil
	}

	switch head {
	case "display":
		return scalar(cfg.Display)
	case "log_level":
		return scalar(cfg.LogLevel)
	case "log_pretty":
		return scalar(cfg.LogPretty)
	case "mod_key":
		return scalar(cfg.ModKey)
	case "placement":
		return scalar(cfg.Placement)
	case "border_width":
		return scalar(cfg.BorderWidth)
	case "border_color_active":
		return scalar(cfg.BorderColorActive)
	case "border_color_inactive":
		return scalar(cfg.BorderColorInactive)
	case "reconcile_interval":
		return scalar(cfg.ReconcileInterval.String())
	case "http_listen":
		return scalar(cfg.HTTPListen)

	case "keybindings":
		if !nested {
			return cfg.Keybindings, nil
		}
		cmd, ok := cfg.Keybindings[rest]
		if !ok {
			return nil, fmt.Errorf("no keybinding for %q", rest)
		}
		return cmd, nil

	case "mousebindings":
		switch rest {
		case "":
			if nested {
				break
			}
			return cfg.Mousebindings, nil
		case "move":
			return cfg.Mousebindings.Move, nil
		case "resize":
			return cfg.Mousebindings.Resize, nil
		case "focus_click":
			return cfg.Mousebindings.FocusClick, nil
		}
		return nil, fmt.Errorf("unknown mousebindings field %q", rest)

	case "work_area_padding":
		p := cfg.WorkAreaPadding
		switch rest {
		case "":
			if nested {
				break
			}
			return p, nil
		case "top":
			return p.Top, nil
		case "bottom":
			return p.Bottom, nil
		case "left":
			return p.Left, nil
		case "right":
			return p.Right, nil
		}
		return nil, fmt.Errorf("unknown work_area_padding field %q", rest)
	}
	return nil, fmt.Errorf("unknown config path %q", path)
}

// FormatSource renders where a config value came from.
func FormatSource(src Source) string {
	switch src.Kind {
	case SourceFile:
		if src.File == "" {
			return "file"
		}
		if src.Line > 0 {
			return fmt.Sprintf("file:%s:%d:%d", src.File, src.Line, src.Column)
		}
		return "file:" + src.File
	case SourceDefault:
		return "default"
	default:
		return string(src.Kind)
	}
}
