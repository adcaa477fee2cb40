package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// IncludeList accepts a single path or a list of paths. Directories include
// every .yaml/.yml file inside them in lexical order.
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

// RawMargins is the file form of work_area_padding. Unset edges keep the
// default.
type RawMargins struct {
	Top    *int `yaml:"top"`
	Bottom *int `yaml:"bottom"`
	Left   *int `yaml:"left"`
	Right  *int `yaml:"right"`
}

type RawMousebindings struct {
	Move       *string `yaml:"move"`
	Resize     *string `yaml:"resize"`
	FocusClick *string `yaml:"focus_click"`
}

// RawConfig mirrors Config with every field optional, so a file only needs
// to name the settings it changes.
//
// Keybindings are merged over the defaults; binding a key sequence to
// "none" or "" removes it.
type RawConfig struct {
	Include             IncludeList       `yaml:"include"`
	Display             *string           `yaml:"display"`
	LogLevel            *string           `yaml:"log_level"`
	LogPretty           *bool             `yaml:"log_pretty"`
	ModKey              *string           `yaml:"mod_key"`
	Keybindings         map[string]string `yaml:"keybindings"`
	Mousebindings       *RawMousebindings `yaml:"mousebindings"`
	Placement           *string           `yaml:"placement"`
	WorkAreaPadding     *RawMargins       `yaml:"work_area_padding"`
	BorderWidth         *int              `yaml:"border_width"`
	BorderColorActive   *string           `yaml:"border_color_active"`
	BorderColorInactive *string           `yaml:"border_color_inactive"`
	ReconcileInterval   *time.Duration    `yaml:"reconcile_interval"`
	HTTPListen          *string           `yaml:"http_listen"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c
	if overlay.Display != nil {
		out.Display = overlay.Display
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.LogPretty != nil {
		out.LogPretty = overlay.LogPretty
	}
	if overlay.ModKey != nil {
		out.ModKey = overlay.ModKey
	}
	if overlay.Keybindings != nil {
		merged := make(map[string]string, len(c.Keybindings)+len(overlay.Keybindings))
		for k, v := range c.Keybindings {
			merged[k] = v
		}
		for k, v := range overlay.Keybindings {
			merged[k] = v
		}
		out.Keybindings = merged
	}
	if overlay.Mousebindings != nil {
		base := RawMousebindings{}
		if c.Mousebindings != nil {
			base = *c.Mousebindings
		}
		m := mergeRawMousebindings(base, *overlay.Mousebindings)
		out.Mousebindings = &m
	}
	if overlay.Placement != nil {
		out.Placement = overlay.Placement
	}
	if overlay.WorkAreaPadding != nil {
		base := RawMargins{}
		if c.WorkAreaPadding != nil {
			base = *c.WorkAreaPadding
		}
		m := mergeRawMargins(base, *overlay.WorkAreaPadding)
		out.WorkAreaPadding = &m
	}
	if overlay.BorderWidth != nil {
		out.BorderWidth = overlay.BorderWidth
	}
	if overlay.BorderColorActive != nil {
		out.BorderColorActive = overlay.BorderColorActive
	}
	if overlay.BorderColorInactive != nil {
		out.BorderColorInactive = overlay.BorderColorInactive
	}
	if overlay.ReconcileInterval != nil {
		out.ReconcileInterval = overlay.ReconcileInterval
	}
	if overlay.HTTPListen != nil {
		out.HTTPListen = overlay.HTTPListen
	}
	return out
}

func mergeRawMargins(base RawMargins, overlay RawMargins) RawMargins {
	out := base
	if overlay.Top != nil {
		out.Top = overlay.Top
	}
	if overlay.Bottom != nil {
		out.Bottom = overlay.Bottom
	}
	if overlay.Left != nil {
		out.Left = overlay.Left
	}
	if overlay.Right != nil {
		out.Right = overlay.Right
	}
	return out
}

func mergeRawMousebindings(base RawMousebindings, overlay RawMousebindings) RawMousebindings {
	out := base
	if overlay.Move != nil {
		out.Move = overlay.Move
	}
	if overlay.Resize != nil {
		out.Resize = overlay.Resize
	}
	if overlay.FocusClick != nil {
		out.FocusClick = overlay.FocusClick
	}
	return out
}
