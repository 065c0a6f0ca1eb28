// Package config loads the demo's TOML configuration and maps it onto the
// option structs of the core packages.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/marginalia/annotate"
	"github.com/iw2rmb/marginalia/dualpane"
	"github.com/iw2rmb/marginalia/theme"
)

type Config struct {
	Font        FontConfig        `toml:"font"`
	Minimap     MinimapConfig     `toml:"minimap"`
	Gutter      GutterConfig      `toml:"gutter"`
	Decorations DecorationsConfig `toml:"decorations"`
	Colors      ThemeConfig       `toml:"theme"`
}

type FontConfig struct {
	// Size is the primary font size in cells.
	Size    float64 `toml:"size"`
	Padding float64 `toml:"padding"`
}

type MinimapConfig struct {
	Ratio   float64 `toml:"ratio"`
	Divider float64 `toml:"divider"`
	Padding float64 `toml:"padding"`
}

type GutterConfig struct {
	Characters int `toml:"characters"`
}

type DecorationsConfig struct {
	MinimumInlineWidth float64 `toml:"minimum_inline_width"`
	PopupMargin        float64 `toml:"popup_margin"`
	PopupGap           float64 `toml:"popup_gap"`
}

// ThemeConfig overrides colours of the default theme. Empty fields keep the
// default.
type ThemeConfig struct {
	Name          string `toml:"name"`
	Error         string `toml:"error"`
	Warning       string `toml:"warning"`
	Live          string `toml:"live"`
	Informational string `toml:"informational"`
	Text          string `toml:"text"`
	Background    string `toml:"background"`
	CurrentLine   string `toml:"current_line"`
	Selection     string `toml:"selection"`
	Gutter        string `toml:"gutter"`
	GutterFocus   string `toml:"gutter_focus"`
	Minimap       string `toml:"minimap"`
	MinimapBox    string `toml:"minimap_box"`
	Divider       string `toml:"divider"`
}

func Default() Config {
	dp := dualpane.DefaultConfig()
	opt := annotate.DefaultOptions()
	return Config{
		Font: FontConfig{Size: dp.FontSize},
		Minimap: MinimapConfig{
			Ratio:   dp.Ratio,
			Divider: dp.Divider,
		},
		Gutter: GutterConfig{Characters: dp.GutterCharacters},
		Decorations: DecorationsConfig{
			MinimumInlineWidth: opt.MinimumInlineWidth,
			PopupMargin:        opt.PopupMargin,
			PopupGap:           opt.PopupGap,
		},
	}
}

// Load reads path over the defaults. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional behaves like Load but returns the defaults when path is
// empty or does not exist.
func LoadOptional(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

func (c Config) Validate() error {
	switch {
	case c.Font.Size <= 0:
		return fmt.Errorf("[font].size must be positive, got %v", c.Font.Size)
	case c.Font.Padding < 0:
		return fmt.Errorf("[font].padding must not be negative, got %v", c.Font.Padding)
	case c.Minimap.Ratio < 1:
		return fmt.Errorf("[minimap].ratio must be at least 1, got %v", c.Minimap.Ratio)
	case c.Minimap.Divider < 0:
		return fmt.Errorf("[minimap].divider must not be negative, got %v", c.Minimap.Divider)
	case c.Minimap.Padding < 0:
		return fmt.Errorf("[minimap].padding must not be negative, got %v", c.Minimap.Padding)
	case c.Gutter.Characters < 0:
		return fmt.Errorf("[gutter].characters must not be negative, got %d", c.Gutter.Characters)
	case c.Decorations.MinimumInlineWidth <= 0:
		return fmt.Errorf("[decorations].minimum_inline_width must be positive, got %v", c.Decorations.MinimumInlineWidth)
	}
	return nil
}

// DualPane returns the tiling configuration.
func (c Config) DualPane() dualpane.Config {
	return dualpane.Config{
		FontSize:         c.Font.Size,
		Ratio:            c.Minimap.Ratio,
		GutterCharacters: c.Gutter.Characters,
		Divider:          c.Minimap.Divider,
		PrimaryPadding:   c.Font.Padding,
		SecondaryPadding: c.Minimap.Padding,
	}
}

// Annotate returns the decoration options without a logger.
func (c Config) Annotate() annotate.Options {
	opt := annotate.DefaultOptions()
	opt.MinimumInlineWidth = c.Decorations.MinimumInlineWidth
	opt.PopupMargin = c.Decorations.PopupMargin
	opt.PopupGap = c.Decorations.PopupGap
	return opt
}

// Theme returns the default theme with the configured overrides applied.
func (c Config) Theme() theme.Theme {
	t := theme.Default()
	tc := c.Colors
	if tc.Name != "" {
		t.Name = tc.Name
	}
	set := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	set(&t.Error, tc.Error)
	set(&t.Warning, tc.Warning)
	set(&t.Live, tc.Live)
	set(&t.Informational, tc.Informational)
	set(&t.Text, tc.Text)
	set(&t.Background, tc.Background)
	set(&t.CurrentLine, tc.CurrentLine)
	set(&t.Selection, tc.Selection)
	set(&t.Gutter, tc.Gutter)
	set(&t.GutterFocus, tc.GutterFocus)
	set(&t.Minimap, tc.Minimap)
	set(&t.MinimapBox, tc.MinimapBox)
	set(&t.Divider, tc.Divider)
	return t
}
