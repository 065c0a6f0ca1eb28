package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/marginalia/theme"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "marginalia.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
[font]
size = 2

[minimap]
ratio = 4

[decorations]
minimum_inline_width = 6

[theme]
name = "dusk"
error = "#ff0000"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got, want := cfg.Font.Size, 2.0; got != want {
		t.Fatalf("font size: got %v, want %v", got, want)
	}
	if got, want := cfg.Gutter.Characters, Default().Gutter.Characters; got != want {
		t.Fatalf("gutter characters: got %d, want %d", got, want)
	}
	if got, want := cfg.Minimap.Divider, Default().Minimap.Divider; got != want {
		t.Fatalf("divider: got %v, want %v", got, want)
	}

	dp := cfg.DualPane()
	if dp.FontSize != 2 || dp.Ratio != 4 {
		t.Fatalf("dual pane config: got %+v", dp)
	}
	if got, want := cfg.Annotate().MinimumInlineWidth, 6.0; got != want {
		t.Fatalf("minimum inline width: got %v, want %v", got, want)
	}

	if got, want := cfg.Colors.Error, "#ff0000"; got != want {
		t.Fatalf("[theme].error: got %q, want %q", got, want)
	}
	th := cfg.Theme()
	if th.Name != "dusk" || th.Error != lipgloss.Color("#ff0000") {
		t.Fatalf("theme overrides: got %q %q", th.Name, th.Error)
	}
	if got, want := th.Warning, theme.Default().Warning; got != want {
		t.Fatalf("warning colour: got %v, want %v", got, want)
	}
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{name: "syntax", body: "[font\n", want: "failed to parse TOML"},
		{name: "unknown key", body: "[font]\nweight = 3\n", want: "unknown keys: font.weight"},
		{name: "ratio", body: "[minimap]\nratio = 0.5\n", want: "[minimap].ratio"},
		{name: "size", body: "[font]\nsize = 0\n", want: "[font].size"},
	}
	for _, tc := range cases {
		_, err := Load(writeConfig(t, tc.body))
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: got %v, want error containing %q", tc.name, err, tc.want)
		}
	}
}

func TestLoadOptional(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("missing file must yield defaults")
	}
	if _, err := LoadOptional(""); err != nil {
		t.Fatalf("empty path: %v", err)
	}
}
