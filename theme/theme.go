// Package theme maps message categories and editor surfaces to lipgloss
// colours and styles.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/marginalia/buffer"
)

// Theme holds the colours used by the decoration core and the terminal
// adapter.
type Theme struct {
	Name string

	Error         lipgloss.Color
	Warning       lipgloss.Color
	Live          lipgloss.Color
	Informational lipgloss.Color

	Text        lipgloss.Color
	Background  lipgloss.Color
	CurrentLine lipgloss.Color
	Selection   lipgloss.Color
	Gutter      lipgloss.Color
	GutterFocus lipgloss.Color
	Minimap     lipgloss.Color
	MinimapBox  lipgloss.Color
	Divider     lipgloss.Color
}

func Default() Theme {
	return Theme{
		Name:          "default",
		Error:         lipgloss.Color("196"),
		Warning:       lipgloss.Color("214"),
		Live:          lipgloss.Color("39"),
		Informational: lipgloss.Color("244"),
		Text:          lipgloss.Color("252"),
		Background:    lipgloss.Color(""),
		CurrentLine:   lipgloss.Color("236"),
		Selection:     lipgloss.Color("238"),
		Gutter:        lipgloss.Color("240"),
		GutterFocus:   lipgloss.Color("250"),
		Minimap:       lipgloss.Color("243"),
		MinimapBox:    lipgloss.Color("237"),
		Divider:       lipgloss.Color("238"),
	}
}

// ColorFor returns the colour of a message category.
func (t Theme) ColorFor(c buffer.Category) lipgloss.Color {
	switch c {
	case buffer.CategoryError:
		return t.Error
	case buffer.CategoryWarning:
		return t.Warning
	case buffer.CategoryLive:
		return t.Live
	default:
		return t.Informational
	}
}

// Styles are the render styles derived from a Theme.
type Styles struct {
	Text        lipgloss.Style
	CurrentLine lipgloss.Style
	Selection   lipgloss.Style
	Cursor      lipgloss.Style
	Gutter      lipgloss.Style
	GutterFocus lipgloss.Style
	Minimap     lipgloss.Style
	MinimapBox  lipgloss.Style
	Divider     lipgloss.Style
	Popup       lipgloss.Style
	Status      lipgloss.Style
}

func (t Theme) Styles() Styles {
	base := lipgloss.NewStyle().Foreground(t.Text)
	if t.Background != "" {
		base = base.Background(t.Background)
	}
	return Styles{
		Text:        base,
		CurrentLine: lipgloss.NewStyle().Background(t.CurrentLine),
		Selection:   lipgloss.NewStyle().Background(t.Selection),
		Cursor:      lipgloss.NewStyle().Reverse(true),
		Gutter:      lipgloss.NewStyle().Foreground(t.Gutter),
		GutterFocus: lipgloss.NewStyle().Foreground(t.GutterFocus).Bold(true),
		Minimap:     lipgloss.NewStyle().Foreground(t.Minimap),
		MinimapBox:  lipgloss.NewStyle().Foreground(t.Minimap).Background(t.MinimapBox),
		Divider:     lipgloss.NewStyle().Foreground(t.Divider),
		Popup:       lipgloss.NewStyle().Foreground(t.Text).Background(t.CurrentLine),
		Status:      lipgloss.NewStyle().Foreground(t.Gutter),
	}
}

// Badge returns the style of a decoration indicator in colour c.
func (s Styles) Badge(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}
