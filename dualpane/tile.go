package dualpane

import (
	"math"

	"github.com/iw2rmb/marginalia/geom"
	"github.com/iw2rmb/marginalia/layout"
)

// Metrics measures the fixed-pitch font of one pane at a point size.
type Metrics interface {
	FontAt(size float64) layout.Font
}

// MetricsFunc adapts a function to Metrics.
type MetricsFunc func(size float64) layout.Font

func (f MetricsFunc) FontAt(size float64) layout.Font { return f(size) }

// Pane is the part of a rendering that tiling and scrolling drive.
// *layout.Engine implements it.
type Pane interface {
	SetFont(f layout.Font)
	SetContainer(c layout.Container)
	ContainerCapacity() int
	UsedHeight() float64
}

// Config describes the fixed parts of the tiling.
type Config struct {
	// FontSize is the primary font size.
	FontSize float64
	// Ratio scales the secondary font down: secondary size = FontSize/Ratio.
	Ratio float64
	// GutterCharacters is the gutter width of both panes, in characters of
	// the pane's own font.
	GutterCharacters int
	// Divider separates the panes.
	Divider float64
	// PrimaryPadding is the minimum line fragment padding of the primary
	// pane; leftover width is added to it.
	PrimaryPadding   float64
	SecondaryPadding float64
}

func DefaultConfig() Config {
	return Config{
		FontSize:         1,
		Ratio:            2,
		GutterCharacters: 5,
		Divider:          1,
	}
}

func normalizeConfig(cfg Config) Config {
	def := DefaultConfig()
	if cfg.FontSize <= 0 {
		cfg.FontSize = def.FontSize
	}
	if cfg.Ratio <= 0 {
		cfg.Ratio = def.Ratio
	}
	if cfg.GutterCharacters < 0 {
		cfg.GutterCharacters = 0
	}
	if cfg.Divider < 0 {
		cfg.Divider = 0
	}
	if cfg.PrimaryPadding < 0 {
		cfg.PrimaryPadding = 0
	}
	if cfg.SecondaryPadding < 0 {
		cfg.SecondaryPadding = 0
	}
	return cfg
}

// Tiling is the outcome of one Tile call.
type Tiling struct {
	Total float64
	// Columns is the number of characters both panes hold per line.
	Columns int

	PrimaryFont   layout.Font
	SecondaryFont layout.Font

	PrimaryWidth   float64
	SecondaryWidth float64
	Divider        float64

	PrimaryGutter   float64
	SecondaryGutter float64

	PrimaryPadding   float64
	SecondaryPadding float64
}

// Scale is the secondary-to-primary advance ratio.
func (t Tiling) Scale() float64 {
	if t.PrimaryFont.Advance <= 0 {
		return 1
	}
	return t.SecondaryFont.Advance / t.PrimaryFont.Advance
}

func (t Tiling) PrimaryContainer() layout.Container {
	return container(t.PrimaryWidth, t.PrimaryGutter, t.PrimaryPadding)
}

func (t Tiling) SecondaryContainer() layout.Container {
	return container(t.SecondaryWidth, t.SecondaryGutter, t.SecondaryPadding)
}

// SecondaryOriginX is the x of the secondary pane in the shared view.
func (t Tiling) SecondaryOriginX() float64 {
	return t.PrimaryWidth + t.Divider
}

func container(width, gutter, padding float64) layout.Container {
	c := layout.Container{Width: width, LineFragmentPadding: padding}
	if gutter > 0 {
		c.Exclusions = []geom.Rect{geom.R(0, 0, gutter, math.Inf(1))}
	}
	return c
}

// tile computes the tiling for total without applying it.
func tile(cfg Config, pm, sm Metrics, total float64) Tiling {
	pf := pm.FontAt(cfg.FontSize)
	sf := sm.FontAt(cfg.FontSize / cfg.Ratio)

	t := Tiling{
		Total:            math.Max(total, 0),
		PrimaryFont:      pf,
		SecondaryFont:    sf,
		Divider:          cfg.Divider,
		PrimaryGutter:    float64(cfg.GutterCharacters) * pf.Advance,
		SecondaryGutter:  float64(cfg.GutterCharacters) * sf.Advance,
		SecondaryPadding: cfg.SecondaryPadding,
	}

	// Both panes must show the same characters, so N comes from the width
	// left for the text of both panes together.
	text := t.Total - t.PrimaryGutter - 2*cfg.PrimaryPadding -
		t.SecondaryGutter - 2*cfg.SecondaryPadding - t.Divider
	t.Columns = layout.Capacity(text, pf.Advance+sf.Advance)

	n := float64(t.Columns)
	t.SecondaryWidth = t.SecondaryGutter + 2*t.SecondaryPadding + n*sf.Advance
	t.PrimaryWidth = math.Max(t.Total-t.SecondaryWidth-t.Divider, 0)
	t.PrimaryPadding = math.Max((t.PrimaryWidth-t.PrimaryGutter-n*pf.Advance)/2, 0)
	return t
}
