package dualpane

import (
	"github.com/iw2rmb/marginalia/geom"
	"github.com/iw2rmb/marginalia/layout"
)

// Side is one pane together with the metrics of its font.
type Side struct {
	Pane    Pane
	Metrics Metrics
}

// MirrorTarget receives the tiling metrics the secondary fragment policy
// needs. *annotate.MirrorPolicy implements it.
type MirrorTarget interface {
	SetMetrics(scale, primaryPadding, secondaryPadding float64)
}

// ScrollState places the secondary rendering for one primary scroll offset.
type ScrollState struct {
	// Factor maps the primary scroll offset to Origin.
	Factor float64
	// Origin is the y of the secondary rendering in primary document
	// coordinates.
	Origin float64
	// SecondaryOffset is the secondary pane's own scroll offset.
	SecondaryOffset float64
	// Indicator is the visible-region box in secondary document coordinates.
	Indicator geom.Rect
}

// Sync tiles two panes and synchronises their scrolling.
type Sync struct {
	primary   Side
	secondary Side
	mirror    MirrorTarget
	cfg       Config

	tiling Tiling
	scroll ScrollState
}

// New panics when a pane or its metrics are missing. mirror may be nil.
func New(primary, secondary Side, mirror MirrorTarget, cfg Config) *Sync {
	if primary.Pane == nil || secondary.Pane == nil {
		panic("dualpane: New requires both panes")
	}
	if primary.Metrics == nil || secondary.Metrics == nil {
		panic("dualpane: New requires metrics for both panes")
	}
	return &Sync{
		primary:   primary,
		secondary: secondary,
		mirror:    mirror,
		cfg:       normalizeConfig(cfg),
		scroll:    ScrollState{Factor: 1},
	}
}

func (s *Sync) Config() Config { return s.cfg }

func (s *Sync) Tiling() Tiling { return s.tiling }

func (s *Sync) Scroll() ScrollState { return s.scroll }

// Tile recomputes fonts, widths, padding and gutter exclusions for total
// and applies them to both panes.
func (s *Sync) Tile(total float64) Tiling {
	t := tile(s.cfg, s.primary.Metrics, s.secondary.Metrics, total)
	s.tiling = t

	if s.mirror != nil {
		s.mirror.SetMetrics(t.Scale(), t.PrimaryPadding, t.SecondaryPadding)
	}
	s.primary.Pane.SetFont(t.PrimaryFont)
	s.secondary.Pane.SetFont(t.SecondaryFont)
	s.primary.Pane.SetContainer(t.PrimaryContainer())
	s.secondary.Pane.SetContainer(t.SecondaryContainer())
	return t
}

// SetFontSize changes the primary font size and tiles again at the last
// total width.
func (s *Sync) SetFontSize(size float64) Tiling {
	if size > 0 {
		s.cfg.FontSize = size
	}
	return s.Tile(s.tiling.Total)
}

// AdjustScroll derives the secondary placement from the primary scroll
// offset and the visible height. Call it after layout and after the
// primary pane scrolled.
func (s *Sync) AdjustScroll(offset, visible float64) ScrollState {
	ph := s.primary.Pane.UsedHeight()
	sh := s.secondary.Pane.UsedHeight()
	s.scroll = Scroll(ph, sh, offset, visible, s.tiling.SecondaryWidth)
	return s.scroll
}

// Scroll computes a ScrollState from the document heights of both panes.
// width is the width of the indicator box.
func Scroll(primaryHeight, secondaryHeight, offset, visible, width float64) ScrollState {
	st := ScrollState{Factor: 1}
	if secondaryHeight > visible && primaryHeight > visible {
		st.Factor = 1 - (secondaryHeight-visible)/(primaryHeight-visible)
	}
	st.Origin = geom.Clamp(offset*st.Factor, 0, maxFloat(primaryHeight-secondaryHeight, 0))
	st.SecondaryOffset = geom.Clamp(offset-st.Origin, 0, maxFloat(secondaryHeight-visible, 0))

	if primaryHeight > 0 {
		y := offset * secondaryHeight / primaryHeight
		h := visible * secondaryHeight / primaryHeight
		if h > secondaryHeight {
			h = secondaryHeight
		}
		st.Indicator = geom.R(0, y, width, h)
	}
	return st
}

// Capacities reports the character capacity of both panes. They are equal
// after every Tile.
func (s *Sync) Capacities() (primary, secondary int) {
	return s.primary.Pane.ContainerCapacity(), s.secondary.Pane.ContainerCapacity()
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

var _ Pane = (*layout.Engine)(nil)
