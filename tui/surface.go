package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/marginalia/annotate"
	"github.com/iw2rmb/marginalia/buffer"
	"github.com/iw2rmb/marginalia/geom"
)

// damage counts invalidations since the last render.
type damage struct {
	rects   int
	gutters int
	views   int
}

func (d *damage) dirty() bool { return d.rects+d.gutters+d.views > 0 }

func (d *damage) reset() { *d = damage{} }

// paneDisplay receives display invalidation of one pane.
type paneDisplay struct {
	d *damage
}

func (p paneDisplay) InvalidateRect(geom.Rect) { p.d.rects++ }

// paneGutter receives gutter invalidation of one pane.
type paneGutter struct {
	d *damage
}

func (p paneGutter) InvalidateGutter(buffer.CharRange) { p.d.gutters++ }

// indicator is the terminal view of one decoration.
type indicator struct {
	bundle   *buffer.Bundle
	color    lipgloss.Color
	geometry annotate.Geometry
	unfolded bool
	attached bool

	top   *edgeConstraint
	right *edgeConstraint

	d *damage
}

func (v *indicator) SetGeometry(g annotate.Geometry) {
	v.geometry = g
	v.d.views++
}

func (v *indicator) SetUnfolded(u bool) {
	if v.unfolded != u {
		v.unfolded = u
		v.d.views++
	}
}

func (v *indicator) Unfolded() bool { return v.unfolded }

// placed reports whether both edges are constrained.
func (v *indicator) placed() bool {
	return v.attached && v.top != nil && v.right != nil
}

type edgeConstraint struct {
	offset float64
	d      *damage
}

func (c *edgeConstraint) SetOffset(v float64) {
	c.offset = v
	c.d.views++
}

func (c *edgeConstraint) Offset() float64 { return c.offset }

// overlay is the annotate.Surface of the primary pane.
type overlay struct {
	views []*indicator
	d     *damage
}

var _ annotate.Surface = (*overlay)(nil)

func (o *overlay) NewView(b *buffer.Bundle, c lipgloss.Color, g annotate.Geometry) annotate.View {
	return &indicator{bundle: b, color: c, geometry: g, d: o.d}
}

func (o *overlay) Attach(v annotate.View) {
	ind, ok := v.(*indicator)
	if !ok || ind.attached {
		return
	}
	ind.attached = true
	o.views = append(o.views, ind)
	o.d.views++
}

func (o *overlay) Constrain(v annotate.View, edge annotate.Edge, offset float64) annotate.Constraint {
	c := &edgeConstraint{offset: offset, d: o.d}
	ind, ok := v.(*indicator)
	if !ok {
		return c
	}
	switch edge {
	case annotate.EdgeTop:
		ind.top = c
	case annotate.EdgeRight:
		ind.right = c
	}
	o.d.views++
	return c
}

func (o *overlay) Detach(v annotate.View) {
	ind, ok := v.(*indicator)
	if !ok || !ind.attached {
		return
	}
	ind.attached = false
	for i, w := range o.views {
		if w == ind {
			o.views = append(o.views[:i], o.views[i+1:]...)
			break
		}
	}
	o.d.views++
}

// placedViews returns the attached views with both edges constrained.
func (o *overlay) placedViews() []*indicator {
	out := make([]*indicator, 0, len(o.views))
	for _, v := range o.views {
		if v.placed() {
			out = append(out, v)
		}
	}
	return out
}
