package annotate

import (
	"github.com/iw2rmb/marginalia/geom"
	"github.com/iw2rmb/marginalia/layout"
)

// LineFragmentPolicy reserves room for the collapsed indicator on the first
// fragment of every decorated line and records the unreserved rect as the
// decoration's anchor.
type LineFragmentPolicy struct {
	reg *Registry
}

var _ layout.FragmentDelegate = (*LineFragmentPolicy)(nil)

func NewLineFragmentPolicy(reg *Registry) *LineFragmentPolicy {
	if reg == nil {
		panic("annotate: NewLineFragmentPolicy requires a registry")
	}
	return &LineFragmentPolicy{reg: reg}
}

// ProposeLineFragmentRect runs inside the engine's layout pass. It must not
// trigger layout itself, so resolution is only scheduled.
func (p *LineFragmentPolicy) ProposeLineFragmentRect(candidate geom.Rect, off int, dir layout.WritingDirection) geom.Rect {
	line, ok := p.reg.query.LineStartingAt(off)
	if !ok {
		return candidate
	}
	bundle, ok := p.reg.lines.Messages(line)
	if !ok || !p.reg.Has(bundle.ID) {
		return candidate
	}
	m := p.reg.opt.MinimumInlineWidth
	if !layout.AtLeast(candidate.Width(), 2*m) {
		return candidate
	}
	p.reg.recordAnchor(bundle.ID, line, candidate)
	return narrow(candidate, m, dir)
}

// MirrorPolicy narrows decorated lines of a secondary rendering by the
// inline width scaled to the secondary font, so that both renderings break
// decorated lines at the same characters. It records no anchors.
type MirrorPolicy struct {
	reg *Registry

	scale            float64
	primaryPadding   float64
	secondaryPadding float64
}

var _ layout.FragmentDelegate = (*MirrorPolicy)(nil)

func NewMirrorPolicy(reg *Registry) *MirrorPolicy {
	if reg == nil {
		panic("annotate: NewMirrorPolicy requires a registry")
	}
	return &MirrorPolicy{reg: reg, scale: 1}
}

// SetMetrics sets the secondary-to-primary advance ratio and both panes'
// line fragment padding.
func (p *MirrorPolicy) SetMetrics(scale, primaryPadding, secondaryPadding float64) {
	if scale <= 0 {
		scale = 1
	}
	p.scale = scale
	p.primaryPadding = primaryPadding
	p.secondaryPadding = secondaryPadding
}

func (p *MirrorPolicy) ProposeLineFragmentRect(candidate geom.Rect, off int, dir layout.WritingDirection) geom.Rect {
	line, ok := p.reg.query.LineStartingAt(off)
	if !ok {
		return candidate
	}
	bundle, ok := p.reg.lines.Messages(line)
	if !ok || !p.reg.Has(bundle.ID) {
		return candidate
	}
	m := p.reg.opt.MinimumInlineWidth
	// Decide on the equivalent primary width so both panes agree.
	primaryWidth := (candidate.Width()-2*p.secondaryPadding)/p.scale + 2*p.primaryPadding
	if !layout.AtLeast(primaryWidth, 2*m) {
		return candidate
	}
	return narrow(candidate, m*p.scale, dir)
}

// narrow shrinks r by w on its trailing edge.
func narrow(r geom.Rect, w float64, dir layout.WritingDirection) geom.Rect {
	if dir == layout.RightToLeft {
		r.Origin.X += w
	}
	r.Size.Width -= w
	return r
}
