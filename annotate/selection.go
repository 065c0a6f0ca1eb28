package annotate

import (
	"github.com/iw2rmb/marginalia/buffer"
	"github.com/iw2rmb/marginalia/geom"
)

// HighlightPane is one rendering whose current-line background must follow
// the caret.
type HighlightPane struct {
	Engine  LayoutEngine
	Targets []RectInvalidator
}

// SelectionHighlight limits redraw on selection changes to the old and new
// current lines and the gutter span of both selections.
type SelectionHighlight struct {
	reg     *Registry
	panes   []HighlightPane
	gutters []GutterInvalidator
}

func NewSelectionHighlight(reg *Registry, panes []HighlightPane, gutters ...GutterInvalidator) *SelectionHighlight {
	if reg == nil {
		panic("annotate: NewSelectionHighlight requires a registry")
	}
	return &SelectionHighlight{reg: reg, panes: panes, gutters: gutters}
}

// SelectionDidChange is called after the selection moved from old to sel.
func (s *SelectionHighlight) SelectionDidChange(old, sel buffer.CharRange) {
	q := s.reg.query
	oldLine, oldOK := q.CurrentLine(old)
	newLine, newOK := q.CurrentLine(sel)
	if oldOK != newOK || oldLine != newLine {
		for _, p := range s.panes {
			if oldOK {
				s.invalidateLine(p, oldLine)
			}
			if newOK {
				s.invalidateLine(p, newLine)
			}
		}
	}

	span := old.Union(sel)
	s.reg.sched.Defer(func() {
		for _, g := range s.gutters {
			g.InvalidateGutter(span)
		}
	})

	s.reg.CollapseAll()
}

// invalidateLine redraws the line background up to the container's far
// edge so a decoration covering part of the line leaves no remnant.
func (s *SelectionHighlight) invalidateLine(p HighlightPane, r buffer.CharRange) {
	if p.Engine == nil {
		return
	}
	rect, ok := NewGeometryQuery(s.reg.lines, p.Engine).LineRect(r)
	if !ok {
		p.Engine.InvalidateDisplay(r)
		return
	}
	full := geom.R(rect.MinX(), rect.MinY(), p.Engine.ContainerWidth()-rect.MinX(), rect.Height())
	for _, t := range p.Targets {
		t.InvalidateRect(full)
	}
}
