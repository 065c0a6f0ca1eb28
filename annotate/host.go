package annotate

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/marginalia/buffer"
	"github.com/iw2rmb/marginalia/geom"
)

// LineMap is the line-indexed document model holding message bundles.
type LineMap interface {
	LineCount() int
	Lookup(line int) (buffer.LineInfo, bool)
	LineOf(off int) (int, bool)
	Messages(line int) (*buffer.Bundle, bool)
	Insert(msg buffer.Message) (*buffer.Bundle, bool)
	RemoveMessages(line int)
	EvictedBundleIDsFromLastEdit() []buffer.BundleID
}

// LayoutEngine is the part of the text-layout engine the core consumes.
// Queries return ok=false while the engine is inside a layout pass.
type LayoutEngine interface {
	InLayout() bool
	EnsureLayout()

	GlyphRangeForBoundingRect(r geom.Rect) (buffer.CharRange, bool)
	CharacterRangeForGlyphRange(g buffer.CharRange) buffer.CharRange
	GlyphRangeForCharacterRange(c buffer.CharRange) buffer.CharRange
	LineFragmentRect(glyph int) (geom.Rect, bool)
	LineFragmentUsedRect(glyph int) (geom.Rect, bool)
	BoundingRectForGlyphRange(g buffer.CharRange) (geom.Rect, bool)

	InvalidateLayout(r buffer.CharRange)
	InvalidateDisplay(r buffer.CharRange)

	ContainerWidth() float64
	TextOrigin() geom.Point
}

// Scheduler runs deferred work on the owning goroutine after the current
// callback has returned.
type Scheduler interface {
	Defer(fn func())
}

// Palette supplies decoration colours.
type Palette interface {
	ColorFor(c buffer.Category) lipgloss.Color
}

// View is a decoration presentation. The registry owns every view it
// creates.
type View interface {
	SetGeometry(g Geometry)
	SetUnfolded(unfolded bool)
	Unfolded() bool
}

type Edge int

const (
	EdgeTop Edge = iota
	EdgeRight
)

// Constraint is a positioning handle of an attached view, an offset from
// the hosting container along one edge.
type Constraint interface {
	SetOffset(v float64)
	Offset() float64
}

// Surface is the display hierarchy hosting decoration views.
type Surface interface {
	NewView(bundle *buffer.Bundle, color lipgloss.Color, g Geometry) View
	Attach(v View)
	Constrain(v View, edge Edge, offset float64) Constraint
	// Detach removes v from the hierarchy. Detaching a view that was never
	// attached is a no-op.
	Detach(v View)
}

// GutterInvalidator redraws the gutter next to a character range.
type GutterInvalidator interface {
	InvalidateGutter(r buffer.CharRange)
}

// RectInvalidator redraws a rect in its own coordinates.
type RectInvalidator interface {
	InvalidateRect(r geom.Rect)
}
