package annotate

import (
	"github.com/iw2rmb/marginalia/buffer"
	"github.com/iw2rmb/marginalia/geom"
)

// GeometryQuery answers line-level geometry questions by combining the line
// map with the layout engine.
type GeometryQuery struct {
	lines  LineMap
	engine LayoutEngine
}

func NewGeometryQuery(lines LineMap, engine LayoutEngine) GeometryQuery {
	if lines == nil || engine == nil {
		panic("annotate: GeometryQuery requires a line map and a layout engine")
	}
	return GeometryQuery{lines: lines, engine: engine}
}

// LineStartingAt returns the line whose first character is off.
func (q GeometryQuery) LineStartingAt(off int) (int, bool) {
	line, ok := q.lines.LineOf(off)
	if !ok {
		return 0, false
	}
	info, ok := q.lines.Lookup(line)
	if !ok || info.Range.Location != off {
		return 0, false
	}
	return line, true
}

// LineRange returns the character range of line.
func (q GeometryQuery) LineRange(line int) (buffer.CharRange, bool) {
	info, ok := q.lines.Lookup(line)
	if !ok {
		return buffer.CharRange{}, false
	}
	return info.Range, true
}

// CurrentLine returns the range of the line holding a caret. A non-empty
// selection has no current line.
func (q GeometryQuery) CurrentLine(sel buffer.CharRange) (buffer.CharRange, bool) {
	if sel.Length != 0 {
		return buffer.CharRange{}, false
	}
	line, ok := q.lines.LineOf(sel.Location)
	if !ok {
		return buffer.CharRange{}, false
	}
	return q.LineRange(line)
}

// LineGeometry is the laid-out geometry of the line under an anchor.
type LineGeometry struct {
	Line     int
	Range    buffer.CharRange
	Used     geom.Rect
	Bounding geom.Rect
}

type queryStatus int

const (
	queryOK queryStatus = iota
	queryNotReady
	queryMissing
)

// lineGeometry maps an anchor rect to the line it covers.
func (q GeometryQuery) lineGeometry(anchor geom.Rect) (LineGeometry, queryStatus) {
	if q.engine.InLayout() {
		return LineGeometry{}, queryNotReady
	}
	glyphs, ok := q.engine.GlyphRangeForBoundingRect(anchor)
	if !ok {
		if q.engine.InLayout() {
			return LineGeometry{}, queryNotReady
		}
		return LineGeometry{}, queryMissing
	}
	chars := q.engine.CharacterRangeForGlyphRange(glyphs)
	line, ok := q.lines.LineOf(chars.Location)
	if !ok {
		return LineGeometry{}, queryMissing
	}
	lineChars, ok := q.LineRange(line)
	if !ok {
		return LineGeometry{}, queryMissing
	}
	lineGlyphs := q.engine.GlyphRangeForCharacterRange(lineChars)
	used, ok := q.engine.LineFragmentUsedRect(lineGlyphs.Location)
	if !ok {
		return LineGeometry{}, queryMissing
	}
	bounding, ok := q.engine.BoundingRectForGlyphRange(lineGlyphs)
	if !ok {
		return LineGeometry{}, queryMissing
	}
	return LineGeometry{Line: line, Range: lineChars, Used: used, Bounding: bounding}, queryOK
}

// LineGeometry maps an anchor rect to the geometry of the line it covers.
func (q GeometryQuery) LineGeometry(anchor geom.Rect) (LineGeometry, bool) {
	lg, st := q.lineGeometry(anchor)
	return lg, st == queryOK
}

// LineRect returns the bounding rect of every fragment of the line covering
// the character range r.
func (q GeometryQuery) LineRect(r buffer.CharRange) (geom.Rect, bool) {
	glyphs := q.engine.GlyphRangeForCharacterRange(r)
	return q.engine.BoundingRectForGlyphRange(glyphs)
}
