package layout

import (
	"io"
	"log"
	"math"

	"github.com/iw2rmb/marginalia/buffer"
	"github.com/iw2rmb/marginalia/geom"
)

// FragmentDelegate may adjust the rect proposed for every line fragment.
// charOffset is the first character of the fragment.
type FragmentDelegate interface {
	ProposeLineFragmentRect(candidate geom.Rect, charOffset int, dir WritingDirection) geom.Rect
}

// EditResult is delivered to EditObservers after an engine has processed an
// edit.
type EditResult struct {
	Edit buffer.Edit
	// InvalidatedRange covers the post-edit lines whose layout was dropped.
	InvalidatedRange buffer.CharRange
}

type EditObserver interface {
	DidProcessEditing(res EditResult)
}

// Display receives display invalidation in container coordinates.
type Display interface {
	InvalidateRect(r geom.Rect)
}

// Container is the area text is laid out in.
type Container struct {
	Width               float64
	LineFragmentPadding float64
	// Exclusions are regions text must not be laid out under. Rects touching
	// the left edge push text right; all others cut the line on the right.
	Exclusions []geom.Rect
	// Inset is the text origin inside the hosting view.
	Inset geom.Point
}

// Fragment is one laid-out line fragment in container coordinates.
type Fragment struct {
	Rect     geom.Rect
	UsedRect geom.Rect
	// Chars are the characters in the fragment; the last fragment of a line
	// includes the line's newline.
	Chars buffer.CharRange
	// Cells is the number of glyph cells laid out in the fragment.
	Cells int
}

type Options struct {
	Direction WritingDirection
	Logger    *log.Logger
}

// minExtent keeps degenerate query rects intersectable.
const minExtent = 1e-9

type lineLayout struct {
	valid     bool
	top       float64
	height    float64
	fragments []Fragment // y relative to top
}

// Engine lays out one view of a Storage.
type Engine struct {
	st        *Storage
	font      Font
	container Container
	opt       Options
	log       *log.Logger

	delegate  FragmentDelegate
	observers []EditObserver
	display   Display

	lines       []lineLayout
	seenVersion uint64

	inPass    bool
	refusals  int
	passCount int
}

func NewEngine(st *Storage, font Font, c Container, opt Options) *Engine {
	if st == nil {
		panic("layout: NewEngine requires a storage")
	}
	logger := opt.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	e := &Engine{
		st:        st,
		font:      font,
		container: c,
		opt:       opt,
		log:       logger,
	}
	e.reset()
	st.attach(e)
	return e
}

func (e *Engine) Storage() *Storage { return e.st }

func (e *Engine) Font() Font { return e.font }

func (e *Engine) Container() Container { return e.container }

func (e *Engine) SetDelegate(d FragmentDelegate) {
	e.delegate = d
	e.InvalidateAll()
}

func (e *Engine) AddObserver(o EditObserver) {
	if o != nil {
		e.observers = append(e.observers, o)
	}
}

func (e *Engine) SetDisplay(d Display) { e.display = d }

// SetFont replaces the font and drops all layout.
func (e *Engine) SetFont(f Font) {
	e.font = f
	e.InvalidateAll()
}

// SetContainer replaces the container geometry and drops all layout.
func (e *Engine) SetContainer(c Container) {
	e.container = c
	e.InvalidateAll()
}

// ContainerCapacity returns how many cells fit into an unobstructed line.
func (e *Engine) ContainerCapacity() int {
	w := e.container.Width - 2*e.container.LineFragmentPadding
	for _, ex := range e.container.Exclusions {
		w -= ex.Width()
	}
	return Capacity(w, e.font.Advance)
}

// InLayout reports whether a layout pass is running.
func (e *Engine) InLayout() bool { return e.inPass }

// Refusals returns how many re-entrant requests were refused during passes.
func (e *Engine) Refusals() int { return e.refusals }

// Passes returns how many layout passes have run.
func (e *Engine) Passes() int { return e.passCount }

// InvalidateAll drops the layout of every line.
func (e *Engine) InvalidateAll() {
	for i := range e.lines {
		e.lines[i].valid = false
	}
	if e.display != nil {
		e.display.InvalidateRect(geom.R(0, 0, e.container.Width, math.Inf(1)))
	}
}

// InvalidateLayout drops the layout of every line intersecting r.
func (e *Engine) InvalidateLayout(r buffer.CharRange) {
	e.sync()
	first, last, ok := e.lineSpan(r)
	if !ok {
		return
	}
	for i := first; i <= last; i++ {
		e.lines[i].valid = false
	}
}

// InvalidateDisplay asks the display to redraw the lines intersecting r.
// It never triggers layout; lines without layout are redrawn from their last
// known position to the bottom of the container.
func (e *Engine) InvalidateDisplay(r buffer.CharRange) {
	if e.display == nil {
		return
	}
	e.sync()
	first, last, ok := e.lineSpan(r)
	if !ok {
		return
	}
	top := e.lines[first].top
	bottom := top
	for i := first; i <= last; i++ {
		l := e.lines[i]
		if !l.valid {
			bottom = math.Inf(1)
			break
		}
		bottom = math.Max(bottom, l.top+l.height)
	}
	e.display.InvalidateRect(geom.R(0, top, e.container.Width, bottom-top))
}

// EnsureLayout lays out every invalid line. It is refused while a pass is
// already running.
func (e *Engine) EnsureLayout() {
	if e.inPass {
		e.refuse("ensure layout")
		return
	}
	e.sync()
	e.pass()
}

// ContainerWidth returns the container width without triggering layout.
func (e *Engine) ContainerWidth() float64 { return e.container.Width }

// TextOrigin is the origin of the text container inside its view.
func (e *Engine) TextOrigin() geom.Point { return e.container.Inset }

// UsedHeight returns the height of the laid-out document.
// While a pass is running it returns the last known height.
func (e *Engine) UsedHeight() float64 {
	e.ready()
	return e.lastHeight()
}

func (e *Engine) lastHeight() float64 {
	if len(e.lines) == 0 {
		return 0
	}
	l := e.lines[len(e.lines)-1]
	return l.top + l.height
}

// Fragments returns the fragments of line in container coordinates.
func (e *Engine) Fragments(line int) ([]Fragment, bool) {
	if !e.ready() || line < 0 || line >= len(e.lines) {
		return nil, false
	}
	l := e.lines[line]
	out := make([]Fragment, len(l.fragments))
	for i, f := range l.fragments {
		f.Rect = f.Rect.Offset(0, l.top)
		f.UsedRect = f.UsedRect.Offset(0, l.top)
		out[i] = f
	}
	return out, true
}

// LineTop returns the y of line's first fragment.
func (e *Engine) LineTop(line int) (float64, bool) {
	if !e.ready() || line < 0 || line >= len(e.lines) {
		return 0, false
	}
	return e.lines[line].top, true
}

// LineAtY returns the line whose fragments cover y, clamped to the document.
func (e *Engine) LineAtY(y float64) (int, bool) {
	if !e.ready() || len(e.lines) == 0 {
		return 0, false
	}
	lo, hi := 0, len(e.lines)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if e.lines[mid].top <= y {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo, true
}

// GlyphRangeForBoundingRect returns the glyphs of every fragment
// intersecting r. Glyphs map one-to-one onto characters. ok is false while a
// pass is running or when no fragment intersects r.
func (e *Engine) GlyphRangeForBoundingRect(r geom.Rect) (buffer.CharRange, bool) {
	if !e.ready() {
		return buffer.CharRange{}, false
	}
	first, last, ok := e.linesInBand(r.MinY(), r.MaxY())
	if !ok {
		return buffer.CharRange{}, false
	}
	band := geom.R(r.MinX(), r.MinY(), math.Max(r.Width(), minExtent), math.Max(r.Height(), minExtent))
	var out buffer.CharRange
	found := false
	for i := first; i <= last; i++ {
		l := e.lines[i]
		for _, f := range l.fragments {
			if !f.Rect.Offset(0, l.top).Intersects(band) {
				continue
			}
			if !found {
				out, found = f.Chars, true
				continue
			}
			out = out.Union(f.Chars)
		}
	}
	return out, found
}

// CharacterRangeForGlyphRange maps glyphs to characters.
func (e *Engine) CharacterRangeForGlyphRange(g buffer.CharRange) buffer.CharRange {
	return g
}

// GlyphRangeForCharacterRange maps characters to glyphs.
func (e *Engine) GlyphRangeForCharacterRange(c buffer.CharRange) buffer.CharRange {
	return c
}

// LineFragmentRect returns the rect of the fragment holding glyph.
func (e *Engine) LineFragmentRect(glyph int) (geom.Rect, bool) {
	f, top, ok := e.fragmentForGlyph(glyph)
	if !ok {
		return geom.Rect{}, false
	}
	return f.Rect.Offset(0, top), true
}

// LineFragmentUsedRect returns the glyph extents of the fragment holding
// glyph, including the leading line fragment padding.
func (e *Engine) LineFragmentUsedRect(glyph int) (geom.Rect, bool) {
	f, top, ok := e.fragmentForGlyph(glyph)
	if !ok {
		return geom.Rect{}, false
	}
	return f.UsedRect.Offset(0, top), true
}

// BoundingRectForGlyphRange returns the union of the fragment rects holding
// glyphs of g.
func (e *Engine) BoundingRectForGlyphRange(g buffer.CharRange) (geom.Rect, bool) {
	if !e.ready() {
		return geom.Rect{}, false
	}
	first, last, ok := e.lineSpan(g)
	if !ok {
		return geom.Rect{}, false
	}
	var out geom.Rect
	found := false
	for i := first; i <= last; i++ {
		l := e.lines[i]
		for _, f := range l.fragments {
			if !f.Chars.Intersects(g) {
				continue
			}
			fr := f.Rect.Offset(0, l.top)
			if !found {
				out, found = fr, true
				continue
			}
			out = out.Union(fr)
		}
	}
	return out, found
}

func (e *Engine) fragmentForGlyph(glyph int) (Fragment, float64, bool) {
	if !e.ready() {
		return Fragment{}, 0, false
	}
	line, ok := e.st.buf.LineOf(glyph)
	if !ok {
		return Fragment{}, 0, false
	}
	l := e.lines[line]
	for _, f := range l.fragments {
		if f.Chars.Contains(glyph) {
			return f, l.top, true
		}
	}
	if n := len(l.fragments); n > 0 {
		return l.fragments[n-1], l.top, true
	}
	return Fragment{}, 0, false
}

// ready brings layout up to date unless a pass is running.
func (e *Engine) ready() bool {
	if e.inPass {
		return false
	}
	e.sync()
	e.pass()
	return true
}

// sync drops all layout when the buffer changed behind the engine's back.
func (e *Engine) sync() {
	buf := e.st.buf
	if e.seenVersion == buf.Version() && len(e.lines) == buf.LineCount() {
		return
	}
	e.reset()
}

func (e *Engine) reset() {
	e.lines = make([]lineLayout, e.st.buf.LineCount())
	e.seenVersion = e.st.buf.Version()
}

func (e *Engine) refuse(what string) {
	e.refusals++
	e.log.Printf("[LAYOUT] refused re-entrant %s during layout pass", what)
}

func (e *Engine) processEditing(ed buffer.Edit) {
	if e.seenVersion+1 != e.st.buf.Version() || len(e.lines) != e.st.buf.LineCount()-(ed.LastLine-ed.OldLastLine) {
		e.reset()
	} else {
		fresh := make([]lineLayout, ed.LastLine-ed.FirstLine+1)
		for i := range fresh {
			fresh[i].top = e.lines[ed.FirstLine].top
		}
		out := make([]lineLayout, 0, e.st.buf.LineCount())
		out = append(out, e.lines[:ed.FirstLine]...)
		out = append(out, fresh...)
		out = append(out, e.lines[ed.OldLastLine+1:]...)
		e.lines = out
		e.seenVersion = e.st.buf.Version()
	}

	invalid := e.lineChars(ed.FirstLine, ed.LastLine)
	e.InvalidateDisplay(invalid)

	res := EditResult{Edit: ed, InvalidatedRange: invalid}
	for _, o := range e.observers {
		o.DidProcessEditing(res)
	}
}

func (e *Engine) lineChars(first, last int) buffer.CharRange {
	a, okA := e.st.buf.Lookup(first)
	b, okB := e.st.buf.Lookup(last)
	if !okA || !okB {
		return buffer.CharRange{}
	}
	return a.Range.Union(b.Range)
}

func (e *Engine) lineSpan(r buffer.CharRange) (first, last int, ok bool) {
	first, ok = e.st.buf.LineOf(r.Location)
	if !ok {
		return 0, 0, false
	}
	end := r.End()
	if r.Length > 0 {
		end--
	}
	last, ok = e.st.buf.LineOf(end)
	if !ok {
		last = len(e.lines) - 1
	}
	if first >= len(e.lines) || last >= len(e.lines) {
		return 0, 0, false
	}
	return first, last, true
}

func (e *Engine) linesInBand(y0, y1 float64) (first, last int, ok bool) {
	if len(e.lines) == 0 {
		return 0, 0, false
	}
	first, _ = e.LineAtY(y0)
	last = first
	for last+1 < len(e.lines) && e.lines[last+1].top < y1 {
		last++
	}
	return first, last, true
}
