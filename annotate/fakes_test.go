package annotate

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/marginalia/buffer"
	"github.com/iw2rmb/marginalia/geom"
	"github.com/iw2rmb/marginalia/layout"
	"github.com/iw2rmb/marginalia/sched"
	"github.com/iw2rmb/marginalia/theme"
)

type fakeView struct {
	bundle   *buffer.Bundle
	color    lipgloss.Color
	geometry Geometry
	unfolded bool
	sets     int
}

func (v *fakeView) SetGeometry(g Geometry) {
	v.geometry = g
	v.sets++
}
func (v *fakeView) SetUnfolded(u bool) { v.unfolded = u }
func (v *fakeView) Unfolded() bool     { return v.unfolded }

type fakeConstraint struct {
	edge    Edge
	offset  float64
	updates int
}

func (c *fakeConstraint) SetOffset(v float64) {
	c.offset = v
	c.updates++
}
func (c *fakeConstraint) Offset() float64 { return c.offset }

type fakeSurface struct {
	views       []*fakeView
	attached    map[View]bool
	attaches    int
	detaches    int
	constraints []*fakeConstraint
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{attached: make(map[View]bool)}
}

func (s *fakeSurface) NewView(b *buffer.Bundle, c lipgloss.Color, g Geometry) View {
	v := &fakeView{bundle: b, color: c, geometry: g}
	s.views = append(s.views, v)
	return v
}

func (s *fakeSurface) Attach(v View) {
	s.attached[v] = true
	s.attaches++
}

func (s *fakeSurface) Constrain(_ View, edge Edge, offset float64) Constraint {
	c := &fakeConstraint{edge: edge, offset: offset}
	s.constraints = append(s.constraints, c)
	return c
}

func (s *fakeSurface) Detach(v View) {
	delete(s.attached, v)
	s.detaches++
}

type gutterCall struct {
	r          buffer.CharRange
	registered int
}

type fakeGutter struct {
	reg   *Registry
	calls []gutterCall
}

func (g *fakeGutter) InvalidateGutter(r buffer.CharRange) {
	n := -1
	if g.reg != nil {
		n = g.reg.Len()
	}
	g.calls = append(g.calls, gutterCall{r: r, registered: n})
}

type fakeRects struct {
	rects []geom.Rect
}

func (f *fakeRects) InvalidateRect(r geom.Rect) { f.rects = append(f.rects, r) }

// busyEngine reports a running layout pass while busy is set.
type busyEngine struct {
	*layout.Engine
	busy bool
}

func (b *busyEngine) InLayout() bool { return b.busy || b.Engine.InLayout() }

type harness struct {
	st      *layout.Storage
	buf     *buffer.Buffer
	engine  *layout.Engine
	queue   *sched.Queue
	surface *fakeSurface
	reg     *Registry
	policy  *LineFragmentPolicy
	gutter  *fakeGutter
	bridge  *EditBridge
	theme   theme.Theme
}

var harnessFont = layout.Font{Size: 1, Advance: 1, LineHeight: 1}

func numberedLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	return strings.Join(lines, "\n")
}

func newHarness(text string, width float64) *harness {
	h := &harness{
		buf:     buffer.New(text),
		queue:   sched.New(),
		surface: newFakeSurface(),
		theme:   theme.Default(),
	}
	h.st = layout.NewStorage(h.buf)
	h.engine = layout.NewEngine(h.st, harnessFont, layout.Container{Width: width}, layout.Options{})
	h.reg = NewRegistry(h.buf, h.engine, h.queue, h.surface, h.theme, Options{MinimumInlineWidth: 4, PopupMargin: 4})
	h.policy = NewLineFragmentPolicy(h.reg)
	h.engine.SetDelegate(h.policy)
	h.gutter = &fakeGutter{reg: h.reg}
	h.reg.AddGutter(h.gutter)
	h.bridge = NewEditBridge(h.reg, h.gutter)
	h.engine.AddObserver(h.bridge)
	return h
}

// settle lays out and runs deferred work until the queue is empty.
func (h *harness) settle() {
	h.engine.EnsureLayout()
	h.queue.Drain(16)
}

func (h *harness) bundleAt(line int) buffer.BundleID {
	b, ok := h.buf.Messages(line)
	if !ok {
		return 0
	}
	return b.ID
}

func (h *harness) lineStart(line int) int {
	info, _ := h.buf.Lookup(line)
	return info.Range.Location
}

func testPalette() Palette { return theme.Default() }
