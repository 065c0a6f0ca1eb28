package annotate

import (
	"testing"

	"github.com/iw2rmb/marginalia/buffer"
	"github.com/iw2rmb/marginalia/geom"
)

func caret(off int) buffer.CharRange { return buffer.CharRange{Location: off} }

func newSelectionHarness(t *testing.T) (*harness, *SelectionHighlight, *fakeRects, *fakeGutter) {
	t.Helper()
	h := newHarness(numberedLines(10), 40)
	rects := &fakeRects{}
	gutter := &fakeGutter{reg: h.reg}
	s := NewSelectionHighlight(h.reg, []HighlightPane{{Engine: h.engine, Targets: []RectInvalidator{rects}}}, gutter)
	return h, s, rects, gutter
}

func TestSelectionHighlight_RedrawsOldAndNewLinesFullWidth(t *testing.T) {
	h, s, rects, gutter := newSelectionHarness(t)
	h.reg.Report(buffer.Message{Line: 3})
	h.settle()

	s.SelectionDidChange(caret(h.lineStart(1)+1), caret(h.lineStart(3)+1))
	want := []geom.Rect{geom.R(0, 1, 40, 1), geom.R(0, 3, 40, 1)}
	if len(rects.rects) != len(want) {
		t.Fatalf("rects: got %v, want %v", rects.rects, want)
	}
	for i := range want {
		if rects.rects[i] != want[i] {
			t.Fatalf("rect %d: got %v, want %v", i, rects.rects[i], want[i])
		}
	}

	if len(gutter.calls) != 0 {
		t.Fatalf("gutter redraw must be deferred")
	}
	h.queue.Drain(4)
	if got, want := len(gutter.calls), 1; got != want {
		t.Fatalf("gutter calls: got %d, want %d", got, want)
	}
	if got, want := gutter.calls[0].r, (buffer.CharRange{Location: 8, Length: 14}); got != want {
		t.Fatalf("gutter span: got %v, want %v", got, want)
	}
}

func TestSelectionHighlight_SameLineSkipsRectRedraw(t *testing.T) {
	h, s, rects, gutter := newSelectionHarness(t)

	s.SelectionDidChange(caret(h.lineStart(1)+1), caret(h.lineStart(1)+3))
	if len(rects.rects) != 0 {
		t.Fatalf("rects: got %v, want none", rects.rects)
	}
	h.queue.Drain(4)
	if got, want := len(gutter.calls), 1; got != want {
		t.Fatalf("gutter calls: got %d, want %d", got, want)
	}
}

func TestSelectionHighlight_RangeSelectionHasNoCurrentLine(t *testing.T) {
	h, s, rects, _ := newSelectionHarness(t)

	s.SelectionDidChange(caret(h.lineStart(2)), buffer.CharRange{Location: h.lineStart(2), Length: 5})
	if got, want := len(rects.rects), 1; got != want {
		t.Fatalf("rects: got %d, want %d", got, want)
	}
	if got, want := rects.rects[0], geom.R(0, 2, 40, 1); got != want {
		t.Fatalf("rect: got %v, want %v", got, want)
	}
}

func TestSelectionHighlight_CollapsesDecorations(t *testing.T) {
	h, s, _, _ := newSelectionHarness(t)
	h.reg.Report(buffer.Message{Line: 4})
	h.settle()
	id := h.bundleAt(4)
	if !h.reg.Unfold(id) {
		t.Fatalf("unfold failed")
	}

	s.SelectionDidChange(caret(0), caret(1))
	if v, _ := h.reg.View(id); v.Unfolded() {
		t.Fatalf("selection change must collapse every decoration")
	}
}
