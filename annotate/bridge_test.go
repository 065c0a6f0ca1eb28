package annotate

import (
	"testing"

	"github.com/iw2rmb/marginalia/buffer"
)

func TestEditBridge_DeletedLineDropsDecoration(t *testing.T) {
	h := newHarness(numberedLines(10), 40)
	h.reg.Report(buffer.Message{Line: 2, Category: buffer.CategoryWarning})
	h.reg.Report(buffer.Message{Line: 5, Category: buffer.CategoryError})
	h.settle()
	gone := h.bundleAt(5)
	kept := h.bundleAt(2)
	h.gutter.calls = nil
	detaches := h.surface.detaches

	if _, ok := h.st.Replace(buffer.CharRange{Location: h.lineStart(5), Length: 7}, ""); !ok {
		t.Fatalf("replace refused")
	}
	if h.reg.Has(gone) {
		t.Fatalf("decoration of the deleted line must be removed inside the edit callback")
	}
	if !h.reg.Has(kept) {
		t.Fatalf("decoration of line 2 must survive")
	}
	if got, want := h.surface.detaches-detaches, 1; got != want {
		t.Fatalf("detaches: got %d, want %d", got, want)
	}
	if len(h.gutter.calls) != 0 {
		t.Fatalf("gutter redraw must be deferred, got %d calls", len(h.gutter.calls))
	}

	h.queue.RunTurn()
	if got, want := len(h.gutter.calls), 1; got != want {
		t.Fatalf("gutter calls: got %d, want %d", got, want)
	}
	call := h.gutter.calls[0]
	if got, want := call.registered, 1; got != want {
		t.Fatalf("gutter saw %d decorations, want %d", got, want)
	}
	if got, want := call.r, (buffer.CharRange{Location: 35, Length: 7}); got != want {
		t.Fatalf("gutter range: got %v, want %v", got, want)
	}
}

func TestEditBridge_MergedLineDropsDecoration(t *testing.T) {
	h := newHarness(numberedLines(4), 40)
	h.reg.Report(buffer.Message{Line: 2})
	h.settle()
	id := h.bundleAt(2)

	// Join lines 1 and 2.
	if _, ok := h.st.Replace(buffer.CharRange{Location: h.lineStart(2) - 1, Length: 1}, ""); !ok {
		t.Fatalf("replace refused")
	}
	if h.reg.Has(id) {
		t.Fatalf("decoration of the merged line must be removed")
	}
	if got := h.reg.Len(); got != 0 {
		t.Fatalf("entries: got %d, want 0", got)
	}
}

func TestEditBridge_InLineEditKeepsAndReresolves(t *testing.T) {
	h := newHarness(numberedLines(10), 40)
	h.reg.Report(buffer.Message{Line: 3})
	h.settle()
	id := h.bundleAt(3)

	if _, ok := h.st.Replace(buffer.CharRange{Location: h.lineStart(3) + 4}, "xyz"); !ok {
		t.Fatalf("replace refused")
	}
	if !h.reg.Has(id) {
		t.Fatalf("decoration must survive an edit inside its line")
	}
	h.settle()
	if st, _ := h.reg.State(id); st != StateResolved {
		t.Fatalf("state: got %v, want %v", st, StateResolved)
	}
	d := h.reg.Decorations()[0]
	if got, want := d.Geometry.LineWidth, 40.0-9; got != want {
		t.Fatalf("line width: got %v, want %v", got, want)
	}
}

func TestEditBridge_InsertedLinesShiftDecoration(t *testing.T) {
	h := newHarness(numberedLines(10), 40)
	h.reg.Report(buffer.Message{Line: 6})
	h.settle()
	id := h.bundleAt(6)

	if _, ok := h.st.Replace(buffer.CharRange{Location: 0}, "a\nb\n"); !ok {
		t.Fatalf("replace refused")
	}
	h.settle()
	ds := h.reg.Decorations()
	if len(ds) != 1 || ds[0].ID != id {
		t.Fatalf("decorations: got %+v", ds)
	}
	if got, want := ds[0].Line, 8; got != want {
		t.Fatalf("line: got %d, want %d", got, want)
	}
	if got, want := ds[0].Top, 8.0; got != want {
		t.Fatalf("top: got %v, want %v", got, want)
	}
	assertTwoPhase(t, h.reg)
}
