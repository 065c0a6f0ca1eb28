package annotate

import (
	"strings"
	"testing"

	"github.com/iw2rmb/marginalia/buffer"
	"github.com/iw2rmb/marginalia/geom"
	"github.com/iw2rmb/marginalia/layout"
)

func TestLineFragmentPolicy_Narrowing(t *testing.T) {
	h := newHarness(numberedLines(10), 40)
	h.reg.Report(buffer.Message{Line: 5})
	off := h.lineStart(5)

	cases := []struct {
		name      string
		candidate geom.Rect
		dir       layout.WritingDirection
		want      geom.Rect
	}{
		{name: "wide", candidate: geom.R(0, 5, 10, 1), want: geom.R(0, 5, 6, 1)},
		{name: "exactly twice", candidate: geom.R(0, 5, 8, 1), want: geom.R(0, 5, 4, 1)},
		{name: "narrow", candidate: geom.R(0, 5, 7, 1), want: geom.R(0, 5, 7, 1)},
		{name: "rtl", candidate: geom.R(2, 5, 10, 1), dir: layout.RightToLeft, want: geom.R(6, 5, 6, 1)},
	}
	for _, tc := range cases {
		if got := h.policy.ProposeLineFragmentRect(tc.candidate, off, tc.dir); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestLineFragmentPolicy_NarrowCandidateLeavesAnchorStale(t *testing.T) {
	h := newHarness(numberedLines(10), 40)
	h.reg.Report(buffer.Message{Line: 5})
	h.settle()
	id := h.bundleAt(5)

	h.policy.ProposeLineFragmentRect(geom.R(0, 5, 7, 1), h.lineStart(5), layout.LeftToRight)
	if st, _ := h.reg.State(id); st != StateResolved {
		t.Fatalf("narrow candidate must not reset geometry, state=%v", st)
	}
	if got := h.reg.Decorations()[0].Anchor.LineFragmentRect.Width(); got != 40 {
		t.Fatalf("anchor must stay stale: width %v", got)
	}
}

func TestLineFragmentPolicy_IgnoresUndecoratedAndContinuationFragments(t *testing.T) {
	h := newHarness(numberedLines(10), 40)
	h.reg.Report(buffer.Message{Line: 5})
	c := geom.R(0, 0, 30, 1)

	if got := h.policy.ProposeLineFragmentRect(c, h.lineStart(4), layout.LeftToRight); got != c {
		t.Fatalf("undecorated line: got %v, want %v", got, c)
	}
	if got := h.policy.ProposeLineFragmentRect(c, h.lineStart(5)+2, layout.LeftToRight); got != c {
		t.Fatalf("continuation fragment: got %v, want %v", got, c)
	}
	if h.queue.Len() != 0 {
		t.Fatalf("no resolution may be scheduled, pending=%d", h.queue.Len())
	}
}

func TestLineFragmentPolicy_IgnoresBundlesWithoutDecoration(t *testing.T) {
	h := newHarness(numberedLines(4), 40)
	h.buf.Insert(buffer.Message{Line: 1})
	c := geom.R(0, 1, 30, 1)
	if got := h.policy.ProposeLineFragmentRect(c, h.lineStart(1), layout.LeftToRight); got != c {
		t.Fatalf("got %v, want %v", got, c)
	}
}

func TestLineFragmentPolicy_ReservationWrapsEarlier(t *testing.T) {
	long := strings.Repeat("x", 38)
	h := newHarness(long+"\n"+long, 40)
	h.reg.Report(buffer.Message{Line: 0})
	h.settle()

	decorated, _ := h.engine.Fragments(0)
	plain, _ := h.engine.Fragments(1)
	if got, want := len(decorated), 2; got != want {
		t.Fatalf("decorated fragments: got %d, want %d", got, want)
	}
	if got, want := len(plain), 1; got != want {
		t.Fatalf("plain fragments: got %d, want %d", got, want)
	}
	d := h.reg.Decorations()[0]
	if got, want := d.Geometry.PopupOffset, 2.0; got != want {
		t.Fatalf("popup offset must clear the whole line: got %v, want %v", got, want)
	}
	if got, want := d.Geometry.LineWidth, 4.0; got != want {
		t.Fatalf("line width: got %v, want %v", got, want)
	}
}

func TestMirrorPolicy_KeepsLineBreaksInStep(t *testing.T) {
	long := strings.Repeat("x", 50)
	h := newHarness(long+"\nshort", 40)

	secondary := layout.NewEngine(h.st, layout.Font{Size: 0.5, Advance: 0.5, LineHeight: 0.25}, layout.Container{Width: 20}, layout.Options{})
	mirror := NewMirrorPolicy(h.reg)
	mirror.SetMetrics(0.5, 0, 0)
	secondary.SetDelegate(mirror)
	h.reg.AddMirror(secondary)

	h.reg.Report(buffer.Message{Line: 0})
	h.settle()

	p, _ := h.engine.Fragments(0)
	s, _ := secondary.Fragments(0)
	if len(p) != len(s) {
		t.Fatalf("fragment counts: primary %d, secondary %d", len(p), len(s))
	}
	for i := range p {
		if p[i].Chars != s[i].Chars {
			t.Fatalf("fragment %d: primary %v, secondary %v", i, p[i].Chars, s[i].Chars)
		}
	}
	if got, want := p[0].Chars.Length, 36; got != want {
		t.Fatalf("first fragment length: got %d, want %d", got, want)
	}
	if got := h.queue.Len(); got != 0 {
		t.Fatalf("mirror must not schedule resolution, pending=%d", got)
	}
}

func TestMirrorPolicy_AgreesAtExactThreshold(t *testing.T) {
	for _, ratio := range []float64{1.5, 3, 7, 2.2} {
		h := newHarness("xxxxxxxxxx", 8)
		scale := 1 / ratio
		font := layout.FixedPitch(scale, 1, 0.5)
		secondary := layout.NewEngine(h.st, font, layout.Container{Width: 8 * scale}, layout.Options{})
		mirror := NewMirrorPolicy(h.reg)
		mirror.SetMetrics(scale, 0, 0)
		secondary.SetDelegate(mirror)
		h.reg.AddMirror(secondary)

		h.reg.Report(buffer.Message{Line: 0})
		h.settle()

		p, _ := h.engine.Fragments(0)
		s, _ := secondary.Fragments(0)
		if got, want := p[0].Chars.Length, 4; got != want {
			t.Fatalf("ratio %v: primary first fragment: got %d, want %d", ratio, got, want)
		}
		if got, want := s[0].Chars.Length, p[0].Chars.Length; got != want {
			t.Fatalf("ratio %v: secondary first fragment: got %d, want %d", ratio, got, want)
		}
	}
}
