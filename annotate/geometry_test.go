package annotate

import (
	"testing"

	"github.com/iw2rmb/marginalia/buffer"
	"github.com/iw2rmb/marginalia/geom"
)

func TestGeometryQuery_LineStartingAt(t *testing.T) {
	h := newHarness("ab\ncd\n\nef", 40)
	q := NewGeometryQuery(h.buf, h.engine)

	cases := []struct {
		off  int
		line int
		ok   bool
	}{
		{0, 0, true},
		{1, 0, false},
		{3, 1, true},
		{6, 2, true},
		{7, 3, true},
		{9, 0, false},
		{-1, 0, false},
	}
	for _, tc := range cases {
		line, ok := q.LineStartingAt(tc.off)
		if ok != tc.ok || (ok && line != tc.line) {
			t.Fatalf("LineStartingAt(%d): got (%d,%v), want (%d,%v)", tc.off, line, ok, tc.line, tc.ok)
		}
	}
}

func TestGeometryQuery_CurrentLine(t *testing.T) {
	h := newHarness("ab\ncd", 40)
	q := NewGeometryQuery(h.buf, h.engine)

	if got, ok := q.CurrentLine(caret(4)); !ok || got != (buffer.CharRange{Location: 3, Length: 2}) {
		t.Fatalf("caret: got (%v,%v)", got, ok)
	}
	if _, ok := q.CurrentLine(buffer.CharRange{Location: 0, Length: 2}); ok {
		t.Fatalf("range selection must have no current line")
	}
}

func TestGeometryQuery_LineGeometry(t *testing.T) {
	h := newHarness("hello\nworld wide", 40)
	q := NewGeometryQuery(h.buf, h.engine)

	lg, ok := q.LineGeometry(geom.R(0, 1, 40, 1))
	if !ok {
		t.Fatalf("line geometry must be found")
	}
	if got, want := lg.Line, 1; got != want {
		t.Fatalf("line: got %d, want %d", got, want)
	}
	if got, want := lg.Used, geom.R(0, 1, 10, 1); got != want {
		t.Fatalf("used: got %v, want %v", got, want)
	}
	if _, ok := q.LineGeometry(geom.R(0, 5, 40, 1)); ok {
		t.Fatalf("rect below the text must not map to a line")
	}
}

func TestNewGeometryQuery_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	NewGeometryQuery(nil, nil)
}
