package buffer

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func tenLines() *Buffer {
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	return New(strings.Join(lines, "\n"))
}

func TestReplace_DeleteWholeLineEvictsItsBundle(t *testing.T) {
	b := tenLines()
	bn5, _ := b.Insert(Message{Line: 5, Summary: "five"})
	bn6, _ := b.Insert(Message{Line: 6, Summary: "six"})

	info, _ := b.Lookup(5)
	if _, ok := b.Delete(info.Range); !ok {
		t.Fatalf("expected effective edit")
	}

	if got, want := b.EvictedBundleIDsFromLastEdit(), []BundleID{bn5.ID}; !reflect.DeepEqual(got, want) {
		t.Fatalf("evicted: got %v, want %v", got, want)
	}
	if got, want := b.LineCount(), 9; got != want {
		t.Fatalf("line count: got %d, want %d", got, want)
	}
	moved, ok := b.Messages(5)
	if !ok || moved.ID != bn6.ID {
		t.Fatalf("line 6 bundle must move up to line 5")
	}
	if got, _ := b.LineText(5); got != "line 6" {
		t.Fatalf("line 5 text: got %q", got)
	}
}

func TestReplace_JoinLinesEvictsMergedLine(t *testing.T) {
	b := New("ab\ncd\nef")
	bn0, _ := b.Insert(Message{Line: 0})
	bn1, _ := b.Insert(Message{Line: 1})

	// Backspace at the start of line 1.
	ed, ok := b.Delete(CharRange{Location: 2, Length: 1})
	if !ok {
		t.Fatalf("expected effective edit")
	}
	if got, want := ed.ChangeInLength, -1; got != want {
		t.Fatalf("change in length: got %d, want %d", got, want)
	}
	if got, want := b.EvictedBundleIDsFromLastEdit(), []BundleID{bn1.ID}; !reflect.DeepEqual(got, want) {
		t.Fatalf("evicted: got %v, want %v", got, want)
	}
	kept, ok := b.Messages(0)
	if !ok || kept.ID != bn0.ID {
		t.Fatalf("start line must keep its bundle")
	}
	if got, want := b.Text(), "abcd\nef"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
}

func TestReplace_InsertNewlineKeepsBundleOnFirstLine(t *testing.T) {
	b := New("abcd")
	bn, _ := b.Insert(Message{Line: 0})

	ed, ok := b.InsertText(2, "\n")
	if !ok {
		t.Fatalf("expected effective edit")
	}
	if got := b.EvictedBundleIDsFromLastEdit(); len(got) != 0 {
		t.Fatalf("nothing should be evicted: %v", got)
	}
	if got, want := ed.LastLine, 1; got != want {
		t.Fatalf("last line: got %d, want %d", got, want)
	}
	if got, ok := b.Messages(0); !ok || got.ID != bn.ID {
		t.Fatalf("bundle must stay on line 0")
	}
	if _, ok := b.Messages(1); ok {
		t.Fatalf("new line must not carry a bundle")
	}
}

func TestReplace_NoOpLeavesVersionAndClearsEvicted(t *testing.T) {
	b := New("ab\ncd")
	b.Insert(Message{Line: 1})
	b.Delete(CharRange{Location: 2, Length: 1})
	if len(b.EvictedBundleIDsFromLastEdit()) != 1 {
		t.Fatalf("expected one eviction")
	}
	v := b.Version()

	if _, ok := b.Replace(CharRange{Location: 0, Length: 1}, "a"); ok {
		t.Fatalf("identical replacement must be a no-op")
	}
	if b.Version() != v {
		t.Fatalf("version changed on no-op")
	}
	if got := b.EvictedBundleIDsFromLastEdit(); len(got) != 0 {
		t.Fatalf("evicted ids must describe only the last edit: %v", got)
	}
}
