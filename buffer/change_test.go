package buffer

import "testing"

func TestBuffer_LastChange_InitialAndNoOp(t *testing.T) {
	b := New("a")
	if _, ok := b.LastChange(); ok {
		t.Fatalf("expected no initial change")
	}
	b.Delete(CharRange{Location: 0})
	if _, ok := b.LastChange(); ok {
		t.Fatalf("expected no change after no-op edit")
	}
}

func TestBuffer_Change_Shape(t *testing.T) {
	b := New("ab\ncd")
	bn, _ := b.Insert(Message{Line: 1})
	v := b.Version()

	b.Replace(CharRange{Location: 1, Length: 3}, "X")

	ch, ok := b.LastChange()
	if !ok {
		t.Fatalf("expected last change")
	}
	if got, want := ch.VersionBefore, v; got != want {
		t.Fatalf("version before=%d, want %d", got, want)
	}
	if got, want := ch.VersionAfter, v+1; got != want {
		t.Fatalf("version after=%d, want %d", got, want)
	}
	if got, want := ch.Edit.DeletedText, "b\nc"; got != want {
		t.Fatalf("deleted=%q, want %q", got, want)
	}
	if got, want := ch.Edit.EditedRange, (CharRange{Location: 1, Length: 1}); got != want {
		t.Fatalf("edited range=%v, want %v", got, want)
	}
	if len(ch.Evicted) != 1 || ch.Evicted[0] != bn.ID {
		t.Fatalf("evicted=%v, want [%d]", ch.Evicted, bn.ID)
	}
	if got, want := b.Text(), "aXd"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}
