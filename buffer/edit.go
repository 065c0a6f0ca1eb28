package buffer

import "strings"

// Edit describes one applied replacement in character offsets.
type Edit struct {
	// Range is the replaced range in pre-edit offsets.
	Range CharRange
	// EditedRange is the inserted text's range in post-edit offsets.
	EditedRange CharRange
	// ChangeInLength is len(inserted) - Range.Length.
	ChangeInLength int

	// FirstLine is the first line touched by the edit. OldLastLine is the
	// last pre-edit line it touched; LastLine is the last post-edit line
	// holding inserted or merged text.
	FirstLine   int
	OldLastLine int
	LastLine    int

	InsertText  string
	DeletedText string
}

// Replace replaces the characters in r with text and updates line bundles.
//
// When the edit runs from column 0 of one line to column 0 of a later line,
// the old lines in between are deleted whole and the end line keeps its
// bundle. Otherwise the start line survives with its bundle and every other
// old line touched by the edit is merged away. Bundles of removed lines are
// evicted. ok is false when the edit is a no-op.
func (b *Buffer) Replace(r CharRange, text string) (Edit, bool) {
	b.lastEvicted = nil

	r = b.clampRange(r)
	start, _ := b.PosFromOffset(r.Location)
	end, _ := b.PosFromOffset(r.End())
	deleted := b.textBetween(start, end)
	if deleted == text {
		return Edit{}, false
	}

	prefix := append([]rune(nil), b.lines[start.Row].text[:start.Col]...)
	suffix := append([]rune(nil), b.lines[end.Row].text[end.Col:]...)

	parts := strings.Split(text, "\n")
	repl := make([]line, 0, len(parts))
	for i, p := range parts {
		var rs []rune
		if i == 0 {
			rs = append(rs, prefix...)
		}
		rs = append(rs, []rune(p)...)
		if i == len(parts)-1 {
			rs = append(rs, suffix...)
		}
		repl = append(repl, line{text: rs})
	}

	wholeLines := start.Col == 0 && end.Col == 0 && end.Row > start.Row
	var evicted []BundleID
	if wholeLines {
		repl[len(repl)-1].bundle = b.lines[end.Row].bundle
		for row := start.Row; row < end.Row; row++ {
			if bn := b.lines[row].bundle; bn != nil {
				evicted = append(evicted, bn.ID)
			}
		}
	} else {
		repl[0].bundle = b.lines[start.Row].bundle
		for row := start.Row + 1; row <= end.Row; row++ {
			if bn := b.lines[row].bundle; bn != nil {
				evicted = append(evicted, bn.ID)
			}
		}
	}

	out := make([]line, 0, len(b.lines)-(end.Row-start.Row)+len(repl))
	out = append(out, b.lines[:start.Row]...)
	out = append(out, repl...)
	out = append(out, b.lines[end.Row+1:]...)
	b.lines = out
	b.startsValid = false

	inserted := len([]rune(text))
	ed := Edit{
		Range:          r,
		EditedRange:    CharRange{Location: r.Location, Length: inserted},
		ChangeInLength: inserted - r.Length,
		FirstLine:      start.Row,
		OldLastLine:    end.Row,
		LastLine:       start.Row + len(parts) - 1,
		InsertText:     text,
		DeletedText:    deleted,
	}

	before := b.version
	b.version++
	b.lastEvicted = evicted
	b.commitChange(before, ed, evicted)
	return ed, true
}

// InsertText inserts text at a character offset.
func (b *Buffer) InsertText(off int, text string) (Edit, bool) {
	return b.Replace(CharRange{Location: off}, text)
}

// Delete removes the characters in r.
func (b *Buffer) Delete(r CharRange) (Edit, bool) {
	return b.Replace(r, "")
}
