package buffer

import "strings"

type line struct {
	text   []rune
	bundle *Bundle
}

// LineInfo describes one line as seen by the line map.
//
// Range covers the line's characters including its trailing newline, if any.
type LineInfo struct {
	Range  CharRange
	Bundle *Bundle
}

// Buffer is the document state: text lines and the message bundles attached
// to them.
type Buffer struct {
	lines   []line
	version uint64

	// starts[i] is the character offset of line i; rebuilt lazily.
	starts      []int
	startsValid bool

	nextBundleID BundleID
	lastEvicted  []BundleID

	lastChange    Change
	hasLastChange bool
}

func New(text string) *Buffer {
	b := &Buffer{nextBundleID: 1}
	for _, s := range splitLines(text) {
		b.lines = append(b.lines, line{text: s})
	}
	return b
}

func (b *Buffer) Text() string {
	var sb strings.Builder
	for i, l := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(l.text))
	}
	return sb.String()
}

func (b *Buffer) Version() uint64 { return b.version }

// LineCount returns the number of lines. It is always at least 1.
func (b *Buffer) LineCount() int { return len(b.lines) }

// Length returns the document length in characters.
func (b *Buffer) Length() int {
	n := len(b.lines) - 1
	for _, l := range b.lines {
		n += len(l.text)
	}
	return n
}

// LineText returns the text of line without its newline.
func (b *Buffer) LineText(ln int) (string, bool) {
	if ln < 0 || ln >= len(b.lines) {
		return "", false
	}
	return string(b.lines[ln].text), true
}

// LineRunes returns a copy of the runes of line.
func (b *Buffer) LineRunes(ln int) []rune {
	if ln < 0 || ln >= len(b.lines) {
		return nil
	}
	return append([]rune(nil), b.lines[ln].text...)
}

// Lookup returns the character range and bundle of line.
func (b *Buffer) Lookup(ln int) (LineInfo, bool) {
	if ln < 0 || ln >= len(b.lines) {
		return LineInfo{}, false
	}
	b.ensureStarts()
	length := len(b.lines[ln].text)
	if ln < len(b.lines)-1 {
		length++
	}
	return LineInfo{
		Range:  CharRange{Location: b.starts[ln], Length: length},
		Bundle: b.lines[ln].bundle,
	}, true
}

// LineOf returns the line owning the character offset. The document end
// belongs to the last line.
func (b *Buffer) LineOf(off int) (int, bool) {
	if off < 0 || off > b.Length() {
		return 0, false
	}
	b.ensureStarts()
	lo, hi := 0, len(b.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if b.starts[mid] <= off {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo, true
}

// PosFromOffset converts a character offset to a (row, col) position.
func (b *Buffer) PosFromOffset(off int) (Pos, bool) {
	ln, ok := b.LineOf(off)
	if !ok {
		return Pos{}, false
	}
	col := clampInt(off-b.starts[ln], 0, len(b.lines[ln].text))
	return Pos{Row: ln, Col: col}, true
}

// OffsetFromPos converts a position to a character offset, clamping the
// position into the document first.
func (b *Buffer) OffsetFromPos(p Pos) int {
	b.ensureStarts()
	row := clampInt(p.Row, 0, len(b.lines)-1)
	col := clampInt(p.Col, 0, len(b.lines[row].text))
	return b.starts[row] + col
}

// TextInRange returns the text covered by r, clamped to the document.
func (b *Buffer) TextInRange(r CharRange) string {
	r = b.clampRange(r)
	if r.IsEmpty() {
		return ""
	}
	start, _ := b.PosFromOffset(r.Location)
	end, _ := b.PosFromOffset(r.End())
	return b.textBetween(start, end)
}

func (b *Buffer) textBetween(start, end Pos) string {
	if start.Row == end.Row {
		return string(b.lines[start.Row].text[start.Col:end.Col])
	}
	var sb strings.Builder
	for row := start.Row; row <= end.Row; row++ {
		if row > start.Row {
			sb.WriteByte('\n')
		}
		from, to := 0, len(b.lines[row].text)
		if row == start.Row {
			from = start.Col
		}
		if row == end.Row {
			to = end.Col
		}
		sb.WriteString(string(b.lines[row].text[from:to]))
	}
	return sb.String()
}

func (b *Buffer) clampRange(r CharRange) CharRange {
	n := b.Length()
	start := clampInt(r.Location, 0, n)
	end := clampInt(r.End(), start, n)
	return CharRange{Location: start, Length: end - start}
}

func (b *Buffer) ensureStarts() {
	if b.startsValid && len(b.starts) == len(b.lines) {
		return
	}
	b.starts = b.starts[:0]
	off := 0
	for _, l := range b.lines {
		b.starts = append(b.starts, off)
		off += len(l.text) + 1
	}
	b.startsValid = true
}

func splitLines(text string) [][]rune {
	parts := strings.Split(text, "\n")
	lines := make([][]rune, 0, len(parts))
	for _, s := range parts {
		lines = append(lines, []rune(s))
	}
	if len(lines) == 0 {
		lines = append(lines, nil)
	}
	return lines
}
