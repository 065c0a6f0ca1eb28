package tui

import (
	"unicode"

	"github.com/iw2rmb/marginalia/layout"
)

// brailleBits maps a dot column and row inside a braille cell to its bit.
var brailleBits = [2][4]rune{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// renderMinimap draws the visible part of the secondary pane as braille
// dots with the visible-region box.
func (m Model) renderMinimap(height int) string {
	t := m.sync.Tiling()
	sc := m.sync.Scroll()
	width := cellOf(t.SecondaryWidth)
	c := newCanvas(width, height, m.pal)
	if width <= 0 || height <= 0 {
		return c.render(0, height)
	}

	off := sc.SecondaryOffset
	boxTop := cellOf(sc.Indicator.MinY() - off)
	boxBottom := cellOf(sc.Indicator.MaxY() - off + 0.999)
	for y := max(boxTop, 0); y < min(boxBottom, height); y++ {
		c.fill(y, 0, width, styleMinimapBox)
	}

	dots := make([][]rune, height)
	for i := range dots {
		dots[i] = make([]rune, width)
	}
	pad := m.secondary.Container().LineFragmentPadding
	adv := m.secondary.Font().Advance
	gutter := cellOf(t.SecondaryGutter)

	first, _ := m.secondary.LineAtY(off)
	for line := first; line < m.buf.LineCount(); line++ {
		top, ok := m.secondary.LineTop(line)
		if !ok || top-off >= float64(height) {
			break
		}
		frags, _ := m.secondary.Fragments(line)
		info, _ := m.buf.Lookup(line)
		runes := m.buf.LineRunes(line)

		if bundle, ok := m.buf.Messages(line); ok && gutter > 0 {
			if y := cellOf(top - off); y >= 0 {
				c.put(0, y, categoryMark(bundle.Principal()), m.pal.badge(m.markColor(bundle), m.styles))
			}
		}

		for _, f := range frags {
			y := f.Rect.MinY() - off
			if y < 0 || y >= float64(height) {
				continue
			}
			x := f.Rect.MinX() + pad
			for k := 0; k < f.Chars.Length; k++ {
				idx := f.Chars.Location + k - info.Range.Location
				if idx >= len(runes) {
					break
				}
				r := runes[idx]
				if !unicode.IsSpace(r) {
					dx, dy := cellOf(x*2), cellOf(y*4)
					cx, cy := dx/2, dy/4
					if cx >= 0 && cx < width && cy >= 0 && cy < height {
						dots[cy][cx] |= brailleBits[dx%2][dy%4]
					}
				}
				x += float64(layout.RuneCells(r)) * adv
			}
		}
	}

	for y, row := range dots {
		for x, bits := range row {
			if bits != 0 {
				c.put(x, y, string(0x2800+bits), styleMinimap)
			}
		}
	}
	return c.render(0, height)
}
