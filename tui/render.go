package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/marginalia/buffer"
	"github.com/iw2rmb/marginalia/internal/grapheme"
	"github.com/iw2rmb/marginalia/layout"
)

// categoryOrder lists categories from most to least severe.
var categoryOrder = []buffer.Category{
	buffer.CategoryError,
	buffer.CategoryWarning,
	buffer.CategoryLive,
	buffer.CategoryInformational,
}

func categoryMark(c buffer.Category) string {
	return strings.ToUpper(c.String()[:1])
}

// renderPrimary draws the whole primary document.
func (m *Model) renderPrimary() string {
	t := m.sync.Tiling()
	width := cellOf(t.PrimaryWidth)
	rows := cellOf(m.primary.UsedHeight())
	c := newCanvas(width, max(rows, m.viewport.Height), m.pal)

	gutter := cellOf(t.PrimaryGutter)
	pad := m.primary.Container().LineFragmentPadding
	sel := m.Selection()
	caretLine := m.caretLine()

	for line := 0; line < m.buf.LineCount(); line++ {
		frags, ok := m.primary.Fragments(line)
		if !ok {
			break
		}
		info, _ := m.buf.Lookup(line)
		runes := m.buf.LineRunes(line)
		current := line == caretLine && sel.IsEmpty()

		for fi, f := range frags {
			y := cellOf(f.Rect.MinY())
			if current {
				c.fill(y, gutter, width, styleCurrentLine)
			}
			if fi == 0 {
				m.drawGutter(c, line, y, gutter, line == caretLine)
			}

			x := cellOf(f.Rect.MinX() + pad)
			for k := 0; k < f.Chars.Length; k++ {
				off := f.Chars.Location + k
				idx := off - info.Range.Location
				if idx >= len(runes) {
					break
				}
				r := runes[idx]
				cells := layout.RuneCells(r)
				text := string(r)
				if r == '\t' || r < 0x20 || r == 0x7f {
					text = " "
				}
				fg := styleText
				if off == m.caret {
					fg = styleCursor
				}
				c.put(x, y, text, fg)
				if !sel.IsEmpty() && off >= sel.Location && off < sel.End() {
					c.fill(y, x, x+cells, styleSelection)
				}
				x += cells
			}
			if fi == len(frags)-1 && m.caret == info.Range.Location+len(runes) {
				c.put(x, y, " ", styleCursor)
			}
		}
	}

	for _, v := range m.surface.placedViews() {
		m.drawIndicator(c, v, gutter)
	}
	return c.render(0, c.height())
}

func (m *Model) drawGutter(c *canvas, line, y, width int, focus bool) {
	if width <= 0 {
		return
	}
	digits := max(width-2, 1)
	num := strconv.Itoa(line + 1)
	if len(num) > digits {
		num = num[len(num)-digits:]
	}
	fg := styleGutter
	if focus {
		fg = styleGutterFocus
	}
	c.put(digits-len(num), y, num, fg)

	if bundle, ok := m.buf.Messages(line); ok && width >= 2 {
		c.put(width-1, y, categoryMark(bundle.Principal()), m.pal.badge(m.markColor(bundle), m.styles))
	}
}

// markColor is the colour of the bundle's decoration, or the theme colour
// of its principal category when it has none.
func (m *Model) markColor(b *buffer.Bundle) lipgloss.Color {
	if v, ok := m.reg.View(b.ID); ok {
		if ind, ok := v.(*indicator); ok {
			return ind.color
		}
	}
	return m.cfg.Theme.ColorFor(b.Principal())
}

// indicatorLabel summarises a bundle, e.g. "E2 W1 unused variable".
func indicatorLabel(b *buffer.Bundle) string {
	counts := b.Counts()
	parts := make([]string, 0, len(categoryOrder)+1)
	for _, cat := range categoryOrder {
		if n := counts[cat]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s%d", categoryMark(cat), n))
		}
	}
	principal := b.Principal()
	for _, msg := range b.Messages {
		if msg.Category == principal && msg.Summary != "" {
			parts = append(parts, msg.Summary)
			break
		}
	}
	return strings.Join(parts, " ")
}

func (m *Model) drawIndicator(c *canvas, v *indicator, gutter int) {
	g := v.geometry
	badge := m.pal.badge(v.color, m.styles)
	y := cellOf(v.top.Offset())
	right := min(cellOf(v.right.Offset()), c.width)

	if avail := cellOf(g.LineWidth) - 1; avail > 0 {
		label := grapheme.Truncate(indicatorLabel(v.bundle), avail, "…")
		c.put(right-grapheme.Width(label), y, label, badge)
	}
	if !v.unfolded {
		return
	}

	x1 := right
	x0 := max(x1-cellOf(g.PopupWidth), gutter)
	inner := x1 - x0 - 2
	if inner <= 0 {
		return
	}
	row := cellOf(v.top.Offset() + g.PopupOffset)
	for _, msg := range v.bundle.Messages {
		head := grapheme.Wrap("["+msg.Category.String()+"] "+msg.Summary, inner)
		body := grapheme.Wrap(msg.Description, inner)
		if msg.Description == "" {
			body = nil
		}
		for i, text := range append(head, body...) {
			c.fill(row, x0, x1, stylePopup)
			c.put(x0, row, "│", m.pal.badge(v.color, m.styles))
			fg := stylePopup
			if i < len(head) {
				fg = badge
			}
			c.put(x0+2, row, text, fg)
			row++
		}
	}
}

// statusLine shows the caret position, the message count and key help.
func (m Model) statusLine() string {
	pos, _ := m.buf.PosFromOffset(m.caret)
	help := make([]string, 0, 4)
	for _, b := range m.cfg.KeyMap.ShortHelp() {
		h := b.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	s := fmt.Sprintf(" Ln %d, Col %d  %d decorated  %s", pos.Row+1, pos.Col+1, m.reg.Len(), strings.Join(help, " · "))
	return m.styles.Status.Render(grapheme.Pad(grapheme.Truncate(s, m.width, "…"), m.width))
}

func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	h := m.viewport.Height
	t := m.sync.Tiling()

	cols := []string{m.viewport.View()}
	if d := cellOf(t.Divider); d > 0 {
		line := strings.Repeat("│", d)
		div := make([]string, h)
		for i := range div {
			div[i] = line
		}
		cols = append(cols, m.styles.Divider.Render(strings.Join(div, "\n")))
	}
	cols = append(cols, m.renderMinimap(h))

	body := lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.statusLine())
}
